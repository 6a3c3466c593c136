package leaf

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func btcusd() AssetData {
	return AssetData{
		Symbol:    "BTC/USD",
		Price:     big.NewInt(45000),
		Timestamp: big.NewInt(1_000_000),
		Decimals:  2,
	}
}

func TestEncodeDeterministic(t *testing.T) {
	data := btcusd()

	first, err := Encode(data)
	require.NoError(t, err)

	second, err := Encode(data)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestEncodeDiffersOnAnyField(t *testing.T) {
	base := btcusd()
	baseHash, err := Encode(base)
	require.NoError(t, err)

	variants := []AssetData{
		{Symbol: "ETH/USD", Price: base.Price, Timestamp: base.Timestamp, Decimals: base.Decimals},
		{Symbol: base.Symbol, Price: big.NewInt(45001), Timestamp: base.Timestamp, Decimals: base.Decimals},
		{Symbol: base.Symbol, Price: base.Price, Timestamp: big.NewInt(1_000_001), Decimals: base.Decimals},
		{Symbol: base.Symbol, Price: base.Price, Timestamp: base.Timestamp, Decimals: 3},
	}

	for _, v := range variants {
		h, err := Encode(v)
		require.NoError(t, err)
		assert.NotEqual(t, baseHash, h)
	}
}

func TestEncodeIsDoubleHash(t *testing.T) {
	// the leaf must be keccak256(keccak256(encoded)), not keccak256(encoded);
	// this guards against collapsing the double hash during refactors.
	data := btcusd()
	h, err := Encode(data)
	require.NoError(t, err)

	encoded, err := leafArgs.Pack(data.Symbol, data.Price, data.Timestamp, big.NewInt(int64(data.Decimals)))
	require.NoError(t, err)

	inner := crypto.Keccak256(encoded)
	outer := crypto.Keccak256(inner)
	assert.Equal(t, outer, h[:])

	singleHash := crypto.Keccak256(encoded)
	assert.NotEqual(t, singleHash, h[:])
}
