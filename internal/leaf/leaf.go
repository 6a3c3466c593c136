// Package leaf encodes oracle price points into the 32-byte leaves that
// populate the Merkle store.
package leaf

import (
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/crypto"
)

// AssetData is a single price point staged into a snapshot.
type AssetData struct {
	Symbol    string
	Price     *big.Int
	Timestamp *big.Int
	Decimals  uint8
}

var leafArgs = abi.Arguments{
	{Type: mustType("string")},
	{Type: mustType("uint256")},
	{Type: mustType("uint256")},
	{Type: mustType("uint256")},
}

func mustType(t string) abi.Type {
	typ, err := abi.NewType(t, "", nil)
	if err != nil {
		panic("leaf: invalid abi type " + t + ": " + err.Error())
	}
	return typ
}

// Encode computes the double-keccak leaf hash of an AssetData tuple.
//
// It ABI-encodes (string, uint256, uint256, uint256) — symbol, price,
// timestamp, decimals widened to 256 bits — then hashes the encoded
// bytes twice. The double hash keeps a leaf from being confused with an
// internal node, since internal nodes are keccak256(left || right).
func Encode(data AssetData) ([32]byte, error) {
	var zero [32]byte

	decimals := new(big.Int).SetUint64(uint64(data.Decimals))
	encoded, err := leafArgs.Pack(data.Symbol, data.Price, data.Timestamp, decimals)
	if err != nil {
		return zero, err
	}

	inner := crypto.Keccak256(encoded)
	outer := crypto.Keccak256(inner)

	var out [32]byte
	copy(out[:], outer)
	return out, nil
}
