package registry

import (
	"testing"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func submitRootMethod(t *testing.T) abi.Method {
	t.Helper()
	bytes32, err := abi.NewType("bytes32", "", nil)
	require.NoError(t, err)

	return abi.NewMethod(
		"submitRoot",
		"submitRoot",
		abi.Function,
		"nonpayable",
		false,
		false,
		abi.Arguments{{Name: "root", Type: bytes32}},
		nil,
	)
}

func TestSubscribeUnknownChainFails(t *testing.T) {
	r := New()
	_, err := r.Subscribe(1, "0xabc", "", "0xcontract", submitRootMethod(t))
	assert.ErrorIs(t, err, ErrChainNotFound)
}

func TestSubscribeAndEnumerate(t *testing.T) {
	r := New()
	r.AddChain(1, "https://rpc.example", "mainnet")

	sub, err := r.Subscribe(1, "0xabc", "", "0xcontract", submitRootMethod(t))
	require.NoError(t, err)
	assert.NotEmpty(t, sub.ID)
	assert.True(t, sub.Active)

	chain, ok := r.Chain(1)
	require.True(t, ok)

	subs := chain.Subscriptions()
	require.Len(t, subs, 1)
	assert.Equal(t, sub.ID, subs[0].ID)
}

func TestDeactivateIsPermanentAndIdempotent(t *testing.T) {
	r := New()
	r.AddChain(1, "https://rpc.example", "mainnet")
	sub, err := r.Subscribe(1, "0xabc", "", "0xcontract", submitRootMethod(t))
	require.NoError(t, err)

	require.NoError(t, r.Deactivate(1, sub.ID))

	chain, _ := r.Chain(1)
	subs := chain.Subscriptions()
	require.Len(t, subs, 1)
	assert.False(t, subs[0].Active)

	// deactivating again is a no-op, not an error
	require.NoError(t, r.Deactivate(1, sub.ID))
}

func TestDeactivateUnknownChainFails(t *testing.T) {
	r := New()
	err := r.Deactivate(99, "whatever")
	assert.ErrorIs(t, err, ErrChainNotFound)
}

func TestSubscriptionCallDataPacksRoot(t *testing.T) {
	r := New()
	r.AddChain(1, "https://rpc.example", "mainnet")
	sub, err := r.Subscribe(1, "0xabc", "", "0xcontract", submitRootMethod(t))
	require.NoError(t, err)

	var root [32]byte
	root[0] = 0xAB

	data, err := sub.CallData(root)
	require.NoError(t, err)
	assert.Len(t, data, 4+32) // 4-byte selector + one bytes32 argument
}
