package publisher

import (
	"context"
	"math/big"
	"sync"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/go-pkgz/lgr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orally-network/price-oracle/internal/registry"
)

func submitRootMethod(t *testing.T) abi.Method {
	t.Helper()
	bytes32, err := abi.NewType("bytes32", "", nil)
	require.NoError(t, err)
	return abi.NewMethod("submitRoot", "submitRoot", abi.Function, "nonpayable", false, false,
		abi.Arguments{{Name: "root", Type: bytes32}}, nil)
}

type fakeRPC struct {
	mu          sync.Mutex
	balances    map[string]*big.Int
	submitCalls int
	submitErr   error
	balanceErr  error
}

func (f *fakeRPC) Balance(ctx context.Context, address, rpcURL string) (*big.Int, error) {
	if f.balanceErr != nil {
		return nil, f.balanceErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if b, ok := f.balances[address]; ok {
		return b, nil
	}
	return big.NewInt(0), nil
}

func (f *fakeRPC) Submit(ctx context.Context, rpcURL string, chainID uint64, contractAddress string, calldata []byte) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.submitCalls++
	if f.submitErr != nil {
		return "", f.submitErr
	}
	return "0xdeadbeef", nil
}

func TestPublishAllSkipsInactiveSubscriptions(t *testing.T) {
	reg := registry.New()
	reg.AddChain(1, "https://rpc", "test")
	sub, err := reg.Subscribe(1, "0xabc", "", "0xcontract", submitRootMethod(t))
	require.NoError(t, err)
	require.NoError(t, reg.Deactivate(1, sub.ID))

	rpc := &fakeRPC{}
	p := New(lgr.NoOp, reg, rpc, big.NewInt(1))

	var root [32]byte
	p.PublishAll(context.Background(), root)

	assert.Equal(t, 0, rpc.submitCalls)
}

func TestPublishAllDeactivatesOnInsufficientFunds(t *testing.T) {
	reg := registry.New()
	reg.AddChain(1, "https://rpc", "test")
	sub, err := reg.Subscribe(1, "0xabc", "", "0xcontract", submitRootMethod(t))
	require.NoError(t, err)

	rpc := &fakeRPC{balances: map[string]*big.Int{"0xabc": big.NewInt(0)}}
	p := New(lgr.NoOp, reg, rpc, big.NewInt(100))

	var root [32]byte
	p.PublishAll(context.Background(), root)

	assert.Equal(t, 0, rpc.submitCalls)

	chain, _ := reg.Chain(1)
	subs := chain.Subscriptions()
	require.Len(t, subs, 1)
	assert.False(t, subs[0].Active, "subscription must be permanently deactivated")
	_ = sub
}

func TestPublishAllSubmitsWhenFunded(t *testing.T) {
	reg := registry.New()
	reg.AddChain(1, "https://rpc", "test")
	_, err := reg.Subscribe(1, "0xabc", "", "0xcontract", submitRootMethod(t))
	require.NoError(t, err)

	rpc := &fakeRPC{balances: map[string]*big.Int{"0xabc": big.NewInt(1000)}}
	p := New(lgr.NoOp, reg, rpc, big.NewInt(100))

	var root [32]byte
	p.PublishAll(context.Background(), root)

	assert.Equal(t, 1, rpc.submitCalls)

	chain, _ := reg.Chain(1)
	subs := chain.Subscriptions()
	require.Len(t, subs, 1)
	assert.True(t, subs[0].Active)
}

func TestPublishAllSubmitFailureDoesNotDeactivate(t *testing.T) {
	reg := registry.New()
	reg.AddChain(1, "https://rpc", "test")
	_, err := reg.Subscribe(1, "0xabc", "", "0xcontract", submitRootMethod(t))
	require.NoError(t, err)

	rpc := &fakeRPC{
		balances:  map[string]*big.Int{"0xabc": big.NewInt(1000)},
		submitErr: assert.AnError,
	}
	p := New(lgr.NoOp, reg, rpc, big.NewInt(100))

	var root [32]byte
	p.PublishAll(context.Background(), root)

	chain, _ := reg.Chain(1)
	subs := chain.Subscriptions()
	require.Len(t, subs, 1)
	assert.True(t, subs[0].Active, "a failed submit is not the same as insufficient funds; no retry, next tick retries")
}
