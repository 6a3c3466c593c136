// Package registry owns the in-memory table of chains and their
// subscriptions, shared by the scheduler and the publisher. There is a
// single owner object, constructed at host init and passed explicitly
// to its collaborators; no package-level globals.
package registry

import (
	"fmt"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/google/uuid"
)

// Subscription is a standing order on one chain to receive each new
// committed root. Active is mutated only by the publisher, and only
// in the direction active -> inactive (insufficient funds); it stays
// disabled until an operator re-enables it out of band.
type Subscription struct {
	ID              string
	ChainID         uint64
	Address         string // caller-owned EVM address funding gas
	RPC             string // per-subscription RPC override, empty to use the chain's
	Active          bool
	ContractAddress string
	submitMethod    abi.Method
}

// CallData packs the calldata for submitting root to this
// subscription's contract, using its own ABI method.
func (s Subscription) CallData(root [32]byte) ([]byte, error) {
	data, err := s.submitMethod.Inputs.Pack(root)
	if err != nil {
		return nil, fmt.Errorf("registry: pack calldata for subscription %s: %w", s.ID, err)
	}
	return append(append([]byte{}, s.submitMethod.ID...), data...), nil
}

// Chain is one EVM-compatible target the oracle publishes roots to.
type Chain struct {
	ChainID uint64
	RPC     string
	Name    string

	mu            sync.Mutex
	subscriptions []*Subscription
}

// Subscriptions returns a snapshot of the chain's subscriptions. The
// returned slice is safe to range over without holding any lock.
func (c *Chain) Subscriptions() []Subscription {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Subscription, len(c.subscriptions))
	for i, s := range c.subscriptions {
		out[i] = *s
	}
	return out
}

// deactivate flips a subscription's active flag to false. It is a
// no-op if the subscription is unknown or already inactive.
func (c *Chain) deactivate(subscriptionID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, s := range c.subscriptions {
		if s.ID == subscriptionID {
			s.Active = false
			return
		}
	}
}

// Registry is the chain_id -> Chain table.
type Registry struct {
	mu     sync.RWMutex
	chains map[uint64]*Chain
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{chains: make(map[uint64]*Chain)}
}

// AddChain registers a chain. It replaces any chain already present
// under the same chain id.
func (r *Registry) AddChain(chainID uint64, rpc, name string) *Chain {
	r.mu.Lock()
	defer r.mu.Unlock()

	c := &Chain{ChainID: chainID, RPC: rpc, Name: name}
	r.chains[chainID] = c
	return c
}

// Chain returns the chain registered under chainID, if any.
func (r *Registry) Chain(chainID uint64) (*Chain, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.chains[chainID]
	return c, ok
}

// Chains returns every registered chain.
func (r *Registry) Chains() []*Chain {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Chain, 0, len(r.chains))
	for _, c := range r.chains {
		out = append(out, c)
	}
	return out
}

// Subscribe adds a new subscription to chainID's chain, minting a
// fresh subscription id. It fails if the chain is not registered.
func (r *Registry) Subscribe(chainID uint64, address, rpc, contractAddress string, submitMethod abi.Method) (*Subscription, error) {
	r.mu.RLock()
	c, ok := r.chains[chainID]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrChainNotFound, chainID)
	}

	sub := &Subscription{
		ID:              uuid.NewString(),
		ChainID:         chainID,
		Address:         address,
		RPC:             rpc,
		Active:          true,
		ContractAddress: contractAddress,
		submitMethod:    submitMethod,
	}

	c.mu.Lock()
	c.subscriptions = append(c.subscriptions, sub)
	c.mu.Unlock()

	return sub, nil
}

// Deactivate flips a subscription's active flag to false permanently,
// guarding the enumeration + mutation under the chain's mutex so a
// concurrent read of Subscriptions never observes a torn update.
func (r *Registry) Deactivate(chainID uint64, subscriptionID string) error {
	r.mu.RLock()
	c, ok := r.chains[chainID]
	r.mu.RUnlock()
	if !ok {
		return fmt.Errorf("%w: %d", ErrChainNotFound, chainID)
	}

	c.deactivate(subscriptionID)
	return nil
}
