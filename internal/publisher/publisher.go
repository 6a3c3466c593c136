// Package publisher dispatches a newly staged root to every active
// subscription on every registered chain: a gas balance check, a
// signed submission, and permanent deactivation on insufficient funds.
// Grounded in original_source/src/pythia/src/notify.rs's per-
// subscription dispatch, with the gas pre-check added per the
// specification (the teacher's SubsidizerClient never checks balance
// before submitting).
package publisher

import (
	"context"
	"math/big"
	"sync"

	"github.com/go-pkgz/lgr"

	"github.com/orally-network/price-oracle/internal/registry"
)

// RPCClient is the external collaborator a Publisher submits through:
// a gas-balance query and a signed submission, per chain.
type RPCClient interface {
	Balance(ctx context.Context, address, rpcURL string) (*big.Int, error)
	Submit(ctx context.Context, rpcURL string, chainID uint64, contractAddress string, calldata []byte) (string, error)
}

// Publisher notifies every active subscription across the registry
// that a new root has been staged.
type Publisher struct {
	logger       lgr.L
	registry     *registry.Registry
	rpc          RPCClient
	minBalance   *big.Int
	onDeactivate func()
}

// New returns a Publisher. minBalance is the gas balance, in wei,
// below which a subscription is considered insufficiently funded and
// deactivated rather than attempted.
func New(logger lgr.L, reg *registry.Registry, rpc RPCClient, minBalance *big.Int) *Publisher {
	return &Publisher{logger: logger, registry: reg, rpc: rpc, minBalance: minBalance}
}

// SetOnDeactivate registers a callback invoked synchronously right
// after a subscription is permanently deactivated, so the caller can
// persist the registry's new state without waiting for shutdown.
func (p *Publisher) SetOnDeactivate(fn func()) {
	p.onDeactivate = fn
}

// PublishAll dispatches root to every active subscription of every
// registered chain, concurrently, and waits for every dispatch to
// finish before returning — so the scheduler can commit immediately
// after, reflecting a completed (not merely started) publication pass.
func (p *Publisher) PublishAll(ctx context.Context, root [32]byte) {
	var wg sync.WaitGroup

	for _, chain := range p.registry.Chains() {
		for _, sub := range chain.Subscriptions() {
			if !sub.Active {
				p.logger.Logf("INFO publisher: subscription %s on chain %d is not active, skipping", sub.ID, sub.ChainID)
				continue
			}

			wg.Add(1)
			go func(chain *registry.Chain, sub registry.Subscription) {
				defer wg.Done()
				p.publishOne(ctx, chain, sub, root)
			}(chain, sub)
		}
	}

	wg.Wait()
}

func (p *Publisher) publishOne(ctx context.Context, chain *registry.Chain, sub registry.Subscription, root [32]byte) {
	rpcURL := sub.RPC
	if rpcURL == "" {
		rpcURL = chain.RPC
	}

	balance, err := p.rpc.Balance(ctx, sub.Address, rpcURL)
	if err != nil {
		p.logger.Logf("ERROR publisher: balance query failed for subscription %s: %v", sub.ID, err)
		return
	}

	if balance.Cmp(p.minBalance) < 0 {
		p.logger.Logf("WARN publisher: subscription %s has insufficient funds (%s < %s), deactivating",
			sub.ID, balance.String(), p.minBalance.String())
		if err := p.registry.Deactivate(sub.ChainID, sub.ID); err != nil {
			p.logger.Logf("ERROR publisher: failed to deactivate subscription %s: %v", sub.ID, err)
		} else if p.onDeactivate != nil {
			p.onDeactivate()
		}
		return
	}

	calldata, err := sub.CallData(root)
	if err != nil {
		p.logger.Logf("ERROR publisher: failed to build calldata for subscription %s: %v", sub.ID, err)
		return
	}

	txHash, err := p.rpc.Submit(ctx, rpcURL, sub.ChainID, sub.ContractAddress, calldata)
	if err != nil {
		p.logger.Logf("ERROR publisher: submit failed for subscription %s: %v", sub.ID, err)
		return
	}

	p.logger.Logf("INFO publisher: subscription %s notified, tx %s", sub.ID, txHash)
}
