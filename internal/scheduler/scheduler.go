// Package scheduler drives one cooperative snapshot cycle per tick:
// fetch → clear → stage → publish → commit. Hot interval
// reconfiguration restarts the underlying ticker without losing the
// running cycle. Grounded in
// original_source/src/sybil/src/timer.rs's fetch_prices_and_send_transactions
// and the teacher's single-goroutine, ticker-driven scheduler shape.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/orally-network/price-oracle/internal/leaf"
	"github.com/orally-network/price-oracle/internal/merkletree"
	"github.com/orally-network/price-oracle/internal/pricefetcher"
	"github.com/orally-network/price-oracle/internal/publisher"
)

// Scheduler is the periodic driver for one oracle snapshot cycle.
type Scheduler struct {
	store     *merkletree.Store
	fetcher   pricefetcher.Fetcher
	publisher *publisher.Publisher
	pairs     []string
	logger    lgr.L

	mu       sync.Mutex
	interval time.Duration
	ticker   *time.Ticker
	running  bool
	resetCh  chan struct{}
}

// New returns a Scheduler that, on every tick, fetches pairs and
// stages, publishes and commits the resulting snapshot.
func New(
	store *merkletree.Store,
	fetcher pricefetcher.Fetcher,
	pub *publisher.Publisher,
	pairs []string,
	interval time.Duration,
	logger lgr.L,
) *Scheduler {
	return &Scheduler{
		store:     store,
		fetcher:   fetcher,
		publisher: pub,
		pairs:     pairs,
		interval:  interval,
		logger:    logger,
		resetCh:   make(chan struct{}, 1),
	}
}

// Start runs an initial cycle immediately, then one cycle per tick,
// until ctx is cancelled. It blocks the calling goroutine; callers
// that want the scheduler to run in the background should call it
// with `go`.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return ErrAlreadyRunning
	}
	s.running = true
	s.ticker = time.NewTicker(s.interval)
	s.mu.Unlock()

	s.runCycle(ctx)

	for {
		s.mu.Lock()
		ticker := s.ticker
		s.mu.Unlock()

		select {
		case <-ctx.Done():
			ticker.Stop()
			s.mu.Lock()
			s.running = false
			s.mu.Unlock()
			return nil
		case <-s.resetCh:
			continue
		case <-ticker.C:
			s.runCycle(ctx)
		}
	}
}

// SetInterval hot-reconfigures the tick period: the current ticker is
// replaced under lock and the running loop is nudged to pick up the
// new one without missing a cycle.
func (s *Scheduler) SetInterval(d time.Duration) {
	s.mu.Lock()
	s.interval = d
	old := s.ticker
	if old != nil {
		s.ticker = time.NewTicker(d)
	}
	s.mu.Unlock()

	if old != nil {
		old.Stop()
	}

	select {
	case s.resetCh <- struct{}{}:
	default:
	}
}

func (s *Scheduler) runCycle(ctx context.Context) {
	quotes, err := s.fetcher.Fetch(ctx, s.pairs)
	if err != nil {
		// A fetch failure aborts the whole cycle before
		// any mutation — clear/add_batch/commit are never reached, so
		// the prior committed root is untouched.
		s.logger.Logf("ERROR scheduler: fetch failed, aborting cycle: %v", err)
		return
	}

	batch := make([]leaf.AssetData, 0, len(quotes))
	for _, q := range quotes {
		batch = append(batch, leaf.AssetData{
			Symbol:    q.Symbol,
			Price:     q.Rate,
			Timestamp: q.Timestamp,
			Decimals:  q.Decimals,
		})
	}

	s.store.Clear()
	if err := s.store.AddBatch(batch); err != nil {
		s.logger.Logf("ERROR scheduler: staging batch failed, aborting cycle: %v", err)
		return
	}

	root, ok := s.store.UncommittedRoot()
	if !ok {
		s.logger.Logf("WARN scheduler: no uncommitted root after staging, aborting cycle")
		return
	}

	// Known race (Q1): publication is awaited, but on-chain inclusion
	// is not — commit happens right after submission, not after
	// confirmation.
	s.publisher.PublishAll(ctx, root)

	if err := s.store.Commit(); err != nil {
		s.logger.Logf("ERROR scheduler: commit failed: %v", err)
	}
}
