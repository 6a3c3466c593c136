// Package storage persists the chain registry and scheduler interval
// across restarts, using an embedded badger key-value store. Adapted
// from the teacher's internal/infra/storage/badger_client.go: same
// badger.DB wiring and lgr-to-badger logger bridge, repurposed from
// epoch snapshots to oracle registry state.
package storage

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/go-pkgz/lgr"
)

const (
	chainsKey   = "registry:chains"
	intervalKey = "scheduler:interval"
)

// SubscriptionRecord is the persisted shape of a registry.Subscription
// (the unexported ABI method is not persisted; the caller supplies the
// submitRoot method again when it rebuilds the subscription at load time).
type SubscriptionRecord struct {
	ID              string `json:"id"`
	ChainID         uint64 `json:"chain_id"`
	Address         string `json:"address"`
	RPC             string `json:"rpc"`
	Active          bool   `json:"active"`
	ContractAddress string `json:"contract_address"`
}

// ChainRecord is the persisted shape of a registry.Chain.
type ChainRecord struct {
	ChainID       uint64               `json:"chain_id"`
	RPC           string               `json:"rpc"`
	Name          string               `json:"name"`
	Subscriptions []SubscriptionRecord `json:"subscriptions"`
}

// Store wraps a badger database with the oracle's own key layout.
type Store struct {
	db     *badger.DB
	logger lgr.L
}

// Open opens (creating if absent) a badger database at dbPath.
func Open(logger lgr.L, dbPath string) (*Store, error) {
	opts := badger.DefaultOptions(dbPath)
	opts.Logger = newBadgerLogger(logger)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("storage: open badger database: %w", err)
	}

	return &Store{db: db, logger: logger}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveChains persists the full set of chains and their subscriptions.
func (s *Store) SaveChains(chains []ChainRecord) error {
	data, err := json.Marshal(chains)
	if err != nil {
		return fmt.Errorf("storage: marshal chains: %w", err)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(chainsKey), data)
	})
	if err != nil {
		return fmt.Errorf("storage: save chains: %w", err)
	}

	s.logger.Logf("INFO storage: saved %d chains", len(chains))
	return nil
}

// LoadChains returns the persisted chains, or (nil, false) if none
// have been saved yet.
func (s *Store) LoadChains() ([]ChainRecord, bool, error) {
	var chains []ChainRecord

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(chainsKey))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &chains)
		})
	})

	if err == badger.ErrKeyNotFound {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("storage: load chains: %w", err)
	}

	return chains, true, nil
}

// SaveInterval persists the scheduler's current tick interval.
func (s *Store) SaveInterval(d time.Duration) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(intervalKey), []byte(d.String()))
	})
	if err != nil {
		return fmt.Errorf("storage: save interval: %w", err)
	}
	return nil
}

// LoadInterval returns the persisted scheduler interval, or (0, false)
// if none has been saved yet.
func (s *Store) LoadInterval() (time.Duration, bool, error) {
	var raw string

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(intervalKey))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			raw = string(val)
			return nil
		})
	})

	if err == badger.ErrKeyNotFound {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("storage: load interval: %w", err)
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, false, fmt.Errorf("storage: invalid persisted interval %q: %w", raw, err)
	}
	return d, true, nil
}

// badgerLogger adapts lgr.L to badger's Logger interface.
type badgerLogger struct {
	lgr lgr.L
}

func newBadgerLogger(l lgr.L) *badgerLogger {
	return &badgerLogger{lgr: l}
}

func (l *badgerLogger) Errorf(format string, args ...interface{})   { l.lgr.Logf("ERROR "+format, args...) }
func (l *badgerLogger) Warningf(format string, args ...interface{}) { l.lgr.Logf("WARN "+format, args...) }
func (l *badgerLogger) Infof(format string, args ...interface{})    { l.lgr.Logf("INFO "+format, args...) }
func (l *badgerLogger) Debugf(format string, args ...interface{})   { l.lgr.Logf("DEBUG "+format, args...) }
