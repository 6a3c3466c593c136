// Package merkletree implements the two-phase-commit Merkle store that
// backs each oracle snapshot: a batch of leaves is staged, the staged
// root is recomputed on every stage, and only an explicit Commit
// advances the root that proofs are verified against.
package merkletree

import (
	"fmt"
	"sync"

	"github.com/ethereum/go-ethereum/crypto"

	"github.com/orally-network/price-oracle/internal/leaf"
)

// Store is the authenticated snapshot of AssetData currently staged
// (and, separately, last committed) by the oracle. All operations are
// safe for concurrent use: the scheduler mutates the store from one
// goroutine while the API layer reads it from others.
type Store struct {
	mu sync.RWMutex

	leaves        [][32]byte
	dataBySymbol  map[string]leaf.AssetData
	indexBySymbol map[string]int

	hasUncommittedRoot bool
	uncommittedRoot    [32]byte

	hasCommittedRoot bool
	committedRoot    [32]byte
}

// New returns an empty store.
func New() *Store {
	return &Store{
		dataBySymbol:  make(map[string]leaf.AssetData),
		indexBySymbol: make(map[string]int),
	}
}

// AddBatch stages a batch of asset data. The batch is applied
// atomically: if any symbol in it duplicates another symbol already in
// the batch or already staged, the whole call is rejected and the
// store is left exactly as it was (I1, I5).
func (s *Store) AddBatch(batch []leaf.AssetData) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[string]struct{}, len(batch))
	for _, data := range batch {
		if _, dup := seen[data.Symbol]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicateSymbol, data.Symbol)
		}
		if _, staged := s.indexBySymbol[data.Symbol]; staged {
			return fmt.Errorf("%w: %s", ErrDuplicateSymbol, data.Symbol)
		}
		seen[data.Symbol] = struct{}{}
	}

	newLeaves := make([][32]byte, 0, len(batch))
	for _, data := range batch {
		h, err := leaf.Encode(data)
		if err != nil {
			return fmt.Errorf("merkletree: encode leaf for %s: %w", data.Symbol, err)
		}
		newLeaves = append(newLeaves, h)
	}

	for i, data := range batch {
		index := len(s.leaves) + i
		s.dataBySymbol[data.Symbol] = data
		s.indexBySymbol[data.Symbol] = index
	}
	s.leaves = append(s.leaves, newLeaves...)

	s.recomputeUncommittedRoot()
	return nil
}

// Commit advances the committed root to the current uncommitted root.
// It fails if nothing has been staged since the store was created or
// last cleared.
func (s *Store) Commit() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.hasUncommittedRoot {
		return ErrEmptyCommit
	}
	s.committedRoot = s.uncommittedRoot
	s.hasCommittedRoot = true
	return nil
}

// Clear resets the store to empty: no leaves, no staged or committed
// root. It may be called from any state.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.leaves = nil
	s.dataBySymbol = make(map[string]leaf.AssetData)
	s.indexBySymbol = make(map[string]int)
	s.hasUncommittedRoot = false
	s.hasCommittedRoot = false
}

// Get returns the staged AssetData for a symbol, if any.
func (s *Store) Get(symbol string) (leaf.AssetData, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.dataBySymbol[symbol]
	return data, ok
}

// Root returns the last committed root.
func (s *Store) Root() ([32]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.committedRoot, s.hasCommittedRoot
}

// UncommittedRoot returns the root over the currently staged leaves.
func (s *Store) UncommittedRoot() ([32]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.uncommittedRoot, s.hasUncommittedRoot
}

// Len reports how many symbols are currently staged.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.leaves)
}

// Prove returns the Merkle proof for symbol: the sibling hashes along
// the path from its leaf to the root, in bottom-up order. The proof
// does not encode the leaf's index; Verify recovers it independently.
func (s *Store) Prove(symbol string) ([][32]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	index, ok := s.indexBySymbol[symbol]
	if !ok {
		return nil, false
	}

	var proof [][32]byte
	levelSize := len(s.leaves)
	level := s.leaves
	idx := index

	for levelSize > 1 {
		if idx%2 == 0 {
			if idx+1 < levelSize {
				proof = append(proof, level[idx+1])
			}
			// odd node out: promoted unchanged, no sibling to record
		} else {
			proof = append(proof, level[idx-1])
		}

		level = nextLevel(level)
		levelSize = len(level)
		idx /= 2
	}

	return proof, true
}

// Verify checks a proof for symbol against root, recomputing the leaf
// from the store's own staged AssetData and walking the proof using
// the store's current leaf count to reproduce the same promotion
// pattern Prove used to build it. It returns (false, false) if symbol
// is not currently staged.
func (s *Store) Verify(proof [][32]byte, root [32]byte, symbol string) (bool, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	index, ok := s.indexBySymbol[symbol]
	if !ok {
		return false, false
	}
	data := s.dataBySymbol[symbol]

	current, err := leaf.Encode(data)
	if err != nil {
		return false, true
	}

	levelSize := len(s.leaves)
	idx := index
	pos := 0

	for levelSize > 1 {
		if idx%2 == 0 {
			if idx+1 < levelSize {
				if pos >= len(proof) {
					return false, true
				}
				current = hashPair(current, proof[pos])
				pos++
			}
		} else {
			if pos >= len(proof) {
				return false, true
			}
			current = hashPair(proof[pos], current)
			pos++
		}

		levelSize = (levelSize + 1) / 2
		idx /= 2
	}

	return current == root && pos == len(proof), true
}

func (s *Store) recomputeUncommittedRoot() {
	if len(s.leaves) == 0 {
		s.hasUncommittedRoot = false
		return
	}

	level := s.leaves
	for len(level) > 1 {
		level = nextLevel(level)
	}

	s.uncommittedRoot = level[0]
	s.hasUncommittedRoot = true
}

// nextLevel builds the next level up from the given level: adjacent
// pairs are hashed together, and an unpaired trailing node is promoted
// unchanged rather than padded against a duplicate.
func nextLevel(level [][32]byte) [][32]byte {
	next := make([][32]byte, 0, (len(level)+1)/2)
	for i := 0; i < len(level); i += 2 {
		if i+1 < len(level) {
			next = append(next, hashPair(level[i], level[i+1]))
		} else {
			next = append(next, level[i])
		}
	}
	return next
}

func hashPair(left, right [32]byte) [32]byte {
	buf := make([]byte, 0, 64)
	buf = append(buf, left[:]...)
	buf = append(buf, right[:]...)
	var out [32]byte
	copy(out[:], crypto.Keccak256(buf))
	return out
}
