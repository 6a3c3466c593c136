package merkletree

import "errors"

var (
	// ErrDuplicateSymbol is returned by AddBatch when a symbol appears
	// more than once within the batch, or already has a staged leaf.
	// The whole batch is rejected; the store's pre-call state is kept.
	ErrDuplicateSymbol = errors.New("merkletree: duplicate symbol in batch")

	// ErrEmptyCommit is returned by Commit when there is no staged data
	// to promote to the committed root.
	ErrEmptyCommit = errors.New("merkletree: nothing staged to commit")
)
