package registry

import "errors"

// ErrChainNotFound is returned when an operation names a chain id that
// has not been registered.
var ErrChainNotFound = errors.New("registry: chain not found")
