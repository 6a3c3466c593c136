package rpcclient

import "errors"

var (
	// ErrBalanceQueryFailed wraps any failure to read a gas balance.
	ErrBalanceQueryFailed = errors.New("rpcclient: balance query failed")

	// ErrSubmitFailed wraps any failure to build, sign or broadcast a
	// transaction.
	ErrSubmitFailed = errors.New("rpcclient: submit failed")
)
