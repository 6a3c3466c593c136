package pricefetcher

import "errors"

// ErrFetchFailed wraps any failure to retrieve or parse rates from the
// price source.
var ErrFetchFailed = errors.New("pricefetcher: fetch failed")
