// Package pricefetcher provides the default price-source adapter: a
// plain HTTP/JSON client, built the same way the teacher's outbound
// subgraph client is built (stdlib net/http, context-aware Do, typed
// errors) since the corpus does not reach for an HTTP framework for
// outbound calls either.
package pricefetcher

import (
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// PriceQuote is one rate returned by the external price source for a
// requested pair.
type PriceQuote struct {
	Symbol    string
	Rate      *big.Int
	Timestamp *big.Int
	Decimals  uint8
}

// Fetcher fetches current rates for a set of trading pairs.
type Fetcher interface {
	Fetch(ctx context.Context, pairs []string) ([]PriceQuote, error)
}

// HTTPFetcher is the default Fetcher: a GET against a rate service
// that answers with a JSON array of quotes for the requested symbols.
type HTTPFetcher struct {
	endpoint string
	client   *http.Client
}

// New returns an HTTPFetcher against endpoint, with a bounded client
// timeout so a hung price source cannot stall a whole scheduler cycle.
func New(endpoint string) *HTTPFetcher {
	return &HTTPFetcher{
		endpoint: endpoint,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

type rateEntry struct {
	Symbol    string `json:"symbol"`
	Rate      string `json:"rate"`
	Timestamp int64  `json:"timestamp"`
	Decimals  uint8  `json:"decimals"`
}

// Fetch requests rates for pairs and maps the response into
// PriceQuote. A non-2xx response or malformed body is returned as an
// error; the scheduler aborts the whole cycle without mutating the
// store when that happens.
func (f *HTTPFetcher) Fetch(ctx context.Context, pairs []string) ([]PriceQuote, error) {
	u, err := url.Parse(f.endpoint)
	if err != nil {
		return nil, fmt.Errorf("pricefetcher: invalid endpoint: %w", err)
	}
	q := u.Query()
	q.Set("symbols", strings.Join(pairs, ","))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("pricefetcher: build request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: status %d", ErrFetchFailed, resp.StatusCode)
	}

	var entries []rateEntry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, fmt.Errorf("%w: decode response: %s", ErrFetchFailed, err)
	}

	quotes := make([]PriceQuote, 0, len(entries))
	for _, e := range entries {
		rate, ok := new(big.Int).SetString(e.Rate, 10)
		if !ok {
			return nil, fmt.Errorf("%w: invalid rate for %s: %q", ErrFetchFailed, e.Symbol, e.Rate)
		}
		quotes = append(quotes, PriceQuote{
			Symbol:    e.Symbol,
			Rate:      rate,
			Timestamp: big.NewInt(e.Timestamp),
			Decimals:  e.Decimals,
		})
	}

	return quotes, nil
}
