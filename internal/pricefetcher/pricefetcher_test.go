package pricefetcher

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchParsesQuotes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "BTC/USD,ETH/USD", r.URL.Query().Get("symbols"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"symbol":"BTC/USD","rate":"45000","timestamp":1000000,"decimals":2},
			{"symbol":"ETH/USD","rate":"3000","timestamp":1000000,"decimals":2}
		]`))
	}))
	defer server.Close()

	f := New(server.URL)
	quotes, err := f.Fetch(context.Background(), []string{"BTC/USD", "ETH/USD"})
	require.NoError(t, err)
	require.Len(t, quotes, 2)
	assert.Equal(t, "BTC/USD", quotes[0].Symbol)
	assert.Equal(t, int64(45000), quotes[0].Rate.Int64())
}

func TestFetchNonOKStatusIsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	f := New(server.URL)
	_, err := f.Fetch(context.Background(), []string{"BTC/USD"})
	assert.ErrorIs(t, err, ErrFetchFailed)
}

func TestFetchMalformedBodyIsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer server.Close()

	f := New(server.URL)
	_, err := f.Fetch(context.Background(), []string{"BTC/USD"})
	assert.ErrorIs(t, err, ErrFetchFailed)
}
