package subgraph

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryMarkets(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))

		var req graphQLRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, marketsQuery, req.Query)
		assert.EqualValues(t, 1700000000, req.Variables["lastTimestamp"])

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":{"markets":[
			{"outputToken":{"id":"0xAAA","name":"Moonwell GLMR","symbol":"mGLMR"},"createdTimestamp":"1700000100"},
			{"outputToken":{"id":"0xBBB","name":"Moonwell USDC","symbol":"mUSDC"},"createdTimestamp":"1700000200"}
		]}}`))
	}))
	defer server.Close()

	client := NewClient()
	markets, err := client.QueryMarkets(context.Background(), server.URL, 1700000000)
	require.NoError(t, err)
	require.Len(t, markets, 2)

	assert.Equal(t, "0xAAA", markets[0].OutputToken.ID)
	assert.Equal(t, "mUSDC", markets[1].OutputToken.Symbol)
	assert.EqualValues(t, 1700000200, markets[1].CreatedTimestamp)
}

func TestQueryMarketsEmptyPage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":{"markets":[]}}`))
	}))
	defer server.Close()

	markets, err := NewClient().QueryMarkets(context.Background(), server.URL, 0)
	require.NoError(t, err)
	assert.Empty(t, markets)
}

func TestQueryMarketsHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream exploded", http.StatusInternalServerError)
	}))
	defer server.Close()

	markets, err := NewClient().QueryMarkets(context.Background(), server.URL, 0)
	require.Error(t, err)
	assert.Nil(t, markets)

	var remoteErr *RemoteError
	require.True(t, errors.As(err, &remoteErr))
	assert.Equal(t, http.StatusInternalServerError, remoteErr.StatusCode)
	assert.Equal(t, []string{"upstream exploded"}, remoteErr.Messages)
}

func TestQueryMarketsGraphQLErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"errors":[{"message":"indexing error"},{"message":"store error"}]}`))
	}))
	defer server.Close()

	_, err := NewClient().QueryMarkets(context.Background(), server.URL, 0)
	require.Error(t, err)

	var remoteErr *RemoteError
	require.True(t, errors.As(err, &remoteErr))
	assert.Equal(t, []string{"indexing error", "store error"}, remoteErr.Messages)
	assert.Contains(t, err.Error(), "indexing error; store error")
}

func TestQueryMarketsMissingData(t *testing.T) {
	for name, body := range map[string]string{
		"no data":    `{}`,
		"no markets": `{"data":{}}`,
		"null data":  `{"data":null,"errors":[]}`,
	} {
		t.Run(name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(body))
			}))
			defer server.Close()

			_, err := NewClient().QueryMarkets(context.Background(), server.URL, 0)
			var remoteErr *RemoteError
			require.True(t, errors.As(err, &remoteErr))
		})
	}
}

func TestQueryMarketsInvalidJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>gateway</html>`))
	}))
	defer server.Close()

	_, err := NewClient().QueryMarkets(context.Background(), server.URL, 0)
	var remoteErr *RemoteError
	require.True(t, errors.As(err, &remoteErr))
	assert.Error(t, remoteErr.Unwrap())
}

func TestQueryMarketsTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	_, err := NewClient().QueryMarkets(context.Background(), url, 0)
	var remoteErr *RemoteError
	require.True(t, errors.As(err, &remoteErr))
	assert.Zero(t, remoteErr.StatusCode)
	assert.Error(t, errors.Unwrap(err))
}

func TestQueryRequestsPageSize(t *testing.T) {
	assert.Contains(t, marketsQuery, fmt.Sprintf("first: %d", PageSize))
	assert.Equal(t, 1, strings.Count(marketsQuery, "first:"))
}

func TestWithTimeoutLeavesCallerClientAlone(t *testing.T) {
	custom := &http.Client{Timeout: time.Minute}

	for name, opts := range map[string][]Option{
		"timeout after client":  {WithHTTPClient(custom), WithTimeout(5 * time.Second)},
		"timeout before client": {WithTimeout(5 * time.Second), WithHTTPClient(custom)},
	} {
		t.Run(name, func(t *testing.T) {
			client := NewClient(opts...)
			assert.Equal(t, 5*time.Second, client.http.Timeout)
			assert.Equal(t, time.Minute, custom.Timeout)
			assert.NotSame(t, custom, client.http)
		})
	}
}

func TestNewClientDefaultTimeout(t *testing.T) {
	assert.Equal(t, DefaultTimeout, NewClient().http.Timeout)

	custom := &http.Client{}
	assert.Same(t, custom, NewClient(WithHTTPClient(custom)).http)
}
