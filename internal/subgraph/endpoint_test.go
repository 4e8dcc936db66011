package subgraph

import (
	"errors"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveEndpointSupportedChains(t *testing.T) {
	const key = "k3y-123"

	for _, chainID := range SupportedChains() {
		t.Run(chainID, func(t *testing.T) {
			endpoint, err := ResolveEndpoint(chainID, key)
			require.NoError(t, err)

			assert.Equal(t, 1, strings.Count(endpoint, key))
			assert.NotContains(t, endpoint, APIKeyPlaceholder)

			parsed, err := url.Parse(endpoint)
			require.NoError(t, err)
			assert.Equal(t, "https", parsed.Scheme)
			assert.NotEmpty(t, parsed.Host)
		})
	}
}

func TestResolveEndpointDistinctPerChain(t *testing.T) {
	seen := make(map[string]string)
	for _, chainID := range SupportedChains() {
		endpoint, err := ResolveEndpoint(chainID, "key")
		require.NoError(t, err)
		if other, ok := seen[endpoint]; ok {
			t.Fatalf("chains %s and %s share endpoint %s", other, chainID, endpoint)
		}
		seen[endpoint] = chainID
	}
}

func TestSupportedChainsOrder(t *testing.T) {
	assert.Equal(t, []string{"1284", "1285", "8453"}, SupportedChains())
}

func TestResolveEndpointUnsupported(t *testing.T) {
	for _, chainID := range []string{"1", "56", "", "base", "12a", "-1284"} {
		t.Run(chainID, func(t *testing.T) {
			_, err := ResolveEndpoint(chainID, "key")
			require.Error(t, err)

			var cfgErr *ConfigurationError
			require.True(t, errors.As(err, &cfgErr))
			assert.Equal(t, chainID, cfgErr.ChainID)
			for _, supported := range SupportedChains() {
				assert.Contains(t, err.Error(), supported)
			}
		})
	}
}
