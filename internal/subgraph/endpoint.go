package subgraph

import (
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// APIKeyPlaceholder marks where the access key goes in an endpoint template.
const APIKeyPlaceholder = "[api-key]"

var endpointTemplates = map[string]string{
	"1284": "https://gateway.thegraph.com/api/" + APIKeyPlaceholder + "/subgraphs/name/messari/moonwell-moonbeam",
	"1285": "https://gateway.thegraph.com/api/" + APIKeyPlaceholder + "/subgraphs/name/messari/moonwell-moonriver",
	"8453": "https://gateway.thegraph.com/api/" + APIKeyPlaceholder + "/subgraphs/name/messari/moonwell-base",
}

// SupportedChains returns the known chain ids in ascending order.
func SupportedChains() []string {
	ids := make([]string, 0, len(endpointTemplates))
	for id := range endpointTemplates {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		a, _ := strconv.ParseUint(ids[i], 10, 64)
		b, _ := strconv.ParseUint(ids[j], 10, 64)
		return a < b
	})
	return ids
}

// EndpointTemplate returns the unresolved endpoint for a chain id.
func EndpointTemplate(chainID string) (string, bool) {
	tpl, ok := endpointTemplates[chainID]
	return tpl, ok
}

// ResolveEndpoint returns the subgraph URL for chainID with apiKey filled in.
func ResolveEndpoint(chainID, apiKey string) (string, error) {
	if _, err := strconv.ParseUint(chainID, 10, 64); err != nil {
		return "", &ConfigurationError{
			ChainID:   chainID,
			Reason:    "is not a valid numeric chain id",
			Supported: SupportedChains(),
		}
	}

	tpl, ok := EndpointTemplate(chainID)
	if !ok {
		return "", &ConfigurationError{
			ChainID:   chainID,
			Reason:    "is not supported",
			Supported: SupportedChains(),
		}
	}

	return strings.Replace(tpl, APIKeyPlaceholder, url.PathEscape(apiKey), 1), nil
}
