package tagger

import (
	"context"

	"go.uber.org/zap"

	"marketTags/internal/model"
	"marketTags/internal/subgraph"
)

type fetchOptions struct {
	client      MarketQuerier
	logger      *zap.Logger
	startCursor uint64
}

// FetchOption configures FetchTags.
type FetchOption func(*fetchOptions)

// WithQuerier replaces the default subgraph client.
func WithQuerier(client MarketQuerier) FetchOption {
	return func(o *fetchOptions) {
		o.client = client
	}
}

func WithLogger(logger *zap.Logger) FetchOption {
	return func(o *fetchOptions) {
		o.logger = logger
	}
}

// WithStartCursor skips markets created at or before ts.
func WithStartCursor(ts uint64) FetchOption {
	return func(o *fetchOptions) {
		o.startCursor = ts
	}
}

// FetchTags resolves the subgraph for chainID, pages through all markets
// and returns their tags. It returns either the complete list or an error.
func FetchTags(ctx context.Context, chainID, apiKey string, opts ...FetchOption) ([]model.Tag, error) {
	o := fetchOptions{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = zap.NewNop()
	}
	if o.client == nil {
		o.client = subgraph.NewClient(subgraph.WithLogger(o.logger))
	}

	endpoint, err := ResolveEndpoint(o.logger, chainID, apiKey)
	if err != nil {
		return nil, err
	}

	runner := NewRunner(RunConfig{
		ChainID:     chainID,
		Endpoint:    endpoint,
		StartCursor: o.startCursor,
	}, o.client, o.logger)

	return runner.Run(ctx)
}

// ResolveEndpoint resolves the subgraph URL for chainID, logging and wrapping
// a configuration failure.
func ResolveEndpoint(logger *zap.Logger, chainID, apiKey string) (string, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	endpoint, err := subgraph.ResolveEndpoint(chainID, apiKey)
	if err != nil {
		return "", wrapFailure(logger, "resolve endpoint", err, zap.String("chain_id", chainID))
	}
	return endpoint, nil
}
