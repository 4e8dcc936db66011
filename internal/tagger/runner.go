package tagger

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"marketTags/internal/model"
	"marketTags/internal/subgraph"
)

// MarketQuerier fetches one page of markets created after lastTimestamp.
type MarketQuerier interface {
	QueryMarkets(ctx context.Context, endpoint string, lastTimestamp uint64) ([]model.Market, error)
}

// RunConfig holds runtime settings for a tagging run.
type RunConfig struct {
	ChainID     string
	Endpoint    string
	StartCursor uint64
	CursorStore CursorStore
}

// Runner pages through subgraph markets and turns them into tags.
type Runner struct {
	cfg    RunConfig
	client MarketQuerier
	logger *zap.Logger
	cursor uint64
	pages  int
}

// NewRunner builds a Runner with its dependencies.
func NewRunner(cfg RunConfig, client MarketQuerier, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{
		cfg:    cfg,
		client: client,
		logger: logger,
		cursor: cfg.StartCursor,
	}
}

// Run fetches every page and returns the accepted tags in arrival order.
// Any failure aborts the run and no tags are returned.
func (r *Runner) Run(ctx context.Context) ([]model.Tag, error) {
	if r.client == nil {
		return nil, fmt.Errorf("subgraph client is nil")
	}
	if r.cfg.Endpoint == "" {
		return nil, fmt.Errorf("endpoint is required")
	}

	if err := r.resumeCursor(ctx); err != nil {
		return nil, err
	}

	tags := make([]model.Tag, 0)
	var skipped int
	for {
		select {
		case <-ctx.Done():
			return nil, wrapFailure(r.logger, "fetch markets", ctx.Err(), zap.String("chain_id", r.cfg.ChainID))
		default:
		}

		markets, err := r.client.QueryMarkets(ctx, r.cfg.Endpoint, r.cursor)
		if err != nil {
			return nil, wrapFailure(r.logger, "fetch markets", err,
				zap.String("chain_id", r.cfg.ChainID),
				zap.Uint64("cursor", r.cursor),
				zap.Int("page", r.pages+1),
			)
		}
		r.pages++

		for _, market := range markets {
			if err := ValidateSymbol(market.OutputToken.Symbol); err != nil {
				skipped++
				r.logger.Warn("skip market",
					zap.String("token", market.OutputToken.ID),
					zap.String("symbol", market.OutputToken.Symbol),
					zap.Error(err),
				)
				continue
			}
			tags = append(tags, BuildTag(r.cfg.ChainID, market))
		}

		prev := r.cursor
		if maxTs := maxTimestamp(markets); maxTs > r.cursor {
			r.cursor = maxTs
		}

		r.logger.Info("page complete",
			zap.Int("page", r.pages),
			zap.Int("markets", len(markets)),
			zap.Uint64("cursor", r.cursor),
		)

		if len(markets) < subgraph.PageSize {
			break
		}
		if r.cursor == prev {
			err := &subgraph.RemoteError{
				Op:       "paginate markets",
				Messages: []string{fmt.Sprintf("full page did not advance cursor past %d", prev)},
			}
			return nil, wrapFailure(r.logger, "fetch markets", err, zap.String("chain_id", r.cfg.ChainID))
		}
	}

	r.logger.Info("fetch complete",
		zap.String("chain_id", r.cfg.ChainID),
		zap.Int("pages", r.pages),
		zap.Int("tags", len(tags)),
		zap.Int("skipped", skipped),
		zap.Uint64("cursor", r.cursor),
	)

	return tags, nil
}

// Cursor returns the timestamp watermark reached so far.
func (r *Runner) Cursor() uint64 {
	return r.cursor
}

// Pages returns the number of queries that completed.
func (r *Runner) Pages() int {
	return r.pages
}

// SaveCursor persists the reached cursor. Call it only after the tags
// returned by Run have been stored.
func (r *Runner) SaveCursor(ctx context.Context) error {
	if r.cfg.CursorStore == nil {
		return nil
	}
	if err := r.cfg.CursorStore.Save(ctx, r.cursor); err != nil {
		return fmt.Errorf("save cursor: %w", err)
	}
	return nil
}

func (r *Runner) resumeCursor(ctx context.Context) error {
	if r.cfg.CursorStore == nil {
		return nil
	}
	last, ok, err := r.cfg.CursorStore.Load(ctx)
	if err != nil {
		return fmt.Errorf("load cursor: %w", err)
	}
	if ok && last > r.cursor {
		r.cursor = last
		r.logger.Info("resume from checkpoint", zap.Uint64("cursor", last))
	}
	return nil
}

func maxTimestamp(markets []model.Market) uint64 {
	var max uint64
	for _, market := range markets {
		if ts := uint64(market.CreatedTimestamp); ts > max {
			max = ts
		}
	}
	return max
}
