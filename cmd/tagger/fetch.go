package main

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"marketTags/internal/chain"
	"marketTags/internal/config"
	"marketTags/internal/logging"
	"marketTags/internal/storage"
	"marketTags/internal/storage/postgres"
	"marketTags/internal/subgraph"
	"marketTags/internal/tagger"
)

// subgraphHTTPClient overrides the transport used for subgraph queries.
var subgraphHTTPClient *http.Client

func runFetch(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadFetch(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := logging.New(logging.Options{
		Level:      cfg.LogLevel,
		File:       cfg.LogFile,
		MaxSizeMB:  cfg.LogMaxSizeMB,
		MaxBackups: cfg.LogMaxBackups,
		MaxAgeDays: cfg.LogMaxAgeDays,
	})
	if err != nil {
		return err
	}
	defer logger.Sync()

	if cfg.ChainID == "" {
		return fmt.Errorf("chain id is required")
	}
	if cfg.APIKey == "" {
		return fmt.Errorf("api key is required")
	}
	if cfg.Out == "" && cfg.PGDSN == "" {
		return fmt.Errorf("either an output path or a pg dsn is required")
	}

	since, err := config.ParseTimestamp(cfg.Since)
	if err != nil {
		return fmt.Errorf("parse since: %w", err)
	}

	endpoint, err := tagger.ResolveEndpoint(logger, cfg.ChainID, cfg.APIKey)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.RPCURL != "" {
		if err := verifyChain(ctx, cfg.RPCURL, cfg.ChainID); err != nil {
			return err
		}
	}

	var sinks storage.MultiStorage
	if cfg.Out != "" {
		// A checkpointed run only fetches new markets, so earlier output is kept.
		appendMode := cfg.Append || cfg.CheckpointEnabled
		fileSink, err := storage.NewFileStorage(storage.Format(cfg.Format), cfg.Out, appendMode)
		if err != nil {
			return err
		}
		sinks = append(sinks, fileSink)
	}

	var store *postgres.Store
	if cfg.PGDSN != "" {
		store, err = postgres.NewStore(ctx, cfg.PGDSN)
		if err != nil {
			return fmt.Errorf("connect postgres: %w", err)
		}
		defer store.Close()

		if err := store.EnsureSchema(ctx); err != nil {
			return err
		}
		sinks = append(sinks, store)
	}

	var cursorStore tagger.CursorStore
	if cfg.CheckpointEnabled {
		if store != nil {
			cursorStore = &tagger.DBCursorStore{Store: store, ChainID: cfg.ChainID}
		} else {
			cursorStore = &tagger.FileCursorStore{Path: cfg.Checkpoint, ChainID: cfg.ChainID}
		}
	}

	client := subgraph.NewClient(
		subgraph.WithHTTPClient(subgraphHTTPClient),
		subgraph.WithTimeout(cfg.Timeout),
		subgraph.WithLogger(logger),
	)
	runner := tagger.NewRunner(tagger.RunConfig{
		ChainID:     cfg.ChainID,
		Endpoint:    endpoint,
		StartCursor: since,
		CursorStore: cursorStore,
	}, client, logger)

	logger.Info("fetch start",
		zap.String("chain_id", cfg.ChainID),
		zap.String("endpoint", redactKey(endpoint, cfg.APIKey)),
		zap.Uint64("since", since),
		zap.String("out", cfg.Out),
		zap.String("format", cfg.Format),
		zap.String("pg_dsn", redactDSN(cfg.PGDSN)),
		zap.Bool("checkpoint_enabled", cfg.CheckpointEnabled),
	)

	tags, err := runner.Run(ctx)
	if err != nil {
		return err
	}

	if err := sinks.PutTags(ctx, tags); err != nil {
		return fmt.Errorf("store tags: %w", err)
	}

	if err := runner.SaveCursor(ctx); err != nil {
		return err
	}

	logger.Info("tags written",
		zap.Int("tags", len(tags)),
		zap.Int("pages", runner.Pages()),
		zap.Uint64("cursor", runner.Cursor()),
	)

	return nil
}

func verifyChain(ctx context.Context, rpcURL, chainID string) error {
	chainClient, err := chain.NewClient(ctx, rpcURL)
	if err != nil {
		return fmt.Errorf("connect rpc: %w", err)
	}
	defer chainClient.Close()

	return chainClient.VerifyChainID(ctx, chainID)
}

func redactKey(endpoint, key string) string {
	if key == "" {
		return endpoint
	}
	redacted := strings.ReplaceAll(endpoint, key, "***")
	return strings.ReplaceAll(redacted, url.PathEscape(key), "***")
}

func redactDSN(dsn string) string {
	if dsn == "" {
		return dsn
	}
	return "***"
}
