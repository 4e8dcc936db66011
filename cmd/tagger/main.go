package main

import (
	"os"
	"time"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "tagger",
		Short:        "Moonwell market token tagger",
		SilenceUsage: true,
	}

	root.PersistentFlags().String("config", "", "config file path")

	fetchCmd := &cobra.Command{
		Use:   "fetch",
		Short: "Fetch markets from the subgraph and write public name tags",
		Args:  cobra.NoArgs,
		RunE:  runFetch,
	}

	fetchCmd.Flags().String("chain-id", "", "chain id, one of the ids listed by the chains command")
	fetchCmd.Flags().String("api-key", "", "subgraph gateway API key")
	fetchCmd.Flags().String("out", "./data/tags.jsonl", "output file path, empty to disable")
	fetchCmd.Flags().String("format", "jsonl", "output format (jsonl, csv)")
	fetchCmd.Flags().Bool("append", false, "append to the output file instead of replacing it (implied by --checkpoint-enabled)")
	fetchCmd.Flags().String("pg-dsn", "", "Postgres DSN, also stores the checkpoint when enabled")
	fetchCmd.Flags().String("since", "", "only markets created after this timestamp (unix seconds or RFC3339)")
	fetchCmd.Flags().String("checkpoint", "./data/checkpoint.json", "checkpoint file path")
	fetchCmd.Flags().Bool("checkpoint-enabled", false, "resume from and save the cursor after a successful run")
	fetchCmd.Flags().String("rpc", "", "optional EVM RPC URL used to verify the chain id")
	fetchCmd.Flags().Duration("timeout", 30*time.Second, "per-request timeout")
	fetchCmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")
	fetchCmd.Flags().String("log-file", "", "also write logs to this rotating file")
	fetchCmd.Flags().Int("log-max-size", 10, "log file size in MB before rotation")
	fetchCmd.Flags().Int("log-max-backups", 3, "rotated log files to keep")
	fetchCmd.Flags().Int("log-max-age", 28, "days to keep rotated log files")

	root.AddCommand(fetchCmd)

	chainsCmd := &cobra.Command{
		Use:   "chains",
		Short: "List supported chain ids and their subgraph endpoints",
		Args:  cobra.NoArgs,
		RunE:  runChains,
	}

	root.AddCommand(chainsCmd)

	return root
}
