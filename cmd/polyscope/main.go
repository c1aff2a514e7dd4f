package main

import (
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	root := &cobra.Command{
		Use:          "polyscope",
		Short:        "Polymarket event aggregator",
		SilenceUsage: true,
	}

	root.PersistentFlags().String("config", "", "config file path")

	tagsCmd := &cobra.Command{
		Use:   "tags",
		Short: "Search Gamma tags by keyword",
		RunE:  runTags,
	}

	tagsCmd.Flags().String("query", "", "keyword to match against tag labels and slugs")
	tagsCmd.Flags().String("gamma-base", "https://gamma-api.polymarket.com", "Gamma API base URL")
	tagsCmd.Flags().Int("gamma-page-size", 250, "page size for listing endpoints")
	tagsCmd.Flags().Duration("timeout", 20*time.Second, "request timeout")
	tagsCmd.Flags().Int("max-retries", 5, "maximum retry attempts per request")
	tagsCmd.Flags().Float64("backoff", 1.8, "exponential backoff multiplier")
	tagsCmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(tagsCmd)

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Aggregate markets into events and write metrics rows",
		RunE:  runAggregate,
	}

	runCmd.Flags().StringSlice("tags", nil, "tag ids (comma-separated)")
	runCmd.Flags().String("gamma-base", "https://gamma-api.polymarket.com", "Gamma API base URL")
	runCmd.Flags().String("data-base", "https://data-api.polymarket.com", "Data API base URL")
	runCmd.Flags().String("site-base", "https://polymarket.com", "site base URL for event links")
	runCmd.Flags().Int("gamma-page-size", 250, "page size for listing endpoints")
	runCmd.Flags().Int("trade-page-size", 250, "page size for the trade endpoint")
	runCmd.Flags().Duration("timeout", 20*time.Second, "request timeout")
	runCmd.Flags().Int("max-retries", 5, "maximum retry attempts per request")
	runCmd.Flags().Float64("backoff", 1.8, "exponential backoff multiplier")
	runCmd.Flags().String("window-start", "2025-01-01T00:00:00Z", "inclusive trade window start (unix seconds or RFC3339, empty for full history)")
	runCmd.Flags().String("out", "./data/events.csv", "output file path")
	runCmd.Flags().String("format", "csv", "output format (csv, jsonl, xlsx)")
	runCmd.Flags().String("pg-dsn", "", "Postgres DSN (writes rows to Postgres instead of a file)")
	runCmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(runCmd)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevel()
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}

	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return cfg.Build()
}
