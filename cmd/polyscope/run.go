package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"polyscope/internal/aggregate"
	"polyscope/internal/config"
	"polyscope/internal/gamma"
	"polyscope/internal/model"
	"polyscope/internal/storage"
	"polyscope/internal/storage/postgres"
)

func runAggregate(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	tagIDs, err := config.ParseTagIDs(cfg.Tags)
	if err != nil {
		return err
	}
	if len(tagIDs) == 0 {
		return fmt.Errorf("at least one tag id is required")
	}

	windowStart, err := config.ParseTimestamp(cfg.WindowStart)
	if err != nil {
		return fmt.Errorf("parse window-start: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := gamma.NewClient(gamma.Config{
		GammaBase:     cfg.GammaBase,
		DataBase:      cfg.DataBase,
		Timeout:       cfg.Timeout,
		MaxRetries:    cfg.MaxRetries,
		Backoff:       cfg.Backoff,
		PageSize:      cfg.GammaPageSize,
		TradePageSize: cfg.TradePageSize,
		WindowStart:   windowStart,
	}, logger)

	var sink storage.Storage
	if cfg.PGDSN != "" {
		store, err := postgres.NewStore(ctx, cfg.PGDSN)
		if err != nil {
			return fmt.Errorf("connect postgres: %w", err)
		}
		defer store.Close()
		sink = store
	} else {
		switch cfg.Format {
		case "csv":
			sink = storage.NewCSVStorage(cfg.Out)
		case "jsonl":
			sink = storage.NewJsonlStorage(cfg.Out)
		case "xlsx":
			sink = storage.NewXlsxStorage(cfg.Out)
		default:
			return fmt.Errorf("unknown format %q", cfg.Format)
		}
	}

	logger.Info("run start",
		zap.Ints("tag_ids", tagIDs),
		zap.Int64("window_start", windowStart),
		zap.String("format", cfg.Format),
		zap.String("out", cfg.Out),
	)

	var markets []model.Market
	for _, tagID := range tagIDs {
		logger.Info("fetch markets", zap.Int("tag_id", tagID))

		open, err := client.MarketsByTag(ctx, tagID, false)
		if err != nil {
			return fmt.Errorf("open markets for tag %d: %w", tagID, err)
		}
		closed, err := client.MarketsByTag(ctx, tagID, true)
		if err != nil {
			return fmt.Errorf("closed markets for tag %d: %w", tagID, err)
		}

		merged := aggregate.DedupMarkets(append(open, closed...))
		markets = append(markets, merged...)

		logger.Info("markets fetched", zap.Int("tag_id", tagID), zap.Int("markets", len(merged)))
	}

	agg := aggregate.NewAggregator(aggregate.Config{SiteBase: cfg.SiteBase}, client, logger)
	rows, err := agg.Run(ctx, markets)
	if err != nil {
		return err
	}

	if err := sink.PutEventRows(ctx, rows); err != nil {
		return fmt.Errorf("write events: %w", err)
	}

	logger.Info("run complete", zap.Int("markets", len(markets)), zap.Int("events", len(rows)))
	return nil
}
