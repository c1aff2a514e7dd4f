package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"polyscope/internal/config"
	"polyscope/internal/gamma"
)

const maxTagRows = 150

func runTags(cmd *cobra.Command, _ []string) error {
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

	if strings.TrimSpace(cfg.Query) == "" {
		return fmt.Errorf("query is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := gamma.NewClient(gamma.Config{
		GammaBase:  cfg.GammaBase,
		Timeout:    cfg.Timeout,
		MaxRetries: cfg.MaxRetries,
		Backoff:    cfg.Backoff,
		PageSize:   cfg.GammaPageSize,
	}, logger)

	tags, err := client.SearchTags(ctx, cfg.Query)
	if err != nil {
		return fmt.Errorf("search tags: %w", err)
	}

	if len(tags) == 0 {
		fmt.Println("No matches found.")
		return nil
	}

	logger.Info("tags matched", zap.String("query", cfg.Query), zap.Int("matches", len(tags)))

	shown := tags
	if len(shown) > maxTagRows {
		shown = shown[:maxTagRows]
	}
	for i, tag := range shown {
		fmt.Printf("%3d. id=%s | label=%s | slug=%s\n", i+1, tag.ID, tag.Label, tag.Slug)
	}
	if len(tags) > maxTagRows {
		fmt.Printf("... and %d more\n", len(tags)-maxTagRows)
	}

	return nil
}
