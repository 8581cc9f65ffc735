/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: dataset.go
Description: Dataset command. Acquires a grammar, writes documents generated from it into the
configured sink and records a TOML manifest and, optionally, a JSON run report.
*/

package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/kleascm/cfgforge/pkg/config"
	"github.com/kleascm/cfgforge/pkg/dataset"
	"github.com/kleascm/cfgforge/pkg/utils"
)

// RunDataset builds a dataset
func RunDataset(cmd *cobra.Command, args []string) error {
	fmt.Fprintln(cmd.OutOrStdout(), "🚀 cfgforge - Building Dataset")
	fmt.Fprintln(cmd.OutOrStdout(), "==============================")

	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	defer logger.Close()

	res, err := acquire(cfg, logger)
	if err != nil {
		return err
	}

	sink, err := openSink(cfg)
	if err != nil {
		return err
	}
	defer sink.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	src, _ := newSource(cfg.Pipeline.Seed + 1)
	builder, err := dataset.NewBuilder(sink, cfg.NewGenerator(src), cfg.DatasetOptions(), logger)
	if err != nil {
		return err
	}

	suffix := fmt.Sprintf("%d_%d_%d", cfg.Grammar.Terminals, cfg.Grammar.Nonterminals, cfg.Grammar.Rules)
	stats, err := builder.Build(ctx, res.RunID, suffix, res.Grammar)
	if err != nil {
		return err
	}

	manifest := &dataset.Manifest{
		RunID:         res.RunID,
		Seed:          cfg.Pipeline.Seed,
		Created:       time.Now().UTC(),
		Terminals:     cfg.Request().Terminals,
		Nonterminals:  cfg.Request().Nonterminals,
		Rules:         cfg.Grammar.Rules,
		Probabilistic: cfg.Grammar.Probabilistic,
		TerminalBias:  cfg.Grammar.TerminalBias,
		Attempts:      res.Attempts,
		Grammar:       stats.Grammar,
		Sink:          cfg.Dataset.Sink,
		Options:       cfg.DatasetOptions(),
		Written:       len(stats.Documents),
	}
	if err := os.MkdirAll(cfg.Dataset.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	manifestPath := filepath.Join(cfg.Dataset.OutputDir, fmt.Sprintf("manifest_%s.toml", suffix))
	if err := dataset.WriteManifest(manifestPath, manifest); err != nil {
		return err
	}

	if dir := cfg.Dataset.MetricsDir; dir != "" {
		path, err := utils.WriteRunReport(dir, "dataset", res.RunID, stats)
		if err != nil {
			return err
		}
		logger.Info("Run report written", map[string]interface{}{"path": path})
	}

	fmt.Fprintf(cmd.OutOrStdout(), "\n✨ Wrote %d documents (%d skipped) after %d grammar tries\n",
		len(stats.Documents), stats.Failures, res.Attempts)
	fmt.Fprintf(cmd.OutOrStdout(), "📄 Manifest: %s\n", manifestPath)
	return nil
}

func openSink(cfg *config.Config) (dataset.Sink, error) {
	switch cfg.Dataset.Sink {
	case config.SinkSQLite:
		if err := os.MkdirAll(filepath.Dir(cfg.Dataset.SQLitePath), 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
		return dataset.NewSQLiteSink(cfg.Dataset.SQLitePath)
	default:
		return dataset.NewFileSink(cfg.Dataset.OutputDir, cfg.Dataset.FilenamePrefix)
	}
}
