package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rxtech-lab/trade-analyzer/internal/analyzer"
	"github.com/rxtech-lab/trade-analyzer/internal/config"
	"github.com/rxtech-lab/trade-analyzer/internal/datasource"
	"github.com/rxtech-lab/trade-analyzer/internal/logger"
	"github.com/rxtech-lab/trade-analyzer/internal/report"
	"github.com/rxtech-lab/trade-analyzer/internal/version"
	"github.com/rxtech-lab/trade-analyzer/pkg/errors"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

// loadConfig reads the config file and applies the command line flags on top.
func loadConfig(cmd *cli.Command) (config.Config, error) {
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return config.Config{}, err
	}

	if cmd.IsSet("symbol") {
		cfg.Symbol = cmd.String("symbol")
	}

	if cmd.IsSet("days") {
		cfg.LookbackDays = int(cmd.Int("days"))
	}

	if cmd.IsSet("output") {
		cfg.Output = cmd.String("output")
	}

	if cmd.IsSet("log-level") {
		cfg.Logging.Level = cmd.String("log-level")
	}

	// each --data file is its own source, tried in the given order
	if paths := cmd.StringSlice("data"); len(paths) > 0 {
		cfg.Sources = make([]config.SourceConfig, 0, len(paths))
		for _, path := range paths {
			cfg.Sources = append(cfg.Sources, config.SourceConfig{
				Name:  strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
				Paths: []string{path},
			})
		}
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}

	return cfg, nil
}

// openSources opens every configured source behind a fallback chain.
func openSources(cfg config.Config, log *logger.Logger) (*datasource.FallbackSource, error) {
	sources := make([]datasource.Source, 0, len(cfg.Sources))

	for _, sourceConfig := range cfg.Sources {
		source, err := datasource.NewDuckDBSource(sourceConfig.Name, sourceConfig.Paths, log)
		if err != nil {
			for _, opened := range sources {
				_ = opened.Close()
			}

			return nil, err
		}

		sources = append(sources, source)
	}

	return datasource.NewFallbackSource(log, sources...), nil
}

// userMessage turns the errors a user can act on into plain sentences.
func userMessage(err error) error {
	switch {
	case errors.IsEmptyDataError(err):
		return fmt.Errorf("no realized trades to analyze: %w", err)
	case errors.HasCode(err, errors.ErrCodeDataSourceUnavailable):
		return fmt.Errorf("trade history could not be loaded from any source: %w", err)
	default:
		return err
	}
}

func analyzeAction(out io.Writer) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		_ = godotenv.Load()

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		log, err := logger.NewConsoleLogger(cfg.Logging.Level)
		if err != nil {
			return err
		}
		defer func() { _ = log.Sync() }()

		source, err := openSources(cfg, log)
		if err != nil {
			return err
		}
		defer source.Close()

		query := datasource.NewQuery(cfg.Symbol, cfg.LookbackDays, time.Now())
		a := analyzer.NewAnalyzer(source, log, analyzer.WithPolicy(cfg.ToPolicy()))

		analysis, err := a.Run(ctx, query)
		if err != nil {
			return userMessage(err)
		}

		fmt.Fprint(out, report.RenderConsole(*analysis))

		if cfg.Output != "" {
			if err := report.Write(cfg.Output, *analysis); err != nil {
				return err
			}

			log.Info("Report written", zap.String("path", cfg.Output))
			fmt.Fprintf(out, "\nReport saved to %s\n", cfg.Output)
		}

		return nil
	}
}

func newCommand(out io.Writer) *cli.Command {
	return &cli.Command{
		Name:    "analyze",
		Usage:   "Compute performance statistics for a trade history",
		Version: version.GetVersion(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to a YAML config file",
			},
			&cli.StringSliceFlag{
				Name:    "data",
				Aliases: []string{"d"},
				Usage:   "Deal export (CSV or Parquet); repeat to add fallbacks. Replaces the configured sources",
			},
			&cli.StringFlag{
				Name:    "symbol",
				Aliases: []string{"s"},
				Usage:   "Only analyze deals on this symbol; empty keeps every symbol",
			},
			&cli.IntFlag{
				Name:  "days",
				Usage: "Only analyze deals closed in the last N days; 0 keeps the whole history",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Write the report to this file (.txt, .yaml, .json or .xlsx)",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Log level (debug, info, warn, error)",
			},
		},
		Action: analyzeAction(out),
	}
}

func main() {
	cmd := newCommand(os.Stdout)

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
