package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rxtech-lab/trade-analyzer/internal/generator"
	"github.com/rxtech-lab/trade-analyzer/internal/report"
	"github.com/rxtech-lab/trade-analyzer/internal/stats"
	"github.com/rxtech-lab/trade-analyzer/internal/version"
	"github.com/rxtech-lab/trade-analyzer/internal/writer"
	"github.com/schollz/progressbar/v3"
	"github.com/urfave/cli/v3"
)

func sampleAction(out io.Writer) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		config := generator.DefaultConfig()
		config.Symbol = cmd.String("symbol")
		config.Count = int(cmd.Int("count"))
		config.Period = time.Duration(cmd.Int("days")) * 24 * time.Hour

		deals, err := generator.NewGenerator(int64(cmd.Int("seed"))).Generate(config)
		if err != nil {
			return err
		}

		w, err := writer.NewDealsWriter(cmd.String("output"))
		if err != nil {
			return err
		}

		if err := w.Initialize(); err != nil {
			return err
		}
		defer w.Close()

		bar := progressbar.NewOptions(len(deals),
			progressbar.OptionSetWriter(out),
			progressbar.OptionSetDescription("Writing deals"),
			progressbar.OptionShowCount(),
		)

		for _, deal := range deals {
			if err := ctx.Err(); err != nil {
				return err
			}

			if err := w.Write(deal); err != nil {
				return err
			}

			_ = bar.Add(1)
		}

		_ = bar.Finish()

		if err := w.Flush(); err != nil {
			return err
		}

		summary, err := stats.Compute(deals)
		if err != nil {
			return err
		}

		fmt.Fprintf(out, "\n✓ Sample data written to %s\n", w.GetOutputPath())
		fmt.Fprintf(out, "  Trades: %d\n", len(deals))
		fmt.Fprintf(out, "  Total profit: %s\n", report.FormatAmount(summary.TotalProfit))
		fmt.Fprintf(out, "  Win rate: %s%%\n", summary.WinRatePct.StringFixed(1))

		return nil
	}
}

func newCommand(out io.Writer) *cli.Command {
	return &cli.Command{
		Name:    "sample",
		Usage:   "Generate a synthetic deal history for trying the analyzer",
		Version: version.GetVersion(),
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "count",
				Aliases: []string{"n"},
				Usage:   "Number of deals to generate",
				Value:   100,
			},
			&cli.StringFlag{
				Name:    "symbol",
				Aliases: []string{"s"},
				Usage:   "Symbol of the generated deals",
				Value:   "USDJPY",
			},
			&cli.IntFlag{
				Name:  "seed",
				Usage: "Random seed; the same seed and end date give the same deals",
				Value: 42,
			},
			&cli.IntFlag{
				Name:  "days",
				Usage: "Spread deals over the last N days",
				Value: 90,
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output file (.csv or .parquet)",
				Value:   "data/trades/usdjpy_sample_trades.csv",
			},
		},
		Action: sampleAction(out),
	}
}

func main() {
	cmd := newCommand(os.Stdout)

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
