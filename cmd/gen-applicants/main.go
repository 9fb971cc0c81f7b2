package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/okian/applicants/internal/sampledata"
	"github.com/okian/applicants/pkg/logger"
)

const (
	defaultTimeout = 10 * time.Minute
	filePermission = 0o644
)

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	if err := newCommand().ExecuteContext(ctx); err != nil {
		os.Stderr.WriteString("Generation failed: " + err.Error() + "\n")
		cancel()
		os.Exit(1)
	}
}

func newCommand() *cobra.Command {
	cfg := sampledata.DefaultConfig()
	var (
		output  string
		start   string
		verbose bool
	)

	cmd := &cobra.Command{
		Use:   "gen-applicants",
		Short: "Write a synthetic applicant CSV file",
		Long: `Generates applicant submissions with a reproducible mix of scores,
re-submissions under an earlier email and malformed lines.

Examples:
  gen-applicants --lines 50000 --output applicants.csv
  gen-applicants --duplicates 0.3 --invalid 0 --seed 42`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			level := "warn"
			if verbose {
				level = "info"
			}
			if err := logger.Init(logger.WithWriter(cmd.ErrOrStderr())); err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			if err := logger.SetLevelString(level); err != nil {
				return err
			}

			day, err := time.Parse(time.DateOnly, start)
			if err != nil {
				return fmt.Errorf("invalid --start %q: %w", start, err)
			}
			cfg.Start = day

			var w io.Writer = cmd.OutOrStdout()
			if output != "" && output != "-" {
				f, err := os.OpenFile(output, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, filePermission)
				if err != nil {
					return fmt.Errorf("failed to create output file: %w", err)
				}
				defer f.Close()
				w = f
			}

			stats, err := sampledata.Generate(cmd.Context(), cfg, w)
			if err != nil {
				return err
			}

			logger.Get().Info(cmd.Context(), "sample file written",
				logger.String("output", output),
				logger.Int("lines", stats.Lines),
				logger.Int("unique", stats.Unique),
				logger.Int("duplicates", stats.Duplicates),
				logger.Int("invalid", stats.Invalid),
			)
			return nil
		},
	}

	fl := cmd.Flags()
	fl.IntVarP(&cfg.Lines, "lines", "n", cfg.Lines, "number of data lines to generate")
	fl.Float64Var(&cfg.DuplicateRatio, "duplicates", cfg.DuplicateRatio, "share of lines re-submitting an earlier email")
	fl.Float64Var(&cfg.InvalidRatio, "invalid", cfg.InvalidRatio, "share of malformed lines")
	fl.IntVar(&cfg.Days, "days", cfg.Days, "number of calendar days the deliveries span")
	fl.StringVar(&start, "start", cfg.Start.Format(time.DateOnly), "first delivery day (YYYY-MM-DD)")
	fl.Int64Var(&cfg.Seed, "seed", cfg.Seed, "random seed")
	fl.BoolVar(&cfg.Header, "header", cfg.Header, "write the column header")
	fl.StringVarP(&output, "output", "o", "-", "output file, - for stdout")
	fl.BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	return cmd
}
