package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	app "github.com/okian/applicants/internal/app"
	"github.com/okian/applicants/internal/config"
	"github.com/okian/applicants/pkg/logger"
)

const (
	missingInputMessage = "Please provide the input file path"
	processErrorPrefix  = "Error processing file: "
)

func main() {
	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		stop()
		os.Exit(1)
	}
}

type flags struct {
	output     string
	configFile string
	logLevel   string
}

func newRootCommand() *cobra.Command {
	var f flags

	cmd := &cobra.Command{
		Use:   "applicants [input file]",
		Short: "Rank applicant submissions from a CSV file",
		Long: `Reads applicant submissions (name,email,delivery_datetime,score), drops
invalid lines, keeps the last submission per email, applies the delivery
date bonus and penalty and writes a JSON summary report.

Configuration is read from defaults, then the YAML file named by --config or
APPLICANTS_CONFIG, then APPLICANTS_* environment variables, then flags.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, f)
		},
	}

	cmd.Flags().StringVarP(&f.output, "output", "o", "", "report output path (default from config, output.json)")
	cmd.Flags().StringVar(&f.configFile, "config", "", "YAML config file (overrides "+config.EnvConfigFile+")")
	cmd.Flags().StringVar(&f.logLevel, "log-level", "", "log level: debug, info, warn, error")

	return cmd
}

func run(cmd *cobra.Command, args []string, f flags) error {
	ctx := cmd.Context()
	stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()

	if len(args) == 0 {
		fmt.Fprintln(stdout, missingInputMessage)
		return cmd.Usage()
	}

	// Load configuration (defaults -> optional file -> env)
	var (
		cfg *config.Config
		err error
	)
	if f.configFile != "" {
		cfg, err = config.LoadFile(ctx, f.configFile)
	} else {
		cfg, err = config.Load(ctx)
	}
	if err != nil {
		fmt.Fprintln(stderr, "failed to load config: "+err.Error())
		return nil
	}
	if f.output != "" {
		cfg.OutputPath = f.output
	}
	if f.logLevel != "" {
		cfg.LogLevel = f.logLevel
	}

	// Logs go to stderr so stdout only carries the result line.
	if err := logger.Init(logger.WithWriter(stderr), logger.WithFormat(cfg.LogFormat)); err != nil {
		fmt.Fprintln(stderr, "failed to initialize logging: "+err.Error())
		return nil
	}
	defer func() {
		_ = logger.Sync()
	}()

	log := logger.Get()
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to warn", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString(config.DefaultLogLevel)
	}

	svc := app.New(
		app.WithLogger(logger.Named("pipeline")),
		app.WithOutputPath(cfg.OutputPath),
		app.WithMetricsFile(cfg.MetricsFile),
	)
	if _, err := svc.Run(ctx, args[0]); err != nil {
		fmt.Fprintln(stderr, processErrorPrefix+err.Error())
		return nil
	}

	fmt.Fprintln(stdout, "Result saved to "+svc.OutputPath())
	return nil
}
