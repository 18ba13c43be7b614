package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"budgetcharts/internal/backend"
	"budgetcharts/internal/charts"
	"budgetcharts/internal/cli"
	"budgetcharts/internal/config"
	blog "budgetcharts/internal/log"
	"budgetcharts/internal/source"

	"github.com/spf13/cobra"
)

var (
	flagSource     string
	flagInput      string
	flagAccount    int64
	flagYear       int
	flagMonth      int
	flagCurrency   string
	flagAppearance string
	flagLogLevel   string
	flagEnvFile    string
)

var rootCmd = &cobra.Command{
	Use:           "budgetcharts",
	Short:         "Budget chart data builder",
	Long:          "Aggregate budget operations by category, compare monthly expenses against income and build Chart.js payloads.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		cli.LoadEnvFile(envFiles()...)
		level := os.Getenv("LOG_LEVEL")
		if cmd.Flags().Changed("log-level") || level == "" {
			level = flagLogLevel
		}
		rootLogger = cli.SetupLogger(level)
	},
}

// rootLogger is the default logger installed before any command runs.
var rootLogger *blog.Logger

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "  Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&flagSource, "source", "s", config.SourceFile, "Data source: file, sqlite or sheets")
	pf.StringVarP(&flagInput, "input", "i", "", "Page data file for the file source (default stdin)")
	pf.Int64VarP(&flagAccount, "account", "a", 1, "Account id")
	pf.IntVarP(&flagYear, "year", "y", 0, "Year (default current)")
	pf.IntVarP(&flagMonth, "month", "m", 0, "Month 1-12 (default current)")
	pf.StringVarP(&flagCurrency, "currency", "c", "", "Currency appended to chart titles")
	pf.StringVar(&flagAppearance, "appearance", "", "TOML file with chart colours and titles")
	pf.StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	pf.StringVar(&flagEnvFile, "env-file", "", "Load environment from this file instead of .env")
}

func envFiles() []string {
	if flagEnvFile != "" {
		return []string{flagEnvFile}
	}
	return nil
}

// app is what the source-backed commands share.
type app struct {
	cfg        *config.Config
	logger     *blog.Logger
	appearance charts.Appearance
	backend    *backend.BackendResult
}

// loadApp reads the configuration, applies command-line overrides and opens
// the configured source.
func loadApp(ctx context.Context, cmd *cobra.Command) (*app, error) {
	flags := cmd.Flags()
	cfg, err := cli.LoadAndValidateConfig(func(c *config.Config) {
		if flags.Changed("source") {
			c.Source = flagSource
		}
		if flags.Changed("input") {
			c.InputPath = flagInput
		}
		if flags.Changed("account") {
			c.AccountID = flagAccount
		}
		if flags.Changed("currency") {
			c.Currency = flagCurrency
		}
		if flags.Changed("appearance") {
			c.AppearanceFile = flagAppearance
		}
		if flags.Changed("log-level") {
			c.LogLevel = flagLogLevel
		}
	})
	if err != nil {
		return nil, err
	}

	appearance, err := config.LoadAppearance(cfg.AppearanceFile)
	if err != nil {
		return nil, err
	}

	logger := rootLogger
	if logger == nil {
		logger = cli.SetupLogger(cfg.LogLevel)
	}

	bcfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		return nil, err
	}
	res, err := backend.NewFactory(logger.WithComponent(blog.ComponentSource).Logger).CreateBackend(ctx, bcfg)
	if err != nil {
		return nil, err
	}

	return &app{cfg: cfg, logger: logger, appearance: appearance, backend: res}, nil
}

func (a *app) Close() {
	if err := a.backend.Close(); err != nil {
		a.logger.Warn("Failed to close source", "error", err)
	}
}

// query returns the period selected by flags, defaulting to the current month.
func (a *app) query() source.Query {
	q := source.CurrentQuery(a.cfg.AccountID, time.Now())
	if flagYear > 0 {
		q.Year = flagYear
	}
	if flagMonth > 0 {
		q.Month = flagMonth
	}
	return q
}

// buildBundle loads the selected period and builds its charts.
func (a *app) buildBundle(ctx context.Context) (charts.Bundle, error) {
	q := a.query()
	logger := a.logger.WithComponent(blog.ComponentCharts)
	fields := blog.NewFields().WithOperation(blog.OpBuild)

	page, err := a.backend.Reader.ReadPageData(ctx, q)
	if err != nil {
		return charts.Bundle{}, fmt.Errorf("load page data: %w", err)
	}
	b, err := charts.Build(page, a.appearance)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to build charts", fields.WithError(err).ToSlice()...)
		return charts.Bundle{}, err
	}

	over := 0
	for _, f := range b.OverBudget {
		if f {
			over++
		}
	}
	logger.DebugContext(ctx, "Built chart bundle", fields.
		WithPeriod(b.AccountID, b.Year, b.Month).
		WithTotals(len(page.Operations), b.IncomeTotals.Len()+b.ExpenseTotals.Len(), over).
		ToSlice()...)
	return b, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
