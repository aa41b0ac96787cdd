package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/linklens/linklens/internal/analyzer"
	"github.com/linklens/linklens/internal/config"
	"github.com/linklens/linklens/internal/fetcher"
	"github.com/linklens/linklens/internal/model"
	"github.com/linklens/linklens/internal/report"
	"github.com/linklens/linklens/internal/tasklist"
)

// NewCheckCmd creates the check command.
func NewCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [page-url...]",
		Short: "Verify links and SEO signals for a list of pages",
		Long: `Check fetches each page, extracts its links and SEO signals, and verifies
that a link to the target domain exists with the expected path and anchor.

The task list comes either from a spreadsheet (--input, CSV or XLSX with
"Page URL" / "TARGET PAGE n" / "ANCHOR n" columns) or from page URLs given
as arguments together with --target.

Examples:
  # Audit a monitoring sheet
  linklens check --input reportage.xlsx

  # Audit a CSV and save the results
  linklens check --input pages.csv --output results.csv

  # Check a handful of URLs against one domain
  linklens check --target example.com https://blog-a.com/post https://blog-b.com/review

  # Require a specific landing page and anchor text
  linklens check --target example.com --path /landing --anchor "Read more" https://blog-a.com/post

  # Markdown summary for sharing
  linklens check --input pages.csv --markdown --output audit.md`,
		Args: cobra.ArbitraryArgs,
		RunE: runCheckCmd,
	}

	// Input flags
	cmd.Flags().StringP("input", "i", "", "Task list file (.csv, .xlsx)")
	cmd.Flags().StringP("sheet", "s", "", "XLSX worksheet name (default: first sheet)")

	// Matching flags
	cmd.Flags().StringP("target", "d", "", "Target domain pages are expected to link to")
	cmd.Flags().StringP("path", "p", "", "Expected path substring within the matched link")
	cmd.Flags().StringP("anchor", "a", "", "Expected anchor text (exact match)")

	// Run behavior flags
	cmd.Flags().IntP("concurrency", "n", config.DefaultConcurrency, "Number of pages analyzed in parallel")
	cmd.Flags().DurationP("timeout", "t", config.DefaultTimeout, "Per-request timeout")
	cmd.Flags().String("user-agent", "", "Override the identity header sent with requests")

	// Configuration file
	cmd.Flags().StringP("config", "c", "", "Configuration file path (default: .linklens.yaml in CWD, XDG config dir, or home)")

	// Report flags
	cmd.Flags().BoolP("json", "j", false, "Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false, "Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "", "Write report to specified file path (creates directories if needed)")

	return cmd
}

// runCheckCmd executes the check command.
func runCheckCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(getVerboseFlag(cmd))
	slog.SetDefault(logger)

	// Cancel the batch on interrupt; partial results still get reported.
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			logger.Info("received shutdown signal, cancelling batch...")
			cancel()
		case <-ctx.Done():
		}
	}()

	return runCheck(ctx, cfg, logger)
}

// runCheck loads the task list, dispatches the batch, and writes the report.
func runCheck(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	tasks, err := loadTasks(cfg)
	if err != nil {
		return err
	}

	logger.Info("starting audit",
		"tasks", len(tasks),
		"concurrency", cfg.Concurrency,
		"timeout", cfg.Timeout,
	)

	fetchOpts := []fetcher.Option{fetcher.WithMaxBodySize(cfg.MaxBodySize)}
	if cfg.UserAgent != "" {
		fetchOpts = append(fetchOpts, fetcher.WithUserAgent(cfg.UserAgent))
	}
	f := fetcher.New(&http.Client{}, fetchOpts...)

	runner := analyzer.NewRunner(f,
		analyzer.WithTimeout(cfg.Timeout),
		analyzer.WithRunnerLogger(logger),
	)
	dispatcher := analyzer.NewDispatcher(runner,
		analyzer.WithConcurrency(cfg.Concurrency),
		analyzer.WithLogger(logger),
		analyzer.WithProgress(func(completed, total int) {
			logger.Info("progress", "completed", completed, "total", total)
		}),
	)

	results, err := dispatcher.Dispatch(ctx, tasks)
	if err != nil && len(results) == 0 {
		return err
	}
	if err != nil {
		logger.Warn("batch interrupted, reporting partial results", "error", err)
	}

	return writeReport(cfg, results)
}

// loadTasks builds the task list from the input file or URL arguments.
func loadTasks(cfg *config.Config) ([]model.AnalysisTask, error) {
	defaults := tasklist.Defaults{
		TargetDomain:   cfg.TargetDomain,
		ExpectedPath:   cfg.ExpectedPath,
		ExpectedAnchor: cfg.ExpectedAnchor,
	}

	if cfg.InputPath != "" {
		return tasklist.Load(cfg.InputPath, cfg.SheetName, defaults)
	}

	tasks := make([]model.AnalysisTask, 0, len(cfg.URLs))
	for _, u := range cfg.URLs {
		tasks = append(tasks, model.AnalysisTask{
			URL:                u,
			TargetDomain:       cfg.TargetDomain,
			ExpectedTargetPath: cfg.ExpectedPath,
			ExpectedAnchorText: cfg.ExpectedAnchor,
		})
	}
	return tasks, nil
}

// writeReport renders the results in the configured format and destination.
func writeReport(cfg *config.Config, results []model.PageAnalysis) error {
	out, closeFn, err := reportDestination(cfg.ReportFile)
	if err != nil {
		return err
	}
	defer closeFn()

	var w report.Writer
	switch {
	case cfg.JSONReport:
		w = report.NewJSONWriter(out, report.WithPrettyPrint())
	case cfg.MarkdownReport:
		w = report.NewMarkdownWriter(out)
	default:
		w = report.NewCSVWriter(out)
	}

	if _, err := w.Write(results); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// reportDestination opens the report output, creating directories as needed.
func reportDestination(path string) (io.Writer, func(), error) {
	if path == "" {
		return os.Stdout, func() {}, nil
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, nil, fmt.Errorf("failed to create report directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create report file: %w", err)
	}
	return f, func() { _ = f.Close() }, nil //nolint:errcheck // report already flushed
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// buildConfig creates a Config from the config file and cobra flags.
// Precedence: defaults < config file < explicit flags.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.New()

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	explicitConfigPath := configPath != ""
	if found := config.FindFile(configPath); found != "" {
		file, err := config.LoadFile(found)
		if err != nil {
			return nil, err
		}
		file.ApplyTo(cfg)
	} else if explicitConfigPath {
		return nil, fmt.Errorf("configuration file not found: %s", configPath)
	}

	if cfg.InputPath, err = cmd.Flags().GetString("input"); err != nil {
		return nil, err
	}
	if cfg.SheetName, err = cmd.Flags().GetString("sheet"); err != nil {
		return nil, err
	}

	if err := applyStringFlag(cmd, "target", &cfg.TargetDomain); err != nil {
		return nil, err
	}
	if err := applyStringFlag(cmd, "path", &cfg.ExpectedPath); err != nil {
		return nil, err
	}
	if err := applyStringFlag(cmd, "anchor", &cfg.ExpectedAnchor); err != nil {
		return nil, err
	}
	if err := applyStringFlag(cmd, "user-agent", &cfg.UserAgent); err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("concurrency") || cfg.Concurrency == 0 {
		if cfg.Concurrency, err = cmd.Flags().GetInt("concurrency"); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("timeout") || cfg.Timeout == 0 {
		var timeout time.Duration
		if timeout, err = cmd.Flags().GetDuration("timeout"); err != nil {
			return nil, err
		}
		cfg.Timeout = timeout
	}

	if cfg.JSONReport, err = cmd.Flags().GetBool("json"); err != nil {
		return nil, err
	}
	if cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown"); err != nil {
		return nil, err
	}
	if cfg.ReportFile, err = cmd.Flags().GetString("output"); err != nil {
		return nil, err
	}

	cfg.Verbose = getVerboseFlag(cmd)
	cfg.URLs = args

	return cfg, nil
}

// applyStringFlag copies a flag into dst only when the user set it, so
// config-file values survive unset flags.
func applyStringFlag(cmd *cobra.Command, name string, dst *string) error {
	if !cmd.Flags().Changed(name) && *dst != "" {
		return nil
	}
	v, err := cmd.Flags().GetString(name)
	if err != nil {
		return err
	}
	if v != "" || cmd.Flags().Changed(name) {
		*dst = v
	}
	return nil
}

// setupLogger creates a structured logger based on verbosity setting.
func setupLogger(verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	return slog.New(handler)
}
