package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values. The audit targets are ordinary clearnet
// pages, so the defaults lean toward throughput rather than politeness:
// tasks hit many unrelated hosts, one request each.
const (
	// DefaultConcurrency is the number of pages analyzed in parallel.
	// Analyses are network-bound and independent, so a generous cap keeps
	// thousand-row sheets fast without exhausting local sockets.
	DefaultConcurrency = 25

	// DefaultTimeout is the per-request timeout. 10 seconds matches the
	// original monitoring tool and covers slow shared hosting without
	// stalling the batch on dead pages.
	DefaultTimeout = 10 * time.Second

	// DefaultMaxBodySize limits how much of a response body is read.
	// 5MB covers any realistic HTML page.
	DefaultMaxBodySize = 5 * 1024 * 1024

	// AppName is the application name used for XDG directory paths.
	AppName = "linklens"

	// ConfigFileName is the optional per-user/per-project config file.
	ConfigFileName = ".linklens.yaml"
)

// Config holds all options for one audit run.
// It is populated from defaults, the optional YAML config file, and CLI
// flags, then validated once before the batch starts.
type Config struct {
	// InputPath is the CSV or XLSX file holding the task list.
	// Empty when page URLs are passed as CLI arguments instead.
	InputPath string

	// SheetName selects the XLSX worksheet. Empty means the first sheet.
	SheetName string

	// URLs are page URLs passed directly on the command line.
	// They require TargetDomain to be set.
	URLs []string

	// TargetDomain is the default domain pages are expected to link to.
	// Required for URL arguments; optional for sheet input, where target
	// columns take precedence.
	TargetDomain string

	// ExpectedPath optionally narrows matches to hrefs containing it.
	ExpectedPath string

	// ExpectedAnchor optionally requires exact anchor text.
	ExpectedAnchor string

	// Concurrency is the maximum number of pages analyzed in parallel.
	Concurrency int

	// Timeout is the per-request fetch timeout.
	Timeout time.Duration

	// UserAgent overrides the fixed browser identity header when non-empty.
	UserAgent string

	// MaxBodySize is the maximum response body size in bytes to read.
	MaxBodySize int64

	// JSONReport selects JSON output instead of CSV.
	// Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport selects Markdown output instead of CSV.
	// Mutually exclusive with JSONReport.
	MarkdownReport bool

	// ReportFile writes the report to a file instead of stdout.
	// Parent directories are created as needed.
	ReportFile string

	// Verbose enables slog.LevelDebug logging.
	Verbose bool
}

// New creates a Config with default values.
//
// Design decision: We use a constructor instead of relying on zero values
// because most defaults are non-zero, and the constructor doubles as the
// single place those defaults are documented.
func New() *Config {
	return &Config{
		Concurrency: DefaultConcurrency,
		Timeout:     DefaultTimeout,
		MaxBodySize: DefaultMaxBodySize,
	}
}

// XDGConfigDir returns the XDG config directory for LinkLens.
// On Linux: ~/.config/linklens
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks the configuration and returns the first problem found.
// It runs once, before any task starts; the dispatcher never fails
// mid-batch on configuration.
func (c *Config) Validate() error {
	if c.InputPath == "" && len(c.URLs) == 0 {
		return ErrNoInput
	}
	if len(c.URLs) > 0 && c.TargetDomain == "" {
		return ErrNoTargetDomain
	}
	if c.Timeout < time.Second {
		return ErrInvalidTimeout
	}
	if c.Concurrency < 1 {
		return ErrInvalidConcurrency
	}
	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}
	return nil
}
