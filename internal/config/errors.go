package config

import "errors"

// Validation errors returned by Config.Validate.
var (
	// ErrNoInput means neither an input file nor URL arguments were given.
	ErrNoInput = errors.New("config: no input file or URLs specified")

	// ErrNoTargetDomain means URLs were given without a target domain.
	ErrNoTargetDomain = errors.New("config: URL arguments require a target domain")

	// ErrInvalidTimeout means the per-request timeout is below one second.
	ErrInvalidTimeout = errors.New("config: timeout must be at least one second")

	// ErrInvalidConcurrency means the worker cap is below one.
	ErrInvalidConcurrency = errors.New("config: concurrency must be at least 1")

	// ErrConflictingReportFormats means both JSON and Markdown output were
	// requested.
	ErrConflictingReportFormats = errors.New("config: --json and --markdown are mutually exclusive")
)
