package analyzer

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/linklens/linklens/internal/domain"
	"github.com/linklens/linklens/internal/extractor"
	"github.com/linklens/linklens/internal/fetcher"
	"github.com/linklens/linklens/internal/matcher"
	"github.com/linklens/linklens/internal/model"
)

// DefaultTimeout is the per-task fetch timeout when none is configured.
const DefaultTimeout = 10 * time.Second

// Fetcher is the page-retrieval dependency of the Runner.
// *fetcher.Fetcher satisfies it; tests substitute instrumented fakes.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string, timeout time.Duration) (*fetcher.Result, error)
}

// Runner executes a single AnalysisTask: fetch, extract, match, assemble.
//
// Run never returns an error and never panics past its own boundary; every
// failure is represented as a field in the returned PageAnalysis. This is
// what lets the dispatcher treat all tasks uniformly.
type Runner struct {
	fetcher Fetcher
	timeout time.Duration
	logger  *slog.Logger
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithTimeout sets the per-task fetch timeout.
func WithTimeout(timeout time.Duration) RunnerOption {
	return func(r *Runner) {
		if timeout > 0 {
			r.timeout = timeout
		}
	}
}

// WithRunnerLogger sets a custom logger for the runner.
func WithRunnerLogger(logger *slog.Logger) RunnerOption {
	return func(r *Runner) {
		r.logger = logger
	}
}

// NewRunner creates a Runner backed by the given fetcher.
func NewRunner(f Fetcher, opts ...RunnerOption) *Runner {
	r := &Runner{
		fetcher: f,
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}
	return r
}

// Run analyzes one page. The returned record is complete and immutable:
// exactly one PageAnalysis per task, with Error set iff the task never
// reached the extraction stage.
func (r *Runner) Run(ctx context.Context, task model.AnalysisTask) model.PageAnalysis {
	analysis := model.PageAnalysis{
		URL:         task.URL,
		MatchStatus: model.MatchStatusSkipped,
	}

	// An empty target cell in the source sheet means "nothing to verify
	// on this row"; the page is not even fetched.
	if task.TargetDomain == "" {
		return analysis
	}

	targetRegistrable, err := domain.Registrable(task.TargetDomain)
	if err != nil {
		analysis.Error = err.Error()
		return analysis
	}

	result, err := r.fetcher.Fetch(ctx, task.URL, r.timeout)
	if err != nil {
		r.logger.Debug("fetch failed", "url", task.URL, "error", err)
		analysis.Error = err.Error()
		return analysis
	}

	analysis.StatusCode = model.Int(result.StatusCode)
	if result.StatusCode != http.StatusOK {
		analysis.Error = fmt.Sprintf("unexpected status code %d", result.StatusCode)
		return analysis
	}

	page, err := extractor.Extract(result.Body, task.URL)
	if err != nil {
		r.logger.Debug("extraction failed", "url", task.URL, "error", err)
		analysis.Error = err.Error()
		return analysis
	}

	analysis.Indexable = model.Bool(page.Indexable)
	analysis.Title = page.Title
	analysis.CanonicalHref = page.CanonicalHref
	if page.CanonicalHref != "" {
		analysis.CanonicalIsSelf = model.Bool(extractor.CanonicalIsSelf(page.CanonicalHref, task.URL))
	}

	outcome := matcher.Match(page.Links, targetRegistrable, task.ExpectedTargetPath, task.ExpectedAnchorText)
	analysis.MatchStatus = outcome.Status
	analysis.MatchedLinks = outcome.MatchedLinks
	analysis.ActualAnchorText = outcome.ActualAnchorText

	return analysis
}
