package model

// AnalysisTask describes one page-verification request: does the page at URL
// contain a link to TargetDomain, optionally with a specific path and anchor
// text?
//
// Tasks are immutable once submitted to the dispatcher. A task never carries
// results; the corresponding PageAnalysis does.
type AnalysisTask struct {
	// URL is the full URL of the page to fetch and inspect.
	URL string `json:"url"`

	// TargetDomain is the domain the page is expected to link to.
	// It may be a bare domain ("example.com") or a full URL; only its
	// registrable domain participates in matching.
	// An empty TargetDomain marks the task as skipped: the page is not
	// fetched and the analysis is classified MatchStatusSkipped.
	TargetDomain string `json:"target_domain"`

	// ExpectedTargetPath optionally narrows the match: the first
	// domain-matching link whose absolute href contains this substring
	// drives the match classification.
	ExpectedTargetPath string `json:"expected_target_path,omitempty"`

	// ExpectedAnchorText optionally requires the qualifying link's visible
	// text to equal this value exactly (case-sensitive, trimmed).
	ExpectedAnchorText string `json:"expected_anchor_text,omitempty"`
}

// HasExpectedPath reports whether the task narrows matching to a path.
func (t AnalysisTask) HasExpectedPath() bool {
	return t.ExpectedTargetPath != ""
}

// HasExpectedAnchor reports whether the task requires exact anchor text.
func (t AnalysisTask) HasExpectedAnchor() bool {
	return t.ExpectedAnchorText != ""
}
