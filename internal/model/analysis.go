package model

import (
	"strconv"
	"strings"
)

// MatchStatus classifies the outcome of link matching for one task.
// It is a classification, not an error: NotFound and AnchorMismatch are
// valid, expected results of a successful analysis.
type MatchStatus string

const (
	// MatchStatusMatched means a qualifying link to the target was found
	// (and, when anchor text was expected, the text matched exactly).
	MatchStatusMatched MatchStatus = "matched"

	// MatchStatusAnchorMismatch means a qualifying link was found but its
	// visible text differs from the expected anchor. The actual text is
	// recorded in PageAnalysis.ActualAnchorText.
	MatchStatusAnchorMismatch MatchStatus = "anchor_mismatch"

	// MatchStatusNotFound means no link on the page qualifies.
	MatchStatusNotFound MatchStatus = "not_found"

	// MatchStatusSkipped means matching never ran: the task carried no
	// target domain, or the analysis failed before extraction. The Error
	// field distinguishes the two.
	MatchStatusSkipped MatchStatus = "skipped"
)

// LinkRecord is one anchor element extracted from a page.
type LinkRecord struct {
	// AbsoluteHref is the href attribute resolved against the page URL.
	AbsoluteHref string `json:"absolute_href"`

	// AnchorText is the trimmed visible text of the anchor.
	AnchorText string `json:"anchor_text"`

	// RelTokens is the set of rel attribute tokens, lowercased.
	// Empty when the attribute is absent.
	RelTokens []string `json:"rel_tokens,omitempty"`

	// TargetDomainMatch reports whether the link's registrable domain
	// equals the task's target registrable domain.
	TargetDomainMatch bool `json:"target_domain_match"`
}

// RelString returns the rel tokens joined with spaces, or "none" when the
// attribute was absent. This mirrors how rel values appear in HTML and in
// exported reports.
func (l LinkRecord) RelString() string {
	if len(l.RelTokens) == 0 {
		return "none"
	}
	return strings.Join(l.RelTokens, " ")
}

// ExtractedPage holds the SEO-relevant content pulled from a fetched page.
// It is derived only from a 200 response whose body parsed as HTML.
type ExtractedPage struct {
	// Title is the trimmed text of the first <title> element.
	// Empty when the element is absent or empty.
	Title string `json:"title,omitempty"`

	// Indexable is false iff a robots meta tag contains "noindex".
	Indexable bool `json:"indexable"`

	// CanonicalHref is the trimmed href of the first link rel="canonical"
	// element. Empty when absent.
	CanonicalHref string `json:"canonical_href,omitempty"`

	// Links contains every anchor with a resolvable href, in document order.
	Links []LinkRecord `json:"links,omitempty"`
}

// PageAnalysis is the final record produced for one AnalysisTask.
// Exactly one PageAnalysis exists per submitted task; it is populated
// synchronously during the task's execution and never mutated afterwards.
//
// Invariant: Error is set iff the task could not reach the extraction stage
// (network failure, non-200 status, unparseable markup). In that case the
// extraction-derived fields (Indexable, CanonicalHref, CanonicalIsSelf,
// Title, MatchedLinks) remain unset.
type PageAnalysis struct {
	// URL is the page URL from the originating task.
	URL string `json:"url"`

	// StatusCode is the HTTP status code, or nil when no response arrived.
	StatusCode *int `json:"status_code,omitempty"`

	// Indexable reports whether the page allows indexing.
	// Nil when extraction never ran.
	Indexable *bool `json:"indexable,omitempty"`

	// CanonicalHref is the declared canonical URL, empty when absent.
	CanonicalHref string `json:"canonical_href,omitempty"`

	// CanonicalIsSelf reports whether the canonical URL points at the
	// fetched page itself (trailing slashes ignored). Nil when extraction
	// never ran or no canonical was declared.
	CanonicalIsSelf *bool `json:"canonical_is_self,omitempty"`

	// Title is the page title, empty when absent.
	Title string `json:"title,omitempty"`

	// MatchedLinks holds the links whose registrable domain equals the
	// target's, in document order, capped by the matcher.
	MatchedLinks []LinkRecord `json:"matched_links,omitempty"`

	// MatchStatus classifies the link-matching outcome.
	MatchStatus MatchStatus `json:"match_status"`

	// ActualAnchorText carries the text actually found when MatchStatus is
	// MatchStatusAnchorMismatch.
	ActualAnchorText string `json:"actual_anchor_text,omitempty"`

	// Error describes why the task never reached extraction.
	// Empty for every analyzed page, including NotFound outcomes.
	Error string `json:"error,omitempty"`
}

// linkDelimiter separates flattened links within a single CSV cell.
const linkDelimiter = " | "

// TabularHeader returns the column names for flat tabular export.
// The order matches TabularRow.
func TabularHeader() []string {
	return []string{
		"url",
		"status_code",
		"indexable",
		"canonical",
		"canonical_is_self",
		"title",
		"match_status",
		"actual_anchor",
		"matched_links",
		"matched_anchors",
		"matched_rels",
		"error",
	}
}

// TabularRow flattens the analysis into one row matching TabularHeader.
// Matched link hrefs, anchors, and rel sets are joined with a delimiter
// and land in parallel columns, so multi-link results survive the flattening.
func (p PageAnalysis) TabularRow() []string {
	hrefs := make([]string, 0, len(p.MatchedLinks))
	anchors := make([]string, 0, len(p.MatchedLinks))
	rels := make([]string, 0, len(p.MatchedLinks))
	for _, l := range p.MatchedLinks {
		hrefs = append(hrefs, l.AbsoluteHref)
		anchors = append(anchors, l.AnchorText)
		rels = append(rels, l.RelString())
	}

	return []string{
		p.URL,
		formatOptionalInt(p.StatusCode),
		formatOptionalBool(p.Indexable),
		p.CanonicalHref,
		formatOptionalBool(p.CanonicalIsSelf),
		p.Title,
		string(p.MatchStatus),
		p.ActualAnchorText,
		strings.Join(hrefs, linkDelimiter),
		strings.Join(anchors, linkDelimiter),
		strings.Join(rels, linkDelimiter),
		p.Error,
	}
}

func formatOptionalInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func formatOptionalBool(v *bool) string {
	if v == nil {
		return ""
	}
	return strconv.FormatBool(*v)
}

// Bool returns a pointer to b. Helper for populating optional fields.
func Bool(b bool) *bool { return &b }

// Int returns a pointer to i. Helper for populating optional fields.
func Int(i int) *int { return &i }
