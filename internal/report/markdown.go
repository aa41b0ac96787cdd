package report

import (
	"io"
	"strconv"

	"github.com/nao1215/markdown"

	"github.com/linklens/linklens/internal/model"
)

// MarkdownWriter outputs a human-readable audit summary.
// The format is GitHub Flavored Markdown, suitable for sharing with the
// outreach team or pasting into an issue.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{baseWriter: newBaseWriter(output)}
}

// Write outputs a summary table followed by per-page results.
func (w *MarkdownWriter) Write(results []model.PageAnalysis) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("Link Audit Report")
	md.PlainText("")

	w.writeSummary(md, results)
	w.writeResults(md, results)

	return len(md.String()), md.Build()
}

// writeSummary writes outcome counts across the whole batch.
func (w *MarkdownWriter) writeSummary(md *markdown.Markdown, results []model.PageAnalysis) {
	var matched, mismatched, notFound, skipped, errored int
	for _, res := range results {
		if res.Error != "" {
			errored++
			continue
		}
		switch res.MatchStatus {
		case model.MatchStatusMatched:
			matched++
		case model.MatchStatusAnchorMismatch:
			mismatched++
		case model.MatchStatusNotFound:
			notFound++
		case model.MatchStatusSkipped:
			skipped++
		}
	}

	md.H2("Summary")
	md.Table(markdown.TableSet{
		Header: []string{"Outcome", "Count"},
		Rows: [][]string{
			{"Pages checked", strconv.Itoa(len(results))},
			{"Matched", strconv.Itoa(matched)},
			{"Anchor mismatch", strconv.Itoa(mismatched)},
			{"Link not found", strconv.Itoa(notFound)},
			{"Skipped", strconv.Itoa(skipped)},
			{"Errors", strconv.Itoa(errored)},
		},
	})
	md.PlainText("")
}

// writeResults writes one table row per page.
func (w *MarkdownWriter) writeResults(md *markdown.Markdown, results []model.PageAnalysis) {
	rows := make([][]string, 0, len(results))
	for _, res := range results {
		rows = append(rows, []string{
			res.URL,
			statusCell(res),
			string(res.MatchStatus),
			anchorCell(res),
			indexableCell(res),
			res.Title,
		})
	}

	md.H2("Results")
	md.Table(markdown.TableSet{
		Header: []string{"Page URL", "Status", "Match", "Anchor", "Indexable", "Title"},
		Rows:   rows,
	})
}

func statusCell(res model.PageAnalysis) string {
	if res.Error != "" {
		return "error: " + res.Error
	}
	if res.StatusCode == nil {
		return ""
	}
	return strconv.Itoa(*res.StatusCode)
}

func anchorCell(res model.PageAnalysis) string {
	if res.MatchStatus == model.MatchStatusAnchorMismatch {
		return "found: " + res.ActualAnchorText
	}
	if len(res.MatchedLinks) > 0 {
		return res.MatchedLinks[0].AnchorText
	}
	return ""
}

func indexableCell(res model.PageAnalysis) string {
	if res.Indexable == nil {
		return ""
	}
	return strconv.FormatBool(*res.Indexable)
}
