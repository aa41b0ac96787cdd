package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"regexp"
	"strings"
	"testing"

	"github.com/linklens/linklens/internal/model"
)

func sampleResults() []model.PageAnalysis {
	return []model.PageAnalysis{
		{
			URL:         "https://a.com/p",
			StatusCode:  model.Int(200),
			Indexable:   model.Bool(true),
			Title:       "A Page",
			MatchStatus: model.MatchStatusMatched,
			MatchedLinks: []model.LinkRecord{
				{AbsoluteHref: "https://target.com/landing", AnchorText: "Read more", RelTokens: []string{"nofollow"}, TargetDomainMatch: true},
			},
		},
		{
			URL:         "https://b.com/q",
			MatchStatus: model.MatchStatusSkipped,
			Error:       "fetch https://b.com/q: timeout: deadline exceeded",
		},
	}
}

func TestCSVWriter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	n, err := NewCSVWriter(&buf).Write(sampleResults())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != buf.Len() {
		t.Errorf("reported %d bytes, wrote %d", n, buf.Len())
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header + 2 rows, got %d rows", len(rows))
	}
	if rows[0][0] != "url" {
		t.Errorf("unexpected header: %v", rows[0])
	}
	if rows[1][0] != "https://a.com/p" || !strings.Contains(strings.Join(rows[1], ","), "nofollow") {
		t.Errorf("matched row incomplete: %v", rows[1])
	}
	if !strings.Contains(strings.Join(rows[2], ","), "timeout") {
		t.Errorf("error row must carry the error text: %v", rows[2])
	}
}

func TestJSONWriter(t *testing.T) {
	t.Parallel()

	t.Run("round-trips through encoding/json", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewJSONWriter(&buf).Write(sampleResults()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var decoded []model.PageAnalysis
		if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
			t.Fatalf("output is not valid JSON: %v", err)
		}
		if len(decoded) != 2 {
			t.Fatalf("expected 2 records, got %d", len(decoded))
		}
		if decoded[0].MatchStatus != model.MatchStatusMatched {
			t.Errorf("unexpected match status: %q", decoded[0].MatchStatus)
		}
	})

	t.Run("pretty print indents", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewJSONWriter(&buf, WithPrettyPrint()).Write(sampleResults()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(buf.String(), "\n  ") {
			t.Error("expected indented output")
		}
	})
}

func TestMarkdownWriter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if _, err := NewMarkdownWriter(&buf).Write(sampleResults()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"# Link Audit Report", "## Summary", "## Results", "https://a.com/p"} {
		if !strings.Contains(out, want) {
			t.Errorf("markdown output missing %q", want)
		}
	}
	if !regexp.MustCompile(`\|\s*Matched\s*\|\s*1\s*\|`).MatchString(out) {
		t.Errorf("summary should count 1 matched page:\n%s", out)
	}
	if !regexp.MustCompile(`\|\s*Errors\s*\|\s*1\s*\|`).MatchString(out) {
		t.Errorf("summary should count 1 errored page:\n%s", out)
	}
}

func TestMultiWriter(t *testing.T) {
	t.Parallel()

	var a, b bytes.Buffer
	mw := NewMultiWriter(NewCSVWriter(&a), NewCSVWriter(&b))

	n, err := mw.Write(sampleResults())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.String() != b.String() {
		t.Error("both destinations should receive identical output")
	}
	if n != a.Len()+b.Len() {
		t.Errorf("expected total bytes %d, got %d", a.Len()+b.Len(), n)
	}
}
