package report

import (
	"bytes"
	"encoding/csv"
	"io"

	"github.com/linklens/linklens/internal/model"
)

// CSVWriter outputs one row per analyzed page.
// Columns follow model.TabularHeader; multi-value fields are flattened
// into delimited cells so the full record survives a round trip through
// a spreadsheet.
type CSVWriter struct {
	baseWriter
}

// NewCSVWriter creates a CSVWriter that outputs to the given writer.
func NewCSVWriter(output io.Writer) *CSVWriter {
	return &CSVWriter{baseWriter: newBaseWriter(output)}
}

// Write outputs the header row followed by one row per analysis.
func (w *CSVWriter) Write(results []model.PageAnalysis) (int, error) {
	// Render into a buffer first so the byte count is exact and a partial
	// CSV never reaches the destination on encoding errors.
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)

	if err := cw.Write(model.TabularHeader()); err != nil {
		return 0, err
	}
	for _, res := range results {
		if err := cw.Write(res.TabularRow()); err != nil {
			return 0, err
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return 0, err
	}

	n, err := w.output.Write(buf.Bytes())
	return n, err
}
