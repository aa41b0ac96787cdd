package report

import (
	"encoding/json"
	"io"

	"github.com/linklens/linklens/internal/model"
)

// JSONWriter outputs the full records for programmatic processing.
//
// Design decision: We use standard encoding/json rather than a third-party
// JSON library because the records are small, serialization is not on the
// hot path, and the stdlib behavior is stable across Go versions.
type JSONWriter struct {
	baseWriter

	// indent enables pretty-printed output.
	indent bool

	// indentPrefix is the prefix for each line in indented output.
	indentPrefix string

	// indentString is the per-level indentation string.
	indentString string
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithIndent enables pretty-printed JSON with the given prefix and indent.
func WithIndent(prefix, indent string) JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = true
		w.indentPrefix = prefix
		w.indentString = indent
	}
}

// WithPrettyPrint enables pretty-printed JSON with default indentation.
// Convenience wrapper for WithIndent("", "  ").
func WithPrettyPrint() JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = true
		w.indentPrefix = ""
		w.indentString = "  "
	}
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{baseWriter: newBaseWriter(output)}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write outputs the results as a JSON array.
func (w *JSONWriter) Write(results []model.PageAnalysis) (int, error) {
	var (
		data []byte
		err  error
	)
	if w.indent {
		data, err = json.MarshalIndent(results, w.indentPrefix, w.indentString)
	} else {
		data, err = json.Marshal(results)
	}
	if err != nil {
		return 0, err
	}
	data = append(data, '\n')

	n, err := w.output.Write(data)
	return n, err
}
