package report

import (
	"io"

	"github.com/linklens/linklens/internal/model"
)

// Writer defines the interface for report output.
// Implementations render a batch of analyses in a specific format.
//
// Design decision: We use an interface rather than format flags on one
// writer so destinations (stdout, files, buffers) and formats compose
// freely, and so MultiWriter can fan out to several at once.
type Writer interface {
	// Write outputs all analyses to the configured destination.
	// Returns the number of bytes written and any error encountered.
	Write(results []model.PageAnalysis) (int, error)
}

// MultiWriter writes the same results to multiple Writers.
//
// Design decision: This is a separate type rather than io.MultiWriter
// because our Writer renders records, not raw bytes.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// Write outputs the results to all configured Writers.
// Returns the total bytes written; stops on the first error.
func (m *MultiWriter) Write(results []model.PageAnalysis) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.Write(results)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// baseWriter provides the shared output destination for report writers.
type baseWriter struct {
	output io.Writer
}

func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}
