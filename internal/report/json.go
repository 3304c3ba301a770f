package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/nao1215/casecrawl/internal/model"
)

// JSONWriter outputs summaries in JSON format.
type JSONWriter struct {
	baseWriter

	// indentString is the indentation per level; empty means compact output.
	indentString string
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithPrettyPrint enables indented JSON output.
func WithPrettyPrint() JSONWriterOption {
	return func(w *JSONWriter) {
		w.indentString = "  "
	}
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{
		baseWriter: newBaseWriter(output),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write outputs the summary as a single JSON document followed by a newline.
func (w *JSONWriter) Write(summary *model.Summary) (int, error) {
	var (
		data []byte
		err  error
	)
	if w.indentString != "" {
		data, err = json.MarshalIndent(summary, "", w.indentString)
	} else {
		data, err = json.Marshal(summary)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to encode summary: %w", err)
	}
	return w.output.Write(append(data, '\n'))
}
