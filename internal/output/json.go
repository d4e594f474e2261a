package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/codeadmin-peritiae/docs/internal/runner"
)

// JSONFormatter renders a run result as a single JSON document followed by
// a newline, suitable both for piping into jq and for CI artifact capture.
type JSONFormatter struct {
	writer io.Writer
	indent bool
}

// NewJSONFormatter creates a JSON formatter. With indent, output is
// pretty-printed with two-space indentation.
func NewJSONFormatter(w io.Writer, indent bool) *JSONFormatter {
	return &JSONFormatter{writer: w, indent: indent}
}

// Format writes the run result as JSON.
func (f *JSONFormatter) Format(result *runner.RunResult) error {
	encoder := json.NewEncoder(f.writer)
	if f.indent {
		encoder.SetIndent("", "  ")
	}

	// Encode appends the trailing newline itself.
	if err := encoder.Encode(result); err != nil {
		return fmt.Errorf("failed to encode run result: %w", err)
	}
	return nil
}
