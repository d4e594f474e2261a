// Package output provides formatters for nbcheck lint run results.
package output

import (
	"fmt"
	"io"

	"github.com/codeadmin-peritiae/docs/internal/runner"
)

// Formatter writes a run result to its output in one format.
type Formatter interface {
	Format(result *runner.RunResult) error
}

// Options carries shared formatter settings.
type Options struct {
	// Verbose enables per-cell member entries in console output.
	Verbose bool
	// Indent pretty-prints JSON output.
	Indent bool
}

// NewFormatter returns a formatter for the given format name.
func NewFormatter(format string, writer io.Writer, opts Options) (Formatter, error) {
	switch format {
	case "console":
		return NewConsoleFormatter(writer, opts.Verbose), nil
	case "json":
		return NewJSONFormatter(writer, opts.Indent), nil
	case "yaml":
		return NewYAMLFormatter(writer), nil
	case "junit":
		return NewJUnitFormatter(writer), nil
	case "sarif":
		return NewSARIFFormatter(writer), nil
	default:
		return nil, fmt.Errorf(
			"unknown format: %s (supported: %v)",
			format, SupportedFormats(),
		)
	}
}

// SupportedFormats returns list of available format names.
func SupportedFormats() []string {
	return []string{"console", "json", "yaml", "junit", "sarif"}
}
