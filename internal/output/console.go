package output

import (
	"fmt"
	"io"
	"time"

	"github.com/codeadmin-peritiae/docs/internal/runner"
)

// ConsoleFormatter renders run results for a human at a terminal: one lint
// report per file followed by a run summary.
type ConsoleFormatter struct {
	writer  io.Writer
	verbose bool
}

// NewConsoleFormatter creates a console formatter. Verbose shows the
// per-cell member entries beneath each aggregate line.
func NewConsoleFormatter(w io.Writer, verbose bool) *ConsoleFormatter {
	return &ConsoleFormatter{writer: w, verbose: verbose}
}

// Format writes the run result as console text.
func (f *ConsoleFormatter) Format(result *runner.RunResult) error {
	for _, file := range result.Files {
		fmt.Fprintf(f.writer, "Notebook: %s\n", file.Path)

		if file.Skipped {
			fmt.Fprintf(f.writer, "  Skipped: %s\n\n", file.SkipReason)
			continue
		}
		if report := file.Report(); report != nil {
			fmt.Fprint(f.writer, report.Render(f.verbose))
		}
		fmt.Fprintln(f.writer)
	}

	s := result.Summary
	fmt.Fprintf(f.writer, "Files: %d total, %d passed, %d failed, %d skipped\n",
		s.TotalFiles, s.PassedFiles, s.FailedFiles, s.SkippedFiles)
	fmt.Fprintf(f.writer, "Checks: %d total, %d passed, %d failed\n",
		s.TotalChecks, s.PassedChecks, s.FailedChecks)
	fmt.Fprintf(f.writer, "Duration: %s\n", result.Duration.Round(time.Millisecond))
	return nil
}
