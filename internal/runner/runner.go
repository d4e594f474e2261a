// Package runner executes the linter across many notebook files. The rule
// registry is the only object shared between workers; every file gets its
// own report.
package runner

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"runtime"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/codeadmin-peritiae/docs/internal/lint"
	"github.com/codeadmin-peritiae/docs/internal/notebook"
)

// Runner lints a batch of notebook files with a fixed rule registry.
type Runner struct {
	linter *lint.Linter
	loader *notebook.Loader
	// Jobs bounds parallel file workers; <=0 means one worker per CPU.
	Jobs int
}

// New creates a runner over a populated registry.
func New(registry *lint.Registry, loader *notebook.Loader) *Runner {
	return &Runner{
		linter: lint.NewLinter(registry),
		loader: loader,
	}
}

// EntryResult is the serializable form of one status entry.
type EntryResult struct {
	Name    string `json:"name" yaml:"name"`
	Rule    string `json:"rule" yaml:"rule"`
	Style   string `json:"style,omitempty" yaml:"style,omitempty"`
	Message string `json:"message,omitempty" yaml:"message,omitempty"`
	Group   string `json:"group,omitempty" yaml:"group,omitempty"`
	Member  bool   `json:"member" yaml:"member"`
	Success bool   `json:"success" yaml:"success"`
}

// FileResult records the outcome for a single input file. A file is either
// skipped (not a notebook, or failed to parse) or carries a full report.
type FileResult struct {
	Path       string        `json:"path" yaml:"path"`
	Skipped    bool          `json:"skipped,omitempty" yaml:"skipped,omitempty"`
	SkipReason string        `json:"skip_reason,omitempty" yaml:"skip_reason,omitempty"`
	Success    bool          `json:"success" yaml:"success"`
	Entries    []EntryResult `json:"entries,omitempty" yaml:"entries,omitempty"`

	report *lint.Report
}

// Report returns the underlying lint report, or nil for skipped files.
func (f *FileResult) Report() *lint.Report {
	return f.report
}

// RunSummary provides aggregate statistics about a run.
type RunSummary struct {
	TotalFiles   int `json:"total_files" yaml:"total_files"`
	PassedFiles  int `json:"passed_files" yaml:"passed_files"`
	FailedFiles  int `json:"failed_files" yaml:"failed_files"`
	SkippedFiles int `json:"skipped_files" yaml:"skipped_files"`
	TotalChecks  int `json:"total_checks" yaml:"total_checks"`
	PassedChecks int `json:"passed_checks" yaml:"passed_checks"`
	FailedChecks int `json:"failed_checks" yaml:"failed_checks"`
}

// RunResult is the complete result of linting a batch of files. Files keep
// their input order regardless of worker scheduling.
type RunResult struct {
	RunID       string    `json:"run_id" yaml:"run_id"`
	ToolVersion string    `json:"tool_version,omitempty" yaml:"tool_version,omitempty"`
	StartTime   time.Time `json:"start_time" yaml:"start_time"`
	// Duration is for in-process consumers; serialized output carries
	// DurationMS so json/yaml readers get milliseconds, not nanoseconds.
	Duration   time.Duration `json:"-" yaml:"-"`
	DurationMS int64         `json:"duration_ms" yaml:"duration_ms"`
	Files      []FileResult  `json:"files" yaml:"files"`
	Summary    RunSummary    `json:"summary" yaml:"summary"`
}

// Success reports whether every file passed and none were skipped.
func (r *RunResult) Success() bool {
	return r.Summary.FailedFiles == 0 && r.Summary.SkippedFiles == 0
}

// Run lints every path. Parse failures and non-notebook files are recorded
// as skipped and do not stop the run; configuration and contract errors are
// fatal and abort it.
func (r *Runner) Run(ctx context.Context, toolVersion string, paths []string) (*RunResult, error) {
	result := &RunResult{
		RunID:       uuid.NewString(),
		ToolVersion: toolVersion,
		StartTime:   time.Now(),
		Files:       make([]FileResult, len(paths)),
	}

	jobs := r.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)

	for i, path := range paths {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			fr, err := r.lintFile(path)
			if err != nil {
				return err
			}
			result.Files[i] = fr
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	result.finalize()
	return result, nil
}

// lintFile produces the result for one input path.
func (r *Runner) lintFile(path string) (FileResult, error) {
	if filepath.Ext(path) != ".ipynb" {
		slog.Warn("not an .ipynb file, skipping", "path", path)
		return FileResult{Path: path, Skipped: true, SkipReason: "not an .ipynb file"}, nil
	}

	nb, source, err := r.loader.Load(path)
	if err != nil {
		var perr *notebook.ParseError
		if errors.As(err, &perr) {
			slog.Warn("unable to load notebook, skipping", "path", path, "error", err)
			return FileResult{Path: path, Skipped: true, SkipReason: perr.Error()}, nil
		}
		return FileResult{}, err
	}

	report, err := r.linter.Run(nb, source, path)
	if err != nil {
		return FileResult{}, err
	}

	fr := FileResult{
		Path:    path,
		Success: report.OverallSuccess(),
		report:  report,
	}
	for _, entry := range report.Entries() {
		fr.Entries = append(fr.Entries, EntryResult{
			Name:    entry.Name,
			Rule:    entry.Rule.Name,
			Style:   entry.Rule.Style,
			Message: entry.Rule.Message,
			Group:   entry.Group,
			Member:  entry.IsGroupEntry,
			Success: entry.Success,
		})
	}
	return fr, nil
}

// finalize computes duration and summary statistics.
func (r *RunResult) finalize() {
	r.Duration = time.Since(r.StartTime)
	r.DurationMS = r.Duration.Milliseconds()
	r.Summary = RunSummary{TotalFiles: len(r.Files)}

	for _, file := range r.Files {
		switch {
		case file.Skipped:
			r.Summary.SkippedFiles++
		case file.Success:
			r.Summary.PassedFiles++
		default:
			r.Summary.FailedFiles++
		}

		if file.report == nil {
			continue
		}
		s := file.report.Summarize()
		r.Summary.TotalChecks += s.TotalChecks
		r.Summary.PassedChecks += s.PassedChecks
		r.Summary.FailedChecks += s.FailedChecks
	}
}
