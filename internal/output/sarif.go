package output

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/owenrumney/go-sarif/v3/pkg/report/v210/sarif"

	"github.com/codeadmin-peritiae/docs/internal/runner"
)

// SARIFFormatter formats run results as SARIF 2.1.0 JSON. Lint rules map to
// SARIF rules; top-level check outcomes map to results located at the
// notebook file.
type SARIFFormatter struct {
	writer io.Writer
}

// NewSARIFFormatter creates a new SARIF formatter.
func NewSARIFFormatter(writer io.Writer) *SARIFFormatter {
	return &SARIFFormatter{writer: writer}
}

// Format writes the run result as SARIF 2.1.0 JSON.
func (f *SARIFFormatter) Format(result *runner.RunResult) error {
	report := sarif.NewReport()

	run := sarif.NewRunWithInformationURI("nbcheck", "https://github.com/codeadmin-peritiae/docs")
	if result.ToolVersion != "" {
		run.Tool.Driver.Version = &result.ToolVersion
	}

	mapper := newSARIFMapper(result)
	mapper.mapToRun(run)

	report.AddRun(run)

	if err := report.Write(f.writer); err != nil {
		return fmt.Errorf("failed to write SARIF output: %w", err)
	}

	_, err := f.writer.Write([]byte("\n"))
	return err
}

type sarifMapper struct {
	result *runner.RunResult
	cwd    string
	rules  map[string]bool // rule IDs already added to the driver
}

func newSARIFMapper(result *runner.RunResult) *sarifMapper {
	cwd, _ := os.Getwd() // Best effort, ignore error
	return &sarifMapper{
		result: result,
		cwd:    cwd,
		rules:  make(map[string]bool),
	}
}

// mapToRun populates the SARIF run with rules and results.
func (m *sarifMapper) mapToRun(run *sarif.Run) {
	for _, file := range m.result.Files {
		if file.Skipped {
			continue
		}
		for _, entry := range file.Entries {
			if entry.Member {
				continue
			}
			m.addRule(run, entry)
			run.AddResult(m.mapEntry(file, entry))
		}
	}
}

// addRule registers one lint rule with the SARIF driver, once.
func (m *sarifMapper) addRule(run *sarif.Run, entry runner.EntryResult) {
	id := ruleID(entry)
	if m.rules[id] {
		return
	}
	m.rules[id] = true

	rule := sarif.NewReportingDescriptor().WithID(id)
	rule.WithName(entry.Rule)

	desc := entry.Message
	if desc == "" {
		desc = entry.Rule
	}
	rule.WithShortDescription(&sarif.MultiformatMessageString{Text: &desc})

	rule.WithDefaultConfiguration(&sarif.ReportingConfiguration{
		Level: "error",
	})

	run.Tool.Driver.AddRule(rule)
}

// mapEntry converts one top-level check outcome to a SARIF result.
func (m *sarifMapper) mapEntry(file runner.FileResult, entry runner.EntryResult) *sarif.Result {
	result := sarif.NewRuleResult(ruleID(entry))

	if entry.Success {
		result.Level = "note"
		result.Kind = "pass"
	} else {
		result.Level = "error"
		result.Kind = "fail"
	}

	msg := entry.Message
	if msg == "" {
		msg = fmt.Sprintf("check %s", entry.Name)
	}
	result.Message = sarif.NewTextMessage(msg)

	pLoc := sarif.NewPhysicalLocation().
		WithArtifactLocation(sarif.NewArtifactLocation().WithURI(m.normalizeURI(file.Path)))
	result.Locations = []*sarif.Location{sarif.NewLocation().WithPhysicalLocation(pLoc)}

	return result
}

// ruleID is the stable SARIF rule identifier for an entry.
func ruleID(entry runner.EntryResult) string {
	if entry.Style == "" {
		return entry.Rule
	}
	return entry.Style + "/" + entry.Rule
}

// normalizeURI converts a file path to a SARIF-compliant URI.
func (m *sarifMapper) normalizeURI(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.ToSlash(path) // Fallback to original
	}

	if m.cwd != "" {
		if rel, err := filepath.Rel(m.cwd, abs); err == nil && !strings.HasPrefix(rel, "..") {
			return filepath.ToSlash(rel)
		}
	}

	return "file://" + filepath.ToSlash(abs)
}
