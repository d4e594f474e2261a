package lint

import (
	"fmt"

	"github.com/codeadmin-peritiae/docs/internal/notebook"
)

// Linter dispatches registered rules over parsed notebooks. The registry is
// read-only after setup, so one Linter may serve any number of documents,
// including from parallel workers; each Run produces an independent Report.
type Linter struct {
	registry *Registry
}

// NewLinter creates a linter over a populated registry.
func NewLinter(registry *Registry) *Linter {
	return &Linter{registry: registry}
}

// Run executes every registered rule against one document and returns its
// report. File-scoped rules run once against the raw source; cell-scoped
// rules run per matching cell and aggregate into a group verdict.
//
// A nil document is a caller bug, reported as an error with no partial
// report. Configuration and callback contract violations are fatal and
// likewise abort with no report.
func (l *Linter) Run(nb *notebook.Notebook, source []byte, path string) (*Report, error) {
	if nb == nil {
		return nil, fmt.Errorf("lint %s: no parsed document", path)
	}

	report := NewReport(path)

	// File-level scope: one invocation per rule, no aggregation.
	for _, rule := range l.registry.Lookup(ScopeFile, CondAny) {
		ok, err := rule.Check(string(source), Unit{Doc: nb, Index: -1}, path)
		if err != nil {
			return nil, &ContractError{Rule: rule.Name, Path: path, Err: err}
		}
		report.AddEntry(rule, ok)
	}

	// Cell-level scopes: per-cell member entries, then one aggregate entry.
	for _, scope := range cellScopes {
		for _, cond := range conditions {
			for _, rule := range l.registry.Lookup(scope, cond) {
				ok, err := l.runGroup(rule, nb, report, path)
				if err != nil {
					return nil, err
				}
				report.AddAggregateEntry(rule, ok)
			}
		}
	}

	return report, nil
}

// runGroup runs one cell-scoped rule over every matching cell, appending a
// member entry per invocation, and returns the aggregated group verdict.
// Cells outside the rule's scope contribute nothing, not even a skip marker.
// A rule whose scope matches no cells passes vacuously under both
// conditions.
func (l *Linter) runGroup(rule Rule, nb *notebook.Notebook, report *Report, path string) (bool, error) {
	var verdicts []bool

	for i := range nb.Cells {
		cell := &nb.Cells[i]
		if !rule.Scope.Matches(cell.Type) {
			continue
		}

		ok, err := rule.Check(cell.Text(), Unit{Doc: nb, Cell: cell, Index: i}, path)
		if err != nil {
			return false, &ContractError{Rule: rule.Name, Path: path, Err: err}
		}
		verdicts = append(verdicts, ok)
		report.AddMemberEntry(rule, ok, i)
	}

	if len(verdicts) == 0 {
		return true, nil
	}

	switch rule.Condition {
	case CondAny:
		for _, ok := range verdicts {
			if ok {
				return true, nil
			}
		}
		return false, nil
	case CondAll:
		for _, ok := range verdicts {
			if !ok {
				return false, nil
			}
		}
		return true, nil
	default:
		return false, &ConfigError{Rule: rule.Name, Condition: rule.Condition}
	}
}
