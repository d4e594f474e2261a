package lint

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// Entry records the outcome of one rule invocation. A cell-scoped rule
// produces one member entry per selected cell plus a single aggregate entry
// carrying the group verdict; entries of one group share the rule name as
// their Group key. The aggregate is the one entry of a group with
// IsGroupEntry=false.
type Entry struct {
	Rule    Rule
	Success bool
	// Name defaults to the rule name; member entries are disambiguated
	// with the cell index.
	Name  string
	Group string
	// IsGroupEntry marks a member (child) of a group. Only entries with
	// IsGroupEntry=false count toward overall success.
	IsGroupEntry bool
}

// Report owns the ordered status entries of a lint run over exactly one
// document. Entries appear in rule registration order and, within a rule,
// in document cell order with the aggregate appended last.
type Report struct {
	Path    string
	entries []Entry
}

// NewReport creates an empty report for the document at path.
func NewReport(path string) *Report {
	return &Report{Path: path}
}

// AddEntry appends a top-level entry for a file-scoped rule.
func (r *Report) AddEntry(rule Rule, success bool) {
	r.entries = append(r.entries, Entry{
		Rule:    rule,
		Success: success,
		Name:    rule.Name,
	})
}

// AddMemberEntry appends a group member entry for one cell invocation.
func (r *Report) AddMemberEntry(rule Rule, success bool, cellIndex int) {
	r.entries = append(r.entries, Entry{
		Rule:         rule,
		Success:      success,
		Name:         fmt.Sprintf("%s__cell_%d", rule.Name, cellIndex),
		Group:        rule.Name,
		IsGroupEntry: true,
	})
}

// AddAggregateEntry appends the aggregate verdict entry of a cell-scoped
// rule. It shares the group key with the rule's members but is excluded
// from the member set, so it counts toward overall success.
func (r *Report) AddAggregateEntry(rule Rule, success bool) {
	r.entries = append(r.entries, Entry{
		Rule:    rule,
		Success: success,
		Name:    rule.Name,
		Group:   rule.Name,
	})
}

// Entries returns all entries in report order.
func (r *Report) Entries() []Entry {
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// OverallSuccess is true iff every non-member entry passed. Member entries
// never affect overall success; they exist for diagnostic display.
func (r *Report) OverallSuccess() bool {
	ok := true
	for _, entry := range r.entries {
		if !entry.IsGroupEntry && !entry.Success {
			ok = false
		}
	}
	return ok
}

// Summary holds aggregate counts over a report.
type Summary struct {
	TotalChecks   int
	PassedChecks  int
	FailedChecks  int
	TotalMembers  int
	PassedMembers int
	FailedMembers int
}

// Summarize counts top-level and member entries.
func (r *Report) Summarize() Summary {
	var s Summary
	for _, entry := range r.entries {
		if entry.IsGroupEntry {
			s.TotalMembers++
			if entry.Success {
				s.PassedMembers++
			} else {
				s.FailedMembers++
			}
			continue
		}
		s.TotalChecks++
		if entry.Success {
			s.PassedChecks++
		} else {
			s.FailedChecks++
		}
	}
	return s
}

var (
	passColor      = color.New(color.FgGreen)
	failColor      = color.New(color.FgHiRed)
	failChildColor = color.New(color.FgYellow)
)

// statusText renders an entry verdict for the console. Group members fail
// in yellow, top-level entries in red.
func statusText(entry Entry) string {
	if entry.Success {
		return passColor.Sprint("Pass")
	}
	if entry.IsGroupEntry {
		return failChildColor.Sprint("Fail")
	}
	return failColor.Sprint("Fail")
}

// Render produces the console report. Top-level lines are exactly the
// non-member entries, annotated with style set and message. With verbose,
// each aggregate line is followed by its member entries for diagnosis;
// without it, members are suppressed from output while still counted
// internally. An entry with no recorded members shows no child block.
func (r *Report) Render(verbose bool) string {
	members := make(map[string][]Entry)
	if verbose {
		for _, entry := range r.entries {
			if entry.IsGroupEntry {
				members[entry.Group] = append(members[entry.Group], entry)
			}
		}
	}

	var b strings.Builder
	for _, entry := range r.entries {
		if entry.IsGroupEntry {
			continue
		}

		b.WriteString(statusText(entry))
		b.WriteString(" | ")
		b.WriteString(entry.Rule.Style)
		b.WriteString("::")
		b.WriteString(entry.Name)
		if entry.Rule.Message != "" {
			b.WriteString(" | ")
			b.WriteString(entry.Rule.Message)
		}
		b.WriteString("\n")

		children := members[entry.Group]
		if entry.Group == "" || len(children) == 0 {
			continue
		}
		b.WriteString("[All results]\n")
		for _, child := range children {
			fmt.Fprintf(&b, "- %s | %s\n", statusText(child), child.Name)
		}
		b.WriteString("\n")
	}
	return b.String()
}
