// Package notebook contains the domain model for Jupyter notebook documents.
// These are pure domain types with no infrastructure dependencies; parsing
// and file I/O live in the loader.
package notebook

import (
	"encoding/json"
	"strings"
)

// CellType identifies the kind of content a cell holds.
type CellType string

const (
	// CellCode is an executable code cell.
	CellCode CellType = "code"
	// CellMarkdown is a prose (markdown) cell.
	CellMarkdown CellType = "markdown"
	// CellRaw is an unrendered raw cell.
	CellRaw CellType = "raw"
)

// Validate returns an error if the cell type is not a recognized kind.
func (t CellType) Validate() error {
	switch t {
	case CellCode, CellMarkdown, CellRaw:
		return nil
	default:
		return &ParseError{Reason: "unrecognized cell type: " + string(t)}
	}
}

// SourceLines holds cell source as a list of lines. nbformat permits either
// a single string or a list of strings on the wire; both decode into the
// line-list form, and it always marshals back as a list.
type SourceLines []string

// UnmarshalJSON accepts both wire representations of cell source.
func (s *SourceLines) UnmarshalJSON(data []byte) error {
	var lines []string
	if err := json.Unmarshal(data, &lines); err == nil {
		*s = lines
		return nil
	}

	var joined string
	if err := json.Unmarshal(data, &joined); err != nil {
		return err
	}
	if joined == "" {
		*s = []string{}
		return nil
	}
	*s = splitAfterNewlines(joined)
	return nil
}

// splitAfterNewlines breaks text into lines that keep their trailing newline,
// matching how notebook tooling stores multiline source.
func splitAfterNewlines(text string) []string {
	var lines []string
	for {
		i := strings.IndexByte(text, '\n')
		if i < 0 {
			if text != "" {
				lines = append(lines, text)
			}
			return lines
		}
		lines = append(lines, text[:i+1])
		text = text[i+1:]
	}
}

// Cell is a single unit of notebook content.
type Cell struct {
	Type           CellType          `json:"cell_type"`
	Source         SourceLines       `json:"source"`
	Metadata       map[string]any    `json:"metadata,omitempty"`
	Outputs        []json.RawMessage `json:"outputs,omitempty"`
	ExecutionCount *int              `json:"execution_count,omitempty"`
}

// Text returns the cell content as a single string. Notebook JSON stores
// source as a list of lines that already carry their newlines.
func (c *Cell) Text() string {
	return strings.Join(c.Source, "")
}

// IsEmpty reports whether the cell has no source content at all.
func (c *Cell) IsEmpty() bool {
	for _, line := range c.Source {
		if line != "" {
			return false
		}
	}
	return true
}

// Notebook is a parsed notebook document: an ordered sequence of cells plus
// document-level metadata. A Notebook is only ever constructed fully
// populated; parse failures surface as *ParseError, never as a partial value.
type Notebook struct {
	Cells         []Cell         `json:"cells"`
	Metadata      map[string]any `json:"metadata"`
	NBFormat      int            `json:"nbformat"`
	NBFormatMinor int            `json:"nbformat_minor"`
}

// CodeCells returns the code cells in document order.
func (n *Notebook) CodeCells() []Cell {
	var out []Cell
	for _, c := range n.Cells {
		if c.Type == CellCode {
			out = append(out, c)
		}
	}
	return out
}

// MarkdownCells returns the prose cells in document order.
func (n *Notebook) MarkdownCells() []Cell {
	var out []Cell
	for _, c := range n.Cells {
		if c.Type == CellMarkdown {
			out = append(out, c)
		}
	}
	return out
}
