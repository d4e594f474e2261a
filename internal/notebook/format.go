package notebook

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"regexp"
)

// indentStyle matches the indentation Colab uses when downloading notebooks.
const indentStyle = "  "

// licenseHeader is the Colab form title of the Apache license cell.
const licenseHeader = "#@title Licensed under the Apache License"

// requiredPatterns maps a description to a regexp every formatted notebook
// is expected to contain somewhere.
var requiredPatterns = map[string]*regexp.Regexp{
	"copyright":       regexp.MustCompile(`Copyright 20[1-9][0-9] The TensorFlow\s.*?\s?Authors`),
	"TF2 Colab magic": regexp.MustCompile(`%tensorflow_version 2\.x`),
}

// FormatOptions controls notebook normalization. Options are passed
// explicitly; the formatter reads no global state.
type FormatOptions struct {
	// PreserveOutputs keeps existing code cell outputs instead of clearing them.
	PreserveOutputs bool
	// Path of the notebook file, used to set the Colab notebook name.
	// May be empty.
	Path string
}

// FormatResult reports what a Format call did. Warnings are data; printing
// them is the caller's concern.
type FormatResult struct {
	Warnings []string
	// HasLicense is true when the Apache license cell was found.
	HasLicense bool
	// HasRequiredPatterns is true when every required regexp matched.
	HasRequiredPatterns bool
}

// Clean reports whether formatting produced no warnings.
func (r *FormatResult) Clean() bool {
	return r.HasLicense && r.HasRequiredPatterns
}

func (r *FormatResult) warnf(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// Format normalizes a notebook in place to the docs house style: empty cells
// removed, outputs stripped (unless preserved), Colab metadata rewritten, and
// the license cell collapsed to a form. The returned result carries any
// warnings produced along the way.
func Format(nb *Notebook, opts FormatOptions) *FormatResult {
	result := &FormatResult{}

	dropEmptyCells(nb)
	stripOutputs(nb, opts, result)
	updateMetadata(nb, opts)
	result.HasLicense = markLicenseCell(nb, result)
	result.HasRequiredPatterns = checkRequiredPatterns(nb, result)

	return result
}

// dropEmptyCells removes cells with no source content.
func dropEmptyCells(nb *Notebook) {
	kept := nb.Cells[:0]
	for _, cell := range nb.Cells {
		if !cell.IsEmpty() {
			kept = append(kept, cell)
		}
	}
	nb.Cells = kept
}

// stripOutputs clears code cell outputs and execution counts unless outputs
// are preserved.
func stripOutputs(nb *Notebook, opts FormatOptions, result *FormatResult) {
	if opts.PreserveOutputs {
		return
	}

	hadOutputs := false
	for i := range nb.Cells {
		cell := &nb.Cells[i]
		if cell.Type != CellCode || len(cell.Outputs) == 0 {
			continue
		}
		hadOutputs = true
		zero := 0
		cell.ExecutionCount = &zero
		cell.Outputs = []json.RawMessage{}
	}

	if hadOutputs {
		result.warnf("Removed the existing output cells.")
	}
}

// updateMetadata rewrites the Colab metadata block to the docs style.
// Colab's private output setting erases output cells on save, so it tracks
// the inverse of PreserveOutputs.
func updateMetadata(nb *Notebook, opts FormatOptions) {
	if nb.Metadata == nil {
		nb.Metadata = map[string]any{}
	}

	colab, _ := nb.Metadata["colab"].(map[string]any)
	if colab == nil {
		colab = map[string]any{}
	}

	if opts.Path != "" {
		colab["name"] = filepath.Base(opts.Path)
	}
	colab["private_outputs"] = !opts.PreserveOutputs
	colab["provenance"] = []any{}
	colab["toc_visible"] = true

	nb.Metadata["colab"] = colab
}

// markLicenseCell hides the license cell's code pane behind a Colab form and
// reports whether the license header exists anywhere in the notebook.
func markLicenseCell(nb *Notebook, result *FormatResult) bool {
	hasLicense := false

	for i := range nb.Cells {
		cell := &nb.Cells[i]
		if !bytes.Contains([]byte(cell.Text()), []byte(licenseHeader)) {
			continue
		}
		hasLicense = true
		if cell.Metadata == nil {
			cell.Metadata = map[string]any{}
		}
		cell.Metadata["cellView"] = "form"
	}

	if !hasLicense {
		result.warnf("Missing license: %s", licenseHeader)
	}
	return hasLicense
}

// checkRequiredPatterns verifies each required regexp appears in at least
// one cell.
func checkRequiredPatterns(nb *Notebook, result *FormatResult) bool {
	hasAll := true

	for desc, re := range requiredPatterns {
		found := false
		for _, cell := range nb.Cells {
			if re.MatchString(cell.Text()) {
				found = true
				break
			}
		}
		if !found {
			result.warnf("Missing %s: %s", desc, re.String())
			hasAll = false
		}
	}
	return hasAll
}

// Marshal renders the notebook as indented JSON with metadata first and
// cells last, the order Colab writes, followed by a trailing newline.
func Marshal(nb *Notebook) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("{\n")

	writeField := func(name string, v any, last bool) error {
		data, err := json.MarshalIndent(v, indentStyle, indentStyle)
		if err != nil {
			return fmt.Errorf("failed to marshal %s: %w", name, err)
		}
		buf.WriteString(indentStyle)
		buf.WriteString(fmt.Sprintf("%q: ", name))
		buf.Write(data)
		if !last {
			buf.WriteString(",")
		}
		buf.WriteString("\n")
		return nil
	}

	metadata := nb.Metadata
	if metadata == nil {
		metadata = map[string]any{}
	}
	if err := writeField("metadata", metadata, false); err != nil {
		return nil, err
	}
	if err := writeField("nbformat", nb.NBFormat, false); err != nil {
		return nil, err
	}
	if err := writeField("nbformat_minor", nb.NBFormatMinor, false); err != nil {
		return nil, err
	}
	if err := writeField("cells", nb.Cells, true); err != nil {
		return nil, err
	}

	buf.WriteString("}\n")
	return buf.Bytes(), nil
}
