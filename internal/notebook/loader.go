package notebook

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schema.json
var nbformatSchema []byte

// Loader reads notebook files from disk and parses them into Notebook
// values. One Loader is shared across parallel file workers, so anything it
// caches must be safe for concurrent use.
type Loader struct {
	// Strict enables JSON Schema validation against the embedded nbformat
	// schema in addition to the structural checks. Set it before the first
	// Load call.
	Strict bool

	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
}

// NewLoader creates a loader. Strict mode is off by default.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads and parses the notebook at path. It returns the parsed notebook
// together with the raw file contents; file-scoped lint rules receive the raw
// source. Any malformed document is reported as a *ParseError.
func (l *Loader) Load(path string) (*Notebook, []byte, error) {
	dir := filepath.Dir(path)
	base := filepath.Base(path)

	root, err := os.OpenRoot(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open notebook directory: %w", err)
	}
	defer func() {
		_ = root.Close() // Best-effort cleanup
	}()

	source, err := fsReadFile(root, base)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read notebook: %w", err)
	}

	nb, err := l.Parse(source)
	if err != nil {
		if perr, ok := err.(*ParseError); ok {
			perr.Path = path
		}
		return nil, nil, err
	}

	return nb, source, nil
}

// Parse decodes notebook JSON. The top-level value must be an object holding
// a list of cells under "cells"; anything else is a *ParseError rather than a
// partially populated Notebook.
func (l *Loader) Parse(source []byte) (*Notebook, error) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(source, &probe); err != nil {
		return nil, &ParseError{Reason: "not a JSON object", Err: err}
	}

	rawCells, ok := probe["cells"]
	if !ok {
		return nil, &ParseError{Reason: "unable to find list of cells"}
	}

	var nb Notebook
	if err := json.Unmarshal(source, &nb); err != nil {
		return nil, &ParseError{Reason: "malformed notebook structure", Err: err}
	}
	if nb.Cells == nil {
		// "cells" present but null or not a list.
		if !bytes.HasPrefix(bytes.TrimSpace(rawCells), []byte("[")) {
			return nil, &ParseError{Reason: "unable to find list of cells"}
		}
		nb.Cells = []Cell{}
	}

	for i := range nb.Cells {
		if err := nb.Cells[i].Type.Validate(); err != nil {
			return nil, &ParseError{
				Reason: fmt.Sprintf("cell %d", i),
				Err:    err,
			}
		}
	}

	if l.Strict {
		if err := l.validateSchema(source); err != nil {
			return nil, &ParseError{Reason: "schema validation failed", Err: err}
		}
	}

	return &nb, nil
}

// validateSchema checks the document against the embedded nbformat v4
// schema. The compiled schema is cached behind a sync.Once so concurrent
// loads share one compilation.
func (l *Loader) validateSchema(source []byte) error {
	l.schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft7
		if err := compiler.AddResource("nbformat.schema.json", bytes.NewReader(nbformatSchema)); err != nil {
			l.schemaErr = fmt.Errorf("failed to add nbformat schema resource: %w", err)
			return
		}
		schema, err := compiler.Compile("nbformat.schema.json")
		if err != nil {
			l.schemaErr = fmt.Errorf("failed to compile nbformat schema: %w", err)
			return
		}
		l.schema = schema
	})
	if l.schemaErr != nil {
		return l.schemaErr
	}

	var doc any
	if err := json.Unmarshal(source, &doc); err != nil {
		return err
	}
	return l.schema.Validate(doc)
}

// fsReadFile reads a file through an opened root, preventing traversal
// outside the notebook's own directory.
func fsReadFile(root *os.Root, name string) ([]byte, error) {
	f, err := root.Open(name)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = f.Close() // Best-effort cleanup
	}()

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(f); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
