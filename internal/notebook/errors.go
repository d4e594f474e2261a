package notebook

import "fmt"

// ParseError indicates a notebook document that could not be parsed into a
// valid cell sequence. It is the explicit failure value for a document: a
// Notebook is never returned alongside one.
type ParseError struct {
	Path   string
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	path := e.Path
	if path == "" {
		path = "notebook"
	}
	if e.Err != nil {
		return fmt.Sprintf("invalid notebook %s: %s: %v", path, e.Reason, e.Err)
	}
	return fmt.Sprintf("invalid notebook %s: %s", path, e.Reason)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
