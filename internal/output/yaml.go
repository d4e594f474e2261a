package output

import (
	"io"

	"github.com/goccy/go-yaml"

	"github.com/codeadmin-peritiae/docs/internal/runner"
)

// YAMLFormatter formats run results as YAML.
type YAMLFormatter struct {
	writer io.Writer
}

// NewYAMLFormatter creates a new YAML formatter.
func NewYAMLFormatter(w io.Writer) *YAMLFormatter {
	return &YAMLFormatter{writer: w}
}

// Format writes the run result as YAML.
func (f *YAMLFormatter) Format(result *runner.RunResult) error {
	encoder := yaml.NewEncoder(f.writer, yaml.Indent(2))

	if err := encoder.Encode(result); err != nil {
		return err
	}

	return encoder.Close()
}
