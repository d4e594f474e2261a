package lint

import "fmt"

// ConfigError indicates an invalid rule configuration reached dispatch.
// It is a style-set bug, not a document defect, and aborts the run rather
// than silently defaulting to an aggregation policy.
type ConfigError struct {
	Rule      string
	Condition Condition
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("rule %s: unsupported lint condition %q", e.Rule, e.Condition)
}

// ContractError indicates a rule callback violated its contract (returned
// an error instead of a verdict). It names the offending rule and document
// so style-set bugs are immediately attributable.
type ContractError struct {
	Rule string
	Path string
	Err  error
}

func (e *ContractError) Error() string {
	return fmt.Sprintf("rule %s failed on %s: %v", e.Rule, e.Path, e.Err)
}

func (e *ContractError) Unwrap() error {
	return e.Err
}
