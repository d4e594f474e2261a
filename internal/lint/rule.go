package lint

import (
	"fmt"

	"github.com/codeadmin-peritiae/docs/internal/notebook"
)

// Unit is the structural unit a rule callback is invoked against. For
// cell-scoped rules Cell points at the cell under test and Index is its
// position in the document; for file-scoped rules Cell is nil and Index
// is -1. Doc is always the whole parsed document.
type Unit struct {
	Doc   *notebook.Notebook
	Cell  *notebook.Cell
	Index int
}

// CheckFunc evaluates one unit of content and returns its verdict. The
// callback must not mutate its inputs. A returned error is a rule contract
// violation: it aborts the run and is attributed to the rule by name, since
// a silently wrong verdict is worse than a crash.
type CheckFunc func(source string, unit Unit, path string) (bool, error)

// Rule is an immutable lint check descriptor. Rules are built once at
// registration time and reused, unchanged, across every document in a run.
type Rule struct {
	// Name uniquely identifies the rule within its owning style set.
	Name string
	// Message is an optional human-readable explanation shown on failure.
	Message string
	// Style is the owning style set identifier, used only for display.
	Style string
	// Scope selects the units the rule runs against.
	Scope Scope
	// Condition combines per-cell verdicts for cell-scoped rules.
	Condition Condition
	// Check is the verdict callback.
	Check CheckFunc
}

// Option customizes a rule under construction.
type Option func(*Rule)

// WithMessage sets the failure explanation shown in reports.
func WithMessage(message string) Option {
	return func(r *Rule) { r.Message = message }
}

// WithScope sets the rule scope.
func WithScope(scope Scope) Option {
	return func(r *Rule) { r.Scope = scope }
}

// WithCondition sets the aggregation condition for cell-scoped rules.
func WithCondition(cond Condition) Option {
	return func(r *Rule) { r.Condition = cond }
}

// WithStyle sets the owning style set identifier.
func WithStyle(style string) Option {
	return func(r *Rule) { r.Style = style }
}

// New builds a rule. Scope defaults to file and condition to any; invalid
// scope or condition values are rejected here, at construction time, so
// dispatch never sees an unrecognized combination.
func New(name string, check CheckFunc, opts ...Option) (Rule, error) {
	r := Rule{
		Name:      name,
		Scope:     ScopeFile,
		Condition: CondAny,
		Check:     check,
	}
	for _, opt := range opts {
		opt(&r)
	}

	if err := r.validate(); err != nil {
		return Rule{}, err
	}
	return r, nil
}

// MustNew builds a rule or panics. Style sets use it at init time, where a
// bad rule definition is a programming error.
func MustNew(name string, check CheckFunc, opts ...Option) Rule {
	r, err := New(name, check, opts...)
	if err != nil {
		panic(err)
	}
	return r
}

func (r Rule) validate() error {
	if r.Name == "" {
		return fmt.Errorf("rule name is required")
	}
	if r.Check == nil {
		return fmt.Errorf("rule %s: check callback is required", r.Name)
	}
	if err := r.Scope.Validate(); err != nil {
		return fmt.Errorf("rule %s: %w", r.Name, err)
	}
	if err := r.Condition.Validate(); err != nil {
		return fmt.Errorf("rule %s: %w", r.Name, err)
	}
	return nil
}

// DisplayName is the qualified name used on report lines.
func (r Rule) DisplayName() string {
	if r.Style == "" {
		return r.Name
	}
	return r.Style + "::" + r.Name
}
