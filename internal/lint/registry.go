package lint

import "fmt"

// registryKey is the (scope, condition) dispatch key. File-scoped rules are
// keyed under CondAny since condition is irrelevant for them.
type registryKey struct {
	scope Scope
	cond  Condition
}

// Registry holds the rules to run, grouped by (scope, condition) and kept
// in registration order within each group. Registration order is
// significant: rules run, and report entries appear, in that order.
//
// A Registry is mutable only during setup. Once populated it is read-only
// and safe to share across parallel document workers.
type Registry struct {
	rules map[registryKey][]Rule
	order []Rule
	names map[string]map[string]bool // style → rule name → registered
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		rules: make(map[registryKey][]Rule),
		names: make(map[string]map[string]bool),
	}
}

// Register adds a rule under its (scope, condition) key. Two rules sharing
// a style set may not share a name; the same name across different style
// sets is allowed (a display collision risk, not an error).
func (reg *Registry) Register(rule Rule) error {
	if err := rule.validate(); err != nil {
		return err
	}

	if reg.names[rule.Style] == nil {
		reg.names[rule.Style] = make(map[string]bool)
	}
	if reg.names[rule.Style][rule.Name] {
		return fmt.Errorf("duplicate rule %s in style %q", rule.Name, rule.Style)
	}
	reg.names[rule.Style][rule.Name] = true

	key := registryKey{scope: rule.Scope, cond: rule.Condition}
	if rule.Scope == ScopeFile {
		key.cond = CondAny
	}
	reg.rules[key] = append(reg.rules[key], rule)
	reg.order = append(reg.order, rule)
	return nil
}

// RegisterAll registers rules in order, stopping at the first error.
func (reg *Registry) RegisterAll(rules ...Rule) error {
	for _, rule := range rules {
		if err := reg.Register(rule); err != nil {
			return err
		}
	}
	return nil
}

// Lookup returns the ordered rules registered under (scope, cond), or an
// empty slice if none.
func (reg *Registry) Lookup(scope Scope, cond Condition) []Rule {
	return reg.rules[registryKey{scope: scope, cond: cond}]
}

// All returns every registered rule in registration order.
func (reg *Registry) All() []Rule {
	out := make([]Rule, len(reg.order))
	copy(out, reg.order)
	return out
}

// Len returns the number of registered rules.
func (reg *Registry) Len() int {
	return len(reg.order)
}
