// Package styles ships the built-in lint rule sets. Each style set is an
// explicit builder returning immutable rule definitions, collected into a
// registry at setup time.
package styles

import (
	"fmt"
	"sort"

	"github.com/codeadmin-peritiae/docs/internal/lint"
)

// Builder constructs the rules of one style set.
type Builder func() ([]lint.Rule, error)

// sets maps style name to its rule builder.
var sets = map[string]Builder{
	"google":     Google,
	"tensorflow": TensorFlow,
	"security":   Security,
}

// Names returns the available style set names, sorted.
func Names() []string {
	names := make([]string, 0, len(sets))
	for name := range sets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewRegistry builds a registry holding the rules of the named style sets,
// in the order given. An unknown style name is a configuration error.
func NewRegistry(names ...string) (*lint.Registry, error) {
	registry := lint.NewRegistry()
	for _, name := range names {
		builder, ok := sets[name]
		if !ok {
			return nil, fmt.Errorf("unknown style %q (available: %v)", name, Names())
		}
		rules, err := builder()
		if err != nil {
			return nil, fmt.Errorf("failed to build style %q: %w", name, err)
		}
		if err := registry.RegisterAll(rules...); err != nil {
			return nil, fmt.Errorf("failed to register style %q: %w", name, err)
		}
	}
	return registry, nil
}
