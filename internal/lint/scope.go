// Package lint implements the rule-dispatch and status-aggregation engine
// for notebook documents. Style sets register rules into a Registry; a
// Linter runs the registered rules over a parsed notebook and produces a
// Report of per-invocation entries with aggregated group verdicts.
package lint

import (
	"fmt"

	"github.com/codeadmin-peritiae/docs/internal/notebook"
)

// Scope declares which structural units of a document a rule applies to.
type Scope string

const (
	// ScopeFile runs the rule once against the whole file.
	ScopeFile Scope = "file"
	// ScopeCells runs the rule on every cell regardless of kind.
	ScopeCells Scope = "cells"
	// ScopeCode runs the rule on code cells only.
	ScopeCode Scope = "code"
	// ScopeText runs the rule on prose (markdown) cells only.
	ScopeText Scope = "text"
)

// Validate returns an error if the scope value is invalid.
func (s Scope) Validate() error {
	switch s {
	case ScopeFile, ScopeCells, ScopeCode, ScopeText:
		return nil
	default:
		return fmt.Errorf("invalid scope: %s", s)
	}
}

// IsCellScoped reports whether the scope selects individual cells.
func (s Scope) IsCellScoped() bool {
	return s == ScopeCells || s == ScopeCode || s == ScopeText
}

// Matches reports whether a cell of the given type falls inside this scope.
// File scope never matches a cell.
func (s Scope) Matches(t notebook.CellType) bool {
	switch s {
	case ScopeCells:
		return true
	case ScopeCode:
		return t == notebook.CellCode
	case ScopeText:
		return t == notebook.CellMarkdown
	default:
		return false
	}
}

// cellScopes is the fixed dispatch order for cell-scoped rules.
var cellScopes = []Scope{ScopeCells, ScopeCode, ScopeText}

// Condition is the aggregation policy combining per-cell verdicts of one
// rule into a single group verdict. It is irrelevant for file-scoped rules,
// which have exactly one invocation and no aggregation.
type Condition string

const (
	// CondAny passes the group when at least one member passes.
	CondAny Condition = "any"
	// CondAll passes the group only when every member passes.
	CondAll Condition = "all"
)

// Validate returns an error if the condition value is invalid.
func (c Condition) Validate() error {
	switch c {
	case CondAny, CondAll:
		return nil
	default:
		return fmt.Errorf("invalid condition: %s", c)
	}
}

// conditions is the fixed dispatch order for aggregation conditions.
var conditions = []Condition{CondAny, CondAll}
