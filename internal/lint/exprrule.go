package lint

import (
	"fmt"
	"regexp"

	"github.com/expr-lang/expr"
)

// ExprEnv is the environment visible to expression rules. Only these
// fields are accessible; expressions cannot reach the filesystem, the
// network, or anything else in the process.
type ExprEnv struct {
	Source   string `expr:"source"`
	Path     string `expr:"path"`
	CellType string `expr:"cell_type"`
}

// Complexity limits for user-supplied expressions.
const (
	maxExpressionLength = 1000
	maxASTNodes         = 100
)

// NewExprRule builds a rule whose verdict is an expr expression over the
// unit under test. The expression is compiled once, here, with a boolean
// result type; an evaluation error or non-boolean result at run time is a
// rule contract violation and aborts the run.
func NewExprRule(name, expression string, opts ...Option) (Rule, error) {
	if len(expression) > maxExpressionLength {
		return Rule{}, fmt.Errorf("rule %s: expression too long (max %d chars): %d chars",
			name, maxExpressionLength, len(expression))
	}

	program, err := expr.Compile(expression,
		expr.Env(ExprEnv{}),
		expr.AsBool(),
		expr.MaxNodes(maxASTNodes),

		expr.Function("matches", func(params ...any) (any, error) {
			if len(params) != 2 {
				return nil, fmt.Errorf("matches expects 2 arguments")
			}
			pattern, ok := params[1].(string)
			if !ok {
				return nil, fmt.Errorf("matches: pattern must be a string")
			}
			subject, ok := params[0].(string)
			if !ok {
				return nil, fmt.Errorf("matches: subject must be a string")
			}
			re, err := regexp.Compile(pattern)
			if err != nil {
				return nil, fmt.Errorf("matches: %w", err)
			}
			return re.MatchString(subject), nil
		}),
	)
	if err != nil {
		return Rule{}, fmt.Errorf("rule %s: failed to compile expression: %w", name, err)
	}

	check := func(source string, unit Unit, path string) (bool, error) {
		env := ExprEnv{
			Source: source,
			Path:   path,
		}
		if unit.Cell != nil {
			env.CellType = string(unit.Cell.Type)
		}

		output, err := expr.Run(program, env)
		if err != nil {
			return false, fmt.Errorf("expression evaluation failed: %w", err)
		}
		verdict, ok := output.(bool)
		if !ok {
			return false, fmt.Errorf("expression did not return boolean: %v", output)
		}
		return verdict, nil
	}

	return New(name, check, opts...)
}
