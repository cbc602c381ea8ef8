package bandura

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// ExprCondition is a Conditional compiled from an expr-lang boolean
// expression evaluated against the blackboard. It keeps tree wiring
// declarative for checks that are just a predicate over blackboard
// fields.
type ExprCondition[B any] struct {
	name    string
	code    string
	program *vm.Program
}

// NewExprCondition compiles code against the blackboard type B. The
// expression must produce a boolean.
func NewExprCondition[B any](name, code string) (*ExprCondition[B], error) {
	var env B

	program, err := expr.Compile(code, expr.Env(env), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("compile condition %q: %w", name, err)
	}

	return &ExprCondition[B]{name: name, code: code, program: program}, nil
}

// Evaluate runs the compiled expression against the blackboard,
// mapping true to Success and false to Failure. An evaluation error
// is a Failure.
func (c *ExprCondition[B]) Evaluate(blackboard *B) Result {
	out, err := expr.Run(c.program, *blackboard)
	if err != nil {
		return Failure
	}

	ok, isBool := out.(bool)
	if !isBool {
		return Failure
	}

	return ResultFromBool(ok)
}

// Name returns the condition's display name.
func (c *ExprCondition[B]) Name() string {
	return c.name
}

// Details returns the source expression.
func (c *ExprCondition[B]) Details() string {
	return c.code
}
