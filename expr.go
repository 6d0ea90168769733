package xlbridge

import (
	"fmt"
	"sync"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// State is a snapshot of named simulation state values a step evaluates
// expressions against and stores read results into.
type State map[string]any

// Evaluator resolves step expressions against simulation state.
type Evaluator interface {
	Evaluate(expression string, state State) (any, error)
	IsConditionTrue(condition string, state State) (bool, error)
}

// exprEvaluator implements Evaluator using expr-lang/expr.
type exprEvaluator struct {
	cache sync.Map // expression string → compiled *vm.Program
}

// NewEvaluator creates an expression evaluator backed by expr-lang/expr.
func NewEvaluator() Evaluator {
	return &exprEvaluator{}
}

func (e *exprEvaluator) Evaluate(expression string, state State) (any, error) {
	if expression == "" {
		return nil, nil
	}
	program, err := e.compile(expression, state)
	if err != nil {
		return nil, fmt.Errorf("compile expression %q: %w", expression, err)
	}
	result, err := expr.Run(program, map[string]any(state))
	if err != nil {
		return nil, fmt.Errorf("evaluate expression %q: %w", expression, err)
	}
	return result, nil
}

func (e *exprEvaluator) IsConditionTrue(condition string, state State) (bool, error) {
	result, err := e.Evaluate(condition, state)
	if err != nil {
		return false, err
	}
	if result == nil {
		return false, nil
	}
	b, ok := result.(bool)
	if !ok {
		return false, fmt.Errorf("condition %q evaluated to %T, expected bool", condition, result)
	}
	return b, nil
}

func (e *exprEvaluator) compile(expression string, state State) (*vm.Program, error) {
	if cached, ok := e.cache.Load(expression); ok {
		return cached.(*vm.Program), nil
	}
	program, err := expr.Compile(expression, expr.Env(map[string]any(state)), expr.AllowUndefinedVariables())
	if err != nil {
		return nil, err
	}
	e.cache.Store(expression, program)
	return program, nil
}
