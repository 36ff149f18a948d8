package simple

import "fmt"

// Evaluate computes the value of expr in one pass, with no intermediate
// terms.
func Evaluate(expr Expression, env Environment) (Value, error) {
	switch e := expr.(type) {
	case *Literal:
		return literalValue(e)
	case *Variable:
		return env.Lookup(e.Name)
	case *Add, *Multiply, *LessThan:
		op, _ := asBinaryOperator(e)
		left, err := Evaluate(op.Left, env)
		if err != nil {
			return nil, fmt.Errorf("evaluating left side of %s: %w", op.Name, err)
		}
		right, err := Evaluate(op.Right, env)
		if err != nil {
			return nil, fmt.Errorf("evaluating right side of %s: %w", op.Name, err)
		}
		return op.EvalFunc(left, right)
	default:
		return nil, unhandledTerm(expr)
	}
}

// Execute runs stmt to completion and returns the final Environment. Loops
// iterate in place rather than recursing, so iteration count does not grow
// the Go stack.
func Execute(stmt Statement, env Environment) (Environment, error) {
	switch s := stmt.(type) {
	case DoNothing:
		return env, nil
	case *Assign:
		val, err := Evaluate(s.Expr, env)
		if err != nil {
			return env, fmt.Errorf("assigning %s: %w", s.Name, err)
		}
		return env.Update(s.Name, val), nil
	case *If:
		truth, err := evaluateCondition("if", s.Condition, env)
		if err != nil {
			return env, err
		}
		if truth {
			return Execute(s.Consequence, env)
		}
		return Execute(s.Alternative, env)
	case *Sequence:
		next, err := Execute(s.First, env)
		if err != nil {
			return env, err
		}
		return Execute(s.Second, next)
	case *While:
		for {
			truth, err := evaluateCondition("while", s.Condition, env)
			if err != nil {
				return env, err
			}
			if !truth {
				return env, nil
			}
			env, err = Execute(s.Body, env)
			if err != nil {
				return env, err
			}
		}
	default:
		return env, unhandledTerm(stmt)
	}
}

func evaluateCondition(op string, expr Expression, env Environment) (bool, error) {
	val, err := Evaluate(expr, env)
	if err != nil {
		return false, fmt.Errorf("evaluating %s condition: %w", op, err)
	}
	return condition(op, val)
}
