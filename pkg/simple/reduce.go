package simple

import (
	"fmt"

	"github.com/kr/pretty"
	"github.com/pkg/errors"
)

// IsReducible reports whether a rewrite step applies to term. Literals,
// values and DoNothing are terminal; every other expression or statement is
// reducible.
func IsReducible(term fmt.Stringer) bool {
	switch term.(type) {
	case *Literal, Value, DoNothing:
		return false
	case Expression, Statement:
		return true
	default:
		return false
	}
}

// ReduceExpression performs one leftmost-innermost rewrite step. The operand
// that is not rewritten is shared with the result, not copied.
func ReduceExpression(expr Expression, env Environment) (Expression, error) {
	switch e := expr.(type) {
	case *Literal:
		return nil, &NotReducibleError{Term: e}
	case *Variable:
		val, err := env.Lookup(e.Name)
		if err != nil {
			return nil, err
		}
		return Lit(val), nil
	case *Add, *Multiply, *LessThan:
		op, _ := asBinaryOperator(e)
		return reduceBinary(op, env)
	default:
		return nil, unhandledTerm(expr)
	}
}

func reduceBinary(op binaryOperator, env Environment) (Expression, error) {
	if IsReducible(op.Left) {
		left, err := ReduceExpression(op.Left, env)
		if err != nil {
			return nil, err
		}
		return op.Rebuild(left, op.Right), nil
	}
	if IsReducible(op.Right) {
		right, err := ReduceExpression(op.Right, env)
		if err != nil {
			return nil, err
		}
		return op.Rebuild(op.Left, right), nil
	}
	left, err := literalValue(op.Left)
	if err != nil {
		return nil, err
	}
	right, err := literalValue(op.Right)
	if err != nil {
		return nil, err
	}
	val, err := op.EvalFunc(left, right)
	if err != nil {
		return nil, err
	}
	return Lit(val), nil
}

// ReduceStatement performs one transition of the (statement, environment)
// pair.
func ReduceStatement(stmt Statement, env Environment) (Statement, Environment, error) {
	switch s := stmt.(type) {
	case DoNothing:
		return nil, env, &NotReducibleError{Term: s}
	case *Assign:
		if IsReducible(s.Expr) {
			expr, err := ReduceExpression(s.Expr, env)
			if err != nil {
				return nil, env, err
			}
			return NewAssign(s.Name, expr), env, nil
		}
		val, err := literalValue(s.Expr)
		if err != nil {
			return nil, env, err
		}
		return DoNothing{}, env.Update(s.Name, val), nil
	case *If:
		if IsReducible(s.Condition) {
			cond, err := ReduceExpression(s.Condition, env)
			if err != nil {
				return nil, env, err
			}
			return NewIf(cond, s.Consequence, s.Alternative), env, nil
		}
		val, err := literalValue(s.Condition)
		if err != nil {
			return nil, env, err
		}
		truth, err := condition("if", val)
		if err != nil {
			return nil, env, err
		}
		if truth {
			return s.Consequence, env, nil
		}
		return s.Alternative, env, nil
	case *Sequence:
		if DoesNothing(s.First) {
			return s.Second, env, nil
		}
		first, next, err := ReduceStatement(s.First, env)
		if err != nil {
			return nil, env, err
		}
		return NewSequence(first, s.Second), next, nil
	case *While:
		// The loop is unrolled once; the same *While is reused as the tail.
		return NewIf(s.Condition, NewSequence(s.Body, s), DoNothing{}), env, nil
	default:
		return nil, env, unhandledTerm(stmt)
	}
}

func literalValue(expr Expression) (Value, error) {
	lit, ok := expr.(*Literal)
	if !ok || lit == nil || lit.Value == nil {
		return nil, unhandledTerm(expr)
	}
	return lit.Value, nil
}

func unhandledTerm(term any) error {
	return errors.Errorf("term of type %T is unhandled: %s", term, pretty.Sprint(term))
}
