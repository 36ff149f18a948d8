package simple

import (
	"maps"

	"github.com/pkg/errors"
)

// TypeEnvironment maps variable names to their static types.
type TypeEnvironment map[string]Type

// TypeOf infers the static type of expr.
func TypeOf(expr Expression, tenv TypeEnvironment) (Type, error) {
	switch e := expr.(type) {
	case *Literal:
		val, err := literalValue(e)
		if err != nil {
			return 0, err
		}
		return val.Type(), nil
	case *Variable:
		t, ok := tenv[e.Name]
		if !ok {
			return 0, &UnboundVariableError{Name: e.Name}
		}
		return t, nil
	case *Add, *Multiply, *LessThan:
		op, _ := asBinaryOperator(e)
		lt, err := TypeOf(op.Left, tenv)
		if err != nil {
			return 0, err
		}
		rt, err := TypeOf(op.Right, tenv)
		if err != nil {
			return 0, err
		}
		for _, t := range []Type{lt, rt} {
			if t != NumberType {
				return 0, &TypeMismatchError{Operation: op.Name, Expected: NumberType, Got: t}
			}
		}
		if _, isLess := e.(*LessThan); isLess {
			return BooleanType, nil
		}
		return NumberType, nil
	default:
		return 0, unhandledTerm(expr)
	}
}

// Check verifies that stmt is well typed when started with the bindings in
// tenv, returning the bindings guaranteed to exist afterwards. A name keeps
// one type for the whole program. All problems are reported together as a
// *CheckErrors.
func Check(stmt Statement, tenv TypeEnvironment) (TypeEnvironment, error) {
	errs := &CheckErrors{}
	out := check(stmt, maps.Clone(tenv), errs)
	if errs.HasErrors() {
		return out, errs
	}
	return out, nil
}

func check(stmt Statement, tenv TypeEnvironment, errs *CheckErrors) TypeEnvironment {
	if tenv == nil {
		tenv = TypeEnvironment{}
	}
	switch s := stmt.(type) {
	case DoNothing:
		return tenv
	case *Assign:
		t, err := TypeOf(s.Expr, tenv)
		if err != nil {
			errs.Add(errors.Wrapf(err, "in %s", Inspect(s)))
			return tenv
		}
		if prev, ok := tenv[s.Name]; ok && prev != t {
			errs.Add(errors.Wrapf(&TypeMismatchError{
				Operation: "assignment to " + s.Name,
				Expected:  prev,
				Got:       t,
			}, "in %s", Inspect(s)))
			return tenv
		}
		out := maps.Clone(tenv)
		out[s.Name] = t
		return out
	case *If:
		checkCondition("if", s.Condition, tenv, errs)
		consequence := check(s.Consequence, tenv, errs)
		alternative := check(s.Alternative, tenv, errs)
		return intersect(consequence, alternative, errs)
	case *Sequence:
		return check(s.Second, check(s.First, tenv, errs), errs)
	case *While:
		checkCondition("while", s.Condition, tenv, errs)
		check(s.Body, tenv, errs)
		// the body may run zero times
		return tenv
	default:
		errs.Add(unhandledTerm(stmt))
		return tenv
	}
}

func checkCondition(op string, cond Expression, tenv TypeEnvironment, errs *CheckErrors) {
	t, err := TypeOf(cond, tenv)
	if err != nil {
		errs.Add(errors.Wrapf(err, "in %s condition", op))
		return
	}
	if t != BooleanType {
		errs.Add(errors.Wrapf(&TypeMismatchError{Operation: op, Expected: BooleanType, Got: t}, "in %s condition %s", op, Inspect(cond)))
	}
}

// intersect keeps the names bound on both branches. A name bound with
// different types on each branch is an error.
func intersect(a, b TypeEnvironment, errs *CheckErrors) TypeEnvironment {
	out := TypeEnvironment{}
	for name, t := range a {
		bt, ok := b[name]
		if !ok {
			continue
		}
		if bt != t {
			errs.Add(&TypeMismatchError{Operation: "branches assigning " + name, Expected: t, Got: bt})
			continue
		}
		out[name] = t
	}
	return out
}
