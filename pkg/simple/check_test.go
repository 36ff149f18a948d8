package simple

import (
	"context"
	"testing"

	"github.com/dagger/testctx"
	"github.com/dagger/testctx/oteltest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type CheckSuite struct{}

func TestCheck(tT *testing.T) {
	testctx.New(tT,
		oteltest.WithTracing[*testing.T](),
		oteltest.WithLogging[*testing.T](),
	).RunTests(CheckSuite{})
}

func (CheckSuite) TestTypeOf(ctx context.Context, t *testctx.T) {
	tenv := TypeEnvironment{"x": NumberType, "b": BooleanType}

	tests := []struct {
		expr     Expression
		expected Type
	}{
		{Num(1), NumberType},
		{Bool(true), BooleanType},
		{Var("b"), BooleanType},
		{NewAdd(Var("x"), Num(1)), NumberType},
		{NewMultiply(Num(2), Var("x")), NumberType},
		{NewLessThan(Var("x"), Num(3)), BooleanType},
	}
	for _, tt := range tests {
		actual, err := TypeOf(tt.expr, tenv)
		require.NoError(t, err, Inspect(tt.expr))
		assert.Equal(t, tt.expected, actual, Inspect(tt.expr))
	}
}

func (CheckSuite) TestWellTyped(ctx context.Context, t *testctx.T) {
	stmt := Seq(
		NewAssign("x", Num(0)),
		NewWhile(NewLessThan(Var("x"), Num(5)), NewAssign("x", NewAdd(Var("x"), Num(2)))),
		NewIf(NewLessThan(Var("x"), Num(10)), NewAssign("small", Bool(true)), NewAssign("small", Bool(false))),
	)

	tenv, err := Check(stmt, nil)
	require.NoError(t, err)
	assert.Equal(t, TypeEnvironment{"x": NumberType, "small": BooleanType}, tenv)
}

func (CheckSuite) TestLoopBindingsAreNotGuaranteed(ctx context.Context, t *testctx.T) {
	stmt := Seq(
		NewWhile(Bool(false), NewAssign("y", Num(1))),
		NewAssign("z", Var("y")),
	)

	_, err := Check(stmt, nil)
	var unbound *UnboundVariableError
	require.ErrorAs(t, err, &unbound)
	assert.Equal(t, "y", unbound.Name)
}

func (CheckSuite) TestOneSidedBranchBindingIsDropped(ctx context.Context, t *testctx.T) {
	tenv, err := Check(NewIf(Bool(false), NewAssign("x", Num(1)), NewAssign("y", Num(2))), nil)
	require.NoError(t, err)
	assert.Empty(t, tenv)
}

func (CheckSuite) TestErrors(ctx context.Context, t *testctx.T) {
	tests := []struct {
		name      string
		stmt      Statement
		operation string
	}{
		{"operand", NewAssign("x", NewAdd(Num(1), Bool(true))), "+"},
		{"if condition", NewIf(Num(1), DoNothing{}, DoNothing{}), "if"},
		{"while condition", NewWhile(NewAdd(Num(1), Num(1)), DoNothing{}), "while"},
		{"reassignment", Seq(NewAssign("x", Num(1)), NewAssign("x", Bool(true))), "assignment to x"},
		{"branches", NewIf(Bool(true), NewAssign("x", Num(1)), NewAssign("x", Bool(false))), "branches assigning x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(ctx context.Context, t *testctx.T) {
			_, err := Check(tt.stmt, nil)
			var mismatch *TypeMismatchError
			require.ErrorAs(t, err, &mismatch)
			require.Equal(t, tt.operation, mismatch.Operation)
		})
	}
}

func (CheckSuite) TestCollectsAllErrors(ctx context.Context, t *testctx.T) {
	stmt := Seq(
		NewAssign("a", NewAdd(Num(1), Bool(true))),
		NewAssign("b", Var("missing")),
		NewIf(Num(0), DoNothing{}, DoNothing{}),
	)

	_, err := Check(stmt, nil)
	var errs *CheckErrors
	require.ErrorAs(t, err, &errs)
	require.Len(t, errs.Errors, 3)
	assert.Contains(t, err.Error(), "3 type errors")
	assert.Contains(t, errs.Errors[0].Error(), "in «a = 1 + true»")
}

func (CheckSuite) TestDoesNotModifyInput(ctx context.Context, t *testctx.T) {
	tenv := TypeEnvironment{"x": NumberType}
	out, err := Check(NewAssign("y", Var("x")), tenv)
	require.NoError(t, err)
	assert.Equal(t, TypeEnvironment{"x": NumberType}, tenv)
	assert.Equal(t, TypeEnvironment{"x": NumberType, "y": NumberType}, out)
}
