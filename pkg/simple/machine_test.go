package simple

import (
	"context"
	"errors"
	"testing"

	"github.com/dagger/testctx"
	"github.com/dagger/testctx/oteltest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MachineSuite struct{}

func TestMachine(tT *testing.T) {
	testctx.New(tT,
		oteltest.WithTracing[*testing.T](),
		oteltest.WithLogging[*testing.T](),
	).RunTests(MachineSuite{})
}

func countTo(limit int64) Statement {
	return Seq(
		NewAssign("x", Num(0)),
		NewWhile(NewLessThan(Var("x"), Num(limit)), NewAssign("x", NewAdd(Var("x"), Num(2)))),
	)
}

func renderStates(states []State) []string {
	lines := make([]string, len(states))
	for i, s := range states {
		lines[i] = s.String()
	}
	return lines
}

func (MachineSuite) TestAssignment(ctx context.Context, t *testctx.T) {
	states, err := Trace(NewAssign("x", NewAdd(Num(3), Num(5))))
	require.NoError(t, err)
	require.Equal(t, []string{
		"«x = 3 + 5», {}",
		"«x = 8», {}",
		"«do-nothing», { x=8 }",
	}, renderStates(states))
}

func (MachineSuite) TestConditional(ctx context.Context, t *testctx.T) {
	states, err := Trace(NewIf(Bool(false), NewAssign("x", Num(1)), NewAssign("y", Num(2))))
	require.NoError(t, err)
	require.Equal(t, []string{
		"«if (false) { x = 1 } else { y = 2 }», {}",
		"«y = 2», {}",
		"«do-nothing», { y=2 }",
	}, renderStates(states))

	final := states[len(states)-1].Environment
	_, bound := final.Get("x")
	require.False(t, bound)
}

func (MachineSuite) TestLoop(ctx context.Context, t *testctx.T) {
	states, err := Trace(countTo(5))
	require.NoError(t, err)

	require.Len(t, states, 31)
	require.Equal(t, "«x = 0; while (x < 5) { x = x + 2 }», {}", states[0].String())
	require.Equal(t, "«do-nothing; while (x < 5) { x = x + 2 }», { x=0 }", states[1].String())
	require.Equal(t, "«while (x < 5) { x = x + 2 }», { x=0 }", states[2].String())
	require.Equal(t, "«if (x < 5) { x = x + 2; while (x < 5) { x = x + 2 } } else { do-nothing }», { x=0 }", states[3].String())
	require.Equal(t, "«do-nothing», { x=6 }", states[30].String())

	for i, s := range states {
		require.Equal(t, i, s.Step)
	}
}

func (MachineSuite) TestEveryStateIsObservedOnce(ctx context.Context, t *testctx.T) {
	var observed []int
	env, err := NewMachine(NewAssign("x", NewAdd(Num(3), Num(5)))).Run(func(s State) error {
		observed = append(observed, s.Step)
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, []int{0, 1, 2}, observed)
	require.Equal(t, "{ x=8 }", env.String())
}

func (MachineSuite) TestTerminalStateIsObservedForDoNothing(ctx context.Context, t *testctx.T) {
	states, err := Trace(DoNothing{})
	require.NoError(t, err)
	require.Len(t, states, 1)
	require.True(t, states[0].Terminal())
	require.Equal(t, "«do-nothing», {}", states[0].String())
}

func (MachineSuite) TestAgreesWithExecute(ctx context.Context, t *testctx.T) {
	for _, limit := range []int64{0, 1, 5, 6, 100} {
		stmt := countTo(limit)

		small, err := NewMachine(stmt).Run(nil)
		require.NoError(t, err)

		big, err := Execute(stmt, NewEnvironment())
		require.NoError(t, err)

		require.True(t, small.Equal(big), "limit %d: %s != %s", limit, small, big)
	}
}

func (MachineSuite) TestDeterministic(ctx context.Context, t *testctx.T) {
	stmt := countTo(9)
	first, err := Trace(stmt)
	require.NoError(t, err)
	second, err := Trace(stmt)
	require.NoError(t, err)
	require.Equal(t, renderStates(first), renderStates(second))
}

func (MachineSuite) TestStartingEnvironment(ctx context.Context, t *testctx.T) {
	start := NewEnvironment().Update("x", Number{Val: 4})
	m := NewMachineWithEnvironment(NewAssign("y", NewMultiply(Var("x"), Num(2))), start)
	env, err := m.Run(nil)
	require.NoError(t, err)
	require.Equal(t, "{ x=4, y=8 }", env.String())
	require.Equal(t, "{ x=4 }", start.String())
}

func (MachineSuite) TestStep(ctx context.Context, t *testctx.T) {
	m := NewMachine(NewAssign("x", NewAdd(Num(3), Num(5))))
	require.NoError(t, m.Step())
	require.Equal(t, 1, m.State().Step)
	require.Equal(t, "x = 8", m.State().Statement.String())
	require.NoError(t, m.Step())
	require.True(t, m.State().Terminal())

	err := m.Step()
	var stepErr *StepError
	require.ErrorAs(t, err, &stepErr)
	require.Equal(t, 2, stepErr.Step)

	var notReducible *NotReducibleError
	require.ErrorAs(t, err, &notReducible)
}

func (MachineSuite) TestConsumed(ctx context.Context, t *testctx.T) {
	m := NewMachine(NewAssign("x", Num(1)))
	_, err := m.Run(nil)
	require.NoError(t, err)

	env, err := m.Run(nil)
	require.ErrorIs(t, err, ErrMachineConsumed)
	require.Equal(t, "{ x=1 }", env.String())
}

func (MachineSuite) TestStepErrors(ctx context.Context, t *testctx.T) {
	env, err := NewMachine(Seq(
		NewAssign("x", Num(1)),
		NewAssign("y", NewAdd(Var("x"), Bool(true))),
	)).Run(nil)

	var stepErr *StepError
	require.ErrorAs(t, err, &stepErr)
	assert.Equal(t, 3, stepErr.Step)
	assert.Equal(t, "y = 1 + true", stepErr.Statement.String())

	var mismatch *TypeMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, "+", mismatch.Operation)

	// the environment reached before the failure is returned
	assert.Equal(t, "{ x=1 }", env.String())
}

func (MachineSuite) TestObserverAborts(ctx context.Context, t *testctx.T) {
	stop := errors.New("stop")
	env, err := NewMachine(countTo(5)).Run(func(s State) error {
		if s.Step == 2 {
			return stop
		}
		return nil
	})
	require.ErrorIs(t, err, stop)
	require.Equal(t, "{ x=0 }", env.String())
}

func (MachineSuite) TestLimit(ctx context.Context, t *testctx.T) {
	forever := NewWhile(Bool(true), DoNothing{})

	var seen int
	_, err := NewMachine(forever).Run(Limit(10, func(State) error {
		seen++
		return nil
	}))
	var limitErr *StepLimitError
	require.ErrorAs(t, err, &limitErr)
	require.Equal(t, 10, limitErr.Limit)
	require.Equal(t, 11, seen)

	t.Run("a program within the limit finishes", func(ctx context.Context, t *testctx.T) {
		env, err := NewMachine(NewAssign("x", NewAdd(Num(3), Num(5)))).Run(Limit(2, nil))
		require.NoError(t, err)
		require.Equal(t, "{ x=8 }", env.String())
	})

	t.Run("zero disables the limit", func(ctx context.Context, t *testctx.T) {
		env, err := NewMachine(countTo(100)).Run(Limit(0, nil))
		require.NoError(t, err)
		require.Equal(t, "{ x=100 }", env.String())
	})
}
