package simple

import (
	"fmt"
	"log/slog"
)

// State is one configuration of the small-step machine.
type State struct {
	Step        int
	Statement   Statement
	Environment Environment
}

// Terminal reports whether no further transition applies.
func (s State) Terminal() bool {
	return DoesNothing(s.Statement)
}

func (s State) String() string {
	return fmt.Sprintf("%s, %s", Inspect(s.Statement), s.Environment)
}

// Observer is called with every state the machine passes through, including
// the final one. Returning an error stops the machine.
type Observer func(State) error

// Machine drives a statement to DoNothing one reduction at a time.
type Machine struct {
	state    State
	consumed bool
}

// NewMachine starts stmt in an empty Environment.
func NewMachine(stmt Statement) *Machine {
	return NewMachineWithEnvironment(stmt, NewEnvironment())
}

func NewMachineWithEnvironment(stmt Statement, env Environment) *Machine {
	return &Machine{
		state: State{Statement: stmt, Environment: env},
	}
}

// State returns the current configuration.
func (m *Machine) State() State {
	return m.state
}

// Step performs exactly one transition.
func (m *Machine) Step() error {
	stmt, env, err := ReduceStatement(m.state.Statement, m.state.Environment)
	if err != nil {
		return &StepError{Step: m.state.Step, Statement: m.state.Statement, Err: err}
	}
	m.state = State{
		Step:        m.state.Step + 1,
		Statement:   stmt,
		Environment: env,
	}
	slog.Debug("reduced", "step", m.state.Step, "statement", stmt, "environment", env)
	return nil
}

// Run steps until the statement is DoNothing, calling observe on each state,
// and returns the final Environment. There is no step limit: a program that
// never terminates keeps the machine running until observe returns an error.
// A Machine can only be run once.
func (m *Machine) Run(observe Observer) (Environment, error) {
	if m.consumed {
		return m.state.Environment, ErrMachineConsumed
	}
	m.consumed = true

	for {
		if observe != nil {
			if err := observe(m.state); err != nil {
				return m.state.Environment, err
			}
		}
		if m.state.Terminal() {
			slog.Debug("machine halted", "steps", m.state.Step, "environment", m.state.Environment)
			return m.state.Environment, nil
		}
		if err := m.Step(); err != nil {
			return m.state.Environment, err
		}
	}
}

// Trace runs stmt on a fresh machine and collects every state.
func Trace(stmt Statement) ([]State, error) {
	var states []State
	_, err := NewMachine(stmt).Run(func(s State) error {
		states = append(states, s)
		return nil
	})
	return states, err
}

// StepLimitError is returned by an observer built with Limit once the
// machine has taken more than Limit steps.
type StepLimitError struct {
	Limit int
}

func (e *StepLimitError) Error() string {
	return fmt.Sprintf("step limit of %d exceeded", e.Limit)
}

// Limit wraps observe so that the run is aborted after n steps. A
// non-positive n disables the limit.
func Limit(n int, observe Observer) Observer {
	return func(s State) error {
		if n > 0 && s.Step > n {
			return &StepLimitError{Limit: n}
		}
		if observe == nil {
			return nil
		}
		return observe(s)
	}
}
