package simple

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMachineConsumed is returned when a Machine is run a second time.
var ErrMachineConsumed = errors.New("machine has already been run")

// UnboundVariableError is returned when a name has no binding.
type UnboundVariableError struct {
	Name string
}

func (e *UnboundVariableError) Error() string {
	return fmt.Sprintf("unbound variable %q", e.Name)
}

// TypeMismatchError is returned when an operator or a branch receives a value
// of the wrong kind.
type TypeMismatchError struct {
	Operation string
	Expected  Type
	Got       Type
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("type mismatch in %s: expected %s, got %s", e.Operation, e.Expected, e.Got)
}

// NotReducibleError is returned when a terminal term is asked to take a step.
type NotReducibleError struct {
	Term fmt.Stringer
}

func (e *NotReducibleError) Error() string {
	return fmt.Sprintf("cannot reduce %s", Inspect(e.Term))
}

// StepError records the machine step at which a reduction failed.
type StepError struct {
	Step      int
	Statement Statement
	Err       error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d: reducing %s: %s", e.Step, Inspect(e.Statement), e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// CheckErrors accumulates every problem found by Check.
type CheckErrors struct {
	Errors []error
}

func (ce *CheckErrors) Add(err error) {
	if err != nil {
		ce.Errors = append(ce.Errors, err)
	}
}

func (ce *CheckErrors) Unwrap() []error {
	return ce.Errors
}

func (ce *CheckErrors) HasErrors() bool {
	return len(ce.Errors) > 0
}

func (ce *CheckErrors) Error() string {
	if len(ce.Errors) == 0 {
		return "no errors"
	}
	if len(ce.Errors) == 1 {
		return ce.Errors[0].Error()
	}
	var msgs []string
	for i, err := range ce.Errors {
		msgs = append(msgs, fmt.Sprintf("Error %d: %s", i+1, err.Error()))
	}
	return fmt.Sprintf("%d type errors:\n%s", len(ce.Errors), strings.Join(msgs, "\n"))
}
