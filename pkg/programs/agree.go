package programs

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"github.com/vito/simple/pkg/ioctx"
	"github.com/vito/simple/pkg/simple"
)

// Result compares both evaluation strategies on one program.
type Result struct {
	Program Program

	SmallStep    simple.Environment
	SmallStepErr error
	Steps        int

	BigStep    simple.Environment
	BigStepErr error

	// Skipped is set for diverging programs, which are never run.
	Skipped bool

	// Truncated is set when the step limit stopped the small-step run
	// before it reached do-nothing. There is no final state to compare.
	Truncated bool
}

// Agree reports whether both strategies finished with the same environment,
// or both failed. Skipped and truncated runs have no outcome to disagree on.
func (r Result) Agree() bool {
	if r.Skipped || r.Truncated {
		return true
	}
	if r.SmallStepErr != nil || r.BigStepErr != nil {
		return r.SmallStepErr != nil && r.BigStepErr != nil
	}
	return r.SmallStep.Equal(r.BigStep)
}

// AsExpected reports whether the outcome matches what the program declares.
func (r Result) AsExpected() bool {
	if !r.Agree() {
		return false
	}
	if r.Skipped || r.Truncated {
		return true
	}
	if r.Program.Fails {
		return r.SmallStepErr != nil
	}
	return r.SmallStepErr == nil && r.SmallStep.Equal(r.Program.ExpectedEnvironment())
}

// Compare runs one program under both strategies. maxSteps bounds the
// small-step machine; zero means unbounded. The big-step run is skipped once
// ctx is done.
func Compare(ctx context.Context, p Program, maxSteps int) Result {
	res := Result{Program: p}

	stmt := p.Build()
	var steps int
	res.SmallStep, res.SmallStepErr = simple.NewMachine(stmt).Run(simple.Limit(maxSteps, func(s simple.State) error {
		steps = s.Step
		return ctx.Err()
	}))
	res.Steps = steps

	var limitErr *simple.StepLimitError
	if errors.As(res.SmallStepErr, &limitErr) {
		res.Truncated = true
	}

	if err := ctx.Err(); err != nil {
		res.BigStepErr = err
		return res
	}
	res.BigStep, res.BigStepErr = simple.Execute(stmt, simple.NewEnvironment())

	ioctx.LoggerFromContext(ctx).DebugContext(ctx, "compared strategies",
		"program", p.Name,
		"steps", res.Steps,
		"agree", res.Agree())
	return res
}

// CompareAll compares every given program concurrently, one machine per
// goroutine. Programs marked Diverges are skipped. Results keep the order of
// progs.
func CompareAll(ctx context.Context, progs []Program, maxSteps int) ([]Result, error) {
	results := make([]Result, len(progs))
	eg, gctx := errgroup.WithContext(ctx)
	for i, p := range progs {
		if p.Diverges {
			results[i] = Result{Program: p, Skipped: true}
			continue
		}
		eg.Go(func() error {
			results[i] = Compare(gctx, p, maxSteps)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
