package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/colorprofile"
	"github.com/kr/pretty"
	"github.com/spf13/cobra"

	"github.com/vito/simple/pkg/config"
	"github.com/vito/simple/pkg/ioctx"
	"github.com/vito/simple/pkg/programs"
	"github.com/vito/simple/pkg/simple"
	"github.com/vito/simple/pkg/trace"
)

func runCmd(cfg *config.Config, flags *Flags) *cobra.Command {
	return &cobra.Command{
		Use:   "run [program]",
		Short: "Trace a program on the small-step machine",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrace(cmd.Context(), *cfg, *flags, programArg(*cfg, args))
		},
	}
}

func evalCmd(cfg *config.Config, flags *Flags) *cobra.Command {
	return &cobra.Command{
		Use:   "eval [program]",
		Short: "Evaluate a program with the big-step evaluator",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEval(cmd.Context(), *flags, programArg(*cfg, args))
		},
	}
}

func checkCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "check [program]",
		Short: "Statically type check a program",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd.Context(), programArg(*cfg, args))
		},
	}
}

func agreeCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "agree",
		Short: "Check that both strategies agree on every program",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAgree(cmd.Context(), *cfg)
		},
	}
}

func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the built-in programs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd.Context())
		},
	}
}

func runTrace(ctx context.Context, cfg config.Config, flags Flags, name string) error {
	prog, err := programs.Lookup(name)
	if err != nil {
		return err
	}

	stmt := prog.Build()
	if flags.Debug {
		_, _ = pretty.Fprintf(ioctx.StderrFromContext(ctx), "%# v\n", stmt)
	}

	printer, err := trace.New(styledOutput(ctx), trace.Options{
		Format: trace.Format(cfg.Format),
		Color:  !cfg.NoColor,
		Width:  cfg.Width,
		Steps:  flags.Steps,
	})
	if err != nil {
		return err
	}

	_, runErr := simple.NewMachine(stmt).Run(simple.Limit(cfg.MaxSteps, printer.Observe))
	if err := printer.Close(); err != nil && runErr == nil {
		runErr = err
	}
	return runErr
}

// styledOutput downsamples styling to what stdout supports, stripping it
// entirely when stdout is not a terminal.
func styledOutput(ctx context.Context) io.Writer {
	return colorprofile.NewWriter(ioctx.StdoutFromContext(ctx), os.Environ())
}

func runEval(ctx context.Context, flags Flags, name string) error {
	prog, err := programs.Lookup(name)
	if err != nil {
		return err
	}

	if prog.Diverges {
		return fmt.Errorf("program %q never terminates; trace it with run --max-steps instead", prog.Name)
	}

	stmt := prog.Build()
	if flags.Debug {
		_, _ = pretty.Fprintf(ioctx.StderrFromContext(ctx), "%# v\n", stmt)
	}

	env, err := simple.Execute(stmt, simple.NewEnvironment())
	if err != nil {
		return err
	}

	stdout := ioctx.StdoutFromContext(ctx)
	fmt.Fprintln(stdout, simple.Inspect(stmt))
	fmt.Fprintln(stdout, env)
	return nil
}

func runCheck(ctx context.Context, name string) error {
	prog, err := programs.Lookup(name)
	if err != nil {
		return err
	}

	tenv, err := simple.Check(prog.Build(), nil)
	if err != nil {
		return err
	}

	var bindings []string
	for _, n := range slices.Sorted(maps.Keys(tenv)) {
		bindings = append(bindings, fmt.Sprintf("%s: %s", n, tenv[n]))
	}
	fmt.Fprintf(ioctx.StdoutFromContext(ctx), "ok { %s }\n", strings.Join(bindings, ", "))
	return nil
}

func runAgree(ctx context.Context, cfg config.Config) error {
	results, err := programs.CompareAll(ctx, programs.All(), cfg.MaxSteps)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(ioctx.StdoutFromContext(ctx), 0, 4, 2, ' ', 0)
	var failed []string
	for _, res := range results {
		status := "ok"
		switch {
		case res.Skipped:
			status = "skipped (diverges)"
		case res.Truncated:
			status = "skipped (step limit)"
		case !res.Agree():
			status = "DISAGREE"
			failed = append(failed, res.Program.Name)
		case !res.AsExpected():
			status = "UNEXPECTED"
			failed = append(failed, res.Program.Name)
		case res.Program.Fails:
			status = "ok (both failed)"
		}
		steps, outcome := "-", "-"
		if !res.Skipped {
			steps = fmt.Sprintf("%d steps", res.Steps)
		}
		switch {
		case res.Skipped, res.Truncated:
		case res.SmallStepErr != nil:
			outcome = errorKind(res.SmallStepErr)
		default:
			outcome = res.SmallStep.String()
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", res.Program.Name, steps, outcome, status)
		if res.SmallStepErr != nil || res.BigStepErr != nil {
			ioctx.LoggerFromContext(ctx).Debug("strategy errors", "program", res.Program.Name,
				"small-step", res.SmallStepErr, "big-step", res.BigStepErr)
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if len(failed) > 0 {
		return fmt.Errorf("strategies disagree on: %s", strings.Join(failed, ", "))
	}
	return nil
}

// errorKind names the failure a program stopped with.
func errorKind(err error) string {
	var mismatch *simple.TypeMismatchError
	var unbound *simple.UnboundVariableError
	switch {
	case errors.As(err, &mismatch):
		return "type mismatch"
	case errors.As(err, &unbound):
		return "unbound variable"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	default:
		return "error"
	}
}

func runList(ctx context.Context) error {
	w := tabwriter.NewWriter(ioctx.StdoutFromContext(ctx), 0, 4, 2, ' ', 0)
	for _, p := range programs.All() {
		fmt.Fprintf(w, "%s\t%s\t%s\n", p.Name, p.Description, simple.Inspect(p.Build()))
	}
	return w.Flush()
}
