package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/vito/simple/pkg/config"
	"github.com/vito/simple/pkg/ioctx"
)

// Flags holds command line settings that have no simple.toml equivalent.
type Flags struct {
	Debug      bool
	ConfigPath string
	Steps      bool
}

func main() {
	ctx := context.Background()
	ctx = ioctx.StdoutToContext(ctx, os.Stdout)
	ctx = ioctx.StderrToContext(ctx, os.Stderr)
	if err := fang.Execute(ctx, rootCmd(),
		fang.WithVersion("v0.1.0"),
		fang.WithCommit("dev"),
		fang.WithErrorHandler(func(w io.Writer, styles fang.Styles, err error) {
			_, _ = fmt.Fprintln(w, err.Error())
		}),
	); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var flags Flags
	var cfg config.Config

	cmd := &cobra.Command{
		Use:   "simple [flags] [program]",
		Short: "Run SIMPLE programs under small-step and big-step semantics",
		Long: `simple runs the built-in SIMPLE example programs.

By default it prints every state the small-step machine passes through until
the program reduces to do-nothing. Use the eval subcommand for the big-step
evaluator, and agree to check that both strategies produce the same result.`,
		Example: `  # Trace the default program
  simple

  # Trace the factorial program as YAML
  simple run factorial --format yaml

  # Stop a non-terminating program after 50 steps
  simple run forever --max-steps 50

  # Compare both strategies on every program
  simple agree`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(setupLogging(cmd.Context(), flags.Debug))
			loaded, err := loadConfig(cmd, flags)
			if err != nil {
				return err
			}
			cfg = *loaded
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrace(cmd.Context(), cfg, flags, programArg(cfg, args))
		},
	}

	pf := cmd.PersistentFlags()
	pf.BoolVarP(&flags.Debug, "debug", "d", false, "Enable debug logging")
	pf.StringVarP(&flags.ConfigPath, "config", "c", "", "Path to simple.toml (searched upward from the working directory if not set)")
	pf.BoolVar(&flags.Steps, "steps", false, "Prefix trace lines with the step number")
	pf.String("format", "", "Trace format: text or yaml")
	pf.Int("max-steps", 0, "Abort the small-step machine after this many steps (0 for no limit)")
	pf.Int("width", 0, "Truncate trace lines to this width (0 for no limit)")
	pf.Bool("no-color", false, "Disable styled output")

	cmd.AddCommand(
		runCmd(&cfg, &flags),
		evalCmd(&cfg, &flags),
		checkCmd(&cfg),
		agreeCmd(&cfg),
		listCmd(),
	)

	return cmd
}

func setupLogging(ctx context.Context, debug bool) context.Context {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	handler := slog.NewTextHandler(ioctx.StderrFromContext(ctx), &slog.HandlerOptions{
		Level: level,
	})
	logger := slog.New(handler)
	slog.SetDefault(logger)
	return ioctx.LoggerToContext(ctx, logger)
}

// loadConfig layers simple.toml, SIMPLE_* environment variables and flags,
// in increasing order of precedence.
func loadConfig(cmd *cobra.Command, flags Flags) (*config.Config, error) {
	var cfg *config.Config
	if flags.ConfigPath != "" {
		loaded, err := config.Load(flags.ConfigPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	} else {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		path, found, err := config.Find(cwd)
		if err != nil {
			return nil, err
		}
		if found != nil {
			slog.Debug("loaded config", "path", path)
			cfg = found
		} else {
			def := config.Default()
			cfg = &def
		}
	}

	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}

	fs := cmd.Flags()
	if fs.Changed("format") {
		cfg.Format, _ = fs.GetString("format")
	}
	if fs.Changed("max-steps") {
		cfg.MaxSteps, _ = fs.GetInt("max-steps")
	}
	if fs.Changed("width") {
		cfg.Width, _ = fs.GetInt("width")
	}
	if fs.Changed("no-color") {
		cfg.NoColor, _ = fs.GetBool("no-color")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func programArg(cfg config.Config, args []string) string {
	if len(args) == 1 {
		return args[0]
	}
	return cfg.Program
}
