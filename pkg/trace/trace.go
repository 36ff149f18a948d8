package trace

import (
	"fmt"
	"io"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
	"gopkg.in/yaml.v3"

	"github.com/vito/simple/pkg/simple"
)

// Printer writes machine states as they are observed.
type Printer interface {
	Observe(simple.State) error
	Close() error
}

// Format names an output format.
type Format string

const (
	TextFormat Format = "text"
	YAMLFormat Format = "yaml"
)

// Options control how states are rendered.
type Options struct {
	Format Format
	// Color enables ANSI styling of text output.
	Color bool
	// Width truncates text lines to this many cells; zero disables it.
	Width int
	// Steps prefixes text lines with the step number.
	Steps bool
}

// New returns a Printer for opts.Format.
func New(w io.Writer, opts Options) (Printer, error) {
	switch opts.Format {
	case TextFormat, "":
		return &TextPrinter{w: w, opts: opts}, nil
	case YAMLFormat:
		return NewYAMLPrinter(w), nil
	default:
		return nil, fmt.Errorf("unknown trace format %q", opts.Format)
	}
}

var (
	stepStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	statementStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("63")).Bold(true)
	haltedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	envStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
)

// TextPrinter writes one `«statement», { env }` line per state.
type TextPrinter struct {
	w    io.Writer
	opts Options
}

func NewTextPrinter(w io.Writer, opts Options) *TextPrinter {
	return &TextPrinter{w: w, opts: opts}
}

func (p *TextPrinter) Observe(s simple.State) error {
	_, err := fmt.Fprintln(p.w, p.Line(s))
	return err
}

// Line renders a single state.
func (p *TextPrinter) Line(s simple.State) string {
	stmt := simple.Inspect(s.Statement)
	env := s.Environment.String()
	var step string
	if p.opts.Steps {
		step = fmt.Sprintf("%4d ", s.Step)
	}
	if p.opts.Color {
		if s.Terminal() {
			stmt = haltedStyle.Render(stmt)
		} else {
			stmt = statementStyle.Render(stmt)
		}
		env = envStyle.Render(env)
		if step != "" {
			step = stepStyle.Render(step)
		}
	}
	line := step + stmt + ", " + env
	if p.opts.Width > 0 && ansi.StringWidth(line) > p.opts.Width {
		line = ansi.Truncate(line, p.opts.Width, "…")
	}
	return line
}

func (p *TextPrinter) Close() error { return nil }

// StateDocument is the YAML shape of one state.
type StateDocument struct {
	Step        int            `yaml:"step"`
	Statement   string         `yaml:"statement"`
	Environment map[string]any `yaml:"environment"`
	Halted      bool           `yaml:"halted,omitempty"`
}

// Document converts a state into its YAML shape.
func Document(s simple.State) StateDocument {
	env := make(map[string]any, s.Environment.Len())
	for name, val := range s.Environment.Map() {
		switch v := val.(type) {
		case simple.Number:
			env[name] = v.Val
		case simple.Boolean:
			env[name] = v.Val
		default:
			env[name] = v.String()
		}
	}
	return StateDocument{
		Step:        s.Step,
		Statement:   s.Statement.String(),
		Environment: env,
		Halted:      s.Terminal(),
	}
}

// YAMLPrinter writes one YAML document per state.
type YAMLPrinter struct {
	enc *yaml.Encoder
}

func NewYAMLPrinter(w io.Writer) *YAMLPrinter {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	return &YAMLPrinter{enc: enc}
}

func (p *YAMLPrinter) Observe(s simple.State) error {
	return p.enc.Encode(Document(s))
}

func (p *YAMLPrinter) Close() error {
	return p.enc.Close()
}
