package programs

import (
	"fmt"
	"sort"

	"github.com/iancoleman/strcase"

	"github.com/vito/simple/pkg/simple"
)

// Program is a hand-built example with its expected outcome.
type Program struct {
	Name        string
	Description string
	Build       func() simple.Statement

	// Expected is the final environment both strategies must produce. It is
	// nil when the program fails or never terminates.
	Expected map[string]simple.Value

	// Fails is set for programs that stop with an error under both
	// strategies.
	Fails bool

	// Diverges is set for programs that never reach do-nothing.
	Diverges bool
}

type entry struct {
	ident string
	Program
}

var catalog = []entry{
	{"Assignment", Program{
		Description: "assign the sum of two literals",
		Build: func() simple.Statement {
			return simple.NewAssign("x", simple.NewAdd(simple.Num(3), simple.Num(5)))
		},
		Expected: map[string]simple.Value{"x": simple.Number{Val: 8}},
	}},
	{"Conditional", Program{
		Description: "take the else branch of a literal false condition",
		Build: func() simple.Statement {
			return simple.NewIf(simple.Bool(false), simple.NewAssign("x", simple.Num(1)), simple.NewAssign("y", simple.Num(2)))
		},
		Expected: map[string]simple.Value{"y": simple.Number{Val: 2}},
	}},
	{"Loop", Program{
		Description: "count up by two until reaching five",
		Build: func() simple.Statement {
			return CountBy(2, 5)
		},
		Expected: map[string]simple.Value{"x": simple.Number{Val: 6}},
	}},
	{"Comparisons", Program{
		Description: "evaluate less-than on a few pairs",
		Build: func() simple.Statement {
			return simple.Seq(
				simple.NewAssign("a", simple.NewLessThan(simple.Num(5), simple.Num(8))),
				simple.NewAssign("b", simple.NewLessThan(simple.Num(2), simple.Num(2))),
				simple.NewAssign("c", simple.NewLessThan(simple.Num(18), simple.Num(2))),
			)
		},
		Expected: map[string]simple.Value{
			"a": simple.Boolean{Val: true},
			"b": simple.Boolean{Val: false},
			"c": simple.Boolean{Val: false},
		},
	}},
	{"Arithmetic", Program{
		Description: "mix addition and multiplication over variables",
		Build: func() simple.Statement {
			return simple.Seq(
				simple.NewAssign("x", simple.Num(3)),
				simple.NewAssign("y", simple.NewAdd(simple.NewMultiply(simple.Var("x"), simple.Num(2)), simple.NewMultiply(simple.Num(3), simple.Var("x")))),
			)
		},
		Expected: map[string]simple.Value{
			"x": simple.Number{Val: 3},
			"y": simple.Number{Val: 15},
		},
	}},
	{"Factorial", Program{
		Description: "compute 5! with a while loop",
		Build: func() simple.Statement {
			return simple.Seq(
				simple.NewAssign("result", simple.Num(1)),
				simple.NewAssign("i", simple.Num(1)),
				simple.NewWhile(
					simple.NewLessThan(simple.Var("i"), simple.Num(6)),
					simple.Seq(
						simple.NewAssign("result", simple.NewMultiply(simple.Var("result"), simple.Var("i"))),
						simple.NewAssign("i", simple.NewAdd(simple.Var("i"), simple.Num(1))),
					),
				),
			)
		},
		Expected: map[string]simple.Value{
			"result": simple.Number{Val: 120},
			"i":      simple.Number{Val: 6},
		},
	}},
	{"NestedBranches", Program{
		Description: "pick the smaller of two numbers inside a loop",
		Build: func() simple.Statement {
			return simple.Seq(
				simple.NewAssign("a", simple.Num(4)),
				simple.NewAssign("b", simple.Num(7)),
				simple.NewAssign("n", simple.Num(0)),
				simple.NewWhile(
					simple.NewLessThan(simple.Var("n"), simple.Num(3)),
					simple.Seq(
						simple.NewIf(
							simple.NewLessThan(simple.Var("a"), simple.Var("b")),
							simple.NewAssign("a", simple.NewAdd(simple.Var("a"), simple.Num(2))),
							simple.NewAssign("b", simple.NewAdd(simple.Var("b"), simple.Num(2))),
						),
						simple.NewAssign("n", simple.NewAdd(simple.Var("n"), simple.Num(1))),
					),
				),
			)
		},
		Expected: map[string]simple.Value{
			"a": simple.Number{Val: 8},
			"b": simple.Number{Val: 9},
			"n": simple.Number{Val: 3},
		},
	}},
	{"LongLoop", Program{
		Description: "count up by two past sixty thousand",
		Build: func() simple.Statement {
			return CountBy(2, 60_001)
		},
		Expected: map[string]simple.Value{"x": simple.Number{Val: 60_002}},
	}},
	{"TypeError", Program{
		Description: "add a boolean to a number",
		Build: func() simple.Statement {
			return simple.NewAssign("x", simple.NewAdd(simple.Num(1), simple.Bool(true)))
		},
		Fails: true,
	}},
	{"Unbound", Program{
		Description: "read a variable that was never assigned",
		Build: func() simple.Statement {
			return simple.NewAssign("y", simple.NewAdd(simple.Var("x"), simple.Num(1)))
		},
		Fails: true,
	}},
	{"Forever", Program{
		Description: "loop on a literal true condition",
		Build: func() simple.Statement {
			return simple.Seq(
				simple.NewAssign("x", simple.Num(0)),
				simple.NewWhile(simple.Bool(true), simple.NewAssign("x", simple.NewAdd(simple.Var("x"), simple.Num(1)))),
			)
		},
		Diverges: true,
	}},
}

func init() {
	for i := range catalog {
		catalog[i].Name = strcase.ToKebab(catalog[i].ident)
	}
}

// CountBy builds `x = 0; while (x < limit) { x = x + step }`.
func CountBy(step, limit int64) simple.Statement {
	return simple.Seq(
		simple.NewAssign("x", simple.Num(0)),
		simple.NewWhile(
			simple.NewLessThan(simple.Var("x"), simple.Num(limit)),
			simple.NewAssign("x", simple.NewAdd(simple.Var("x"), simple.Num(step))),
		),
	)
}

// All returns every program in catalog order.
func All() []Program {
	all := make([]Program, len(catalog))
	for i, e := range catalog {
		all[i] = e.Program
	}
	return all
}

// Names returns the program names sorted alphabetically.
func Names() []string {
	names := make([]string, len(catalog))
	for i, e := range catalog {
		names[i] = e.Name
	}
	sort.Strings(names)
	return names
}

// Lookup finds a program by name. Names are matched in kebab case, so
// "LongLoop", "long_loop" and "long-loop" are equivalent.
func Lookup(name string) (Program, error) {
	key := strcase.ToKebab(name)
	for _, e := range catalog {
		if e.Name == key {
			return e.Program, nil
		}
	}
	return Program{}, fmt.Errorf("unknown program %q (known: %v)", name, Names())
}

// ExpectedEnvironment returns p.Expected as an Environment.
func (p Program) ExpectedEnvironment() simple.Environment {
	env := simple.NewEnvironment()
	for name, val := range p.Expected {
		env = env.Update(name, val)
	}
	return env
}
