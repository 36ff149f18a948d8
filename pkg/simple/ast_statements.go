package simple

import "fmt"

// Statement is a node of an immutable statement tree. The set of
// implementations is closed: DoNothing, *Assign, *If, *Sequence and *While.
type Statement interface {
	fmt.Stringer
	isStatement()
}

var _ Statement = DoNothing{}
var _ Statement = (*Assign)(nil)
var _ Statement = (*If)(nil)
var _ Statement = (*Sequence)(nil)
var _ Statement = (*While)(nil)

// DoNothing is the terminal statement.
type DoNothing struct{}

func (DoNothing) isStatement() {}

func (DoNothing) String() string { return "do-nothing" }

// DoesNothing reports whether stmt is syntactically DoNothing. It does not
// reduce anything.
func DoesNothing(stmt Statement) bool {
	_, ok := stmt.(DoNothing)
	return ok
}

// Assign binds Name once Expr is fully reduced.
type Assign struct {
	Name string
	Expr Expression
}

func NewAssign(name string, expr Expression) *Assign {
	return &Assign{Name: name, Expr: expr}
}

func (*Assign) isStatement() {}

func (a *Assign) String() string {
	return fmt.Sprintf("%s = %s", a.Name, a.Expr)
}

// If branches on a Boolean condition.
type If struct {
	Condition   Expression
	Consequence Statement
	Alternative Statement
}

func NewIf(cond Expression, consequence, alternative Statement) *If {
	return &If{Condition: cond, Consequence: consequence, Alternative: alternative}
}

func (*If) isStatement() {}

func (i *If) String() string {
	return fmt.Sprintf("if (%s) { %s } else { %s }", i.Condition, i.Consequence, i.Alternative)
}

// Sequence runs First to completion, then Second.
type Sequence struct {
	First  Statement
	Second Statement
}

func NewSequence(first, second Statement) *Sequence {
	return &Sequence{First: first, Second: second}
}

// Seq chains statements into right-nested Sequences. With no statements it
// returns DoNothing; with one it returns that statement unchanged.
func Seq(stmts ...Statement) Statement {
	switch len(stmts) {
	case 0:
		return DoNothing{}
	case 1:
		return stmts[0]
	default:
		return NewSequence(stmts[0], Seq(stmts[1:]...))
	}
}

func (*Sequence) isStatement() {}

func (s *Sequence) String() string {
	return fmt.Sprintf("%s; %s", s.First, s.Second)
}

// While repeats Body for as long as Condition is true.
type While struct {
	Condition Expression
	Body      Statement
}

func NewWhile(cond Expression, body Statement) *While {
	return &While{Condition: cond, Body: body}
}

func (*While) isStatement() {}

func (w *While) String() string {
	return fmt.Sprintf("while (%s) { %s }", w.Condition, w.Body)
}
