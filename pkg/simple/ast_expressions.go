package simple

import "fmt"

// Expression is a node of an immutable expression tree. The set of
// implementations is closed: *Literal, *Add, *Multiply, *LessThan and
// *Variable.
type Expression interface {
	fmt.Stringer
	isExpression()
}

var _ Expression = (*Literal)(nil)
var _ Expression = (*Add)(nil)
var _ Expression = (*Multiply)(nil)
var _ Expression = (*LessThan)(nil)
var _ Expression = (*Variable)(nil)

// Literal is a fully reduced expression carrying exactly one Value.
type Literal struct {
	Value Value
}

func Lit(v Value) *Literal { return &Literal{Value: v} }

func Num(n int64) *Literal { return Lit(Number{Val: n}) }

func Bool(b bool) *Literal { return Lit(Boolean{Val: b}) }

func (*Literal) isExpression() {}

func (l *Literal) String() string { return l.Value.String() }

// Add sums two numbers.
type Add struct {
	Left  Expression
	Right Expression
}

func NewAdd(left, right Expression) *Add {
	return &Add{Left: left, Right: right}
}

func (*Add) isExpression() {}

func (a *Add) String() string {
	return fmt.Sprintf("%s + %s", a.Left, a.Right)
}

// Multiply multiplies two numbers.
type Multiply struct {
	Left  Expression
	Right Expression
}

func NewMultiply(left, right Expression) *Multiply {
	return &Multiply{Left: left, Right: right}
}

func (*Multiply) isExpression() {}

func (m *Multiply) String() string {
	return fmt.Sprintf("%s * %s", m.Left, m.Right)
}

// LessThan compares two numbers, producing a Boolean.
type LessThan struct {
	Left  Expression
	Right Expression
}

func NewLessThan(left, right Expression) *LessThan {
	return &LessThan{Left: left, Right: right}
}

func (*LessThan) isExpression() {}

func (l *LessThan) String() string {
	return fmt.Sprintf("%s < %s", l.Left, l.Right)
}

// Variable refers to a binding in the Environment.
type Variable struct {
	Name string
}

func Var(name string) *Variable { return &Variable{Name: name} }

func (*Variable) isExpression() {}

func (v *Variable) String() string { return v.Name }
