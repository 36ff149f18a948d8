package simple

import (
	"fmt"
	"strconv"
)

// Value is a closed, irreducible result of evaluation.
type Value interface {
	fmt.Stringer
	Type() Type
	isValue()
}

// Number is an integer value.
type Number struct {
	Val int64
}

func (Number) isValue() {}

func (n Number) Type() Type { return NumberType }

func (n Number) String() string {
	return strconv.FormatInt(n.Val, 10)
}

// Boolean is a truth value.
type Boolean struct {
	Val bool
}

func (Boolean) isValue() {}

func (b Boolean) Type() Type { return BooleanType }

func (b Boolean) String() string {
	return strconv.FormatBool(b.Val)
}

// Type classifies values for the static checker and for error messages.
type Type int

const (
	NumberType Type = iota
	BooleanType
)

func (t Type) String() string {
	switch t {
	case NumberType:
		return "Number"
	case BooleanType:
		return "Boolean"
	default:
		return fmt.Sprintf("Type(%d)", int(t))
	}
}

// Inspect wraps a rendering in «» to distinguish terms from plain text.
func Inspect(p fmt.Stringer) string {
	return "«" + p.String() + "»"
}
