package simple

// BinaryOperatorEvaluator combines two fully reduced operands.
type BinaryOperatorEvaluator func(left, right Value) (Value, error)

// binaryOperator is the common shape of *Add, *Multiply and *LessThan.
type binaryOperator struct {
	Name     string
	Left     Expression
	Right    Expression
	Rebuild  func(left, right Expression) Expression
	EvalFunc BinaryOperatorEvaluator
}

func asBinaryOperator(expr Expression) (binaryOperator, bool) {
	switch e := expr.(type) {
	case *Add:
		return binaryOperator{
			Name:     "+",
			Left:     e.Left,
			Right:    e.Right,
			Rebuild:  func(l, r Expression) Expression { return NewAdd(l, r) },
			EvalFunc: additionEval,
		}, true
	case *Multiply:
		return binaryOperator{
			Name:     "*",
			Left:     e.Left,
			Right:    e.Right,
			Rebuild:  func(l, r Expression) Expression { return NewMultiply(l, r) },
			EvalFunc: multiplicationEval,
		}, true
	case *LessThan:
		return binaryOperator{
			Name:     "<",
			Left:     e.Left,
			Right:    e.Right,
			Rebuild:  func(l, r Expression) Expression { return NewLessThan(l, r) },
			EvalFunc: lessThanEval,
		}, true
	default:
		return binaryOperator{}, false
	}
}

func numberOperands(op string, left, right Value) (Number, Number, error) {
	l, ok := left.(Number)
	if !ok {
		return Number{}, Number{}, &TypeMismatchError{Operation: op, Expected: NumberType, Got: left.Type()}
	}
	r, ok := right.(Number)
	if !ok {
		return Number{}, Number{}, &TypeMismatchError{Operation: op, Expected: NumberType, Got: right.Type()}
	}
	return l, r, nil
}

func additionEval(left, right Value) (Value, error) {
	l, r, err := numberOperands("+", left, right)
	if err != nil {
		return nil, err
	}
	return Number{Val: l.Val + r.Val}, nil
}

func multiplicationEval(left, right Value) (Value, error) {
	l, r, err := numberOperands("*", left, right)
	if err != nil {
		return nil, err
	}
	return Number{Val: l.Val * r.Val}, nil
}

func lessThanEval(left, right Value) (Value, error) {
	l, r, err := numberOperands("<", left, right)
	if err != nil {
		return nil, err
	}
	return Boolean{Val: l.Val < r.Val}, nil
}

// condition extracts the truth value of a branch condition.
func condition(op string, val Value) (bool, error) {
	b, ok := val.(Boolean)
	if !ok {
		return false, &TypeMismatchError{Operation: op, Expected: BooleanType, Got: val.Type()}
	}
	return b.Val, nil
}
