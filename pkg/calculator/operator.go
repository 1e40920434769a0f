package calculator

import "fmt"

// Operator is a pending binary operation.
type Operator int

const (
	OpNone Operator = iota
	OpAdd
	OpSubtract
	OpMultiply
	OpDivide
)

// Symbol returns the label printed on the keypad for the operator.
func (o Operator) Symbol() string {
	switch o {
	case OpAdd:
		return "+"
	case OpSubtract:
		return "-"
	case OpMultiply:
		return "×"
	case OpDivide:
		return "÷"
	default:
		return ""
	}
}

func (o Operator) String() string {
	switch o {
	case OpAdd:
		return "add"
	case OpSubtract:
		return "subtract"
	case OpMultiply:
		return "multiply"
	case OpDivide:
		return "divide"
	default:
		return "none"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (o Operator) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// ParseOperator maps a keypad symbol, or one of its ASCII aliases, to an
// operator.
func ParseOperator(symbol string) (Operator, error) {
	switch symbol {
	case "+":
		return OpAdd, nil
	case "-", "−":
		return OpSubtract, nil
	case "×", "x", "X", "*":
		return OpMultiply, nil
	case "÷", "/":
		return OpDivide, nil
	}
	return OpNone, fmt.Errorf("unknown operator %q", symbol)
}

// apply evaluates previous <op> current. ok is false when the division
// has a zero divisor.
func (o Operator) apply(previous, current float64) (result float64, ok bool) {
	switch o {
	case OpAdd:
		return previous + current, true
	case OpSubtract:
		return previous - current, true
	case OpMultiply:
		return previous * current, true
	case OpDivide:
		if current == 0 {
			return 0, false
		}
		return previous / current, true
	}
	return 0, false
}
