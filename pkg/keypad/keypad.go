// Package keypad maps the calculator buttons to engine operations. Both the
// TUI keypad and the press command go through it.
package keypad

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/pluqqy/calqqy/pkg/calculator"
)

// ErrUnknownKey is returned for labels that match no button
var ErrUnknownKey = errors.New("unknown key")

// Action is what a button does to the engine
type Action int

const (
	ActionAppend Action = iota
	ActionOperator
	ActionCompute
	ActionDelete
	ActionClear
)

// Button is one key of the keypad
type Button struct {
	Label    string
	Action   Action
	Operator calculator.Operator
	// Span is the number of grid cells the button covers
	Span int
}

// Press applies the button to e
func (b Button) Press(e *calculator.Engine) {
	switch b.Action {
	case ActionAppend:
		e.Append(b.Label)
	case ActionOperator:
		e.ChooseOperator(b.Operator)
	case ActionCompute:
		e.Compute()
	case ActionDelete:
		e.DeleteLast()
	case ActionClear:
		e.ClearAll()
	}
}

func digit(label string) Button { return Button{Label: label, Action: ActionAppend, Span: 1} }

func operator(op calculator.Operator) Button {
	return Button{Label: op.Symbol(), Action: ActionOperator, Operator: op, Span: 1}
}

var (
	Clear   = Button{Label: "C", Action: ActionClear, Span: 1}
	Delete  = Button{Label: "DEL", Action: ActionDelete, Span: 2}
	Compute = Button{Label: "=", Action: ActionCompute, Span: 2}
	Comma   = Button{Label: calculator.DisplaySeparator, Action: ActionAppend, Span: 1}
)

// Layout is the keypad grid, top row first
func Layout() [][]Button {
	return [][]Button{
		{Clear, Delete, operator(calculator.OpDivide)},
		{digit("7"), digit("8"), digit("9"), operator(calculator.OpMultiply)},
		{digit("4"), digit("5"), digit("6"), operator(calculator.OpSubtract)},
		{digit("1"), digit("2"), digit("3"), operator(calculator.OpAdd)},
		{digit("0"), Comma, Compute},
	}
}

// Parse resolves a single button label, including ASCII aliases such as
// "*" and "/" for the operators
func Parse(label string) (Button, error) {
	switch strings.ToUpper(label) {
	case "C", "AC", "CLEAR":
		return Clear, nil
	case "DEL", "DELETE", "BACKSPACE", "⌫":
		return Delete, nil
	case "=", "ENTER":
		return Compute, nil
	case ",", ".":
		return Comma, nil
	}
	if len(label) == 1 && label[0] >= '0' && label[0] <= '9' {
		return digit(label), nil
	}
	if op, err := calculator.ParseOperator(label); err == nil {
		return operator(op), nil
	}
	return Button{}, fmt.Errorf("%w: %q", ErrUnknownKey, label)
}

// Tokenize splits an argument into button labels. Whole words such as
// "DEL" are kept, anything else is read one character at a time, so
// "12,5+3=" yields 1 2 , 5 + 3 =.
func Tokenize(arg string) ([]Button, error) {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return nil, nil
	}
	if b, err := Parse(arg); err == nil {
		return []Button{b}, nil
	}

	var buttons []Button
	for len(arg) > 0 {
		r, size := utf8.DecodeRuneInString(arg)
		label := arg[:size]
		arg = arg[size:]
		if r == ' ' {
			continue
		}
		b, err := Parse(label)
		if err != nil {
			return nil, err
		}
		buttons = append(buttons, b)
	}
	return buttons, nil
}

// Step records the engine projection after one button press
type Step struct {
	Button   Button
	Snapshot calculator.Snapshot
}

// PressAll tokenizes args and presses every button on e, returning one step
// per press. Nothing is pressed when any argument is invalid.
func PressAll(e *calculator.Engine, args []string) ([]Step, error) {
	var buttons []Button
	for _, arg := range args {
		bs, err := Tokenize(arg)
		if err != nil {
			return nil, err
		}
		buttons = append(buttons, bs...)
	}

	steps := make([]Step, 0, len(buttons))
	for _, b := range buttons {
		b.Press(e)
		steps = append(steps, Step{Button: b, Snapshot: e.Snapshot()})
	}
	return steps, nil
}
