package keypad

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pluqqy/calqqy/pkg/calculator"
)

func TestLayoutRowsCoverFourCells(t *testing.T) {
	layout := Layout()
	require.Len(t, layout, 5)

	for i, row := range layout {
		cells := 0
		for _, b := range row {
			cells += b.Span
		}
		assert.Equal(t, 4, cells, "row %d", i)
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		label  string
		action Action
		op     calculator.Operator
		text   string
	}{
		{"7", ActionAppend, calculator.OpNone, "7"},
		{",", ActionAppend, calculator.OpNone, ","},
		{".", ActionAppend, calculator.OpNone, ","},
		{"+", ActionOperator, calculator.OpAdd, "+"},
		{"-", ActionOperator, calculator.OpSubtract, "-"},
		{"*", ActionOperator, calculator.OpMultiply, "×"},
		{"x", ActionOperator, calculator.OpMultiply, "×"},
		{"/", ActionOperator, calculator.OpDivide, "÷"},
		{"÷", ActionOperator, calculator.OpDivide, "÷"},
		{"=", ActionCompute, calculator.OpNone, "="},
		{"del", ActionDelete, calculator.OpNone, "DEL"},
		{"C", ActionClear, calculator.OpNone, "C"},
		{"clear", ActionClear, calculator.OpNone, "C"},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			b, err := Parse(tt.label)
			require.NoError(t, err)
			assert.Equal(t, tt.action, b.Action)
			assert.Equal(t, tt.op, b.Operator)
			assert.Equal(t, tt.text, b.Label)
		})
	}
}

func TestParseUnknown(t *testing.T) {
	_, err := Parse("%")
	assert.ErrorIs(t, err, ErrUnknownKey)
}

func TestTokenize(t *testing.T) {
	buttons, err := Tokenize("12,5×3=")
	require.NoError(t, err)

	labels := make([]string, len(buttons))
	for i, b := range buttons {
		labels[i] = b.Label
	}
	assert.Equal(t, []string{"1", "2", ",", "5", "×", "3", "="}, labels)

	buttons, err = Tokenize("DEL")
	require.NoError(t, err)
	require.Len(t, buttons, 1)
	assert.Equal(t, ActionDelete, buttons[0].Action)

	_, err = Tokenize("2^3")
	assert.ErrorIs(t, err, ErrUnknownKey)
}

func TestPressAll(t *testing.T) {
	e := calculator.New()
	steps, err := PressAll(e, []string{"2", "+", "3", "×", "4", "="})
	require.NoError(t, err)
	require.Len(t, steps, 6)

	assert.Equal(t, "2 +", steps[1].Snapshot.PreviousLabel)
	assert.Equal(t, "5 ×", steps[3].Snapshot.PreviousLabel)
	assert.Equal(t, "20", steps[5].Snapshot.Display)
	assert.Equal(t, "20", e.Display())
}

func TestPressAllDivideByZero(t *testing.T) {
	e := calculator.New()
	steps, err := PressAll(e, []string{"5÷0="})
	require.NoError(t, err)
	assert.Equal(t, calculator.ErrorMarker, steps[len(steps)-1].Snapshot.Display)
	assert.Equal(t, calculator.Error, e.State())
}

func TestPressAllInvalidArgumentPressesNothing(t *testing.T) {
	e := calculator.New()
	_, err := PressAll(e, []string{"1", "2", "?"})
	require.ErrorIs(t, err, ErrUnknownKey)
	assert.Equal(t, "0", e.Display())
}

func TestPressDeleteAndClear(t *testing.T) {
	e := calculator.New()
	_, err := PressAll(e, []string{"123", "DEL"})
	require.NoError(t, err)
	assert.Equal(t, "12", e.Display())

	_, err = PressAll(e, []string{"C"})
	require.NoError(t, err)
	assert.Equal(t, "0", e.Display())
}
