package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pluqqy/calqqy/pkg/calculator"
	"github.com/pluqqy/calqqy/pkg/keypad"
)

func TestValidateOutputFormat(t *testing.T) {
	for _, f := range []string{"text", "json", "yaml"} {
		assert.NoError(t, ValidateOutputFormat(f), f)
	}
	assert.Error(t, ValidateOutputFormat("xml"))
}

func TestOutputResults(t *testing.T) {
	e := calculator.New()
	_, err := keypad.PressAll(e, []string{"3,5", "+"})
	require.NoError(t, err)
	snap := e.Snapshot()

	tests := []struct {
		format   string
		contains []string
	}{
		{"json", []string{`"display": "3,5"`, `"previous": "3,5 +"`, `"operator": "add"`, `"state": "operator-pending"`}},
		{"yaml", []string{"display: 3,5", "operator: add", "state: operator-pending"}},
		{"text", []string{"3,5"}},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, OutputResults(&buf, tt.format, snap))
			for _, want := range tt.contains {
				assert.Contains(t, buf.String(), want)
			}
		})
	}

	var buf bytes.Buffer
	assert.Error(t, OutputResults(&buf, "xml", snap))
}

func TestRenderTrace(t *testing.T) {
	e := calculator.New()
	steps, err := keypad.PressAll(e, []string{"8÷2="})
	require.NoError(t, err)

	var buf bytes.Buffer
	RenderTrace(&buf, steps)
	out := buf.String()

	assert.Contains(t, out, "DISPLAY")
	assert.Contains(t, out, "8 ÷")
	assert.Contains(t, out, "operator-pending")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	// borders, header, separator and one row per step
	assert.Len(t, lines, 4+len(steps))
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		defaultYes bool
		expected   bool
	}{
		{"yes", "y\n", false, true},
		{"full yes", "YES\n", false, true},
		{"no", "n\n", true, false},
		{"empty uses default yes", "\n", true, true},
		{"empty uses default no", "\n", false, false},
		{"no trailing newline", "y", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			ok, err := Confirm(strings.NewReader(tt.input), &out, "Reset?", tt.defaultYes)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, ok)
			assert.Contains(t, out.String(), "Reset?")
		})
	}
}

func TestPrintHelpers(t *testing.T) {
	var buf bytes.Buffer
	PrintSuccess(&buf, "saved %s", "settings")
	assert.Equal(t, "✓ saved settings\n", buf.String())

	SetGlobalFlags(false, true)
	defer SetGlobalFlags(false, false)

	buf.Reset()
	PrintWarning(&buf, "careful")
	assert.Equal(t, "WARNING: careful\n", buf.String())

	SetGlobalFlags(true, true)
	buf.Reset()
	PrintInfo(&buf, "hidden")
	assert.Empty(t, buf.String())
}
