package tui

import (
	"log/slog"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pluqqy/calqqy/pkg/calculator"
	"github.com/pluqqy/calqqy/pkg/keypad"
)

// keypadColumns is the number of grid cells per keypad row
const keypadColumns = 4

// writeClipboard is replaced in tests
var writeClipboard = clipboard.WriteAll

// CalculatorModel is the display plus the keypad. The cursor is kept as a
// grid cell so moving up and down through wide buttons keeps the column.
type CalculatorModel struct {
	engine   *calculator.Engine
	layout   [][]keypad.Button
	row      int
	col      int
	styles   Styles
	help     help.Model
	showHint bool
	logger   *slog.Logger
}

// NewCalculatorModel creates the calculator view with the cursor on 7
func NewCalculatorModel(styles Styles, logger *slog.Logger) *CalculatorModel {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &CalculatorModel{
		engine:   calculator.New(calculator.WithLogger(logger)),
		layout:   keypad.Layout(),
		row:      1,
		col:      0,
		styles:   styles,
		help:     help.New(),
		showHint: true,
		logger:   logger,
	}
}

// Engine exposes the engine for the status line and tests
func (m *CalculatorModel) Engine() *calculator.Engine {
	return m.engine
}

// SetStyles switches theme and scale
func (m *CalculatorModel) SetStyles(styles Styles) {
	m.styles = styles
}

// SetShowHint toggles the key help footer
func (m *CalculatorModel) SetShowHint(show bool) {
	m.showHint = show
}

// Selected returns the button under the cursor
func (m *CalculatorModel) Selected() keypad.Button {
	b, _ := m.buttonAt(m.row, m.col)
	return b
}

// buttonAt returns the button covering a grid cell and the cell it starts at
func (m *CalculatorModel) buttonAt(row, col int) (keypad.Button, int) {
	start := 0
	buttons := m.layout[row]
	for _, b := range buttons {
		if col < start+b.Span {
			return b, start
		}
		start += b.Span
	}
	last := buttons[len(buttons)-1]
	return last, start - last.Span
}

func (m *CalculatorModel) moveLeft() {
	_, start := m.buttonAt(m.row, m.col)
	if start > 0 {
		_, m.col = m.buttonAt(m.row, start-1)
	}
}

func (m *CalculatorModel) moveRight() {
	b, start := m.buttonAt(m.row, m.col)
	if next := start + b.Span; next < keypadColumns {
		m.col = next
	}
}

func (m *CalculatorModel) moveUp() {
	if m.row > 0 {
		m.row--
	}
}

func (m *CalculatorModel) moveDown() {
	if m.row < len(m.layout)-1 {
		m.row++
	}
}

// Update handles calculator keys. Keys that open other views are handled by
// the App before they get here.
func (m *CalculatorModel) Update(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, keys.Up):
		m.moveUp()
	case key.Matches(msg, keys.Down):
		m.moveDown()
	case key.Matches(msg, keys.Left):
		m.moveLeft()
	case key.Matches(msg, keys.Right):
		m.moveRight()
	case key.Matches(msg, keys.Press):
		b := m.Selected()
		b.Press(m.engine)
		m.logger.Debug("button pressed", "label", b.Label, "display", m.engine.Display())
	case key.Matches(msg, keys.Copy):
		return m.copyDisplay()
	}
	return nil
}

func (m *CalculatorModel) copyDisplay() tea.Cmd {
	display := m.engine.Display()
	return func() tea.Msg {
		if err := writeClipboard(display); err != nil {
			return StatusMsg("✗ Failed to copy: " + err.Error())
		}
		return StatusMsg("✓ Copied " + display + " to clipboard")
	}
}

// View renders the display and keypad inside the frame
func (m *CalculatorModel) View() string {
	s := m.styles
	width := s.KeypadWidth(keypadColumns)

	previous := m.engine.PreviousLabel()
	if previous == "" {
		previous = " "
	}

	displayStyle := s.Display
	if m.engine.State() == calculator.Error {
		displayStyle = s.Error
	}

	var rows []string
	rows = append(rows,
		s.Previous.Width(width).Render(previous),
		displayStyle.Width(width).Render(m.engine.Display()),
	)
	for r, buttons := range m.layout {
		var cells []string
		start := 0
		for _, b := range buttons {
			focused := r == m.row && m.col >= start && m.col < start+b.Span
			cells = append(cells, m.renderButton(b, focused))
			start += b.Span
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}

	content := s.Frame.Render(lipgloss.JoinVertical(lipgloss.Right, rows...))
	if !m.showHint {
		return content
	}

	return lipgloss.JoinVertical(lipgloss.Left, content, m.help.View(keys))
}

func (m *CalculatorModel) renderButton(b keypad.Button, focused bool) string {
	s := m.styles
	style := s.Key
	switch {
	case focused:
		style = s.Focused
	case b.Action == keypad.ActionOperator:
		style = s.Operator
	case b.Action == keypad.ActionCompute:
		style = s.Compute
	case b.Action == keypad.ActionClear, b.Action == keypad.ActionDelete:
		style = s.Action
	}
	label := b.Label
	if focused {
		label = "[" + label + "]"
	}
	return style.Width(s.ButtonWidth * b.Span).Render(label)
}
