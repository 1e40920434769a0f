package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/reflow/wordwrap"
)

const helpText = `calqqy is a keypad calculator. Move between buttons with the arrow keys or h/j/k/l and press the selected button with enter or space.

Numbers use a comma as the decimal separator. An entry holds at most 15 digits; further digits are ignored.

Operators chain from left to right: 2 + 3 × 4 = gives 20. Choosing an operator while another is pending computes the pending one first, so pressing + twice after 6 gives 12 +.

Dividing by zero shows Erro. Press any digit to start again, DEL to reset the display to 0, or C to clear everything.

Results are shown with up to 10 decimals. Long results switch to 10 significant digits, using exponent notation for very large or very small values.

Keys
  ←↑↓→ / hjkl   move
  enter / space  press button
  y              copy display
  s              settings
  ?              this help
  q / ctrl+c     quit`

// HelpModel shows the help text in a scrollable viewport
type HelpModel struct {
	viewport viewport.Model
}

// NewHelpModel creates the help view sized for the terminal
func NewHelpModel(width, height int) *HelpModel {
	m := &HelpModel{viewport: viewport.New(0, 0)}
	m.SetSize(width, height)
	return m
}

// SetSize wraps the text to fit the modal
func (m *HelpModel) SetSize(width, height int) {
	w := width - 10
	if w > 72 {
		w = 72
	}
	if w < 20 {
		w = 20
	}
	h := height - 8
	if h < 5 {
		h = 5
	}
	m.viewport.Width = w
	m.viewport.Height = h
	m.viewport.SetContent(wordwrap.String(helpText, w))
}

// Update scrolls the viewport; the App closes the modal
func (m *HelpModel) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return cmd
}

// View renders the modal body
func (m *HelpModel) View(styles Styles) string {
	var b strings.Builder
	b.WriteString(styles.Title.Render("Help"))
	b.WriteString("\n\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n\n")
	b.WriteString(styles.Muted.Render("↑/↓ scroll • esc close"))
	return styles.Modal.Render(b.String())
}
