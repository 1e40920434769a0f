package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ConfirmationConfig holds the configuration for a confirmation dialog
type ConfirmationConfig struct {
	Title       string // Title shown at the top
	Message     string // Main confirmation message
	Warning     string // Optional warning text (shown in orange)
	Destructive bool   // If true, Yes is red, No is green
}

const confirmationWidth = 44

// ConfirmationModel handles yes/no prompts on top of another view
type ConfirmationModel struct {
	active    bool
	config    ConfirmationConfig
	onConfirm func() tea.Cmd
}

// NewConfirmation creates a new confirmation model
func NewConfirmation() *ConfirmationModel {
	return &ConfirmationModel{}
}

// Show activates the confirmation with the given configuration
func (m *ConfirmationModel) Show(config ConfirmationConfig, onConfirm func() tea.Cmd) {
	m.active = true
	m.config = config
	m.onConfirm = onConfirm
}

// Hide deactivates the confirmation
func (m *ConfirmationModel) Hide() {
	m.active = false
}

// Active returns whether the confirmation is currently shown
func (m *ConfirmationModel) Active() bool {
	return m.active
}

// Update handles key events for the confirmation. Declining only closes
// the dialog.
func (m *ConfirmationModel) Update(msg tea.KeyMsg) tea.Cmd {
	if !m.active {
		return nil
	}

	switch msg.String() {
	case "y", "Y":
		m.active = false
		if m.onConfirm != nil {
			return m.onConfirm()
		}
	case "n", "N", "esc":
		m.active = false
	}
	return nil
}

// View renders the dialog
func (m *ConfirmationModel) View() string {
	if !m.active {
		return ""
	}

	borderStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorActive)).
		Padding(1, 2)

	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorWarning))

	warningStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorWarning))

	center := lipgloss.NewStyle().Width(confirmationWidth).Align(lipgloss.Center)

	var b strings.Builder
	if m.config.Title != "" {
		b.WriteString(center.Render(headerStyle.Render(m.config.Title)))
		b.WriteString("\n\n")
	}
	if m.config.Message != "" {
		b.WriteString(center.Render(m.config.Message))
		b.WriteString("\n")
	}
	if m.config.Warning != "" {
		b.WriteString("\n")
		b.WriteString(center.Render(warningStyle.Render(m.config.Warning)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(center.Render(formatConfirmOptions(m.config.Destructive) + "  (yes / no)"))

	return borderStyle.Render(b.String())
}

// ShowDialog is a shorthand for a dialog with title, message and warning
func (m *ConfirmationModel) ShowDialog(title, message, warning string, destructive bool, onConfirm func() tea.Cmd) {
	m.Show(ConfirmationConfig{
		Title:       title,
		Message:     message,
		Warning:     warning,
		Destructive: destructive,
	}, onConfirm)
}

// formatConfirmOptions renders the [y]/[n] hint, coloring the risky answer red
func formatConfirmOptions(destructive bool) string {
	yes := lipgloss.NewStyle().Bold(true)
	no := lipgloss.NewStyle().Bold(true)
	if destructive {
		yes = yes.Foreground(lipgloss.Color(ColorDanger))
		no = no.Foreground(lipgloss.Color(ColorSuccess))
	} else {
		yes = yes.Foreground(lipgloss.Color(ColorSuccess))
		no = no.Foreground(lipgloss.Color(ColorNormal))
	}
	return yes.Render("[y]") + " / " + no.Render("[n]")
}
