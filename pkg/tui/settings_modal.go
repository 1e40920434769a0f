package tui

import (
	"fmt"
	"log/slog"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pluqqy/calqqy/pkg/files"
	"github.com/pluqqy/calqqy/pkg/models"
)

const (
	fieldTheme = iota
	fieldScale
	fieldHelpHint
	fieldSave
	fieldCount
)

// settingsSavedMsg is sent after the draft was written to disk
type settingsSavedMsg struct {
	settings *models.Settings
}

// settingsClosedMsg closes the modal. A nil settings means keep the
// settings as they were when the modal opened.
type settingsClosedMsg struct {
	settings *models.Settings
}

// SettingsModel edits a copy of the settings. Every change is previewed
// by the App; nothing is persisted until the user saves.
type SettingsModel struct {
	original    *models.Settings
	draft       *models.Settings
	path        string
	focusIndex  int
	exitConfirm *ConfirmationModel
	logger      *slog.Logger
}

// NewSettingsModel opens the modal on a copy of settings
func NewSettingsModel(settings *models.Settings, path string, logger *slog.Logger) *SettingsModel {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &SettingsModel{
		original:    settings.Clone(),
		draft:       settings.Clone(),
		path:        path,
		exitConfirm: NewConfirmation(),
		logger:      logger,
	}
}

// Draft returns the settings being edited
func (m *SettingsModel) Draft() *models.Settings {
	return m.draft
}

// Original returns the settings the modal was opened with
func (m *SettingsModel) Original() *models.Settings {
	return m.original
}

// HasChanges reports whether the draft differs from the original
func (m *SettingsModel) HasChanges() bool {
	return m.draft.UI != m.original.UI
}

// Update handles keys while the modal is open
func (m *SettingsModel) Update(msg tea.KeyMsg) tea.Cmd {
	if m.exitConfirm.Active() {
		return m.exitConfirm.Update(msg)
	}

	switch msg.String() {
	case "esc":
		if m.HasChanges() {
			m.exitConfirm.ShowDialog(
				"Unsaved Changes",
				"Discard your changes to the settings?",
				"Theme and scale go back to the saved values.",
				true,
				func() tea.Cmd { return closeSettings(nil) },
			)
			return nil
		}
		return closeSettings(nil)

	case "ctrl+s":
		return m.save()

	case "up", "k", "shift+tab":
		m.focusIndex = (m.focusIndex + fieldCount - 1) % fieldCount

	case "down", "j", "tab":
		m.focusIndex = (m.focusIndex + 1) % fieldCount

	case "left", "h", "-":
		m.change(-1)

	case "right", "l", "+", "=":
		m.change(1)

	case "enter", " ":
		if m.focusIndex == fieldSave {
			return m.save()
		}
		m.change(1)
	}

	return nil
}

func (m *SettingsModel) change(direction int) {
	switch m.focusIndex {
	case fieldTheme:
		m.draft.UI.Theme = m.draft.UI.Theme.Toggle()
	case fieldScale:
		m.draft.UI.Scale = m.draft.UI.Scale.Adjust(float64(direction) * models.ScaleStep)
	case fieldHelpHint:
		m.draft.UI.ShowHelpHint = !m.draft.UI.ShowHelpHint
	}
}

func (m *SettingsModel) save() tea.Cmd {
	settings := m.draft.Clone()
	path := m.path
	logger := m.logger
	return func() tea.Msg {
		if err := files.WriteSettingsTo(path, settings); err != nil {
			logger.Error("failed to save settings", "path", path, "error", err)
			return StatusMsg(fmt.Sprintf("✗ Failed to save settings: %v", err))
		}
		logger.Info("settings saved", "path", path, "theme", settings.UI.Theme, "scale", float64(settings.UI.Scale))
		return settingsSavedMsg{settings: settings}
	}
}

func closeSettings(settings *models.Settings) tea.Cmd {
	return func() tea.Msg {
		return settingsClosedMsg{settings: settings}
	}
}

// View renders the modal body
func (m *SettingsModel) View(styles Styles) string {
	if m.exitConfirm.Active() {
		return m.exitConfirm.View()
	}

	var b strings.Builder
	b.WriteString(styles.Title.Render("⚙ Settings"))
	b.WriteString("\n\n")

	rows := []struct {
		label string
		value string
	}{
		{"Theme", string(m.draft.UI.Theme)},
		{"Scale", fmt.Sprintf("- %s +", m.draft.UI.Scale.Percent())},
		{"Key hints", onOff(m.draft.UI.ShowHelpHint)},
	}
	for i, row := range rows {
		cursor := "  "
		label := styles.Label.Render(fmt.Sprintf("%-10s", row.label))
		value := styles.Value.Render(row.value)
		if i == m.focusIndex {
			cursor = styles.Selected.Render("▸ ")
			value = styles.Selected.Render(row.value)
		}
		b.WriteString(cursor + label + value + "\n")
	}

	b.WriteString("\n")
	save := "[ Save ]"
	if m.focusIndex == fieldSave {
		b.WriteString(styles.Selected.Render("▸ " + save))
	} else {
		b.WriteString("  " + styles.Label.Render(save))
	}
	if m.HasChanges() {
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(ColorWarning)).Render("  modified"))
	}

	b.WriteString("\n\n")
	b.WriteString(styles.Muted.Render("←/→ change • ctrl+s save • esc close"))
	b.WriteString("\n")
	b.WriteString(styles.Muted.Render(m.path))

	return styles.Modal.Render(b.String())
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}
