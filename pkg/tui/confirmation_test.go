package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type confirmedMsg struct{}

func TestConfirmationModel(t *testing.T) {
	tests := []struct {
		name      string
		key       tea.KeyMsg
		confirmed bool
	}{
		{"y confirms", runeKey("y"), true},
		{"Y confirms", runeKey("Y"), true},
		{"n declines", runeKey("n"), false},
		{"esc declines", keyEsc, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewConfirmation()
			m.ShowDialog("Title", "Message", "", false, func() tea.Cmd {
				return func() tea.Msg { return confirmedMsg{} }
			})
			require.True(t, m.Active())

			cmd := m.Update(tt.key)
			assert.False(t, m.Active())
			if tt.confirmed {
				require.NotNil(t, cmd)
				assert.Equal(t, confirmedMsg{}, cmd())
			} else {
				assert.Nil(t, cmd)
			}
		})
	}
}

func TestConfirmationModelIgnoresOtherKeys(t *testing.T) {
	m := NewConfirmation()
	m.ShowDialog("Title", "Message", "", false, nil)

	assert.Nil(t, m.Update(runeKey("x")))
	assert.True(t, m.Active())
}

func TestConfirmationModelView(t *testing.T) {
	m := NewConfirmation()
	assert.Empty(t, m.View())

	m.ShowDialog("Unsaved Changes", "Discard?", "Careful", true, nil)
	view := m.View()
	assert.Contains(t, view, "Unsaved Changes")
	assert.Contains(t, view, "Discard?")
	assert.Contains(t, view, "Careful")
	assert.Contains(t, view, "(yes / no)")

	m.Hide()
	assert.Empty(t, m.View())
}
