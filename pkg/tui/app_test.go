package tui

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pluqqy/calqqy/internal/testutil"
	"github.com/pluqqy/calqqy/pkg/files"
	"github.com/pluqqy/calqqy/pkg/models"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	app := NewApp(Options{
		Settings:     models.DefaultSettings(),
		SettingsPath: filepath.Join(t.TempDir(), files.SettingsFile),
		Logger:       testutil.NewTestLogger(t),
	})
	app.Update(tea.WindowSizeMsg{Width: 80, Height: 30})
	return app
}

// send delivers msg and returns the resulting command
func send(app *App, msg tea.Msg) tea.Cmd {
	_, cmd := app.Update(msg)
	return cmd
}

func TestAppStatusMessages(t *testing.T) {
	app := newTestApp(t)

	cmd := send(app, StatusMsg("Copied"))
	assert.Equal(t, "Copied", app.statusMsg)
	assert.NotNil(t, cmd, "clear is scheduled")
	assert.Contains(t, app.View(), "Copied")

	first := app.statusSeq
	send(app, StatusMsg("Saved"))

	// the clear from the first message must not hide the second
	send(app, clearStatusMsg{seq: first})
	assert.Equal(t, "Saved", app.statusMsg)

	send(app, clearStatusMsg{seq: app.statusSeq})
	assert.Empty(t, app.statusMsg)
}

func TestAppQuit(t *testing.T) {
	tests := []struct {
		name string
		key  tea.KeyMsg
	}{
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}},
		{"q", runeKey("q")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(t)
			cmd := send(app, tt.key)
			require.NotNil(t, cmd)
			assert.IsType(t, tea.QuitMsg{}, cmd())
		})
	}
}

func TestAppCtrlCQuitsFromModal(t *testing.T) {
	app := newTestApp(t)
	send(app, runeKey("s"))
	require.Equal(t, settingsView, app.state)

	cmd := send(app, tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestAppRoutesKeysToCalculator(t *testing.T) {
	app := newTestApp(t)
	send(app, keyEnter)
	send(app, keyRight)
	send(app, keyEnter)

	assert.Equal(t, "78", app.calculator.Engine().Display())
	assert.Contains(t, app.View(), "78")
}

func TestAppHelpModal(t *testing.T) {
	app := newTestApp(t)

	send(app, runeKey("?"))
	require.Equal(t, helpView, app.state)
	assert.Contains(t, app.View(), "Help")

	// keys do not reach the calculator while help is open
	send(app, keyEnter)
	assert.Equal(t, "0", app.calculator.Engine().Display())

	send(app, keyEsc)
	assert.Equal(t, calculatorView, app.state)
	assert.Nil(t, app.help)
}

func TestAppSettingsPreviewAndCancel(t *testing.T) {
	app := newTestApp(t)

	send(app, runeKey("s"))
	require.Equal(t, settingsView, app.state)

	send(app, keyEnter)
	assert.Equal(t, models.ThemeDark, app.styles.Theme, "draft is previewed")
	assert.Equal(t, models.ThemeLight, app.Settings().UI.Theme)

	send(app, keyEsc)
	cmd := send(app, runeKey("y"))
	require.NotNil(t, cmd)
	send(app, cmd())

	assert.Equal(t, calculatorView, app.state)
	assert.Equal(t, models.ThemeLight, app.styles.Theme, "preview reverted")
}

func TestAppSettingsSave(t *testing.T) {
	app := newTestApp(t)

	send(app, runeKey("s"))
	send(app, keyDown)
	send(app, keyRight)
	cmd := send(app, tea.KeyMsg{Type: tea.KeyCtrlS})
	require.NotNil(t, cmd)

	cmd = send(app, cmd())
	assert.Equal(t, calculatorView, app.state)
	assert.Equal(t, models.Scale(1.1), app.Settings().UI.Scale)
	assert.Equal(t, models.Scale(1.1), app.styles.Scale)

	require.NotNil(t, cmd)
	assert.Equal(t, StatusMsg("✓ Settings saved"), cmd())
}

func TestAppSettingsChangedOnDisk(t *testing.T) {
	app := newTestApp(t)

	changed := models.DefaultSettings()
	changed.UI.Theme = models.ThemeDark
	changed.UI.ShowHelpHint = false
	send(app, settingsChangedMsg{Settings: changed})

	assert.Equal(t, models.ThemeDark, app.styles.Theme)
	assert.NotContains(t, app.View(), "copy")

	cmd := send(app, settingsChangedMsg{Err: errors.New("yaml: bad")})
	require.NotNil(t, cmd)
	assert.Equal(t, models.ThemeDark, app.Settings().UI.Theme, "invalid file keeps current settings")
}

func TestAppWatchesSettingsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), files.SettingsFile)
	watcher, err := files.WatchSettings(path)
	require.NoError(t, err)
	defer watcher.Close()

	app := NewApp(Options{
		SettingsPath: path,
		Watcher:      watcher,
		Logger:       testutil.NewTestLogger(t),
	})
	cmd := app.Init()
	require.NotNil(t, cmd)

	settings := models.DefaultSettings()
	settings.UI.Theme = models.ThemeDark
	require.NoError(t, files.WriteSettingsTo(path, settings))

	result := make(chan tea.Msg, 1)
	go func() { result <- cmd() }()

	var msg settingsChangedMsg
	select {
	case m := <-result:
		var ok bool
		msg, ok = m.(settingsChangedMsg)
		require.True(t, ok)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for settings change")
	}
	require.NoError(t, msg.Err)

	send(app, msg)
	assert.Equal(t, models.ThemeDark, app.Settings().UI.Theme)
}

func TestAppWithoutWatcher(t *testing.T) {
	app := NewApp(Options{})
	assert.Nil(t, app.Init())
	assert.Equal(t, "Loading...", app.View())
}
