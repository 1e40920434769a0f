package files

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pluqqy/calqqy/pkg/models"
)

func TestConfigDirOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(ConfigDirEnv, dir)

	got, err := ConfigDir()
	require.NoError(t, err)
	assert.Equal(t, dir, got)

	path, err := SettingsPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, SettingsFile), path)

	logPath, err := LogPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, LogFile), logPath)
}

func TestInitConfigDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", AppDirName)

	require.NoError(t, InitConfigDir(dir))

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestReadSettingsMissingFileReturnsDefaults(t *testing.T) {
	settings, err := ReadSettingsFrom(filepath.Join(t.TempDir(), SettingsFile))
	require.NoError(t, err)
	assert.Equal(t, models.DefaultSettings(), settings)
}

func TestReadWriteSettings(t *testing.T) {
	t.Setenv(ConfigDirEnv, filepath.Join(t.TempDir(), "cfg"))

	settings := models.DefaultSettings()
	settings.UI.Theme = models.ThemeDark
	settings.UI.Scale = 1.2
	settings.Log.Debug = true

	require.NoError(t, WriteSettings(settings))

	loaded, err := ReadSettings()
	require.NoError(t, err)
	assert.Equal(t, settings, loaded)

	path, _ := SettingsPath()
	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err), "temp file should be renamed away")
}

func TestReadSettingsPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), SettingsFile)
	require.NoError(t, os.WriteFile(path, []byte("ui:\n  theme: dark\n"), 0644))

	settings, err := ReadSettingsFrom(path)
	require.NoError(t, err)
	assert.Equal(t, models.ThemeDark, settings.UI.Theme)
	assert.Equal(t, models.Scale(models.DefaultScale), settings.UI.Scale)
	assert.True(t, settings.UI.ShowHelpHint)
}

func TestReadSettingsClampsScale(t *testing.T) {
	path := filepath.Join(t.TempDir(), SettingsFile)
	require.NoError(t, os.WriteFile(path, []byte("ui:\n  scale: 2.5\n"), 0644))

	settings, err := ReadSettingsFrom(path)
	require.NoError(t, err)
	assert.Equal(t, models.Scale(models.MaxScale), settings.UI.Scale)
}

func TestReadSettingsErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errIs   error
	}{
		{
			name:    "malformed yaml",
			content: "ui: [unclosed",
		},
		{
			name:    "unknown theme",
			content: "ui:\n  theme: neon\n",
			errIs:   models.ErrInvalidTheme,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), SettingsFile)
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))

			_, err := ReadSettingsFrom(path)
			require.Error(t, err)
			if tt.errIs != nil {
				assert.ErrorIs(t, err, tt.errIs)
			}
		})
	}
}

func TestWriteSettingsRejectsInvalidTheme(t *testing.T) {
	settings := models.DefaultSettings()
	settings.UI.Theme = "neon"

	err := WriteSettingsTo(filepath.Join(t.TempDir(), SettingsFile), settings)
	assert.ErrorIs(t, err, models.ErrInvalidTheme)
}

func TestWatchSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), SettingsFile)

	w, err := WatchSettings(path)
	require.NoError(t, err)
	defer w.Close()

	settings := models.DefaultSettings()
	settings.UI.Theme = models.ThemeDark
	require.NoError(t, WriteSettingsTo(path, settings))

	deadline := time.After(5 * time.Second)
	for {
		select {
		case ev := <-w.Events():
			if ev.Err != nil || ev.Settings == nil || ev.Settings.UI.Theme != models.ThemeDark {
				continue
			}
			return
		case <-deadline:
			t.Fatal("timed out waiting for settings event")
		}
	}
}

func TestWatchSettingsCloseClosesEvents(t *testing.T) {
	w, err := WatchSettings(filepath.Join(t.TempDir(), SettingsFile))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	_, ok := <-w.Events()
	assert.False(t, ok)
}
