package files

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pluqqy/calqqy/pkg/models"
	"gopkg.in/yaml.v3"
)

const (
	AppDirName   = "calqqy"
	SettingsFile = "settings.yaml"
	LogFile      = "calqqy.log"

	// ConfigDirEnv overrides the directory holding settings and the log
	ConfigDirEnv = "CALQQY_CONFIG_DIR"
)

// ConfigDir returns the directory holding settings and the debug log
func ConfigDir() (string, error) {
	if dir := os.Getenv(ConfigDirEnv); dir != "" {
		return dir, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate user config directory: %w", err)
	}
	return filepath.Join(base, AppDirName), nil
}

// SettingsPath returns the default settings file location
func SettingsPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, SettingsFile), nil
}

// LogPath returns the default debug log location
func LogPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, LogFile), nil
}

// InitConfigDir creates dir if it does not exist yet
func InitConfigDir(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}

// ReadSettings reads the settings file from its default location
func ReadSettings() (*models.Settings, error) {
	path, err := SettingsPath()
	if err != nil {
		return nil, err
	}
	return ReadSettingsFrom(path)
}

// ReadSettingsFrom reads settings from path. A missing file yields the
// defaults; values absent from the file keep their default.
func ReadSettingsFrom(path string) (*models.Settings, error) {
	settings := models.DefaultSettings()

	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return nil, fmt.Errorf("failed to read settings %s: %w", path, err)
	}

	if err := yaml.Unmarshal(content, settings); err != nil {
		return nil, fmt.Errorf("failed to parse settings YAML %s: %w", path, err)
	}

	if err := settings.Normalize(); err != nil {
		return nil, fmt.Errorf("invalid settings in %s: %w", path, err)
	}

	return settings, nil
}

// WriteSettings writes settings to the default location
func WriteSettings(settings *models.Settings) error {
	path, err := SettingsPath()
	if err != nil {
		return err
	}
	return WriteSettingsTo(path, settings)
}

// WriteSettingsTo writes settings to path, creating its directory
func WriteSettingsTo(path string, settings *models.Settings) error {
	if err := settings.Normalize(); err != nil {
		return err
	}

	if err := InitConfigDir(filepath.Dir(path)); err != nil {
		return err
	}

	content, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings to YAML: %w", err)
	}

	// replace atomically
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, content, 0644); err != nil {
		return fmt.Errorf("failed to write settings %s: %w", path, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to write settings %s: %w", path, err)
	}

	return nil
}
