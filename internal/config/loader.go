// Package config resolves calqqy settings from defaults, the settings file,
// CALQQY_ environment variables and command line flags.
package config

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/pluqqy/calqqy/pkg/files"
	"github.com/pluqqy/calqqy/pkg/models"
)

// EnvPrefix is the prefix of environment variables read into the config.
const EnvPrefix = "CALQQY_"

// loggerKey is used to store the logger in a command context.
type loggerKey struct{}

// flagKeys maps command line flags to config keys.
var flagKeys = map[string]string{
	"theme": "ui.theme",
	"scale": "ui.scale",
	"debug": "log.debug",
}

// Config is the resolved configuration for one invocation.
type Config struct {
	Settings *models.Settings
	// SettingsPath is where the settings file is read from and saved to.
	SettingsPath string
	// FileFound reports whether SettingsPath existed when loading.
	FileFound bool
}

// LoadDotEnv loads a .env file into the process environment. A missing file
// is not an error.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// Load resolves the configuration.
// Precedence (highest to lowest): flags > env vars > settings file > defaults
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	// 1. Defaults
	defaults := models.DefaultSettings()
	if err := k.Load(confmap.Provider(map[string]interface{}{
		"ui.theme":          string(defaults.UI.Theme),
		"ui.scale":          float64(defaults.UI.Scale),
		"ui.show_help_hint": defaults.UI.ShowHelpHint,
		"log.debug":         defaults.Log.Debug,
		"log.file":          defaults.Log.File,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Settings file
	path := cfgFile
	if path == "" {
		p, err := files.SettingsPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	// a missing file is created on first save
	found := false
	if _, err := os.Stat(path); err == nil {
		found = true
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading settings file %s: %w", path, err)
		}
	}

	// 3. Environment: CALQQY_UI_SCALE -> ui.scale
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Explicitly set flags
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			key, ok := flagKeys[f.Name]
			if !ok || !f.Changed {
				return "", nil
			}
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	settings := &models.Settings{}
	if err := k.UnmarshalWithConf("", settings, koanf.UnmarshalConf{Tag: "yaml"}); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	if err := settings.Normalize(); err != nil {
		return nil, err
	}

	return &Config{
		Settings:     settings,
		SettingsPath: path,
		FileFound:    found,
	}, nil
}

// envKey turns CALQQY_UI_SHOW_HELP_HINT into ui.show_help_hint. Only the
// first underscore separates the section from the field.
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	if s == "config_dir" {
		// read by files.ConfigDir, not a setting
		return ""
	}
	section, field, ok := strings.Cut(s, "_")
	if !ok {
		return s
	}
	return section + "." + field
}

// NewLogger opens the debug log when enabled, and discards otherwise. The
// returned closer must be called on exit.
func NewLogger(settings *models.Settings) (*slog.Logger, io.Closer, error) {
	if !settings.Log.Debug {
		return slog.New(slog.DiscardHandler), nopCloser{}, nil
	}

	path := settings.Log.File
	if path == "" {
		p, err := files.LogPath()
		if err != nil {
			return nil, nil, err
		}
		path = p
	}
	if err := files.InitConfigDir(filepath.Dir(path)); err != nil {
		return nil, nil, err
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file %s: %w", path, err)
	}

	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return logger, f, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// WithLogger stores logger in ctx.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// GetLogger retrieves the logger from the command context.
func GetLogger(ctx context.Context) *slog.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
			return l
		}
	}
	// Return discard logger as safe fallback
	return slog.New(slog.DiscardHandler)
}
