package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pluqqy/calqqy/internal/cli"
	"github.com/pluqqy/calqqy/internal/config"
	"github.com/pluqqy/calqqy/pkg/files"
	"github.com/pluqqy/calqqy/pkg/models"
)

var (
	settingsOutput string
	settingsYes    bool
)

// settingKeys lists the keys accepted by settings set
var settingKeys = []string{"theme", "scale", "help-hint", "debug"}

// NewSettingsCommand creates the settings command and its subcommands
func NewSettingsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change saved settings",
		Long: `Show or change the settings used by the calculator.

Settings are read from the settings file, then CALQQY_ environment
variables (CALQQY_UI_THEME, CALQQY_UI_SCALE, CALQQY_LOG_DEBUG), then
command line flags. 'settings set' only changes the file; a running
calculator picks the change up immediately.`,
	}

	cmd.AddCommand(newSettingsShowCommand())
	cmd.AddCommand(newSettingsSetCommand())
	cmd.AddCommand(newSettingsPathCommand())
	cmd.AddCommand(newSettingsResetCommand())

	return cmd
}

func newSettingsShowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective settings",
		Args:  cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return cli.ValidateOutputFormat(settingsOutput)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(settingsFileFlag(cmd), cmd.Flags())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if cli.OutputFormat(settingsOutput) != cli.FormatText {
				return cli.OutputResults(out, settingsOutput, cfg.Settings)
			}

			s := cfg.Settings
			source := cfg.SettingsPath
			if !cfg.FileFound {
				source += " (not created yet)"
			}
			fmt.Fprintf(out, "File:      %s\n", source)
			fmt.Fprintf(out, "Theme:     %s\n", s.UI.Theme)
			fmt.Fprintf(out, "Scale:     %s\n", s.UI.Scale.Percent())
			fmt.Fprintf(out, "Help hint: %t\n", s.UI.ShowHelpHint)
			fmt.Fprintf(out, "Debug log: %t\n", s.Log.Debug)
			return nil
		},
	}

	cmd.Flags().StringVarP(&settingsOutput, "output", "o", "text", "Output format (text, json, yaml)")

	return cmd
}

func newSettingsSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Change a saved setting",
		Long: `Change one setting in the settings file.

Keys:
  theme      light or dark
  scale      display scale, 0.8 to 1.4 (a factor like 1.2 or a percentage like 120%)
  help-hint  true or false
  debug      true or false

Examples:
  calqqy settings set theme dark
  calqqy settings set scale 120%`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := settingsPath(cmd)
			if err != nil {
				return err
			}

			settings, err := files.ReadSettingsFrom(path)
			if err != nil {
				return err
			}

			if err := applySetting(settings, args[0], args[1]); err != nil {
				return err
			}

			if err := files.WriteSettingsTo(path, settings); err != nil {
				return err
			}

			config.GetLogger(cmd.Context()).Info("setting changed", "key", args[0], "value", args[1], "path", path)
			cli.PrintSuccess(cmd.OutOrStdout(), "Set %s to %s", args[0], args[1])
			return nil
		},
	}
}

func newSettingsPathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the settings file location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := settingsPath(cmd)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
}

func newSettingsResetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Restore the default settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := settingsPath(cmd)
			if err != nil {
				return err
			}

			if !settingsYes {
				ok, err := cli.Confirm(cmd.InOrStdin(), cmd.OutOrStdout(), "Restore default settings?", false)
				if err != nil {
					return err
				}
				if !ok {
					cli.PrintInfo(cmd.OutOrStdout(), "Reset cancelled")
					return nil
				}
			}

			if err := files.WriteSettingsTo(path, models.DefaultSettings()); err != nil {
				return err
			}
			cli.PrintSuccess(cmd.OutOrStdout(), "Restored default settings")
			return nil
		},
	}

	cmd.Flags().BoolVarP(&settingsYes, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}

func applySetting(s *models.Settings, key, value string) error {
	switch strings.ToLower(key) {
	case "theme":
		theme, err := models.ParseTheme(value)
		if err != nil {
			return err
		}
		s.UI.Theme = theme
	case "scale":
		scale, err := models.ParseScale(value)
		if err != nil {
			return err
		}
		s.UI.Scale = scale
	case "help-hint", "help_hint":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid value for %s: %q", key, value)
		}
		s.UI.ShowHelpHint = b
	case "debug":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid value for %s: %q", key, value)
		}
		s.Log.Debug = b
	default:
		return fmt.Errorf("unknown setting %q (must be one of: %s)", key, strings.Join(settingKeys, ", "))
	}
	return nil
}

// settingsFileFlag returns the --config value, "" when unset
func settingsFileFlag(cmd *cobra.Command) string {
	if f := cmd.Flag("config"); f != nil {
		return f.Value.String()
	}
	return ""
}

func settingsPath(cmd *cobra.Command) (string, error) {
	if path := settingsFileFlag(cmd); path != "" {
		return path, nil
	}
	return files.SettingsPath()
}
