package main

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/pluqqy/calqqy/cmd/commands"
	"github.com/pluqqy/calqqy/internal/cli"
	"github.com/pluqqy/calqqy/internal/config"
	"github.com/pluqqy/calqqy/pkg/files"
	"github.com/pluqqy/calqqy/pkg/tui"
)

// Version is set during build with -ldflags
var version = "dev"

var (
	cfgFile   string
	quiet     bool
	noColor   bool
	logCloser io.Closer
	appConfig *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "calqqy",
	Short: "Terminal keypad calculator",
	Long: `Calqqy is a keypad calculator for the terminal. It evaluates operations
left to right as they are entered, uses a comma as the decimal separator
and shows Erro when a result cannot be represented.

Run without arguments to open the calculator, or use 'calqqy press' to
drive it from scripts.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.LoadDotEnv(".env"); err != nil {
			return err
		}

		cfg, err := config.Load(cfgFile, cmd.Flags())
		if err != nil {
			return err
		}
		appConfig = cfg

		logger, closer, err := config.NewLogger(cfg.Settings)
		if err != nil {
			return err
		}
		logCloser = closer
		logger.Debug("config loaded", "path", cfg.SettingsPath, "found", cfg.FileFound, "command", cmd.Name())

		cmd.SetContext(config.WithLogger(cmd.Context(), logger))
		cli.SetGlobalFlags(quiet, noColor)
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if logCloser != nil {
			return logCloser.Close()
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := config.GetLogger(cmd.Context())

		watcher, err := files.WatchSettings(appConfig.SettingsPath)
		if err != nil {
			// the calculator works without live reload
			logger.Warn("settings watcher unavailable", "error", err)
		} else {
			defer watcher.Close()
		}

		app := tui.NewApp(tui.Options{
			Settings:     appConfig.Settings,
			SettingsPath: appConfig.SettingsPath,
			Watcher:      watcher,
			Logger:       logger,
		})
		p := tea.NewProgram(app, tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("failed to start the terminal user interface: %w", err)
		}
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of Calqqy",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "Calqqy version %s\n", version)
	},
}

func init() {
	tui.Version = version

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Settings file (default is $XDG_CONFIG_HOME/calqqy/settings.yaml)")
	rootCmd.PersistentFlags().Bool("debug", false, "Write a debug log next to the settings file")
	rootCmd.PersistentFlags().String("theme", "", "Color theme (light, dark)")
	rootCmd.PersistentFlags().Float64("scale", 1.0, "Display scale between 0.8 and 1.4")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress informational output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(commands.NewPressCommand())
	rootCmd.AddCommand(commands.NewSettingsCommand())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
