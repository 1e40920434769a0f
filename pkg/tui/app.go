package tui

import (
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pluqqy/calqqy/pkg/files"
	"github.com/pluqqy/calqqy/pkg/models"
)

// statusDuration is how long a StatusMsg stays on screen
const statusDuration = 3 * time.Second

type sessionState int

const (
	calculatorView sessionState = iota
	settingsView
	helpView
)

// Options configures the App
type Options struct {
	Settings     *models.Settings
	SettingsPath string
	// Watcher is optional. When set, edits to the settings file made
	// outside the app are applied while it runs.
	Watcher *files.SettingsWatcher
	Logger  *slog.Logger
}

type App struct {
	state        sessionState
	settings     *models.Settings
	settingsPath string
	styles       Styles
	calculator   *CalculatorModel
	settingsEdit *SettingsModel
	help         *HelpModel
	watcher      *files.SettingsWatcher
	logger       *slog.Logger
	width        int
	height       int
	statusMsg    string
	statusSeq    int
}

func NewApp(opts Options) *App {
	settings := opts.Settings
	if settings == nil {
		settings = models.DefaultSettings()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	styles := NewStyles(settings.UI.Theme, settings.UI.Scale)
	calc := NewCalculatorModel(styles, logger)
	calc.SetShowHint(settings.UI.ShowHelpHint)

	return &App{
		state:        calculatorView,
		settings:     settings,
		settingsPath: opts.SettingsPath,
		styles:       styles,
		calculator:   calc,
		watcher:      opts.Watcher,
		logger:       logger,
	}
}

func (a *App) Init() tea.Cmd {
	return a.waitForSettings()
}

// Settings returns the settings currently applied
func (a *App) Settings() *models.Settings {
	return a.settings
}

// waitForSettings blocks on the next settings file change
func (a *App) waitForSettings() tea.Cmd {
	if a.watcher == nil {
		return nil
	}
	events := a.watcher.Events()
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return nil
		}
		return settingsChangedMsg(ev)
	}
}

// applySettings restyles every view for settings
func (a *App) applySettings(settings *models.Settings) {
	a.styles = NewStyles(settings.UI.Theme, settings.UI.Scale)
	a.calculator.SetStyles(a.styles)
	a.calculator.SetShowHint(settings.UI.ShowHelpHint)
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.help != nil {
			a.help.SetSize(msg.Width, msg.Height)
		}
		return a, nil

	case tea.KeyMsg:
		// Global keybindings
		if msg.Type == tea.KeyCtrlC {
			return a, tea.Quit
		}
		return a, a.handleKey(msg)

	case StatusMsg:
		a.statusMsg = string(msg)
		a.statusSeq++
		seq := a.statusSeq
		return a, tea.Tick(statusDuration, func(time.Time) tea.Msg {
			return clearStatusMsg{seq: seq}
		})

	case clearStatusMsg:
		// a newer message restarted the timer
		if msg.seq == a.statusSeq {
			a.statusMsg = ""
		}
		return a, nil

	case settingsChangedMsg:
		if msg.Err != nil {
			a.logger.Warn("failed to reload settings", "error", msg.Err)
			return a, tea.Batch(a.waitForSettings(), statusCmd("✗ Settings file is invalid: "+msg.Err.Error()))
		}
		a.settings = msg.Settings
		if a.state != settingsView {
			a.applySettings(a.settings)
		}
		a.logger.Debug("settings reloaded", "theme", a.settings.UI.Theme, "scale", float64(a.settings.UI.Scale))
		return a, a.waitForSettings()

	case settingsSavedMsg:
		a.settings = msg.settings
		a.applySettings(a.settings)
		a.settingsEdit = nil
		a.state = calculatorView
		return a, statusCmd("✓ Settings saved")

	case settingsClosedMsg:
		if msg.settings != nil {
			a.settings = msg.settings
		}
		a.applySettings(a.settings)
		a.settingsEdit = nil
		a.state = calculatorView
		return a, nil
	}

	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch a.state {
	case settingsView:
		cmd := a.settingsEdit.Update(msg)
		// live preview of the draft
		a.applySettings(a.settingsEdit.Draft())
		return cmd

	case helpView:
		switch msg.String() {
		case "esc", "q", "?":
			a.help = nil
			a.state = calculatorView
			return nil
		}
		return a.help.Update(msg)
	}

	switch msg.String() {
	case "q":
		return tea.Quit
	case "s":
		a.settingsEdit = NewSettingsModel(a.settings, a.settingsPath, a.logger)
		a.state = settingsView
		return nil
	case "?":
		a.help = NewHelpModel(a.width, a.height)
		a.state = helpView
		return nil
	}
	return a.calculator.Update(msg)
}

func (a *App) View() string {
	if a.width == 0 || a.height == 0 {
		return "Loading..."
	}

	var content string
	switch a.state {
	case settingsView:
		content = lipgloss.Place(a.width, a.height-1, lipgloss.Center, lipgloss.Center,
			a.settingsEdit.View(a.styles))
	case helpView:
		content = lipgloss.Place(a.width, a.height-1, lipgloss.Center, lipgloss.Center,
			a.help.View(a.styles))
	default:
		calc := a.calculator.View()
		header := renderHeader(lipgloss.Width(calc), string(a.styles.Theme)+" · "+a.styles.Scale.Percent())
		content = lipgloss.Place(a.width, a.height-1, lipgloss.Center, lipgloss.Center,
			lipgloss.JoinVertical(lipgloss.Left, header, calc))
	}

	// Add status bar if there's a message
	if a.statusMsg != "" {
		statusBar := a.styles.StatusBar.Render(a.statusMsg)
		content = lipgloss.JoinVertical(lipgloss.Left, content, statusBar)
	}

	return content
}

// StatusMsg is shown at the bottom for a few seconds
type StatusMsg string

type clearStatusMsg struct {
	seq int
}

// settingsChangedMsg carries a reload from the settings watcher
type settingsChangedMsg files.SettingsEvent

func statusCmd(text string) tea.Cmd {
	return func() tea.Msg {
		return StatusMsg(text)
	}
}
