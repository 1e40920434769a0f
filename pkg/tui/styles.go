package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/pluqqy/calqqy/pkg/models"
)

// Color constants
const (
	ColorActive   = "170" // Purple/magenta for active elements
	ColorInactive = "240" // Gray for inactive elements
	ColorNormal   = "245" // Light gray for normal text
	ColorDim      = "241" // Dimmer gray
	ColorWarning  = "214" // Orange/yellow for warnings
	ColorDanger   = "196" // Red for dangerous actions
	ColorSuccess  = "28"  // Green for success
	ColorWhite    = "255" // White
	ColorBlack    = "0"
	ColorDark     = "235" // Dark for contrast
	ColorLight    = "254"
	ColorBorder   = "243" // Border gray
	ColorPrimary  = "33"  // Blue for primary actions
)

// Base sizes at 100% scale
const (
	baseButtonWidth  = 7
	baseButtonHeight = 1
	baseDisplayPad   = 1
)

// palette holds the colors that differ between themes
type palette struct {
	Background string
	Foreground string
	Muted      string
	Key        string
	KeyText    string
	Operator   string
	Accent     string
}

var palettes = map[models.Theme]palette{
	models.ThemeLight: {
		Background: ColorLight,
		Foreground: ColorBlack,
		Muted:      ColorDim,
		Key:        "252",
		KeyText:    ColorBlack,
		Operator:   ColorPrimary,
		Accent:     ColorActive,
	},
	models.ThemeDark: {
		Background: ColorDark,
		Foreground: ColorWhite,
		Muted:      ColorNormal,
		Key:        "238",
		KeyText:    ColorWhite,
		Operator:   ColorWarning,
		Accent:     ColorActive,
	},
}

// Styles is the set of styles for one theme and scale
type Styles struct {
	Theme models.Theme
	Scale models.Scale

	ButtonWidth  int
	ButtonHeight int

	Frame     lipgloss.Style
	Previous  lipgloss.Style
	Display   lipgloss.Style
	Error     lipgloss.Style
	Key       lipgloss.Style
	Operator  lipgloss.Style
	Action    lipgloss.Style
	Compute   lipgloss.Style
	Focused   lipgloss.Style
	Modal     lipgloss.Style
	Title     lipgloss.Style
	Label     lipgloss.Style
	Value     lipgloss.Style
	Selected  lipgloss.Style
	Muted     lipgloss.Style
	StatusBar lipgloss.Style
}

// NewStyles builds the styles for a theme and display scale
func NewStyles(theme models.Theme, scale models.Scale) Styles {
	p, ok := palettes[theme]
	if !ok {
		p = palettes[models.ThemeLight]
	}
	scale = scale.Clamp()

	buttonWidth := scale.Apply(baseButtonWidth)
	buttonHeight := scale.Apply(baseButtonHeight)
	pad := scale.Apply(baseDisplayPad)

	key := lipgloss.NewStyle().
		Width(buttonWidth).
		Height(buttonHeight).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(lipgloss.Color(p.KeyText)).
		Background(lipgloss.Color(p.Key))

	return Styles{
		Theme:        theme,
		Scale:        scale,
		ButtonWidth:  buttonWidth,
		ButtonHeight: buttonHeight,

		Frame: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(ColorBorder)).
			Background(lipgloss.Color(p.Background)).
			Padding(0, 1),

		Previous: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.Muted)).
			Background(lipgloss.Color(p.Background)).
			Align(lipgloss.Right),

		Display: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.Foreground)).
			Background(lipgloss.Color(p.Background)).
			Bold(true).
			Align(lipgloss.Right).
			PaddingBottom(pad),

		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorDanger)).
			Background(lipgloss.Color(p.Background)).
			Bold(true).
			Align(lipgloss.Right).
			PaddingBottom(pad),

		Key: key,

		Operator: key.
			Foreground(lipgloss.Color(p.Operator)).
			Bold(true),

		Action: key.
			Foreground(lipgloss.Color(ColorDanger)),

		Compute: key.
			Foreground(lipgloss.Color(ColorWhite)).
			Background(lipgloss.Color(ColorPrimary)).
			Bold(true),

		Focused: key.
			Foreground(lipgloss.Color(ColorWhite)).
			Background(lipgloss.Color(p.Accent)).
			Bold(true),

		Modal: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(ColorActive)).
			Padding(1, 2),

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(ColorWarning)),

		Label: lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorNormal)),

		Value: lipgloss.NewStyle().
			Bold(true),

		Selected: lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorActive)).
			Bold(true),

		Muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorDim)),

		StatusBar: lipgloss.NewStyle().
			Background(lipgloss.Color("62")).
			Foreground(lipgloss.Color("230")).
			Padding(0, 1),
	}
}

// KeypadWidth is the width of the keypad grid in cells
func (s Styles) KeypadWidth(columns int) int {
	return columns * s.ButtonWidth
}
