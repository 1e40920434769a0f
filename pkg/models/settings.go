package models

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var (
	ErrInvalidTheme = errors.New("invalid theme")
	ErrInvalidScale = errors.New("invalid scale")
)

const (
	MinScale     = 0.8
	MaxScale     = 1.4
	DefaultScale = 1.0
	// ScaleStep is how much one press of the scale buttons changes the scale
	ScaleStep = 0.1
)

// Settings represents the application configuration
type Settings struct {
	UI  UISettings  `yaml:"ui" json:"ui"`
	Log LogSettings `yaml:"log" json:"log"`
}

// UISettings controls UI preferences
type UISettings struct {
	Theme        Theme `yaml:"theme" json:"theme"`
	Scale        Scale `yaml:"scale" json:"scale"`
	ShowHelpHint bool  `yaml:"show_help_hint" json:"show_help_hint"`
}

// LogSettings controls the debug log
type LogSettings struct {
	Debug bool   `yaml:"debug" json:"debug"`
	File  string `yaml:"file,omitempty" json:"file,omitempty"`
}

// DefaultSettings returns the default configuration
func DefaultSettings() *Settings {
	return &Settings{
		UI: UISettings{
			Theme:        ThemeLight,
			Scale:        DefaultScale,
			ShowHelpHint: true,
		},
		Log: LogSettings{
			Debug: false,
		},
	}
}

// Clone returns a copy that can be edited without touching s
func (s *Settings) Clone() *Settings {
	c := *s
	return &c
}

// Normalize fills in missing values and clamps the scale
func (s *Settings) Normalize() error {
	if s.UI.Theme == "" {
		s.UI.Theme = ThemeLight
	}
	if err := s.UI.Theme.Validate(); err != nil {
		return err
	}
	if s.UI.Scale == 0 {
		s.UI.Scale = DefaultScale
	}
	s.UI.Scale = s.UI.Scale.Clamp()
	return nil
}

// Theme selects the color palette
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ParseTheme parses a theme name, case insensitive
func ParseTheme(s string) (Theme, error) {
	t := Theme(strings.ToLower(strings.TrimSpace(s)))
	if err := t.Validate(); err != nil {
		return "", err
	}
	return t, nil
}

// Validate checks that the theme is known
func (t Theme) Validate() error {
	switch t {
	case ThemeLight, ThemeDark:
		return nil
	}
	return fmt.Errorf("%w: %q (expected light or dark)", ErrInvalidTheme, string(t))
}

// Toggle switches between light and dark
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// Scale is the display scale factor, kept within [MinScale, MaxScale]
type Scale float64

// ParseScale accepts a factor ("1.2") or a percentage ("120%")
func ParseScale(s string) (Scale, error) {
	s = strings.TrimSpace(s)
	percent := strings.HasSuffix(s, "%")
	s = strings.TrimSuffix(s, "%")

	f, err := strconv.ParseFloat(strings.Replace(s, ",", ".", 1), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidScale, s)
	}
	if percent {
		f /= 100
	}
	return Scale(f).Clamp(), nil
}

// Clamp limits the scale to [MinScale, MaxScale]
func (s Scale) Clamp() Scale {
	if s < MinScale {
		return MinScale
	}
	if s > MaxScale {
		return MaxScale
	}
	return s
}

// Adjust adds delta and clamps the result. The value is rounded to two
// decimals so repeated steps do not accumulate float drift.
func (s Scale) Adjust(delta float64) Scale {
	v := math.Round((float64(s)+delta)*100) / 100
	return Scale(v).Clamp()
}

// Percent renders the scale as a rounded percentage, e.g. "120%"
func (s Scale) Percent() string {
	return strconv.Itoa(int(math.Round(float64(s)*100))) + "%"
}

// Apply multiplies a base size by the scale, never returning less than 1
func (s Scale) Apply(base int) int {
	n := int(math.Round(float64(base) * float64(s)))
	if n < 1 {
		return 1
	}
	return n
}
