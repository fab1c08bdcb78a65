package color

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme names accepted by ResolveTheme.
const (
	ThemeAuto  = "auto"
	ThemeDark  = "dark"
	ThemeLight = "light"
)

// Initialize sets the background lipgloss resolves adaptive colors against.
func Initialize(isDarkMode bool) {
	lipgloss.SetHasDarkBackground(isDarkMode)
}

// ResolveTheme reports whether theme means a dark background. "auto" (or an
// empty string) asks the terminal.
func ResolveTheme(theme string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(theme)) {
	case "", ThemeAuto:
		return lipgloss.HasDarkBackground(), nil
	case ThemeDark:
		return true, nil
	case ThemeLight:
		return false, nil
	default:
		return false, fmt.Errorf("invalid theme %q (allowed: auto, dark, light)", theme)
	}
}

// Toggle flips the background and returns the new setting.
func Toggle() bool {
	dark := !lipgloss.HasDarkBackground()
	Initialize(dark)
	return dark
}

// Describe is the short label shown in the status bar.
func Describe() string {
	mode := ThemeLight
	if lipgloss.HasDarkBackground() {
		mode = ThemeDark
	}
	return fmt.Sprintf("%s (%s)", mode, profileName())
}

func profileName() string {
	return lipgloss.ColorProfile().Name()
}
