package config

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Themes.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
	ThemeAuto  = ""
)

// ValidateTheme accepts light, dark or empty (auto).
func ValidateTheme(theme string) error {
	switch theme {
	case ThemeLight, ThemeDark, ThemeAuto:
		return nil
	}
	return fmt.Errorf("invalid theme %q (valid: light, dark)", theme)
}

// ResolveTheme returns the stored preference, or the terminal background
// when none is stored.
func ResolveTheme(stored string) string {
	return resolveTheme(stored, lipgloss.HasDarkBackground)
}

func resolveTheme(stored string, hasDark func() bool) string {
	switch stored {
	case ThemeLight, ThemeDark:
		return stored
	}
	if hasDark() {
		return ThemeDark
	}
	return ThemeLight
}
