package ui

import (
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines a color scheme for UI output. The string fields hold ANSI
// escape codes for inline use; the lipgloss colors drive the summary banner.
type Theme struct {
	// Name is the identifier of the theme.
	Name string
	// Primary is the main accent color for headings.
	Primary string
	// Secondary is used for labels and less prominent elements.
	Secondary string
	// Success marks passing cases.
	Success string
	// Warning marks timeouts.
	Warning string
	// Error marks mismatches and crashes.
	Error     string
	Info      string
	Bold      string
	Underline string
	Reset     string

	// Pass and Fail color the banner border and title.
	Pass lipgloss.TerminalColor
	Fail lipgloss.TerminalColor
	// Dim colors secondary banner text.
	Dim lipgloss.TerminalColor
}

var (
	// DarkTheme is optimized for dark terminal backgrounds.
	DarkTheme = Theme{
		Name:      "dark",
		Primary:   "\033[38;5;39m",
		Secondary: "\033[38;5;245m",
		Success:   "\033[38;5;82m",
		Warning:   "\033[38;5;220m",
		Error:     "\033[38;5;196m",
		Info:      "\033[38;5;141m",
		Bold:      "\033[1m",
		Underline: "\033[4m",
		Reset:     "\033[0m",
		Pass:      lipgloss.Color("#9ece6a"),
		Fail:      lipgloss.Color("#FF4444"),
		Dim:       lipgloss.Color("#888888"),
	}

	// LightTheme is optimized for light terminal backgrounds.
	LightTheme = Theme{
		Name:      "light",
		Primary:   "\033[38;5;27m",
		Secondary: "\033[38;5;240m",
		Success:   "\033[38;5;28m",
		Warning:   "\033[38;5;130m",
		Error:     "\033[38;5;124m",
		Info:      "\033[38;5;54m",
		Bold:      "\033[1m",
		Underline: "\033[4m",
		Reset:     "\033[0m",
		Pass:      lipgloss.Color("#2E7D32"),
		Fail:      lipgloss.Color("#B71C1C"),
		Dim:       lipgloss.Color("#555555"),
	}

	// NoColorTheme disables all color output.
	NoColorTheme = Theme{
		Name: "none",
		Pass: lipgloss.NoColor{},
		Fail: lipgloss.NoColor{},
		Dim:  lipgloss.NoColor{},
	}

	currentTheme = DarkTheme
	themeMutex   sync.RWMutex
)

// GetCurrentTheme returns the currently active theme.
func GetCurrentTheme() Theme {
	themeMutex.RLock()
	defer themeMutex.RUnlock()
	return currentTheme
}

// SetCurrentTheme replaces the active theme. Tests use it to restore state.
func SetCurrentTheme(t Theme) {
	themeMutex.Lock()
	defer themeMutex.Unlock()
	currentTheme = t
}

// SetTheme activates a theme by name ("dark", "light", "none").
// Unknown names select the dark theme.
func SetTheme(name string) {
	themeMutex.Lock()
	defer themeMutex.Unlock()

	switch name {
	case "light":
		currentTheme = LightTheme
	case "none":
		currentTheme = NoColorTheme
	default:
		currentTheme = DarkTheme
	}
}

// InitTheme selects the theme at startup. Colors are off when noColor is
// true or NO_COLOR is present in the environment (https://no-color.org/).
func InitTheme(noColor bool) {
	themeMutex.Lock()
	defer themeMutex.Unlock()

	if noColor {
		currentTheme = NoColorTheme
		return
	}
	if _, exists := os.LookupEnv("NO_COLOR"); exists {
		currentTheme = NoColorTheme
		return
	}
	currentTheme = DarkTheme
}
