// Package ui holds the terminal colour themes shared by the cli, config and
// calibration output.
package ui

import (
	"os"
	"sync"
)

// Theme maps each output role to an ANSI escape sequence.
type Theme struct {
	Name string

	Primary   string // headings and solver names
	Secondary string // labels and defaults
	Success   string // found solutions, passing checks
	Warning   string // no solution, skipped tiers
	Error     string // failures and mismatches
	Bold      string
	Reset     string
}

var (
	// DarkTheme suits dark terminal backgrounds.
	DarkTheme = Theme{
		Name:      "dark",
		Primary:   "\033[38;5;39m",
		Secondary: "\033[38;5;245m",
		Success:   "\033[38;5;82m",
		Warning:   "\033[38;5;220m",
		Error:     "\033[38;5;196m",
		Bold:      "\033[1m",
		Reset:     "\033[0m",
	}

	// LightTheme suits light terminal backgrounds.
	LightTheme = Theme{
		Name:      "light",
		Primary:   "\033[38;5;27m",
		Secondary: "\033[38;5;240m",
		Success:   "\033[38;5;28m",
		Warning:   "\033[38;5;130m",
		Error:     "\033[38;5;124m",
		Bold:      "\033[1m",
		Reset:     "\033[0m",
	}

	// NoColorTheme emits no escape sequences.
	NoColorTheme = Theme{Name: "none"}

	themeMu sync.RWMutex
	active  = DarkTheme
)

// Current returns the active theme.
func Current() Theme {
	themeMu.RLock()
	defer themeMu.RUnlock()
	return active
}

// SetTheme activates t.
func SetTheme(t Theme) {
	themeMu.Lock()
	defer themeMu.Unlock()
	active = t
}

// ThemeByName returns the named theme, or DarkTheme for unknown names.
func ThemeByName(name string) Theme {
	switch name {
	case LightTheme.Name:
		return LightTheme
	case NoColorTheme.Name:
		return NoColorTheme
	default:
		return DarkTheme
	}
}

// InitTheme selects NoColorTheme when noColor is set or NO_COLOR is present
// in the environment (https://no-color.org/), and DarkTheme otherwise.
func InitTheme(noColor bool) {
	if _, set := os.LookupEnv("NO_COLOR"); noColor || set {
		SetTheme(NoColorTheme)
		return
	}
	SetTheme(DarkTheme)
}

// Paint wraps s in the given escape sequence and a reset. It returns s
// unchanged when the sequence is empty.
func Paint(code, s string) string {
	if code == "" {
		return s
	}
	return code + s + Current().Reset
}

func ColorReset() string  { return Current().Reset }
func ColorRed() string    { return Current().Error }
func ColorGreen() string  { return Current().Success }
func ColorYellow() string { return Current().Warning }
func ColorBlue() string   { return Current().Primary }
func ColorCyan() string   { return Current().Secondary }
func ColorBold() string   { return Current().Bold }
