package ui

import "testing"

func TestThemeByName(t *testing.T) {
	tests := map[string]string{
		"dark":    "dark",
		"light":   "light",
		"none":    "none",
		"unknown": "dark",
	}
	for in, want := range tests {
		if got := ThemeByName(in).Name; got != want {
			t.Errorf("ThemeByName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestInitTheme(t *testing.T) {
	prev := Current()
	t.Cleanup(func() { SetTheme(prev) })

	t.Run("FlagDisablesColor", func(t *testing.T) {
		InitTheme(true)
		if Current().Name != "none" {
			t.Errorf("theme = %q, want none", Current().Name)
		}
		if ColorRed() != "" || ColorReset() != "" {
			t.Error("no-color theme must not emit escape codes")
		}
	})

	t.Run("EnvDisablesColor", func(t *testing.T) {
		t.Setenv("NO_COLOR", "1")
		InitTheme(false)
		if Current().Name != "none" {
			t.Errorf("theme = %q, want none", Current().Name)
		}
	})
}

func TestPaint(t *testing.T) {
	prev := Current()
	t.Cleanup(func() { SetTheme(prev) })

	SetTheme(DarkTheme)
	if got := Paint(ColorGreen(), "ok"); got != DarkTheme.Success+"ok"+DarkTheme.Reset {
		t.Errorf("Paint() = %q", got)
	}
	SetTheme(NoColorTheme)
	if got := Paint(ColorGreen(), "ok"); got != "ok" {
		t.Errorf("Paint() with no color = %q, want ok", got)
	}
}
