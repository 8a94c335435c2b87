// Package cli renders solver results, execution banners and activity
// spinners for the command-line front end.
package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/briandowns/spinner"

	apperrors "github.com/agbru/vecsolve/internal/errors"
	"github.com/agbru/vecsolve/internal/ui"
)

// SpinnerRefreshRate is the spinner animation interval.
const SpinnerRefreshRate = 120 * time.Millisecond

// FormatExecutionDuration formats d as µs below a millisecond, ms below a
// second, and d.String() otherwise.
func FormatExecutionDuration(d time.Duration) string {
	switch {
	case d < time.Millisecond:
		return fmt.Sprintf("%dµs", d.Microseconds())
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	default:
		return d.String()
	}
}

// Theme shortcuts.
func ColorReset() string  { return ui.ColorReset() }
func ColorRed() string    { return ui.ColorRed() }
func ColorGreen() string  { return ui.ColorGreen() }
func ColorYellow() string { return ui.ColorYellow() }
func ColorBlue() string   { return ui.ColorBlue() }
func ColorCyan() string   { return ui.ColorCyan() }
func ColorBold() string   { return ui.ColorBold() }

// CLIColorProvider implements apperrors.ColorProvider with the active theme.
type CLIColorProvider struct{}

var _ apperrors.ColorProvider = CLIColorProvider{}

func (CLIColorProvider) Yellow() string { return ColorYellow() }
func (CLIColorProvider) Reset() string  { return ColorReset() }

// Spinner abstracts the terminal spinner so tests can observe it.
type Spinner interface {
	Start()
	Stop()
	UpdateSuffix(suffix string)
}

type realSpinner struct {
	s *spinner.Spinner
}

func (rs *realSpinner) Start()                     { rs.s.Start() }
func (rs *realSpinner) Stop()                      { rs.s.Stop() }
func (rs *realSpinner) UpdateSuffix(suffix string) { rs.s.Suffix = suffix }

var newSpinner = func(options ...spinner.Option) Spinner {
	return &realSpinner{spinner.New(spinner.CharSets[11], SpinnerRefreshRate, options...)}
}

// Activity shows a spinner with a message while a long operation runs.
type Activity struct {
	sp    Spinner
	start time.Time
}

// StartActivity starts a spinner on out. In quiet mode it returns an
// Activity that only measures time.
func StartActivity(out io.Writer, message string, quiet bool) *Activity {
	a := &Activity{start: time.Now()}
	if quiet {
		return a
	}
	a.sp = newSpinner(spinner.WithWriter(out), spinner.WithHiddenCursor(true))
	a.sp.UpdateSuffix(" " + message)
	a.sp.Start()
	return a
}

// Update replaces the spinner message.
func (a *Activity) Update(message string) {
	if a.sp != nil {
		a.sp.UpdateSuffix(" " + message)
	}
}

// Stop halts the spinner and returns the time since StartActivity.
func (a *Activity) Stop() time.Duration {
	if a.sp != nil {
		a.sp.Stop()
	}
	return time.Since(a.start)
}
