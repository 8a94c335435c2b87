package calibration

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/agbru/vecsolve/internal/cli"
	"github.com/agbru/vecsolve/internal/config"
	apperrors "github.com/agbru/vecsolve/internal/errors"
	"github.com/agbru/vecsolve/internal/lanes"
)

// FullSweepLimit is the largest width tried by a full calibration.
const FullSweepLimit = 32

// QuickWidths are the widths tried by auto-calibration.
var QuickWidths = []int{2, 4, 8, 16}

// CalibrationOptions configures the calibration process.
type CalibrationOptions struct {
	// ProfilePath is the path to save/load the calibration profile.
	// If empty, uses the default path.
	ProfilePath string
	// SaveProfile indicates whether to save the calibration results.
	SaveProfile bool
	// LoadProfile indicates whether to try loading an existing profile.
	LoadProfile bool
	// Widths overrides the widths to try.
	Widths []int
	// Repeats is the number of timed runs per trial; the fastest is kept.
	Repeats int
}

// RunCalibration times the float and int solvers at every legal width up to
// FullSweepLimit and saves the fastest widths to the profile.
//
// Parameters:
//   - ctx: The context for managing cancellation and deadlines.
//   - out: The io.Writer to which progress and results will be written.
//   - factory: Builds the solvers at each width.
//   - profilePath: Where the profile is saved; empty selects the default.
//
// Returns:
//   - int: The exit code (0 for success, non-zero for errors).
func RunCalibration(ctx context.Context, out io.Writer, factory WidthFactory, profilePath string) int {
	return RunCalibrationWithOptions(ctx, out, factory, CalibrationOptions{
		ProfilePath: profilePath,
		SaveProfile: true,
		Repeats:     3,
	})
}

// RunCalibrationWithOptions executes calibration with the specified options.
func RunCalibrationWithOptions(ctx context.Context, out io.Writer, factory WidthFactory, opts CalibrationOptions) int {
	fmt.Fprintf(out, "--- Calibration Mode: Finding the Optimal Batch Width ---\n")

	if opts.LoadProfile {
		profile, loaded := LoadOrCreateProfile(opts.ProfilePath)
		if loaded && !profile.IsStale(MaxProfileAge) {
			fmt.Fprintf(out, "%sLoaded existing calibration profile%s\n", cli.ColorGreen(), cli.ColorReset())
			fmt.Fprintf(out, "Profile: %s\n", profile.String())
			return apperrors.ExitSuccess
		}
	}

	widths := opts.Widths
	if len(widths) == 0 {
		widths = lanes.ValidWidths(FullSweepLimit)
	}
	fmt.Fprintf(out, "%sVector extension %s, native width %d, trying widths %v%s\n",
		cli.ColorCyan(), lanes.DetectExtension(), lanes.NativeWidth(), widths, cli.ColorReset())

	start := time.Now()
	activity := cli.StartActivity(out, "Calibrating...", false)
	trials, err := newCalibrationRunner(factory, CalibrationSystem, opts.Repeats).sweep(ctx, CalibratedSolvers, widths)
	elapsed := activity.Stop()
	if err != nil {
		fmt.Fprintf(out, "\n%sCalibration interrupted.%s\n", cli.ColorYellow(), cli.ColorReset())
		return apperrors.HandleSolveError(err, elapsed, out, cli.CLIColorProvider{})
	}

	profile, ok := buildProfile(trials, time.Since(start))
	printCalibrationResults(out, trials, profile)
	if !ok {
		fmt.Fprintf(out, "%sCalibration failed: no trial completed.%s\n", cli.ColorRed(), cli.ColorReset())
		return apperrors.ExitErrorGeneric
	}

	if opts.SaveProfile {
		if err := profile.SaveProfile(opts.ProfilePath); err != nil {
			fmt.Fprintf(out, "%sWarning: could not save profile: %v%s\n", cli.ColorYellow(), err, cli.ColorReset())
		} else {
			fmt.Fprintf(out, "%sProfile saved.%s\n", cli.ColorGreen(), cli.ColorReset())
		}
	}

	fmt.Fprintf(out, "\n%sRecommendation: %s-algo float -width %d%s or %s-algo int -width %d%s\n",
		cli.ColorGreen(),
		cli.ColorYellow(), profile.OptimalFloatWidth, cli.ColorGreen(),
		cli.ColorYellow(), profile.OptimalIntWidth, cli.ColorReset())
	return apperrors.ExitSuccess
}

// buildProfile derives a profile from the sweep. It reports false when a
// calibrated solver has no successful trial.
func buildProfile(trials []Trial, elapsed time.Duration) (*CalibrationProfile, bool) {
	profile := NewProfile()
	profile.CalibrationTime = elapsed.String()
	for _, t := range trials {
		if t.Err == nil {
			profile.Timings = append(profile.Timings, WidthTiming{Solver: t.Solver, Width: t.Width, DurationNs: t.Duration.Nanoseconds()})
		}
	}

	floatWidth, _, okFloat := BestWidth(trials, "float")
	intWidth, _, okInt := BestWidth(trials, "int")
	profile.OptimalFloatWidth, profile.OptimalIntWidth = floatWidth, intWidth
	return profile, okFloat && okInt
}

// LoadCachedCalibration applies a valid, fresh cached profile to cfg when
// no width was chosen explicitly.
//
// Parameters:
//   - cfg: The configuration to update.
//   - profilePath: The profile path; empty selects the default.
//
// Returns:
//   - config.AppConfig: The updated configuration.
//   - bool: True if a profile was applied.
func LoadCachedCalibration(cfg config.AppConfig, profilePath string) (config.AppConfig, bool) {
	if cfg.Width != 0 {
		return cfg, false
	}
	profile, err := LoadProfile(profilePath)
	if err != nil || !profile.IsValid() || profile.IsStale(MaxProfileAge) {
		return cfg, false
	}
	cfg.Width = profile.WidthFor(cfg.Algo)
	return cfg, true
}

// AutoCalibrate picks the batch width for cfg: a cached profile if one is
// usable, otherwise a quick sweep over QuickWidths whose result is saved.
// An explicit width is left untouched.
//
// Returns:
//   - config.AppConfig: The configuration with Width set.
//   - bool: True if a width was chosen.
func AutoCalibrate(ctx context.Context, cfg config.AppConfig, out io.Writer, factory WidthFactory) (config.AppConfig, bool) {
	if cfg.Width != 0 {
		return cfg, false
	}
	if updated, ok := LoadCachedCalibration(cfg, cfg.CalibrationProfile); ok {
		printCalibrationOutput(updated, "cached profile", out)
		return updated, true
	}

	start := time.Now()
	trials, err := newCalibrationRunner(factory, CalibrationSystem, 1).sweep(ctx, CalibratedSolvers, QuickWidths)
	if err != nil {
		return cfg, false
	}
	profile, ok := buildProfile(trials, time.Since(start))
	if !ok {
		return cfg, false
	}
	_ = profile.SaveProfile(cfg.CalibrationProfile)

	cfg.Width = profile.WidthFor(cfg.Algo)
	printCalibrationOutput(cfg, "quick sweep", out)
	return cfg, true
}
