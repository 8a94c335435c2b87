// Package config defines the application configuration, parses it from
// command-line flags with environment overrides, and validates it.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"

	apperrors "github.com/agbru/vecsolve/internal/errors"
	"github.com/agbru/vecsolve/internal/lanes"
	"github.com/agbru/vecsolve/internal/solver"
)

// EnvPrefix is the prefix of every environment variable read by ParseConfig.
const EnvPrefix = "VECSOLVE_"

// Default configuration values. The default coefficients describe a system
// whose solution is A=80, B=40.
const (
	DefaultXa uint64 = 94
	DefaultXb uint64 = 22
	DefaultX  uint64 = 8400
	DefaultYa uint64 = 34
	DefaultYb uint64 = 67
	DefaultY  uint64 = 5400

	DefaultAlgo          = "all"
	DefaultTimeout       = time.Minute
	DefaultIterations    = 100
	DefaultWarmup        = 3
	DefaultPort          = "8080"
	DefaultLogLevel      = "warn"
	DefaultRateLimit     = 10.0
	DefaultRateBurst     = 20
	DefaultMaxCandidates = 1_000_000_000
)

// AppConfig aggregates every setting that controls one run of the program.
type AppConfig struct {
	// Xa, Xb, X, Ya, Yb, Y are the coefficients of the system to solve.
	Xa, Xb, X, Ya, Yb, Y uint64
	// Algo selects the solver: "all" or a registered solver name.
	Algo string
	// Width is the batch width of the float and int solvers; 0 selects the
	// native width of the machine.
	Width int
	// Expect, if set, is the verdict the run must produce: "A,B" or "none".
	Expect string
	// Timeout bounds the whole run.
	Timeout time.Duration

	// Bench runs the timing harness instead of a single solve.
	Bench bool
	// Iterations is the number of timed runs per solver in bench mode.
	Iterations int
	// Warmup is the number of untimed runs per solver in bench mode.
	Warmup int
	// Stress solves the large reference system with the int solver and
	// reports the elapsed time.
	Stress bool

	// Calibrate runs the batch-width calibration and saves a profile.
	Calibrate bool
	// AutoCalibrate loads a cached profile, or runs a quick calibration, to
	// pick Width when it is not set.
	AutoCalibrate bool
	// CalibrationProfile overrides the profile path
	// (default ~/.vecsolve_calibration.json).
	CalibrationProfile string

	// JSONOutput prints results as JSON.
	JSONOutput bool
	// Quiet prints only the verdict.
	Quiet bool
	// Verbose adds search statistics to the output.
	Verbose bool
	// NoColor disables colours; NO_COLOR is honoured as well.
	NoColor bool
	// LogLevel is the zerolog level for diagnostic events.
	LogLevel string

	// ServerMode starts the HTTP API.
	ServerMode bool
	// Port is the listen port in server mode.
	Port string
	// RateLimit is the sustained per-client request rate in server mode.
	RateLimit float64
	// RateBurst is the per-client burst size in server mode.
	RateBurst int
	// MaxCandidates rejects server requests whose MaxA exceeds it.
	MaxCandidates uint64
}

// Coefficients returns the configured system.
func (c AppConfig) Coefficients() solver.Coefficients {
	return solver.Coefficients{Xa: c.Xa, Xb: c.Xb, X: c.X, Ya: c.Ya, Yb: c.Yb, Y: c.Y}
}

// EffectiveWidth returns Width, or the native width when Width is 0.
func (c AppConfig) EffectiveWidth() int {
	if c.Width == 0 {
		return lanes.NativeWidth()
	}
	return c.Width
}

// Validate checks the semantic consistency of the configuration.
//
// Parameters:
//   - availableSolvers: The registered solver names.
//
// Returns:
//   - error: A ConfigError describing the first problem, or nil.
func (c AppConfig) Validate(availableSolvers []string) error {
	if c.Timeout <= 0 {
		return apperrors.NewConfigError("timeout value must be strictly positive")
	}
	if c.Width != 0 && !lanes.IsValidWidth(c.Width) {
		return apperrors.NewConfigError("width must be 0 or a power of two up to %d: %d", lanes.MaxWidth, c.Width)
	}
	if c.Algo != "all" && !contains(availableSolvers, c.Algo) {
		return apperrors.NewConfigError("unrecognized solver: '%s'. Valid solvers are: 'all' or [%s]", c.Algo, strings.Join(availableSolvers, ", "))
	}
	if err := c.Coefficients().Validate(); err != nil {
		return apperrors.NewConfigError("-%s: %v", strings.ToLower(fieldOf(err)), err)
	}
	if _, err := ParseExpectation(c.Expect); err != nil {
		return apperrors.NewConfigError("-expect: %v", err)
	}
	if c.Iterations < 1 {
		return apperrors.NewConfigError("iterations must be at least 1: %d", c.Iterations)
	}
	if c.Warmup < 0 {
		return apperrors.NewConfigError("warmup cannot be negative: %d", c.Warmup)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return apperrors.NewConfigError("unrecognized log level: '%s'", c.LogLevel)
	}
	if c.RateLimit <= 0 || c.RateBurst < 1 {
		return apperrors.NewConfigError("rate limit and burst must be positive")
	}
	if c.MaxCandidates == 0 {
		return apperrors.NewConfigError("max-candidates must be positive")
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func fieldOf(err error) string {
	var ce *solver.ContractError
	if errors.As(err, &ce) {
		return ce.Field
	}
	return ""
}

// ParseConfig parses args into an AppConfig, applies VECSOLVE_* overrides for
// flags that were not set, and validates the result.
//
// Parameters:
//   - programName: The name used in the usage message.
//   - args: The command-line arguments without the program name.
//   - errorWriter: Where parsing errors and usage are printed.
//   - availableSolvers: The registered solver names.
//
// Returns:
//   - AppConfig: The populated configuration.
//   - error: A flag parsing error (flag.ErrHelp for -h) or a validation error.
func ParseConfig(programName string, args []string, errorWriter io.Writer, availableSolvers []string) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errorWriter)
	algoHelp := fmt.Sprintf("Solver to use: 'all' (default) or one of [%s].", strings.Join(availableSolvers, ", "))

	config := AppConfig{}
	fs.Uint64Var(&config.Xa, "xa", DefaultXa, "Coefficient of A in the first equation.")
	fs.Uint64Var(&config.Xb, "xb", DefaultXb, "Coefficient of B in the first equation.")
	fs.Uint64Var(&config.X, "x", DefaultX, "Right-hand side of the first equation.")
	fs.Uint64Var(&config.Ya, "ya", DefaultYa, "Coefficient of A in the second equation.")
	fs.Uint64Var(&config.Yb, "yb", DefaultYb, "Coefficient of B in the second equation.")
	fs.Uint64Var(&config.Y, "y", DefaultY, "Right-hand side of the second equation.")
	fs.StringVar(&config.Algo, "algo", DefaultAlgo, algoHelp)
	fs.IntVar(&config.Width, "width", 0, "Batch width for the float and int solvers (0 = native).")
	fs.StringVar(&config.Expect, "expect", "", "Expected verdict, 'A,B' or 'none'; a different result fails the run.")
	fs.DurationVar(&config.Timeout, "timeout", DefaultTimeout, "Maximum execution time.")

	fs.BoolVar(&config.Bench, "bench", false, "Run the timing harness.")
	fs.IntVar(&config.Iterations, "iterations", DefaultIterations, "Timed runs per solver in bench mode.")
	fs.IntVar(&config.Warmup, "warmup", DefaultWarmup, "Untimed runs per solver in bench mode.")
	fs.BoolVar(&config.Stress, "stress", false, "Solve the 1e13 reference system with the int solver and report the time.")

	fs.BoolVar(&config.Calibrate, "calibrate", false, "Find the fastest batch width for this machine and save it.")
	fs.BoolVar(&config.AutoCalibrate, "auto-calibrate", false, "Pick the batch width from a cached or quick calibration.")
	fs.StringVar(&config.CalibrationProfile, "calibration-profile", "", "Path to the calibration profile (default: ~/.vecsolve_calibration.json).")

	fs.BoolVar(&config.JSONOutput, "json", false, "Output results in JSON format.")
	fs.BoolVar(&config.Quiet, "quiet", false, "Print only the verdict.")
	fs.BoolVar(&config.Quiet, "q", false, "Quiet mode (shorthand).")
	fs.BoolVar(&config.Verbose, "v", false, "Show search statistics.")
	fs.BoolVar(&config.NoColor, "no-color", false, "Disable colored output (also respects NO_COLOR env var).")
	fs.StringVar(&config.LogLevel, "log-level", DefaultLogLevel, "Diagnostic log level (debug, info, warn, error).")

	fs.BoolVar(&config.ServerMode, "server", false, "Start in HTTP server mode.")
	fs.StringVar(&config.Port, "port", DefaultPort, "Port to listen on in server mode.")
	fs.Float64Var(&config.RateLimit, "rate-limit", DefaultRateLimit, "Requests per second allowed per client in server mode.")
	fs.IntVar(&config.RateBurst, "rate-burst", DefaultRateBurst, "Request burst allowed per client in server mode.")
	fs.Uint64Var(&config.MaxCandidates, "max-candidates", DefaultMaxCandidates, "Largest candidate range a server request may scan.")

	setCustomUsage(fs)

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}

	applyEnvOverrides(&config, fs)

	config.Algo = strings.ToLower(config.Algo)
	config.LogLevel = strings.ToLower(config.LogLevel)
	if err := config.Validate(availableSolvers); err != nil {
		fmt.Fprintln(errorWriter, "Configuration error:", err)
		fs.Usage()
		return AppConfig{}, errors.New("invalid configuration")
	}
	return config, nil
}
