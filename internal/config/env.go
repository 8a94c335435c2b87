package config

import (
	"flag"
	"os"
	"strconv"
	"strings"
	"time"
)

// lookupEnv returns the VECSOLVE_-prefixed variable and whether it is non-empty.
func lookupEnv(key string) (string, bool) {
	val := os.Getenv(EnvPrefix + key)
	return val, val != ""
}

func getEnvString(key, defaultVal string) string {
	if val, ok := lookupEnv(key); ok {
		return val
	}
	return defaultVal
}

// getEnvUint64 ignores values that do not parse.
func getEnvUint64(key string, defaultVal uint64) uint64 {
	if val, ok := lookupEnv(key); ok {
		if parsed, err := strconv.ParseUint(val, 10, 64); err == nil {
			return parsed
		}
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val, ok := lookupEnv(key); ok {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return defaultVal
}

func getEnvFloat64(key string, defaultVal float64) float64 {
	if val, ok := lookupEnv(key); ok {
		if parsed, err := strconv.ParseFloat(val, 64); err == nil {
			return parsed
		}
	}
	return defaultVal
}

// getEnvBool accepts true/1/yes and false/0/no, case-insensitively.
func getEnvBool(key string, defaultVal bool) bool {
	if val, ok := lookupEnv(key); ok {
		switch strings.ToLower(val) {
		case "true", "1", "yes":
			return true
		case "false", "0", "no":
			return false
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if val, ok := lookupEnv(key); ok {
		if parsed, err := time.ParseDuration(val); err == nil {
			return parsed
		}
	}
	return defaultVal
}

// isFlagSet reports whether any of names was given on the command line.
func isFlagSet(fs *flag.FlagSet, names ...string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		for _, name := range names {
			if f.Name == name {
				found = true
			}
		}
	})
	return found
}

// applyEnvOverrides fills every flag that was not set on the command line
// from its environment variable, giving the priority flags > environment >
// defaults. Variable names are the flag names upper-cased with dashes turned
// into underscores and the VECSOLVE_ prefix added: -rate-limit reads
// VECSOLVE_RATE_LIMIT, -q and -quiet both read VECSOLVE_QUIET.
func applyEnvOverrides(config *AppConfig, fs *flag.FlagSet) {
	applyCoefficientOverrides(config, fs)
	applyNumericOverrides(config, fs)
	applyStringOverrides(config, fs)
	applyBooleanOverrides(config, fs)
}

func applyCoefficientOverrides(config *AppConfig, fs *flag.FlagSet) {
	coefficients := []struct {
		flag string
		dst  *uint64
	}{
		{"xa", &config.Xa}, {"xb", &config.Xb}, {"x", &config.X},
		{"ya", &config.Ya}, {"yb", &config.Yb}, {"y", &config.Y},
	}
	for _, c := range coefficients {
		if !isFlagSet(fs, c.flag) {
			*c.dst = getEnvUint64(strings.ToUpper(c.flag), *c.dst)
		}
	}
}

func applyNumericOverrides(config *AppConfig, fs *flag.FlagSet) {
	if !isFlagSet(fs, "width") {
		config.Width = getEnvInt("WIDTH", config.Width)
	}
	if !isFlagSet(fs, "iterations") {
		config.Iterations = getEnvInt("ITERATIONS", config.Iterations)
	}
	if !isFlagSet(fs, "warmup") {
		config.Warmup = getEnvInt("WARMUP", config.Warmup)
	}
	if !isFlagSet(fs, "timeout") {
		config.Timeout = getEnvDuration("TIMEOUT", config.Timeout)
	}
	if !isFlagSet(fs, "rate-limit") {
		config.RateLimit = getEnvFloat64("RATE_LIMIT", config.RateLimit)
	}
	if !isFlagSet(fs, "rate-burst") {
		config.RateBurst = getEnvInt("RATE_BURST", config.RateBurst)
	}
	if !isFlagSet(fs, "max-candidates") {
		config.MaxCandidates = getEnvUint64("MAX_CANDIDATES", config.MaxCandidates)
	}
}

func applyStringOverrides(config *AppConfig, fs *flag.FlagSet) {
	if !isFlagSet(fs, "algo") {
		config.Algo = getEnvString("ALGO", config.Algo)
	}
	if !isFlagSet(fs, "expect") {
		config.Expect = getEnvString("EXPECT", config.Expect)
	}
	if !isFlagSet(fs, "port") {
		config.Port = getEnvString("PORT", config.Port)
	}
	if !isFlagSet(fs, "log-level") {
		config.LogLevel = getEnvString("LOG_LEVEL", config.LogLevel)
	}
	if !isFlagSet(fs, "calibration-profile") {
		config.CalibrationProfile = getEnvString("CALIBRATION_PROFILE", config.CalibrationProfile)
	}
}

func applyBooleanOverrides(config *AppConfig, fs *flag.FlagSet) {
	bools := []struct {
		env   string
		flags []string
		dst   *bool
	}{
		{"BENCH", []string{"bench"}, &config.Bench},
		{"STRESS", []string{"stress"}, &config.Stress},
		{"CALIBRATE", []string{"calibrate"}, &config.Calibrate},
		{"AUTO_CALIBRATE", []string{"auto-calibrate"}, &config.AutoCalibrate},
		{"JSON", []string{"json"}, &config.JSONOutput},
		{"QUIET", []string{"quiet", "q"}, &config.Quiet},
		{"VERBOSE", []string{"v"}, &config.Verbose},
		{"NO_COLOR", []string{"no-color"}, &config.NoColor},
		{"SERVER", []string{"server"}, &config.ServerMode},
	}
	for _, b := range bools {
		if !isFlagSet(fs, b.flags...) {
			*b.dst = getEnvBool(b.env, *b.dst)
		}
	}
}
