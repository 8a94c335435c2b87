package config

import (
	"bytes"
	"errors"
	"flag"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/agbru/vecsolve/internal/solver"
)

var availableSolvers = []string{"float", "int", "scalar"}

func TestParseConfig(t *testing.T) {
	t.Run("DefaultValues", func(t *testing.T) {
		cfg, err := ParseConfig("vecsolve", []string{}, io.Discard, availableSolvers)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}

		want := solver.Coefficients{Xa: 94, Xb: 22, X: 8400, Ya: 34, Yb: 67, Y: 5400}
		if cfg.Coefficients() != want {
			t.Errorf("Expected default coefficients %v, got %v", want, cfg.Coefficients())
		}
		if cfg.Algo != "all" {
			t.Errorf("Expected default Algo 'all', got %s", cfg.Algo)
		}
		if cfg.Timeout != time.Minute {
			t.Errorf("Expected default Timeout 1m, got %v", cfg.Timeout)
		}
		if cfg.Width != 0 || cfg.Iterations != DefaultIterations || cfg.Port != "8080" {
			t.Errorf("Unexpected defaults: width=%d iterations=%d port=%s", cfg.Width, cfg.Iterations, cfg.Port)
		}
	})

	t.Run("ValidFlags", func(t *testing.T) {
		args := []string{
			"-xa", "17", "-xb", "84", "-x", "7870",
			"-ya", "86", "-yb", "37", "-y", "6450",
			"-algo", "INT",
			"-width", "16",
			"-expect", "38,86",
			"-timeout", "10s",
			"-bench", "-iterations", "5", "-warmup", "0",
			"-q", "-v",
			"-server", "-port", "9090",
			"-rate-limit", "2.5", "-rate-burst", "4",
		}
		cfg, err := ParseConfig("vecsolve", args, io.Discard, availableSolvers)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}

		want := solver.Coefficients{Xa: 17, Xb: 84, X: 7870, Ya: 86, Yb: 37, Y: 6450}
		if cfg.Coefficients() != want {
			t.Errorf("Expected %v, got %v", want, cfg.Coefficients())
		}
		if cfg.Algo != "int" {
			t.Errorf("Expected Algo 'int', got %s", cfg.Algo)
		}
		if cfg.Width != 16 || cfg.EffectiveWidth() != 16 {
			t.Errorf("Expected Width 16, got %d", cfg.Width)
		}
		if cfg.Expect != "38,86" {
			t.Errorf("Expected Expect '38,86', got %q", cfg.Expect)
		}
		if cfg.Timeout != 10*time.Second {
			t.Errorf("Expected Timeout 10s, got %v", cfg.Timeout)
		}
		if !cfg.Bench || cfg.Iterations != 5 || cfg.Warmup != 0 {
			t.Errorf("Unexpected bench settings: %+v", cfg)
		}
		if !cfg.Quiet || !cfg.Verbose {
			t.Error("Expected Quiet and Verbose true")
		}
		if !cfg.ServerMode || cfg.Port != "9090" {
			t.Errorf("Expected server on 9090, got %v/%s", cfg.ServerMode, cfg.Port)
		}
		if cfg.RateLimit != 2.5 || cfg.RateBurst != 4 {
			t.Errorf("Expected rate 2.5/4, got %v/%d", cfg.RateLimit, cfg.RateBurst)
		}
	})

	t.Run("EnvOverrides", func(t *testing.T) {
		env := map[string]string{
			"VECSOLVE_XA":         "26",
			"VECSOLVE_Y":          "12176",
			"VECSOLVE_ALGO":       "float",
			"VECSOLVE_WIDTH":      "8",
			"VECSOLVE_TIMEOUT":    "2m",
			"VECSOLVE_QUIET":      "yes",
			"VECSOLVE_SERVER":     "true",
			"VECSOLVE_PORT":       "3000",
			"VECSOLVE_RATE_LIMIT": "50",
			"VECSOLVE_LOG_LEVEL":  "DEBUG",
		}
		for k, v := range env {
			t.Setenv(k, v)
		}

		cfg, err := ParseConfig("vecsolve", []string{"-port", "4000"}, io.Discard, availableSolvers)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if cfg.Xa != 26 || cfg.Y != 12176 {
			t.Errorf("coefficient overrides not applied: %v", cfg.Coefficients())
		}
		if cfg.Algo != "float" || cfg.Width != 8 {
			t.Errorf("Expected float/8, got %s/%d", cfg.Algo, cfg.Width)
		}
		if cfg.Timeout != 2*time.Minute {
			t.Errorf("Expected Timeout 2m, got %v", cfg.Timeout)
		}
		if !cfg.Quiet || !cfg.ServerMode {
			t.Error("boolean overrides not applied")
		}
		if cfg.Port != "4000" {
			t.Errorf("flag must win over env: port = %s", cfg.Port)
		}
		if cfg.RateLimit != 50 {
			t.Errorf("Expected RateLimit 50, got %v", cfg.RateLimit)
		}
		if cfg.LogLevel != "debug" {
			t.Errorf("Expected LogLevel debug, got %s", cfg.LogLevel)
		}
	})

	t.Run("InvalidEnvValuesIgnored", func(t *testing.T) {
		t.Setenv("VECSOLVE_XA", "-3")
		t.Setenv("VECSOLVE_TIMEOUT", "soon")
		cfg, err := ParseConfig("vecsolve", nil, io.Discard, availableSolvers)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if cfg.Xa != DefaultXa || cfg.Timeout != DefaultTimeout {
			t.Errorf("invalid env values should fall back to defaults: %+v", cfg)
		}
	})

	t.Run("HelpFlag", func(t *testing.T) {
		var buf bytes.Buffer
		_, err := ParseConfig("vecsolve", []string{"-h"}, &buf, availableSolvers)
		if !errors.Is(err, flag.ErrHelp) {
			t.Fatalf("Expected flag.ErrHelp, got %v", err)
		}
		if !strings.Contains(buf.String(), "-expect") {
			t.Errorf("usage should list flags, got %q", buf.String())
		}
	})
}

func TestParseConfigValidation(t *testing.T) {
	tests := []struct {
		name string
		args []string
		msg  string
	}{
		{"UnknownSolver", []string{"-algo", "simd"}, "unrecognized solver"},
		{"BadWidth", []string{"-width", "12"}, "power of two"},
		{"ZeroDivisor", []string{"-yb", "0"}, "-yb"},
		{"BadExpect", []string{"-expect", "1;2"}, "-expect"},
		{"ZeroTimeout", []string{"-timeout", "0s"}, "timeout"},
		{"NoIterations", []string{"-iterations", "0"}, "iterations"},
		{"BadLogLevel", []string{"-log-level", "loud"}, "log level"},
		{"BadRate", []string{"-rate-limit", "0"}, "rate limit"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			_, err := ParseConfig("vecsolve", tt.args, &buf, availableSolvers)
			if err == nil {
				t.Fatal("Expected validation error")
			}
			if !strings.Contains(buf.String(), tt.msg) {
				t.Errorf("Expected output to mention %q, got %q", tt.msg, buf.String())
			}
		})
	}
}

func TestParseExpectation(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in      string
		want    Expectation
		wantErr bool
	}{
		{"", Expectation{}, false},
		{"none", Expectation{Set: true}, false},
		{"NONE", Expectation{Set: true}, false},
		{"80,40", Expectation{Set: true, Found: true, Solution: solver.Solution{A: 80, B: 40}}, false},
		{" 1 , 2 ", Expectation{Set: true, Found: true, Solution: solver.Solution{A: 1, B: 2}}, false},
		{"1", Expectation{}, true},
		{"a,2", Expectation{}, true},
		{"1,-2", Expectation{}, true},
	}
	for _, tt := range tests {
		got, err := ParseExpectation(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseExpectation(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseExpectation(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestExpectationMatches(t *testing.T) {
	t.Parallel()
	sol := solver.Solution{A: 80, B: 40}
	some, _ := ParseExpectation("80,40")
	none, _ := ParseExpectation("none")

	if !(Expectation{}).Matches(sol, true) {
		t.Error("unset expectation must match anything")
	}
	if !some.Matches(sol, true) || some.Matches(solver.Solution{A: 1}, true) || some.Matches(solver.Solution{}, false) {
		t.Error("solution expectation mismatched")
	}
	if !none.Matches(solver.Solution{}, false) || none.Matches(sol, true) {
		t.Error("none expectation mismatched")
	}
	if some.String() != "80,40" || none.String() != "none" {
		t.Errorf("String() = %q / %q", some.String(), none.String())
	}
}
