package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	stdlog "log"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestZerologAdapterFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "server")

	logger.Info("solve request",
		String("solver", "int"),
		Int("width", 8),
		Uint64("candidates", 89),
		Bool("found", true),
		Duration("elapsed", 1500*time.Microsecond),
	)

	var event map[string]any
	if err := json.Unmarshal(buf.Bytes(), &event); err != nil {
		t.Fatalf("log line is not JSON: %v (%q)", err, buf.String())
	}
	checks := map[string]any{
		"component":  "server",
		"message":    "solve request",
		"level":      "info",
		"solver":     "int",
		"width":      float64(8),
		"candidates": float64(89),
		"found":      true,
	}
	for k, want := range checks {
		if event[k] != want {
			t.Errorf("field %q = %v, want %v", k, event[k], want)
		}
	}
	if _, ok := event["elapsed"]; !ok {
		t.Error("duration field missing")
	}
}

func TestZerologAdapterError(t *testing.T) {
	var buf bytes.Buffer
	NewLogger(&buf, "app").Error("solve failed", errors.New("boom"), String("solver", "float"))

	out := buf.String()
	for _, want := range []string{`"level":"error"`, `"error":"boom"`, `"solver":"float"`} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %s", out, want)
		}
	}
}

func TestStdLoggerAdapter(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	logger := NewStdLoggerAdapter(stdlog.New(&buf, "", 0))

	logger.Info("started")
	logger.Warn("slow", String("solver", "scalar"))
	logger.Error("failed", errors.New("boom"))
	logger.Printf("port=%d", 8080)

	out := buf.String()
	for _, want := range []string{"[INFO] started", "[WARN] slow", "[ERROR] failed: boom", "port=8080"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %q", out, want)
		}
	}
}

func TestSetGlobalLevel(t *testing.T) {
	prev := zerolog.GlobalLevel()
	t.Cleanup(func() { zerolog.SetGlobalLevel(prev) })

	if err := SetGlobalLevel("DEBUG"); err != nil {
		t.Fatalf("SetGlobalLevel(DEBUG) error = %v", err)
	}
	if zerolog.GlobalLevel() != zerolog.DebugLevel {
		t.Errorf("GlobalLevel = %v, want debug", zerolog.GlobalLevel())
	}
	if err := SetGlobalLevel("loud"); err == nil {
		t.Error("SetGlobalLevel(loud) should fail")
	}
}
