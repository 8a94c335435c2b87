package calibration

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agbru/vecsolve/internal/config"
	"github.com/agbru/vecsolve/internal/lanes"
)

func validProfile() *CalibrationProfile {
	p := NewProfile()
	p.OptimalFloatWidth = 8
	p.OptimalIntWidth = 4
	return p
}

func TestNewProfile(t *testing.T) {
	t.Parallel()
	p := NewProfile()
	assert.Equal(t, runtime.NumCPU(), p.NumCPU)
	assert.Equal(t, runtime.GOARCH, p.GOARCH)
	assert.Equal(t, lanes.DetectExtension().String(), p.Extension)
	assert.Equal(t, CurrentProfileVersion, p.ProfileVersion)
	assert.False(t, p.IsValid(), "a profile without widths is not usable")
}

func TestProfileIsValid(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		mutate func(p *CalibrationProfile)
		want   bool
	}{
		{"valid", func(p *CalibrationProfile) {}, true},
		{"version", func(p *CalibrationProfile) { p.ProfileVersion = 99 }, false},
		{"cpus", func(p *CalibrationProfile) { p.NumCPU++ }, false},
		{"arch", func(p *CalibrationProfile) { p.GOARCH = "other" }, false},
		{"extension", func(p *CalibrationProfile) { p.Extension = "other" }, false},
		{"float width", func(p *CalibrationProfile) { p.OptimalFloatWidth = 3 }, false},
		{"int width", func(p *CalibrationProfile) { p.OptimalIntWidth = 128 }, false},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			p := validProfile()
			tt.mutate(p)
			assert.Equal(t, tt.want, p.IsValid())
		})
	}

	var nilProfile *CalibrationProfile
	assert.False(t, nilProfile.IsValid())
	assert.True(t, nilProfile.IsStale(time.Hour))
	assert.Equal(t, "<nil profile>", nilProfile.String())
}

func TestProfileIsStale(t *testing.T) {
	t.Parallel()
	p := validProfile()
	assert.False(t, p.IsStale(time.Hour))
	p.CalibratedAt = time.Now().Add(-2 * time.Hour)
	assert.True(t, p.IsStale(time.Hour))
}

func TestProfileWidthFor(t *testing.T) {
	t.Parallel()
	p := validProfile()
	assert.Equal(t, 8, p.WidthFor("float"))
	assert.Equal(t, 4, p.WidthFor("int"))
	assert.Equal(t, 4, p.WidthFor("all"))
}

func TestSaveAndLoadProfile(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "profile.json")

	assert.False(t, ProfileExists(path))
	p := validProfile()
	p.Timings = []WidthTiming{{Solver: "int", Width: 4, DurationNs: 1000}}
	require.NoError(t, p.SaveProfile(path))
	assert.True(t, ProfileExists(path))

	loaded, err := LoadProfile(path)
	require.NoError(t, err)
	assert.Equal(t, p.OptimalFloatWidth, loaded.OptimalFloatWidth)
	assert.Equal(t, p.OptimalIntWidth, loaded.OptimalIntWidth)
	assert.Equal(t, p.Timings, loaded.Timings)
	assert.True(t, loaded.IsValid())
	assert.Contains(t, loaded.String(), "Int width: 4")

	got, ok := LoadOrCreateProfile(path)
	assert.True(t, ok)
	assert.Equal(t, 4, got.OptimalIntWidth)
}

func TestLoadProfileErrors(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	_, err := LoadProfile(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{"), 0600))
	_, err = LoadProfile(bad)
	assert.Error(t, err)

	p, ok := LoadOrCreateProfile(bad)
	assert.False(t, ok)
	assert.NotNil(t, p)
}

func TestLoadCachedCalibration(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "profile.json")
	require.NoError(t, validProfile().SaveProfile(path))

	cfg, ok := LoadCachedCalibration(config.AppConfig{Algo: "float"}, path)
	assert.True(t, ok)
	assert.Equal(t, 8, cfg.Width)

	cfg, ok = LoadCachedCalibration(config.AppConfig{Algo: "int"}, path)
	assert.True(t, ok)
	assert.Equal(t, 4, cfg.Width)

	cfg, ok = LoadCachedCalibration(config.AppConfig{Algo: "int", Width: 16}, path)
	assert.False(t, ok)
	assert.Equal(t, 16, cfg.Width)

	stale := validProfile()
	stale.CalibratedAt = time.Now().Add(-2 * MaxProfileAge)
	require.NoError(t, stale.SaveProfile(path))
	_, ok = LoadCachedCalibration(config.AppConfig{Algo: "int"}, path)
	assert.False(t, ok)
}
