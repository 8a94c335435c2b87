package calibration

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agbru/vecsolve/internal/config"
	apperrors "github.com/agbru/vecsolve/internal/errors"
	"github.com/agbru/vecsolve/internal/solver"
)

var smallSystem = solver.Coefficients{Xa: 2, Xb: 2, X: 2001, Ya: 1, Yb: 1, Y: 1000}

func TestCalibrationSystemHasNoSolution(t *testing.T) {
	t.Parallel()
	_, found := solver.SolveScalar(smallSystem)
	assert.False(t, found)
	assert.Equal(t, uint64(2_000_000), CalibrationSystem.MaxA())
	assert.True(t, CalibrationSystem.FloatExact())
}

func TestSweep(t *testing.T) {
	t.Parallel()
	r := newCalibrationRunner(solver.NewDefaultFactory(4), smallSystem, 2)
	trials, err := r.sweep(context.Background(), CalibratedSolvers, []int{1, 2, 4})
	require.NoError(t, err)
	require.Len(t, trials, 6)

	assert.Equal(t, "float", trials[0].Solver)
	assert.Equal(t, 1, trials[0].Width)
	assert.Equal(t, "int", trials[5].Solver)
	assert.Equal(t, 4, trials[5].Width)
	for _, tr := range trials {
		assert.NoError(t, tr.Err)
	}
}

func TestSweepInvalidWidth(t *testing.T) {
	t.Parallel()
	r := newCalibrationRunner(solver.NewDefaultFactory(4), smallSystem, 1)
	trials, err := r.sweep(context.Background(), []string{"int"}, []int{3})
	require.NoError(t, err)
	assert.ErrorIs(t, trials[0].Err, solver.ErrInvalidWidth)
}

func TestSweepCanceled(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r := newCalibrationRunner(solver.NewDefaultFactory(4), smallSystem, 1)
	_, err := r.sweep(ctx, CalibratedSolvers, []int{2, 4})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBestWidth(t *testing.T) {
	t.Parallel()
	trials := []Trial{
		{Solver: "int", Width: 2, Duration: 5 * time.Millisecond},
		{Solver: "int", Width: 4, Duration: 3 * time.Millisecond},
		{Solver: "int", Width: 8, Duration: 3 * time.Millisecond},
		{Solver: "int", Width: 16, Duration: time.Millisecond, Err: errors.New("x")},
		{Solver: "float", Width: 8, Duration: 2 * time.Millisecond},
	}

	w, d, ok := BestWidth(trials, "int")
	assert.True(t, ok)
	assert.Equal(t, 4, w)
	assert.Equal(t, 3*time.Millisecond, d)

	w, _, ok = BestWidth(trials, "float")
	assert.True(t, ok)
	assert.Equal(t, 8, w)

	_, _, ok = BestWidth(trials, "scalar")
	assert.False(t, ok)
}

func TestBuildProfile(t *testing.T) {
	t.Parallel()
	trials := []Trial{
		{Solver: "float", Width: 2, Duration: 2 * time.Millisecond},
		{Solver: "int", Width: 16, Duration: time.Millisecond},
		{Solver: "int", Width: 32, Err: errors.New("x")},
	}
	p, ok := buildProfile(trials, time.Second)
	assert.True(t, ok)
	assert.Equal(t, 2, p.OptimalFloatWidth)
	assert.Equal(t, 16, p.OptimalIntWidth)
	assert.Len(t, p.Timings, 2)
	assert.Equal(t, "1s", p.CalibrationTime)

	_, ok = buildProfile(trials[1:], time.Second)
	assert.False(t, ok)
}

func TestRunCalibrationWithOptions(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "profile.json")
	var buf bytes.Buffer

	code := RunCalibrationWithOptions(context.Background(), &buf, solver.NewDefaultFactory(4), CalibrationOptions{
		ProfilePath: path,
		SaveProfile: true,
		Widths:      []int{2, 4},
		Repeats:     1,
	})
	require.Equal(t, apperrors.ExitSuccess, code)
	assert.Contains(t, buf.String(), "Calibration Summary")
	assert.Contains(t, buf.String(), "(Optimal)")
	assert.Contains(t, buf.String(), "Profile saved.")

	p, err := LoadProfile(path)
	require.NoError(t, err)
	assert.True(t, p.IsValid())
	assert.Contains(t, []int{2, 4}, p.OptimalIntWidth)

	buf.Reset()
	code = RunCalibrationWithOptions(context.Background(), &buf, solver.NewDefaultFactory(4), CalibrationOptions{
		ProfilePath: path,
		LoadProfile: true,
	})
	assert.Equal(t, apperrors.ExitSuccess, code)
	assert.Contains(t, buf.String(), "Loaded existing calibration profile")
}

func TestRunCalibrationCanceled(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var buf bytes.Buffer
	code := RunCalibrationWithOptions(ctx, &buf, solver.NewDefaultFactory(4), CalibrationOptions{Widths: []int{2}})
	assert.Equal(t, apperrors.ExitErrorCanceled, code)
	assert.Contains(t, buf.String(), "Calibration interrupted")
}

func TestAutoCalibrate(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "profile.json")
	require.NoError(t, validProfile().SaveProfile(path))
	var buf bytes.Buffer

	cfg, ok := AutoCalibrate(context.Background(), config.AppConfig{Algo: "int", CalibrationProfile: path}, &buf, solver.NewDefaultFactory(4))
	assert.True(t, ok)
	assert.Equal(t, 4, cfg.Width)
	assert.Contains(t, buf.String(), "cached profile")

	cfg, ok = AutoCalibrate(context.Background(), config.AppConfig{Algo: "int", Width: 2, CalibrationProfile: path}, &buf, solver.NewDefaultFactory(4))
	assert.False(t, ok)
	assert.Equal(t, 2, cfg.Width)
}
