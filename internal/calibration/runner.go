package calibration

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/agbru/vecsolve/internal/solver"
)

// CalibrationSystem is the workload timed for every trial. Its first
// equation has an odd right-hand side with even coefficients, so every
// candidate is rejected and the full range of two million values is scanned.
var CalibrationSystem = solver.Coefficients{Xa: 2, Xb: 2, X: 4_000_001, Ya: 1, Yb: 1, Y: 2_000_000}

// CalibratedSolvers are the solvers whose width is calibrated.
var CalibratedSolvers = []string{"float", "int"}

// WidthFactory builds solvers at an explicit batch width.
// *solver.DefaultFactory implements it.
type WidthFactory interface {
	CreateWidth(name string, width int) (solver.Solver, error)
}

// Trial is the outcome of timing one solver at one width.
type Trial struct {
	Solver   string
	Width    int
	Duration time.Duration
	Err      error
}

// calibrationRunner encapsulates the trial run logic for calibration.
type calibrationRunner struct {
	factory WidthFactory
	system  solver.Coefficients
	repeats int
}

func newCalibrationRunner(factory WidthFactory, system solver.Coefficients, repeats int) *calibrationRunner {
	if repeats < 1 {
		repeats = 1
	}
	return &calibrationRunner{factory: factory, system: system, repeats: repeats}
}

// runTrial times the solver at width and keeps the fastest of the repeats.
func (r *calibrationRunner) runTrial(ctx context.Context, name string, width int) Trial {
	t := Trial{Solver: name, Width: width}
	s, err := r.factory.CreateWidth(name, width)
	if err != nil {
		t.Err = err
		return t
	}

	best := time.Duration(1<<63 - 1)
	for i := 0; i < r.repeats; i++ {
		if err := ctx.Err(); err != nil {
			t.Err = err
			return t
		}
		start := time.Now()
		if _, err := s.Solve(ctx, r.system); err != nil {
			t.Err = err
			return t
		}
		if d := time.Since(start); d < best {
			best = d
		}
	}
	t.Duration = best
	return t
}

// sweep times every solver at every width. Trials run one at a time so
// their timings do not contend for the CPU; the group stops at the first
// context error.
func (r *calibrationRunner) sweep(ctx context.Context, solvers []string, widths []int) ([]Trial, error) {
	trials := make([]Trial, len(solvers)*len(widths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(1)

	for i, name := range solvers {
		for j, width := range widths {
			idx, name, width := i*len(widths)+j, name, width
			g.Go(func() error {
				trials[idx] = r.runTrial(ctx, name, width)
				return ctx.Err()
			})
		}
	}
	err := g.Wait()
	return trials, err
}

// BestWidth returns the width of the fastest successful trial of the named
// solver. Ties keep the smaller width.
func BestWidth(trials []Trial, solverName string) (int, time.Duration, bool) {
	bestWidth, bestDur, found := 0, time.Duration(0), false
	for _, t := range trials {
		if t.Solver != solverName || t.Err != nil {
			continue
		}
		if !found || t.Duration < bestDur || (t.Duration == bestDur && t.Width < bestWidth) {
			bestWidth, bestDur, found = t.Width, t.Duration, true
		}
	}
	return bestWidth, bestDur, found
}
