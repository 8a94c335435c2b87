// Package bench times the solvers on a fixed system: repeated runs after a
// warm-up, optionally across several batch widths, and the large stress
// system used to compare releases.
package bench

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/agbru/vecsolve/internal/cli"
	"github.com/agbru/vecsolve/internal/solver"
	"github.com/agbru/vecsolve/internal/ui"
)

// SweepWidths are the batch widths timed when no width is fixed.
var SweepWidths = []int{2, 4, 8, 16}

// WidthFactory builds solvers at an explicit batch width.
type WidthFactory interface {
	CreateWidth(name string, width int) (solver.Solver, error)
}

// Options configures a benchmark run.
type Options struct {
	// Iterations is the number of timed runs per measurement.
	Iterations int
	// Warmup is the number of untimed runs before the timed ones.
	Warmup int
	// Width fixes the batch width; 0 sweeps SweepWidths.
	Width int
}

// Measurement is the timing of one solver at one width.
type Measurement struct {
	Solver     string        `json:"solver"`
	Width      int           `json:"width"`
	Iterations int           `json:"iterations"`
	Min        time.Duration `json:"min_ns"`
	Mean       time.Duration `json:"mean_ns"`
	Max        time.Duration `json:"max_ns"`
	Verdict    string        `json:"verdict"`
	Error      string        `json:"error,omitempty"`
}

// Step is one solver and width to measure.
type Step struct {
	Solver string
	Width  int
}

// Plan returns the steps measured for solvers under opts. The scalar solver
// is always measured once at width 1.
func Plan(solvers []string, opts Options) []Step {
	var plan []Step
	for _, name := range solvers {
		switch {
		case name == "scalar":
			plan = append(plan, Step{name, 1})
		case opts.Width != 0:
			plan = append(plan, Step{name, opts.Width})
		default:
			for _, w := range SweepWidths {
				plan = append(plan, Step{name, w})
			}
		}
	}
	return plan
}

// Run measures every solver of the plan on c. It stops at the first context
// error and returns the measurements taken so far.
func Run(ctx context.Context, factory WidthFactory, solvers []string, c solver.Coefficients, opts Options) ([]Measurement, error) {
	if opts.Iterations < 1 {
		opts.Iterations = 1
	}
	var out []Measurement
	for _, step := range Plan(solvers, opts) {
		m, err := measure(ctx, factory, step.Solver, step.Width, c, opts)
		if err != nil {
			return out, err
		}
		log.Debug().
			Str("solver", m.Solver).
			Int("width", m.Width).
			Dur("mean", m.Mean).
			Msg("bench measurement")
		out = append(out, m)
	}
	return out, nil
}

func measure(ctx context.Context, factory WidthFactory, name string, width int, c solver.Coefficients, opts Options) (Measurement, error) {
	m := Measurement{Solver: name, Width: width}
	s, err := factory.CreateWidth(name, width)
	if err != nil {
		m.Error = err.Error()
		return m, nil
	}

	for i := 0; i < opts.Warmup; i++ {
		if _, err := s.Solve(ctx, c); err != nil {
			return measureFailed(ctx, m, err)
		}
	}

	var total time.Duration
	for i := 0; i < opts.Iterations; i++ {
		start := time.Now()
		res, err := s.Solve(ctx, c)
		d := time.Since(start)
		if err != nil {
			return measureFailed(ctx, m, err)
		}
		if i == 0 || d < m.Min {
			m.Min = d
		}
		if d > m.Max {
			m.Max = d
		}
		total += d
		m.Verdict = cli.FormatVerdict(res.Solution, res.Found)
		m.Iterations++
	}
	m.Mean = total / time.Duration(m.Iterations)
	return m, nil
}

// measureFailed records a solver error, or aborts the run on a context error.
func measureFailed(ctx context.Context, m Measurement, err error) (Measurement, error) {
	if ctx.Err() != nil {
		return m, ctx.Err()
	}
	m.Error = err.Error()
	return m, nil
}

// PrintTable writes measurements as an aligned table.
func PrintTable(out io.Writer, ms []Measurement) {
	fmt.Fprintf(out, "\n--- Benchmark Results ---\n")
	tw := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintf(tw, "%sSolver%s\t%sWidth%s\t%sRuns%s\t%sMin%s\t%sMean%s\t%sMax%s\t%sVerdict%s\n",
		ui.ColorBold(), ui.ColorReset(), ui.ColorBold(), ui.ColorReset(), ui.ColorBold(), ui.ColorReset(),
		ui.ColorBold(), ui.ColorReset(), ui.ColorBold(), ui.ColorReset(), ui.ColorBold(), ui.ColorReset(),
		ui.ColorBold(), ui.ColorReset())
	for _, m := range ms {
		if m.Error != "" {
			fmt.Fprintf(tw, "%s%s%s\t%d\t-\t-\t-\t-\t%s%s%s\n",
				ui.ColorBlue(), m.Solver, ui.ColorReset(), m.Width,
				ui.ColorRed(), m.Error, ui.ColorReset())
			continue
		}
		fmt.Fprintf(tw, "%s%s%s\t%d\t%d\t%s\t%s%s%s\t%s\t%s\n",
			ui.ColorBlue(), m.Solver, ui.ColorReset(), m.Width, m.Iterations,
			cli.FormatExecutionDuration(m.Min),
			ui.ColorYellow(), cli.FormatExecutionDuration(m.Mean), ui.ColorReset(),
			cli.FormatExecutionDuration(m.Max),
			m.Verdict)
	}
	_ = tw.Flush()
}
