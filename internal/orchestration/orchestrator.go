// Package orchestration runs one or more solvers on the same system and
// compares their verdicts.
package orchestration

import (
	"context"
	"fmt"
	"io"
	"sort"
	"text/tabwriter"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/agbru/vecsolve/internal/cli"
	"github.com/agbru/vecsolve/internal/config"
	apperrors "github.com/agbru/vecsolve/internal/errors"
	"github.com/agbru/vecsolve/internal/solver"
	"github.com/agbru/vecsolve/internal/ui"
)

// SolveResult is the outcome of one solver in a run.
type SolveResult struct {
	// Name is the solver name.
	Name string
	// Result is the solver output. It is meaningful only when Err is nil.
	Result solver.Result
	// Duration is the wall time of the call, including any wait on ctx.
	Duration time.Duration
	// Err is the error returned by the solver, or the context error if the
	// run was cut short.
	Err error
}

// ExecuteSolves runs every solver concurrently on c and returns their
// results in input order.
//
// The searches are CPU bound and do not poll ctx, so a solver still running
// when ctx is done is abandoned and reported with ctx.Err().
//
// Parameters:
//   - ctx: The context carrying the run deadline and cancellation.
//   - solvers: The solvers to execute.
//   - c: The system to solve.
//   - out: Where the activity spinner is drawn.
//
// Returns:
//   - []SolveResult: One entry per solver.
func ExecuteSolves(ctx context.Context, solvers []solver.Solver, c solver.Coefficients, out io.Writer) []SolveResult {
	g, ctx := errgroup.WithContext(ctx)
	results := make([]SolveResult, len(solvers))

	activity := cli.StartActivity(out, fmt.Sprintf("Solving with %d solver(s)...", len(solvers)), out == io.Discard)
	for i, s := range solvers {
		idx, slv := i, s
		g.Go(func() error {
			start := time.Now()
			res, err := solver.SolveContext(ctx, slv, c)
			results[idx] = SolveResult{Name: slv.Name(), Result: res, Duration: time.Since(start), Err: err}
			return nil
		})
	}
	_ = g.Wait()
	activity.Stop()

	return results
}

// PrecisionLimited reports whether a verdict from the named solver may
// legitimately differ from the exact solvers on c.
func PrecisionLimited(name string, c solver.Coefficients) bool {
	return name == "float" && !c.FloatExact()
}

// SelectReference returns the fastest successful result whose verdict is
// exact on c, falling back to the fastest successful result. It returns nil
// when every solver failed.
func SelectReference(results []SolveResult, c solver.Coefficients) *SolveResult {
	var best, fallback *SolveResult
	for i := range results {
		r := &results[i]
		if r.Err != nil {
			continue
		}
		if fallback == nil || r.Duration < fallback.Duration {
			fallback = r
		}
		if PrecisionLimited(r.Name, c) {
			continue
		}
		if best == nil || r.Duration < best.Duration {
			best = r
		}
	}
	if best != nil {
		return best
	}
	return fallback
}

func sameVerdict(a, b solver.Result) bool {
	if a.Found != b.Found {
		return false
	}
	return !a.Found || a.Solution == b.Solution
}

// AnalyzeComparisonResults prints a summary table of results, checks that
// the verdicts agree and displays the reference verdict.
//
// A float verdict that differs on a system outside the float-exact range is
// reported as precision-limited instead of as a mismatch.
//
// Parameters:
//   - results: The results to analyze. The slice is sorted in place.
//   - cfg: The application configuration.
//   - out: The io.Writer for the report.
//
// Returns:
//   - int: An exit code indicating success (0) or the type of failure.
func AnalyzeComparisonResults(results []SolveResult, cfg config.AppConfig, out io.Writer) int {
	sort.Slice(results, func(i, j int) bool {
		if (results[i].Err == nil) != (results[j].Err == nil) {
			return results[i].Err == nil
		}
		return results[i].Duration < results[j].Duration
	})

	c := cfg.Coefficients()
	ref := SelectReference(results, c)

	fmt.Fprintf(out, "\n--- Comparison Summary ---\n")
	tw := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintf(tw, "%sSolver%s\t%sWidth%s\t%sDuration%s\t%sVerdict%s\t%sStatus%s\n",
		ui.ColorBold(), ui.ColorReset(), ui.ColorBold(), ui.ColorReset(), ui.ColorBold(), ui.ColorReset(),
		ui.ColorBold(), ui.ColorReset(), ui.ColorBold(), ui.ColorReset())

	var firstError error
	mismatch := false
	for _, res := range results {
		verdict := "-"
		var status string
		switch {
		case res.Err != nil:
			status = fmt.Sprintf("%sFailure (%v)%s", ui.ColorRed(), res.Err, ui.ColorReset())
			if firstError == nil {
				firstError = res.Err
			}
		case sameVerdict(res.Result, ref.Result):
			verdict = cli.FormatVerdict(res.Result.Solution, res.Result.Found)
			status = fmt.Sprintf("%sSuccess%s", ui.ColorGreen(), ui.ColorReset())
		case PrecisionLimited(res.Name, c):
			verdict = cli.FormatVerdict(res.Result.Solution, res.Result.Found)
			status = fmt.Sprintf("%sPrecision-limited%s", ui.ColorYellow(), ui.ColorReset())
		default:
			verdict = cli.FormatVerdict(res.Result.Solution, res.Result.Found)
			status = fmt.Sprintf("%sMismatch%s", ui.ColorRed(), ui.ColorReset())
			mismatch = true
		}
		duration := cli.FormatExecutionDuration(res.Duration)
		if res.Duration == 0 {
			duration = "< 1µs"
		}
		fmt.Fprintf(tw, "%s%s%s\t%d\t%s%s%s\t%s\t%s\n",
			ui.ColorBlue(), res.Name, ui.ColorReset(),
			res.Result.Width,
			ui.ColorYellow(), duration, ui.ColorReset(),
			verdict, status)
	}
	if err := tw.Flush(); err != nil {
		fmt.Fprintf(out, "Warning: failed to flush tabwriter: %v\n", err)
	}

	if ref == nil {
		fmt.Fprintf(out, "\nGlobal Status: Failure. No solver could complete the search.\n")
		return apperrors.HandleSolveError(firstError, 0, out, cli.CLIColorProvider{})
	}
	if mismatch {
		fmt.Fprintf(out, "\nGlobal Status: CRITICAL ERROR! The solvers disagree on the solution.\n")
		return apperrors.ExitErrorMismatch
	}

	fmt.Fprintf(out, "\nGlobal Status: Success. All exact verdicts are consistent.\n")
	cli.DisplayResult(out, ref.Result, cli.OutputConfig{Verbose: cfg.Verbose})
	return apperrors.ExitSuccess
}
