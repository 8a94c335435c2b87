package bench

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/agbru/vecsolve/internal/cli"
	apperrors "github.com/agbru/vecsolve/internal/errors"
	"github.com/agbru/vecsolve/internal/solver"
)

// StressSystem is the large reference system: about 1.5e11 candidates.
var StressSystem = solver.Coefficients{
	Xa: 26, Xb: 67, X: 10_000_000_012_748,
	Ya: 66, Yb: 21, Y: 10_000_000_012_176,
}

// StressSolution is the solution of StressSystem.
var StressSolution = solver.Solution{A: 118_679_050_709, B: 103_199_174_542}

// StressWidth is the int solver width used when none is configured.
const StressWidth = 4

// Stress solves StressSystem with the int solver, prints the elapsed time
// and checks the solution.
//
// Parameters:
//   - ctx: The context bounding the run.
//   - factory: Builds the int solver.
//   - width: The batch width, or 0 for StressWidth.
//   - out: Where the report is written.
//
// Returns:
//   - int: ExitSuccess, ExitErrorExpectation on a wrong result, or the
//     code of the solver error.
func Stress(ctx context.Context, factory WidthFactory, width int, out io.Writer) int {
	return stressSystem(ctx, factory, width, StressSystem, StressSolution, out)
}

func stressSystem(ctx context.Context, factory WidthFactory, width int, c solver.Coefficients, want solver.Solution, out io.Writer) int {
	if width == 0 {
		width = StressWidth
	}
	s, err := factory.CreateWidth("int", width)
	if err != nil {
		return apperrors.HandleSolveError(err, 0, out, cli.CLIColorProvider{})
	}

	activity := cli.StartActivity(out, fmt.Sprintf("Scanning %d candidates...", c.MaxA()+1), false)
	start := time.Now()
	res, err := solver.SolveContext(ctx, s, c)
	elapsed := time.Since(start)
	activity.Stop()
	if err != nil {
		return apperrors.HandleSolveError(err, elapsed, out, cli.CLIColorProvider{})
	}

	fmt.Fprintf(out, "Time elapsed: %d milliseconds\n", elapsed.Milliseconds())
	if !res.Found || res.Solution != want {
		err := apperrors.ExpectationError{Want: want.String(), Got: cli.FormatVerdict(res.Solution, res.Found)}
		return apperrors.HandleSolveError(err, elapsed, out, cli.CLIColorProvider{})
	}
	fmt.Fprintf(out, "%s%s%s\n", cli.ColorGreen(), res.Solution, cli.ColorReset())
	return apperrors.ExitSuccess
}
