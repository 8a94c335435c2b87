package cli

import (
	"fmt"
	"io"
	"runtime"

	"github.com/agbru/vecsolve/internal/config"
	"github.com/agbru/vecsolve/internal/lanes"
	"github.com/agbru/vecsolve/internal/solver"
)

// GetSolversToRun returns the solvers selected by cfg.Algo, in name order
// for "all".
func GetSolversToRun(cfg config.AppConfig, factory solver.SolverFactory) []solver.Solver {
	if cfg.Algo == "all" {
		names := factory.List()
		solvers := make([]solver.Solver, 0, len(names))
		for _, name := range names {
			if s, err := factory.Get(name); err == nil {
				solvers = append(solvers, s)
			}
		}
		return solvers
	}
	if s, err := factory.Get(cfg.Algo); err == nil {
		return []solver.Solver{s}
	}
	return nil
}

// PrintExecutionConfig prints the system being solved and the environment.
func PrintExecutionConfig(cfg config.AppConfig, out io.Writer) {
	c := cfg.Coefficients()
	fmt.Fprintf(out, "--- Execution Configuration ---\n")
	fmt.Fprintf(out, "System: %s%d*A + %d*B = %d%s\n", ColorBlue(), c.Xa, c.Xb, c.X, ColorReset())
	fmt.Fprintf(out, "        %s%d*A + %d*B = %d%s\n", ColorBlue(), c.Ya, c.Yb, c.Y, ColorReset())
	fmt.Fprintf(out, "Candidate range: A in [0, %s%d%s], timeout %s%s%s.\n",
		ColorCyan(), c.MaxA(), ColorReset(), ColorYellow(), cfg.Timeout, ColorReset())
	fmt.Fprintf(out, "Environment: %s%s/%s%s, vector extension %s%s%s, batch width %s%d%s, Go %s.\n",
		ColorCyan(), runtime.GOOS, runtime.GOARCH, ColorReset(),
		ColorCyan(), lanes.DetectExtension(), ColorReset(),
		ColorCyan(), cfg.EffectiveWidth(), ColorReset(),
		runtime.Version())
	if !c.FloatExact() {
		fmt.Fprintf(out, "%sNote:%s coefficients exceed 2^53; the float solver may miss the solution.\n",
			ColorYellow(), ColorReset())
	}
}

// PrintExecutionMode prints whether one solver runs or several are compared.
func PrintExecutionMode(solvers []solver.Solver, out io.Writer) {
	if len(solvers) > 1 {
		fmt.Fprintf(out, "Execution mode: cross-check of %d solvers.\n", len(solvers))
	} else {
		fmt.Fprintf(out, "Execution mode: single run with the %s%s%s solver.\n",
			ColorGreen(), solvers[0].Name(), ColorReset())
	}
	fmt.Fprintf(out, "\n--- Starting Execution ---\n")
}
