package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/agbru/vecsolve/internal/solver"
)

// OutputConfig controls how a result is displayed.
type OutputConfig struct {
	// Quiet prints only the verdict.
	Quiet bool
	// Verbose adds search statistics.
	Verbose bool
}

// FormatVerdict returns "A=<a> B=<b>" or "none".
func FormatVerdict(sol solver.Solution, found bool) string {
	if !found {
		return "none"
	}
	return sol.String()
}

// DisplayResult prints one solver result.
func DisplayResult(out io.Writer, res solver.Result, cfg OutputConfig) {
	if cfg.Quiet {
		fmt.Fprintln(out, FormatVerdict(res.Solution, res.Found))
		return
	}

	fmt.Fprintf(out, "\n%s--- Result ---%s\n", ColorBold(), ColorReset())
	fmt.Fprintf(out, "Solver: %s%s%s (width %d)\n", ColorBlue(), res.Solver, ColorReset(), res.Width)
	if res.Found {
		fmt.Fprintf(out, "Solution: %sA = %d, B = %d%s\n", ColorGreen(), res.Solution.A, res.Solution.B, ColorReset())
	} else {
		fmt.Fprintf(out, "Solution: %snone%s (no non-negative integer pair satisfies both equations)\n", ColorYellow(), ColorReset())
	}
	fmt.Fprintf(out, "Duration: %s%s%s\n", ColorCyan(), FormatExecutionDuration(res.Duration), ColorReset())

	if cfg.Verbose {
		st := res.Stats
		fmt.Fprintf(out, "Candidates: %d  Batches: %d  Scalar checks: %d  Rejected hits: %d\n",
			st.Candidates, st.Batches, st.ScalarChecks, st.Rejected)
	}
}

// ResultJSON is the JSON form of one solver result.
type ResultJSON struct {
	Solver     string       `json:"solver"`
	Width      int          `json:"width"`
	Found      bool         `json:"found"`
	A          *uint64      `json:"a,omitempty"`
	B          *uint64      `json:"b,omitempty"`
	Stats      solver.Stats `json:"stats"`
	DurationNs int64        `json:"duration_ns"`
	Error      string       `json:"error,omitempty"`
}

// NewResultJSON converts a result and its error.
func NewResultJSON(res solver.Result, err error) ResultJSON {
	out := ResultJSON{
		Solver:     res.Solver,
		Width:      res.Width,
		Found:      res.Found,
		Stats:      res.Stats,
		DurationNs: res.Duration.Nanoseconds(),
	}
	if res.Found {
		a, b := res.Solution.A, res.Solution.B
		out.A, out.B = &a, &b
	}
	if err != nil {
		out.Error = err.Error()
	}
	return out
}

// WriteJSON writes v as indented JSON.
func WriteJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
