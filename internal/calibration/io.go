package calibration

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/agbru/vecsolve/internal/cli"
	"github.com/agbru/vecsolve/internal/config"
)

// printCalibrationResults formats and prints the calibration results table.
func printCalibrationResults(out io.Writer, trials []Trial, profile *CalibrationProfile) {
	fmt.Fprintf(out, "\n--- Calibration Summary ---\n")
	tw := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintf(tw, "  %sSolver%s   │ %sWidth%s │ %sBest Time%s\n",
		cli.ColorBold(), cli.ColorReset(), cli.ColorBold(), cli.ColorReset(), cli.ColorBold(), cli.ColorReset())
	fmt.Fprintf(tw, "  %s┼%s┼%s\n", strings.Repeat("─", 9), strings.Repeat("─", 7), strings.Repeat("─", 25))
	for _, t := range trials {
		durationStr := fmt.Sprintf("%sN/A%s", cli.ColorRed(), cli.ColorReset())
		if t.Err == nil {
			durationStr = cli.FormatExecutionDuration(t.Duration)
			if t.Duration == 0 {
				durationStr = "< 1µs"
			}
		}
		highlight := ""
		if t.Err == nil && t.Width == profile.WidthFor(t.Solver) {
			highlight = fmt.Sprintf(" %s(Optimal)%s", cli.ColorGreen(), cli.ColorReset())
		}
		fmt.Fprintf(tw, "  %s%-7s%s │ %5d │ %s%s%s%s\n",
			cli.ColorCyan(), t.Solver, cli.ColorReset(), t.Width,
			cli.ColorYellow(), durationStr, cli.ColorReset(), highlight)
	}
	_ = tw.Flush()
}

// printCalibrationOutput prints the width chosen by auto-calibration.
func printCalibrationOutput(cfg config.AppConfig, source string, out io.Writer) {
	fmt.Fprintf(out, "%sAuto-calibration%s (%s): batch width=%s%d%s\n",
		cli.ColorGreen(), cli.ColorReset(), source,
		cli.ColorYellow(), cfg.Width, cli.ColorReset())
}
