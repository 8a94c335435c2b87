package app

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/agbru/vecsolve/internal/bench"
	"github.com/agbru/vecsolve/internal/calibration"
	"github.com/agbru/vecsolve/internal/cli"
	"github.com/agbru/vecsolve/internal/config"
	apperrors "github.com/agbru/vecsolve/internal/errors"
	"github.com/agbru/vecsolve/internal/lanes"
	"github.com/agbru/vecsolve/internal/logging"
	"github.com/agbru/vecsolve/internal/orchestration"
	"github.com/agbru/vecsolve/internal/server"
	"github.com/agbru/vecsolve/internal/solver"
	"github.com/agbru/vecsolve/internal/ui"
)

// Registry is the solver registry used by the application.
// *solver.DefaultFactory and *solver.TestFactory implement it.
type Registry interface {
	solver.SolverFactory
	CreateWidth(name string, width int) (solver.Solver, error)
}

// Application is one configured run of vecsolve.
type Application struct {
	// Config holds the parsed application configuration.
	Config config.AppConfig
	// Factory provides the solvers at the configured width.
	Factory Registry
	// ErrWriter is the writer for error output (typically os.Stderr).
	ErrWriter io.Writer
}

// New parses args (args[0] is the program name) and builds the solver
// registry. A cached calibration profile picks the width when none is given,
// except in bench mode where an unset width means a sweep.
//
// Returns:
//   - *Application: A new application instance.
//   - error: flag.ErrHelp for -h, or a parsing or validation error.
func New(args []string, errWriter io.Writer) (*Application, error) {
	available := solver.NewDefaultFactory(lanes.NativeWidth()).List()

	programName := "vecsolve"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter, available)
	if err != nil {
		return nil, err
	}
	level := cfg.LogLevel
	if cfg.ServerMode && level == config.DefaultLogLevel {
		// Request logs are emitted at info level.
		level = "info"
	}
	if err := logging.SetGlobalLevel(level); err != nil {
		return nil, err
	}

	if !cfg.Bench {
		if withProfile, loaded := calibration.LoadCachedCalibration(cfg, cfg.CalibrationProfile); loaded {
			cfg = withProfile
		}
	}

	return &Application{
		Config:    cfg,
		Factory:   solver.NewDefaultFactory(cfg.EffectiveWidth()),
		ErrWriter: errWriter,
	}, nil
}

// Run dispatches to the configured mode and returns the exit code.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	ui.InitTheme(a.Config.NoColor)

	switch {
	case a.Config.ServerMode:
		return a.runServer()
	case a.Config.Calibrate:
		return calibration.RunCalibration(ctx, out, a.Factory, a.Config.CalibrationProfile)
	}

	a.runAutoCalibrationIfEnabled(ctx, out)

	switch {
	case a.Config.Stress:
		return a.runStress(ctx, out)
	case a.Config.Bench:
		return a.runBench(ctx, out)
	}
	return a.runSolve(ctx, out)
}

func (a *Application) runServer() int {
	srv := server.NewServer(a.Factory, a.Config)
	if err := srv.Start(); err != nil {
		fmt.Fprintf(a.ErrWriter, "Server error: %v\n", err)
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}

// runAutoCalibrationIfEnabled picks a width and rebuilds the registry with
// it. An explicit width is kept.
func (a *Application) runAutoCalibrationIfEnabled(ctx context.Context, out io.Writer) {
	if !a.Config.AutoCalibrate {
		return
	}
	if updated, ok := calibration.AutoCalibrate(ctx, a.Config, out, a.Factory); ok {
		a.Config = updated
		a.Factory = solver.NewDefaultFactory(updated.Width)
	}
}

func (a *Application) runStress(ctx context.Context, out io.Writer) int {
	ctx, cancel := SetupLifecycle(ctx, a.Config.Timeout)
	defer cancel.Cleanup()
	return bench.Stress(ctx, a.Factory, a.Config.Width, out)
}

func (a *Application) runBench(ctx context.Context, out io.Writer) int {
	ctx, cancel := SetupLifecycle(ctx, a.Config.Timeout)
	defer cancel.Cleanup()

	names := []string{a.Config.Algo}
	if a.Config.Algo == "all" {
		names = a.Factory.List()
	}
	opts := bench.Options{
		Iterations: a.Config.Iterations,
		Warmup:     a.Config.Warmup,
		Width:      a.Config.Width,
	}

	quiet := a.Config.Quiet || a.Config.JSONOutput
	activity := cli.StartActivity(out, fmt.Sprintf("Benchmarking %d step(s)...", len(bench.Plan(names, opts))), quiet)
	ms, err := bench.Run(ctx, a.Factory, names, a.Config.Coefficients(), opts)
	elapsed := activity.Stop()
	if err != nil {
		return apperrors.HandleSolveError(err, elapsed, out, cli.CLIColorProvider{})
	}

	if a.Config.JSONOutput {
		if err := cli.WriteJSON(out, ms); err != nil {
			return apperrors.ExitErrorGeneric
		}
		return apperrors.ExitSuccess
	}
	bench.PrintTable(out, ms)
	return apperrors.ExitSuccess
}

// runSolve runs the selected solvers, cross-checks them and applies the
// expectation.
func (a *Application) runSolve(ctx context.Context, out io.Writer) int {
	ctx, cancel := SetupLifecycle(ctx, a.Config.Timeout)
	defer cancel.Cleanup()

	solvers := cli.GetSolversToRun(a.Config, a.Factory)
	if len(solvers) == 0 {
		fmt.Fprintf(a.ErrWriter, "No solver available for '%s'\n", a.Config.Algo)
		return apperrors.ExitErrorConfig
	}

	quiet := a.Config.JSONOutput || a.Config.Quiet
	if !quiet {
		cli.PrintExecutionConfig(a.Config, out)
		cli.PrintExecutionMode(solvers, out)
	}

	progressOut := out
	if quiet {
		progressOut = io.Discard
	}
	c := a.Config.Coefficients()
	results := orchestration.ExecuteSolves(ctx, solvers, c, progressOut)

	var code int
	switch {
	case a.Config.JSONOutput:
		code = orchestration.AnalyzeComparisonResults(results, a.Config, io.Discard)
		if err := printJSONResults(results, out); err != nil {
			return apperrors.ExitErrorGeneric
		}
	case a.Config.Quiet:
		var report bytes.Buffer
		code = orchestration.AnalyzeComparisonResults(results, a.Config, &report)
		if code != apperrors.ExitSuccess {
			_, _ = io.Copy(a.ErrWriter, &report)
		}
	default:
		code = orchestration.AnalyzeComparisonResults(results, a.Config, out)
	}
	if code != apperrors.ExitSuccess {
		return code
	}

	ref := orchestration.SelectReference(results, c)
	if a.Config.Quiet && !a.Config.JSONOutput {
		cli.DisplayResult(out, ref.Result, cli.OutputConfig{Quiet: true})
	}
	return a.checkExpectation(ref.Result, out)
}

// checkExpectation compares the verdict with -expect.
func (a *Application) checkExpectation(res solver.Result, out io.Writer) int {
	exp, err := config.ParseExpectation(a.Config.Expect)
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "Configuration error: -expect: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	if exp.Matches(res.Solution, res.Found) {
		return apperrors.ExitSuccess
	}
	w := out
	if a.Config.JSONOutput || a.Config.Quiet {
		w = a.ErrWriter
	}
	return apperrors.HandleSolveError(apperrors.ExpectationError{
		Want: cli.FormatVerdict(exp.Solution, exp.Found),
		Got:  cli.FormatVerdict(res.Solution, res.Found),
	}, 0, w, cli.CLIColorProvider{})
}

// printJSONResults writes one cli.ResultJSON per solver.
func printJSONResults(results []orchestration.SolveResult, out io.Writer) error {
	output := make([]cli.ResultJSON, len(results))
	for i, res := range results {
		r := res.Result
		if r.Solver == "" {
			r.Solver = res.Name
		}
		output[i] = cli.NewResultJSON(r, res.Err)
	}
	return cli.WriteJSON(out, output)
}

// IsHelpError reports whether err comes from -h or --help.
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
