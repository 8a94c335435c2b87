package solver

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var (
	solvesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vecsolve_solves_total",
			Help: "The total number of solve calls by solver and outcome",
		},
		[]string{"solver", "outcome"},
	)
	solveDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "vecsolve_solve_duration_seconds",
			Help:    "The duration of solve calls in seconds",
			Buckets: prometheus.ExponentialBuckets(1e-6, 4, 14),
		},
		[]string{"solver"},
	)
)

// Tier is a search strategy over the candidate range of A. Scalar,
// FloatBatch and IntBatch implement it.
type Tier interface {
	// Name returns the registry name of the tier.
	Name() string
	// Width returns the batch width, 1 for the scalar tier.
	Width() int
	// SolveStats returns the solution with the smallest A, if any, and the
	// amount of work done. It panics with *ContractError on zero divisors.
	SolveStats(c Coefficients) (Solution, bool, Stats)
}

// Result is the outcome of one Solver call.
type Result struct {
	Solution Solution
	Found    bool
	Stats    Stats
	Solver   string
	Width    int
	Duration time.Duration
}

// Solver is the interface used by the application layers. It adapts a Tier
// to return errors instead of panicking and instruments every call.
type Solver interface {
	// Name returns the name of the wrapped tier.
	Name() string
	// Width returns the batch width of the wrapped tier.
	Width() int
	// Solve runs the search. Invalid coefficients yield a *ContractError and
	// an integer-tier invariant failure yields an *InvariantError. The search
	// itself does not block, so ctx is only checked before it starts.
	Solve(ctx context.Context, c Coefficients) (Result, error)
}

// TierSolver decorates a Tier with validation, metrics, tracing and logging.
type TierSolver struct {
	tier Tier
}

// NewSolver wraps tier. It panics if tier is nil.
func NewSolver(tier Tier) Solver {
	if tier == nil {
		panic("solver: the Tier implementation cannot be nil")
	}
	return &TierSolver{tier: tier}
}

// Name delegates to the wrapped tier.
func (s *TierSolver) Name() string {
	return s.tier.Name()
}

// Width delegates to the wrapped tier.
func (s *TierSolver) Width() int {
	return s.tier.Width()
}

// Solve validates c, runs the tier and records the outcome.
func (s *TierSolver) Solve(ctx context.Context, c Coefficients) (res Result, err error) {
	name := s.tier.Name()
	_, span := otel.Tracer("solver").Start(ctx, "solver.Solve",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("solver.name", name),
			attribute.Int("solver.width", s.tier.Width()),
			attribute.String("solver.coefficients", c.String()),
		),
	)
	defer span.End()

	start := time.Now()
	defer func() {
		res.Duration = time.Since(start)
		outcome := "none"
		switch {
		case err != nil:
			outcome = "error"
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		case res.Found:
			outcome = "found"
		}
		solvesTotal.WithLabelValues(name, outcome).Inc()
		solveDuration.WithLabelValues(name).Observe(res.Duration.Seconds())

		log.Debug().
			Str("solver", name).
			Int("width", s.tier.Width()).
			Str("outcome", outcome).
			Uint64("candidates", res.Stats.Candidates).
			Dur("duration", res.Duration).
			Msg("solve completed")
	}()

	res = Result{Solver: name, Width: s.tier.Width()}
	if err = ctx.Err(); err != nil {
		return res, err
	}
	if err = c.Validate(); err != nil {
		return res, err
	}

	res.Solution, res.Found, res.Stats, err = s.run(c)
	return res, err
}

// run converts an *InvariantError panic into an error. Other panics propagate.
func (s *TierSolver) run(c Coefficients) (sol Solution, found bool, st Stats, err error) {
	defer func() {
		if r := recover(); r != nil {
			ie, ok := r.(*InvariantError)
			if !ok {
				panic(r)
			}
			err = fmt.Errorf("solver %s: %w", s.tier.Name(), ie)
		}
	}()
	sol, found, st = s.tier.SolveStats(c)
	return sol, found, st, nil
}

// SolveContext runs s.Solve in the background and returns early with
// ctx.Err() when ctx is done first. The abandoned search runs to completion
// and its result is discarded.
func SolveContext(ctx context.Context, s Solver, c Coefficients) (Result, error) {
	type outcome struct {
		res Result
		err error
	}
	done := make(chan outcome, 1)
	go func() {
		res, err := s.Solve(ctx, c)
		done <- outcome{res, err}
	}()

	select {
	case o := <-done:
		return o.res, o.err
	case <-ctx.Done():
		return Result{Solver: s.Name(), Width: s.Width()}, ctx.Err()
	}
}
