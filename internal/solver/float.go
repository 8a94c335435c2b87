package solver

import (
	"fmt"

	"github.com/agbru/vecsolve/internal/lanes"
)

// FloatBatch evaluates batches in float64 lanes. Below FloatExactLimit it
// returns exactly what Scalar returns. Above it rounding can hide a solution;
// false verdicts never escape because every hit is confirmed by Evaluate.
type FloatBatch struct {
	width int
}

// NewFloatBatch returns a float tier with the given batch width.
func NewFloatBatch(width int) (*FloatBatch, error) {
	if !lanes.IsValidWidth(width) {
		return nil, fmt.Errorf("%w: %d", ErrInvalidWidth, width)
	}
	return &FloatBatch{width: width}, nil
}

// Name returns "float".
func (s *FloatBatch) Name() string { return "float" }

// Width returns the batch width.
func (s *FloatBatch) Width() int { return s.width }

// Solve returns the solution with the smallest A, if any.
func (s *FloatBatch) Solve(c Coefficients) (Solution, bool) {
	sol, ok, _ := s.SolveStats(c)
	return sol, ok
}

// SolveStats is Solve with search statistics. Stats.Rejected counts lanes
// where the float divisibility test accepted a non-integral quotient.
func (s *FloatBatch) SolveStats(c Coefficients) (Solution, bool, Stats) {
	return batchSearch[float64](s.Name(), s.width, false, c)
}
