package solver

import (
	"fmt"

	"github.com/agbru/vecsolve/internal/lanes"
)

// IntBatch evaluates batches in uint64 lanes. It has no precision ceiling:
// its results match Scalar for every valid system.
type IntBatch struct {
	width int
}

// NewIntBatch returns an integer tier with the given batch width.
func NewIntBatch(width int) (*IntBatch, error) {
	if !lanes.IsValidWidth(width) {
		return nil, fmt.Errorf("%w: %d", ErrInvalidWidth, width)
	}
	return &IntBatch{width: width}, nil
}

// Name returns "int".
func (s *IntBatch) Name() string { return "int" }

// Width returns the batch width.
func (s *IntBatch) Width() int { return s.width }

// Solve returns the solution with the smallest A, if any.
func (s *IntBatch) Solve(c Coefficients) (Solution, bool) {
	sol, ok, _ := s.SolveStats(c)
	return sol, ok
}

// SolveStats is Solve with search statistics. A batch hit that fails
// confirmation panics with *InvariantError.
func (s *IntBatch) SolveStats(c Coefficients) (Solution, bool, Stats) {
	return batchSearch[uint64](s.Name(), s.width, true, c)
}
