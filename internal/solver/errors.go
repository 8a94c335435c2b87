package solver

import (
	"errors"
	"fmt"
)

// ErrInvalidWidth is returned when a batch width is not a power of two
// within the supported range.
var ErrInvalidWidth = errors.New("invalid batch width")

// ContractError reports a zero divisor coefficient. Tiers panic with it;
// the Solver wrapper returns it as an error.
type ContractError struct {
	Field string
}

func (e *ContractError) Error() string {
	return fmt.Sprintf("coefficient %s must be non-zero", e.Field)
}

// InvariantError reports a batch hit that the scalar evaluator rejected in a
// tier whose lanes are exact. It indicates a defect, never a missing solution.
type InvariantError struct {
	Tier  string
	Width int
	A     uint64
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("%s tier (width %d) reported candidate A=%d that fails scalar confirmation", e.Tier, e.Width, e.A)
}

// UnknownSolverError is returned when a solver name is not registered.
type UnknownSolverError struct {
	Name string
}

func (e *UnknownSolverError) Error() string {
	return "unknown solver: " + e.Name
}
