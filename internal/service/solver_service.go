// Package service validates solve requests and runs them against the solver
// registry. It is the layer the HTTP server calls.
package service

import (
	"context"
	"errors"
	"fmt"

	apperrors "github.com/agbru/vecsolve/internal/errors"
	"github.com/agbru/vecsolve/internal/lanes"
	"github.com/agbru/vecsolve/internal/solver"
)

var (
	// ErrMaxCandidatesExceeded is returned when the candidate range of a
	// request exceeds the configured limit.
	ErrMaxCandidatesExceeded = errors.New("maximum candidate range exceeded")
)

// Request is one solve request.
type Request struct {
	// Solver is the registry name; empty selects DefaultSolver.
	Solver string
	// Width is the batch width; 0 keeps the registry width.
	Width int
	// Coefficients is the system to solve.
	Coefficients solver.Coefficients
}

// DefaultSolver is used when a request names no solver.
const DefaultSolver = "int"

// Factory is the part of the registry the service needs.
// *solver.DefaultFactory implements it.
type Factory interface {
	Get(name string) (solver.Solver, error)
	CreateWidth(name string, width int) (solver.Solver, error)
	List() []string
}

// Service defines the interface for solve services.
type Service interface {
	// Solve validates req and runs it.
	Solve(ctx context.Context, req Request) (solver.Result, error)
	// Solvers returns the available solver names.
	Solvers() []string
}

// SolverService is the standard Service.
type SolverService struct {
	factory       Factory
	maxCandidates uint64
}

var _ Service = (*SolverService)(nil)

// NewSolverService creates a new SolverService.
//
// Parameters:
//   - factory: The registry to retrieve solvers from.
//   - maxCandidates: The largest MaxA accepted (0 for no limit).
func NewSolverService(factory Factory, maxCandidates uint64) *SolverService {
	return &SolverService{factory: factory, maxCandidates: maxCandidates}
}

// Solvers returns the registered solver names.
func (s *SolverService) Solvers() []string {
	return s.factory.List()
}

// Solve validates req, picks the solver and runs it under ctx.
//
// Returns:
//   - solver.Result: The search outcome.
//   - error: A *solver.ContractError, *solver.UnknownSolverError,
//     solver.ErrInvalidWidth, ErrMaxCandidatesExceeded, a context error, or a
//     solver failure.
func (s *SolverService) Solve(ctx context.Context, req Request) (solver.Result, error) {
	c := req.Coefficients
	if err := c.Validate(); err != nil {
		return solver.Result{}, err
	}
	if s.maxCandidates > 0 && c.MaxA() > s.maxCandidates {
		limit := fmt.Sprintf("%d > %d", c.MaxA(), s.maxCandidates)
		return solver.Result{}, fmt.Errorf("%w: %w", ErrMaxCandidatesExceeded,
			apperrors.NewValidationError("max_a", limit, c.MaxA()))
	}

	name := req.Solver
	if name == "" {
		name = DefaultSolver
	}

	var slv solver.Solver
	var err error
	switch {
	case req.Width == 0:
		slv, err = s.factory.Get(name)
	case !lanes.IsValidWidth(req.Width):
		return solver.Result{}, fmt.Errorf("%w: %d", solver.ErrInvalidWidth, req.Width)
	default:
		slv, err = s.factory.CreateWidth(name, req.Width)
	}
	if err != nil {
		return solver.Result{}, err
	}

	return solver.SolveContext(ctx, slv, c)
}
