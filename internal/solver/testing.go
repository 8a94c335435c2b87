package solver

import (
	"context"
	"sort"
)

// MockSolver is a Solver with canned results for tests of other packages.
type MockSolver struct {
	SolverName string
	Result     Result
	Err        error
	Fn         func(ctx context.Context, c Coefficients) (Result, error)
}

// Name returns SolverName, or "mock".
func (m *MockSolver) Name() string {
	if m.SolverName == "" {
		return "mock"
	}
	return m.SolverName
}

// Width returns the width recorded in Result.
func (m *MockSolver) Width() int {
	return m.Result.Width
}

// Solve returns Fn's result when set, otherwise Result and Err.
func (m *MockSolver) Solve(ctx context.Context, c Coefficients) (Result, error) {
	if m.Fn != nil {
		return m.Fn(ctx, c)
	}
	res := m.Result
	if res.Solver == "" {
		res.Solver = m.Name()
	}
	return res, m.Err
}

// TestFactory is a SolverFactory serving fixed solvers.
type TestFactory struct {
	solvers map[string]Solver
}

// NewTestFactory returns a factory pre-populated with solvers.
func NewTestFactory(solvers map[string]Solver) *TestFactory {
	if solvers == nil {
		solvers = make(map[string]Solver)
	}
	return &TestFactory{solvers: solvers}
}

// Create returns the solver by name.
func (f *TestFactory) Create(name string) (Solver, error) {
	return f.Get(name)
}

// Get returns the solver by name.
func (f *TestFactory) Get(name string) (Solver, error) {
	s, ok := f.solvers[name]
	if !ok {
		return nil, &UnknownSolverError{Name: name}
	}
	return s, nil
}

// List returns the sorted solver names.
func (f *TestFactory) List() []string {
	names := make([]string, 0, len(f.solvers))
	for name := range f.solvers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Register is a no-op; solvers are fixed at construction.
func (f *TestFactory) Register(name string, creator TierCreator) error {
	return nil
}

// GetAll returns a copy of the solver map.
func (f *TestFactory) GetAll() map[string]Solver {
	result := make(map[string]Solver, len(f.solvers))
	for k, v := range f.solvers {
		result[k] = v
	}
	return result
}

// CreateWidth returns the solver by name; the width is ignored.
func (f *TestFactory) CreateWidth(name string, width int) (Solver, error) {
	return f.Get(name)
}
