package solver

import (
	"fmt"
	"sort"
	"sync"
)

// TierCreator builds a tier for a batch width.
type TierCreator func(width int) (Tier, error)

// SolverFactory creates and caches Solver instances by name.
type SolverFactory interface {
	// Create builds a new Solver by name with the factory's width.
	Create(name string) (Solver, error)

	// Get returns a cached Solver by name, creating it on first use.
	Get(name string) (Solver, error)

	// List returns the sorted registered solver names.
	List() []string

	// Register adds or replaces a solver kind.
	Register(name string, creator TierCreator) error

	// GetAll returns every registered solver.
	GetAll() map[string]Solver
}

// DefaultFactory is the standard SolverFactory. It is safe for concurrent use.
type DefaultFactory struct {
	mu       sync.RWMutex
	width    int
	creators map[string]TierCreator
	solvers  map[string]Solver
}

// NewDefaultFactory returns a factory with the scalar, float and int tiers
// registered. Batch tiers use width.
func NewDefaultFactory(width int) *DefaultFactory {
	f := &DefaultFactory{
		width:    width,
		creators: make(map[string]TierCreator),
		solvers:  make(map[string]Solver),
	}

	_ = f.Register("scalar", func(int) (Tier, error) { return Scalar{}, nil })
	_ = f.Register("float", func(w int) (Tier, error) { return NewFloatBatch(w) })
	_ = f.Register("int", func(w int) (Tier, error) { return NewIntBatch(w) })

	return f
}

// Width returns the batch width used by Create.
func (f *DefaultFactory) Width() int {
	return f.width
}

// Create builds a new Solver by name.
func (f *DefaultFactory) Create(name string) (Solver, error) {
	return f.CreateWidth(name, f.width)
}

// CreateWidth builds a new Solver by name with an explicit batch width.
func (f *DefaultFactory) CreateWidth(name string, width int) (Solver, error) {
	f.mu.RLock()
	creator, exists := f.creators[name]
	f.mu.RUnlock()

	if !exists {
		return nil, &UnknownSolverError{Name: name}
	}
	tier, err := creator(width)
	if err != nil {
		return nil, fmt.Errorf("creating solver %q: %w", name, err)
	}
	return NewSolver(tier), nil
}

// Get returns the cached Solver for name.
func (f *DefaultFactory) Get(name string) (Solver, error) {
	f.mu.RLock()
	if s, exists := f.solvers[name]; exists {
		f.mu.RUnlock()
		return s, nil
	}
	f.mu.RUnlock()

	f.mu.Lock()
	defer f.mu.Unlock()

	if s, exists := f.solvers[name]; exists {
		return s, nil
	}
	creator, exists := f.creators[name]
	if !exists {
		return nil, &UnknownSolverError{Name: name}
	}
	tier, err := creator(f.width)
	if err != nil {
		return nil, fmt.Errorf("creating solver %q: %w", name, err)
	}
	s := NewSolver(tier)
	f.solvers[name] = s
	return s, nil
}

// List returns the sorted registered names.
func (f *DefaultFactory) List() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()

	names := make([]string, 0, len(f.creators))
	for name := range f.creators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Register adds a solver kind and drops any cached instance of it.
func (f *DefaultFactory) Register(name string, creator TierCreator) error {
	if name == "" {
		return fmt.Errorf("solver name cannot be empty")
	}
	if creator == nil {
		return fmt.Errorf("creator function cannot be nil")
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.creators[name] = creator
	delete(f.solvers, name)
	return nil
}

// GetAll returns every registered solver. Kinds that fail to build at the
// factory width are left out.
func (f *DefaultFactory) GetAll() map[string]Solver {
	names := f.List()
	result := make(map[string]Solver, len(names))
	for _, name := range names {
		if s, err := f.Get(name); err == nil {
			result[name] = s
		}
	}
	return result
}

// MustGet is Get that panics on error.
func (f *DefaultFactory) MustGet(name string) Solver {
	s, err := f.Get(name)
	if err != nil {
		panic(fmt.Sprintf("solver: %v", err))
	}
	return s
}

// Has reports whether name is registered.
func (f *DefaultFactory) Has(name string) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	_, exists := f.creators[name]
	return exists
}
