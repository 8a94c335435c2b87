package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/agbru/vecsolve/internal/solver"
)

// Expectation is a parsed -expect value.
type Expectation struct {
	// Set is false when no expectation was given.
	Set bool
	// Found is the expected verdict; Solution is meaningful only when Found.
	Found    bool
	Solution solver.Solution
}

// ParseExpectation parses "" (no expectation), "none", or "A,B".
func ParseExpectation(s string) (Expectation, error) {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "":
		return Expectation{}, nil
	case "none":
		return Expectation{Set: true}, nil
	}

	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return Expectation{}, fmt.Errorf("want 'A,B' or 'none', got %q", s)
	}
	a, err := strconv.ParseUint(strings.TrimSpace(parts[0]), 10, 64)
	if err != nil {
		return Expectation{}, fmt.Errorf("invalid A %q", parts[0])
	}
	b, err := strconv.ParseUint(strings.TrimSpace(parts[1]), 10, 64)
	if err != nil {
		return Expectation{}, fmt.Errorf("invalid B %q", parts[1])
	}
	return Expectation{Set: true, Found: true, Solution: solver.Solution{A: a, B: b}}, nil
}

// Matches reports whether a verdict satisfies the expectation. An unset
// expectation matches anything.
func (e Expectation) Matches(sol solver.Solution, found bool) bool {
	if !e.Set {
		return true
	}
	if found != e.Found {
		return false
	}
	return !found || sol == e.Solution
}

// String formats the expectation as accepted by ParseExpectation.
func (e Expectation) String() string {
	switch {
	case !e.Set:
		return ""
	case !e.Found:
		return "none"
	default:
		return fmt.Sprintf("%d,%d", e.Solution.A, e.Solution.B)
	}
}
