// Package solver finds the non-negative integer pair (A, B) satisfying
//
//	Xa*A + Xb*B = X
//	Ya*A + Yb*B = Y
//
// by scanning candidate values of A from 0 up to the largest value that keeps
// both right-hand sides non-negative. Three interchangeable tiers share that
// contract: a scalar reference, a floating-point batch tier and an exact
// integer batch tier. Batch tiers test a whole group of candidates per step
// and confirm every hit through the scalar evaluator before returning it.
package solver

import "fmt"

// FloatExactLimit bounds the magnitudes for which float64 lanes represent
// every remainder, quotient and product exactly.
const FloatExactLimit = 1 << 53

// Coefficients are the six inputs of one two-equation system.
type Coefficients struct {
	Xa, Xb, X uint64
	Ya, Yb, Y uint64
}

// Solution is a pair (A, B) satisfying both equations.
type Solution struct {
	A uint64 `json:"a"`
	B uint64 `json:"b"`
}

// String formats the solution as "A=<a> B=<b>".
func (s Solution) String() string {
	return fmt.Sprintf("A=%d B=%d", s.A, s.B)
}

// Stats describes how much of the candidate space a search consumed.
type Stats struct {
	// Candidates is the number of A values whose verdict was computed.
	Candidates uint64 `json:"candidates"`
	// Batches is the number of full batches evaluated.
	Batches uint64 `json:"batches"`
	// ScalarChecks counts scalar evaluations, both remainder candidates and
	// re-confirmations of batch hits.
	ScalarChecks uint64 `json:"scalar_checks"`
	// Rejected counts batch hits that the scalar evaluator turned down.
	Rejected uint64 `json:"rejected"`
}

// Validate reports the first divisor coefficient that is zero.
func (c Coefficients) Validate() error {
	switch {
	case c.Xa == 0:
		return &ContractError{Field: "Xa"}
	case c.Xb == 0:
		return &ContractError{Field: "Xb"}
	case c.Ya == 0:
		return &ContractError{Field: "Ya"}
	case c.Yb == 0:
		return &ContractError{Field: "Yb"}
	}
	return nil
}

// mustValidate panics with a *ContractError when Validate fails.
func (c Coefficients) mustValidate() {
	if err := c.Validate(); err != nil {
		panic(err)
	}
}

// MaxA returns min(X/Xa, Y/Ya), the largest A that keeps both remainders
// non-negative. Xa and Ya must be non-zero.
func (c Coefficients) MaxA() uint64 {
	return min(c.X/c.Xa, c.Y/c.Ya)
}

// FloatExact reports whether the float tier evaluates this system without
// rounding. Every value it computes is bounded by X or Y.
func (c Coefficients) FloatExact() bool {
	return c.X < FloatExactLimit && c.Y < FloatExactLimit
}

// String formats the coefficients as the two equations.
func (c Coefficients) String() string {
	return fmt.Sprintf("%d*A + %d*B = %d; %d*A + %d*B = %d", c.Xa, c.Xb, c.X, c.Ya, c.Yb, c.Y)
}

// Evaluate returns the solution extending candidate a, if one exists.
// The caller guarantees a <= c.MaxA().
func Evaluate(a uint64, c Coefficients) (Solution, bool) {
	rx := c.X - c.Xa*a
	ry := c.Y - c.Ya*a
	if rx%c.Xb != 0 || ry%c.Yb != 0 {
		return Solution{}, false
	}
	bx, by := rx/c.Xb, ry/c.Yb
	if bx != by {
		return Solution{}, false
	}
	return Solution{A: a, B: bx}, true
}

// Scalar is the reference tier: one candidate per step.
type Scalar struct{}

// Name returns "scalar".
func (Scalar) Name() string { return "scalar" }

// Width is always 1.
func (Scalar) Width() int { return 1 }

// Solve scans A from 0 to MaxA and returns the first solution.
func (s Scalar) Solve(c Coefficients) (Solution, bool) {
	sol, ok, _ := s.SolveStats(c)
	return sol, ok
}

// SolveStats is Solve with search statistics.
func (Scalar) SolveStats(c Coefficients) (Solution, bool, Stats) {
	c.mustValidate()
	var st Stats
	sol, ok := scanScalar(0, c.MaxA(), c, &st)
	return sol, ok, st
}

// SolveScalar runs the reference search.
func SolveScalar(c Coefficients) (Solution, bool) {
	return Scalar{}.Solve(c)
}

// scanScalar evaluates every candidate in [from, to], including to.
func scanScalar(from, to uint64, c Coefficients, st *Stats) (Solution, bool) {
	if from > to {
		return Solution{}, false
	}
	for a := from; ; a++ {
		st.Candidates++
		st.ScalarChecks++
		if sol, ok := Evaluate(a, c); ok {
			return sol, true
		}
		if a == to {
			return Solution{}, false
		}
	}
}
