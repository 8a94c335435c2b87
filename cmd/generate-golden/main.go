// Command generate-golden writes internal/solver/testdata/solver_golden.json.
// Verdicts come from a math/big oracle that shares no code with the solvers.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"math/big"
	"os"
	"path/filepath"
)

// GoldenData is one entry of the golden file.
type GoldenData struct {
	Name   string `json:"name"`
	Xa     uint64 `json:"xa"`
	Xb     uint64 `json:"xb"`
	X      uint64 `json:"x"`
	Ya     uint64 `json:"ya"`
	Yb     uint64 `json:"yb"`
	Y      uint64 `json:"y"`
	Found  bool   `json:"found"`
	A      uint64 `json:"a,omitempty"`
	B      uint64 `json:"b,omitempty"`
	Stress bool   `json:"stress,omitempty"`
}

type system struct {
	name                 string
	xa, xb, x, ya, yb, y uint64
	stress               bool
}

var systems = []system{
	{"reference_a80_b40", 94, 22, 8400, 34, 67, 5400, false},
	{"reference_none_small", 26, 67, 12748, 66, 21, 12176, false},
	{"reference_a38_b86", 17, 84, 7870, 86, 37, 6450, false},
	{"reference_none_wide", 69, 27, 18641, 23, 71, 10279, false},
	{"solution_at_max_a", 3, 5, 21, 2, 7, 14, false},
	{"unit_coefficients", 1, 1, 7, 1, 2, 7, false},
	{"max_a_not_multiple_of_width", 5, 3, 36, 2, 9, 30, false},
	{"no_solution_near_bound", 3, 5, 22, 2, 7, 14, false},
	{"no_solution_wide_range", 7, 3, 100, 4, 5, 81, false},
	{"zero_rhs", 3, 4, 0, 5, 6, 0, false},
	{"b_zero_at_a_zero", 3, 5, 10, 2, 7, 14, false},
	{"float_rounding_false_positive", 39, 66, 2647, 51, 54, 2223, false},
	{"beyond_float_precision", 1<<56 + 1, 1<<56 + 3, 3*(1<<56+1) + 5*(1<<56+3), 7, 11, 76, false},
	{"stress_1e13", 26, 67, 10_000_000_012_748, 66, 21, 10_000_000_012_176, true},
}

// bruteForceLimit bounds the fallback scan for singular systems.
const bruteForceLimit = 10_000_000

func main() {
	outputDir := flag.String("out", "internal/solver/testdata", "Output directory for the golden file")
	flag.Parse()

	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output directory: %v\n", err)
		os.Exit(1)
	}

	data := make([]GoldenData, 0, len(systems))
	fmt.Println("Generating golden data...")
	for _, s := range systems {
		a, b, found, err := oracle(s)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error solving %s: %v\n", s.name, err)
			os.Exit(1)
		}
		data = append(data, GoldenData{
			Name: s.name,
			Xa:   s.xa, Xb: s.xb, X: s.x,
			Ya: s.ya, Yb: s.yb, Y: s.y,
			Found: found, A: a, B: b,
			Stress: s.stress,
		})
		fmt.Printf("Generated %s (found=%v)\n", s.name, found)
	}

	filename := filepath.Join(*outputDir, "solver_golden.json")
	file, err := os.Create(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output file: %v\n", err)
		os.Exit(1)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding JSON: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Successfully generated golden file at %s\n", filename)
}

// oracle returns the non-negative integer solution with the smallest A.
// A regular system has at most one solution, found by Cramer's rule. A
// singular one is scanned exhaustively.
func oracle(s system) (a, b uint64, found bool, err error) {
	xa, xb, x := bi(s.xa), bi(s.xb), bi(s.x)
	ya, yb, y := bi(s.ya), bi(s.yb), bi(s.y)

	det := new(big.Int).Sub(mul(xa, yb), mul(xb, ya))
	if det.Sign() != 0 {
		numA := new(big.Int).Sub(mul(x, yb), mul(xb, y))
		numB := new(big.Int).Sub(mul(xa, y), mul(x, ya))
		qa, ra := new(big.Int).QuoRem(numA, det, new(big.Int))
		qb, rb := new(big.Int).QuoRem(numB, det, new(big.Int))
		if ra.Sign() != 0 || rb.Sign() != 0 || qa.Sign() < 0 || qb.Sign() < 0 {
			return 0, 0, false, nil
		}
		return qa.Uint64(), qb.Uint64(), true, nil
	}

	maxA := new(big.Int).Quo(x, xa)
	if alt := new(big.Int).Quo(y, ya); alt.Cmp(maxA) < 0 {
		maxA = alt
	}
	if maxA.Cmp(bi(bruteForceLimit)) > 0 {
		return 0, 0, false, fmt.Errorf("singular system with %s candidates", maxA)
	}
	for i := uint64(0); i <= maxA.Uint64(); i++ {
		ai := bi(i)
		rx := new(big.Int).Sub(x, mul(xa, ai))
		ry := new(big.Int).Sub(y, mul(ya, ai))
		bx, mx := new(big.Int).QuoRem(rx, xb, new(big.Int))
		by, my := new(big.Int).QuoRem(ry, yb, new(big.Int))
		if mx.Sign() == 0 && my.Sign() == 0 && bx.Cmp(by) == 0 {
			return i, bx.Uint64(), true, nil
		}
	}
	return 0, 0, false, nil
}

func bi(v uint64) *big.Int { return new(big.Int).SetUint64(v) }

func mul(a, b *big.Int) *big.Int { return new(big.Int).Mul(a, b) }
