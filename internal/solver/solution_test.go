package solver

import (
	"errors"
	"testing"
)

var referenceSystem = Coefficients{Xa: 94, Xb: 22, X: 8400, Ya: 34, Yb: 67, Y: 5400}

func TestEvaluate(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		a     uint64
		c     Coefficients
		want  Solution
		found bool
	}{
		{"Hit", 80, referenceSystem, Solution{A: 80, B: 40}, true},
		{"RemainderNotDivisible", 79, referenceSystem, Solution{}, false},
		{"QuotientsDiffer", 0, Coefficients{Xa: 1, Xb: 1, X: 4, Ya: 1, Yb: 1, Y: 6}, Solution{}, false},
		{"AtBound", 7, Coefficients{Xa: 3, Xb: 5, X: 21, Ya: 2, Yb: 7, Y: 14}, Solution{A: 7, B: 0}, true},
		{"ZeroCandidate", 0, Coefficients{Xa: 3, Xb: 5, X: 10, Ya: 2, Yb: 7, Y: 14}, Solution{A: 0, B: 2}, true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, found := Evaluate(tt.a, tt.c)
			if found != tt.found || got != tt.want {
				t.Errorf("Evaluate(%d) = %v, %v; want %v, %v", tt.a, got, found, tt.want, tt.found)
			}
		})
	}
}

func TestMaxA(t *testing.T) {
	t.Parallel()
	tests := []struct {
		c    Coefficients
		want uint64
	}{
		{referenceSystem, 89},
		{Coefficients{Xa: 26, Xb: 67, X: 12748, Ya: 66, Yb: 21, Y: 12176}, 184},
		{Coefficients{Xa: 3, Xb: 4, X: 0, Ya: 5, Yb: 6, Y: 0}, 0},
		{Coefficients{Xa: 1, Xb: 1, X: 1 << 63, Ya: 1, Yb: 1, Y: 1 << 62}, 1 << 62},
	}
	for _, tt := range tests {
		if got := tt.c.MaxA(); got != tt.want {
			t.Errorf("MaxA(%v) = %d, want %d", tt.c, got, tt.want)
		}
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		c     Coefficients
		field string
	}{
		{"Valid", referenceSystem, ""},
		{"ZeroXa", Coefficients{Xb: 1, Ya: 1, Yb: 1}, "Xa"},
		{"ZeroXb", Coefficients{Xa: 1, Ya: 1, Yb: 1}, "Xb"},
		{"ZeroYa", Coefficients{Xa: 1, Xb: 1, Yb: 1}, "Ya"},
		{"ZeroYb", Coefficients{Xa: 1, Xb: 1, Ya: 1}, "Yb"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.c.Validate()
			if tt.field == "" {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			var ce *ContractError
			if !errors.As(err, &ce) {
				t.Fatalf("Validate() = %v, want *ContractError", err)
			}
			if ce.Field != tt.field {
				t.Errorf("Field = %q, want %q", ce.Field, tt.field)
			}
		})
	}
}

func TestFloatExact(t *testing.T) {
	t.Parallel()
	if !referenceSystem.FloatExact() {
		t.Error("small system should be float exact")
	}
	large := Coefficients{Xa: 1, Xb: 1, X: FloatExactLimit, Ya: 1, Yb: 1, Y: 1}
	if large.FloatExact() {
		t.Error("X at FloatExactLimit should not be float exact")
	}
}

func TestSolutionString(t *testing.T) {
	t.Parallel()
	if got, want := (Solution{A: 80, B: 40}).String(), "A=80 B=40"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
