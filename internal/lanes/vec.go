// Package lanes provides fixed-width lane vectors for batch evaluation.
//
// A Vec is a group of independent lanes that every operation advances in
// lockstep, the shape a SIMD register would give the same computation. Go
// has no portable vector types, so each operation is a tight loop over a
// slice whose length is fixed when the vector is created. Operations write
// into the receiver, so a search loop can reuse its vectors across batches
// without allocating.
package lanes

import "fmt"

// Number is the set of lane element types supported by Vec.
type Number interface {
	~uint64 | ~float64
}

// Vec is a fixed-width vector of lanes.
type Vec[T Number] []T

// New returns a zeroed vector of the given width.
func New[T Number](width int) Vec[T] {
	return make(Vec[T], width)
}

// Splat returns a vector of the given width with every lane set to x.
func Splat[T Number](width int, x T) Vec[T] {
	v := make(Vec[T], width)
	v.Fill(x)
	return v
}

// Width returns the number of lanes.
func (v Vec[T]) Width() int {
	return len(v)
}

// Fill sets every lane to x.
func (v Vec[T]) Fill(x T) {
	for i := range v {
		v[i] = x
	}
}

// Iota sets lane i to first+i.
func (v Vec[T]) Iota(first T) {
	for i := range v {
		v[i] = first + T(i)
	}
}

// Add sets v = a + b lane-wise.
func (v Vec[T]) Add(a, b Vec[T]) {
	mustMatch(len(v), len(a), len(b))
	for i := range v {
		v[i] = a[i] + b[i]
	}
}

// Sub sets v = a - b lane-wise.
func (v Vec[T]) Sub(a, b Vec[T]) {
	mustMatch(len(v), len(a), len(b))
	for i := range v {
		v[i] = a[i] - b[i]
	}
}

// Mul sets v = a * b lane-wise.
func (v Vec[T]) Mul(a, b Vec[T]) {
	mustMatch(len(v), len(a), len(b))
	for i := range v {
		v[i] = a[i] * b[i]
	}
}

// Div sets v = a / b lane-wise. Integer lanes truncate; a zero divisor in an
// integer lane panics like the scalar operator does.
func (v Vec[T]) Div(a, b Vec[T]) {
	mustMatch(len(v), len(a), len(b))
	for i := range v {
		v[i] = a[i] / b[i]
	}
}

// Equal compares two vectors lane-wise into m.
func Equal[T Number](a, b Vec[T], m Mask) {
	mustMatch(len(m), len(a), len(b))
	for i := range m {
		m[i] = a[i] == b[i]
	}
}

func mustMatch(dst, a, b int) {
	if dst != a || dst != b {
		panic(fmt.Sprintf("lanes: width mismatch (%d, %d, %d)", dst, a, b))
	}
}
