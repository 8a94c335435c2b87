package solver

import (
	"fmt"

	"github.com/agbru/vecsolve/internal/lanes"
)

// batchEvaluator tests a batch of candidates against one system. The
// coefficient vectors are broadcast once per search; the scratch vectors are
// reused by every batch.
type batchEvaluator[T lanes.Number] struct {
	xa, xb, x lanes.Vec[T]
	ya, yb, y lanes.Vec[T]

	rx, ry, bx, by, back lanes.Vec[T]
	divX, divY, sameB    lanes.Mask
	verdict              lanes.Mask
}

func newBatchEvaluator[T lanes.Number](width int, c Coefficients) *batchEvaluator[T] {
	return &batchEvaluator[T]{
		xa:      lanes.Splat(width, T(c.Xa)),
		xb:      lanes.Splat(width, T(c.Xb)),
		x:       lanes.Splat(width, T(c.X)),
		ya:      lanes.Splat(width, T(c.Ya)),
		yb:      lanes.Splat(width, T(c.Yb)),
		y:       lanes.Splat(width, T(c.Y)),
		rx:      lanes.New[T](width),
		ry:      lanes.New[T](width),
		bx:      lanes.New[T](width),
		by:      lanes.New[T](width),
		back:    lanes.New[T](width),
		divX:    lanes.NewMask(width),
		divY:    lanes.NewMask(width),
		sameB:   lanes.NewMask(width),
		verdict: lanes.NewMask(width),
	}
}

// evaluate computes one verdict per candidate lane. Divisibility is tested by
// dividing and multiplying back, which is exact for integer lanes and for
// float lanes below FloatExactLimit. The returned mask is owned by e.
func (e *batchEvaluator[T]) evaluate(a lanes.Vec[T]) lanes.Mask {
	e.rx.Mul(e.xa, a)
	e.rx.Sub(e.x, e.rx)
	e.bx.Div(e.rx, e.xb)
	e.back.Mul(e.bx, e.xb)
	lanes.Equal(e.back, e.rx, e.divX)

	e.ry.Mul(e.ya, a)
	e.ry.Sub(e.y, e.ry)
	e.by.Div(e.ry, e.yb)
	e.back.Mul(e.by, e.yb)
	lanes.Equal(e.back, e.ry, e.divY)

	lanes.Equal(e.bx, e.by, e.sameB)
	e.verdict.And(e.divX, e.divY)
	e.verdict.And(e.verdict, e.sameB)
	return e.verdict
}

// batchSearch scans [0, MaxA] as MaxA/width full batches followed by the
// scalar remainder [width*full, MaxA]. Every true lane is confirmed through
// Evaluate in lane order, so the first confirmed lane is the smallest A.
//
// When exact is set a rejected lane panics with *InvariantError. Otherwise
// it is counted as a precision false positive and the scan continues.
func batchSearch[T lanes.Number](tier string, width int, exact bool, c Coefficients) (Solution, bool, Stats) {
	c.mustValidate()
	if !lanes.IsValidWidth(width) {
		panic(fmt.Sprintf("solver: %v %d", ErrInvalidWidth, width))
	}

	var st Stats
	maxA := c.MaxA()
	w := uint64(width)
	full := maxA / w

	if full > 0 {
		ev := newBatchEvaluator[T](width, c)
		cand := lanes.New[T](width)
		cand.Iota(0)
		step := lanes.Splat(width, T(width))

		for batch := uint64(0); batch < full; batch++ {
			st.Batches++
			st.Candidates += w
			if verdict := ev.evaluate(cand); verdict.AnyTrue() {
				first := batch * w
				for lane, hit := range verdict {
					if !hit {
						continue
					}
					a := first + uint64(lane)
					st.ScalarChecks++
					if sol, ok := Evaluate(a, c); ok {
						return sol, true, st
					}
					if exact {
						panic(&InvariantError{Tier: tier, Width: width, A: a})
					}
					st.Rejected++
				}
			}
			cand.Add(cand, step)
		}
	}

	sol, ok := scanScalar(full*w, maxA, c, &st)
	return sol, ok, st
}
