package lanes

// Mask holds one boolean verdict per lane.
type Mask []bool

// NewMask returns an all-false mask of the given width.
func NewMask(width int) Mask {
	return make(Mask, width)
}

// And sets m = a && b lane-wise.
func (m Mask) And(a, b Mask) {
	mustMatch(len(m), len(a), len(b))
	for i := range m {
		m[i] = a[i] && b[i]
	}
}

// AnyTrue reports whether at least one lane is set.
func (m Mask) AnyTrue() bool {
	for _, set := range m {
		if set {
			return true
		}
	}
	return false
}

// FirstTrue returns the lowest set lane.
func (m Mask) FirstTrue() (int, bool) {
	for i, set := range m {
		if set {
			return i, true
		}
	}
	return -1, false
}

// CountTrue returns the number of set lanes.
func (m Mask) CountTrue() int {
	n := 0
	for _, set := range m {
		if set {
			n++
		}
	}
	return n
}
