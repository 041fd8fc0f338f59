package tensor

import "fmt"

// Shape holds tensor dimensions, outermost first. A rank-0 shape is a
// scalar.
type Shape []int

// NumElements returns the element count the shape describes.
func (s Shape) NumElements() int {
	n := 1
	for _, dim := range s {
		n *= dim
	}
	return n
}

// Validate rejects non-positive dimensions.
func (s Shape) Validate() error {
	for i, dim := range s {
		if dim <= 0 {
			return fmt.Errorf("dimension %d is %d, must be positive", i, dim)
		}
	}
	return nil
}

// Equal reports whether both shapes have the same rank and dimensions.
func (s Shape) Equal(other Shape) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// Clone returns an independent copy.
func (s Shape) Clone() Shape {
	return append(Shape(nil), s...)
}

// ComputeStrides returns row-major strides: the innermost dimension moves
// fastest with stride 1.
func (s Shape) ComputeStrides() []int {
	strides := make([]int, len(s))
	stride := 1
	for i := len(s) - 1; i >= 0; i-- {
		strides[i] = stride
		stride *= s[i]
	}
	return strides
}

// BroadcastShapes resolves the common shape of two operands under NumPy
// rules: dimensions align from the right, each aligned pair must be equal or
// contain a 1, and missing leading dimensions count as 1. The boolean result
// reports whether either operand actually needs broadcasting.
func BroadcastShapes(a, b Shape) (Shape, bool, error) {
	rank := max(len(a), len(b))
	out := make(Shape, rank)
	broadcast := false

	for i := 1; i <= rank; i++ {
		aDim, bDim := 1, 1
		if i <= len(a) {
			aDim = a[len(a)-i]
		}
		if i <= len(b) {
			bDim = b[len(b)-i]
		}

		switch {
		case aDim == bDim:
			out[rank-i] = aDim
		case aDim == 1:
			out[rank-i] = bDim
			broadcast = true
		case bDim == 1:
			out[rank-i] = aDim
			broadcast = true
		default:
			return nil, false, fmt.Errorf("cannot broadcast %v with %v: dimensions %d and %d conflict",
				a, b, aDim, bDim)
		}
	}

	return out, broadcast, nil
}
