package tensor

import "fmt"

// Shape represents the dimensions of a tensor.
type Shape []int

// NumElements returns the total number of elements in the tensor.
func (s Shape) NumElements() int {
	if len(s) == 0 {
		return 1 // Scalar has 1 element
	}
	n := 1
	for _, dim := range s {
		n *= dim
	}
	return n
}

// Validate checks if the shape is valid (all dimensions > 0).
func (s Shape) Validate() error {
	for i, dim := range s {
		if dim <= 0 {
			return fmt.Errorf("invalid dimension at index %d: %d (must be > 0)", i, dim)
		}
	}
	return nil
}

// Equal checks if two shapes are equal.
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

// Clone returns a copy of the shape.
func (s Shape) Clone() Shape {
	clone := make(Shape, len(s))
	copy(clone, s)
	return clone
}

// ComputeStrides calculates row-major strides for the shape.
// stride[i] is the product of all dimensions after i.
func (s Shape) ComputeStrides() []int {
	strides := make([]int, len(s))
	if len(s) == 0 {
		return strides
	}

	strides[len(s)-1] = 1
	for i := len(s) - 2; i >= 0; i-- {
		strides[i] = strides[i+1] * s[i+1]
	}
	return strides
}

// IsRowVector reports whether s broadcasts as a single row onto a 2-D
// tensor with the given number of columns: [cols] or [1, cols].
func (s Shape) IsRowVector(cols int) bool {
	switch len(s) {
	case 1:
		return s[0] == cols
	case 2:
		return s[0] == 1 && s[1] == cols
	default:
		return false
	}
}

// BroadcastRows resolves the result shape of an element-wise op between a
// and b. Shapes must be equal, or b must be a row vector broadcast over the
// rows of a 2-D a.
//
// Examples:
//
//	(3, 5) + (3, 5) → (3, 5), false, nil
//	(3, 5) + (5)    → (3, 5), true, nil
//	(3, 5) + (1, 5) → (3, 5), true, nil
//	(3, 4) + (5)    → nil, false, Error
func BroadcastRows(a, b Shape) (Shape, bool, error) {
	if a.Equal(b) {
		return a.Clone(), false, nil
	}
	if len(a) == 2 && b.IsRowVector(a[1]) {
		return a.Clone(), true, nil
	}
	return nil, false, fmt.Errorf("%w: cannot broadcast %v onto %v", ErrShapeMismatch, b, a)
}
