package tensor

import "fmt"

// Tensor pairs a Raw with the Backend that computes on it.
// Operations go through the backend, so a Tensor bound to an autodiff
// backend records every op it takes part in.
//
// Example:
//
//	backend := cpu.New()
//	x := tensor.Zeros(Shape{3, 4}, backend)
//	y := x.MatMul(w).Add(b)
type Tensor struct {
	raw     *Raw
	backend Backend
}

// New creates a Tensor from a Raw and backend.
func New(raw *Raw, b Backend) *Tensor {
	return &Tensor{
		raw:     raw,
		backend: b,
	}
}

// FromSlice creates a tensor from a Go slice.
// The slice is copied into the tensor's memory.
func FromSlice(data []float64, shape Shape, b Backend) (*Tensor, error) {
	raw, err := RawFromSlice(data, shape)
	if err != nil {
		return nil, err
	}
	return New(raw, b), nil
}

// Shape returns the tensor's shape.
func (t *Tensor) Shape() Shape {
	return t.raw.Shape()
}

// Device returns the tensor's compute device.
func (t *Tensor) Device() Device {
	return t.raw.Device()
}

// NumElements returns the total number of elements.
func (t *Tensor) NumElements() int {
	return t.raw.NumElements()
}

// Raw returns the underlying Raw.
func (t *Tensor) Raw() *Raw {
	return t.raw
}

// Backend returns the computation backend.
func (t *Tensor) Backend() Backend {
	return t.backend
}

// Data returns the tensor's storage (zero-copy).
//
// WARNING: Modifications to the returned slice will modify the tensor.
func (t *Tensor) Data() []float64 {
	return t.raw.Data()
}

// Item returns the value of a single-element tensor.
// Panics if the tensor holds more than one element.
func (t *Tensor) Item() float64 {
	if t.NumElements() != 1 {
		panic(fmt.Sprintf("Item() only works for single-element tensors, got shape %v", t.Shape()))
	}
	return t.Data()[0]
}

// At returns the element at the given indices.
// Panics if indices are out of bounds.
func (t *Tensor) At(indices ...int) float64 {
	shape := t.Shape()
	if len(indices) != len(shape) {
		panic(fmt.Sprintf("expected %d indices, got %d", len(shape), len(indices)))
	}

	offset := 0
	strides := t.raw.Strides()
	for i, idx := range indices {
		if idx < 0 || idx >= shape[i] {
			panic(fmt.Sprintf("index %d out of bounds for dimension %d (size %d)", idx, i, shape[i]))
		}
		offset += idx * strides[i]
	}

	return t.Data()[offset]
}

// String returns a human-readable representation of the tensor.
func (t *Tensor) String() string {
	return fmt.Sprintf("Tensor%v on %s", t.Shape(), t.Device())
}

// Clone creates a deep copy of the tensor on the same backend.
// The copy is not connected to any recorded computation.
func (t *Tensor) Clone() *Tensor {
	return New(t.raw.Clone(), t.backend)
}

// Add performs element-wise addition with row broadcasting.
func (t *Tensor) Add(other *Tensor) *Tensor {
	return New(t.backend.Add(t.raw, other.raw), t.backend)
}

// Mul performs element-wise multiplication with row broadcasting.
func (t *Tensor) Mul(other *Tensor) *Tensor {
	return New(t.backend.Mul(t.raw, other.raw), t.backend)
}

// MatMul performs matrix multiplication: (M, K) @ (K, N) → (M, N).
func (t *Tensor) MatMul(other *Tensor) *Tensor {
	return New(t.backend.MatMul(t.raw, other.raw), t.backend)
}

// T transposes a 2-D tensor.
func (t *Tensor) T() *Tensor {
	return New(t.backend.Transpose(t.raw), t.backend)
}

// Exp applies e^x element-wise.
func (t *Tensor) Exp() *Tensor {
	return New(t.backend.Exp(t.raw), t.backend)
}

// LogSoftmax normalizes along dim.
//
// For a batch-major [batch, classes] tensor the class axis is dim 1 (or -1).
// Normalizing along dim 0 yields a distribution over examples instead.
func (t *Tensor) LogSoftmax(dim int) *Tensor {
	return New(t.backend.LogSoftmax(t.raw, dim), t.backend)
}

// Sum reduces the tensor to a [1] tensor.
func (t *Tensor) Sum() *Tensor {
	return New(t.backend.Sum(t.raw), t.backend)
}

// Argmax returns the index of the maximum along dim for each slice.
func (t *Tensor) Argmax(dim int) []int {
	return t.backend.Argmax(t.raw, dim)
}
