package tensor

import "fmt"

// Device represents the compute device for tensor operations.
type Device int

// Supported compute devices.
const (
	CPU Device = iota
)

// String returns a human-readable device name.
func (d Device) String() string {
	switch d {
	case CPU:
		return "CPU"
	default:
		return "Unknown"
	}
}

// Raw is the low-level tensor representation used by backends and the
// autodiff tape. Storage is a contiguous row-major float64 slice.
//
// Raw values are compared by pointer identity on the tape, so every op
// allocates a fresh Raw for its result.
type Raw struct {
	data   []float64
	shape  Shape
	stride []int
	device Device
}

// NewRaw creates a zero-filled Raw with the given shape.
func NewRaw(shape Shape, device Device) (*Raw, error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("invalid shape: %w", err)
	}

	return &Raw{
		data:   make([]float64, shape.NumElements()),
		shape:  shape.Clone(),
		stride: shape.ComputeStrides(),
		device: device,
	}, nil
}

// MustRaw is like NewRaw but panics on an invalid shape.
// Backends use it for results whose shape was already validated.
func MustRaw(shape Shape, device Device) *Raw {
	r, err := NewRaw(shape, device)
	if err != nil {
		panic(err)
	}
	return r
}

// RawFromSlice creates a Raw holding a copy of data.
func RawFromSlice(data []float64, shape Shape) (*Raw, error) {
	if shape.NumElements() != len(data) {
		return nil, fmt.Errorf("%w: shape %v requires %d elements, but got %d",
			ErrShapeMismatch, shape, shape.NumElements(), len(data))
	}
	r, err := NewRaw(shape, CPU)
	if err != nil {
		return nil, err
	}
	copy(r.data, data)
	return r, nil
}

// Shape returns the tensor's shape.
func (r *Raw) Shape() Shape {
	return r.shape
}

// Strides returns the tensor's memory strides.
func (r *Raw) Strides() []int {
	return r.stride
}

// Device returns the tensor's compute device.
func (r *Raw) Device() Device {
	return r.device
}

// NumElements returns the total number of elements.
func (r *Raw) NumElements() int {
	return len(r.data)
}

// Data returns the underlying storage.
// WARNING: Direct access to underlying memory. Writes are visible to every
// holder of this Raw.
func (r *Raw) Data() []float64 {
	return r.data
}

// Rows returns the size of the leading dimension of a 2-D tensor.
func (r *Raw) Rows() int {
	return r.shape[0]
}

// Cols returns the size of the trailing dimension of a 2-D tensor.
func (r *Raw) Cols() int {
	return r.shape[len(r.shape)-1]
}

// Row returns a view of row i of a 2-D tensor.
func (r *Raw) Row(i int) []float64 {
	cols := r.Cols()
	return r.data[i*cols : (i+1)*cols]
}

// Fill sets every element to v.
func (r *Raw) Fill(v float64) {
	for i := range r.data {
		r.data[i] = v
	}
}

// Clone creates a deep copy.
func (r *Raw) Clone() *Raw {
	data := make([]float64, len(r.data))
	copy(data, r.data)
	return &Raw{
		data:   data,
		shape:  r.shape.Clone(),
		stride: append([]int(nil), r.stride...),
		device: r.device,
	}
}

// View returns a Raw sharing storage with r under a different shape with
// the same number of elements.
func (r *Raw) View(shape Shape) (*Raw, error) {
	if shape.NumElements() != len(r.data) {
		return nil, fmt.Errorf("%w: cannot view %v as %v", ErrShapeMismatch, r.shape, shape)
	}
	return &Raw{
		data:   r.data,
		shape:  shape.Clone(),
		stride: shape.ComputeStrides(),
		device: r.device,
	}, nil
}

// String returns a short description of the tensor.
func (r *Raw) String() string {
	return fmt.Sprintf("Raw%v on %s", r.shape, r.device)
}
