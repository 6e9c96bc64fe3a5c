package tensor

// Zeros creates a tensor filled with zeros.
//
// Example:
//
//	backend := cpu.New()
//	t := tensor.Zeros(Shape{3, 4}, backend)
func Zeros(shape Shape, b Backend) *Tensor {
	return New(MustRaw(shape, b.Device()), b)
}

// Ones creates a tensor filled with ones.
func Ones(shape Shape, b Backend) *Tensor {
	return Full(shape, 1, b)
}

// Full creates a tensor filled with a specific value.
//
// Example:
//
//	t := tensor.Full(Shape{3, 3}, 3.14, backend)
func Full(shape Shape, value float64, b Backend) *Tensor {
	t := Zeros(shape, b)
	t.raw.Fill(value)
	return t
}
