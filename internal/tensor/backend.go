package tensor

// Backend defines the interface that compute backends implement.
// Backends handle the actual computation for tensor operations.
//
// Element-wise ops accept equal shapes, or a row vector ([N] or [1, N])
// as the second operand broadcast over the rows of a 2-D first operand.
// Ops panic on shapes they cannot handle; callers validate data-dependent
// shapes first and return errors.
type Backend interface {
	// Element-wise binary operations
	Add(a, b *Raw) *Raw
	Mul(a, b *Raw) *Raw

	// Matrix operations
	MatMul(a, b *Raw) *Raw // [M, K] @ [K, N] -> [M, N]
	Transpose(x *Raw) *Raw // 2-D only

	// Math operations (element-wise)
	Exp(x *Raw) *Raw

	// LogSoftmax normalizes along dim, stabilized by subtracting the max.
	LogSoftmax(x *Raw, dim int) *Raw

	// Reduction operations
	Sum(x *Raw) *Raw                           // total sum, shape [1]
	SumDim(x *Raw, dim int, keepDim bool) *Raw // sum along dimension of a 2-D tensor
	Argmax(x *Raw, dim int) []int              // index of maximum value along dim of a 2-D tensor

	// Metadata
	Name() string
	Device() Device
}

// ReLUBackend is implemented by backends that support ReLU activation.
type ReLUBackend interface {
	ReLU(x *Raw) *Raw
}

// SigmoidBackend is implemented by backends that support Sigmoid activation.
type SigmoidBackend interface {
	Sigmoid(x *Raw) *Raw
}

// TanhBackend is implemented by backends that support Tanh activation.
type TanhBackend interface {
	Tanh(x *Raw) *Raw
}

// LossBackend is implemented by backends that provide the classification
// losses. Labels must already be validated against the class count.
type LossBackend interface {
	// NLLLoss returns mean(-logProbs[b, labels[b]]) as a [1] tensor.
	NLLLoss(logProbs *Raw, labels []int) *Raw
	// CrossEntropy returns the fused log-softmax + NLL over raw logits.
	CrossEntropy(logits *Raw, labels []int) *Raw
}
