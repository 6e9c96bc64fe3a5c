// Package data provides datasets, batching and the MNIST IDX reader used to
// feed the classifier.
package data

import (
	"fmt"

	"github.com/born-ml/ffnet/internal/tensor"
)

// Batch is one step's worth of examples: Inputs of shape [batch, ...] and
// one integer label per row. A Batch is read-only once built.
type Batch struct {
	Inputs *tensor.Raw
	Labels []int
}

// NewBatch checks that inputs and labels agree on the batch size.
func NewBatch(inputs *tensor.Raw, labels []int) (*Batch, error) {
	shape := inputs.Shape()
	if len(shape) == 0 || shape[0] != len(labels) {
		return nil, fmt.Errorf("%w: inputs %v with %d labels", tensor.ErrShapeMismatch, shape, len(labels))
	}
	return &Batch{Inputs: inputs, Labels: labels}, nil
}

// Size returns the number of examples.
func (b *Batch) Size() int {
	return len(b.Labels)
}

// Flatten views an [N, d1, d2, ...] tensor as [N, d1*d2*...]. A 2-D tensor
// is returned unchanged; 1-D and scalar inputs are rejected.
func Flatten(x *tensor.Raw) (*tensor.Raw, error) {
	shape := x.Shape()
	switch {
	case len(shape) < 2:
		return nil, fmt.Errorf("%w: cannot flatten %v into [batch, features]", tensor.ErrShapeMismatch, shape)
	case len(shape) == 2:
		return x, nil
	}
	return x.View(tensor.Shape{shape[0], x.NumElements() / shape[0]})
}

// Source yields a finite, restartable sequence of batches. Each call to
// Batches is one epoch; the order may differ between calls.
type Source interface {
	Batches() ([]*Batch, error)
}

// SliceSource replays a fixed list of batches in order.
type SliceSource []*Batch

// Batches returns the batches unchanged.
func (s SliceSource) Batches() ([]*Batch, error) {
	return s, nil
}
