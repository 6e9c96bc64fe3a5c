package nn

import (
	"fmt"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/born-ml/ffnet/internal/tensor"
)

// Dropout zeroes each input element with probability p during training and
// scales the survivors by 1/(1-p). In inference mode it is the identity.
//
// The mask is applied with a recorded Mul, so dropped units get no gradient.
type Dropout struct {
	p        float64
	training bool
	keep     distuv.Bernoulli
}

// NewDropout creates a Dropout module in training mode.
// Panics unless 0 <= p < 1.
func NewDropout(p float64, src rand.Source) *Dropout {
	if p < 0 || p >= 1 {
		panic(fmt.Sprintf("Dropout: probability must be in [0, 1), got %v", p))
	}
	return &Dropout{
		p:        p,
		training: true,
		keep:     distuv.Bernoulli{P: 1 - p, Src: src},
	}
}

// Forward applies the dropout mask in training mode.
func (d *Dropout) Forward(input *tensor.Tensor) *tensor.Tensor {
	if !d.training || d.p == 0 {
		return input
	}

	scale := 1 / (1 - d.p)
	mask := tensor.Zeros(input.Shape(), input.Backend())
	data := mask.Data()
	for i := range data {
		data[i] = d.keep.Rand() * scale
	}
	return input.Mul(mask)
}

// SetTraining switches between training and inference behavior.
func (d *Dropout) SetTraining(training bool) {
	d.training = training
}

// P returns the drop probability.
func (d *Dropout) P() float64 {
	return d.p
}

// Parameters returns nil (Dropout has no trainable parameters).
func (d *Dropout) Parameters() []*Parameter {
	return nil
}

// LogSoftmax normalizes scores into log-probabilities along dim.
//
// A classifier over a [batch, classes] tensor must use dim 1 (or -1):
// dim 0 would produce a distribution over examples instead of classes.
type LogSoftmax struct {
	dim int
}

// NewLogSoftmax creates a LogSoftmax module over dim.
func NewLogSoftmax(dim int) *LogSoftmax {
	return &LogSoftmax{dim: dim}
}

// Forward computes the stabilized log-softmax.
func (l *LogSoftmax) Forward(input *tensor.Tensor) *tensor.Tensor {
	return input.LogSoftmax(l.dim)
}

// Parameters returns nil.
func (l *LogSoftmax) Parameters() []*Parameter {
	return nil
}
