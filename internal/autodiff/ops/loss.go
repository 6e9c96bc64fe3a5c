package ops

import (
	"math"

	"github.com/born-ml/ffnet/internal/tensor"
)

// NLLOp represents the negative log-likelihood loss over log-probabilities:
//
//	Loss = mean_b(-logProbs[b, labels[b]])
//
// Backward:
//
//	∂L/∂logProbs[b,i] = -1/batch_size if i == labels[b], else 0
type NLLOp struct {
	unaryOp
	labels []int
}

// NewNLLOp creates a new NLLOp. The labels slice is copied.
func NewNLLOp(logProbs, output *tensor.Raw, labels []int) *NLLOp {
	return &NLLOp{
		unaryOp: unaryOp{input: logProbs, output: output},
		labels:  append([]int(nil), labels...),
	}
}

// Backward computes the gradient with respect to the log-probabilities.
func (op *NLLOp) Backward(outputGrad *tensor.Raw, _ tensor.Backend) []*tensor.Raw {
	grad := like(op.input)
	scale := -scalarGrad(outputGrad) / float64(len(op.labels))
	for b, label := range op.labels {
		grad.Row(b)[label] = scale
	}
	return []*tensor.Raw{grad}
}

// CrossEntropyOp represents the fused log-softmax + NLL loss over logits.
//
// Forward:
//
//	Loss = mean(-log_softmax(logits)[targets])
//
// Backward:
//
//	∂L/∂logits = (softmax(logits) - y_one_hot) / batch_size
//
// This gradient is the reason softmax and cross-entropy are usually fused.
type CrossEntropyOp struct {
	unaryOp
	labels []int
}

// NewCrossEntropyOp creates a new cross-entropy operation. The labels slice
// is copied.
func NewCrossEntropyOp(logits, output *tensor.Raw, labels []int) *CrossEntropyOp {
	return &CrossEntropyOp{
		unaryOp: unaryOp{input: logits, output: output},
		labels:  append([]int(nil), labels...),
	}
}

// Backward computes the gradient with respect to logits.
func (op *CrossEntropyOp) Backward(outputGrad *tensor.Raw, _ tensor.Backend) []*tensor.Raw {
	grad := like(op.input)
	scale := scalarGrad(outputGrad) / float64(len(op.labels))

	for b, label := range op.labels {
		logits := op.input.Row(b)
		dst := grad.Row(b)

		maxVal := logits[0]
		for _, v := range logits[1:] {
			if v > maxVal {
				maxVal = v
			}
		}
		sum := 0.0
		for i, v := range logits {
			dst[i] = math.Exp(v - maxVal)
			sum += dst[i]
		}
		for i := range dst {
			dst[i] /= sum
		}
		dst[label]--
		for i := range dst {
			dst[i] *= scale
		}
	}
	return []*tensor.Raw{grad}
}
