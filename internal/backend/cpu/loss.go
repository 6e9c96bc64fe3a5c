package cpu

import (
	"fmt"

	"github.com/born-ml/ffnet/internal/tensor"
)

// NLLLoss computes mean(-logProbs[b, labels[b]]) over a [batch, classes]
// tensor of log-probabilities. Returns a [1] tensor.
//
// Labels must be in [0, classes); the caller validates them.
func (cpu *CPUBackend) NLLLoss(logProbs *tensor.Raw, labels []int) *tensor.Raw {
	shape := logProbs.Shape()
	if len(shape) != 2 {
		panic(fmt.Sprintf("nll_loss: expected [batch, classes], got %v", shape))
	}
	if shape[0] != len(labels) {
		panic(fmt.Sprintf("nll_loss: batch size %d != %d labels", shape[0], len(labels)))
	}

	sum := 0.0
	for b, label := range labels {
		sum -= logProbs.Row(b)[label]
	}

	result := tensor.MustRaw(tensor.Shape{1}, cpu.device)
	result.Data()[0] = sum / float64(len(labels))
	return result
}

// CrossEntropy computes the fused log-softmax + NLL over raw logits.
// Returns a [1] tensor holding the mean loss.
func (cpu *CPUBackend) CrossEntropy(logits *tensor.Raw, labels []int) *tensor.Raw {
	return cpu.NLLLoss(cpu.LogSoftmax(logits, 1), labels)
}
