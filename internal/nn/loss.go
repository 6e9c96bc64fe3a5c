package nn

import (
	"fmt"
	"strings"

	"github.com/born-ml/ffnet/internal/tensor"
)

// OutputConvention says which classifier output a loss expects.
type OutputConvention int

// Output conventions.
const (
	// LogProbabilities pairs with Classifier.Predict.
	LogProbabilities OutputConvention = iota
	// Logits pairs with Classifier.Logits.
	Logits
)

// LossFunction turns a batch of model outputs and integer labels into a
// scalar ([1]) differentiable loss.
type LossFunction interface {
	Forward(output *tensor.Tensor, labels []int) (*tensor.Tensor, error)
	Convention() OutputConvention
}

// NewLoss returns the loss named "nll" or "cross_entropy".
func NewLoss(name string) (LossFunction, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "nll":
		return NewNLLLoss(), nil
	case "cross_entropy", "crossentropy", "ce":
		return NewCrossEntropyLoss(), nil
	default:
		return nil, fmt.Errorf("%w: unknown loss %q", ErrInvalidConfig, name)
	}
}

// NLLLoss computes the mean negative log-likelihood of the labelled class:
//
//	Loss = mean_b(-logProbs[b, labels[b]])
//
// Usage:
//
//	criterion := nn.NewNLLLoss()
//	logProbs, _ := model.Predict(x)
//	loss, err := criterion.Forward(logProbs, labels)
type NLLLoss struct{}

// NewNLLLoss creates a new NLL loss.
func NewNLLLoss() *NLLLoss {
	return &NLLLoss{}
}

// Forward computes the loss. Fails with ErrInvalidLabel for labels outside
// [0, num_classes) and tensor.ErrShapeMismatch when the label count does not
// match the batch.
func (l *NLLLoss) Forward(logProbs *tensor.Tensor, labels []int) (*tensor.Tensor, error) {
	lb, err := lossBackend(logProbs, labels)
	if err != nil {
		return nil, err
	}
	return tensor.New(lb.NLLLoss(logProbs.Raw(), labels), logProbs.Backend()), nil
}

// Convention returns LogProbabilities.
func (l *NLLLoss) Convention() OutputConvention {
	return LogProbabilities
}

// CrossEntropyLoss computes cross-entropy over raw logits.
//
// It fuses log-softmax and NLL with the log-sum-exp trick, so
//
//	CrossEntropyLoss(logits) == NLLLoss(log_softmax(logits))
//
// Usage:
//
//	criterion := nn.NewCrossEntropyLoss()
//	logits, _ := model.Logits(x)
//	loss, err := criterion.Forward(logits, labels)
type CrossEntropyLoss struct{}

// NewCrossEntropyLoss creates a new cross-entropy loss function.
func NewCrossEntropyLoss() *CrossEntropyLoss {
	return &CrossEntropyLoss{}
}

// Forward computes the loss with the same validation as NLLLoss.
func (l *CrossEntropyLoss) Forward(logits *tensor.Tensor, labels []int) (*tensor.Tensor, error) {
	lb, err := lossBackend(logits, labels)
	if err != nil {
		return nil, err
	}
	return tensor.New(lb.CrossEntropy(logits.Raw(), labels), logits.Backend()), nil
}

// Convention returns Logits.
func (l *CrossEntropyLoss) Convention() OutputConvention {
	return Logits
}

// ValidateLabels checks that labels match a [batch, classes] output.
func ValidateLabels(shape tensor.Shape, labels []int) error {
	if len(shape) != 2 {
		return fmt.Errorf("%w: expected [batch, classes] output, got %v", tensor.ErrShapeMismatch, shape)
	}
	if len(labels) != shape[0] {
		return fmt.Errorf("%w: %d labels for batch of %d", tensor.ErrShapeMismatch, len(labels), shape[0])
	}
	classes := shape[1]
	for i, label := range labels {
		if label < 0 || label >= classes {
			return fmt.Errorf("%w: label %d at index %d outside [0, %d)", ErrInvalidLabel, label, i, classes)
		}
	}
	return nil
}

func lossBackend(output *tensor.Tensor, labels []int) (tensor.LossBackend, error) {
	if err := ValidateLabels(output.Shape(), labels); err != nil {
		return nil, err
	}
	lb, ok := output.Backend().(tensor.LossBackend)
	if !ok {
		return nil, fmt.Errorf("backend %s does not implement classification losses", output.Backend().Name())
	}
	return lb, nil
}
