package nn

import (
	"fmt"
	"math/rand/v2"

	"go.uber.org/multierr"

	"github.com/born-ml/ffnet/internal/tensor"
)

// ClassifierConfig describes a feed-forward classifier.
type ClassifierConfig struct {
	// Widths lists [input_dim, hidden_1, ..., hidden_k, output_dim].
	Widths []int
	// Activation is applied after every hidden layer.
	Activation Activation
	// Init selects the weight initialization. Biases always start at zero.
	Init InitScheme
	// InitStd is the standard deviation for InitNormal (default 0.01).
	InitStd float64
	// Dropout inserts a dropout layer after each hidden activation when > 0.
	Dropout float64
	// Seed makes initialization and dropout masks reproducible.
	Seed uint64
}

// Validate reports every problem with the configuration at once.
func (c ClassifierConfig) Validate() error {
	var err error
	if len(c.Widths) < 2 {
		err = multierr.Append(err, fmt.Errorf("%w: need at least 2 widths, got %v", ErrInvalidConfig, c.Widths))
	}
	for i, w := range c.Widths {
		if w <= 0 {
			err = multierr.Append(err, fmt.Errorf("%w: width %d must be positive, got %d", ErrInvalidConfig, i, w))
		}
	}
	if c.Dropout < 0 || c.Dropout >= 1 {
		err = multierr.Append(err, fmt.Errorf("%w: dropout must be in [0, 1), got %v", ErrInvalidConfig, c.Dropout))
	}
	if c.InitStd < 0 {
		err = multierr.Append(err, fmt.Errorf("%w: init std must not be negative, got %v", ErrInvalidConfig, c.InitStd))
	}
	if _, aerr := NewActivation(c.Activation); aerr != nil {
		err = multierr.Append(err, aerr)
	}
	return err
}

// Classifier maps a batch of flattened feature vectors to log-probabilities
// over a fixed set of classes through a stack of affine layers.
//
// For every layer but the last: h = activation(h @ W + b).
// The last layer yields logits z = h @ W + b, and Predict returns the
// row-wise log_softmax(z) over the class axis.
//
// Example:
//
//	model, err := nn.NewClassifier(nn.ClassifierConfig{
//	    Widths:     []int{784, 128, 64, 10},
//	    Activation: nn.ActivationReLU,
//	}, backend)
//	logProbs, err := model.Predict(x) // [batch, 10]
type Classifier struct {
	config     ClassifierConfig
	layers     []*Linear
	body       *Sequential
	logSoftmax *LogSoftmax
	training   bool
}

// NewClassifier builds a classifier from cfg. Parameter shapes are fixed
// here and never change afterwards.
func NewClassifier(cfg ClassifierConfig, backend tensor.Backend) (*Classifier, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cfg.Widths = append([]int(nil), cfg.Widths...)
	if cfg.Init == InitNormal && cfg.InitStd == 0 {
		cfg.InitStd = DefaultInitStd
	}

	src := rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15)
	initializer := NewInitializer(cfg.Init, cfg.InitStd, src)

	c := &Classifier{
		config:     cfg,
		body:       NewSequential(),
		logSoftmax: NewLogSoftmax(1),
		training:   true,
	}

	last := len(cfg.Widths) - 2
	for i := 0; i <= last; i++ {
		layer := NewLinear(cfg.Widths[i], cfg.Widths[i+1], initializer, backend)
		c.layers = append(c.layers, layer)
		c.body.Add(layer)
		if i == last {
			break
		}
		act, err := NewActivation(cfg.Activation)
		if err != nil {
			return nil, err
		}
		c.body.Add(act)
		if cfg.Dropout > 0 {
			c.body.Add(NewDropout(cfg.Dropout, src))
		}
	}

	return c, nil
}

// Logits computes the unnormalized class scores.
//
// The input must be 2-D with shape[1] equal to the input width, otherwise
// the error wraps tensor.ErrShapeMismatch. A batch of one is [1, input_dim].
func (c *Classifier) Logits(input *tensor.Tensor) (*tensor.Tensor, error) {
	shape := input.Shape()
	if len(shape) != 2 || shape[1] != c.InputDim() {
		return nil, fmt.Errorf("%w: expected input [batch, %d], got %v",
			tensor.ErrShapeMismatch, c.InputDim(), shape)
	}
	return c.body.Forward(input), nil
}

// Predict returns log-probabilities of shape [batch, output_dim]. Each row,
// exponentiated, sums to one.
//
// In eval mode Predict is a pure function of the parameters and input.
func (c *Classifier) Predict(input *tensor.Tensor) (*tensor.Tensor, error) {
	logits, err := c.Logits(input)
	if err != nil {
		return nil, err
	}
	return c.logSoftmax.Forward(logits), nil
}

// Forward implements Module. It panics where Predict would return an error.
func (c *Classifier) Forward(input *tensor.Tensor) *tensor.Tensor {
	out, err := c.Predict(input)
	if err != nil {
		panic(err)
	}
	return out
}

// Parameters returns [W0, b0, W1, b1, ...] in layer order.
func (c *Classifier) Parameters() []*Parameter {
	return c.body.Parameters()
}

// NumParameters returns the total number of trainable scalars.
func (c *Classifier) NumParameters() int {
	n := 0
	for _, p := range c.Parameters() {
		n += p.Shape().NumElements()
	}
	return n
}

// Layers returns the affine layers in order.
func (c *Classifier) Layers() []*Linear {
	return c.layers
}

// Config returns the configuration the classifier was built with.
func (c *Classifier) Config() ClassifierConfig {
	cfg := c.config
	cfg.Widths = append([]int(nil), c.config.Widths...)
	return cfg
}

// InputDim returns the expected feature count.
func (c *Classifier) InputDim() int {
	return c.config.Widths[0]
}

// OutputDim returns the number of classes.
func (c *Classifier) OutputDim() int {
	return c.config.Widths[len(c.config.Widths)-1]
}

// Train switches to training mode (dropout active).
func (c *Classifier) Train() {
	c.training = true
	c.body.SetTraining(true)
}

// Eval switches to inference mode (dropout disabled).
func (c *Classifier) Eval() {
	c.training = false
	c.body.SetTraining(false)
}

// IsTraining reports whether the classifier is in training mode.
func (c *Classifier) IsTraining() bool {
	return c.training
}

// String summarizes the architecture, e.g. "Classifier[784-128-64-10 relu]".
func (c *Classifier) String() string {
	s := "Classifier["
	for i, w := range c.config.Widths {
		if i > 0 {
			s += "-"
		}
		s += fmt.Sprint(w)
	}
	s += " " + c.config.Activation.String()
	if c.config.Dropout > 0 {
		s += fmt.Sprintf(" dropout=%g", c.config.Dropout)
	}
	return s + "]"
}
