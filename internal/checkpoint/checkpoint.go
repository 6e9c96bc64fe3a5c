package checkpoint

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/born-ml/ffnet/internal/nn"
	"github.com/born-ml/ffnet/internal/optim"
	"github.com/born-ml/ffnet/internal/tensor"
)

// Checkpoint is a restored training snapshot.
type Checkpoint struct {
	Model *nn.Classifier
	Meta  Meta
	// OptimizerState holds optimizer buffers when they were saved. Pass it
	// to optim.Stateful.LoadStateDict to resume training.
	OptimizerState map[string]*tensor.Raw
}

// Save writes model parameters, architecture and meta to path. When opt
// keeps per-parameter buffers they are stored too. A zero RunID or
// CreatedAt is filled in; the architecture always comes from model.
func Save(path string, model *nn.Classifier, opt optim.Optimizer, meta Meta) error {
	meta.Model = model.Config()
	if meta.RunID == uuid.Nil {
		meta.RunID = uuid.New()
	}
	if meta.CreatedAt.IsZero() {
		meta.CreatedAt = time.Now()
	}

	tensors := model.StateDict()
	if stateful, ok := opt.(optim.Stateful); ok {
		for name, raw := range stateful.StateDict() {
			tensors[optimizerPrefix+name] = raw
		}
	}

	if err := WriteFile(path, tensors, meta.encode()); err != nil {
		return fmt.Errorf("failed to save checkpoint: %w", err)
	}
	return nil
}

// Load reads a checkpoint written by Save and rebuilds the classifier on
// backend. The model comes back in training mode.
func Load(path string, backend tensor.Backend) (*Checkpoint, error) {
	file, err := ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load checkpoint: %w", err)
	}

	meta, err := decodeMeta(file.Metadata)
	if err != nil {
		return nil, err
	}
	model, err := nn.NewClassifier(meta.Model, backend)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidHeader, err)
	}

	params := make(map[string]*tensor.Raw, len(file.Tensors))
	var optState map[string]*tensor.Raw
	for name, raw := range file.Tensors {
		if rest, ok := strings.CutPrefix(name, optimizerPrefix); ok {
			if optState == nil {
				optState = make(map[string]*tensor.Raw)
			}
			optState[rest] = raw
			continue
		}
		params[name] = raw
	}
	if err := model.LoadStateDict(params); err != nil {
		return nil, fmt.Errorf("failed to restore parameters: %w", err)
	}

	return &Checkpoint{Model: model, Meta: meta, OptimizerState: optState}, nil
}
