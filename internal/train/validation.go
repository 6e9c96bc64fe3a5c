package train

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/born-ml/ffnet/internal/data"
	"github.com/born-ml/ffnet/internal/nn"
)

// ValidationPass scores a model on held-out data without recording
// gradients.
type ValidationPass struct {
	model   Model
	loss    nn.LossFunction
	source  data.Source
	backend Backend
	opts    options
}

// NewValidationPass creates a validation pass.
func NewValidationPass(model Model, loss nn.LossFunction, source data.Source, backend Backend, opts ...Option) *ValidationPass {
	return &ValidationPass{
		model:   model,
		loss:    loss,
		source:  source,
		backend: backend,
		opts:    applyOptions(opts),
	}
}

// Run returns the loss and accuracy averaged over batches.
//
// The pass runs inside backend.NoGrad and with the model in eval mode. Both
// the recording state and the model mode are restored on return, whether
// the pass succeeds, fails or panics.
func (v *ValidationPass) Run(ctx context.Context) (meanLoss, meanAccuracy float64, err error) {
	batches, err := v.source.Batches()
	if err != nil {
		return 0, 0, fmt.Errorf("failed to read batches: %w", err)
	}
	if len(batches) == 0 {
		return 0, 0, ErrEmptySource
	}

	wasTraining := v.model.IsTraining()
	v.model.Eval()
	defer func() {
		if wasTraining {
			v.model.Train()
		}
	}()

	var metrics RunningMetrics
	err = v.backend.NoGrad(func() error {
		for i, batch := range batches {
			if err := ctx.Err(); err != nil {
				return err
			}

			output, err := forward(v.model, v.loss, batch.Inputs, v.backend)
			if err != nil {
				return fmt.Errorf("batch %d: %w", i+1, err)
			}
			loss, err := v.loss.Forward(output, batch.Labels)
			if err != nil {
				return fmt.Errorf("batch %d: %w", i+1, err)
			}
			metrics.Update(loss.Item(), CountCorrect(output.Argmax(1), batch.Labels), batch.Size())
		}
		return nil
	})
	if err != nil {
		return 0, 0, err
	}

	v.opts.logger.Debug("validation complete",
		zap.Int("batches", metrics.Batches),
		zap.Int("examples", metrics.Examples),
		zap.Float64("loss", metrics.MeanLoss()),
		zap.Float64("accuracy", metrics.MeanAccuracy()),
	)
	return metrics.MeanLoss(), metrics.MeanAccuracy(), nil
}
