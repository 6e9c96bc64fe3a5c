package train

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/born-ml/ffnet/internal/autodiff"
	"github.com/born-ml/ffnet/internal/data"
	"github.com/born-ml/ffnet/internal/nn"
	"github.com/born-ml/ffnet/internal/optim"
)

// TrainingLoop fits a model to a data source with a loss and an optimizer.
//
// Example:
//
//	backend := autodiff.New(cpu.New())
//	model, _ := nn.NewClassifier(cfg, backend)
//	opt := optim.NewSGD(model.Parameters(), optim.SGDConfig{LR: 0.003})
//	loop := train.NewTrainingLoop(model, nn.NewNLLLoss(), opt, loader, backend)
//	losses, err := loop.Run(ctx, 5)
type TrainingLoop struct {
	model   Model
	loss    nn.LossFunction
	opt     optim.Optimizer
	source  data.Source
	backend Backend
	opts    options

	metrics RunningMetrics
	epoch   int
}

// NewTrainingLoop creates a training loop.
func NewTrainingLoop(model Model, loss nn.LossFunction, opt optim.Optimizer, source data.Source, backend Backend, opts ...Option) *TrainingLoop {
	return &TrainingLoop{
		model:   model,
		loss:    loss,
		opt:     opt,
		source:  source,
		backend: backend,
		opts:    applyOptions(opts),
	}
}

// Run trains for the given number of epochs and returns each epoch's mean
// training loss. The first error aborts the run; losses of the epochs that
// completed are returned alongside it.
func (l *TrainingLoop) Run(ctx context.Context, epochs int) ([]float64, error) {
	if epochs <= 0 {
		return nil, fmt.Errorf("epochs must be positive, got %d", epochs)
	}

	losses := make([]float64, 0, epochs)
	for range epochs {
		loss, err := l.RunEpoch(ctx)
		if err != nil {
			return losses, err
		}
		losses = append(losses, loss)
	}
	return losses, nil
}

// RunEpoch makes one pass over the source and returns the mean loss.
func (l *TrainingLoop) RunEpoch(ctx context.Context) (float64, error) {
	batches, err := l.source.Batches()
	if err != nil {
		return 0, fmt.Errorf("failed to read batches: %w", err)
	}
	if len(batches) == 0 {
		return 0, ErrEmptySource
	}

	start := time.Now()
	l.model.Train()
	l.metrics.Reset()
	epoch := l.epoch + 1

	for i, batch := range batches {
		if err := ctx.Err(); err != nil {
			return 0, err
		}

		loss, correct, err := l.step(batch)
		if err != nil {
			return 0, fmt.Errorf("epoch %d, batch %d: %w", epoch, i+1, err)
		}
		l.metrics.Update(loss, correct, batch.Size())

		if l.opts.logEvery > 0 && (i+1)%l.opts.logEvery == 0 {
			l.opts.logger.Debug("training progress",
				zap.Int("epoch", epoch),
				zap.Int("batch", i+1),
				zap.Int("batches", len(batches)),
				zap.Float64("loss", loss),
			)
		}
	}

	l.epoch = epoch
	mean := l.metrics.MeanLoss()
	l.opts.logger.Info("training epoch complete",
		zap.Int("epoch", epoch),
		zap.Float64("loss", mean),
		zap.Float64("accuracy", l.metrics.MeanAccuracy()),
		zap.Duration("elapsed", time.Since(start)),
	)
	return mean, nil
}

// Step performs one optimization step on batch and returns its loss.
func (l *TrainingLoop) Step(batch *data.Batch) (float64, error) {
	loss, _, err := l.step(batch)
	return loss, err
}

// Metrics returns the counters of the current or last epoch.
func (l *TrainingLoop) Metrics() RunningMetrics {
	return l.metrics
}

// Epoch returns the number of completed epochs.
func (l *TrainingLoop) Epoch() int {
	return l.epoch
}

func (l *TrainingLoop) step(batch *data.Batch) (loss float64, correct int, err error) {
	l.opt.ZeroGrad()
	loss, correct, err = l.accumulate(batch)
	if err != nil {
		return 0, 0, err
	}
	l.opt.Step()
	return loss, correct, nil
}

// accumulate runs forward, loss and backward, adding the batch gradients to
// the parameters' gradients. It neither zeroes nor steps.
func (l *TrainingLoop) accumulate(batch *data.Batch) (loss float64, correct int, err error) {
	tape := l.backend.Tape()
	wasRecording := tape.IsRecording()
	tape.Clear()
	tape.StartRecording()
	defer func() {
		tape.Clear()
		if !wasRecording {
			tape.StopRecording()
		}
	}()

	output, err := forward(l.model, l.loss, batch.Inputs, l.backend)
	if err != nil {
		return 0, 0, err
	}
	lossTensor, err := l.loss.Forward(output, batch.Labels)
	if err != nil {
		return 0, 0, err
	}

	loss = lossTensor.Item()
	if math.IsNaN(loss) || math.IsInf(loss, 0) {
		return 0, 0, fmt.Errorf("%w: loss is %v", ErrNumericInstability, loss)
	}

	grads := autodiff.Backward(lossTensor, l.backend)
	if _, err := nn.AccumulateGrads(l.model.Parameters(), grads); err != nil {
		return 0, 0, err
	}
	return loss, CountCorrect(output.Argmax(1), batch.Labels), nil
}

// Fit alternates one training epoch and one validation pass per epoch and
// records the results. validator may be nil to train without validation.
// The logger comes from the trainer's options; epoch hooks registered on
// either the trainer or the validator run after every epoch.
func Fit(ctx context.Context, trainer *TrainingLoop, validator *ValidationPass, epochs int) (*History, error) {
	if epochs <= 0 {
		return nil, fmt.Errorf("epochs must be positive, got %d", epochs)
	}

	history := &History{}
	for range epochs {
		start := time.Now()

		trainLoss, err := trainer.RunEpoch(ctx)
		if err != nil {
			return history, err
		}
		report := EpochReport{
			Epoch:         trainer.Epoch(),
			TrainLoss:     trainLoss,
			TrainAccuracy: trainer.metrics.MeanAccuracy(),
		}

		if validator != nil {
			report.ValLoss, report.ValAccuracy, err = validator.Run(ctx)
			if err != nil {
				return history, fmt.Errorf("epoch %d validation: %w", report.Epoch, err)
			}
			report.Validated = true
		}
		report.Duration = time.Since(start)
		history.Epochs = append(history.Epochs, report)

		trainer.opts.logger.Info("epoch",
			zap.Int("epoch", report.Epoch),
			zap.Float64("train_loss", report.TrainLoss),
			zap.Float64("val_loss", report.ValLoss),
			zap.Float64("val_accuracy", report.ValAccuracy),
			zap.Duration("duration", report.Duration),
		)
		for _, hook := range trainer.opts.hooks {
			hook(report)
		}
		if validator != nil {
			for _, hook := range validator.opts.hooks {
				hook(report)
			}
		}
	}
	return history, nil
}

// IsCanceled reports whether err stems from context cancellation or timeout.
func IsCanceled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
