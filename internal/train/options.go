package train

import (
	"time"

	"go.uber.org/zap"
)

// EpochReport summarizes one epoch of Fit.
type EpochReport struct {
	Epoch         int
	TrainLoss     float64
	TrainAccuracy float64
	ValLoss       float64
	ValAccuracy   float64
	// Validated is set when a validation pass produced ValLoss and
	// ValAccuracy.
	Validated bool
	Duration  time.Duration
}

// Option configures a TrainingLoop or ValidationPass.
type Option func(*options)

type options struct {
	logger   *zap.Logger
	logEvery int
	hooks    []func(EpochReport)
}

func defaultOptions() options {
	return options{logger: zap.NewNop()}
}

func applyOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithLogger sets the logger. Epoch summaries log at Info, batch progress
// at Debug.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithLogEvery logs training loss every n batches (0 disables).
func WithLogEvery(n int) Option {
	return func(o *options) {
		o.logEvery = max(n, 0)
	}
}

// WithEpochHook registers fn to be called by Fit after every epoch. It
// works on both the training loop and the validation pass.
func WithEpochHook(fn func(EpochReport)) Option {
	return func(o *options) {
		if fn != nil {
			o.hooks = append(o.hooks, fn)
		}
	}
}
