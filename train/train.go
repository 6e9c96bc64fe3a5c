// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package train runs training and validation loops for a classifier.
//
// Example:
//
//	backend := autodiff.New(cpu.New())
//	model, _ := nn.NewClassifier(cfg, backend)
//	loss := nn.NewNLLLoss()
//	opt := optim.NewSGD(model.Parameters(), optim.SGDConfig{LR: 0.003})
//
//	trainer := train.NewTrainingLoop(model, loss, opt, trainLoader, backend)
//	validator := train.NewValidationPass(model, loss, testLoader, backend)
//	history, err := train.Fit(ctx, trainer, validator, 5)
package train

import (
	"context"

	"github.com/born-ml/ffnet/autodiff"
	"github.com/born-ml/ffnet/data"
	"github.com/born-ml/ffnet/internal/train"
	"github.com/born-ml/ffnet/nn"
	"github.com/born-ml/ffnet/optim"
)

// Errors.
var (
	ErrNumericInstability = train.ErrNumericInstability
	ErrEmptySource        = train.ErrEmptySource
)

// Model is what the loops need from a classifier.
type Model = train.Model

// TrainingLoop fits a model with a loss and an optimizer.
type TrainingLoop = train.TrainingLoop

// NewTrainingLoop creates a training loop.
func NewTrainingLoop(model Model, loss nn.LossFunction, opt optim.Optimizer, source data.Source, backend autodiff.BackwardCapable, opts ...Option) *TrainingLoop {
	return train.NewTrainingLoop(model, loss, opt, source, backend, opts...)
}

// ValidationPass scores a model without recording gradients.
type ValidationPass = train.ValidationPass

// NewValidationPass creates a validation pass.
func NewValidationPass(model Model, loss nn.LossFunction, source data.Source, backend autodiff.BackwardCapable, opts ...Option) *ValidationPass {
	return train.NewValidationPass(model, loss, source, backend, opts...)
}

// Fit alternates a training epoch and a validation pass per epoch.
func Fit(ctx context.Context, trainer *TrainingLoop, validator *ValidationPass, epochs int) (*History, error) {
	return train.Fit(ctx, trainer, validator, epochs)
}

// History and per-epoch results.
type (
	History        = train.History
	EpochReport    = train.EpochReport
	RunningMetrics = train.RunningMetrics
)

// Option configures a loop.
type Option = train.Option

// WithLogger sets the zap logger.
var WithLogger = train.WithLogger

// WithLogEvery logs training progress every n batches.
var WithLogEvery = train.WithLogEvery

// WithEpochHook registers a callback run by Fit after every epoch.
var WithEpochHook = train.WithEpochHook

// CountCorrect counts predictions equal to their labels.
func CountCorrect(preds, labels []int) int {
	return train.CountCorrect(preds, labels)
}

// IsCanceled reports whether err came from a canceled or expired context.
func IsCanceled(err error) bool {
	return train.IsCanceled(err)
}
