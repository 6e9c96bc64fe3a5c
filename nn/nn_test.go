// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn_test

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/ffnet/autodiff"
	"github.com/born-ml/ffnet/backend/cpu"
	"github.com/born-ml/ffnet/nn"
	"github.com/born-ml/ffnet/tensor"
)

// TestModuleInterface verifies that concrete types implement Module.
func TestModuleInterface(t *testing.T) {
	backend := cpu.New()
	src := rand.NewPCG(1, 2)

	tests := []struct {
		name   string
		module nn.Module
		params int
	}{
		{name: "Linear", module: nn.NewLinear(10, 5, nn.Xavier(src), backend), params: 2},
		{name: "ReLU", module: nn.NewReLU(), params: 0},
		{name: "Dropout", module: nn.NewDropout(0.5, src), params: 0},
		{
			name: "Sequential",
			module: nn.NewSequential(
				nn.NewLinear(10, 5, nn.Normal(0.1, src), backend),
				nn.NewTanh(),
				nn.NewLinear(5, 3, nn.Normal(0.1, src), backend),
			),
			params: 4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := tt.module.Forward(tensor.Ones(tensor.Shape{2, 10}, backend))
			assert.Equal(t, 2, out.Shape()[0])
			assert.Len(t, tt.module.Parameters(), tt.params)
		})
	}
}

func TestClassifierTraining(t *testing.T) {
	backend := autodiff.New(cpu.New())
	model, err := nn.NewClassifier(nn.ClassifierConfig{
		Widths:     []int{3, 4, 2},
		Activation: nn.ActivationSigmoid,
		Seed:       7,
	}, backend)
	require.NoError(t, err)

	x, err := tensor.FromSlice([]float64{1, 0, -1, 0.5, 0.5, 0.5}, tensor.Shape{2, 3}, backend)
	require.NoError(t, err)

	backend.Tape().StartRecording()
	logProbs, err := model.Predict(x)
	require.NoError(t, err)
	for _, row := range [][]float64{logProbs.Data()[:2], logProbs.Data()[2:]} {
		assert.InDelta(t, 1.0, math.Exp(row[0])+math.Exp(row[1]), 1e-9)
	}

	loss, err := nn.NewNLLLoss().Forward(logProbs, []int{0, 1})
	require.NoError(t, err)
	n, err := nn.AccumulateGrads(model.Parameters(), autodiff.Backward(loss, backend))
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.Positive(t, nn.GradNorm(model.Parameters()))

	_, err = nn.NewNLLLoss().Forward(logProbs, []int{0, 2})
	assert.ErrorIs(t, err, nn.ErrInvalidLabel)

	_, err = model.Predict(tensor.Ones(tensor.Shape{2, 4}, backend))
	assert.ErrorIs(t, err, tensor.ErrShapeMismatch)
}

func TestNewLoss(t *testing.T) {
	loss, err := nn.NewLoss("cross_entropy")
	require.NoError(t, err)
	assert.Equal(t, nn.Logits, loss.Convention())

	_, err = nn.NewLoss("hinge")
	assert.ErrorIs(t, err, nn.ErrInvalidConfig)
}
