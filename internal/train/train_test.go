package train

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/born-ml/ffnet/internal/autodiff"
	"github.com/born-ml/ffnet/internal/backend/cpu"
	"github.com/born-ml/ffnet/internal/data"
	"github.com/born-ml/ffnet/internal/nn"
	"github.com/born-ml/ffnet/internal/optim"
	"github.com/born-ml/ffnet/internal/tensor"
)

func newBackend() *autodiff.AutodiffBackend[*cpu.CPUBackend] {
	return autodiff.New(cpu.New())
}

func newClassifier(t *testing.T, backend tensor.Backend, cfg nn.ClassifierConfig) *nn.Classifier {
	t.Helper()
	model, err := nn.NewClassifier(cfg, backend)
	require.NoError(t, err)
	return model
}

func newBatch(t *testing.T, features []float64, cols int, labels []int) *data.Batch {
	t.Helper()
	inputs, err := tensor.RawFromSlice(features, tensor.Shape{len(labels), cols})
	require.NoError(t, err)
	b, err := data.NewBatch(inputs, labels)
	require.NoError(t, err)
	return b
}

func newLoader(t *testing.T, ds *data.Dataset, batchSize int) *data.Loader {
	t.Helper()
	l, err := data.NewLoader(ds, data.LoaderConfig{BatchSize: batchSize, Shuffle: true, Seed: 7})
	require.NoError(t, err)
	return l
}

// score evaluates the mean loss on batch without touching the tape.
func score(t *testing.T, model Model, loss nn.LossFunction, batch *data.Batch, backend Backend) float64 {
	t.Helper()
	var value float64
	err := backend.NoGrad(func() error {
		out, err := forward(model, loss, batch.Inputs, backend)
		if err != nil {
			return err
		}
		l, err := loss.Forward(out, batch.Labels)
		if err != nil {
			return err
		}
		value = l.Item()
		return nil
	})
	require.NoError(t, err)
	return value
}

func TestTrainingLoop_LossDecreasesOnSeparableData(t *testing.T) {
	backend := newBackend()
	model := newClassifier(t, backend, nn.ClassifierConfig{
		Widths:     []int{2, 8, 2},
		Activation: nn.ActivationReLU,
		Init:       nn.InitXavier,
		Seed:       1,
	})
	opt := optim.NewSGD(model.Parameters(), optim.SGDConfig{LR: 0.03})
	loop := NewTrainingLoop(model, nn.NewNLLLoss(), opt, newLoader(t, data.LinearlySeparable(200, 3), 20), backend)

	losses, err := loop.Run(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, losses, 5)
	assert.Less(t, losses[4], losses[0])
	assert.Equal(t, 5, loop.Epoch())
	for _, l := range losses {
		assert.False(t, math.IsNaN(l))
	}
}

func TestTrainingLoop_CrossEntropyOnLogits(t *testing.T) {
	backend := newBackend()
	model := newClassifier(t, backend, nn.ClassifierConfig{
		Widths:     []int{2, 8, 2},
		Activation: nn.ActivationTanh,
		Init:       nn.InitXavier,
		Seed:       2,
	})
	opt := optim.NewAdam(model.Parameters(), optim.AdamConfig{LR: 0.01})
	loop := NewTrainingLoop(model, nn.NewCrossEntropyLoss(), opt, newLoader(t, data.LinearlySeparable(200, 5), 25), backend)

	losses, err := loop.Run(context.Background(), 4)
	require.NoError(t, err)
	assert.Less(t, losses[3], losses[0])
}

func TestTrainingLoop_SingleStepDecreasesLoss(t *testing.T) {
	backend := newBackend()
	model := newClassifier(t, backend, nn.ClassifierConfig{
		Widths:     []int{4, 8, 3},
		Activation: nn.ActivationSigmoid,
		Seed:       11,
	})
	loss := nn.NewNLLLoss()
	opt := optim.NewSGD(model.Parameters(), optim.SGDConfig{LR: 0.1})
	loop := NewTrainingLoop(model, loss, opt, data.SliceSource{}, backend)

	batch := newBatch(t, []float64{
		0.5, -1.0, 0.25, 2.0,
		-0.3, 0.8, 1.5, -0.7,
	}, 4, []int{0, 2})

	before := score(t, model, loss, batch, backend)
	stepLoss, err := loop.Step(batch)
	require.NoError(t, err)
	assert.InDelta(t, before, stepLoss, 1e-12, "step reports the pre-update loss")

	after := score(t, model, loss, batch, backend)
	assert.Less(t, after, before)
}

func TestTrainingLoop_ZeroGradPreventsAccumulation(t *testing.T) {
	backend := newBackend()
	model := newClassifier(t, backend, nn.ClassifierConfig{
		Widths:     []int{4, 8, 3},
		Activation: nn.ActivationReLU,
		Init:       nn.InitXavier,
		Seed:       5,
	})
	opt := optim.NewSGD(model.Parameters(), optim.SGDConfig{LR: 0.1})
	loop := NewTrainingLoop(model, nn.NewNLLLoss(), opt, data.SliceSource{}, backend)
	batch := newBatch(t, []float64{1, 2, 3, 4, -1, 0.5, 0, 2}, 4, []int{1, 2})

	opt.ZeroGrad()
	_, _, err := loop.accumulate(batch)
	require.NoError(t, err)
	first := nn.GradNorm(model.Parameters())
	require.Positive(t, first)

	_, _, err = loop.accumulate(batch)
	require.NoError(t, err)
	assert.Greater(t, nn.GradNorm(model.Parameters()), first, "gradients accumulate without ZeroGrad")

	opt.ZeroGrad()
	_, _, err = loop.accumulate(batch)
	require.NoError(t, err)
	assert.InDelta(t, first, nn.GradNorm(model.Parameters()), 1e-12)
}

func TestTrainingLoop_RestoresRecordingState(t *testing.T) {
	backend := newBackend()
	model := newClassifier(t, backend, nn.ClassifierConfig{Widths: []int{2, 4, 2}, Seed: 2})
	opt := optim.NewSGD(model.Parameters(), optim.SGDConfig{LR: 0.05})
	loop := NewTrainingLoop(model, nn.NewNLLLoss(), opt, newLoader(t, data.LinearlySeparable(40, 2), 10), backend)
	tape := backend.Tape()
	require.False(t, tape.IsRecording())

	_, err := loop.Run(context.Background(), 2)
	require.NoError(t, err)
	assert.False(t, tape.IsRecording())
	assert.Zero(t, tape.NumOps())

	x, err := tensor.FromSlice([]float64{0.5, -1, 2, 1}, tensor.Shape{2, 2}, backend)
	require.NoError(t, err)
	for range 5 {
		_, err := model.Predict(x)
		require.NoError(t, err)
	}
	assert.Zero(t, tape.NumOps(), "predictions after training are not recorded")

	tape.StartRecording()
	_, err = loop.Step(newBatch(t, []float64{1, 1}, 2, []int{1}))
	require.NoError(t, err)
	assert.True(t, tape.IsRecording())
	assert.Zero(t, tape.NumOps())
	tape.StopRecording()

	_, err = loop.Step(newBatch(t, []float64{1, 1}, 2, []int{7}))
	require.ErrorIs(t, err, nn.ErrInvalidLabel)
	assert.False(t, tape.IsRecording())
	assert.Zero(t, tape.NumOps())
}

func TestTrainingLoop_BatchOfOne(t *testing.T) {
	backend := newBackend()
	model := newClassifier(t, backend, nn.ClassifierConfig{Widths: []int{2, 4, 2}, Seed: 3})
	opt := optim.NewSGD(model.Parameters(), optim.SGDConfig{LR: 0.05})
	loop := NewTrainingLoop(model, nn.NewNLLLoss(), opt, newLoader(t, data.LinearlySeparable(5, 1), 1), backend)

	losses, err := loop.Run(context.Background(), 2)
	require.NoError(t, err)
	assert.Len(t, losses, 2)
	assert.Equal(t, 5, loop.Metrics().Batches)
	assert.Equal(t, 5, loop.Metrics().Examples)
}

func TestTrainingLoop_Errors(t *testing.T) {
	backend := newBackend()
	model := newClassifier(t, backend, nn.ClassifierConfig{Widths: []int{4, 3}, Seed: 1})
	opt := optim.NewSGD(model.Parameters(), optim.SGDConfig{LR: 0.1})

	t.Run("invalid label", func(t *testing.T) {
		src := data.SliceSource{newBatch(t, make([]float64, 8), 4, []int{0, 3})}
		loop := NewTrainingLoop(model, nn.NewNLLLoss(), opt, src, backend)
		_, err := loop.Run(context.Background(), 1)
		assert.ErrorIs(t, err, nn.ErrInvalidLabel)
		assert.Zero(t, backend.Tape().NumOps(), "tape is cleared after a failed step")
	})

	t.Run("shape mismatch", func(t *testing.T) {
		src := data.SliceSource{newBatch(t, make([]float64, 6), 3, []int{0, 1})}
		loop := NewTrainingLoop(model, nn.NewNLLLoss(), opt, src, backend)
		_, err := loop.Run(context.Background(), 1)
		assert.ErrorIs(t, err, tensor.ErrShapeMismatch)
	})

	t.Run("empty source", func(t *testing.T) {
		loop := NewTrainingLoop(model, nn.NewNLLLoss(), opt, data.SliceSource{}, backend)
		_, err := loop.Run(context.Background(), 1)
		assert.ErrorIs(t, err, ErrEmptySource)
	})

	t.Run("non-positive epochs", func(t *testing.T) {
		loop := NewTrainingLoop(model, nn.NewNLLLoss(), opt, data.SliceSource{}, backend)
		_, err := loop.Run(context.Background(), 0)
		assert.Error(t, err)
	})

	t.Run("non-finite loss", func(t *testing.T) {
		src := data.SliceSource{newBatch(t, make([]float64, 8), 4, []int{0, 1})}
		loop := NewTrainingLoop(model, nanLoss{}, opt, src, backend)
		_, err := loop.Run(context.Background(), 1)
		assert.ErrorIs(t, err, ErrNumericInstability)
	})

	t.Run("canceled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		src := data.SliceSource{newBatch(t, make([]float64, 8), 4, []int{0, 1})}
		loop := NewTrainingLoop(model, nn.NewNLLLoss(), opt, src, backend)
		_, err := loop.Run(ctx, 1)
		assert.True(t, IsCanceled(err))
	})
}

// nanLoss always reports NaN.
type nanLoss struct{}

func (nanLoss) Forward(output *tensor.Tensor, _ []int) (*tensor.Tensor, error) {
	return tensor.Full(tensor.Shape{1}, math.NaN(), output.Backend()), nil
}

func (nanLoss) Convention() nn.OutputConvention { return nn.LogProbabilities }

func TestTrainingLoop_LogsProgress(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	backend := newBackend()
	model := newClassifier(t, backend, nn.ClassifierConfig{Widths: []int{2, 2}, Seed: 1})
	opt := optim.NewSGD(model.Parameters(), optim.SGDConfig{LR: 0.1})
	loop := NewTrainingLoop(model, nn.NewNLLLoss(), opt, newLoader(t, data.LinearlySeparable(8, 1), 2), backend,
		WithLogger(zap.New(core)), WithLogEvery(2))

	_, err := loop.Run(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 2, logs.FilterMessage("training progress").Len())
	assert.Equal(t, 1, logs.FilterMessage("training epoch complete").Len())
}
