package nn_test

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/ffnet/internal/autodiff"
	"github.com/born-ml/ffnet/internal/backend/cpu"
	"github.com/born-ml/ffnet/internal/nn"
	"github.com/born-ml/ffnet/internal/tensor"
)

type Backend = *autodiff.AutodiffBackend[*cpu.CPUBackend]

func newBackend() Backend {
	return autodiff.New(cpu.New())
}

func fromSlice(t *testing.T, backend tensor.Backend, data []float64, shape ...int) *tensor.Tensor {
	t.Helper()
	x, err := tensor.FromSlice(data, tensor.Shape(shape), backend)
	require.NoError(t, err)
	return x
}

func randomBatch(t *testing.T, backend tensor.Backend, rows, cols int, seed uint64) *tensor.Tensor {
	t.Helper()
	r := rand.New(rand.NewPCG(seed, seed*31+7))
	data := make([]float64, rows*cols)
	for i := range data {
		data[i] = r.NormFloat64()
	}
	return fromSlice(t, backend, data, rows, cols)
}

func TestParameter(t *testing.T) {
	backend := newBackend()
	data := fromSlice(t, backend, []float64{1, 2, 3}, 3)
	param := nn.NewParameter("test_param", data)

	assert.Equal(t, "test_param", param.Name())
	assert.Same(t, data, param.Tensor())
	require.NotNil(t, param.Grad(), "gradient is allocated at construction")
	assert.Equal(t, []float64{0, 0, 0}, param.Grad().Data())

	g, err := tensor.RawFromSlice([]float64{0.1, 0.2, 0.3}, tensor.Shape{3})
	require.NoError(t, err)
	require.NoError(t, param.AccumulateGrad(g))
	require.NoError(t, param.AccumulateGrad(g))
	assert.InDeltaSlice(t, []float64{0.2, 0.4, 0.6}, param.Grad().Data(), 1e-12)

	param.ZeroGrad()
	assert.Equal(t, []float64{0, 0, 0}, param.Grad().Data())

	bad, err := tensor.RawFromSlice([]float64{1, 2}, tensor.Shape{2})
	require.NoError(t, err)
	assert.ErrorIs(t, param.AccumulateGrad(bad), tensor.ErrShapeMismatch)
}

func TestLinear(t *testing.T) {
	backend := newBackend()
	layer := nn.NewLinear(4, 3, nn.Normal(0.01, rand.NewPCG(1, 2)), backend)

	assert.Equal(t, 4, layer.InFeatures())
	assert.Equal(t, 3, layer.OutFeatures())
	assert.Equal(t, tensor.Shape{4, 3}, layer.Weight().Shape())
	assert.Equal(t, tensor.Shape{3}, layer.Bias().Shape())
	assert.Equal(t, []float64{0, 0, 0}, layer.Bias().Tensor().Data(), "bias starts at zero")
	assert.Len(t, layer.Parameters(), 2)

	out := layer.Forward(randomBatch(t, backend, 5, 4, 1))
	assert.Equal(t, tensor.Shape{5, 3}, out.Shape())

	assert.Panics(t, func() { layer.Forward(randomBatch(t, backend, 5, 3, 1)) })
}

func TestLinear_ComputesAffine(t *testing.T) {
	backend := cpu.New()
	ones := func(_, _ int, shape tensor.Shape, b tensor.Backend) *tensor.Tensor {
		return tensor.Ones(shape, b)
	}
	layer := nn.NewLinear(2, 2, ones, backend)
	layer.Bias().Tensor().Data()[1] = 10

	out := layer.Forward(fromSlice(t, backend, []float64{1, 2, 3, 4}, 2, 2))
	assert.Equal(t, []float64{3, 13, 7, 17}, out.Data())
}

func TestInitializers(t *testing.T) {
	backend := cpu.New()

	t.Run("normal std", func(t *testing.T) {
		w := nn.Normal(0.01, rand.NewPCG(3, 4))(100, 100, tensor.Shape{100, 100}, backend)
		var sum, sq float64
		for _, v := range w.Data() {
			sum += v
			sq += v * v
		}
		n := float64(w.NumElements())
		mean := sum / n
		std := math.Sqrt(sq/n - mean*mean)
		assert.InDelta(t, 0, mean, 1e-3)
		assert.InDelta(t, 0.01, std, 1e-3)
	})

	t.Run("xavier bound", func(t *testing.T) {
		w := nn.Xavier(rand.NewPCG(5, 6))(10, 20, tensor.Shape{10, 20}, backend)
		bound := math.Sqrt(6.0 / 30)
		for _, v := range w.Data() {
			assert.LessOrEqual(t, math.Abs(v), bound)
		}
	})

	t.Run("parse", func(t *testing.T) {
		s, err := nn.ParseInitScheme("Xavier")
		require.NoError(t, err)
		assert.Equal(t, nn.InitXavier, s)
		_, err = nn.ParseInitScheme("he")
		assert.ErrorIs(t, err, nn.ErrInvalidConfig)
	})
}

func TestActivations(t *testing.T) {
	backend := newBackend()
	x := fromSlice(t, backend, []float64{-1, 0, 2}, 1, 3)

	assert.Equal(t, []float64{0, 0, 2}, nn.NewReLU().Forward(x).Data())
	assert.InDelta(t, 0.5, nn.NewSigmoid().Forward(x).Data()[1], 1e-12)
	assert.InDelta(t, math.Tanh(2), nn.NewTanh().Forward(x).Data()[2], 1e-12)

	for _, name := range []string{"relu", "Sigmoid", " tanh "} {
		a, err := nn.ParseActivation(name)
		require.NoError(t, err, name)
		m, err := nn.NewActivation(a)
		require.NoError(t, err)
		assert.Nil(t, m.Parameters())
	}

	_, err := nn.ParseActivation("gelu")
	assert.ErrorIs(t, err, nn.ErrInvalidConfig)
}

func TestDropout(t *testing.T) {
	backend := cpu.New()
	x := tensor.Ones(tensor.Shape{50, 40}, backend)
	d := nn.NewDropout(0.5, rand.NewPCG(9, 9))

	out := d.Forward(x).Data()
	zeros := 0
	for _, v := range out {
		if v == 0 {
			zeros++
			continue
		}
		assert.InDelta(t, 2.0, v, 1e-12, "survivors are scaled by 1/(1-p)")
	}
	assert.InDelta(t, 0.5, float64(zeros)/float64(len(out)), 0.05)

	d.SetTraining(false)
	assert.Same(t, x, d.Forward(x), "eval mode is the identity")

	assert.Panics(t, func() { nn.NewDropout(1, nil) })
}

func TestSequential(t *testing.T) {
	backend := newBackend()
	src := rand.NewPCG(1, 1)
	seq := nn.NewSequential(
		nn.NewLinear(4, 8, nn.Normal(0.1, src), backend),
		nn.NewReLU(),
	)
	seq.Add(nn.NewLinear(8, 2, nn.Normal(0.1, src), backend))

	assert.Equal(t, 3, seq.Len())
	assert.Len(t, seq.Parameters(), 4)
	assert.IsType(t, &nn.ReLU{}, seq.Module(1))
	assert.Panics(t, func() { seq.Module(3) })

	out := seq.Forward(randomBatch(t, backend, 3, 4, 2))
	assert.Equal(t, tensor.Shape{3, 2}, out.Shape())
}
