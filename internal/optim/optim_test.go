package optim_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/ffnet/internal/backend/cpu"
	"github.com/born-ml/ffnet/internal/nn"
	"github.com/born-ml/ffnet/internal/optim"
	"github.com/born-ml/ffnet/internal/tensor"
)

func newParam(t *testing.T, values, grad []float64) *nn.Parameter {
	t.Helper()
	x, err := tensor.FromSlice(values, tensor.Shape{len(values)}, cpu.New())
	require.NoError(t, err)
	p := nn.NewParameter("p", x)
	g, err := tensor.RawFromSlice(grad, tensor.Shape{len(grad)})
	require.NoError(t, err)
	require.NoError(t, p.AccumulateGrad(g))
	return p
}

func TestSGD_Step(t *testing.T) {
	p := newParam(t, []float64{1, 2}, []float64{0.5, -1})
	opt := optim.NewSGD([]*nn.Parameter{p}, optim.SGDConfig{LR: 0.1})

	opt.Step()
	assert.InDeltaSlice(t, []float64{0.95, 2.1}, p.Tensor().Data(), 1e-12)
	assert.Equal(t, 0.1, opt.GetLR())
}

func TestSGD_Momentum(t *testing.T) {
	p := newParam(t, []float64{0}, []float64{1})
	opt := optim.NewSGD([]*nn.Parameter{p}, optim.SGDConfig{LR: 0.1, Momentum: 0.9})

	opt.Step() // v = 1, p = -0.1
	opt.Step() // v = 1.9, p = -0.29
	assert.InDelta(t, -0.29, p.Tensor().Data()[0], 1e-12)

	state := opt.StateDict()
	require.Contains(t, state, "velocity.0")
	assert.InDelta(t, 1.9, state["velocity.0"].Data()[0], 1e-12)
	assert.Equal(t, tensor.Shape{1}, state["velocity.0"].Shape())

	state["velocity.0"].Data()[0] = 42
	assert.InDelta(t, 1.9, opt.StateDict()["velocity.0"].Data()[0], 1e-12, "state is a copy")
	state["velocity.0"].Data()[0] = 1.9

	fresh := optim.NewSGD([]*nn.Parameter{p}, optim.SGDConfig{LR: 0.1, Momentum: 0.9})
	require.NoError(t, fresh.LoadStateDict(state))
	assert.InDelta(t, 1.9, fresh.StateDict()["velocity.0"].Data()[0], 1e-12)
}

func TestSGD_DefaultsAndSetLR(t *testing.T) {
	opt := optim.NewSGD(nil, optim.SGDConfig{})
	assert.Equal(t, 0.01, opt.GetLR())
	opt.SetLR(0.5)
	assert.Equal(t, 0.5, opt.GetLR())
	assert.Empty(t, opt.StateDict())
}

func TestZeroGrad(t *testing.T) {
	p := newParam(t, []float64{1, 2}, []float64{3, 4})
	for _, opt := range []optim.Optimizer{
		optim.NewSGD([]*nn.Parameter{p}, optim.SGDConfig{}),
		optim.NewAdam([]*nn.Parameter{p}, optim.AdamConfig{}),
	} {
		opt.ZeroGrad()
		assert.Equal(t, []float64{0, 0}, p.Grad().Data())
	}
}

func TestAdam_FirstStepMovesByLR(t *testing.T) {
	// With bias correction the first update is lr * sign(grad).
	p := newParam(t, []float64{1, 1}, []float64{0.3, -20})
	opt := optim.NewAdam([]*nn.Parameter{p}, optim.AdamConfig{LR: 0.01})

	opt.Step()
	assert.InDeltaSlice(t, []float64{0.99, 1.01}, p.Tensor().Data(), 1e-6)

	state := opt.StateDict()
	assert.Equal(t, 1.0, state["t"].Data()[0])
	assert.Contains(t, state, "m.0")
	assert.Contains(t, state, "v.0")
}

func TestAdam_MinimizesQuadratic(t *testing.T) {
	p := newParam(t, []float64{5}, []float64{0})
	opt := optim.NewAdam([]*nn.Parameter{p}, optim.AdamConfig{LR: 0.1})

	for range 500 {
		opt.ZeroGrad()
		x := p.Tensor().Data()[0]
		g, err := tensor.RawFromSlice([]float64{2 * (x - 2)}, tensor.Shape{1})
		require.NoError(t, err)
		require.NoError(t, p.AccumulateGrad(g))
		opt.Step()
	}
	assert.InDelta(t, 2.0, p.Tensor().Data()[0], 1e-2)
}

func TestAdam_LoadStateDictShapeMismatch(t *testing.T) {
	p := newParam(t, []float64{1, 2}, []float64{0, 0})
	opt := optim.NewAdam([]*nn.Parameter{p}, optim.AdamConfig{})

	bad := tensor.MustRaw(tensor.Shape{3}, tensor.CPU)
	err := opt.LoadStateDict(map[string]*tensor.Raw{"m.0": bad})
	assert.ErrorIs(t, err, tensor.ErrShapeMismatch)
}

func TestNew(t *testing.T) {
	p := newParam(t, []float64{1}, []float64{1})
	params := []*nn.Parameter{p}

	opt, err := optim.New("sgd", params, 0.03, 0)
	require.NoError(t, err)
	assert.IsType(t, &optim.SGD{}, opt)
	assert.Equal(t, 0.03, opt.GetLR())

	opt, err = optim.New("momentum", params, 0.03, 0)
	require.NoError(t, err)
	assert.Equal(t, 0.9, opt.(*optim.SGD).Momentum())

	opt, err = optim.New("Adam", params, 0.001, 0)
	require.NoError(t, err)
	assert.IsType(t, &optim.Adam{}, opt)

	_, err = optim.New("lbfgs", params, 0.1, 0)
	assert.ErrorIs(t, err, optim.ErrUnknownOptimizer)
}

func TestKnown(t *testing.T) {
	for _, name := range []string{"sgd", " SGD ", "momentum", "adam", ""} {
		assert.True(t, optim.Known(name), name)
	}
	assert.False(t, optim.Known("rmsprop"))
}
