package autodiff_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/ffnet/internal/autodiff"
	"github.com/born-ml/ffnet/internal/backend/cpu"
	"github.com/born-ml/ffnet/internal/tensor"
)

func TestAutodiffBackend_Metadata(t *testing.T) {
	backend := autodiff.New(cpu.New())
	assert.Equal(t, "Autodiff(CPU)", backend.Name())
	assert.Equal(t, tensor.CPU, backend.Device())
	assert.NotNil(t, backend.Inner())
}

func TestTape_Recording(t *testing.T) {
	backend := autodiff.New(cpu.New())
	tape := backend.Tape()

	assert.False(t, tape.IsRecording(), "tape should not record initially")

	tape.StartRecording()
	assert.True(t, tape.IsRecording())

	tape.StopRecording()
	assert.False(t, tape.IsRecording())
}

func TestTape_OnlyRecordsWhileRecording(t *testing.T) {
	backend := autodiff.New(cpu.New())
	a := tensor.Ones(tensor.Shape{2}, backend)

	a.Add(a)
	assert.Zero(t, backend.Tape().NumOps())

	backend.Tape().StartRecording()
	a.Add(a)
	assert.Equal(t, 1, backend.Tape().NumOps())
}

func TestTape_Clear(t *testing.T) {
	backend := autodiff.New(cpu.New())
	tape := backend.Tape()
	tape.StartRecording()

	a, err := tensor.FromSlice([]float64{1, 2}, tensor.Shape{2}, backend)
	require.NoError(t, err)
	a.Add(a).Mul(a)
	require.Equal(t, 2, tape.NumOps())

	tape.Clear()
	assert.Zero(t, tape.NumOps())
	assert.True(t, tape.IsRecording(), "Clear preserves recording state")
}

func TestBackward_Square(t *testing.T) {
	backend := autodiff.New(cpu.New())
	backend.Tape().StartRecording()

	x, err := tensor.FromSlice([]float64{2, -3}, tensor.Shape{2}, backend)
	require.NoError(t, err)
	y := x.Mul(x)

	grads := autodiff.Backward(y, backend)
	assert.Equal(t, []float64{4, -6}, grads[x.Raw()].Data())
}

func TestBackward_LinearBias(t *testing.T) {
	backend := autodiff.New(cpu.New())
	backend.Tape().StartRecording()

	x, err := tensor.FromSlice([]float64{1, 2, 3, 4, 5, 6}, tensor.Shape{3, 2}, backend)
	require.NoError(t, err)
	w, err := tensor.FromSlice([]float64{1, 0, 0, 1}, tensor.Shape{2, 2}, backend)
	require.NoError(t, err)
	b := tensor.Zeros(tensor.Shape{2}, backend)

	loss := x.MatMul(w).Add(b).Sum()
	grads := autodiff.Backward(loss, backend)

	// d/db sums the ones gradient over the three rows.
	assert.Equal(t, tensor.Shape{2}, grads[b.Raw()].Shape())
	assert.Equal(t, []float64{3, 3}, grads[b.Raw()].Data())
	// d/dW = x^T @ ones
	assert.Equal(t, []float64{9, 9, 12, 12}, grads[w.Raw()].Data())
}

func TestBackward_SeedsGivenOutput(t *testing.T) {
	backend := autodiff.New(cpu.New())
	backend.Tape().StartRecording()

	x, err := tensor.FromSlice([]float64{3}, tensor.Shape{1}, backend)
	require.NoError(t, err)
	y := x.Mul(x)
	_ = y.Exp() // recorded after y, must not contribute

	grads := autodiff.Backward(y, backend)
	assert.Equal(t, []float64{6}, grads[x.Raw()].Data())
}

func TestBackward_NoOpsPanics(t *testing.T) {
	backend := autodiff.New(cpu.New())
	x := tensor.Ones(tensor.Shape{1}, backend)
	assert.Panics(t, func() { autodiff.Backward(x, backend) })
}

func TestBackward_DoesNotRecordGradientOps(t *testing.T) {
	backend := autodiff.New(cpu.New())
	backend.Tape().StartRecording()

	x := tensor.Ones(tensor.Shape{2, 2}, backend)
	w := tensor.Ones(tensor.Shape{2, 2}, backend)
	loss := x.MatMul(w).Sum()
	before := backend.Tape().NumOps()

	autodiff.Backward(loss, backend)
	assert.Equal(t, before, backend.Tape().NumOps())
	assert.True(t, backend.Tape().IsRecording())
}

func TestNoGrad(t *testing.T) {
	backend := autodiff.New(cpu.New())
	tape := backend.Tape()
	tape.StartRecording()
	x := tensor.Ones(tensor.Shape{2}, backend)

	t.Run("disables recording", func(t *testing.T) {
		err := backend.NoGrad(func() error {
			assert.False(t, tape.IsRecording())
			x.Add(x)
			return nil
		})
		require.NoError(t, err)
		assert.Zero(t, tape.NumOps())
		assert.True(t, tape.IsRecording())
	})

	t.Run("restores on error", func(t *testing.T) {
		boom := errors.New("boom")
		err := backend.NoGrad(func() error { return boom })
		assert.ErrorIs(t, err, boom)
		assert.True(t, tape.IsRecording())
	})

	t.Run("restores on panic", func(t *testing.T) {
		assert.Panics(t, func() {
			_ = backend.NoGrad(func() error { panic("mid-pass") })
		})
		assert.True(t, tape.IsRecording())
	})

	t.Run("preserves stopped state", func(t *testing.T) {
		tape.StopRecording()
		defer tape.StartRecording()

		require.NoError(t, backend.NoGrad(func() error { return nil }))
		assert.False(t, tape.IsRecording())
	})

	t.Run("nested", func(t *testing.T) {
		err := backend.NoGrad(func() error {
			return backend.NoGrad(func() error { return nil })
		})
		require.NoError(t, err)
		assert.True(t, tape.IsRecording())
	})
}
