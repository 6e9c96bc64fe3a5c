package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"

	"github.com/born-ml/ffnet/internal/nn"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, []int{784, 128, 64, 10}, cfg.Model.Widths)
	assert.Equal(t, 0.003, cfg.Optimizer.LR)
	assert.Equal(t, 5, cfg.Epochs)
	assert.Equal(t, 64, cfg.BatchSize)

	cls, err := cfg.Classifier()
	require.NoError(t, err)
	assert.Equal(t, nn.ActivationReLU, cls.Activation)
	assert.Equal(t, nn.InitNormal, cls.Init)
}

func TestParse_OverlaysDefaults(t *testing.T) {
	cfg, err := Parse(strings.NewReader(`
model:
  widths: [2, 16, 2]
  activation: tanh
  init: xavier
optimizer:
  name: adam
  lr: 0.01
data:
  kind: synthetic
  samples: 400
epochs: 3
`))
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())
	assert.Equal(t, []int{2, 16, 2}, cfg.Model.Widths)
	assert.Equal(t, "adam", cfg.Optimizer.Name)
	assert.Equal(t, 3, cfg.Epochs)
	assert.Equal(t, 64, cfg.BatchSize, "unset keys keep their default")
	assert.Equal(t, 0.2, cfg.Data.ValSplit)
}

func TestParse_Empty(t *testing.T) {
	cfg, err := Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestParse_UnknownKey(t *testing.T) {
	_, err := Parse(strings.NewReader("epoch: 3\n"))
	assert.Error(t, err)
}

func TestValidate_ReportsEveryProblem(t *testing.T) {
	cfg := Default()
	cfg.Model.Widths = []int{784}
	cfg.Model.Activation = "gelu"
	cfg.Optimizer.Name = "rmsprop"
	cfg.Optimizer.LR = 0
	cfg.Loss = "hinge"
	cfg.Epochs = 0
	cfg.BatchSize = -1
	cfg.Data.Kind = "cifar"

	err := cfg.Validate()
	require.Error(t, err)
	assert.Len(t, multierr.Errors(err), 7)
}

func TestValidate_Synthetic(t *testing.T) {
	cfg := Default()
	cfg.Data.Kind = DataSynthetic
	assert.Error(t, cfg.Validate(), "784 inputs cannot take 2-feature data")

	cfg.Model.Widths = []int{2, 8, 2}
	assert.NoError(t, cfg.Validate())

	cfg.Data.ValSplit = 1
	assert.Error(t, cfg.Validate())
}

func TestApplyOverrides(t *testing.T) {
	cfg := Default()
	cfg.ApplyOverrides(Overrides{
		Epochs:     9,
		LR:         0.5,
		BatchSize:  8,
		Checkpoint: "out.safetensors",
		Synthetic:  true,
	})
	assert.Equal(t, 9, cfg.Epochs)
	assert.Equal(t, 0.5, cfg.Optimizer.LR)
	assert.Equal(t, 8, cfg.BatchSize)
	assert.Equal(t, "out.safetensors", cfg.Output.Checkpoint)
	assert.Equal(t, DataSynthetic, cfg.Data.Kind)
	assert.Equal(t, []int{2, 128, 64, 2}, cfg.Model.Widths)
	assert.NoError(t, cfg.Validate())

	cfg.ApplyOverrides(Overrides{})
	assert.Equal(t, 9, cfg.Epochs, "zero overrides change nothing")

	cfg.ApplyOverrides(Overrides{DataDir: "/mnist"})
	assert.Equal(t, DataMNIST, cfg.Data.Kind)
	assert.Equal(t, "/mnist", cfg.Data.Dir)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	require.NoError(t, os.WriteFile(path, []byte("epochs: 2\nbatch_size: 32\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Epochs)

	require.NoError(t, os.WriteFile(path, []byte("epochs: 0\n"), 0o600))
	_, err = Load(path)
	assert.Error(t, err)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
