// Package config loads and validates the YAML description of a training run.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"github.com/born-ml/ffnet/internal/nn"
	"github.com/born-ml/ffnet/internal/optim"
)

// Dataset kinds.
const (
	DataMNIST     = "mnist"
	DataSynthetic = "synthetic"
	DataBlobs     = "blobs"
)

// Config captures the knobs for a training run.
type Config struct {
	Model     ModelConfig     `yaml:"model"`
	Optimizer OptimizerConfig `yaml:"optimizer"`
	Loss      string          `yaml:"loss"`
	Epochs    int             `yaml:"epochs"`
	BatchSize int             `yaml:"batch_size"`
	Seed      uint64          `yaml:"seed"`
	Data      DataConfig      `yaml:"data"`
	Output    OutputConfig    `yaml:"output"`
	Log       LogConfig       `yaml:"log"`
}

// ModelConfig describes the classifier.
type ModelConfig struct {
	Widths     []int   `yaml:"widths"`
	Activation string  `yaml:"activation"`
	Init       string  `yaml:"init"`
	InitStd    float64 `yaml:"init_std"`
	Dropout    float64 `yaml:"dropout"`
}

// OptimizerConfig selects and tunes the optimizer.
type OptimizerConfig struct {
	Name     string  `yaml:"name"`
	LR       float64 `yaml:"lr"`
	Momentum float64 `yaml:"momentum"`
}

// DataConfig selects the dataset.
type DataConfig struct {
	// Kind is "mnist" (any IDX dataset, including Fashion-MNIST),
	// "synthetic" (two linearly separable classes) or "blobs".
	Kind string `yaml:"kind"`
	Dir  string `yaml:"dir"`
	// TrainLimit and TestLimit cap the examples read (0 = all).
	TrainLimit int `yaml:"train_limit"`
	TestLimit  int `yaml:"test_limit"`
	// Samples sizes the generated synthetic and blob datasets.
	Samples int `yaml:"samples"`
	// ValSplit is the held-out fraction for generated datasets.
	ValSplit  float64 `yaml:"val_split"`
	Normalize bool    `yaml:"normalize"`
	Shuffle   bool    `yaml:"shuffle"`
}

// OutputConfig names the files a run produces. Empty paths are skipped.
type OutputConfig struct {
	Checkpoint string `yaml:"checkpoint"`
	Plot       string `yaml:"plot"`
}

// LogConfig controls logging.
type LogConfig struct {
	Level string `yaml:"level"`
	JSON  bool   `yaml:"json"`
	Every int    `yaml:"every"`
}

// Default returns the classic MNIST setup: 784-128-64-10 with ReLU,
// SGD at lr 0.003, NLL loss, 5 epochs of batch 64.
func Default() *Config {
	return &Config{
		Model: ModelConfig{
			Widths:     []int{784, 128, 64, 10},
			Activation: "relu",
			Init:       "normal",
			InitStd:    nn.DefaultInitStd,
		},
		Optimizer: OptimizerConfig{Name: "sgd", LR: 0.003},
		Loss:      "nll",
		Epochs:    5,
		BatchSize: 64,
		Seed:      1,
		Data: DataConfig{
			Kind:      DataMNIST,
			Dir:       "./data",
			Samples:   1000,
			ValSplit:  0.2,
			Normalize: true,
			Shuffle:   true,
		},
		Log: LogConfig{Level: "info", Every: 100},
	}
}

// Load reads a YAML file on top of Default and validates the result.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	cfg, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse decodes YAML on top of Default. Unknown keys are rejected.
// The result is not validated.
func Parse(r io.Reader) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return cfg, nil
}

// Overrides captures CLI supplied values. Zero values leave the config
// unchanged.
type Overrides struct {
	Epochs     int
	BatchSize  int
	LR         float64
	Seed       uint64
	DataDir    string
	Synthetic  bool
	Checkpoint string
	Plot       string
	LogLevel   string
}

// ApplyOverrides updates c using any non-zero override.
func (c *Config) ApplyOverrides(o Overrides) {
	if o.Epochs > 0 {
		c.Epochs = o.Epochs
	}
	if o.BatchSize > 0 {
		c.BatchSize = o.BatchSize
	}
	if o.LR > 0 {
		c.Optimizer.LR = o.LR
	}
	if o.Seed != 0 {
		c.Seed = o.Seed
	}
	if o.DataDir != "" {
		c.Data.Dir = o.DataDir
		c.Data.Kind = DataMNIST
	}
	if o.Synthetic {
		c.Data.Kind = DataSynthetic
		if len(c.Model.Widths) > 0 {
			c.Model.Widths[0] = 2
			c.Model.Widths[len(c.Model.Widths)-1] = 2
		}
	}
	if o.Checkpoint != "" {
		c.Output.Checkpoint = o.Checkpoint
	}
	if o.Plot != "" {
		c.Output.Plot = o.Plot
	}
	if o.LogLevel != "" {
		c.Log.Level = o.LogLevel
	}
}

// Classifier converts the model section into an nn.ClassifierConfig.
func (c *Config) Classifier() (nn.ClassifierConfig, error) {
	act, err := nn.ParseActivation(c.Model.Activation)
	if err != nil {
		return nn.ClassifierConfig{}, err
	}
	scheme, err := nn.ParseInitScheme(c.Model.Init)
	if err != nil {
		return nn.ClassifierConfig{}, err
	}
	return nn.ClassifierConfig{
		Widths:     append([]int(nil), c.Model.Widths...),
		Activation: act,
		Init:       scheme,
		InitStd:    c.Model.InitStd,
		Dropout:    c.Model.Dropout,
		Seed:       c.Seed,
	}, nil
}

// Validate reports every problem with the config at once.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	var err error
	cls, cerr := c.Classifier()
	if cerr != nil {
		err = multierr.Append(err, cerr)
	} else {
		err = multierr.Append(err, cls.Validate())
	}

	if !optim.Known(c.Optimizer.Name) {
		err = multierr.Append(err, fmt.Errorf("%w: %q", optim.ErrUnknownOptimizer, c.Optimizer.Name))
	}
	if c.Optimizer.LR <= 0 {
		err = multierr.Append(err, fmt.Errorf("optimizer.lr must be > 0 (got %v)", c.Optimizer.LR))
	}
	if c.Optimizer.Momentum < 0 || c.Optimizer.Momentum >= 1 {
		err = multierr.Append(err, fmt.Errorf("optimizer.momentum must be in [0, 1) (got %v)", c.Optimizer.Momentum))
	}
	if _, lerr := nn.NewLoss(c.Loss); lerr != nil {
		err = multierr.Append(err, lerr)
	}
	if c.Epochs <= 0 {
		err = multierr.Append(err, fmt.Errorf("epochs must be > 0 (got %d)", c.Epochs))
	}
	if c.BatchSize <= 0 {
		err = multierr.Append(err, fmt.Errorf("batch_size must be > 0 (got %d)", c.BatchSize))
	}
	err = multierr.Append(err, c.Data.validate(c.Model.Widths))
	if c.Log.Every < 0 {
		err = multierr.Append(err, fmt.Errorf("log.every must not be negative (got %d)", c.Log.Every))
	}
	return err
}

func (d DataConfig) validate(widths []int) error {
	var err error
	switch d.Kind {
	case DataMNIST:
		if d.Dir == "" {
			err = multierr.Append(err, errors.New("data.dir must be set for mnist data"))
		}
	case DataSynthetic:
		if len(widths) >= 2 && (widths[0] != 2 || widths[len(widths)-1] != 2) {
			err = multierr.Append(err, fmt.Errorf("synthetic data needs 2 inputs and 2 outputs (widths %v)", widths))
		}
	case DataBlobs:
	default:
		err = multierr.Append(err, fmt.Errorf("unknown data.kind %q", d.Kind))
	}

	if d.Kind != DataMNIST {
		if d.Samples < 2 {
			err = multierr.Append(err, fmt.Errorf("data.samples must be >= 2 (got %d)", d.Samples))
		}
		if d.ValSplit <= 0 || d.ValSplit >= 1 {
			err = multierr.Append(err, fmt.Errorf("data.val_split must be in (0, 1) (got %v)", d.ValSplit))
		}
	}
	if d.TrainLimit < 0 || d.TestLimit < 0 {
		err = multierr.Append(err, errors.New("data limits must not be negative"))
	}
	return err
}
