package main

import (
	"fmt"

	"github.com/urfave/cli/v2"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/born-ml/ffnet/internal/autodiff"
	"github.com/born-ml/ffnet/internal/backend/cpu"
	"github.com/born-ml/ffnet/internal/checkpoint"
	"github.com/born-ml/ffnet/internal/config"
	"github.com/born-ml/ffnet/internal/data"
	"github.com/born-ml/ffnet/internal/logging"
	"github.com/born-ml/ffnet/internal/nn"
	"github.com/born-ml/ffnet/internal/optim"
	"github.com/born-ml/ffnet/internal/report"
	"github.com/born-ml/ffnet/internal/train"
)

func trainCommand() *cli.Command {
	return &cli.Command{
		Name:  "train",
		Usage: "train a classifier and report per-epoch metrics",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: flagConfig, Usage: "YAML run config"},
			&cli.IntFlag{Name: flagEpochs, Usage: "number of epochs"},
			&cli.Float64Flag{Name: flagLR, Usage: "learning rate"},
			&cli.IntFlag{Name: flagBatchSize, Usage: "examples per batch"},
			&cli.StringFlag{Name: flagData, Usage: "directory holding MNIST IDX files"},
			&cli.BoolFlag{Name: flagSynthetic, Usage: "train on two linearly separable classes"},
			&cli.StringFlag{Name: flagCheckpoint, Usage: "write the trained model here"},
			&cli.StringFlag{Name: flagPlot, Usage: "write a loss curve PNG here"},
			&cli.Uint64Flag{Name: flagSeed, Usage: "seed for init, dropout and shuffling"},
			&cli.StringFlag{Name: flagLogLevel, Usage: "debug, info, warn or error"},
			&cli.BoolFlag{Name: flagLogJSON, Usage: "log JSON lines"},
		},
		Action: runTrain,
	}
}

func runTrain(c *cli.Context) error {
	cfg := config.Default()
	if path := c.String(flagConfig); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	cfg.ApplyOverrides(config.Overrides{
		Epochs:     c.Int(flagEpochs),
		BatchSize:  c.Int(flagBatchSize),
		LR:         c.Float64(flagLR),
		Seed:       c.Uint64(flagSeed),
		DataDir:    c.String(flagData),
		Synthetic:  c.Bool(flagSynthetic),
		Checkpoint: c.String(flagCheckpoint),
		Plot:       c.String(flagPlot),
		LogLevel:   c.String(flagLogLevel),
	})
	if c.Bool(flagLogJSON) {
		cfg.Log.JSON = true
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.JSON)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	trainSet, valSet, err := loadData(cfg)
	if err != nil {
		return err
	}
	if got, want := trainSet.NumFeatures(), cfg.Model.Widths[0]; got != want {
		return fmt.Errorf("dataset has %d features but the model expects %d", got, want)
	}
	logger.Info("data loaded",
		zap.String("kind", cfg.Data.Kind),
		zap.Int("train", trainSet.Len()),
		zap.Int("validation", valSet.Len()))

	clsCfg, err := cfg.Classifier()
	if err != nil {
		return err
	}
	backend := autodiff.New(cpu.New())
	model, err := nn.NewClassifier(clsCfg, backend)
	if err != nil {
		return err
	}
	loss, err := nn.NewLoss(cfg.Loss)
	if err != nil {
		return err
	}
	opt, err := optim.New(cfg.Optimizer.Name, model.Parameters(), cfg.Optimizer.LR, cfg.Optimizer.Momentum)
	if err != nil {
		return err
	}
	logger.Info("model built",
		zap.Stringer("model", model),
		zap.Int("parameters", model.NumParameters()),
		zap.String("optimizer", cfg.Optimizer.Name),
		zap.Float64("lr", cfg.Optimizer.LR))

	trainLoader, err := data.NewLoader(trainSet, data.LoaderConfig{
		BatchSize: cfg.BatchSize,
		Shuffle:   cfg.Data.Shuffle,
		Seed:      cfg.Seed,
	})
	if err != nil {
		return err
	}
	valLoader, err := data.NewLoader(valSet, data.LoaderConfig{BatchSize: cfg.BatchSize})
	if err != nil {
		return err
	}

	opts := []train.Option{train.WithLogger(logger), train.WithLogEvery(cfg.Log.Every)}
	trainer := train.NewTrainingLoop(model, loss, opt, trainLoader, backend, opts...)
	validator := train.NewValidationPass(model, loss, valLoader, backend, opts...)

	history, err := train.Fit(c.Context, trainer, validator, cfg.Epochs)
	if err != nil {
		if !train.IsCanceled(err) || history.Len() == 0 {
			return err
		}
		logger.Warn("training interrupted, keeping completed epochs", zap.Int("epochs", history.Len()))
	}

	out := c.App.Writer
	fmt.Fprintln(out, report.EpochTable(history))
	summary, err := report.Summarize(history)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, summary)

	if path := cfg.Output.Plot; path != "" {
		if err := report.SaveLossCurve(history, path); err != nil {
			return err
		}
		logger.Info("loss curve written", zap.String("path", path))
	}
	if path := cfg.Output.Checkpoint; path != "" {
		last, _ := history.Last()
		meta := checkpoint.Meta{
			Optimizer:   cfg.Optimizer.Name,
			Epoch:       last.Epoch,
			TrainLoss:   last.TrainLoss,
			ValLoss:     last.ValLoss,
			ValAccuracy: last.ValAccuracy,
		}
		if err := checkpoint.Save(path, model, opt, meta); err != nil {
			return err
		}
		logger.Info("checkpoint written", zap.String("path", path))
	}
	return nil
}

// loadData returns the training and validation sets described by cfg.
func loadData(cfg *config.Config) (trainSet, valSet *data.Dataset, err error) {
	d := cfg.Data
	switch d.Kind {
	case config.DataMNIST:
		if trainSet, err = data.LoadIDX(d.Dir, data.SplitTrain, d.TrainLimit); err != nil {
			return nil, nil, err
		}
		if valSet, err = data.LoadIDX(d.Dir, data.SplitTest, d.TestLimit); err != nil {
			return nil, nil, err
		}
		if d.Normalize {
			err = multierr.Combine(trainSet.Normalize(0.5, 0.5), valSet.Normalize(0.5, 0.5))
		}
		return trainSet, valSet, err
	case config.DataSynthetic:
		return data.LinearlySeparable(d.Samples, cfg.Seed).Split(1-d.ValSplit, cfg.Seed)
	case config.DataBlobs:
		widths := cfg.Model.Widths
		ds := data.Blobs(d.Samples, widths[0], widths[len(widths)-1], cfg.Seed)
		return ds.Split(1-d.ValSplit, cfg.Seed)
	default:
		return nil, nil, fmt.Errorf("unknown data kind %q", d.Kind)
	}
}
