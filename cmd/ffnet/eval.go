package main

import (
	"errors"
	"fmt"
	"math"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/born-ml/ffnet/internal/autodiff"
	"github.com/born-ml/ffnet/internal/backend/cpu"
	"github.com/born-ml/ffnet/internal/checkpoint"
	"github.com/born-ml/ffnet/internal/data"
	"github.com/born-ml/ffnet/internal/logging"
	"github.com/born-ml/ffnet/internal/nn"
	"github.com/born-ml/ffnet/internal/report"
	"github.com/born-ml/ffnet/internal/tensor"
	"github.com/born-ml/ffnet/internal/train"
)

var errNoData = errors.New("either --data or --synthetic is required")

// dataFlags select the examples eval and predict score.
func dataFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: flagCheckpoint, Usage: "checkpoint written by train", Required: true},
		&cli.StringFlag{Name: flagData, Usage: "directory holding MNIST IDX test files"},
		&cli.BoolFlag{Name: flagSynthetic, Usage: "score generated separable points"},
		&cli.IntFlag{Name: flagSamples, Usage: "generated examples", Value: 200},
		&cli.IntFlag{Name: flagLimit, Usage: "cap on examples read from --data"},
		&cli.Uint64Flag{Name: flagSeed, Usage: "seed for generated examples", Value: 1},
		&cli.StringFlag{Name: flagLogLevel, Usage: "debug, info, warn or error", Value: "info"},
	}
}

func evalCommand() *cli.Command {
	return &cli.Command{
		Name:  "eval",
		Usage: "report mean loss and accuracy of a checkpoint",
		Flags: append(dataFlags(),
			&cli.StringFlag{Name: flagLoss, Usage: "nll or cross_entropy", Value: "nll"},
			&cli.IntFlag{Name: flagBatchSize, Usage: "examples per batch", Value: 256},
		),
		Action: runEval,
	}
}

func predictCommand() *cli.Command {
	return &cli.Command{
		Name:  "predict",
		Usage: "print class probabilities for the first examples",
		Flags: append(dataFlags(),
			&cli.IntFlag{Name: flagCount, Usage: "examples to show", Value: 10},
		),
		Action: runPredict,
	}
}

func runEval(c *cli.Context) error {
	logger, err := logging.New(c.String(flagLogLevel), false)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	backend := autodiff.New(cpu.New())
	cp, err := checkpoint.Load(c.String(flagCheckpoint), backend)
	if err != nil {
		return err
	}
	ds, err := scoringData(c)
	if err != nil {
		return err
	}
	loss, err := nn.NewLoss(c.String(flagLoss))
	if err != nil {
		return err
	}
	loader, err := data.NewLoader(ds, data.LoaderConfig{BatchSize: c.Int(flagBatchSize)})
	if err != nil {
		return err
	}
	logger.Info("checkpoint loaded",
		zap.Stringer("run", cp.Meta.RunID),
		zap.Int("epoch", cp.Meta.Epoch),
		zap.Stringer("model", cp.Model))

	validator := train.NewValidationPass(cp.Model, loss, loader, backend, train.WithLogger(logger))
	meanLoss, meanAcc, err := validator.Run(c.Context)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "examples: %d\nloss: %.4f\naccuracy: %.2f%%\n", ds.Len(), meanLoss, meanAcc*100)
	return nil
}

func runPredict(c *cli.Context) error {
	backend := autodiff.New(cpu.New())
	cp, err := checkpoint.Load(c.String(flagCheckpoint), backend)
	if err != nil {
		return err
	}
	ds, err := scoringData(c)
	if err != nil {
		return err
	}
	ds = ds.Subset(c.Int(flagCount))
	loader, err := data.NewLoader(ds, data.LoaderConfig{BatchSize: ds.Len()})
	if err != nil {
		return err
	}
	batches, err := loader.Batches()
	if err != nil {
		return err
	}
	batch := batches[0]

	cp.Model.Eval()
	var preds []report.Prediction
	err = backend.NoGrad(func() error {
		input, err := data.Flatten(batch.Inputs)
		if err != nil {
			return err
		}
		logProbs, err := cp.Model.Predict(tensor.New(input, backend))
		if err != nil {
			return err
		}
		for i, class := range logProbs.Argmax(1) {
			row := logProbs.Raw().Row(i)
			probs := make([]float64, len(row))
			for j, lp := range row {
				probs[j] = math.Exp(lp)
			}
			preds = append(preds, report.Prediction{
				Index:         i,
				Label:         batch.Labels[i],
				Predicted:     class,
				Probabilities: probs,
			})
		}
		return nil
	})
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, report.PredictionTable(preds))
	return nil
}

// scoringData loads the test split of --data or generates separable points.
func scoringData(c *cli.Context) (*data.Dataset, error) {
	switch {
	case c.String(flagData) != "":
		ds, err := data.LoadIDX(c.String(flagData), data.SplitTest, c.Int(flagLimit))
		if err != nil {
			return nil, err
		}
		return ds, ds.Normalize(0.5, 0.5)
	case c.Bool(flagSynthetic):
		return data.LinearlySeparable(c.Int(flagSamples), c.Uint64(flagSeed)), nil
	default:
		return nil, errNoData
	}
}
