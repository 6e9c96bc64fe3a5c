package report

import (
	"errors"
	"fmt"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/montanaflynn/stats"

	"github.com/born-ml/ffnet/internal/train"
)

// ErrEmptyHistory is returned when there is nothing to summarize.
var ErrEmptyHistory = errors.New("history has no epochs")

// Summary condenses a training history.
type Summary struct {
	Epochs          int
	BestEpoch       int
	BestValAccuracy float64
	MeanValAccuracy float64
	FinalTrainLoss  float64
	FinalValLoss    float64
	TrainLossStdDev float64
	MedianDuration  time.Duration
}

// Summarize computes summary statistics over history.
func Summarize(history *train.History) (Summary, error) {
	best, ok := history.Best()
	if !ok {
		return Summary{}, ErrEmptyHistory
	}
	last, _ := history.Last()

	meanAcc, err := stats.Mean(history.ValAccuracies())
	if err != nil {
		return Summary{}, fmt.Errorf("mean validation accuracy: %w", err)
	}
	lossStd, err := stats.StandardDeviation(history.TrainLosses())
	if err != nil {
		return Summary{}, fmt.Errorf("train loss std-dev: %w", err)
	}
	durations := make([]float64, history.Len())
	for i, r := range history.Epochs {
		durations[i] = float64(r.Duration)
	}
	median, err := stats.Median(durations)
	if err != nil {
		return Summary{}, fmt.Errorf("median duration: %w", err)
	}

	return Summary{
		Epochs:          history.Len(),
		BestEpoch:       best.Epoch,
		BestValAccuracy: best.ValAccuracy,
		MeanValAccuracy: meanAcc,
		FinalTrainLoss:  last.TrainLoss,
		FinalValLoss:    last.ValLoss,
		TrainLossStdDev: lossStd,
		MedianDuration:  time.Duration(median),
	}, nil
}

// String renders the summary as a two-column table.
func (s Summary) String() string {
	t := table.NewWriter()
	t.AppendRows([]table.Row{
		{"Epochs", s.Epochs},
		{"Best epoch", s.BestEpoch},
		{"Best val accuracy", percent(s.BestValAccuracy)},
		{"Mean val accuracy", percent(s.MeanValAccuracy)},
		{"Final train loss", fmt.Sprintf("%.4f", s.FinalTrainLoss)},
		{"Final val loss", fmt.Sprintf("%.4f", s.FinalValLoss)},
		{"Train loss std-dev", fmt.Sprintf("%.4f", s.TrainLossStdDev)},
		{"Median epoch time", s.MedianDuration.Round(time.Millisecond).String()},
	})
	return t.Render()
}
