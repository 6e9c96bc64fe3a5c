package report

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/born-ml/ffnet/internal/train"
)

// Plot size.
const (
	plotWidth  = 6 * vg.Inch
	plotHeight = 4 * vg.Inch
)

// LossCurve builds the train-vs-validation loss plot. Validation is drawn
// only when the history holds validated epochs.
func LossCurve(history *train.History) (*plot.Plot, error) {
	if history.Len() == 0 {
		return nil, ErrEmptyHistory
	}

	p := plot.New()
	p.Title.Text = "Loss per epoch"
	p.X.Label.Text = "Epoch"
	p.Y.Label.Text = "Mean loss"
	p.Add(plotter.NewGrid())

	if err := plotutil.AddLinePoints(p, lossLines(history)...); err != nil {
		return nil, fmt.Errorf("failed to add lines: %w", err)
	}
	p.Legend.Top = true
	return p, nil
}

// SaveLossCurve writes LossCurve to path. The image format follows the
// extension (.png, .svg, .pdf, ...).
func SaveLossCurve(history *train.History, path string) error {
	p, err := LossCurve(history)
	if err != nil {
		return err
	}
	if err := p.Save(plotWidth, plotHeight, path); err != nil {
		return fmt.Errorf("failed to save plot: %w", err)
	}
	return nil
}

// lossLines returns name, points pairs for plotutil.AddLinePoints.
func lossLines(history *train.History) []any {
	lines := []any{"train", points(history, func(r train.EpochReport) float64 { return r.TrainLoss })}
	if history.Validated() {
		lines = append(lines, "validation", points(history, func(r train.EpochReport) float64 { return r.ValLoss }))
	}
	return lines
}

func points(history *train.History, y func(train.EpochReport) float64) plotter.XYs {
	pts := make(plotter.XYs, history.Len())
	for i, r := range history.Epochs {
		pts[i].X = float64(r.Epoch)
		pts[i].Y = y(r)
	}
	return pts
}
