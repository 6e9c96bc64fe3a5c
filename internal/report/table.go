// Package report renders training history for people: epoch tables,
// summary statistics and loss-curve plots.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/born-ml/ffnet/internal/train"
)

// EpochTable prints one row per epoch with losses, accuracies and timing.
func EpochTable(history *train.History) string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"Epoch", "Train Loss", "Train Acc", "Val Loss", "Val Acc", "Duration"})
	for _, r := range history.Epochs {
		t.AppendRow(table.Row{
			r.Epoch,
			fmt.Sprintf("%.4f", r.TrainLoss),
			percent(r.TrainAccuracy),
			fmt.Sprintf("%.4f", r.ValLoss),
			percent(r.ValAccuracy),
			r.Duration.Round(time.Millisecond).String(),
		})
	}
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
	})
	return t.Render()
}

// Prediction is one scored example for PredictionTable.
type Prediction struct {
	Index         int
	Label         int
	Predicted     int
	Probabilities []float64
}

// PredictionTable prints predicted class, true label and the class
// probabilities of each example.
func PredictionTable(preds []Prediction) string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"#", "Label", "Predicted", "", "Probabilities"})
	for _, p := range preds {
		mark := ""
		if p.Label == p.Predicted {
			mark = "ok"
		}
		probs := make([]string, len(p.Probabilities))
		for i, v := range p.Probabilities {
			probs[i] = fmt.Sprintf("%d:%.3f", i, v)
		}
		t.AppendRow(table.Row{p.Index, p.Label, p.Predicted, mark, strings.Join(probs, " ")})
	}
	return t.Render()
}

func percent(v float64) string {
	return fmt.Sprintf("%.2f%%", v*100)
}
