package train

// History is the per-epoch record produced by Fit.
type History struct {
	Epochs []EpochReport
}

// Len returns the number of recorded epochs.
func (h *History) Len() int {
	return len(h.Epochs)
}

// TrainLosses returns the training loss of every epoch.
func (h *History) TrainLosses() []float64 {
	return h.collect(func(r EpochReport) float64 { return r.TrainLoss })
}

// ValLosses returns the validation loss of every epoch.
func (h *History) ValLosses() []float64 {
	return h.collect(func(r EpochReport) float64 { return r.ValLoss })
}

// ValAccuracies returns the validation accuracy of every epoch.
func (h *History) ValAccuracies() []float64 {
	return h.collect(func(r EpochReport) float64 { return r.ValAccuracy })
}

// Validated reports whether any epoch ran a validation pass.
func (h *History) Validated() bool {
	for _, r := range h.Epochs {
		if r.Validated {
			return true
		}
	}
	return false
}

// Last returns the final epoch's report.
func (h *History) Last() (EpochReport, bool) {
	if len(h.Epochs) == 0 {
		return EpochReport{}, false
	}
	return h.Epochs[len(h.Epochs)-1], true
}

// Best returns the epoch with the highest validation accuracy. Ties go to
// the earlier epoch.
func (h *History) Best() (EpochReport, bool) {
	if len(h.Epochs) == 0 {
		return EpochReport{}, false
	}
	best := h.Epochs[0]
	for _, r := range h.Epochs[1:] {
		if r.ValAccuracy > best.ValAccuracy {
			best = r
		}
	}
	return best, true
}

func (h *History) collect(field func(EpochReport) float64) []float64 {
	out := make([]float64, len(h.Epochs))
	for i, r := range h.Epochs {
		out[i] = field(r)
	}
	return out
}
