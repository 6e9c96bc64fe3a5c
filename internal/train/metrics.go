package train

// RunningMetrics accumulates per-batch loss and accuracy over one epoch.
//
// Means are taken over batches, not examples: a short final batch weighs
// as much as a full one.
type RunningMetrics struct {
	LossSum     float64
	AccuracySum float64
	Correct     int
	Examples    int
	Batches     int
}

// Reset clears all counters.
func (m *RunningMetrics) Reset() {
	*m = RunningMetrics{}
}

// Update adds one batch.
func (m *RunningMetrics) Update(loss float64, correct, size int) {
	m.LossSum += loss
	m.Correct += correct
	m.Examples += size
	m.Batches++
	if size > 0 {
		m.AccuracySum += float64(correct) / float64(size)
	}
}

// MeanLoss returns the loss averaged over batches.
func (m *RunningMetrics) MeanLoss() float64 {
	if m.Batches == 0 {
		return 0
	}
	return m.LossSum / float64(m.Batches)
}

// MeanAccuracy returns the per-batch accuracy averaged over batches.
func (m *RunningMetrics) MeanAccuracy() float64 {
	if m.Batches == 0 {
		return 0
	}
	return m.AccuracySum / float64(m.Batches)
}

// Accuracy returns correct predictions over all examples seen.
func (m *RunningMetrics) Accuracy() float64 {
	if m.Examples == 0 {
		return 0
	}
	return float64(m.Correct) / float64(m.Examples)
}
