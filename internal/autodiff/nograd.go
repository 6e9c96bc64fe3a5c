package autodiff

// NoGrad runs fn with tape recording disabled, then restores the previous
// recording state. The state is restored on every exit path, including a
// returned error or a panic inside fn.
//
// Nested calls are safe: each restores whatever state it found.
//
// Example:
//
//	err := backend.NoGrad(func() error {
//	    out, err := model.Predict(x)
//	    ...
//	})
func (t *GradientTape) NoGrad(fn func() error) error {
	wasRecording := t.recording
	t.recording = false
	defer func() {
		t.recording = wasRecording
	}()

	return fn()
}

// NoGrad runs fn without recording operations on the backend's tape.
func (b *AutodiffBackend[B]) NoGrad(fn func() error) error {
	return b.tape.NoGrad(fn)
}
