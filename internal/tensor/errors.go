package tensor

import "errors"

// ErrShapeMismatch is returned when tensor dimensions disagree with what an
// operation or a model configuration requires.
var ErrShapeMismatch = errors.New("shape mismatch")
