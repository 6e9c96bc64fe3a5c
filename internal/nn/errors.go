package nn

import "errors"

var (
	// ErrInvalidLabel is returned when a label falls outside [0, num_classes).
	ErrInvalidLabel = errors.New("invalid label")

	// ErrInvalidConfig is returned for an unusable classifier configuration.
	ErrInvalidConfig = errors.New("invalid classifier config")
)
