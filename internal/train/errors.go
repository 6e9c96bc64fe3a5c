package train

import "errors"

var (
	// ErrNumericInstability is returned when a training loss is NaN or infinite.
	ErrNumericInstability = errors.New("numeric instability: non-finite loss")

	// ErrEmptySource is returned when a data source yields no batches.
	ErrEmptySource = errors.New("data source yielded no batches")
)
