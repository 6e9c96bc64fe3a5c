package data

import "errors"

var (
	// ErrInvalidMagic is returned when an IDX file has an unexpected magic number.
	ErrInvalidMagic = errors.New("invalid IDX magic number")

	// ErrInvalidHeader is returned when IDX dimensions are zero or too large.
	ErrInvalidHeader = errors.New("invalid IDX header")

	// ErrEmptyDataset is returned when a dataset or split has no examples.
	ErrEmptyDataset = errors.New("empty dataset")
)
