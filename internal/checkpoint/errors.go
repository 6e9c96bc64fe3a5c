package checkpoint

import "errors"

var (
	// ErrInvalidHeader is returned for a malformed SafeTensors header or
	// checkpoint metadata.
	ErrInvalidHeader = errors.New("invalid checkpoint header")

	// ErrOutOfBounds is returned when a tensor's offsets fall outside the
	// data section or overlap another tensor.
	ErrOutOfBounds = errors.New("tensor extends beyond data section")

	// ErrChecksumMismatch is returned when the data section does not match
	// the SHA-256 stored in the metadata.
	ErrChecksumMismatch = errors.New("checksum mismatch: file may be corrupted")
)
