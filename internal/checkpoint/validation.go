package checkpoint

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// validateName rejects empty, oversized and path-like tensor names.
func validateName(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("%w: empty tensor name", ErrInvalidHeader)
	case len(name) > MaxTensorNameLen:
		return fmt.Errorf("%w: tensor name of length %d exceeds %d", ErrInvalidHeader, len(name), MaxTensorNameLen)
	case strings.Contains(name, ".."), strings.ContainsAny(name, "/\\\x00"):
		return fmt.Errorf("%w: invalid tensor name %q", ErrInvalidHeader, name)
	}
	return nil
}

// validateOffsets checks dtype, size, bounds and overlap of every tensor
// against a data section of dataSize bytes.
func validateOffsets(headers map[string]tensorHeader, dataSize int64) error {
	type span struct {
		name       string
		start, end int64
	}
	spans := make([]span, 0, len(headers))

	for name, h := range headers {
		if h.DType != DTypeFloat64 {
			return fmt.Errorf("%w: tensor %q has dtype %q, want %q", ErrInvalidHeader, name, h.DType, DTypeFloat64)
		}
		elems := int64(1)
		for _, d := range h.Shape {
			if d <= 0 {
				return fmt.Errorf("%w: tensor %q has shape %v", ErrInvalidHeader, name, h.Shape)
			}
			if elems > math.MaxInt64/8/d {
				return fmt.Errorf("%w: tensor %q shape %v overflows", ErrInvalidHeader, name, h.Shape)
			}
			elems *= d
		}

		start, end := h.DataOffsets[0], h.DataOffsets[1]
		if start < 0 || end < start || end > dataSize {
			return fmt.Errorf("%w: tensor %q at [%d, %d) with %d data bytes", ErrOutOfBounds, name, start, end, dataSize)
		}
		if end-start != elems*8 {
			return fmt.Errorf("%w: tensor %q spans %d bytes, shape %v needs %d",
				ErrInvalidHeader, name, end-start, h.Shape, elems*8)
		}
		spans = append(spans, span{name, start, end})
	}

	sort.Slice(spans, func(i, j int) bool { return spans[i].start < spans[j].start })
	for i := 1; i < len(spans); i++ {
		if spans[i].start < spans[i-1].end {
			return fmt.Errorf("%w: tensors %q and %q overlap", ErrOutOfBounds, spans[i-1].name, spans[i].name)
		}
	}
	return nil
}
