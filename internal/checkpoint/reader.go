package checkpoint

import (
	"bufio"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/born-ml/ffnet/internal/tensor"
)

// File is a decoded SafeTensors file.
type File struct {
	Tensors  map[string]*tensor.Raw
	Metadata map[string]string
}

// Read decodes a SafeTensors stream holding float64 tensors. Offsets are
// checked against the data section before any tensor is built, and the
// data checksum is verified when the metadata carries one.
func Read(r io.Reader) (*File, error) {
	br := bufio.NewReader(r)

	var headerSize uint64
	if err := binary.Read(br, binary.LittleEndian, &headerSize); err != nil {
		return nil, fmt.Errorf("%w: failed to read header size: %v", ErrInvalidHeader, err)
	}
	if headerSize == 0 || headerSize > MaxHeaderSize {
		return nil, fmt.Errorf("%w: header size %d out of range (max %d)", ErrInvalidHeader, headerSize, MaxHeaderSize)
	}

	headerJSON := make([]byte, headerSize)
	if _, err := io.ReadFull(br, headerJSON); err != nil {
		return nil, fmt.Errorf("%w: failed to read header: %v", ErrInvalidHeader, err)
	}
	var entries map[string]json.RawMessage
	if err := json.Unmarshal(headerJSON, &entries); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidHeader, err)
	}

	out := &File{Tensors: make(map[string]*tensor.Raw, len(entries)), Metadata: map[string]string{}}
	headers := make(map[string]tensorHeader, len(entries))
	for name, msg := range entries {
		if name == metadataKey {
			if err := json.Unmarshal(msg, &out.Metadata); err != nil {
				return nil, fmt.Errorf("%w: metadata: %v", ErrInvalidHeader, err)
			}
			continue
		}
		if err := validateName(name); err != nil {
			return nil, err
		}
		var h tensorHeader
		if err := json.Unmarshal(msg, &h); err != nil {
			return nil, fmt.Errorf("%w: tensor %q: %v", ErrInvalidHeader, name, err)
		}
		headers[name] = h
	}

	payload, err := io.ReadAll(br)
	if err != nil {
		return nil, fmt.Errorf("failed to read tensor data: %w", err)
	}
	if err := validateOffsets(headers, int64(len(payload))); err != nil {
		return nil, err
	}
	if want, ok := out.Metadata[checksumKey]; ok {
		sum := sha256.Sum256(payload)
		if hex.EncodeToString(sum[:]) != want {
			return nil, ErrChecksumMismatch
		}
	}

	for name, h := range headers {
		shape := make(tensor.Shape, len(h.Shape))
		for i, d := range h.Shape {
			shape[i] = int(d)
		}
		raw, err := tensor.RawFromSlice(decodeFloat64s(payload[h.DataOffsets[0]:h.DataOffsets[1]]), shape)
		if err != nil {
			return nil, fmt.Errorf("tensor %q: %w", name, err)
		}
		out.Tensors[name] = raw
	}
	return out, nil
}

// ReadFile reads a SafeTensors file from path.
func ReadFile(path string) (*File, error) {
	//nolint:gosec // G304: checkpoint paths come from the user.
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return Read(file)
}

func decodeFloat64s(b []byte) []float64 {
	out := make([]float64, len(b)/8)
	for i := range out {
		out[i] = math.Float64frombits(binary.LittleEndian.Uint64(b[i*8:]))
	}
	return out
}
