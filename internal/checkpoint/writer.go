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

	"github.com/born-ml/ffnet/internal/nn"
	"github.com/born-ml/ffnet/internal/tensor"
)

// checksumKey holds the hex SHA-256 of the data section.
const checksumKey = "sha256"

// Write encodes tensors and metadata in SafeTensors format. Tensors are
// written in name order and the metadata gains the data checksum.
func Write(w io.Writer, tensors map[string]*tensor.Raw, metadata map[string]string) error {
	names := nn.StateKeys(tensors)

	header := make(map[string]any, len(names)+1)
	var payload []byte
	for _, name := range names {
		if err := validateName(name); err != nil {
			return err
		}
		raw := tensors[name]
		start := int64(len(payload))
		payload = appendFloat64s(payload, raw.Data())

		shape := make([]int64, len(raw.Shape()))
		for i, d := range raw.Shape() {
			shape[i] = int64(d)
		}
		header[name] = tensorHeader{
			DType:       DTypeFloat64,
			Shape:       shape,
			DataOffsets: [2]int64{start, int64(len(payload))},
		}
	}

	md := make(map[string]string, len(metadata)+1)
	for k, v := range metadata {
		md[k] = v
	}
	sum := sha256.Sum256(payload)
	md[checksumKey] = hex.EncodeToString(sum[:])
	header[metadataKey] = md

	headerJSON, err := json.Marshal(header)
	if err != nil {
		return fmt.Errorf("failed to marshal header: %w", err)
	}

	bw := bufio.NewWriter(w)
	if err := binary.Write(bw, binary.LittleEndian, uint64(len(headerJSON))); err != nil {
		return fmt.Errorf("failed to write header size: %w", err)
	}
	if _, err := bw.Write(headerJSON); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if _, err := bw.Write(payload); err != nil {
		return fmt.Errorf("failed to write tensor data: %w", err)
	}
	return bw.Flush()
}

// WriteFile writes a SafeTensors file at path.
func WriteFile(path string, tensors map[string]*tensor.Raw, metadata map[string]string) (err error) {
	//nolint:gosec // G304: checkpoint paths come from the user.
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() {
		if cerr := file.Close(); err == nil {
			err = cerr
		}
	}()
	return Write(file, tensors, metadata)
}

func appendFloat64s(dst []byte, values []float64) []byte {
	for _, v := range values {
		dst = binary.LittleEndian.AppendUint64(dst, math.Float64bits(v))
	}
	return dst
}
