package data

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"

	"github.com/born-ml/ffnet/internal/parallel"
)

// IDX magic numbers.
const (
	idxImagesMagic = 0x00000803 // 2051
	idxLabelsMagic = 0x00000801 // 2049
)

// maxIDXImagePixels bounds rows*cols of a single image.
const maxIDXImagePixels = 1 << 24

// idxPrealloc caps capacity reserved from an untrusted header count.
// Slices grow past it as data actually arrives.
const idxPrealloc = 1 << 16

// Split selects the training or test files of an IDX dataset.
type Split string

// Dataset splits.
const (
	SplitTrain Split = "train"
	SplitTest  Split = "test"
)

func (s Split) files() (images, labels string, err error) {
	switch s {
	case SplitTrain:
		return "train-images-idx3-ubyte", "train-labels-idx1-ubyte", nil
	case SplitTest:
		return "t10k-images-idx3-ubyte", "t10k-labels-idx1-ubyte", nil
	default:
		return "", "", fmt.Errorf("unknown split %q", s)
	}
}

// LoadIDX reads an MNIST-layout dataset (MNIST or Fashion-MNIST) from dir.
//
// Expected files, each optionally gzip-compressed with a .gz suffix:
//   - train-images-idx3-ubyte / train-labels-idx1-ubyte
//   - t10k-images-idx3-ubyte / t10k-labels-idx1-ubyte
//
// Pixels are scaled from 0-255 to [0, 1]. limit > 0 keeps the first limit
// examples.
func LoadIDX(dir string, split Split, limit int) (*Dataset, error) {
	imageFile, labelFile, err := split.files()
	if err != nil {
		return nil, err
	}

	images, err := readIDXFile(filepath.Join(dir, imageFile), readIDXImages)
	if err != nil {
		return nil, fmt.Errorf("failed to load images: %w", err)
	}
	labels, err := readIDXFile(filepath.Join(dir, labelFile), readIDXLabels)
	if err != nil {
		return nil, fmt.Errorf("failed to load labels: %w", err)
	}

	if len(images.pixels) != len(labels) {
		return nil, fmt.Errorf("image count (%d) != label count (%d)", len(images.pixels), len(labels))
	}

	n := len(images.pixels)
	if limit > 0 && n > limit {
		n = limit
	}

	ds := &Dataset{
		Features: make([][]float64, n),
		Labels:   make([]int, n),
		Shape:    []int{images.rows, images.cols},
	}
	parallel.For(n, func(i int) {
		f := make([]float64, len(images.pixels[i]))
		for j, px := range images.pixels[i] {
			f[j] = float64(px) / 255.0
		}
		ds.Features[i] = f
		ds.Labels[i] = int(labels[i])
	}, parallel.DefaultConfig())
	return ds, nil
}

// readIDXFile opens path, falling back to path+".gz", and decompresses
// gzip input before handing it to read.
func readIDXFile[T any](path string, read func(io.Reader) (T, error)) (T, error) {
	var zero T

	file, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) && !strings.HasSuffix(path, ".gz") {
		path += ".gz"
		file, err = os.Open(path)
	}
	if err != nil {
		return zero, err
	}
	defer file.Close()

	var r io.Reader = bufio.NewReader(file)
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(r)
		if err != nil {
			return zero, fmt.Errorf("%s: %w", path, err)
		}
		defer gz.Close()
		r = gz
	}
	return read(r)
}

// idxImages is the decoded content of an idx3 image file.
type idxImages struct {
	pixels     [][]byte
	rows, cols int
}

// readIDXImages reads an image file in IDX format.
//
// IDX file format for images:
//
//	magic number: 0x00000803 (2051)
//	number of images: 4 bytes
//	number of rows: 4 bytes (28)
//	number of cols: 4 bytes (28)
//	pixel data: unsigned bytes (0-255)
func readIDXImages(r io.Reader) (idxImages, error) {
	var header [4]uint32
	if err := binary.Read(r, binary.BigEndian, &header); err != nil {
		return idxImages{}, fmt.Errorf("failed to read header: %w", err)
	}
	if header[0] != idxImagesMagic {
		return idxImages{}, fmt.Errorf("%w: got %d, want %d", ErrInvalidMagic, header[0], idxImagesMagic)
	}

	count, rows, cols := int(header[1]), int(header[2]), int(header[3])
	if rows == 0 || cols == 0 || rows*cols > maxIDXImagePixels {
		return idxImages{}, fmt.Errorf("%w: image size %dx%d", ErrInvalidHeader, rows, cols)
	}

	out := idxImages{
		pixels: make([][]byte, 0, min(count, idxPrealloc)),
		rows:   rows,
		cols:   cols,
	}
	for i := 0; i < count; i++ {
		img := make([]byte, rows*cols)
		if _, err := io.ReadFull(r, img); err != nil {
			return idxImages{}, fmt.Errorf("failed to read image %d of %d: %w", i, count, err)
		}
		out.pixels = append(out.pixels, img)
	}
	return out, nil
}

// readIDXLabels reads a label file in IDX format.
//
// IDX file format for labels:
//
//	magic number: 0x00000801 (2049)
//	number of labels: 4 bytes
//	label data: unsigned bytes (0-9)
func readIDXLabels(r io.Reader) ([]byte, error) {
	var header [2]uint32
	if err := binary.Read(r, binary.BigEndian, &header); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	if header[0] != idxLabelsMagic {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrInvalidMagic, header[0], idxLabelsMagic)
	}

	count := int64(header[1])
	labels, err := io.ReadAll(io.LimitReader(r, count))
	if err != nil {
		return nil, fmt.Errorf("failed to read labels: %w", err)
	}
	if int64(len(labels)) != count {
		return nil, fmt.Errorf("failed to read labels: got %d of %d: %w", len(labels), count, io.ErrUnexpectedEOF)
	}
	return labels, nil
}
