// Package checkpoint saves and restores trained classifiers as SafeTensors
// files.
//
// Layout:
//
//	[8 bytes: header size, uint64 little-endian]
//	[header: JSON object, tensor name -> {dtype, shape, data_offsets},
//	         plus "__metadata__" -> string map]
//	[data: float64 little-endian, tensors in name order]
//
// The metadata carries the architecture, so Load can rebuild the classifier
// without any other input.
package checkpoint

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/born-ml/ffnet/internal/nn"
)

// Format constants.
const (
	FormatName    = "ffnet"
	FormatVersion = 1
	DTypeFloat64  = "F64"

	metadataKey      = "__metadata__"
	optimizerPrefix  = "optimizer."
	MaxHeaderSize    = 16 * 1024 * 1024
	MaxTensorNameLen = 256
)

// tensorHeader describes one tensor in the SafeTensors header.
type tensorHeader struct {
	DType       string   `json:"dtype"`
	Shape       []int64  `json:"shape"`
	DataOffsets [2]int64 `json:"data_offsets"`
}

// Meta is the training context stored next to the parameters.
type Meta struct {
	RunID       uuid.UUID
	Model       nn.ClassifierConfig
	Optimizer   string
	Epoch       int
	TrainLoss   float64
	ValLoss     float64
	ValAccuracy float64
	CreatedAt   time.Time
}

func (m Meta) encode() map[string]string {
	widths := make([]string, len(m.Model.Widths))
	for i, w := range m.Model.Widths {
		widths[i] = strconv.Itoa(w)
	}
	f := func(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }

	return map[string]string{
		"format":       FormatName,
		"version":      strconv.Itoa(FormatVersion),
		"run_id":       m.RunID.String(),
		"widths":       strings.Join(widths, ","),
		"activation":   m.Model.Activation.String(),
		"init":         m.Model.Init.String(),
		"init_std":     f(m.Model.InitStd),
		"dropout":      f(m.Model.Dropout),
		"seed":         strconv.FormatUint(m.Model.Seed, 10),
		"optimizer":    m.Optimizer,
		"epoch":        strconv.Itoa(m.Epoch),
		"train_loss":   f(m.TrainLoss),
		"val_loss":     f(m.ValLoss),
		"val_accuracy": f(m.ValAccuracy),
		"created_at":   m.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// decodeMeta parses metadata written by encode. The first problem found is
// reported, wrapped in ErrInvalidHeader.
func decodeMeta(md map[string]string) (Meta, error) {
	if md["format"] != FormatName {
		return Meta{}, fmt.Errorf("%w: not an %s checkpoint (format %q)", ErrInvalidHeader, FormatName, md["format"])
	}
	if v := md["version"]; v != strconv.Itoa(FormatVersion) {
		return Meta{}, fmt.Errorf("%w: unsupported version %q", ErrInvalidHeader, v)
	}

	d := metaDecoder{md: md}
	var m Meta
	m.RunID = d.parseUUID("run_id")
	for _, w := range strings.Split(md["widths"], ",") {
		m.Model.Widths = append(m.Model.Widths, d.parseInt("widths", w))
	}
	m.Model.Activation = d.parseActivation("activation")
	m.Model.Init = d.parseInit("init")
	m.Model.InitStd = d.parseFloat("init_std")
	m.Model.Dropout = d.parseFloat("dropout")
	m.Model.Seed = d.parseUint("seed")
	m.Optimizer = md["optimizer"]
	m.Epoch = d.parseInt("epoch", md["epoch"])
	m.TrainLoss = d.parseFloat("train_loss")
	m.ValLoss = d.parseFloat("val_loss")
	m.ValAccuracy = d.parseFloat("val_accuracy")
	m.CreatedAt = d.parseTime("created_at")

	if d.err != nil {
		return Meta{}, d.err
	}
	return m, nil
}

// metaDecoder keeps the first parse error.
type metaDecoder struct {
	md  map[string]string
	err error
}

func (d *metaDecoder) fail(key string, err error) {
	if d.err == nil {
		d.err = fmt.Errorf("%w: metadata %q: %v", ErrInvalidHeader, key, err)
	}
}

func (d *metaDecoder) parseInt(key, s string) int {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		d.fail(key, err)
	}
	return v
}

func (d *metaDecoder) parseUint(key string) uint64 {
	v, err := strconv.ParseUint(d.md[key], 10, 64)
	if err != nil {
		d.fail(key, err)
	}
	return v
}

func (d *metaDecoder) parseFloat(key string) float64 {
	v, err := strconv.ParseFloat(d.md[key], 64)
	if err != nil {
		d.fail(key, err)
	}
	return v
}

func (d *metaDecoder) parseUUID(key string) uuid.UUID {
	v, err := uuid.Parse(d.md[key])
	if err != nil {
		d.fail(key, err)
	}
	return v
}

func (d *metaDecoder) parseTime(key string) time.Time {
	v, err := time.Parse(time.RFC3339, d.md[key])
	if err != nil {
		d.fail(key, err)
	}
	return v
}

func (d *metaDecoder) parseActivation(key string) nn.Activation {
	v, err := nn.ParseActivation(d.md[key])
	if err != nil {
		d.fail(key, err)
	}
	return v
}

func (d *metaDecoder) parseInit(key string) nn.InitScheme {
	v, err := nn.ParseInitScheme(d.md[key])
	if err != nil {
		d.fail(key, err)
	}
	return v
}
