// Package pdf417go locates and decodes PDF417 symbols in raster images.
package pdf417go

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/ericlevine/pdf417go/bitutil"
)

// Format identifies a barcode symbology.
type Format int

const (
	FormatPDF417 Format = iota
	FormatQRCode
	FormatDataMatrix
	FormatAztec
)

var formatNames = map[Format]string{
	FormatPDF417:     "PDF_417",
	FormatQRCode:     "QR_CODE",
	FormatDataMatrix: "DATA_MATRIX",
	FormatAztec:      "AZTEC",
}

// String returns the name of the barcode format.
func (f Format) String() string {
	if name, ok := formatNames[f]; ok {
		return name
	}
	return "UNKNOWN"
}

// ParseFormat maps a format name such as "PDF_417" or "pdf417" back to its Format.
func ParseFormat(name string) (Format, error) {
	norm := strings.ReplaceAll(strings.ToUpper(name), "_", "")
	for f, n := range formatNames {
		if strings.ReplaceAll(n, "_", "") == norm {
			return f, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown format %q", ErrArgument, name)
}

// ResultMetadataKey identifies a type of metadata about a barcode result.
type ResultMetadataKey int

const (
	MetadataOther ResultMetadataKey = iota
	MetadataByteSegments
	MetadataErrorCorrectionLevel
	MetadataErrorsCorrected
	MetadataErasuresCorrected
	MetadataPDF417ExtraMetadata
	MetadataSymbologyIdentifier
)

// ResultPoint represents a point of interest in an image.
type ResultPoint struct {
	X, Y float64
}

// Distance returns the distance between two points.
func Distance(a, b ResultPoint) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// CrossProductZ computes the z component of the cross product between vectors
// (b-a) and (c-a).
func CrossProductZ(a, b, c ResultPoint) float64 {
	return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
}

// OrderBestPatterns arranges three points as A, B, C where AB and BC are the
// two shorter legs and A, B, C turn counter-clockwise.
func OrderBestPatterns(p [3]ResultPoint) [3]ResultPoint {
	d01 := Distance(p[0], p[1])
	d12 := Distance(p[1], p[2])
	d02 := Distance(p[0], p[2])

	// B is the vertex opposite the longest leg.
	var a, b, c ResultPoint
	switch {
	case d12 >= d01 && d12 >= d02:
		b, a, c = p[0], p[1], p[2]
	case d02 >= d12 && d02 >= d01:
		b, a, c = p[1], p[0], p[2]
	default:
		b, a, c = p[2], p[0], p[1]
	}

	if CrossProductZ(b, a, c) > 0 {
		a, c = c, a
	}
	return [3]ResultPoint{a, b, c}
}

// Result encapsulates the result of decoding a barcode.
type Result struct {
	Text      string
	RawBytes  []byte
	NumBits   int
	Points    []ResultPoint
	Format    Format
	Metadata  map[ResultMetadataKey]interface{}
	Timestamp time.Time
}

// NewResult creates a new Result with the given text, format, and points.
func NewResult(text string, rawBytes []byte, points []ResultPoint, format Format) *Result {
	return &Result{
		Text:      text,
		RawBytes:  rawBytes,
		NumBits:   8 * len(rawBytes),
		Points:    points,
		Format:    format,
		Metadata:  make(map[ResultMetadataKey]interface{}),
		Timestamp: time.Now(),
	}
}

// PutMetadata adds a metadata key/value pair.
func (r *Result) PutMetadata(key ResultMetadataKey, value interface{}) {
	r.Metadata[key] = value
}

// BinaryBitmap pairs a Binarizer with the black matrix it produced. The
// matrix is computed on first use and lives as long as the bitmap, so use one
// bitmap per decode attempt.
type BinaryBitmap struct {
	binarizer Binarizer
	matrix    *bitutil.BitMatrix
}

// NewBinaryBitmap creates a new BinaryBitmap from the given Binarizer.
func NewBinaryBitmap(binarizer Binarizer) *BinaryBitmap {
	return &BinaryBitmap{binarizer: binarizer}
}

// Width returns the width of the bitmap.
func (b *BinaryBitmap) Width() int {
	return b.binarizer.Width()
}

// Height returns the height of the bitmap.
func (b *BinaryBitmap) Height() int {
	return b.binarizer.Height()
}

// BlackRow returns a row of black/white values.
func (b *BinaryBitmap) BlackRow(y int, row *bitutil.BitArray) (*bitutil.BitArray, error) {
	return b.binarizer.BlackRow(y, row)
}

// BlackMatrix returns the 2D matrix of black/white values.
func (b *BinaryBitmap) BlackMatrix() (*bitutil.BitMatrix, error) {
	if b.matrix != nil {
		return b.matrix, nil
	}
	m, err := b.binarizer.BlackMatrix()
	if err != nil {
		return nil, err
	}
	b.matrix = m
	return m, nil
}
