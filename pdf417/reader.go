// Package pdf417 reads PDF417 symbols from binary bitmaps. Importing it
// registers the reader with pdf417go.MultiFormatReader.
package pdf417

import (
	"fmt"

	pdf417go "github.com/ericlevine/pdf417go"
	"github.com/ericlevine/pdf417go/bitutil"
	"github.com/ericlevine/pdf417go/pdf417/decoder"
	"github.com/ericlevine/pdf417go/pdf417/detector"
	"github.com/ericlevine/pdf417go/transform"
)

const symbologyIdentifier = "]L2"

// Reader decodes PDF417 symbols.
type Reader struct {
	decoder *decoder.Decoder
	sampler transform.GridSampler
}

// NewReader creates a Reader that samples with transform.DefaultGridSampler.
func NewReader() *Reader {
	return NewReaderWithSampler(nil)
}

// NewReaderWithSampler creates a Reader whose detector samples the codeword
// area with s.
func NewReaderWithSampler(s transform.GridSampler) *Reader {
	return &Reader{decoder: decoder.NewDecoder(), sampler: s}
}

// Decode locates and decodes a PDF417 symbol in image.
func (r *Reader) Decode(image *pdf417go.BinaryBitmap, opts *pdf417go.DecodeOptions) (*pdf417go.Result, error) {
	if !opts.Allows(pdf417go.FormatPDF417) {
		return nil, fmt.Errorf("pdf417: format not requested: %w", pdf417go.ErrNotFound)
	}
	matrix, err := image.BlackMatrix()
	if err != nil {
		return nil, err
	}

	var (
		bits   *bitutil.BitMatrix
		points []pdf417go.ResultPoint
	)
	if opts != nil && opts.PureBarcode {
		if bits, err = extractPureBits(matrix); err != nil {
			return nil, err
		}
	} else {
		det, err := detector.New(matrix, r.sampler).Detect()
		if err != nil {
			return nil, err
		}
		bits, points = det.Bits, det.Points
	}

	charset := ""
	if opts != nil {
		charset = opts.CharacterSet
	}
	dr, err := r.decoder.Decode(bits, charset)
	if err != nil {
		return nil, err
	}

	result := pdf417go.NewResult(dr.Text, dr.RawBytes, points, pdf417go.FormatPDF417)
	result.PutMetadata(pdf417go.MetadataErrorCorrectionLevel, dr.ECLevel)
	result.PutMetadata(pdf417go.MetadataErrorsCorrected, dr.ErrorsCorrected)
	result.PutMetadata(pdf417go.MetadataErasuresCorrected, dr.Erasures)
	if len(dr.ByteSegments) > 0 {
		result.PutMetadata(pdf417go.MetadataByteSegments, dr.ByteSegments)
	}
	if dr.Other != nil {
		result.PutMetadata(pdf417go.MetadataPDF417ExtraMetadata, dr.Other)
	}
	result.PutMetadata(pdf417go.MetadataSymbologyIdentifier, symbologyIdentifier)
	return result, nil
}

// Reset implements pdf417go.Reader. The reader keeps no state.
func (r *Reader) Reset() {}

// extractPureBits reads the codeword area of an unrotated symbol that
// fills the image apart from a white border. The module size is taken from
// the start pattern's leading bar, which is eight modules wide.
func extractPureBits(image *bitutil.BitMatrix) (*bitutil.BitMatrix, error) {
	left, top, ok := image.TopLeftOnBit()
	if !ok {
		return nil, fmt.Errorf("pdf417: empty image: %w", pdf417go.ErrNotFound)
	}
	_, bottom, ok := image.BottomRightOnBit()
	if !ok {
		return nil, fmt.Errorf("pdf417: empty image: %w", pdf417go.ErrNotFound)
	}

	moduleSize, err := pureModuleSize(image, left, top)
	if err != nil {
		return nil, err
	}
	start, err := findPatternStart(image, left, top)
	if err != nil {
		return nil, err
	}
	end, err := findPatternEnd(image, left, top)
	if err != nil {
		return nil, err
	}

	width := (end - start + 1) / moduleSize
	height := (bottom - top + 1) / moduleSize
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("pdf417: degenerate %dx%d symbol: %w", width, height, pdf417go.ErrNotFound)
	}

	// Sample module centres.
	nudge := moduleSize / 2
	top += nudge
	start += nudge

	bits := bitutil.NewBitMatrix(width, height)
	for y := 0; y < height; y++ {
		iy := top + y*moduleSize
		for x := 0; x < width; x++ {
			if image.Get(start+x*moduleSize, iy) {
				bits.Set(x, y)
			}
		}
	}
	return bits, nil
}

func pureModuleSize(image *bitutil.BitMatrix, left, top int) (int, error) {
	x := left
	for x < image.Width() && image.Get(x, top) {
		x++
	}
	if x == image.Width() {
		return 0, fmt.Errorf("pdf417: start bar reaches the image edge: %w", pdf417go.ErrNotFound)
	}
	size := (x - left) / 8
	if size == 0 {
		return 0, fmt.Errorf("pdf417: start bar narrower than 8 pixels: %w", pdf417go.ErrNotFound)
	}
	return size, nil
}

// findPatternStart returns the first pixel after the start pattern: eight
// colour changes to the right of its leading bar.
func findPatternStart(image *bitutil.BitMatrix, x, y int) (int, error) {
	width := image.Width()
	start := x
	transitions := 0
	black := true
	for start < width-1 && transitions < 8 {
		start++
		b := image.Get(start, y)
		if b != black {
			transitions++
		}
		black = b
	}
	if start == width-1 {
		return 0, fmt.Errorf("pdf417: start pattern runs off the image: %w", pdf417go.ErrNotFound)
	}
	return start, nil
}

// findPatternEnd returns the last pixel before the stop pattern, found by
// walking left over its nine runs from the rightmost black pixel of row y.
func findPatternEnd(image *bitutil.BitMatrix, x, y int) (int, error) {
	end := image.Width() - 1
	for end > x && !image.Get(end, y) {
		end--
	}
	transitions := 0
	black := true
	for end > x && transitions < 9 {
		end--
		b := image.Get(end, y)
		if b != black {
			transitions++
		}
		black = b
	}
	if end == x {
		return 0, fmt.Errorf("pdf417: stop pattern not found: %w", pdf417go.ErrNotFound)
	}
	return end, nil
}
