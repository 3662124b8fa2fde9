package pdf417

import (
	"image"
	"image/color"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pdf417go "github.com/ericlevine/pdf417go"
	"github.com/ericlevine/pdf417go/internal/testutil"
)

const (
	scale  = 3
	margin = 30
)

func decodeImage(t *testing.T, img image.Image, opts *pdf417go.DecodeOptions) *pdf417go.Result {
	t.Helper()
	result, err := NewReader().Decode(testutil.Bitmap(img), opts)
	require.NoError(t, err)
	return result
}

func TestReaderDecodesText(t *testing.T) {
	const text = "Hello, PDF417 reader"
	img := testutil.Pad(testutil.Symbol(t, text, 2, scale), margin)

	result := decodeImage(t, img, nil)
	assert.Equal(t, text, result.Text)
	assert.Equal(t, pdf417go.FormatPDF417, result.Format)
	assert.Len(t, result.Points, 4)
	assert.Equal(t, "2", result.Metadata[pdf417go.MetadataErrorCorrectionLevel])
	assert.Equal(t, 0, result.Metadata[pdf417go.MetadataErrorsCorrected])
	assert.Equal(t, "]L2", result.Metadata[pdf417go.MetadataSymbologyIdentifier])
}

func TestReaderDecodesModes(t *testing.T) {
	for name, text := range map[string]string{
		"numeric":      "12345678901234567890",
		"mixed":        "Invoice 2024-11 total: 17.50$",
		"long numeric": "ID 00112233445566778899001122334455667788990011 END",
		"bytes":        "ab\x00\x01\x02\x03\x04\x05cd",
	} {
		t.Run(name, func(t *testing.T) {
			img := testutil.Pad(testutil.Symbol(t, text, 3, scale), margin)
			assert.Equal(t, text, decodeImage(t, img, nil).Text)
		})
	}
}

func TestReaderByteSegments(t *testing.T) {
	text := "\x10\x11\x12\x13\x14\x15"
	img := testutil.Pad(testutil.Symbol(t, text, 2, scale), margin)

	result := decodeImage(t, img, nil)
	assert.Equal(t, [][]byte{[]byte(text)}, result.Metadata[pdf417go.MetadataByteSegments])
}

func TestReaderUpsideDown(t *testing.T) {
	const text = "Upside down symbol"
	img := testutil.Rotate180(testutil.Pad(testutil.Symbol(t, text, 2, scale), margin))

	result := decodeImage(t, img, nil)
	assert.Equal(t, text, result.Text)
	require.Len(t, result.Points, 4)
	// The codeword area's top left lies in the lower half of the image.
	assert.Greater(t, result.Points[0].Y, float64(img.Bounds().Dy()/2))
}

func TestReaderRecoversOccludedCodewords(t *testing.T) {
	const text = "Occluded codewords are erased"
	img := testutil.Pad(testutil.Symbol(t, text, 4, scale), margin)

	// Blank the first data column of rows 1 and 2. Rows are two modules
	// tall; data starts after the start pattern and left row indicator.
	rowHeight := 2 * scale
	x0 := margin + 34*scale
	y0 := margin + rowHeight
	occluded := testutil.Occlude(img, image.Rect(x0, y0, x0+17*scale, y0+2*rowHeight))

	result := decodeImage(t, occluded, nil)
	assert.Equal(t, text, result.Text)
	assert.Equal(t, 2, result.Metadata[pdf417go.MetadataErasuresCorrected])
}

func TestReaderPureBarcode(t *testing.T) {
	const text = "Pure barcode path"
	img := testutil.Pad(testutil.Symbol(t, text, 1, 2), 4)

	result := decodeImage(t, img, &pdf417go.DecodeOptions{PureBarcode: true})
	assert.Equal(t, text, result.Text)
	assert.Empty(t, result.Points)
}

func TestReaderNotFound(t *testing.T) {
	blank := imaging.New(200, 120, color.White)
	for name, opts := range map[string]*pdf417go.DecodeOptions{
		"detector": nil,
		"pure":     {PureBarcode: true},
	} {
		_, err := NewReader().Decode(testutil.Bitmap(blank), opts)
		assert.ErrorIs(t, err, pdf417go.ErrNotFound, name)
	}
}

func TestReaderHonoursPossibleFormats(t *testing.T) {
	img := testutil.Pad(testutil.Symbol(t, "PDF417", 1, scale), margin)
	opts := &pdf417go.DecodeOptions{PossibleFormats: []pdf417go.Format{pdf417go.FormatQRCode}}

	_, err := NewReader().Decode(testutil.Bitmap(img), opts)
	assert.ErrorIs(t, err, pdf417go.ErrNotFound)
}

func TestExtractPureBits(t *testing.T) {
	img := testutil.Pad(testutil.Symbol(t, "PDF417", 0, 2), 4)
	matrix, err := testutil.Bitmap(img).BlackMatrix()
	require.NoError(t, err)

	bits, err := extractPureBits(matrix)
	require.NoError(t, err)
	assert.Zero(t, bits.Width()%17)
	assert.Equal(t, (img.Bounds().Dy()-8)/2, bits.Height())
}
