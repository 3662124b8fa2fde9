package pdf417go

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rawSource(t *testing.T) *ImageLuminanceSource {
	t.Helper()
	src, err := NewRawLuminanceSource([]byte{1, 2, 3, 4, 5, 6}, 3, 2)
	require.NoError(t, err)
	return src
}

func TestRawLuminanceSourceRejectsShortBuffer(t *testing.T) {
	_, err := NewRawLuminanceSource([]byte{1, 2, 3}, 2, 2)
	assert.ErrorIs(t, err, ErrArgument)
}

func TestImageLuminanceSourceConversion(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 3, 1))
	img.Set(0, 0, color.White)
	img.Set(1, 0, color.Black)
	img.Set(2, 0, color.Transparent)

	src := NewImageLuminanceSource(img)
	assert.Equal(t, []byte{255, 0, 255}, src.Matrix())
}

func TestCropKeepsOrientation(t *testing.T) {
	crop, err := rawSource(t).Crop(1, 0, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, crop.Width())
	assert.Equal(t, 2, crop.Height())
	assert.Equal(t, []byte{2, 3, 5, 6}, crop.Matrix())
	assert.Equal(t, []byte{5, 6}, crop.Row(1, nil))

	_, err = rawSource(t).Crop(2, 0, 2, 2)
	assert.ErrorIs(t, err, ErrArgument)
}

func TestRowReusesBuffer(t *testing.T) {
	buf := make([]byte, 8)
	row := rawSource(t).Row(0, buf)
	assert.Equal(t, []byte{1, 2, 3}, row[:3])
	assert.Same(t, &buf[0], &row[0])
	assert.Nil(t, rawSource(t).Row(2, nil))
}

func TestRotations(t *testing.T) {
	ccw := rawSource(t).RotateCounterClockwise()
	assert.Equal(t, 2, ccw.Width())
	assert.Equal(t, 3, ccw.Height())
	assert.Equal(t, []byte{3, 6, 2, 5, 1, 4}, ccw.Matrix())

	assert.Equal(t, []byte{6, 5, 4, 3, 2, 1}, rawSource(t).Rotate180().Matrix())

	crop, err := rawSource(t).Crop(1, 0, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, []byte{6, 5, 3, 2}, crop.(*ImageLuminanceSource).Rotate180().Matrix())
}

func TestInvert(t *testing.T) {
	assert.Equal(t, []byte{254, 253, 252, 251, 250, 249}, rawSource(t).Invert().Matrix())
}
