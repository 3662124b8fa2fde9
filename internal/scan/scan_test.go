package scan

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"

	pdf417go "github.com/ericlevine/pdf417go"
	"github.com/ericlevine/pdf417go/internal/testutil"
)

func fixture(t *testing.T, text string) image.Image {
	t.Helper()
	return testutil.Pad(testutil.Symbol(t, text, 2, 3), 20)
}

func TestImage(t *testing.T) {
	result, err := Image(fixture(t, "scan package"), Options{})
	require.NoError(t, err)
	assert.Equal(t, "scan package", result.Text)
}

func TestImageInvertedNeedsTryHarder(t *testing.T) {
	inverted := imaging.Invert(fixture(t, "light on dark"))

	_, err := Image(inverted, Options{})
	require.Error(t, err)

	result, err := Image(inverted, Options{Decode: &pdf417go.DecodeOptions{TryHarder: true}})
	require.NoError(t, err)
	assert.Equal(t, "light on dark", result.Text)
}

func TestImageBlank(t *testing.T) {
	_, err := Image(imaging.New(120, 80, color.White), Options{})
	assert.ErrorIs(t, err, pdf417go.ErrNotFound)
}

func TestFileFormats(t *testing.T) {
	img := fixture(t, "file formats")
	fs := afero.NewMemMapFs()

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	require.NoError(t, afero.WriteFile(fs, "/in/a.png", buf.Bytes(), 0o644))
	buf.Reset()
	require.NoError(t, bmp.Encode(&buf, img))
	require.NoError(t, afero.WriteFile(fs, "/in/b.bmp", buf.Bytes(), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/in/c.png", []byte("not an image"), 0o644))

	for _, path := range []string{"/in/a.png", "/in/b.bmp"} {
		result, err := File(fs, path, Options{})
		require.NoError(t, err, path)
		assert.Equal(t, "file formats", result.Text)
	}
	_, err := File(fs, "/in/c.png", Options{})
	assert.ErrorContains(t, err, "/in/c.png")
	_, err = File(fs, "/in/missing.png", Options{})
	assert.Error(t, err)
}

func TestNewRecord(t *testing.T) {
	result, err := Image(fixture(t, "record"), Options{})
	require.NoError(t, err)

	r := NewRecord("a.png", result, nil)
	assert.True(t, r.OK())
	assert.Equal(t, "record", r.Text)
	assert.Equal(t, "PDF_417", r.Format)
	assert.Equal(t, "2", r.ECLevel)
	assert.Len(t, r.Points, 4)

	failed := NewRecord("b.png", nil, errors.New("boom"))
	assert.False(t, failed.OK())
	assert.Equal(t, "boom", failed.Error)
}
