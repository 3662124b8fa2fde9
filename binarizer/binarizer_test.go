package binarizer

import (
	"testing"

	pdf417go "github.com/ericlevine/pdf417go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rawSource(t *testing.T, w, h int, pixel func(x, y int) byte) pdf417go.LuminanceSource {
	t.Helper()
	lum := make([]byte, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			lum[y*w+x] = pixel(x, y)
		}
	}
	src, err := pdf417go.NewRawLuminanceSource(lum, w, h)
	require.NoError(t, err)
	return src
}

func TestHistogramBlackPointBetweenPeaks(t *testing.T) {
	var h histogram
	h[3] = 400
	h[27] = 600
	h[15] = 5
	bp, err := h.blackPoint()
	require.NoError(t, err)
	assert.Greater(t, bp, 3<<luminanceShift)
	assert.Less(t, bp, 27<<luminanceShift)
}

func TestHistogramRejectsLowContrast(t *testing.T) {
	var h histogram
	h[14] = 100
	h[15] = 90
	_, err := h.blackPoint()
	assert.ErrorIs(t, err, pdf417go.ErrNotFound)
}

func TestGlobalHistogramMatrix(t *testing.T) {
	src := rawSource(t, 50, 50, func(x, y int) byte {
		if x < 25 {
			return 20
		}
		return 230
	})
	m, err := NewGlobalHistogram(src).BlackMatrix()
	require.NoError(t, err)
	assert.True(t, m.Get(0, 0))
	assert.True(t, m.Get(24, 49))
	assert.False(t, m.Get(25, 0))
	assert.False(t, m.Get(49, 49))
}

func TestGlobalHistogramRowSharpens(t *testing.T) {
	src := rawSource(t, 30, 1, func(x, y int) byte {
		if x >= 10 && x < 20 {
			return 10
		}
		return 240
	})
	row, err := NewGlobalHistogram(src).BlackRow(0, nil)
	require.NoError(t, err)
	for x := 1; x < 29; x++ {
		assert.Equal(t, x >= 10 && x < 20, row.Get(x), "x=%d", x)
	}
}

func TestHybridHandlesGradient(t *testing.T) {
	// Background brightens left to right; the dark square sits on the
	// bright side and the light margin on the dark side must stay white.
	src := rawSource(t, 120, 80, func(x, y int) byte {
		if x >= 80 && x < 100 && y >= 30 && y < 50 {
			return 10
		}
		return byte(150 + x/2)
	})
	m, err := NewHybrid(src).BlackMatrix()
	require.NoError(t, err)
	assert.True(t, m.Get(90, 40))
	assert.False(t, m.Get(5, 5))
	assert.False(t, m.Get(110, 70))
}

func TestHybridAllWhiteHasNoBlack(t *testing.T) {
	src := rawSource(t, 64, 64, func(x, y int) byte { return 255 })
	m, err := NewHybrid(src).BlackMatrix()
	require.NoError(t, err)
	_, _, ok := m.TopLeftOnBit()
	assert.False(t, ok)
}

func TestHybridFallsBackForSmallImages(t *testing.T) {
	src := rawSource(t, 30, 30, func(x, y int) byte {
		if x < 15 {
			return 30
		}
		return 220
	})
	m, err := NewHybrid(src).BlackMatrix()
	require.NoError(t, err)
	assert.True(t, m.Get(0, 0))
	assert.False(t, m.Get(29, 29))
}
