// Package binarizer turns luminance into black/white bit matrices.
package binarizer

import (
	"fmt"

	pdf417go "github.com/ericlevine/pdf417go"
	"github.com/ericlevine/pdf417go/bitutil"
)

const (
	luminanceBits    = 5
	luminanceShift   = 8 - luminanceBits
	luminanceBuckets = 1 << luminanceBits
)

// histogram counts luminance samples in 32 buckets.
type histogram [luminanceBuckets]int

func (h *histogram) add(samples []byte) {
	for _, s := range samples {
		h[s>>luminanceShift]++
	}
}

// blackPoint picks the valley between the two most separated peaks and
// returns it as a luminance threshold. It fails with ErrNotFound when the
// peaks are too close to tell dark from light.
func (h *histogram) blackPoint() (int, error) {
	maxCount, first := 0, 0
	for i, c := range h {
		if c > maxCount {
			maxCount, first = c, i
		}
	}

	// Second peak: favour tall buckets far from the first.
	second, secondScore := 0, 0
	for i, c := range h {
		d := i - first
		if score := c * d * d; score > secondScore {
			second, secondScore = i, score
		}
	}
	if first > second {
		first, second = second, first
	}
	if second-first <= luminanceBuckets/16 {
		return 0, fmt.Errorf("%w: histogram peaks %d and %d too close", pdf417go.ErrNotFound, first, second)
	}

	valley, valleyScore := second-1, -1
	for i := second - 1; i > first; i-- {
		fromFirst := i - first
		score := fromFirst * fromFirst * (second - i) * (maxCount - h[i])
		if score > valleyScore {
			valley, valleyScore = i, score
		}
	}
	return valley << luminanceShift, nil
}

// GlobalHistogram binarizes with a single threshold for the whole image. It
// is cheap and suits images with even lighting; Hybrid handles shadows and
// gradients better.
type GlobalHistogram struct {
	source pdf417go.LuminanceSource
	row    []byte
}

// NewGlobalHistogram creates a new GlobalHistogram binarizer.
func NewGlobalHistogram(source pdf417go.LuminanceSource) *GlobalHistogram {
	return &GlobalHistogram{source: source}
}

// LuminanceSource returns the underlying source.
func (g *GlobalHistogram) LuminanceSource() pdf417go.LuminanceSource { return g.source }

// Width returns the image width.
func (g *GlobalHistogram) Width() int { return g.source.Width() }

// Height returns the image height.
func (g *GlobalHistogram) Height() int { return g.source.Height() }

// BlackRow thresholds one row against its own histogram after a
// (4*center - left - right) / 2 sharpening pass.
func (g *GlobalHistogram) BlackRow(y int, row *bitutil.BitArray) (*bitutil.BitArray, error) {
	width := g.source.Width()
	if row == nil || row.Size() < width {
		row = bitutil.NewBitArray(width)
	} else {
		row.Clear()
	}
	g.row = g.source.Row(y, g.row)
	lum := g.row[:width]

	var h histogram
	h.add(lum)
	black, err := h.blackPoint()
	if err != nil {
		return nil, err
	}

	if width < 3 {
		for x, l := range lum {
			if int(l) < black {
				row.Set(x)
			}
		}
		return row, nil
	}
	for x := 1; x < width-1; x++ {
		sharpened := (4*int(lum[x]) - int(lum[x-1]) - int(lum[x+1])) >> 1
		if sharpened < black {
			row.Set(x)
		}
	}
	return row, nil
}

// BlackMatrix builds the histogram from the middle three fifths of the rows at
// 1/5, 2/5, 3/5 and 4/5 of the height, then thresholds every pixel.
func (g *GlobalHistogram) BlackMatrix() (*bitutil.BitMatrix, error) {
	width, height := g.source.Width(), g.source.Height()

	var h histogram
	for i := 1; i <= 4; i++ {
		g.row = g.source.Row(height*i/5, g.row)
		h.add(g.row[width/5 : width*4/5])
	}
	black, err := h.blackPoint()
	if err != nil {
		return nil, err
	}

	matrix := bitutil.NewBitMatrix(width, height)
	lum := g.source.Matrix()
	for y := 0; y < height; y++ {
		for x, l := range lum[y*width : (y+1)*width] {
			if int(l) < black {
				matrix.Set(x, y)
			}
		}
	}
	return matrix, nil
}
