package binarizer

import (
	pdf417go "github.com/ericlevine/pdf417go"
	"github.com/ericlevine/pdf417go/bitutil"
)

const (
	blockSizePower   = 3
	blockSize        = 1 << blockSizePower
	minimumDimension = blockSize * 5
	minDynamicRange  = 24
)

// Hybrid thresholds each 8x8 block against the mean of the 5x5 blocks around
// it. Images smaller than 40 pixels on either side fall back to the global
// histogram. BlackRow is inherited from GlobalHistogram.
type Hybrid struct {
	GlobalHistogram
}

// NewHybrid creates a new Hybrid binarizer.
func NewHybrid(source pdf417go.LuminanceSource) *Hybrid {
	return &Hybrid{GlobalHistogram: *NewGlobalHistogram(source)}
}

// BlackMatrix returns the locally thresholded matrix. Callers cache it via
// BinaryBitmap.
func (h *Hybrid) BlackMatrix() (*bitutil.BitMatrix, error) {
	width, height := h.source.Width(), h.source.Height()
	if width < minimumDimension || height < minimumDimension {
		return h.GlobalHistogram.BlackMatrix()
	}
	b := newBlocks(h.source.Matrix(), width, height)
	b.measure()
	matrix := bitutil.NewBitMatrix(width, height)
	b.threshold(matrix)
	return matrix, nil
}

// blocks partitions the luminance plane into blockSize squares. The last
// row and column of blocks are shifted inward so they stay inside the image.
type blocks struct {
	lum           []byte
	width, height int
	cols, rows    int
	black         [][]int
}

func newBlocks(lum []byte, width, height int) *blocks {
	b := &blocks{
		lum:    lum,
		width:  width,
		height: height,
		cols:   (width + blockSize - 1) >> blockSizePower,
		rows:   (height + blockSize - 1) >> blockSizePower,
	}
	b.black = make([][]int, b.rows)
	for i := range b.black {
		b.black[i] = make([]int, b.cols)
	}
	return b
}

func (b *blocks) origin(bx, by int) (x, y int) {
	return min(bx<<blockSizePower, b.width-blockSize), min(by<<blockSizePower, b.height-blockSize)
}

// measure stores one black point per block: its mean luminance, or half its
// minimum when the block is nearly flat. A flat block next to darker
// neighbours borrows their level so it does not turn a light area black.
func (b *blocks) measure() {
	for by := 0; by < b.rows; by++ {
		for bx := 0; bx < b.cols; bx++ {
			ox, oy := b.origin(bx, by)
			sum, lo, hi := 0, 0xff, 0
			for y := oy; y < oy+blockSize; y++ {
				for _, p := range b.lum[y*b.width+ox : y*b.width+ox+blockSize] {
					v := int(p)
					sum += v
					lo = min(lo, v)
					hi = max(hi, v)
				}
			}

			level := sum >> (2 * blockSizePower)
			if hi-lo <= minDynamicRange {
				level = lo / 2
				if bx > 0 && by > 0 {
					neighbours := (b.black[by-1][bx] + 2*b.black[by][bx-1] + b.black[by-1][bx-1]) / 4
					if lo < neighbours {
						level = neighbours
					}
				}
			}
			b.black[by][bx] = level
		}
	}
}

// threshold marks every pixel at or below the average black point of the
// 5x5 neighbourhood of its block, clamped at the image edges.
func (b *blocks) threshold(matrix *bitutil.BitMatrix) {
	for by := 0; by < b.rows; by++ {
		cy := clampCenter(by, b.rows)
		for bx := 0; bx < b.cols; bx++ {
			cx := clampCenter(bx, b.cols)
			sum := 0
			for y := cy - 2; y <= cy+2; y++ {
				for x := cx - 2; x <= cx+2; x++ {
					sum += b.black[y][x]
				}
			}
			level := sum / 25

			ox, oy := b.origin(bx, by)
			for y := oy; y < oy+blockSize; y++ {
				row := b.lum[y*b.width : (y+1)*b.width]
				for x := ox; x < ox+blockSize; x++ {
					if int(row[x]) <= level {
						matrix.Set(x, y)
					}
				}
			}
		}
	}
}

// clampCenter keeps a 5-wide window centred on i inside [0, n).
func clampCenter(i, n int) int {
	return max(2, min(i, n-3))
}
