// Package detector locates a PDF417 symbol in a binarized image by its
// start and stop guard patterns and samples its codeword area into a grid.
package detector

import (
	"fmt"
	"math"

	pdf417go "github.com/ericlevine/pdf417go"
	"github.com/ericlevine/pdf417go/bitutil"
	"github.com/ericlevine/pdf417go/internal"
	"github.com/ericlevine/pdf417go/transform"
)

const (
	maxAvgVariance        = 0.42
	maxIndividualVariance = 0.8
	skewThreshold         = 2

	modulesInCodeword    = 17
	modulesInStopPattern = 18
)

// B S B S B S B S Bar/Space pattern
// 11111111 0 1 0 1 0 1 000
var (
	startPattern        = []int{8, 1, 1, 1, 1, 1, 1, 3}
	startPatternReverse = []int{3, 1, 1, 1, 1, 1, 1, 8}
)

// 1111111 0 1 000 1 0 1 00 1
var (
	stopPattern        = []int{7, 1, 1, 3, 1, 1, 1, 2, 1}
	stopPatternReverse = []int{1, 2, 1, 1, 1, 3, 1, 1, 7}
)

// Detector finds one PDF417 symbol, upright or rotated by 180 degrees.
type Detector struct {
	image   *bitutil.BitMatrix
	sampler transform.GridSampler
}

// New creates a Detector over a binarized image. A nil sampler means
// transform.DefaultGridSampler.
func New(image *bitutil.BitMatrix, sampler transform.GridSampler) *Detector {
	if sampler == nil {
		sampler = transform.DefaultGridSampler{}
	}
	return &Detector{image: image, sampler: sampler}
}

// vertices holds the eight points found by the guard pattern scans:
//
//	[0] top left of the symbol       [4] top left of the codeword area
//	[1] bottom left of the symbol    [5] bottom left of the codeword area
//	[2] top right of the symbol      [6] top right of the codeword area
//	[3] bottom right of the symbol   [7] bottom right of the codeword area
//
// "Top left" is in symbol terms; for an upside-down symbol it lies at the
// bottom right of the image.
type vertices [8]pdf417go.ResultPoint

// Detect locates the symbol and returns its codeword area sampled as a
// dimension x dimension grid, with the codeword area corners in the order
// top-left, bottom-left, top-right, bottom-right.
func (d *Detector) Detect() (*internal.DetectorResult, error) {
	v, ok := findVertices(d.image)
	upsideDown := false
	if !ok {
		v, ok = findVertices180(d.image)
		upsideDown = true
	}
	if !ok {
		return nil, fmt.Errorf("pdf417: no start and stop patterns: %w", pdf417go.ErrNotFound)
	}
	correctCodewordVertices(&v, upsideDown)

	moduleWidth := computeModuleWidth(&v)
	if moduleWidth < 1 {
		return nil, fmt.Errorf("pdf417: module width %.2f below one pixel: %w", moduleWidth, pdf417go.ErrNotFound)
	}
	dimension := computeDimension(v[4], v[6], v[5], v[7], moduleWidth)
	if dimension < 3*modulesInCodeword {
		return nil, fmt.Errorf("pdf417: codeword area %d modules wide: %w", dimension, pdf417go.ErrNotFound)
	}

	bits, err := d.sampleGrid(v[4], v[5], v[6], v[7], dimension)
	if err != nil {
		return nil, err
	}
	return internal.NewDetectorResult(bits, []pdf417go.ResultPoint{v[4], v[5], v[6], v[7]}), nil
}

// findVertices scans for an upright symbol: start pattern on the left,
// stop pattern on the right.
func findVertices(matrix *bitutil.BitMatrix) (vertices, bool) {
	var v vertices
	start := make([]int, len(startPattern))
	stop := make([]int, len(stopPattern))

	l, r, y, ok := scanRows(matrix, startPattern, start, false, true)
	if !ok {
		return v, false
	}
	v[0], v[4] = point(l, y), point(r, y)

	if l, r, y, ok = scanRows(matrix, startPattern, start, false, false); !ok {
		return v, false
	}
	v[1], v[5] = point(l, y), point(r, y)

	if l, r, y, ok = scanRows(matrix, stopPattern, stop, false, true); !ok {
		return v, false
	}
	v[2], v[6] = point(r, y), point(l, y)

	if l, r, y, ok = scanRows(matrix, stopPattern, stop, false, false); !ok {
		return v, false
	}
	v[3], v[7] = point(r, y), point(l, y)
	return v, true
}

// findVertices180 scans for a symbol rotated by 180 degrees and reports
// the vertices in symbol terms: reversed start pattern on the right, read
// bottom-up for the symbol's top, reversed stop pattern on the left.
func findVertices180(matrix *bitutil.BitMatrix) (vertices, bool) {
	var v vertices
	start := make([]int, len(startPatternReverse))
	stop := make([]int, len(stopPatternReverse))

	l, r, y, ok := scanRows(matrix, startPatternReverse, start, true, false)
	if !ok {
		return v, false
	}
	v[0], v[4] = point(r, y), point(l, y)

	if l, r, y, ok = scanRows(matrix, startPatternReverse, start, true, true); !ok {
		return v, false
	}
	v[1], v[5] = point(r, y), point(l, y)

	if l, r, y, ok = scanRows(matrix, stopPatternReverse, stop, false, false); !ok {
		return v, false
	}
	v[2], v[6] = point(l, y), point(r, y)

	if l, r, y, ok = scanRows(matrix, stopPatternReverse, stop, false, true); !ok {
		return v, false
	}
	v[3], v[7] = point(l, y), point(r, y)
	return v, true
}

// scanRows returns the guard pattern found in the first row, scanning
// from the top or from the bottom, that contains it.
func scanRows(matrix *bitutil.BitMatrix, pattern, counters []int, whiteFirst, topDown bool) (left, right, y int, ok bool) {
	height := matrix.Height()
	for i := 0; i < height; i++ {
		y = i
		if !topDown {
			y = height - 1 - i
		}
		if left, right, ok = findGuardPattern(matrix, 0, y, matrix.Width(), whiteFirst, pattern, counters); ok {
			return left, right, y, true
		}
	}
	return 0, 0, 0, false
}

func point(x, y int) pdf417go.ResultPoint {
	return pdf417go.ResultPoint{X: float64(x), Y: float64(y)}
}

// correctCodewordVertices moves a codeword area corner back onto the edge
// of the symbol when the top or bottom pair disagree vertically by more
// than skewThreshold pixels. Row scans find the first row in which a whole
// guard pattern is visible, which for a skewed symbol is not the row of
// the corner itself.
func correctCodewordVertices(v *vertices, upsideDown bool) {
	skew := v[4].Y - v[6].Y
	if upsideDown {
		skew = -skew
	}
	switch {
	case skew > skewThreshold:
		length := v[4].X - v[0].X
		dx := v[6].X - v[0].X
		dy := v[6].Y - v[0].Y
		if dx != 0 {
			v[4].Y += length * dy / dx
		}
	case -skew > skewThreshold:
		length := v[2].X - v[6].X
		dx := v[2].X - v[4].X
		dy := v[2].Y - v[4].Y
		if dx != 0 {
			v[6].Y -= length * dy / dx
		}
	}

	skew = v[7].Y - v[5].Y
	if upsideDown {
		skew = -skew
	}
	switch {
	case skew > skewThreshold:
		length := v[5].X - v[1].X
		dx := v[7].X - v[1].X
		dy := v[7].Y - v[1].Y
		if dx != 0 {
			v[5].Y += length * dy / dx
		}
	case -skew > skewThreshold:
		length := v[3].X - v[7].X
		dx := v[3].X - v[5].X
		dy := v[3].Y - v[5].Y
		if dx != 0 {
			v[7].Y -= length * dy / dx
		}
	}
}

// computeModuleWidth estimates pixels per module from the widths of the
// start (17 modules) and stop (18 modules) patterns.
func computeModuleWidth(v *vertices) float64 {
	left := (pdf417go.Distance(v[0], v[4]) + pdf417go.Distance(v[1], v[5])) / (2 * modulesInCodeword)
	right := (pdf417go.Distance(v[6], v[2]) + pdf417go.Distance(v[7], v[3])) / (2 * modulesInStopPattern)
	return (left + right) / 2
}

// computeDimension returns the width of the codeword area in modules,
// rounded to the nearest whole number of codewords.
func computeDimension(topLeft, topRight, bottomLeft, bottomRight pdf417go.ResultPoint, moduleWidth float64) int {
	top := round(pdf417go.Distance(topLeft, topRight) / moduleWidth)
	bottom := round(pdf417go.Distance(bottomLeft, bottomRight) / moduleWidth)
	return ((top+bottom)/2 + 8) / modulesInCodeword * modulesInCodeword
}

func round(f float64) int {
	return int(f + 0.5)
}

// sampleGrid maps the codeword area quadrilateral onto a square grid. The
// vertices mark module edges, not centres; the sampler adds the half
// module offset.
func (d *Detector) sampleGrid(topLeft, bottomLeft, topRight, bottomRight pdf417go.ResultPoint, dimension int) (*bitutil.BitMatrix, error) {
	n := float64(dimension)
	grid := transform.Quad{{X: 0, Y: 0}, {X: n, Y: 0}, {X: n, Y: n}, {X: 0, Y: n}}
	area := transform.Quad{topLeft, topRight, bottomRight, bottomLeft}
	return d.sampler.SampleGrid(d.image, dimension, dimension, transform.QuadToQuad(grid, area))
}

// findGuardPattern searches width pixels of a row, starting at column, for
// the run-length pattern. It returns the first pixel of the pattern and
// the first pixel after it. whiteFirst says the pattern opens with a space.
func findGuardPattern(matrix *bitutil.BitMatrix, column, row, width int, whiteFirst bool, pattern, counters []int) (int, int, bool) {
	for i := range counters {
		counters[i] = 0
	}
	end := min(column+width, matrix.Width())
	patternLength := len(pattern)
	isWhite := whiteFirst
	counterPosition := 0
	patternStart := column

	for x := column; x < end; x++ {
		if matrix.Get(x, row) != isWhite {
			counters[counterPosition]++
			continue
		}
		if counterPosition == patternLength-1 {
			if patternMatchVariance(counters, pattern) < maxAvgVariance {
				return patternStart, x, true
			}
			patternStart += counters[0] + counters[1]
			copy(counters, counters[2:])
			counters[patternLength-2] = 0
			counters[patternLength-1] = 0
			counterPosition--
		} else {
			counterPosition++
		}
		counters[counterPosition] = 1
		isWhite = !isWhite
	}

	if counterPosition == patternLength-1 && patternMatchVariance(counters, pattern) < maxAvgVariance {
		return patternStart, end, true
	}
	return 0, 0, false
}

// patternMatchVariance returns the summed deviation of the observed runs
// from the pattern, scaled to the observed width, divided by that width.
// A single run deviating by more than maxIndividualVariance of a module
// rejects the match outright.
func patternMatchVariance(counters, pattern []int) float64 {
	total, patternLength := 0, 0
	for i := range counters {
		total += counters[i]
		patternLength += pattern[i]
	}
	if total < patternLength {
		// Less than a pixel per module.
		return math.Inf(1)
	}

	unitBarWidth := float64(total) / float64(patternLength)
	maxVariance := maxIndividualVariance * unitBarWidth

	totalVariance := 0.0
	for i, c := range counters {
		variance := math.Abs(float64(c) - float64(pattern[i])*unitBarWidth)
		if variance > maxVariance {
			return math.Inf(1)
		}
		totalVariance += variance
	}
	return totalVariance / float64(total)
}
