package detector

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pdf417go "github.com/ericlevine/pdf417go"
	"github.com/ericlevine/pdf417go/bitutil"
)

const (
	testModule = 2
	testQuiet  = 10
)

// contentWord fills the codeword area; it has no long runs and is not
// symmetric, so a mirrored sample would not match.
const contentWord = "10101010101010100"

// drawRuns paints alternating bar/space runs, bar first, scaled to the
// test module width, and returns the x after the last run.
func drawRuns(m *bitutil.BitMatrix, x, top, height int, runs []int) int {
	bar := true
	for _, r := range runs {
		w := r * testModule
		if bar {
			m.SetRegion(x, top, w, height)
		}
		x += w
		bar = !bar
	}
	return x
}

func drawWord(m *bitutil.BitMatrix, x, top, height int, word string) int {
	for _, c := range word {
		if c == '1' {
			m.SetRegion(x, top, testModule, height)
		}
		x += testModule
	}
	return x
}

// syntheticSymbol draws start pattern, codewords columns of content and the
// stop pattern on a white quiet zone.
func syntheticSymbol(codewords, height int) *bitutil.BitMatrix {
	width := 2*testQuiet + (17+17*codewords+18)*testModule
	m := bitutil.NewBitMatrix(width, height+2*testQuiet)
	x := drawRuns(m, testQuiet, testQuiet, height, startPattern)
	for i := 0; i < codewords; i++ {
		x = drawWord(m, x, testQuiet, height, contentWord)
	}
	drawRuns(m, x, testQuiet, height, stopPattern)
	return m
}

func TestFindGuardPattern(t *testing.T) {
	m := syntheticSymbol(3, 4)
	counters := make([]int, len(startPattern))

	l, r, ok := findGuardPattern(m, 0, testQuiet, m.Width(), false, startPattern, counters)
	require.True(t, ok)
	assert.Equal(t, testQuiet, l)
	assert.Equal(t, testQuiet+17*testModule, r)

	stop := make([]int, len(stopPattern))
	l, r, ok = findGuardPattern(m, 0, testQuiet, m.Width(), false, stopPattern, stop)
	require.True(t, ok)
	assert.Equal(t, testQuiet+(17+3*17)*testModule, l)
	assert.Equal(t, m.Width()-testQuiet, r)

	_, _, ok = findGuardPattern(m, 0, 0, m.Width(), false, startPattern, counters)
	assert.False(t, ok, "quiet zone row")
}

func TestPatternMatchVariance(t *testing.T) {
	exact := []int{80, 10, 10, 10, 10, 10, 10, 30}
	assert.Zero(t, patternMatchVariance(exact, startPattern))

	widened := []int{80, 25, 10, 10, 10, 10, 10, 30}
	assert.True(t, math.IsInf(patternMatchVariance(widened, startPattern), 1))

	narrow := []int{1, 1, 1, 1, 1, 1, 1, 1}
	assert.True(t, math.IsInf(patternMatchVariance(narrow, startPattern), 1))
}

func TestComputeDimension(t *testing.T) {
	tl := pdf417go.ResultPoint{X: 0, Y: 0}
	assert.Equal(t, 51, computeDimension(tl, pdf417go.ResultPoint{X: 100, Y: 0},
		pdf417go.ResultPoint{X: 0, Y: 50}, pdf417go.ResultPoint{X: 104, Y: 50}, 2))
	// 59 modules rounds down to three codewords, 60 up to four.
	assert.Equal(t, 51, computeDimension(tl, pdf417go.ResultPoint{X: 59}, tl, pdf417go.ResultPoint{X: 59}, 1))
	assert.Equal(t, 68, computeDimension(tl, pdf417go.ResultPoint{X: 60}, tl, pdf417go.ResultPoint{X: 60}, 1))
}

func TestDetectUpright(t *testing.T) {
	m := syntheticSymbol(3, 40)
	result, err := New(m, nil).Detect()
	require.NoError(t, err)

	require.Len(t, result.Points, 4)
	assert.Equal(t, pdf417go.ResultPoint{X: testQuiet + 17*testModule, Y: testQuiet}, result.Points[0])
	assert.Equal(t, pdf417go.ResultPoint{X: testQuiet + 17*testModule, Y: testQuiet + 39}, result.Points[1])

	bits := result.Bits
	require.Equal(t, 51, bits.Width())
	require.Equal(t, 51, bits.Height())
	for y := 0; y < bits.Height(); y += 10 {
		for x := 0; x < bits.Width(); x++ {
			assert.Equal(t, contentWord[x%17] == '1', bits.Get(x, y), "module %d line %d", x, y)
		}
	}
}

func TestDetectUpsideDown(t *testing.T) {
	upright := syntheticSymbol(3, 40)
	want, err := New(upright, nil).Detect()
	require.NoError(t, err)

	rotated := upright.Clone()
	rotated.Rotate180()
	got, err := New(rotated, nil).Detect()
	require.NoError(t, err)

	assert.Equal(t, want.Bits.String(), got.Bits.String())
	// Top left of the codeword area sits at the bottom right of the image.
	assert.Greater(t, got.Points[0].X, got.Points[2].X)
	assert.Greater(t, got.Points[0].Y, got.Points[1].Y)
}

func TestDetectNotFound(t *testing.T) {
	_, err := New(bitutil.NewBitMatrix(120, 80), nil).Detect()
	assert.ErrorIs(t, err, pdf417go.ErrNotFound)
}
