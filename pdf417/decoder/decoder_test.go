package decoder

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pdf417go "github.com/ericlevine/pdf417go"
)

func TestVerifyCodewordCount(t *testing.T) {
	assert.ErrorIs(t, verifyCodewordCount([]int{1, 2, 3}, 2), pdf417go.ErrFormat)
	assert.ErrorIs(t, verifyCodewordCount([]int{9, 0, 0, 0, 0}, 2), pdf417go.ErrFormat)

	cw := []int{0, 1, 2, 3, 4, 5}
	require.NoError(t, verifyCodewordCount(cw, 2))
	assert.Equal(t, 4, cw[0])

	assert.ErrorIs(t, verifyCodewordCount([]int{0, 1, 2, 3}, 4), pdf417go.ErrFormat)
	assert.NoError(t, verifyCodewordCount([]int{3, 1, 2, 3}, 1))
}

func TestCorrectErrorsClean(t *testing.T) {
	cw := appendEC([]int{5, 453, 178, 121, 239}, 8)
	n, err := correctErrors(cw, nil, 8)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestCorrectErrors(t *testing.T) {
	want := appendEC([]int{7, 1, 2, 3, 4, 5, 6}, 8)
	got := append([]int(nil), want...)
	got[1] = 800
	got[4] = 0
	got[10] = (got[10] + 1) % numberOfCodewords

	n, err := correctErrors(got, nil, 8)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, want, got)
}

func TestCorrectErrorsWithErasures(t *testing.T) {
	want := appendEC([]int{7, 10, 20, 30, 40, 50, 60}, 8)
	got := append([]int(nil), want...)
	erasures := []int{0, 2, 3, 5, 8, 12}
	for _, e := range erasures {
		got[e] = 0
	}
	got[6] = (got[6] + 100) % numberOfCodewords

	_, err := correctErrors(got, erasures, 8)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestCorrectErrorsBudget(t *testing.T) {
	cw := appendEC([]int{5, 1, 2, 3, 4}, 8)
	_, err := correctErrors(cw, []int{0, 1, 2, 3, 4, 5, 6, 7}, 8)
	assert.ErrorIs(t, err, pdf417go.ErrChecksum)

	_, err = correctErrors(cw, nil, 1024)
	assert.ErrorIs(t, err, pdf417go.ErrChecksum)

	_, err = correctErrors([]int{1, 2}, nil, 2)
	assert.ErrorIs(t, err, pdf417go.ErrFormat)
}

func TestCorrectErrorsProperty(t *testing.T) {
	params := gopter.DefaultTestParameters()
	params.MinSuccessfulTests = 50
	properties := gopter.NewProperties(params)

	properties.Property("errors within half the EC budget are repaired", prop.ForAll(
		func(data []int, ecLevel int, seed int) bool {
			numEC := 1 << uint(ecLevel+1)
			block := append([]int{len(data) + 1}, data...)
			want := appendEC(block, numEC)
			got := append([]int(nil), want...)
			for i := 0; i < numEC/2; i++ {
				pos := (seed + i*7) % len(got)
				got[pos] = (got[pos] + 1 + i) % numberOfCodewords
			}
			if _, err := correctErrors(got, nil, numEC); err != nil {
				return false
			}
			for i := range want {
				if want[i] != got[i] {
					return false
				}
			}
			return true
		},
		gen.SliceOfN(20, gen.IntRange(0, 928)),
		gen.IntRange(0, 3),
		gen.IntRange(0, 1000),
	))
	properties.TestingRun(t)
}

func TestBitMatrixParser(t *testing.T) {
	codewords, rows := layoutSymbol(textCodewords, 2, 1)
	grid := renderGrid(codewords, rows, 2, 1, gridOptions{})

	p := NewBitMatrixParser(grid)
	got, err := p.ReadCodewords()
	require.NoError(t, err)
	assert.Equal(t, codewords, got)
	assert.Equal(t, 1, p.ECLevel())
	assert.Equal(t, rows, p.Rows())
	assert.Equal(t, 2, p.Columns())
	assert.Empty(t, p.Erasures())
}

func TestBitMatrixParserShortRowIndicator(t *testing.T) {
	codewords, rows := layoutSymbol([]int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 3, 2)
	grid := renderGrid(codewords, rows, 3, 2, gridOptions{shortLeftRows: true, linesPerRow: 3})

	p := NewBitMatrixParser(grid)
	got, err := p.ReadCodewords()
	require.NoError(t, err)
	assert.Equal(t, rows, p.Rows())
	assert.Equal(t, codewords, got)
}

func TestBitMatrixParserErasures(t *testing.T) {
	codewords, rows := layoutSymbol(textCodewords, 2, 1)
	grid := renderGrid(codewords, rows, 2, 1, gridOptions{})
	// Blank the first data cell of row 1 on both of its lines.
	for y := 2; y < 4; y++ {
		for x := modulesInCodeword; x < 2*modulesInCodeword; x++ {
			grid.Unset(x, y)
		}
	}

	p := NewBitMatrixParser(grid)
	_, err := p.ReadCodewords()
	require.NoError(t, err)
	assert.Equal(t, []int{2}, p.Erasures())
}

func TestBitMatrixParserRejects(t *testing.T) {
	codewords, rows := layoutSymbol(textCodewords, 2, 1)

	grid := renderGrid(codewords, rows, 2, 1, gridOptions{reportedColumns: 3})
	_, err := NewBitMatrixParser(grid).ReadCodewords()
	assert.ErrorIs(t, err, pdf417go.ErrFormat)

	blank := renderGrid(codewords, rows, 2, 1, gridOptions{})
	blank.Clear()
	_, err = NewBitMatrixParser(blank).ReadCodewords()
	assert.ErrorIs(t, err, pdf417go.ErrFormat)
}

func TestDecode(t *testing.T) {
	codewords, rows := layoutSymbol(textCodewords, 2, 1)
	grid := renderGrid(codewords, rows, 2, 1, gridOptions{})

	result, err := NewDecoder().Decode(grid, "")
	require.NoError(t, err)
	assert.Equal(t, "PDF417", result.Text)
	assert.Equal(t, "1", result.ECLevel)
	assert.Zero(t, result.ErrorsCorrected)
	assert.Zero(t, result.Erasures)
}

func TestDecodeRepairsDamage(t *testing.T) {
	codewords, rows := layoutSymbol(textCodewords, 2, 2)
	damaged := append([]int(nil), codewords...)
	damaged[3] = 17
	grid := renderGrid(damaged, rows, 2, 2, gridOptions{})
	for y := 0; y < 2; y++ {
		for x := modulesInCodeword; x < 2*modulesInCodeword; x++ {
			grid.Unset(x, y)
		}
	}

	result, err := NewDecoder().Decode(grid, "")
	require.NoError(t, err)
	assert.Equal(t, "PDF417", result.Text)
	assert.Equal(t, 1, result.Erasures)
	assert.Equal(t, 1, result.ErrorsCorrected)
}
