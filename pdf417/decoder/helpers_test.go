package decoder

import (
	"github.com/ericlevine/pdf417go/bitutil"
)

// appendEC returns data followed by numEC Reed-Solomon codewords over
// GF(929), the way PDF417 encoders compute them.
func appendEC(data []int, numEC int) []int {
	f := pdf417Field
	g := f.one
	for i := 1; i <= numEC; i++ {
		g = g.mul(newModulusPoly(f, []int{1, f.sub(0, f.exp[i])}))
	}
	r := make([]int, numEC)
	for _, d := range data {
		fb := f.add(d, r[0])
		for j := 0; j < numEC; j++ {
			next := 0
			if j+1 < numEC {
				next = r[j+1]
			}
			r[j] = f.sub(next, f.mul(fb, g.coefficient(numEC-1-j)))
		}
	}
	out := append([]int(nil), data...)
	for _, v := range r {
		out = append(out, f.sub(0, v))
	}
	return out
}

// layoutSymbol pads payload to fill a symbol of the given width and
// returns all codewords with the length descriptor and EC appended.
func layoutSymbol(payload []int, columns, ecLevel int) (codewords []int, rows int) {
	numEC := 1 << uint(ecLevel+1)
	data := append([]int{0}, payload...)
	for (len(data)+numEC)%columns != 0 || (len(data)+numEC)/columns < 3 {
		data = append(data, textLatch)
	}
	data[0] = len(data)
	codewords = appendEC(data, numEC)
	return codewords, len(codewords) / columns
}

type gridOptions struct {
	linesPerRow int
	// shortLeftRows writes (rows-3)/3 into the left cluster 0 indicators,
	// as some encoders do.
	shortLeftRows   bool
	reportedColumns int
}

// renderGrid draws codewords as a sampled grid: one 17-module cell per
// codeword, row indicators on both sides, no guard patterns.
func renderGrid(codewords []int, rows, columns, ecLevel int, opt gridOptions) *bitutil.BitMatrix {
	if opt.linesPerRow == 0 {
		opt.linesPerRow = 2
	}
	reported := columns
	if opt.reportedColumns != 0 {
		reported = opt.reportedColumns
	}
	bits := bitutil.NewBitMatrix((columns+2)*modulesInCodeword, rows*opt.linesPerRow)
	for r := 0; r < rows; r++ {
		k := r % 3
		base := 30 * (r / 3)
		upper := (rows - 1) / 3
		if opt.shortLeftRows {
			upper = (rows - 3) / 3
		}
		left := base + [3]int{upper, 3*ecLevel + (rows-1)%3, reported - 1}[k]
		right := base + [3]int{reported - 1, (rows - 1) / 3, 3*ecLevel + (rows-1)%3}[k]

		cells := append([]int{left}, codewords[r*columns:(r+1)*columns]...)
		cells = append(cells, right)
		for l := 0; l < opt.linesPerRow; l++ {
			y := r*opt.linesPerRow + l
			for c, v := range cells {
				drawSymbol(bits, c*modulesInCodeword, y, clusterPatterns[k][v])
			}
		}
	}
	return bits
}

func drawSymbol(bits *bitutil.BitMatrix, x, y int, pattern uint32) {
	for i := 0; i < modulesInCodeword; i++ {
		if pattern&(1<<uint(modulesInCodeword-1-i)) != 0 {
			bits.Set(x+i, y)
		}
	}
}

// textCodewords is "PDF417" in text compaction.
var textCodewords = []int{453, 178, 121, 239}
