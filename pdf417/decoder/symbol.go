package decoder

import "github.com/ericlevine/pdf417go/bitutil"

const (
	modulesInCodeword = 17
	numberOfCodewords = 929
	maxRows           = 90
	maxColumns        = 30
)

// symbol is one decoded 17-module codeword and the cluster (0, 3 or 6)
// its bar/space pattern belongs to.
type symbol struct {
	value   int
	cluster int
}

var patternToSymbol = make(map[uint32]symbol, 3*numberOfCodewords)

func init() {
	for c := range clusterPatterns {
		for v, p := range clusterPatterns[c] {
			patternToSymbol[p] = symbol{value: v, cluster: 3 * c}
		}
	}
}

// readSymbol reads the 17 modules starting at column x of row y.
func readSymbol(bits *bitutil.BitMatrix, x, y int) (symbol, bool) {
	var pattern uint32
	for i := 0; i < modulesInCodeword; i++ {
		pattern <<= 1
		if bits.Get(x+i, y) {
			pattern |= 1
		}
	}
	s, ok := patternToSymbol[pattern]
	return s, ok
}

// clusterOfRow returns the cluster every codeword of the given row uses.
func clusterOfRow(row int) int {
	return (row % 3) * 3
}

// indicatorRow returns the row number encoded by a row indicator codeword.
func indicatorRow(s symbol) int {
	return 3*(s.value/30) + s.cluster/3
}
