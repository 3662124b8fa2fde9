package decoder

import (
	"fmt"

	pdf417go "github.com/ericlevine/pdf417go"
	"github.com/ericlevine/pdf417go/bitutil"
)

// BitMatrixParser reads the codewords of a sampled PDF417 grid. Each line of
// the grid is one scan across the codeword area: left row indicator, data
// columns, right row indicator. A symbol row is normally crossed by several
// lines, and every line that can be read votes for the codewords of its row.
type BitMatrixParser struct {
	bits     *bitutil.BitMatrix
	metadata barcodeMetadata
	erasures []int
}

// NewBitMatrixParser creates a parser for a grid whose width is a whole
// number of codewords.
func NewBitMatrixParser(bits *bitutil.BitMatrix) *BitMatrixParser {
	return &BitMatrixParser{bits: bits}
}

// ReadCodewords returns the rows*columns codewords of the symbol in reading
// order. Cells that no line could read, or where lines disagree evenly, are
// returned as 0 and listed by Erasures.
func (p *BitMatrixParser) ReadCodewords() ([]int, error) {
	width := p.bits.Width()
	if width%modulesInCodeword != 0 || width/modulesInCodeword < 3 {
		return nil, fmt.Errorf("pdf417: grid width %d is not a codeword multiple: %w", width, pdf417go.ErrFormat)
	}
	columns := width/modulesInCodeword - 2
	if columns > maxColumns {
		return nil, fmt.Errorf("pdf417: %d data columns: %w", columns, pdf417go.ErrFormat)
	}

	var meta metadataVotes
	var cells [][]votes
	highest := -1
	for y := 0; y < p.bits.Height(); y++ {
		left, leftOK := readSymbol(p.bits, 0, y)
		right, rightOK := readSymbol(p.bits, (columns+1)*modulesInCodeword, y)
		row := -1
		if leftOK {
			row = indicatorRow(left)
		}
		if rightOK {
			r := indicatorRow(right)
			if row >= 0 && r != row {
				continue
			}
			row = r
		}
		if row < 0 || row >= maxRows {
			continue
		}
		if leftOK {
			meta.left(left)
		}
		if rightOK {
			meta.right(right)
		}

		for len(cells) <= row {
			cells = append(cells, make([]votes, columns))
		}
		highest = max(highest, row)
		cluster := clusterOfRow(row)
		for c := 0; c < columns; c++ {
			s, ok := readSymbol(p.bits, (c+1)*modulesInCodeword, y)
			if ok && s.cluster == cluster {
				cells[row][c].add(s.value)
			}
		}
	}
	if highest < 0 {
		return nil, fmt.Errorf("pdf417: no row indicators readable: %w", pdf417go.ErrFormat)
	}

	md, err := meta.resolve(columns, highest)
	if err != nil {
		return nil, err
	}
	p.metadata = md

	codewords := make([]int, md.rows*columns)
	p.erasures = p.erasures[:0]
	for r := 0; r < md.rows; r++ {
		for c := 0; c < columns; c++ {
			i := r*columns + c
			var best []int
			if r < len(cells) {
				best = cells[r][c].best()
			}
			if len(best) != 1 {
				p.erasures = append(p.erasures, i)
				continue
			}
			codewords[i] = best[0]
		}
	}
	return codewords, nil
}

// ECLevel returns the error correction level read by ReadCodewords.
func (p *BitMatrixParser) ECLevel() int { return p.metadata.ecLevel }

// Erasures returns the codeword positions ReadCodewords could not read.
func (p *BitMatrixParser) Erasures() []int { return p.erasures }

// Rows returns the number of symbol rows.
func (p *BitMatrixParser) Rows() int { return p.metadata.rows }

// Columns returns the number of data columns.
func (p *BitMatrixParser) Columns() int { return p.metadata.columns }
