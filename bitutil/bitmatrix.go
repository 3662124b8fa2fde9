package bitutil

import "strings"

// BitMatrix is a width x height grid of bits, stored row-major with each row
// occupying RowSize() 64-bit words. x is the column, y the row, and the
// origin is the top-left corner. True means dark.
type BitMatrix struct {
	width   int
	height  int
	rowSize int
	words   []uint64
}

// NewBitMatrix returns a cleared width x height matrix. Non-positive
// dimensions are a caller bug and panic.
func NewBitMatrix(width, height int) *BitMatrix {
	if width < 1 || height < 1 {
		panic("bitutil: matrix dimensions must be positive")
	}
	rowSize := wordsFor(width)
	return &BitMatrix{
		width:   width,
		height:  height,
		rowSize: rowSize,
		words:   make([]uint64, rowSize*height),
	}
}

// NewSquareBitMatrix returns a cleared dimension x dimension matrix.
func NewSquareBitMatrix(dimension int) *BitMatrix {
	return NewBitMatrix(dimension, dimension)
}

// ParseBitMatrix builds a matrix from rows of text where set marks a dark
// module and any other rune a light one. Blank lines are skipped.
func ParseBitMatrix(s string, set rune) *BitMatrix {
	var rows []string
	for _, line := range strings.Split(s, "\n") {
		if line = strings.TrimRight(line, "\r"); line != "" {
			rows = append(rows, line)
		}
	}
	if len(rows) == 0 {
		panic("bitutil: empty matrix text")
	}
	width := len([]rune(rows[0]))
	m := NewBitMatrix(width, len(rows))
	for y, row := range rows {
		for x, r := range []rune(row) {
			if x < width && r == set {
				m.Set(x, y)
			}
		}
	}
	return m
}

func (m *BitMatrix) index(x, y int) (int, uint64) {
	return y*m.rowSize + x/wordBits, 1 << (uint(x) % wordBits)
}

// Get reports whether (x, y) is dark.
func (m *BitMatrix) Get(x, y int) bool {
	i, mask := m.index(x, y)
	return m.words[i]&mask != 0
}

// Set marks (x, y) dark.
func (m *BitMatrix) Set(x, y int) {
	i, mask := m.index(x, y)
	m.words[i] |= mask
}

// Unset marks (x, y) light.
func (m *BitMatrix) Unset(x, y int) {
	i, mask := m.index(x, y)
	m.words[i] &^= mask
}

// Flip toggles (x, y).
func (m *BitMatrix) Flip(x, y int) {
	i, mask := m.index(x, y)
	m.words[i] ^= mask
}

// Clear marks every module light.
func (m *BitMatrix) Clear() {
	clear(m.words)
}

// SetRegion marks the rectangle at (left, top) of the given size dark.
func (m *BitMatrix) SetRegion(left, top, width, height int) {
	if left < 0 || top < 0 || width < 1 || height < 1 ||
		left+width > m.width || top+height > m.height {
		panic("bitutil: region outside matrix")
	}
	for y := top; y < top+height; y++ {
		for x := left; x < left+width; x++ {
			m.Set(x, y)
		}
	}
}

// Row copies row y into row, allocating when row is nil or too small.
func (m *BitMatrix) Row(y int, row *BitArray) *BitArray {
	if row == nil || row.Size() < m.width {
		row = NewBitArray(m.width)
	} else {
		row.Clear()
	}
	copy(row.words, m.words[y*m.rowSize:(y+1)*m.rowSize])
	return row
}

// Rotate180 turns the matrix upside down in place.
func (m *BitMatrix) Rotate180() {
	for y := 0; y < (m.height+1)/2; y++ {
		oy := m.height - 1 - y
		for x := 0; x < m.width; x++ {
			ox := m.width - 1 - x
			if y == oy && x >= ox {
				break
			}
			a, b := m.Get(x, y), m.Get(ox, oy)
			if a != b {
				m.Flip(x, y)
				m.Flip(ox, oy)
			}
		}
	}
}

// TopLeftOnBit returns the first dark module in row-major order.
func (m *BitMatrix) TopLeftOnBit() (x, y int, ok bool) {
	for y = 0; y < m.height; y++ {
		for x = 0; x < m.width; x++ {
			if m.Get(x, y) {
				return x, y, true
			}
		}
	}
	return 0, 0, false
}

// BottomRightOnBit returns the last dark module in row-major order.
func (m *BitMatrix) BottomRightOnBit() (x, y int, ok bool) {
	for y = m.height - 1; y >= 0; y-- {
		for x = m.width - 1; x >= 0; x-- {
			if m.Get(x, y) {
				return x, y, true
			}
		}
	}
	return 0, 0, false
}

// Width returns the number of columns.
func (m *BitMatrix) Width() int { return m.width }

// Height returns the number of rows.
func (m *BitMatrix) Height() int { return m.height }

// RowSize returns the number of 64-bit words per row.
func (m *BitMatrix) RowSize() int { return m.rowSize }

// Clone returns an independent copy.
func (m *BitMatrix) Clone() *BitMatrix {
	c := *m
	c.words = append([]uint64(nil), m.words...)
	return &c
}

// String renders the matrix with "X " for dark and "  " for light modules.
func (m *BitMatrix) String() string {
	var sb strings.Builder
	sb.Grow(m.height * (2*m.width + 1))
	for y := 0; y < m.height; y++ {
		for x := 0; x < m.width; x++ {
			if m.Get(x, y) {
				sb.WriteString("X ")
			} else {
				sb.WriteString("  ")
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
