// Package bitutil holds the packed bit containers shared by the binarizers,
// the detector and the decoder.
package bitutil

import (
	"math/bits"
	"strings"
)

const wordBits = 64

func wordsFor(n int) int { return (n + wordBits - 1) / wordBits }

// BitArray is a growable row of bits packed into 64-bit words.
type BitArray struct {
	words []uint64
	size  int
}

// NewBitArray returns a cleared array of size bits.
func NewBitArray(size int) *BitArray {
	if size < 0 {
		size = 0
	}
	return &BitArray{words: make([]uint64, wordsFor(size)), size: size}
}

// Size returns the number of bits in the array.
func (a *BitArray) Size() int { return a.size }

// Get reports whether bit i is set.
func (a *BitArray) Get(i int) bool {
	return a.words[i/wordBits]>>(uint(i)%wordBits)&1 != 0
}

// Set sets bit i.
func (a *BitArray) Set(i int) {
	a.words[i/wordBits] |= 1 << (uint(i) % wordBits)
}

// Flip toggles bit i.
func (a *BitArray) Flip(i int) {
	a.words[i/wordBits] ^= 1 << (uint(i) % wordBits)
}

// SetBulk ORs the 64 bits of word into the array starting at bit i, which
// must be a multiple of 64.
func (a *BitArray) SetBulk(i int, word uint64) {
	a.words[i/wordBits] |= word
}

// SetRange sets bits [start, end).
func (a *BitArray) SetRange(start, end int) {
	for i := start; i < end; i++ {
		a.Set(i)
	}
}

// Clear unsets every bit.
func (a *BitArray) Clear() {
	clear(a.words)
}

// IsRange reports whether every bit in [start, end) equals value.
func (a *BitArray) IsRange(start, end int, value bool) bool {
	for i := start; i < end; i++ {
		if a.Get(i) != value {
			return false
		}
	}
	return true
}

// NextSet returns the index of the first set bit at or after from, or Size().
func (a *BitArray) NextSet(from int) int {
	return a.next(from, 0)
}

// NextUnset returns the index of the first unset bit at or after from, or Size().
func (a *BitArray) NextUnset(from int) int {
	return a.next(from, ^uint64(0))
}

func (a *BitArray) next(from int, invert uint64) int {
	if from >= a.size {
		return a.size
	}
	w := from / wordBits
	cur := (a.words[w] ^ invert) &^ (1<<(uint(from)%wordBits) - 1)
	for cur == 0 {
		w++
		if w == len(a.words) {
			return a.size
		}
		cur = a.words[w] ^ invert
	}
	return min(w*wordBits+bits.TrailingZeros64(cur), a.size)
}

// AppendBit grows the array by one bit.
func (a *BitArray) AppendBit(bit bool) {
	if a.size == len(a.words)*wordBits {
		a.words = append(a.words, 0)
	}
	if bit {
		a.Set(a.size)
	}
	a.size++
}

// AppendBits appends the low n bits of value, most significant first.
func (a *BitArray) AppendBits(value uint64, n int) {
	for i := n - 1; i >= 0; i-- {
		a.AppendBit(value>>uint(i)&1 != 0)
	}
}

// Xor toggles every bit that is set in other. Both arrays must be the same size.
func (a *BitArray) Xor(other *BitArray) {
	if a.size != other.size {
		panic("bitutil: xor of arrays with different sizes")
	}
	for i := range a.words {
		a.words[i] ^= other.words[i]
	}
}

// Reverse reverses the order of the bits in place.
func (a *BitArray) Reverse() {
	rev := make([]uint64, len(a.words))
	for i := 0; i < a.size; i++ {
		if a.Get(i) {
			j := a.size - 1 - i
			rev[j/wordBits] |= 1 << (uint(j) % wordBits)
		}
	}
	a.words = rev
}

// Words exposes the packed words, bit i living at words[i/64] bit i%64.
func (a *BitArray) Words() []uint64 { return a.words }

// Clone returns an independent copy.
func (a *BitArray) Clone() *BitArray {
	return &BitArray{words: append([]uint64(nil), a.words...), size: a.size}
}

// String renders set bits as 'X' and unset bits as '.', in groups of eight.
func (a *BitArray) String() string {
	var sb strings.Builder
	for i := 0; i < a.size; i++ {
		if i%8 == 0 {
			sb.WriteByte(' ')
		}
		if a.Get(i) {
			sb.WriteByte('X')
		} else {
			sb.WriteByte('.')
		}
	}
	return sb.String()
}
