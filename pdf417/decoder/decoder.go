// Package decoder turns a sampled PDF417 codeword grid into text: it reads
// codewords, corrects them over GF(929) and interprets the compaction modes.
package decoder

import (
	"fmt"
	"strconv"

	pdf417go "github.com/ericlevine/pdf417go"
	"github.com/ericlevine/pdf417go/bitutil"
	"github.com/ericlevine/pdf417go/internal"
)

// Decoder decodes sampled PDF417 grids.
type Decoder struct{}

// NewDecoder creates a new Decoder.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Decode reads, corrects and interprets the codewords in bits. charset
// names the character set for byte compaction when the symbol carries no
// ECI; empty means guess.
func (d *Decoder) Decode(bits *bitutil.BitMatrix, charset string) (*internal.DecoderResult, error) {
	parser := NewBitMatrixParser(bits)
	codewords, err := parser.ReadCodewords()
	if err != nil {
		return nil, err
	}
	ecLevel := parser.ECLevel()
	numEC := 1 << uint(ecLevel+1)
	erasures := parser.Erasures()

	corrected, err := correctErrors(codewords, erasures, numEC)
	if err != nil {
		return nil, err
	}
	if err := verifyCodewordCount(codewords, numEC); err != nil {
		return nil, err
	}
	result, err := DecodeBitStream(codewords, strconv.Itoa(ecLevel), charset)
	if err != nil {
		return nil, err
	}
	result.Erasures = len(erasures)
	result.ErrorsCorrected = max(corrected-len(erasures), 0)
	return result, nil
}

// verifyCodewordCount checks the symbol length descriptor in codewords[0].
// A zero descriptor is rebuilt from the symbol size.
func verifyCodewordCount(codewords []int, numEC int) error {
	if len(codewords) < 4 {
		return fmt.Errorf("pdf417: %d codewords is too few: %w", len(codewords), pdf417go.ErrFormat)
	}
	n := codewords[0]
	if n > len(codewords) {
		return fmt.Errorf("pdf417: length descriptor %d exceeds %d codewords: %w", n, len(codewords), pdf417go.ErrFormat)
	}
	if n == 0 {
		if numEC >= len(codewords) {
			return fmt.Errorf("pdf417: no room for data beside %d EC codewords: %w", numEC, pdf417go.ErrFormat)
		}
		codewords[0] = len(codewords) - numEC
	}
	return nil
}
