package reedsolomon

import (
	"fmt"

	pdf417go "github.com/ericlevine/pdf417go"
)

// Encoder computes EC codewords. It caches generator polynomials, so keep
// one Encoder per goroutine.
type Encoder struct {
	field      *Field
	generators []*Poly
}

// NewEncoder creates a new Encoder for the given field.
func NewEncoder(f *Field) *Encoder {
	return &Encoder{field: f, generators: []*Poly{f.one}}
}

func (e *Encoder) generator(degree int) *Poly {
	for d := len(e.generators); d <= degree; d++ {
		root := newPoly(e.field, []int{1, e.field.Exp(d - 1 + e.field.generatorBase)})
		e.generators = append(e.generators, e.generators[d-1].Multiply(root))
	}
	return e.generators[degree]
}

// Encode overwrites the last numEC entries of block with EC codewords
// computed over the entries before them.
func (e *Encoder) Encode(block []int, numEC int) error {
	dataLen := len(block) - numEC
	if numEC <= 0 || dataLen <= 0 {
		return fmt.Errorf("%w: %d EC codewords in a block of %d", pdf417go.ErrArgument, numEC, len(block))
	}
	info := newPoly(e.field, block[:dataLen]).MultiplyByMonomial(numEC, 1)
	_, rem, err := info.Divide(e.generator(numEC))
	if err != nil {
		return err
	}
	coef := rem.coef
	if rem.IsZero() {
		coef = nil
	}
	ec := block[dataLen:]
	pad := numEC - len(coef)
	clear(ec[:pad])
	copy(ec[pad:], coef)
	return nil
}
