// Package reedsolomon implements Reed-Solomon coding over GF(256).
package reedsolomon

import (
	"fmt"

	pdf417go "github.com/ericlevine/pdf417go"
)

// Field is GF(256) generated by a primitive polynomial. The exp and log
// tables are built once and are read-only afterwards, so a Field may be
// shared between goroutines.
type Field struct {
	primitive     int
	generatorBase int
	exp           [256]int
	log           [256]int
	zero, one     *Poly
}

// Standing field instances.
var (
	// QRCodeField is x^8 + x^4 + x^3 + x^2 + 1 with generator base 0.
	QRCodeField = NewField(0x011D, 0)
	// DataMatrixField is x^8 + x^5 + x^3 + x^2 + 1 with generator base 1.
	DataMatrixField = NewField(0x012D, 1)
)

// NewField builds GF(256) from primitive, whose degree must be 8. The
// generator polynomial of codes over the field has roots
// a^base ... a^(base+n-1).
func NewField(primitive, generatorBase int) *Field {
	f := &Field{primitive: primitive, generatorBase: generatorBase}
	x := 1
	for i := range f.exp {
		f.exp[i] = x
		x <<= 1
		if x&0x100 != 0 {
			x ^= primitive
		}
	}
	for i := 0; i < 255; i++ {
		f.log[f.exp[i]] = i
	}
	f.zero = &Poly{field: f, coef: []int{0}}
	f.one = &Poly{field: f, coef: []int{1}}
	return f
}

// Zero returns the constant polynomial 0.
func (f *Field) Zero() *Poly { return f.zero }

// One returns the constant polynomial 1.
func (f *Field) One() *Poly { return f.one }

// GeneratorBase returns the exponent of the first root of generator polynomials.
func (f *Field) GeneratorBase() int { return f.generatorBase }

// Add returns a + b, which in characteristic 2 is also a - b.
func Add(a, b int) int { return a ^ b }

// Exp returns alpha^a.
func (f *Field) Exp(a int) int { return f.exp[a%255] }

// Log returns the discrete logarithm of a. Zero has none.
func (f *Field) Log(a int) (int, error) {
	if a == 0 {
		return 0, fmt.Errorf("%w: log(0) in %v", pdf417go.ErrArgument, f)
	}
	return f.log[a], nil
}

// Inverse returns the multiplicative inverse of a. Zero has none.
func (f *Field) Inverse(a int) (int, error) {
	if a == 0 {
		return 0, fmt.Errorf("%w: inverse(0) in %v", pdf417go.ErrArgument, f)
	}
	return f.inv(a), nil
}

// inv is Inverse for callers that have already excluded zero.
func (f *Field) inv(a int) int { return f.exp[255-f.log[a]] }

// Multiply returns a * b.
func (f *Field) Multiply(a, b int) int {
	if a == 0 || b == 0 {
		return 0
	}
	return f.exp[(f.log[a]+f.log[b])%255]
}

// Monomial returns coef * x^degree.
func (f *Field) Monomial(degree, coef int) *Poly {
	if coef == 0 {
		return f.zero
	}
	c := make([]int, degree+1)
	c[0] = coef
	return &Poly{field: f, coef: c}
}

func (f *Field) String() string {
	return fmt.Sprintf("GF(256, 0x%03x)", f.primitive)
}
