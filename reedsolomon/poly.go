package reedsolomon

import (
	"fmt"

	pdf417go "github.com/ericlevine/pdf417go"
)

// Poly is an immutable polynomial over a Field. Coefficients are stored most
// significant first and the leading coefficient is non-zero unless the
// polynomial is the constant 0.
type Poly struct {
	field *Field
	coef  []int
}

// NewPoly builds a polynomial from coefficients, most significant first.
// Leading zeros are dropped.
func NewPoly(f *Field, coef []int) (*Poly, error) {
	if len(coef) == 0 {
		return nil, fmt.Errorf("%w: polynomial without coefficients", pdf417go.ErrArgument)
	}
	return newPoly(f, coef), nil
}

func newPoly(f *Field, coef []int) *Poly {
	lead := 0
	for lead < len(coef)-1 && coef[lead] == 0 {
		lead++
	}
	return &Poly{field: f, coef: append([]int(nil), coef[lead:]...)}
}

// Coefficients returns a copy of the coefficients, most significant first.
func (p *Poly) Coefficients() []int { return append([]int(nil), p.coef...) }

// Degree returns the degree; the zero polynomial has degree 0.
func (p *Poly) Degree() int { return len(p.coef) - 1 }

// IsZero reports whether p is the zero polynomial.
func (p *Poly) IsZero() bool { return p.coef[0] == 0 }

// Coefficient returns the coefficient of x^degree.
func (p *Poly) Coefficient(degree int) int { return p.coef[len(p.coef)-1-degree] }

// EvaluateAt returns p(a) using Horner's rule.
func (p *Poly) EvaluateAt(a int) int {
	if a == 0 {
		return p.Coefficient(0)
	}
	if a == 1 {
		sum := 0
		for _, c := range p.coef {
			sum = Add(sum, c)
		}
		return sum
	}
	r := 0
	for _, c := range p.coef {
		r = Add(p.field.Multiply(a, r), c)
	}
	return r
}

// Add returns p + o, which equals p - o.
func (p *Poly) Add(o *Poly) *Poly {
	if p.IsZero() {
		return o
	}
	if o.IsZero() {
		return p
	}
	long, short := p.coef, o.coef
	if len(short) > len(long) {
		long, short = short, long
	}
	sum := append([]int(nil), long...)
	off := len(long) - len(short)
	for i, c := range short {
		sum[off+i] = Add(sum[off+i], c)
	}
	return newPoly(p.field, sum)
}

// Multiply returns p * o.
func (p *Poly) Multiply(o *Poly) *Poly {
	if p.IsZero() || o.IsZero() {
		return p.field.zero
	}
	prod := make([]int, len(p.coef)+len(o.coef)-1)
	for i, a := range p.coef {
		for j, b := range o.coef {
			prod[i+j] = Add(prod[i+j], p.field.Multiply(a, b))
		}
	}
	return newPoly(p.field, prod)
}

// Scale returns s * p.
func (p *Poly) Scale(s int) *Poly {
	if s == 0 {
		return p.field.zero
	}
	if s == 1 {
		return p
	}
	out := make([]int, len(p.coef))
	for i, c := range p.coef {
		out[i] = p.field.Multiply(c, s)
	}
	return newPoly(p.field, out)
}

// MultiplyByMonomial returns p * coef * x^degree.
func (p *Poly) MultiplyByMonomial(degree, coef int) *Poly {
	if coef == 0 || p.IsZero() {
		return p.field.zero
	}
	out := make([]int, len(p.coef)+degree)
	for i, c := range p.coef {
		out[i] = p.field.Multiply(c, coef)
	}
	return newPoly(p.field, out)
}

// Divide returns the quotient and remainder of p / o.
func (p *Poly) Divide(o *Poly) (quotient, remainder *Poly, err error) {
	if o.IsZero() {
		return nil, nil, fmt.Errorf("%w: division by the zero polynomial", pdf417go.ErrArgument)
	}
	quotient, remainder = p.field.zero, p
	leadInv := p.field.inv(o.Coefficient(o.Degree()))
	for remainder.Degree() >= o.Degree() && !remainder.IsZero() {
		diff := remainder.Degree() - o.Degree()
		scale := p.field.Multiply(remainder.Coefficient(remainder.Degree()), leadInv)
		quotient = quotient.Add(p.field.Monomial(diff, scale))
		remainder = remainder.Add(o.MultiplyByMonomial(diff, scale))
	}
	return quotient, remainder, nil
}

func (p *Poly) String() string {
	return fmt.Sprint(p.coef)
}
