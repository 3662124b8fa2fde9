package reedsolomon

import (
	"fmt"

	pdf417go "github.com/ericlevine/pdf417go"
)

// ErrUncorrectable reports a block with more errors than its EC codewords
// can repair. It matches pdf417go.ErrChecksum under errors.Is.
var ErrUncorrectable = fmt.Errorf("reedsolomon: uncorrectable block: %w", pdf417go.ErrChecksum)

// Decoder corrects codeword blocks in place.
type Decoder struct {
	field *Field
}

// NewDecoder creates a new Decoder for the given field.
func NewDecoder(f *Field) *Decoder {
	return &Decoder{field: f}
}

// Decode treats received as a polynomial whose last numEC coefficients are
// EC codewords, repairs it in place and returns the number of corrected
// positions.
func (d *Decoder) Decode(received []int, numEC int) (int, error) {
	if numEC <= 0 || numEC >= len(received) {
		return 0, fmt.Errorf("%w: %d EC codewords in a block of %d", pdf417go.ErrArgument, numEC, len(received))
	}
	f := d.field
	poly := newPoly(f, received)

	syndromes := make([]int, numEC)
	clean := true
	for i := 0; i < numEC; i++ {
		s := poly.EvaluateAt(f.Exp(i + f.generatorBase))
		syndromes[numEC-1-i] = s
		if s != 0 {
			clean = false
		}
	}
	if clean {
		return 0, nil
	}

	sigma, omega, err := d.euclid(f.Monomial(numEC, 1), newPoly(f, syndromes), numEC)
	if err != nil {
		return 0, err
	}
	locations, err := d.chien(sigma)
	if err != nil {
		return 0, err
	}
	magnitudes := d.forney(omega, locations)
	for i, loc := range locations {
		pos := len(received) - 1 - f.log[loc]
		if pos < 0 {
			return 0, fmt.Errorf("%w: error location %d before block start", ErrUncorrectable, pos)
		}
		received[pos] = Add(received[pos], magnitudes[i])
	}
	return len(locations), nil
}

// euclid runs the extended Euclidean algorithm on a = x^R and b = S(x)
// until the remainder has degree below R/2, giving the error locator sigma
// and evaluator omega scaled so that sigma(0) = 1.
func (d *Decoder) euclid(a, b *Poly, R int) (sigma, omega *Poly, err error) {
	f := d.field
	if a.Degree() < b.Degree() {
		a, b = b, a
	}
	rLast, r := a, b
	tLast, t := f.zero, f.one

	for 2*r.Degree() >= R {
		rLastLast, tLastLast := rLast, tLast
		rLast, tLast = r, t
		if rLast.IsZero() {
			return nil, nil, fmt.Errorf("%w: remainder vanished early", ErrUncorrectable)
		}

		r = rLastLast
		q := f.zero
		leadInv := f.inv(rLast.Coefficient(rLast.Degree()))
		for r.Degree() >= rLast.Degree() && !r.IsZero() {
			diff := r.Degree() - rLast.Degree()
			scale := f.Multiply(r.Coefficient(r.Degree()), leadInv)
			q = q.Add(f.Monomial(diff, scale))
			r = r.Add(rLast.MultiplyByMonomial(diff, scale))
		}
		t = q.Multiply(tLast).Add(tLastLast)

		if r.Degree() >= rLast.Degree() {
			return nil, nil, fmt.Errorf("%w: division did not reduce degree", ErrUncorrectable)
		}
	}

	at0 := t.Coefficient(0)
	if at0 == 0 {
		return nil, nil, fmt.Errorf("%w: sigma(0) is zero", ErrUncorrectable)
	}
	inv := f.inv(at0)
	return t.Scale(inv), r.Scale(inv), nil
}

// chien finds the error locations as inverses of the roots of sigma.
func (d *Decoder) chien(sigma *Poly) ([]int, error) {
	n := sigma.Degree()
	if n == 1 {
		return []int{sigma.Coefficient(1)}, nil
	}
	locs := make([]int, 0, n)
	for i := 1; i < 256 && len(locs) < n; i++ {
		if sigma.EvaluateAt(i) == 0 {
			locs = append(locs, d.field.inv(i))
		}
	}
	if len(locs) != n {
		return nil, fmt.Errorf("%w: locator of degree %d has %d roots", ErrUncorrectable, n, len(locs))
	}
	return locs, nil
}

// forney computes error magnitudes from omega and the error locations
// using the product form of the locator derivative.
func (d *Decoder) forney(omega *Poly, locs []int) []int {
	f := d.field
	out := make([]int, len(locs))
	for i, xi := range locs {
		xiInv := f.inv(xi)
		den := 1
		for j, xj := range locs {
			if i != j {
				// 1 + xj/xi
				den = f.Multiply(den, Add(f.Multiply(xj, xiInv), 1))
			}
		}
		out[i] = f.Multiply(omega.EvaluateAt(xiInv), f.inv(den))
		if f.generatorBase != 0 {
			out[i] = f.Multiply(out[i], xiInv)
		}
	}
	return out
}
