package decoder

import (
	"fmt"

	pdf417go "github.com/ericlevine/pdf417go"
)

const (
	maxErrors      = 3
	maxECCodewords = 512
)

// correctErrors repairs codewords in place using numEC trailing EC
// codewords. Erasures are positions the parser could not read; they cost
// one EC codeword each instead of two. It returns how many codewords were
// changed.
func correctErrors(codewords, erasures []int, numEC int) (int, error) {
	if len(erasures) > numEC/2+maxErrors || numEC < 0 || numEC > maxECCodewords {
		return 0, fmt.Errorf("%w: %d erasures with %d EC codewords", pdf417go.ErrChecksum, len(erasures), numEC)
	}
	if numEC == 0 || numEC >= len(codewords) {
		return 0, fmt.Errorf("%w: %d EC codewords in %d codewords", pdf417go.ErrFormat, numEC, len(codewords))
	}
	return decodeEC(pdf417Field, codewords, numEC, erasures)
}

func syndromes(f *modulusGF, received []int, numEC int) ([]int, bool) {
	poly := newModulusPoly(f, received)
	s := make([]int, numEC)
	clean := true
	for i := numEC; i > 0; i-- {
		s[numEC-i] = poly.evaluateAt(f.exp[i])
		if s[numEC-i] != 0 {
			clean = false
		}
	}
	return s, clean
}

func decodeEC(f *modulusGF, received []int, numEC int, erasures []int) (int, error) {
	s, clean := syndromes(f, received, numEC)
	if clean {
		return 0, nil
	}

	// Erasure locator: the product of (1 - X x) over known bad positions.
	gamma := f.one
	seen := make(map[int]bool, len(erasures))
	for _, pos := range erasures {
		if pos < 0 || pos >= len(received) || seen[pos] {
			continue
		}
		seen[pos] = true
		x := f.exp[len(received)-1-pos]
		gamma = gamma.mul(newModulusPoly(f, []int{f.sub(0, x), 1}))
	}
	rho := gamma.degree()
	if rho > numEC {
		return 0, fmt.Errorf("%w: %d erasures exceed %d EC codewords", pdf417go.ErrChecksum, rho, numEC)
	}

	modified := gamma.mul(newModulusPoly(f, s)).truncate(numEC)
	lambda, omega, err := euclid(f, f.monomial(numEC, 1), modified, numEC, rho)
	if err != nil {
		return 0, err
	}
	if 2*lambda.degree()+rho > numEC {
		return 0, fmt.Errorf("%w: %d errors and %d erasures exceed %d EC codewords",
			pdf417go.ErrChecksum, lambda.degree(), rho, numEC)
	}
	sigma := lambda.mul(gamma)

	locations, err := findErrorLocations(f, sigma)
	if err != nil {
		return 0, err
	}
	magnitudes, err := findErrorMagnitudes(f, omega, sigma, locations)
	if err != nil {
		return 0, err
	}
	for i, loc := range locations {
		pos := len(received) - 1 - f.log[loc]
		if pos < 0 {
			return 0, fmt.Errorf("%w: error located before the first codeword", pdf417go.ErrChecksum)
		}
		received[pos] = f.sub(received[pos], magnitudes[i])
	}

	if _, clean := syndromes(f, received, numEC); !clean {
		return 0, fmt.Errorf("%w: residual syndrome after correction", pdf417go.ErrChecksum)
	}
	return len(locations), nil
}

// euclid solves lambda * b = omega mod a for a = x^R, stopping once omega
// has degree below (R + rho) / 2. Both results are scaled so lambda(0) = 1.
func euclid(f *modulusGF, a, b *modulusPoly, R, rho int) (lambda, omega *modulusPoly, err error) {
	if a.degree() < b.degree() {
		a, b = b, a
	}
	rLast, r := a, b
	tLast, t := f.zero, f.one

	for 2*r.degree() >= R+rho {
		rLastLast, tLastLast := rLast, tLast
		rLast, tLast = r, t
		if rLast.isZero() {
			return nil, nil, fmt.Errorf("%w: remainder vanished early", pdf417go.ErrChecksum)
		}

		r = rLastLast
		q := f.zero
		leadInv := f.inv(rLast.coefficient(rLast.degree()))
		for r.degree() >= rLast.degree() && !r.isZero() {
			diff := r.degree() - rLast.degree()
			scale := f.mul(r.coefficient(r.degree()), leadInv)
			q = q.add(f.monomial(diff, scale))
			r = r.sub(rLast.mulMonomial(diff, scale))
		}
		t = tLastLast.sub(q.mul(tLast))
	}

	at0 := t.coefficient(0)
	if at0 == 0 {
		return nil, nil, fmt.Errorf("%w: locator has no constant term", pdf417go.ErrChecksum)
	}
	inv := f.inv(at0)
	return t.scale(inv), r.scale(inv), nil
}

// findErrorLocations returns the inverses of the roots of sigma (Chien search).
func findErrorLocations(f *modulusGF, sigma *modulusPoly) ([]int, error) {
	n := sigma.degree()
	locs := make([]int, 0, n)
	for i := 1; i < f.modulus && len(locs) < n; i++ {
		if sigma.evaluateAt(i) == 0 {
			locs = append(locs, f.inv(i))
		}
	}
	if len(locs) != n {
		return nil, fmt.Errorf("%w: locator of degree %d has %d roots", pdf417go.ErrChecksum, n, len(locs))
	}
	return locs, nil
}

// findErrorMagnitudes applies Forney's formula -omega(1/X) / sigma'(1/X).
func findErrorMagnitudes(f *modulusGF, omega, sigma *modulusPoly, locs []int) ([]int, error) {
	d := sigma.degree()
	if d < 1 {
		return nil, nil
	}
	deriv := make([]int, d)
	for i := 1; i <= d; i++ {
		deriv[d-i] = f.mul(i, sigma.coefficient(i))
	}
	derivative := newModulusPoly(f, deriv)

	out := make([]int, len(locs))
	for i, x := range locs {
		xInv := f.inv(x)
		den := derivative.evaluateAt(xInv)
		if den == 0 {
			return nil, fmt.Errorf("%w: repeated error location", pdf417go.ErrChecksum)
		}
		out[i] = f.mul(f.sub(0, omega.evaluateAt(xInv)), f.inv(den))
	}
	return out, nil
}
