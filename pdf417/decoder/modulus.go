package decoder

// modulusGF is the prime field GF(p) with a primitive generator. PDF417
// carries its EC codewords over GF(929) with generator 3.
type modulusGF struct {
	modulus   int
	exp       []int
	log       []int
	zero, one *modulusPoly
}

var pdf417Field = newModulusGF(929, 3)

func newModulusGF(modulus, generator int) *modulusGF {
	f := &modulusGF{
		modulus: modulus,
		exp:     make([]int, modulus),
		log:     make([]int, modulus),
	}
	x := 1
	for i := range f.exp {
		f.exp[i] = x
		x = x * generator % modulus
	}
	for i := 0; i < modulus-1; i++ {
		f.log[f.exp[i]] = i
	}
	f.zero = &modulusPoly{field: f, coef: []int{0}}
	f.one = &modulusPoly{field: f, coef: []int{1}}
	return f
}

func (f *modulusGF) add(a, b int) int { return (a + b) % f.modulus }
func (f *modulusGF) sub(a, b int) int { return (f.modulus + a - b) % f.modulus }

// inv and log are undefined at zero; callers exclude it.
func (f *modulusGF) inv(a int) int { return f.exp[f.modulus-1-f.log[a]] }

func (f *modulusGF) mul(a, b int) int {
	if a == 0 || b == 0 {
		return 0
	}
	return f.exp[(f.log[a]+f.log[b])%(f.modulus-1)]
}

func (f *modulusGF) monomial(degree, coef int) *modulusPoly {
	if coef == 0 {
		return f.zero
	}
	c := make([]int, degree+1)
	c[0] = coef
	return &modulusPoly{field: f, coef: c}
}

// modulusPoly is an immutable polynomial over a modulusGF, most significant
// coefficient first.
type modulusPoly struct {
	field *modulusGF
	coef  []int
}

func newModulusPoly(f *modulusGF, coef []int) *modulusPoly {
	lead := 0
	for lead < len(coef)-1 && coef[lead] == 0 {
		lead++
	}
	return &modulusPoly{field: f, coef: append([]int(nil), coef[lead:]...)}
}

func (p *modulusPoly) degree() int            { return len(p.coef) - 1 }
func (p *modulusPoly) isZero() bool           { return p.coef[0] == 0 }
func (p *modulusPoly) coefficient(d int) int { return p.coef[len(p.coef)-1-d] }

func (p *modulusPoly) evaluateAt(a int) int {
	if a == 0 {
		return p.coefficient(0)
	}
	r := 0
	for _, c := range p.coef {
		r = p.field.add(p.field.mul(a, r), c)
	}
	return r
}

func (p *modulusPoly) add(o *modulusPoly) *modulusPoly {
	if p.isZero() {
		return o
	}
	if o.isZero() {
		return p
	}
	long, short := p.coef, o.coef
	if len(short) > len(long) {
		long, short = short, long
	}
	sum := append([]int(nil), long...)
	off := len(long) - len(short)
	for i, c := range short {
		sum[off+i] = p.field.add(sum[off+i], c)
	}
	return newModulusPoly(p.field, sum)
}

func (p *modulusPoly) negative() *modulusPoly {
	out := make([]int, len(p.coef))
	for i, c := range p.coef {
		out[i] = p.field.sub(0, c)
	}
	return newModulusPoly(p.field, out)
}

func (p *modulusPoly) sub(o *modulusPoly) *modulusPoly {
	if o.isZero() {
		return p
	}
	return p.add(o.negative())
}

func (p *modulusPoly) mul(o *modulusPoly) *modulusPoly {
	if p.isZero() || o.isZero() {
		return p.field.zero
	}
	prod := make([]int, len(p.coef)+len(o.coef)-1)
	for i, a := range p.coef {
		for j, b := range o.coef {
			prod[i+j] = p.field.add(prod[i+j], p.field.mul(a, b))
		}
	}
	return newModulusPoly(p.field, prod)
}

func (p *modulusPoly) scale(s int) *modulusPoly {
	if s == 0 {
		return p.field.zero
	}
	out := make([]int, len(p.coef))
	for i, c := range p.coef {
		out[i] = p.field.mul(c, s)
	}
	return newModulusPoly(p.field, out)
}

func (p *modulusPoly) mulMonomial(degree, coef int) *modulusPoly {
	if coef == 0 || p.isZero() {
		return p.field.zero
	}
	out := make([]int, len(p.coef)+degree)
	for i, c := range p.coef {
		out[i] = p.field.mul(c, coef)
	}
	return newModulusPoly(p.field, out)
}

// truncate keeps the terms of degree below n, i.e. p mod x^n.
func (p *modulusPoly) truncate(n int) *modulusPoly {
	if p.degree() < n {
		return p
	}
	return newModulusPoly(p.field, p.coef[len(p.coef)-n:])
}
