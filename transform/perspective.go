// Package transform maps image quadrilaterals onto module grids.
package transform

import pdf417go "github.com/ericlevine/pdf417go"

// Quad lists four corners in order around the quadrilateral. For a grid the
// order is (0,0), (w,0), (w,h), (0,h).
type Quad [4]pdf417go.ResultPoint

// Perspective is a 3x3 projective transform acting on row vectors
// [x y 1] * M, stored by column as in the classic unit-square derivation.
type Perspective struct {
	a11, a12, a13 float64
	a21, a22, a23 float64
	a31, a32, a33 float64
}

// QuadToQuad returns the transform that takes from[i] onto to[i].
func QuadToQuad(from, to Quad) *Perspective {
	return SquareToQuad(to).times(QuadToSquare(from))
}

// SquareToQuad maps the unit square corners (0,0), (1,0), (1,1), (0,1)
// onto q.
func SquareToQuad(q Quad) *Perspective {
	x0, y0 := q[0].X, q[0].Y
	x1, y1 := q[1].X, q[1].Y
	x2, y2 := q[2].X, q[2].Y
	x3, y3 := q[3].X, q[3].Y

	dx3 := x0 - x1 + x2 - x3
	dy3 := y0 - y1 + y2 - y3
	if dx3 == 0 && dy3 == 0 {
		// Parallelogram: affine.
		return &Perspective{
			a11: x1 - x0, a21: x2 - x1, a31: x0,
			a12: y1 - y0, a22: y2 - y1, a32: y0,
			a33: 1,
		}
	}
	dx1, dx2 := x1-x2, x3-x2
	dy1, dy2 := y1-y2, y3-y2
	den := dx1*dy2 - dx2*dy1
	a13 := (dx3*dy2 - dx2*dy3) / den
	a23 := (dx1*dy3 - dx3*dy1) / den
	return &Perspective{
		a11: x1 - x0 + a13*x1, a21: x3 - x0 + a23*x3, a31: x0,
		a12: y1 - y0 + a13*y1, a22: y3 - y0 + a23*y3, a32: y0,
		a13: a13, a23: a23, a33: 1,
	}
}

// QuadToSquare is the inverse of SquareToQuad, up to scale.
func QuadToSquare(q Quad) *Perspective {
	return SquareToQuad(q).adjoint()
}

func (p *Perspective) adjoint() *Perspective {
	return &Perspective{
		a11: p.a22*p.a33 - p.a23*p.a32,
		a21: p.a23*p.a31 - p.a21*p.a33,
		a31: p.a21*p.a32 - p.a22*p.a31,
		a12: p.a13*p.a32 - p.a12*p.a33,
		a22: p.a11*p.a33 - p.a13*p.a31,
		a32: p.a12*p.a31 - p.a11*p.a32,
		a13: p.a12*p.a23 - p.a13*p.a22,
		a23: p.a13*p.a21 - p.a11*p.a23,
		a33: p.a11*p.a22 - p.a12*p.a21,
	}
}

func (p *Perspective) times(o *Perspective) *Perspective {
	return &Perspective{
		a11: p.a11*o.a11 + p.a21*o.a12 + p.a31*o.a13,
		a21: p.a11*o.a21 + p.a21*o.a22 + p.a31*o.a23,
		a31: p.a11*o.a31 + p.a21*o.a32 + p.a31*o.a33,
		a12: p.a12*o.a11 + p.a22*o.a12 + p.a32*o.a13,
		a22: p.a12*o.a21 + p.a22*o.a22 + p.a32*o.a23,
		a32: p.a12*o.a31 + p.a22*o.a32 + p.a32*o.a33,
		a13: p.a13*o.a11 + p.a23*o.a12 + p.a33*o.a13,
		a23: p.a13*o.a21 + p.a23*o.a22 + p.a33*o.a23,
		a33: p.a13*o.a31 + p.a23*o.a32 + p.a33*o.a33,
	}
}

// Apply maps a single point.
func (p *Perspective) Apply(x, y float64) (float64, float64) {
	den := p.a13*x + p.a23*y + p.a33
	return (p.a11*x + p.a21*y + p.a31) / den, (p.a12*x + p.a22*y + p.a32) / den
}

// ApplyAll maps interleaved x, y pairs in place.
func (p *Perspective) ApplyAll(xy []float64) {
	for i := 0; i+1 < len(xy); i += 2 {
		xy[i], xy[i+1] = p.Apply(xy[i], xy[i+1])
	}
}
