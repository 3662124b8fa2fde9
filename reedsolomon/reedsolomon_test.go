package reedsolomon

import (
	"errors"
	"math/rand"
	"testing"

	pdf417go "github.com/ericlevine/pdf417go"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func encoded(t *testing.T, f *Field, data []int, numEC int) []int {
	t.Helper()
	block := append(append([]int(nil), data...), make([]int, numEC)...)
	if err := NewEncoder(f).Encode(block, numEC); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	return block
}

func TestDecodeCorrectsErrors(t *testing.T) {
	for _, f := range []*Field{QRCodeField, DataMatrixField} {
		data := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
		block := encoded(t, f, data, 7)
		received := append([]int(nil), block...)
		received[0] = 0
		received[3] = 200
		received[15] ^= 0x55

		n, err := NewDecoder(f).Decode(received, 7)
		if err != nil {
			t.Fatalf("%v: Decode: %v", f, err)
		}
		if n != 3 {
			t.Errorf("%v: corrected %d, want 3", f, n)
		}
		for i := range block {
			if received[i] != block[i] {
				t.Errorf("%v: codeword %d = %d, want %d", f, i, received[i], block[i])
			}
		}
	}
}

func TestDecodeCleanBlock(t *testing.T) {
	block := encoded(t, QRCodeField, []int{10, 20, 30, 40, 50}, 4)
	n, err := NewDecoder(QRCodeField).Decode(block, 4)
	if err != nil || n != 0 {
		t.Errorf("Decode = %d, %v; want 0, nil", n, err)
	}
}

func TestDecodeTooManyErrors(t *testing.T) {
	block := encoded(t, QRCodeField, []int{10, 20, 30, 40, 50}, 4)
	block[0], block[1], block[2] = 0, 0, 0
	_, err := NewDecoder(QRCodeField).Decode(block, 4)
	if !errors.Is(err, pdf417go.ErrChecksum) {
		t.Errorf("Decode error = %v, want ErrChecksum", err)
	}
}

func TestDecodeRejectsBadECCount(t *testing.T) {
	_, err := NewDecoder(QRCodeField).Decode([]int{1, 2, 3}, 3)
	if !errors.Is(err, pdf417go.ErrArgument) {
		t.Errorf("Decode error = %v, want ErrArgument", err)
	}
}

func TestZeroHasNoInverseOrLog(t *testing.T) {
	if _, err := QRCodeField.Inverse(0); !errors.Is(err, pdf417go.ErrArgument) {
		t.Errorf("Inverse(0) error = %v", err)
	}
	if _, err := QRCodeField.Log(0); !errors.Is(err, pdf417go.ErrArgument) {
		t.Errorf("Log(0) error = %v", err)
	}
}

func TestPolyArithmetic(t *testing.T) {
	f := QRCodeField
	p, err := NewPoly(f, []int{0, 0, 2, 3})
	if err != nil {
		t.Fatal(err)
	}
	if p.Degree() != 1 {
		t.Errorf("leading zeros kept: degree %d", p.Degree())
	}
	if got := p.EvaluateAt(0); got != 3 {
		t.Errorf("p(0) = %d, want 3", got)
	}
	if got := p.EvaluateAt(1); got != 2^3 {
		t.Errorf("p(1) = %d, want %d", got, 2^3)
	}
	if !p.Add(p).IsZero() {
		t.Error("p + p should be zero in characteristic 2")
	}

	q := newPoly(f, []int{1, 7})
	prod := p.Multiply(q)
	quo, rem, err := prod.Divide(q)
	if err != nil {
		t.Fatal(err)
	}
	if !rem.IsZero() || quo.String() != p.String() {
		t.Errorf("(p*q)/q = %v rem %v, want %v rem 0", quo, rem, p)
	}
	if _, _, err := p.Divide(f.Zero()); !errors.Is(err, pdf417go.ErrArgument) {
		t.Errorf("divide by zero error = %v", err)
	}
	if _, err := NewPoly(f, nil); err == nil {
		t.Error("NewPoly(nil) should fail")
	}
}

func TestFieldProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)
	elem := gen.IntRange(0, 255)
	nonZero := gen.IntRange(1, 255)

	for _, f := range []*Field{QRCodeField, DataMatrixField} {
		f := f
		properties.Property(f.String()+" multiply commutes", prop.ForAll(
			func(a, b int) bool { return f.Multiply(a, b) == f.Multiply(b, a) },
			elem, elem,
		))
		properties.Property(f.String()+" a * a^-1 = 1", prop.ForAll(
			func(a int) bool {
				inv, err := f.Inverse(a)
				return err == nil && f.Multiply(a, inv) == 1
			},
			nonZero,
		))
		properties.Property(f.String()+" inverse is an involution", prop.ForAll(
			func(a int) bool {
				inv, _ := f.Inverse(a)
				back, _ := f.Inverse(inv)
				return back == a
			},
			nonZero,
		))
		properties.Property(f.String()+" exp inverts log", prop.ForAll(
			func(a int) bool {
				l, err := f.Log(a)
				return err == nil && f.Exp(l) == a
			},
			nonZero,
		))
	}
	properties.TestingRun(t)
}

func TestRoundTripProperty(t *testing.T) {
	properties := gopter.NewProperties(nil)
	properties.Property("up to numEC/2 corruptions are repaired", prop.ForAll(
		func(seed int64, numEC int) bool {
			rng := rand.New(rand.NewSource(seed))
			data := make([]int, 20+rng.Intn(40))
			for i := range data {
				data[i] = rng.Intn(256)
			}
			block := append(append([]int(nil), data...), make([]int, numEC)...)
			if NewEncoder(QRCodeField).Encode(block, numEC) != nil {
				return false
			}
			received := append([]int(nil), block...)
			for _, pos := range rng.Perm(len(block))[:rng.Intn(numEC/2+1)] {
				received[pos] ^= 1 + rng.Intn(255)
			}
			if _, err := NewDecoder(QRCodeField).Decode(received, numEC); err != nil {
				return false
			}
			for i := range block {
				if received[i] != block[i] {
					return false
				}
			}
			return true
		},
		gen.Int64(), gen.IntRange(2, 30),
	))
	properties.TestingRun(t)
}
