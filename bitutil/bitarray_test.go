package bitutil

import "testing"

func TestBitArrayGetSetAcrossWords(t *testing.T) {
	a := NewBitArray(130)
	for _, i := range []int{0, 63, 64, 129} {
		a.Set(i)
	}
	for i := 0; i < 130; i++ {
		want := i == 0 || i == 63 || i == 64 || i == 129
		if a.Get(i) != want {
			t.Errorf("Get(%d) = %v, want %v", i, a.Get(i), want)
		}
	}
}

func TestBitArrayNextSetAndUnset(t *testing.T) {
	a := NewBitArray(200)
	a.Set(70)
	a.SetRange(100, 180)
	if got := a.NextSet(0); got != 70 {
		t.Errorf("NextSet(0) = %d, want 70", got)
	}
	if got := a.NextSet(71); got != 100 {
		t.Errorf("NextSet(71) = %d, want 100", got)
	}
	if got := a.NextUnset(100); got != 180 {
		t.Errorf("NextUnset(100) = %d, want 180", got)
	}
	if got := a.NextSet(180); got != 200 {
		t.Errorf("NextSet(180) = %d, want size 200", got)
	}
}

func TestBitArrayAppend(t *testing.T) {
	a := NewBitArray(0)
	a.AppendBits(0x1fea8, 17)
	a.AppendBit(true)
	if a.Size() != 18 {
		t.Fatalf("Size() = %d, want 18", a.Size())
	}
	want := "XXXXXXXX.X.X.X...X"
	got := ""
	for i := 0; i < a.Size(); i++ {
		if a.Get(i) {
			got += "X"
		} else {
			got += "."
		}
	}
	if got != want {
		t.Errorf("bits = %s, want %s", got, want)
	}
}

func TestBitArrayXor(t *testing.T) {
	a := NewBitArray(70)
	b := NewBitArray(70)
	a.Set(1)
	a.Set(66)
	b.Set(66)
	b.Set(3)
	a.Xor(b)
	if !a.Get(1) || !a.Get(3) || a.Get(66) {
		t.Errorf("xor result = %s", a)
	}
}

func TestBitArrayReverse(t *testing.T) {
	for _, size := range []int{1, 17, 64, 65, 150} {
		a := NewBitArray(size)
		a.Set(0)
		if size > 5 {
			a.Set(5)
		}
		a.Reverse()
		if !a.Get(size - 1) {
			t.Errorf("size %d: first bit did not move to the end", size)
		}
		if size > 5 && !a.Get(size-6) {
			t.Errorf("size %d: bit 5 did not move to %d", size, size-6)
		}
		a.Reverse()
		if !a.Get(0) {
			t.Errorf("size %d: double reverse lost bit 0", size)
		}
	}
}

func TestBitArrayIsRange(t *testing.T) {
	a := NewBitArray(100)
	a.SetRange(10, 90)
	if !a.IsRange(10, 90, true) {
		t.Error("range [10,90) should be set")
	}
	if a.IsRange(9, 90, true) {
		t.Error("range [9,90) includes an unset bit")
	}
	if !a.IsRange(90, 100, false) {
		t.Error("range [90,100) should be clear")
	}
}
