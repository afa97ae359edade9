package bitplane

import (
	"errors"
	"testing"
)

func TestNewValidatesDim(t *testing.T) {
	for _, dim := range []int{0, 1, 4, 7, 12, 96, MaxDim * 2} {
		if _, err := New(dim); !errors.Is(err, ErrInvalidDim) {
			t.Errorf("New(%d): expected ErrInvalidDim, got %v", dim, err)
		}
	}

	for _, dim := range []int{8, 16, 64, 128, 256} {
		p, err := New(dim)
		if err != nil {
			t.Fatalf("New(%d): unexpected error %v", dim, err)
		}
		if p.Dim() != dim {
			t.Errorf("Expected dim %d, got %d", dim, p.Dim())
		}
		if p.Count() != 0 {
			t.Errorf("Expected empty plane, got %d set cells", p.Count())
		}
		if p.Bytes() != dim*dim/8 {
			t.Errorf("Expected %d serialized bytes, got %d", dim*dim/8, p.Bytes())
		}
	}
}

func TestStride(t *testing.T) {
	tests := []struct {
		dim, stride int
	}{
		{8, 1}, {32, 1}, {64, 1}, {128, 2}, {512, 8},
	}
	for _, tt := range tests {
		if got := MustNew(tt.dim).Stride(); got != tt.stride {
			t.Errorf("dim %d: expected stride %d, got %d", tt.dim, tt.stride, got)
		}
	}
}

func TestGetSetClear(t *testing.T) {
	for _, dim := range []int{8, 64, 128} {
		p := MustNew(dim)
		points := [][2]int{{0, 0}, {dim - 1, 0}, {0, dim - 1}, {dim - 1, dim - 1}, {dim / 2, dim / 3}}
		for _, pt := range points {
			p.Set(pt[0], pt[1])
		}
		for _, pt := range points {
			if !p.Get(pt[0], pt[1]) {
				t.Errorf("dim %d: expected (%d,%d) set", dim, pt[0], pt[1])
			}
		}
		if p.Count() != len(points) {
			t.Errorf("dim %d: expected %d set cells, got %d", dim, len(points), p.Count())
		}

		p.Clear(0, 0)
		if p.Get(0, 0) {
			t.Errorf("dim %d: expected (0,0) cleared", dim)
		}

		p.Toggle(1, 1)
		if !p.Get(1, 1) {
			t.Errorf("dim %d: expected toggle to set (1,1)", dim)
		}
		p.Toggle(1, 1)
		if p.Get(1, 1) {
			t.Errorf("dim %d: expected second toggle to clear (1,1)", dim)
		}
	}
}

func TestOutOfRangeIsAbsent(t *testing.T) {
	p := MustNew(16)
	p.FillAll()

	outside := [][2]int{{-1, 0}, {0, -1}, {16, 0}, {0, 16}, {-1, -1}, {16, 16}, {-100, 3}, {3, 1 << 20}}
	for _, pt := range outside {
		if p.Get(pt[0], pt[1]) {
			t.Errorf("Expected (%d,%d) to read as false", pt[0], pt[1])
		}
		if p.Index(pt[0], pt[1]) != NoCell {
			t.Errorf("Expected Index(%d,%d) to be NoCell", pt[0], pt[1])
		}
		// Writes outside must not panic or touch the plane
		p.Set(pt[0], pt[1])
		p.Clear(pt[0], pt[1])
	}
	if p.Count() != 16*16 {
		t.Errorf("Expected out-of-range writes to be ignored, count %d", p.Count())
	}
}

func TestFillAllRespectsWidth(t *testing.T) {
	p := MustNew(8)
	p.FillAll()
	if p.Count() != 64 {
		t.Errorf("Expected 64 cells, got %d", p.Count())
	}
	for y := 0; y < 8; y++ {
		if p.Row(y) != 0xff {
			t.Errorf("Expected row %d to be 0xff, got %#x", y, p.Row(y))
		}
	}
}

func TestSetRowMasksWidth(t *testing.T) {
	p := MustNew(16)
	p.SetRow(2, ^uint64(0))
	if p.Row(2) != 0xffff {
		t.Errorf("Expected row clipped to 16 bits, got %#x", p.Row(2))
	}
	if p.Count() != 16 {
		t.Errorf("Expected 16 cells, got %d", p.Count())
	}
}

func TestIndexCoords(t *testing.T) {
	p := MustNew(64)
	idx := p.Index(5, 7)
	if idx != 7*64+5 {
		t.Errorf("Expected index %d, got %d", 7*64+5, idx)
	}
	x, y := p.Coords(idx)
	if x != 5 || y != 7 {
		t.Errorf("Expected (5,7), got (%d,%d)", x, y)
	}

	p.SetIndex(idx)
	if !p.GetIndex(idx) || !p.Get(5, 7) {
		t.Error("Expected SetIndex to set (5,7)")
	}
	if p.GetIndex(-1) || p.GetIndex(64*64) {
		t.Error("Expected out-of-range index to read as false")
	}
}

func TestEqualSubsetClone(t *testing.T) {
	a := MustNew(128)
	Noise(a, 0.4, 7)
	b := a.Clone()

	if !a.Equal(b) {
		t.Fatal("Expected clone to equal original")
	}
	// Set one cell the noise left empty
	for c := 0; c < a.Len(); c++ {
		if !a.GetIndex(c) {
			b.SetIndex(c)
			break
		}
	}
	if !a.SubsetOf(b) {
		t.Error("Expected original to be subset of superset clone")
	}
	if b.SubsetOf(a) {
		t.Error("Expected superset not to be a subset of original")
	}
	if a.Equal(b) {
		t.Error("Expected planes to differ after set")
	}

	other := MustNew(64)
	if a.Equal(other) || a.SubsetOf(other) {
		t.Error("Expected planes of different size never to compare equal")
	}
	if err := a.CopyFrom(other); !errors.Is(err, ErrDimMismatch) {
		t.Errorf("Expected ErrDimMismatch, got %v", err)
	}
}

func TestCellsIteratesInOrder(t *testing.T) {
	p := MustNew(128)
	want := []int{0, 63, 64, 127, 128, 128*5 + 70, 128*128 - 1}
	for _, c := range want {
		p.SetIndex(c)
	}

	var got []int
	for c := range p.Cells() {
		got = append(got, c)
	}
	if len(got) != len(want) {
		t.Fatalf("Expected %d cells, got %d: %v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Cell %d: expected %d, got %d", i, want[i], got[i])
		}
	}

	// Early break must stop the iterator
	n := 0
	for range p.Cells() {
		n++
		if n == 2 {
			break
		}
	}
	if n != 2 {
		t.Errorf("Expected to stop after 2 cells, got %d", n)
	}
}

func TestPatterns(t *testing.T) {
	p := MustNew(64)

	WorstCase(p)
	wantRows := []uint64{
		0x5555555555555555,
		0x7777777777777777,
		0x5555555555555555,
		0xdddddddddddddddd,
	}
	for y := 0; y < 64; y++ {
		if p.Row(y) != wantRows[y&3] {
			t.Errorf("Worst case row %d: expected %#x, got %#x", y, wantRows[y&3], p.Row(y))
		}
	}

	Checkerboard(p, 0)
	if p.Count() != 64*64/2 {
		t.Errorf("Expected half the cells in checkerboard, got %d", p.Count())
	}
	if !p.Get(0, 0) || p.Get(1, 0) || p.Get(0, 1) || !p.Get(1, 1) {
		t.Error("Expected checkerboard with (0,0) set")
	}

	Frame(p)
	if p.Get(0, 5) || p.Get(63, 5) || p.Get(5, 0) || p.Get(5, 63) || !p.Get(1, 1) {
		t.Error("Expected frame with wall border and open interior")
	}
	if p.Count() != 62*62 {
		t.Errorf("Expected %d interior cells, got %d", 62*62, p.Count())
	}

	a, b := MustNew(32), MustNew(32)
	Noise(a, 0.5, 42)
	Noise(b, 0.5, 42)
	if !a.Equal(b) {
		t.Error("Expected noise to be deterministic for a seed")
	}
	Noise(a, 0, 1)
	if a.Count() != 0 {
		t.Errorf("Expected zero density to clear plane, got %d", a.Count())
	}
	Noise(a, 1, 1)
	if a.Count() != 32*32 {
		t.Errorf("Expected full density to fill plane, got %d", a.Count())
	}
}
