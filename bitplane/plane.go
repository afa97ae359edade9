package bitplane

import (
	"errors"
	"fmt"
	"iter"
	"math/bits"
)

const (
	MinDim   = 8
	MaxDim   = 1 << 12
	WordBits = 64
)

// NoCell is returned by cell probes that did not hit a fillable cell
const NoCell = -1

var (
	ErrInvalidDim  = errors.New("bitplane: dimension must be a power of two in [8, 4096]")
	ErrDimMismatch = errors.New("bitplane: planes have different dimensions")
	ErrShortData   = errors.New("bitplane: data shorter than plane size")
)

// Plane is a square grid of bits, row-major, one bit per cell
// Rows are word-aligned: a row occupies Stride() consecutive words and cell x
// of a row lives at bit x%64 of word x/64
type Plane struct {
	dim    int
	stride int
	words  []uint64
}

// ValidDim reports whether dim can back a plane
func ValidDim(dim int) bool {
	return dim >= MinDim && dim <= MaxDim && dim&(dim-1) == 0
}

// New allocates an all-zero plane of side dim
func New(dim int) (*Plane, error) {
	if !ValidDim(dim) {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidDim, dim)
	}
	stride := (dim + WordBits - 1) / WordBits
	return &Plane{
		dim:    dim,
		stride: stride,
		words:  make([]uint64, stride*dim),
	}, nil
}

// MustNew is New for dimensions known to be valid
func MustNew(dim int) *Plane {
	p, err := New(dim)
	if err != nil {
		panic(err)
	}
	return p
}

// Dim returns the side length
func (p *Plane) Dim() int { return p.dim }

// Stride returns the number of words per row
func (p *Plane) Stride() int { return p.stride }

// Len returns the number of cells
func (p *Plane) Len() int { return p.dim * p.dim }

// Bytes returns the size of the serialized form
func (p *Plane) Bytes() int { return p.dim * p.dim / 8 }

// SameDim reports whether other has the same side length
func (p *Plane) SameDim(other *Plane) bool {
	return other != nil && p.dim == other.dim
}

// inRange folds both axis checks into one comparison.
// dim is a power of two, so x|y reaches dim iff either axis does, and the
// unsigned conversion sends negative values past dim.
func (p *Plane) inRange(x, y int) bool {
	return uint(x|y) < uint(p.dim)
}

func (p *Plane) locate(x, y int) (word int, mask uint64) {
	return y*p.stride + x>>6, 1 << uint(x&63)
}

// Get returns the bit at (x, y), false when out of range
func (p *Plane) Get(x, y int) bool {
	if !p.inRange(x, y) {
		return false
	}
	w, m := p.locate(x, y)
	return p.words[w]&m != 0
}

// Set turns the bit at (x, y) on, ignoring out-of-range coordinates
func (p *Plane) Set(x, y int) {
	if !p.inRange(x, y) {
		return
	}
	w, m := p.locate(x, y)
	p.words[w] |= m
}

// Clear turns the bit at (x, y) off, ignoring out-of-range coordinates
func (p *Plane) Clear(x, y int) {
	if !p.inRange(x, y) {
		return
	}
	w, m := p.locate(x, y)
	p.words[w] &^= m
}

// Toggle flips the bit at (x, y)
func (p *Plane) Toggle(x, y int) {
	if !p.inRange(x, y) {
		return
	}
	w, m := p.locate(x, y)
	p.words[w] ^= m
}

// Put sets or clears the bit at (x, y)
func (p *Plane) Put(x, y int, on bool) {
	if on {
		p.Set(x, y)
	} else {
		p.Clear(x, y)
	}
}

// GetIndex reads a cell by flat index
func (p *Plane) GetIndex(cell int) bool {
	if cell < 0 || cell >= p.Len() {
		return false
	}
	return p.Get(cell%p.dim, cell/p.dim)
}

// SetIndex sets a cell by flat index
func (p *Plane) SetIndex(cell int) {
	if cell < 0 || cell >= p.Len() {
		return
	}
	p.Set(cell%p.dim, cell/p.dim)
}

// Index converts a coordinate to a flat cell index, NoCell when out of range
func (p *Plane) Index(x, y int) int {
	if !p.inRange(x, y) {
		return NoCell
	}
	return y*p.dim + x
}

// Coords splits a flat cell index
func (p *Plane) Coords(cell int) (x, y int) {
	return cell % p.dim, cell / p.dim
}

// Row returns the word for row y. Only meaningful when Stride() == 1
func (p *Plane) Row(y int) uint64 {
	return p.words[y*p.stride]
}

// SetRow replaces the word for row y. Only meaningful when Stride() == 1
func (p *Plane) SetRow(y int, w uint64) {
	p.words[y*p.stride] = w & p.rowMask()
}

// OrRow merges bits into the word for row y
func (p *Plane) OrRow(y int, w uint64) {
	p.words[y*p.stride] |= w & p.rowMask()
}

func (p *Plane) rowMask() uint64 {
	if p.dim >= WordBits {
		return ^uint64(0)
	}
	return 1<<uint(p.dim) - 1
}

// Reset clears every cell
func (p *Plane) Reset() {
	clear(p.words)
}

// FillAll sets every cell
func (p *Plane) FillAll() {
	m := p.rowMask()
	for i := range p.words {
		p.words[i] = m
	}
}

// Count returns the number of set cells
func (p *Plane) Count() int {
	n := 0
	for _, w := range p.words {
		n += bits.OnesCount64(w)
	}
	return n
}

// Equal reports whether both planes hold the same cells
func (p *Plane) Equal(other *Plane) bool {
	if !p.SameDim(other) {
		return false
	}
	for i, w := range p.words {
		if other.words[i] != w {
			return false
		}
	}
	return true
}

// SubsetOf reports whether every set cell of p is also set in other
func (p *Plane) SubsetOf(other *Plane) bool {
	if !p.SameDim(other) {
		return false
	}
	for i, w := range p.words {
		if w&^other.words[i] != 0 {
			return false
		}
	}
	return true
}

// Clone returns an independent copy
func (p *Plane) Clone() *Plane {
	c := &Plane{dim: p.dim, stride: p.stride, words: make([]uint64, len(p.words))}
	copy(c.words, p.words)
	return c
}

// CopyFrom overwrites p with the contents of src
func (p *Plane) CopyFrom(src *Plane) error {
	if !p.SameDim(src) {
		return ErrDimMismatch
	}
	copy(p.words, src.words)
	return nil
}

// Cells iterates over the flat indices of set cells in ascending order
func (p *Plane) Cells() iter.Seq[int] {
	return func(yield func(int) bool) {
		for i, w := range p.words {
			y := i / p.stride
			base := y*p.dim + (i%p.stride)*WordBits
			for w != 0 {
				tz := bits.TrailingZeros64(w)
				if !yield(base + tz) {
					return
				}
				w &^= 1 << uint(tz)
			}
		}
	}
}
