package bitplane

import "math/rand"

// worstRows repeats down the plane; every byte of a row carries the same
// value. Started from a top corner this pattern drives the simultaneous span
// fill to its deepest row stack.
var worstRows = [4]byte{0x55, 0x77, 0x55, 0xdd}

// WorstCase overwrites p with the stack-depth stress pattern
func WorstCase(p *Plane) {
	p.Reset()
	for y := 0; y < p.dim; y++ {
		b := worstRows[y&3]
		for x := 0; x < p.dim; x++ {
			if b&(1<<uint(x&7)) != 0 {
				p.Set(x, y)
			}
		}
	}
}

// Checkerboard overwrites p with alternating cells, (0,0) set when phase is 0
func Checkerboard(p *Plane, phase int) {
	p.Reset()
	for y := 0; y < p.dim; y++ {
		for x := 0; x < p.dim; x++ {
			if (x+y+phase)&1 == 0 {
				p.Set(x, y)
			}
		}
	}
}

// Noise overwrites p with cells set independently with the given probability
func Noise(p *Plane, density float64, seed int64) {
	p.Reset()
	rng := rand.New(rand.NewSource(seed))
	for y := 0; y < p.dim; y++ {
		for x := 0; x < p.dim; x++ {
			if rng.Float64() < density {
				p.Set(x, y)
			}
		}
	}
}

// Frame overwrites p with an occupied plane whose outer ring is wall
func Frame(p *Plane) {
	p.FillAll()
	last := p.dim - 1
	for i := 0; i < p.dim; i++ {
		p.Clear(i, 0)
		p.Clear(i, last)
		p.Clear(0, i)
		p.Clear(last, i)
	}
}
