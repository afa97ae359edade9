package flood

import (
	"errors"
	"fmt"
	"strings"
)

// Algorithm selects a fill strategy
type Algorithm uint8

const (
	DFS       Algorithm = iota // Four-way depth-first search over cells
	Span                       // Scanline span fill
	SimulSpan                  // Bit-parallel span fill over row words

	AlgorithmCount = 3
)

var (
	ErrUnknownAlgorithm = errors.New("flood: unknown algorithm")
	ErrRowTooWide       = errors.New("flood: simultaneous span fill needs rows of at most 64 cells")
	ErrStackMismatch    = errors.New("flood: work stack belongs to another algorithm or plane size")
)

var algorithmNames = [AlgorithmCount]string{
	DFS:       "Four-Way DFS",
	Span:      "Span Fill",
	SimulSpan: "Simul Span Fill",
}

var algorithmKeys = [AlgorithmCount]string{
	DFS:       "dfs",
	Span:      "span",
	SimulSpan: "simul",
}

// Valid reports whether a names a known algorithm
func (a Algorithm) Valid() bool {
	return a < AlgorithmCount
}

// String returns the display name
func (a Algorithm) String() string {
	if !a.Valid() {
		return fmt.Sprintf("Algorithm(%d)", uint8(a))
	}
	return algorithmNames[a]
}

// Key returns the short identifier used in flags and config files
func (a Algorithm) Key() string {
	if !a.Valid() {
		return ""
	}
	return algorithmKeys[a]
}

// Next cycles forward through the algorithms
func (a Algorithm) Next() Algorithm {
	return (a + 1) % AlgorithmCount
}

// Prev cycles backward through the algorithms
func (a Algorithm) Prev() Algorithm {
	return (a + AlgorithmCount - 1) % AlgorithmCount
}

// ParseAlgorithm accepts a key ("dfs", "span", "simul") or a display name
func ParseAlgorithm(s string) (Algorithm, error) {
	s = strings.TrimSpace(s)
	for i := Algorithm(0); i < AlgorithmCount; i++ {
		if strings.EqualFold(s, algorithmKeys[i]) || strings.EqualFold(s, algorithmNames[i]) {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, s)
}

// Algorithms lists every algorithm in id order
func Algorithms() []Algorithm {
	return []Algorithm{DFS, Span, SimulSpan}
}

// Supports reports whether the algorithm can run on planes of side dim
func (a Algorithm) Supports(dim int) bool {
	switch a {
	case DFS, Span:
		return true
	case SimulSpan:
		return dim <= 64
	}
	return false
}

// Capacity returns the work stack size a fill of side dim needs.
// DFS and span fill can hold one entry per cell. The simultaneous fill has
// been observed to stay within ceil(dim/2) rows; rows may be queued more than
// once, so the limit is kept at one entry per cell as well and the tighter
// figure is only reported through Stats.MaxDepth.
func Capacity(a Algorithm, dim int) int {
	return dim * dim
}
