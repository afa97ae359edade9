package bitplane

import (
	"fmt"
	"strings"
)

// Text glyphs
const (
	GlyphOccupied = '#'
	GlyphWall     = '.'
	GlyphFilled   = 'o'
	GlyphTested   = '?'
)

// ParseText builds a plane from rows of '#' (occupied) and '.' (wall).
// '1' and '0' are accepted as aliases, blank lines and surrounding spaces are
// ignored. The row count and every row length must equal a valid dimension.
func ParseText(s string) (*Plane, error) {
	var rows []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		rows = append(rows, line)
	}

	p, err := New(len(rows))
	if err != nil {
		return nil, err
	}
	for y, row := range rows {
		if len(row) != p.dim {
			return nil, fmt.Errorf("bitplane: row %d has %d cells, want %d", y, len(row), p.dim)
		}
		for x := 0; x < len(row); x++ {
			switch row[x] {
			case GlyphOccupied, '1':
				p.Set(x, y)
			case GlyphWall, '0':
			default:
				return nil, fmt.Errorf("bitplane: unexpected %q at (%d,%d)", row[x], x, y)
			}
		}
	}
	return p, nil
}

// MustParseText is ParseText for literals
func MustParseText(s string) *Plane {
	p, err := ParseText(s)
	if err != nil {
		panic(err)
	}
	return p
}

// String renders the plane in the ParseText format
func (p *Plane) String() string {
	return Render(p, nil, nil)
}

// Render draws occupancy with fill and tested overlays, either may be nil.
// Tested cells take precedence over filled ones.
func Render(occ, fill, tested *Plane) string {
	var b strings.Builder
	b.Grow(occ.dim * (occ.dim + 1))
	for y := 0; y < occ.dim; y++ {
		for x := 0; x < occ.dim; x++ {
			switch {
			case tested != nil && tested.Get(x, y):
				b.WriteByte(GlyphTested)
			case fill != nil && fill.Get(x, y):
				b.WriteByte(GlyphFilled)
			case occ.Get(x, y):
				b.WriteByte(GlyphOccupied)
			default:
				b.WriteByte(GlyphWall)
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
