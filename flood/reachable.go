package flood

import "github.com/lixenwraith/bitflood/bitplane"

var neighbours = [4][2]int{{0, -1}, {0, 1}, {-1, 0}, {1, 0}}

// Reachable returns the occupied cells 4-connected to (x, y) using a plain
// breadth-first search over occ.Get. It shares no code with the fill engines
// and serves as their reference.
func Reachable(occ *bitplane.Plane, x, y int) *bitplane.Plane {
	dim := occ.Dim()
	out := bitplane.MustNew(dim)
	if !occ.Get(x, y) {
		return out
	}

	out.Set(x, y)
	queue := []int{y*dim + x}
	for len(queue) > 0 {
		cell := queue[0]
		queue = queue[1:]
		cx, cy := cell%dim, cell/dim

		for _, d := range neighbours {
			nx, ny := cx+d[0], cy+d[1]
			if occ.Get(nx, ny) && !out.Get(nx, ny) {
				out.Set(nx, ny)
				queue = append(queue, ny*dim+nx)
			}
		}
	}
	return out
}

// Regions counts the 4-connected components of occ
func Regions(occ *bitplane.Plane) int {
	seen := bitplane.MustNew(occ.Dim())
	n := 0
	for cell := range occ.Cells() {
		if seen.GetIndex(cell) {
			continue
		}
		x, y := occ.Coords(cell)
		fillSpan(occ, seen, x, y)
		n++
	}
	return n
}
