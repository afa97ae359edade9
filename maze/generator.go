package maze

import (
	"math/rand"
	"time"

	"github.com/lixenwraith/bitflood/bitplane"
)

type Point struct {
	X, Y int
}

type Config struct {
	Dim int

	// Braiding: 0.0 (Perfect Maze/Tree) to 1.0 (No dead ends/Graph).
	// Higher values add cycles. Constraints (No Plazas/Pillars) take precedence.
	Braiding float64

	// If true, the outer ring of the carved area is opened as well
	RemoveBorders bool

	StartPos *Point // Optional (nil = Automatic)
	Seed     int64  // Optional (0 = Random)
}

type Result struct {
	Plane *bitplane.Plane // Occupied cells are passages
	Start Point
	End   Point
}

// Generate carves a maze into a fresh occupancy plane.
// Planes have even sides, so the maze uses the largest odd square that fits
// and the last row and column stay wall.
func Generate(cfg Config) (Result, error) {
	p, err := bitplane.New(cfg.Dim)
	if err != nil {
		return Result{}, err
	}
	size := ensureOdd(cfg.Dim)

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	// Carving runs on odd coordinates only
	start := resolvePoint(size, cfg.StartPos, 1, 1)
	start.X |= 1
	start.Y |= 1
	if start.X >= size-1 || start.Y >= size-1 {
		start = Point{1, 1}
	}
	end := Point{size - 2, size - 2}

	recursiveBacktracker(p, size, start, rng)

	// Must run before braiding so dead ends on the rim see their outside exits
	if cfg.RemoveBorders {
		stripBorders(p, size)
	}

	if cfg.Braiding > 0 {
		applySmartBraiding(p, size, cfg.Braiding, rng)
	}

	p.Set(start.X, start.Y)
	p.Set(end.X, end.Y)

	return Result{Plane: p, Start: start, End: end}, nil
}

// recursiveBacktracker carves a uniform spanning tree over odd cells
func recursiveBacktracker(p *bitplane.Plane, size int, start Point, rng *rand.Rand) {
	stack := []Point{start}
	p.Set(start.X, start.Y)

	dirs := [4]Point{{0, -2}, {0, 2}, {-2, 0}, {2, 0}}
	candidates := make([]Point, 0, 4)

	for len(stack) > 0 {
		curr := stack[len(stack)-1]
		candidates = candidates[:0]

		for _, d := range dirs {
			nx, ny := curr.X+d.X, curr.Y+d.Y
			// Leave 1 cell border for walls
			if nx > 0 && nx < size-1 && ny > 0 && ny < size-1 && !p.Get(nx, ny) {
				candidates = append(candidates, d)
			}
		}

		if len(candidates) == 0 {
			stack = stack[:len(stack)-1]
			continue
		}

		d := candidates[rng.Intn(len(candidates))]
		p.Set(curr.X+d.X/2, curr.Y+d.Y/2)
		next := Point{curr.X + d.X, curr.Y + d.Y}
		p.Set(next.X, next.Y)
		stack = append(stack, next)
	}
}

func applySmartBraiding(p *bitplane.Plane, size int, probability float64, rng *rand.Rand) {
	ortho := [4]Point{{0, -1}, {0, 1}, {-1, 0}, {1, 0}}
	candidates := make([]Point, 0, 4)

	for y := 1; y < size-1; y += 2 {
		for x := 1; x < size-1; x += 2 {
			if !p.Get(x, y) {
				continue
			}

			// Dead end: exactly one open neighbour
			exits := 0
			for _, d := range ortho {
				if p.Get(x+d.X, y+d.Y) {
					exits++
				}
			}
			if exits != 1 || rng.Float64() >= probability {
				continue
			}

			candidates = candidates[:0]
			for _, d := range ortho {
				nx, ny := x+2*d.X, y+2*d.Y
				wx, wy := x+d.X, y+d.Y
				if nx < 0 || ny < 0 || nx >= size || ny >= size {
					continue
				}
				if p.Get(nx, ny) && !p.Get(wx, wy) && canSafelyRemoveWall(p, size, wx, wy) {
					candidates = append(candidates, Point{wx, wy})
				}
			}

			if len(candidates) > 0 {
				c := candidates[rng.Intn(len(candidates))]
				p.Set(c.X, c.Y)
			}
		}
	}
}

// canSafelyRemoveWall rejects openings that would create a 2x2 plaza or leave
// a neighbouring wall with no other wall attached
func canSafelyRemoveWall(p *bitplane.Plane, size, x, y int) bool {
	open := func(tx, ty int) bool {
		if tx < 0 || ty < 0 || tx >= size || ty >= size {
			return false
		}
		return p.Get(tx, ty)
	}
	wall := func(tx, ty int) bool {
		if tx < 0 || ty < 0 || tx >= size || ty >= size {
			return false
		}
		return !p.Get(tx, ty)
	}

	// Plazas: any quadrant around (x,y) already open on its other three cells
	for _, q := range [4]Point{{-1, -1}, {1, -1}, {-1, 1}, {1, 1}} {
		if open(x+q.X, y) && open(x, y+q.Y) && open(x+q.X, y+q.Y) {
			return false
		}
	}

	// Pillars
	ortho := [4]Point{{0, -1}, {0, 1}, {-1, 0}, {1, 0}}
	for _, d := range ortho {
		nx, ny := x+d.X, y+d.Y
		if !wall(nx, ny) {
			continue
		}
		links := 0
		for _, d2 := range ortho {
			nnx, nny := nx+d2.X, ny+d2.Y
			if nnx == x && nny == y {
				continue
			}
			if wall(nnx, nny) {
				links++
			}
		}
		if links == 0 {
			return false
		}
	}

	return true
}

func stripBorders(p *bitplane.Plane, size int) {
	last := size - 1
	for i := 0; i < size; i++ {
		p.Set(i, 0)
		p.Set(i, last)
		p.Set(0, i)
		p.Set(last, i)
	}
}

// ensureOdd rounds down to stay within the plane
func ensureOdd(n int) int {
	if n < 3 {
		return 3
	}
	if n%2 == 0 {
		return n - 1
	}
	return n
}

func resolvePoint(size int, p *Point, defX, defY int) Point {
	if p == nil {
		return Point{defX, defY}
	}
	return Point{clamp(p.X, 0, size-1), clamp(p.Y, 0, size-1)}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
