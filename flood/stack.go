package flood

import "fmt"

// WorkItem is one suspended expansion on a work stack. The concrete type
// names the algorithm and carries the stage it is paused at.
type WorkItem interface {
	Algorithm() Algorithm
}

// DFSItem expands the four neighbours of Cell, one per stage.
// Stages 0-3 test top, bottom, left, right; stage 4 pops and pushes.
type DFSItem struct {
	Cell       int
	Stage      uint8
	PushTop    bool
	PushBottom bool
	PushLeft   bool
	PushRight  bool
}

// SpanItem fills the span through Seed and scans its neighbour rows.
// Stages: 0 init, 1 fill right, 2 fill left, 3 scan above, 4 scan below,
// 5 resolve buffered seeds.
type SpanItem struct {
	Seed     int
	Stage    uint8
	X        int
	Left     int
	Right    int
	PrevSeed int
	Pending  int // seeds buffered on the auxiliary stack by this item
}

// SimulItem propagates fill through one row word.
// Stages: 0 init, 1 propagate right, 2 propagate left, 3 fill above,
// 4 fill below then pop and push.
type SimulItem struct {
	Row       int
	Stage     uint8
	PrevFill  uint64
	Test      uint64
	PushAbove bool
	PushBelow bool
}

func (DFSItem) Algorithm() Algorithm   { return DFS }
func (SpanItem) Algorithm() Algorithm  { return Span }
func (SimulItem) Algorithm() Algorithm { return SimulSpan }

// WorkStack holds the suspended state of one incremental fill.
// It is bound to one algorithm and plane size; pushing past its capacity is a
// sizing error and panics.
type WorkStack struct {
	algo  Algorithm
	dim   int
	limit int
	items []WorkItem

	// Span fill buffers the seeds found by the top item here until it
	// resolves, since the top item stays on the stack while it scans
	seeds []int
}

// NewWorkStack sizes a stack for algorithm a on planes of side dim
func NewWorkStack(a Algorithm, dim int) *WorkStack {
	return NewWorkStackLimit(a, dim, Capacity(a, dim))
}

// NewWorkStackLimit creates a stack with an explicit capacity
func NewWorkStackLimit(a Algorithm, dim, limit int) *WorkStack {
	s := &WorkStack{
		algo:  a,
		dim:   dim,
		limit: limit,
		items: make([]WorkItem, 0, min(limit, 256)),
	}
	if a == Span {
		s.seeds = make([]int, 0, dim)
	}
	return s
}

// Algorithm returns the algorithm the stack belongs to
func (s *WorkStack) Algorithm() Algorithm { return s.algo }

// Dim returns the plane size the stack was created for
func (s *WorkStack) Dim() int { return s.dim }

// Len returns the number of pending items
func (s *WorkStack) Len() int { return len(s.items) }

// Cap returns the hard capacity
func (s *WorkStack) Cap() int { return s.limit }

// Empty reports whether the fill has finished
func (s *WorkStack) Empty() bool { return len(s.items) == 0 }

// Reset discards all pending work
func (s *WorkStack) Reset() {
	clear(s.items)
	s.items = s.items[:0]
	s.seeds = s.seeds[:0]
}

// Top returns the item that the next step will advance
func (s *WorkStack) Top() (WorkItem, bool) {
	if len(s.items) == 0 {
		return nil, false
	}
	return s.items[len(s.items)-1], true
}

// Items returns a copy of the pending items, bottom first
func (s *WorkStack) Items() []WorkItem {
	out := make([]WorkItem, len(s.items))
	copy(out, s.items)
	return out
}

func (s *WorkStack) push(it WorkItem) {
	if it.Algorithm() != s.algo {
		panic(fmt.Sprintf("flood: %s item pushed on %s stack", it.Algorithm(), s.algo))
	}
	if len(s.items) >= s.limit {
		panic(fmt.Sprintf("flood: %s work stack overflow at %d entries", s.algo, s.limit))
	}
	s.items = append(s.items, it)
}

func (s *WorkStack) pop() WorkItem {
	n := len(s.items) - 1
	it := s.items[n]
	s.items[n] = nil
	s.items = s.items[:n]
	return it
}

func (s *WorkStack) setTop(it WorkItem) {
	s.items[len(s.items)-1] = it
}

func (s *WorkStack) pushSeed(cell int) {
	s.seeds = append(s.seeds, cell)
}

func (s *WorkStack) popSeed() int {
	n := len(s.seeds) - 1
	c := s.seeds[n]
	s.seeds = s.seeds[:n]
	return c
}

// bind checks that the stack can drive a fill of algorithm a on side dim
func (s *WorkStack) bind(a Algorithm, dim int) error {
	if s == nil || s.algo != a || s.dim != dim {
		return ErrStackMismatch
	}
	return nil
}
