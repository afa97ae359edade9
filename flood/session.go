package flood

import "github.com/lixenwraith/bitflood/bitplane"

// Stats accumulates counters over one incremental fill
type Stats struct {
	Filled   int // total cells filled, including the seed
	Examined int // total probes reported by steps
	Steps    int // step calls that found work
	MaxDepth int // deepest work stack seen
}

// Session drives one incremental fill: it owns the work stack and tracks
// counters across calls. Tested, when non-nil, collects the cells examined
// by steps; callers clear it between visualised batches.
type Session struct {
	algo   Algorithm
	occ    *bitplane.Plane
	fill   *bitplane.Plane
	Tested *bitplane.Plane

	stack *WorkStack
	stats Stats
}

// NewSession prepares an incremental fill of occ into fill
func NewSession(a Algorithm, occ, fill *bitplane.Plane) (*Session, error) {
	if err := checkPlanes(a, occ, fill); err != nil {
		return nil, err
	}
	return &Session{
		algo:  a,
		occ:   occ,
		fill:  fill,
		stack: NewWorkStack(a, occ.Dim()),
	}, nil
}

// Algorithm returns the session's algorithm
func (s *Session) Algorithm() Algorithm { return s.algo }

// Stack exposes the pending work for inspection
func (s *Session) Stack() *WorkStack { return s.stack }

// Stats returns the counters so far
func (s *Session) Stats() Stats { return s.stats }

// Depth returns the current work stack depth
func (s *Session) Depth() int { return s.stack.Len() }

// Done reports whether no work is pending
func (s *Session) Done() bool { return s.stack.Empty() }

// Start seeds the fill at (x, y)
func (s *Session) Start(x, y int) Progress {
	var p Progress
	switch s.algo {
	case DFS:
		p = startDFS(s.occ, s.fill, s.stack, x, y)
	case Span:
		p = startSpan(s.occ, s.fill, s.stack, x, y)
	default:
		p = startSimul(s.occ, s.fill, s.stack, x, y)
	}
	s.record(p)
	return p
}

// Step performs one unit of work
func (s *Session) Step() Progress {
	if s.stack.Empty() {
		return Progress{}
	}
	p := step(s.occ, s.fill, s.stack, s.Tested)
	s.stats.Steps++
	s.record(p)
	if s.stack.Empty() {
		Logger().Debug("incremental fill complete",
			"algorithm", s.algo.Key(),
			"filled", s.stats.Filled,
			"examined", s.stats.Examined,
			"steps", s.stats.Steps,
			"max_depth", s.stats.MaxDepth)
	}
	return p
}

// StepN performs up to n steps and returns their combined progress
func (s *Session) StepN(n int) Progress {
	var total Progress
	for ; n > 0 && !s.stack.Empty(); n-- {
		p := s.Step()
		total.Filled += p.Filled
		total.Examined += p.Examined
	}
	total.Depth = s.stack.Len()
	return total
}

// Run steps until no work is pending
func (s *Session) Run() Progress {
	var total Progress
	for !s.stack.Empty() {
		p := s.Step()
		total.Filled += p.Filled
		total.Examined += p.Examined
	}
	return total
}

// Abort drops pending work; cells already filled stay filled
func (s *Session) Abort() {
	if !s.stack.Empty() {
		Logger().Warn("incremental fill abandoned",
			"algorithm", s.algo.Key(),
			"pending", s.stack.Len(),
			"filled", s.stats.Filled)
	}
	s.stack.Reset()
}

func (s *Session) record(p Progress) {
	s.stats.Filled += p.Filled
	s.stats.Examined += p.Examined
	if p.Depth > s.stats.MaxDepth {
		s.stats.MaxDepth = p.Depth
	}
}
