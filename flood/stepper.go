package flood

import (
	"fmt"

	"github.com/lixenwraith/bitflood/bitplane"
)

// Progress reports the effect of one start or step call
type Progress struct {
	Filled   int // cells newly set in the fill plane
	Examined int // cell probes, or row-word operations for SimulSpan
	Depth    int // work stack depth after the call
}

func checkPlanes(a Algorithm, occ, fill *bitplane.Plane) error {
	if !a.Valid() {
		return fmt.Errorf("%w: %d", ErrUnknownAlgorithm, uint8(a))
	}
	if occ == nil || fill == nil || !occ.SameDim(fill) {
		return bitplane.ErrDimMismatch
	}
	if !a.Supports(occ.Dim()) {
		return fmt.Errorf("%w: plane is %dx%d", ErrRowTooWide, occ.Dim(), occ.Dim())
	}
	return nil
}

// Fill runs algorithm a to completion from (seedX, seedY) and returns the
// number of cells it newly filled. Out-of-range, wall or already-filled seeds
// fill nothing.
func Fill(a Algorithm, occ, fill *bitplane.Plane, seedX, seedY int) (int, error) {
	if err := checkPlanes(a, occ, fill); err != nil {
		return 0, err
	}

	var n int
	switch a {
	case DFS:
		n = fillDFS(occ, fill, seedX, seedY)
	case Span:
		n = fillSpan(occ, fill, seedX, seedY)
	case SimulSpan:
		n = fillSimul(occ, fill, seedX, seedY)
	}

	Logger().Debug("fill complete", "algorithm", a.Key(), "x", seedX, "y", seedY, "filled", n)
	return n, nil
}

// Start seeds stack for an incremental fill. Pending work already on the
// stack is kept, so several seeds may share one fill.
func Start(a Algorithm, occ, fill *bitplane.Plane, stack *WorkStack, seedX, seedY int) (Progress, error) {
	if err := checkPlanes(a, occ, fill); err != nil {
		return Progress{}, err
	}
	if err := stack.bind(a, occ.Dim()); err != nil {
		return Progress{}, err
	}

	switch a {
	case DFS:
		return startDFS(occ, fill, stack, seedX, seedY), nil
	case Span:
		return startSpan(occ, fill, stack, seedX, seedY), nil
	default:
		return startSimul(occ, fill, stack, seedX, seedY), nil
	}
}

// Step advances the top work item by one stage. tested may be nil; when
// given, every examined cell is marked in it. Calling Step on an empty stack
// is a no-op.
func Step(a Algorithm, occ, fill *bitplane.Plane, stack *WorkStack, tested *bitplane.Plane) (Progress, error) {
	if err := checkPlanes(a, occ, fill); err != nil {
		return Progress{}, err
	}
	if err := stack.bind(a, occ.Dim()); err != nil {
		return Progress{}, err
	}
	if tested != nil && !tested.SameDim(occ) {
		return Progress{}, bitplane.ErrDimMismatch
	}
	return step(occ, fill, stack, tested), nil
}

// step dispatches on the concrete item type; the stack guarantees every item
// matches its algorithm.
func step(occ, fill *bitplane.Plane, stack *WorkStack, tested *bitplane.Plane) Progress {
	top, ok := stack.Top()
	if !ok {
		return Progress{}
	}

	probe := bitplane.Probe{Tested: tested}
	var filled int
	switch it := top.(type) {
	case DFSItem:
		filled = stepDFS(occ, fill, stack, it, &probe)
	case SpanItem:
		filled = stepSpan(occ, fill, stack, it, &probe)
	case SimulItem:
		filled = stepSimul(occ, fill, stack, it, &probe)
	default:
		panic(fmt.Sprintf("flood: unexpected work item %T", top))
	}

	return Progress{Filled: filled, Examined: probe.Count, Depth: stack.Len()}
}
