package flood

import (
	"math/bits"

	"github.com/lixenwraith/bitflood/bitplane"
)

// Rows are single words; bit x is cell x, so a left shift moves fill toward
// larger x. Bits past the plane width are never occupied, which keeps the
// shifts from leaking outside a row.

// spreadRight grows fill toward larger x through occupied bits
func spreadRight(fillRow, bitRow uint64) uint64 {
	test := (fillRow << 1) & bitRow
	prev := uint64(0)
	for test != 0 && prev != fillRow {
		prev = fillRow
		fillRow |= test
		test = (test << 1) & bitRow
	}
	return fillRow
}

// spreadLeft grows fill toward smaller x through occupied bits
func spreadLeft(fillRow, bitRow uint64) uint64 {
	test := (fillRow >> 1) & bitRow
	prev := uint64(0)
	for test != 0 && prev != fillRow {
		prev = fillRow
		fillRow |= test
		test = (test >> 1) & bitRow
	}
	return fillRow
}

// fillSimul floods whole rows at a time, stacking row indices.
// Downward work is pushed last and so taken first; a row only goes back on
// the stack when its fill word changed.
func fillSimul(occ, fill *bitplane.Plane, seedX, seedY int) int {
	dim := occ.Dim()
	stack := make([]int, 0, (dim+1)/2)
	filled := 0

	if cell := bitplane.FillCell(occ, fill, seedX, seedY); cell != bitplane.NoCell {
		stack = append(stack, cell/dim)
		filled++
	}

	for len(stack) > 0 {
		row := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		bitRow := occ.Row(row)
		start := fill.Row(row)
		fillRow := spreadLeft(spreadRight(start, bitRow), bitRow)

		fill.SetRow(row, fillRow)
		filled += bits.OnesCount64(fillRow ^ start)

		if row > 0 {
			if n, changed := spreadVertical(occ, fill, row-1, fillRow); changed {
				stack = append(stack, row-1)
				filled += n
			}
		}
		if row < dim-1 {
			if n, changed := spreadVertical(occ, fill, row+1, fillRow); changed {
				stack = append(stack, row+1)
				filled += n
			}
		}
	}

	return filled
}

// spreadVertical copies fill from a neighbouring row into row where occupied
func spreadVertical(occ, fill *bitplane.Plane, row int, from uint64) (int, bool) {
	old := fill.Row(row)
	next := old | (from & occ.Row(row))
	if next == old {
		return 0, false
	}
	fill.SetRow(row, next)
	return bits.OnesCount64(old ^ next), true
}

func startSimul(occ, fill *bitplane.Plane, stack *WorkStack, seedX, seedY int) Progress {
	cell := bitplane.FillCell(occ, fill, seedX, seedY)
	if cell == bitplane.NoCell {
		return Progress{Depth: stack.Len()}
	}
	stack.push(SimulItem{Row: cell / occ.Dim()})
	return Progress{Filled: 1, Depth: stack.Len()}
}

// stepSimul performs one word-level operation on the top row. Stages that
// find nothing to do fall through so every call makes progress.
func stepSimul(occ, fill *bitplane.Plane, stack *WorkStack, it SimulItem, probe *bitplane.Probe) int {
	dim := occ.Dim()
	row := it.Row
	bitRow := occ.Row(row)
	fillRow := fill.Row(row)
	filled := 0

	switch it.Stage {
	case 0:
		it.PrevFill = fillRow
		it.Test = (fillRow << 1) & bitRow
		it.Stage++
		fallthrough

	case 1:
		if it.Test != 0 {
			probe.MarkRow(row, it.Test)
			prev := fillRow
			fillRow |= it.Test
			it.Test = (it.Test << 1) & bitRow
			if fillRow != prev {
				fill.SetRow(row, fillRow)
				filled += bits.OnesCount64(fillRow ^ prev)
				stack.setTop(it)
				break
			}
		}
		it.Test = (fillRow >> 1) & bitRow
		it.Stage++
		fallthrough

	case 2:
		if it.Test != 0 {
			probe.MarkRow(row, it.Test)
			prev := fillRow
			fillRow |= it.Test
			it.Test = (it.Test >> 1) & bitRow
			if fillRow != prev {
				fill.SetRow(row, fillRow)
				filled += bits.OnesCount64(fillRow ^ prev)
				stack.setTop(it)
				break
			}
		}
		it.Stage++
		fallthrough

	case 3:
		it.Stage++
		if row > 0 {
			probe.MarkRow(row-1, fillRow)
			if n, changed := spreadVertical(occ, fill, row-1, fillRow); changed {
				it.PushAbove = true
				filled += n
				stack.setTop(it)
				break
			}
		}
		fallthrough

	case 4:
		if row < dim-1 {
			probe.MarkRow(row+1, fillRow)
			if n, changed := spreadVertical(occ, fill, row+1, fillRow); changed {
				it.PushBelow = true
				filled += n
			}
		}

		stack.pop()
		if it.PushAbove {
			stack.push(SimulItem{Row: row - 1})
		}
		if it.PushBelow {
			stack.push(SimulItem{Row: row + 1})
		}
	}

	return filled
}
