package flood

import "github.com/lixenwraith/bitflood/bitplane"

// fillDFS floods from the seed with an explicit cell stack.
// Neighbours are tried top, bottom, left, right; only the filled set is
// meaningful, not the visiting order.
func fillDFS(occ, fill *bitplane.Plane, seedX, seedY int) int {
	dim := occ.Dim()
	stack := make([]int, 0, dim)

	if cell := bitplane.FillCell(occ, fill, seedX, seedY); cell != bitplane.NoCell {
		stack = append(stack, cell)
	}

	filled := 0
	for len(stack) > 0 {
		filled++

		cell := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		x, y := cell%dim, cell/dim

		top := bitplane.FillCell(occ, fill, x, y-1)
		bottom := bitplane.FillCell(occ, fill, x, y+1)
		left := bitplane.FillCell(occ, fill, x-1, y)
		right := bitplane.FillCell(occ, fill, x+1, y)

		if top != bitplane.NoCell {
			stack = append(stack, top)
		}
		if bottom != bitplane.NoCell {
			stack = append(stack, bottom)
		}
		if left != bitplane.NoCell {
			stack = append(stack, left)
		}
		if right != bitplane.NoCell {
			stack = append(stack, right)
		}
	}

	return filled
}

func startDFS(occ, fill *bitplane.Plane, stack *WorkStack, seedX, seedY int) Progress {
	cell := bitplane.FillCell(occ, fill, seedX, seedY)
	if cell == bitplane.NoCell {
		return Progress{Depth: stack.Len()}
	}
	stack.push(DFSItem{Cell: cell})
	return Progress{Filled: 1, Depth: stack.Len()}
}

// stepDFS tests at most one neighbour of the top item. The right-hand test
// and the pop/push that follows it share a call so no step is ever empty.
func stepDFS(occ, fill *bitplane.Plane, stack *WorkStack, it DFSItem, probe *bitplane.Probe) int {
	dim := occ.Dim()
	x, y := it.Cell%dim, it.Cell/dim
	filled := 0

	switch it.Stage {
	case 0:
		if probe.FillCell(occ, fill, x, y-1) != bitplane.NoCell {
			filled++
			it.PushTop = true
		}
		it.Stage++
		stack.setTop(it)

	case 1:
		if probe.FillCell(occ, fill, x, y+1) != bitplane.NoCell {
			filled++
			it.PushBottom = true
		}
		it.Stage++
		stack.setTop(it)

	case 2:
		if probe.FillCell(occ, fill, x-1, y) != bitplane.NoCell {
			filled++
			it.PushLeft = true
		}
		it.Stage++
		stack.setTop(it)

	case 3:
		if probe.FillCell(occ, fill, x+1, y) != bitplane.NoCell {
			filled++
			it.PushRight = true
		}
		it.Stage++
		fallthrough

	case 4:
		stack.pop()
		if it.PushTop {
			stack.push(DFSItem{Cell: it.Cell - dim})
		}
		if it.PushBottom {
			stack.push(DFSItem{Cell: it.Cell + dim})
		}
		if it.PushLeft {
			stack.push(DFSItem{Cell: it.Cell - 1})
		}
		if it.PushRight {
			stack.push(DFSItem{Cell: it.Cell + 1})
		}
	}

	return filled
}
