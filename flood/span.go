package flood

import "github.com/lixenwraith/bitflood/bitplane"

// fillSpan floods whole horizontal spans, seeding the rows above and below
// once per run of fillable cells found under the span.
func fillSpan(occ, fill *bitplane.Plane, seedX, seedY int) int {
	dim := occ.Dim()
	stack := make([]int, 0, dim)

	if cell := bitplane.Fillable(occ, fill, seedX, seedY); cell != bitplane.NoCell {
		stack = append(stack, cell)
	}

	filled := 0
	for len(stack) > 0 {
		cell := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		y := cell / dim

		x := cell % dim
		for bitplane.FillCell(occ, fill, x, y) != bitplane.NoCell {
			x++
			filled++
		}
		right := x - 1

		x = cell%dim - 1
		for bitplane.FillCell(occ, fill, x, y) != bitplane.NoCell {
			x--
			filled++
		}
		left := x + 1

		if y > 0 {
			stack = scanSpan(occ, fill, stack, left, right, y-1)
		}
		if y < dim-1 {
			stack = scanSpan(occ, fill, stack, left, right, y+1)
		}
	}

	return filled
}

// scanSpan pushes one seed per rising edge of fillable cells on row y
func scanSpan(occ, fill *bitplane.Plane, stack []int, left, right, y int) []int {
	prev := bitplane.NoCell
	for x := left; x <= right; x++ {
		seed := bitplane.Fillable(occ, fill, x, y)
		if seed != bitplane.NoCell && prev == bitplane.NoCell {
			stack = append(stack, seed)
		}
		prev = seed
	}
	return stack
}

// startSpan only validates the seed; the first step fills it
func startSpan(occ, fill *bitplane.Plane, stack *WorkStack, seedX, seedY int) Progress {
	cell := bitplane.Fillable(occ, fill, seedX, seedY)
	if cell != bitplane.NoCell {
		stack.push(SpanItem{Seed: cell, PrevSeed: bitplane.NoCell})
	}
	return Progress{Depth: stack.Len()}
}

// stepSpan performs at most one cell test or fill for the top item
func stepSpan(occ, fill *bitplane.Plane, stack *WorkStack, it SpanItem, probe *bitplane.Probe) int {
	dim := occ.Dim()
	seedX, y := it.Seed%dim, it.Seed/dim
	filled := 0

	switch it.Stage {
	case 0:
		it.X = seedX
		it.Stage++
		fallthrough

	case 1:
		if probe.FillCell(occ, fill, it.X, y) != bitplane.NoCell {
			it.X++
			filled++
		} else {
			it.Right = it.X - 1
			it.X = seedX - 1
			it.Stage++
		}
		stack.setTop(it)

	case 2:
		if probe.FillCell(occ, fill, it.X, y) != bitplane.NoCell {
			it.X--
			filled++
		} else {
			it.Left = it.X + 1
			it.X = it.Left
			it.PrevSeed = bitplane.NoCell
			it.Stage++
		}
		stack.setTop(it)

	case 3:
		if y > 0 && it.X <= it.Right {
			scanStep(occ, fill, stack, &it, y-1, probe)
			stack.setTop(it)
			break
		}
		it.X = it.Left
		it.PrevSeed = bitplane.NoCell
		it.Stage++
		fallthrough

	case 4:
		if y < dim-1 && it.X <= it.Right {
			scanStep(occ, fill, stack, &it, y+1, probe)
			stack.setTop(it)
			break
		}
		it.Stage++
		fallthrough

	case 5:
		stack.pop()
		for ; it.Pending > 0; it.Pending-- {
			stack.push(SpanItem{Seed: stack.popSeed(), PrevSeed: bitplane.NoCell})
		}
	}

	return filled
}

func scanStep(occ, fill *bitplane.Plane, stack *WorkStack, it *SpanItem, row int, probe *bitplane.Probe) {
	seed := probe.Fillable(occ, fill, it.X, row)
	if seed != bitplane.NoCell && it.PrevSeed == bitplane.NoCell {
		stack.pushSeed(seed)
		it.Pending++
	}
	it.PrevSeed = seed
	it.X++
}
