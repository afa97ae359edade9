package bitplane

// FillCell marks (x, y) in fill when it is in range, occupied and not yet
// filled. Returns the cell index on success, NoCell otherwise.
// This is the only place a fill bit is ever set from an occupancy test.
func FillCell(occ, fill *Plane, x, y int) int {
	if !occ.inRange(x, y) {
		return NoCell
	}
	w, m := occ.locate(x, y)
	if occ.words[w]&m != 0 && fill.words[w]&m == 0 {
		fill.words[w] |= m
		return y*occ.dim + x
	}
	return NoCell
}

// Fillable reports the cell index of (x, y) when FillCell would succeed
func Fillable(occ, fill *Plane, x, y int) int {
	if !occ.inRange(x, y) {
		return NoCell
	}
	w, m := occ.locate(x, y)
	if occ.words[w]&m != 0 && fill.words[w]&m == 0 {
		return y*occ.dim + x
	}
	return NoCell
}

// Probe records which cells a step examined. Tested may be nil, in which case
// only Count is kept.
type Probe struct {
	Tested *Plane
	Count  int
}

func (pr *Probe) mark(x, y int) {
	pr.Count++
	if pr.Tested != nil {
		pr.Tested.Set(x, y)
	}
}

// FillCell is the instrumented form of FillCell
func (pr *Probe) FillCell(occ, fill *Plane, x, y int) int {
	if !occ.inRange(x, y) {
		return NoCell
	}
	pr.mark(x, y)
	return FillCell(occ, fill, x, y)
}

// Fillable is the instrumented form of Fillable
func (pr *Probe) Fillable(occ, fill *Plane, x, y int) int {
	if !occ.inRange(x, y) {
		return NoCell
	}
	pr.mark(x, y)
	return Fillable(occ, fill, x, y)
}

// MarkRow records a word-granular examination of row y
func (pr *Probe) MarkRow(y int, touched uint64) {
	pr.Count++
	if pr.Tested != nil {
		pr.Tested.OrRow(y, touched)
	}
}
