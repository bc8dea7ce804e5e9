package buffer

// Pos points into the document by (row, col) in runes.
type Pos struct {
	Row int
	Col int
}

// Range is a half-open span in document coordinates: [Start, End).
type Range struct {
	Start Pos
	End   Pos
}

// Less reports whether p comes before q in document order.
func (p Pos) Less(q Pos) bool {
	if p.Row != q.Row {
		return p.Row < q.Row
	}
	return p.Col < q.Col
}

// Normalize returns r with Start <= End.
func (r Range) Normalize() Range {
	if r.End.Less(r.Start) {
		return Range{Start: r.End, End: r.Start}
	}
	return r
}

func (r Range) IsEmpty() bool { return r.Start == r.End }

func clampInt(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
