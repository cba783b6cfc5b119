// Package damage accumulates the bounding rectangle of framebuffer cells
// changed since the last flush.
//
// A cell is one column of one page. The tracker keeps a single rectangle:
// merging is O(1) and may over-cover scattered edits.
package damage

import "oled/framebuffer"

// Region is a rectangle of cells. The zero value is empty.
type Region struct {
	Column int
	Page   int
	Width  int
	Pages  int
}

// Empty reports whether the region covers no cells.
func (r Region) Empty() bool { return r.Width == 0 || r.Pages == 0 }

// Cells returns the number of cells covered.
func (r Region) Cells() int { return r.Width * r.Pages }

// EndColumn is the last covered column (inclusive).
func (r Region) EndColumn() int { return r.Column + r.Width - 1 }

// EndPage is the last covered page (inclusive).
func (r Region) EndPage() int { return r.Page + r.Pages - 1 }

// Tracker merges marked cells into one bounding rectangle, clamped to a
// fixed grid of columns x pages.
type Tracker struct {
	columns int
	pages   int
	r       Region
}

// NewTracker returns an empty tracker for a grid of columns x pages cells.
func NewTracker(columns, pages int) *Tracker {
	return &Tracker{columns: columns, pages: pages}
}

// Mark merges the cell holding pixel (x, y). Coordinates outside the grid
// are clamped to its edge.
func (t *Tracker) Mark(x, y int) {
	t.markCell(clamp(x, t.columns), clamp(framebuffer.PageOf(max(y, 0)), t.pages))
}

// MarkRange merges the cells of the pixel rectangle with corners (x0, y0)
// and (x1, y1). Marking the corners is enough for a bounding box.
func (t *Tracker) MarkRange(x0, y0, x1, y1 int) {
	t.Mark(x0, y0)
	t.Mark(x1, y1)
}

// MarkAll covers the whole grid.
func (t *Tracker) MarkAll() {
	t.r = Region{Width: t.columns, Pages: t.pages}
}

// Merge unions r into the tracked rectangle.
func (t *Tracker) Merge(r Region) {
	if r.Empty() {
		return
	}
	t.markCell(clamp(r.Column, t.columns), clamp(r.Page, t.pages))
	t.markCell(clamp(r.EndColumn(), t.columns), clamp(r.EndPage(), t.pages))
}

// Take returns the tracked rectangle and resets the tracker to empty.
func (t *Tracker) Take() Region {
	r := t.r
	t.r = Region{}
	return r
}

func (t *Tracker) markCell(col, page int) {
	if t.columns == 0 || t.pages == 0 {
		return
	}
	r := &t.r
	if r.Empty() {
		*r = Region{Column: col, Page: page, Width: 1, Pages: 1}
		return
	}

	if col < r.Column {
		r.Width += r.Column - col
		r.Column = col
	} else if col > r.EndColumn() {
		r.Width = col - r.Column + 1
	}

	if page < r.Page {
		r.Pages += r.Page - page
		r.Page = page
	} else if page > r.EndPage() {
		r.Pages = page - r.Page + 1
	}
}

func clamp(v, n int) int {
	if v < 0 {
		return 0
	}
	if v >= n {
		return n - 1
	}
	return v
}
