package crawler

// PageRef identifies one listing page.
type PageRef struct {
	Year int
	Page int
}

// PageCursor is a pull iterator over listing pages. It starts at page 1 of
// the first year and moves either to the next page of the current year or
// to page 1 of the next year. It is exhausted once it moves past the last
// year.
//
//	cur := NewPageCursor(2020, 2021)
//	for ref, ok := cur.Next(); ok; ref, ok = cur.Next() {
//		if pageIsEmpty(ref) {
//			cur.EndYear()
//			continue
//		}
//		cur.Advance()
//	}
type PageCursor struct {
	year    int
	page    int
	endYear int
}

// NewPageCursor returns a cursor over the inclusive year range
// [startYear, endYear]. A cursor with startYear > endYear yields nothing.
func NewPageCursor(startYear, endYear int) *PageCursor {
	return &PageCursor{
		year:    startYear,
		page:    1,
		endYear: endYear,
	}
}

// Next returns the current position and whether it is valid.
// It does not move the cursor.
func (c *PageCursor) Next() (PageRef, bool) {
	if c.year > c.endYear {
		return PageRef{}, false
	}
	return PageRef{Year: c.year, Page: c.page}, true
}

// Advance moves to the next page of the current year.
func (c *PageCursor) Advance() {
	c.page++
}

// EndYear moves to page 1 of the next year.
func (c *PageCursor) EndYear() {
	c.year++
	c.page = 1
}
