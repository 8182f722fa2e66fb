// Package pagination computes page slices and navigation affordances over a
// full, already-ordered list.
package pagination

// Page describes one page over a list of Total items. Start and End are
// clamped to the list bounds, so slicing [Start:End] is always safe; an
// out-of-range index yields an empty window rather than an error.
type Page struct {
	Index      int
	Start      int
	End        int
	Total      int
	TotalPages int
	HasPrev    bool
	HasNext    bool
}

// Compute returns the page window for pageIndex over total items. pageSize
// must be positive; a negative pageIndex is treated as zero.
func Compute(total, pageIndex, pageSize int) Page {
	if pageIndex < 0 {
		pageIndex = 0
	}

	start := pageIndex * pageSize
	end := start + pageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	totalPages := 0
	if total > 0 {
		totalPages = (total-1)/pageSize + 1
	}

	return Page{
		Index:      pageIndex,
		Start:      start,
		End:        end,
		Total:      total,
		TotalPages: totalPages,
		HasPrev:    pageIndex > 0,
		HasNext:    pageIndex*pageSize+pageSize < total,
	}
}

// Empty reports whether the page contains no items.
func (p Page) Empty() bool {
	return p.Start == p.End
}
