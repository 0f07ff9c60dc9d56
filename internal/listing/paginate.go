package listing

const (
	// MaxVisiblePages bounds the page-number window.
	MaxVisiblePages = 5
	// DefaultPageSize is used when a table does not choose one.
	DefaultPageSize = 10
)

// PageSizeOptions are the page sizes offered by the tables.
var PageSizeOptions = []int{5, 10, 25, 50}

// Window is the pagination metadata for one recomputation.
type Window struct {
	CurrentPage      int   `json:"current_page"`
	TotalPages       int   `json:"total_pages"`
	PageSize         int   `json:"page_size"`
	TotalItems       int   `json:"total_items"`
	StartIndex       int   `json:"start_index"`
	EndIndex         int   `json:"end_index"`
	Pages            []int `json:"pages"`
	LeadingEllipsis  bool  `json:"leading_ellipsis"`
	TrailingEllipsis bool  `json:"trailing_ellipsis"`
	HasPrev          bool  `json:"has_prev"`
	HasNext          bool  `json:"has_next"`
	ShowControls     bool  `json:"show_controls"`
}

// Paginate computes the slice bounds and visible page numbers. currentPage is
// clamped to [1, TotalPages]; TotalPages is at least 1. A non-positive
// pageSize falls back to DefaultPageSize.
func Paginate(totalItems, pageSize, currentPage int) Window {
	if totalItems < 0 {
		totalItems = 0
	}
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	totalPages := (totalItems + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}
	current := clamp(currentPage, 1, totalPages)

	start := (current - 1) * pageSize
	end := start + pageSize
	if end > totalItems {
		end = totalItems
	}

	pages := visiblePages(current, totalPages)

	return Window{
		CurrentPage:      current,
		TotalPages:       totalPages,
		PageSize:         pageSize,
		TotalItems:       totalItems,
		StartIndex:       start,
		EndIndex:         end,
		Pages:            pages,
		LeadingEllipsis:  pages[0] != 1,
		TrailingEllipsis: pages[len(pages)-1] != totalPages,
		HasPrev:          current > 1,
		HasNext:          current < totalPages,
		ShowControls:     totalItems > 0,
	}
}

// From is the 1-based position of the first row shown, 0 when empty.
func (w Window) From() int {
	if w.EndIndex == 0 {
		return 0
	}
	return w.StartIndex + 1
}

// To is the 1-based position of the last row shown.
func (w Window) To() int {
	return w.EndIndex
}

func visiblePages(current, totalPages int) []int {
	if totalPages <= MaxVisiblePages {
		return pageRange(1, totalPages)
	}
	half := MaxVisiblePages / 2
	start := max(current-half, 1)
	end := min(start+MaxVisiblePages-1, totalPages)
	if end-start+1 < MaxVisiblePages {
		start = max(end-MaxVisiblePages+1, 1)
	}
	return pageRange(start, end)
}

func pageRange(start, end int) []int {
	pages := make([]int, 0, end-start+1)
	for p := start; p <= end; p++ {
		pages = append(pages, p)
	}
	return pages
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
