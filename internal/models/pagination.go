package models

// Pagination describes the page slice returned by a list endpoint, plus a
// bounded window of page numbers around the current page for rendering
// pager controls.
type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"pageSize"`
	TotalItems int   `json:"totalItems"`
	TotalPages int   `json:"totalPages"`
	Pages      []int `json:"pages"`
}

// pageWindowSize is the maximum number of page-number controls shown at once.
const pageWindowSize = 5

// NewPagination builds a Pagination block for the given page, page size and
// total item count. Page numbering is 1-based.
func NewPagination(page, pageSize, totalItems int) Pagination {
	totalPages := totalItems / pageSize
	if totalItems%pageSize != 0 {
		totalPages++
	}
	if totalPages == 0 {
		totalPages = 1
	}

	return Pagination{
		Page:       page,
		PageSize:   pageSize,
		TotalItems: totalItems,
		TotalPages: totalPages,
		Pages:      pageWindow(page, totalPages),
	}
}

// pageWindow returns up to pageWindowSize consecutive page numbers centered
// on current, clamped to [1, totalPages].
func pageWindow(current, totalPages int) []int {
	start := current - pageWindowSize/2
	if start < 1 {
		start = 1
	}
	end := start + pageWindowSize - 1
	if end > totalPages {
		end = totalPages
		start = end - pageWindowSize + 1
		if start < 1 {
			start = 1
		}
	}

	pages := make([]int, 0, end-start+1)
	for p := start; p <= end; p++ {
		pages = append(pages, p)
	}
	return pages
}
