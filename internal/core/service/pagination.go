package service

import "math"

const (
	defaultPageSize = 10
	maxPageSize     = 100
	// keeps (page-1)*limit inside a 32-bit int
	maxPage = math.MaxInt32 / maxPageSize
)

// normalizePage clamps page to [1, maxPage] and limit to [0, maxPageSize].
// A negative limit falls back to the default; zero is kept (count only).
func normalizePage(page, limit int) (int, int) {
	switch {
	case page < 1:
		page = 1
	case page > maxPage:
		page = maxPage
	}
	switch {
	case limit < 0:
		limit = defaultPageSize
	case limit > maxPageSize:
		limit = maxPageSize
	}
	return page, limit
}

func totalPages(total int64, limit int) int {
	if limit <= 0 || total <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}
