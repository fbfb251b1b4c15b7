package utils

const (
	defaultPageSize = 12
	maxPageSize     = 100
)

// NormalizePage clamps user-supplied paging values to sane bounds and
// returns the page, limit and skip to hand to the store.
func NormalizePage(page, limit int) (int, int64, int64) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	skip := int64(page-1) * int64(limit)
	return page, int64(limit), skip
}

// TotalPages returns the page count for a result set, never less than 1.
func TotalPages(total, limit int64) int64 {
	if limit < 1 {
		return 1
	}
	pages := (total + limit - 1) / limit
	if pages < 1 {
		pages = 1
	}
	return pages
}
