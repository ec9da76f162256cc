package util

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Page turns a 1-based page number and a page size into offset and limit.
// Pages below 1 mean the first page; sizes out of range mean the default.
func Page(page, size int) (offset, limit int) {
	if page < 1 {
		page = 1
	}
	if size <= 0 || size > MaxPageSize {
		size = DefaultPageSize
	}
	return (page - 1) * size, size
}

// Pages is the number of pages needed for total rows.
func Pages(total int64, size int) int {
	if total <= 0 || size <= 0 {
		return 1
	}
	return int((total + int64(size) - 1) / int64(size))
}
