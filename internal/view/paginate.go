package view

// DefaultPageSize is used when no positive page size is given.
const DefaultPageSize = 25

// PageSizes are the presets offered to users.
var PageSizes = []int{10, 25, 50, 100}

// Page is one slice of the derived row set.
type Page struct {
	Rows      []Row
	Page      int // effective, 1-based
	PageCount int
	Total     int
}

// PageCount is max(1, ceil(n/size)).
func PageCount(n, size int) int {
	if size <= 0 {
		size = DefaultPageSize
	}
	count := (n + size - 1) / size
	if count < 1 {
		return 1
	}
	return count
}

// ClampPage bounds page to [1, pageCount].
func ClampPage(page, pageCount int) int {
	if page > pageCount {
		page = pageCount
	}
	if page < 1 {
		page = 1
	}
	return page
}

// Paginate returns the rows of page after clamping it to the available range.
func Paginate(rows []Row, size, page int) Page {
	if size <= 0 {
		size = DefaultPageSize
	}
	count := PageCount(len(rows), size)
	page = ClampPage(page, count)

	start := (page - 1) * size
	end := min(start+size, len(rows))
	start = min(start, end)
	return Page{
		Rows:      rows[start:end],
		Page:      page,
		PageCount: count,
		Total:     len(rows),
	}
}
