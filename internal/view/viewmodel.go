package view

import "slices"

// View is the derived state the UI renders.
type View struct {
	Page
	Sort  SortSpec
	Query string
}

// ViewModel holds the fetched rows and the user's controls. Every read recomputes
// filter, sort and pagination from those; the rows themselves are never modified.
type ViewModel struct {
	rows     []Row
	query    string
	sort     SortSpec
	pageSize int
	page     int
	format   Formatter
}

// NewViewModel starts with no rows, the default sort and pageSize rows per page.
func NewViewModel(f Formatter, pageSize int) *ViewModel {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &ViewModel{
		sort:     DefaultSort,
		pageSize: pageSize,
		page:     1,
		format:   f,
	}
}

// SetRows replaces the row set and returns to page 1.
func (vm *ViewModel) SetRows(rows []Row) {
	vm.rows = slices.Clone(rows)
	vm.page = 1
}

// Rows returns the held row set as fetched.
func (vm *ViewModel) Rows() []Row {
	return slices.Clone(vm.rows)
}

// SetQuery changes the search text and returns to page 1.
func (vm *ViewModel) SetQuery(q string) {
	vm.query = q
	vm.page = 1
}

func (vm *ViewModel) Query() string { return vm.query }

// SetPageSize changes the page size and returns to page 1. Non-positive sizes fall back to
// DefaultPageSize.
func (vm *ViewModel) SetPageSize(n int) {
	if n <= 0 {
		n = DefaultPageSize
	}
	vm.pageSize = n
	vm.page = 1
}

func (vm *ViewModel) PageSize() int { return vm.pageSize }

// ToggleSort flips the direction when key is the current sort column and otherwise
// sorts ascending by key.
func (vm *ViewModel) ToggleSort(key string) {
	col := resolveColumn(key)
	if col.Key == resolveColumn(vm.sort.Key).Key {
		if vm.sort.Dir == Asc {
			vm.sort.Dir = Desc
		} else {
			vm.sort.Dir = Asc
		}
		vm.sort.Key = col.Key
		return
	}
	vm.sort = SortSpec{Key: col.Key, Dir: Asc}
}

// SetSort sets the sort column and direction directly.
func (vm *ViewModel) SetSort(spec SortSpec) {
	if spec.Dir != Desc {
		spec.Dir = Asc
	}
	spec.Key = resolveColumn(spec.Key).Key
	vm.sort = spec
}

func (vm *ViewModel) Sort() SortSpec { return vm.sort }

// SetPage moves to page, clamped to the current page count.
func (vm *ViewModel) SetPage(page int) {
	vm.page = ClampPage(page, PageCount(len(vm.filtered()), vm.pageSize))
}

func (vm *ViewModel) NextPage() { vm.SetPage(vm.currentPage() + 1) }

func (vm *ViewModel) PrevPage() { vm.SetPage(vm.currentPage() - 1) }

func (vm *ViewModel) currentPage() int {
	return ClampPage(vm.page, PageCount(len(vm.filtered()), vm.pageSize))
}

func (vm *ViewModel) filtered() []Row {
	return Filter(vm.rows, vm.query)
}

// Derived returns the full filtered and sorted set before pagination.
func (vm *ViewModel) Derived() []Row {
	return Sort(vm.filtered(), vm.sort.Key, vm.sort.Dir)
}

// Current derives the page to render.
func (vm *ViewModel) Current() View {
	return View{
		Page:  Paginate(vm.Derived(), vm.pageSize, vm.page),
		Sort:  vm.sort,
		Query: vm.query,
	}
}

// CSV exports the full filtered and sorted set, not just the current page.
func (vm *ViewModel) CSV() string {
	return vm.format.CSV(vm.Derived())
}

// Formatter returns the formatter cells are rendered with.
func (vm *ViewModel) Formatter() Formatter { return vm.format }
