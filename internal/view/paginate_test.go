package view

import "testing"

func TestPaginateConcatenationReproducesRows(t *testing.T) {
	for _, n := range []int{0, 1, 9, 10, 11, 25, 60, 101} {
		rows := namedRows(n)
		for _, size := range PageSizes {
			first := Paginate(rows, size, 1)
			var all []Row
			for p := 1; p <= first.PageCount; p++ {
				page := Paginate(rows, size, p)
				if page.Page != p {
					t.Fatalf("n=%d size=%d: expected page %d, got %d", n, size, p, page.Page)
				}
				all = append(all, page.Rows...)
			}
			if len(all) != n {
				t.Fatalf("n=%d size=%d: expected %d rows, got %d", n, size, n, len(all))
			}
			for i := range all {
				if Raw(all[i]["No."]) != Raw(rows[i]["No."]) {
					t.Fatalf("n=%d size=%d: row %d out of order", n, size, i)
				}
			}
			if n <= size && first.PageCount != 1 {
				t.Fatalf("n=%d size=%d: expected a single page, got %d", n, size, first.PageCount)
			}
		}
	}
}

func TestPaginateClampsPage(t *testing.T) {
	rows := namedRows(60)
	page := Paginate(rows, 25, 10)
	if page.Page != 3 || page.PageCount != 3 || len(page.Rows) != 10 || page.Total != 60 {
		t.Fatalf("expected page 3 of 3 with 10 rows, got %d of %d with %d", page.Page, page.PageCount, len(page.Rows))
	}
	for _, p := range []int{0, -4} {
		if got := Paginate(rows, 25, p); got.Page != 1 || len(got.Rows) != 25 {
			t.Fatalf("page %d: expected first page, got %d", p, got.Page)
		}
	}
}

func TestPaginateEmptyAndDefaults(t *testing.T) {
	page := Paginate(nil, 25, 4)
	if page.Page != 1 || page.PageCount != 1 || len(page.Rows) != 0 {
		t.Fatalf("expected page 1 of 1 with no rows, got %+v", page)
	}
	if got := Paginate(namedRows(30), 0, 1); len(got.Rows) != DefaultPageSize {
		t.Fatalf("expected default page size, got %d rows", len(got.Rows))
	}
}
