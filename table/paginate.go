package table

import "slices"

// DefaultPageSize は一覧の初期ページサイズです。
const DefaultPageSize = 5

// PageSizeOptions are the page sizes offered by the list screens.
var PageSizeOptions = []int{5, 10}

// NormalizePageSize は PageSizeOptions にないサイズを DefaultPageSize にします。
func NormalizePageSize(size int) int {
	if slices.Contains(PageSizeOptions, size) {
		return size
	}
	return DefaultPageSize
}

// Page は1ページ分の切り出し結果です。Page は0始まりです。
type Page[T any] struct {
	Rows      []T
	Page      int
	PageSize  int
	PageCount int
	Total     int
}

// Paginate は rows から page 番目のページを切り出します。
// A page past the end is clamped to the last page and a negative page to 0.
// A pageSize below 1 falls back to DefaultPageSize.
func Paginate[T any](rows []T, page, pageSize int) Page[T] {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	total := len(rows)
	count := (total + pageSize - 1) / pageSize

	page = clampPage(page, count)
	start := page * pageSize
	end := min(start+pageSize, total)

	out := make([]T, 0, end-start)
	out = append(out, rows[start:end]...)
	return Page[T]{
		Rows:      out,
		Page:      page,
		PageSize:  pageSize,
		PageCount: count,
		Total:     total,
	}
}

func clampPage(page, count int) int {
	if count == 0 || page < 0 {
		return 0
	}
	if page >= count {
		return count - 1
	}
	return page
}
