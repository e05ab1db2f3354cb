package table

import (
	"errors"
	"fmt"
	"sync"
)

var ErrUnknownColumn = errors.New("unknown search column")

// Column は一覧の列定義です。
type Column struct {
	Field  string
	Header string
}

func (c Column) Label() string {
	if c.Header != "" {
		return c.Header
	}
	return c.Field
}

// Table は検索・ページ送りの状態を持つ一覧ビューです。
// Changing the search text or column always goes back to the first page.
type Table[T any] struct {
	mu           sync.Mutex
	title        string
	columns      []Column
	field        FieldFunc[T]
	rows         []T
	searchColumn string
	searchText   string
	page         int
	pageSize     int
}

// New は列定義と値の取り出し方から Table を作ります。検索列は先頭の列です。
func New[T any](title string, columns []Column, field FieldFunc[T]) *Table[T] {
	t := &Table[T]{
		title:    title,
		columns:  columns,
		field:    field,
		pageSize: DefaultPageSize,
	}
	if len(columns) > 0 {
		t.searchColumn = columns[0].Field
	}
	return t
}

// NewRows builds a Table over Row values.
func NewRows(title string, columns []Column) *Table[Row] {
	return New(title, columns, RowField)
}

func (t *Table[T]) Title() string { return t.title }

func (t *Table[T]) Columns() []Column {
	out := make([]Column, len(t.columns))
	copy(out, t.columns)
	return out
}

// SetRows replaces the data. The page is clamped when the view is built.
func (t *Table[T]) SetRows(rows []T) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.rows = rows
}

func (t *Table[T]) SetSearchText(text string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.searchText = text
	t.page = 0
}

func (t *Table[T]) SetSearchColumn(column string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	for _, c := range t.columns {
		if c.Field == column {
			t.searchColumn = column
			t.page = 0
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrUnknownColumn, column)
}

func (t *Table[T]) SetPage(page int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.page = max(page, 0)
}

func (t *Table[T]) SetPageSize(size int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.pageSize = NormalizePageSize(size)
}

func (t *Table[T]) SearchColumn() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.searchColumn
}

func (t *Table[T]) SearchText() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.searchText
}

func (t *Table[T]) Page() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.page
}

// View は現在の状態で絞り込み、ページを切り出して返します。
func (t *Table[T]) View() Page[T] {
	t.mu.Lock()
	defer t.mu.Unlock()

	filtered := Filter(t.rows, t.searchColumn, t.searchText, t.field)
	p := Paginate(filtered, t.page, t.pageSize)
	t.page = p.Page
	return p
}
