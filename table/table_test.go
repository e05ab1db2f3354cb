package table

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func productRows() []Row {
	return []Row{
		{"id": 1, "name": "Red Shirt", "price": "10.00"},
		{"id": 2, "name": "Blue Shirt", "price": "12.00"},
		{"id": 3, "name": "Red Hat", "price": "8.50"},
		{"id": 4, "name": nil, "price": "1.00"},
		{"id": 5, "price": "2.00"},
	}
}

func names(rows []Row) []any {
	out := make([]any, 0, len(rows))
	for _, r := range rows {
		out = append(out, r["name"])
	}
	return out
}

func TestFilter_RedScenario(t *testing.T) {
	got := FilterRows(productRows(), "name", "red")
	assert.Equal(t, []any{"Red Shirt", "Red Hat"}, names(got))
}

func TestFilter_EmptyTextIsIdentity(t *testing.T) {
	rows := productRows()
	assert.Equal(t, rows, FilterRows(rows, "name", ""))
	assert.Equal(t, rows, FilterRows(rows, "missing", ""))
}

func TestFilter_Idempotent(t *testing.T) {
	rows := productRows()
	for _, text := range []string{"red", "SHIRT", "x", "1"} {
		once := FilterRows(rows, "name", text)
		twice := FilterRows(once, "name", text)
		assert.Equal(t, once, twice, text)
	}
}

func TestFilter_MissingColumnExcluded(t *testing.T) {
	assert.Empty(t, FilterRows(productRows(), "sku", "a"))
}

func TestFilter_StringifiesValues(t *testing.T) {
	got := FilterRows(productRows(), "id", "3")
	require.Len(t, got, 1)
	assert.Equal(t, "Red Hat", got[0]["name"])
}

func TestFilter_UnicodeFolding(t *testing.T) {
	rows := []Row{{"name": "ÉCLAIR"}, {"name": "Crème Brûlée"}, {"name": "Tart"}}
	got := FilterRows(rows, "name", "éclair")
	require.Len(t, got, 1)
	assert.Equal(t, "ÉCLAIR", got[0]["name"])
	assert.Len(t, FilterRows(rows, "name", "BRÛLÉE"), 1)
}

type product struct {
	Name string
}

func TestFilter_TypedRows(t *testing.T) {
	field := func(p product, column string) (any, bool) {
		if column == "name" {
			return p.Name, true
		}
		return nil, false
	}
	rows := []product{{"Red Shirt"}, {"Blue Shirt"}, {"Red Hat"}}
	got := Filter(rows, "name", "RED", field)
	assert.Equal(t, []product{{"Red Shirt"}, {"Red Hat"}}, got)
}

func TestPaginate(t *testing.T) {
	rows := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}

	tests := []struct {
		name      string
		page      int
		size      int
		wantRows  []int
		wantPage  int
		wantCount int
	}{
		{"first", 0, 5, []int{1, 2, 3, 4, 5}, 0, 3},
		{"last partial", 2, 5, []int{11, 12}, 2, 3},
		{"clamped", 7, 5, []int{11, 12}, 2, 3},
		{"negative", -1, 5, []int{1, 2, 3, 4, 5}, 0, 3},
		{"default size", 1, 0, []int{6, 7, 8, 9, 10}, 1, 3},
		{"size ten", 1, 10, []int{11, 12}, 1, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Paginate(rows, tt.page, tt.size)
			assert.Equal(t, tt.wantRows, p.Rows)
			assert.Equal(t, tt.wantPage, p.Page)
			assert.Equal(t, tt.wantCount, p.PageCount)
			assert.Equal(t, 12, p.Total)
		})
	}
}

func TestPaginate_Empty(t *testing.T) {
	p := Paginate([]int{}, 3, 5)
	assert.Empty(t, p.Rows)
	assert.Equal(t, 0, p.Page)
	assert.Equal(t, 0, p.PageCount)
}

func TestTable_PageSizeOptions(t *testing.T) {
	rows := make([]Row, 12)
	for i := range rows {
		rows[i] = Row{"name": "Shirt"}
	}
	tbl := NewRows("Products", []Column{{Field: "name"}})
	tbl.SetRows(rows)

	tbl.SetPageSize(10)
	assert.Equal(t, 10, tbl.View().PageSize)

	for _, size := range []int{0, -1, 7, 100} {
		tbl.SetPageSize(size)
		assert.Equal(t, DefaultPageSize, tbl.View().PageSize, "size %d", size)
	}
}

func TestTable_DefaultSearchColumn(t *testing.T) {
	tbl := NewRows("Products", []Column{{Field: "name", Header: "Name"}, {Field: "price"}})
	assert.Equal(t, "name", tbl.SearchColumn())
	assert.Equal(t, "price", tbl.Columns()[1].Label())
}

func TestTable_SearchResetsPage(t *testing.T) {
	tbl := NewRows("Products", []Column{{Field: "name"}, {Field: "price"}})
	rows := make([]Row, 0, 20)
	for i := 0; i < 20; i++ {
		rows = append(rows, Row{"name": "Shirt", "price": i})
	}
	tbl.SetRows(rows)
	tbl.SetPage(3)
	require.Equal(t, 3, tbl.View().Page)

	tbl.SetSearchText("shirt")
	assert.Equal(t, 0, tbl.Page())

	tbl.SetPage(2)
	require.NoError(t, tbl.SetSearchColumn("price"))
	assert.Equal(t, 0, tbl.Page())
}

func TestTable_UnknownColumn(t *testing.T) {
	tbl := NewRows("Products", []Column{{Field: "name"}})
	err := tbl.SetSearchColumn("nope")
	assert.ErrorIs(t, err, ErrUnknownColumn)
	assert.Equal(t, "name", tbl.SearchColumn())
}

func TestTable_ClampsAfterShrink(t *testing.T) {
	tbl := NewRows("Orders", []Column{{Field: "id"}})
	rows := make([]Row, 0, 12)
	for i := 1; i <= 12; i++ {
		rows = append(rows, Row{"id": i})
	}
	tbl.SetRows(rows)
	tbl.SetPage(2)

	tbl.SetRows(rows[:6])
	v := tbl.View()
	assert.Equal(t, 1, v.Page)
	assert.Equal(t, []Row{{"id": 6}}, v.Rows)
}

func TestDebouncer_CoalescesCalls(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)
	var calls atomic.Int32

	for i := 0; i < 5; i++ {
		d.Do(func() { calls.Add(1) })
	}

	assert.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load())
}

func TestDebouncer_Stop(t *testing.T) {
	d := NewDebouncer(10 * time.Millisecond)
	var calls atomic.Int32
	d.Do(func() { calls.Add(1) })
	d.Stop()

	time.Sleep(40 * time.Millisecond)
	assert.Equal(t, int32(0), calls.Load())
}

func TestSearchDebounced(t *testing.T) {
	tbl := NewRows("Products", []Column{{Field: "name"}})
	tbl.SetRows(productRows())
	tbl.SetPage(1)
	d := NewDebouncer(10 * time.Millisecond)
	var refetched atomic.Bool

	SearchDebounced(d, tbl, "r", nil)
	SearchDebounced(d, tbl, "red", func() { refetched.Store(true) })

	require.Eventually(t, refetched.Load, time.Second, 5*time.Millisecond)
	assert.Equal(t, "red", tbl.SearchText())
	assert.Equal(t, 0, tbl.Page())
	assert.Equal(t, []any{"Red Shirt", "Red Hat"}, names(tbl.View().Rows))
}
