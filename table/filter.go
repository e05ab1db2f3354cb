package table

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
)

// Row は一覧1行分の列名→値のマップです。
type Row map[string]any

// FieldFunc は行から列の値を取り出します。列がなければ ok=false を返します。
type FieldFunc[T any] func(row T, column string) (value any, ok bool)

// RowField is the FieldFunc for Row.
func RowField(row Row, column string) (any, bool) {
	v, ok := row[column]
	return v, ok
}

// Filter は column の値を文字列化し、text を部分一致（大文字小文字無視）で含む行だけを返します。
// An empty text returns rows unchanged. Rows without the column, or with a nil value,
// never match. The relative order of rows is kept.
func Filter[T any](rows []T, column, text string, field FieldFunc[T]) []T {
	if text == "" {
		return rows
	}
	fold := cases.Fold()
	needle := fold.String(text)

	out := make([]T, 0, len(rows))
	for _, row := range rows {
		v, ok := field(row, column)
		if !ok || v == nil {
			continue
		}
		if strings.Contains(fold.String(stringify(v)), needle) {
			out = append(out, row)
		}
	}
	return out
}

// FilterRows is Filter specialised to Row.
func FilterRows(rows []Row, column, text string) []Row {
	return Filter(rows, column, text, RowField)
}

func stringify(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(v)
	}
}
