package loader

import (
	"context"

	"ecadmin/mappers"
	"ecadmin/table"
)

// SearchOrders は入力が落ち着いてから検索文字列を反映し、注文を取り直して tbl を更新します。
// The channel receives the refetch result. A call replaced by a later one before its
// quiet period ends never sends.
func (ld *Loader) SearchOrders(ctx context.Context, d *table.Debouncer, tbl *table.Table[table.Row], text string) <-chan error {
	done := make(chan error, 1)
	table.SearchDebounced(d, tbl, text, func() {
		err := ld.LoadOrders(ctx)
		if err == nil {
			tbl.SetRows(mappers.OrderRows(ld.store.Orders.Numbered()))
		}
		done <- err
	})
	return done
}
