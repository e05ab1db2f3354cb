package loader

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"ecadmin/aggregation"
	"ecadmin/apiclient"
	"ecadmin/model"

	"golang.org/x/sync/errgroup"
)

// Dashboard はダッシュボード画面のデータです。
type Dashboard struct {
	Summary model.MetricsSummary
	KPIs    model.DashboardKPIs
	Series  model.SalesSeries
}

// LoadDashboard はサマリーと注文一覧を並行して読み込み、売上系列と指標を作ります。
// The orders end up in the store like LoadOrders.
func (ld *Loader) LoadDashboard(ctx context.Context, period model.Period) (Dashboard, error) {
	var summary model.MetricsSummary

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		res, err := ld.coord.Fetch(gctx, "dashboard", func(ctx context.Context) (apiclient.Result, error) {
			return ld.client.Get(ctx, apiclient.PathDashboard)
		})
		if err != nil {
			return fmt.Errorf("failed to load dashboard summary: %w", err)
		}
		return res.Decode(&summary)
	})
	g.Go(func() error { return ld.LoadOrders(gctx) })
	if err := g.Wait(); err != nil {
		return Dashboard{}, err
	}

	series := aggregation.AggregateSales(ld.store.Orders.All(), period, ld.aggOpts...)
	ld.logger.Info("dashboard loaded",
		slog.String("period", string(period)),
		slog.Int("buckets", len(series.Buckets)),
		slog.Int("skipped", series.Skipped))

	return Dashboard{
		Summary: summary,
		KPIs:    aggregation.SummarizeMetrics(summary),
		Series:  series,
	}, nil
}

// SalesReport は読み込み済みの注文から from〜to の日別売上を返します。
func (ld *Loader) SalesReport(from, to time.Time) model.SalesSeries {
	return aggregation.SalesReport(ld.store.Orders.All(), from, to, ld.aggOpts...)
}
