package aggregation

import (
	"ecadmin/model"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// KPI の表示ロケール。金額は米ドル表記です。
var kpiPrinter = message.NewPrinter(language.AmericanEnglish)

// SummarizeMetrics はダッシュボードのサマリーから表示用の指標を導出します。
// Missing (zero) values render as "$0.00" and "0.00%", like the dashboard cards.
func SummarizeMetrics(s model.MetricsSummary) model.DashboardKPIs {
	revenue := decimal.NewFromFloat(s.TotalRevenue).Round(2)
	aov := decimal.NewFromFloat(s.AverageOrderValue).Round(2)
	conversion := decimal.NewFromFloat(s.ConversionRate).Round(2)
	abandonment := decimal.NewFromFloat(s.CartAbandonmentRate).Round(2)

	return model.DashboardKPIs{
		Revenue:            revenue,
		AverageOrderValue:  aov,
		ConversionRate:     conversion,
		AbandonmentRate:    abandonment,
		TotalRevenue:       FormatUSD(revenue),
		TotalProducts:      humanize.Comma(int64(s.TotalProducts)),
		AverageOrder:       FormatUSD(aov),
		Conversion:         FormatPercent(conversion),
		CartAbandonment:    FormatPercent(abandonment),
		TotalOrders:        humanize.Comma(int64(s.TotalOrders)),
		NewCustomers:       humanize.Comma(int64(s.NewCustomers)),
		ReturningCustomers: humanize.Comma(int64(s.ReturningCustomers)),
	}
}

// AverageOrderValue は売上系列から客単価を計算します。注文がなければ 0 です。
func AverageOrderValue(series model.SalesSeries) decimal.Decimal {
	count := 0
	for _, b := range series.Buckets {
		count += b.OrderCount
	}
	if count == 0 {
		return decimal.Zero
	}
	return series.Total().Div(decimal.NewFromInt(int64(count))).Round(2)
}

func FormatUSD(d decimal.Decimal) string {
	f, _ := d.Round(2).Float64()
	return kpiPrinter.Sprintf("$%.2f", f)
}

func FormatPercent(d decimal.Decimal) string {
	f, _ := d.Round(2).Float64()
	return kpiPrinter.Sprintf("%.2f%%", f)
}
