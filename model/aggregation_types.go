package model

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Period は売上集計の期間単位です。
type Period string

const (
	Daily   Period = "daily"
	Weekly  Period = "weekly"
	Monthly Period = "monthly"
)

func ParsePeriod(s string) (Period, error) {
	switch Period(strings.ToLower(strings.TrimSpace(s))) {
	case Daily:
		return Daily, nil
	case Weekly:
		return Weekly, nil
	case Monthly, "":
		return Monthly, nil
	}
	return "", fmt.Errorf("unknown period %q", s)
}

// SalesBucket は期間ごとの売上集計結果です（保存はしません）。
type SalesBucket struct {
	Key        string          `json:"key"`
	Label      string          `json:"name"`
	TotalSales decimal.Decimal `json:"sales"`
	OrderCount int             `json:"orderCount"`
	Cumulative decimal.Decimal `json:"cumulative"`
}

// SalesSeries はチャート用の時系列です。
// Skipped counts orders left out because their date could not be parsed.
type SalesSeries struct {
	Period  Period        `json:"period"`
	Buckets []SalesBucket `json:"buckets"`
	Skipped int           `json:"skipped"`
}

// Total は全バケットの売上合計です。
func (s SalesSeries) Total() decimal.Decimal {
	total := decimal.Zero
	for _, b := range s.Buckets {
		total = total.Add(b.TotalSales)
	}
	return total
}

// MetricsSummary は /Dashboard/summary のペイロードです。
type MetricsSummary struct {
	TotalRevenue        float64 `json:"totalRevenue"`
	TotalProducts       int     `json:"totalProducts"`
	AverageOrderValue   float64 `json:"averageOrderValue"`
	ConversionRate      float64 `json:"conversionRate"`
	CartAbandonmentRate float64 `json:"cartAbandonmentRate"`
	TotalOrders         int     `json:"totalOrders"`
	NewCustomers        int     `json:"newCustomers"`
	ReturningCustomers  int     `json:"returningCustomers"`
}

// DashboardKPIs は表示用に整形済みの指標です。
type DashboardKPIs struct {
	Revenue            decimal.Decimal `json:"revenue"`
	AverageOrderValue  decimal.Decimal `json:"averageOrderValue"`
	ConversionRate     decimal.Decimal `json:"conversionRate"`
	AbandonmentRate    decimal.Decimal `json:"abandonmentRate"`
	TotalRevenue       string          `json:"totalRevenue"`
	TotalProducts      string          `json:"totalProducts"`
	AverageOrder       string          `json:"averageOrder"`
	Conversion         string          `json:"conversion"`
	CartAbandonment    string          `json:"cartAbandonment"`
	TotalOrders        string          `json:"totalOrders"`
	NewCustomers       string          `json:"newCustomers"`
	ReturningCustomers string          `json:"returningCustomers"`
}
