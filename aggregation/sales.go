package aggregation

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"ecadmin/model"

	"github.com/shopspring/decimal"
)

// 受注日時として受け付けるレイアウト。ゾーンなしのものは Location で解釈します。
var orderDateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

type options struct {
	weekStart time.Weekday
	location  *time.Location
	logger    *slog.Logger
}

type Option func(*options)

// WithWeekStart は週の開始曜日を指定します（既定は月曜）。
func WithWeekStart(d time.Weekday) Option {
	return func(o *options) { o.weekStart = d }
}

// WithLocation sets the zone used to cut calendar days.
func WithLocation(loc *time.Location) Option {
	return func(o *options) {
		if loc != nil {
			o.location = loc
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

func newOptions(opts []Option) options {
	o := options{
		weekStart: time.Monday,
		location:  time.UTC,
		logger:    slog.New(slog.DiscardHandler),
	}
	for _, fn := range opts {
		fn(&o)
	}
	return o
}

// ParseOrderDate は受注日時を解釈します。
func ParseOrderDate(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty order date")
	}
	if loc == nil {
		loc = time.UTC
	}
	for _, layout := range orderDateLayouts {
		if layout == time.RFC3339Nano {
			if t, err := time.Parse(layout, s); err == nil {
				return t.In(loc), nil
			}
			continue
		}
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable order date %q", s)
}

type bucketAcc struct {
	start time.Time
	total decimal.Decimal
	count int
}

// AggregateSales は注文を期間ごとのバケットに集計し、時系列順に並べて返します。
// Orders with an unreadable date are left out and counted in Skipped; an invalid
// amount contributes zero. An unknown period is aggregated monthly and the series
// reports Monthly.
func AggregateSales(orders []model.OrderRecord, period model.Period, opts ...Option) model.SalesSeries {
	o := newOptions(opts)
	switch period {
	case model.Daily, model.Weekly, model.Monthly:
	default:
		o.logger.Warn("unknown sales period, using monthly", slog.String("period", string(period)))
		period = model.Monthly
	}
	return aggregate(orders, period, o, nil)
}

// SalesReport は from〜to（両端含む、日単位）の日別売上と件数を返します。
func SalesReport(orders []model.OrderRecord, from, to time.Time, opts ...Option) model.SalesSeries {
	o := newOptions(opts)
	first := startOfDay(from.In(o.location))
	last := startOfDay(to.In(o.location))
	return aggregate(orders, model.Daily, o, func(t time.Time) bool {
		day := startOfDay(t)
		return !day.Before(first) && !day.After(last)
	})
}

func aggregate(orders []model.OrderRecord, period model.Period, o options, include func(time.Time) bool) model.SalesSeries {
	series := model.SalesSeries{Period: period, Buckets: []model.SalesBucket{}}
	if len(orders) == 0 {
		return series
	}

	salesMap := make(map[string]*bucketAcc)
	for _, order := range orders {
		date, err := ParseOrderDate(order.OrderDate, o.location)
		if err != nil {
			series.Skipped++
			continue
		}
		if include != nil && !include(date) {
			continue
		}

		start := bucketStart(date, period, o.weekStart)
		key := bucketKey(start, period)
		acc, ok := salesMap[key]
		if !ok {
			acc = &bucketAcc{start: start, total: decimal.Zero}
			salesMap[key] = acc
		}
		acc.total = acc.total.Add(order.Amount())
		acc.count++
	}

	if series.Skipped > 0 {
		o.logger.Warn("orders skipped in sales aggregation",
			slog.Int("skipped", series.Skipped),
			slog.String("period", string(period)))
	}

	keys := make([]string, 0, len(salesMap))
	for k := range salesMap {
		keys = append(keys, k)
	}
	// キー文字列ではなく期間の開始日時で並べる
	sort.Slice(keys, func(i, j int) bool {
		return salesMap[keys[i]].start.Before(salesMap[keys[j]].start)
	})

	running := decimal.Zero
	for _, k := range keys {
		acc := salesMap[k]
		running = running.Add(acc.total)
		series.Buckets = append(series.Buckets, model.SalesBucket{
			Key:        k,
			TotalSales: acc.total,
			OrderCount: acc.count,
			Cumulative: running,
		})
	}

	// 並べ替えの後で表示用ラベルに置き換える
	for i := range series.Buckets {
		series.Buckets[i].Label = bucketLabel(salesMap[series.Buckets[i].Key].start, period)
	}
	return series
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func bucketStart(t time.Time, period model.Period, weekStart time.Weekday) time.Time {
	day := startOfDay(t)
	switch period {
	case model.Daily:
		return day
	case model.Weekly:
		diff := (int(day.Weekday()) - int(weekStart) + 7) % 7
		return day.AddDate(0, 0, -diff)
	default:
		return time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, day.Location())
	}
}

func bucketKey(start time.Time, period model.Period) string {
	if period == model.Daily || period == model.Weekly {
		return start.Format("2006-01-02")
	}
	return start.Format("2006-01")
}

func bucketLabel(start time.Time, period model.Period) string {
	switch period {
	case model.Daily:
		return start.Format("Jan 02")
	case model.Weekly:
		return "Week of " + start.Format("Jan 02")
	default:
		return start.Format("Jan 2006")
	}
}
