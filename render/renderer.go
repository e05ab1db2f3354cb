package render

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"ecadmin/aggregation"
	"ecadmin/model"
	"ecadmin/table"
)

func newTabWriter(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

// Table は一覧の1ページをテキストの表として書き出します。
// An empty page prints a single "No records found." line under the header.
func Table(w io.Writer, title string, columns []table.Column, page table.Page[table.Row]) error {
	tw := newTabWriter(w)

	if title != "" {
		fmt.Fprintf(tw, "%s\n", title)
	}
	headers := make([]string, 0, len(columns))
	for _, c := range columns {
		headers = append(headers, c.Label())
	}
	fmt.Fprintln(tw, strings.Join(headers, "\t"))

	if len(page.Rows) == 0 {
		fmt.Fprintln(tw, "No records found.")
	}
	for _, row := range page.Rows {
		cells := make([]string, 0, len(columns))
		for _, c := range columns {
			v, ok := row[c.Field]
			if !ok || v == nil {
				cells = append(cells, "")
				continue
			}
			cells = append(cells, fmt.Sprint(v))
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}

	if page.PageCount > 0 {
		fmt.Fprintf(tw, "Page %d of %d (%d records)\n", page.Page+1, page.PageCount, page.Total)
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("failed to render table %q: %w", title, err)
	}
	return nil
}

// Series は売上系列を期間・売上・件数・累計の表で書き出します。
func Series(w io.Writer, series model.SalesSeries) error {
	tw := newTabWriter(w)
	fmt.Fprintf(tw, "Sales (%s)\n", series.Period)
	fmt.Fprintln(tw, "Period\tSales\tOrders\tCumulative")
	for _, b := range series.Buckets {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n",
			b.Label, aggregation.FormatUSD(b.TotalSales), b.OrderCount, aggregation.FormatUSD(b.Cumulative))
	}
	fmt.Fprintf(tw, "Total\t%s\t\t\n", aggregation.FormatUSD(series.Total()))
	if series.Skipped > 0 {
		fmt.Fprintf(tw, "(%d orders skipped: unreadable date)\n", series.Skipped)
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("failed to render sales series: %w", err)
	}
	return nil
}

// KPIs はダッシュボードの指標カードを書き出します。
func KPIs(w io.Writer, k model.DashboardKPIs) error {
	tw := newTabWriter(w)
	cards := [][2]string{
		{"Total Revenue", k.TotalRevenue},
		{"Total Products", k.TotalProducts},
		{"Average Order Value", k.AverageOrder},
		{"Conversion Rate", k.Conversion},
		{"Cart Abandonment", k.CartAbandonment},
		{"Total Orders", k.TotalOrders},
		{"New Customers", k.NewCustomers},
		{"Returning Customers", k.ReturningCustomers},
	}
	for _, c := range cards {
		fmt.Fprintf(tw, "%s\t%s\n", c[0], c[1])
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("failed to render KPIs: %w", err)
	}
	return nil
}
