package parsers

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"strings"

	"ecadmin/model"

	"github.com/shopspring/decimal"
)

// ParseOrdersCSV は注文一覧のエクスポートCSVを読み込みます。
// Required headers are order_id, order_date and total_amount; user_email and status
// are optional. A row without an order id is skipped. An unreadable amount is kept
// as missing so that it contributes 0 to sales totals.
func ParseOrdersCSV(r io.Reader, enc Encoding) ([]model.OrderRecord, error) {
	reader := csv.NewReader(decode(r, enc))
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("CSV file is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	colIndex, err := getColIndex(header, []string{"order_id", "order_date", "total_amount"})
	if err != nil {
		return nil, err
	}

	var orders []model.OrderRecord
	line := 1
	for {
		line++
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Printf("WARN: orders CSV line %d unreadable (skipped): %v", line, err)
			continue
		}

		get := func(key string) string {
			if idx, ok := colIndex[key]; ok && idx < len(rec) {
				return strings.TrimSpace(rec[idx])
			}
			return ""
		}

		orderID := get("order_id")
		if orderID == "" {
			log.Printf("WARN: orders CSV line %d has no order_id (skipped)", line)
			continue
		}

		o := model.OrderRecord{
			Ref:       model.Ref{ID: len(orders) + 1, RealID: orderID},
			UserEmail: get("user_email"),
			OrderDate: get("order_date"),
			Status:    model.ParseOrderStatus(get("status")),
		}
		if raw := get("total_amount"); raw != "" {
			amount, err := decimal.NewFromString(strings.ReplaceAll(strings.TrimPrefix(raw, "$"), ",", ""))
			if err != nil {
				log.Printf("WARN: orders CSV line %d has invalid total_amount %q", line, raw)
			} else {
				o.TotalAmount = decimal.NewNullDecimal(amount)
			}
		}
		orders = append(orders, o)
	}
	return orders, nil
}
