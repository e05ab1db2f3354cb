package model

import (
	"strings"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	StatusPending    OrderStatus = "Pending"
	StatusProcessing OrderStatus = "Processing"
	StatusShipped    OrderStatus = "Shipped"
	StatusDelivered  OrderStatus = "Delivered"
	StatusCancelled  OrderStatus = "Cancelled"
)

var orderStatuses = []OrderStatus{
	StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled,
}

// OrderStatuses returns the statuses in workflow order.
func OrderStatuses() []OrderStatus {
	out := make([]OrderStatus, len(orderStatuses))
	copy(out, orderStatuses)
	return out
}

// ParseOrderStatus は大文字小文字を無視して解釈します。空・不明な値は Pending です。
func ParseOrderStatus(s string) OrderStatus {
	s = strings.TrimSpace(s)
	for _, st := range orderStatuses {
		if strings.EqualFold(s, string(st)) {
			return st
		}
	}
	return StatusPending
}

func (s OrderStatus) Valid() bool {
	for _, st := range orderStatuses {
		if s == st {
			return true
		}
	}
	return false
}

// OrderItem は注文明細1行です。
type OrderItem struct {
	ProductName string          `json:"productName"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
}

// OrderRecord は注文一覧の1レコードを表します。
// OrderDate is kept as received from the API; the sales aggregator parses it and
// reports the ones it cannot read. An invalid TotalAmount contributes 0 to sums.
type OrderRecord struct {
	Ref
	UserEmail   string              `db:"user_email" json:"userEmail"`
	TotalAmount decimal.NullDecimal `db:"total_amount" json:"totalAmount"`
	OrderDate   string              `db:"order_date" json:"orderDate"`
	Status      OrderStatus         `db:"status" json:"status"`
	OrderItems  []OrderItem         `db:"-" json:"orderItems"`
}

// Amount returns TotalAmount, or zero when it is missing.
func (o OrderRecord) Amount() decimal.Decimal {
	if !o.TotalAmount.Valid {
		return decimal.Zero
	}
	return o.TotalAmount.Decimal
}

// ProductNames は明細の商品名をカンマ区切りで返します。
func (o OrderRecord) ProductNames() string {
	if len(o.OrderItems) == 0 {
		return "N/A"
	}
	names := make([]string, 0, len(o.OrderItems))
	for _, it := range o.OrderItems {
		name := it.ProductName
		if name == "" {
			name = "N/A"
		}
		names = append(names, name)
	}
	return strings.Join(names, ", ")
}
