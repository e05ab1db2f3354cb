package mappers

import (
	"strings"

	"ecadmin/model"
	"ecadmin/table"

	"github.com/shopspring/decimal"
)

// 一覧画面の行データへの変換です。
// Display ids are renumbered 1..n in the given order so that a page never shows the
// gaps left by local deletes. Real ids stay out of the rows.

const notAvailable = "N/A"

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return notAvailable
	}
	return s
}

// amount は金額を小数点以下2桁の文字列にします。
func amount(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// OrderRows は注文一覧の行です。金額が不正な注文は 0.00 と表示します。
func OrderRows(orders []model.OrderRecord) []table.Row {
	rows := make([]table.Row, 0, len(orders))
	for i, o := range orders {
		status := o.Status
		if !status.Valid() {
			status = model.StatusPending
		}
		rows = append(rows, table.Row{
			"id":           i + 1,
			"userEmail":    orNA(o.UserEmail),
			"totalAmount":  amount(o.Amount()),
			"orderDate":    orNA(o.OrderDate),
			"status":       string(status),
			"productNames": o.ProductNames(),
		})
	}
	return rows
}

// ProductRows は商品一覧の行です。
func ProductRows(products []model.ProductRecord) []table.Row {
	rows := make([]table.Row, 0, len(products))
	for i, p := range products {
		category := p.CategoryName
		if category == "" {
			category = "None"
		}
		rows = append(rows, table.Row{
			"id":            i + 1,
			"name":          p.Name,
			"sku":           p.SKU,
			"price":         amount(p.Price),
			"discountPrice": amount(p.DiscountPrice),
			"category":      category,
		})
	}
	return rows
}

func CategoryRows(categories []model.CategoryRecord) []table.Row {
	rows := make([]table.Row, 0, len(categories))
	for i, c := range categories {
		parent := "None"
		if c.ParentName != nil && *c.ParentName != "" {
			parent = *c.ParentName
		}
		rows = append(rows, table.Row{
			"id":     i + 1,
			"name":   c.Name,
			"parent": parent,
		})
	}
	return rows
}

func InventoryRows(items []model.InventoryRecord) []table.Row {
	rows := make([]table.Row, 0, len(items))
	for i, it := range items {
		name := it.ProductName
		if name == "" {
			name = "Unknown"
		}
		rows = append(rows, table.Row{
			"id":          i + 1,
			"productName": name,
			"quantity":    it.Quantity,
		})
	}
	return rows
}

func BannerRows(banners []model.BannerRecord) []table.Row {
	rows := make([]table.Row, 0, len(banners))
	for i, b := range banners {
		active := "No"
		if b.IsActive {
			active = "Yes"
		}
		created := notAvailable
		if !b.CreatedAt.IsZero() {
			created = b.CreatedAt.Format("2006-01-02")
		}
		rows = append(rows, table.Row{
			"id":           i + 1,
			"title":        b.Title,
			"imageUrl":     orNA(b.ImageURL),
			"linkUrl":      orNA(b.LinkURL),
			"displayOrder": b.DisplayOrder,
			"isActive":     active,
			"createdAt":    created,
		})
	}
	return rows
}

func SeoRows(entries []model.SeoRecord) []table.Row {
	rows := make([]table.Row, 0, len(entries))
	for i, s := range entries {
		rows = append(rows, table.Row{
			"id":              i + 1,
			"productName":     orNA(s.ProductName),
			"metaTitle":       s.MetaTitle,
			"metaDescription": s.MetaDescription,
		})
	}
	return rows
}

// ShippingRows は配送追跡の行です。最新の追跡イベントの状態を表示します。
func ShippingRows(shippings []model.ShippingRecord) []table.Row {
	rows := make([]table.Row, 0, len(shippings))
	for i, s := range shippings {
		latest := notAvailable
		if n := len(s.TrackingEvents); n > 0 {
			latest = orNA(s.TrackingEvents[n-1].Status)
		}
		rows = append(rows, table.Row{
			"id":                i + 1,
			"orderNumber":       orNA(s.OrderNumber),
			"trackingNumber":    orNA(s.TrackingNumber),
			"carrier":           orNA(s.Carrier),
			"estimatedDelivery": orNA(s.EstimatedDelivery),
			"latestStatus":      latest,
		})
	}
	return rows
}

func UserRows(users []model.UserRecord) []table.Row {
	rows := make([]table.Row, 0, len(users))
	for i, u := range users {
		role := u.Role
		if role == "" {
			role = "User"
		}
		rows = append(rows, table.Row{
			"id":          i + 1,
			"name":        strings.TrimSpace(u.FirstName + " " + u.LastName),
			"email":       u.Email,
			"phoneNumber": orNA(u.PhoneNumber),
			"role":        role,
		})
	}
	return rows
}

// SalesRows は売上系列を表形式にします。
func SalesRows(series model.SalesSeries) []table.Row {
	rows := make([]table.Row, 0, len(series.Buckets))
	for _, b := range series.Buckets {
		rows = append(rows, table.Row{
			"name":       b.Label,
			"sales":      amount(b.TotalSales),
			"orderCount": b.OrderCount,
			"cumulative": amount(b.Cumulative),
		})
	}
	return rows
}
