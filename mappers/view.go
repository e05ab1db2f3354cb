package mappers

import (
	"ecadmin/model"
	"ecadmin/table"
)

// 各一覧の列定義です。先頭の列が初期の検索列になります。

var OrderColumns = []table.Column{
	{Field: "userEmail", Header: "Customer"},
	{Field: "id", Header: "ID"},
	{Field: "productNames", Header: "Products"},
	{Field: "totalAmount", Header: "Total"},
	{Field: "orderDate", Header: "Date"},
	{Field: "status", Header: "Status"},
}

var ProductColumns = []table.Column{
	{Field: "name", Header: "Name"},
	{Field: "id", Header: "ID"},
	{Field: "sku", Header: "SKU"},
	{Field: "price", Header: "Price"},
	{Field: "discountPrice", Header: "Discount"},
	{Field: "category", Header: "Category"},
}

var CategoryColumns = []table.Column{
	{Field: "name", Header: "Name"},
	{Field: "id", Header: "ID"},
	{Field: "parent", Header: "Parent"},
}

var InventoryColumns = []table.Column{
	{Field: "productName", Header: "Product"},
	{Field: "id", Header: "ID"},
	{Field: "quantity", Header: "Quantity"},
}

var BannerColumns = []table.Column{
	{Field: "title", Header: "Title"},
	{Field: "id", Header: "ID"},
	{Field: "displayOrder", Header: "Order"},
	{Field: "isActive", Header: "Active"},
	{Field: "createdAt", Header: "Created"},
}

var SeoColumns = []table.Column{
	{Field: "productName", Header: "Product"},
	{Field: "id", Header: "ID"},
	{Field: "metaTitle", Header: "Meta Title"},
	{Field: "metaDescription", Header: "Meta Description"},
}

var ShippingColumns = []table.Column{
	{Field: "orderNumber", Header: "Order"},
	{Field: "id", Header: "ID"},
	{Field: "trackingNumber", Header: "Tracking"},
	{Field: "carrier", Header: "Carrier"},
	{Field: "estimatedDelivery", Header: "ETA"},
	{Field: "latestStatus", Header: "Status"},
}

var UserColumns = []table.Column{
	{Field: "name", Header: "Name"},
	{Field: "id", Header: "ID"},
	{Field: "email", Header: "Email"},
	{Field: "phoneNumber", Header: "Phone"},
	{Field: "role", Header: "Role"},
}

var SalesColumns = []table.Column{
	{Field: "name", Header: "Period"},
	{Field: "sales", Header: "Sales"},
	{Field: "orderCount", Header: "Orders"},
	{Field: "cumulative", Header: "Cumulative"},
}

// NewOrdersTable は注文一覧の Table を作ります。
func NewOrdersTable(orders []model.OrderRecord) *table.Table[table.Row] {
	t := table.NewRows("Orders", OrderColumns)
	t.SetRows(OrderRows(orders))
	return t
}
