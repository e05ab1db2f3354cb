package apiclient

import (
	"net/url"
	"time"
)

// 管理APIのエンドポイント。
const (
	PathProductsAll     = "/Products/all"
	PathProducts        = "/Products"
	PathCategoriesAll   = "/Categories/all"
	PathCategories      = "/Categories"
	PathInventoryAll    = "/Inventory/all"
	PathInventory       = "/Inventory"
	PathBanners         = "/banners"
	PathSeo             = "/seo"
	PathOrdersAll       = "/Orders/all"
	PathOrders          = "/Orders"
	PathTracking        = "/tracking"
	PathShippingMethods = "/ShippingMethod"
	PathUsersAll        = "/Users/all"
	PathUsersRegister   = "/Users/register"
	PathUsers           = "/Users"
	PathDashboard       = "/Dashboard/summary"
	PathSalesReport     = "/Analytics/sales-report"
)

// ItemPath joins a collection path and an escaped id, e.g. "/Products/42".
func ItemPath(base, id string) string {
	return base + "/" + url.PathEscape(id)
}

// SalesReportPath は売上レポートのクエリ付きパスです。日付は YYYY-MM-DD です。
func SalesReportPath(from, to time.Time) string {
	q := url.Values{}
	q.Set("startDate", from.Format("2006-01-02"))
	q.Set("endDate", to.Format("2006-01-02"))
	return PathSalesReport + "?" + q.Encode()
}
