package model

import "github.com/shopspring/decimal"

// 以下は API レスポンスの data 部分の形です。
// Only the fields the console reads are declared.

type OrderPayload struct {
	OrderID     string        `json:"orderId"`
	UserEmail   string        `json:"userEmail"`
	TotalAmount LenientAmount `json:"totalAmount"`
	OrderDate   string        `json:"orderDate"`
	Status      string        `json:"status"`
	OrderItems  []OrderItem   `json:"orderItems"`
}

type ProductPayload struct {
	ProductID     string            `json:"productId"`
	Name          string            `json:"name"`
	SKU           string            `json:"sku"`
	Price         decimal.Decimal   `json:"price"`
	DiscountPrice decimal.Decimal   `json:"discountPrice"`
	CategoryID    string            `json:"categoryId"`
	Description   string            `json:"description"`
	Specification map[string]string `json:"specification"`
	ImageURLs     []string          `json:"imageUrls"`
}

type CategoryPayload struct {
	CategoryID         string  `json:"categoryId"`
	Name               string  `json:"name"`
	ParentCategoryName *string `json:"parentCategoryName"`
}

type InventoryPayload struct {
	InventoryID string `json:"inventoryId"`
	ProductID   string `json:"productId"`
	Quantity    int    `json:"quantity"`
}

type BannerPayload struct {
	BannerID     string `json:"bannerId"`
	Title        string `json:"title"`
	ImageURL     string `json:"imageUrl"`
	LinkURL      string `json:"linkUrl"`
	DisplayOrder int    `json:"displayOrder"`
	IsActive     bool   `json:"isActive"`
	CreatedAt    string `json:"createdAt"`
}

type SeoPayload struct {
	SeoID           string `json:"seoid"`
	ProductID       string `json:"productId"`
	PageID          string `json:"pageId"`
	PageType        string `json:"pageType"`
	MetaTitle       string `json:"metaTitle"`
	MetaDescription string `json:"metaDescription"`
}

type TrackingHistoryPayload struct {
	Date     string  `json:"date"`
	Status   string  `json:"status"`
	Location *string `json:"location"`
}

type ShippingPayload struct {
	OrderNumber       string                   `json:"orderNumber"`
	TrackingNumber    string                   `json:"trackingNumber"`
	EstimatedDelivery string                   `json:"estimatedDelivery"`
	Carrier           string                   `json:"carrier"`
	TrackingHistory   []TrackingHistoryPayload `json:"trackingHistory"`
}

type UserPayload struct {
	UserID      string `json:"userId"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
	RoleName    string `json:"roleName"`
}

// CreatedID は作成系 API が返す data の中の ID 群です。どれか1つだけが埋まります。
type CreatedID struct {
	ProductID   string `json:"productId"`
	CategoryID  string `json:"categoryId"`
	InventoryID string `json:"inventoryId"`
	BannerID    string `json:"BannerId"`
	SeoID       string `json:"seoid"`
	UserID      string `json:"userId"`
}
