package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductRecord は商品一覧の1レコードを表します。
type ProductRecord struct {
	Ref
	Name          string            `json:"name"`
	SKU           string            `json:"sku"`
	Price         decimal.Decimal   `json:"price"`
	DiscountPrice decimal.Decimal   `json:"discountPrice"`
	CategoryID    string            `json:"categoryId"`
	CategoryName  string            `json:"category"`
	Description   string            `json:"description"`
	Specification map[string]string `json:"specification"`
	ImageURLs     []string          `json:"imageUrls"`
}

// CategoryRecord はカテゴリの1レコードです。
// ParentName references another category by name, not by id.
type CategoryRecord struct {
	Ref
	Name       string  `json:"name"`
	ParentName *string `json:"parent"`
}

// InventoryRecord は在庫の1レコードです。
type InventoryRecord struct {
	Ref
	ProductID   string `json:"productId"`
	ProductName string `json:"productName"`
	Quantity    int    `json:"quantity"`
}

type BannerRecord struct {
	Ref
	Title        string    `json:"title"`
	ImageURL     string    `json:"imageUrl"`
	LinkURL      string    `json:"linkUrl"`
	DisplayOrder int       `json:"displayOrder"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
}

type SeoRecord struct {
	Ref
	ProductID       string `json:"productId"`
	ProductName     string `json:"productName"`
	MetaTitle       string `json:"metaTitle"`
	MetaDescription string `json:"metaDescription"`
}

// UserRecord は顧客管理画面の1レコードです。
type UserRecord struct {
	Ref
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
	Role        string `json:"role"`
}
