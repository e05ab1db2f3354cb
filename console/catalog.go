package console

import (
	"context"
	"log/slog"
	"strings"

	"ecadmin/apiclient"
	"ecadmin/model"
	"ecadmin/validation"

	"github.com/shopspring/decimal"
)

// CategoryInput はカテゴリ編集フォームです。Parent は親カテゴリ名です。
type CategoryInput struct {
	Name   string  `json:"name" validate:"notblank"`
	Parent *string `json:"parent"`
}

type categoryBody struct {
	Name             string  `json:"name"`
	ParentCategoryID *string `json:"parentCategoryId"`
}

func (c *Console) categoryIDByName(name string) *string {
	for _, cat := range c.store.Categories.All() {
		if cat.Name == name {
			id := cat.RealID
			return &id
		}
	}
	return nil
}

// SaveCategory は displayID が 0 なら作成、それ以外なら更新します。
func (c *Console) SaveCategory(ctx context.Context, displayID int, in CategoryInput) error {
	errs := validation.Struct(in)
	validation.ParentExists(in.Parent, c.store.CategoryNames(), errs)
	if err := errs.Err(); err != nil {
		return err
	}

	name := strings.TrimSpace(in.Name)
	var parent *string
	if in.Parent != nil && *in.Parent != "" {
		parent = in.Parent
	}
	body := categoryBody{Name: name}
	if parent != nil {
		body.ParentCategoryID = c.categoryIDByName(*parent)
	}

	if displayID == 0 {
		return c.coord.RunE(ctx, "categories", c.post(apiclient.PathCategories, body), func(res apiclient.Result) {
			c.store.Categories.Add(model.CategoryRecord{
				Ref:        model.Ref{RealID: c.realIDFrom(res, func(ids model.CreatedID) string { return ids.CategoryID })},
				Name:       name,
				ParentName: parent,
			})
		})
	}

	cur, err := find(c.store.Categories, displayID)
	if err != nil {
		return err
	}
	return c.coord.RunE(ctx, "categories", c.put(apiclient.ItemPath(apiclient.PathCategories, cur.RealID), body), func(apiclient.Result) {
		c.store.Categories.Update(model.CategoryRecord{Ref: model.Ref{ID: displayID}, Name: name, ParentName: parent})
	})
}

func (c *Console) DeleteCategory(ctx context.Context, displayID int) (bool, error) {
	return deleteRecord(ctx, c, c.store.Categories, apiclient.PathCategories, displayID)
}

// ProductInput は商品編集フォームです。Category はカテゴリ名で指定します。
type ProductInput struct {
	Name           string                `json:"name" validate:"notblank"`
	SKU            string                `json:"sku" validate:"notblank"`
	Price          decimal.Decimal       `json:"price" validate:"gt=0"`
	DiscountPrice  decimal.Decimal       `json:"discountPrice" validate:"gte=0"`
	Category       string                `json:"category" validate:"notblank"`
	Description    string                `json:"description"`
	Specifications []validation.KeyValue `json:"specification"`
}

type productBody struct {
	Name          string            `json:"name"`
	SKU           string            `json:"sku"`
	Price         decimal.Decimal   `json:"price"`
	DiscountPrice decimal.Decimal   `json:"discountPrice"`
	CategoryID    string            `json:"categoryId"`
	Description   string            `json:"description"`
	Specification map[string]string `json:"specification"`
}

func (c *Console) takenSKUs() map[string]string {
	taken := make(map[string]string)
	for _, p := range c.store.Products.All() {
		taken[p.SKU] = p.RealID
	}
	return taken
}

// SaveProduct は商品を作成・更新します。
// A successful update reloads the whole product list, so display ids are reassigned.
func (c *Console) SaveProduct(ctx context.Context, displayID int, in ProductInput) error {
	errs := validation.Struct(in)
	spec, specErrs := validation.Specification(in.Specifications)
	for k, v := range specErrs {
		errs.Add(k, v)
	}

	var cur model.ProductRecord
	if displayID != 0 {
		var err error
		if cur, err = find(c.store.Products, displayID); err != nil {
			return err
		}
	}
	validation.UniqueSKU(in.SKU, cur.RealID, c.takenSKUs(), errs)

	categoryID := c.categoryIDByName(in.Category)
	if categoryID == nil && in.Category != "" {
		errs.Add("category", "Invalid category selected.")
	}
	if err := errs.Err(); err != nil {
		return err
	}

	body := productBody{
		Name:          strings.TrimSpace(in.Name),
		SKU:           strings.TrimSpace(in.SKU),
		Price:         in.Price,
		DiscountPrice: in.DiscountPrice,
		CategoryID:    *categoryID,
		Description:   in.Description,
		Specification: spec,
	}

	if displayID == 0 {
		return c.coord.RunE(ctx, "products", c.post(apiclient.PathProducts, body), func(res apiclient.Result) {
			var created model.ProductPayload
			if err := res.Decode(&created); err != nil {
				c.logger.Warn("unexpected product create response", slog.Any("error", err))
			}
			c.store.Products.Add(model.ProductRecord{
				Ref:           model.Ref{RealID: c.realIDFrom(res, func(ids model.CreatedID) string { return ids.ProductID })},
				Name:          body.Name,
				SKU:           body.SKU,
				Price:         body.Price,
				DiscountPrice: body.DiscountPrice,
				CategoryID:    body.CategoryID,
				CategoryName:  in.Category,
				Description:   body.Description,
				Specification: spec,
				ImageURLs:     created.ImageURLs,
			})
		})
	}

	err := c.coord.RunE(ctx, "products", c.put(apiclient.ItemPath(apiclient.PathProducts, cur.RealID), body), nil)
	if err != nil {
		return err
	}
	if err := c.loader.LoadProducts(ctx); err != nil {
		c.logger.Warn("product list reload failed", slog.Any("error", err))
		c.store.Products.Update(model.ProductRecord{
			Ref:           model.Ref{ID: displayID},
			Name:          body.Name,
			SKU:           body.SKU,
			Price:         body.Price,
			DiscountPrice: body.DiscountPrice,
			CategoryID:    body.CategoryID,
			CategoryName:  in.Category,
		})
	}
	return nil
}

func (c *Console) DeleteProduct(ctx context.Context, displayID int) (bool, error) {
	return deleteRecord(ctx, c, c.store.Products, apiclient.PathProducts, displayID)
}

// InventoryInput は在庫編集フォームです。商品は名前で選びます。
type InventoryInput struct {
	ProductName string `json:"productName" validate:"notblank"`
	Quantity    int    `json:"quantity" validate:"gte=0"`
}

type inventoryBody struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

func (c *Console) SaveInventory(ctx context.Context, displayID int, in InventoryInput) error {
	errs := validation.Struct(in)
	var productID string
	for _, p := range c.store.Products.All() {
		if p.Name == in.ProductName {
			productID = p.RealID
			break
		}
	}
	if productID == "" && in.ProductName != "" {
		errs.Add("productName", "Select a valid product.")
	}
	if err := errs.Err(); err != nil {
		return err
	}

	body := inventoryBody{ProductID: productID, Quantity: in.Quantity}
	rec := model.InventoryRecord{ProductID: productID, ProductName: in.ProductName, Quantity: in.Quantity}

	if displayID == 0 {
		return c.coord.RunE(ctx, "inventory", c.post(apiclient.PathInventory, body), func(res apiclient.Result) {
			rec.RealID = c.realIDFrom(res, func(ids model.CreatedID) string { return ids.InventoryID })
			c.store.Inventory.Add(rec)
		})
	}

	cur, err := find(c.store.Inventory, displayID)
	if err != nil {
		return err
	}
	return c.coord.RunE(ctx, "inventory", c.put(apiclient.ItemPath(apiclient.PathInventory, cur.RealID), body), func(apiclient.Result) {
		rec.ID = displayID
		c.store.Inventory.Update(rec)
	})
}

func (c *Console) DeleteInventory(ctx context.Context, displayID int) (bool, error) {
	return deleteRecord(ctx, c, c.store.Inventory, apiclient.PathInventory, displayID)
}
