package console

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"ecadmin/apiclient"
	"ecadmin/loader"
	"ecadmin/model"
	"ecadmin/store"
	"ecadmin/syncer"
	"ecadmin/validation"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	fake    *apiclient.Fake
	notes   *syncer.MemoryNotifier
	coord   *syncer.Coordinator
	store   *store.Store
	console *Console
}

func newFixture(t *testing.T, opts ...Option) *fixture {
	t.Helper()
	f := &fixture{
		fake:  apiclient.NewFake(),
		notes: &syncer.MemoryNotifier{},
		store: store.New(),
	}
	f.coord = syncer.New(syncer.WithNotifier(f.notes))
	ld := loader.New(f.fake, f.coord, f.store)
	f.console = New(f.fake, f.coord, f.store, ld, opts...)

	parent := "Clothing"
	f.store.Categories.ReplaceAll([]model.CategoryRecord{
		{Ref: model.Ref{ID: 1, RealID: "c-1"}, Name: "Clothing"},
		{Ref: model.Ref{ID: 2, RealID: "c-2"}, Name: "Shirts", ParentName: &parent},
	})
	f.store.Products.ReplaceAll([]model.ProductRecord{
		{Ref: model.Ref{ID: 1, RealID: "p-1"}, Name: "Red Shirt", SKU: "RS-1", CategoryID: "c-2", CategoryName: "Shirts"},
	})
	return f
}

func lastBody(t *testing.T, f *fixture) map[string]any {
	t.Helper()
	calls := f.fake.Calls()
	require.NotEmpty(t, calls)
	var body map[string]any
	require.NoError(t, json.Unmarshal(calls[len(calls)-1].Body, &body))
	return body
}

func TestSaveCategory_Create(t *testing.T) {
	f := newFixture(t)
	f.fake.HandleJSON(http.MethodPost, apiclient.PathCategories,
		`{"status":"Success","message":"Category created","data":{"categoryId":"c-9"}}`)

	parent := "Clothing"
	require.NoError(t, f.console.SaveCategory(context.Background(), 0, CategoryInput{Name: " Hats ", Parent: &parent}))

	body := lastBody(t, f)
	assert.Equal(t, "Hats", body["name"])
	assert.Equal(t, "c-1", body["parentCategoryId"])

	added, err := f.store.Categories.FindByRealID("c-9")
	require.NoError(t, err)
	assert.Equal(t, 3, added.ID)
	assert.Equal(t, "Clothing", *added.ParentName)

	notes := f.notes.Notifications()
	require.Len(t, notes, 1)
	assert.Equal(t, "Category created", notes[0].Message)
	assert.False(t, f.coord.Busy().IsBusy())
}

func TestSaveCategory_LocalIDFallback(t *testing.T) {
	f := newFixture(t, WithIDFunc(func() string { return "local-1" }))
	f.fake.HandleJSON(http.MethodPost, apiclient.PathCategories, `{"status":"Success"}`)

	require.NoError(t, f.console.SaveCategory(context.Background(), 0, CategoryInput{Name: "Hats"}))

	added, err := f.store.Categories.Find(3)
	require.NoError(t, err)
	assert.Equal(t, "local-1", added.RealID)
	assert.Nil(t, lastBody(t, f)["parentCategoryId"])
	assert.Equal(t, syncer.DefaultSuccessMessage, f.notes.Notifications()[0].Message)
}

func TestSaveCategory_Invalid(t *testing.T) {
	f := newFixture(t)
	missing := "Shoes"

	err := f.console.SaveCategory(context.Background(), 0, CategoryInput{Name: "  ", Parent: &missing})

	var fe validation.FieldErrors
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "This field is required.", fe["name"])
	assert.Contains(t, fe["parent"], "Shoes")
	assert.Empty(t, f.fake.Calls(), "invalid input never reaches the API")
}

func TestSaveCategory_Update(t *testing.T) {
	f := newFixture(t)
	f.fake.HandleJSON(http.MethodPut, "/Categories/c-2", `{"status":"Success","message":"Updated"}`)

	require.NoError(t, f.console.SaveCategory(context.Background(), 2, CategoryInput{Name: "Tees"}))

	got, err := f.store.Categories.Find(2)
	require.NoError(t, err)
	assert.Equal(t, "Tees", got.Name)
	assert.Nil(t, got.ParentName)
	assert.Equal(t, "c-2", got.RealID)
}

func TestSaveCategory_Rejected(t *testing.T) {
	f := newFixture(t)
	f.fake.HandleJSON(http.MethodPut, "/Categories/c-2", `{"status":"Failed","message":"Name already used"}`)

	err := f.console.SaveCategory(context.Background(), 2, CategoryInput{Name: "Clothing"})
	require.ErrorIs(t, err, syncer.ErrRejected)

	got, _ := f.store.Categories.Find(2)
	assert.Equal(t, "Shirts", got.Name)
	notes := f.notes.Notifications()
	require.Len(t, notes, 1)
	assert.Equal(t, syncer.LevelError, notes[0].Level)
	assert.Equal(t, "Name already used", notes[0].Message)
	assert.False(t, f.coord.Busy().IsBusy())
}

func TestDelete_Confirmed(t *testing.T) {
	f := newFixture(t, WithConfirmer(syncer.Always(true)))
	f.fake.HandleJSON(http.MethodDelete, "/Categories/c-1", `{"status":"Success","message":"Deleted"}`)

	ok, err := f.console.DeleteCategory(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, ok)

	rest := f.store.Categories.All()
	require.Len(t, rest, 1)
	assert.Equal(t, 2, rest[0].ID, "remaining ids are not renumbered")
}

func TestDelete_DeclinedAndUnknown(t *testing.T) {
	f := newFixture(t)

	ok, err := f.console.DeleteProduct(context.Background(), 1)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, f.fake.Calls())
	assert.Equal(t, 1, f.store.Products.Len())

	_, err = f.console.DeleteProduct(context.Background(), 42)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func productInput() ProductInput {
	return ProductInput{
		Name:           "Blue Shirt",
		SKU:            "BS-1",
		Price:          decimal.RequireFromString("21.50"),
		DiscountPrice:  decimal.Zero,
		Category:       "Shirts",
		Specifications: []validation.KeyValue{{Key: "Size", Value: "M"}},
	}
}

func TestSaveProduct_Create(t *testing.T) {
	f := newFixture(t)
	f.fake.HandleJSON(http.MethodPost, apiclient.PathProducts,
		`{"status":"Success","data":{"productId":"p-2","imageUrls":["/img/p-2.jpg"]}}`)

	require.NoError(t, f.console.SaveProduct(context.Background(), 0, productInput()))

	body := lastBody(t, f)
	assert.Equal(t, "c-2", body["categoryId"])
	assert.Equal(t, map[string]any{"Size": "M"}, body["specification"])

	p, err := f.store.Products.FindByRealID("p-2")
	require.NoError(t, err)
	assert.Equal(t, 2, p.ID)
	assert.Equal(t, "Shirts", p.CategoryName)
	assert.Equal(t, []string{"/img/p-2.jpg"}, p.ImageURLs)
}

func TestSaveProduct_Invalid(t *testing.T) {
	f := newFixture(t)
	in := productInput()
	in.SKU = "RS-1"
	in.Price = decimal.Zero
	in.Category = "Shoes"
	in.Specifications = []validation.KeyValue{{Key: "Size", Value: "M"}, {Key: "Size", Value: "L"}}

	err := f.console.SaveProduct(context.Background(), 0, in)

	var fe validation.FieldErrors
	require.ErrorAs(t, err, &fe)
	assert.Contains(t, fe, "sku")
	assert.Contains(t, fe, "price")
	assert.Equal(t, "Invalid category selected.", fe["category"])
	assert.Contains(t, fe["specification"], "already exists")
	assert.Empty(t, f.fake.Calls())
}

func TestSaveProduct_UpdateReloadsList(t *testing.T) {
	f := newFixture(t)
	f.fake.HandleJSON(http.MethodPut, "/Products/p-1", `{"status":"Success","message":"Product updated"}`)
	f.fake.HandleJSON(http.MethodGet, apiclient.PathProductsAll, `{"status":"Success","data":[
		{"productId":"p-0","name":"Mug","sku":"MG-1","price":7,"categoryId":"c-1"},
		{"productId":"p-1","name":"Red Shirt v2","sku":"RS-1","price":25,"categoryId":"c-2"}]}`)

	in := productInput()
	in.Name = "Red Shirt v2"
	in.SKU = "RS-1"
	require.NoError(t, f.console.SaveProduct(context.Background(), 1, in))

	products := f.store.Products.All()
	require.Len(t, products, 2)
	assert.Equal(t, "p-1", products[1].RealID)
	assert.Equal(t, 2, products[1].ID, "reload reassigns display ids")
	assert.Equal(t, "Shirts", products[1].CategoryName)
}

func TestSaveInventory(t *testing.T) {
	f := newFixture(t)
	f.fake.HandleJSON(http.MethodPost, apiclient.PathInventory, `{"status":"Success","data":{"inventoryId":"i-1"}}`)
	f.fake.HandleJSON(http.MethodPut, "/Inventory/i-1", `{"status":"Success"}`)
	ctx := context.Background()

	require.NoError(t, f.console.SaveInventory(ctx, 0, InventoryInput{ProductName: "Red Shirt", Quantity: 3}))
	assert.Equal(t, map[string]any{"productId": "p-1", "quantity": float64(3)}, lastBody(t, f))

	require.NoError(t, f.console.SaveInventory(ctx, 1, InventoryInput{ProductName: "Red Shirt", Quantity: 9}))
	got, err := f.store.Inventory.Find(1)
	require.NoError(t, err)
	assert.Equal(t, 9, got.Quantity)
	assert.Equal(t, "i-1", got.RealID)

	err = f.console.SaveInventory(ctx, 0, InventoryInput{ProductName: "Ghost", Quantity: -1})
	var fe validation.FieldErrors
	require.ErrorAs(t, err, &fe)
	assert.Contains(t, fe, "productName")
	assert.Contains(t, fe, "quantity")
}

func TestSaveBanner_UpdateKeepsCreatedAt(t *testing.T) {
	f := newFixture(t)
	created := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	f.store.Banners.ReplaceAll([]model.BannerRecord{
		{Ref: model.Ref{ID: 1, RealID: "b-1"}, Title: "Old", ImageURL: "/img/old.png", CreatedAt: created},
	})
	f.fake.HandleJSON(http.MethodPut, "/banners/b-1", `{"Success":true,"Message":"Banner updated"}`)

	require.NoError(t, f.console.SaveBanner(context.Background(), 1, BannerInput{Title: "New", DisplayOrder: 1, IsActive: true}))

	body := lastBody(t, f)
	assert.Equal(t, "New", body["Title"])
	assert.Equal(t, "/img/old.png", body["ImageUrl"])

	got, err := f.store.Banners.Find(1)
	require.NoError(t, err)
	assert.Equal(t, "New", got.Title)
	assert.True(t, created.Equal(got.CreatedAt))
	assert.Equal(t, "Banner updated", f.notes.Notifications()[0].Message)
}

func TestSaveBanner_CreateNeedsImage(t *testing.T) {
	f := newFixture(t)
	err := f.console.SaveBanner(context.Background(), 0, BannerInput{Title: "Sale", LinkURL: "not a url"})

	var fe validation.FieldErrors
	require.ErrorAs(t, err, &fe)
	assert.Contains(t, fe, "imageUrl")
	assert.Contains(t, fe, "linkUrl")
}

func TestSaveSeo_Create(t *testing.T) {
	f := newFixture(t)
	f.fake.HandleJSON(http.MethodPost, apiclient.PathSeo, `{"status":"Success","message":"Saved","data":{"seoid":"s-1"}}`)

	require.NoError(t, f.console.SaveSeo(context.Background(), 0, SeoInput{ProductID: "p-1", MetaTitle: "Shirts", MetaDescription: "Red"}))

	body := lastBody(t, f)
	assert.Equal(t, "Red Shirt", body["pageType"])
	assert.Equal(t, "p-1", body["pageId"])

	got, err := f.store.Seo.FindByRealID("s-1")
	require.NoError(t, err)
	assert.Equal(t, "Red Shirt", got.ProductName)
}

func TestSetOrderStatus(t *testing.T) {
	f := newFixture(t)
	f.store.Orders.ReplaceAll([]model.OrderRecord{
		{Ref: model.Ref{ID: 1, RealID: "o-1"}, UserEmail: "a@example.com", Status: model.StatusPending},
	})
	f.fake.HandleJSON(http.MethodPut, "/Orders/o-1", `{"status":"Success","message":"Status updated"}`)

	require.NoError(t, f.console.SetOrderStatus(context.Background(), 1, model.StatusShipped))
	assert.Equal(t, map[string]any{"status": "Shipped"}, lastBody(t, f))

	got, _ := f.store.Orders.Find(1)
	assert.Equal(t, model.StatusShipped, got.Status)
	assert.Equal(t, "a@example.com", got.UserEmail)

	assert.Error(t, f.console.SetOrderStatus(context.Background(), 1, model.OrderStatus("Lost")))
}

func TestSaveShipping(t *testing.T) {
	f := newFixture(t)
	f.store.SetShippingMethods([]model.ShippingMethod{{ShippingMethodID: "m-1", Name: "DHL"}})
	f.fake.HandleJSON(http.MethodPost, apiclient.PathTracking, `{"success":true,"message":"Added"}`)
	f.fake.HandleJSON(http.MethodPut, "/tracking/o-1", `{"success":true,"message":"Updated"}`)
	ctx := context.Background()

	in := ShippingInput{
		OrderID:           "o-1",
		ShippingMethodID:  "m-1",
		EstimatedDelivery: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, f.console.SaveShipping(ctx, 0, in))

	body := lastBody(t, f)
	assert.Equal(t, "o-1", body["orderId"])
	assert.Nil(t, body["trackingNumber"])
	assert.Equal(t, "2024-02-01T00:00:00Z", body["estimatedDelivery"])

	got, err := f.store.Shippings.Find(1)
	require.NoError(t, err)
	assert.Equal(t, "B-o-1", got.OrderNumber)
	assert.Equal(t, "DHL", got.Carrier)

	in.TrackingNumber = "T-77"
	in.Event = &model.TrackingEvent{EventDate: "2024-01-20T00:00:00Z", Status: "In transit"}
	require.NoError(t, f.console.SaveShipping(ctx, 1, in))

	body = lastBody(t, f)
	assert.NotContains(t, body, "orderId")
	got, _ = f.store.Shippings.Find(1)
	assert.Equal(t, "T-77", got.TrackingNumber)
	assert.Len(t, got.TrackingEvents, 1)

	err = f.console.SaveShipping(ctx, 0, ShippingInput{})
	var fe validation.FieldErrors
	require.ErrorAs(t, err, &fe)
	assert.Contains(t, fe, "orderId")
	assert.Contains(t, fe, "shippingMethodId")
}

func TestRegisterUser(t *testing.T) {
	f := newFixture(t)
	f.fake.HandleJSON(http.MethodPost, apiclient.PathUsersRegister, `{"status":"Success","data":{"userId":"u-1"}}`)
	ctx := context.Background()

	in := UserInput{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com", PhoneNumber: "555", Password: "secret"}
	require.NoError(t, f.console.RegisterUser(ctx, in))

	body := lastBody(t, f)
	assert.Equal(t, "User", body["role"])
	assert.Equal(t, "secret", body["password"])

	got, err := f.store.Users.FindByRealID("u-1")
	require.NoError(t, err)
	assert.Equal(t, "User", got.Role)

	in.Email = "nope"
	in.Role = "Root"
	err = f.console.RegisterUser(ctx, in)
	var fe validation.FieldErrors
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "Enter a valid email address.", fe["email"])
	assert.Contains(t, fe, "role")
}

func TestGenerateSalesReport(t *testing.T) {
	f := newFixture(t)
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)
	f.fake.HandleJSON(http.MethodPost, apiclient.SalesReportPath(from, to), `{"status":"Success"}`)
	ctx := context.Background()

	require.NoError(t, f.console.GenerateSalesReport(ctx, from, to))
	assert.Error(t, f.console.GenerateSalesReport(ctx, to, from))
	assert.Error(t, f.console.GenerateSalesReport(ctx, time.Time{}, to))
}
