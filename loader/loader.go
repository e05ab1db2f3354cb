package loader

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"ecadmin/aggregation"
	"ecadmin/apiclient"
	"ecadmin/database"
	"ecadmin/model"
	"ecadmin/store"
	"ecadmin/syncer"

	"github.com/jmoiron/sqlx"
	"golang.org/x/sync/errgroup"
)

// Loader は一覧の初回読み込みを行い、結果を Store に入れます。
// Every fetch goes through the coordinator so the busy flag and error notifications
// behave like any other remote call. Display ids are assigned 1..n in response order.
type Loader struct {
	client  apiclient.Client
	coord   *syncer.Coordinator
	store   *store.Store
	logger  *slog.Logger
	cache   *sqlx.DB
	aggOpts []aggregation.Option
}

type Option func(*Loader)

func WithLogger(l *slog.Logger) Option {
	return func(ld *Loader) {
		if l != nil {
			ld.logger = l
		}
	}
}

// WithSnapshot keeps the last loaded orders in the SQLite cache and falls back to them
// when the orders endpoint cannot be reached.
func WithSnapshot(db *sqlx.DB) Option {
	return func(ld *Loader) { ld.cache = db }
}

// WithAggregation passes options to the sales aggregation of LoadDashboard.
func WithAggregation(opts ...aggregation.Option) Option {
	return func(ld *Loader) { ld.aggOpts = append(ld.aggOpts, opts...) }
}

func New(client apiclient.Client, coord *syncer.Coordinator, st *store.Store, opts ...Option) *Loader {
	ld := &Loader{
		client: client,
		coord:  coord,
		store:  st,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, fn := range opts {
		fn(ld)
	}
	return ld
}

// fetchList は path を GET し、data を []T として返します。
func fetchList[T any](ctx context.Context, ld *Loader, tag, path string) ([]T, error) {
	res, err := ld.coord.Fetch(ctx, tag, func(ctx context.Context) (apiclient.Result, error) {
		return ld.client.Get(ctx, path)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", tag, err)
	}
	items, err := apiclient.Decode[[]T](res)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", tag, err)
	}
	return items, nil
}

func (ld *Loader) LoadCategories(ctx context.Context) error {
	items, err := fetchList[model.CategoryPayload](ctx, ld, "categories", apiclient.PathCategoriesAll)
	if err != nil {
		return err
	}
	records := make([]model.CategoryRecord, 0, len(items))
	for i, it := range items {
		var parent *string
		if it.ParentCategoryName != nil && *it.ParentCategoryName != "" {
			name := *it.ParentCategoryName
			parent = &name
		}
		records = append(records, model.CategoryRecord{
			Ref:        model.Ref{ID: i + 1, RealID: it.CategoryID},
			Name:       it.Name,
			ParentName: parent,
		})
	}
	ld.store.Categories.ReplaceAll(records)
	ld.logger.Info("categories loaded", slog.Int("count", len(records)))
	return nil
}

// LoadProducts は商品一覧を読み込み、カテゴリ名を結合します。
// Categories are loaded first when the store has none yet.
func (ld *Loader) LoadProducts(ctx context.Context) error {
	if ld.store.Categories.Len() == 0 {
		if err := ld.LoadCategories(ctx); err != nil {
			return err
		}
	}
	items, err := fetchList[model.ProductPayload](ctx, ld, "products", apiclient.PathProductsAll)
	if err != nil {
		return err
	}
	ld.store.Products.ReplaceAll(ld.productRecords(items))
	ld.logger.Info("products loaded", slog.Int("count", len(items)))
	return nil
}

func (ld *Loader) productRecords(items []model.ProductPayload) []model.ProductRecord {
	categoryNames := make(map[string]string)
	for _, c := range ld.store.Categories.All() {
		categoryNames[c.RealID] = c.Name
	}

	records := make([]model.ProductRecord, 0, len(items))
	for i, it := range items {
		category, ok := categoryNames[it.CategoryID]
		if !ok {
			category = "None"
		}
		spec := it.Specification
		if spec == nil {
			spec = map[string]string{}
		}
		records = append(records, model.ProductRecord{
			Ref:           model.Ref{ID: i + 1, RealID: it.ProductID},
			Name:          it.Name,
			SKU:           it.SKU,
			Price:         it.Price,
			DiscountPrice: it.DiscountPrice,
			CategoryID:    it.CategoryID,
			CategoryName:  category,
			Description:   it.Description,
			Specification: spec,
			ImageURLs:     it.ImageURLs,
		})
	}
	return records
}

func (ld *Loader) productNames() map[string]string {
	names := make(map[string]string)
	for _, p := range ld.store.Products.All() {
		names[p.RealID] = p.Name
	}
	return names
}

// LoadInventory は在庫を読み込み、商品名を結合します。見つからない商品は "Unknown" です。
func (ld *Loader) LoadInventory(ctx context.Context) error {
	if ld.store.Products.Len() == 0 {
		if err := ld.LoadProducts(ctx); err != nil {
			return err
		}
	}
	items, err := fetchList[model.InventoryPayload](ctx, ld, "inventory", apiclient.PathInventoryAll)
	if err != nil {
		return err
	}
	names := ld.productNames()
	records := make([]model.InventoryRecord, 0, len(items))
	for i, it := range items {
		name, ok := names[it.ProductID]
		if !ok {
			name = "Unknown"
		}
		records = append(records, model.InventoryRecord{
			Ref:         model.Ref{ID: i + 1, RealID: it.InventoryID},
			ProductID:   it.ProductID,
			ProductName: name,
			Quantity:    it.Quantity,
		})
	}
	ld.store.Inventory.ReplaceAll(records)
	ld.logger.Info("inventory loaded", slog.Int("count", len(records)))
	return nil
}

func (ld *Loader) LoadBanners(ctx context.Context) error {
	items, err := fetchList[model.BannerPayload](ctx, ld, "banners", apiclient.PathBanners)
	if err != nil {
		return err
	}
	records := make([]model.BannerRecord, 0, len(items))
	for i, it := range items {
		created, err := aggregation.ParseOrderDate(it.CreatedAt, time.UTC)
		if err != nil {
			created = time.Time{}
		}
		records = append(records, model.BannerRecord{
			Ref:          model.Ref{ID: i + 1, RealID: it.BannerID},
			Title:        it.Title,
			ImageURL:     it.ImageURL,
			LinkURL:      it.LinkURL,
			DisplayOrder: it.DisplayOrder,
			IsActive:     it.IsActive,
			CreatedAt:    created,
		})
	}
	ld.store.Banners.ReplaceAll(records)
	ld.logger.Info("banners loaded", slog.Int("count", len(records)))
	return nil
}

// LoadSeo は SEO 設定を読み込みます。pageType が商品名です。
func (ld *Loader) LoadSeo(ctx context.Context) error {
	items, err := fetchList[model.SeoPayload](ctx, ld, "seo", apiclient.PathSeo)
	if err != nil {
		return err
	}
	names := ld.productNames()
	records := make([]model.SeoRecord, 0, len(items))
	for i, it := range items {
		productID := it.ProductID
		if productID == "" {
			productID = it.PageID
		}
		name := it.PageType
		if name == "" {
			name = names[productID]
		}
		if name == "" {
			name = "N/A"
		}
		records = append(records, model.SeoRecord{
			Ref:             model.Ref{ID: i + 1, RealID: it.SeoID},
			ProductID:       productID,
			ProductName:     name,
			MetaTitle:       it.MetaTitle,
			MetaDescription: it.MetaDescription,
		})
	}
	ld.store.Seo.ReplaceAll(records)
	ld.logger.Info("seo entries loaded", slog.Int("count", len(records)))
	return nil
}

// LoadOrders は注文一覧を読み込みます。
// With a snapshot cache the result is saved, and a failed fetch falls back to the
// last snapshot when there is one.
func (ld *Loader) LoadOrders(ctx context.Context) error {
	items, err := fetchList[model.OrderPayload](ctx, ld, "orders", apiclient.PathOrdersAll)
	if err != nil {
		if cached, ok := ld.cachedOrders(); ok {
			ld.logger.Warn("orders fetch failed, using cached snapshot",
				slog.Int("count", len(cached)), slog.Any("error", err))
			ld.store.Orders.ReplaceAll(cached)
			return nil
		}
		return err
	}

	records := OrderRecords(items)
	ld.store.Orders.ReplaceAll(records)
	ld.logger.Info("orders loaded", slog.Int("count", len(records)))

	if ld.cache != nil {
		if err := database.SaveOrderSnapshot(ld.cache, records, time.Now()); err != nil {
			ld.logger.Warn("failed to save order snapshot", slog.Any("error", err))
		}
	}
	return nil
}

func (ld *Loader) cachedOrders() ([]model.OrderRecord, bool) {
	if ld.cache == nil {
		return nil, false
	}
	orders, err := database.GetOrderSnapshot(ld.cache)
	if err != nil {
		ld.logger.Warn("failed to read order snapshot", slog.Any("error", err))
		return nil, false
	}
	return orders, len(orders) > 0
}

// OrderRecords は注文のペイロードを一覧のレコードに変換します。
func OrderRecords(items []model.OrderPayload) []model.OrderRecord {
	records := make([]model.OrderRecord, 0, len(items))
	for i, it := range items {
		records = append(records, model.OrderRecord{
			Ref:         model.Ref{ID: i + 1, RealID: it.OrderID},
			UserEmail:   it.UserEmail,
			TotalAmount: it.TotalAmount.NullDecimal,
			OrderDate:   it.OrderDate,
			Status:      model.ParseOrderStatus(it.Status),
			OrderItems:  it.OrderItems,
		})
	}
	return records
}

func (ld *Loader) LoadUsers(ctx context.Context) error {
	items, err := fetchList[model.UserPayload](ctx, ld, "users", apiclient.PathUsersAll)
	if err != nil {
		return err
	}
	records := make([]model.UserRecord, 0, len(items))
	for i, it := range items {
		role := it.RoleName
		if role == "" {
			role = "User"
		}
		records = append(records, model.UserRecord{
			Ref:         model.Ref{ID: i + 1, RealID: it.UserID},
			FirstName:   it.FirstName,
			LastName:    it.LastName,
			Email:       it.Email,
			PhoneNumber: it.PhoneNumber,
			Role:        role,
		})
	}
	ld.store.Users.ReplaceAll(records)
	ld.logger.Info("users loaded", slog.Int("count", len(records)))
	return nil
}

// LoadShippings は配送方法と追跡情報を並行して読み込み、配送会社を結合します。
func (ld *Loader) LoadShippings(ctx context.Context) error {
	var (
		methods []model.ShippingMethod
		items   []model.ShippingPayload
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		methods, err = fetchList[model.ShippingMethod](gctx, ld, "shipping-methods", apiclient.PathShippingMethods)
		return err
	})
	g.Go(func() error {
		var err error
		items, err = fetchList[model.ShippingPayload](gctx, ld, "shippings", apiclient.PathTracking)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	ld.store.SetShippingMethods(methods)
	records := make([]model.ShippingRecord, 0, len(items))
	for i, it := range items {
		orderID := model.OrderIDFromNumber(it.OrderNumber)
		carrier := it.Carrier
		if carrier == "" {
			carrier = "N/A"
		}
		events := make([]model.TrackingEvent, 0, len(it.TrackingHistory))
		for _, h := range it.TrackingHistory {
			events = append(events, model.TrackingEvent{EventDate: h.Date, Status: h.Status, Location: h.Location})
		}
		records = append(records, model.ShippingRecord{
			Ref:               model.Ref{ID: i + 1, RealID: orderID},
			OrderID:           orderID,
			OrderNumber:       it.OrderNumber,
			TrackingNumber:    it.TrackingNumber,
			EstimatedDelivery: it.EstimatedDelivery,
			ShippingMethodID:  model.MethodIDByName(methods, it.Carrier),
			Carrier:           carrier,
			TrackingEvents:    events,
		})
	}
	ld.store.Shippings.ReplaceAll(records)
	ld.logger.Info("shippings loaded", slog.Int("count", len(records)), slog.Int("methods", len(methods)))
	return nil
}

// LoadAll は全一覧を読み込みます。商品に依存する在庫と SEO は商品の後です。
func (ld *Loader) LoadAll(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := ld.LoadProducts(gctx); err != nil {
			return err
		}
		if err := ld.LoadInventory(gctx); err != nil {
			return err
		}
		return ld.LoadSeo(gctx)
	})
	g.Go(func() error { return ld.LoadBanners(gctx) })
	g.Go(func() error { return ld.LoadOrders(gctx) })
	g.Go(func() error { return ld.LoadUsers(gctx) })
	g.Go(func() error { return ld.LoadShippings(gctx) })
	return g.Wait()
}
