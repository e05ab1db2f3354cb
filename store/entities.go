package store

import (
	"sync"

	"ecadmin/model"
)

// エンティティごとの更新ルール。
// Banners, SEO entries and shippings are replaced by real id; the rest are merged by
// display id and only the listed fields change.

var BannerConfig = EntityConfig[model.BannerRecord]{Name: "banners", Locate: ByRealID}

var SeoConfig = EntityConfig[model.SeoRecord]{Name: "seo", Locate: ByRealID}

var ShippingConfig = EntityConfig[model.ShippingRecord]{Name: "shippings", Locate: ByRealID}

var CategoryConfig = EntityConfig[model.CategoryRecord]{
	Name:   "categories",
	Locate: ByDisplayID,
	Merge: func(dst *model.CategoryRecord, src model.CategoryRecord) {
		dst.Name = src.Name
		dst.ParentName = src.ParentName
	},
}

var InventoryConfig = EntityConfig[model.InventoryRecord]{
	Name:   "inventory",
	Locate: ByDisplayID,
	Merge: func(dst *model.InventoryRecord, src model.InventoryRecord) {
		dst.ProductID = src.ProductID
		dst.ProductName = src.ProductName
		dst.Quantity = src.Quantity
	},
}

var ProductConfig = EntityConfig[model.ProductRecord]{
	Name:   "products",
	Locate: ByDisplayID,
	Merge: func(dst *model.ProductRecord, src model.ProductRecord) {
		dst.Name = src.Name
		dst.SKU = src.SKU
		dst.Price = src.Price
		dst.DiscountPrice = src.DiscountPrice
		dst.CategoryID = src.CategoryID
		dst.CategoryName = src.CategoryName
	},
}

var UserConfig = EntityConfig[model.UserRecord]{
	Name:   "users",
	Locate: ByDisplayID,
	Merge: func(dst *model.UserRecord, src model.UserRecord) {
		dst.FirstName = src.FirstName
		dst.LastName = src.LastName
		dst.Email = src.Email
		dst.PhoneNumber = src.PhoneNumber
	},
}

var OrderConfig = EntityConfig[model.OrderRecord]{
	Name:   "orders",
	Locate: ByDisplayID,
	Merge: func(dst *model.OrderRecord, src model.OrderRecord) {
		dst.Status = src.Status
	},
}

// Store は画面全体で共有する一覧の入れ物です。呼び出し側が生成して渡します。
type Store struct {
	Products   *Collection[model.ProductRecord, *model.ProductRecord]
	Categories *Collection[model.CategoryRecord, *model.CategoryRecord]
	Inventory  *Collection[model.InventoryRecord, *model.InventoryRecord]
	Banners    *Collection[model.BannerRecord, *model.BannerRecord]
	Seo        *Collection[model.SeoRecord, *model.SeoRecord]
	Orders     *Collection[model.OrderRecord, *model.OrderRecord]
	Shippings  *Collection[model.ShippingRecord, *model.ShippingRecord]
	Users      *Collection[model.UserRecord, *model.UserRecord]

	// 配送方法はマスタなので表示IDを持ちません。
	methodsMu       sync.RWMutex
	shippingMethods []model.ShippingMethod
}

type Option func(*storeOptions)

type storeOptions struct {
	policy AddPolicy
}

// WithAddPolicy selects how Add numbers new records in every collection.
func WithAddPolicy(p AddPolicy) Option {
	return func(o *storeOptions) { o.policy = p }
}

func New(opts ...Option) *Store {
	o := storeOptions{policy: AppendMax}
	for _, fn := range opts {
		fn(&o)
	}
	return &Store{
		Products:   NewCollection[model.ProductRecord](ProductConfig, o.policy),
		Categories: NewCollection[model.CategoryRecord](CategoryConfig, o.policy),
		Inventory:  NewCollection[model.InventoryRecord](InventoryConfig, o.policy),
		Banners:    NewCollection[model.BannerRecord](BannerConfig, o.policy),
		Seo:        NewCollection[model.SeoRecord](SeoConfig, o.policy),
		Orders:     NewCollection[model.OrderRecord](OrderConfig, o.policy),
		Shippings:  NewCollection[model.ShippingRecord](ShippingConfig, o.policy),
		Users:      NewCollection[model.UserRecord](UserConfig, o.policy),
	}
}

// CategoryNames は親カテゴリの存在確認に使う名前集合です。
func (s *Store) CategoryNames() map[string]bool {
	names := make(map[string]bool)
	for _, c := range s.Categories.All() {
		names[c.Name] = true
	}
	return names
}

func (s *Store) SetShippingMethods(methods []model.ShippingMethod) {
	next := make([]model.ShippingMethod, len(methods))
	copy(next, methods)

	s.methodsMu.Lock()
	s.shippingMethods = next
	s.methodsMu.Unlock()
}

func (s *Store) ShippingMethods() []model.ShippingMethod {
	s.methodsMu.RLock()
	defer s.methodsMu.RUnlock()

	out := make([]model.ShippingMethod, len(s.shippingMethods))
	copy(out, s.shippingMethods)
	return out
}
