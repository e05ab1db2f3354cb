package console

import (
	"context"
	"strings"
	"time"

	"ecadmin/apiclient"
	"ecadmin/model"
	"ecadmin/validation"
)

// BannerInput はバナー編集フォームです。
type BannerInput struct {
	Title        string `json:"title" validate:"notblank"`
	ImageURL     string `json:"imageUrl"`
	LinkURL      string `json:"linkUrl" validate:"omitempty,url"`
	DisplayOrder int    `json:"displayOrder" validate:"gte=0"`
	IsActive     bool   `json:"isActive"`
}

// バナーの API は先頭大文字のキーを使います。
type bannerBody struct {
	Title        string `json:"Title"`
	ImageURL     string `json:"ImageUrl"`
	LinkURL      string `json:"LinkUrl"`
	DisplayOrder int    `json:"DisplayOrder"`
	IsActive     bool   `json:"IsActive"`
}

// SaveBanner はバナーを作成・更新します。
// An update without a new image keeps the current one; a new banner needs an image.
func (c *Console) SaveBanner(ctx context.Context, displayID int, in BannerInput) error {
	errs := validation.Struct(in)

	var cur model.BannerRecord
	if displayID != 0 {
		var err error
		if cur, err = find(c.store.Banners, displayID); err != nil {
			return err
		}
	}
	image := strings.TrimSpace(in.ImageURL)
	if image == "" {
		image = cur.ImageURL
	}
	if image == "" {
		errs.Add("imageUrl", "This field is required.")
	}
	if err := errs.Err(); err != nil {
		return err
	}

	body := bannerBody{
		Title:        strings.TrimSpace(in.Title),
		ImageURL:     image,
		LinkURL:      in.LinkURL,
		DisplayOrder: in.DisplayOrder,
		IsActive:     in.IsActive,
	}
	rec := model.BannerRecord{
		Title:        body.Title,
		ImageURL:     image,
		LinkURL:      in.LinkURL,
		DisplayOrder: in.DisplayOrder,
		IsActive:     in.IsActive,
	}

	if displayID == 0 {
		return c.coord.RunE(ctx, "banners", c.post(apiclient.PathBanners, body), func(res apiclient.Result) {
			rec.RealID = c.realIDFrom(res, func(ids model.CreatedID) string { return ids.BannerID })
			rec.CreatedAt = time.Now().UTC()
			c.store.Banners.Add(rec)
		})
	}

	return c.coord.RunE(ctx, "banners", c.put(apiclient.ItemPath(apiclient.PathBanners, cur.RealID), body), func(apiclient.Result) {
		rec.RealID = cur.RealID
		rec.CreatedAt = cur.CreatedAt
		c.store.Banners.Update(rec)
	})
}

func (c *Console) DeleteBanner(ctx context.Context, displayID int) (bool, error) {
	return deleteRecord(ctx, c, c.store.Banners, apiclient.PathBanners, displayID)
}

// SeoInput は SEO 設定フォームです。対象の商品は realId で選びます。
type SeoInput struct {
	ProductID       string `json:"productId" validate:"required"`
	MetaTitle       string `json:"metaTitle" validate:"notblank,max=60"`
	MetaDescription string `json:"metaDescription" validate:"notblank,max=160"`
}

type seoBody struct {
	PageType        string `json:"pageType"`
	PageID          string `json:"pageId"`
	MetaTitle       string `json:"metaTitle"`
	MetaDescription string `json:"metaDescription"`
}

func (c *Console) SaveSeo(ctx context.Context, displayID int, in SeoInput) error {
	if err := validation.Struct(in).Err(); err != nil {
		return err
	}

	productName := "N/A"
	if p, err := c.store.Products.FindByRealID(in.ProductID); err == nil {
		productName = p.Name
	}
	body := seoBody{
		PageType:        productName,
		PageID:          in.ProductID,
		MetaTitle:       strings.TrimSpace(in.MetaTitle),
		MetaDescription: strings.TrimSpace(in.MetaDescription),
	}
	rec := model.SeoRecord{
		ProductID:       in.ProductID,
		ProductName:     productName,
		MetaTitle:       body.MetaTitle,
		MetaDescription: body.MetaDescription,
	}

	if displayID == 0 {
		return c.coord.RunE(ctx, "seo", c.post(apiclient.PathSeo, body), func(res apiclient.Result) {
			rec.RealID = c.realIDFrom(res, func(ids model.CreatedID) string { return ids.SeoID })
			c.store.Seo.Add(rec)
		})
	}

	cur, err := find(c.store.Seo, displayID)
	if err != nil {
		return err
	}
	return c.coord.RunE(ctx, "seo", c.put(apiclient.ItemPath(apiclient.PathSeo, cur.RealID), body), func(apiclient.Result) {
		rec.RealID = cur.RealID
		c.store.Seo.Update(rec)
	})
}

func (c *Console) DeleteSeo(ctx context.Context, displayID int) (bool, error) {
	return deleteRecord(ctx, c, c.store.Seo, apiclient.PathSeo, displayID)
}
