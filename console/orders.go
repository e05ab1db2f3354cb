package console

import (
	"context"
	"fmt"
	"strings"
	"time"

	"ecadmin/apiclient"
	"ecadmin/model"
	"ecadmin/validation"
)

// SetOrderStatus は注文のステータスを変更します。
func (c *Console) SetOrderStatus(ctx context.Context, displayID int, status model.OrderStatus) error {
	if !status.Valid() {
		errs := validation.FieldErrors{}
		errs.Add("status", "Must be one of: Pending Processing Shipped Delivered Cancelled.")
		return errs
	}
	cur, err := find(c.store.Orders, displayID)
	if err != nil {
		return err
	}
	body := map[string]string{"status": string(status)}
	return c.coord.RunE(ctx, "orders", c.put(apiclient.ItemPath(apiclient.PathOrders, cur.RealID), body), func(apiclient.Result) {
		c.store.Orders.Update(model.OrderRecord{Ref: model.Ref{ID: displayID}, Status: status})
	})
}

// ShippingInput は配送登録フォームです。Event は任意の追跡イベント1件です。
type ShippingInput struct {
	OrderID           string               `json:"orderId" validate:"required"`
	ShippingMethodID  string               `json:"shippingMethodId" validate:"required"`
	TrackingNumber    string               `json:"trackingNumber"`
	EstimatedDelivery time.Time            `json:"estimatedDelivery"`
	Event             *model.TrackingEvent `json:"event"`
}

type shippingBody struct {
	OrderID           string                `json:"orderId,omitempty"`
	ShippingMethodID  string                `json:"shippingMethodId,omitempty"`
	TrackingNumber    *string               `json:"trackingNumber"`
	EstimatedDelivery *string               `json:"estimatedDelivery"`
	TrackingEvents    []model.TrackingEvent `json:"trackingEvents"`
}

// SaveShipping は配送情報を登録・更新します。
// Updates address the tracking record by order id and replace it in the store.
func (c *Console) SaveShipping(ctx context.Context, displayID int, in ShippingInput) error {
	if err := validation.Struct(in).Err(); err != nil {
		return err
	}

	events := []model.TrackingEvent{}
	if in.Event != nil && in.Event.EventDate != "" && in.Event.Status != "" {
		events = append(events, *in.Event)
	}
	var eta *string
	if !in.EstimatedDelivery.IsZero() {
		s := in.EstimatedDelivery.UTC().Format(time.RFC3339)
		eta = &s
	}
	body := shippingBody{
		TrackingNumber:    nullable(strings.TrimSpace(in.TrackingNumber)),
		EstimatedDelivery: eta,
		TrackingEvents:    events,
	}
	rec := model.ShippingRecord{
		Ref:              model.Ref{RealID: in.OrderID},
		OrderID:          in.OrderID,
		OrderNumber:      model.OrderNumber(in.OrderID),
		TrackingNumber:   strings.TrimSpace(in.TrackingNumber),
		ShippingMethodID: in.ShippingMethodID,
		Carrier:          model.CarrierName(c.store.ShippingMethods(), in.ShippingMethodID),
		TrackingEvents:   events,
	}
	if eta != nil {
		rec.EstimatedDelivery = *eta
	}

	if displayID == 0 {
		body.OrderID = in.OrderID
		body.ShippingMethodID = in.ShippingMethodID
		return c.coord.RunE(ctx, "shippings", c.post(apiclient.PathTracking, body), func(apiclient.Result) {
			c.store.Shippings.Add(rec)
		})
	}

	cur, err := find(c.store.Shippings, displayID)
	if err != nil {
		return err
	}
	return c.coord.RunE(ctx, "shippings", c.put(apiclient.ItemPath(apiclient.PathTracking, cur.OrderID), body), func(apiclient.Result) {
		rec.Ref = model.Ref{RealID: cur.RealID}
		rec.OrderID = cur.OrderID
		rec.OrderNumber = cur.OrderNumber
		c.store.Shippings.Update(rec)
	})
}

// GenerateSalesReport はサーバー側で売上レポートを作成させます。日付は両端を含みます。
func (c *Console) GenerateSalesReport(ctx context.Context, from, to time.Time) error {
	if from.IsZero() || to.IsZero() {
		errs := validation.FieldErrors{}
		errs.Add("dates", "Please select both start and end dates")
		return errs
	}
	if to.Before(from) {
		return fmt.Errorf("invalid report range: %s is after %s", from.Format("2006-01-02"), to.Format("2006-01-02"))
	}
	return c.coord.RunE(ctx, "reports", c.post(apiclient.SalesReportPath(from, to), struct{}{}), nil)
}
