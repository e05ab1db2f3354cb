package model

import "strings"

// OrderNumberPrefix is prepended to an order id to build the customer-facing order number.
const OrderNumberPrefix = "B-"

func OrderNumber(orderID string) string {
	return OrderNumberPrefix + orderID
}

// OrderIDFromNumber strips OrderNumberPrefix.
func OrderIDFromNumber(orderNumber string) string {
	return strings.TrimPrefix(orderNumber, OrderNumberPrefix)
}

type TrackingEvent struct {
	EventDate string  `json:"eventDate"`
	Status    string  `json:"status"`
	Location  *string `json:"location"`
}

// ShippingMethod は配送方法マスタです。
type ShippingMethod struct {
	ShippingMethodID string `json:"shippingMethodId"`
	Name             string `json:"name"`
}

// ShippingRecord は配送追跡の1レコードです。
// Its RealID is the order id, which is what the tracking endpoints are keyed by.
type ShippingRecord struct {
	Ref
	OrderID           string          `json:"orderId"`
	OrderNumber       string          `json:"orderNumber"`
	TrackingNumber    string          `json:"trackingNumber"`
	EstimatedDelivery string          `json:"estimatedDelivery"`
	ShippingMethodID  string          `json:"shippingMethodId"`
	Carrier           string          `json:"carrier"`
	TrackingEvents    []TrackingEvent `json:"trackingEvents"`
}

// CarrierName は配送方法IDから名称を解決します。見つからない場合は "N/A" です。
func CarrierName(methods []ShippingMethod, methodID string) string {
	for _, m := range methods {
		if m.ShippingMethodID == methodID {
			return m.Name
		}
	}
	return "N/A"
}

// MethodIDByName is the reverse lookup used when a tracking record only names its carrier.
func MethodIDByName(methods []ShippingMethod, name string) string {
	for _, m := range methods {
		if m.Name == name {
			return m.ShippingMethodID
		}
	}
	return ""
}
