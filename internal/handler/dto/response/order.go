package response

import (
	"time"

	"order-fulfillment/internal/usecase/queries"

	"github.com/google/uuid"
)

type AddressResponse struct {
	Street        string `json:"street"`
	City          string `json:"city"`
	District      string `json:"district,omitempty"`
	PostalCode    string `json:"postalCode"`
	Country       string `json:"country"`
	RecipientName string `json:"recipientName"`
	PhoneNumber   string `json:"phoneNumber"`
	FullAddress   string `json:"fullAddress"`
}

func FromAddressView(v queries.AddressView) AddressResponse {
	return AddressResponse{
		Street:        v.Street,
		City:          v.City,
		District:      v.District,
		PostalCode:    v.PostalCode,
		Country:       v.Country,
		RecipientName: v.RecipientName,
		PhoneNumber:   v.PhoneNumber,
		FullAddress:   v.FullAddress,
	}
}

type OrderItemResponse struct {
	ProductID   uuid.UUID `json:"productId"`
	ProductName string    `json:"productName"`
	SKU         string    `json:"sku,omitempty"`
	UnitPrice   string    `json:"unitPrice"`
	Quantity    int       `json:"quantity"`
	Subtotal    string    `json:"subtotal"`
}

type OrderResponse struct {
	ID                 uuid.UUID           `json:"id"`
	CustomerID         uuid.UUID           `json:"customerId"`
	Items              []OrderItemResponse `json:"items"`
	ShippingAddress    AddressResponse     `json:"shippingAddress"`
	Subtotal           string              `json:"subtotal"`
	Discount           string              `json:"discount"`
	Total              string              `json:"total"`
	Currency           string              `json:"currency"`
	CouponCode         *string             `json:"couponCode,omitempty"`
	Status             string              `json:"status"`
	PaymentID          *uuid.UUID          `json:"paymentId,omitempty"`
	TrackingNumber     string              `json:"trackingNumber,omitempty"`
	CancellationReason string              `json:"cancellationReason,omitempty"`
	RefundRequired     bool                `json:"refundRequired"`
	CreatedAt          time.Time           `json:"createdAt"`
	UpdatedAt          time.Time           `json:"updatedAt"`
	PaidAt             *time.Time          `json:"paidAt,omitempty"`
	ShippedAt          *time.Time          `json:"shippedAt,omitempty"`
	DeliveredAt        *time.Time          `json:"deliveredAt,omitempty"`
	CancelledAt        *time.Time          `json:"cancelledAt,omitempty"`
}

func FromOrderView(v *queries.OrderView) *OrderResponse {
	items := make([]OrderItemResponse, len(v.Items))
	for i, it := range v.Items {
		items[i] = OrderItemResponse{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			SKU:         it.SKU,
			UnitPrice:   it.UnitPrice,
			Quantity:    it.Quantity,
			Subtotal:    it.Subtotal,
		}
	}
	return &OrderResponse{
		ID:                 v.ID,
		CustomerID:         v.CustomerID,
		Items:              items,
		ShippingAddress:    FromAddressView(v.ShippingAddress),
		Subtotal:           v.Subtotal,
		Discount:           v.Discount,
		Total:              v.Total,
		Currency:           v.Currency,
		CouponCode:         v.CouponCode,
		Status:             v.Status,
		PaymentID:          v.PaymentID,
		TrackingNumber:     v.TrackingNumber,
		CancellationReason: v.CancellationReason,
		RefundRequired:     v.RefundRequired,
		CreatedAt:          v.CreatedAt,
		UpdatedAt:          v.UpdatedAt,
		PaidAt:             v.PaidAt,
		ShippedAt:          v.ShippedAt,
		DeliveredAt:        v.DeliveredAt,
		CancelledAt:        v.CancelledAt,
	}
}

func FromOrderViews(vs []*queries.OrderView) []*OrderResponse {
	out := make([]*OrderResponse, len(vs))
	for i, v := range vs {
		out[i] = FromOrderView(v)
	}
	return out
}

type CartItemResponse struct {
	ProductID   uuid.UUID `json:"productId"`
	ProductName string    `json:"productName"`
	SKU         string    `json:"sku,omitempty"`
	UnitPrice   string    `json:"unitPrice"`
	Quantity    int       `json:"quantity"`
	Subtotal    string    `json:"subtotal"`
}

type CartResponse struct {
	CustomerID    uuid.UUID          `json:"customerId"`
	Items         []CartItemResponse `json:"items"`
	Total         string             `json:"total"`
	Currency      string             `json:"currency"`
	TotalQuantity int                `json:"totalQuantity"`
	UpdatedAt     time.Time          `json:"updatedAt"`
}

func FromCartView(v *queries.CartView) *CartResponse {
	items := make([]CartItemResponse, len(v.Items))
	for i, it := range v.Items {
		items[i] = CartItemResponse{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			SKU:         it.SKU,
			UnitPrice:   it.UnitPrice,
			Quantity:    it.Quantity,
			Subtotal:    it.Subtotal,
		}
	}
	return &CartResponse{
		CustomerID:    v.CustomerID,
		Items:         items,
		Total:         v.Total,
		Currency:      v.Currency,
		TotalQuantity: v.TotalQuantity,
		UpdatedAt:     v.UpdatedAt,
	}
}
