package queries

import (
	"time"

	"order-fulfillment/internal/domain/address"
	"order-fulfillment/internal/domain/discount"
	"order-fulfillment/internal/domain/order"
	"order-fulfillment/internal/domain/payment"
	"order-fulfillment/internal/domain/shipment"

	"github.com/google/uuid"
)

// Read models. Money amounts are fixed two-decimal strings.

type AddressView struct {
	Street        string
	City          string
	District      string
	PostalCode    string
	Country       string
	RecipientName string
	PhoneNumber   string
	FullAddress   string
}

type OrderItemView struct {
	ProductID   uuid.UUID
	ProductName string
	SKU         string
	UnitPrice   string
	Quantity    int
	Subtotal    string
}

type OrderView struct {
	ID                 uuid.UUID
	CustomerID         uuid.UUID
	Items              []OrderItemView
	ShippingAddress    AddressView
	Subtotal           string
	Discount           string
	Total              string
	Currency           string
	CouponCode         *string
	Status             string
	PaymentID          *uuid.UUID
	TrackingNumber     string
	CancellationReason string
	RefundRequired     bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
	PaidAt             *time.Time
	ShippedAt          *time.Time
	DeliveredAt        *time.Time
	CancelledAt        *time.Time
}

type PaymentView struct {
	ID             uuid.UUID
	OrderID        uuid.UUID
	CustomerID     uuid.UUID
	Amount         string
	Currency       string
	Method         string
	Status         string
	TransactionID  string
	FailureReason  string
	RefundedAmount string
	RefundReason   string
	CreatedAt      time.Time
	UpdatedAt      time.Time
	CompletedAt    *time.Time
	FailedAt       *time.Time
	RefundedAt     *time.Time
}

type TrackingEventView struct {
	ID          uuid.UUID
	Description string
	Location    *string
	Timestamp   time.Time
}

type ShipmentView struct {
	ID                    uuid.UUID
	OrderID               uuid.UUID
	CustomerID            uuid.UUID
	Carrier               string
	CarrierName           string
	TrackingNumber        string
	TrackingURL           string
	Address               AddressView
	Status                string
	Events                []TrackingEventView
	FailureReason         string
	EstimatedDeliveryDate *time.Time
	ShippedAt             *time.Time
	DeliveredAt           *time.Time
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

type CartItemView struct {
	ProductID   uuid.UUID
	ProductName string
	SKU         string
	UnitPrice   string
	Quantity    int
	Subtotal    string
}

type CartView struct {
	CustomerID    uuid.UUID
	Items         []CartItemView
	Total         string
	Currency      string
	TotalQuantity int
	UpdatedAt     time.Time
}

type RuleView struct {
	Type         string
	Value        string
	MinimumOrder *string
}

type PromotionView struct {
	ID          uuid.UUID
	Name        string
	Description string
	Rule        RuleView
	StartsAt    time.Time
	EndsAt      time.Time
	Active      bool
}

type CouponView struct {
	ID                 uuid.UUID
	Code               string
	Description        string
	Rule               RuleView
	ExpiresAt          time.Time
	MaxUses            *int
	MaxUsesPerCustomer *int
	UsageCount         int
	Active             bool
}

func NewAddressView(a address.Address) AddressView {
	return AddressView{
		Street:        a.Street(),
		City:          a.City(),
		District:      a.District(),
		PostalCode:    a.PostalCode(),
		Country:       a.Country(),
		RecipientName: a.RecipientName(),
		PhoneNumber:   a.PhoneNumber(),
		FullAddress:   a.FullAddress(),
	}
}

func NewOrderView(o *order.Order) *OrderView {
	items := make([]OrderItemView, 0, len(o.Items()))
	for _, it := range o.Items() {
		items = append(items, OrderItemView{
			ProductID:   it.ProductID(),
			ProductName: it.Name(),
			SKU:         it.SKU(),
			UnitPrice:   it.UnitPrice().StringFixed(),
			Quantity:    it.Quantity().Int(),
			Subtotal:    it.Subtotal().StringFixed(),
		})
	}
	return &OrderView{
		ID:                 o.ID(),
		CustomerID:         o.CustomerID(),
		Items:              items,
		ShippingAddress:    NewAddressView(o.ShippingAddress()),
		Subtotal:           o.Subtotal().StringFixed(),
		Discount:           o.Discount().StringFixed(),
		Total:              o.Total().StringFixed(),
		Currency:           o.Currency().String(),
		CouponCode:         o.CouponCode(),
		Status:             o.Status().String(),
		PaymentID:          o.PaymentID(),
		TrackingNumber:     o.TrackingNumber(),
		CancellationReason: o.CancellationReason(),
		RefundRequired:     o.RefundRequired(),
		CreatedAt:          o.CreatedAt(),
		UpdatedAt:          o.UpdatedAt(),
		PaidAt:             o.PaidAt(),
		ShippedAt:          o.ShippedAt(),
		DeliveredAt:        o.DeliveredAt(),
		CancelledAt:        o.CancelledAt(),
	}
}

func NewPaymentView(p *payment.Payment) *PaymentView {
	return &PaymentView{
		ID:             p.ID(),
		OrderID:        p.OrderID(),
		CustomerID:     p.CustomerID(),
		Amount:         p.Amount().StringFixed(),
		Currency:       p.Amount().Currency().String(),
		Method:         p.Method().String(),
		Status:         p.Status().String(),
		TransactionID:  p.TransactionID(),
		FailureReason:  p.FailureReason(),
		RefundedAmount: p.RefundedAmount().StringFixed(),
		RefundReason:   p.RefundReason(),
		CreatedAt:      p.CreatedAt(),
		UpdatedAt:      p.UpdatedAt(),
		CompletedAt:    p.CompletedAt(),
		FailedAt:       p.FailedAt(),
		RefundedAt:     p.RefundedAt(),
	}
}

func NewShipmentView(s *shipment.Shipment) *ShipmentView {
	events := make([]TrackingEventView, 0, len(s.Events()))
	for _, e := range s.Events() {
		events = append(events, TrackingEventView{
			ID:          e.ID(),
			Description: e.Description(),
			Location:    e.Location(),
			Timestamp:   e.Timestamp(),
		})
	}
	return &ShipmentView{
		ID:                    s.ID(),
		OrderID:               s.OrderID(),
		CustomerID:            s.CustomerID(),
		Carrier:               s.Carrier().String(),
		CarrierName:           s.Carrier().DisplayName(),
		TrackingNumber:        s.TrackingNumber(),
		TrackingURL:           s.TrackingURL(),
		Address:               NewAddressView(s.Address()),
		Status:                s.Status().String(),
		Events:                events,
		FailureReason:         s.FailureReason(),
		EstimatedDeliveryDate: s.EstimatedDeliveryDate(),
		ShippedAt:             s.ShippedAt(),
		DeliveredAt:           s.DeliveredAt(),
		CreatedAt:             s.CreatedAt(),
		UpdatedAt:             s.UpdatedAt(),
	}
}

func NewCartView(c *order.Cart) *CartView {
	items := make([]CartItemView, 0, c.ItemCount())
	for _, it := range c.Items() {
		items = append(items, CartItemView{
			ProductID:   it.ProductID,
			ProductName: it.Name,
			SKU:         it.SKU,
			UnitPrice:   it.UnitPrice.StringFixed(),
			Quantity:    it.Quantity.Int(),
			Subtotal:    it.Subtotal().StringFixed(),
		})
	}
	total := c.Total()
	return &CartView{
		CustomerID:    c.CustomerID(),
		Items:         items,
		Total:         total.StringFixed(),
		Currency:      total.Currency().String(),
		TotalQuantity: c.TotalQuantity(),
		UpdatedAt:     c.UpdatedAt(),
	}
}

func NewRuleView(r discount.Rule) RuleView {
	v := RuleView{Type: r.Type().String(), Value: r.Value().StringFixed(2)}
	if m := r.MinimumOrder(); m != nil {
		s := m.StringFixed()
		v.MinimumOrder = &s
	}
	return v
}

func NewPromotionView(p *discount.Promotion, now time.Time) *PromotionView {
	return &PromotionView{
		ID:          p.ID(),
		Name:        p.Name(),
		Description: p.Description(),
		Rule:        NewRuleView(p.Rule()),
		StartsAt:    p.StartsAt(),
		EndsAt:      p.EndsAt(),
		Active:      p.IsActive(now),
	}
}

func NewCouponView(c *discount.Coupon) *CouponView {
	return &CouponView{
		ID:                 c.ID(),
		Code:               c.Code().String(),
		Description:        c.Description(),
		Rule:               NewRuleView(c.Rule()),
		ExpiresAt:          c.ExpiresAt(),
		MaxUses:            c.Limits().MaxUses,
		MaxUsesPerCustomer: c.Limits().MaxUsesPerCustomer,
		UsageCount:         c.UsageCount(),
		Active:             c.IsActive(),
	}
}
