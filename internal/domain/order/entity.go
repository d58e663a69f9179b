package order

import (
	"slices"
	"strings"
	"time"

	"order-fulfillment/internal/domain/address"
	"order-fulfillment/internal/domain/money"
	"order-fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrEmptyCart                  = errs.Validation("order must contain at least one item")
	ErrMixedCurrencies            = errs.Validation("order items must share one currency")
	ErrShippingAddressRequired    = errs.Validation("shipping address is required")
	ErrCancellationReasonRequired = errs.Validation("cancellation reason is required")
	ErrTrackingNumberRequired     = errs.Validation("tracking number is required")
	ErrInvalidTransition          = errs.StateConflict("invalid order status transition")
)

type Order struct {
	id                 uuid.UUID
	customerID         uuid.UUID
	items              []Item
	shippingAddress    address.Address
	subtotal           money.Money
	discount           money.Money
	total              money.Money
	couponCode         *string
	status             Status
	paymentID          *uuid.UUID
	trackingNumber     string
	cancellationReason string
	refundRequired     bool
	version            int
	createdAt          time.Time
	updatedAt          time.Time
	paidAt             *time.Time
	shippedAt          *time.Time
	deliveredAt        *time.Time
	cancelledAt        *time.Time
}

// New builds a PENDING_PAYMENT order. The discount is capped at the subtotal
// so total = subtotal - discount always holds.
func New(customerID uuid.UUID, items []Item, shippingAddress address.Address, discount Discount, now time.Time) (*Order, error) {
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}
	if shippingAddress.IsZero() {
		return nil, ErrShippingAddressRequired
	}

	currency := items[0].UnitPrice().Currency()
	subtotal := money.Zero(currency)
	for _, it := range items {
		var err error
		subtotal, err = subtotal.Add(it.Subtotal())
		if err != nil {
			return nil, errs.Mark(err, ErrMixedCurrencies)
		}
	}

	applied := discount.Amount
	if applied.Currency() == "" || applied.IsZero() {
		applied = money.Zero(currency)
	}
	if applied.Currency() != currency {
		return nil, errs.Wrapf(ErrMixedCurrencies, "discount in %s, items in %s", applied.Currency(), currency)
	}
	applied = applied.Min(subtotal)
	total, err := subtotal.Subtract(applied)
	if err != nil {
		return nil, err
	}

	var coupon *string
	if discount.CouponCode != nil && strings.TrimSpace(*discount.CouponCode) != "" {
		code := strings.TrimSpace(*discount.CouponCode)
		coupon = &code
	}

	return &Order{
		id:              uuid.New(),
		customerID:      customerID,
		items:           slices.Clone(items),
		shippingAddress: shippingAddress,
		subtotal:        subtotal,
		discount:        applied,
		total:           total,
		couponCode:      coupon,
		status:          StatusPendingPayment,
		createdAt:       now,
		updatedAt:       now,
	}, nil
}

// Snapshot carries every persisted field; used by repositories only.
type Snapshot struct {
	ID                 uuid.UUID
	CustomerID         uuid.UUID
	Items              []Item
	ShippingAddress    address.Address
	Subtotal           money.Money
	Discount           money.Money
	Total              money.Money
	CouponCode         *string
	Status             Status
	PaymentID          *uuid.UUID
	TrackingNumber     string
	CancellationReason string
	RefundRequired     bool
	Version            int
	CreatedAt          time.Time
	UpdatedAt          time.Time
	PaidAt             *time.Time
	ShippedAt          *time.Time
	DeliveredAt        *time.Time
	CancelledAt        *time.Time
}

func Reconstruct(s Snapshot) *Order {
	return &Order{
		id:                 s.ID,
		customerID:         s.CustomerID,
		items:              slices.Clone(s.Items),
		shippingAddress:    s.ShippingAddress,
		subtotal:           s.Subtotal,
		discount:           s.Discount,
		total:              s.Total,
		couponCode:         s.CouponCode,
		status:             s.Status,
		paymentID:          s.PaymentID,
		trackingNumber:     s.TrackingNumber,
		cancellationReason: s.CancellationReason,
		refundRequired:     s.RefundRequired,
		version:            s.Version,
		createdAt:          s.CreatedAt,
		updatedAt:          s.UpdatedAt,
		paidAt:             s.PaidAt,
		shippedAt:          s.ShippedAt,
		deliveredAt:        s.DeliveredAt,
		cancelledAt:        s.CancelledAt,
	}
}

func (o *Order) Snapshot() Snapshot {
	return Snapshot{
		ID:                 o.id,
		CustomerID:         o.customerID,
		Items:              slices.Clone(o.items),
		ShippingAddress:    o.shippingAddress,
		Subtotal:           o.subtotal,
		Discount:           o.discount,
		Total:              o.total,
		CouponCode:         o.couponCode,
		Status:             o.status,
		PaymentID:          o.paymentID,
		TrackingNumber:     o.trackingNumber,
		CancellationReason: o.cancellationReason,
		RefundRequired:     o.refundRequired,
		Version:            o.version,
		CreatedAt:          o.createdAt,
		UpdatedAt:          o.updatedAt,
		PaidAt:             o.paidAt,
		ShippedAt:          o.shippedAt,
		DeliveredAt:        o.deliveredAt,
		CancelledAt:        o.cancelledAt,
	}
}

func (o *Order) transitionError(action string) error {
	return errs.Wrapf(ErrInvalidTransition, "cannot %s order %s in status %s", action, o.id, o.status)
}

func (o *Order) MarkAsPaid(paymentID uuid.UUID, now time.Time) error {
	if !o.status.CanPay() {
		return o.transitionError("pay")
	}
	o.status = StatusPaid
	o.paymentID = &paymentID
	o.paidAt = &now
	o.updatedAt = now
	return nil
}

// AttachTrackingNumber records the shipment's tracking number without a
// status change; allowed once the order is paid.
func (o *Order) AttachTrackingNumber(trackingNumber string, now time.Time) error {
	if o.status != StatusPaid && o.status != StatusShipped {
		return o.transitionError("attach tracking number to")
	}
	trackingNumber = strings.TrimSpace(trackingNumber)
	if trackingNumber == "" {
		return ErrTrackingNumberRequired
	}
	o.trackingNumber = trackingNumber
	o.updatedAt = now
	return nil
}

func (o *Order) MarkAsShipped(trackingNumber string, now time.Time) error {
	if !o.status.CanShip() {
		return o.transitionError("ship")
	}
	trackingNumber = strings.TrimSpace(trackingNumber)
	if trackingNumber == "" {
		trackingNumber = o.trackingNumber
	}
	if trackingNumber == "" {
		return ErrTrackingNumberRequired
	}
	o.status = StatusShipped
	o.trackingNumber = trackingNumber
	o.shippedAt = &now
	o.updatedAt = now
	return nil
}

func (o *Order) MarkAsDelivered(now time.Time) error {
	if !o.status.CanDeliver() {
		return o.transitionError("deliver")
	}
	o.status = StatusDelivered
	o.deliveredAt = &now
	o.updatedAt = now
	return nil
}

// Cancel flags a refund as required when the order was already paid.
func (o *Order) Cancel(reason string, now time.Time) error {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return ErrCancellationReasonRequired
	}
	if !o.status.CanCancel() {
		return o.transitionError("cancel")
	}
	o.refundRequired = o.status == StatusPaid
	o.status = StatusCancelled
	o.cancellationReason = reason
	o.cancelledAt = &now
	o.updatedAt = now
	return nil
}

func (o *Order) ExpirePayment(now time.Time) error {
	if !o.status.CanExpire() {
		return o.transitionError("expire")
	}
	o.status = StatusPaymentExpired
	o.updatedAt = now
	return nil
}

func (o *Order) CanRefund() bool {
	if o.status == StatusCancelled {
		return o.refundRequired
	}
	return o.status.CanRefund()
}

func (o *Order) MarkAsRefunded(now time.Time) error {
	if !o.CanRefund() {
		return o.transitionError("refund")
	}
	o.status = StatusRefunded
	o.refundRequired = false
	o.updatedAt = now
	return nil
}

func (o *Order) IsOwnedBy(customerID uuid.UUID) bool {
	return o.customerID == customerID
}

func (o *Order) TotalQuantity() int {
	n := 0
	for _, it := range o.items {
		n += it.Quantity().Int()
	}
	return n
}

func (o *Order) ID() uuid.UUID                    { return o.id }
func (o *Order) CustomerID() uuid.UUID            { return o.customerID }
func (o *Order) Items() []Item                    { return slices.Clone(o.items) }
func (o *Order) ShippingAddress() address.Address { return o.shippingAddress }
func (o *Order) Subtotal() money.Money            { return o.subtotal }
func (o *Order) Discount() money.Money            { return o.discount }
func (o *Order) Total() money.Money               { return o.total }
func (o *Order) Currency() money.Currency         { return o.total.Currency() }
func (o *Order) CouponCode() *string              { return o.couponCode }
func (o *Order) Status() Status                   { return o.status }
func (o *Order) PaymentID() *uuid.UUID            { return o.paymentID }
func (o *Order) TrackingNumber() string           { return o.trackingNumber }
func (o *Order) CancellationReason() string       { return o.cancellationReason }
func (o *Order) RefundRequired() bool             { return o.refundRequired }
func (o *Order) Version() int                     { return o.version }
func (o *Order) CreatedAt() time.Time             { return o.createdAt }
func (o *Order) UpdatedAt() time.Time             { return o.updatedAt }
func (o *Order) PaidAt() *time.Time               { return o.paidAt }
func (o *Order) ShippedAt() *time.Time            { return o.shippedAt }
func (o *Order) DeliveredAt() *time.Time          { return o.deliveredAt }
func (o *Order) CancelledAt() *time.Time          { return o.cancelledAt }
func (o *Order) IncrementVersion()                { o.version++ }
