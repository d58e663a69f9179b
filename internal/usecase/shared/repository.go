package shared

import (
	"context"
	"time"

	"order-fulfillment/internal/domain/discount"
	"order-fulfillment/internal/domain/order"
	"order-fulfillment/internal/domain/payment"
	"order-fulfillment/internal/domain/shipment"
	"order-fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
)

// ErrConcurrentModification is returned by Save when the stored version no
// longer matches the aggregate's version.
var ErrConcurrentModification = errs.StateConflict("aggregate was modified concurrently")

// Repositories return (nil, nil) from single-item finders when nothing
// matches. Save inserts or updates, checks the optimistic version and
// increments it on success.

type OrderRepository interface {
	Save(ctx context.Context, o *order.Order) error
	FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error)
	FindByCustomerID(ctx context.Context, customerID uuid.UUID) ([]*order.Order, error)
	FindPendingPaymentOlderThan(ctx context.Context, cutoff time.Time) ([]*order.Order, error)
}

type PaymentRepository interface {
	Save(ctx context.Context, p *payment.Payment) error
	FindByID(ctx context.Context, id uuid.UUID) (*payment.Payment, error)
	FindByOrderID(ctx context.Context, orderID uuid.UUID) ([]*payment.Payment, error)
	FindByCustomerID(ctx context.Context, customerID uuid.UUID) ([]*payment.Payment, error)
	// FindPendingOlderThan returns PENDING and PROCESSING payments created before cutoff.
	FindPendingOlderThan(ctx context.Context, cutoff time.Time) ([]*payment.Payment, error)
}

type ShipmentRepository interface {
	Save(ctx context.Context, s *shipment.Shipment) error
	FindByID(ctx context.Context, id uuid.UUID) (*shipment.Shipment, error)
	FindByOrderID(ctx context.Context, orderID uuid.UUID) (*shipment.Shipment, error)
	// FindByTrackingNumber returns the most recently created match.
	FindByTrackingNumber(ctx context.Context, trackingNumber string) (*shipment.Shipment, error)
	FindByCustomerID(ctx context.Context, customerID uuid.UUID) ([]*shipment.Shipment, error)
}

type CouponRepository interface {
	Save(ctx context.Context, c *discount.Coupon) error
	FindByCode(ctx context.Context, code discount.Code) (*discount.Coupon, error)
	FindAll(ctx context.Context) ([]*discount.Coupon, error)
}

type PromotionRepository interface {
	Save(ctx context.Context, p *discount.Promotion) error
	FindByID(ctx context.Context, id uuid.UUID) (*discount.Promotion, error)
	FindAll(ctx context.Context) ([]*discount.Promotion, error)
}

type CartRepository interface {
	Save(ctx context.Context, c *order.Cart) error
	FindByCustomerID(ctx context.Context, customerID uuid.UUID) (*order.Cart, error)
	Delete(ctx context.Context, customerID uuid.UUID) error
}

// Locker serializes writers of one aggregate. The returned unlock must be
// called exactly once.
type Locker interface {
	Lock(ctx context.Context, key string) (func(), error)
}

func OrderLockKey(id uuid.UUID) string            { return "order:" + id.String() }
func PaymentLockKey(id uuid.UUID) string          { return "payment:" + id.String() }
func PaymentForOrderLockKey(id uuid.UUID) string  { return "payment:order:" + id.String() }
func ShipmentLockKey(id uuid.UUID) string         { return "shipment:" + id.String() }
func ShipmentForOrderLockKey(id uuid.UUID) string { return "shipment:order:" + id.String() }
func CouponLockKey(code discount.Code) string     { return "coupon:" + code.String() }
func PromotionLockKey(id uuid.UUID) string        { return "promotion:" + id.String() }
func CartLockKey(customerID uuid.UUID) string     { return "cart:" + customerID.String() }
