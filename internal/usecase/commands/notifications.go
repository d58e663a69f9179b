package commands

//go:generate mockgen -source=notifications.go -destination=../../../tests/mock/commands/notifications.go -package=commandsmock

import (
	"context"
	"log/slog"

	"order-fulfillment/internal/domain/order"
	"order-fulfillment/internal/pkg/clock"
	"order-fulfillment/internal/pkg/errs"
	"order-fulfillment/internal/usecase/shared"

	"github.com/google/uuid"
)

// OrderNotifications applies peer notifications to orders. Every handler is
// idempotent: a notification whose effect is already visible succeeds
// without touching the order.
type OrderNotifications interface {
	ApplyPaymentCompleted(ctx context.Context, orderID, paymentID uuid.UUID) error
	ApplyPaymentFailed(ctx context.Context, orderID, paymentID uuid.UUID, reason string) error
	ApplyPaymentRefunded(ctx context.Context, orderID, paymentID uuid.UUID) error
	ApplyShipmentCreated(ctx context.Context, orderID, shipmentID uuid.UUID, trackingNumber string) error
	ApplyShipmentInTransit(ctx context.Context, orderID uuid.UUID, trackingNumber string) error
	ApplyShipmentDelivered(ctx context.Context, orderID uuid.UUID) error
	ApplyShipmentFailed(ctx context.Context, orderID uuid.UUID, reason string) error
}

type orderNotificationsImpl struct {
	orders shared.OrderRepository
	locker shared.Locker
	clock  clock.Clock
}

func NewOrderNotifications(orders shared.OrderRepository, locker shared.Locker, clk clock.Clock) OrderNotifications {
	return &orderNotificationsImpl{orders: orders, locker: locker, clock: clk}
}

// update loads the order under its lock and saves it when fn reports a change.
func (n *orderNotificationsImpl) update(ctx context.Context, orderID uuid.UUID, fn func(o *order.Order) (bool, error)) error {
	return withLock(ctx, n.locker, shared.OrderLockKey(orderID), func() error {
		o, err := n.orders.FindByID(ctx, orderID)
		if err != nil {
			return err
		}
		if o == nil {
			return errs.Wrapf(ErrOrderNotFound, "order %s", orderID)
		}
		changed, err := fn(o)
		if err != nil || !changed {
			return err
		}
		return n.orders.Save(ctx, o)
	})
}

func (n *orderNotificationsImpl) ApplyPaymentCompleted(ctx context.Context, orderID, paymentID uuid.UUID) error {
	return n.update(ctx, orderID, func(o *order.Order) (bool, error) {
		if o.Status().HasReached(order.StatusPaid) {
			return false, nil
		}
		if err := o.MarkAsPaid(paymentID, n.clock.Now()); err != nil {
			slog.Error("payment completed for an order that can no longer be paid, refund needed",
				"order_id", orderID, "payment_id", paymentID, "status", o.Status())
			return false, err
		}
		return true, nil
	})
}

func (n *orderNotificationsImpl) ApplyPaymentFailed(ctx context.Context, orderID, paymentID uuid.UUID, reason string) error {
	// the order stays PENDING_PAYMENT so the customer can retry
	slog.Info("payment failed for order", "order_id", orderID, "payment_id", paymentID, "reason", reason)
	return nil
}

func (n *orderNotificationsImpl) ApplyPaymentRefunded(ctx context.Context, orderID, paymentID uuid.UUID) error {
	return n.update(ctx, orderID, func(o *order.Order) (bool, error) {
		if o.Status() == order.StatusRefunded {
			return false, nil
		}
		if err := o.MarkAsRefunded(n.clock.Now()); err != nil {
			return false, err
		}
		return true, nil
	})
}

func (n *orderNotificationsImpl) ApplyShipmentCreated(ctx context.Context, orderID, shipmentID uuid.UUID, trackingNumber string) error {
	return n.update(ctx, orderID, func(o *order.Order) (bool, error) {
		if o.TrackingNumber() == trackingNumber {
			return false, nil
		}
		if err := o.AttachTrackingNumber(trackingNumber, n.clock.Now()); err != nil {
			return false, err
		}
		slog.Info("shipment attached to order", "order_id", orderID, "shipment_id", shipmentID, "tracking_number", trackingNumber)
		return true, nil
	})
}

func (n *orderNotificationsImpl) ApplyShipmentInTransit(ctx context.Context, orderID uuid.UUID, trackingNumber string) error {
	return n.update(ctx, orderID, func(o *order.Order) (bool, error) {
		if o.Status().HasReached(order.StatusShipped) {
			return false, nil
		}
		if err := o.MarkAsShipped(trackingNumber, n.clock.Now()); err != nil {
			return false, err
		}
		return true, nil
	})
}

func (n *orderNotificationsImpl) ApplyShipmentDelivered(ctx context.Context, orderID uuid.UUID) error {
	return n.update(ctx, orderID, func(o *order.Order) (bool, error) {
		if o.Status() == order.StatusDelivered {
			return false, nil
		}
		now := n.clock.Now()
		// the in-transit notification was lost
		if o.Status() == order.StatusPaid {
			if err := o.MarkAsShipped("", now); err != nil {
				return false, err
			}
		}
		if err := o.MarkAsDelivered(now); err != nil {
			return false, err
		}
		return true, nil
	})
}

func (n *orderNotificationsImpl) ApplyShipmentFailed(ctx context.Context, orderID uuid.UUID, reason string) error {
	slog.Warn("delivery failed, manual handling required", "order_id", orderID, "reason", reason)
	return nil
}
