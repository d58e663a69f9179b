// Package messaging carries notifications from the payment and logistics
// side to the order side, either by direct call or over Kafka.
package messaging

import (
	"context"

	"order-fulfillment/internal/pkg/errs"
	"order-fulfillment/internal/usecase/commands"
	"order-fulfillment/internal/usecase/shared"

	"github.com/google/uuid"
)

// lookupOrder serves GetOrderInfo for both transports; order reads never
// travel over the broker.
func lookupOrder(ctx context.Context, orders shared.OrderRepository, orderID uuid.UUID) (*shared.OrderInfo, error) {
	o, err := orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, errs.Wrapf(err, "load order %s", orderID)
	}
	if o == nil {
		return nil, nil
	}
	return &shared.OrderInfo{
		OrderID:     o.ID(),
		CustomerID:  o.CustomerID(),
		TotalAmount: o.Total(),
		Status:      o.Status(),
	}, nil
}

// InProcessOrderClient calls the order notification handlers directly.
type InProcessOrderClient struct {
	orders        shared.OrderRepository
	notifications commands.OrderNotifications
}

func NewInProcessOrderClient(orders shared.OrderRepository, notifications commands.OrderNotifications) *InProcessOrderClient {
	return &InProcessOrderClient{orders: orders, notifications: notifications}
}

var _ shared.OrderService = (*InProcessOrderClient)(nil)

func (c *InProcessOrderClient) GetOrderInfo(ctx context.Context, orderID uuid.UUID) (*shared.OrderInfo, error) {
	return lookupOrder(ctx, c.orders, orderID)
}

func (c *InProcessOrderClient) NotifyPaymentComplete(ctx context.Context, orderID, paymentID uuid.UUID) error {
	return c.notifications.ApplyPaymentCompleted(ctx, orderID, paymentID)
}

func (c *InProcessOrderClient) NotifyPaymentFailed(ctx context.Context, orderID, paymentID uuid.UUID, reason string) error {
	return c.notifications.ApplyPaymentFailed(ctx, orderID, paymentID, reason)
}

func (c *InProcessOrderClient) NotifyPaymentRefunded(ctx context.Context, orderID, paymentID uuid.UUID) error {
	return c.notifications.ApplyPaymentRefunded(ctx, orderID, paymentID)
}

func (c *InProcessOrderClient) NotifyShipmentCreated(ctx context.Context, orderID, shipmentID uuid.UUID, trackingNumber string) error {
	return c.notifications.ApplyShipmentCreated(ctx, orderID, shipmentID, trackingNumber)
}

func (c *InProcessOrderClient) NotifyShipmentInTransit(ctx context.Context, orderID uuid.UUID, trackingNumber string) error {
	return c.notifications.ApplyShipmentInTransit(ctx, orderID, trackingNumber)
}

func (c *InProcessOrderClient) NotifyShipmentDelivered(ctx context.Context, orderID uuid.UUID) error {
	return c.notifications.ApplyShipmentDelivered(ctx, orderID)
}

func (c *InProcessOrderClient) NotifyShipmentFailed(ctx context.Context, orderID uuid.UUID, reason string) error {
	return c.notifications.ApplyShipmentFailed(ctx, orderID, reason)
}
