package shared

import (
	"context"

	"order-fulfillment/internal/domain/money"
	"order-fulfillment/internal/domain/order"
	"order-fulfillment/internal/domain/payment"
	"order-fulfillment/internal/domain/shipment"

	"github.com/google/uuid"
)

type ProductInfo struct {
	ProductID      uuid.UUID
	Name           string
	SKU            string
	Price          money.Money
	AvailableStock int
	Active         bool
}

type ProductService interface {
	// GetProductInfo returns nil, nil for unknown products.
	GetProductInfo(ctx context.Context, productID uuid.UUID) (*ProductInfo, error)
	IsStockAvailable(ctx context.Context, productID uuid.UUID, quantity int) (bool, error)
}

type OrderInfo struct {
	OrderID     uuid.UUID
	CustomerID  uuid.UUID
	TotalAmount money.Money
	Status      order.Status
}

// OrderService is what the payment and logistics sides see of orders. The
// Notify calls are one-way: callers log and count their errors and never
// roll back local state because of them.
type OrderService interface {
	GetOrderInfo(ctx context.Context, orderID uuid.UUID) (*OrderInfo, error)
	NotifyPaymentComplete(ctx context.Context, orderID, paymentID uuid.UUID) error
	NotifyPaymentFailed(ctx context.Context, orderID, paymentID uuid.UUID, reason string) error
	NotifyPaymentRefunded(ctx context.Context, orderID, paymentID uuid.UUID) error
	NotifyShipmentCreated(ctx context.Context, orderID, shipmentID uuid.UUID, trackingNumber string) error
	NotifyShipmentInTransit(ctx context.Context, orderID uuid.UUID, trackingNumber string) error
	NotifyShipmentDelivered(ctx context.Context, orderID uuid.UUID) error
	NotifyShipmentFailed(ctx context.Context, orderID uuid.UUID, reason string) error
}

type GatewayRequest struct {
	PaymentID  uuid.UUID
	OrderID    uuid.UUID
	Amount     money.Money
	Method     payment.Method
	CardNumber string
}

type RefundRequest struct {
	PaymentID     uuid.UUID
	TransactionID string
	Amount        money.Money
	Reason        string
}

// GatewayResult carries either a transaction id or an error code and message.
type GatewayResult struct {
	Success       bool
	TransactionID string
	ErrorCode     string
	ErrorMessage  string
}

type PaymentGateway interface {
	ProcessPayment(ctx context.Context, req GatewayRequest) (GatewayResult, error)
	ProcessRefund(ctx context.Context, req RefundRequest) (GatewayResult, error)
}

type LogisticsProvider interface {
	RegisterShipment(ctx context.Context, s *shipment.Shipment) error
	TrackingStatus(ctx context.Context, trackingNumber string) (string, error)
}

// Notification outcomes and aggregates used as metric labels.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"

	AggregateOrder   = "order"
	AggregatePayment = "payment"
)

type Metrics interface {
	NotificationSent(event, outcome string)
	Expired(aggregate string, n int)
	PaymentProcessed(method payment.Method, outcome string)
}

type NopMetrics struct{}

func (NopMetrics) NotificationSent(string, string)         {}
func (NopMetrics) Expired(string, int)                     {}
func (NopMetrics) PaymentProcessed(payment.Method, string) {}
