package commands

import (
	"context"
	"log/slog"

	"order-fulfillment/internal/usecase/shared"
)

// withLock runs fn while holding key. Peer notifications and gateway calls
// must happen after it returns.
func withLock(ctx context.Context, locker shared.Locker, key string, fn func() error) error {
	unlock, err := locker.Lock(ctx, key)
	if err != nil {
		return err
	}
	defer unlock()
	return fn()
}

// Notification event names, also used as metric labels and Kafka event types.
const (
	EventPaymentCompleted  = "payment_completed"
	EventPaymentFailed     = "payment_failed"
	EventPaymentRefunded   = "payment_refunded"
	EventShipmentCreated   = "shipment_created"
	EventShipmentInTransit = "shipment_in_transit"
	EventShipmentDelivered = "shipment_delivered"
	EventShipmentFailed    = "shipment_failed"
)

// notifyPeer never fails the caller: the local transition is already
// committed and reconciliation picks up lost notifications.
func notifyPeer(ctx context.Context, metrics shared.Metrics, event string, fn func(ctx context.Context) error, attrs ...any) {
	if err := fn(ctx); err != nil {
		metrics.NotificationSent(event, shared.OutcomeFailure)
		slog.Warn("peer notification failed",
			append([]any{"event", event, "error", err}, attrs...)...)
		return
	}
	metrics.NotificationSent(event, shared.OutcomeSuccess)
}
