package external

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"order-fulfillment/internal/domain/shipment"
	"order-fulfillment/internal/usecase/shared"
)

// MockLogistics accepts every shipment and reports it in transit.
type MockLogistics struct {
	latency time.Duration

	mu         sync.RWMutex
	registered map[string]shipment.Carrier
}

func NewMockLogistics(latency time.Duration) *MockLogistics {
	return &MockLogistics{latency: latency, registered: make(map[string]shipment.Carrier)}
}

var _ shared.LogisticsProvider = (*MockLogistics)(nil)

func (l *MockLogistics) RegisterShipment(ctx context.Context, s *shipment.Shipment) error {
	if err := wait(ctx, l.latency); err != nil {
		return err
	}
	l.mu.Lock()
	l.registered[s.TrackingNumber()] = s.Carrier()
	l.mu.Unlock()
	slog.Info("shipment registered with carrier",
		"shipment_id", s.ID(), "carrier", s.Carrier(), "tracking_number", s.TrackingNumber())
	return nil
}

// TrackingStatus returns the carrier-side status; unknown numbers report
// an empty status.
func (l *MockLogistics) TrackingStatus(ctx context.Context, trackingNumber string) (string, error) {
	if err := wait(ctx, l.latency); err != nil {
		return "", err
	}
	l.mu.RLock()
	_, ok := l.registered[trackingNumber]
	l.mu.RUnlock()
	if !ok {
		return "", nil
	}
	return shipment.StatusInTransit.String(), nil
}
