// Package external holds stand-ins for the third-party payment gateway,
// the logistics provider and the product catalog.
package external

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"order-fulfillment/internal/usecase/shared"

	"github.com/google/uuid"
)

// Card prefixes the mock gateway rejects.
const (
	DeclinedCardPrefix          = "4000"
	InsufficientFundsCardPrefix = "4111"
)

// MockGateway approves every payment except the test card prefixes.
type MockGateway struct {
	latency time.Duration
}

func NewMockGateway(latency time.Duration) *MockGateway {
	return &MockGateway{latency: latency}
}

var _ shared.PaymentGateway = (*MockGateway)(nil)

func (g *MockGateway) ProcessPayment(ctx context.Context, req shared.GatewayRequest) (shared.GatewayResult, error) {
	slog.Info("processing payment at gateway", "payment_id", req.PaymentID, "amount", req.Amount.String())
	if err := wait(ctx, g.latency); err != nil {
		return shared.GatewayResult{}, err
	}

	switch {
	case strings.HasPrefix(req.CardNumber, DeclinedCardPrefix):
		slog.Warn("payment declined by gateway", "payment_id", req.PaymentID, "code", "DECLINED")
		return shared.GatewayResult{ErrorCode: "DECLINED", ErrorMessage: "Card declined by issuer"}, nil
	case strings.HasPrefix(req.CardNumber, InsufficientFundsCardPrefix):
		slog.Warn("payment declined by gateway", "payment_id", req.PaymentID, "code", "INSUFFICIENT_FUNDS")
		return shared.GatewayResult{ErrorCode: "INSUFFICIENT_FUNDS", ErrorMessage: "Insufficient funds"}, nil
	}
	return shared.GatewayResult{Success: true, TransactionID: reference("TXN-")}, nil
}

func (g *MockGateway) ProcessRefund(ctx context.Context, req shared.RefundRequest) (shared.GatewayResult, error) {
	slog.Info("processing refund at gateway", "payment_id", req.PaymentID, "amount", req.Amount.String())
	if err := wait(ctx, g.latency); err != nil {
		return shared.GatewayResult{}, err
	}
	return shared.GatewayResult{Success: true, TransactionID: reference("REF-")}, nil
}

func reference(prefix string) string {
	return prefix + strings.ToUpper(uuid.NewString()[:8])
}

func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
