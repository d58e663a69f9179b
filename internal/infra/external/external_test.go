//go:build unit

package external

import (
	"context"
	"regexp"
	"testing"
	"time"

	"order-fulfillment/internal/domain/money"
	"order-fulfillment/internal/domain/payment"
	"order-fulfillment/internal/domain/shipment"
	"order-fulfillment/internal/usecase/shared"
	"order-fulfillment/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gatewayRequest(card string) shared.GatewayRequest {
	return shared.GatewayRequest{
		PaymentID:  uuid.New(),
		OrderID:    uuid.New(),
		Amount:     money.MustParse("100", money.DefaultCurrency),
		Method:     payment.MethodCreditCard,
		CardNumber: card,
	}
}

func TestMockGateway_ProcessPayment(t *testing.T) {
	g := NewMockGateway(0)
	ctx := context.Background()

	tests := []struct {
		name    string
		card    string
		success bool
		code    string
		message string
	}{
		{name: "declined card", card: "4000123412341234", code: "DECLINED", message: "Card declined by issuer"},
		{name: "insufficient funds", card: "4111000000000000", code: "INSUFFICIENT_FUNDS", message: "Insufficient funds"},
		{name: "approved card", card: "5555444433332222", success: true},
		{name: "no card", card: "", success: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := g.ProcessPayment(ctx, gatewayRequest(tt.card))
			require.NoError(t, err)
			assert.Equal(t, tt.success, res.Success)
			assert.Equal(t, tt.code, res.ErrorCode)
			assert.Equal(t, tt.message, res.ErrorMessage)
			if tt.success {
				assert.Regexp(t, regexp.MustCompile(`^TXN-[0-9A-F]{8}$`), res.TransactionID)
			}
		})
	}
}

func TestMockGateway_ProcessRefund(t *testing.T) {
	res, err := NewMockGateway(0).ProcessRefund(context.Background(), shared.RefundRequest{
		PaymentID: uuid.New(),
		Amount:    money.MustParse("10", money.DefaultCurrency),
	})
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Regexp(t, regexp.MustCompile(`^REF-[0-9A-F]{8}$`), res.TransactionID)
}

func TestMockGateway_HonoursContext(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := NewMockGateway(time.Second).ProcessPayment(ctx, gatewayRequest("5555"))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestMockLogistics(t *testing.T) {
	ctx := context.Background()
	l := NewMockLogistics(0)

	addr := builder.NewAddressBuilder().MustBuild()
	s, err := shipment.New(uuid.New(), uuid.New(), shipment.CarrierBlackCat, "BC202610180001", addr, time.Now())
	require.NoError(t, err)

	status, err := l.TrackingStatus(ctx, s.TrackingNumber())
	require.NoError(t, err)
	assert.Empty(t, status)

	require.NoError(t, l.RegisterShipment(ctx, s))
	status, err = l.TrackingStatus(ctx, s.TrackingNumber())
	require.NoError(t, err)
	assert.Equal(t, "IN_TRANSIT", status)
}

func TestSampleCatalog(t *testing.T) {
	ctx := context.Background()
	c := NewSampleCatalog(money.DefaultCurrency)

	p, err := c.GetProductInfo(ctx, SampleKeyboardID)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "KB-001", p.SKU)
	assert.True(t, p.Price.Equal(money.MustParse("2990", money.DefaultCurrency)))

	missing, err := c.GetProductInfo(ctx, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, missing)

	ok, err := c.IsStockAvailable(ctx, SampleMonitorID, 10)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = c.IsStockAvailable(ctx, SampleMonitorID, 11)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = c.IsStockAvailable(ctx, SampleRetiredID, 1)
	require.NoError(t, err)
	assert.False(t, ok)
}
