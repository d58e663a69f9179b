//go:build unit || e2e

// Package repotest holds behaviour every repository backend must share.
// The memory store runs it in unit tests and postgres runs it end to end.
package repotest

import (
	"context"
	"strings"
	"testing"
	"time"

	"order-fulfillment/internal/domain/money"
	"order-fulfillment/internal/domain/order"
	"order-fulfillment/internal/domain/payment"
	"order-fulfillment/internal/domain/shipment"
	"order-fulfillment/internal/usecase/shared"
	"order-fulfillment/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

func OrderRepository(t *testing.T, repo shared.OrderRepository) {
	ctx := context.Background()

	t.Run("save and find returns a detached copy", func(t *testing.T) {
		o, err := builder.NewOrderBuilder().BuildDomain()
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, o))
		assert.Equal(t, 1, o.Version())

		got, err := repo.FindByID(ctx, o.ID())
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, order.StatusPendingPayment, got.Status())
		assert.True(t, got.Total().Equal(o.Total()))
		assert.Len(t, got.Items(), 1)
		assert.Equal(t, "Taipei", got.ShippingAddress().City())

		require.NoError(t, got.MarkAsPaid(uuid.New(), base))
		again, err := repo.FindByID(ctx, o.ID())
		require.NoError(t, err)
		assert.Equal(t, order.StatusPendingPayment, again.Status())
	})

	t.Run("unknown id", func(t *testing.T) {
		got, err := repo.FindByID(ctx, uuid.New())
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("stale version is rejected", func(t *testing.T) {
		o, err := builder.NewOrderBuilder().BuildDomain()
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, o))

		first, err := repo.FindByID(ctx, o.ID())
		require.NoError(t, err)
		second, err := repo.FindByID(ctx, o.ID())
		require.NoError(t, err)

		require.NoError(t, first.MarkAsPaid(uuid.New(), base))
		require.NoError(t, repo.Save(ctx, first))

		require.NoError(t, second.Cancel("changed my mind", base))
		err = repo.Save(ctx, second)
		assert.ErrorIs(t, err, shared.ErrConcurrentModification)

		stored, err := repo.FindByID(ctx, o.ID())
		require.NoError(t, err)
		assert.Equal(t, order.StatusPaid, stored.Status())
		assert.Equal(t, 2, stored.Version())
	})

	t.Run("customer orders newest first", func(t *testing.T) {
		customerID := uuid.New()
		var ids []uuid.UUID
		for i := range 3 {
			o, err := builder.NewOrderBuilder().WithCustomerID(customerID).WithNow(base.Add(time.Duration(i) * time.Hour)).BuildDomain()
			require.NoError(t, err)
			require.NoError(t, repo.Save(ctx, o))
			ids = append(ids, o.ID())
		}

		got, err := repo.FindByCustomerID(ctx, customerID)
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, []uuid.UUID{ids[2], ids[1], ids[0]}, []uuid.UUID{got[0].ID(), got[1].ID(), got[2].ID()})
	})

	t.Run("pending payment older than cutoff", func(t *testing.T) {
		old, err := builder.NewOrderBuilder().WithNow(base.Add(-2 * time.Hour)).BuildDomain()
		require.NoError(t, err)
		oldPaid, err := builder.NewOrderBuilder().WithNow(base.Add(-2 * time.Hour)).BuildPaid()
		require.NoError(t, err)
		recent, err := builder.NewOrderBuilder().WithNow(base).BuildDomain()
		require.NoError(t, err)
		for _, o := range []*order.Order{old, oldPaid, recent} {
			require.NoError(t, repo.Save(ctx, o))
		}

		got, err := repo.FindPendingPaymentOlderThan(ctx, base.Add(-time.Hour))
		require.NoError(t, err)
		found := orderIDs(got)
		assert.Contains(t, found, old.ID())
		assert.NotContains(t, found, oldPaid.ID())
		assert.NotContains(t, found, recent.ID())
	})
}

func PaymentRepository(t *testing.T, repo shared.PaymentRepository) {
	ctx := context.Background()

	t.Run("refund state survives a round trip", func(t *testing.T) {
		p, err := builder.NewPaymentBuilder().BuildCompleted("TXN-001")
		require.NoError(t, err)
		require.NoError(t, p.Refund(money.MustParse("300", money.DefaultCurrency), "damaged box", base.Add(time.Hour)))
		require.NoError(t, repo.Save(ctx, p))

		got, err := repo.FindByID(ctx, p.ID())
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, payment.StatusPartiallyRefunded, got.Status())
		assert.Equal(t, "TXN-001", got.TransactionID())
		assert.True(t, got.RefundedAmount().Equal(money.MustParse("300", money.DefaultCurrency)))
		assert.Equal(t, "damaged box", got.RefundReason())
	})

	t.Run("attempts of one order", func(t *testing.T) {
		orderID := uuid.New()
		for i := range 2 {
			p, err := builder.NewPaymentBuilder().With(func(b *builder.PaymentBuilder) {
				b.OrderID = orderID
				b.Now = base.Add(time.Duration(i) * time.Minute)
			}).BuildDomain()
			require.NoError(t, err)
			require.NoError(t, repo.Save(ctx, p))
		}

		got, err := repo.FindByOrderID(ctx, orderID)
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})

	t.Run("pending and processing older than cutoff", func(t *testing.T) {
		at := func(now time.Time) *builder.PaymentBuilder {
			return builder.NewPaymentBuilder().With(func(b *builder.PaymentBuilder) { b.Now = now })
		}
		pending, err := at(base.Add(-time.Hour)).BuildDomain()
		require.NoError(t, err)
		processing, err := at(base.Add(-time.Hour)).BuildDomain()
		require.NoError(t, err)
		require.NoError(t, processing.StartProcessing(base.Add(-time.Hour)))
		completed, err := at(base.Add(-time.Hour)).BuildCompleted("TXN-002")
		require.NoError(t, err)
		fresh, err := at(base).BuildDomain()
		require.NoError(t, err)
		for _, p := range []*payment.Payment{pending, processing, completed, fresh} {
			require.NoError(t, repo.Save(ctx, p))
		}

		got, err := repo.FindPendingOlderThan(ctx, base.Add(-30*time.Minute))
		require.NoError(t, err)
		found := make([]uuid.UUID, 0, len(got))
		for _, p := range got {
			found = append(found, p.ID())
		}
		assert.Contains(t, found, pending.ID())
		assert.Contains(t, found, processing.ID())
		assert.NotContains(t, found, completed.ID())
		assert.NotContains(t, found, fresh.ID())
	})
}

func ShipmentRepository(t *testing.T, repo shared.ShipmentRepository) {
	ctx := context.Background()

	t.Run("tracking history and lookups", func(t *testing.T) {
		tracking := "BC" + token(12)
		s, err := builder.NewShipmentBuilder().With(func(b *builder.ShipmentBuilder) { b.TrackingNumber = tracking }).BuildDomain()
		require.NoError(t, err)
		require.NoError(t, s.MarkAsPickedUp(base.Add(time.Hour)))
		require.NoError(t, s.MarkAsInTransit(base.Add(2*time.Hour)))
		require.NoError(t, repo.Save(ctx, s))

		byTracking, err := repo.FindByTrackingNumber(ctx, tracking)
		require.NoError(t, err)
		require.NotNil(t, byTracking)
		assert.Equal(t, s.ID(), byTracking.ID())
		assert.Equal(t, shipment.StatusInTransit, byTracking.Status())
		assert.Len(t, byTracking.Events(), 2)

		byOrder, err := repo.FindByOrderID(ctx, s.OrderID())
		require.NoError(t, err)
		require.NotNil(t, byOrder)
		assert.Equal(t, s.ID(), byOrder.ID())

		mine, err := repo.FindByCustomerID(ctx, s.CustomerID())
		require.NoError(t, err)
		assert.Len(t, mine, 1)
	})

	t.Run("unknown tracking number", func(t *testing.T) {
		got, err := repo.FindByTrackingNumber(ctx, "NOPE000000")
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}

func CouponRepository(t *testing.T, repo shared.CouponRepository) {
	ctx := context.Background()

	t.Run("usage survives a round trip", func(t *testing.T) {
		c, err := builder.NewCouponBuilder().With(func(b *builder.CouponBuilder) { b.Code = "C" + token(8) }).WithMaxUses(5).BuildDomain()
		require.NoError(t, err)
		customerID := uuid.New()
		require.NoError(t, c.Use(customerID, base))
		require.NoError(t, repo.Save(ctx, c))

		got, err := repo.FindByCode(ctx, c.Code())
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, 1, got.UsageCount())
		assert.Equal(t, 1, got.TimesUsedBy(customerID))
		require.NotNil(t, got.RemainingUses())
		assert.Equal(t, 4, *got.RemainingUses())
		assert.True(t, got.Rule().HasMinimum())
	})

	t.Run("stale version is rejected", func(t *testing.T) {
		c, err := builder.NewCouponBuilder().With(func(b *builder.CouponBuilder) { b.Code = "S" + token(8) }).BuildDomain()
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, c))

		a, err := repo.FindByCode(ctx, c.Code())
		require.NoError(t, err)
		b, err := repo.FindByCode(ctx, c.Code())
		require.NoError(t, err)
		require.NoError(t, a.Use(uuid.New(), base))
		require.NoError(t, repo.Save(ctx, a))
		require.NoError(t, b.Use(uuid.New(), base))
		assert.ErrorIs(t, repo.Save(ctx, b), shared.ErrConcurrentModification)
	})
}

func CartRepository(t *testing.T, repo shared.CartRepository) {
	ctx := context.Background()
	customerID := uuid.New()

	cart := order.NewCart(customerID, base)
	qty, err := order.NewQuantity(3)
	require.NoError(t, err)
	require.NoError(t, cart.AddItem(uuid.New(), "Desk Lamp", "LAMP-01", money.MustParse("1000", money.DefaultCurrency), qty, base))
	require.NoError(t, repo.Save(ctx, cart))

	got, err := repo.FindByCustomerID(ctx, customerID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 3, got.TotalQuantity())
	assert.True(t, got.Total().Equal(money.MustParse("3000", money.DefaultCurrency)))

	require.NoError(t, repo.Delete(ctx, customerID))
	got, err = repo.FindByCustomerID(ctx, customerID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func orderIDs(orders []*order.Order) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(orders))
	for _, o := range orders {
		out = append(out, o.ID())
	}
	return out
}

// token returns n upper-case hex characters, unique enough to keep backends shared across tests apart.
func token(n int) string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:n]
}
