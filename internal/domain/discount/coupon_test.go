//go:build unit

package discount_test

import (
	"errors"
	"testing"
	"time"

	"order-fulfillment/internal/domain/discount"
	"order-fulfillment/internal/pkg/errs"
	"order-fulfillment/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoupon(t *testing.T) {
	customer := uuid.New()

	t.Run("new coupon is active and unused", func(t *testing.T) {
		c, err := builder.NewCouponBuilder().BuildDomain()
		require.NoError(t, err)
		assert.True(t, c.IsActive())
		assert.Equal(t, 0, c.UsageCount())
		assert.Nil(t, c.RemainingUses())
		assert.Equal(t, "200.00", c.CalculateDiscount(twd("2000")).StringFixed())
	})

	t.Run("check order and messages", func(t *testing.T) {
		b := builder.NewCouponBuilder()
		c, err := b.WithMaxUses(1).WithMaxUsesPerCustomer(1).BuildDomain()
		require.NoError(t, err)
		now := b.Now.Add(time.Hour)

		err = c.Check(customer, twd("10"), now)
		var rejection *discount.Rejection
		require.True(t, errors.As(err, &rejection))
		assert.Equal(t, "Order total must be at least $1000.00 to use this coupon", rejection.Message)
		assert.ErrorIs(t, err, discount.ErrBelowMinimumOrder)
		assert.True(t, errs.Is(err, errs.ErrBusinessRule))

		require.NoError(t, c.Use(customer, now))

		// global exhaustion is reported before the per-customer limit
		err = c.Check(customer, twd("2000"), now)
		assert.EqualError(t, err, discount.MsgCouponExhausted)
		assert.ErrorIs(t, err, discount.ErrCouponExhausted)

		c.Deactivate(now)
		err = c.Check(customer, twd("2000"), now)
		assert.EqualError(t, err, discount.MsgCouponInactive)
	})

	t.Run("per customer limit", func(t *testing.T) {
		b := builder.NewCouponBuilder()
		c, err := b.WithMaxUsesPerCustomer(2).BuildDomain()
		require.NoError(t, err)

		require.NoError(t, c.Use(customer, b.Now))
		require.NoError(t, c.Use(customer, b.Now))
		err = c.Use(customer, b.Now)
		assert.EqualError(t, err, discount.MsgCouponCustomerLimit)
		assert.Equal(t, 2, c.TimesUsedBy(customer))

		other := uuid.New()
		require.NoError(t, c.Check(other, twd("1500"), b.Now))
	})

	t.Run("expired coupon", func(t *testing.T) {
		b := builder.NewCouponBuilder()
		c, err := b.BuildDomain()
		require.NoError(t, err)

		err = c.Check(customer, twd("5000"), b.ExpiresAt.Add(time.Second))
		assert.ErrorIs(t, err, discount.ErrCouponInactive)
		assert.True(t, c.IsExpired(b.ExpiresAt.Add(time.Second)))
		assert.False(t, c.IsExpired(b.ExpiresAt))
	})

	t.Run("limit N allows exactly N uses", func(t *testing.T) {
		const limit = 3
		b := builder.NewCouponBuilder()
		c, err := b.WithMaxUses(limit).BuildDomain()
		require.NoError(t, err)

		for range limit {
			require.NoError(t, c.Use(uuid.New(), b.Now))
		}
		assert.ErrorIs(t, c.Use(uuid.New(), b.Now), discount.ErrCouponExhausted)
		assert.Equal(t, limit, c.UsageCount())
		assert.Equal(t, 0, *c.RemainingUses())
	})

	t.Run("released use can be taken again", func(t *testing.T) {
		b := builder.NewCouponBuilder()
		c, err := b.WithMaxUses(1).BuildDomain()
		require.NoError(t, err)

		assert.ErrorIs(t, c.ReleaseUse(customer, b.Now), discount.ErrNoUseToRelease)

		require.NoError(t, c.Use(customer, b.Now))
		require.NoError(t, c.ReleaseUse(customer, b.Now))
		assert.Equal(t, 0, c.UsageCount())
		assert.Equal(t, 0, c.TimesUsedBy(customer))
		assert.NotContains(t, c.CustomerUsage(), customer)

		other := uuid.New()
		require.NoError(t, c.Use(other, b.Now))
		assert.ErrorIs(t, c.ReleaseUse(customer, b.Now), discount.ErrNoUseToRelease)
		assert.Equal(t, 1, c.UsageCount())
	})

	t.Run("reactivate", func(t *testing.T) {
		b := builder.NewCouponBuilder()
		c, err := b.BuildDomain()
		require.NoError(t, err)
		c.Deactivate(b.Now)
		c.Reactivate(b.Now)
		assert.True(t, c.IsValid(b.Now))
	})

	t.Run("invalid limits", func(t *testing.T) {
		_, err := builder.NewCouponBuilder().WithMaxUses(0).BuildDomain()
		assert.ErrorIs(t, err, discount.ErrInvalidCouponParams)
	})
}

func TestPromotion(t *testing.T) {
	rule, err := builder.NewCouponBuilder().With(func(b *builder.CouponBuilder) { b.MinimumOrder = nil }).BuildRule()
	require.NoError(t, err)
	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 7)

	p, err := discount.NewPromotion("Spring sale", "", rule, start, end, start)
	require.NoError(t, err)

	t.Run("window is inclusive", func(t *testing.T) {
		assert.True(t, p.IsActive(start))
		assert.True(t, p.IsActive(end))
		assert.False(t, p.IsActive(end.Add(time.Nanosecond)))
		assert.True(t, p.IsUpcoming(start.Add(-time.Second)))
		assert.True(t, p.IsExpired(end.Add(time.Second)))
	})

	t.Run("discount only while active", func(t *testing.T) {
		assert.Equal(t, "50.00", p.CalculateDiscount(twd("500"), start.Add(time.Hour)).StringFixed())
		p.Deactivate(start)
		assert.True(t, p.CalculateDiscount(twd("500"), start.Add(time.Hour)).IsZero())
		p.Activate(start)
		assert.False(t, p.IsManuallyDeactivated())
	})

	t.Run("validation", func(t *testing.T) {
		_, err := discount.NewPromotion(" ", "", rule, start, end, start)
		assert.ErrorIs(t, err, discount.ErrInvalidPromotion)

		_, err = discount.NewPromotion("Backwards", "", rule, end, start, start)
		assert.ErrorIs(t, err, discount.ErrInvalidPromotion)
	})
}
