//go:build unit || e2e

package builder

import (
	"time"

	"order-fulfillment/internal/domain/discount"
	"order-fulfillment/internal/domain/money"

	"github.com/shopspring/decimal"
)

type CouponBuilder struct {
	Code         string
	Description  string
	Type         discount.Type
	Value        string
	MinimumOrder *string
	ExpiresAt    time.Time
	Limits       discount.Limits
	Now          time.Time
}

func NewCouponBuilder() *CouponBuilder {
	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	minimum := "1000"
	return &CouponBuilder{
		Code:         "SPRING10",
		Description:  "10% off orders over 1000",
		Type:         discount.TypePercentage,
		Value:        "10",
		MinimumOrder: &minimum,
		ExpiresAt:    now.AddDate(0, 1, 0),
		Limits:       discount.Unlimited(),
		Now:          now,
	}
}

func (c *CouponBuilder) With(mutate func(*CouponBuilder)) *CouponBuilder {
	mutate(c)
	return c
}

func (c *CouponBuilder) WithMaxUses(n int) *CouponBuilder {
	c.Limits.MaxUses = &n
	return c
}

func (c *CouponBuilder) WithMaxUsesPerCustomer(n int) *CouponBuilder {
	c.Limits.MaxUsesPerCustomer = &n
	return c
}

func (c *CouponBuilder) BuildRule() (discount.Rule, error) {
	value, err := decimal.NewFromString(c.Value)
	if err != nil {
		return discount.Rule{}, err
	}
	var minimum *money.Money
	if c.MinimumOrder != nil {
		m, err := money.Parse(*c.MinimumOrder, money.DefaultCurrency)
		if err != nil {
			return discount.Rule{}, err
		}
		minimum = &m
	}
	return discount.NewRule(c.Type, value, minimum)
}

func (c *CouponBuilder) BuildDomain() (*discount.Coupon, error) {
	code, err := discount.NewCode(c.Code)
	if err != nil {
		return nil, err
	}
	rule, err := c.BuildRule()
	if err != nil {
		return nil, err
	}
	return discount.NewCoupon(code, c.Description, rule, c.ExpiresAt, c.Limits, c.Now)
}
