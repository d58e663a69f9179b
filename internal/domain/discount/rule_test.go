//go:build unit

package discount_test

import (
	"testing"

	"order-fulfillment/internal/domain/discount"
	"order-fulfillment/internal/domain/money"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twd(s string) money.Money { return money.MustParse(s, money.DefaultCurrency) }

func TestRule(t *testing.T) {
	minimum := twd("1000")

	cases := []struct {
		name     string
		typ      discount.Type
		value    int64
		minimum  *money.Money
		total    string
		expected string
	}{
		{name: "percentage over minimum", typ: discount.TypePercentage, value: 10, minimum: &minimum, total: "2000", expected: "200.00"},
		{name: "percentage at minimum", typ: discount.TypePercentage, value: 10, minimum: &minimum, total: "1000", expected: "100.00"},
		{name: "percentage below minimum", typ: discount.TypePercentage, value: 10, minimum: &minimum, total: "999.99", expected: "0.00"},
		{name: "fixed amount", typ: discount.TypeFixedAmount, value: 150, total: "500", expected: "150.00"},
		{name: "fixed amount capped at total", typ: discount.TypeFixedAmount, value: 150, total: "100", expected: "100.00"},
		{name: "full percentage", typ: discount.TypePercentage, value: 100, total: "42.50", expected: "42.50"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rule, err := discount.NewRule(tc.typ, decimal.NewFromInt(tc.value), tc.minimum)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, rule.CalculateDiscount(twd(tc.total)).StringFixed())
		})
	}

	t.Run("construction errors", func(t *testing.T) {
		_, err := discount.NewPercentageRule(decimal.NewFromInt(101), nil)
		assert.ErrorIs(t, err, discount.ErrPercentageTooLarge)

		_, err = discount.NewFixedAmountRule(decimal.NewFromInt(-1), nil)
		assert.ErrorIs(t, err, discount.ErrNegativeRuleValue)

		_, err = discount.NewRule("BOGO", decimal.NewFromInt(1), nil)
		assert.ErrorIs(t, err, discount.ErrInvalidRuleType)
	})
}

func TestCode(t *testing.T) {
	code, err := discount.NewCode("  spring10 ")
	require.NoError(t, err)
	assert.Equal(t, "SPRING10", code.String())

	for _, raw := range []string{"", "ABC", "HAS-DASH", "THISCODEISWAYTOOLONG123"} {
		_, err := discount.NewCode(raw)
		assert.ErrorIs(t, err, discount.ErrInvalidCouponCode, raw)
	}

	generated, err := discount.GenerateCodeWithPrefix("VIP", 6)
	require.NoError(t, err)
	assert.Len(t, generated.String(), 9)
	assert.Regexp(t, `^VIP[A-Z0-9]{6}$`, generated.String())
}
