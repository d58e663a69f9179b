package money

import (
	"fmt"
	"strings"

	"order-fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

const Scale = 2

type Currency string

const DefaultCurrency Currency = "TWD"

var (
	ErrNegativeAmount   = errs.Validation("money amount cannot be negative")
	ErrCurrencyMismatch = errs.Validation("currency mismatch")
	ErrInvalidAmount    = errs.Validation("invalid money amount")
	ErrInvalidCurrency  = errs.Validation("invalid currency code")
)

func NewCurrency(code string) (Currency, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return DefaultCurrency, nil
	}
	if len(code) != 3 {
		return "", errs.Wrapf(ErrInvalidCurrency, "currency %q", code)
	}
	return Currency(code), nil
}

func (c Currency) String() string { return string(c) }

// Money is an immutable non-negative amount with two decimal places.
type Money struct {
	amount   decimal.Decimal
	currency Currency
}

func New(amount decimal.Decimal, currency Currency) (Money, error) {
	if amount.IsNegative() {
		return Money{}, errs.Wrapf(ErrNegativeAmount, "amount %s", amount.String())
	}
	if currency == "" {
		currency = DefaultCurrency
	}
	// Round is half away from zero, which is half-up for non-negative values.
	return Money{amount: amount.Round(Scale), currency: currency}, nil
}

func Parse(amount string, currency Currency) (Money, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(amount))
	if err != nil {
		return Money{}, errs.Wrapf(ErrInvalidAmount, "amount %q", amount)
	}
	return New(d, currency)
}

// MustParse is for constants and tests.
func MustParse(amount string, currency Currency) Money {
	m, err := Parse(amount, currency)
	if err != nil {
		panic(err)
	}
	return m
}

func Zero(currency Currency) Money {
	if currency == "" {
		currency = DefaultCurrency
	}
	return Money{amount: decimal.Zero, currency: currency}
}

func (m Money) Amount() decimal.Decimal { return m.amount }
func (m Money) Currency() Currency      { return m.currency }

func (m Money) Add(other Money) (Money, error) {
	if err := m.sameCurrency(other); err != nil {
		return Money{}, err
	}
	return Money{amount: m.amount.Add(other.amount), currency: m.currency}, nil
}

func (m Money) Subtract(other Money) (Money, error) {
	if err := m.sameCurrency(other); err != nil {
		return Money{}, err
	}
	result := m.amount.Sub(other.amount)
	if result.IsNegative() {
		return Money{}, errs.Wrapf(ErrNegativeAmount, "%s - %s", m, other)
	}
	return Money{amount: result, currency: m.currency}, nil
}

func (m Money) Multiply(multiplier int) (Money, error) {
	if multiplier < 0 {
		return Money{}, errs.Wrapf(ErrNegativeAmount, "multiplier %d", multiplier)
	}
	return Money{amount: m.amount.Mul(decimal.NewFromInt(int64(multiplier))), currency: m.currency}, nil
}

// Percentage returns amount * percent / 100 rounded half-up to two places.
func (m Money) Percentage(percent decimal.Decimal) Money {
	v := m.amount.Mul(percent).Div(decimal.NewFromInt(100)).Round(Scale)
	if v.IsNegative() {
		v = decimal.Zero
	}
	return Money{amount: v, currency: m.currency}
}

// Min returns the smaller amount; currencies are assumed equal.
func (m Money) Min(other Money) Money {
	if other.amount.LessThan(m.amount) {
		return other
	}
	return m
}

func (m Money) IsZero() bool { return m.amount.IsZero() }

func (m Money) IsPositive() bool { return m.amount.IsPositive() }

func (m Money) Equal(other Money) bool {
	return m.currency == other.currency && m.amount.Equal(other.amount)
}

func (m Money) GreaterThan(other Money) bool {
	return m.amount.GreaterThan(other.amount)
}

func (m Money) GreaterThanOrEqual(other Money) bool {
	return m.amount.GreaterThanOrEqual(other.amount)
}

func (m Money) LessThan(other Money) bool {
	return m.amount.LessThan(other.amount)
}

// StringFixed renders the amount with exactly two decimals, without currency.
func (m Money) StringFixed() string {
	return m.amount.StringFixed(Scale)
}

func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.currency, m.amount.StringFixed(Scale))
}

func (m Money) sameCurrency(other Money) error {
	if m.currency != other.currency {
		return errs.Wrapf(ErrCurrencyMismatch, "%s vs %s", m.currency, other.currency)
	}
	return nil
}
