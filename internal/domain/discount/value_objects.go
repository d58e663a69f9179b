package discount

import (
	"crypto/rand"
	"math/big"
	"regexp"
	"strings"

	"order-fulfillment/internal/domain/money"
	"order-fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidRuleType     = errs.Validation("invalid discount type")
	ErrNegativeRuleValue   = errs.Validation("discount value cannot be negative")
	ErrPercentageTooLarge  = errs.Validation("percentage discount cannot exceed 100")
	ErrInvalidCouponCode   = errs.Validation("coupon code must be 4-20 alphanumeric characters")
	ErrInvalidPromotion    = errs.Validation("invalid promotion")
	ErrInvalidCouponParams = errs.Validation("invalid coupon parameters")
)

type Type string

const (
	TypePercentage  Type = "PERCENTAGE"
	TypeFixedAmount Type = "FIXED_AMOUNT"
)

func (t Type) String() string {
	return string(t)
}

func (t Type) IsValid() bool {
	switch t {
	case TypePercentage, TypeFixedAmount:
		return true
	default:
		return false
	}
}

var hundred = decimal.NewFromInt(100)

// Rule maps an order total to a discount amount.
type Rule struct {
	typ          Type
	value        decimal.Decimal
	minimumOrder *money.Money
}

func NewRule(typ Type, value decimal.Decimal, minimumOrder *money.Money) (Rule, error) {
	if !typ.IsValid() {
		return Rule{}, errs.Wrapf(ErrInvalidRuleType, "type %q", typ)
	}
	if value.IsNegative() {
		return Rule{}, errs.Wrapf(ErrNegativeRuleValue, "value %s", value)
	}
	if typ == TypePercentage && value.GreaterThan(hundred) {
		return Rule{}, errs.Wrapf(ErrPercentageTooLarge, "value %s", value)
	}
	return Rule{typ: typ, value: value.Round(money.Scale), minimumOrder: minimumOrder}, nil
}

func NewPercentageRule(percent decimal.Decimal, minimumOrder *money.Money) (Rule, error) {
	return NewRule(TypePercentage, percent, minimumOrder)
}

func NewFixedAmountRule(amount decimal.Decimal, minimumOrder *money.Money) (Rule, error) {
	return NewRule(TypeFixedAmount, amount, minimumOrder)
}

func (r Rule) Type() Type                 { return r.typ }
func (r Rule) Value() decimal.Decimal     { return r.value }
func (r Rule) MinimumOrder() *money.Money { return r.minimumOrder }
func (r Rule) HasMinimum() bool           { return r.minimumOrder != nil }

func (r Rule) MeetsMinimum(orderTotal money.Money) bool {
	if r.minimumOrder == nil {
		return true
	}
	return orderTotal.GreaterThanOrEqual(*r.minimumOrder)
}

// CalculateDiscount never errors: totals under the minimum get zero and a
// fixed amount is capped at the total.
func (r Rule) CalculateDiscount(orderTotal money.Money) money.Money {
	zero := money.Zero(orderTotal.Currency())
	if !r.MeetsMinimum(orderTotal) {
		return zero
	}
	switch r.typ {
	case TypePercentage:
		return orderTotal.Percentage(r.value)
	case TypeFixedAmount:
		fixed, err := money.New(r.value, orderTotal.Currency())
		if err != nil {
			return zero
		}
		return fixed.Min(orderTotal)
	default:
		return zero
	}
}

const (
	minCodeLength = 4
	maxCodeLength = 20
	codeAlphabet  = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
)

var couponCodeRegex = regexp.MustCompile(`^[A-Z0-9]{4,20}$`)

type Code string

func NewCode(raw string) (Code, error) {
	normalized := strings.ToUpper(strings.TrimSpace(raw))
	if !couponCodeRegex.MatchString(normalized) {
		return "", errs.Wrapf(ErrInvalidCouponCode, "code %q", raw)
	}
	return Code(normalized), nil
}

func (c Code) String() string {
	return string(c)
}

// GenerateCode returns a random code of the given length (clamped to 4..20).
func GenerateCode(length int) (Code, error) {
	length = max(minCodeLength, min(length, maxCodeLength))
	buf := make([]byte, length)
	limit := big.NewInt(int64(len(codeAlphabet)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", errs.Wrap(err, "generate coupon code")
		}
		buf[i] = codeAlphabet[n.Int64()]
	}
	return Code(buf), nil
}

func GenerateCodeWithPrefix(prefix string, randomLength int) (Code, error) {
	suffix, err := GenerateCode(randomLength)
	if err != nil {
		return "", err
	}
	full := strings.ToUpper(strings.TrimSpace(prefix)) + suffix.String()
	if len(full) > maxCodeLength {
		full = full[:maxCodeLength]
	}
	return NewCode(full)
}
