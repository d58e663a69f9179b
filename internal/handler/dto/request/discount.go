package request

import (
	"time"

	"order-fulfillment/internal/domain/discount"
	"order-fulfillment/internal/domain/money"
	"order-fulfillment/internal/pkg/errs"
	"order-fulfillment/internal/usecase/commands"

	"github.com/shopspring/decimal"
)

func parseMoney(amount, currency string) (money.Money, error) {
	cur, err := money.NewCurrency(currency)
	if err != nil {
		return money.Money{}, err
	}
	return money.Parse(amount, cur)
}

type CouponCheckRequest struct {
	Code       string `json:"code" binding:"required,max=20"`
	OrderTotal string `json:"orderTotal" binding:"required"`
	Currency   string `json:"currency" binding:"omitempty,len=3"`
}

func (r CouponCheckRequest) ToCommand() (commands.ApplyCouponRequest, error) {
	total, err := parseMoney(r.OrderTotal, r.Currency)
	if err != nil {
		return commands.ApplyCouponRequest{}, err
	}
	return commands.ApplyCouponRequest{Code: r.Code, OrderTotal: total}, nil
}

type RuleRequest struct {
	Type         string  `json:"type" binding:"required,oneof=PERCENTAGE FIXED_AMOUNT"`
	Value        string  `json:"value" binding:"required"`
	MinimumOrder *string `json:"minimumOrder,omitempty"`
}

type rule struct {
	typ     discount.Type
	value   decimal.Decimal
	minimum *money.Money
}

func (r RuleRequest) parse(currency string) (rule, error) {
	value, err := decimal.NewFromString(r.Value)
	if err != nil {
		return rule{}, errs.Wrapf(money.ErrInvalidAmount, "rule value %q", r.Value)
	}
	out := rule{typ: discount.Type(r.Type), value: value}
	if r.MinimumOrder != nil {
		m, err := parseMoney(*r.MinimumOrder, currency)
		if err != nil {
			return rule{}, err
		}
		out.minimum = &m
	}
	return out, nil
}

type CreateCouponRequest struct {
	Code               string      `json:"code" binding:"required,max=20"`
	Description        string      `json:"description" binding:"max=200"`
	Rule               RuleRequest `json:"rule" binding:"required"`
	Currency           string      `json:"currency" binding:"omitempty,len=3"`
	ExpiresAt          time.Time   `json:"expiresAt" binding:"required"`
	MaxUses            *int        `json:"maxUses,omitempty" binding:"omitempty,min=1"`
	MaxUsesPerCustomer *int        `json:"maxUsesPerCustomer,omitempty" binding:"omitempty,min=1"`
}

func (r CreateCouponRequest) ToCommand() (commands.CreateCouponRequest, error) {
	parsed, err := r.Rule.parse(r.Currency)
	if err != nil {
		return commands.CreateCouponRequest{}, err
	}
	return commands.CreateCouponRequest{
		Code:               r.Code,
		Description:        r.Description,
		Type:               parsed.typ,
		Value:              parsed.value,
		MinimumOrder:       parsed.minimum,
		ExpiresAt:          r.ExpiresAt,
		MaxUses:            r.MaxUses,
		MaxUsesPerCustomer: r.MaxUsesPerCustomer,
	}, nil
}

type CreatePromotionRequest struct {
	Name        string      `json:"name" binding:"required,max=100"`
	Description string      `json:"description" binding:"max=500"`
	Rule        RuleRequest `json:"rule" binding:"required"`
	Currency    string      `json:"currency" binding:"omitempty,len=3"`
	StartsAt    time.Time   `json:"startsAt" binding:"required"`
	EndsAt      time.Time   `json:"endsAt" binding:"required"`
}

func (r CreatePromotionRequest) ToCommand() (commands.CreatePromotionRequest, error) {
	parsed, err := r.Rule.parse(r.Currency)
	if err != nil {
		return commands.CreatePromotionRequest{}, err
	}
	return commands.CreatePromotionRequest{
		Name:         r.Name,
		Description:  r.Description,
		Type:         parsed.typ,
		Value:        parsed.value,
		MinimumOrder: parsed.minimum,
		StartsAt:     r.StartsAt,
		EndsAt:       r.EndsAt,
	}, nil
}
