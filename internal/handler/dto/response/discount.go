package response

import (
	"time"

	"order-fulfillment/internal/usecase/commands"
	"order-fulfillment/internal/usecase/queries"

	"github.com/google/uuid"
)

type RuleResponse struct {
	Type         string  `json:"type"`
	Value        string  `json:"value"`
	MinimumOrder *string `json:"minimumOrder,omitempty"`
}

func fromRuleView(v queries.RuleView) RuleResponse {
	return RuleResponse{Type: v.Type, Value: v.Value, MinimumOrder: v.MinimumOrder}
}

type CouponValidationResponse struct {
	Valid          bool   `json:"valid"`
	Message        string `json:"message,omitempty"`
	Code           string `json:"code"`
	DiscountAmount string `json:"discountAmount"`
	Currency       string `json:"currency"`
	Description    string `json:"description,omitempty"`
}

func FromCouponValidation(v *commands.CouponValidation) *CouponValidationResponse {
	return &CouponValidationResponse{
		Valid:          v.Valid,
		Message:        v.Message,
		Code:           v.Code,
		DiscountAmount: v.DiscountAmount.StringFixed(),
		Currency:       v.DiscountAmount.Currency().String(),
		Description:    v.Description,
	}
}

type CouponResponse struct {
	ID                 uuid.UUID    `json:"id"`
	Code               string       `json:"code"`
	Description        string       `json:"description"`
	Rule               RuleResponse `json:"rule"`
	ExpiresAt          time.Time    `json:"expiresAt"`
	MaxUses            *int         `json:"maxUses,omitempty"`
	MaxUsesPerCustomer *int         `json:"maxUsesPerCustomer,omitempty"`
	UsageCount         int          `json:"usageCount"`
	Active             bool         `json:"active"`
}

func FromCouponView(v *queries.CouponView) *CouponResponse {
	return &CouponResponse{
		ID:                 v.ID,
		Code:               v.Code,
		Description:        v.Description,
		Rule:               fromRuleView(v.Rule),
		ExpiresAt:          v.ExpiresAt,
		MaxUses:            v.MaxUses,
		MaxUsesPerCustomer: v.MaxUsesPerCustomer,
		UsageCount:         v.UsageCount,
		Active:             v.Active,
	}
}

type PromotionResponse struct {
	ID          uuid.UUID    `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Rule        RuleResponse `json:"rule"`
	StartsAt    time.Time    `json:"startsAt"`
	EndsAt      time.Time    `json:"endsAt"`
	Active      bool         `json:"active"`
}

func FromPromotionView(v *queries.PromotionView) *PromotionResponse {
	return &PromotionResponse{
		ID:          v.ID,
		Name:        v.Name,
		Description: v.Description,
		Rule:        fromRuleView(v.Rule),
		StartsAt:    v.StartsAt,
		EndsAt:      v.EndsAt,
		Active:      v.Active,
	}
}

func FromPromotionViews(vs []*queries.PromotionView) []*PromotionResponse {
	out := make([]*PromotionResponse, len(vs))
	for i, v := range vs {
		out[i] = FromPromotionView(v)
	}
	return out
}

type SweepResponse struct {
	ExpiredOrders   int `json:"expiredOrders"`
	ExpiredPayments int `json:"expiredPayments"`
}

func FromSweepResult(r commands.SweepResult) *SweepResponse {
	return &SweepResponse{ExpiredOrders: r.ExpiredOrders, ExpiredPayments: r.ExpiredPayments}
}
