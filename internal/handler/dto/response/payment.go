package response

import (
	"time"

	"order-fulfillment/internal/usecase/queries"

	"github.com/google/uuid"
)

type PaymentResponse struct {
	ID             uuid.UUID  `json:"id"`
	OrderID        uuid.UUID  `json:"orderId"`
	CustomerID     uuid.UUID  `json:"customerId"`
	Amount         string     `json:"amount"`
	Currency       string     `json:"currency"`
	Method         string     `json:"method"`
	Status         string     `json:"status"`
	TransactionID  string     `json:"transactionId,omitempty"`
	FailureReason  string     `json:"failureReason,omitempty"`
	RefundedAmount string     `json:"refundedAmount"`
	RefundReason   string     `json:"refundReason,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
	CompletedAt    *time.Time `json:"completedAt,omitempty"`
	FailedAt       *time.Time `json:"failedAt,omitempty"`
	RefundedAt     *time.Time `json:"refundedAt,omitempty"`
}

func FromPaymentView(v *queries.PaymentView) *PaymentResponse {
	return &PaymentResponse{
		ID:             v.ID,
		OrderID:        v.OrderID,
		CustomerID:     v.CustomerID,
		Amount:         v.Amount,
		Currency:       v.Currency,
		Method:         v.Method,
		Status:         v.Status,
		TransactionID:  v.TransactionID,
		FailureReason:  v.FailureReason,
		RefundedAmount: v.RefundedAmount,
		RefundReason:   v.RefundReason,
		CreatedAt:      v.CreatedAt,
		UpdatedAt:      v.UpdatedAt,
		CompletedAt:    v.CompletedAt,
		FailedAt:       v.FailedAt,
		RefundedAt:     v.RefundedAt,
	}
}

func FromPaymentViews(vs []*queries.PaymentView) []*PaymentResponse {
	out := make([]*PaymentResponse, len(vs))
	for i, v := range vs {
		out[i] = FromPaymentView(v)
	}
	return out
}
