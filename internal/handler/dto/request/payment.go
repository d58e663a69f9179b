package request

import (
	"order-fulfillment/internal/domain/payment"
	"order-fulfillment/internal/usecase/commands"

	"github.com/google/uuid"
)

type ProcessPaymentRequest struct {
	OrderID    uuid.UUID `json:"orderId" binding:"required"`
	Method     string    `json:"method" binding:"required"`
	CardNumber string    `json:"cardNumber" binding:"omitempty,numeric,min=12,max=19"`
}

func (r ProcessPaymentRequest) ToCommand() commands.ProcessPaymentRequest {
	return commands.ProcessPaymentRequest{
		OrderID:    r.OrderID,
		Method:     payment.Method(r.Method),
		CardNumber: r.CardNumber,
	}
}

type RefundPaymentRequest struct {
	Amount   string `json:"amount" binding:"required"`
	Currency string `json:"currency" binding:"omitempty,len=3"`
	Reason   string `json:"reason" binding:"max=500"`
}

func (r RefundPaymentRequest) ToCommand(paymentID uuid.UUID) (commands.RefundPaymentRequest, error) {
	amount, err := parseMoney(r.Amount, r.Currency)
	if err != nil {
		return commands.RefundPaymentRequest{}, err
	}
	return commands.RefundPaymentRequest{PaymentID: paymentID, Amount: amount, Reason: r.Reason}, nil
}
