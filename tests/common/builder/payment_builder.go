//go:build unit || e2e

package builder

import (
	"time"

	"order-fulfillment/internal/domain/money"
	"order-fulfillment/internal/domain/payment"
	reqdto "order-fulfillment/internal/handler/dto/request"
	"order-fulfillment/internal/usecase/queries"

	"github.com/google/uuid"
)

type PaymentBuilder struct {
	OrderID    uuid.UUID
	CustomerID uuid.UUID
	Amount     string
	Currency   money.Currency
	Method     payment.Method
	Now        time.Time
}

func NewPaymentBuilder() *PaymentBuilder {
	return &PaymentBuilder{
		OrderID:    uuid.New(),
		CustomerID: uuid.New(),
		Amount:     "1800.00",
		Currency:   money.DefaultCurrency,
		Method:     payment.MethodCreditCard,
		Now:        time.Date(2025, 3, 1, 10, 5, 0, 0, time.UTC),
	}
}

func (p *PaymentBuilder) With(mutate func(*PaymentBuilder)) *PaymentBuilder {
	mutate(p)
	return p
}

func (p *PaymentBuilder) BuildDomain() (*payment.Payment, error) {
	amount, err := money.Parse(p.Amount, p.Currency)
	if err != nil {
		return nil, err
	}
	return payment.New(p.OrderID, p.CustomerID, amount, p.Method, p.Now)
}

// BuildCompleted returns a payment that went through the gateway successfully.
func (p *PaymentBuilder) BuildCompleted(transactionID string) (*payment.Payment, error) {
	pay, err := p.BuildDomain()
	if err != nil {
		return nil, err
	}
	if err := pay.StartProcessing(p.Now); err != nil {
		return nil, err
	}
	if err := pay.Complete(transactionID, p.Now); err != nil {
		return nil, err
	}
	return pay, nil
}

func (p *PaymentBuilder) BuildViewQuery() *queries.PaymentView {
	pay, err := p.BuildDomain()
	if err != nil {
		panic(err)
	}
	return queries.NewPaymentView(pay)
}

func (p *PaymentBuilder) BuildProcessRequestDTO() reqdto.ProcessPaymentRequest {
	return reqdto.ProcessPaymentRequest{
		OrderID:    p.OrderID,
		Method:     p.Method.String(),
		CardNumber: "5555444433332222",
	}
}
