package queries

//go:generate mockgen -source=payments.go -destination=../../../tests/mock/queries/payments.go -package=queriesmock

import (
	"context"

	"order-fulfillment/internal/domain/payment"
	"order-fulfillment/internal/usecase/shared"

	"github.com/google/uuid"
)

type PaymentQueries interface {
	GetPayment(ctx context.Context, id uuid.UUID, actor shared.Actor) (*PaymentView, error)
	GetPaymentsByOrder(ctx context.Context, orderID uuid.UUID, actor shared.Actor) ([]*PaymentView, error)
	GetPaymentsByCustomer(ctx context.Context, customerID uuid.UUID) ([]*PaymentView, error)
}

type paymentQueriesImpl struct {
	payments shared.PaymentRepository
}

func NewPaymentQueries(payments shared.PaymentRepository) PaymentQueries {
	return &paymentQueriesImpl{payments: payments}
}

func (q *paymentQueriesImpl) GetPayment(ctx context.Context, id uuid.UUID, actor shared.Actor) (*PaymentView, error) {
	p, err := q.payments.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil || !actor.CanAccess(p.CustomerID()) {
		return nil, shared.ErrPaymentNotFound
	}
	return NewPaymentView(p), nil
}

func (q *paymentQueriesImpl) GetPaymentsByOrder(ctx context.Context, orderID uuid.UUID, actor shared.Actor) ([]*PaymentView, error) {
	payments, err := q.payments.FindByOrderID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return paymentViews(payments, actor), nil
}

func (q *paymentQueriesImpl) GetPaymentsByCustomer(ctx context.Context, customerID uuid.UUID) ([]*PaymentView, error) {
	payments, err := q.payments.FindByCustomerID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	return paymentViews(payments, shared.Actor{ID: customerID, Role: shared.RoleCustomer}), nil
}

func paymentViews(payments []*payment.Payment, actor shared.Actor) []*PaymentView {
	views := make([]*PaymentView, 0, len(payments))
	for _, p := range payments {
		if actor.CanAccess(p.CustomerID()) {
			views = append(views, NewPaymentView(p))
		}
	}
	return views
}
