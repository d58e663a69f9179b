package memory

import (
	"context"
	"time"

	"order-fulfillment/internal/domain/payment"
	"order-fulfillment/internal/usecase/shared"

	"github.com/google/uuid"
)

type PaymentRepository struct {
	t *table[uuid.UUID, *payment.Payment]
}

func NewPaymentRepository() *PaymentRepository {
	return &PaymentRepository{t: newTable[uuid.UUID](func(p *payment.Payment) *payment.Payment {
		return payment.Reconstruct(p.Snapshot())
	})}
}

var _ shared.PaymentRepository = (*PaymentRepository)(nil)

func (r *PaymentRepository) Save(_ context.Context, p *payment.Payment) error {
	return r.t.save(p.ID(), p)
}

func (r *PaymentRepository) FindByID(_ context.Context, id uuid.UUID) (*payment.Payment, error) {
	return r.t.get(id), nil
}

func (r *PaymentRepository) FindByOrderID(_ context.Context, orderID uuid.UUID) ([]*payment.Payment, error) {
	return r.t.filter(func(p *payment.Payment) bool { return p.OrderID() == orderID }, newestPaymentFirst), nil
}

func (r *PaymentRepository) FindByCustomerID(_ context.Context, customerID uuid.UUID) ([]*payment.Payment, error) {
	return r.t.filter(func(p *payment.Payment) bool { return p.CustomerID() == customerID }, newestPaymentFirst), nil
}

func (r *PaymentRepository) FindPendingOlderThan(_ context.Context, cutoff time.Time) ([]*payment.Payment, error) {
	return r.t.filter(func(p *payment.Payment) bool {
		s := p.Status()
		return (s == payment.StatusPending || s == payment.StatusProcessing) && p.CreatedAt().Before(cutoff)
	}, func(a, b *payment.Payment) int { return a.CreatedAt().Compare(b.CreatedAt()) }), nil
}

func newestPaymentFirst(a, b *payment.Payment) int { return b.CreatedAt().Compare(a.CreatedAt()) }
