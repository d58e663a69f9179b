package memory

import (
	"context"
	"time"

	"order-fulfillment/internal/domain/order"
	"order-fulfillment/internal/usecase/shared"

	"github.com/google/uuid"
)

type OrderRepository struct {
	t *table[uuid.UUID, *order.Order]
}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{t: newTable[uuid.UUID](func(o *order.Order) *order.Order {
		return order.Reconstruct(o.Snapshot())
	})}
}

var _ shared.OrderRepository = (*OrderRepository)(nil)

func (r *OrderRepository) Save(_ context.Context, o *order.Order) error {
	return r.t.save(o.ID(), o)
}

func (r *OrderRepository) FindByID(_ context.Context, id uuid.UUID) (*order.Order, error) {
	return r.t.get(id), nil
}

func (r *OrderRepository) FindByCustomerID(_ context.Context, customerID uuid.UUID) ([]*order.Order, error) {
	return r.t.filter(func(o *order.Order) bool { return o.CustomerID() == customerID }, newestOrderFirst), nil
}

func (r *OrderRepository) FindPendingPaymentOlderThan(_ context.Context, cutoff time.Time) ([]*order.Order, error) {
	return r.t.filter(func(o *order.Order) bool {
		return o.Status() == order.StatusPendingPayment && o.CreatedAt().Before(cutoff)
	}, func(a, b *order.Order) int { return a.CreatedAt().Compare(b.CreatedAt()) }), nil
}

func newestOrderFirst(a, b *order.Order) int { return b.CreatedAt().Compare(a.CreatedAt()) }
