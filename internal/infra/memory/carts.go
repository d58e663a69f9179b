package memory

import (
	"context"

	"order-fulfillment/internal/domain/order"
	"order-fulfillment/internal/usecase/shared"

	"github.com/google/uuid"
)

type CartRepository struct {
	t *table[uuid.UUID, *order.Cart]
}

func NewCartRepository() *CartRepository {
	return &CartRepository{t: newTable[uuid.UUID](func(c *order.Cart) *order.Cart {
		return order.ReconstructCart(c.CustomerID(), c.Items(), c.Version(), c.CreatedAt(), c.UpdatedAt())
	})}
}

var _ shared.CartRepository = (*CartRepository)(nil)

func (r *CartRepository) Save(_ context.Context, c *order.Cart) error {
	return r.t.save(c.CustomerID(), c)
}

func (r *CartRepository) FindByCustomerID(_ context.Context, customerID uuid.UUID) (*order.Cart, error) {
	return r.t.get(customerID), nil
}

func (r *CartRepository) Delete(_ context.Context, customerID uuid.UUID) error {
	r.t.delete(customerID)
	return nil
}
