package queries

//go:generate mockgen -source=orders.go -destination=../../../tests/mock/queries/orders.go -package=queriesmock

import (
	"context"

	"order-fulfillment/internal/usecase/shared"

	"github.com/google/uuid"
)

type OrderQueries interface {
	GetOrder(ctx context.Context, id uuid.UUID, actor shared.Actor) (*OrderView, error)
	ListOrders(ctx context.Context, customerID uuid.UUID) ([]*OrderView, error)
}

type orderQueriesImpl struct {
	orders shared.OrderRepository
}

func NewOrderQueries(orders shared.OrderRepository) OrderQueries {
	return &orderQueriesImpl{orders: orders}
}

func (q *orderQueriesImpl) GetOrder(ctx context.Context, id uuid.UUID, actor shared.Actor) (*OrderView, error) {
	o, err := q.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	// someone else's order is reported as missing
	if o == nil || !actor.CanAccess(o.CustomerID()) {
		return nil, shared.ErrOrderNotFound
	}
	return NewOrderView(o), nil
}

func (q *orderQueriesImpl) ListOrders(ctx context.Context, customerID uuid.UUID) ([]*OrderView, error) {
	orders, err := q.orders.FindByCustomerID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	views := make([]*OrderView, 0, len(orders))
	for _, o := range orders {
		views = append(views, NewOrderView(o))
	}
	return views, nil
}
