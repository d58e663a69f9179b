package queries

//go:generate mockgen -source=catalog.go -destination=../../../tests/mock/queries/catalog.go -package=queriesmock

import (
	"context"

	"order-fulfillment/internal/domain/order"
	"order-fulfillment/internal/pkg/clock"
	"order-fulfillment/internal/usecase/shared"

	"github.com/google/uuid"
)

type PromotionQueries interface {
	GetActivePromotions(ctx context.Context) ([]*PromotionView, error)
	GetPromotion(ctx context.Context, id uuid.UUID) (*PromotionView, error)
}

type promotionQueriesImpl struct {
	promotions shared.PromotionRepository
	clock      clock.Clock
}

func NewPromotionQueries(promotions shared.PromotionRepository, clk clock.Clock) PromotionQueries {
	return &promotionQueriesImpl{promotions: promotions, clock: clk}
}

func (q *promotionQueriesImpl) GetActivePromotions(ctx context.Context) ([]*PromotionView, error) {
	all, err := q.promotions.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	now := q.clock.Now()
	views := make([]*PromotionView, 0, len(all))
	for _, p := range all {
		if p.IsActive(now) {
			views = append(views, NewPromotionView(p, now))
		}
	}
	return views, nil
}

func (q *promotionQueriesImpl) GetPromotion(ctx context.Context, id uuid.UUID) (*PromotionView, error) {
	p, err := q.promotions.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, shared.ErrPromotionNotFound
	}
	return NewPromotionView(p, q.clock.Now()), nil
}

type CartQueries interface {
	// GetCart returns an empty cart for customers who never added anything.
	GetCart(ctx context.Context, customerID uuid.UUID) (*CartView, error)
}

type cartQueriesImpl struct {
	carts shared.CartRepository
	clock clock.Clock
}

func NewCartQueries(carts shared.CartRepository, clk clock.Clock) CartQueries {
	return &cartQueriesImpl{carts: carts, clock: clk}
}

func (q *cartQueriesImpl) GetCart(ctx context.Context, customerID uuid.UUID) (*CartView, error) {
	c, err := q.carts.FindByCustomerID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		c = order.NewCart(customerID, q.clock.Now())
	}
	return NewCartView(c), nil
}
