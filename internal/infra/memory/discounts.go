package memory

import (
	"context"

	"order-fulfillment/internal/domain/discount"
	"order-fulfillment/internal/usecase/shared"

	"github.com/google/uuid"
)

type CouponRepository struct {
	t *table[discount.Code, *discount.Coupon]
}

func NewCouponRepository() *CouponRepository {
	return &CouponRepository{t: newTable[discount.Code](cloneCoupon)}
}

var _ shared.CouponRepository = (*CouponRepository)(nil)

func cloneCoupon(c *discount.Coupon) *discount.Coupon {
	return discount.ReconstructCoupon(c.ID(), c.Code(), c.Description(), c.Rule(), c.ExpiresAt(), c.Limits(),
		c.UsageCount(), c.IsActive(), c.CustomerUsage(), c.Version(), c.CreatedAt(), c.UpdatedAt())
}

func (r *CouponRepository) Save(_ context.Context, c *discount.Coupon) error {
	return r.t.save(c.Code(), c)
}

func (r *CouponRepository) FindByCode(_ context.Context, code discount.Code) (*discount.Coupon, error) {
	return r.t.get(code), nil
}

func (r *CouponRepository) FindAll(_ context.Context) ([]*discount.Coupon, error) {
	return r.t.filter(nil, func(a, b *discount.Coupon) int { return a.CreatedAt().Compare(b.CreatedAt()) }), nil
}

type PromotionRepository struct {
	t *table[uuid.UUID, *discount.Promotion]
}

func NewPromotionRepository() *PromotionRepository {
	return &PromotionRepository{t: newTable[uuid.UUID](func(p *discount.Promotion) *discount.Promotion {
		return discount.ReconstructPromotion(p.ID(), p.Name(), p.Description(), p.Rule(), p.StartsAt(), p.EndsAt(),
			p.IsManuallyDeactivated(), p.Version(), p.CreatedAt(), p.UpdatedAt())
	})}
}

var _ shared.PromotionRepository = (*PromotionRepository)(nil)

func (r *PromotionRepository) Save(_ context.Context, p *discount.Promotion) error {
	return r.t.save(p.ID(), p)
}

func (r *PromotionRepository) FindByID(_ context.Context, id uuid.UUID) (*discount.Promotion, error) {
	return r.t.get(id), nil
}

func (r *PromotionRepository) FindAll(_ context.Context) ([]*discount.Promotion, error) {
	return r.t.filter(nil, func(a, b *discount.Promotion) int { return a.CreatedAt().Compare(b.CreatedAt()) }), nil
}
