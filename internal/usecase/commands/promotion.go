package commands

//go:generate mockgen -source=promotion.go -destination=../../../tests/mock/commands/promotion.go -package=commandsmock

import (
	"context"
	"time"

	"order-fulfillment/internal/domain/discount"
	"order-fulfillment/internal/domain/money"
	"order-fulfillment/internal/pkg/clock"
	"order-fulfillment/internal/pkg/errs"
	"order-fulfillment/internal/usecase/queries"
	"order-fulfillment/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreatePromotionRequest struct {
	Name         string
	Description  string
	Type         discount.Type
	Value        decimal.Decimal
	MinimumOrder *money.Money
	StartsAt     time.Time
	EndsAt       time.Time
}

type PromotionCommands interface {
	CreatePromotion(ctx context.Context, req CreatePromotionRequest) (*queries.PromotionView, error)
	ActivatePromotion(ctx context.Context, id uuid.UUID) (*queries.PromotionView, error)
	DeactivatePromotion(ctx context.Context, id uuid.UUID) (*queries.PromotionView, error)
}

type promotionUseCaseImpl struct {
	promotions shared.PromotionRepository
	locker     shared.Locker
	clock      clock.Clock
}

func NewPromotionUseCase(promotions shared.PromotionRepository, locker shared.Locker, clk clock.Clock) PromotionCommands {
	return &promotionUseCaseImpl{promotions: promotions, locker: locker, clock: clk}
}

func (uc *promotionUseCaseImpl) CreatePromotion(ctx context.Context, req CreatePromotionRequest) (*queries.PromotionView, error) {
	rule, err := discount.NewRule(req.Type, req.Value, req.MinimumOrder)
	if err != nil {
		return nil, err
	}
	now := uc.clock.Now()
	p, err := discount.NewPromotion(req.Name, req.Description, rule, req.StartsAt, req.EndsAt, now)
	if err != nil {
		return nil, err
	}
	if err := uc.promotions.Save(ctx, p); err != nil {
		return nil, err
	}
	return queries.NewPromotionView(p, now), nil
}

func (uc *promotionUseCaseImpl) ActivatePromotion(ctx context.Context, id uuid.UUID) (*queries.PromotionView, error) {
	return uc.toggle(ctx, id, (*discount.Promotion).Activate)
}

func (uc *promotionUseCaseImpl) DeactivatePromotion(ctx context.Context, id uuid.UUID) (*queries.PromotionView, error) {
	return uc.toggle(ctx, id, (*discount.Promotion).Deactivate)
}

func (uc *promotionUseCaseImpl) toggle(ctx context.Context, id uuid.UUID, fn func(*discount.Promotion, time.Time)) (*queries.PromotionView, error) {
	var view *queries.PromotionView
	err := withLock(ctx, uc.locker, shared.PromotionLockKey(id), func() error {
		p, err := uc.promotions.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if p == nil {
			return errs.Wrapf(ErrPromotionNotFound, "promotion %s", id)
		}
		now := uc.clock.Now()
		fn(p, now)
		if err := uc.promotions.Save(ctx, p); err != nil {
			return err
		}
		view = queries.NewPromotionView(p, now)
		return nil
	})
	return view, err
}
