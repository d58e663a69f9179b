package commands

//go:generate mockgen -source=coupon.go -destination=../../../tests/mock/commands/coupon.go -package=commandsmock

import (
	"context"
	"errors"
	"log/slog"
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

type ApplyCouponRequest struct {
	Code       string
	OrderTotal money.Money
}

// CouponValidation is the customer-facing verdict. Message is set when
// Valid is false.
type CouponValidation struct {
	Valid          bool
	Message        string
	Code           string
	DiscountAmount money.Money
	Description    string
}

type CreateCouponRequest struct {
	Code               string
	Description        string
	Type               discount.Type
	Value              decimal.Decimal
	MinimumOrder       *money.Money
	ExpiresAt          time.Time
	MaxUses            *int
	MaxUsesPerCustomer *int
}

type CouponCommands interface {
	// Validate previews a coupon without recording usage. A zero customerID
	// skips the per-customer limit.
	Validate(ctx context.Context, req ApplyCouponRequest, customerID uuid.UUID) (*CouponValidation, error)
	// Apply validates and records one use in a single step under the coupon lock.
	Apply(ctx context.Context, req ApplyCouponRequest, customerID uuid.UUID) (*CouponValidation, error)
	// Release gives back a use recorded by Apply when the order it was for
	// could not be placed.
	Release(ctx context.Context, code string, customerID uuid.UUID) error
	CreateCoupon(ctx context.Context, req CreateCouponRequest) (*queries.CouponView, error)
	DeactivateCoupon(ctx context.Context, code string) error
	ReactivateCoupon(ctx context.Context, code string) error
}

type couponUseCaseImpl struct {
	coupons shared.CouponRepository
	locker  shared.Locker
	clock   clock.Clock
}

func NewCouponUseCase(coupons shared.CouponRepository, locker shared.Locker, clk clock.Clock) CouponCommands {
	return &couponUseCaseImpl{coupons: coupons, locker: locker, clock: clk}
}

func (uc *couponUseCaseImpl) Validate(ctx context.Context, req ApplyCouponRequest, customerID uuid.UUID) (*CouponValidation, error) {
	code, err := discount.NewCode(req.Code)
	if err != nil {
		return invalidCoupon(req.Code, discount.MsgCouponNotFound), nil
	}
	c, err := uc.coupons.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	return uc.evaluate(c, code, req.OrderTotal, customerID), nil
}

func (uc *couponUseCaseImpl) Apply(ctx context.Context, req ApplyCouponRequest, customerID uuid.UUID) (*CouponValidation, error) {
	code, err := discount.NewCode(req.Code)
	if err != nil {
		return invalidCoupon(req.Code, discount.MsgCouponNotFound), nil
	}

	var result *CouponValidation
	err = withLock(ctx, uc.locker, shared.CouponLockKey(code), func() error {
		c, err := uc.coupons.FindByCode(ctx, code)
		if err != nil {
			return err
		}
		result = uc.evaluate(c, code, req.OrderTotal, customerID)
		if !result.Valid {
			return nil
		}
		if err := c.Use(customerID, uc.clock.Now()); err != nil {
			return err
		}
		return uc.coupons.Save(ctx, c)
	})
	if err != nil {
		return nil, err
	}
	if result.Valid {
		slog.Info("coupon applied", "code", code, "customer_id", customerID, "discount", result.DiscountAmount.String())
	}
	return result, nil
}

func (uc *couponUseCaseImpl) Release(ctx context.Context, raw string, customerID uuid.UUID) error {
	code, err := discount.NewCode(raw)
	if err != nil {
		return err
	}
	return withLock(ctx, uc.locker, shared.CouponLockKey(code), func() error {
		c, err := uc.coupons.FindByCode(ctx, code)
		if err != nil {
			return err
		}
		if c == nil {
			return errs.Wrapf(ErrCouponNotFound, "code %s", code)
		}
		if err := c.ReleaseUse(customerID, uc.clock.Now()); err != nil {
			return err
		}
		return uc.coupons.Save(ctx, c)
	})
}

func (uc *couponUseCaseImpl) evaluate(c *discount.Coupon, code discount.Code, total money.Money, customerID uuid.UUID) *CouponValidation {
	if c == nil {
		return invalidCoupon(code.String(), discount.MsgCouponNotFound)
	}
	if err := c.Check(customerID, total, uc.clock.Now()); err != nil {
		var rejection *discount.Rejection
		if errors.As(err, &rejection) {
			return invalidCoupon(code.String(), rejection.Message)
		}
		return invalidCoupon(code.String(), err.Error())
	}
	return &CouponValidation{
		Valid:          true,
		Code:           code.String(),
		DiscountAmount: c.CalculateDiscount(total),
		Description:    c.Description(),
	}
}

func invalidCoupon(code, message string) *CouponValidation {
	return &CouponValidation{Valid: false, Code: code, Message: message}
}

func (uc *couponUseCaseImpl) CreateCoupon(ctx context.Context, req CreateCouponRequest) (*queries.CouponView, error) {
	code, err := discount.NewCode(req.Code)
	if err != nil {
		return nil, err
	}
	rule, err := discount.NewRule(req.Type, req.Value, req.MinimumOrder)
	if err != nil {
		return nil, err
	}
	c, err := discount.NewCoupon(code, req.Description, rule, req.ExpiresAt, discount.Limits{
		MaxUses:            req.MaxUses,
		MaxUsesPerCustomer: req.MaxUsesPerCustomer,
	}, uc.clock.Now())
	if err != nil {
		return nil, err
	}

	err = withLock(ctx, uc.locker, shared.CouponLockKey(code), func() error {
		existing, err := uc.coupons.FindByCode(ctx, code)
		if err != nil {
			return err
		}
		if existing != nil {
			return errs.Wrapf(ErrCouponCodeTaken, "code %s", code)
		}
		return uc.coupons.Save(ctx, c)
	})
	if err != nil {
		return nil, err
	}
	return queries.NewCouponView(c), nil
}

func (uc *couponUseCaseImpl) DeactivateCoupon(ctx context.Context, code string) error {
	return uc.toggle(ctx, code, (*discount.Coupon).Deactivate)
}

func (uc *couponUseCaseImpl) ReactivateCoupon(ctx context.Context, code string) error {
	return uc.toggle(ctx, code, (*discount.Coupon).Reactivate)
}

func (uc *couponUseCaseImpl) toggle(ctx context.Context, raw string, fn func(*discount.Coupon, time.Time)) error {
	code, err := discount.NewCode(raw)
	if err != nil {
		return err
	}
	return withLock(ctx, uc.locker, shared.CouponLockKey(code), func() error {
		c, err := uc.coupons.FindByCode(ctx, code)
		if err != nil {
			return err
		}
		if c == nil {
			return errs.Wrapf(ErrCouponNotFound, "code %s", code)
		}
		fn(c, uc.clock.Now())
		return uc.coupons.Save(ctx, c)
	})
}
