package commands

//go:generate mockgen -source=order.go -destination=../../../tests/mock/commands/order.go -package=commandsmock

import (
	"context"
	"log/slog"
	"time"

	"order-fulfillment/internal/domain/address"
	"order-fulfillment/internal/domain/money"
	"order-fulfillment/internal/domain/order"
	"order-fulfillment/internal/pkg/clock"
	"order-fulfillment/internal/pkg/errs"
	"order-fulfillment/internal/usecase/queries"
	"order-fulfillment/internal/usecase/shared"

	"github.com/google/uuid"
)

const releaseTimeout = 5 * time.Second

type CheckoutRequest struct {
	CouponCode      *string
	ShippingAddress address.Params
}

type OrderCommands interface {
	// Checkout turns the customer's cart into a PENDING_PAYMENT order.
	Checkout(ctx context.Context, customerID uuid.UUID, req CheckoutRequest) (*queries.OrderView, error)
	CancelOrder(ctx context.Context, orderID, customerID uuid.UUID, reason string) (*queries.OrderView, error)
}

type orderUseCaseImpl struct {
	orders     shared.OrderRepository
	carts      shared.CartRepository
	promotions shared.PromotionRepository
	coupons    CouponCommands
	locker     shared.Locker
	clock      clock.Clock
}

func NewOrderUseCase(
	orders shared.OrderRepository,
	carts shared.CartRepository,
	promotions shared.PromotionRepository,
	coupons CouponCommands,
	locker shared.Locker,
	clk clock.Clock,
) OrderCommands {
	return &orderUseCaseImpl{
		orders:     orders,
		carts:      carts,
		promotions: promotions,
		coupons:    coupons,
		locker:     locker,
		clock:      clk,
	}
}

func (uc *orderUseCaseImpl) Checkout(ctx context.Context, customerID uuid.UUID, req CheckoutRequest) (*queries.OrderView, error) {
	shipTo, err := address.New(req.ShippingAddress)
	if err != nil {
		return nil, err
	}

	var created *order.Order
	err = withLock(ctx, uc.locker, shared.CartLockKey(customerID), func() error {
		cart, err := uc.carts.FindByCustomerID(ctx, customerID)
		if err != nil {
			return err
		}
		if cart == nil || cart.IsEmpty() {
			return order.ErrEmptyCart
		}
		items, err := cart.OrderItems()
		if err != nil {
			return err
		}
		subtotal := cart.Total()

		amount, err := uc.promotionDiscount(ctx, subtotal)
		if err != nil {
			return err
		}

		var couponCode *string
		if req.CouponCode != nil && *req.CouponCode != "" {
			result, applyErr := uc.coupons.Apply(ctx, ApplyCouponRequest{Code: *req.CouponCode, OrderTotal: subtotal}, customerID)
			if applyErr != nil {
				return applyErr
			}
			if !result.Valid {
				return errs.Wrap(ErrCouponInvalid, result.Message)
			}
			couponCode = &result.Code
			amount, err = amount.Add(result.DiscountAmount)
		}

		var o *order.Order
		if err == nil {
			o, err = order.New(customerID, items, shipTo, order.Discount{CouponCode: couponCode, Amount: amount}, uc.clock.Now())
		}
		if err == nil {
			err = uc.orders.Save(ctx, o)
		}
		if err != nil {
			if couponCode != nil {
				uc.releaseCoupon(ctx, *couponCode, customerID)
			}
			return err
		}
		created = o

		if err := uc.carts.Delete(ctx, customerID); err != nil {
			slog.Warn("failed to clear cart after checkout", "customer_id", customerID, "order_id", o.ID(), "error", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("order placed", "order_id", created.ID(), "customer_id", customerID, "total", created.Total().String())
	return queries.NewOrderView(created), nil
}

// releaseCoupon runs on a fresh context so a cancelled request still gives
// the use back.
func (uc *orderUseCaseImpl) releaseCoupon(ctx context.Context, code string, customerID uuid.UUID) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), releaseTimeout)
	defer cancel()
	if err := uc.coupons.Release(ctx, code, customerID); err != nil {
		slog.Error("failed to release coupon after checkout failed",
			"code", code, "customer_id", customerID, "error", err)
	}
}

// promotionDiscount sums every promotion active right now; inactive ones
// contribute zero.
func (uc *orderUseCaseImpl) promotionDiscount(ctx context.Context, subtotal money.Money) (money.Money, error) {
	total := money.Zero(subtotal.Currency())
	promotions, err := uc.promotions.FindAll(ctx)
	if err != nil {
		return total, err
	}
	now := uc.clock.Now()
	for _, p := range promotions {
		if total, err = total.Add(p.CalculateDiscount(subtotal, now)); err != nil {
			return total, err
		}
	}
	return total, nil
}

func (uc *orderUseCaseImpl) CancelOrder(ctx context.Context, orderID, customerID uuid.UUID, reason string) (*queries.OrderView, error) {
	var view *queries.OrderView
	err := withLock(ctx, uc.locker, shared.OrderLockKey(orderID), func() error {
		o, err := uc.orders.FindByID(ctx, orderID)
		if err != nil {
			return err
		}
		if o == nil || !o.IsOwnedBy(customerID) {
			return errs.Wrapf(ErrOrderNotFound, "order %s", orderID)
		}
		if err := o.Cancel(reason, uc.clock.Now()); err != nil {
			return err
		}
		if err := uc.orders.Save(ctx, o); err != nil {
			return err
		}
		if o.RefundRequired() {
			slog.Warn("paid order cancelled, refund required", "order_id", o.ID(), "payment_id", o.PaymentID())
		}
		view = queries.NewOrderView(o)
		return nil
	})
	return view, err
}
