package commands

//go:generate mockgen -source=payment.go -destination=../../../tests/mock/commands/payment.go -package=commandsmock

import (
	"context"
	"log/slog"

	"order-fulfillment/internal/domain/money"
	"order-fulfillment/internal/domain/order"
	"order-fulfillment/internal/domain/payment"
	"order-fulfillment/internal/pkg/clock"
	"order-fulfillment/internal/pkg/errs"
	"order-fulfillment/internal/usecase/queries"
	"order-fulfillment/internal/usecase/shared"

	"github.com/google/uuid"
)

type ProcessPaymentRequest struct {
	OrderID    uuid.UUID
	Method     payment.Method
	CardNumber string
}

type RefundPaymentRequest struct {
	PaymentID uuid.UUID
	Amount    money.Money
	Reason    string
}

type PaymentCommands interface {
	// ProcessPayment charges the order total. Replays for an order that
	// already has a processing or completed payment return that payment.
	ProcessPayment(ctx context.Context, req ProcessPaymentRequest, customerID uuid.UUID) (*queries.PaymentView, error)
	RefundPayment(ctx context.Context, req RefundPaymentRequest) (*queries.PaymentView, error)
}

type paymentUseCaseImpl struct {
	payments shared.PaymentRepository
	orders   shared.OrderService
	gateway  shared.PaymentGateway
	locker   shared.Locker
	metrics  shared.Metrics
	clock    clock.Clock
}

func NewPaymentUseCase(
	payments shared.PaymentRepository,
	orders shared.OrderService,
	gateway shared.PaymentGateway,
	locker shared.Locker,
	metrics shared.Metrics,
	clk clock.Clock,
) PaymentCommands {
	return &paymentUseCaseImpl{
		payments: payments,
		orders:   orders,
		gateway:  gateway,
		locker:   locker,
		metrics:  metrics,
		clock:    clk,
	}
}

func (uc *paymentUseCaseImpl) ProcessPayment(ctx context.Context, req ProcessPaymentRequest, customerID uuid.UUID) (*queries.PaymentView, error) {
	if !req.Method.IsValid() {
		return nil, errs.Wrapf(payment.ErrInvalidMethod, "method %q", req.Method)
	}
	info, err := uc.orders.GetOrderInfo(ctx, req.OrderID)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrExternalDependency)
	}
	if info == nil || info.CustomerID != customerID {
		return nil, errs.Wrapf(ErrOrderNotFound, "order %s", req.OrderID)
	}
	if info.Status != order.StatusPendingPayment {
		return nil, errs.Wrapf(ErrOrderNotPayable, "order %s is %s", req.OrderID, info.Status)
	}

	var (
		p        *payment.Payment
		existing bool
	)
	err = withLock(ctx, uc.locker, shared.PaymentForOrderLockKey(req.OrderID), func() error {
		previous, err := uc.payments.FindByOrderID(ctx, req.OrderID)
		if err != nil {
			return err
		}
		for _, prev := range previous {
			if prev.Status().IsActive() {
				p, existing = prev, true
				return nil
			}
		}

		p, err = payment.New(req.OrderID, customerID, info.TotalAmount, req.Method, uc.clock.Now())
		if err != nil {
			return err
		}
		if err := uc.payments.Save(ctx, p); err != nil {
			return err
		}
		if err := p.StartProcessing(uc.clock.Now()); err != nil {
			return err
		}
		return uc.payments.Save(ctx, p)
	})
	if err != nil {
		return nil, err
	}
	if existing {
		slog.Info("payment already in progress for order", "order_id", req.OrderID, "payment_id", p.ID(), "status", p.Status())
		return queries.NewPaymentView(p), nil
	}

	result, err := uc.gateway.ProcessPayment(ctx, shared.GatewayRequest{
		PaymentID:  p.ID(),
		OrderID:    p.OrderID(),
		Amount:     p.Amount(),
		Method:     p.Method(),
		CardNumber: req.CardNumber,
	})
	if err != nil {
		// the payment stays PROCESSING and is expired by the sweep
		uc.metrics.PaymentProcessed(p.Method(), shared.OutcomeFailure)
		return nil, errs.Wrapf(ErrGatewayUnavailable, "payment %s: %v", p.ID(), err)
	}

	if result.Success {
		return uc.complete(ctx, p, result.TransactionID)
	}
	return nil, uc.fail(ctx, p, result)
}

func (uc *paymentUseCaseImpl) complete(ctx context.Context, p *payment.Payment, transactionID string) (*queries.PaymentView, error) {
	err := withLock(ctx, uc.locker, shared.PaymentLockKey(p.ID()), func() error {
		if err := p.Complete(transactionID, uc.clock.Now()); err != nil {
			return err
		}
		return uc.payments.Save(ctx, p)
	})
	if err != nil {
		return nil, err
	}
	uc.metrics.PaymentProcessed(p.Method(), shared.OutcomeSuccess)
	slog.Info("payment completed", "payment_id", p.ID(), "order_id", p.OrderID(), "transaction_id", transactionID)

	notifyPeer(ctx, uc.metrics, EventPaymentCompleted, func(ctx context.Context) error {
		return uc.orders.NotifyPaymentComplete(ctx, p.OrderID(), p.ID())
	}, "order_id", p.OrderID(), "payment_id", p.ID())
	return queries.NewPaymentView(p), nil
}

func (uc *paymentUseCaseImpl) fail(ctx context.Context, p *payment.Payment, result shared.GatewayResult) error {
	reason := result.ErrorMessage
	if reason == "" {
		reason = result.ErrorCode
	}
	err := withLock(ctx, uc.locker, shared.PaymentLockKey(p.ID()), func() error {
		if err := p.Fail(reason, uc.clock.Now()); err != nil {
			return err
		}
		return uc.payments.Save(ctx, p)
	})
	if err != nil {
		return err
	}
	uc.metrics.PaymentProcessed(p.Method(), shared.OutcomeFailure)
	slog.Info("payment declined", "payment_id", p.ID(), "order_id", p.OrderID(), "code", result.ErrorCode, "reason", reason)

	notifyPeer(ctx, uc.metrics, EventPaymentFailed, func(ctx context.Context) error {
		return uc.orders.NotifyPaymentFailed(ctx, p.OrderID(), p.ID(), reason)
	}, "order_id", p.OrderID(), "payment_id", p.ID())
	return errs.Wrapf(ErrPaymentFailed, "%s: %s", result.ErrorCode, reason)
}

func (uc *paymentUseCaseImpl) RefundPayment(ctx context.Context, req RefundPaymentRequest) (*queries.PaymentView, error) {
	p, err := uc.payments.FindByID(ctx, req.PaymentID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, errs.Wrapf(ErrPaymentNotFound, "payment %s", req.PaymentID)
	}
	if err := p.CheckRefund(req.Amount); err != nil {
		return nil, err
	}

	result, err := uc.gateway.ProcessRefund(ctx, shared.RefundRequest{
		PaymentID:     p.ID(),
		TransactionID: p.TransactionID(),
		Amount:        req.Amount,
		Reason:        req.Reason,
	})
	if err != nil {
		return nil, errs.Wrapf(ErrGatewayUnavailable, "refund for payment %s: %v", p.ID(), err)
	}
	if !result.Success {
		return nil, errs.Wrapf(ErrPaymentFailed, "refund %s: %s", result.ErrorCode, result.ErrorMessage)
	}

	err = withLock(ctx, uc.locker, shared.PaymentLockKey(p.ID()), func() error {
		// reload: another refund may have landed while the gateway was called
		fresh, err := uc.payments.FindByID(ctx, p.ID())
		if err != nil {
			return err
		}
		if fresh == nil {
			return errs.Wrapf(ErrPaymentNotFound, "payment %s", p.ID())
		}
		if err := fresh.Refund(req.Amount, req.Reason, uc.clock.Now()); err != nil {
			return err
		}
		if err := uc.payments.Save(ctx, fresh); err != nil {
			return err
		}
		p = fresh
		return nil
	})
	if err != nil {
		return nil, err
	}
	slog.Info("payment refunded", "payment_id", p.ID(), "amount", req.Amount.String(), "refund_id", result.TransactionID, "status", p.Status())

	if p.Status() == payment.StatusRefunded {
		notifyPeer(ctx, uc.metrics, EventPaymentRefunded, func(ctx context.Context) error {
			return uc.orders.NotifyPaymentRefunded(ctx, p.OrderID(), p.ID())
		}, "order_id", p.OrderID(), "payment_id", p.ID())
	}
	return queries.NewPaymentView(p), nil
}
