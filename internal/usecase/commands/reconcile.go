package commands

//go:generate mockgen -source=reconcile.go -destination=../../../tests/mock/commands/reconcile.go -package=commandsmock

import (
	"context"
	"log/slog"
	"time"

	"order-fulfillment/internal/pkg/clock"
	"order-fulfillment/internal/usecase/shared"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

type SweepResult struct {
	ExpiredOrders   int
	ExpiredPayments int
}

// Reconciler expires orders and payments stuck waiting for payment. It is
// safe to run alongside normal traffic and to run repeatedly.
type Reconciler interface {
	ExpireStaleOrders(ctx context.Context, olderThan time.Duration) (int, error)
	ExpireStalePayments(ctx context.Context, olderThan time.Duration) (int, error)
	Sweep(ctx context.Context) (SweepResult, error)
}

type SweepTimeouts struct {
	Order   time.Duration
	Payment time.Duration
}

type reconcilerImpl struct {
	orders   shared.OrderRepository
	payments shared.PaymentRepository
	locker   shared.Locker
	metrics  shared.Metrics
	clock    clock.Clock
	timeouts SweepTimeouts
}

func NewReconciler(
	orders shared.OrderRepository,
	payments shared.PaymentRepository,
	locker shared.Locker,
	metrics shared.Metrics,
	clk clock.Clock,
	timeouts SweepTimeouts,
) Reconciler {
	return &reconcilerImpl{
		orders:   orders,
		payments: payments,
		locker:   locker,
		metrics:  metrics,
		clock:    clk,
		timeouts: timeouts,
	}
}

func (r *reconcilerImpl) ExpireStaleOrders(ctx context.Context, olderThan time.Duration) (int, error) {
	stale, err := r.orders.FindPendingPaymentOlderThan(ctx, clock.Before(r.clock, olderThan))
	if err != nil {
		return 0, err
	}
	expired := 0
	for _, candidate := range stale {
		ok, err := r.expireOrder(ctx, candidate.ID())
		if err != nil {
			slog.Warn("failed to expire order", "order_id", candidate.ID(), "error", err)
			continue
		}
		if ok {
			expired++
		}
	}
	r.metrics.Expired(shared.AggregateOrder, expired)
	if expired > 0 {
		slog.Info("expired stale orders", "count", expired)
	}
	return expired, nil
}

// expireOrder reloads under the lock; an order paid since the query is skipped.
func (r *reconcilerImpl) expireOrder(ctx context.Context, id uuid.UUID) (bool, error) {
	expired := false
	err := withLock(ctx, r.locker, shared.OrderLockKey(id), func() error {
		o, err := r.orders.FindByID(ctx, id)
		if err != nil || o == nil || !o.Status().CanExpire() {
			return err
		}
		if err := o.ExpirePayment(r.clock.Now()); err != nil {
			return err
		}
		if err := r.orders.Save(ctx, o); err != nil {
			return err
		}
		expired = true
		return nil
	})
	return expired, err
}

func (r *reconcilerImpl) ExpireStalePayments(ctx context.Context, olderThan time.Duration) (int, error) {
	stale, err := r.payments.FindPendingOlderThan(ctx, clock.Before(r.clock, olderThan))
	if err != nil {
		return 0, err
	}
	expired := 0
	for _, candidate := range stale {
		ok, err := r.expirePayment(ctx, candidate.ID())
		if err != nil {
			slog.Warn("failed to expire payment", "payment_id", candidate.ID(), "error", err)
			continue
		}
		if ok {
			expired++
		}
	}
	r.metrics.Expired(shared.AggregatePayment, expired)
	if expired > 0 {
		slog.Info("expired stale payments", "count", expired)
	}
	return expired, nil
}

func (r *reconcilerImpl) expirePayment(ctx context.Context, id uuid.UUID) (bool, error) {
	expired := false
	err := withLock(ctx, r.locker, shared.PaymentLockKey(id), func() error {
		p, err := r.payments.FindByID(ctx, id)
		if err != nil || p == nil || !p.Status().CanExpire() {
			return err
		}
		if err := p.Expire(r.clock.Now()); err != nil {
			return err
		}
		if err := r.payments.Save(ctx, p); err != nil {
			return err
		}
		expired = true
		return nil
	})
	return expired, err
}

func (r *reconcilerImpl) Sweep(ctx context.Context) (SweepResult, error) {
	var res SweepResult
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := r.ExpireStaleOrders(gctx, r.timeouts.Order)
		res.ExpiredOrders = n
		return err
	})
	g.Go(func() error {
		n, err := r.ExpireStalePayments(gctx, r.timeouts.Payment)
		res.ExpiredPayments = n
		return err
	})
	err := g.Wait()
	return res, err
}
