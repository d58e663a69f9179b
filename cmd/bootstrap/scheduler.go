package bootstrap

import (
	"context"
	"log/slog"
	"time"

	"order-fulfillment/internal/pkg/config"
	"order-fulfillment/internal/usecase/commands"

	"go.uber.org/fx"
)

var SchedulerModule = fx.Module("scheduler",
	fx.Invoke(startSweepScheduler),
)

func startSweepScheduler(lc fx.Lifecycle, cfg config.Config, reconciler commands.Reconciler) {
	interval := cfg.Fulfillment.SweepInterval
	if interval <= 0 {
		slog.Info("sweep scheduler disabled")
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			go runSweeps(ctx, done, interval, reconciler)
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			select {
			case <-done:
			case <-stopCtx.Done():
			}
			return nil
		},
	})
}

func runSweeps(ctx context.Context, done chan<- struct{}, interval time.Duration, reconciler commands.Reconciler) {
	defer close(done)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	slog.Info("sweep scheduler started", "interval", interval)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			result, err := reconciler.Sweep(ctx)
			if err != nil {
				slog.Warn("scheduled sweep failed", "error", err)
				continue
			}
			if result.ExpiredOrders > 0 || result.ExpiredPayments > 0 {
				slog.Info("scheduled sweep finished",
					"expired_orders", result.ExpiredOrders,
					"expired_payments", result.ExpiredPayments)
			}
		}
	}
}
