package components

import (
	"order-fulfillment/internal/domain/shipment"
	"order-fulfillment/internal/infra/metrics"
	"order-fulfillment/internal/pkg/clock"
	"order-fulfillment/internal/pkg/config"
	"order-fulfillment/internal/usecase"
	"order-fulfillment/internal/usecase/commands"
	"order-fulfillment/internal/usecase/queries"
	"order-fulfillment/internal/usecase/shared"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseValidatorsModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	shipment.NewTrackingNumbers,
	metrics.NewRegistry,
	func(r *metrics.Registry) shared.Metrics { return r },
	func(cfg config.Config) commands.SweepTimeouts {
		return commands.SweepTimeouts{
			Order:   cfg.Fulfillment.OrderPaymentTimeout,
			Payment: cfg.Fulfillment.PaymentTimeout,
		}
	},
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewCartUseCase,
		commands.NewCouponUseCase,
		commands.NewPromotionUseCase,
		commands.NewOrderUseCase,
		commands.NewOrderNotifications,
		commands.NewPaymentUseCase,
		commands.NewShipmentUseCase,
		commands.NewReconciler,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewCartQueries,
		queries.NewOrderQueries,
		queries.NewPaymentQueries,
		queries.NewShipmentQueries,
		queries.NewPromotionQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)
