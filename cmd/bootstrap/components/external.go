package components

import (
	"order-fulfillment/internal/domain/money"
	"order-fulfillment/internal/infra/external"
	"order-fulfillment/internal/pkg/config"
	"order-fulfillment/internal/usecase/shared"

	"go.uber.org/fx"
)

var ExternalModule = fx.Module("external",
	fx.Provide(
		NewProductService,
		fx.Annotate(
			func(cfg config.Config) *external.MockGateway {
				return external.NewMockGateway(cfg.Fulfillment.GatewayLatency)
			},
			fx.As(new(shared.PaymentGateway)),
		),
		fx.Annotate(
			func(cfg config.Config) *external.MockLogistics {
				return external.NewMockLogistics(cfg.Fulfillment.LogisticsLatency)
			},
			fx.As(new(shared.LogisticsProvider)),
		),
	),
)

func NewProductService(cfg config.Config) (shared.ProductService, error) {
	currency, err := money.NewCurrency(cfg.Fulfillment.DefaultCurrency)
	if err != nil {
		return nil, err
	}
	return external.NewSampleCatalog(currency), nil
}
