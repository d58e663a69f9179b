package components

import (
	"order-fulfillment/internal/handler"
	"order-fulfillment/internal/handler/api"
	"order-fulfillment/internal/handler/middleware"
	"order-fulfillment/internal/infra/metrics"
	"order-fulfillment/internal/pkg/config"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewCartHandler,
		api.NewOrderHandler,
		api.NewPaymentHandler,
		api.NewShipmentHandler,
		api.NewCouponHandler,
		api.NewPromotionHandler,
		api.NewAdminHandler,
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(registerRoutes),
)

type routerParams struct {
	fx.In

	Engine    *gin.Engine
	Config    config.Config
	Logger    *middleware.Logger
	Metrics   *metrics.Registry
	Auth      *middleware.AuthMiddleware
	Cart      *api.CartHandler
	Order     *api.OrderHandler
	Payment   *api.PaymentHandler
	Shipment  *api.ShipmentHandler
	Coupon    *api.CouponHandler
	Promotion *api.PromotionHandler
	Admin     *api.AdminHandler
}

func registerRoutes(p routerParams) {
	handler.NewRouter(p.Engine, p.Config, p.Logger, p.Metrics, handler.Handlers{
		Cart:      p.Cart,
		Order:     p.Order,
		Payment:   p.Payment,
		Shipment:  p.Shipment,
		Coupon:    p.Coupon,
		Promotion: p.Promotion,
		Admin:     p.Admin,
	}, p.Auth)
}
