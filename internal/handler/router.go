package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"order-fulfillment/internal/handler/api"
	"order-fulfillment/internal/handler/middleware"
	"order-fulfillment/internal/infra/metrics"
	"order-fulfillment/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type Handlers struct {
	Cart      *api.CartHandler
	Order     *api.OrderHandler
	Payment   *api.PaymentHandler
	Shipment  *api.ShipmentHandler
	Coupon    *api.CouponHandler
	Promotion *api.PromotionHandler
	Admin     *api.AdminHandler
}

func NewRouter(engine *gin.Engine, cfg config.Config, logger *middleware.Logger, reg *metrics.Registry, h Handlers, authMiddleware *middleware.AuthMiddleware) {
	setupMiddleware(engine, cfg, logger, reg)
	setupRoutes(engine, reg, h, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, logger *middleware.Logger, reg *metrics.Registry) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(logger.LoggingMiddleware())
	engine.Use(reg.Middleware())
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, reg *metrics.Registry, h Handlers, authMiddleware *middleware.AuthMiddleware) {
	engine.GET("/health", healthCheck)
	engine.GET("/metrics", gin.WrapH(reg.Handler()))

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	admin := []gin.HandlerFunc{authMiddleware.RequireAdmin()}

	apiGroup := engine.Group("/api")
	{
		cart := apiGroup.Group("/cart")
		cart.Use(authMiddleware.RequireAuth())
		addRoutes(cart, []route{
			{Method: http.MethodGet, Path: "", Handler: h.Cart.Get},
			{Method: http.MethodDelete, Path: "", Handler: h.Cart.Clear},
			{Method: http.MethodPost, Path: "/items", Handler: h.Cart.AddItem},
			{Method: http.MethodPut, Path: "/items/:productId", Handler: h.Cart.UpdateItem},
			{Method: http.MethodDelete, Path: "/items/:productId", Handler: h.Cart.RemoveItem},
		})

		orders := apiGroup.Group("/orders")
		orders.Use(authMiddleware.RequireAuth())
		addRoutes(orders, []route{
			{Method: http.MethodPost, Path: "", Handler: h.Order.Checkout},
			{Method: http.MethodGet, Path: "", Handler: h.Order.List},
			{Method: http.MethodGet, Path: "/:id", Handler: h.Order.Get},
			{Method: http.MethodPost, Path: "/:id/cancel", Handler: h.Order.Cancel},
		})

		payments := apiGroup.Group("/payments")
		payments.Use(authMiddleware.RequireAuth())
		addRoutes(payments, []route{
			{Method: http.MethodPost, Path: "", Handler: h.Payment.Process},
			{Method: http.MethodGet, Path: "", Handler: h.Payment.List},
			{Method: http.MethodGet, Path: "/:id", Handler: h.Payment.Get},
			{Method: http.MethodPost, Path: "/:id/refund", Handler: h.Payment.Refund, Mw: admin},
		})

		shipments := apiGroup.Group("/shipments")
		addRoutes(shipments, []route{
			{Method: http.MethodGet, Path: "/track/:trackingNumber", Handler: h.Shipment.Track},
		})
		authed := shipments.Group("")
		authed.Use(authMiddleware.RequireAuth())
		addRoutes(authed, []route{
			{Method: http.MethodPost, Path: "", Handler: h.Shipment.Create, Mw: admin},
			{Method: http.MethodGet, Path: "/:id", Handler: h.Shipment.Get},
			{Method: http.MethodGet, Path: "/order/:orderId", Handler: h.Shipment.GetByOrder},
			{Method: http.MethodPost, Path: "/:id/pickup", Handler: h.Shipment.PickUp, Mw: admin},
			{Method: http.MethodPost, Path: "/:id/in-transit", Handler: h.Shipment.InTransit, Mw: admin},
			{Method: http.MethodPost, Path: "/:id/out-for-delivery", Handler: h.Shipment.OutForDelivery, Mw: admin},
			{Method: http.MethodPost, Path: "/:id/deliver", Handler: h.Shipment.Deliver, Mw: admin},
			{Method: http.MethodPost, Path: "/:id/fail", Handler: h.Shipment.Fail, Mw: admin},
			{Method: http.MethodPost, Path: "/:id/return", Handler: h.Shipment.Return, Mw: admin},
			{Method: http.MethodPost, Path: "/:id/estimated-delivery", Handler: h.Shipment.SetEstimatedDelivery, Mw: admin},
		})

		coupons := apiGroup.Group("/coupons")
		coupons.Use(authMiddleware.RequireAuth())
		addRoutes(coupons, []route{
			{Method: http.MethodPost, Path: "/validate", Handler: h.Coupon.Validate},
			{Method: http.MethodPost, Path: "/apply", Handler: h.Coupon.Apply},
			{Method: http.MethodPost, Path: "", Handler: h.Coupon.Create, Mw: admin},
			{Method: http.MethodPost, Path: "/:code/deactivate", Handler: h.Coupon.Deactivate, Mw: admin},
			{Method: http.MethodPost, Path: "/:code/reactivate", Handler: h.Coupon.Reactivate, Mw: admin},
		})

		promotions := apiGroup.Group("/promotions")
		addRoutes(promotions, []route{
			{Method: http.MethodGet, Path: "", Handler: h.Promotion.ListActive},
			{Method: http.MethodGet, Path: "/:id", Handler: h.Promotion.Get},
		})
		promoAdmin := promotions.Group("")
		promoAdmin.Use(authMiddleware.RequireAuth(), authMiddleware.RequireAdmin())
		addRoutes(promoAdmin, []route{
			{Method: http.MethodPost, Path: "", Handler: h.Promotion.Create},
			{Method: http.MethodPost, Path: "/:id/activate", Handler: h.Promotion.Activate},
			{Method: http.MethodPost, Path: "/:id/deactivate", Handler: h.Promotion.Deactivate},
		})

		adminGroup := apiGroup.Group("/admin")
		adminGroup.Use(authMiddleware.RequireAuth(), authMiddleware.RequireAdmin())
		addRoutes(adminGroup, []route{
			{Method: http.MethodPost, Path: "/reconcile", Handler: h.Admin.Reconcile},
		})
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
