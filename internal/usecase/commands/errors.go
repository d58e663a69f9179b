package commands

import (
	"order-fulfillment/internal/pkg/errs"
	"order-fulfillment/internal/usecase/shared"
)

var (
	ErrOrderNotFound     = shared.ErrOrderNotFound
	ErrPaymentNotFound   = shared.ErrPaymentNotFound
	ErrShipmentNotFound  = shared.ErrShipmentNotFound
	ErrCouponNotFound    = shared.ErrCouponNotFound
	ErrPromotionNotFound = shared.ErrPromotionNotFound

	ErrCouponInvalid         = errs.BusinessRule("coupon cannot be applied")
	ErrCouponCodeTaken       = errs.StateConflict("coupon code already exists")
	ErrProductNotFound       = errs.NotFound("product not found")
	ErrInsufficientStock     = errs.BusinessRule("insufficient stock")
	ErrOrderNotPayable       = errs.StateConflict("order is not awaiting payment")
	ErrPaymentFailed         = errs.ExternalDependency("payment was declined by the gateway")
	ErrGatewayUnavailable    = errs.ExternalDependency("payment gateway unavailable")
	ErrShipmentAlreadyExists = errs.StateConflict("shipment already exists for order")
	ErrOrderNotShippable     = errs.StateConflict("order is not paid")
)
