package shared

import "order-fulfillment/internal/pkg/errs"

// Lookup failures shared by the command and query sides.
var (
	ErrOrderNotFound     = errs.NotFound("order not found")
	ErrPaymentNotFound   = errs.NotFound("payment not found")
	ErrShipmentNotFound  = errs.NotFound("shipment not found")
	ErrCouponNotFound    = errs.NotFound("Coupon not found")
	ErrPromotionNotFound = errs.NotFound("promotion not found")
)
