package request

import (
	"strings"

	"order-fulfillment/internal/domain/address"
	"order-fulfillment/internal/usecase/commands"

	"github.com/google/uuid"
)

type AddressRequest struct {
	Street        string `json:"street" binding:"required,max=200"`
	City          string `json:"city" binding:"required,max=50"`
	District      string `json:"district" binding:"max=50"`
	PostalCode    string `json:"postalCode" binding:"required,max=10"`
	Country       string `json:"country" binding:"max=50"`
	RecipientName string `json:"recipientName" binding:"required,max=100"`
	PhoneNumber   string `json:"phoneNumber" binding:"required,max=20"`
}

func (r AddressRequest) ToParams() address.Params {
	return address.Params{
		Street:        r.Street,
		City:          r.City,
		District:      r.District,
		PostalCode:    r.PostalCode,
		Country:       r.Country,
		RecipientName: r.RecipientName,
		PhoneNumber:   r.PhoneNumber,
	}
}

type CheckoutRequest struct {
	CouponCode      *string        `json:"couponCode,omitempty"`
	ShippingAddress AddressRequest `json:"shippingAddress" binding:"required"`
}

func (r CheckoutRequest) GetCouponCode() *string {
	if r.CouponCode == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*r.CouponCode)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func (r CheckoutRequest) ToCommand() commands.CheckoutRequest {
	return commands.CheckoutRequest{
		CouponCode:      r.GetCouponCode(),
		ShippingAddress: r.ShippingAddress.ToParams(),
	}
}

type CancelOrderRequest struct {
	Reason string `json:"reason" binding:"required,max=500"`
}

type AddToCartRequest struct {
	ProductID uuid.UUID `json:"productId" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required,min=1,max=99"`
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" binding:"required,min=1,max=99"`
}
