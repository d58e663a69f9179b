package request

import (
	"time"

	"order-fulfillment/internal/domain/shipment"
	"order-fulfillment/internal/pkg/patch"
	"order-fulfillment/internal/usecase/commands"

	"github.com/google/uuid"
)

type CreateShipmentRequest struct {
	OrderID uuid.UUID `json:"orderId" binding:"required"`
	// CustomerID defaults to the order's customer.
	CustomerID *uuid.UUID      `json:"customerId,omitempty"`
	Carrier    string          `json:"carrier" binding:"required"`
	Address    *AddressRequest `json:"address" binding:"required"`
}

func (r CreateShipmentRequest) ToCommand() (commands.CreateShipmentRequest, error) {
	carrier, err := shipment.ParseCarrier(r.Carrier)
	if err != nil {
		return commands.CreateShipmentRequest{}, err
	}
	return commands.CreateShipmentRequest{
		OrderID:    r.OrderID,
		CustomerID: patch.Coalesce(r.CustomerID, uuid.Nil),
		Carrier:    carrier,
		Address:    r.Address.ToParams(),
	}, nil
}

type FailShipmentRequest struct {
	Reason string `json:"reason" binding:"required,max=500"`
}

type EstimatedDeliveryRequest struct {
	Date time.Time `json:"date" binding:"required"`
}
