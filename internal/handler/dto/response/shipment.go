package response

import (
	"time"

	"order-fulfillment/internal/usecase/queries"

	"github.com/google/uuid"
)

type TrackingEventResponse struct {
	Description string    `json:"description"`
	Location    *string   `json:"location,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}

type ShipmentResponse struct {
	ID                    uuid.UUID               `json:"id"`
	OrderID               uuid.UUID               `json:"orderId"`
	Carrier               string                  `json:"carrier"`
	CarrierName           string                  `json:"carrierName"`
	TrackingNumber        string                  `json:"trackingNumber"`
	TrackingURL           string                  `json:"trackingUrl"`
	Address               AddressResponse         `json:"address"`
	Status                string                  `json:"status"`
	Events                []TrackingEventResponse `json:"events"`
	FailureReason         string                  `json:"failureReason,omitempty"`
	EstimatedDeliveryDate *time.Time              `json:"estimatedDeliveryDate,omitempty"`
	ShippedAt             *time.Time              `json:"shippedAt,omitempty"`
	DeliveredAt           *time.Time              `json:"deliveredAt,omitempty"`
	CreatedAt             time.Time               `json:"createdAt"`
	UpdatedAt             time.Time               `json:"updatedAt"`
}

func FromShipmentView(v *queries.ShipmentView) *ShipmentResponse {
	events := make([]TrackingEventResponse, len(v.Events))
	for i, e := range v.Events {
		events[i] = TrackingEventResponse{Description: e.Description, Location: e.Location, Timestamp: e.Timestamp}
	}
	return &ShipmentResponse{
		ID:                    v.ID,
		OrderID:               v.OrderID,
		Carrier:               v.Carrier,
		CarrierName:           v.CarrierName,
		TrackingNumber:        v.TrackingNumber,
		TrackingURL:           v.TrackingURL,
		Address:               FromAddressView(v.Address),
		Status:                v.Status,
		Events:                events,
		FailureReason:         v.FailureReason,
		EstimatedDeliveryDate: v.EstimatedDeliveryDate,
		ShippedAt:             v.ShippedAt,
		DeliveredAt:           v.DeliveredAt,
		CreatedAt:             v.CreatedAt,
		UpdatedAt:             v.UpdatedAt,
	}
}
