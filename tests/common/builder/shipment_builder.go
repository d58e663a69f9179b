//go:build unit || e2e

package builder

import (
	"time"

	"order-fulfillment/internal/domain/address"
	"order-fulfillment/internal/domain/shipment"
	"order-fulfillment/internal/usecase/queries"

	"github.com/google/uuid"
)

type ShipmentBuilder struct {
	OrderID        uuid.UUID
	CustomerID     uuid.UUID
	Carrier        shipment.Carrier
	TrackingNumber string
	Address        address.Address
	Now            time.Time
}

func NewShipmentBuilder() *ShipmentBuilder {
	return &ShipmentBuilder{
		OrderID:        uuid.New(),
		CustomerID:     uuid.New(),
		Carrier:        shipment.CarrierBlackCat,
		TrackingNumber: "BC202503010001",
		Address:        NewAddressBuilder().MustBuild(),
		Now:            time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (s *ShipmentBuilder) With(mutate func(*ShipmentBuilder)) *ShipmentBuilder {
	mutate(s)
	return s
}

func (s *ShipmentBuilder) BuildDomain() (*shipment.Shipment, error) {
	return shipment.New(s.OrderID, s.CustomerID, s.Carrier, s.TrackingNumber, s.Address, s.Now)
}

func (s *ShipmentBuilder) BuildViewQuery() *queries.ShipmentView {
	shp, err := s.BuildDomain()
	if err != nil {
		panic(err)
	}
	return queries.NewShipmentView(shp)
}
