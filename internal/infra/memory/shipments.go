package memory

import (
	"context"

	"order-fulfillment/internal/domain/shipment"
	"order-fulfillment/internal/usecase/shared"

	"github.com/google/uuid"
)

type ShipmentRepository struct {
	t *table[uuid.UUID, *shipment.Shipment]
}

func NewShipmentRepository() *ShipmentRepository {
	return &ShipmentRepository{t: newTable[uuid.UUID](func(s *shipment.Shipment) *shipment.Shipment {
		return shipment.Reconstruct(s.Snapshot())
	})}
}

var _ shared.ShipmentRepository = (*ShipmentRepository)(nil)

func (r *ShipmentRepository) Save(_ context.Context, s *shipment.Shipment) error {
	return r.t.save(s.ID(), s)
}

func (r *ShipmentRepository) FindByID(_ context.Context, id uuid.UUID) (*shipment.Shipment, error) {
	return r.t.get(id), nil
}

func (r *ShipmentRepository) FindByOrderID(_ context.Context, orderID uuid.UUID) (*shipment.Shipment, error) {
	return first(r.t.filter(func(s *shipment.Shipment) bool { return s.OrderID() == orderID }, newestShipmentFirst)), nil
}

func (r *ShipmentRepository) FindByTrackingNumber(_ context.Context, trackingNumber string) (*shipment.Shipment, error) {
	return first(r.t.filter(func(s *shipment.Shipment) bool { return s.TrackingNumber() == trackingNumber }, newestShipmentFirst)), nil
}

func (r *ShipmentRepository) FindByCustomerID(_ context.Context, customerID uuid.UUID) ([]*shipment.Shipment, error) {
	return r.t.filter(func(s *shipment.Shipment) bool { return s.CustomerID() == customerID }, newestShipmentFirst), nil
}

func newestShipmentFirst(a, b *shipment.Shipment) int { return b.CreatedAt().Compare(a.CreatedAt()) }

func first[A any](rows []*A) *A {
	if len(rows) == 0 {
		return nil
	}
	return rows[0]
}
