package queries

//go:generate mockgen -source=shipments.go -destination=../../../tests/mock/queries/shipments.go -package=queriesmock

import (
	"context"
	"strings"

	"order-fulfillment/internal/domain/shipment"
	"order-fulfillment/internal/usecase/shared"

	"github.com/google/uuid"
)

type ShipmentQueries interface {
	GetShipment(ctx context.Context, id uuid.UUID, actor shared.Actor) (*ShipmentView, error)
	GetShipmentByOrder(ctx context.Context, orderID uuid.UUID, actor shared.Actor) (*ShipmentView, error)
	// TrackShipment is public: knowing the tracking number is enough.
	TrackShipment(ctx context.Context, trackingNumber string) (*ShipmentView, error)
}

type shipmentQueriesImpl struct {
	shipments shared.ShipmentRepository
}

func NewShipmentQueries(shipments shared.ShipmentRepository) ShipmentQueries {
	return &shipmentQueriesImpl{shipments: shipments}
}

func (q *shipmentQueriesImpl) GetShipment(ctx context.Context, id uuid.UUID, actor shared.Actor) (*ShipmentView, error) {
	s, err := q.shipments.FindByID(ctx, id)
	return visibleShipment(s, err, actor)
}

func (q *shipmentQueriesImpl) GetShipmentByOrder(ctx context.Context, orderID uuid.UUID, actor shared.Actor) (*ShipmentView, error) {
	s, err := q.shipments.FindByOrderID(ctx, orderID)
	return visibleShipment(s, err, actor)
}

func (q *shipmentQueriesImpl) TrackShipment(ctx context.Context, trackingNumber string) (*ShipmentView, error) {
	s, err := q.shipments.FindByTrackingNumber(ctx, strings.ToUpper(strings.TrimSpace(trackingNumber)))
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, shared.ErrShipmentNotFound
	}
	return NewShipmentView(s), nil
}

func visibleShipment(s *shipment.Shipment, err error, actor shared.Actor) (*ShipmentView, error) {
	if err != nil {
		return nil, err
	}
	if s == nil || !actor.CanAccess(s.CustomerID()) {
		return nil, shared.ErrShipmentNotFound
	}
	return NewShipmentView(s), nil
}
