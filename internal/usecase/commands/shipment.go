package commands

//go:generate mockgen -source=shipment.go -destination=../../../tests/mock/commands/shipment.go -package=commandsmock

import (
	"context"
	"log/slog"
	"time"

	"order-fulfillment/internal/domain/address"
	"order-fulfillment/internal/domain/order"
	"order-fulfillment/internal/domain/shipment"
	"order-fulfillment/internal/pkg/clock"
	"order-fulfillment/internal/pkg/errs"
	"order-fulfillment/internal/usecase/queries"
	"order-fulfillment/internal/usecase/shared"

	"github.com/google/uuid"
)

// CreateShipmentRequest ships a paid order. CustomerID may be left zero, in
// which case the order's customer is used.
type CreateShipmentRequest struct {
	OrderID    uuid.UUID
	CustomerID uuid.UUID
	Carrier    shipment.Carrier
	Address    address.Params
}

type ShipmentCommands interface {
	CreateShipment(ctx context.Context, req CreateShipmentRequest) (*queries.ShipmentView, error)
	PickUp(ctx context.Context, id uuid.UUID) (*queries.ShipmentView, error)
	InTransit(ctx context.Context, id uuid.UUID) (*queries.ShipmentView, error)
	OutForDelivery(ctx context.Context, id uuid.UUID) (*queries.ShipmentView, error)
	Deliver(ctx context.Context, id uuid.UUID) (*queries.ShipmentView, error)
	Fail(ctx context.Context, id uuid.UUID, reason string) (*queries.ShipmentView, error)
	Return(ctx context.Context, id uuid.UUID) (*queries.ShipmentView, error)
	SetEstimatedDelivery(ctx context.Context, id uuid.UUID, date time.Time) (*queries.ShipmentView, error)
}

type shipmentUseCaseImpl struct {
	shipments shared.ShipmentRepository
	orders    shared.OrderService
	logistics shared.LogisticsProvider
	tracking  *shipment.TrackingNumbers
	locker    shared.Locker
	metrics   shared.Metrics
	clock     clock.Clock
}

func NewShipmentUseCase(
	shipments shared.ShipmentRepository,
	orders shared.OrderService,
	logistics shared.LogisticsProvider,
	tracking *shipment.TrackingNumbers,
	locker shared.Locker,
	metrics shared.Metrics,
	clk clock.Clock,
) ShipmentCommands {
	return &shipmentUseCaseImpl{
		shipments: shipments,
		orders:    orders,
		logistics: logistics,
		tracking:  tracking,
		locker:    locker,
		metrics:   metrics,
		clock:     clk,
	}
}

func (uc *shipmentUseCaseImpl) CreateShipment(ctx context.Context, req CreateShipmentRequest) (*queries.ShipmentView, error) {
	if !req.Carrier.IsValid() {
		return nil, errs.Wrapf(shipment.ErrInvalidCarrier, "carrier %q", req.Carrier)
	}
	shipTo, err := address.New(req.Address)
	if err != nil {
		return nil, err
	}
	info, err := uc.orders.GetOrderInfo(ctx, req.OrderID)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrExternalDependency)
	}
	if info == nil || (req.CustomerID != uuid.Nil && info.CustomerID != req.CustomerID) {
		return nil, errs.Wrapf(ErrOrderNotFound, "order %s", req.OrderID)
	}
	if info.Status != order.StatusPaid {
		return nil, errs.Wrapf(ErrOrderNotShippable, "order %s is %s", req.OrderID, info.Status)
	}

	var s *shipment.Shipment
	err = withLock(ctx, uc.locker, shared.ShipmentForOrderLockKey(req.OrderID), func() error {
		existing, err := uc.shipments.FindByOrderID(ctx, req.OrderID)
		if err != nil {
			return err
		}
		if existing != nil {
			return errs.Wrapf(ErrShipmentAlreadyExists, "order %s has shipment %s", req.OrderID, existing.ID())
		}
		s, err = shipment.New(req.OrderID, info.CustomerID, req.Carrier, uc.tracking.Next(req.Carrier), shipTo, uc.clock.Now())
		if err != nil {
			return err
		}
		return uc.shipments.Save(ctx, s)
	})
	if err != nil {
		return nil, err
	}
	slog.Info("shipment created", "shipment_id", s.ID(), "order_id", s.OrderID(), "tracking_number", s.TrackingNumber())

	if err := uc.logistics.RegisterShipment(ctx, s); err != nil {
		slog.Warn("failed to register shipment with carrier", "shipment_id", s.ID(), "carrier", s.Carrier(), "error", err)
	}
	notifyPeer(ctx, uc.metrics, EventShipmentCreated, func(ctx context.Context) error {
		return uc.orders.NotifyShipmentCreated(ctx, s.OrderID(), s.ID(), s.TrackingNumber())
	}, "order_id", s.OrderID(), "shipment_id", s.ID())
	return queries.NewShipmentView(s), nil
}

func (uc *shipmentUseCaseImpl) transition(ctx context.Context, id uuid.UUID, fn func(s *shipment.Shipment, now time.Time) error) (*shipment.Shipment, error) {
	var s *shipment.Shipment
	err := withLock(ctx, uc.locker, shared.ShipmentLockKey(id), func() error {
		var err error
		s, err = uc.shipments.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if s == nil {
			return errs.Wrapf(ErrShipmentNotFound, "shipment %s", id)
		}
		if err := fn(s, uc.clock.Now()); err != nil {
			return err
		}
		return uc.shipments.Save(ctx, s)
	})
	if err != nil {
		return nil, err
	}
	slog.Info("shipment status changed", "shipment_id", id, "status", s.Status())
	return s, nil
}

func (uc *shipmentUseCaseImpl) PickUp(ctx context.Context, id uuid.UUID) (*queries.ShipmentView, error) {
	s, err := uc.transition(ctx, id, (*shipment.Shipment).MarkAsPickedUp)
	if err != nil {
		return nil, err
	}
	return queries.NewShipmentView(s), nil
}

func (uc *shipmentUseCaseImpl) InTransit(ctx context.Context, id uuid.UUID) (*queries.ShipmentView, error) {
	s, err := uc.transition(ctx, id, (*shipment.Shipment).MarkAsInTransit)
	if err != nil {
		return nil, err
	}
	notifyPeer(ctx, uc.metrics, EventShipmentInTransit, func(ctx context.Context) error {
		return uc.orders.NotifyShipmentInTransit(ctx, s.OrderID(), s.TrackingNumber())
	}, "order_id", s.OrderID(), "shipment_id", s.ID())
	return queries.NewShipmentView(s), nil
}

func (uc *shipmentUseCaseImpl) OutForDelivery(ctx context.Context, id uuid.UUID) (*queries.ShipmentView, error) {
	s, err := uc.transition(ctx, id, (*shipment.Shipment).MarkAsOutForDelivery)
	if err != nil {
		return nil, err
	}
	return queries.NewShipmentView(s), nil
}

func (uc *shipmentUseCaseImpl) Deliver(ctx context.Context, id uuid.UUID) (*queries.ShipmentView, error) {
	s, err := uc.transition(ctx, id, (*shipment.Shipment).MarkAsDelivered)
	if err != nil {
		return nil, err
	}
	notifyPeer(ctx, uc.metrics, EventShipmentDelivered, func(ctx context.Context) error {
		return uc.orders.NotifyShipmentDelivered(ctx, s.OrderID())
	}, "order_id", s.OrderID(), "shipment_id", s.ID())
	return queries.NewShipmentView(s), nil
}

func (uc *shipmentUseCaseImpl) Fail(ctx context.Context, id uuid.UUID, reason string) (*queries.ShipmentView, error) {
	s, err := uc.transition(ctx, id, func(s *shipment.Shipment, now time.Time) error {
		return s.MarkAsFailed(reason, now)
	})
	if err != nil {
		return nil, err
	}
	notifyPeer(ctx, uc.metrics, EventShipmentFailed, func(ctx context.Context) error {
		return uc.orders.NotifyShipmentFailed(ctx, s.OrderID(), reason)
	}, "order_id", s.OrderID(), "shipment_id", s.ID())
	return queries.NewShipmentView(s), nil
}

func (uc *shipmentUseCaseImpl) Return(ctx context.Context, id uuid.UUID) (*queries.ShipmentView, error) {
	s, err := uc.transition(ctx, id, (*shipment.Shipment).MarkAsReturned)
	if err != nil {
		return nil, err
	}
	return queries.NewShipmentView(s), nil
}

func (uc *shipmentUseCaseImpl) SetEstimatedDelivery(ctx context.Context, id uuid.UUID, date time.Time) (*queries.ShipmentView, error) {
	s, err := uc.transition(ctx, id, func(s *shipment.Shipment, now time.Time) error {
		return s.SetEstimatedDeliveryDate(date, now)
	})
	if err != nil {
		return nil, err
	}
	return queries.NewShipmentView(s), nil
}
