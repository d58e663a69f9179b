package repository

import (
	"context"

	"order-fulfillment/internal/domain/shipment"
	"order-fulfillment/internal/infra"
	"order-fulfillment/internal/infra/converter"
	"order-fulfillment/internal/infra/db"
	"order-fulfillment/internal/infra/uow"
	"order-fulfillment/internal/pkg/pgconv"
	"order-fulfillment/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const shipmentColumns = `id, order_id, customer_id, carrier, tracking_number, address, status, events,
	failure_reason, estimated_delivery_date, shipped_at, delivered_at, version, created_at, updated_at`

const upsertShipment = `
INSERT INTO shipments (` + shipmentColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
ON CONFLICT (id) DO UPDATE SET
	status = EXCLUDED.status,
	events = EXCLUDED.events,
	failure_reason = EXCLUDED.failure_reason,
	estimated_delivery_date = EXCLUDED.estimated_delivery_date,
	shipped_at = EXCLUDED.shipped_at,
	delivered_at = EXCLUDED.delivered_at,
	version = EXCLUDED.version,
	updated_at = EXCLUDED.updated_at
WHERE shipments.version = $16`

type ShipmentRepository struct {
	uow *uow.PostgresUoW
}

func NewShipmentRepository(u *uow.PostgresUoW) *ShipmentRepository {
	return &ShipmentRepository{uow: u}
}

var _ shared.ShipmentRepository = (*ShipmentRepository)(nil)

func (r *ShipmentRepository) Save(ctx context.Context, sh *shipment.Shipment) error {
	s := sh.Snapshot()
	addr, err := marshalDoc("delivery address", converter.AddressToDoc(s.Address))
	if err != nil {
		return err
	}
	events, err := marshalDoc("tracking events", converter.TrackingEventsToDocs(s.Events))
	if err != nil {
		return err
	}

	err = r.uow.Within(ctx, func(ctx context.Context, tx db.DBTX) error {
		tag, err := tx.Exec(ctx, upsertShipment,
			s.ID, s.OrderID, s.CustomerID, s.Carrier.String(), s.TrackingNumber, addr, s.Status.String(), events,
			s.FailureReason, s.EstimatedDeliveryDate, s.ShippedAt, s.DeliveredAt, s.Version+1, s.CreatedAt, s.UpdatedAt,
			s.Version,
		)
		if err != nil {
			return infra.WrapRepoErr("failed to save shipment", err)
		}
		return checkVersion(tag, "shipment "+s.ID.String(), s.Version)
	})
	if err != nil {
		return err
	}
	sh.IncrementVersion()
	return nil
}

func (r *ShipmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*shipment.Shipment, error) {
	return r.one(ctx, `SELECT `+shipmentColumns+` FROM shipments WHERE id = $1`, id)
}

func (r *ShipmentRepository) FindByOrderID(ctx context.Context, orderID uuid.UUID) (*shipment.Shipment, error) {
	return r.one(ctx, `SELECT `+shipmentColumns+` FROM shipments WHERE order_id = $1 ORDER BY created_at DESC LIMIT 1`, orderID)
}

func (r *ShipmentRepository) FindByTrackingNumber(ctx context.Context, trackingNumber string) (*shipment.Shipment, error) {
	return r.one(ctx, `SELECT `+shipmentColumns+` FROM shipments WHERE tracking_number = $1 ORDER BY created_at DESC LIMIT 1`, trackingNumber)
}

func (r *ShipmentRepository) FindByCustomerID(ctx context.Context, customerID uuid.UUID) ([]*shipment.Shipment, error) {
	var out []*shipment.Shipment
	err := r.uow.WithDB(ctx, func(ctx context.Context, q db.DBTX) error {
		rows, err := q.Query(ctx, `SELECT `+shipmentColumns+` FROM shipments WHERE customer_id = $1 ORDER BY created_at DESC`, customerID)
		if err != nil {
			return infra.WrapRepoErr("failed to list shipments", err)
		}
		defer rows.Close()
		for rows.Next() {
			s, err := scanShipment(rows)
			if err != nil {
				return infra.WrapRepoErr("failed to scan shipment", err)
			}
			out = append(out, s)
		}
		return rows.Err()
	})
	return out, err
}

func (r *ShipmentRepository) one(ctx context.Context, query string, args ...any) (*shipment.Shipment, error) {
	var found *shipment.Shipment
	err := r.uow.WithDB(ctx, func(ctx context.Context, q db.DBTX) error {
		s, err := scanShipment(q.QueryRow(ctx, query, args...))
		if pgconv.IsNoRows(err) {
			return nil
		}
		if err != nil {
			return infra.WrapRepoErr("failed to find shipment", err)
		}
		found = s
		return nil
	})
	return found, err
}

func scanShipment(row pgx.Row) (*shipment.Shipment, error) {
	var (
		s               shipment.Snapshot
		carrier, status string
		addr, events    []byte
	)
	err := row.Scan(
		&s.ID, &s.OrderID, &s.CustomerID, &carrier, &s.TrackingNumber, &addr, &status, &events,
		&s.FailureReason, &s.EstimatedDeliveryDate, &s.ShippedAt, &s.DeliveredAt, &s.Version, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	s.Carrier = shipment.Carrier(carrier)
	s.Status = shipment.Status(status)

	var addrDoc converter.AddressDoc
	if err := unmarshalDoc("delivery address", addr, &addrDoc); err != nil {
		return nil, err
	}
	if s.Address, err = converter.AddressFromDoc(addrDoc); err != nil {
		return nil, err
	}
	var eventDocs []converter.TrackingEventDoc
	if err := unmarshalDoc("tracking events", events, &eventDocs); err != nil {
		return nil, err
	}
	s.Events = converter.TrackingEventsFromDocs(eventDocs)
	return shipment.Reconstruct(s), nil
}
