package repository

import (
	"context"
	"time"

	"order-fulfillment/internal/domain/money"
	"order-fulfillment/internal/domain/order"
	"order-fulfillment/internal/infra"
	"order-fulfillment/internal/infra/converter"
	"order-fulfillment/internal/infra/db"
	"order-fulfillment/internal/infra/uow"
	"order-fulfillment/internal/pkg/pgconv"
	"order-fulfillment/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

const orderColumns = `id, customer_id, items, shipping_address, currency, subtotal, discount, total,
	coupon_code, status, payment_id, tracking_number, cancellation_reason, refund_required,
	version, created_at, updated_at, paid_at, shipped_at, delivered_at, cancelled_at`

const upsertOrder = `
INSERT INTO orders (` + orderColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)
ON CONFLICT (id) DO UPDATE SET
	status = EXCLUDED.status,
	payment_id = EXCLUDED.payment_id,
	tracking_number = EXCLUDED.tracking_number,
	cancellation_reason = EXCLUDED.cancellation_reason,
	refund_required = EXCLUDED.refund_required,
	version = EXCLUDED.version,
	updated_at = EXCLUDED.updated_at,
	paid_at = EXCLUDED.paid_at,
	shipped_at = EXCLUDED.shipped_at,
	delivered_at = EXCLUDED.delivered_at,
	cancelled_at = EXCLUDED.cancelled_at
WHERE orders.version = $22`

type OrderRepository struct {
	uow *uow.PostgresUoW
}

func NewOrderRepository(u *uow.PostgresUoW) *OrderRepository {
	return &OrderRepository{uow: u}
}

var _ shared.OrderRepository = (*OrderRepository)(nil)

func (r *OrderRepository) Save(ctx context.Context, o *order.Order) error {
	s := o.Snapshot()
	items, err := marshalDoc("order items", converter.OrderItemsToDocs(s.Items))
	if err != nil {
		return err
	}
	addr, err := marshalDoc("shipping address", converter.AddressToDoc(s.ShippingAddress))
	if err != nil {
		return err
	}

	err = r.uow.Within(ctx, func(ctx context.Context, tx db.DBTX) error {
		tag, err := tx.Exec(ctx, upsertOrder,
			s.ID, s.CustomerID, items, addr, s.Total.Currency().String(),
			s.Subtotal.Amount(), s.Discount.Amount(), s.Total.Amount(),
			s.CouponCode, s.Status.String(), s.PaymentID, s.TrackingNumber, s.CancellationReason, s.RefundRequired,
			s.Version+1, s.CreatedAt, s.UpdatedAt, s.PaidAt, s.ShippedAt, s.DeliveredAt, s.CancelledAt,
			s.Version,
		)
		if err != nil {
			return infra.WrapRepoErr("failed to save order", err)
		}
		return checkVersion(tag, "order "+s.ID.String(), s.Version)
	})
	if err != nil {
		return err
	}
	o.IncrementVersion()
	return nil
}

func (r *OrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	var found *order.Order
	err := r.uow.WithDB(ctx, func(ctx context.Context, q db.DBTX) error {
		o, err := scanOrder(q.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id))
		if pgconv.IsNoRows(err) {
			return nil
		}
		if err != nil {
			return infra.WrapRepoErr("failed to find order", err)
		}
		found = o
		return nil
	})
	return found, err
}

func (r *OrderRepository) FindByCustomerID(ctx context.Context, customerID uuid.UUID) ([]*order.Order, error) {
	return r.list(ctx, `SELECT `+orderColumns+` FROM orders WHERE customer_id = $1 ORDER BY created_at DESC`, customerID)
}

func (r *OrderRepository) FindPendingPaymentOlderThan(ctx context.Context, cutoff time.Time) ([]*order.Order, error) {
	return r.list(ctx, `SELECT `+orderColumns+` FROM orders WHERE status = $1 AND created_at < $2 ORDER BY created_at`,
		order.StatusPendingPayment.String(), cutoff)
}

func (r *OrderRepository) list(ctx context.Context, query string, args ...any) ([]*order.Order, error) {
	var out []*order.Order
	err := r.uow.WithDB(ctx, func(ctx context.Context, q db.DBTX) error {
		rows, err := q.Query(ctx, query, args...)
		if err != nil {
			return infra.WrapRepoErr("failed to list orders", err)
		}
		defer rows.Close()
		for rows.Next() {
			o, err := scanOrder(rows)
			if err != nil {
				return infra.WrapRepoErr("failed to scan order", err)
			}
			out = append(out, o)
		}
		return rows.Err()
	})
	return out, err
}

func scanOrder(row pgx.Row) (*order.Order, error) {
	var (
		s                     order.Snapshot
		items, addr           []byte
		currency, status      string
		subtotal, disc, total decimal.Decimal
	)
	err := row.Scan(
		&s.ID, &s.CustomerID, &items, &addr, &currency, &subtotal, &disc, &total,
		&s.CouponCode, &status, &s.PaymentID, &s.TrackingNumber, &s.CancellationReason, &s.RefundRequired,
		&s.Version, &s.CreatedAt, &s.UpdatedAt, &s.PaidAt, &s.ShippedAt, &s.DeliveredAt, &s.CancelledAt,
	)
	if err != nil {
		return nil, err
	}
	s.Status = order.Status(status)

	var itemDocs []converter.OrderItemDoc
	if err := unmarshalDoc("order items", items, &itemDocs); err != nil {
		return nil, err
	}
	if s.Items, err = converter.OrderItemsFromDocs(itemDocs, money.Currency(currency)); err != nil {
		return nil, err
	}
	var addrDoc converter.AddressDoc
	if err := unmarshalDoc("shipping address", addr, &addrDoc); err != nil {
		return nil, err
	}
	if s.ShippingAddress, err = converter.AddressFromDoc(addrDoc); err != nil {
		return nil, err
	}
	if s.Subtotal, err = toMoney(subtotal, currency); err != nil {
		return nil, err
	}
	if s.Discount, err = toMoney(disc, currency); err != nil {
		return nil, err
	}
	if s.Total, err = toMoney(total, currency); err != nil {
		return nil, err
	}
	return order.Reconstruct(s), nil
}
