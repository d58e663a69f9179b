package repository

import (
	"context"
	"time"

	"order-fulfillment/internal/domain/payment"
	"order-fulfillment/internal/infra"
	"order-fulfillment/internal/infra/db"
	"order-fulfillment/internal/infra/uow"
	"order-fulfillment/internal/pkg/pgconv"
	"order-fulfillment/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

const paymentColumns = `id, order_id, customer_id, currency, amount, method, status, transaction_id,
	failure_reason, refunded_amount, refund_reason, version, created_at, updated_at,
	completed_at, failed_at, refunded_at, expired_at`

const upsertPayment = `
INSERT INTO payments (` + paymentColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
ON CONFLICT (id) DO UPDATE SET
	status = EXCLUDED.status,
	transaction_id = EXCLUDED.transaction_id,
	failure_reason = EXCLUDED.failure_reason,
	refunded_amount = EXCLUDED.refunded_amount,
	refund_reason = EXCLUDED.refund_reason,
	version = EXCLUDED.version,
	updated_at = EXCLUDED.updated_at,
	completed_at = EXCLUDED.completed_at,
	failed_at = EXCLUDED.failed_at,
	refunded_at = EXCLUDED.refunded_at,
	expired_at = EXCLUDED.expired_at
WHERE payments.version = $19`

type PaymentRepository struct {
	uow *uow.PostgresUoW
}

func NewPaymentRepository(u *uow.PostgresUoW) *PaymentRepository {
	return &PaymentRepository{uow: u}
}

var _ shared.PaymentRepository = (*PaymentRepository)(nil)

func (r *PaymentRepository) Save(ctx context.Context, p *payment.Payment) error {
	s := p.Snapshot()
	err := r.uow.Within(ctx, func(ctx context.Context, tx db.DBTX) error {
		tag, err := tx.Exec(ctx, upsertPayment,
			s.ID, s.OrderID, s.CustomerID, s.Amount.Currency().String(), s.Amount.Amount(),
			s.Method.String(), s.Status.String(), s.TransactionID, s.FailureReason,
			s.RefundedAmount.Amount(), s.RefundReason, s.Version+1, s.CreatedAt, s.UpdatedAt,
			s.CompletedAt, s.FailedAt, s.RefundedAt, s.ExpiredAt,
			s.Version,
		)
		if err != nil {
			return infra.WrapRepoErr("failed to save payment", err)
		}
		return checkVersion(tag, "payment "+s.ID.String(), s.Version)
	})
	if err != nil {
		return err
	}
	p.IncrementVersion()
	return nil
}

func (r *PaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*payment.Payment, error) {
	var found *payment.Payment
	err := r.uow.WithDB(ctx, func(ctx context.Context, q db.DBTX) error {
		p, err := scanPayment(q.QueryRow(ctx, `SELECT `+paymentColumns+` FROM payments WHERE id = $1`, id))
		if pgconv.IsNoRows(err) {
			return nil
		}
		if err != nil {
			return infra.WrapRepoErr("failed to find payment", err)
		}
		found = p
		return nil
	})
	return found, err
}

func (r *PaymentRepository) FindByOrderID(ctx context.Context, orderID uuid.UUID) ([]*payment.Payment, error) {
	return r.list(ctx, `SELECT `+paymentColumns+` FROM payments WHERE order_id = $1 ORDER BY created_at DESC`, orderID)
}

func (r *PaymentRepository) FindByCustomerID(ctx context.Context, customerID uuid.UUID) ([]*payment.Payment, error) {
	return r.list(ctx, `SELECT `+paymentColumns+` FROM payments WHERE customer_id = $1 ORDER BY created_at DESC`, customerID)
}

func (r *PaymentRepository) FindPendingOlderThan(ctx context.Context, cutoff time.Time) ([]*payment.Payment, error) {
	return r.list(ctx, `SELECT `+paymentColumns+` FROM payments WHERE status = ANY($1) AND created_at < $2 ORDER BY created_at`,
		[]string{payment.StatusPending.String(), payment.StatusProcessing.String()}, cutoff)
}

func (r *PaymentRepository) list(ctx context.Context, query string, args ...any) ([]*payment.Payment, error) {
	var out []*payment.Payment
	err := r.uow.WithDB(ctx, func(ctx context.Context, q db.DBTX) error {
		rows, err := q.Query(ctx, query, args...)
		if err != nil {
			return infra.WrapRepoErr("failed to list payments", err)
		}
		defer rows.Close()
		for rows.Next() {
			p, err := scanPayment(rows)
			if err != nil {
				return infra.WrapRepoErr("failed to scan payment", err)
			}
			out = append(out, p)
		}
		return rows.Err()
	})
	return out, err
}

func scanPayment(row pgx.Row) (*payment.Payment, error) {
	var (
		s                        payment.Snapshot
		currency, method, status string
		amount, refunded         decimal.Decimal
	)
	err := row.Scan(
		&s.ID, &s.OrderID, &s.CustomerID, &currency, &amount, &method, &status, &s.TransactionID,
		&s.FailureReason, &refunded, &s.RefundReason, &s.Version, &s.CreatedAt, &s.UpdatedAt,
		&s.CompletedAt, &s.FailedAt, &s.RefundedAt, &s.ExpiredAt,
	)
	if err != nil {
		return nil, err
	}
	s.Method = payment.Method(method)
	s.Status = payment.Status(status)
	if s.Amount, err = toMoney(amount, currency); err != nil {
		return nil, err
	}
	if s.RefundedAmount, err = toMoney(refunded, currency); err != nil {
		return nil, err
	}
	return payment.Reconstruct(s), nil
}
