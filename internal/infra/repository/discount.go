package repository

import (
	"context"
	"time"

	"order-fulfillment/internal/domain/discount"
	"order-fulfillment/internal/infra"
	"order-fulfillment/internal/infra/db"
	"order-fulfillment/internal/infra/uow"
	"order-fulfillment/internal/pkg/pgconv"
	"order-fulfillment/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

const couponColumns = `id, code, description, rule_type, rule_value, minimum_order, minimum_currency,
	expires_at, max_uses, max_uses_per_customer, usage_count, active, version, created_at, updated_at`

const upsertCoupon = `
INSERT INTO coupons (` + couponColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
ON CONFLICT (id) DO UPDATE SET
	description = EXCLUDED.description,
	usage_count = EXCLUDED.usage_count,
	active = EXCLUDED.active,
	version = EXCLUDED.version,
	updated_at = EXCLUDED.updated_at
WHERE coupons.version = $16`

const upsertCouponUsage = `
INSERT INTO coupon_customer_usage (coupon_id, customer_id, uses)
VALUES ($1, $2, $3)
ON CONFLICT (coupon_id, customer_id) DO UPDATE SET uses = EXCLUDED.uses`

// CouponRepository stores per-customer usage in its own table, written in
// the same transaction as the coupon row.
type CouponRepository struct {
	uow *uow.PostgresUoW
}

func NewCouponRepository(u *uow.PostgresUoW) *CouponRepository {
	return &CouponRepository{uow: u}
}

var _ shared.CouponRepository = (*CouponRepository)(nil)

func (r *CouponRepository) Save(ctx context.Context, c *discount.Coupon) error {
	rule := c.Rule()
	minAmount, minCurrency := optionalMoney(rule.MinimumOrder())
	limits := c.Limits()

	err := r.uow.Within(ctx, func(ctx context.Context, tx db.DBTX) error {
		tag, err := tx.Exec(ctx, upsertCoupon,
			c.ID(), c.Code().String(), c.Description(), rule.Type().String(), rule.Value(), minAmount, minCurrency,
			c.ExpiresAt(), limits.MaxUses, limits.MaxUsesPerCustomer, c.UsageCount(), c.IsActive(),
			c.Version()+1, c.CreatedAt(), c.UpdatedAt(),
			c.Version(),
		)
		if err != nil {
			return infra.WrapRepoErr("failed to save coupon", err)
		}
		if err := checkVersion(tag, "coupon "+c.Code().String(), c.Version()); err != nil {
			return err
		}
		for customerID, uses := range c.CustomerUsage() {
			if _, err := tx.Exec(ctx, upsertCouponUsage, c.ID(), customerID, uses); err != nil {
				return infra.WrapRepoErr("failed to save coupon usage", err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	c.IncrementVersion()
	return nil
}

func (r *CouponRepository) FindByCode(ctx context.Context, code discount.Code) (*discount.Coupon, error) {
	var found *discount.Coupon
	err := r.uow.WithDB(ctx, func(ctx context.Context, q db.DBTX) error {
		c, err := r.load(ctx, q, q.QueryRow(ctx, `SELECT `+couponColumns+` FROM coupons WHERE code = $1`, code.String()))
		if pgconv.IsNoRows(err) {
			return nil
		}
		if err != nil {
			return infra.WrapRepoErr("failed to find coupon", err)
		}
		found = c
		return nil
	})
	return found, err
}

func (r *CouponRepository) FindAll(ctx context.Context) ([]*discount.Coupon, error) {
	var out []*discount.Coupon
	err := r.uow.WithDB(ctx, func(ctx context.Context, q db.DBTX) error {
		rows, err := q.Query(ctx, `SELECT code FROM coupons ORDER BY created_at`)
		if err != nil {
			return infra.WrapRepoErr("failed to list coupons", err)
		}
		codes, err := pgx.CollectRows(rows, pgx.RowTo[string])
		if err != nil {
			return infra.WrapRepoErr("failed to list coupons", err)
		}
		for _, code := range codes {
			c, err := r.load(ctx, q, q.QueryRow(ctx, `SELECT `+couponColumns+` FROM coupons WHERE code = $1`, code))
			if err != nil {
				return infra.WrapRepoErr("failed to load coupon", err)
			}
			out = append(out, c)
		}
		return nil
	})
	return out, err
}

func (r *CouponRepository) load(ctx context.Context, q db.DBTX, row pgx.Row) (*discount.Coupon, error) {
	var (
		id                   uuid.UUID
		code, desc, ruleType string
		ruleValue            decimal.Decimal
		minAmount            *decimal.Decimal
		minCurrency          *string
		expiresAt            time.Time
		limits               discount.Limits
		usageCount, version  int
		active               bool
		createdAt, updatedAt time.Time
	)
	err := row.Scan(&id, &code, &desc, &ruleType, &ruleValue, &minAmount, &minCurrency,
		&expiresAt, &limits.MaxUses, &limits.MaxUsesPerCustomer, &usageCount, &active, &version, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	minimum, err := fromOptionalMoney(minAmount, minCurrency)
	if err != nil {
		return nil, err
	}
	rule, err := discount.NewRule(discount.Type(ruleType), ruleValue, minimum)
	if err != nil {
		return nil, err
	}

	rows, err := q.Query(ctx, `SELECT customer_id, uses FROM coupon_customer_usage WHERE coupon_id = $1`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	usage := make(map[uuid.UUID]int)
	for rows.Next() {
		var (
			customerID uuid.UUID
			uses       int
		)
		if err := rows.Scan(&customerID, &uses); err != nil {
			return nil, err
		}
		usage[customerID] = uses
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return discount.ReconstructCoupon(id, discount.Code(code), desc, rule, expiresAt, limits,
		usageCount, active, usage, version, createdAt, updatedAt), nil
}

const promotionColumns = `id, name, description, rule_type, rule_value, minimum_order, minimum_currency,
	starts_at, ends_at, manually_deactivated, version, created_at, updated_at`

const upsertPromotion = `
INSERT INTO promotions (` + promotionColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
ON CONFLICT (id) DO UPDATE SET
	name = EXCLUDED.name,
	description = EXCLUDED.description,
	rule_type = EXCLUDED.rule_type,
	rule_value = EXCLUDED.rule_value,
	minimum_order = EXCLUDED.minimum_order,
	minimum_currency = EXCLUDED.minimum_currency,
	starts_at = EXCLUDED.starts_at,
	ends_at = EXCLUDED.ends_at,
	manually_deactivated = EXCLUDED.manually_deactivated,
	version = EXCLUDED.version,
	updated_at = EXCLUDED.updated_at
WHERE promotions.version = $14`

type PromotionRepository struct {
	uow *uow.PostgresUoW
}

func NewPromotionRepository(u *uow.PostgresUoW) *PromotionRepository {
	return &PromotionRepository{uow: u}
}

var _ shared.PromotionRepository = (*PromotionRepository)(nil)

func (r *PromotionRepository) Save(ctx context.Context, p *discount.Promotion) error {
	rule := p.Rule()
	minAmount, minCurrency := optionalMoney(rule.MinimumOrder())
	err := r.uow.Within(ctx, func(ctx context.Context, tx db.DBTX) error {
		tag, err := tx.Exec(ctx, upsertPromotion,
			p.ID(), p.Name(), p.Description(), rule.Type().String(), rule.Value(), minAmount, minCurrency,
			p.StartsAt(), p.EndsAt(), p.IsManuallyDeactivated(), p.Version()+1, p.CreatedAt(), p.UpdatedAt(),
			p.Version(),
		)
		if err != nil {
			return infra.WrapRepoErr("failed to save promotion", err)
		}
		return checkVersion(tag, "promotion "+p.ID().String(), p.Version())
	})
	if err != nil {
		return err
	}
	p.IncrementVersion()
	return nil
}

func (r *PromotionRepository) FindByID(ctx context.Context, id uuid.UUID) (*discount.Promotion, error) {
	var found *discount.Promotion
	err := r.uow.WithDB(ctx, func(ctx context.Context, q db.DBTX) error {
		p, err := scanPromotion(q.QueryRow(ctx, `SELECT `+promotionColumns+` FROM promotions WHERE id = $1`, id))
		if pgconv.IsNoRows(err) {
			return nil
		}
		if err != nil {
			return infra.WrapRepoErr("failed to find promotion", err)
		}
		found = p
		return nil
	})
	return found, err
}

func (r *PromotionRepository) FindAll(ctx context.Context) ([]*discount.Promotion, error) {
	var out []*discount.Promotion
	err := r.uow.WithDB(ctx, func(ctx context.Context, q db.DBTX) error {
		rows, err := q.Query(ctx, `SELECT `+promotionColumns+` FROM promotions ORDER BY created_at`)
		if err != nil {
			return infra.WrapRepoErr("failed to list promotions", err)
		}
		defer rows.Close()
		for rows.Next() {
			p, err := scanPromotion(rows)
			if err != nil {
				return infra.WrapRepoErr("failed to scan promotion", err)
			}
			out = append(out, p)
		}
		return rows.Err()
	})
	return out, err
}

func scanPromotion(row pgx.Row) (*discount.Promotion, error) {
	var (
		id                                   uuid.UUID
		name, desc, ruleType                 string
		ruleValue                            decimal.Decimal
		minAmount                            *decimal.Decimal
		minCurrency                          *string
		startsAt, endsAt, createdAt, updated time.Time
		deactivated                          bool
		version                              int
	)
	err := row.Scan(&id, &name, &desc, &ruleType, &ruleValue, &minAmount, &minCurrency,
		&startsAt, &endsAt, &deactivated, &version, &createdAt, &updated)
	if err != nil {
		return nil, err
	}
	minimum, err := fromOptionalMoney(minAmount, minCurrency)
	if err != nil {
		return nil, err
	}
	rule, err := discount.NewRule(discount.Type(ruleType), ruleValue, minimum)
	if err != nil {
		return nil, err
	}
	return discount.ReconstructPromotion(id, name, desc, rule, startsAt, endsAt, deactivated, version, createdAt, updated), nil
}
