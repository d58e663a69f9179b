package discount

import (
	"strings"
	"time"

	"order-fulfillment/internal/domain/money"
	"order-fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
)

type Promotion struct {
	id                  uuid.UUID
	name                string
	description         string
	rule                Rule
	startsAt            time.Time
	endsAt              time.Time
	manuallyDeactivated bool
	version             int
	createdAt           time.Time
	updatedAt           time.Time
}

func NewPromotion(name, description string, rule Rule, startsAt, endsAt time.Time, now time.Time) (*Promotion, error) {
	p := &Promotion{
		id:        uuid.New(),
		createdAt: now,
	}
	if err := p.Update(name, description, rule, startsAt, endsAt, now); err != nil {
		return nil, err
	}
	return p, nil
}

func ReconstructPromotion(
	id uuid.UUID,
	name, description string,
	rule Rule,
	startsAt, endsAt time.Time,
	manuallyDeactivated bool,
	version int,
	createdAt, updatedAt time.Time,
) *Promotion {
	return &Promotion{
		id:                  id,
		name:                name,
		description:         description,
		rule:                rule,
		startsAt:            startsAt,
		endsAt:              endsAt,
		manuallyDeactivated: manuallyDeactivated,
		version:             version,
		createdAt:           createdAt,
		updatedAt:           updatedAt,
	}
}

// Update replaces the editable fields; on error the promotion is unchanged.
func (p *Promotion) Update(name, description string, rule Rule, startsAt, endsAt time.Time, now time.Time) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.Wrap(ErrInvalidPromotion, "name is required")
	}
	if startsAt.IsZero() || endsAt.IsZero() {
		return errs.Wrap(ErrInvalidPromotion, "start and end are required")
	}
	if endsAt.Before(startsAt) {
		return errs.Wrap(ErrInvalidPromotion, "end must not be before start")
	}
	p.name = name
	p.description = strings.TrimSpace(description)
	p.rule = rule
	p.startsAt = startsAt
	p.endsAt = endsAt
	p.updatedAt = now
	return nil
}

// IsActive holds iff the promotion is not deactivated and now is within [start, end].
func (p *Promotion) IsActive(now time.Time) bool {
	if p.manuallyDeactivated {
		return false
	}
	return !now.Before(p.startsAt) && !now.After(p.endsAt)
}

func (p *Promotion) IsExpired(now time.Time) bool {
	return now.After(p.endsAt)
}

func (p *Promotion) IsUpcoming(now time.Time) bool {
	return now.Before(p.startsAt)
}

func (p *Promotion) CalculateDiscount(orderTotal money.Money, now time.Time) money.Money {
	if !p.IsActive(now) {
		return money.Zero(orderTotal.Currency())
	}
	return p.rule.CalculateDiscount(orderTotal)
}

func (p *Promotion) Activate(now time.Time) {
	p.manuallyDeactivated = false
	p.updatedAt = now
}

func (p *Promotion) Deactivate(now time.Time) {
	p.manuallyDeactivated = true
	p.updatedAt = now
}

func (p *Promotion) ID() uuid.UUID               { return p.id }
func (p *Promotion) Name() string                { return p.name }
func (p *Promotion) Description() string         { return p.description }
func (p *Promotion) Rule() Rule                  { return p.rule }
func (p *Promotion) StartsAt() time.Time         { return p.startsAt }
func (p *Promotion) EndsAt() time.Time           { return p.endsAt }
func (p *Promotion) IsManuallyDeactivated() bool { return p.manuallyDeactivated }
func (p *Promotion) Version() int                { return p.version }
func (p *Promotion) CreatedAt() time.Time        { return p.createdAt }
func (p *Promotion) UpdatedAt() time.Time        { return p.updatedAt }
func (p *Promotion) IncrementVersion()           { p.version++ }
