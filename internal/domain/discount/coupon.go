package discount

import (
	"fmt"
	"maps"
	"strings"
	"time"

	"order-fulfillment/internal/domain/money"
	"order-fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
)

// User-facing rejection texts. The order of the checks in Check decides which
// one a caller sees first.
const (
	MsgCouponNotFound      = "Coupon not found"
	MsgCouponInactive      = "Coupon is expired or inactive"
	MsgCouponExhausted     = "Coupon usage limit reached"
	MsgCouponCustomerLimit = "You have already used this coupon the maximum number of times"
	msgBelowMinimumFormat  = "Order total must be at least $%s to use this coupon"
)

var (
	ErrCouponInactive      = errs.BusinessRule(MsgCouponInactive)
	ErrCouponExhausted     = errs.BusinessRule(MsgCouponExhausted)
	ErrCouponCustomerLimit = errs.BusinessRule(MsgCouponCustomerLimit)
	ErrBelowMinimumOrder   = errs.BusinessRule("order total below coupon minimum")
	ErrNoUseToRelease      = errs.StateConflict("customer has no recorded use of this coupon")
)

// Rejection explains why a coupon cannot be used. Message is safe to show to
// customers; Reason is one of the sentinels above.
type Rejection struct {
	Reason  error
	Message string
}

func (r *Rejection) Error() string { return r.Message }
func (r *Rejection) Unwrap() error { return r.Reason }

func reject(reason error, message string) error {
	return &Rejection{Reason: reason, Message: message}
}

type Limits struct {
	MaxUses            *int
	MaxUsesPerCustomer *int
}

func Unlimited() Limits {
	return Limits{}
}

type Coupon struct {
	id            uuid.UUID
	code          Code
	description   string
	rule          Rule
	expiresAt     time.Time
	limits        Limits
	usageCount    int
	active        bool
	customerUsage map[uuid.UUID]int
	version       int
	createdAt     time.Time
	updatedAt     time.Time
}

func NewCoupon(code Code, description string, rule Rule, expiresAt time.Time, limits Limits, now time.Time) (*Coupon, error) {
	if code == "" {
		return nil, errs.Wrap(ErrInvalidCouponCode, "code is required")
	}
	if expiresAt.IsZero() {
		return nil, errs.Wrap(ErrInvalidCouponParams, "expiry is required")
	}
	if limits.MaxUses != nil && *limits.MaxUses < 1 {
		return nil, errs.Wrapf(ErrInvalidCouponParams, "max uses %d", *limits.MaxUses)
	}
	if limits.MaxUsesPerCustomer != nil && *limits.MaxUsesPerCustomer < 1 {
		return nil, errs.Wrapf(ErrInvalidCouponParams, "max uses per customer %d", *limits.MaxUsesPerCustomer)
	}
	return &Coupon{
		id:            uuid.New(),
		code:          code,
		description:   strings.TrimSpace(description),
		rule:          rule,
		expiresAt:     expiresAt,
		limits:        limits,
		active:        true,
		customerUsage: map[uuid.UUID]int{},
		createdAt:     now,
		updatedAt:     now,
	}, nil
}

func ReconstructCoupon(
	id uuid.UUID,
	code Code,
	description string,
	rule Rule,
	expiresAt time.Time,
	limits Limits,
	usageCount int,
	active bool,
	customerUsage map[uuid.UUID]int,
	version int,
	createdAt, updatedAt time.Time,
) *Coupon {
	if customerUsage == nil {
		customerUsage = map[uuid.UUID]int{}
	}
	return &Coupon{
		id:            id,
		code:          code,
		description:   description,
		rule:          rule,
		expiresAt:     expiresAt,
		limits:        limits,
		usageCount:    usageCount,
		active:        active,
		customerUsage: customerUsage,
		version:       version,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}
}

func (c *Coupon) IsExpired(now time.Time) bool {
	return now.After(c.expiresAt)
}

func (c *Coupon) IsValid(now time.Time) bool {
	return c.active && !c.IsExpired(now)
}

func (c *Coupon) IsExhausted() bool {
	return c.limits.MaxUses != nil && c.usageCount >= *c.limits.MaxUses
}

func (c *Coupon) TimesUsedBy(customerID uuid.UUID) int {
	return c.customerUsage[customerID]
}

func (c *Coupon) CanBeUsedBy(customerID uuid.UUID) bool {
	if c.limits.MaxUsesPerCustomer == nil {
		return true
	}
	return c.TimesUsedBy(customerID) < *c.limits.MaxUsesPerCustomer
}

// RemainingUses is nil for coupons without a global limit.
func (c *Coupon) RemainingUses() *int {
	if c.limits.MaxUses == nil {
		return nil
	}
	remaining := max(*c.limits.MaxUses-c.usageCount, 0)
	return &remaining
}

// Check runs the eligibility checks in a fixed order: active window, global
// usage, per-customer usage, then minimum order amount.
func (c *Coupon) Check(customerID uuid.UUID, orderTotal money.Money, now time.Time) error {
	if err := c.checkUsable(customerID, now); err != nil {
		return err
	}
	if !c.rule.MeetsMinimum(orderTotal) {
		return reject(ErrBelowMinimumOrder, fmt.Sprintf(msgBelowMinimumFormat, c.rule.MinimumOrder().StringFixed()))
	}
	return nil
}

func (c *Coupon) checkUsable(customerID uuid.UUID, now time.Time) error {
	if !c.IsValid(now) {
		return reject(ErrCouponInactive, MsgCouponInactive)
	}
	if c.IsExhausted() {
		return reject(ErrCouponExhausted, MsgCouponExhausted)
	}
	if !c.CanBeUsedBy(customerID) {
		return reject(ErrCouponCustomerLimit, MsgCouponCustomerLimit)
	}
	return nil
}

func (c *Coupon) CalculateDiscount(orderTotal money.Money) money.Money {
	return c.rule.CalculateDiscount(orderTotal)
}

// Use records one redemption for the customer. It re-checks usability so a
// stale validation result cannot push the coupon past its limits.
func (c *Coupon) Use(customerID uuid.UUID, now time.Time) error {
	if err := c.checkUsable(customerID, now); err != nil {
		return err
	}
	c.usageCount++
	c.customerUsage[customerID]++
	c.updatedAt = now
	return nil
}

// ReleaseUse takes back one use recorded by Use.
func (c *Coupon) ReleaseUse(customerID uuid.UUID, now time.Time) error {
	if c.customerUsage[customerID] == 0 || c.usageCount == 0 {
		return errs.Wrapf(ErrNoUseToRelease, "coupon %s", c.code)
	}
	c.usageCount--
	c.customerUsage[customerID]--
	if c.customerUsage[customerID] == 0 {
		delete(c.customerUsage, customerID)
	}
	c.updatedAt = now
	return nil
}

func (c *Coupon) Deactivate(now time.Time) {
	c.active = false
	c.updatedAt = now
}

func (c *Coupon) Reactivate(now time.Time) {
	c.active = true
	c.updatedAt = now
}

func (c *Coupon) ID() uuid.UUID        { return c.id }
func (c *Coupon) Code() Code           { return c.code }
func (c *Coupon) Description() string  { return c.description }
func (c *Coupon) Rule() Rule           { return c.rule }
func (c *Coupon) ExpiresAt() time.Time { return c.expiresAt }
func (c *Coupon) Limits() Limits       { return c.limits }
func (c *Coupon) UsageCount() int      { return c.usageCount }
func (c *Coupon) IsActive() bool       { return c.active }
func (c *Coupon) Version() int         { return c.version }
func (c *Coupon) CreatedAt() time.Time { return c.createdAt }
func (c *Coupon) UpdatedAt() time.Time { return c.updatedAt }
func (c *Coupon) IncrementVersion()    { c.version++ }

func (c *Coupon) CustomerUsage() map[uuid.UUID]int {
	return maps.Clone(c.customerUsage)
}
