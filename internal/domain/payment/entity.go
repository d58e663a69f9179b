package payment

import (
	"strings"
	"time"

	"order-fulfillment/internal/domain/money"
	"order-fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrInvalidAmount         = errs.Validation("payment amount must be greater than zero")
	ErrInvalidMethod         = errs.Validation("unsupported payment method")
	ErrTransactionIDRequired = errs.Validation("transaction id is required")
	ErrFailureReasonRequired = errs.Validation("failure reason is required")
	ErrInvalidRefundAmount   = errs.Validation("refund amount must be greater than zero")
	ErrRefundExceedsAmount   = errs.BusinessRule("refund amount exceeds payment amount")
	ErrInvalidTransition     = errs.StateConflict("invalid payment status transition")
)

type Payment struct {
	id             uuid.UUID
	orderID        uuid.UUID
	customerID     uuid.UUID
	amount         money.Money
	method         Method
	status         Status
	transactionID  string
	failureReason  string
	refundedAmount money.Money
	refundReason   string
	version        int
	createdAt      time.Time
	updatedAt      time.Time
	completedAt    *time.Time
	failedAt       *time.Time
	refundedAt     *time.Time
	expiredAt      *time.Time
}

func New(orderID, customerID uuid.UUID, amount money.Money, method Method, now time.Time) (*Payment, error) {
	if !amount.IsPositive() {
		return nil, errs.Wrapf(ErrInvalidAmount, "amount %s", amount)
	}
	if !method.IsValid() {
		return nil, errs.Wrapf(ErrInvalidMethod, "method %q", method)
	}
	return &Payment{
		id:             uuid.New(),
		orderID:        orderID,
		customerID:     customerID,
		amount:         amount,
		method:         method,
		status:         StatusPending,
		refundedAmount: money.Zero(amount.Currency()),
		createdAt:      now,
		updatedAt:      now,
	}, nil
}

type Snapshot struct {
	ID             uuid.UUID
	OrderID        uuid.UUID
	CustomerID     uuid.UUID
	Amount         money.Money
	Method         Method
	Status         Status
	TransactionID  string
	FailureReason  string
	RefundedAmount money.Money
	RefundReason   string
	Version        int
	CreatedAt      time.Time
	UpdatedAt      time.Time
	CompletedAt    *time.Time
	FailedAt       *time.Time
	RefundedAt     *time.Time
	ExpiredAt      *time.Time
}

func Reconstruct(s Snapshot) *Payment {
	return &Payment{
		id:             s.ID,
		orderID:        s.OrderID,
		customerID:     s.CustomerID,
		amount:         s.Amount,
		method:         s.Method,
		status:         s.Status,
		transactionID:  s.TransactionID,
		failureReason:  s.FailureReason,
		refundedAmount: s.RefundedAmount,
		refundReason:   s.RefundReason,
		version:        s.Version,
		createdAt:      s.CreatedAt,
		updatedAt:      s.UpdatedAt,
		completedAt:    s.CompletedAt,
		failedAt:       s.FailedAt,
		refundedAt:     s.RefundedAt,
		expiredAt:      s.ExpiredAt,
	}
}

func (p *Payment) Snapshot() Snapshot {
	return Snapshot{
		ID:             p.id,
		OrderID:        p.orderID,
		CustomerID:     p.customerID,
		Amount:         p.amount,
		Method:         p.method,
		Status:         p.status,
		TransactionID:  p.transactionID,
		FailureReason:  p.failureReason,
		RefundedAmount: p.refundedAmount,
		RefundReason:   p.refundReason,
		Version:        p.version,
		CreatedAt:      p.createdAt,
		UpdatedAt:      p.updatedAt,
		CompletedAt:    p.completedAt,
		FailedAt:       p.failedAt,
		RefundedAt:     p.refundedAt,
		ExpiredAt:      p.expiredAt,
	}
}

func (p *Payment) transitionError(action string) error {
	return errs.Wrapf(ErrInvalidTransition, "cannot %s payment %s in status %s", action, p.id, p.status)
}

func (p *Payment) StartProcessing(now time.Time) error {
	if !p.status.CanProcess() {
		return p.transitionError("process")
	}
	p.status = StatusProcessing
	p.updatedAt = now
	return nil
}

func (p *Payment) Complete(transactionID string, now time.Time) error {
	if !p.status.CanComplete() {
		return p.transitionError("complete")
	}
	transactionID = strings.TrimSpace(transactionID)
	if transactionID == "" {
		return ErrTransactionIDRequired
	}
	p.status = StatusCompleted
	p.transactionID = transactionID
	p.completedAt = &now
	p.updatedAt = now
	return nil
}

func (p *Payment) Fail(reason string, now time.Time) error {
	if !p.status.CanFail() {
		return p.transitionError("fail")
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return ErrFailureReasonRequired
	}
	p.status = StatusFailed
	p.failureReason = reason
	p.failedAt = &now
	p.updatedAt = now
	return nil
}

// RefundableAmount is what is left to refund.
func (p *Payment) RefundableAmount() money.Money {
	left, err := p.amount.Subtract(p.refundedAmount)
	if err != nil {
		return money.Zero(p.amount.Currency())
	}
	return left
}

// CheckRefund validates a refund without applying it.
func (p *Payment) CheckRefund(amount money.Money) error {
	if !p.status.CanRefund() {
		return p.transitionError("refund")
	}
	if !amount.IsPositive() {
		return errs.Wrapf(ErrInvalidRefundAmount, "amount %s", amount)
	}
	cumulative, err := p.refundedAmount.Add(amount)
	if err != nil {
		return err
	}
	if cumulative.GreaterThan(p.amount) {
		return errs.Wrapf(ErrRefundExceedsAmount, "refunding %s on top of %s would exceed %s", amount, p.refundedAmount, p.amount)
	}
	return nil
}

// Refund becomes REFUNDED once the cumulative amount equals the original,
// PARTIALLY_REFUNDED otherwise.
func (p *Payment) Refund(amount money.Money, reason string, now time.Time) error {
	if err := p.CheckRefund(amount); err != nil {
		return err
	}
	cumulative, _ := p.refundedAmount.Add(amount)

	p.refundedAmount = cumulative
	p.refundReason = strings.TrimSpace(reason)
	p.refundedAt = &now
	p.updatedAt = now
	if cumulative.Equal(p.amount) {
		p.status = StatusRefunded
	} else {
		p.status = StatusPartiallyRefunded
	}
	return nil
}

func (p *Payment) Expire(now time.Time) error {
	if !p.status.CanExpire() {
		return p.transitionError("expire")
	}
	p.status = StatusExpired
	p.expiredAt = &now
	p.updatedAt = now
	return nil
}

func (p *Payment) ID() uuid.UUID               { return p.id }
func (p *Payment) OrderID() uuid.UUID          { return p.orderID }
func (p *Payment) CustomerID() uuid.UUID       { return p.customerID }
func (p *Payment) Amount() money.Money         { return p.amount }
func (p *Payment) Method() Method              { return p.method }
func (p *Payment) Status() Status              { return p.status }
func (p *Payment) TransactionID() string       { return p.transactionID }
func (p *Payment) FailureReason() string       { return p.failureReason }
func (p *Payment) RefundedAmount() money.Money { return p.refundedAmount }
func (p *Payment) RefundReason() string        { return p.refundReason }
func (p *Payment) Version() int                { return p.version }
func (p *Payment) CreatedAt() time.Time        { return p.createdAt }
func (p *Payment) UpdatedAt() time.Time        { return p.updatedAt }
func (p *Payment) CompletedAt() *time.Time     { return p.completedAt }
func (p *Payment) FailedAt() *time.Time        { return p.failedAt }
func (p *Payment) RefundedAt() *time.Time      { return p.refundedAt }
func (p *Payment) ExpiredAt() *time.Time       { return p.expiredAt }
func (p *Payment) IncrementVersion()           { p.version++ }
