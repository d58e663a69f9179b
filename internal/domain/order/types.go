package order

import "slices"

type Status string

const (
	StatusPendingPayment Status = "PENDING_PAYMENT"
	StatusPaid           Status = "PAID"
	StatusShipped        Status = "SHIPPED"
	StatusDelivered      Status = "DELIVERED"
	StatusCancelled      Status = "CANCELLED"
	StatusPaymentExpired Status = "PAYMENT_EXPIRED"
	StatusRefunded       Status = "REFUNDED"
)

// CANCELLED -> REFUNDED is further restricted to orders flagged refund-required.
var transitions = map[Status][]Status{
	StatusPendingPayment: {StatusPaid, StatusCancelled, StatusPaymentExpired},
	StatusPaid:           {StatusShipped, StatusCancelled, StatusRefunded},
	StatusShipped:        {StatusDelivered, StatusRefunded},
	StatusDelivered:      {StatusRefunded},
	StatusCancelled:      {StatusRefunded},
}

// forward happy path; used to decide whether a peer notification is already applied
var progression = map[Status]int{
	StatusPendingPayment: 0,
	StatusPaid:           1,
	StatusShipped:        2,
	StatusDelivered:      3,
}

func CanTransition(from, to Status) bool {
	return slices.Contains(transitions[from], to)
}

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPendingPayment, StatusPaid, StatusShipped, StatusDelivered,
		StatusCancelled, StatusPaymentExpired, StatusRefunded:
		return true
	default:
		return false
	}
}

func (s Status) CanPay() bool     { return CanTransition(s, StatusPaid) }
func (s Status) CanCancel() bool  { return CanTransition(s, StatusCancelled) }
func (s Status) CanShip() bool    { return CanTransition(s, StatusShipped) }
func (s Status) CanDeliver() bool { return CanTransition(s, StatusDelivered) }
func (s Status) CanExpire() bool  { return CanTransition(s, StatusPaymentExpired) }

// CanRefund covers the status-only part of the refund rule.
func (s Status) CanRefund() bool {
	return s != StatusCancelled && CanTransition(s, StatusRefunded)
}

func (s Status) IsTerminal() bool {
	switch s {
	case StatusDelivered, StatusCancelled, StatusPaymentExpired, StatusRefunded:
		return true
	default:
		return false
	}
}

// HasReached reports whether s is target or later on the
// PENDING_PAYMENT -> PAID -> SHIPPED -> DELIVERED path.
func (s Status) HasReached(target Status) bool {
	cur, ok := progression[s]
	if !ok {
		return false
	}
	want, ok := progression[target]
	if !ok {
		return false
	}
	return cur >= want
}
