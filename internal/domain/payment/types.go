package payment

import "slices"

type Status string

const (
	StatusPending           Status = "PENDING"
	StatusProcessing        Status = "PROCESSING"
	StatusCompleted         Status = "COMPLETED"
	StatusFailed            Status = "FAILED"
	StatusPartiallyRefunded Status = "PARTIALLY_REFUNDED"
	StatusRefunded          Status = "REFUNDED"
	StatusExpired           Status = "EXPIRED"
)

var transitions = map[Status][]Status{
	StatusPending:           {StatusProcessing, StatusFailed, StatusExpired},
	StatusProcessing:        {StatusCompleted, StatusFailed, StatusExpired},
	StatusCompleted:         {StatusPartiallyRefunded, StatusRefunded},
	StatusPartiallyRefunded: {StatusPartiallyRefunded, StatusRefunded},
}

func CanTransition(from, to Status) bool {
	return slices.Contains(transitions[from], to)
}

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusCompleted, StatusFailed,
		StatusPartiallyRefunded, StatusRefunded, StatusExpired:
		return true
	default:
		return false
	}
}

func (s Status) CanProcess() bool  { return CanTransition(s, StatusProcessing) }
func (s Status) CanComplete() bool { return CanTransition(s, StatusCompleted) }
func (s Status) CanFail() bool     { return CanTransition(s, StatusFailed) }
func (s Status) CanRefund() bool   { return CanTransition(s, StatusRefunded) }
func (s Status) CanExpire() bool   { return CanTransition(s, StatusExpired) }

func (s Status) IsTerminal() bool {
	switch s {
	case StatusFailed, StatusRefunded, StatusExpired:
		return true
	default:
		return false
	}
}

// IsActive marks a payment that blocks a new attempt for the same order.
func (s Status) IsActive() bool {
	return s == StatusProcessing || s == StatusCompleted
}

type Method string

const (
	MethodCreditCard     Method = "CREDIT_CARD"
	MethodLinePay        Method = "LINE_PAY"
	MethodApplePay       Method = "APPLE_PAY"
	MethodGooglePay      Method = "GOOGLE_PAY"
	MethodBankTransfer   Method = "BANK_TRANSFER"
	MethodCashOnDelivery Method = "CASH_ON_DELIVERY"
)

func (m Method) String() string {
	return string(m)
}

func (m Method) IsValid() bool {
	switch m {
	case MethodCreditCard, MethodLinePay, MethodApplePay, MethodGooglePay,
		MethodBankTransfer, MethodCashOnDelivery:
		return true
	default:
		return false
	}
}

func (m Method) RequiresOnlineProcessing() bool {
	return m != MethodCashOnDelivery
}

func (m Method) IsInstant() bool {
	switch m {
	case MethodCreditCard, MethodLinePay, MethodApplePay, MethodGooglePay:
		return true
	default:
		return false
	}
}
