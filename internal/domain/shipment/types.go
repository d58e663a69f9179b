package shipment

import "slices"

type Status string

const (
	StatusPending        Status = "PENDING"
	StatusPickedUp       Status = "PICKED_UP"
	StatusInTransit      Status = "IN_TRANSIT"
	StatusOutForDelivery Status = "OUT_FOR_DELIVERY"
	StatusDelivered      Status = "DELIVERED"
	StatusFailed         Status = "FAILED"
	StatusReturned       Status = "RETURNED"
)

// IN_TRANSIT -> DELIVERED covers carriers that report delivery without an
// out-for-delivery scan.
var transitions = map[Status][]Status{
	StatusPending:        {StatusPickedUp},
	StatusPickedUp:       {StatusInTransit, StatusFailed},
	StatusInTransit:      {StatusOutForDelivery, StatusDelivered, StatusFailed},
	StatusOutForDelivery: {StatusDelivered, StatusFailed},
	StatusFailed:         {StatusReturned},
}

func CanTransition(from, to Status) bool {
	return slices.Contains(transitions[from], to)
}

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusPickedUp, StatusInTransit, StatusOutForDelivery,
		StatusDelivered, StatusFailed, StatusReturned:
		return true
	default:
		return false
	}
}

func (s Status) CanPickUp() bool         { return CanTransition(s, StatusPickedUp) }
func (s Status) CanMoveInTransit() bool  { return CanTransition(s, StatusInTransit) }
func (s Status) CanOutForDelivery() bool { return CanTransition(s, StatusOutForDelivery) }
func (s Status) CanDeliver() bool        { return CanTransition(s, StatusDelivered) }
func (s Status) CanFail() bool           { return CanTransition(s, StatusFailed) }
func (s Status) CanReturn() bool         { return CanTransition(s, StatusReturned) }

func (s Status) IsTerminal() bool {
	return s == StatusDelivered || s == StatusReturned
}
