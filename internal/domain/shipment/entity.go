package shipment

import (
	"slices"
	"strings"
	"time"

	"order-fulfillment/internal/domain/address"
	"order-fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrTrackingNumberRequired  = errs.Validation("shipment tracking number is required")
	ErrAddressRequired         = errs.Validation("delivery address is required")
	ErrFailureReasonRequired   = errs.Validation("delivery failure reason is required")
	ErrInvalidTransition       = errs.StateConflict("invalid shipment status transition")
	ErrEstimateOnTerminalState = errs.StateConflict("cannot change the estimated delivery date of a finished shipment")
)

type Shipment struct {
	id                    uuid.UUID
	orderID               uuid.UUID
	customerID            uuid.UUID
	carrier               Carrier
	trackingNumber        string
	address               address.Address
	status                Status
	events                []TrackingEvent
	failureReason         string
	estimatedDeliveryDate *time.Time
	shippedAt             *time.Time
	deliveredAt           *time.Time
	version               int
	createdAt             time.Time
	updatedAt             time.Time
}

// New creates a PENDING shipment with an empty event log.
func New(orderID, customerID uuid.UUID, carrier Carrier, trackingNumber string, addr address.Address, now time.Time) (*Shipment, error) {
	if !carrier.IsValid() {
		return nil, errs.Wrapf(ErrInvalidCarrier, "carrier %q", carrier)
	}
	trackingNumber = strings.TrimSpace(trackingNumber)
	if trackingNumber == "" {
		return nil, ErrTrackingNumberRequired
	}
	if addr.IsZero() {
		return nil, ErrAddressRequired
	}
	return &Shipment{
		id:             uuid.New(),
		orderID:        orderID,
		customerID:     customerID,
		carrier:        carrier,
		trackingNumber: trackingNumber,
		address:        addr,
		status:         StatusPending,
		createdAt:      now,
		updatedAt:      now,
	}, nil
}

type Snapshot struct {
	ID                    uuid.UUID
	OrderID               uuid.UUID
	CustomerID            uuid.UUID
	Carrier               Carrier
	TrackingNumber        string
	Address               address.Address
	Status                Status
	Events                []TrackingEvent
	FailureReason         string
	EstimatedDeliveryDate *time.Time
	ShippedAt             *time.Time
	DeliveredAt           *time.Time
	Version               int
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

func Reconstruct(s Snapshot) *Shipment {
	return &Shipment{
		id:                    s.ID,
		orderID:               s.OrderID,
		customerID:            s.CustomerID,
		carrier:               s.Carrier,
		trackingNumber:        s.TrackingNumber,
		address:               s.Address,
		status:                s.Status,
		events:                slices.Clone(s.Events),
		failureReason:         s.FailureReason,
		estimatedDeliveryDate: s.EstimatedDeliveryDate,
		shippedAt:             s.ShippedAt,
		deliveredAt:           s.DeliveredAt,
		version:               s.Version,
		createdAt:             s.CreatedAt,
		updatedAt:             s.UpdatedAt,
	}
}

func (s *Shipment) Snapshot() Snapshot {
	return Snapshot{
		ID:                    s.id,
		OrderID:               s.orderID,
		CustomerID:            s.customerID,
		Carrier:               s.carrier,
		TrackingNumber:        s.trackingNumber,
		Address:               s.address,
		Status:                s.status,
		Events:                slices.Clone(s.events),
		FailureReason:         s.failureReason,
		EstimatedDeliveryDate: s.estimatedDeliveryDate,
		ShippedAt:             s.shippedAt,
		DeliveredAt:           s.deliveredAt,
		Version:               s.version,
		CreatedAt:             s.createdAt,
		UpdatedAt:             s.updatedAt,
	}
}

func (s *Shipment) transitionError(action string) error {
	return errs.Wrapf(ErrInvalidTransition, "cannot %s shipment %s in status %s", action, s.id, s.status)
}

func (s *Shipment) city() *string {
	c := s.address.City()
	if c == "" {
		return nil
	}
	return &c
}

func (s *Shipment) moveTo(next Status, description string, location *string, now time.Time) {
	s.status = next
	s.events = append(s.events, NewTrackingEvent(description, location, now))
	s.updatedAt = now
}

func (s *Shipment) MarkAsPickedUp(now time.Time) error {
	if !s.status.CanPickUp() {
		return s.transitionError("pick up")
	}
	s.moveTo(StatusPickedUp, "Package picked up by "+s.carrier.DisplayName(), nil, now)
	return nil
}

func (s *Shipment) MarkAsInTransit(now time.Time) error {
	if !s.status.CanMoveInTransit() {
		return s.transitionError("move in transit")
	}
	s.moveTo(StatusInTransit, "Package in transit", nil, now)
	s.shippedAt = &now
	return nil
}

func (s *Shipment) MarkAsOutForDelivery(now time.Time) error {
	if !s.status.CanOutForDelivery() {
		return s.transitionError("send out for delivery")
	}
	s.moveTo(StatusOutForDelivery, "Out for delivery", s.city(), now)
	return nil
}

func (s *Shipment) MarkAsDelivered(now time.Time) error {
	if !s.status.CanDeliver() {
		return s.transitionError("deliver")
	}
	s.moveTo(StatusDelivered, "Package delivered", s.city(), now)
	s.deliveredAt = &now
	return nil
}

func (s *Shipment) MarkAsFailed(reason string, now time.Time) error {
	if !s.status.CanFail() {
		return s.transitionError("fail")
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return ErrFailureReasonRequired
	}
	s.moveTo(StatusFailed, "Delivery failed: "+reason, s.city(), now)
	s.failureReason = reason
	return nil
}

func (s *Shipment) MarkAsReturned(now time.Time) error {
	if !s.status.CanReturn() {
		return s.transitionError("return")
	}
	s.moveTo(StatusReturned, "Package returned to sender", nil, now)
	return nil
}

func (s *Shipment) SetEstimatedDeliveryDate(date time.Time, now time.Time) error {
	if s.status.IsTerminal() {
		return errs.Wrapf(ErrEstimateOnTerminalState, "shipment %s is %s", s.id, s.status)
	}
	s.estimatedDeliveryDate = &date
	s.updatedAt = now
	return nil
}

func (s *Shipment) TrackingURL() string {
	return s.carrier.TrackingURL(s.trackingNumber)
}

func (s *Shipment) IsOwnedBy(customerID uuid.UUID) bool {
	return s.customerID == customerID
}

func (s *Shipment) ID() uuid.UUID                     { return s.id }
func (s *Shipment) OrderID() uuid.UUID                { return s.orderID }
func (s *Shipment) CustomerID() uuid.UUID             { return s.customerID }
func (s *Shipment) Carrier() Carrier                  { return s.carrier }
func (s *Shipment) TrackingNumber() string            { return s.trackingNumber }
func (s *Shipment) Address() address.Address          { return s.address }
func (s *Shipment) Status() Status                    { return s.status }
func (s *Shipment) Events() []TrackingEvent           { return slices.Clone(s.events) }
func (s *Shipment) FailureReason() string             { return s.failureReason }
func (s *Shipment) EstimatedDeliveryDate() *time.Time { return s.estimatedDeliveryDate }
func (s *Shipment) ShippedAt() *time.Time             { return s.shippedAt }
func (s *Shipment) DeliveredAt() *time.Time           { return s.deliveredAt }
func (s *Shipment) Version() int                      { return s.version }
func (s *Shipment) CreatedAt() time.Time              { return s.createdAt }
func (s *Shipment) UpdatedAt() time.Time              { return s.updatedAt }
func (s *Shipment) IncrementVersion()                 { s.version++ }
