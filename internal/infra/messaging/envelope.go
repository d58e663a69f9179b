package messaging

import (
	"context"
	"encoding/json"

	"order-fulfillment/internal/pkg/errs"
	"order-fulfillment/internal/usecase/commands"

	"github.com/google/uuid"
)

var ErrUnknownEvent = errs.Validation("unknown notification event")

// Envelope is the JSON message published on the notifications topic.
type Envelope struct {
	Event          string     `json:"event"`
	OrderID        uuid.UUID  `json:"orderId"`
	PaymentID      *uuid.UUID `json:"paymentId,omitempty"`
	ShipmentID     *uuid.UUID `json:"shipmentId,omitempty"`
	TrackingNumber string     `json:"trackingNumber,omitempty"`
	Reason         string     `json:"reason,omitempty"`
}

func (e Envelope) Encode() ([]byte, error) {
	raw, err := json.Marshal(e)
	if err != nil {
		return nil, errs.Wrapf(err, "encode %s envelope", e.Event)
	}
	return raw, nil
}

func DecodeEnvelope(raw []byte) (Envelope, error) {
	var e Envelope
	if err := json.Unmarshal(raw, &e); err != nil {
		return Envelope{}, errs.Mark(errs.Wrap(err, "decode envelope"), errs.ErrValidation)
	}
	if e.OrderID == uuid.Nil {
		return Envelope{}, errs.Validation("envelope without order id")
	}
	return e, nil
}

func derefID(id *uuid.UUID) uuid.UUID {
	if id == nil {
		return uuid.Nil
	}
	return *id
}

// Dispatch applies the envelope to the order notification handlers.
func Dispatch(ctx context.Context, n commands.OrderNotifications, e Envelope) error {
	switch e.Event {
	case commands.EventPaymentCompleted:
		return n.ApplyPaymentCompleted(ctx, e.OrderID, derefID(e.PaymentID))
	case commands.EventPaymentFailed:
		return n.ApplyPaymentFailed(ctx, e.OrderID, derefID(e.PaymentID), e.Reason)
	case commands.EventPaymentRefunded:
		return n.ApplyPaymentRefunded(ctx, e.OrderID, derefID(e.PaymentID))
	case commands.EventShipmentCreated:
		return n.ApplyShipmentCreated(ctx, e.OrderID, derefID(e.ShipmentID), e.TrackingNumber)
	case commands.EventShipmentInTransit:
		return n.ApplyShipmentInTransit(ctx, e.OrderID, e.TrackingNumber)
	case commands.EventShipmentDelivered:
		return n.ApplyShipmentDelivered(ctx, e.OrderID)
	case commands.EventShipmentFailed:
		return n.ApplyShipmentFailed(ctx, e.OrderID, e.Reason)
	default:
		return errs.Wrapf(ErrUnknownEvent, "event %q", e.Event)
	}
}
