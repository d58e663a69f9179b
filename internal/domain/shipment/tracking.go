package shipment

import (
	"fmt"
	"sync/atomic"
	"time"

	"order-fulfillment/internal/pkg/clock"

	"github.com/google/uuid"
)

// TrackingNumbers generates carrier-prefixed, date-stamped numbers. The
// sequence is process-wide, so uniqueness across processes is best-effort.
type TrackingNumbers struct {
	clock clock.Clock
	seq   atomic.Uint64
}

func NewTrackingNumbers(clk clock.Clock) *TrackingNumbers {
	return &TrackingNumbers{clock: clk}
}

func (g *TrackingNumbers) Next(c Carrier) string {
	n := g.seq.Add(1)
	return fmt.Sprintf("%s%s%04d", c.Prefix(), g.clock.Now().Format("20060102"), n%10000)
}

type TrackingEvent struct {
	id          uuid.UUID
	description string
	location    *string
	timestamp   time.Time
}

func NewTrackingEvent(description string, location *string, at time.Time) TrackingEvent {
	return TrackingEvent{id: uuid.New(), description: description, location: location, timestamp: at}
}

func ReconstructTrackingEvent(id uuid.UUID, description string, location *string, at time.Time) TrackingEvent {
	return TrackingEvent{id: id, description: description, location: location, timestamp: at}
}

func (e TrackingEvent) ID() uuid.UUID        { return e.id }
func (e TrackingEvent) Description() string  { return e.description }
func (e TrackingEvent) Location() *string    { return e.location }
func (e TrackingEvent) Timestamp() time.Time { return e.timestamp }
