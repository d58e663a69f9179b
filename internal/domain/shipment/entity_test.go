//go:build unit

package shipment_test

import (
	"testing"
	"time"

	"order-fulfillment/internal/domain/shipment"
	"order-fulfillment/internal/pkg/clock"
	"order-fulfillment/internal/pkg/errs"
	"order-fulfillment/tests/common/builder"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShipment(t *testing.T) {
	start := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("delivered shipment keeps three ordered events", func(t *testing.T) {
		s, err := builder.NewShipmentBuilder().BuildDomain()
		require.NoError(t, err)
		assert.Empty(t, s.Events())

		require.NoError(t, s.MarkAsPickedUp(start.Add(time.Hour)))
		require.NoError(t, s.MarkAsInTransit(start.Add(2*time.Hour)))
		require.NoError(t, s.MarkAsDelivered(start.Add(3*time.Hour)))

		events := s.Events()
		require.Len(t, events, 3)
		for i := 1; i < len(events); i++ {
			assert.True(t, events[i].Timestamp().After(events[i-1].Timestamp()))
		}
		assert.Equal(t, "Package picked up by Black Cat", events[0].Description())
		assert.Nil(t, events[0].Location())
		assert.Equal(t, "Package in transit", events[1].Description())
		assert.Equal(t, "Package delivered", events[2].Description())
		assert.Equal(t, "Taipei", *events[2].Location())
		assert.NotNil(t, s.ShippedAt())
		assert.NotNil(t, s.DeliveredAt())

		err = s.MarkAsReturned(start.Add(5 * time.Hour))
		assert.ErrorIs(t, err, shipment.ErrInvalidTransition)
		assert.True(t, errs.Is(err, errs.ErrStateConflict))
	})

	t.Run("out for delivery before delivery", func(t *testing.T) {
		s, err := builder.NewShipmentBuilder().BuildDomain()
		require.NoError(t, err)
		assert.ErrorIs(t, s.MarkAsDelivered(start), shipment.ErrInvalidTransition)
		assert.ErrorIs(t, s.MarkAsOutForDelivery(start), shipment.ErrInvalidTransition)

		require.NoError(t, s.MarkAsPickedUp(start))
		require.NoError(t, s.MarkAsInTransit(start))
		require.NoError(t, s.MarkAsOutForDelivery(start))
		require.NoError(t, s.MarkAsDelivered(start))
		assert.Len(t, s.Events(), 4)
		assert.Equal(t, "Out for delivery", s.Events()[2].Description())
	})

	t.Run("failure and return", func(t *testing.T) {
		s, err := builder.NewShipmentBuilder().BuildDomain()
		require.NoError(t, err)
		assert.ErrorIs(t, s.MarkAsFailed("lost", start), shipment.ErrInvalidTransition)

		require.NoError(t, s.MarkAsPickedUp(start))
		assert.ErrorIs(t, s.MarkAsFailed("", start), shipment.ErrFailureReasonRequired)
		require.NoError(t, s.MarkAsFailed("Recipient not at home", start))
		assert.Equal(t, "Recipient not at home", s.FailureReason())
		require.NoError(t, s.MarkAsReturned(start))

		descriptions := make([]string, 0, 3)
		for _, e := range s.Events() {
			descriptions = append(descriptions, e.Description())
		}
		assert.Equal(t, []string{
			"Package picked up by Black Cat",
			"Delivery failed: Recipient not at home",
			"Package returned to sender",
		}, descriptions)
		assert.True(t, s.Status().IsTerminal())
	})

	t.Run("estimated delivery date", func(t *testing.T) {
		s, err := builder.NewShipmentBuilder().BuildDomain()
		require.NoError(t, err)
		eta := start.AddDate(0, 0, 2)
		require.NoError(t, s.SetEstimatedDeliveryDate(eta, start))
		assert.Equal(t, eta, *s.EstimatedDeliveryDate())

		require.NoError(t, s.MarkAsPickedUp(start))
		require.NoError(t, s.MarkAsFailed("lost", start))
		require.NoError(t, s.MarkAsReturned(start))
		assert.ErrorIs(t, s.SetEstimatedDeliveryDate(eta, start), shipment.ErrEstimateOnTerminalState)
	})

	t.Run("creation validation", func(t *testing.T) {
		_, err := builder.NewShipmentBuilder().With(func(b *builder.ShipmentBuilder) { b.Carrier = "DHL" }).BuildDomain()
		assert.ErrorIs(t, err, shipment.ErrInvalidCarrier)

		_, err = builder.NewShipmentBuilder().With(func(b *builder.ShipmentBuilder) { b.TrackingNumber = "" }).BuildDomain()
		assert.ErrorIs(t, err, shipment.ErrTrackingNumberRequired)
	})

	t.Run("snapshot round trip", func(t *testing.T) {
		s, err := builder.NewShipmentBuilder().BuildDomain()
		require.NoError(t, err)
		require.NoError(t, s.MarkAsPickedUp(start))
		restored := shipment.Reconstruct(s.Snapshot())
		assert.Equal(t, s.Snapshot(), restored.Snapshot())
	})
}

func TestCarrier(t *testing.T) {
	c, err := shipment.ParseCarrier("sf_express")
	require.NoError(t, err)
	assert.Equal(t, shipment.CarrierSFExpress, c)
	assert.Equal(t, "SF", c.Prefix())
	assert.Contains(t, c.TrackingURL("SF202503010001"), "SF202503010001")
	assert.NotContains(t, c.TrackingURL("X"), "{trackingNumber}")

	_, err = shipment.ParseCarrier("pigeon")
	assert.ErrorIs(t, err, shipment.ErrInvalidCarrier)
}

func TestTrackingNumbers(t *testing.T) {
	clk := clock.NewMockClock(time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC))
	gen := shipment.NewTrackingNumbers(clk)

	assert.Equal(t, "BC202503010001", gen.Next(shipment.CarrierBlackCat))
	assert.Equal(t, "SE202503010002", gen.Next(shipment.CarrierSevenEleven))

	clk.Add(24 * time.Hour)
	assert.Equal(t, "PO202503020003", gen.Next(shipment.CarrierPostOffice))
}
