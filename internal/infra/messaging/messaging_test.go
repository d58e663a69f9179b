//go:build unit

package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"order-fulfillment/internal/infra/memory"
	"order-fulfillment/internal/pkg/config"
	"order-fulfillment/internal/pkg/errs"
	"order-fulfillment/internal/usecase/commands"
	"order-fulfillment/internal/usecase/shared"
	commandsmock "order-fulfillment/tests/mock/commands"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestDecodeEnvelope(t *testing.T) {
	orderID := uuid.New()
	paymentID := uuid.New()

	t.Run("round trip", func(t *testing.T) {
		raw, err := Envelope{Event: commands.EventPaymentCompleted, OrderID: orderID, PaymentID: &paymentID}.Encode()
		require.NoError(t, err)

		var fields map[string]any
		require.NoError(t, json.Unmarshal(raw, &fields))
		assert.Equal(t, orderID.String(), fields["orderId"])
		assert.NotContains(t, fields, "shipmentId")
		assert.NotContains(t, fields, "reason")

		e, err := DecodeEnvelope(raw)
		require.NoError(t, err)
		assert.Equal(t, commands.EventPaymentCompleted, e.Event)
		require.NotNil(t, e.PaymentID)
		assert.Equal(t, paymentID, *e.PaymentID)
	})

	t.Run("malformed json", func(t *testing.T) {
		_, err := DecodeEnvelope([]byte("{not json"))
		assert.True(t, errs.Is(err, errs.ErrValidation))
	})

	t.Run("missing order id", func(t *testing.T) {
		_, err := DecodeEnvelope([]byte(`{"event":"shipment_delivered"}`))
		assert.True(t, errs.Is(err, errs.ErrValidation))
	})
}

func TestDispatch(t *testing.T) {
	ctx := context.Background()
	orderID := uuid.New()
	paymentID := uuid.New()
	shipmentID := uuid.New()

	tests := []struct {
		name   string
		env    Envelope
		expect func(m *commandsmock.MockOrderNotifications)
	}{
		{
			name: "payment completed",
			env:  Envelope{Event: commands.EventPaymentCompleted, OrderID: orderID, PaymentID: &paymentID},
			expect: func(m *commandsmock.MockOrderNotifications) {
				m.EXPECT().ApplyPaymentCompleted(ctx, orderID, paymentID).Return(nil)
			},
		},
		{
			name: "payment failed carries the reason",
			env:  Envelope{Event: commands.EventPaymentFailed, OrderID: orderID, PaymentID: &paymentID, Reason: "declined"},
			expect: func(m *commandsmock.MockOrderNotifications) {
				m.EXPECT().ApplyPaymentFailed(ctx, orderID, paymentID, "declined").Return(nil)
			},
		},
		{
			name: "payment refunded",
			env:  Envelope{Event: commands.EventPaymentRefunded, OrderID: orderID, PaymentID: &paymentID},
			expect: func(m *commandsmock.MockOrderNotifications) {
				m.EXPECT().ApplyPaymentRefunded(ctx, orderID, paymentID).Return(nil)
			},
		},
		{
			name: "shipment created",
			env:  Envelope{Event: commands.EventShipmentCreated, OrderID: orderID, ShipmentID: &shipmentID, TrackingNumber: "BC202503010001"},
			expect: func(m *commandsmock.MockOrderNotifications) {
				m.EXPECT().ApplyShipmentCreated(ctx, orderID, shipmentID, "BC202503010001").Return(nil)
			},
		},
		{
			name: "shipment in transit",
			env:  Envelope{Event: commands.EventShipmentInTransit, OrderID: orderID, TrackingNumber: "BC202503010001"},
			expect: func(m *commandsmock.MockOrderNotifications) {
				m.EXPECT().ApplyShipmentInTransit(ctx, orderID, "BC202503010001").Return(nil)
			},
		},
		{
			name: "shipment delivered",
			env:  Envelope{Event: commands.EventShipmentDelivered, OrderID: orderID},
			expect: func(m *commandsmock.MockOrderNotifications) {
				m.EXPECT().ApplyShipmentDelivered(ctx, orderID).Return(nil)
			},
		},
		{
			name: "shipment failed",
			env:  Envelope{Event: commands.EventShipmentFailed, OrderID: orderID, Reason: "address not found"},
			expect: func(m *commandsmock.MockOrderNotifications) {
				m.EXPECT().ApplyShipmentFailed(ctx, orderID, "address not found").Return(nil)
			},
		},
		{
			name: "missing payment id dispatches the zero id",
			env:  Envelope{Event: commands.EventPaymentCompleted, OrderID: orderID},
			expect: func(m *commandsmock.MockOrderNotifications) {
				m.EXPECT().ApplyPaymentCompleted(ctx, orderID, uuid.Nil).Return(nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			m := commandsmock.NewMockOrderNotifications(ctrl)
			tt.expect(m)

			assert.NoError(t, Dispatch(ctx, m, tt.env))
		})
	}

	t.Run("unknown event", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		m := commandsmock.NewMockOrderNotifications(ctrl)

		err := Dispatch(ctx, m, Envelope{Event: "order_teleported", OrderID: orderID})
		assert.ErrorIs(t, err, ErrUnknownEvent)
	})
}

func TestNotificationHandler_Handle(t *testing.T) {
	ctx := context.Background()
	orderID := uuid.New()
	raw, err := Envelope{Event: commands.EventShipmentDelivered, OrderID: orderID}.Encode()
	require.NoError(t, err)
	message := func(value []byte) *sarama.ConsumerMessage {
		return &sarama.ConsumerMessage{Value: value, Partition: 0, Offset: 42}
	}

	tests := []struct {
		name     string
		value    []byte
		applyErr error
		handled  bool
	}{
		{name: "applied", value: raw, handled: true},
		{name: "undecodable is dropped", value: []byte("garbage"), handled: true},
		{name: "state conflict is dropped", value: raw, applyErr: errs.StateConflict("cannot deliver"), handled: true},
		{name: "unknown order is dropped", value: raw, applyErr: commands.ErrOrderNotFound, handled: true},
		{name: "transient failure is retried", value: raw, applyErr: errors.New("connection reset"), handled: false},
		{name: "concurrent modification is retried", value: raw, applyErr: errs.Wrap(shared.ErrConcurrentModification, "save order"), handled: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			m := commandsmock.NewMockOrderNotifications(ctrl)
			if tt.value[0] == '{' {
				m.EXPECT().ApplyShipmentDelivered(gomock.Any(), orderID).Return(tt.applyErr)
			}

			h := &notificationHandler{notifications: m}
			assert.Equal(t, tt.handled, h.handle(ctx, message(tt.value)))
		})
	}
}

type fakeSession struct {
	ctx    context.Context
	mu     sync.Mutex
	marked []int64
}

func (s *fakeSession) Claims() map[string][]int32               { return nil }
func (s *fakeSession) MemberID() string                         { return "member-1" }
func (s *fakeSession) GenerationID() int32                      { return 1 }
func (s *fakeSession) MarkOffset(string, int32, int64, string)  {}
func (s *fakeSession) Commit()                                  {}
func (s *fakeSession) ResetOffset(string, int32, int64, string) {}
func (s *fakeSession) Context() context.Context                 { return s.ctx }
func (s *fakeSession) MarkMessage(msg *sarama.ConsumerMessage, _ string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.marked = append(s.marked, msg.Offset)
}

func (s *fakeSession) markedOffsets() []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]int64(nil), s.marked...)
}

type fakeClaim struct {
	messages chan *sarama.ConsumerMessage
}

func newFakeClaim(msgs ...*sarama.ConsumerMessage) *fakeClaim {
	c := &fakeClaim{messages: make(chan *sarama.ConsumerMessage, len(msgs))}
	for _, m := range msgs {
		c.messages <- m
	}
	close(c.messages)
	return c
}

func (c *fakeClaim) Topic() string                            { return "order-notifications" }
func (c *fakeClaim) Partition() int32                         { return 0 }
func (c *fakeClaim) InitialOffset() int64                     { return 0 }
func (c *fakeClaim) HighWaterMarkOffset() int64               { return 0 }
func (c *fakeClaim) Messages() <-chan *sarama.ConsumerMessage { return c.messages }

func TestNotificationHandler_ConsumeClaim(t *testing.T) {
	orderID := uuid.New()
	paymentID := uuid.New()
	paid, err := Envelope{Event: commands.EventPaymentCompleted, OrderID: orderID, PaymentID: &paymentID}.Encode()
	require.NoError(t, err)
	delivered, err := Envelope{Event: commands.EventShipmentDelivered, OrderID: orderID}.Encode()
	require.NoError(t, err)
	fastRetry := backoff{initial: time.Millisecond, max: 2 * time.Millisecond}

	t.Run("transient failure is retried before later offsets are marked", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		m := commandsmock.NewMockOrderNotifications(ctrl)
		gomock.InOrder(
			m.EXPECT().ApplyPaymentCompleted(gomock.Any(), orderID, paymentID).Return(errors.New("connection reset")),
			m.EXPECT().ApplyPaymentCompleted(gomock.Any(), orderID, paymentID).Return(errs.Wrap(shared.ErrConcurrentModification, "save order")),
			m.EXPECT().ApplyPaymentCompleted(gomock.Any(), orderID, paymentID).Return(nil),
			m.EXPECT().ApplyShipmentDelivered(gomock.Any(), orderID).Return(nil),
		)

		sess := &fakeSession{ctx: context.Background()}
		claim := newFakeClaim(
			&sarama.ConsumerMessage{Value: paid, Offset: 10},
			&sarama.ConsumerMessage{Value: delivered, Offset: 11},
		)
		h := &notificationHandler{notifications: m, backoff: fastRetry}

		require.NoError(t, h.ConsumeClaim(sess, claim))
		assert.Equal(t, []int64{10, 11}, sess.markedOffsets())
	})

	t.Run("rejected notification is marked and skipped", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		m := commandsmock.NewMockOrderNotifications(ctrl)
		m.EXPECT().ApplyPaymentCompleted(gomock.Any(), orderID, paymentID).Return(errs.StateConflict("order expired"))
		m.EXPECT().ApplyShipmentDelivered(gomock.Any(), orderID).Return(nil)

		sess := &fakeSession{ctx: context.Background()}
		claim := newFakeClaim(
			&sarama.ConsumerMessage{Value: paid, Offset: 20},
			&sarama.ConsumerMessage{Value: delivered, Offset: 21},
		)
		h := &notificationHandler{notifications: m, backoff: fastRetry}

		require.NoError(t, h.ConsumeClaim(sess, claim))
		assert.Equal(t, []int64{20, 21}, sess.markedOffsets())
	})

	t.Run("session end leaves the failing message unmarked", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		ctrl := gomock.NewController(t)
		m := commandsmock.NewMockOrderNotifications(ctrl)
		m.EXPECT().ApplyPaymentCompleted(gomock.Any(), orderID, paymentID).
			DoAndReturn(func(context.Context, uuid.UUID, uuid.UUID) error {
				cancel()
				return errors.New("connection reset")
			})

		sess := &fakeSession{ctx: ctx}
		claim := newFakeClaim(
			&sarama.ConsumerMessage{Value: paid, Offset: 30},
			&sarama.ConsumerMessage{Value: delivered, Offset: 31},
		)
		h := &notificationHandler{notifications: m, backoff: backoff{initial: time.Minute, max: time.Minute}}

		require.NoError(t, h.ConsumeClaim(sess, claim))
		assert.Empty(t, sess.markedOffsets())
	})
}

type fakeGroup struct {
	sarama.ConsumerGroup
	results []error
	calls   int
	onCall  func(call int)
}

func (g *fakeGroup) Consume(_ context.Context, _ []string, _ sarama.ConsumerGroupHandler) error {
	call := g.calls
	g.calls++
	if g.onCall != nil {
		g.onCall(call)
	}
	if call < len(g.results) {
		return g.results[call]
	}
	return nil
}

func TestNotificationConsumer_Run(t *testing.T) {
	newConsumer := func(g *fakeGroup) *NotificationConsumer {
		c := NewNotificationConsumer(g, config.KafkaConfig{Topic: "order-notifications"}, nil)
		c.backoff = backoff{initial: time.Millisecond, max: 2 * time.Millisecond}
		return c
	}

	t.Run("keeps consuming after broker errors", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		g := &fakeGroup{
			results: []error{sarama.ErrOutOfBrokers, sarama.ErrOutOfBrokers, nil},
			onCall: func(call int) {
				if call == 3 {
					cancel()
				}
			},
		}

		err := newConsumer(g).Run(ctx)
		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 4, g.calls)
	})

	t.Run("stops when the group is closed", func(t *testing.T) {
		g := &fakeGroup{results: []error{sarama.ErrClosedConsumerGroup}}

		err := newConsumer(g).Run(context.Background())
		assert.True(t, errs.Is(err, sarama.ErrClosedConsumerGroup))
		assert.Equal(t, 1, g.calls)
	})
}

func TestKafkaOrderClient_Publish(t *testing.T) {
	ctx := context.Background()
	cfg := config.KafkaConfig{Topic: "order-notifications"}
	orderID := uuid.New()
	shipmentID := uuid.New()

	t.Run("keys by order id", func(t *testing.T) {
		producer := mocks.NewSyncProducer(t, nil)
		producer.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(func(msg *sarama.ProducerMessage) error {
			if msg.Topic != cfg.Topic {
				return errors.New("wrong topic " + msg.Topic)
			}
			key, err := msg.Key.Encode()
			if err != nil {
				return err
			}
			if string(key) != orderID.String() {
				return errors.New("message not keyed by order id")
			}
			value, err := msg.Value.Encode()
			if err != nil {
				return err
			}
			e, err := DecodeEnvelope(value)
			if err != nil {
				return err
			}
			if e.Event != commands.EventShipmentCreated || e.TrackingNumber != "SF2025030100001" {
				return errors.New("unexpected envelope " + string(value))
			}
			return nil
		})
		defer func() { assert.NoError(t, producer.Close()) }()

		client := NewKafkaOrderClient(memory.NewOrderRepository(), producer, cfg)
		assert.NoError(t, client.NotifyShipmentCreated(ctx, orderID, shipmentID, "SF2025030100001"))
	})

	t.Run("broker failure is an external dependency error", func(t *testing.T) {
		producer := mocks.NewSyncProducer(t, nil)
		producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)
		defer func() { assert.NoError(t, producer.Close()) }()

		client := NewKafkaOrderClient(memory.NewOrderRepository(), producer, cfg)
		err := client.NotifyShipmentDelivered(ctx, orderID)
		assert.True(t, errs.Is(err, errs.ErrExternalDependency))
	})

	t.Run("cancelled context publishes nothing", func(t *testing.T) {
		producer := mocks.NewSyncProducer(t, nil)
		defer func() { assert.NoError(t, producer.Close()) }()

		cctx, cancel := context.WithCancel(ctx)
		cancel()
		client := NewKafkaOrderClient(memory.NewOrderRepository(), producer, cfg)
		assert.ErrorIs(t, client.NotifyShipmentDelivered(cctx, orderID), context.Canceled)
	})

	t.Run("order reads stay local", func(t *testing.T) {
		producer := mocks.NewSyncProducer(t, nil)
		defer func() { assert.NoError(t, producer.Close()) }()

		client := NewKafkaOrderClient(memory.NewOrderRepository(), producer, cfg)
		info, err := client.GetOrderInfo(ctx, orderID)
		require.NoError(t, err)
		assert.Nil(t, info)
	})
}
