package messaging

import (
	"context"
	"log/slog"
	"time"

	"order-fulfillment/internal/pkg/config"
	"order-fulfillment/internal/pkg/errs"
	"order-fulfillment/internal/usecase/commands"
	"order-fulfillment/internal/usecase/shared"

	"github.com/IBM/sarama"
)

func NewConsumerGroup(cfg config.KafkaConfig) (sarama.ConsumerGroup, error) {
	sc := sarama.NewConfig()
	sc.Version = sarama.V2_6_0_0
	sc.Consumer.Group.Rebalance.GroupStrategies = []sarama.BalanceStrategy{sarama.NewBalanceStrategyRange()}
	sc.Consumer.Offsets.Initial = sarama.OffsetOldest
	sc.Net.DialTimeout = 5 * time.Second

	group, err := sarama.NewConsumerGroup(cfg.Brokers, cfg.GroupID, sc)
	if err != nil {
		return nil, errs.Wrapf(errPublish, "create kafka consumer group: %v", err)
	}
	return group, nil
}

// NotificationConsumer feeds the notifications topic into the order side.
type NotificationConsumer struct {
	group   sarama.ConsumerGroup
	topics  []string
	handler *notificationHandler
	backoff backoff
}

func NewNotificationConsumer(group sarama.ConsumerGroup, cfg config.KafkaConfig, n commands.OrderNotifications) *NotificationConsumer {
	return &NotificationConsumer{
		group:   group,
		topics:  []string{cfg.Topic},
		handler: &notificationHandler{notifications: n, backoff: defaultBackoff},
		backoff: backoff{initial: time.Second, max: 30 * time.Second},
	}
}

// Run consumes until ctx is cancelled or the group is closed. Consume
// returns on every rebalance and on broker errors, so it is called in a loop.
func (c *NotificationConsumer) Run(ctx context.Context) error {
	failures := 0
	for {
		err := c.group.Consume(ctx, c.topics, c.handler)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err == nil {
			failures = 0
			continue
		}
		if errs.Is(err, sarama.ErrClosedConsumerGroup) {
			return errs.Wrap(err, "consume notifications")
		}
		wait := c.backoff.delay(failures)
		failures++
		slog.Warn("consuming notifications failed, retrying",
			"attempt", failures, "retry_wait", wait, "error", err)
		if !sleep(ctx, wait) {
			return ctx.Err()
		}
	}
}

func (c *NotificationConsumer) Close() error {
	return c.group.Close()
}

type backoff struct {
	initial time.Duration
	max     time.Duration
}

var defaultBackoff = backoff{initial: 100 * time.Millisecond, max: 5 * time.Second}

func (b backoff) delay(attempt int) time.Duration {
	d := b.initial
	for range attempt {
		d *= 2
		if d >= b.max {
			return b.max
		}
	}
	return d
}

// sleep reports false when ctx ended first.
func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return true
	case <-ctx.Done():
		return false
	}
}

type notificationHandler struct {
	notifications commands.OrderNotifications
	backoff       backoff
}

func (h *notificationHandler) Setup(sarama.ConsumerGroupSession) error   { return nil }
func (h *notificationHandler) Cleanup(sarama.ConsumerGroupSession) error { return nil }

// ConsumeClaim marks a message only once it is done with. A message that
// fails transiently is retried in place, so no later offset is committed past
// it. When the session ends first the message stays unmarked and the next
// session starts from it again.
func (h *notificationHandler) ConsumeClaim(sess sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	ctx := sess.Context()
	for msg := range claim.Messages() {
		for attempt := 0; !h.handle(ctx, msg); attempt++ {
			if !sleep(ctx, h.backoff.delay(attempt)) {
				return nil
			}
		}
		sess.MarkMessage(msg, "")
	}
	return nil
}

// handle reports whether the message is done with. Undecodable messages and
// rejected transitions never succeed, so they count as done. Concurrent
// modification and everything unclassified is worth another attempt.
func (h *notificationHandler) handle(ctx context.Context, msg *sarama.ConsumerMessage) bool {
	e, err := DecodeEnvelope(msg.Value)
	if err != nil {
		slog.Error("dropping undecodable notification", "offset", msg.Offset, "partition", msg.Partition, "error", err)
		return true
	}
	err = Dispatch(ctx, h.notifications, e)
	switch {
	case err == nil:
		return true
	case errs.Is(err, shared.ErrConcurrentModification):
		slog.Warn("notification raced another writer, retrying",
			"event", e.Event, "order_id", e.OrderID, "offset", msg.Offset)
		return false
	case errs.Is(err, errs.ErrStateConflict), errs.Is(err, errs.ErrValidation), errs.Is(err, errs.ErrNotFound):
		slog.Error("notification rejected",
			"event", e.Event, "order_id", e.OrderID, "offset", msg.Offset, "error", err)
		return true
	default:
		slog.Warn("notification failed, retrying",
			"event", e.Event, "order_id", e.OrderID, "offset", msg.Offset, "error", err)
		return false
	}
}
