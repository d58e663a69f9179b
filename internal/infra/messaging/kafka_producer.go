package messaging

import (
	"context"
	"log/slog"

	"order-fulfillment/internal/pkg/config"
	"order-fulfillment/internal/pkg/errs"
	"order-fulfillment/internal/usecase/commands"
	"order-fulfillment/internal/usecase/shared"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
)

var errPublish = errs.ExternalDependency("failed to publish notification")

func NewSyncProducer(cfg config.KafkaConfig) (sarama.SyncProducer, error) {
	sc := sarama.NewConfig()
	sc.Producer.Return.Successes = true
	sc.Producer.RequiredAcks = sarama.WaitForAll
	sc.Producer.Retry.Max = 5

	producer, err := sarama.NewSyncProducer(cfg.Brokers, sc)
	if err != nil {
		return nil, errs.Wrapf(errPublish, "create kafka producer: %v", err)
	}
	slog.Info("Kafka producer initialized", "brokers", cfg.Brokers, "topic", cfg.Topic)
	return producer, nil
}

// KafkaOrderClient publishes notifications to the topic and keyed by order
// id, so one order's events stay on one partition in publish order.
type KafkaOrderClient struct {
	orders   shared.OrderRepository
	producer sarama.SyncProducer
	topic    string
}

func NewKafkaOrderClient(orders shared.OrderRepository, producer sarama.SyncProducer, cfg config.KafkaConfig) *KafkaOrderClient {
	return &KafkaOrderClient{orders: orders, producer: producer, topic: cfg.Topic}
}

var _ shared.OrderService = (*KafkaOrderClient)(nil)

func (c *KafkaOrderClient) GetOrderInfo(ctx context.Context, orderID uuid.UUID) (*shared.OrderInfo, error) {
	return lookupOrder(ctx, c.orders, orderID)
}

func (c *KafkaOrderClient) publish(ctx context.Context, e Envelope) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	raw, err := e.Encode()
	if err != nil {
		return err
	}
	msg := &sarama.ProducerMessage{
		Topic: c.topic,
		Key:   sarama.StringEncoder(e.OrderID.String()),
		Value: sarama.ByteEncoder(raw),
	}
	partition, offset, err := c.producer.SendMessage(msg)
	if err != nil {
		return errs.Wrapf(errPublish, "%s for order %s: %v", e.Event, e.OrderID, err)
	}
	slog.Debug("notification published",
		"event", e.Event, "order_id", e.OrderID, "partition", partition, "offset", offset)
	return nil
}

func (c *KafkaOrderClient) NotifyPaymentComplete(ctx context.Context, orderID, paymentID uuid.UUID) error {
	return c.publish(ctx, Envelope{Event: commands.EventPaymentCompleted, OrderID: orderID, PaymentID: &paymentID})
}

func (c *KafkaOrderClient) NotifyPaymentFailed(ctx context.Context, orderID, paymentID uuid.UUID, reason string) error {
	return c.publish(ctx, Envelope{Event: commands.EventPaymentFailed, OrderID: orderID, PaymentID: &paymentID, Reason: reason})
}

func (c *KafkaOrderClient) NotifyPaymentRefunded(ctx context.Context, orderID, paymentID uuid.UUID) error {
	return c.publish(ctx, Envelope{Event: commands.EventPaymentRefunded, OrderID: orderID, PaymentID: &paymentID})
}

func (c *KafkaOrderClient) NotifyShipmentCreated(ctx context.Context, orderID, shipmentID uuid.UUID, trackingNumber string) error {
	return c.publish(ctx, Envelope{
		Event:          commands.EventShipmentCreated,
		OrderID:        orderID,
		ShipmentID:     &shipmentID,
		TrackingNumber: trackingNumber,
	})
}

func (c *KafkaOrderClient) NotifyShipmentInTransit(ctx context.Context, orderID uuid.UUID, trackingNumber string) error {
	return c.publish(ctx, Envelope{Event: commands.EventShipmentInTransit, OrderID: orderID, TrackingNumber: trackingNumber})
}

func (c *KafkaOrderClient) NotifyShipmentDelivered(ctx context.Context, orderID uuid.UUID) error {
	return c.publish(ctx, Envelope{Event: commands.EventShipmentDelivered, OrderID: orderID})
}

func (c *KafkaOrderClient) NotifyShipmentFailed(ctx context.Context, orderID uuid.UUID, reason string) error {
	return c.publish(ctx, Envelope{Event: commands.EventShipmentFailed, OrderID: orderID, Reason: reason})
}
