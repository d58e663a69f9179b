package components

import (
	"order-fulfillment/internal/infra/messaging"
	"order-fulfillment/internal/pkg/config"
	"order-fulfillment/internal/usecase/commands"
	"order-fulfillment/internal/usecase/shared"

	"github.com/IBM/sarama"
	"go.uber.org/fx"
)

var MessagingModule = fx.Module("messaging",
	fx.Provide(
		NewOrderService,
	),
)

// NewOrderService is the payment and shipment side's view of the order
// service. The producer is nil unless the kafka transport is selected.
func NewOrderService(
	cfg config.Config,
	orders shared.OrderRepository,
	notifications commands.OrderNotifications,
	producer sarama.SyncProducer,
) shared.OrderService {
	if cfg.Kafka.Transport == config.TransportKafka {
		return messaging.NewKafkaOrderClient(orders, producer, cfg.Kafka)
	}
	return messaging.NewInProcessOrderClient(orders, notifications)
}
