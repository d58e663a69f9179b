package bootstrap

import (
	"context"
	"errors"
	"log/slog"

	"order-fulfillment/internal/infra/messaging"
	"order-fulfillment/internal/pkg/config"
	"order-fulfillment/internal/usecase/commands"

	"github.com/IBM/sarama"
	"go.uber.org/fx"
)

var KafkaModule = fx.Module("kafka",
	fx.Provide(
		NewKafkaProducer,
	),
	fx.Invoke(startNotificationConsumer),
)

// NewKafkaProducer returns nil with the in-process transport.
func NewKafkaProducer(lc fx.Lifecycle, cfg config.Config) (sarama.SyncProducer, error) {
	if cfg.Kafka.Transport != config.TransportKafka {
		return nil, nil
	}

	producer, err := messaging.NewSyncProducer(cfg.Kafka)
	if err != nil {
		return nil, err
	}
	slog.Info("kafka producer ready", "brokers", cfg.Kafka.Brokers, "topic", cfg.Kafka.Topic)

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return producer.Close()
		},
	})

	return producer, nil
}

func startNotificationConsumer(lc fx.Lifecycle, cfg config.Config, notifications commands.OrderNotifications) error {
	if cfg.Kafka.Transport != config.TransportKafka {
		return nil
	}

	group, err := messaging.NewConsumerGroup(cfg.Kafka)
	if err != nil {
		return err
	}
	consumer := messaging.NewNotificationConsumer(group, cfg.Kafka, notifications)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			go func() {
				defer close(done)
				slog.Info("notification consumer started", "topic", cfg.Kafka.Topic, "group", cfg.Kafka.GroupID)
				err := consumer.Run(ctx)
				if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, sarama.ErrClosedConsumerGroup) {
					slog.Error("notification consumer stopped", "error", err)
				}
			}()
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			select {
			case <-done:
			case <-stopCtx.Done():
			}
			return consumer.Close()
		},
	})
	return nil
}
