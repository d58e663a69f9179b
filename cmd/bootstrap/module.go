package bootstrap

import (
	"order-fulfillment/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	DBModule,
	RedisModule,
	JWTModule,
	components.RepositoryModule,
	components.ExternalModule,
	components.UseCaseModule,
	components.MessagingModule,
	KafkaModule,
	SchedulerModule,
	components.HandlerModule,
)
