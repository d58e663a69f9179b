package components

import (
	"order-fulfillment/internal/infra/memory"
	"order-fulfillment/internal/infra/redisstore"
	"order-fulfillment/internal/infra/repository"
	"order-fulfillment/internal/infra/uow"
	"order-fulfillment/internal/pkg/config"
	"order-fulfillment/internal/pkg/keylock"
	"order-fulfillment/internal/usecase/shared"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

// RepositoryModule picks each store by configuration. The postgres unit of
// work and the redis client are nil when their backend is not selected.
var RepositoryModule = fx.Module("repository",
	fx.Provide(
		NewOrderRepository,
		NewPaymentRepository,
		NewShipmentRepository,
		NewCouponRepository,
		NewPromotionRepository,
		NewCartRepository,
		NewLocker,
	),
)

func usePostgres(cfg config.Config) bool {
	return cfg.Store.Backend == config.BackendPostgres
}

func NewOrderRepository(cfg config.Config, u *uow.PostgresUoW) shared.OrderRepository {
	if usePostgres(cfg) {
		return repository.NewOrderRepository(u)
	}
	return memory.NewOrderRepository()
}

func NewPaymentRepository(cfg config.Config, u *uow.PostgresUoW) shared.PaymentRepository {
	if usePostgres(cfg) {
		return repository.NewPaymentRepository(u)
	}
	return memory.NewPaymentRepository()
}

func NewShipmentRepository(cfg config.Config, u *uow.PostgresUoW) shared.ShipmentRepository {
	if usePostgres(cfg) {
		return repository.NewShipmentRepository(u)
	}
	return memory.NewShipmentRepository()
}

func NewCouponRepository(cfg config.Config, u *uow.PostgresUoW) shared.CouponRepository {
	if usePostgres(cfg) {
		return repository.NewCouponRepository(u)
	}
	return memory.NewCouponRepository()
}

func NewPromotionRepository(cfg config.Config, u *uow.PostgresUoW) shared.PromotionRepository {
	if usePostgres(cfg) {
		return repository.NewPromotionRepository(u)
	}
	return memory.NewPromotionRepository()
}

func NewCartRepository(cfg config.Config, rdb *redis.Client) shared.CartRepository {
	if cfg.Store.CartBackend == config.BackendRedis {
		return redisstore.NewCartRepository(rdb, cfg.Redis.CartTTL)
	}
	return memory.NewCartRepository()
}

func NewLocker(cfg config.Config, rdb *redis.Client) shared.Locker {
	if cfg.Store.LockBackend == config.BackendRedis {
		return redisstore.NewLocker(rdb, cfg.Redis.LockTTL)
	}
	return keylock.New()
}
