package bootstrap

import (
	"context"
	"log/slog"
	"time"

	"order-fulfillment/internal/infra/db"
	"order-fulfillment/internal/infra/uow"
	"order-fulfillment/internal/pkg/config"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

const connectTimeout = 10 * time.Second

var DBModule = fx.Module("db",
	fx.Provide(
		NewDB,
		NewUnitOfWork,
	),
)

// NewDB returns a nil pool unless the postgres backend is selected.
func NewDB(lc fx.Lifecycle, cfg config.Config) (*pgxpool.Pool, error) {
	if cfg.Store.Backend != config.BackendPostgres {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	pool, cleanup, err := db.Connect(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	if err := db.Migrate(ctx, pool); err != nil {
		cleanup()
		return nil, err
	}
	slog.Info("database ready", "host", cfg.DB.Host, "name", cfg.DB.DBName)

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			cleanup()
			return nil
		},
	})

	return pool, nil
}

func NewUnitOfWork(pool *pgxpool.Pool) *uow.PostgresUoW {
	if pool == nil {
		return nil
	}
	return uow.NewPostgresUoW(pool)
}
