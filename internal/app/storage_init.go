package app

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/shop/internal/domain"
	"github.com/vladislavdragonenkov/shop/internal/storage/memory"
	"github.com/vladislavdragonenkov/shop/internal/storage/postgres"
)

// runtimeDependencies объединяет репозитории, выбранные по конфигурации.
type runtimeDependencies struct {
	customers domain.CustomerRepository
	products  domain.ProductRepository
	orders    domain.OrderRepository

	// store не nil только для postgres-хранилища.
	store *postgres.Store
}

// initRuntimeDependencies инициализирует хранилища согласно cfg.StorageDriver.
func initRuntimeDependencies(ctx context.Context, cfg Config, logger *log.Entry) (runtimeDependencies, error) {
	switch cfg.StorageDriver {
	case StorageDriverMemory, "":
		logger.Info("используем in-memory хранилище")
		return runtimeDependencies{
			customers: memory.NewCustomerRepository(),
			products:  memory.NewProductRepository(),
			orders:    memory.NewOrderRepository(),
		}, nil

	case StorageDriverPostgres:
		if cfg.PostgresDSN == "" {
			return runtimeDependencies{}, fmt.Errorf("postgres storage requires a DSN")
		}
		store, err := postgres.Open(ctx, cfg.PostgresDSN)
		if err != nil {
			return runtimeDependencies{}, fmt.Errorf("open postgres: %w", err)
		}
		if cfg.PostgresAutoMigrate {
			if err := store.MigrateUp(ctx, 0); err != nil {
				_ = store.Close()
				return runtimeDependencies{}, fmt.Errorf("apply migrations: %w", err)
			}
		}
		logger.Info("используем postgres хранилище")
		return runtimeDependencies{
			customers: postgres.NewCustomerRepository(store),
			products:  postgres.NewProductRepository(store),
			orders:    postgres.NewOrderRepository(store),
			store:     store,
		}, nil

	default:
		return runtimeDependencies{}, fmt.Errorf("unsupported storage driver: %s", cfg.StorageDriver)
	}
}

// close освобождает ресурсы хранилищ.
func (d runtimeDependencies) close(logger *log.Entry) {
	if d.store == nil {
		return
	}
	if err := d.store.Close(); err != nil {
		logger.WithError(err).Warn("failed to close postgres store")
	}
}
