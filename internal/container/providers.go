package container

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/carbonview/energy-review/internal/application/bus"
	"github.com/carbonview/energy-review/internal/application/service"
	"github.com/carbonview/energy-review/internal/config"
	"github.com/carbonview/energy-review/internal/infrastructure/persistence/memory"
	"github.com/carbonview/energy-review/internal/infrastructure/persistence/snapshot"
	"github.com/carbonview/energy-review/internal/infrastructure/persistence/sqlite"
	httpserver "github.com/carbonview/energy-review/internal/interfaces/http"
	"github.com/carbonview/energy-review/pkg/database"
)

// ProvideStores creates the in-memory stores and the configured snapshot
// backend. The returned *database.DB is nil unless the sqlite backend is
// selected; the caller owns closing it.
func ProvideStores(cfg *config.Config, logger *zap.Logger) (*StoreBundle, *database.DB, error) {
	if cfg == nil {
		return nil, nil, fmt.Errorf("config is required")
	}
	if logger == nil {
		return nil, nil, fmt.Errorf("logger is required")
	}

	bundle := &StoreBundle{
		Records: memory.NewRecordStore(),
		History: memory.NewHistoryLedger(),
		Entries: memory.NewEntryStore(),
	}

	switch cfg.Snapshot.Backend {
	case "sqlite":
		db, err := database.New(database.Config{
			Path:            cfg.Database.Path,
			MaxOpenConns:    cfg.Database.MaxOpenConns,
			MaxIdleConns:    cfg.Database.MaxIdleConns,
			ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		}, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open database: %w", err)
		}

		store, err := sqlite.NewSnapshotStore(db, cfg.Snapshot.Key, logger)
		if err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("failed to create sqlite snapshot store: %w", err)
		}
		bundle.Snapshots = store
		return bundle, db, nil

	case "file":
		store, err := snapshot.NewFileStore(cfg.Snapshot.Dir, cfg.Snapshot.Key, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create file snapshot store: %w", err)
		}
		bundle.Snapshots = store
		return bundle, nil, nil

	default:
		return nil, nil, fmt.Errorf("unknown snapshot backend: %q", cfg.Snapshot.Backend)
	}
}

// ProvideServices creates all application services.
func ProvideServices(stores *StoreBundle, notifications *bus.NotificationBus, logger *zap.Logger) (*ServiceBundle, error) {
	if stores == nil {
		return nil, fmt.Errorf("stores are required")
	}
	if notifications == nil {
		return nil, fmt.Errorf("notification bus is required")
	}

	return &ServiceBundle{
		Review: service.NewReviewService(stores.Records, stores.History, stores.Snapshots, notifications, logger),
		Entry:  service.NewEntryService(stores.Entries, logger),
	}, nil
}

// ProvideServer creates the HTTP server from the service bundle.
func ProvideServer(cfg *config.ServerConfig, services *ServiceBundle, logger *zap.Logger) *httpserver.Server {
	serverCfg := httpserver.ServerConfig{
		Host:         cfg.Host,
		Port:         cfg.Port,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	return httpserver.NewServer(serverCfg, services.Review, services.Entry, logger)
}
