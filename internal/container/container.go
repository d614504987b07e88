// Package container wires configuration, persistence, services and the
// HTTP server together with ordered startup and reverse-order teardown.
package container

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/carbonview/energy-review/internal/application/bus"
	"github.com/carbonview/energy-review/internal/application/port"
	"github.com/carbonview/energy-review/internal/application/service"
	"github.com/carbonview/energy-review/internal/config"
	httpserver "github.com/carbonview/energy-review/internal/interfaces/http"
	"github.com/carbonview/energy-review/pkg/database"
)

// Container manages all application dependencies and lifecycle.
type Container struct {
	config *config.Config
	logger *zap.Logger

	// Infrastructure
	db     *database.DB
	stores *StoreBundle

	// Application
	bus      *bus.NotificationBus
	services *ServiceBundle

	// Interfaces
	server *httpserver.Server

	// Lifecycle
	mu     sync.Mutex
	ctx    context.Context
	cancel context.CancelFunc
	ready  atomic.Bool
	closed atomic.Bool
}

// StoreBundle groups the persistence ports for convenient access.
type StoreBundle struct {
	Records   port.RecordStore
	History   port.HistoryLedger
	Entries   port.EntryStore
	Snapshots port.SnapshotStore
}

// ServiceBundle groups all application services.
type ServiceBundle struct {
	Review service.ReviewService
	Entry  service.EntryService
}

// New creates a new container from configuration.
// It does not initialize components - call Start() to initialize.
func New(cfg *config.Config, logger *zap.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Container{
		config: cfg,
		logger: logger,
	}, nil
}

// Start initializes all components in dependency order:
// 1. Snapshot storage (file or sqlite)
// 2. In-memory stores
// 3. Notification bus
// 4. Application services, hydrated from the snapshot
// 5. HTTP server
func (c *Container) Start(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed.Load() {
		return fmt.Errorf("container has been closed")
	}
	if c.ready.Load() {
		return fmt.Errorf("container already started")
	}

	c.ctx, c.cancel = context.WithCancel(ctx)
	c.logger.Info("Starting container initialization")

	if err := c.initStores(); err != nil {
		return fmt.Errorf("failed to initialize stores: %w", err)
	}
	c.logger.Info("Stores initialized")

	c.bus = bus.New(c.logger)
	c.logger.Info("Notification bus initialized")

	if err := c.initServices(); err != nil {
		return fmt.Errorf("failed to initialize services: %w", err)
	}
	c.logger.Info("Application services initialized")

	c.server = ProvideServer(&c.config.Server, c.services, c.logger)
	c.logger.Info("HTTP server initialized")

	c.ready.Store(true)
	c.logger.Info("Container started successfully")

	return nil
}

// Serve runs the HTTP server until the container context is cancelled.
func (c *Container) Serve() error {
	if !c.ready.Load() {
		return fmt.Errorf("container not started")
	}
	return c.server.Start(c.ctx)
}

// Close gracefully shuts down all components in reverse order.
func (c *Container) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed.Load() {
		return fmt.Errorf("container already closed")
	}

	c.logger.Info("Closing container")

	var errs []error

	if c.cancel != nil {
		c.cancel()
	}

	if c.server != nil {
		if err := c.server.Stop(); err != nil {
			c.logger.Error("Failed to stop HTTP server", zap.Error(err))
			errs = append(errs, fmt.Errorf("stop http server: %w", err))
		}
	}

	if c.db != nil {
		if err := c.db.Close(); err != nil {
			c.logger.Error("Failed to close database", zap.Error(err))
			errs = append(errs, fmt.Errorf("close database: %w", err))
		} else {
			c.logger.Info("Database closed")
		}
	}

	c.closed.Store(true)
	c.ready.Store(false)

	if len(errs) > 0 {
		c.logger.Error("Container closed with errors", zap.Int("error_count", len(errs)))
		return fmt.Errorf("container closed with %d errors", len(errs))
	}

	c.logger.Info("Container closed successfully")
	return nil
}

// Ready returns true when all components are initialized.
func (c *Container) Ready() bool {
	return c.ready.Load()
}

func (c *Container) initStores() error {
	bundle, db, err := ProvideStores(c.config, c.logger)
	if err != nil {
		return err
	}
	c.stores = bundle
	c.db = db
	return nil
}

func (c *Container) initServices() error {
	services, err := ProvideServices(c.stores, c.bus, c.logger)
	if err != nil {
		return err
	}
	c.services = services

	// warm the record store from the last snapshot, seeding on a miss
	c.services.Review.Hydrate(c.ctx)
	return nil
}

// Stores returns the persistence ports.
func (c *Container) Stores() *StoreBundle {
	return c.stores
}

// Services returns all application services.
func (c *Container) Services() *ServiceBundle {
	return c.services
}

// Bus returns the notification bus.
func (c *Container) Bus() *bus.NotificationBus {
	return c.bus
}

// Server returns the HTTP server.
func (c *Container) Server() *httpserver.Server {
	return c.server
}

// Logger returns the container's logger.
func (c *Container) Logger() *zap.Logger {
	return c.logger
}

// Config returns the container's configuration.
func (c *Container) Config() *config.Config {
	return c.config
}
