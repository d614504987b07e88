// Command seed writes the demo fixture records into the configured
// snapshot backend, replacing whatever snapshot exists there.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/carbonview/energy-review/internal/config"
	"github.com/carbonview/energy-review/internal/container"
	"github.com/carbonview/energy-review/internal/domain/entity"
	"github.com/carbonview/energy-review/pkg/utils"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := utils.NewLogger(utils.LoggerConfig{
		Level:      cfg.Logger.Level,
		OutputPath: cfg.Logger.OutputPath,
		Format:     cfg.Logger.Format,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	stores, db, err := container.ProvideStores(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize stores", zap.Error(err))
	}
	if db != nil {
		defer db.Close()
	}

	records := entity.SeedSubmissions()
	if err := stores.Snapshots.Save(context.Background(), records); err != nil {
		logger.Fatal("Failed to write seed snapshot", zap.Error(err))
	}

	logger.Info("Seed snapshot written",
		zap.String("backend", cfg.Snapshot.Backend),
		zap.String("key", cfg.Snapshot.Key),
		zap.Int("records", len(records)))
}
