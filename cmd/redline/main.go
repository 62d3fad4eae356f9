// Command redline runs the page synchronization and annotation engine.
package main

import (
	"fmt"
	"os"

	"github.com/custodia-labs/redline/internal/adapters/driven/config/file"
	"github.com/custodia-labs/redline/internal/adapters/driven/notify/ws"
	"github.com/custodia-labs/redline/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/redline/internal/adapters/driving/cli"
	"github.com/custodia-labs/redline/internal/core/services"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "redline: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	config, err := file.NewConfigStore(os.Getenv("REDLINE_CONFIG_DIR"))
	if err != nil {
		return fmt.Errorf("opening config: %w", err)
	}

	store, err := sqlite.NewStore(config.GetString("storage.data_dir"))
	if err != nil {
		return fmt.Errorf("opening page store: %w", err)
	}
	defer store.Close()

	hub := ws.NewHub()

	return cli.Execute(cli.Deps{
		Sync:        services.NewSyncCoordinator(store, hub),
		Annotations: services.NewAnnotationService(store, hub),
		Search:      services.NewSearchService(store),
		Pages:       store,
		Config:      config,
		Hub:         hub,
	})
}
