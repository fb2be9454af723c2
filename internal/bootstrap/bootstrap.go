// Package bootstrap wires configuration, logging and the metadata store
// together for the agent and the one-shot CLI commands.
package bootstrap

import (
	"context"
	"fmt"

	config "github.com/mwantia/lentil/internal/config/server"
	"github.com/mwantia/lentil/pkg/db/store"
	"github.com/mwantia/lentil/pkg/log"
)

// OpenStore creates and connects the configured metadata store.
// GORM output is routed through the "gorm" child of l.
func OpenStore(ctx context.Context, cfg config.MetadataServerConfig, l log.LoggerService) (*store.GormStore, error) {
	gl := log.NewGormLogger(l.Named("gorm"), store.ParseLogLevel(cfg.LogLevel))

	st, err := store.New(cfg, gl)
	if err != nil {
		return nil, fmt.Errorf("failed to create metadata store: %w", err)
	}

	if err := st.Connect(ctx); err != nil {
		st.Close()
		return nil, fmt.Errorf("failed to connect metadata store: %w", err)
	}

	return st, nil
}

// OpenMigratedStore opens the store and applies every pending migration
func OpenMigratedStore(ctx context.Context, cfg config.MetadataServerConfig, l log.LoggerService) (*store.GormStore, error) {
	st, err := OpenStore(ctx, cfg, l)
	if err != nil {
		return nil, err
	}

	if err := st.Migrate(ctx); err != nil {
		st.Close()
		return nil, fmt.Errorf("failed to migrate metadata store: %w", err)
	}

	return st, nil
}
