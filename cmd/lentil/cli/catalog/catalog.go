package catalog

import (
	"context"
	"fmt"
	"strconv"

	"github.com/mwantia/lentil/internal/bootstrap"
	"github.com/mwantia/lentil/pkg/db/store"
	"github.com/mwantia/lentil/pkg/log"
	"github.com/spf13/cobra"

	config "github.com/mwantia/lentil/internal/config/server"
)

// withStore opens the configured metadata store, applies pending migrations
// and closes the store once fn returns.
func withStore(cmd *cobra.Command, fn func(ctx context.Context, st store.MetadataStore, l log.LoggerService) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.LoadServerConfig()
	if err != nil {
		return fmt.Errorf("failed to load server configuration: %w", err)
	}

	// Command output owns stdout, log lines go to stderr
	l := log.NewTerminalLoggerService("lentil", cfg.Log, cmd.ErrOrStderr())

	st, err := bootstrap.OpenMigratedStore(ctx, cfg.Metadata, l)
	if err != nil {
		return err
	}
	defer st.Close()

	return fn(ctx, st, l)
}

func parseID(kind, value string) (uint, error) {
	id, err := strconv.ParseUint(value, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid %s id '%s'", kind, value)
	}
	return uint(id), nil
}

func parseIDs(args []string, kinds ...string) ([]uint, error) {
	ids := make([]uint, len(kinds))
	for i, kind := range kinds {
		id, err := parseID(kind, args[i])
		if err != nil {
			return nil, err
		}
		ids[i] = id
	}
	return ids, nil
}
