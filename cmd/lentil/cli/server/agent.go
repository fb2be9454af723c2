package server

import (
	"context"
	"fmt"

	"github.com/mwantia/lentil/internal/agent"
	"github.com/spf13/cobra"

	config "github.com/mwantia/lentil/internal/config/server"
)

func NewAgentCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "agent",
		Short: "Start the lentil agent",
		Long: `Start the lentil agent.

The agent opens and migrates the configured metadata store and reports the
harvestable tags on every harvest interval until it is interrupted.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadServerConfig()
			if err != nil {
				return fmt.Errorf("failed to load server configuration: %w", err)
			}

			la := agent.NewAgent(cfg)
			if err := la.Serve(context.Background()); err != nil {
				return fmt.Errorf("agent stopped with error: %w", err)
			}

			return nil
		},
	}

	return cmd
}
