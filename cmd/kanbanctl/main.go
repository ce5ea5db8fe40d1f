package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"kanban/internal/config"
	"kanban/internal/db"
	"kanban/internal/logger"

	"github.com/spf13/cobra"
)

var Version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:     "kanbanctl",
		Short:   "Administrative commands for the kanban board",
		Version: Version,
	}

	rootCmd.AddCommand(initDBCmd())
	rootCmd.AddCommand(createUserCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// openStore loads the environment config and opens the configured backend.
func openStore(ctx context.Context) (*config.Config, *db.Store, error) {
	cfg := config.Load()
	logger.Init(cfg.LogLevel, cfg.LogJSON)

	store, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}
	return cfg, store, nil
}

func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), 30*time.Second)
}
