package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func initDBCmd() *cobra.Command {
	var reset bool

	cmd := &cobra.Command{
		Use:   "initdb",
		Short: "Create the user and task tables",
		Long: `Create the schema for DATABASE_URL if it does not exist yet.

With --reset both tables are dropped first and every user and task is lost.

Examples:
  kanbanctl initdb
  DATABASE_URL=postgres://kanban@localhost/kanban kanbanctl initdb --reset`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := commandContext(cmd)
			defer cancel()

			_, store, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			if reset {
				if err := store.Reset(ctx); err != nil {
					return fmt.Errorf("reset database: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Reset the %s database.\n", store.Name)
				return nil
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Initialized the %s database.\n", store.Name)
			return nil
		},
	}

	cmd.Flags().BoolVar(&reset, "reset", false, "drop and recreate both tables")

	return cmd
}
