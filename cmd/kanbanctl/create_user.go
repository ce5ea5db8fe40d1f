package main

import (
	"errors"
	"fmt"

	"kanban/internal/domain"
	"kanban/internal/service"

	"github.com/spf13/cobra"
)

func createUserCmd() *cobra.Command {
	var (
		password string
		token    bool
	)

	cmd := &cobra.Command{
		Use:   "create-user [username]",
		Short: "Register a user, or verify an existing one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				return errors.New("--password is required")
			}

			ctx, cancel := commandContext(cmd)
			defer cancel()

			cfg, store, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			auth := service.NewAuthService(store.Users, service.NewAuditService())
			out := cmd.OutOrStdout()

			u, err := auth.Register(ctx, args[0], password)
			var verr *domain.ValidationError
			switch {
			case errors.As(err, &verr):
				u, err = auth.Login(ctx, args[0], password)
				if err != nil {
					return fmt.Errorf("%s: %w", verr.Message, err)
				}
				fmt.Fprintf(out, "User %s already exists (id=%d).\n", u.Username, u.ID)
			case err != nil:
				return fmt.Errorf("create user: %w", err)
			default:
				fmt.Fprintf(out, "Created user %s (id=%d).\n", u.Username, u.ID)
			}

			if token {
				sessions := service.NewSessionManager(cfg.SessionSecret, cfg.SessionTTL)
				value, err := sessions.Issue(u.ID)
				if err != nil {
					return fmt.Errorf("issue session: %w", err)
				}
				fmt.Fprintln(out, value)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&password, "password", "p", "", "password for the user")
	cmd.Flags().BoolVar(&token, "token", false, "print a session cookie value for the user")

	return cmd
}
