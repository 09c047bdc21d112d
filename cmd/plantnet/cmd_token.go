package main

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/plantnet/plantnet-api/internal/core/service"
)

var tokenEmail string

// plantnet token --email: sign a session token for manual API calls.
var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Print a session token for an email",
	Long:  "Signs a session token with ACCESS_TOKEN_SECRET. Send it as the session cookie, e.g. curl -b token=<value>.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd.Context())
		if err != nil {
			return err
		}

		sessions := service.NewSessionService(cfg.Session.Secret, cfg.Session.TTL, nil, zerolog.Nop())
		token, session, err := sessions.Issue(cmd.Context(), tokenEmail)
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), token)
		fmt.Fprintf(cmd.ErrOrStderr(), "expires %s\n", session.ExpiresAt.Format("2006-01-02 15:04:05 MST"))
		return nil
	},
}

func init() {
	tokenCmd.Flags().StringVar(&tokenEmail, "email", "", "email the session is issued for")
	_ = tokenCmd.MarkFlagRequired("email")
}
