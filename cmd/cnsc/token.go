package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"expertap/internal/config"
	"expertap/internal/domain"
	"expertap/internal/service"
)

func newTokenCmd() *cobra.Command {
	var (
		subject string
		role    string
		ttl     time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a bearer token for the HTTP API",
		Long: `Sign an API token with EXPERTAP_AUTH_SECRET. Admin tokens may upload,
reparse and delete decisions; viewer tokens may fetch stored originals.

Example:
  cnsc token --subject ops@example.ro --role admin --ttl 24h`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			tok, err := service.NewAuthService(cfg.Auth).IssueToken(subject, domain.UserRole(role), ttl)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, tok.AccessToken)
			fmt.Fprintf(out, "# expires %s\n", tok.ExpiresAt.UTC().Format(time.RFC3339))
			return nil
		},
	}

	cmd.Flags().StringVar(&subject, "subject", "", "who the token is issued to (required)")
	cmd.Flags().StringVar(&role, "role", string(domain.RoleViewer), "admin or viewer")
	cmd.Flags().DurationVar(&ttl, "ttl", 0, "token lifetime (default EXPERTAP_AUTH_TOKEN_EXPIRY)")
	_ = cmd.MarkFlagRequired("subject")
	return cmd
}
