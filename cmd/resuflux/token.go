package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/jonathan/resuflux/internal/config"
	"github.com/jonathan/resuflux/internal/server"
	"github.com/spf13/cobra"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue an API token",
	Long:  "Sign a JWT for an API client with JWT_SECRET. Without --subject a new client ID is generated.",
	RunE:  runToken,
}

var tokenSubject string

func init() {
	tokenCmd.Flags().StringVarP(&tokenSubject, "subject", "s", "", "Client ID (UUID) the token is issued to")
	rootCmd.AddCommand(tokenCmd)
}

func runToken(cmd *cobra.Command, _ []string) error {
	clientID := uuid.New()
	if tokenSubject != "" {
		parsed, err := uuid.Parse(tokenSubject)
		if err != nil {
			return fmt.Errorf("invalid --subject: %w", err)
		}
		clientID = parsed
	}

	jwtCfg, err := config.NewJWTConfig()
	if err != nil {
		return err
	}
	token, err := server.NewJWTService(jwtCfg).GenerateToken(clientID)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "Client ID: %s (expires in %dh)\n", clientID, jwtCfg.ExpirationHours)
	fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}
