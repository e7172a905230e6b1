package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/J053Fabi0/evidencia-final-base-de-datos-frontend/pkg/config"
)

// NewRootCommand creates the escolar-admin root command. Credential flags
// override the environment configuration before the app is wired.
func NewRootCommand(cfg *config.Config, logger *zap.Logger) *cobra.Command {
	var username, password string

	var app *App

	cmd := &cobra.Command{
		Use:           "escolar-admin",
		Short:         "Administra estudiantes y carreras de la escuela",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if username != "" {
				cfg.Auth.Username = username
			}
			if password != "" {
				cfg.Auth.Password = password
			}
			var err error
			app, err = NewApp(cfg, logger)
			return err
		},
	}

	cmd.PersistentFlags().StringVar(&username, "username", "", "admin username")
	cmd.PersistentFlags().StringVar(&password, "password", "", "admin password")

	appOf := func() *App { return app }

	cmd.AddCommand(newSignInCommand(appOf))
	cmd.AddCommand(newStudentsCommand(appOf))
	cmd.AddCommand(newCareersCommand(appOf))
	cmd.AddCommand(newMetricsCommand())

	return cmd
}
