package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/J053Fabi0/evidencia-final-base-de-datos-frontend/internal/flow"
)

func newSignInCommand(appOf func() *App) *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "signin",
		Short: "Comprueba las credenciales e inicia sesión",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := appOf()
			signIn := flow.NewSignInForm(flow.SignInFormDeps{
				Client:      app.Client,
				Session:     app.Session,
				ErrorDialog: app.ErrorDialog,
				Logger:      app.Logger,
			})

			values := signIn.Values()
			if username != "" {
				values.Username = username
			}
			if password != "" {
				values.Password = password
			}
			signIn.SetValues(values)

			out := cmd.OutOrStdout()
			if signIn.Submit(cmd.Context()) {
				fmt.Fprintf(out, "Sesión iniciada como %s\n", values.Username)
				return nil
			}

			for _, field := range []string{"username", "password"} {
				if msg, show := signIn.FieldError(field); show {
					fmt.Fprintf(out, "%s: %s\n", field, msg)
				}
			}
			app.reportOutcome(out, signIn.FormError())
			return fmt.Errorf("no se pudo iniciar sesión")
		},
	}

	cmd.Flags().StringVar(&username, "user", "", "username to check")
	cmd.Flags().StringVar(&password, "pass", "", "password to check")

	return cmd
}
