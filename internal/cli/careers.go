package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCareersCommand(appOf func() *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "careers",
		Short: "Lista y administra carreras",
	}

	cmd.AddCommand(newCareersListCommand(appOf))
	cmd.AddCommand(newCareersCreateCommand(appOf))
	cmd.AddCommand(newCareersUpdateCommand(appOf))
	cmd.AddCommand(newCareersDeleteCommand(appOf))
	cmd.AddCommand(newCareersExportCommand(appOf))

	return cmd
}

func newCareersListCommand(appOf func() *App) *cobra.Command {
	var page int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Lista las carreras",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := appOf()
			out := cmd.OutOrStdout()

			careers := app.Careers.Items()
			if careers == nil {
				app.reportOutcome(out, "")
				return fmt.Errorf("carreras no cargadas")
			}

			internalPage := page - 1
			if internalPage < 0 {
				internalPage = 0
			}
			fmt.Fprintf(out, "%-26s %-30s %6s %10s %12s\n", "ID", "Nombre", "Total", "Inscritos", "No inscritos")
			for _, c := range paginate(careers, internalPage) {
				fmt.Fprintf(out, "%-26s %-30s %6d %10d %12d\n",
					c.ID, c.Name, c.TotalStudents, c.ActiveStudents, c.InactiveStudents)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "page number (1-based)")
	return cmd
}

func newCareersCreateCommand(appOf func() *App) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Crea una carrera",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := appOf()
			out := cmd.OutOrStdout()

			f := app.CareerForm("")
			f.SetName(name)

			if f.Submit(cmd.Context()) {
				app.reportOutcome(out, "")
				fmt.Fprintf(out, "Ruta: %s\n", app.Navigator.Current())
				return nil
			}

			if msg, show := f.FieldError("name"); show {
				fmt.Fprintf(out, "name: %s\n", msg)
			}
			app.reportOutcome(out, f.FormError())
			return fmt.Errorf("no se pudo crear")
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "career name")
	return cmd
}

func newCareersUpdateCommand(appOf func() *App) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Edita una carrera",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := appOf()
			out := cmd.OutOrStdout()

			f := app.CareerForm(args[0])
			if f.Loading() {
				return fmt.Errorf("carreras no cargadas")
			}
			if f.NotFound() {
				return fmt.Errorf("carrera no encontrada")
			}

			if cmd.Flags().Changed("name") {
				f.SetName(name)
			}

			if !f.CanSubmit() {
				fmt.Fprintln(out, "Sin cambios que guardar.")
				return nil
			}

			if f.Submit(cmd.Context()) {
				app.reportOutcome(out, "")
				return nil
			}

			if msg, show := f.FieldError("name"); show {
				fmt.Fprintf(out, "name: %s\n", msg)
			}
			app.reportOutcome(out, f.FormError())
			return fmt.Errorf("no se pudo guardar")
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "career name")
	return cmd
}

func newCareersDeleteCommand(appOf func() *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Elimina una carrera",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := appOf()
			out := cmd.OutOrStdout()

			f := app.CareerForm(args[0])
			if f.Delete(cmd.Context()) {
				app.reportOutcome(out, "")
				return nil
			}
			app.reportOutcome(out, f.FormError())
			return fmt.Errorf("no se pudo eliminar")
		},
	}
}
