package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/J053Fabi0/evidencia-final-base-de-datos-frontend/internal/models"
	"github.com/J053Fabi0/evidencia-final-base-de-datos-frontend/internal/store"
)

func newStudentsCommand(appOf func() *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "students",
		Short: "Lista y administra estudiantes",
	}

	cmd.AddCommand(newStudentsListCommand(appOf))
	cmd.AddCommand(newStudentsGetCommand(appOf))
	cmd.AddCommand(newStudentsCreateCommand(appOf))
	cmd.AddCommand(newStudentsUpdateCommand(appOf))
	cmd.AddCommand(newStudentsDeleteCommand(appOf))
	cmd.AddCommand(newStudentsExportCommand(appOf))

	return cmd
}

func newStudentsListCommand(appOf func() *App) *cobra.Command {
	var page int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Lista los estudiantes",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := appOf()
			out := cmd.OutOrStdout()

			students := app.Students.Items()
			if students == nil {
				app.reportOutcome(out, "")
				return fmt.Errorf("estudiantes no cargados")
			}

			internalPage := page - 1
			if internalPage < 0 {
				internalPage = 0
			}
			for _, s := range paginate(students, internalPage) {
				career := store.CareerName(app.Careers, s.Career)
				fmt.Fprintf(out, "%s\t%s %s\t%s\t%s\n", s.ID, s.Name, s.SecondName, s.Status, career)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "page number (1-based)")
	return cmd
}

func newStudentsGetCommand(appOf func() *App) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Muestra un estudiante",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := appOf()
			out := cmd.OutOrStdout()

			student, ok := store.FindStudent(app.Students, args[0])
			if !ok {
				return fmt.Errorf("estudiante no encontrado")
			}

			fmt.Fprintf(out, "Nombre:    %s %s\n", student.Name, student.SecondName)
			fmt.Fprintf(out, "Estado:    %s\n", student.Status)
			fmt.Fprintf(out, "Carrera:   %s\n", store.CareerName(app.Careers, student.Career))
			fmt.Fprintf(out, "Nacimiento: %s\n", student.BirthDate.Format("2006-01-02"))
			if student.Email != "" {
				fmt.Fprintf(out, "Correo:    %s\n", student.Email)
			}
			if student.Phone != "" {
				fmt.Fprintf(out, "Teléfono:  %s\n", student.Phone)
			}
			if student.Direction != "" {
				fmt.Fprintf(out, "Dirección: %s\n", student.Direction)
			}
			return nil
		},
	}
}

type studentFlags struct {
	name       string
	secondName string
	status     string
	career     string
	birthDate  string
	email      string
	phone      string
	direction  string
}

func (f *studentFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "", "first name")
	cmd.Flags().StringVar(&f.secondName, "second-name", "", "last names")
	cmd.Flags().StringVar(&f.status, "status", "", "enrollment status")
	cmd.Flags().StringVar(&f.career, "career", "", "career id")
	cmd.Flags().StringVar(&f.birthDate, "birth-date", "", "birth date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.email, "email", "", "email address")
	cmd.Flags().StringVar(&f.phone, "phone", "", "phone number")
	cmd.Flags().StringVar(&f.direction, "direction", "", "home address")
}

func newStudentsCreateCommand(appOf func() *App) *cobra.Command {
	flags := &studentFlags{}

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Registra un estudiante",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := appOf()
			out := cmd.OutOrStdout()

			f := app.StudentForm("")
			values := f.Values()
			values.Name = flags.name
			values.SecondName = flags.secondName
			values.Status = models.Status(flags.status)
			values.Career = flags.career
			values.Email = flags.email
			values.Phone = flags.phone
			values.Direction = flags.direction
			if flags.birthDate != "" {
				birthDate, err := time.Parse("2006-01-02", flags.birthDate)
				if err != nil {
					return fmt.Errorf("parse birth date: %w", err)
				}
				values.BirthDate = birthDate
			}
			f.SetValues(values)

			if f.Submit(cmd.Context()) {
				app.reportOutcome(out, "")
				fmt.Fprintf(out, "Ruta: %s\n", app.Navigator.Current())
				return nil
			}

			printStudentFieldErrors(cmd, f)
			app.reportOutcome(out, f.FormError())
			return fmt.Errorf("no se pudo registrar")
		},
	}

	flags.register(cmd)
	return cmd
}

func newStudentsUpdateCommand(appOf func() *App) *cobra.Command {
	flags := &studentFlags{}

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Edita un estudiante; solo los campos cambiados viajan en el PATCH",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := appOf()
			out := cmd.OutOrStdout()

			f := app.StudentForm(args[0])
			if f.Loading() {
				return fmt.Errorf("colecciones no cargadas")
			}
			if f.NotFound() {
				return fmt.Errorf("estudiante no encontrado")
			}

			values := f.Values()
			if cmd.Flags().Changed("name") {
				values.Name = flags.name
			}
			if cmd.Flags().Changed("second-name") {
				values.SecondName = flags.secondName
			}
			if cmd.Flags().Changed("status") {
				values.Status = models.Status(flags.status)
			}
			if cmd.Flags().Changed("career") {
				values.Career = flags.career
			}
			if cmd.Flags().Changed("email") {
				values.Email = flags.email
			}
			if cmd.Flags().Changed("phone") {
				values.Phone = flags.phone
			}
			if cmd.Flags().Changed("direction") {
				values.Direction = flags.direction
			}
			if cmd.Flags().Changed("birth-date") {
				birthDate, err := time.Parse("2006-01-02", flags.birthDate)
				if err != nil {
					return fmt.Errorf("parse birth date: %w", err)
				}
				values.BirthDate = birthDate
			}
			f.SetValues(values)

			if !f.CanSubmit() {
				fmt.Fprintln(out, "Sin cambios que guardar.")
				return nil
			}

			if f.Submit(cmd.Context()) {
				app.reportOutcome(out, "")
				return nil
			}

			printStudentFieldErrors(cmd, f)
			app.reportOutcome(out, f.FormError())
			return fmt.Errorf("no se pudo guardar")
		},
	}

	flags.register(cmd)
	return cmd
}

func newStudentsDeleteCommand(appOf func() *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Elimina un estudiante",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := appOf()
			out := cmd.OutOrStdout()

			f := app.StudentForm(args[0])
			if f.Delete(cmd.Context()) {
				app.reportOutcome(out, "")
				return nil
			}
			app.reportOutcome(out, f.FormError())
			return fmt.Errorf("no se pudo eliminar")
		},
	}
}

func printStudentFieldErrors(cmd *cobra.Command, f interface {
	FieldError(string) (string, bool)
}) {
	fields := []string{"name", "secondName", "status", "career", "birthDate", "email", "phone", "direction"}
	for _, field := range fields {
		if msg, show := f.FieldError(field); show {
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", field, msg)
		}
	}
}
