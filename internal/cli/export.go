package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/J053Fabi0/evidencia-final-base-de-datos-frontend/pkg/export"
)

func newStudentsExportCommand(appOf func() *App) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Exporta la lista de estudiantes",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := appOf()
			students := app.Students.Items()
			if students == nil {
				return fmt.Errorf("estudiantes no cargados")
			}
			dataset := export.StudentsDataset(students, app.Careers.Items())
			return writeExport(cmd, app, dataset, "estudiantes", format)
		},
	}

	cmd.Flags().StringVar(&format, "format", "csv", "export format (csv|pdf)")
	return cmd
}

func newCareersExportCommand(appOf func() *App) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Exporta la lista de carreras",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := appOf()
			careers := app.Careers.Items()
			if careers == nil {
				return fmt.Errorf("carreras no cargadas")
			}
			dataset := export.CareersDataset(careers)
			return writeExport(cmd, app, dataset, "carreras", format)
		},
	}

	cmd.Flags().StringVar(&format, "format", "csv", "export format (csv|pdf)")
	return cmd
}

func writeExport(cmd *cobra.Command, app *App, dataset export.Dataset, name, format string) error {
	var content []byte
	var err error

	switch format {
	case "csv":
		content, err = export.NewCSVExporter().Render(dataset)
	case "pdf":
		content, err = export.NewPDFExporter().Render(dataset, name)
	default:
		return fmt.Errorf("formato desconocido: %s", format)
	}
	if err != nil {
		return err
	}

	if err := os.MkdirAll(app.Config.Exports.Dir, 0o755); err != nil {
		return fmt.Errorf("create exports dir: %w", err)
	}
	path := filepath.Join(app.Config.Exports.Dir, name+"."+format)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return fmt.Errorf("write export: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Exportado a %s\n", path)
	return nil
}
