package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/J053Fabi0/evidencia-final-base-de-datos-frontend/internal/api"
)

func newMetricsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "metrics",
		Short: "Muestra los contadores de peticiones de la sesión actual",
		RunE: func(cmd *cobra.Command, args []string) error {
			families, err := api.GatherMetrics()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, family := range families {
				for _, metric := range family.GetMetric() {
					labels := ""
					for _, label := range metric.GetLabel() {
						labels += fmt.Sprintf(" %s=%s", label.GetName(), label.GetValue())
					}
					fmt.Fprintf(out, "%s%s %v\n", family.GetName(), labels, metric.GetCounter().GetValue())
				}
			}
			return nil
		},
	}
}
