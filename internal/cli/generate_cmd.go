package cli

import (
	"fmt"

	"github.com/jlwbr/workplanner-sub000/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newGenerateCmd(app *App) *cobra.Command {
	var dateStr string

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Materialize the planning of every channel for a date",
		Long: `Evaluates every template rule against the date and writes one planning
per channel. Channels that already have a planning for the date are left
as they are. A failing channel does not stop the others.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := resolveDate(app, dateStr)
			if err != nil {
				return err
			}
			result, genErr := app.Plannings.GeneratePlanning(cmd.Context(), date)
			if result != nil {
				runs := make([]formatter.ChannelRun, 0, len(result.Channels))
				for _, c := range result.Channels {
					runs = append(runs, formatter.ChannelRun{
						Name:     c.ChannelName,
						Items:    c.ItemCount,
						SubTasks: c.SubTasks,
						Skipped:  c.Skipped,
						Err:      c.Err,
					})
				}
				fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatGenerateResult(result.Date, runs))
			}
			return genErr
		},
	}

	cmd.Flags().StringVar(&dateStr, "date", "", "Target date (YYYY-MM-DD, today, tomorrow)")
	return cmd
}
