package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/jlwbr/workplanner-sub000/internal/cli/formatter"
	"github.com/jlwbr/workplanner-sub000/internal/domain"
	"github.com/spf13/cobra"
)

func newPlanningCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "planning",
		Short: "Inspect and lock generated plannings",
	}

	cmd.AddCommand(
		newPlanningShowCmd(app),
		newPlanningListCmd(app),
		newPlanningLockCmd(app, true),
		newPlanningLockCmd(app, false),
	)

	return cmd
}

func dateFlag(cmd *cobra.Command, dst *string) {
	cmd.Flags().StringVar(dst, "date", "", "Target date (YYYY-MM-DD, today, tomorrow)")
}

func channelPlanning(ctx context.Context, app *App, channel string, date time.Time) (*domain.Channel, *domain.Planning, error) {
	ch, err := resolveChannel(ctx, app, channel)
	if err != nil {
		return nil, nil, err
	}
	p, err := app.Plannings.GetPlanning(ctx, ch.ID, date)
	if err != nil {
		return nil, nil, fmt.Errorf("%s on %s: %w", ch.Name, date.Format(dateLayout), err)
	}
	return ch, p, nil
}

func newPlanningShowCmd(app *App) *cobra.Command {
	var dateStr string

	cmd := &cobra.Command{
		Use:   "show CHANNEL",
		Short: "Show a channel's planning with assignments and sub-tasks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			date, err := resolveDate(app, dateStr)
			if err != nil {
				return err
			}
			ch, p, err := channelPlanning(ctx, app, args[0], date)
			if err != nil {
				return err
			}
			assignments := make(map[string][]*domain.Assignment, len(p.Items))
			for _, item := range p.Items {
				list, err := app.Assignments.ListByItem(ctx, item.ID)
				if err != nil {
					return err
				}
				assignments[item.ID] = list
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatPlanning(ch.Name, p, assignments))
			return nil
		},
	}

	dateFlag(cmd, &dateStr)
	return cmd
}

func newPlanningListCmd(app *App) *cobra.Command {
	var dateStr string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the plannings of a date",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			date, err := resolveDate(app, dateStr)
			if err != nil {
				return err
			}
			plannings, err := app.Plannings.ListPlannings(ctx, date)
			if err != nil {
				return err
			}
			channels, err := app.Channels.List(ctx, true)
			if err != nil {
				return err
			}
			names := make(map[string]string, len(channels))
			for _, c := range channels {
				names[c.ID] = c.Name
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatPlanningList(date.Format(dateLayout), plannings, names))
			return nil
		},
	}

	dateFlag(cmd, &dateStr)
	return cmd
}

func newPlanningLockCmd(app *App, lock bool) *cobra.Command {
	var dateStr string
	use, short, verb := "lock CHANNEL", "Freeze a planning against edits", "Locked"
	if !lock {
		use, short, verb = "unlock CHANNEL", "Allow edits to a planning again", "Unlocked"
	}

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			date, err := resolveDate(app, dateStr)
			if err != nil {
				return err
			}
			ch, p, err := channelPlanning(ctx, app, args[0], date)
			if err != nil {
				return err
			}
			if lock {
				err = app.Plannings.LockPlanning(ctx, p.ID)
			} else {
				err = app.Plannings.UnlockPlanning(ctx, p.ID)
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s on %s\n", verb, ch.Name, date.Format(dateLayout))
			return nil
		},
	}

	dateFlag(cmd, &dateStr)
	return cmd
}

func newSubTaskCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "subtask",
		Short: "Tick off sub-tasks of planned items",
	}

	var dateStr string
	var undo bool
	done := &cobra.Command{
		Use:   "done SUBTASK",
		Short: "Mark a sub-task done",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			date, err := resolveDate(app, dateStr)
			if err != nil {
				return err
			}
			id, err := resolveSubTaskID(ctx, app, date, args[0])
			if err != nil {
				return err
			}
			if err := app.Plannings.SetSubTaskDone(ctx, id, !undo); err != nil {
				return err
			}
			state := "done"
			if undo {
				state = "open"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Sub-task %s marked %s\n", formatter.TruncID(id), state)
			return nil
		},
	}
	dateFlag(done, &dateStr)
	done.Flags().BoolVar(&undo, "undo", false, "Mark the sub-task open again")

	cmd.AddCommand(done)
	return cmd
}

func newAssignCmd(app *App) *cobra.Command {
	return newAssignmentCmd(app, true)
}

func newUnassignCmd(app *App) *cobra.Command {
	return newAssignmentCmd(app, false)
}

func newAssignmentCmd(app *App, assign bool) *cobra.Command {
	var dateStr string
	use, short := "assign ITEM SHIFT USER", "Put a user on a planned item's shift"
	if !assign {
		use, short = "unassign ITEM SHIFT USER", "Take a user off a planned item's shift"
	}

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			date, err := resolveDate(app, dateStr)
			if err != nil {
				return err
			}
			shift, err := domain.ParseShift(args[1])
			if err != nil {
				return err
			}
			itemID, err := resolveItemID(ctx, app, date, args[0])
			if err != nil {
				return err
			}
			if assign {
				err = app.Assignments.Assign(ctx, itemID, shift, args[2])
			} else {
				err = app.Assignments.Unassign(ctx, itemID, shift, args[2])
			}
			if err != nil {
				return err
			}
			verb := "Assigned"
			if !assign {
				verb = "Unassigned"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s %s\n", verb, args[2], shift, formatter.TruncID(itemID))
			return nil
		},
	}

	dateFlag(cmd, &dateStr)
	return cmd
}
