package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jlwbr/workplanner-sub000/internal/cli/formatter"
	"github.com/jlwbr/workplanner-sub000/internal/domain"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func newTemplateCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "template",
		Short: "Manage task templates",
	}

	cmd.AddCommand(
		newTemplateAddCmd(app),
		newTemplateListCmd(app),
		newTemplateShowCmd(app),
		newTemplateDeleteCmd(app),
	)

	return cmd
}

// parseCapacity reads a shift flag: "" leaves the shift unstaffed, "N-M"
// bounds it, "N+" sets only a minimum and "M" caps it at M.
func parseCapacity(s string) (domain.ShiftCapacity, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return domain.ShiftCapacity{}, nil
	}
	bad := fmt.Errorf("invalid capacity %q (want N-M, N+ or M)", s)

	if rest, ok := strings.CutSuffix(s, "+"); ok {
		n, err := strconv.Atoi(rest)
		if err != nil || n < 0 {
			return domain.ShiftCapacity{}, bad
		}
		return domain.ShiftCapacity{Enabled: true, Min: n}, nil
	}
	if lo, hi, ok := strings.Cut(s, "-"); ok {
		minN, err1 := strconv.Atoi(lo)
		maxN, err2 := strconv.Atoi(hi)
		if err1 != nil || err2 != nil || minN < 0 || maxN < 0 {
			return domain.ShiftCapacity{}, bad
		}
		return domain.ShiftCapacity{Enabled: true, Min: minN, Max: maxN}, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return domain.ShiftCapacity{}, bad
	}
	return domain.ShiftCapacity{Enabled: true, Max: n}, nil
}

// capacityValue lets a shift capacity be set straight from a flag.
type capacityValue struct {
	dst *domain.ShiftCapacity
	raw string
}

var _ pflag.Value = (*capacityValue)(nil)

func (v *capacityValue) String() string { return v.raw }

func (v *capacityValue) Set(s string) error {
	c, err := parseCapacity(s)
	if err != nil {
		return err
	}
	*v.dst, v.raw = c, s
	return nil
}

func (v *capacityValue) Type() string { return "capacity" }

func newTemplateAddCmd(app *App) *cobra.Command {
	var (
		channel, name, description, rule string
		priority                         int
		important                        bool
		subTasks                         []string
		t                                domain.TaskTemplate
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a task template",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ch, err := resolveChannel(ctx, app, channel)
			if err != nil {
				return err
			}

			t.ChannelID = ch.ID
			t.Name = name
			t.Description = description
			t.Priority = priority
			t.Rule = rule
			t.Important = important
			for _, st := range subTasks {
				t.SubTasks = append(t.SubTasks, domain.SubTaskTemplate{Name: st})
			}

			if err := app.Templates.Create(ctx, &t); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created template %s %s in %s\n", t.Name, formatter.TruncID(t.ID), ch.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&channel, "channel", "", "Channel name or ID")
	cmd.Flags().StringVar(&name, "name", "", "Template name")
	cmd.Flags().StringVar(&description, "description", "", "Longer description")
	cmd.Flags().StringVar(&rule, "rule", "", "Activation rule body, e.g. 'today(/monday)'")
	cmd.Flags().IntVar(&priority, "priority", 0, "Planning order (lower first)")
	cmd.Flags().BoolVar(&important, "important", false, "Flag the task as important")
	cmd.Flags().Var(&capacityValue{dst: &t.Morning}, "morning", "Morning capacity: N-M, N+ or M")
	cmd.Flags().Var(&capacityValue{dst: &t.Afternoon}, "afternoon", "Afternoon capacity: N-M, N+ or M")
	cmd.Flags().Var(&capacityValue{dst: &t.Evening}, "evening", "Evening capacity: N-M, N+ or M")
	cmd.Flags().StringArrayVar(&subTasks, "subtask", nil, "Sub-task name (repeatable)")
	_ = cmd.MarkFlagRequired("channel")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("rule")
	return cmd
}

func newTemplateListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list CHANNEL",
		Short: "List a channel's templates",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ch, err := resolveChannel(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			templates, err := app.Templates.ListByChannel(cmd.Context(), ch.ID)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatTemplateList(templates))
			return nil
		},
	}
}

func newTemplateShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show TEMPLATE",
		Short: "Show template details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveTemplateID(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			t, err := app.Templates.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatTemplateShow(t))
			return nil
		},
	}
}

func newTemplateDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete TEMPLATE",
		Short: "Delete a template; existing plannings keep their items",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveTemplateID(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			if err := app.Templates.Delete(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted template %s\n", formatter.TruncID(id))
			return nil
		},
	}
}
