package cli

import (
	"fmt"

	"github.com/jlwbr/workplanner-sub000/internal/cli/formatter"
	"github.com/jlwbr/workplanner-sub000/internal/domain"
	"github.com/spf13/cobra"
)

func newChannelCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "channel",
		Short: "Manage channels",
	}

	cmd.AddCommand(
		newChannelAddCmd(app),
		newChannelListCmd(app),
		newChannelRemoveCmd(app),
		newChannelRestoreCmd(app),
	)

	return cmd
}

func newChannelAddCmd(app *App) *cobra.Command {
	var order int

	cmd := &cobra.Command{
		Use:   "add NAME",
		Short: "Create a channel",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := &domain.Channel{Name: args[0], SortOrder: order}
			if err := app.Channels.Create(cmd.Context(), c); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created channel %s %s\n", c.Name, formatter.TruncID(c.ID))
			return nil
		},
	}

	cmd.Flags().IntVar(&order, "order", 0, "Display and generation order (lower first)")
	return cmd
}

func newChannelListCmd(app *App) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List channels",
		RunE: func(cmd *cobra.Command, args []string) error {
			channels, err := app.Channels.List(cmd.Context(), all)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatChannelList(channels))
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Include removed channels")
	return cmd
}

func newChannelRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove CHANNEL",
		Short: "Remove a channel from future plannings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := resolveChannel(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			if err := app.Channels.Remove(cmd.Context(), c.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed channel %s\n", c.Name)
			return nil
		},
	}
}

func newChannelRestoreCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "restore CHANNEL",
		Short: "Restore a removed channel",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := resolveChannel(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			if err := app.Channels.Restore(cmd.Context(), c.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Restored channel %s\n", c.Name)
			return nil
		},
	}
}
