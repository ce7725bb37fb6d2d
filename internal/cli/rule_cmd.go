package cli

import (
	"fmt"

	"github.com/jlwbr/workplanner-sub000/internal/cli/formatter"
	"github.com/jlwbr/workplanner-sub000/internal/domain"
	"github.com/spf13/cobra"
)

func newRuleCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rule",
		Short: "Check and inspect activation rules",
	}

	cmd.AddCommand(
		newRuleCheckCmd(app),
		newRuleEvalCmd(app),
		newRuleProgramCmd(app),
		newRuleActiveCmd(app),
	)

	return cmd
}

func newRuleCheckCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "check BODY",
		Short: "Report whether a rule body is well-formed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res := app.Rules.ValidateRule(cmd.Context(), args[0])
			fmt.Fprintln(cmd.OutOrStdout(), formatter.RuleVerdict(res.Success, res.Reason))
			if !res.Success {
				return domain.ErrInvalidRule
			}
			return nil
		},
	}
}

func newRuleEvalCmd(app *App) *cobra.Command {
	var dateStr string

	cmd := &cobra.Command{
		Use:   "eval BODY",
		Short: "Report whether a rule body holds on a date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := resolveDate(app, dateStr)
			if err != nil {
				return err
			}
			holds, err := app.Rules.EvaluateRule(cmd.Context(), args[0], date)
			if err != nil {
				return err
			}
			verdict := formatter.StyleDim.Render("does not hold")
			if holds {
				verdict = formatter.StyleGreen.Render("holds")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s on %s\n", verdict, date.Format(dateLayout))
			return nil
		},
	}

	cmd.Flags().StringVar(&dateStr, "date", "", "Target date (YYYY-MM-DD, today, tomorrow)")
	return cmd
}

func newRuleProgramCmd(app *App) *cobra.Command {
	var dateStr string

	cmd := &cobra.Command{
		Use:   "program",
		Short: "Print the rule program evaluated for a date",
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := resolveDate(app, dateStr)
			if err != nil {
				return err
			}
			program, err := app.Rules.Program(cmd.Context(), date)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), program)
			return nil
		},
	}

	cmd.Flags().StringVar(&dateStr, "date", "", "Target date (YYYY-MM-DD, today, tomorrow)")
	return cmd
}

func newRuleActiveCmd(app *App) *cobra.Command {
	var dateStr string

	cmd := &cobra.Command{
		Use:   "active",
		Short: "List the templates whose rule holds on a date",
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := resolveDate(app, dateStr)
			if err != nil {
				return err
			}
			templates, err := app.Rules.ActiveTemplates(cmd.Context(), date)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatTemplateList(templates))
			return nil
		},
	}

	cmd.Flags().StringVar(&dateStr, "date", "", "Target date (YYYY-MM-DD, today, tomorrow)")
	return cmd
}
