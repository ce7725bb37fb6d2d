package cli

import (
	"time"

	"github.com/jlwbr/workplanner-sub000/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Channels    service.ChannelService
	Templates   service.TemplateService
	Rules       service.RuleService
	Plannings   service.PlanningService
	Assignments service.AssignmentService
	Import      service.ImportService

	// Now anchors relative dates such as "today". Defaults to time.Now.
	Now func() time.Time
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

// NewRootCmd creates the top-level "workplanner" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "workplanner",
		Short:         "Rule-driven daily task planning per channel",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newChannelCmd(app),
		newTemplateCmd(app),
		newRuleCmd(app),
		newGenerateCmd(app),
		newPlanningCmd(app),
		newSubTaskCmd(app),
		newAssignCmd(app),
		newUnassignCmd(app),
		newImportCmd(app),
	)

	return root
}
