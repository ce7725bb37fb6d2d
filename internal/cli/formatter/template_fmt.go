package formatter

import (
	"fmt"
	"strings"

	"github.com/jlwbr/workplanner-sub000/internal/domain"
)

// FormatTemplateList renders a channel's templates in planning order.
func FormatTemplateList(templates []*domain.TaskTemplate) string {
	if len(templates) == 0 {
		return Dim("No templates.") + "\n"
	}
	headers := []string{"ID", "", "NAME", "PRI", "MORNING", "AFTERNOON", "EVENING", "RULE"}
	rows := make([][]string, 0, len(templates))
	for _, t := range templates {
		rows = append(rows, []string{
			TruncID(t.ID),
			ImportantMark(t.Important),
			Bold(t.Name),
			fmt.Sprintf("%d", t.Priority),
			Capacity(t.Morning),
			Capacity(t.Afternoon),
			Capacity(t.Evening),
			StyleBlue.Render(t.Rule),
		})
	}
	return RenderBox("Templates", RenderTable(headers, rows))
}

// FormatTemplateShow renders a template detail card.
func FormatTemplateShow(t *domain.TaskTemplate) string {
	var b strings.Builder

	title := StyleBold.Render(t.Name)
	if t.Important {
		title += "  " + StyleRed.Render("IMPORTANT")
	}
	b.WriteString(title + "\n\n")
	if t.Description != "" {
		b.WriteString("  " + t.Description + "\n\n")
	}

	field := func(label, value string) {
		fmt.Fprintf(&b, "  %s  %s\n", StyleDim.Render(fmt.Sprintf("%-9s", label)), value)
	}
	field("ID", Dim(t.ID))
	field("PRIORITY", fmt.Sprintf("%d", t.Priority))
	field("RULE", StyleBlue.Render(t.Rule))
	for _, s := range domain.Shifts {
		field(strings.ToUpper(string(s)), Capacity(t.Capacity(s)))
	}

	if len(t.SubTasks) > 0 {
		b.WriteString("\n" + Header("Sub-tasks") + "\n")
		for i, st := range t.SubTasks {
			fmt.Fprintf(&b, "  %d. %s\n", i+1, st.Name)
		}
	}
	return RenderBox("", b.String())
}
