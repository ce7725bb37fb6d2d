package formatter

import (
	"fmt"
	"strings"
	"time"
)

// ChannelRun is the per-channel line of a generation summary.
type ChannelRun struct {
	Name     string
	Items    int
	SubTasks int
	Skipped  bool
	Err      error
}

func FormatGenerateResult(date time.Time, runs []ChannelRun) string {
	var b strings.Builder
	if len(runs) == 0 {
		b.WriteString(Dim("No task templates defined; nothing generated.") + "\n")
		return RenderBox("Generated "+date.Format(dateLayout), b.String())
	}

	headers := []string{"CHANNEL", "ITEMS", "SUB-TASKS", "RESULT"}
	rows := make([][]string, 0, len(runs))
	for _, r := range runs {
		var result string
		switch {
		case r.Err != nil:
			result = StyleRed.Render("✖ failed")
		case r.Skipped:
			result = Dim("skipped (exists)")
		default:
			result = StyleGreen.Render("✔ created")
		}
		rows = append(rows, []string{
			Bold(r.Name),
			fmt.Sprintf("%d", r.Items),
			fmt.Sprintf("%d", r.SubTasks),
			result,
		})
	}
	b.WriteString(RenderTable(headers, rows))
	return RenderBox("Generated "+date.Format(dateLayout), b.String())
}
