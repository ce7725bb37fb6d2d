package formatter

import (
	"fmt"
	"strings"

	"github.com/jlwbr/workplanner-sub000/internal/domain"
)

const dateLayout = "2006-01-02"

// FormatPlanning renders one channel's day: items in position order with
// per-shift staffing, assignees and sub-tasks.
func FormatPlanning(channelName string, p *domain.Planning, assignments map[string][]*domain.Assignment) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s  %s  %s\n\n",
		StyleBold.Render(channelName), p.Date.Format(dateLayout), LockBadge(p.Locked), TruncID(p.ID))

	if len(p.Items) == 0 {
		b.WriteString(Dim("Nothing planned.") + "\n")
		return RenderBox("Planning", b.String())
	}

	headers := []string{"ITEM", "", "TASK", "MORNING", "AFTERNOON", "EVENING"}
	rows := make([][]string, 0, len(p.Items))
	for _, item := range p.Items {
		counts := map[domain.Shift]int{}
		for _, a := range assignments[item.ID] {
			counts[a.Shift]++
		}
		rows = append(rows, []string{
			TruncID(item.ID),
			ImportantMark(item.Important),
			Bold(item.Name),
			Slot(item.Morning, counts[domain.ShiftMorning]),
			Slot(item.Afternoon, counts[domain.ShiftAfternoon]),
			Slot(item.Evening, counts[domain.ShiftEvening]),
		})
	}
	b.WriteString(RenderTable(headers, rows))

	for _, item := range p.Items {
		if len(item.SubTasks) == 0 && len(assignments[item.ID]) == 0 {
			continue
		}
		b.WriteString("\n" + Bold(item.Name) + "\n")
		for _, a := range assignments[item.ID] {
			fmt.Fprintf(&b, "  %s %s\n", ShiftStyle(a.Shift).Render(fmt.Sprintf("%-9s", a.Shift)), a.UserID)
		}
		for _, st := range item.SubTasks {
			box := "[ ]"
			if st.Done {
				box = StyleGreen.Render("[x]")
			}
			fmt.Fprintf(&b, "  %s %s %s\n", box, st.Name, TruncID(st.ID))
		}
	}
	return RenderBox("Planning", b.String())
}

// FormatPlanningList renders the plannings of one date. names maps channel
// IDs to display names.
func FormatPlanningList(date string, plannings []*domain.Planning, names map[string]string) string {
	if len(plannings) == 0 {
		return Dim("No plannings for "+date+".") + "\n"
	}
	headers := []string{"ID", "CHANNEL", "STATUS"}
	rows := make([][]string, 0, len(plannings))
	for _, p := range plannings {
		name := names[p.ChannelID]
		if name == "" {
			name = p.ChannelID
		}
		rows = append(rows, []string{TruncID(p.ID), Bold(name), LockBadge(p.Locked)})
	}
	return RenderBox("Plannings "+date, RenderTable(headers, rows))
}
