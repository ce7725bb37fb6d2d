package formatter

import (
	"fmt"

	"github.com/jlwbr/workplanner-sub000/internal/domain"
)

func FormatChannelList(channels []*domain.Channel) string {
	if len(channels) == 0 {
		return Dim("No channels.") + "\n"
	}
	headers := []string{"ID", "NAME", "ORDER", "STATUS"}
	rows := make([][]string, 0, len(channels))
	for _, c := range channels {
		status := StyleGreen.Render("active")
		if c.Removed {
			status = Dim("removed")
		}
		rows = append(rows, []string{
			TruncID(c.ID),
			Bold(c.Name),
			fmt.Sprintf("%d", c.SortOrder),
			status,
		})
	}
	return RenderBox("Channels", RenderTable(headers, rows))
}
