package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jlwbr/workplanner-sub000/internal/domain"
)

// Plain drops borders and rules for output that is piped rather than shown
// on a terminal. Colors already degrade on their own in that case.
var Plain = false

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	if Plain {
		if title != "" {
			return strings.ToUpper(title) + "\n\n" + content
		}
		return content
	}

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		titleRendered := StyleHeader.Render(strings.ToUpper(title))
		return boxStyle.Render(titleRendered + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}

// Capacity renders a template's bounds for one shift, "-" when the shift
// is not staffed.
func Capacity(c domain.ShiftCapacity) string {
	if !c.Enabled {
		return Dim("-")
	}
	if c.Max == 0 {
		return fmt.Sprintf("%d+", c.Min)
	}
	return fmt.Sprintf("%d-%d", c.Min, c.Max)
}

// Slot renders an item's staffing for one shift as assigned/max.
func Slot(s domain.ShiftSlot, assigned int) string {
	if !s.Enabled {
		return Dim("-")
	}
	if s.Max == 0 {
		return fmt.Sprintf("%d/∞", assigned)
	}
	text := fmt.Sprintf("%d/%d", assigned, s.Max)
	if assigned >= s.Max {
		return StyleGreen.Render(text)
	}
	return text
}

// ImportantMark flags important work.
func ImportantMark(important bool) string {
	if important {
		return StyleRed.Render("!")
	}
	return ""
}
