package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jlwbr/workplanner-sub000/internal/domain"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// ShiftStyle gives each shift its own color in tables.
func ShiftStyle(s domain.Shift) lipgloss.Style {
	switch s {
	case domain.ShiftMorning:
		return StyleYellow
	case domain.ShiftAfternoon:
		return StyleBlue
	case domain.ShiftEvening:
		return StylePurple
	default:
		return StyleDim
	}
}

// LockBadge renders a planning's lock state.
func LockBadge(locked bool) string {
	if locked {
		return StyleRed.Render("■ Locked")
	}
	return StyleGreen.Render("□ Open")
}

// RuleVerdict renders the outcome of a rule check.
func RuleVerdict(valid bool, reason string) string {
	if valid {
		return StyleGreen.Render("✔ valid")
	}
	return StyleRed.Render("✖ invalid") + Dim(" "+reason)
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	if Plain {
		return upper
	}
	line := strings.Repeat("─", len(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

func Dim(text string) string {
	return StyleDim.Render(text)
}

func Bold(text string) string {
	return StyleBold.Render(text)
}
