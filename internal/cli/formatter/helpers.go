package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/timesheet/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		titleRendered := StyleHeader.Render(strings.ToUpper(title))
		inner := titleRendered + "\n\n" + content
		return boxStyle.Render(inner)
	}

	return boxStyle.Render(content)
}

// WeekLabel describes a report range, e.g. "Week of Jun 9, 2025" or
// "3 weeks from Jun 9, 2025".
func WeekLabel(week time.Time, weeks int) string {
	start := week.Format("Jan 2, 2006")
	if weeks <= 1 {
		return "Week of " + start
	}
	return fmt.Sprintf("%d weeks from %s", weeks, start)
}

// ModeBadge names the Ratio B variant in use.
func ModeBadge(mode domain.LWOPMode) string {
	if mode == domain.LWOPSubtracted {
		return StylePurple.Render("Ratio B: LWOP subtracted")
	}
	return StyleBlue.Render("Ratio B: PTO only")
}

// RatioCell renders a coloured Ratio B percentage.
func RatioCell(ratio float64) string {
	return RatioColor(ratio).Render(Percent(ratio))
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}

// OrDash returns s, or a dimmed "--" when s is blank.
func OrDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return Dim("--")
	}
	return s
}
