package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/timesheet/internal/domain"
	"github.com/charmbracelet/lipgloss"
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

// Predefined lipgloss styles.
var (
	StyleGreen      = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow     = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleYellowBold = lipgloss.NewStyle().Foreground(ColorYellow).Bold(true)
	StyleRed        = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue       = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple     = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim        = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg         = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader     = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold       = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// Ratio B bands used for colouring.
const (
	RatioTarget  = 0.80
	RatioWarning = 0.60
)

// RatioColor returns green at or above RatioTarget, yellow at or above
// RatioWarning, red below.
func RatioColor(ratio float64) lipgloss.Style {
	switch {
	case ratio >= RatioTarget:
		return StyleGreen
	case ratio >= RatioWarning:
		return StyleYellow
	default:
		return StyleRed
	}
}

// CategoryColor returns the style used for a category's hours.
func CategoryColor(c domain.Category) lipgloss.Style {
	switch c {
	case domain.CategoryDirect:
		return StyleGreen
	case domain.CategoryPTOHoliday:
		return StyleBlue
	case domain.CategoryLWOP:
		return StylePurple
	case domain.CategoryAvailable:
		return StyleYellow
	default:
		return StyleDim
	}
}

// CategoryLabel is the short display name of a category.
func CategoryLabel(c domain.Category) string {
	switch c {
	case domain.CategoryDirect:
		return "Direct"
	case domain.CategoryPTOHoliday:
		return "PTO/Hol"
	case domain.CategoryLWOP:
		return "LWOP"
	case domain.CategoryIndirect:
		return "Indirect"
	case domain.CategoryAvailable:
		return "Available"
	default:
		return string(c)
	}
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}
