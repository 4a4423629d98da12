package formatter

import (
	"math"
	"strings"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderRatioBar renders Ratio B as a bar followed by the percentage, like
// "████████░░ 80.0%". The bar is clamped to [0, 1] and coloured by
// RatioColor; the percentage shows the true value.
func RenderRatioBar(ratio float64, width int) string {
	if width < 2 {
		width = 2
	}
	clamped := ratio
	if clamped < 0 || math.IsNaN(clamped) {
		clamped = 0
	}
	if clamped > 1 {
		clamped = 1
	}

	filled := int(clamped * float64(width))
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)
	return RatioColor(ratio).Render(bar) + " " + Percent(ratio)
}
