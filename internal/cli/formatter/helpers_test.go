package formatter

import (
	"regexp"
	"testing"
	"time"

	"github.com/alexanderramin/timesheet/internal/domain"
	"github.com/stretchr/testify/assert"
)

var ansiRe = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

func stripANSI(s string) string {
	return ansiRe.ReplaceAllString(s, "")
}

func TestWeekLabel(t *testing.T) {
	week := time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "Week of Jun 9, 2025", WeekLabel(week, 1))
	assert.Equal(t, "Week of Jun 9, 2025", WeekLabel(week, 0))
	assert.Equal(t, "3 weeks from Jun 9, 2025", WeekLabel(week, 3))
}

func TestModeBadge(t *testing.T) {
	assert.Contains(t, stripANSI(ModeBadge(domain.LWOPSubtracted)), "LWOP subtracted")
	assert.Contains(t, stripANSI(ModeBadge(domain.LWOPExcluded)), "PTO only")
	assert.Contains(t, stripANSI(ModeBadge("")), "PTO only")
}

func TestTruncID(t *testing.T) {
	assert.Equal(t, "abcdef12", stripANSI(TruncID("abcdef1234567890")))
	assert.Equal(t, "short", stripANSI(TruncID("short")))
}

func TestOrDash(t *testing.T) {
	assert.Equal(t, "P-100", OrDash("P-100"))
	assert.Equal(t, "--", stripANSI(OrDash("  ")))
}

func TestRenderBox_IncludesTitleAndContent(t *testing.T) {
	out := stripANSI(RenderBox("Studios", "hello"))
	assert.Contains(t, out, "STUDIOS")
	assert.Contains(t, out, "hello")
	assert.Contains(t, out, "╭")
}
