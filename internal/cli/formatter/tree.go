package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// TreeItem is one line of a hierarchy display.
type TreeItem struct {
	Title  string
	Level  int
	IsLast bool
	Detail string // right-aligned, already styled
}

const (
	treeBranch = "├─ "
	treeCorner = "└─ "
	treePipe   = "│  "
)

// RenderTree renders items as an indented tree with box-drawing connectors
// and right-aligned details.
func RenderTree(items []TreeItem) string {
	if len(items) == 0 {
		return ""
	}

	contents := make([]string, len(items))
	maxWidth := 0
	// lastAt[level] tells whether the most recent item at that level was
	// the last of its siblings, which decides pipe vs blank continuation.
	lastAt := make(map[int]bool)
	for idx, item := range items {
		var prefix string
		if item.Level > 0 {
			for l := 1; l < item.Level; l++ {
				if lastAt[l] {
					prefix += "   "
				} else {
					prefix += treePipe
				}
			}
			if item.IsLast {
				prefix += treeCorner
			} else {
				prefix += treeBranch
			}
		}
		lastAt[item.Level] = item.IsLast

		contents[idx] = prefix + item.Title
		if w := lipgloss.Width(contents[idx]); w > maxWidth {
			maxWidth = w
		}
	}

	var b strings.Builder
	for idx, item := range items {
		b.WriteString(contents[idx])
		if item.Detail != "" {
			pad := maxWidth - lipgloss.Width(contents[idx])
			b.WriteString(strings.Repeat(" ", pad) + "  " + item.Detail)
		}
		b.WriteString("\n")
	}
	return b.String()
}
