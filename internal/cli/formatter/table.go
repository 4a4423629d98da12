package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type tableConfig struct {
	rightAlign map[int]bool
	footer     []string
}

// TableOption adjusts RenderTable output.
type TableOption func(*tableConfig)

// AlignRight right-aligns the given zero-based columns, for numbers.
func AlignRight(cols ...int) TableOption {
	return func(c *tableConfig) {
		for _, col := range cols {
			c.rightAlign[col] = true
		}
	}
}

// WithFooter appends a totals row below a second separator line.
func WithFooter(row []string) TableOption {
	return func(c *tableConfig) {
		c.footer = row
	}
}

// RenderTable renders an aligned table with a header separator line.
// Columns are padded to the widest visible cell, ignoring ANSI escapes.
func RenderTable(headers []string, rows [][]string, opts ...TableOption) string {
	if len(headers) == 0 {
		return ""
	}
	cfg := tableConfig{rightAlign: make(map[int]bool)}
	for _, opt := range opts {
		opt(&cfg)
	}

	cols := len(headers)
	widths := make([]int, cols)
	measure := func(row []string) {
		for i := 0; i < cols && i < len(row); i++ {
			if w := lipgloss.Width(row[i]); w > widths[i] {
				widths[i] = w
			}
		}
	}
	measure(headers)
	for _, row := range rows {
		measure(row)
	}
	if cfg.footer != nil {
		measure(cfg.footer)
	}

	const colGap = 2
	var b strings.Builder

	writeRow := func(row []string, style func(string) string) {
		for i := 0; i < cols; i++ {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			pad := widths[i] - lipgloss.Width(cell)
			if pad < 0 {
				pad = 0
			}
			if style != nil {
				cell = style(cell)
			}
			if cfg.rightAlign[i] {
				b.WriteString(strings.Repeat(" ", pad) + cell)
			} else {
				b.WriteString(cell)
				if i < cols-1 {
					b.WriteString(strings.Repeat(" ", pad))
				}
			}
			if i < cols-1 {
				b.WriteString(strings.Repeat(" ", colGap))
			}
		}
		b.WriteString("\n")
	}
	separator := func() {
		for i, w := range widths {
			b.WriteString(StyleDim.Render(strings.Repeat("─", w)))
			if i < cols-1 {
				b.WriteString(strings.Repeat(" ", colGap))
			}
		}
		b.WriteString("\n")
	}

	writeRow(headers, func(s string) string { return StyleHeader.Render(s) })
	separator()
	for _, row := range rows {
		writeRow(row, nil)
	}
	if cfg.footer != nil {
		separator()
		writeRow(cfg.footer, Bold)
	}
	return b.String()
}
