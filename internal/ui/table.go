package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// cell is a single table value and the style it renders with
type cell struct {
	text  string
	style lipgloss.Style
}

func plain(text string) cell { return cell{text: text, style: MutedStyle} }

// status renders text behind an indicator, e.g. "● healthy"
func status(indicator, text string, style lipgloss.Style) cell {
	return cell{text: indicator + " " + text, style: style}
}

// boxTable renders rows inside rounded box borders. Widths are display
// columns excluding the one-space padding either side.
type boxTable struct {
	headers []string
	widths  []int
	rows    [][]cell
}

func newBoxTable(headers []string, widths []int) *boxTable {
	return &boxTable{headers: headers, widths: widths}
}

func (t *boxTable) add(row ...cell) {
	t.rows = append(t.rows, row)
}

func (t *boxTable) border(left, join, right string) string {
	var sb strings.Builder
	sb.WriteString(BorderStyle.Render(left))
	for i, w := range t.widths {
		sb.WriteString(BorderStyle.Render(strings.Repeat(Horizontal, w+2)))
		if i < len(t.widths)-1 {
			sb.WriteString(BorderStyle.Render(join))
		}
	}
	sb.WriteString(BorderStyle.Render(right))
	sb.WriteString("\n")
	return sb.String()
}

func (t *boxTable) String() string {
	var sb strings.Builder

	sb.WriteString(t.border(TopLeft, TopT, TopRight))

	sb.WriteString(BorderStyle.Render(Vertical))
	for i, h := range t.headers {
		sb.WriteString(HeaderStyle.Render(" " + padRight(h, t.widths[i]) + " "))
		sb.WriteString(BorderStyle.Render(Vertical))
	}
	sb.WriteString("\n")

	sb.WriteString(t.border(LeftT, Cross, RightT))

	for _, row := range t.rows {
		sb.WriteString(BorderStyle.Render(Vertical))
		for i, w := range t.widths {
			c := plain("")
			if i < len(row) {
				c = row[i]
			}
			sb.WriteString(c.style.Render(" " + padRight(c.text, w) + " "))
			sb.WriteString(BorderStyle.Render(Vertical))
		}
		sb.WriteString("\n")
	}

	sb.WriteString(t.border(BottomLeft, BottomT, BottomRight))
	return sb.String()
}

// summary joins non-zero counts in the given order, e.g. "3 targets (2 healthy, 1 draining)"
func summary(total int, noun string, order []string, counts map[string]int, styles map[string]lipgloss.Style) string {
	var parts []string
	for _, key := range order {
		if c := counts[key]; c > 0 {
			style, ok := styles[key]
			if !ok {
				style = MutedStyle
			}
			parts = append(parts, style.Render(fmt.Sprintf("%d %s", c, key)))
		}
	}

	s := fmt.Sprintf("  %d %s", total, noun)
	if len(parts) > 0 {
		s += " (" + strings.Join(parts, ", ") + ")"
	}
	return s + "\n"
}

func write(w io.Writer, parts ...string) {
	for _, p := range parts {
		fmt.Fprint(w, p)
	}
}
