package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/noah-isme/enrollplus-admin/internal/listing"
)

const cellGap = 2

// RenderTable lays out rows under headers with padded columns. Cells in the
// columns listed in badges are coloured by FormatStatus.
func RenderTable(headers []string, rows [][]string, badges ...int) string {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i := 0; i < len(row) && i < len(widths); i++ {
			widths[i] = max(widths[i], lipgloss.Width(row[i]))
		}
	}

	badge := make(map[int]bool, len(badges))
	for _, b := range badges {
		badge[b] = true
	}

	var b strings.Builder
	for i, h := range headers {
		b.WriteString(pad(TableHeaderStyle.Render(h), widths[i], i == len(headers)-1))
	}
	b.WriteByte('\n')
	for i := range headers {
		b.WriteString(pad(SubtleStyle.Render(strings.Repeat("─", widths[i])), widths[i], i == len(headers)-1))
	}
	b.WriteByte('\n')
	for _, row := range rows {
		for i := range headers {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			if badge[i] {
				cell = FormatStatus(cell)
			}
			b.WriteString(pad(cell, widths[i], i == len(headers)-1))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// RenderWindow renders the pagination footer: the visible range, the total
// and the page strip with ellipses.
func RenderWindow(w listing.Window) string {
	if !w.ShowControls {
		return SubtleStyle.Render("No records match the current filters.")
	}
	parts := make([]string, 0, len(w.Pages)+2)
	if w.LeadingEllipsis {
		parts = append(parts, "…")
	}
	for _, p := range w.Pages {
		label := fmt.Sprintf("%d", p)
		if p == w.CurrentPage {
			label = CurrentPageStyle.Render(" " + label + " ")
		}
		parts = append(parts, label)
	}
	if w.TrailingEllipsis {
		parts = append(parts, "…")
	}
	summary := fmt.Sprintf("Showing %d-%d of %d · page %d/%d", w.From(), w.To(), w.TotalItems, w.CurrentPage, w.TotalPages)
	return SubtleStyle.Render(summary) + "   " + strings.Join(parts, " ")
}

func pad(cell string, width int, last bool) string {
	if last {
		return cell
	}
	return cell + strings.Repeat(" ", width-lipgloss.Width(cell)+cellGap)
}
