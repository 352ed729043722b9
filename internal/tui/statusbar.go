package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

func renderStatusBar(visible, total int, filterLabel string, pending int, width int, searching bool) string {
	left := fmt.Sprintf(" %d records", visible)
	if visible != total {
		left += fmt.Sprintf(" of %d", total)
	}
	if filterLabel != "" {
		left += " · " + filterLabel
	}
	if pending > 0 {
		left += fmt.Sprintf(" (deleting %d...)", pending)
	}

	right := " / search  t tags  T type  s sort  d delete  ? help  q quit "
	if searching {
		right = " esc clear  enter done "
	}

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	bar := left + fmt.Sprintf("%*s", gap, "") + right

	return statusBarStyle.Width(width).Render(bar)
}

func renderBottomBar(hints string, width int) string {
	right := " " + hints + " "

	gap := width - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	return statusBarStyle.Width(width).Render(fmt.Sprintf("%*s", gap, "") + right)
}
