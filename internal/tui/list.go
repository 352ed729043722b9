package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/matheuskafuri/ingester/internal/archive"
	"github.com/matheuskafuri/ingester/internal/view"
)

func relativeTime(t time.Time) string {
	if t.IsZero() {
		return "unknown date"
	}
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh", int(d.Hours()))
	case d < 7*24*time.Hour:
		return fmt.Sprintf("%dd", int(d.Hours()/24))
	default:
		return t.Format("Jan 2")
	}
}

// displayTitle falls back to the URL for records the API saved without a title.
func displayTitle(r archive.Record) string {
	if r.Title != "" {
		return r.Title
	}
	return r.URL
}

func renderListItem(r archive.Record, selected, pending bool, width int) string {
	if width < 10 {
		width = 30
	}

	label := truncateStr(displayTitle(r), width-4)
	var title string
	switch {
	case pending:
		title = "  " + itemPendingStyle.Render(label)
	case selected:
		title = itemSelectedStyle.Render("> " + label)
	default:
		title = itemTitleStyle.Render("  " + label)
	}

	meta := "  " + badge(r) + " " + itemTimeStyle.Render(relativeTime(view.ParseCreatedAt(r.CreatedAt)))
	if pending {
		meta += " " + itemTimeStyle.Render("deleting…")
	} else if len(r.Tags) > 0 {
		meta += " " + itemTagStyle.Render(truncateStr("#"+strings.Join(r.Tags, " #"), width/2))
	}

	return title + "\n" + meta
}

func badge(r archive.Record) string {
	if r.ResourceType == archive.TypeResource {
		return badgeToolStyle.Render(r.Badge())
	}
	return badgeReadStyle.Render(r.Badge())
}

func truncateStr(s string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n <= 3 {
		return string(runes[:n])
	}
	return string(runes[:n-3]) + "..."
}

func renderList(records []archive.Record, cursor int, pending map[int]bool, height int, width int) string {
	if len(records) == 0 {
		return lipglossCenter("No data found", width, height)
	}

	// Each item is 2 lines + 1 blank line = 3 lines
	itemHeight := 3
	visible := height / itemHeight
	if visible < 1 {
		visible = 1
	}

	start := 0
	if cursor >= visible {
		start = cursor - visible + 1
	}
	end := start + visible
	if end > len(records) {
		end = len(records)
		start = end - visible
		if start < 0 {
			start = 0
		}
	}

	var b strings.Builder
	for i := start; i < end; i++ {
		b.WriteString(renderListItem(records[i], i == cursor, pending[records[i].ID], width))
		if i < end-1 {
			b.WriteString("\n\n")
		}
	}

	return b.String()
}

func lipglossCenter(s string, width, height int) string {
	pad := (width - len(s)) / 2
	if pad < 0 {
		pad = 0
	}
	return strings.Repeat("\n", height/3) + strings.Repeat(" ", pad) + s
}
