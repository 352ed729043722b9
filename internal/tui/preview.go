package tui

import (
	"fmt"
	"html"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/microcosm-cc/bluemonday"

	"github.com/matheuskafuri/ingester/internal/archive"
	"github.com/matheuskafuri/ingester/internal/view"
)

const maxPreviewTags = 3

// Descriptions are scraped page summaries and may carry markup.
var plainPolicy = bluemonday.StrictPolicy()

// plainText strips tags and decodes entities.
func plainText(s string) string {
	return strings.TrimSpace(html.UnescapeString(plainPolicy.Sanitize(s)))
}

func renderPreview(r *archive.Record, width, height, scroll int) string {
	if r == nil {
		return lipglossCenter("Select a record", width, height)
	}

	contentWidth := width - 2
	if contentWidth < 10 {
		contentWidth = 10
	}

	title := previewTitleStyle.Width(contentWidth).Render(displayTitle(*r))
	meta := badge(*r) + " " + previewMetaStyle.Render(formatDate(r.CreatedAt))
	if r.Source != "" {
		meta += previewMetaStyle.Render(" · " + r.Source)
	}

	desc := plainText(r.Description)
	if desc == "" {
		desc = "(No description available)"
	}
	body := previewBodyStyle.Width(contentWidth).Render(wrapText(desc, contentWidth))

	tags := itemTagStyle.Render(tagSummary(r.Tags))
	link := previewLinkStyle.Width(contentWidth).Render("Open: " + r.URL)

	content := lipgloss.JoinVertical(lipgloss.Left, title, meta, "", body, "", tags, link)

	lines := strings.Split(content, "\n")
	if scroll > 0 && scroll < len(lines) {
		lines = lines[scroll:]
	}

	if len(lines) < height {
		lines = append(lines, make([]string, height-len(lines))...)
	} else if len(lines) > height {
		lines = lines[:height]
	}

	return strings.Join(lines, "\n")
}

// formatDate renders created_at as dd/mm/yyyy, or the raw value when it
// cannot be parsed.
func formatDate(createdAt string) string {
	t := view.ParseCreatedAt(createdAt)
	if t.IsZero() {
		if createdAt == "" {
			return "unknown date"
		}
		return createdAt
	}
	return t.Format("02/01/2006")
}

// tagSummary shows the first three tags and a +N for the rest.
func tagSummary(tags []string) string {
	if len(tags) == 0 {
		return ""
	}
	shown := tags
	if len(shown) > maxPreviewTags {
		shown = shown[:maxPreviewTags]
	}
	s := "#" + strings.Join(shown, " #")
	if extra := len(tags) - len(shown); extra > 0 {
		s += fmt.Sprintf(" +%d", extra)
	}
	return s
}

func wrapText(s string, width int) string {
	if width <= 0 {
		return s
	}
	words := strings.Fields(s)
	if len(words) == 0 {
		return ""
	}

	var lines []string
	line := words[0]
	for _, w := range words[1:] {
		if len(line)+1+len(w) > width {
			lines = append(lines, line)
			line = w
		} else {
			line += " " + w
		}
	}
	lines = append(lines, line)
	return strings.Join(lines, "\n")
}
