package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matheuskafuri/ingester/internal/view"
)

// filterBar renders the type tabs, sort order and the tag picker. Selection
// state lives in view.Params; the bar only tracks the picker cursor.
type filterBar struct {
	tags      []string
	tagMode   bool
	tagCursor int
}

func (f *filterBar) setTags(tags []string) {
	f.tags = tags
	if f.tagCursor >= len(f.tags) {
		f.tagCursor = max(0, len(f.tags)-1)
	}
}

func (f *filterBar) moveLeft() {
	if f.tagCursor > 0 {
		f.tagCursor--
	}
}

func (f *filterBar) moveRight() {
	if f.tagCursor < len(f.tags)-1 {
		f.tagCursor++
	}
}

func (f *filterBar) current() (string, bool) {
	if f.tagCursor < len(f.tags) {
		return f.tags[f.tagCursor], true
	}
	return "", false
}

func typeLabel(t view.TypeFilter) string {
	switch t {
	case view.TypeArticle:
		return "Articles"
	case view.TypeResource:
		return "Resources"
	default:
		return "All"
	}
}

func sortLabel(s view.SortKey) string {
	if s == view.SortTitle {
		return "A-Z"
	}
	return "Date"
}

// activeLabel summarises the non-default parts of p for the status bar.
func activeLabel(p view.Params) string {
	var parts []string
	if p.Type != view.TypeAll && p.Type != "" {
		parts = append(parts, typeLabel(p.Type))
	}
	if tags := p.Tags(); len(tags) > 0 {
		parts = append(parts, "#"+strings.Join(tags, " #"))
	}
	if p.Query != "" {
		parts = append(parts, "\""+p.Query+"\"")
	}
	return strings.Join(parts, " · ")
}

func (f *filterBar) render(p view.Params, width int) string {
	sep := tabSeparatorStyle.Render(" · ")

	var parts []string
	for _, t := range []view.TypeFilter{view.TypeAll, view.TypeArticle, view.TypeResource} {
		style := tabInactiveStyle
		if p.Type == t || (p.Type == "" && t == view.TypeAll) {
			style = tabActiveStyle
		}
		parts = append(parts, style.Render(typeLabel(t)))
	}
	parts = append(parts, tabInactiveStyle.Render("sort: "+sortLabel(p.Sort)))
	if n := len(p.Tags()); n > 0 {
		parts = append(parts, tabActiveStyle.Render(fmt.Sprintf("tags [%d]", n)))
	}

	return barStyle(width).Render(joinWithin(parts, sep, width))
}

// renderTags draws the tag picker, scrolled so the cursor stays visible.
func (f *filterBar) renderTags(p view.Params, width int) string {
	if len(f.tags) == 0 {
		return barStyle(width).Render(helpDimStyle.Render("no tags"))
	}

	sep := tabSeparatorStyle.Render(" ")
	labels := make([]string, len(f.tags))
	for i, t := range f.tags {
		style := tabInactiveStyle
		if p.HasTag(t) {
			style = tabActiveStyle
		}
		label := "#" + t
		if f.tagMode && i == f.tagCursor {
			label = "[" + label + "]"
		}
		labels[i] = style.Render(label)
	}

	start := 0
	for start < f.tagCursor && lipgloss.Width(strings.Join(labels[start:f.tagCursor+1], sep)) > width-2 {
		start++
	}
	return barStyle(width).Render(joinWithin(labels[start:], sep, width))
}

// joinWithin joins parts with sep, stopping before the row exceeds width.
func joinWithin(parts []string, sep string, width int) string {
	var row string
	for i, part := range parts {
		candidate := row
		if i > 0 {
			candidate += sep
		}
		candidate += part
		if lipgloss.Width(candidate) > width && row != "" {
			break
		}
		row = candidate
	}
	return row
}

func barStyle(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Background(colorTabBg).
		Width(width).
		PaddingLeft(1)
}
