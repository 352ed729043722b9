package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	quit       key.Binding
	down       key.Binding
	up         key.Binding
	focus      key.Binding
	open       key.Binding
	search     key.Binding
	tags       key.Binding
	clearTags  key.Binding
	cycleType  key.Binding
	typeAll    key.Binding
	typeArt    key.Binding
	typeRes    key.Binding
	toggleSort key.Binding
	remove     key.Binding
	help       key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		quit:       key.NewBinding(key.WithKeys("q"), key.WithHelp("q, ctrl+c", "Quit")),
		down:       key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/k, ↑/↓", "Navigate records")),
		up:         key.NewBinding(key.WithKeys("k", "up")),
		focus:      key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "Switch focus between list and detail")),
		open:       key.NewBinding(key.WithKeys("o", "enter"), key.WithHelp("o, enter", "Open link in browser")),
		search:     key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "Search title, description and URL")),
		tags:       key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "Pick tags")),
		clearTags:  key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "Clear tag selection")),
		cycleType:  key.NewBinding(key.WithKeys("T"), key.WithHelp("T", "Cycle type all/article/resource")),
		typeAll:    key.NewBinding(key.WithKeys("a"), key.WithHelp("a, 1, 2", "All / articles / resources")),
		typeArt:    key.NewBinding(key.WithKeys("1")),
		typeRes:    key.NewBinding(key.WithKeys("2")),
		toggleSort: key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "Sort by date or title")),
		remove:     key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "Delete record")),
		help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "Toggle this help")),
	}
}

// helpSections groups bindings for the help screen.
func (k keyMap) helpSections() []struct {
	title    string
	bindings []key.Binding
} {
	return []struct {
		title    string
		bindings []key.Binding
	}{
		{"Navigation", []key.Binding{k.down, k.focus}},
		{"Actions", []key.Binding{k.open, k.remove}},
		{"Filters", []key.Binding{k.search, k.tags, k.clearTags, k.cycleType, k.typeAll, k.toggleSort}},
		{"General", []key.Binding{k.help, k.quit}},
	}
}
