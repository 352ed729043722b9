package tui

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matheuskafuri/ingester/internal/archive"
	"github.com/matheuskafuri/ingester/internal/browser"
	"github.com/matheuskafuri/ingester/internal/view"
)

const (
	fetchFailedText  = "Failed to fetch links"
	deleteFailedText = "Delete failed"
	confirmText      = "Delete this resource?"
)

// Store is the remote side of the archive.
type Store interface {
	FetchAll(ctx context.Context) ([]archive.Record, error)
	DeleteByID(ctx context.Context, id int) error
}

type loadState int

const (
	stateLoading loadState = iota
	stateReady
	stateError
)

type focusPane int

const (
	focusList focusPane = iota
	focusPreview
)

type mode int

const (
	modeNormal mode = iota
	modeSearch
	modeTags
	modeConfirm
	modeNotice
	modeHelp
)

type App struct {
	store   Store
	engine  *view.Engine
	logger  *slog.Logger
	timeout time.Duration
	open    func(string) error

	state loadState
	mode  mode
	focus focusPane

	records []archive.Record
	visible []archive.Record
	params  view.Params

	// pending holds ids with a delete in flight; further deletes for them are ignored.
	pending   map[int]bool
	confirmID int
	notice    string
	// noticeReturn is the mode restored when the notice is dismissed.
	noticeReturn mode
	errText      string

	cursor        int
	previewScroll int
	width         int
	height        int

	searchInput textinput.Model
	spinner     spinner.Model
	filterBar   filterBar
	keys        keyMap

	err error
}

// RunOpts holds all parameters for launching the TUI.
type RunOpts struct {
	Store   Store
	Params  view.Params
	Locale  string
	Timeout time.Duration
	Logger  *slog.Logger
}

func NewApp(opts RunOpts) *App {
	ti := textinput.New()
	ti.Placeholder = "Search records..."
	ti.Prompt = searchPromptStyle.Render("/ ")
	ti.CharLimit = 100
	ti.SetValue(opts.Params.Query)

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = spinnerStyle

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	params := opts.Params
	if params.Type == "" {
		params = params.WithType(view.TypeAll)
	}
	if params.Sort == "" {
		params = params.WithSort(view.SortDate)
	}

	return &App{
		store:       opts.Store,
		engine:      view.NewEngine(opts.Locale),
		logger:      logger,
		timeout:     timeout,
		open:        browser.Open,
		params:      params,
		pending:     make(map[int]bool),
		searchInput: ti,
		spinner:     sp,
		keys:        newKeyMap(),
	}
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(a.fetchCmd(), a.spinner.Tick)
}

func (a *App) fetchCmd() tea.Cmd {
	store, timeout := a.store, a.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		records, err := store.FetchAll(ctx)
		if err != nil {
			return fetchErrMsg{err: err}
		}
		return recordsLoadedMsg{records: records}
	}
}

func (a *App) deleteCmd(id int) tea.Cmd {
	store, timeout := a.store, a.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return deleteResultMsg{id: id, err: store.DeleteByID(ctx, id)}
	}
}

func (a *App) openCmd(url string) tea.Cmd {
	open := a.open
	return func() tea.Msg {
		if err := open(url); err != nil {
			return openErrMsg{err: err}
		}
		return nil
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case tea.KeyMsg:
		// Clear sticky error on any keypress
		a.err = nil
		return a.handleKey(msg)

	case recordsLoadedMsg:
		a.state = stateReady
		a.setRecords(msg.records)
		return a, nil

	case fetchErrMsg:
		a.logger.Error("fetching links", "error", msg.err)
		a.state = stateError
		a.errText = fetchFailedText
		return a, nil

	case deleteResultMsg:
		delete(a.pending, msg.id)
		if msg.err != nil {
			a.logger.Warn("deleting link", "id", msg.id, "error", msg.err)
			a.showNotice(deleteFailedText)
			return a, nil
		}
		if rest, _, ok := view.Remove(a.records, msg.id); ok {
			a.setRecords(rest)
		}
		return a, nil

	case openErrMsg:
		a.err = msg.err
		return a, nil

	case spinner.TickMsg:
		if a.state == stateLoading || len(a.pending) > 0 {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil
	}

	return a, nil
}

// setRecords replaces the full set and re-derives tags and the visible set.
func (a *App) setRecords(records []archive.Record) {
	a.records = records
	a.filterBar.setTags(view.TagUniverse(records))
	a.refresh()
}

// refresh re-derives the visible set from the current records and params.
func (a *App) refresh() {
	a.visible = a.engine.Visible(a.records, a.params)
	if a.cursor >= len(a.visible) {
		a.cursor = max(0, len(a.visible)-1)
	}
}

func (a *App) setParams(p view.Params) {
	if p.Equal(a.params) {
		return
	}
	a.params = p
	a.cursor = 0
	a.previewScroll = 0
	a.refresh()
}

func (a *App) selected() (archive.Record, bool) {
	if a.cursor < len(a.visible) {
		return a.visible[a.cursor], true
	}
	return archive.Record{}, false
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return a, tea.Quit
	}

	if a.state != stateReady {
		if key.Matches(msg, a.keys.quit) {
			return a, tea.Quit
		}
		return a, nil
	}

	switch a.mode {
	case modeSearch:
		return a.handleSearchKey(msg)
	case modeTags:
		return a.handleTagKey(msg)
	case modeConfirm:
		return a.handleConfirmKey(msg)
	case modeNotice:
		switch msg.String() {
		case "enter", "esc", " ", "q":
			a.mode = a.noticeReturn
			a.notice = ""
		}
		return a, nil
	case modeHelp:
		if key.Matches(msg, a.keys.help, a.keys.quit) || msg.String() == "esc" {
			a.mode = modeNormal
		}
		return a, nil
	}

	switch {
	case key.Matches(msg, a.keys.quit):
		return a, tea.Quit
	case key.Matches(msg, a.keys.down):
		if a.focus == focusList && a.cursor < len(a.visible)-1 {
			a.cursor++
			a.previewScroll = 0
		} else if a.focus == focusPreview {
			a.previewScroll++
		}
	case key.Matches(msg, a.keys.up):
		if a.focus == focusList && a.cursor > 0 {
			a.cursor--
			a.previewScroll = 0
		} else if a.focus == focusPreview && a.previewScroll > 0 {
			a.previewScroll--
		}
	case key.Matches(msg, a.keys.focus):
		if a.focus == focusList {
			a.focus = focusPreview
		} else {
			a.focus = focusList
		}
	case key.Matches(msg, a.keys.open):
		if r, ok := a.selected(); ok {
			return a, a.openCmd(r.URL)
		}
	case key.Matches(msg, a.keys.search):
		a.mode = modeSearch
		return a, a.searchInput.Focus()
	case key.Matches(msg, a.keys.tags):
		a.mode = modeTags
		a.filterBar.tagMode = true
	case key.Matches(msg, a.keys.clearTags):
		a.setParams(a.params.ClearTags())
	case key.Matches(msg, a.keys.cycleType):
		a.setParams(a.params.NextType())
	case key.Matches(msg, a.keys.typeAll):
		a.setParams(a.params.WithType(view.TypeAll))
	case key.Matches(msg, a.keys.typeArt):
		a.setParams(a.params.WithType(view.TypeArticle))
	case key.Matches(msg, a.keys.typeRes):
		a.setParams(a.params.WithType(view.TypeResource))
	case key.Matches(msg, a.keys.toggleSort):
		a.setParams(a.params.ToggleSort())
	case key.Matches(msg, a.keys.remove):
		a.requestDelete()
	case key.Matches(msg, a.keys.help):
		a.mode = modeHelp
	}
	return a, nil
}

func (a *App) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.mode = modeNormal
		a.searchInput.SetValue("")
		a.searchInput.Blur()
		a.setParams(a.params.WithQuery(""))
		return a, nil
	case "enter":
		a.mode = modeNormal
		a.searchInput.Blur()
		return a, nil
	}

	var cmd tea.Cmd
	a.searchInput, cmd = a.searchInput.Update(msg)
	// Only re-derive on actual value changes, not cursor moves etc.
	a.setParams(a.params.WithQuery(a.searchInput.Value()))
	return a, cmd
}

func (a *App) handleTagKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "t":
		a.mode = modeNormal
		a.filterBar.tagMode = false
	case "left", "h":
		a.filterBar.moveLeft()
	case "right", "l":
		a.filterBar.moveRight()
	case " ", "enter":
		if tag, ok := a.filterBar.current(); ok {
			a.setParams(a.params.ToggleTag(tag))
		}
	case "c":
		a.setParams(a.params.ClearTags())
	}
	return a, nil
}

func (a *App) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		a.mode = modeNormal
		return a, a.issueDelete(a.confirmID)
	case "n", "N", "esc", "q":
		a.mode = modeNormal
	}
	return a, nil
}

// requestDelete opens the confirmation prompt for the selected record.
// Records already being deleted are skipped.
func (a *App) requestDelete() {
	r, ok := a.selected()
	if !ok || a.pending[r.ID] {
		return
	}
	a.confirmID = r.ID
	a.mode = modeConfirm
}

// showNotice raises a blocking notice over the active mode, which is
// restored untouched on dismiss.
func (a *App) showNotice(text string) {
	if a.mode != modeNotice {
		a.noticeReturn = a.mode
	}
	a.notice = text
	a.mode = modeNotice
}

func (a *App) issueDelete(id int) tea.Cmd {
	if a.pending[id] {
		return nil
	}
	a.pending[id] = true
	a.logger.Info("deleting link", "id", id)
	return tea.Batch(a.deleteCmd(id), a.spinner.Tick)
}

func (a *App) withBottomBar(content string, hints string) string {
	bar := renderBottomBar(hints, a.width)
	lines := strings.Split(content, "\n")
	for len(lines) < a.height-1 {
		lines = append(lines, "")
	}
	if len(lines) >= a.height {
		lines = lines[:a.height-1]
	}
	lines = append(lines, bar)
	return strings.Join(lines, "\n")
}

func (a *App) View() string {
	if a.width == 0 {
		return lipgloss.NewStyle().Foreground(colorAccent).Render("  ingester")
	}

	switch a.state {
	case stateLoading:
		loading := a.spinner.View() + " " + headerStyle.Render("Loading data...")
		return a.withBottomBar(lipgloss.Place(a.width, a.height-1, lipgloss.Center, lipgloss.Center, loading), "q quit")
	case stateError:
		card := errorCardStyle.Render(errorTitleStyle.Render("SYSTEM ERROR") + "\n\n" + a.errText)
		return a.withBottomBar(lipgloss.Place(a.width, a.height-1, lipgloss.Center, lipgloss.Center, card), "q quit")
	}

	switch a.mode {
	case modeHelp:
		return a.withBottomBar(a.renderHelp(), "? close  q quit")
	case modeConfirm:
		return a.withBottomBar(a.renderConfirm(), "y delete  n cancel")
	case modeNotice:
		card := errorCardStyle.Render(errorTitleStyle.Render(a.notice) + "\n\n" + helpDimStyle.Render("The record was kept."))
		return a.withBottomBar(lipgloss.Place(a.width, a.height-1, lipgloss.Center, lipgloss.Center, card), "enter dismiss")
	}

	// Layout calculations
	headerHeight := 1
	filterHeight := 1
	statusHeight := 1
	contentHeight := a.height - headerHeight - filterHeight - statusHeight - 4 // borders

	listWidth := int(float64(a.width) * 0.4)
	previewWidth := a.width - listWidth - 1

	if contentHeight < 3 {
		contentHeight = 3
	}

	// Header
	articles, resources := view.Counts(a.records)
	headerLeft := headerStyle.Render("ingester")
	headerRight := headerCountStyle.Render(fmt.Sprintf("%d items · %d articles · %d resources ", len(a.records), articles, resources))
	headerGap := a.width - lipgloss.Width(headerLeft) - lipgloss.Width(headerRight)
	if headerGap < 0 {
		headerGap = 0
	}
	header := headerLeft + fmt.Sprintf("%*s", headerGap, "") + headerRight

	// Filter row: search input, tag picker or the type/sort bar
	var filter string
	switch a.mode {
	case modeSearch:
		filter = a.searchInput.View()
	case modeTags:
		filter = a.filterBar.renderTags(a.params, a.width)
	default:
		filter = a.filterBar.render(a.params, a.width)
	}

	// List pane
	innerListW := listWidth - 4 // border + padding
	listContent := renderList(a.visible, a.cursor, a.pending, contentHeight, innerListW)

	var listPane string
	if a.focus == focusList {
		listPane = listPaneActiveStyle.Width(listWidth - 2).Height(contentHeight).Render(listContent)
	} else {
		listPane = listPaneStyle.Width(listWidth - 2).Height(contentHeight).Render(listContent)
	}

	// Preview pane
	var sel *archive.Record
	if r, ok := a.selected(); ok {
		sel = &r
	}
	innerPreviewW := previewWidth - 4
	previewContent := renderPreview(sel, innerPreviewW, contentHeight, a.previewScroll)

	var previewPane string
	if a.focus == focusPreview {
		previewPane = previewPaneActiveStyle.Width(previewWidth - 2).Height(contentHeight).Render(previewContent)
	} else {
		previewPane = previewPaneStyle.Width(previewWidth - 2).Height(contentHeight).Render(previewContent)
	}

	content := lipgloss.JoinHorizontal(lipgloss.Top, listPane, previewPane)

	status := renderStatusBar(
		len(a.visible),
		len(a.records),
		activeLabel(a.params),
		len(a.pending),
		a.width,
		a.mode == modeSearch,
	)
	if len(a.pending) > 0 {
		status = a.spinner.View() + " " + status
	}

	if a.err != nil {
		status = lipgloss.NewStyle().Foreground(colorAccent).Render(a.err.Error())
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, filter, content, status)
}

func (a *App) renderConfirm() string {
	title := "this record"
	for _, r := range a.records {
		if r.ID == a.confirmID {
			title = truncateStr(displayTitle(r), 50)
			break
		}
	}
	card := promptCardStyle.Render(
		searchPromptStyle.Render(confirmText) + "\n\n" +
			title + "\n\n" +
			helpDimStyle.Render("[y] delete   [n] cancel"),
	)
	return lipgloss.Place(a.width, a.height-1, lipgloss.Center, lipgloss.Center, card)
}

func (a *App) renderHelp() string {
	title := lipgloss.NewStyle().Foreground(colorAccent).Bold(true).Render("ingester")

	var b strings.Builder
	b.WriteString(title + helpDimStyle.Render(" keyboard shortcuts"))
	for _, section := range a.keys.helpSections() {
		b.WriteString("\n\n" + helpDimStyle.Render(section.title))
		for _, k := range section.bindings {
			h := k.Help()
			fmt.Fprintf(&b, "\n  %-14s %s", h.Key, h.Desc)
		}
	}
	b.WriteString("\n\n" + helpDimStyle.Render("Tag Picker") +
		"\n  ←/→, h/l      Move between tags" +
		"\n  space/enter    Toggle tag" +
		"\n  esc, t         Exit tag picker")

	card := helpCardStyle.Render(b.String())
	return lipgloss.Place(a.width, a.height-1, lipgloss.Center, lipgloss.Center, card)
}

// Run starts the TUI application.
func Run(opts RunOpts) error {
	app := NewApp(opts)
	p := tea.NewProgram(app, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
