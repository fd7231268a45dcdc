// Package tui provides the BubbleTea-based terminal user interface.
package tui

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jmylchreest/linkhist/internal/config"
	"github.com/jmylchreest/linkhist/internal/history"
	"github.com/jmylchreest/linkhist/internal/model"
	"github.com/jmylchreest/linkhist/internal/theme"
)

// Mode represents the current UI mode.
type Mode int

const (
	ModeList Mode = iota
	ModeDetail
	ModeSearch
	ModeHelp
	ModeConfirmClear
)

// headerHeight is the title line plus its bottom margin.
const headerHeight = 2

// Model is the main TUI model.
type Model struct {
	cfg      *config.Config
	history  *history.History
	resolver *theme.Resolver
	truncate int

	mode Mode

	list        list.Model
	viewport    viewport.Model
	searchInput textinput.Model

	selected    *model.UrlRecord
	searchQuery string
	width       int
	height      int
	ready       bool

	keys KeyMap

	statusMsg string
	statusErr bool

	// Store change notifications (nil = not watching)
	changes <-chan struct{}
}

// recordItem wraps a record for the list component.
type recordItem struct {
	record   model.UrlRecord
	shortURL string
	original string
}

func (i recordItem) Title() string {
	return "Shortened URL: " + i.shortURL
}

func (i recordItem) Description() string {
	return "Original URL: " + i.original
}

func (i recordItem) FilterValue() string {
	return i.record.ShortenedURL + " " + i.record.LongURL
}

// recordDelegate renders each record as a two-line card in the current
// palette.
type recordDelegate struct {
	resolver *theme.Resolver
}

func (d recordDelegate) Height() int                             { return 2 }
func (d recordDelegate) Spacing() int                            { return 1 }
func (d recordDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

// Render draws one card. The palette is resolved on every call so a theme
// change shows up on the next frame.
func (d recordDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	ri, ok := item.(recordItem)
	if !ok {
		return
	}

	p := d.resolver.Palette()
	style := p.Item
	if index == m.Index() {
		style = p.Selected
	}

	label := p.Label.Inherit(style)
	shortLabel := "Shortened URL:"
	origLabel := "Original URL:"

	short := ri.shortURL
	orig := ri.original
	if m.Width() > 0 {
		style = style.Width(m.Width() - style.GetHorizontalBorderSize())
		room := m.Width() - style.GetHorizontalFrameSize() - len(shortLabel) - 1
		short = clip(short, room)
		orig = clip(orig, room)
	}

	content := label.Render(shortLabel) + " " + short + "\n" +
		label.Render(origLabel) + " " + orig
	fmt.Fprint(w, style.Render(content))
}

// clip shortens s to width cells with a trailing ellipsis.
func clip(s string, width int) string {
	if width <= 0 || lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	if width > len(runes) {
		width = len(runes)
	}
	return string(runes[:width-1]) + "…"
}

// Options configures a Model.
type Options struct {
	Config   *config.Config
	History  *history.History
	Resolver *theme.Resolver
	Changes  <-chan struct{}
}

// New creates a new TUI model.
func New(opts Options) Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	resolver := opts.Resolver
	if resolver == nil {
		resolver = theme.NewResolver(cfg.ThemePreference())
	}

	l := list.New(nil, recordDelegate{resolver: resolver}, 0, 0)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()

	searchInput := textinput.New()
	searchInput.Placeholder = "Search..."
	searchInput.CharLimit = 200

	return Model{
		cfg:         cfg,
		history:     opts.History,
		resolver:    resolver,
		truncate:    cfg.Display.Truncate,
		mode:        ModeList,
		list:        l,
		searchInput: searchInput,
		keys:        DefaultKeyMap(),
		changes:     opts.Changes,
	}
}

// Init loads the history and starts listening for store changes.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.loadRecords,
		m.watchForChanges,
	)
}

type loadRecordsMsg struct{}

func (m Model) loadRecords() tea.Msg {
	return loadRecordsMsg{}
}

type refreshMsg struct{}

// watchForChanges blocks until the store file changes.
func (m Model) watchForChanges() tea.Msg {
	if m.changes == nil {
		return nil
	}
	if _, ok := <-m.changes; !ok {
		return nil
	}
	return refreshMsg{}
}

type statusMsg struct {
	text  string
	isErr bool
}

type clearStatusMsg struct{}

type copyResultMsg struct {
	err error
}

type previewResultMsg struct {
	url string
	err error
}

type deleteResultMsg struct {
	token string
	err   error
}

type clearedMsg struct {
	err error
}

func setStatus(text string, isErr bool) tea.Cmd {
	return func() tea.Msg {
		return statusMsg{text: text, isErr: isErr}
	}
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

		m.list.SetSize(msg.Width, max(msg.Height-headerHeight-1, 0))
		m.viewport = viewport.New(msg.Width, max(msg.Height-3, 0))
		m.viewport.YPosition = 2
		if m.selected != nil {
			m.viewport.SetContent(m.renderDetail(*m.selected))
		}
		return m, nil

	case loadRecordsMsg:
		return m, m.reload()

	case refreshMsg:
		return m, tea.Batch(m.reload(), m.watchForChanges)

	case previewResultMsg:
		if msg.err != nil {
			return m, setStatus("Preview failed: "+msg.err.Error(), true)
		}
		return m, setStatus("Opened "+msg.url, false)

	case deleteResultMsg:
		m.refreshItems()
		if msg.err != nil {
			return m, setStatus("Delete failed: "+msg.err.Error(), true)
		}
		return m, setStatus("Deleted "+msg.token, false)

	case clearedMsg:
		// Full reload: back to a fresh list view over whatever is stored.
		m.mode = ModeList
		m.selected = nil
		m.searchQuery = ""
		m.searchInput.SetValue("")
		m.list.ResetSelected()
		if msg.err != nil {
			return m, tea.Batch(m.loadRecords, setStatus("Clear failed: "+msg.err.Error(), true))
		}
		return m, tea.Batch(m.loadRecords, setStatus("History cleared", false))

	case statusMsg:
		m.statusMsg = msg.text
		m.statusErr = msg.isErr
		return m, tea.Tick(3*time.Second, func(t time.Time) tea.Msg {
			return clearStatusMsg{}
		})

	case clearStatusMsg:
		m.statusMsg = ""
		m.statusErr = false
		return m, nil

	case copyResultMsg:
		if msg.err != nil {
			return m, setStatus("Copy failed: "+msg.err.Error(), true)
		}
		return m, setStatus("Copied to clipboard", false)
	}

	switch m.mode {
	case ModeList:
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		cmds = append(cmds, cmd)
	case ModeDetail:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		cmds = append(cmds, cmd)
	case ModeSearch:
		var cmd tea.Cmd
		m.searchInput, cmd = m.searchInput.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// reload re-hydrates the history from the store and rebuilds the list.
func (m *Model) reload() tea.Cmd {
	if m.history == nil {
		return nil
	}
	if err := m.history.Load(); err != nil {
		m.refreshItems()
		return setStatus("Load failed: "+err.Error(), true)
	}
	m.refreshItems()
	return nil
}

// refreshItems rebuilds the list from the hydrated history, newest first.
func (m *Model) refreshItems() {
	m.list.SetItems(m.buildListItems())
}

// buildListItems creates list items from the current history.
func (m Model) buildListItems() []list.Item {
	if m.history == nil {
		return nil
	}

	records := m.history.Display()
	items := make([]list.Item, 0, len(records))
	for _, r := range records {
		if !r.Matches(m.searchQuery) {
			continue
		}
		items = append(items, recordItem{
			record:   r,
			shortURL: m.history.ShortURL(r.ShortenedURL),
			original: r.LongURLTruncated(m.truncate),
		})
	}
	return items
}

// selectedRecord returns the highlighted record, if any.
func (m Model) selectedRecord() (model.UrlRecord, bool) {
	item, ok := m.list.SelectedItem().(recordItem)
	if !ok {
		return model.UrlRecord{}, false
	}
	return item.record, true
}

// handleKey handles key presses.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// The search box takes every printable key.
	if m.mode == ModeSearch {
		return m.handleSearchKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		if m.mode == ModeHelp {
			m.mode = ModeList
		} else {
			m.mode = ModeHelp
		}
		return m, nil
	}

	switch m.mode {
	case ModeList:
		return m.handleListKey(msg)
	case ModeDetail:
		return m.handleDetailKey(msg)
	case ModeConfirmClear:
		return m.handleConfirmKey(msg)
	case ModeHelp:
		if key.Matches(msg, m.keys.Back) {
			m.mode = ModeList
		}
		return m, nil
	}

	return m, nil
}

// handleListKey handles keys in list mode.
func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Preview):
		if r, ok := m.selectedRecord(); ok {
			return m, m.preview(r.ShortenedURL)
		}
		return m, nil

	case key.Matches(msg, m.keys.Detail):
		if r, ok := m.selectedRecord(); ok {
			m.selected = &r
			m.mode = ModeDetail
			m.viewport.SetContent(m.renderDetail(r))
			m.viewport.GotoTop()
		}
		return m, nil

	case key.Matches(msg, m.keys.Copy):
		if r, ok := m.selectedRecord(); ok {
			return m, m.copyToClipboard(m.history.ShortURL(r.ShortenedURL))
		}
		return m, nil

	case key.Matches(msg, m.keys.Delete):
		if r, ok := m.selectedRecord(); ok {
			return m, tea.Batch(
				setStatus("Deleting "+r.ShortenedURL+"...", false),
				m.delete(r.ShortenedURL),
			)
		}
		return m, nil

	case key.Matches(msg, m.keys.ClearAll):
		m.mode = ModeConfirmClear
		return m, nil

	case key.Matches(msg, m.keys.Search):
		m.searchInput.SetValue("")
		m.searchQuery = ""
		m.refreshItems()
		m.mode = ModeSearch
		m.searchInput.Focus()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Refresh):
		return m, m.loadRecords

	case key.Matches(msg, m.keys.Theme):
		pref := m.resolver.Cycle()
		return m, setStatus("Theme: "+string(pref), false)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// handleDetailKey handles keys in detail mode.
func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.mode = ModeList
		m.selected = nil
		return m, nil

	case key.Matches(msg, m.keys.Preview):
		if m.selected != nil {
			return m, m.preview(m.selected.ShortenedURL)
		}
		return m, nil

	case key.Matches(msg, m.keys.Copy):
		if m.selected != nil {
			return m, m.copyToClipboard(m.history.ShortURL(m.selected.ShortenedURL))
		}
		return m, nil

	case key.Matches(msg, m.keys.Delete):
		if m.selected != nil {
			token := m.selected.ShortenedURL
			m.mode = ModeList
			m.selected = nil
			return m, m.delete(token)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// handleSearchKey handles keys in search mode.
func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit

	case tea.KeyEsc:
		m.mode = ModeList
		m.searchInput.Blur()
		m.searchInput.SetValue("")
		m.searchQuery = ""
		m.refreshItems()
		return m, nil

	case tea.KeyEnter:
		// Keep the filter and return to the list.
		m.mode = ModeList
		m.searchInput.Blur()
		return m, nil

	case tea.KeyUp, tea.KeyDown:
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)

	m.searchQuery = m.searchInput.Value()
	m.refreshItems()

	return m, cmd
}

// handleConfirmKey handles the clear-all confirmation prompt.
func (m Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		m.mode = ModeList
		return m, m.clearAll()
	case key.Matches(msg, m.keys.Cancel):
		m.mode = ModeList
		return m, nil
	}
	return m, nil
}

// preview opens the short link for token.
func (m Model) preview(token string) tea.Cmd {
	h := m.history
	return func() tea.Msg {
		url, err := h.Preview(token)
		return previewResultMsg{url: url, err: err}
	}
}

// delete runs the remote delete off the event loop. Overlapping deletes
// are not coordinated.
func (m Model) delete(token string) tea.Cmd {
	h := m.history
	return func() tea.Msg {
		err := h.Delete(context.Background(), token)
		return deleteResultMsg{token: token, err: err}
	}
}

// clearAll wipes the store.
func (m Model) clearAll() tea.Cmd {
	h := m.history
	return func() tea.Msg {
		return clearedMsg{err: h.ClearAll()}
	}
}

// copyToClipboard copies text to the system clipboard.
func (m Model) copyToClipboard(text string) tea.Cmd {
	cb := newClipboard(m.cfg.Clipboard.Command)
	return func() tea.Msg {
		return copyResultMsg{err: cb.Copy(text)}
	}
}

// renderDetail renders the untruncated record.
func (m Model) renderDetail(r model.UrlRecord) string {
	p := m.resolver.Palette()

	var sb strings.Builder
	sb.WriteString(p.Label.Render("Shortened URL:") + "\n")
	sb.WriteString("  " + m.history.ShortURL(r.ShortenedURL) + "\n\n")
	sb.WriteString(p.Label.Render("Token:") + "\n")
	sb.WriteString("  " + r.ShortenedURL + "\n\n")
	sb.WriteString(p.Label.Render("Original URL:") + "\n")

	wrap := lipgloss.NewStyle().PaddingLeft(2)
	if m.width > 4 {
		wrap = wrap.Width(m.width - 2)
	}
	sb.WriteString(wrap.Render(r.LongURL) + "\n")
	return sb.String()
}

// View renders the TUI.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	switch m.mode {
	case ModeList, ModeConfirmClear:
		return m.viewList()
	case ModeDetail:
		return m.viewDetail()
	case ModeSearch:
		return m.viewSearch()
	case ModeHelp:
		return m.viewHelp()
	default:
		return ""
	}
}

// renderHeader renders the title with the clear-all button on the right.
func (m Model) renderHeader(p theme.Palette) string {
	title := p.Header.UnsetMarginBottom().Render("History ;)")
	button := p.Button.Render("C Clear All")

	gap := m.width - lipgloss.Width(title) - lipgloss.Width(button)
	if gap < 1 {
		gap = 1
	}
	return title + strings.Repeat(" ", gap) + button + "\n"
}

// renderBody renders the record list or the empty-state message.
func (m Model) renderBody(p theme.Palette) string {
	if len(m.list.Items()) == 0 {
		if m.searchQuery != "" {
			return p.Empty.Render(fmt.Sprintf("No URLs match %q.", m.searchQuery))
		}
		return p.Empty.Render(model.EmptyHistoryMessage)
	}
	return m.list.View()
}

func (m Model) viewList() string {
	p := m.resolver.Palette()

	s := m.renderHeader(p) + "\n" + m.renderBody(p)

	switch {
	case m.mode == ModeConfirmClear:
		s += "\n" + p.Error.Render("Clear all history? This wipes the local store. (y/n)")
	case m.statusMsg != "":
		style := p.Status
		if m.statusErr {
			style = p.Error
		}
		s += "\n" + style.Render(m.statusMsg)
	default:
		s += "\n" + m.buildKeybindBar(p, m.width, ModeList)
	}

	return s
}

func (m Model) viewDetail() string {
	p := m.resolver.Palette()
	header := p.Header.UnsetMarginBottom().Render("URL Detail")

	return header + "\n" + m.viewport.View() + "\n" + m.buildKeybindBar(p, m.width, ModeDetail)
}

func (m Model) viewSearch() string {
	p := m.resolver.Palette()

	countStr := fmt.Sprintf("(%d matches)", len(m.list.Items()))
	searchBar := "Search: " + m.searchInput.View() + " " + p.Muted.Render(countStr)

	return searchBar + "\n\n" + m.renderBody(p) + "\n" + m.buildKeybindBar(p, m.width, ModeSearch)
}

func (m Model) viewHelp() string {
	p := m.resolver.Palette()
	keyStyle := p.Label.UnsetBold()

	s := p.Header.Render("Keyboard Shortcuts") + "\n"

	for _, group := range m.keys.FullHelp() {
		for _, b := range group {
			h := b.Help()
			s += keyStyle.Render(fmt.Sprintf("  %-12s", h.Key)) + " " + h.Desc + "\n"
		}
		s += "\n"
	}

	s += p.Muted.Render("Press ? or esc to return")
	return s
}

// keybind represents a single keybind with priority for the status bar.
type keybind struct {
	key      string
	desc     string
	priority int // lower = more important (shown first)
}

// buildKeybindBar builds a keybind bar that fits within the given width.
func (m Model) buildKeybindBar(p theme.Palette, width int, mode Mode) string {
	keyStyle := p.Label.UnsetBold()

	var binds []keybind
	switch mode {
	case ModeList:
		binds = []keybind{
			{"q", "quit", 1},
			{"enter", "preview", 2},
			{"d", "delete", 3},
			{"?", "help", 4},
			{"/", "search", 5},
			{"v", "view", 6},
			{"C", "clear all", 7},
			{"c", "copy", 8},
			{"t", "theme", 9},
			{"r", "reload", 10},
		}
	case ModeDetail:
		binds = []keybind{
			{"q", "quit", 1},
			{"esc", "back", 2},
			{"enter", "preview", 3},
			{"d", "delete", 4},
			{"c", "copy", 5},
		}
	case ModeSearch:
		binds = []keybind{
			{"enter", "keep filter", 1},
			{"esc", "close", 2},
			{"↑/↓", "navigate", 3},
		}
	}

	const separator = "  "
	result := ""
	for _, b := range binds {
		item := keyStyle.Render(b.key) + " " + b.desc
		testLen := lipgloss.Width(result) + lipgloss.Width(b.key+" "+b.desc)
		if result != "" {
			testLen += len(separator)
		}

		if width > 0 && testLen > width {
			break
		}
		if result != "" {
			result += separator
		}
		result += item
	}

	return p.Muted.Render(result)
}

// RunOptions configures the TUI.
type RunOptions struct {
	Config   *config.Config
	History  *history.History
	Resolver *theme.Resolver
	Changes  <-chan struct{} // Store change notifications (nil = no watching)
}

// Run starts the TUI with the given options.
func Run(opts RunOptions) error {
	m := New(Options{
		Config:   opts.Config,
		History:  opts.History,
		Resolver: opts.Resolver,
		Changes:  opts.Changes,
	})
	p := tea.NewProgram(m, tea.WithAltScreen())

	_, err := p.Run()
	return err
}
