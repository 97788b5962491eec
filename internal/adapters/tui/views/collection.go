package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"lookbook/internal/adapters/tui/styles"
	"lookbook/internal/domain"
)

// searchDebounce is how long after the last keystroke the filter re-runs.
const searchDebounce = 150 * time.Millisecond

// CollectionKeyMap defines key bindings for the collection view
type CollectionKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	PrevTab  key.Binding
	NextTab  key.Binding
	Select   key.Binding
	Edit     key.Binding
	Search   key.Binding
	Clear    key.Binding
	Quit     key.Binding
}

var CollectionKeys = CollectionKeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	PrevTab: key.NewBinding(
		key.WithKeys("h", "left"),
		key.WithHelp("h/←", "prev category"),
	),
	NextTab: key.NewBinding(
		key.WithKeys("l", "right"),
		key.WithHelp("l/→", "next category"),
	),
	Select: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "open item"),
	),
	Edit: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "edit"),
	),
	Search: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "search"),
	),
	Clear: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "clear search"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// collectionRow is one rendered line: a category header or an item.
type collectionRow struct {
	header string
	item   *domain.RenderItem
}

// CollectionModel is the main browsing view: items grouped by category,
// filtered by the active category tab and the fuzzy search query.
type CollectionModel struct {
	catalog *domain.Catalog

	search    textinput.Model
	searchSeq int // invalidates superseded debounce timers
	query     string

	tabs      []string // "all" + configured category order
	activeTab int

	rows   []collectionRow
	cursor int // index into rows; always on an item row

	width  int
	height int
}

// searchTickMsg fires when a debounce timer elapses. Only the timer whose
// seq is still current applies the filter; stale timers are ignored.
type searchTickMsg struct {
	seq int
}

// NewCollectionModel creates the collection view over the live catalog.
func NewCollectionModel(catalog *domain.Catalog) *CollectionModel {
	input := textinput.New()
	input.Placeholder = "Search items..."
	input.Prompt = "/ "

	m := &CollectionModel{
		catalog: catalog,
		search:  input,
	}
	m.Refresh()
	return m
}

// Init initializes the collection view
func (m *CollectionModel) Init() tea.Cmd {
	return nil
}

// Refresh rebuilds tabs and rows from the catalog. Called after every
// catalog mutation, rollback, or adoption of server state.
func (m *CollectionModel) Refresh() {
	m.tabs = append([]string{"all"}, m.catalog.Categories()...)
	if m.activeTab >= len(m.tabs) {
		m.activeTab = 0
	}
	m.rebuildRows()
}

func (m *CollectionModel) rebuildRows() {
	grouped := m.catalog.CategorizeForRender()
	order := m.catalog.Categories()

	active := m.tabs[m.activeTab]
	m.rows = m.rows[:0]
	for _, category := range order {
		if active != "all" && category != active {
			continue
		}
		var items []collectionRow
		for i := range grouped[category] {
			item := grouped[category][i]
			if !domain.Matches(m.query, item.Name) {
				continue
			}
			items = append(items, collectionRow{item: &grouped[category][i]})
		}
		if len(items) == 0 {
			continue
		}
		m.rows = append(m.rows, collectionRow{header: category})
		m.rows = append(m.rows, items...)
	}
	m.clampCursor()
}

func (m *CollectionModel) clampCursor() {
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.snapCursor(1)
}

// snapCursor moves the cursor off header rows in the given direction.
func (m *CollectionModel) snapCursor(dir int) {
	for m.cursor >= 0 && m.cursor < len(m.rows) && m.rows[m.cursor].item == nil {
		m.cursor += dir
	}
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 && len(m.rows) > 0 {
		m.cursor = 0
		m.snapCursor(1)
	}
}

// Selected returns the item under the cursor, or nil.
func (m *CollectionModel) Selected() *domain.RenderItem {
	if m.cursor >= 0 && m.cursor < len(m.rows) {
		return m.rows[m.cursor].item
	}
	return nil
}

// Update handles messages for the collection view
func (m *CollectionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case searchTickMsg:
		if msg.seq != m.searchSeq {
			return m, nil
		}
		m.query = strings.TrimSpace(m.search.Value())
		m.rebuildRows()
		return m, nil

	case tea.KeyMsg:
		if m.search.Focused() {
			return m.updateSearching(msg)
		}

		switch {
		case key.Matches(msg, CollectionKeys.Quit):
			return m, tea.Quit

		case key.Matches(msg, CollectionKeys.Up):
			m.moveCursor(-1)
			return m, nil

		case key.Matches(msg, CollectionKeys.Down):
			m.moveCursor(1)
			return m, nil

		case key.Matches(msg, CollectionKeys.PrevTab):
			m.activeTab = (m.activeTab + len(m.tabs) - 1) % len(m.tabs)
			m.rebuildRows()
			return m, nil

		case key.Matches(msg, CollectionKeys.NextTab):
			m.activeTab = (m.activeTab + 1) % len(m.tabs)
			m.rebuildRows()
			return m, nil

		case key.Matches(msg, CollectionKeys.Select):
			if item := m.Selected(); item != nil {
				name := item.Name
				return m, func() tea.Msg { return ShowItemMsg{Name: name} }
			}
			return m, nil

		case key.Matches(msg, CollectionKeys.Edit):
			if item := m.Selected(); item != nil {
				name := item.Name
				return m, func() tea.Msg { return StartEditMsg{Name: name} }
			}
			return m, nil

		case key.Matches(msg, CollectionKeys.Search):
			m.search.Focus()
			return m, textinput.Blink

		case key.Matches(msg, CollectionKeys.Clear):
			return m, m.clearSearch()
		}
		return m, nil
	}

	return m, nil
}

func (m *CollectionModel) updateSearching(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.search.Blur()
		return m, nil
	case "esc":
		m.search.Blur()
		return m, m.clearSearch()
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return m, tea.Batch(cmd, m.debounceSearch())
}

// debounceSearch restarts the debounce timer. Superseding a timer only
// invalidates the timer; it never cancels work already started.
func (m *CollectionModel) debounceSearch() tea.Cmd {
	m.searchSeq++
	seq := m.searchSeq
	return tea.Tick(searchDebounce, func(time.Time) tea.Msg {
		return searchTickMsg{seq: seq}
	})
}

func (m *CollectionModel) clearSearch() tea.Cmd {
	m.search.SetValue("")
	if m.query == "" {
		return nil
	}
	return m.debounceSearch()
}

func (m *CollectionModel) moveCursor(dir int) {
	next := m.cursor + dir
	for next >= 0 && next < len(m.rows) && m.rows[next].item == nil {
		next += dir
	}
	if next >= 0 && next < len(m.rows) {
		m.cursor = next
	}
}

// View renders the collection view
func (m *CollectionModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("Lookbook"))
	b.WriteString("\n")
	b.WriteString(m.renderTabs())
	b.WriteString("\n\n")

	if m.search.Focused() || m.search.Value() != "" {
		b.WriteString(styles.InputFocused.Render(m.search.View()))
		b.WriteString("\n\n")
	}

	if len(m.rows) == 0 {
		if m.query != "" {
			b.WriteString(styles.MutedText.Render(fmt.Sprintf("No items match %q", m.query)))
		} else {
			b.WriteString(styles.MutedText.Render("No items"))
		}
		b.WriteString("\n")
	}

	for i, row := range m.rows {
		if row.item == nil {
			icon := m.catalog.CategoryIcon(row.header)
			if icon != "" {
				icon += " "
			}
			b.WriteString(styles.CategoryHeader.Render(icon + row.header))
			b.WriteString("\n")
			continue
		}
		b.WriteString(m.renderItem(*row.item, i == m.cursor))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(renderHelp(
		"j/k", "navigate",
		"h/l", "category",
		"enter", "open",
		"e", "edit",
		"/", "search",
		"q", "quit",
	))

	return styles.App.Render(b.String())
}

func (m *CollectionModel) renderItem(item domain.RenderItem, selected bool) string {
	pages := "page"
	if len(item.Pages) != 1 {
		pages = "pages"
	}
	count := styles.PageCount.Render(fmt.Sprintf(" (%d %s)", len(item.Pages), pages))

	name := item.Name
	switch {
	case selected:
		return "  " + styles.ItemSelected.Render(name) + count
	case item.Trashed:
		return "  " + styles.ItemTrashed.Render(name) + count
	default:
		return "  " + styles.Item.Render(name) + count
	}
}

func (m *CollectionModel) renderTabs() string {
	var parts []string
	for i, tab := range m.tabs {
		label := tab
		if tab != "all" {
			if icon := m.catalog.CategoryIcon(tab); icon != "" {
				label = icon
			}
		}
		if i == m.activeTab {
			parts = append(parts, styles.TabActive.Render(label))
		} else {
			parts = append(parts, styles.Tab.Render(label))
		}
	}
	return strings.Join(parts, "")
}

// SetSize updates the view dimensions
func (m *CollectionModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func renderHelp(pairs ...string) string {
	var parts []string
	for i := 0; i+1 < len(pairs); i += 2 {
		parts = append(parts, fmt.Sprintf("%s %s",
			styles.HelpKey.Render(pairs[i]),
			styles.HelpDesc.Render(pairs[i+1]),
		))
	}
	return strings.Join(parts, styles.HelpSeparator.String())
}
