package views

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"lookbook/internal/adapters/tui/styles"
	"lookbook/internal/domain"
)

// PageKeyMap defines key bindings for the page detail view
type PageKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Open    key.Binding
	Overlay key.Binding
	Copy    key.Binding
	Back    key.Binding
	Quit    key.Binding
}

var PageKeys = PageKeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	Open: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "open item"),
	),
	Overlay: key.NewBinding(
		key.WithKeys("o"),
		key.WithHelp("o", "view image"),
	),
	Copy: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy page key"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc", "backspace"),
		key.WithHelp("esc", "back"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// PageModel shows one page and the items on it.
type PageModel struct {
	catalog *domain.Catalog

	key     string
	entries []domain.PageEntry
	cursor  int

	width  int
	height int
}

// NewPageModel creates the page detail view.
func NewPageModel(catalog *domain.Catalog) *PageModel {
	return &PageModel{catalog: catalog}
}

// SetPage points the view at a page key.
func (m *PageModel) SetPage(key string) {
	m.key = key
	m.cursor = 0
	m.Refresh()
}

// Refresh re-reads the page's entries from the catalog.
func (m *PageModel) Refresh() {
	m.entries = append([]domain.PageEntry(nil), m.catalog.Pages[m.key]...)
	if m.cursor >= len(m.entries) {
		m.cursor = len(m.entries) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// Key returns the page key being shown.
func (m *PageModel) Key() string { return m.key }

// Init initializes the page view
func (m *PageModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the page view
func (m *PageModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, PageKeys.Quit):
			return m, tea.Quit

		case key.Matches(msg, PageKeys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil

		case key.Matches(msg, PageKeys.Down):
			if m.cursor < len(m.entries)-1 {
				m.cursor++
			}
			return m, nil

		case key.Matches(msg, PageKeys.Open):
			if entry := m.selectedEntry(); entry != nil {
				name := entry.Name
				return m, func() tea.Msg { return ShowItemMsg{Name: name} }
			}
			return m, nil

		case key.Matches(msg, PageKeys.Overlay):
			image := m.catalog.ImagePath(m.key)
			caption := m.catalog.PageCaption(m.key)
			return m, func() tea.Msg { return OpenOverlayMsg{Image: image, Caption: caption} }

		case key.Matches(msg, PageKeys.Copy):
			clipboard.WriteAll(m.key)
			return m, func() tea.Msg { return StatusMsg{Text: "Copied " + m.key} }

		case key.Matches(msg, PageKeys.Back):
			return m, func() tea.Msg { return BackMsg{} }
		}
	}

	return m, nil
}

func (m *PageModel) selectedEntry() *domain.PageEntry {
	if m.cursor >= 0 && m.cursor < len(m.entries) {
		return &m.entries[m.cursor]
	}
	return nil
}

// View renders the page view
func (m *PageModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render(m.catalog.PageCaption(m.key)))
	b.WriteString("\n")
	b.WriteString(styles.Subtitle.Render(m.catalog.ImagePath(m.key)))
	b.WriteString("\n\n")

	if len(m.entries) == 0 {
		b.WriteString(styles.MutedText.Render("No items on this page"))
		b.WriteString("\n")
	}

	for i, entry := range m.entries {
		label := fmt.Sprintf("%s %s", entry.Name, styles.MutedText.Render("["+entry.Category+"]"))
		switch {
		case i == m.cursor:
			label = styles.ItemSelected.Render(entry.Name) + " " + styles.MutedText.Render("["+entry.Category+"]")
		case entry.Trashed:
			label = styles.ItemTrashed.Render(entry.Name) + " " + styles.MutedText.Render("["+entry.Category+"]")
		}
		b.WriteString(label)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(renderHelp(
		"j/k", "navigate",
		"enter", "open item",
		"o", "image",
		"y", "copy key",
		"esc", "back",
	))

	return styles.App.Render(b.String())
}

// SetSize updates the view dimensions
func (m *PageModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}
