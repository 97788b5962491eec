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

// ItemKeyMap defines key bindings for the item detail view
type ItemKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Open    key.Binding
	Overlay key.Binding
	Edit    key.Binding
	Copy    key.Binding
	Back    key.Binding
	Quit    key.Binding
}

var ItemKeys = ItemKeyMap{
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
		key.WithHelp("enter", "open page"),
	),
	Overlay: key.NewBinding(
		key.WithKeys("o"),
		key.WithHelp("o", "view image"),
	),
	Edit: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "edit"),
	),
	Copy: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy image path"),
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

// ItemModel shows one item and the pages it appears on.
type ItemModel struct {
	catalog *domain.Catalog

	name   string
	pages  []string
	cursor int

	width  int
	height int
}

// NewItemModel creates the item detail view.
func NewItemModel(catalog *domain.Catalog) *ItemModel {
	return &ItemModel{catalog: catalog}
}

// SetItem points the view at an item. Unknown names render as empty.
func (m *ItemModel) SetItem(name string) {
	m.name = name
	m.cursor = 0
	m.Refresh()
}

// Refresh re-reads the item's pages from the catalog.
func (m *ItemModel) Refresh() {
	m.pages = append([]string(nil), m.catalog.Items[m.name]...)
	if m.cursor >= len(m.pages) {
		m.cursor = len(m.pages) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// Name returns the item being shown.
func (m *ItemModel) Name() string { return m.name }

// Init initializes the item view
func (m *ItemModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the item view
func (m *ItemModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, ItemKeys.Quit):
			return m, tea.Quit

		case key.Matches(msg, ItemKeys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil

		case key.Matches(msg, ItemKeys.Down):
			if m.cursor < len(m.pages)-1 {
				m.cursor++
			}
			return m, nil

		case key.Matches(msg, ItemKeys.Open):
			if pageKey := m.selectedPage(); pageKey != "" {
				return m, func() tea.Msg { return ShowPageMsg{Key: pageKey} }
			}
			return m, nil

		case key.Matches(msg, ItemKeys.Overlay):
			if pageKey := m.selectedPage(); pageKey != "" {
				image := m.catalog.ImagePath(pageKey)
				caption := m.catalog.PageCaption(pageKey) + " - " + m.name
				return m, func() tea.Msg { return OpenOverlayMsg{Image: image, Caption: caption} }
			}
			return m, nil

		case key.Matches(msg, ItemKeys.Edit):
			name := m.name
			return m, func() tea.Msg { return StartEditMsg{Name: name} }

		case key.Matches(msg, ItemKeys.Copy):
			if pageKey := m.selectedPage(); pageKey != "" {
				path := m.catalog.ImagePath(pageKey)
				clipboard.WriteAll(path)
				return m, func() tea.Msg { return StatusMsg{Text: "Copied " + path} }
			}
			return m, nil

		case key.Matches(msg, ItemKeys.Back):
			return m, func() tea.Msg { return BackMsg{} }
		}
	}

	return m, nil
}

func (m *ItemModel) selectedPage() string {
	if m.cursor >= 0 && m.cursor < len(m.pages) {
		return m.pages[m.cursor]
	}
	return ""
}

// View renders the item view
func (m *ItemModel) View() string {
	var b strings.Builder

	category, trashed := m.catalog.ResolveItemMeta(m.name)

	title := m.name
	if trashed {
		title += " (trashed)"
	}
	b.WriteString(styles.Title.Render(title))
	b.WriteString("\n")
	b.WriteString(styles.Subtitle.Render(fmt.Sprintf("[%s] on %d page(s)", category, len(m.pages))))
	b.WriteString("\n\n")

	for i, pageKey := range m.pages {
		line := fmt.Sprintf("%s  %s", m.catalog.PageCaption(pageKey), styles.MutedText.Render(pageKey))
		if i == m.cursor {
			line = styles.ItemSelected.Render(m.catalog.PageCaption(pageKey)) + "  " + styles.MutedText.Render(pageKey)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(renderHelp(
		"j/k", "navigate",
		"enter", "open page",
		"o", "image",
		"e", "edit",
		"y", "copy path",
		"esc", "back",
	))

	return styles.App.Render(b.String())
}

// SetSize updates the view dimensions
func (m *ItemModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}
