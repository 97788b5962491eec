package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"lookbook/internal/adapters/tui/styles"
	"lookbook/internal/domain"
)

// EditKeyMap defines key bindings for the edit form
type EditKeyMap struct {
	NextField key.Binding
	PrevCat   key.Binding
	NextCat   key.Binding
	Trash     key.Binding
	Submit    key.Binding
	Cancel    key.Binding
}

var EditKeys = EditKeyMap{
	NextField: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next field"),
	),
	PrevCat: key.NewBinding(
		key.WithKeys("left"),
		key.WithHelp("←", "prev category"),
	),
	NextCat: key.NewBinding(
		key.WithKeys("right"),
		key.WithHelp("→", "next category"),
	),
	Trash: key.NewBinding(
		key.WithKeys("t"),
		key.WithHelp("t", "toggle trash"),
	),
	Submit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "save"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel"),
	),
}

// editField is which form field has focus.
type editField int

const (
	fieldName editField = iota
	fieldCategory
	fieldTrashed
)

// EditFormModel collects one compound edit: new name, category, trashed.
// When the new name collides with an existing item it asks for merge
// confirmation before re-submitting.
type EditFormModel struct {
	catalog *domain.Catalog

	oldName    string
	name       textinput.Model
	categories []string
	catIndex   int
	trashed    bool

	field         editField
	confirmMerge  bool   // waiting on a merge confirmation
	mergeTarget   string // the existing item the edit would merge into
	message       string
	messageIsErr  bool

	width  int
	height int
}

// NewEditFormModel creates the edit form.
func NewEditFormModel(catalog *domain.Catalog) *EditFormModel {
	input := textinput.New()
	input.Placeholder = "Item name"

	return &EditFormModel{
		catalog: catalog,
		name:    input,
	}
}

// Prepare loads the form for an item, resolving its current category and
// trashed flag.
func (m *EditFormModel) Prepare(itemName string) {
	category, trashed := m.catalog.ResolveItemMeta(itemName)

	m.oldName = itemName
	m.name.SetValue(itemName)
	m.name.CursorEnd()
	m.name.Focus()
	m.trashed = trashed
	m.field = fieldName
	m.confirmMerge = false
	m.mergeTarget = ""
	m.message = ""

	m.categories = m.catalog.Categories()
	if len(m.categories) == 0 {
		m.categories = []string{domain.DefaultCategory}
	}
	m.catIndex = 0
	for i, c := range m.categories {
		if c == category {
			m.catIndex = i
			break
		}
	}
}

// AskMergeConfirm switches the form into merge confirmation, naming the
// item the edit would merge into.
func (m *EditFormModel) AskMergeConfirm(target string) {
	m.confirmMerge = true
	m.mergeTarget = target
	m.name.Blur()
}

// SetMessage shows a validation message inside the form.
func (m *EditFormModel) SetMessage(text string, isErr bool) {
	m.message = text
	m.messageIsErr = isErr
}

// Init initializes the edit form
func (m *EditFormModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the edit form
func (m *EditFormModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		if size, ok := msg.(tea.WindowSizeMsg); ok {
			m.width = size.Width
			m.height = size.Height
		}
		return m, nil
	}

	if m.confirmMerge {
		switch keyMsg.String() {
		case "y":
			return m, m.submit(true)
		case "n", "esc":
			m.confirmMerge = false
			m.focusField()
			return m, nil
		}
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, EditKeys.Cancel):
		return m, func() tea.Msg { return EditCancelMsg{} }

	case key.Matches(keyMsg, EditKeys.Submit):
		return m, m.submit(false)

	case key.Matches(keyMsg, EditKeys.NextField):
		m.field = (m.field + 1) % 3
		m.focusField()
		return m, nil
	}

	switch m.field {
	case fieldName:
		var cmd tea.Cmd
		m.name, cmd = m.name.Update(keyMsg)
		return m, cmd

	case fieldCategory:
		switch {
		case key.Matches(keyMsg, EditKeys.PrevCat):
			m.catIndex = (m.catIndex + len(m.categories) - 1) % len(m.categories)
		case key.Matches(keyMsg, EditKeys.NextCat):
			m.catIndex = (m.catIndex + 1) % len(m.categories)
		}
		return m, nil

	case fieldTrashed:
		if key.Matches(keyMsg, EditKeys.Trash) || keyMsg.String() == " " {
			m.trashed = !m.trashed
		}
		return m, nil
	}

	return m, nil
}

func (m *EditFormModel) focusField() {
	if m.field == fieldName {
		m.name.Focus()
	} else {
		m.name.Blur()
	}
}

func (m *EditFormModel) submit(confirmed bool) tea.Cmd {
	newName := strings.TrimSpace(m.name.Value())
	if newName == "" {
		m.SetMessage("name is required", true)
		return nil
	}
	msg := EditSubmitMsg{
		OldName:      m.oldName,
		NewName:      newName,
		Category:     m.categories[m.catIndex],
		Trashed:      m.trashed,
		ConfirmMerge: confirmed,
	}
	return func() tea.Msg { return msg }
}

// View renders the edit form
func (m *EditFormModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("Edit item"))
	b.WriteString("\n\n")

	if m.confirmMerge {
		b.WriteString(fmt.Sprintf("%q already exists.\n", m.mergeTarget))
		b.WriteString(fmt.Sprintf("Merge %q into it? Their pages will be combined.\n\n", m.oldName))
		b.WriteString(styles.HelpKey.Render("y"))
		b.WriteString(styles.HelpDesc.Render(" merge  "))
		b.WriteString(styles.HelpKey.Render("n"))
		b.WriteString(styles.HelpDesc.Render(" go back"))
		return styles.App.Render(b.String())
	}

	b.WriteString(styles.InputLabel.Render("Name"))
	b.WriteString("\n")
	b.WriteString(styles.InputFocused.Render(m.name.View()))
	b.WriteString("\n\n")

	b.WriteString(styles.InputLabel.Render("Category"))
	b.WriteString("\n")
	b.WriteString(m.renderCategoryPicker())
	b.WriteString("\n\n")

	b.WriteString(styles.InputLabel.Render("Trashed"))
	b.WriteString("\n")
	if m.trashed {
		b.WriteString(styles.ErrorMsg.Render("[x] trashed"))
	} else {
		b.WriteString(styles.MutedText.Render("[ ] not trashed"))
	}
	b.WriteString("\n")

	if m.message != "" {
		b.WriteString("\n")
		if m.messageIsErr {
			b.WriteString(styles.ErrorMsg.Render(m.message))
		} else {
			b.WriteString(styles.Success.Render(m.message))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(renderHelp(
		"tab", "next field",
		"←/→", "category",
		"t/space", "trash",
		"enter", "save",
		"esc", "cancel",
	))

	return styles.App.Render(b.String())
}

func (m *EditFormModel) renderCategoryPicker() string {
	current := m.categories[m.catIndex]
	icon := m.catalog.CategoryIcon(current)
	if icon != "" {
		icon += " "
	}
	label := icon + current
	if m.field == fieldCategory {
		return styles.TabActive.Render("← " + label + " →")
	}
	return styles.Tab.Render(label)
}

// SetSize updates the view dimensions
func (m *EditFormModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}
