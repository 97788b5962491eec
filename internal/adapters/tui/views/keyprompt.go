package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"lookbook/internal/adapters/tui/styles"
)

// KeyPromptModel asks for the edit key when the server rejects a save.
// The value is masked and only submitted once per prompt.
type KeyPromptModel struct {
	input  textinput.Model
	width  int
	height int
}

// NewKeyPromptModel creates the credential prompt.
func NewKeyPromptModel() *KeyPromptModel {
	input := textinput.New()
	input.Placeholder = "Edit key"
	input.EchoMode = textinput.EchoPassword
	input.EchoCharacter = '•'

	return &KeyPromptModel{input: input}
}

// Reset clears the input and focuses it for a fresh prompt.
func (m *KeyPromptModel) Reset() {
	m.input.SetValue("")
	m.input.Focus()
}

// Init initializes the credential prompt
func (m *KeyPromptModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the credential prompt
func (m *KeyPromptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		if size, ok := msg.(tea.WindowSizeMsg); ok {
			m.width = size.Width
			m.height = size.Height
		}
		return m, nil
	}

	switch keyMsg.String() {
	case "enter":
		value := strings.TrimSpace(m.input.Value())
		if value == "" {
			return m, nil
		}
		m.input.Blur()
		return m, func() tea.Msg { return CredentialMsg{Key: value} }

	case "esc", "ctrl+c":
		m.input.Blur()
		return m, func() tea.Msg { return CredentialCancelMsg{} }
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(keyMsg)
	return m, cmd
}

// View renders the credential prompt
func (m *KeyPromptModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("Edit key required"))
	b.WriteString("\n\n")
	b.WriteString("The server rejected the save. Enter the edit key to retry.\n\n")
	b.WriteString(styles.InputFocused.Render(m.input.View()))
	b.WriteString("\n\n")
	b.WriteString(renderHelp(
		"enter", "retry save",
		"esc", "discard changes",
	))

	return styles.App.Render(b.String())
}

// SetSize updates the view dimensions
func (m *KeyPromptModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}
