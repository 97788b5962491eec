package views

import (
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"lookbook/internal/adapters/tui/styles"
)

// OverlayModel is the modal image overlay. A terminal cannot show the
// image itself, so it shows the image path and caption in a framed box.
type OverlayModel struct {
	image   string
	caption string

	width  int
	height int
}

// NewOverlayModel creates the overlay.
func NewOverlayModel() *OverlayModel {
	return &OverlayModel{}
}

// Show points the overlay at an image and caption.
func (m *OverlayModel) Show(image, caption string) {
	m.image = image
	m.caption = caption
}

// Init initializes the overlay
func (m *OverlayModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the overlay
func (m *OverlayModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		if size, ok := msg.(tea.WindowSizeMsg); ok {
			m.width = size.Width
			m.height = size.Height
		}
		return m, nil
	}

	switch keyMsg.String() {
	case "esc", "enter", "o", "q":
		return m, func() tea.Msg { return CloseOverlayMsg{} }

	case "y":
		clipboard.WriteAll(m.image)
		return m, func() tea.Msg { return StatusMsg{Text: "Copied " + m.image} }
	}

	return m, nil
}

// View renders the overlay
func (m *OverlayModel) View() string {
	var b strings.Builder

	b.WriteString(m.image)
	b.WriteString("\n")
	b.WriteString(styles.OverlayCaption.Render(m.caption))
	b.WriteString("\n\n")
	b.WriteString(renderHelp(
		"y", "copy path",
		"esc", "close",
	))

	return styles.Overlay.Render(b.String())
}

// SetSize updates the view dimensions
func (m *OverlayModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}
