package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"lookbook/internal/adapters/tui/styles"
	"lookbook/internal/adapters/tui/views"
	"lookbook/internal/application"
	"lookbook/internal/application/commands"
	"lookbook/internal/domain"
	"lookbook/internal/navigation"
)

// statusTimeout is how long a toast stays on screen.
const statusTimeout = 4 * time.Second

// mode is which surface owns the keyboard. Browsing is driven by the
// history stack; the edit form and the credential prompt sit outside it.
type mode int

const (
	modeBrowse mode = iota
	modeEdit
	modePrompt
)

// App is the main TUI application model
type App struct {
	session *application.EditSession
	catalog *domain.Catalog
	history *navigation.History

	mode mode

	collection *views.CollectionModel
	item       *views.ItemModel
	page       *views.PageModel
	editForm   *views.EditFormModel
	keyPrompt  *views.KeyPromptModel
	overlay    *views.OverlayModel

	status    string
	statusErr bool
	statusSeq int

	width  int
	height int
}

// NewApp creates the TUI application over an edit session, starting at the
// given route (the collection, or a deep link to an item or page).
func NewApp(session *application.EditSession, initial navigation.Route) *App {
	catalog := session.Catalog()

	a := &App{
		session:    session,
		catalog:    catalog,
		history:    navigation.NewHistory(initial),
		collection: views.NewCollectionModel(catalog),
		item:       views.NewItemModel(catalog),
		page:       views.NewPageModel(catalog),
		editForm:   views.NewEditFormModel(catalog),
		keyPrompt:  views.NewKeyPromptModel(),
		overlay:    views.NewOverlayModel(),
	}
	a.syncFromHistory()
	return a
}

// Init initializes the application
func (a *App) Init() tea.Cmd {
	return a.collection.Init()
}

// persistDoneMsg carries the outcome of an async store write back to the
// Update loop, which owns the catalog and applies commit or rollback.
type persistDoneMsg struct {
	oldName string
	newName string
	merged  bool
	outcome application.PersistOutcome
}

// statusClearMsg expires a toast. Only the timer whose seq is current
// clears; an older timer must not wipe a newer message.
type statusClearMsg struct {
	seq int
}

// Update handles messages for the application
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.collection.SetSize(msg.Width, msg.Height)
		a.item.SetSize(msg.Width, msg.Height)
		a.page.SetSize(msg.Width, msg.Height)
		a.editForm.SetSize(msg.Width, msg.Height)
		a.keyPrompt.SetSize(msg.Width, msg.Height)
		a.overlay.SetSize(msg.Width, msg.Height)
		return a, nil

	// Navigation messages
	case views.ShowItemMsg:
		a.history.Push(navigation.ItemRoute(msg.Name))
		a.syncFromHistory()
		return a, nil

	case views.ShowPageMsg:
		a.history.Push(navigation.PageRoute(msg.Key))
		a.syncFromHistory()
		return a, nil

	case views.BackMsg:
		if !a.history.Back() {
			a.history.NavigateToCollection()
		}
		a.syncFromHistory()
		return a, nil

	case views.OpenOverlayMsg:
		a.history.OpenOverlay(msg.Image, msg.Caption)
		a.syncFromHistory()
		return a, nil

	case views.CloseOverlayMsg:
		a.history.CloseOverlay()
		a.syncFromHistory()
		return a, nil

	// Edit flow messages
	case views.StartEditMsg:
		if a.session.InFlight() {
			return a, a.setStatus("A save is already in progress", true)
		}
		a.editForm.Prepare(msg.Name)
		a.mode = modeEdit
		return a, a.editForm.Init()

	case views.EditCancelMsg:
		a.mode = modeBrowse
		return a, nil

	case views.EditSubmitMsg:
		return a.handleEditSubmit(msg)

	case views.CredentialMsg:
		return a, a.retryPersistCmd(msg.Key)

	case views.CredentialCancelMsg:
		a.session.Abort()
		a.refreshViews()
		a.mode = modeBrowse
		return a, a.setStatus("Save cancelled, changes discarded", true)

	case persistDoneMsg:
		return a.handlePersistDone(msg)

	case views.StatusMsg:
		return a, a.setStatus(msg.Text, msg.IsErr)

	case statusClearMsg:
		if msg.seq == a.statusSeq {
			a.status = ""
		}
		return a, nil
	}

	// Delegate to whichever surface owns the keyboard.
	var cmd tea.Cmd
	switch a.mode {
	case modeEdit:
		_, cmd = a.editForm.Update(msg)
	case modePrompt:
		_, cmd = a.keyPrompt.Update(msg)
	default:
		if a.history.ActiveOverlay() != nil {
			_, cmd = a.overlay.Update(msg)
			break
		}
		switch a.history.Route().View {
		case navigation.ViewItem:
			_, cmd = a.item.Update(msg)
		case navigation.ViewPage:
			_, cmd = a.page.Update(msg)
		default:
			_, cmd = a.collection.Update(msg)
		}
	}

	return a, cmd
}

func (a *App) handleEditSubmit(msg views.EditSubmitMsg) (tea.Model, tea.Cmd) {
	edit := commands.NewEditCommand(a.session, msg.OldName, msg.NewName, msg.Category, msg.Trashed)
	edit.ConfirmMerge = msg.ConfirmMerge

	if err := edit.Validate(); err != nil {
		var mergeErr *application.MergeError
		var valErr *application.ValidationError
		switch {
		case errors.As(err, &mergeErr):
			a.editForm.AskMergeConfirm(mergeErr.NewName)
		case errors.As(err, &valErr):
			a.editForm.SetMessage(valErr.Message, true)
		default:
			a.editForm.SetMessage(err.Error(), true)
		}
		return a, nil
	}

	merged := edit.IsMerge()
	newName := strings.TrimSpace(msg.NewName)

	if err := a.session.Begin(msg.OldName, newName, msg.Category, msg.Trashed); err != nil {
		a.editForm.SetMessage(err.Error(), true)
		return a, nil
	}
	if err := a.session.StartPersist(); err != nil {
		a.editForm.SetMessage(err.Error(), true)
		return a, nil
	}

	// The catalog is already mutated; show the result before the save
	// lands.
	a.mode = modeBrowse
	a.refreshViews()
	if route := a.history.Route(); route.View == navigation.ViewItem && route.Item == msg.OldName && newName != msg.OldName {
		a.history.Push(navigation.ItemRoute(newName))
		a.syncFromHistory()
	}

	return a, tea.Batch(
		a.setStatus("Saving...", false),
		a.persistCmd(msg.OldName, newName, merged),
	)
}

// persistCmd and retryPersistCmd run on a bubbletea command goroutine, so
// they must only perform the network write. The catalog is applied to in
// handlePersistDone, back on the Update loop.
func (a *App) persistCmd(oldName, newName string, merged bool) tea.Cmd {
	session := a.session
	return func() tea.Msg {
		out := session.WriteSnapshot(context.Background())
		return persistDoneMsg{oldName: oldName, newName: newName, merged: merged, outcome: out}
	}
}

func (a *App) retryPersistCmd(credential string) tea.Cmd {
	session := a.session
	return func() tea.Msg {
		out := session.WriteSnapshotWith(context.Background(), credential)
		return persistDoneMsg{outcome: out}
	}
}

func (a *App) handlePersistDone(msg persistDoneMsg) (tea.Model, tea.Cmd) {
	err := a.session.FinishPersist(msg.outcome)
	switch {
	case err == nil:
		a.refreshViews()
		a.mode = modeBrowse
		return a, a.setStatus(saveMessage(msg), false)

	case errors.Is(err, application.ErrAuthRequired):
		// Local edit is kept; one retry with a fresh key.
		a.keyPrompt.Reset()
		a.mode = modePrompt
		return a, a.keyPrompt.Init()

	default:
		// FinishPersist rolled the catalog back.
		a.refreshViews()
		a.mode = modeBrowse
		return a, a.setStatus("Save failed, changes reverted: "+err.Error(), true)
	}
}

func saveMessage(msg persistDoneMsg) string {
	switch {
	case msg.merged:
		return fmt.Sprintf("Merged %s into %s", msg.oldName, msg.newName)
	case msg.oldName != "" && msg.oldName != msg.newName:
		return fmt.Sprintf("Renamed %s to %s", msg.oldName, msg.newName)
	case msg.newName != "":
		return "Updated " + msg.newName
	default:
		return "Saved"
	}
}

// syncFromHistory points the views at whatever the current history frame
// describes. View state is always derived from the frame, never tracked on
// the side.
func (a *App) syncFromHistory() {
	frame := a.history.Current()

	switch frame.Route.View {
	case navigation.ViewItem:
		if a.item.Name() != frame.Route.Item {
			a.item.SetItem(frame.Route.Item)
		}
	case navigation.ViewPage:
		if a.page.Key() != frame.Route.Page {
			a.page.SetPage(frame.Route.Page)
		}
	}

	if ov := frame.Overlay; ov != nil {
		a.overlay.Show(ov.Image, ov.Caption)
	}
}

// refreshViews re-reads the catalog after any mutation, rollback, or
// adoption of server state.
func (a *App) refreshViews() {
	a.collection.Refresh()
	a.item.Refresh()
	a.page.Refresh()
}

func (a *App) setStatus(text string, isErr bool) tea.Cmd {
	a.status = text
	a.statusErr = isErr
	a.statusSeq++
	seq := a.statusSeq
	return tea.Tick(statusTimeout, func(time.Time) tea.Msg {
		return statusClearMsg{seq: seq}
	})
}

// View renders the current view
func (a *App) View() string {
	var body string
	switch a.mode {
	case modeEdit:
		body = a.editForm.View()
	case modePrompt:
		body = a.keyPrompt.View()
	default:
		if a.history.ActiveOverlay() != nil {
			body = a.overlay.View()
			break
		}
		switch a.history.Route().View {
		case navigation.ViewItem:
			body = a.item.View()
		case navigation.ViewPage:
			body = a.page.View()
		default:
			body = a.collection.View()
		}
	}

	if a.status != "" {
		style := styles.Success
		if a.statusErr {
			style = styles.ErrorMsg
		}
		body += "\n" + style.Render(a.status)
	}

	return body
}
