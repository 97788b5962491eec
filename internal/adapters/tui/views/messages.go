package views

// Messages exchanged between the views and the app model.

// ShowItemMsg asks the app to navigate to an item's detail view.
type ShowItemMsg struct {
	Name string
}

// ShowPageMsg asks the app to navigate to a page's detail view.
type ShowPageMsg struct {
	Key string
}

// BackMsg asks the app to navigate back.
type BackMsg struct{}

// OpenOverlayMsg asks the app to open the image overlay.
type OpenOverlayMsg struct {
	Image   string
	Caption string
}

// CloseOverlayMsg asks the app to close the overlay via explicit user
// action (not a back traversal).
type CloseOverlayMsg struct{}

// StartEditMsg asks the app to open the edit form for an item.
type StartEditMsg struct {
	Name string
}

// EditSubmitMsg carries a completed edit form.
type EditSubmitMsg struct {
	OldName      string
	NewName      string
	Category     string
	Trashed      bool
	ConfirmMerge bool
}

// EditCancelMsg closes the edit form without applying anything.
type EditCancelMsg struct{}

// CredentialMsg carries the edit key typed at the prompt.
type CredentialMsg struct {
	Key string
}

// CredentialCancelMsg means the user declined to supply an edit key.
type CredentialCancelMsg struct{}

// StatusMsg is a transient toast-style notification.
type StatusMsg struct {
	Text  string
	IsErr bool
}
