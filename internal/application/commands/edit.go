package commands

import (
	"context"
	"fmt"
	"strings"

	"lookbook/internal/application"
	"lookbook/internal/ports"
)

// EditResult contains the result of an edit operation
type EditResult struct {
	OldName string
	NewName string
	Merged  bool
	Message string
}

// EditCommand renames, recategorizes and/or trashes an item, merging into
// an existing item when the new name is already taken.
type EditCommand struct {
	session *application.EditSession

	OldName      string
	NewName      string
	Category     string
	Trashed      bool
	ConfirmMerge bool
}

// NewEditCommand creates a new EditCommand
func NewEditCommand(session *application.EditSession, oldName, newName, category string, trashed bool) *EditCommand {
	return &EditCommand{
		session:  session,
		OldName:  oldName,
		NewName:  newName,
		Category: category,
		Trashed:  trashed,
	}
}

// IsMerge reports whether executing this edit would merge two items.
func (c *EditCommand) IsMerge() bool {
	newName := strings.TrimSpace(c.NewName)
	return newName != c.OldName && c.session.Catalog().HasItem(newName)
}

// Validate checks the edit before any mutation. A merge that has not been
// confirmed is rejected here, so the caller can ask the user and retry.
func (c *EditCommand) Validate() error {
	if strings.TrimSpace(c.NewName) == "" {
		return &application.ValidationError{
			Field:   "name",
			Message: "name is required",
		}
	}

	if !c.session.Catalog().HasItem(c.OldName) {
		return fmt.Errorf("item %q: %w", c.OldName, application.ErrNotFound)
	}

	if c.IsMerge() && !c.ConfirmMerge {
		return &application.MergeError{OldName: c.OldName, NewName: strings.TrimSpace(c.NewName)}
	}

	return nil
}

// Execute runs the edit through the session: optimistic local apply,
// persist, rollback on failure.
func (c *EditCommand) Execute(ctx context.Context, prompter ports.CredentialPrompter) (*EditResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	merged := c.IsMerge()
	newName := strings.TrimSpace(c.NewName)

	if err := c.session.Run(ctx, c.OldName, newName, c.Category, c.Trashed, prompter); err != nil {
		return nil, err
	}

	message := fmt.Sprintf("Updated %s", newName)
	if merged {
		message = fmt.Sprintf("Merged %s into %s", c.OldName, newName)
	} else if c.OldName != newName {
		message = fmt.Sprintf("Renamed %s to %s", c.OldName, newName)
	}

	return &EditResult{
		OldName: c.OldName,
		NewName: newName,
		Merged:  merged,
		Message: message,
	}, nil
}
