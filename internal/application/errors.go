package application

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions
var (
	ErrNotFound          = errors.New("not found")
	ErrAuthRequired      = errors.New("edit key required")
	ErrEditInFlight      = errors.New("an edit is already being persisted")
	ErrMergeNeedsConfirm = errors.New("merge requires confirmation")
)

// maxDetailLen bounds the server-provided detail carried in error messages.
const maxDetailLen = 200

// ValidationError represents a validation failure with details
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// TransportError represents a terminal persistence failure: a network
// error or a non-2xx response other than 401. Detail holds a bounded
// excerpt of the server's diagnostic, empty when none was available.
type TransportError struct {
	Status int
	Detail string
}

// NewTransportError builds a TransportError, truncating the detail excerpt.
func NewTransportError(status int, detail string) *TransportError {
	if len(detail) > maxDetailLen {
		detail = detail[:maxDetailLen]
	}
	return &TransportError{Status: status, Detail: detail}
}

func (e *TransportError) Error() string {
	if e.Detail == "" {
		if e.Status == 0 {
			return "save failed: unknown error"
		}
		return fmt.Sprintf("save failed: server returned %d", e.Status)
	}
	return fmt.Sprintf("save failed: %s", e.Detail)
}

// MergeError signals that a rename targets an existing item and needs
// explicit confirmation before proceeding as a merge. It is raised before
// the model is mutated; it is not a terminal failure.
type MergeError struct {
	OldName string
	NewName string
}

func (e *MergeError) Error() string {
	return fmt.Sprintf("%q already exists: renaming %q would merge them", e.NewName, e.OldName)
}

func (e *MergeError) Is(target error) bool {
	return target == ErrMergeNeedsConfirm
}
