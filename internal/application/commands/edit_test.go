package commands

import (
	"context"
	"errors"
	"testing"

	"lookbook/internal/application"
	"lookbook/internal/domain"
)

type stubStore struct {
	saveErr error
}

func (s *stubStore) Load(ctx context.Context) (*domain.Catalog, error) {
	return domain.NewCatalog(), nil
}

func (s *stubStore) Save(ctx context.Context, snapshot *domain.Catalog, credential string) (*domain.Catalog, error) {
	if s.saveErr != nil {
		return nil, s.saveErr
	}
	return snapshot.Clone(), nil
}

func testSession(saveErr error) *application.EditSession {
	c := domain.NewCatalog()
	c.Items = map[string][]string{
		"Hat": {"src_page_1"},
		"Cap": {"src_page_3"},
	}
	c.Pages = map[string][]domain.PageEntry{
		"src_page_1": {{Name: "Hat", Category: "Accessories"}},
		"src_page_3": {{Name: "Cap", Category: "Accessories"}},
	}
	return application.NewEditSession(&stubStore{saveErr: saveErr}, c)
}

func TestEditCommand_Validate(t *testing.T) {
	tests := []struct {
		name         string
		oldName      string
		newName      string
		confirmMerge bool
		wantErr      error
	}{
		{
			name:    "plain rename",
			oldName: "Hat",
			newName: "Beanie",
		},
		{
			name:    "same name edit",
			oldName: "Hat",
			newName: "Hat",
		},
		{
			name:    "empty name",
			oldName: "Hat",
			newName: "   ",
			wantErr: nil, // ValidationError, checked below
		},
		{
			name:    "unknown item",
			oldName: "Boots",
			newName: "Shoes",
			wantErr: application.ErrNotFound,
		},
		{
			name:    "unconfirmed merge",
			oldName: "Hat",
			newName: "Cap",
			wantErr: application.ErrMergeNeedsConfirm,
		},
		{
			name:         "confirmed merge",
			oldName:      "Hat",
			newName:      "Cap",
			confirmMerge: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := NewEditCommand(testSession(nil), tt.oldName, tt.newName, "Accessories", false)
			cmd.ConfirmMerge = tt.confirmMerge

			err := cmd.Validate()
			switch {
			case tt.name == "empty name":
				var valErr *application.ValidationError
				if !errors.As(err, &valErr) {
					t.Errorf("error = %v, want ValidationError", err)
				}
			case tt.wantErr != nil:
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("error = %v, want %v", err, tt.wantErr)
				}
			default:
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
			}
		})
	}
}

func TestEditCommand_MergeErrorNamesBothItems(t *testing.T) {
	cmd := NewEditCommand(testSession(nil), "Hat", "Cap", "Accessories", false)

	err := cmd.Validate()
	var mergeErr *application.MergeError
	if !errors.As(err, &mergeErr) {
		t.Fatalf("error = %v, want MergeError", err)
	}
	if mergeErr.OldName != "Hat" || mergeErr.NewName != "Cap" {
		t.Errorf("merge error = %+v", mergeErr)
	}
}

func TestEditCommand_ExecuteRename(t *testing.T) {
	session := testSession(nil)
	cmd := NewEditCommand(session, "Hat", "Beanie", "Accessories", false)

	result, err := cmd.Execute(context.Background(), nil)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if result.Merged {
		t.Error("plain rename reported as merge")
	}
	if result.Message != "Renamed Hat to Beanie" {
		t.Errorf("message = %q", result.Message)
	}
	if !session.Catalog().HasItem("Beanie") {
		t.Error("rename not applied")
	}
}

func TestEditCommand_ExecuteMerge(t *testing.T) {
	session := testSession(nil)
	cmd := NewEditCommand(session, "Hat", "Cap", "Accessories", false)
	cmd.ConfirmMerge = true

	result, err := cmd.Execute(context.Background(), nil)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if !result.Merged {
		t.Error("merge not reported")
	}
	if result.Message != "Merged Hat into Cap" {
		t.Errorf("message = %q", result.Message)
	}

	want := []string{"src_page_1", "src_page_3"}
	got := session.Catalog().Items["Cap"]
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("Cap pages = %v, want %v", got, want)
	}
}

func TestEditCommand_ExecuteSameNameUpdate(t *testing.T) {
	session := testSession(nil)
	cmd := NewEditCommand(session, "Hat", "Hat", "Headwear", true)

	result, err := cmd.Execute(context.Background(), nil)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if result.Message != "Updated Hat" {
		t.Errorf("message = %q", result.Message)
	}

	category, trashed := session.Catalog().ResolveItemMeta("Hat")
	if category != "Headwear" || !trashed {
		t.Errorf("meta = (%q, %v)", category, trashed)
	}
}

func TestEditCommand_ExecuteRollsBackOnStoreError(t *testing.T) {
	session := testSession(application.NewTransportError(500, "boom"))
	cmd := NewEditCommand(session, "Hat", "Beanie", "Accessories", false)

	if _, err := cmd.Execute(context.Background(), nil); err == nil {
		t.Fatal("expected store failure to surface")
	}
	if session.Catalog().HasItem("Beanie") {
		t.Error("failed edit left the rename applied")
	}
	if !session.Catalog().HasItem("Hat") {
		t.Error("rollback lost the original item")
	}
}
