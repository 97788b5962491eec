package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"lookbook/internal/application"
	"lookbook/internal/application/commands"
)

// RegisterWriteTools adds the editing tools to the MCP server. All edits
// run through the shared session, so they are serialized and roll back on
// persistence failure like every other client.
func RegisterWriteTools(s *server.MCPServer, session *application.EditSession) {
	s.AddTool(editTool(), editHandler(session))
	s.AddTool(trashTool(), trashHandler(session))
}

// --- edit ---

func editTool() mcp.Tool {
	return mcp.NewTool("edit",
		mcp.WithDescription("Rename and/or recategorize an item and persist the change. Renaming to an existing item merges the two; set confirm_merge to allow that."),
		mcp.WithString("name",
			mcp.Description("Current item name"),
			mcp.Required(),
		),
		mcp.WithString("new_name",
			mcp.Description("New item name; omit to keep the current name"),
		),
		mcp.WithString("category",
			mcp.Description("New category; omit to keep the resolved category"),
		),
		mcp.WithBoolean("trashed",
			mcp.Description("Soft-delete flag; defaults to the item's current flag"),
		),
		mcp.WithBoolean("confirm_merge",
			mcp.Description("Confirm merging when new_name already exists"),
		),
	)
}

func editHandler(session *application.EditSession) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		name := req.GetString("name", "")
		if name == "" {
			return toolError(fmt.Errorf("name is required"))
		}

		catalog := session.Catalog()
		currentCategory, currentTrashed := catalog.ResolveItemMeta(name)

		newName := req.GetString("new_name", name)
		category := req.GetString("category", currentCategory)
		trashed := req.GetBool("trashed", currentTrashed)

		cmd := commands.NewEditCommand(session, name, newName, category, trashed)
		cmd.ConfirmMerge = req.GetBool("confirm_merge", false)

		result, err := cmd.Execute(ctx, nil)
		if err != nil {
			if errors.Is(err, application.ErrMergeNeedsConfirm) {
				return toolError(fmt.Errorf("%v; re-run with confirm_merge=true", err))
			}
			if errors.Is(err, application.ErrAuthRequired) {
				return toolError(fmt.Errorf("the store rejected the write: configure edit_key (or LOOKBOOK_EDIT_KEY)"))
			}
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- trash ---

func trashTool() mcp.Tool {
	return mcp.NewTool("trash",
		mcp.WithDescription("Set or clear an item's soft-delete flag and persist the change."),
		mcp.WithString("name",
			mcp.Description("Item name"),
			mcp.Required(),
		),
		mcp.WithBoolean("trashed",
			mcp.Description("true to trash, false to restore"),
			mcp.Required(),
		),
	)
}

func trashHandler(session *application.EditSession) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		name := req.GetString("name", "")
		if name == "" {
			return toolError(fmt.Errorf("name is required"))
		}
		trashed := req.GetBool("trashed", true)

		category, _ := session.Catalog().ResolveItemMeta(name)
		cmd := commands.NewEditCommand(session, name, name, category, trashed)

		result, err := cmd.Execute(ctx, nil)
		if err != nil {
			if errors.Is(err, application.ErrAuthRequired) {
				return toolError(fmt.Errorf("the store rejected the write: configure edit_key (or LOOKBOOK_EDIT_KEY)"))
			}
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}
