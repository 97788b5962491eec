package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"lookbook/internal/application/commands"
	"lookbook/internal/domain"
)

// RegisterReadTools adds the read-only catalog tools to the MCP server.
func RegisterReadTools(s *server.MCPServer, catalog *domain.Catalog) {
	s.AddTool(searchTool(), searchHandler(catalog))
	s.AddTool(itemTool(), itemHandler(catalog))
	s.AddTool(pageTool(), pageHandler(catalog))
	s.AddTool(categoriesTool(), categoriesHandler(catalog))
}

// --- search ---

func searchTool() mcp.Tool {
	return mcp.NewTool("search",
		mcp.WithDescription("Fuzzy-search catalog items by name. Returns matching items with category and page count."),
		mcp.WithString("query",
			mcp.Description("Search query; empty lists every item"),
		),
	)
}

func searchHandler(catalog *domain.Catalog) server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		query := req.GetString("query", "")

		results := commands.NewSearchCommand(catalog, query).Execute()
		if len(results) == 0 {
			return mcp.NewToolResultText("No results found."), nil
		}

		var sb strings.Builder
		for _, r := range results {
			flag := ""
			if r.Trashed {
				flag = "  (trashed)"
			}
			fmt.Fprintf(&sb, "%s  [%s]  %d page(s)%s\n", r.Name, r.Category, len(r.Pages), flag)
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- item ---

func itemTool() mcp.Tool {
	return mcp.NewTool("item",
		mcp.WithDescription("Show the pages an item appears on."),
		mcp.WithString("name",
			mcp.Description("Exact item name"),
			mcp.Required(),
		),
	)
}

func itemHandler(catalog *domain.Catalog) server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		name := req.GetString("name", "")
		if name == "" {
			return toolError(fmt.Errorf("name is required"))
		}
		pages, ok := catalog.Items[name]
		if !ok {
			return toolError(fmt.Errorf("unknown item: %s", name))
		}

		category, trashed := catalog.ResolveItemMeta(name)
		var sb strings.Builder
		fmt.Fprintf(&sb, "%s  [%s]", name, category)
		if trashed {
			sb.WriteString("  (trashed)")
		}
		sb.WriteString("\n")
		for _, key := range pages {
			fmt.Fprintf(&sb, "%s  %s  %s\n", key, catalog.PageCaption(key), catalog.ImagePath(key))
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- page ---

func pageTool() mcp.Tool {
	return mcp.NewTool("page",
		mcp.WithDescription("Show the items on a page."),
		mcp.WithString("key",
			mcp.Description("Prefixed page key (e.g. fall_page_3)"),
			mcp.Required(),
		),
	)
}

func pageHandler(catalog *domain.Catalog) server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		key := req.GetString("key", "")
		if key == "" {
			return toolError(fmt.Errorf("key is required"))
		}
		entries, ok := catalog.Pages[key]
		if !ok {
			return toolError(fmt.Errorf("unknown page: %s", key))
		}

		var sb strings.Builder
		fmt.Fprintf(&sb, "%s  %s\n", catalog.PageCaption(key), catalog.ImagePath(key))
		for _, entry := range entries {
			flag := ""
			if entry.Trashed {
				flag = "  (trashed)"
			}
			fmt.Fprintf(&sb, "%s  [%s]%s\n", entry.Name, entry.Category, flag)
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- categories ---

func categoriesTool() mcp.Tool {
	return mcp.NewTool("categories",
		mcp.WithDescription("List the configured category order with item counts."),
	)
}

func categoriesHandler(catalog *domain.Catalog) server.ToolHandlerFunc {
	return func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		grouped := catalog.CategorizeForRender()

		var sb strings.Builder
		for _, category := range catalog.Categories() {
			icon := catalog.CategoryIcon(category)
			if icon != "" {
				icon += " "
			}
			fmt.Fprintf(&sb, "%s%s  %d item(s)\n", icon, category, len(grouped[category]))
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- helpers ---

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}
