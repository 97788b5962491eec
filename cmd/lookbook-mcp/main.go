package main

import (
	"context"
	"flag"
	"log"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	mcpadapter "lookbook/internal/adapters/mcp"
	"lookbook/internal/adapters/remotestore"
	"lookbook/internal/application"
	"lookbook/internal/config"
)

func main() {
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("lookbook-mcp: %v", err)
	}

	store := remotestore.New(cfg.DataURL, cfg.FallbackURL)
	catalog, err := store.Load(context.Background())
	if err != nil {
		log.Fatalf("lookbook-mcp: %v", err)
	}

	session := application.NewEditSession(store, catalog)
	session.SetCredential(cfg.EditKey)

	mcpServer := server.NewMCPServer(
		"lookbook-mcp",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	mcpServer.AddTool(
		mcp.NewTool("ping",
			mcp.WithDescription("Health check — returns pong"),
		),
		func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText("pong"), nil
		},
	)

	mcpadapter.RegisterReadTools(mcpServer, catalog)
	mcpadapter.RegisterWriteTools(mcpServer, session)

	if err := server.ServeStdio(mcpServer); err != nil {
		log.Fatalf("lookbook-mcp: %v", err)
	}
}
