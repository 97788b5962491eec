package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"lookbook/internal/adapters/remotestore"
	"lookbook/internal/adapters/tui"
	"lookbook/internal/application"
	"lookbook/internal/config"
	"lookbook/internal/navigation"
)

func main() {
	openFlag := flag.String("open", "", `deep link to open, e.g. "item=Red+Jacket" or "page=src_page_3"`)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Initialize adapters
	store := remotestore.New(cfg.DataURL, cfg.FallbackURL)
	catalog, err := store.Load(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	session := application.NewEditSession(store, catalog)
	session.SetCredential(cfg.EditKey)

	// Create and run TUI app
	app := tui.NewApp(session, navigation.Decode(*openFlag))

	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
