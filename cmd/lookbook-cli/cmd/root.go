package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"lookbook/internal/adapters/remotestore"
	"lookbook/internal/application"
	"lookbook/internal/config"
	"lookbook/internal/domain"
)

var (
	dataURL     string
	fallbackURL string
	editKey     string

	catalog *domain.Catalog
	session *application.EditSession
)

var rootCmd = &cobra.Command{
	Use:   "lookbook-cli",
	Short: "CLI for browsing and editing a lookbook catalog",
	Long: `lookbook-cli is a command-line interface for a lookbook catalog:
named items linked to the source pages they appear on.

It provides commands to search, inspect items and pages, list categories,
edit or trash items, and pull the raw snapshot.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}

		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if dataURL == "" {
			dataURL = cfg.DataURL
		}
		if fallbackURL == "" {
			fallbackURL = cfg.FallbackURL
		}
		if editKey == "" {
			editKey = cfg.EditKey
		}

		store := remotestore.New(dataURL, fallbackURL)
		catalog, err = store.Load(context.Background())
		if err != nil {
			return err
		}
		session = application.NewEditSession(store, catalog)
		session.SetCredential(editKey)
		return nil
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dataURL, "data-url", "", "snapshot endpoint (defaults to config)")
	rootCmd.PersistentFlags().StringVar(&fallbackURL, "fallback-url", "", "secondary read-only snapshot URL")
	rootCmd.PersistentFlags().StringVarP(&editKey, "edit-key", "k", "", "edit key authorizing writes")
}

// GetCatalog returns the loaded catalog
func GetCatalog() *domain.Catalog {
	return catalog
}

// GetSession returns the initialized edit session
func GetSession() *application.EditSession {
	return session
}
