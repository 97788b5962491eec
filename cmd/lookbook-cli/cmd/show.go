package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"lookbook/internal/application"
)

var showCmd = &cobra.Command{
	Use:   "show <item>",
	Short: "Show an item and the pages it appears on",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog := GetCatalog()
		name := args[0]

		if !catalog.HasItem(name) {
			return fmt.Errorf("item %q: %w", name, application.ErrNotFound)
		}

		category, trashed := catalog.ResolveItemMeta(name)
		fmt.Printf("%s [%s]", name, category)
		if trashed {
			fmt.Print(" (trashed)")
		}
		fmt.Println()

		for _, pageKey := range catalog.Items[name] {
			fmt.Printf("  %-12s %s\n", catalog.PageCaption(pageKey), catalog.ImagePath(pageKey))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}
