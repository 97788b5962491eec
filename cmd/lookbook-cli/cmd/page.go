package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"lookbook/internal/application"
)

var pageCmd = &cobra.Command{
	Use:   "page <page-key>",
	Short: "Show the items on a page",
	Long: `Show the items recorded on one source page.

The page key is the source-prefixed form, e.g. src_page_3.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog := GetCatalog()
		pageKey := args[0]

		entries, ok := catalog.Pages[pageKey]
		if !ok {
			return fmt.Errorf("page %q: %w", pageKey, application.ErrNotFound)
		}

		fmt.Printf("%s  %s\n", catalog.PageCaption(pageKey), catalog.ImagePath(pageKey))
		for _, entry := range entries {
			marker := " "
			if entry.Trashed {
				marker = "x"
			}
			fmt.Printf("  [%s] %-12s %s\n", marker, entry.Category, entry.Name)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(pageCmd)
}
