package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"lookbook/internal/application/commands"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search the catalog",
	Long: `Search for items by name using fuzzy matching.

Every word of the query must match some word of the item name, either by
containment or within a small typo distance.

Examples:
  lookbook-cli search jacket
  lookbook-cli search "red jaket"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := args[0]

		results := commands.NewSearchCommand(GetCatalog(), query).Execute()
		if len(results) == 0 {
			fmt.Println("No results found")
			return nil
		}

		for _, r := range results {
			marker := " "
			if r.Trashed {
				marker = "x"
			}
			fmt.Printf("[%s] %-12s %s (%d pages)\n", marker, r.Category, r.Name, len(r.Pages))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
}
