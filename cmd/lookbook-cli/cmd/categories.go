package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List categories and item counts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog := GetCatalog()
		grouped := catalog.CategorizeForRender()

		for _, category := range catalog.Categories() {
			icon := catalog.CategoryIcon(category)
			if icon != "" {
				icon += " "
			}
			fmt.Printf("%s%s (%d items)\n", icon, category, len(grouped[category]))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(categoriesCmd)
}
