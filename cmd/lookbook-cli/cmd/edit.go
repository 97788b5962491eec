package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"lookbook/internal/application"
	"lookbook/internal/application/commands"
	"lookbook/internal/domain"
	"lookbook/internal/ports"
)

var (
	editNewName  string
	editCategory string
	editTrash    bool
	editRestore  bool
	editYes      bool
)

var editCmd = &cobra.Command{
	Use:   "edit <item>",
	Short: "Rename, recategorize or trash an item",
	Long: `Apply a compound edit to an item: new name, category and trashed flag
in one operation.

Renaming to a name that already exists merges the two items; the merge
must be confirmed (interactively, or with --yes).

Examples:
  lookbook-cli edit "Red Jacket" --name "Crimson Jacket"
  lookbook-cli edit Hat --name Cap --yes
  lookbook-cli edit Scarf --trash`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		oldName := args[0]
		catalog := GetCatalog()

		category, trashed := catalog.ResolveItemMeta(oldName)
		if editNewName == "" {
			editNewName = oldName
		}
		if editCategory == "" {
			editCategory = category
		}
		if editCategory == "" {
			editCategory = domain.DefaultCategory
		}
		if editTrash {
			trashed = true
		}
		if editRestore {
			trashed = false
		}

		edit := commands.NewEditCommand(GetSession(), oldName, editNewName, editCategory, trashed)
		edit.ConfirmMerge = editYes

		if err := edit.Validate(); err != nil {
			var mergeErr *application.MergeError
			if !errors.As(err, &mergeErr) {
				return err
			}
			if !confirm(fmt.Sprintf("%q already exists. Merge %q into it?", mergeErr.NewName, mergeErr.OldName)) {
				fmt.Println("Aborted")
				return nil
			}
			edit.ConfirmMerge = true
		}

		result, err := edit.Execute(context.Background(), ports.CredentialPrompterFunc(promptEditKey))
		if err != nil {
			return err
		}

		fmt.Println(result.Message)
		return nil
	},
}

// confirm asks a y/n question on the terminal.
func confirm(question string) bool {
	fmt.Printf("%s [y/N] ", question)
	reader := bufio.NewReader(os.Stdin)
	answer, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(answer), "y")
}

// promptEditKey reads the edit key without echoing it.
func promptEditKey() (string, bool) {
	fmt.Fprint(os.Stderr, "Edit key: ")
	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", false
	}
	key := strings.TrimSpace(string(raw))
	return key, key != ""
}

func init() {
	editCmd.Flags().StringVarP(&editNewName, "name", "n", "", "new item name (rename or merge)")
	editCmd.Flags().StringVarP(&editCategory, "category", "c", "", "new category")
	editCmd.Flags().BoolVar(&editTrash, "trash", false, "move the item to the trash")
	editCmd.Flags().BoolVar(&editRestore, "restore", false, "restore the item from the trash")
	editCmd.Flags().BoolVarP(&editYes, "yes", "y", false, "confirm a merge without prompting")
	editCmd.MarkFlagsMutuallyExclusive("trash", "restore")
	rootCmd.AddCommand(editCmd)
}
