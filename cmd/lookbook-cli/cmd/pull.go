package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var pullOutput string

var pullCmd = &cobra.Command{
	Use:   "pull",
	Short: "Fetch the raw catalog snapshot",
	Long: `Fetch the catalog snapshot and print it as canonical JSON, or write
it to a file with --output. Useful for backups and for seeding a local
lookbookd.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := GetCatalog().Canonical()
		if err != nil {
			return err
		}

		pretty, err := indent(raw)
		if err != nil {
			return err
		}

		if pullOutput != "" {
			if err := os.WriteFile(pullOutput, pretty, 0o644); err != nil {
				return err
			}
			fmt.Printf("Wrote %s\n", pullOutput)
			return nil
		}

		fmt.Println(string(pretty))
		return nil
	},
}

func indent(raw []byte) ([]byte, error) {
	out := make(map[string]json.RawMessage)
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return json.MarshalIndent(out, "", "  ")
}

func init() {
	pullCmd.Flags().StringVarP(&pullOutput, "output", "o", "", "write the snapshot to a file")
	rootCmd.AddCommand(pullCmd)
}
