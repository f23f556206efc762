package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/claimsift/claimsift/internal/corpus"
	"github.com/spf13/cobra"
)

var inventoryOut string

// inventoryCmd represents the inventory command
var inventoryCmd = &cobra.Command{
	Use:   "inventory <corpus-dir>",
	Short: "Scan a corpus and summarize its documents",
	Long: `Inventory walks a corpus directory (one subdirectory per state) and
classifies every document from its filename: document type, managed-care
organization, and procurement year.

Example:
  claimsift inventory ./corpus
  claimsift inventory ./corpus --json inventory.json`,
	Args: cobra.ExactArgs(1),
	RunE: runInventory,
}

func init() {
	rootCmd.AddCommand(inventoryCmd)

	inventoryCmd.Flags().StringVar(&inventoryOut, "json", "", "write the full inventory as JSON")
}

func runInventory(cmd *cobra.Command, args []string) error {
	inv, err := corpus.NewScanner().Scan(args[0])
	if err != nil {
		return fmt.Errorf("scan corpus: %w", err)
	}

	fmt.Printf("Documents: %d\n\n", len(inv.Documents))

	fmt.Println("By state:")
	printCounts(inv.ByState)
	fmt.Println("\nBy document type:")
	printCounts(inv.ByType)
	fmt.Println("\nBy organization:")
	printCounts(inv.ByOrganization)

	if len(inv.ByYear) > 0 {
		fmt.Println("\nBy year:")
		years := make([]int, 0, len(inv.ByYear))
		for y := range inv.ByYear {
			years = append(years, y)
		}
		sort.Ints(years)
		for _, y := range years {
			fmt.Printf("  %d: %d\n", y, inv.ByYear[y])
		}
	}

	if inventoryOut != "" {
		data, err := json.MarshalIndent(inv, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal inventory: %w", err)
		}
		if err := os.WriteFile(inventoryOut, data, 0o644); err != nil {
			return fmt.Errorf("write inventory: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "Wrote inventory: %s\n", inventoryOut)
		}
	}

	return nil
}

func printCounts(counts map[string]int) {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Printf("  %s: %d\n", k, counts[k])
	}
}
