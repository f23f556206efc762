package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/claimsift/claimsift/internal/aggregate"
	"github.com/claimsift/claimsift/internal/model"
	"github.com/spf13/cobra"
)

var codesOut string

// codesCmd represents the codes command
var codesCmd = &cobra.Command{
	Use:   "codes <results-dir>",
	Short: "Tally extracted claims against the coding taxonomies",
	Long: `Codes reads the claim inventory written by an analyze run and produces
one frequency table per coding axis: domain, clinical area, evidence
type, claim type and quantification.

Codes outside an axis vocabulary contribute nothing to that axis.

Example:
  claimsift codes ./analysis_outputs
  claimsift codes ./analysis_outputs --json code_frequencies.json`,
	Args: cobra.ExactArgs(1),
	RunE: runCodes,
}

func init() {
	rootCmd.AddCommand(codesCmd)

	codesCmd.Flags().StringVar(&codesOut, "json", "", "write frequency tables as JSON")
}

func runCodes(cmd *cobra.Command, args []string) error {
	path := filepath.Join(args[0], "claim_inventory_full.json")
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read claim inventory: %w", err)
	}

	var claims []model.Claim
	if err := json.Unmarshal(data, &claims); err != nil {
		return fmt.Errorf("parse claim inventory: %w", err)
	}

	summary := aggregate.Summarize(claims)

	fmt.Printf("Claims: %d\n", summary.TotalClaims)
	for _, tax := range model.Taxonomies() {
		axis := summary.Axes[tax.Axis]
		fmt.Printf("\n%s (coded: %d)\n", tax.Axis, axis.Total)
		for _, code := range tax.Codes {
			fmt.Printf("  %-7s %-30s %d\n", code, tax.Labels[code], axis.Counts[code])
		}
	}

	if codesOut != "" {
		data, err := json.MarshalIndent(summary, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal summary: %w", err)
		}
		if err := os.WriteFile(codesOut, data, 0o644); err != nil {
			return fmt.Errorf("write summary: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "Wrote code frequencies: %s\n", codesOut)
		}
	}

	return nil
}
