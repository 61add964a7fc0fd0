package main

import (
	"encoding/json"
	"fmt"

	"github.com/jonathan/resume-analyzer/internal/catalog"
	"github.com/jonathan/resume-analyzer/internal/observability"
	"github.com/spf13/cobra"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Validate and print a skill catalog",
	Long:  "Loads the embedded skill catalog, or the file given with --catalog, validates it against the catalog schema and prints it.",
	RunE:  runCatalog,
}

var (
	catalogFile string
	catalogJSON bool
)

func init() {
	catalogCmd.Flags().StringVar(&catalogFile, "catalog", "", "Path to a custom skill catalog JSON file")
	catalogCmd.Flags().BoolVar(&catalogJSON, "json", false, "Print the catalog as JSON")

	rootCmd.AddCommand(catalogCmd)
}

func runCatalog(cmd *cobra.Command, _ []string) error {
	cat, err := catalog.Load(catalogFile)
	if err != nil {
		return fmt.Errorf("failed to load skill catalog: %w", err)
	}

	if !catalogJSON {
		observability.NewPrinter(cmd.OutOrStdout()).PrintCatalog(cat)
		return nil
	}

	data, err := json.MarshalIndent(cat, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s\n", data)
	return err
}
