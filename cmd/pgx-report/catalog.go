package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pgxtools/pgx-report/internal/catalog"
)

func newCatalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect and export the marker catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCatalogInfo()
		},
	}

	cmd.AddCommand(newCatalogInfoCmd())
	cmd.AddCommand(newCatalogExportCmd())

	return cmd
}

func newCatalogInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show panel genes, marker counts and rule counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCatalogInfo()
		},
	}
}

func newCatalogExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export <output-file>",
		Short: "Export the built-in catalog to a DuckDB file",
		Example: `  pgx-report catalog export catalog.duckdb
  pgx-report analyze --catalog-db catalog.duckdb patient.vcf`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCatalogExport(args[0])
		},
	}
}

func runCatalogInfo() error {
	tables := catalog.Default()

	fmt.Printf("Panel genes: %d\n", len(catalog.TargetGenes))
	for _, gene := range catalog.TargetGenes {
		markers := 0
		for _, m := range tables.Markers() {
			if m.Gene == gene {
				markers++
			}
		}
		fmt.Printf("  %-8s  drug=%-12s  markers=%d\n", gene, catalog.DrugFor(gene), markers)
	}
	fmt.Printf("Markers: %d\n", tables.MarkerCount())
	fmt.Printf("Guideline rules: %d\n", tables.RuleCount())
	return nil
}

func runCatalogExport(path string) error {
	if filepath.Ext(path) != ".duckdb" && filepath.Ext(path) != ".db" {
		path = path + ".duckdb"
	}

	store, err := catalog.OpenStore(path)
	if err != nil {
		return fmt.Errorf("creating catalog database: %w", err)
	}
	defer store.Close()

	if err := store.CreateSchema(); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}

	tables := catalog.Default()
	if err := store.Export(tables); err != nil {
		return fmt.Errorf("exporting catalog: %w", err)
	}

	fmt.Printf("Exported %d markers and %d rules to %s\n",
		tables.MarkerCount(), tables.RuleCount(), path)
	return nil
}
