package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var catalogOut string

// catalogCmd katalog xlsx vositalari
var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Catalog xlsx tools",
}

var catalogExportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Write the current catalog (builtin or CATALOG_XLSX) to an xlsx file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := "catalog.xlsx"
		if len(args) == 1 {
			path = args[0]
		}

		a, err := newApp(cmd.Context(), cfg, logger)
		if err != nil {
			return err
		}
		defer a.Close()

		data, err := a.products.ExportCatalog(cmd.Context())
		if err != nil {
			return err
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "catalog written to %s\n", path)
		return nil
	},
}

var catalogImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Parse an xlsx catalog, print its summary and optionally rewrite it normalized",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", args[0], err)
		}

		a, err := newApp(ctx, cfg, logger)
		if err != nil {
			return err
		}
		defer a.Close()

		count, err := a.products.ImportCatalog(ctx, data, filepath.Base(args[0]))
		if err != nil {
			return err
		}
		info, err := a.products.GetCatalogInfo(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "imported %d products\n\n%s", count, info)

		if catalogOut != "" {
			normalized, err := a.products.ExportCatalog(ctx)
			if err != nil {
				return err
			}
			if err := os.WriteFile(catalogOut, normalized, 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", catalogOut, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "\nnormalized catalog written to %s\n", catalogOut)
		}
		return nil
	},
}

func init() {
	catalogImportCmd.Flags().StringVarP(&catalogOut, "out", "o", "", "write the parsed catalog back as normalized xlsx")
	catalogCmd.AddCommand(catalogExportCmd, catalogImportCmd)
}
