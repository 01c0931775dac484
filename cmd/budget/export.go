package main

import (
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/Veraticus/budget/internal/cli"
	"github.com/Veraticus/budget/internal/export"
	"github.com/Veraticus/budget/internal/model"
	"github.com/spf13/cobra"
)

func exportCmd() *cobra.Command {
	var (
		formatName string
		typeFilter string
		output     string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export transactions as JSON, CSV or YAML",
		Example: `  budget export --format csv --output ledger.csv
  budget export --type income --format yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := export.ParseFormat(formatName)
			if err != nil {
				return err
			}
			types, err := parseTypeFilter(typeFilter)
			if err != nil {
				return err
			}

			store, _, err := openStores()
			if err != nil {
				return err
			}
			all, err := store.Load(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to load transactions: %w", err)
			}

			selected := make([]model.Transaction, 0, len(all))
			for _, t := range all {
				if slices.Contains(types, t.Type) {
					selected = append(selected, t)
				}
			}

			var w io.Writer = cmd.OutOrStdout()
			if output != "" && output != "-" {
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("failed to create %s: %w", output, err)
				}
				defer f.Close()
				w = f
			}

			if err := export.Write(w, format, selected); err != nil {
				return err
			}

			if output != "" && output != "-" {
				fmt.Fprintln(cmd.ErrOrStderr(), cli.FormatSuccess(fmt.Sprintf("Exported %d transactions to %s", len(selected), output)))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&formatName, "format", "f", "json", "output format (json, csv, yaml)")
	cmd.Flags().StringVar(&typeFilter, "type", "all", "only export this type (expense, income, all)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to this file instead of stdout")
	return cmd
}
