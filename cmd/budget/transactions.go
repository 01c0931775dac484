package main

import (
	"fmt"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/Veraticus/budget/internal/cli"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

func transactionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transactions",
		Short: "Inspect recorded transactions",
	}
	cmd.AddCommand(listTransactionsCmd())
	return cmd
}

func listTransactionsCmd() *cobra.Command {
	var typeFilter string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List transactions in recorded order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			types, err := parseTypeFilter(typeFilter)
			if err != nil {
				return err
			}

			store, _, err := openStores()
			if err != nil {
				return err
			}

			transactions, err := store.Load(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to load transactions: %w", err)
			}

			out := cmd.OutOrStdout()
			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

			headerStyle := lipgloss.NewStyle().Bold(true).Foreground(cli.PrimaryColor)
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				headerStyle.Render("ID"),
				headerStyle.Render("Type"),
				headerStyle.Render("Date"),
				headerStyle.Render("Amount"),
				headerStyle.Render("Category"),
				headerStyle.Render("Remark"))
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				strings.Repeat("-", 4),
				strings.Repeat("-", 7),
				strings.Repeat("-", 10),
				strings.Repeat("-", 10),
				strings.Repeat("-", 15),
				strings.Repeat("-", 20))

			shown := 0
			for _, t := range transactions {
				if !slices.Contains(types, t.Type) {
					continue
				}
				shown++
				fmt.Fprintf(w, "%d\t%s\t%s\t$%s\t%s\t%s\n",
					t.ID, t.Type, t.Date, t.FormattedAmount(), t.Category, t.Remarks)
			}
			if err := w.Flush(); err != nil {
				return fmt.Errorf("failed to write table: %w", err)
			}

			if shown == 0 {
				fmt.Fprintln(out, cli.InfoStyle.Render("No transactions found."))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&typeFilter, "type", "all", "only list this type (expense, income, all)")
	return cmd
}
