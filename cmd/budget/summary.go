package main

import (
	"fmt"

	"github.com/Veraticus/budget/internal/cli"
	"github.com/Veraticus/budget/internal/report"
	"github.com/spf13/cobra"
)

func summaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show total income, total expenses and the net balance",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			transactions, _, err := openStores()
			if err != nil {
				return err
			}

			summary, err := report.NewEngine(transactions).Summary(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to compute summary: %w", err)
			}

			cli.NewDisplay(cmd.OutOrStdout(), false).ShowSummary(summary)
			return nil
		},
	}
}
