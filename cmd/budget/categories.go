package main

import (
	"errors"
	"fmt"

	"github.com/Veraticus/budget/internal/cli"
	"github.com/Veraticus/budget/internal/common"
	"github.com/Veraticus/budget/internal/model"
	"github.com/spf13/cobra"
)

func categoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Manage expense and income categories",
	}

	cmd.AddCommand(listCategoriesCmd())
	cmd.AddCommand(addCategoryCmd())
	cmd.AddCommand(renameCategoryCmd())
	cmd.AddCommand(deleteCategoryCmd())
	return cmd
}

func listCategoriesCmd() *cobra.Command {
	var typeFilter string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List categories by type",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			types, err := parseTypeFilter(typeFilter)
			if err != nil {
				return err
			}

			_, store, err := openStores()
			if err != nil {
				return err
			}

			set, err := store.Load(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to load categories: %w", err)
			}

			display := cli.NewDisplay(cmd.OutOrStdout(), false)
			for _, t := range types {
				display.Title(t.Title() + " Categories")
				names := set.List(t)
				if len(names) == 0 {
					display.Info(fmt.Sprintf("No %s categories. Use 'budget categories add %s <name>' to create one.", t, t))
					display.Println("")
					continue
				}
				display.ShowCategoryList(names)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&typeFilter, "type", "all", "only list this type (expense, income, all)")
	return cmd
}

func addCategoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <expense|income> <name>",
		Short: "Add a category",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := model.ParseTransactionType(args[0])
			if err != nil {
				return err
			}

			_, store, err := openStores()
			if err != nil {
				return err
			}

			if err := store.Add(cmd.Context(), t, args[1]); err != nil {
				if errors.Is(err, common.ErrDuplicateEntry) {
					return fmt.Errorf("%s already exists in %s categories", args[1], t)
				}
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("%s added to %s categories.", args[1], t)))
			return nil
		},
	}
}

func renameCategoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rename <expense|income> <old> <new>",
		Short: "Rename a category in place",
		Long:  `Rename a category. Transactions already filed under the old name keep it.`,
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := model.ParseTransactionType(args[0])
			if err != nil {
				return err
			}

			_, store, err := openStores()
			if err != nil {
				return err
			}

			index, err := categoryIndex(cmd, t, args[1])
			if err != nil {
				return err
			}

			if _, err := store.Rename(cmd.Context(), t, index, args[2]); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("%s updated to %s in %s categories.", args[1], args[2], t)))
			return nil
		},
	}
}

func deleteCategoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <expense|income> <name>",
		Short: "Delete a category",
		Long:  `Delete a category. Transactions already filed under it keep the name.`,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := model.ParseTransactionType(args[0])
			if err != nil {
				return err
			}

			_, store, err := openStores()
			if err != nil {
				return err
			}

			index, err := categoryIndex(cmd, t, args[1])
			if err != nil {
				return err
			}

			removed, err := store.Delete(cmd.Context(), t, index)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("%s removed from %s categories.", removed, t)))
			return nil
		},
	}
}

// categoryIndex finds the position of name in the t list.
func categoryIndex(cmd *cobra.Command, t model.TransactionType, name string) (int, error) {
	_, store, err := openStores()
	if err != nil {
		return 0, err
	}

	names, err := store.List(cmd.Context(), t)
	if err != nil {
		return 0, fmt.Errorf("failed to list %s categories: %w", t, err)
	}
	for i, n := range names {
		if n == name {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%s category %q: %w", t, name, common.ErrNotFound)
}
