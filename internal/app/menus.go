package app

import (
	"context"

	"github.com/Veraticus/budget/internal/menu"
	"github.com/Veraticus/budget/internal/model"
)

func (a *App) registerMenus() {
	expense, income := model.TransactionTypeExpense, model.TransactionTypeIncome

	a.manager.Register(menu.StateMain, &menu.Menu{
		Header: a.reports.Welcome,
		Title:  "Main Menu",
		Items: []menu.Item{
			{Key: "1", Label: "Manage Transactions", Action: enter(menu.StateManageTransactions)},
			{Key: "2", Label: "View Reports", Action: enter(menu.StateViewReports)},
			{Key: "3", Label: "Manage Categories", Action: enter(menu.StateManageCategories)},
			{Key: "4", Label: "Exit", Action: constant(menu.Exit())},
		},
	})

	a.manager.Register(menu.StateManageTransactions, &menu.Menu{
		Title: "Manage Transactions",
		Items: []menu.Item{
			{Key: "1", Label: "Add Expense", Action: typed(a.transactions.Add, expense)},
			{Key: "2", Label: "Add Income", Action: typed(a.transactions.Add, income)},
			{Key: "3", Label: "Edit Expense", Action: typed(a.transactions.Edit, expense)},
			{Key: "4", Label: "Edit Income", Action: typed(a.transactions.Edit, income)},
			{Key: "5", Label: "Delete Expense", Action: typed(a.transactions.Delete, expense)},
			{Key: "6", Label: "Delete Income", Action: typed(a.transactions.Delete, income)},
			{Key: "7", Label: "Go Back", Action: constant(menu.ToMain())},
		},
	})

	a.manager.Register(menu.StateViewReports, &menu.Menu{
		Title: "View Reports",
		Items: []menu.Item{
			{Key: "1", Label: "View All Expenses", Action: typed(a.reports.ViewTransactions, expense)},
			{Key: "2", Label: "View All Income", Action: typed(a.reports.ViewTransactions, income)},
			{Key: "3", Label: "View Financial Summary", Action: a.reports.ViewSummary},
			{Key: "4", Label: "Delete All Transactions", Action: a.transactions.DeleteAll},
			{Key: "5", Label: "Go Back", Action: constant(menu.ToMain())},
		},
	})

	a.manager.Register(menu.StateManageCategories, &menu.Menu{
		Title: "Manage Categories",
		Items: []menu.Item{
			{Key: "1", Label: "Add Expense Category", Action: typed(a.categories.Add, expense)},
			{Key: "2", Label: "Add Income Category", Action: typed(a.categories.Add, income)},
			{Key: "3", Label: "Edit Expense Category", Action: typed(a.categories.Edit, expense)},
			{Key: "4", Label: "Edit Income Category", Action: typed(a.categories.Edit, income)},
			{Key: "5", Label: "Delete Expense Category", Action: typed(a.categories.Delete, expense)},
			{Key: "6", Label: "Delete Income Category", Action: typed(a.categories.Delete, income)},
			{Key: "7", Label: "View Categories", Action: a.categories.View},
			{Key: "8", Label: "Go Back", Action: constant(menu.ToMain())},
		},
	})
}

// typed binds a per-type flow to one transaction type.
func typed(run func(context.Context, model.TransactionType) (menu.Token, error), txType model.TransactionType) menu.Action {
	return func(ctx context.Context) (menu.Token, error) {
		return run(ctx, txType)
	}
}

func enter(state menu.State) menu.Action {
	return constant(menu.Goto(state))
}

func constant(tok menu.Token) menu.Action {
	return func(context.Context) (menu.Token, error) {
		return tok, nil
	}
}
