package flow

import (
	"context"
	"fmt"

	"github.com/Veraticus/budget/internal/cli"
	"github.com/Veraticus/budget/internal/menu"
	"github.com/Veraticus/budget/internal/model"
)

// Reports holds the read-only views over the transaction store.
type Reports struct {
	*Deps
}

// NewReports creates the report flows.
func NewReports(deps *Deps) *Reports {
	return &Reports{Deps: deps}
}

// ViewTransactions lists every transaction of txType.
func (f *Reports) ViewTransactions(ctx context.Context, txType model.TransactionType) (menu.Token, error) {
	transactions, err := f.Transactions.FilterByType(ctx, txType)
	if err != nil {
		return menu.ToParent(), fmt.Errorf("failed to list %s transactions: %w", txType, err)
	}

	f.Display.Clear()
	f.Display.Title(fmt.Sprintf("All %s Transactions", txType.Title()))
	f.Display.ShowFilteredTransactions(transactions, txType)
	return f.done(ctx)
}

// ViewSummary shows total income, total expenses and the net balance.
func (f *Reports) ViewSummary(ctx context.Context) (menu.Token, error) {
	summary, err := f.Reports.Summary(ctx)
	if err != nil {
		return menu.ToParent(), fmt.Errorf("failed to compute summary: %w", err)
	}

	f.Display.Clear()
	f.Display.ShowSummary(summary)
	return f.done(ctx)
}

// Welcome renders the main menu header: a greeting and the current summary.
// A failing summary is reported inline so the menu still renders.
func (f *Reports) Welcome(ctx context.Context) error {
	f.Display.Title(cli.MoneyIcon + " Welcome to the Budget App!")

	summary, err := f.Reports.Summary(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		f.Display.Error("Could not compute the financial summary: " + err.Error())
		return nil
	}
	f.Display.ShowSummary(summary)
	f.Display.Println("")
	return nil
}
