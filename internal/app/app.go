// Package app assembles the interactive budget session: stores, flows and
// the menu tree.
package app

import (
	"context"
	"io"

	"github.com/Veraticus/budget/internal/cli"
	"github.com/Veraticus/budget/internal/config"
	"github.com/Veraticus/budget/internal/flow"
	"github.com/Veraticus/budget/internal/menu"
	"github.com/Veraticus/budget/internal/report"
	"github.com/Veraticus/budget/internal/storage"
)

// App is one interactive session.
type App struct {
	display      *cli.Display
	manager      *menu.Manager
	transactions *flow.Transactions
	categories   *flow.Categories
	reports      *flow.Reports
}

// New wires an App over the documents named in cfg, reading answers from in
// and writing screens to out.
func New(cfg config.Config, in io.Reader, out io.Writer) *App {
	transactionStore := storage.NewTransactionStore(cfg.TransactionsPath)
	categoryStore := storage.NewCategoryStore(cfg.CategoriesPath)

	display := cli.NewDisplay(out, cfg.ClearScreen)
	prompter := cli.NewPrompter(in, out,
		cli.WithIdleTime(cfg.IdleTime),
		cli.WithMaxAttempts(cfg.MaxAttempts))

	deps := &flow.Deps{
		Transactions:   transactionStore,
		Categories:     categoryStore,
		Reports:        report.NewEngine(transactionStore),
		Display:        display,
		Prompter:       prompter,
		DeleteAllDelay: cfg.DeleteAllDelay,
	}

	a := &App{
		display:      display,
		transactions: flow.NewTransactions(deps),
		categories:   flow.NewCategories(deps),
		reports:      flow.NewReports(deps),
	}
	a.manager = menu.NewManager(display, prompter, a.exit)
	a.registerMenus()
	return a
}

// Run shows the main menu until the user exits or the context ends.
func (a *App) Run(ctx context.Context) error {
	return a.manager.Run(ctx, menu.StateMain)
}

func (a *App) exit(context.Context) error {
	a.display.Clear()
	a.display.Println(cli.GoodbyeMessage)
	return nil
}
