// Package flow implements the multi-step dialogues behind each menu entry.
// A flow collects and validates every field first and calls a single store
// mutation at the end, so cancelling never leaves a partial write.
package flow

import (
	"context"
	"time"

	"github.com/Veraticus/budget/internal/cli"
	"github.com/Veraticus/budget/internal/model"
	"github.com/shopspring/decimal"
)

// TransactionStore is the persistence the transaction flows need.
type TransactionStore interface {
	FilterByType(ctx context.Context, txType model.TransactionType) ([]model.Transaction, error)
	Add(ctx context.Context, date string, amount decimal.Decimal, category, remarks string, txType model.TransactionType) (model.Transaction, error)
	Update(ctx context.Context, id int, amount decimal.Decimal, category, date, remarks string) error
	Delete(ctx context.Context, id int) error
	DeleteAll(ctx context.Context) error
}

// CategoryStore is the persistence the category flows need.
type CategoryStore interface {
	Load(ctx context.Context) (model.CategorySet, error)
	List(ctx context.Context, txType model.TransactionType) ([]string, error)
	Add(ctx context.Context, txType model.TransactionType, name string) error
	Rename(ctx context.Context, txType model.TransactionType, index int, newName string) (string, error)
	Delete(ctx context.Context, txType model.TransactionType, index int) (string, error)
}

// SummaryReporter computes the financial summary.
type SummaryReporter interface {
	Summary(ctx context.Context) (model.Summary, error)
}

// Deps are the collaborators shared by every flow.
type Deps struct {
	Transactions   TransactionStore
	Categories     CategoryStore
	Reports        SummaryReporter
	Display        *cli.Display
	Prompter       *cli.Prompter
	DeleteAllDelay time.Duration
}
