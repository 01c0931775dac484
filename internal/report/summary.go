// Package report computes aggregate views over the transaction store.
package report

import (
	"context"
	"fmt"

	"github.com/Veraticus/budget/internal/model"
	"github.com/shopspring/decimal"
)

// TotalSource provides per-type totals.
type TotalSource interface {
	TotalByType(ctx context.Context, txType model.TransactionType) (decimal.Decimal, error)
}

// Engine derives summaries from the current store contents. It holds no
// state of its own.
type Engine struct {
	source TotalSource
}

// NewEngine creates a report engine reading from source.
func NewEngine(source TotalSource) *Engine {
	return &Engine{source: source}
}

// Summary returns total income, total expenses and their difference.
func (e *Engine) Summary(ctx context.Context) (model.Summary, error) {
	income, err := e.source.TotalByType(ctx, model.TransactionTypeIncome)
	if err != nil {
		return model.Summary{}, fmt.Errorf("failed to total income: %w", err)
	}

	expenses, err := e.source.TotalByType(ctx, model.TransactionTypeExpense)
	if err != nil {
		return model.Summary{}, fmt.Errorf("failed to total expenses: %w", err)
	}

	return model.Summary{
		Income:   income,
		Expenses: expenses,
		Balance:  income.Sub(expenses),
	}, nil
}
