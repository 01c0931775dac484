package flow

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Veraticus/budget/internal/cli"
	"github.com/Veraticus/budget/internal/model"
	"github.com/Veraticus/budget/internal/report"
	"github.com/Veraticus/budget/internal/storage"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	deps         *Deps
	output       *bytes.Buffer
	transactions *storage.TransactionStore
	categories   *storage.CategoryStore
}

// newTestEnv wires the flows to temp-dir stores and a scripted input.
func newTestEnv(t *testing.T, input string) *testEnv {
	t.Helper()

	dir := t.TempDir()
	transactions := storage.NewTransactionStore(filepath.Join(dir, "transactions.json"))
	categories := storage.NewCategoryStore(filepath.Join(dir, "categories.json"))
	output := &bytes.Buffer{}

	return &testEnv{
		deps: &Deps{
			Transactions: transactions,
			Categories:   categories,
			Reports:      report.NewEngine(transactions),
			Display:      cli.NewDisplay(output, false),
			Prompter: cli.NewPrompter(strings.NewReader(input), output,
				cli.WithIdleTime(0), cli.WithMaxAttempts(3)),
		},
		output:       output,
		transactions: transactions,
		categories:   categories,
	}
}

func (e *testEnv) seedCategories(t *testing.T, txType model.TransactionType, names ...string) {
	t.Helper()
	for _, name := range names {
		require.NoError(t, e.categories.Add(context.Background(), txType, name))
	}
}

func (e *testEnv) seedTransaction(t *testing.T, txType model.TransactionType, amount, date, category, remarks string) model.Transaction {
	t.Helper()
	created, err := e.transactions.Add(context.Background(), date, decimal.RequireFromString(amount), category, remarks, txType)
	require.NoError(t, err)
	return created
}

func (e *testEnv) stored(t *testing.T) []model.Transaction {
	t.Helper()
	transactions, err := e.transactions.Load(context.Background())
	require.NoError(t, err)
	return transactions
}
