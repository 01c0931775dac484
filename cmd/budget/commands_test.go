package main

import (
	"bytes"
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Veraticus/budget/internal/model"
	"github.com/Veraticus/budget/internal/storage"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const statementOFX = `OFXHEADER:100
DATA:OFXSGML
VERSION:102
SECURITY:NONE
ENCODING:USASCII
CHARSET:1252
COMPRESSION:NONE
OLDFILEUID:NONE
NEWFILEUID:NONE

<OFX>
<SIGNONMSGSRSV1>
<SONRS>
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<DTSERVER>20240315120000[0:GMT]
<LANGUAGE>ENG
</SONRS>
</SIGNONMSGSRSV1>
<BANKMSGSRSV1>
<STMTTRNRS>
<TRNUID>1
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<STMTRS>
<CURDEF>USD
<BANKACCTFROM>
<BANKID>123456789
<ACCTID>1234567890
<ACCTTYPE>CHECKING
</BANKACCTFROM>
<BANKTRANLIST>
<DTSTART>20240101120000[0:GMT]
<DTEND>20240131120000[0:GMT]
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20240115120000[0:GMT]
<TRNAMT>-25.50
<FITID>2024011501
<NAME>POS PURCHASE CORNER CAFE
</STMTTRN>
<STMTTRN>
<TRNTYPE>CREDIT
<DTPOSTED>20240131120000[0:GMT]
<TRNAMT>2000.00
<FITID>2024013101
<NAME>ACME PAYROLL
</STMTTRN>
</BANKTRANLIST>
<LEDGERBAL>
<BALAMT>1000.00
<DTASOF>20240131120000[0:GMT]
</LEDGERBAL>
</STMTRS>
</STMTTRNRS>
</BANKMSGSRSV1>
</OFX>`

// setupDataDir points the global configuration at a fresh directory.
func setupDataDir(t *testing.T) string {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	viper.Set("data.dir", dir)
	return dir
}

func execute(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestCategoriesCommands(t *testing.T) {
	dir := setupDataDir(t)

	_, err := execute(t, categoriesCmd(), "add", "expense", "Food")
	require.NoError(t, err)
	_, err = execute(t, categoriesCmd(), "add", "income", "Salary")
	require.NoError(t, err)

	_, err = execute(t, categoriesCmd(), "add", "expense", "Food")
	assert.ErrorContains(t, err, "already exists")

	_, err = execute(t, categoriesCmd(), "add", "transfer", "Food")
	assert.Error(t, err)

	out, err := execute(t, categoriesCmd(), "rename", "expense", "Food", "Groceries")
	require.NoError(t, err)
	assert.Contains(t, out, "Food updated to Groceries in expense categories.")

	out, err = execute(t, categoriesCmd(), "list")
	require.NoError(t, err)
	assert.Contains(t, out, "- Groceries")
	assert.Contains(t, out, "- Salary")

	out, err = execute(t, categoriesCmd(), "delete", "income", "Salary")
	require.NoError(t, err)
	assert.Contains(t, out, "Salary removed from income categories.")

	_, err = execute(t, categoriesCmd(), "delete", "income", "Salary")
	assert.Error(t, err)

	names, err := storage.NewCategoryStore(filepath.Join(dir, "categories.json")).List(context.Background(), model.TransactionTypeIncome)
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestImportOFXCommand(t *testing.T) {
	dir := setupDataDir(t)

	statement := filepath.Join(dir, "january.qfx")
	require.NoError(t, os.WriteFile(statement, []byte(statementOFX), 0o600))
	duplicate := filepath.Join(dir, "january-copy.qfx")
	require.NoError(t, os.WriteFile(duplicate, []byte(statementOFX), 0o600))

	t.Run("dry run saves nothing", func(t *testing.T) {
		out, err := execute(t, importOFXCmd(), "--dry-run", statement)
		require.NoError(t, err)
		assert.Contains(t, out, "Dry run complete")

		_, err = os.Stat(filepath.Join(dir, "transactions.json"))
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("imports unique lines", func(t *testing.T) {
		out, err := execute(t, importOFXCmd(), "--income-category", "Salary", filepath.Join(dir, "*.qfx"))
		require.NoError(t, err)
		assert.Contains(t, out, "Imported 2 transactions")

		ctx := context.Background()
		transactions, err := storage.NewTransactionStore(filepath.Join(dir, "transactions.json")).Load(ctx)
		require.NoError(t, err)
		require.Len(t, transactions, 2)

		assert.Equal(t, model.TransactionTypeExpense, transactions[0].Type)
		assert.Equal(t, "25.50", transactions[0].FormattedAmount())
		assert.Equal(t, "15/01/2024", transactions[0].Date)
		assert.Equal(t, "CORNER CAFE", transactions[0].Remarks)
		assert.Equal(t, defaultImportCategory, transactions[0].Category)

		assert.Equal(t, model.TransactionTypeIncome, transactions[1].Type)
		assert.Equal(t, "Salary", transactions[1].Category)

		categories := storage.NewCategoryStore(filepath.Join(dir, "categories.json"))
		expense, err := categories.List(ctx, model.TransactionTypeExpense)
		require.NoError(t, err)
		assert.Equal(t, []string{defaultImportCategory}, expense)
		income, err := categories.List(ctx, model.TransactionTypeIncome)
		require.NoError(t, err)
		assert.Equal(t, []string{"Salary"}, income)
	})

	t.Run("missing files", func(t *testing.T) {
		_, err := execute(t, importOFXCmd(), filepath.Join(dir, "nothing-*.ofx"))
		assert.ErrorContains(t, err, "no files found")
	})
}

func TestReadCommands(t *testing.T) {
	dir := setupDataDir(t)

	store := storage.NewTransactionStore(filepath.Join(dir, "transactions.json"))
	_, err := store.AddAll(context.Background(), []model.Transaction{
		{Date: "01/01/2024", Amount: mustDecimal(t, "40"), Category: "Food", Remarks: "market", Type: model.TransactionTypeExpense},
		{Date: "02/01/2024", Amount: mustDecimal(t, "100"), Category: "Salary", Type: model.TransactionTypeIncome},
	})
	require.NoError(t, err)

	t.Run("summary", func(t *testing.T) {
		out, err := execute(t, summaryCmd())
		require.NoError(t, err)
		assert.Contains(t, out, "Total Income: $100.00")
		assert.Contains(t, out, "Total Expenses: $40.00")
		assert.Contains(t, out, "Net Balance: $60.00")
	})

	t.Run("transactions list filtered", func(t *testing.T) {
		out, err := execute(t, transactionsCmd(), "list", "--type", "expense")
		require.NoError(t, err)
		assert.Contains(t, out, "market")
		assert.NotContains(t, out, "Salary")
	})

	t.Run("export csv to file", func(t *testing.T) {
		path := filepath.Join(dir, "ledger.csv")
		_, err := execute(t, exportCmd(), "--format", "csv", "--output", path)
		require.NoError(t, err)

		f, err := os.Open(path)
		require.NoError(t, err)
		defer f.Close()
		rows, err := csv.NewReader(f).ReadAll()
		require.NoError(t, err)
		require.Len(t, rows, 3)
		assert.Equal(t, "40.00", rows[1][2])
	})

	t.Run("export rejects unknown format", func(t *testing.T) {
		_, err := execute(t, exportCmd(), "--format", "xml")
		assert.Error(t, err)
	})
}

func TestParseTypeFilter(t *testing.T) {
	tests := []struct {
		input   string
		want    []model.TransactionType
		wantErr bool
	}{
		{input: "", want: model.TransactionTypes},
		{input: "ALL", want: model.TransactionTypes},
		{input: "income", want: []model.TransactionType{model.TransactionTypeIncome}},
		{input: "transfer", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := parseTypeFilter(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, versionCmd())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "budget "))
}

func mustDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}
