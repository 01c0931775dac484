package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/Veraticus/budget/internal/model"
	"github.com/shopspring/decimal"
)

const clearSequence = "\033[H\033[2J"

// MenuEntry is one numbered line of a rendered menu.
type MenuEntry struct {
	Key   string
	Label string
}

// Display renders already-computed values. It makes no decisions of its own.
type Display struct {
	writer      io.Writer
	clearScreen bool
}

// NewDisplay creates a display writing to w. When clearScreen is false,
// Clear only separates screens with a blank line.
func NewDisplay(w io.Writer, clearScreen bool) *Display {
	if w == nil {
		w = os.Stdout
	}
	return &Display{writer: w, clearScreen: clearScreen}
}

// Clear wipes the terminal.
func (d *Display) Clear() {
	if d.clearScreen {
		d.print(clearSequence)
		return
	}
	d.println("")
}

// Title prints a screen title with a rule underneath.
func (d *Display) Title(title string) {
	d.println(FormatTitle(title))
}

// Println writes a line of plain text.
func (d *Display) Println(text string) {
	d.println(text)
}

// Success prints a success message.
func (d *Display) Success(msg string) {
	d.println(FormatSuccess(msg))
}

// Error prints an error message.
func (d *Display) Error(msg string) {
	d.println(FormatError(msg))
}

// Info prints an informational message.
func (d *Display) Info(msg string) {
	d.println(FormatInfo(msg))
}

// Warning prints a warning message.
func (d *Display) Warning(msg string) {
	d.println(FormatWarning(msg))
}

// ShowMenu renders a titled menu in entry order.
func (d *Display) ShowMenu(title string, entries []MenuEntry) {
	d.println("")
	d.Title(title)
	for _, e := range entries {
		d.println(fmt.Sprintf("%s. %s", KeyStyle.Render(e.Key), e.Label))
	}
}

// ShowTransactionDetails prints the user-facing fields of a transaction.
func (d *Display) ShowTransactionDetails(amount decimal.Decimal, date, category, remarks string) {
	d.println("Amount: $" + amount.StringFixed(2))
	d.println("Date: " + date)
	d.println("Category: " + category)
	d.println("Remark: " + remarks)
}

// ShowFilteredTransactions lists the transactions of txType and reports
// whether any were shown.
func (d *Display) ShowFilteredTransactions(transactions []model.Transaction, txType model.TransactionType) bool {
	shown := false
	for _, t := range transactions {
		if t.Type != txType {
			continue
		}
		shown = true
		d.println(BoldStyle.Render(fmt.Sprintf("ID: %d", t.ID)))
		d.ShowTransactionDetails(t.Amount, t.Date, t.Category, t.Remarks)
		d.println("")
	}

	if !shown {
		d.println(fmt.Sprintf("No %s transactions found.", txType))
		d.println("")
	}
	return shown
}

// ShowEditMenu lists the editable fields of t with their current values.
func (d *Display) ShowEditMenu(t model.Transaction, txType model.TransactionType) {
	d.println(fmt.Sprintf("Current %s details:", txType))
	d.println("1. Amount: $" + t.FormattedAmount())
	d.println("2. Date: " + t.Date)
	d.println("3. Category: " + t.Category)
	d.println("4. Remark: " + t.Remarks)
	d.println("5. Go back")
	d.println("")
}

// ShowCategoryMenu numbers names from 1 and appends a "Go back" entry.
func (d *Display) ShowCategoryMenu(names []string) {
	for i, name := range names {
		d.println(fmt.Sprintf("%d. %s", i+1, name))
	}
	d.println(fmt.Sprintf("%d. Go back", len(names)+1))
	d.println("")
}

// ShowCategoryChoices numbers names from 1 without a trailing entry.
func (d *Display) ShowCategoryChoices(names []string) {
	for i, name := range names {
		d.println(fmt.Sprintf("%d. %s", i+1, name))
	}
}

// ShowCategoryList prints names as a bulleted list.
func (d *Display) ShowCategoryList(names []string) {
	for _, name := range names {
		d.println("- " + name)
	}
	d.println("")
}

// ShowSummary prints the financial summary block.
func (d *Display) ShowSummary(s model.Summary) {
	balance := "$" + s.Balance.StringFixed(2)
	if s.Balance.IsNegative() {
		balance = ExpenseStyle.Render(balance)
	} else {
		balance = IncomeStyle.Render(balance)
	}

	d.println("")
	d.Title(ChartIcon + " Financial Summary")
	d.println("Total Income: $" + s.Income.StringFixed(2))
	d.println("Total Expenses: $" + s.Expenses.StringFixed(2))
	d.println("Net Balance: " + balance)
}

func (d *Display) print(text string) {
	if _, err := fmt.Fprint(d.writer, text); err != nil {
		slog.Warn("Failed to write to display", "error", err)
	}
}

func (d *Display) println(text string) {
	if _, err := fmt.Fprintln(d.writer, text); err != nil {
		slog.Warn("Failed to write to display", "error", err)
	}
}
