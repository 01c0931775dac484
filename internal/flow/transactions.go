package flow

import (
	"context"
	"errors"
	"fmt"

	"github.com/Veraticus/budget/internal/cli"
	"github.com/Veraticus/budget/internal/menu"
	"github.com/Veraticus/budget/internal/model"
	"github.com/shopspring/decimal"
)

const (
	fieldAmount = iota + 1
	fieldDate
	fieldCategory
	fieldRemark
	fieldBack
)

// Transactions holds the add, edit and delete dialogues for transactions.
type Transactions struct {
	*Deps
}

// NewTransactions creates the transaction flows.
func NewTransactions(deps *Deps) *Transactions {
	return &Transactions{Deps: deps}
}

// Add collects amount, date, category and remark, then stores the transaction.
func (f *Transactions) Add(ctx context.Context, txType model.TransactionType) (menu.Token, error) {
	names, err := f.Categories.List(ctx, txType)
	if err != nil {
		return menu.ToParent(), fmt.Errorf("failed to list %s categories: %w", txType, err)
	}

	f.Display.Clear()
	f.Display.Title("Add " + txType.Title())
	if len(names) == 0 {
		return f.noCategories(ctx, txType)
	}

	amount, err := f.promptAmount(ctx)
	if err != nil {
		return f.leave(ctx, err)
	}

	date, err := f.Prompter.ReadField(ctx, "Enter the date (DD/MM/YYYY): ")
	if err != nil {
		return f.leave(ctx, err)
	}

	category, err := f.promptCategory(ctx, txType)
	if errors.Is(err, errNoCategories) {
		return f.noCategories(ctx, txType)
	}
	if err != nil {
		return f.leave(ctx, err)
	}

	remark, err := f.Prompter.ReadField(ctx, "Enter a remark (optional): ")
	if err != nil {
		return f.leave(ctx, err)
	}

	created, err := f.Transactions.Add(ctx, date, amount, category, remark, txType)
	if err != nil {
		return menu.ToParent(), fmt.Errorf("failed to add %s: %w", txType, err)
	}

	f.Display.Println("")
	f.Display.Success(fmt.Sprintf("%s added successfully!", txType.Title()))
	f.Display.ShowTransactionDetails(created.Amount, created.Date, created.Category, created.Remarks)
	return f.done(ctx)
}

// Edit lets the user pick a transaction of txType and change one field.
func (f *Transactions) Edit(ctx context.Context, txType model.TransactionType) (menu.Token, error) {
	for attempt := 0; attempt < f.Prompter.MaxAttempts(); attempt++ {
		tx, ok, err := f.pickTransaction(ctx, txType, "edit")
		if err != nil {
			return f.leave(ctx, err)
		}
		if !ok {
			return f.done(ctx)
		}

		f.Display.Clear()
		f.Display.ShowEditMenu(tx, txType)
		choice, err := cli.Ask(ctx, f.Prompter, "Which detail would you like to edit? (1-5): ", choiceParser(fieldBack))
		if err != nil {
			return f.leave(ctx, err)
		}
		if choice == fieldBack {
			return menu.ToParent(), nil
		}

		updated, err := f.editField(ctx, tx, choice)
		if errors.Is(err, cli.ErrCancelled) {
			// Back to the transaction list.
			continue
		}
		if err != nil {
			return f.leave(ctx, err)
		}

		if err := f.Transactions.Update(ctx, updated.ID, updated.Amount, updated.Category, updated.Date, updated.Remarks); err != nil {
			return menu.ToParent(), fmt.Errorf("failed to update %s %d: %w", txType, updated.ID, err)
		}

		f.Display.Println("")
		f.Display.Success(fmt.Sprintf("%s updated successfully!", txType.Title()))
		f.Display.ShowTransactionDetails(updated.Amount, updated.Date, updated.Category, updated.Remarks)
		return f.done(ctx)
	}

	return f.leave(ctx, cli.ErrTooManyAttempts)
}

// Delete removes a transaction of txType after an explicit confirmation.
func (f *Transactions) Delete(ctx context.Context, txType model.TransactionType) (menu.Token, error) {
	tx, ok, err := f.pickTransaction(ctx, txType, "delete")
	if err != nil {
		return f.leave(ctx, err)
	}
	if !ok {
		return f.done(ctx)
	}

	f.Display.Clear()
	f.Display.Println(fmt.Sprintf("You are about to delete this %s:", txType))
	f.Display.ShowTransactionDetails(tx.Amount, tx.Date, tx.Category, tx.Remarks)

	confirmed, err := f.Prompter.Confirm(ctx, fmt.Sprintf("\nAre you sure you want to delete this %s?", txType))
	if err != nil {
		return menu.ToParent(), err
	}
	if !confirmed {
		return menu.ToParent(), f.Prompter.Notify(ctx, "\n"+cli.FormatInfo(fmt.Sprintf("%s deletion cancelled.", txType.Title())))
	}

	if err := f.Transactions.Delete(ctx, tx.ID); err != nil {
		return menu.ToParent(), fmt.Errorf("failed to delete %s %d: %w", txType, tx.ID, err)
	}
	return menu.ToParent(), f.Prompter.Notify(ctx, "\n"+cli.FormatSuccess(fmt.Sprintf("%s deleted successfully!", txType.Title())))
}

// DeleteAll empties the transaction store after two confirmations.
func (f *Transactions) DeleteAll(ctx context.Context) (menu.Token, error) {
	confirmed, err := f.Prompter.Confirm(ctx, "Are you sure you want to delete all transactions?")
	if err != nil {
		return menu.ToParent(), err
	}
	if !confirmed {
		return menu.ToParent(), f.Prompter.Notify(ctx, "\n"+cli.FormatInfo("Deletion cancelled."))
	}

	f.Display.Println("")
	f.Display.Warning("This will delete all transactions from the database, and it cannot be undone.")
	confirmed, err = f.Prompter.Confirm(ctx, "Are you ABSOLUTELY sure you want to delete all transactions?")
	if err != nil {
		return menu.ToParent(), err
	}
	if !confirmed {
		return menu.ToParent(), f.Prompter.Notify(ctx, "\n"+cli.FormatInfo("Deletion cancelled."))
	}

	f.Display.Println("")
	if err := f.Prompter.Countdown(ctx, "Deleting all transactions...", f.DeleteAllDelay); err != nil {
		return menu.ToParent(), err
	}

	if err := f.Transactions.DeleteAll(ctx); err != nil {
		return menu.ToParent(), fmt.Errorf("failed to delete all transactions: %w", err)
	}
	return menu.ToParent(), f.Prompter.Notify(ctx, "\n"+cli.FormatSuccess("All transactions have been deleted."))
}

// pickTransaction lists transactions of txType and asks for one by id.
// ok is false when there is nothing to pick.
func (f *Transactions) pickTransaction(ctx context.Context, txType model.TransactionType, verb string) (model.Transaction, bool, error) {
	f.Display.Clear()

	transactions, err := f.Transactions.FilterByType(ctx, txType)
	if err != nil {
		return model.Transaction{}, false, fmt.Errorf("failed to list %s transactions: %w", txType, err)
	}
	if !f.Display.ShowFilteredTransactions(transactions, txType) {
		return model.Transaction{}, false, nil
	}

	prompt := fmt.Sprintf("Enter the ID of the %s to %s (type \"cancel\" to go back): ", txType, verb)
	tx, err := cli.Ask(ctx, f.Prompter, prompt, transactionPicker(transactions, txType))
	if err != nil {
		return model.Transaction{}, false, err
	}
	return tx, true, nil
}

// editField prompts for the chosen field and returns the full updated record.
func (f *Transactions) editField(ctx context.Context, tx model.Transaction, field int) (model.Transaction, error) {
	switch field {
	case fieldAmount:
		amount, err := f.promptAmount(ctx)
		if err != nil {
			return tx, err
		}
		tx.Amount = amount
	case fieldDate:
		date, err := f.Prompter.ReadField(ctx, "Enter new date (DD/MM/YYYY) or \"cancel\": ")
		if err != nil {
			return tx, err
		}
		tx.Date = date
	case fieldCategory:
		category, err := f.promptCategory(ctx, tx.Type)
		if errors.Is(err, errNoCategories) {
			if nerr := f.Prompter.Notify(ctx, cli.FormatInfo(fmt.Sprintf("No %s categories exist.", tx.Type))); nerr != nil {
				return tx, nerr
			}
			return tx, cli.ErrCancelled
		}
		if err != nil {
			return tx, err
		}
		tx.Category = category
	case fieldRemark:
		remark, err := f.Prompter.ReadField(ctx, "Enter new remark (or \"cancel\" to go back): ")
		if err != nil {
			return tx, err
		}
		tx.Remarks = remark
	}
	return tx, nil
}

func (f *Transactions) noCategories(ctx context.Context, txType model.TransactionType) (menu.Token, error) {
	f.Display.Info(fmt.Sprintf("No %s categories exist. Add one under Manage Categories first.", txType))
	return f.done(ctx)
}

func (f *Transactions) promptAmount(ctx context.Context) (decimal.Decimal, error) {
	return cli.Ask(ctx, f.Prompter, "Enter the amount (or type \"cancel\" to go back): $", ParseAmount)
}

// promptCategory offers the live category list for txType by 1-based index.
func (f *Transactions) promptCategory(ctx context.Context, txType model.TransactionType) (string, error) {
	names, err := f.Categories.List(ctx, txType)
	if err != nil {
		return "", fmt.Errorf("failed to list %s categories: %w", txType, err)
	}
	if len(names) == 0 {
		return "", errNoCategories
	}

	f.Display.ShowCategoryChoices(names)
	prompt := fmt.Sprintf("Choose a category (1-%d) or \"cancel\" to go back: ", len(names))
	choice, err := cli.Ask(ctx, f.Prompter, prompt, choiceParser(len(names)))
	if err != nil {
		return "", err
	}
	return names[choice-1], nil
}
