package flow

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/Veraticus/budget/internal/common"
	"github.com/Veraticus/budget/internal/model"
	"github.com/shopspring/decimal"
)

// Digits with at most one decimal point; no sign, no exponent.
var amountPattern = regexp.MustCompile(`^(\d+\.?\d*|\.\d+)$`)

// ParseAmount validates a user-entered amount and rounds it to cents.
func ParseAmount(input string) (decimal.Decimal, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return decimal.Zero, common.NewUserError("Amount cannot be empty. Please try again.", common.ErrInvalidAmount)
	}
	if !amountPattern.MatchString(input) {
		return decimal.Zero, common.NewUserError("Invalid amount. Please try again.", common.ErrInvalidAmount)
	}

	amount, err := decimal.NewFromString(input)
	if err != nil {
		return decimal.Zero, common.NewUserError("Invalid amount. Please try again.", err)
	}
	return amount.Round(2), nil
}

// choiceParser accepts a number between 1 and upper inclusive.
func choiceParser(upper int) func(string) (int, error) {
	return func(input string) (int, error) {
		n, err := strconv.Atoi(input)
		if err != nil || !isDigits(input) || n < 1 || n > upper {
			return 0, common.NewUserError("Invalid choice. Please try again.", common.ErrIndexOutOfRange)
		}
		return n, nil
	}
}

// categoryIndexParser is choiceParser with a distinct message for empty input.
func categoryIndexParser(upper int) func(string) (int, error) {
	choose := choiceParser(upper)
	return func(input string) (int, error) {
		if input == "" {
			return 0, common.NewUserError("Input cannot be empty. Please try again.", common.ErrIndexOutOfRange)
		}
		return choose(input)
	}
}

// transactionPicker resolves an entered id against the listed transactions.
func transactionPicker(transactions []model.Transaction, txType model.TransactionType) func(string) (model.Transaction, error) {
	return func(input string) (model.Transaction, error) {
		if !isDigits(input) {
			return model.Transaction{}, common.NewUserError("Invalid ID. Please try again.", common.ErrNotFound)
		}
		id, err := strconv.Atoi(input)
		if err != nil {
			return model.Transaction{}, common.NewUserError("Invalid ID. Please try again.", err)
		}

		for _, t := range transactions {
			if t.ID == id && t.Type == txType {
				return t, nil
			}
		}
		return model.Transaction{}, common.NewUserError(
			fmt.Sprintf("%s transaction not found. Please try again.", txType.Title()), common.ErrNotFound)
	}
}

// categoryNameParser rejects empty names, names equal to current (when
// renaming) and names already in existing.
func categoryNameParser(existing []string, txType model.TransactionType, current string) func(string) (string, error) {
	return func(name string) (string, error) {
		if strings.TrimSpace(name) == "" {
			return "", common.NewUserError("Category name cannot be empty. Please try again.", common.ErrEmptyName)
		}
		if current != "" && name == current {
			return "", common.NewUserError(
				fmt.Sprintf("%s is the same as the old category name.", name), common.ErrSameName)
		}
		for _, e := range existing {
			if e == name {
				return "", common.NewUserError(
					fmt.Sprintf("%s already exists in %s categories.", name, txType), common.ErrDuplicateEntry)
			}
		}
		return name, nil
	}
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
