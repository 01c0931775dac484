// Package model contains the domain types shared by the stores, flows and menus.
package model

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// TransactionType indicates whether a transaction is money coming in or going out.
type TransactionType string

const (
	// TransactionTypeExpense represents money spent.
	TransactionTypeExpense TransactionType = "expense"
	// TransactionTypeIncome represents money received.
	TransactionTypeIncome TransactionType = "income"
)

// TransactionTypes lists every valid type in display order.
var TransactionTypes = []TransactionType{TransactionTypeExpense, TransactionTypeIncome}

// ParseTransactionType converts user or document input into a TransactionType.
func ParseTransactionType(s string) (TransactionType, error) {
	switch TransactionType(strings.ToLower(strings.TrimSpace(s))) {
	case TransactionTypeExpense:
		return TransactionTypeExpense, nil
	case TransactionTypeIncome:
		return TransactionTypeIncome, nil
	default:
		return "", fmt.Errorf("unknown transaction type %q", s)
	}
}

// Valid reports whether t is one of the known transaction types.
func (t TransactionType) Valid() bool {
	return t == TransactionTypeExpense || t == TransactionTypeIncome
}

// Title returns the type with its first letter capitalized, e.g. "Expense".
func (t TransactionType) Title() string {
	if t == "" {
		return ""
	}
	return strings.ToUpper(string(t[:1])) + string(t[1:])
}

// Transaction represents a single income or expense record.
type Transaction struct {
	Amount   decimal.Decimal
	Date     string // DD/MM/YYYY, not validated
	Category string
	Remarks  string
	Type     TransactionType
	ID       int
}

// FormattedAmount returns the amount with exactly two fraction digits.
func (t Transaction) FormattedAmount() string {
	return t.Amount.StringFixed(2)
}
