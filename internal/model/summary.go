package model

import "github.com/shopspring/decimal"

// Summary holds the aggregate totals shown on the main screen and in reports.
type Summary struct {
	Income   decimal.Decimal
	Expenses decimal.Decimal
	Balance  decimal.Decimal
}
