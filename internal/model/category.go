package model

// CategorySet holds the user-defined category names for each transaction type.
// Order within a list is insertion order; position is the only identity a
// category has.
type CategorySet struct {
	Expense []string `json:"expense"`
	Income  []string `json:"income"`
}

// NewCategorySet returns a set with empty, non-nil lists.
func NewCategorySet() CategorySet {
	return CategorySet{
		Expense: []string{},
		Income:  []string{},
	}
}

// List returns the live list for t. Unknown types yield nil.
func (c *CategorySet) List(t TransactionType) []string {
	switch t {
	case TransactionTypeExpense:
		return c.Expense
	case TransactionTypeIncome:
		return c.Income
	default:
		return nil
	}
}

// SetList replaces the list for t.
func (c *CategorySet) SetList(t TransactionType, names []string) {
	if names == nil {
		names = []string{}
	}
	switch t {
	case TransactionTypeExpense:
		c.Expense = names
	case TransactionTypeIncome:
		c.Income = names
	}
}

// Contains reports whether name is present in the list for t (case-sensitive).
func (c *CategorySet) Contains(t TransactionType, name string) bool {
	for _, existing := range c.List(t) {
		if existing == name {
			return true
		}
	}
	return false
}
