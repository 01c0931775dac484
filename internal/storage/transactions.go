package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/Veraticus/budget/internal/common"
	"github.com/Veraticus/budget/internal/model"
	"github.com/shopspring/decimal"
)

// fixedAmount encodes as a JSON string with exactly two fraction digits and
// decodes from either a string or a bare number.
type fixedAmount struct {
	decimal.Decimal
}

func (a fixedAmount) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.StringFixed(2))
}

func (a *fixedAmount) UnmarshalJSON(data []byte) error {
	return a.Decimal.UnmarshalJSON(data)
}

// transactionRecord is the on-disk shape of a transaction.
// Field order is the key order of the written document.
type transactionRecord struct {
	ID       int         `json:"id"`
	Date     string      `json:"date"`
	Amount   fixedAmount `json:"amount"`
	Category string      `json:"category"`
	Remarks  string      `json:"remarks"`
	Type     string      `json:"type,omitempty"`
}

// toModel converts a decoded record. Records written before income support
// carry no type; they are expenses.
func (r transactionRecord) toModel() model.Transaction {
	txType := model.TransactionType(r.Type)
	if txType == "" {
		txType = model.TransactionTypeExpense
	}
	return model.Transaction{
		ID:       r.ID,
		Date:     r.Date,
		Amount:   r.Amount.Decimal,
		Category: r.Category,
		Remarks:  r.Remarks,
		Type:     txType,
	}
}

func recordFromModel(t model.Transaction) transactionRecord {
	return transactionRecord{
		ID:       t.ID,
		Date:     t.Date,
		Amount:   fixedAmount{t.Amount},
		Category: t.Category,
		Remarks:  t.Remarks,
		Type:     string(t.Type),
	}
}

// TransactionStore owns the ordered transaction document and is the only
// place identifiers are assigned.
type TransactionStore struct {
	path string
}

// NewTransactionStore creates a store backed by the JSON document at path.
func NewTransactionStore(path string) *TransactionStore {
	return &TransactionStore{path: path}
}

// Path returns the location of the backing document.
func (s *TransactionStore) Path() string {
	return s.path
}

// Load returns every transaction in document order. A missing or empty
// document yields an empty slice.
func (s *TransactionStore) Load(ctx context.Context) ([]model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	var records []transactionRecord
	found, err := readDocument(s.path, &records)
	if err != nil {
		return nil, err
	}
	if !found {
		slog.Debug("no transactions recorded yet", "path", s.path)
		return []model.Transaction{}, nil
	}

	transactions := make([]model.Transaction, 0, len(records))
	for _, r := range records {
		transactions = append(transactions, r.toModel())
	}
	return transactions, nil
}

// Save overwrites the document with transactions.
func (s *TransactionStore) Save(ctx context.Context, transactions []model.Transaction) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	records := make([]transactionRecord, 0, len(transactions))
	for _, t := range transactions {
		records = append(records, recordFromModel(t))
	}

	if err := writeDocument(s.path, records); err != nil {
		return fmt.Errorf("failed to save transactions: %w", err)
	}
	return nil
}

// Add appends a new transaction with the next identifier and returns it.
// The category is not checked against the category store; callers pick it
// from the live list.
func (s *TransactionStore) Add(ctx context.Context, date string, amount decimal.Decimal, category, remarks string, txType model.TransactionType) (model.Transaction, error) {
	if err := validateType(txType); err != nil {
		return model.Transaction{}, err
	}
	if amount.IsNegative() {
		return model.Transaction{}, fmt.Errorf("%w: %s is negative", common.ErrInvalidAmount, amount)
	}

	transactions, err := s.Load(ctx)
	if err != nil {
		return model.Transaction{}, err
	}

	created := model.Transaction{
		ID:       nextID(transactions),
		Date:     date,
		Amount:   amount.Round(2),
		Category: category,
		Remarks:  remarks,
		Type:     txType,
	}
	transactions = append(transactions, created)

	if err := s.Save(ctx, transactions); err != nil {
		return model.Transaction{}, err
	}

	slog.Info("added transaction", "id", created.ID, "type", txType, "amount", created.FormattedAmount())
	return created, nil
}

// AddAll appends drafts in order with consecutive identifiers and writes the
// document once. Draft IDs are ignored.
func (s *TransactionStore) AddAll(ctx context.Context, drafts []model.Transaction) ([]model.Transaction, error) {
	for _, d := range drafts {
		if err := validateType(d.Type); err != nil {
			return nil, err
		}
		if d.Amount.IsNegative() {
			return nil, fmt.Errorf("%w: %s is negative", common.ErrInvalidAmount, d.Amount)
		}
	}

	transactions, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}

	id := nextID(transactions)
	created := make([]model.Transaction, 0, len(drafts))
	for _, d := range drafts {
		d.ID = id
		d.Amount = d.Amount.Round(2)
		id++
		created = append(created, d)
	}
	transactions = append(transactions, created...)

	if err := s.Save(ctx, transactions); err != nil {
		return nil, err
	}

	slog.Info("added transactions", "count", len(created))
	return created, nil
}

// Update replaces the mutable fields of the transaction with the given id.
// An unknown id returns common.ErrNotFound and leaves the document untouched.
func (s *TransactionStore) Update(ctx context.Context, id int, amount decimal.Decimal, category, date, remarks string) error {
	if amount.IsNegative() {
		return fmt.Errorf("%w: %s is negative", common.ErrInvalidAmount, amount)
	}

	transactions, err := s.Load(ctx)
	if err != nil {
		return err
	}

	idx := indexOf(transactions, id)
	if idx < 0 {
		return fmt.Errorf("transaction %d: %w", id, common.ErrNotFound)
	}

	transactions[idx].Amount = amount.Round(2)
	transactions[idx].Category = category
	transactions[idx].Date = date
	transactions[idx].Remarks = remarks

	if err := s.Save(ctx, transactions); err != nil {
		return err
	}

	slog.Info("updated transaction", "id", id)
	return nil
}

// Delete removes the transaction with the given id. Other identifiers are
// never renumbered. An unknown id returns common.ErrNotFound.
func (s *TransactionStore) Delete(ctx context.Context, id int) error {
	transactions, err := s.Load(ctx)
	if err != nil {
		return err
	}

	idx := indexOf(transactions, id)
	if idx < 0 {
		return fmt.Errorf("transaction %d: %w", id, common.ErrNotFound)
	}

	transactions = append(transactions[:idx], transactions[idx+1:]...)
	if err := s.Save(ctx, transactions); err != nil {
		return err
	}

	slog.Info("deleted transaction", "id", id)
	return nil
}

// DeleteAll empties the document unconditionally.
func (s *TransactionStore) DeleteAll(ctx context.Context) error {
	if err := s.Save(ctx, []model.Transaction{}); err != nil {
		return err
	}
	slog.Info("deleted all transactions", "path", s.path)
	return nil
}

// FilterByType returns the transactions of the given type in document order.
func (s *TransactionStore) FilterByType(ctx context.Context, txType model.TransactionType) ([]model.Transaction, error) {
	transactions, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}

	filtered := make([]model.Transaction, 0, len(transactions))
	for _, t := range transactions {
		if t.Type == txType {
			filtered = append(filtered, t)
		}
	}
	return filtered, nil
}

// TotalByType sums the amounts of the given type, rounded to two places.
func (s *TransactionStore) TotalByType(ctx context.Context, txType model.TransactionType) (decimal.Decimal, error) {
	filtered, err := s.FilterByType(ctx, txType)
	if err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for _, t := range filtered {
		total = total.Add(t.Amount)
	}
	return total.Round(2), nil
}

func nextID(transactions []model.Transaction) int {
	maxID := 0
	for _, t := range transactions {
		if t.ID > maxID {
			maxID = t.ID
		}
	}
	return maxID + 1
}

func indexOf(transactions []model.Transaction, id int) int {
	for i, t := range transactions {
		if t.ID == id {
			return i
		}
	}
	return -1
}
