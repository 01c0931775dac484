package storage

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Veraticus/budget/internal/common"
	"github.com/Veraticus/budget/internal/model"
)

// CategoryStore owns the category document: one ordered list of names per
// transaction type. Renames do not cascade to existing transactions.
type CategoryStore struct {
	path string
}

// NewCategoryStore creates a store backed by the JSON document at path.
func NewCategoryStore(path string) *CategoryStore {
	return &CategoryStore{path: path}
}

// Path returns the location of the backing document.
func (s *CategoryStore) Path() string {
	return s.path
}

// Load reads the category document, creating it with empty lists first if
// it does not exist yet.
func (s *CategoryStore) Load(ctx context.Context) (model.CategorySet, error) {
	if err := validateContext(ctx); err != nil {
		return model.CategorySet{}, err
	}

	set := model.NewCategorySet()
	found, err := readDocument(s.path, &set)
	if err != nil {
		return model.CategorySet{}, err
	}

	if !found {
		slog.Debug("initializing category document", "path", s.path)
		if err := writeDocument(s.path, model.NewCategorySet()); err != nil {
			return model.CategorySet{}, fmt.Errorf("failed to initialize categories: %w", err)
		}
		set = model.NewCategorySet()
		if _, err := readDocument(s.path, &set); err != nil {
			return model.CategorySet{}, err
		}
	}

	// A hand-edited document may omit a list or set it to null.
	for _, t := range model.TransactionTypes {
		set.SetList(t, set.List(t))
	}
	return set, nil
}

// List returns the category names for t in insertion order.
func (s *CategoryStore) List(ctx context.Context, t model.TransactionType) ([]string, error) {
	if err := validateType(t); err != nil {
		return nil, err
	}

	set, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	return set.List(t), nil
}

// Add appends name to the list for t. Empty names and exact duplicates are
// rejected.
func (s *CategoryStore) Add(ctx context.Context, t model.TransactionType, name string) error {
	if err := validateType(t); err != nil {
		return err
	}
	if strings.TrimSpace(name) == "" {
		return common.ErrEmptyName
	}

	set, err := s.Load(ctx)
	if err != nil {
		return err
	}
	if set.Contains(t, name) {
		return fmt.Errorf("%q in %s categories: %w", name, t, common.ErrDuplicateEntry)
	}

	set.SetList(t, append(set.List(t), name))
	if err := s.save(set); err != nil {
		return err
	}

	slog.Info("added category", "type", t, "name", name)
	return nil
}

// Rename replaces the name at the zero-based index and returns the old name.
func (s *CategoryStore) Rename(ctx context.Context, t model.TransactionType, index int, newName string) (string, error) {
	if err := validateType(t); err != nil {
		return "", err
	}
	if strings.TrimSpace(newName) == "" {
		return "", common.ErrEmptyName
	}

	set, err := s.Load(ctx)
	if err != nil {
		return "", err
	}

	names := set.List(t)
	if index < 0 || index >= len(names) {
		return "", fmt.Errorf("%s category %d: %w", t, index+1, common.ErrIndexOutOfRange)
	}

	old := names[index]
	if newName == old {
		return "", fmt.Errorf("%q: %w", newName, common.ErrSameName)
	}
	if set.Contains(t, newName) {
		return "", fmt.Errorf("%q in %s categories: %w", newName, t, common.ErrDuplicateEntry)
	}

	names[index] = newName
	if err := s.save(set); err != nil {
		return "", err
	}

	slog.Info("renamed category", "type", t, "from", old, "to", newName)
	return old, nil
}

// Delete removes the name at the zero-based index and returns it.
func (s *CategoryStore) Delete(ctx context.Context, t model.TransactionType, index int) (string, error) {
	if err := validateType(t); err != nil {
		return "", err
	}

	set, err := s.Load(ctx)
	if err != nil {
		return "", err
	}

	names := set.List(t)
	if index < 0 || index >= len(names) {
		return "", fmt.Errorf("%s category %d: %w", t, index+1, common.ErrIndexOutOfRange)
	}

	removed := names[index]
	set.SetList(t, append(names[:index], names[index+1:]...))
	if err := s.save(set); err != nil {
		return "", err
	}

	slog.Info("deleted category", "type", t, "name", removed)
	return removed, nil
}

func (s *CategoryStore) save(set model.CategorySet) error {
	if err := writeDocument(s.path, set); err != nil {
		return fmt.Errorf("failed to save categories: %w", err)
	}
	return nil
}
