package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Veraticus/budget/internal/config"
	"github.com/Veraticus/budget/internal/model"
	"github.com/Veraticus/budget/internal/storage"
	"github.com/spf13/viper"
)

// Maps nested keys such as data.dir onto BUDGET_DATA_DIR.
var envKeyReplacer = strings.NewReplacer(".", "_")

func loadConfig() (config.Config, error) {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return config.Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// openStores resolves the configured documents.
func openStores() (*storage.TransactionStore, *storage.CategoryStore, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	return storage.NewTransactionStore(cfg.TransactionsPath), storage.NewCategoryStore(cfg.CategoriesPath), nil
}

func openLogFile(path string) (*os.File, error) {
	path = config.ExpandPath(path)
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return f, nil
}

// parseTypeFilter accepts "", "all", "expense" or "income".
func parseTypeFilter(s string) ([]model.TransactionType, error) {
	if s == "" || strings.EqualFold(s, "all") {
		return model.TransactionTypes, nil
	}
	t, err := model.ParseTransactionType(s)
	if err != nil {
		return nil, err
	}
	return []model.TransactionType{t}, nil
}
