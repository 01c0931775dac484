package config

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/Veraticus/budget/internal/common"
	"github.com/spf13/viper"
)

// Default values used when neither the config file nor BUDGET_ env vars set a key.
const (
	DefaultDataDir          = "$HOME/.local/share/budget"
	DefaultTransactionsFile = "transactions.json"
	DefaultCategoriesFile   = "categories.json"
	DefaultIdleTime         = 500 * time.Millisecond
	DefaultDeleteAllDelay   = 2 * time.Second
	DefaultMaxAttempts      = 10
)

// Config holds the resolved settings for a budget session.
type Config struct {
	TransactionsPath string
	CategoriesPath   string
	IdleTime         time.Duration // pause after transient messages
	DeleteAllDelay   time.Duration
	MaxAttempts      int
	ClearScreen      bool
}

// SetDefaults registers the default values with viper.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("data.dir", DefaultDataDir)
	v.SetDefault("data.transactions_file", DefaultTransactionsFile)
	v.SetDefault("data.categories_file", DefaultCategoriesFile)
	v.SetDefault("ui.idle_time", DefaultIdleTime)
	v.SetDefault("ui.delete_all_delay", DefaultDeleteAllDelay)
	v.SetDefault("ui.clear_screen", true)
	v.SetDefault("ui.max_attempts", DefaultMaxAttempts)
}

// Load resolves a Config from viper. Relative document names are placed
// inside data.dir; absolute ones are used as given.
func Load(v *viper.Viper) (Config, error) {
	SetDefaults(v)

	dir := ExpandPath(v.GetString("data.dir"))
	if dir == "" {
		return Config{}, fmt.Errorf("%w: data.dir is empty", common.ErrInvalidConfig)
	}

	cfg := Config{
		TransactionsPath: resolveDocument(dir, v.GetString("data.transactions_file")),
		CategoriesPath:   resolveDocument(dir, v.GetString("data.categories_file")),
		IdleTime:         v.GetDuration("ui.idle_time"),
		DeleteAllDelay:   v.GetDuration("ui.delete_all_delay"),
		MaxAttempts:      v.GetInt("ui.max_attempts"),
		ClearScreen:      v.GetBool("ui.clear_screen"),
	}

	if cfg.TransactionsPath == cfg.CategoriesPath {
		return Config{}, fmt.Errorf("%w: transactions and categories share the path %s",
			common.ErrInvalidConfig, cfg.TransactionsPath)
	}
	if cfg.MaxAttempts <= 0 {
		return Config{}, fmt.Errorf("%w: ui.max_attempts must be positive", common.ErrInvalidConfig)
	}
	if cfg.IdleTime < 0 || cfg.DeleteAllDelay < 0 {
		return Config{}, fmt.Errorf("%w: ui delays cannot be negative", common.ErrInvalidConfig)
	}

	return cfg, nil
}

func resolveDocument(dir, name string) string {
	name = ExpandPath(name)
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(dir, name)
}
