package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/Veraticus/budget/internal/app"
	"github.com/Veraticus/budget/internal/cli"
	"github.com/Veraticus/budget/internal/common"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	version = "dev"
	logFile io.Closer
	rootCmd = &cobra.Command{
		Use:   "budget",
		Short: "💰 Personal income and expense tracker",
		Long: `budget: a terminal ledger for everyday income and expenses.

Run without a subcommand to open the interactive menus. Type "exit" at any
menu to quit, or "cancel" at any prompt to go back.`,
		PersistentPreRunE:  initConfig,
		PersistentPostRunE: closeLogFile,
		RunE:               runInteractive,
		SilenceUsage:       true,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.config/budget/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "warn", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "console", "log format (console, json)")
	rootCmd.PersistentFlags().String("log-file", "", "write logs to this file instead of stderr")
	rootCmd.PersistentFlags().String("data-dir", "", "directory holding transactions.json and categories.json")

	_ = viper.BindPFlag("logging.level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("logging.format", rootCmd.PersistentFlags().Lookup("log-format"))
	_ = viper.BindPFlag("logging.file", rootCmd.PersistentFlags().Lookup("log-file"))
	_ = viper.BindPFlag("data.dir", rootCmd.PersistentFlags().Lookup("data-dir"))

	rootCmd.AddCommand(summaryCmd())
	rootCmd.AddCommand(transactionsCmd())
	rootCmd.AddCommand(categoriesCmd())
	rootCmd.AddCommand(importOFXCmd())
	rootCmd.AddCommand(exportCmd())
	rootCmd.AddCommand(versionCmd())
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		slog.Info("Received interrupt signal, shutting down")
		cancel()
	}()

	err := rootCmd.ExecuteContext(ctx)
	cancel()

	if err != nil {
		fmt.Fprintln(os.Stderr, cli.FormatError(err.Error()))
		os.Exit(1)
	}
}

func runInteractive(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	handler := cli.NewInterruptHandler(cmd.OutOrStdout())
	ctx := handler.HandleInterrupts(cmd.Context())

	err = app.New(cfg, cmd.InOrStdin(), cmd.OutOrStdout()).Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func initConfig(_ *cobra.Command, _ []string) error {
	// A missing .env is fine.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}

		viper.AddConfigPath(fmt.Sprintf("%s/.config/budget", home))
		viper.AddConfigPath(".")
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("BUDGET")
	viper.SetEnvKeyReplacer(envKeyReplacer)
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}

	if err := setupLogging(); err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}

	slog.Debug("configuration loaded", "config_file", viper.ConfigFileUsed())
	return nil
}

func setupLogging() error {
	level, err := common.ParseLevel(viper.GetString("logging.level"))
	if err != nil {
		return err
	}

	var w io.Writer = os.Stderr
	if path := viper.GetString("logging.file"); path != "" {
		f, err := openLogFile(path)
		if err != nil {
			return err
		}
		logFile = f
		w = f
	}

	return common.SetupLogger(w, level, viper.GetString("logging.format"))
}

func closeLogFile(_ *cobra.Command, _ []string) error {
	if logFile == nil {
		return nil
	}
	err := logFile.Close()
	logFile = nil
	return err
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "budget %s\n", version)
		},
	}
}
