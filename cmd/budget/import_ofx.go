package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Veraticus/budget/internal/cli"
	"github.com/Veraticus/budget/internal/common"
	"github.com/Veraticus/budget/internal/model"
	"github.com/Veraticus/budget/internal/ofx"
	"github.com/Veraticus/budget/internal/storage"
	"github.com/schollz/progressbar/v3"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

const defaultImportCategory = "Imported"

type importOptions struct {
	expenseCategory string
	incomeCategory  string
	dryRun          bool
}

func importOFXCmd() *cobra.Command {
	var opts importOptions

	cmd := &cobra.Command{
		Use:   "import-ofx [files...]",
		Short: "Import transactions from OFX/QFX files",
		Long: `Import statement lines from OFX or QFX files exported from your bank.
Debits become expenses and credits become income. Lines repeated across
files (same FITID) are imported once.

Examples:
  # Import a single file
  budget import-ofx ~/Downloads/checking_jan_2024.qfx

  # Import every statement in a directory under chosen categories
  budget import-ofx ~/Downloads/*.qfx --expense-category Card --income-category Salary`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImportOFX(cmd, args, opts)
		},
	}

	cmd.Flags().StringVar(&opts.expenseCategory, "expense-category", defaultImportCategory, "category for imported debits")
	cmd.Flags().StringVar(&opts.incomeCategory, "income-category", defaultImportCategory, "category for imported credits")
	cmd.Flags().BoolVarP(&opts.dryRun, "dry-run", "d", false, "preview the import without saving")
	return cmd
}

func runImportOFX(cmd *cobra.Command, args []string, opts importOptions) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	files, err := expandPatterns(args)
	if err != nil {
		return err
	}

	drafts, err := parseStatements(ctx, files, opts, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	if len(drafts) == 0 {
		fmt.Fprintln(out, cli.FormatWarning("No transactions found in any file."))
		return nil
	}

	printImportSummary(out, drafts)

	if opts.dryRun {
		fmt.Fprintln(out, cli.FormatInfo("Dry run complete. Nothing was saved."))
		return nil
	}

	transactions, categories, err := openStores()
	if err != nil {
		return err
	}
	if err := ensureCategories(ctx, categories, drafts, opts); err != nil {
		return err
	}

	created, err := transactions.AddAll(ctx, drafts)
	if err != nil {
		return fmt.Errorf("failed to save imported transactions: %w", err)
	}

	fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Imported %d transactions (ids %d-%d).",
		len(created), created[0].ID, created[len(created)-1].ID)))
	return nil
}

// expandPatterns resolves globs; arguments that match nothing but exist are
// taken literally.
func expandPatterns(patterns []string) ([]string, error) {
	var files []string
	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %s: %w", pattern, err)
		}
		if len(matches) == 0 {
			if _, err := os.Stat(pattern); err == nil {
				files = append(files, pattern)
			} else {
				slog.Warn("No files found matching pattern", "pattern", pattern)
			}
			continue
		}
		files = append(files, matches...)
	}

	if len(files) == 0 {
		return nil, errors.New("no files found to import")
	}
	return files, nil
}

// parseStatements reads every file and returns the unique entries as drafts.
// Files that fail to parse are logged and skipped.
func parseStatements(ctx context.Context, files []string, opts importOptions, progress io.Writer) ([]model.Transaction, error) {
	parser := ofx.NewParser()
	seen := make(map[string]bool)
	var drafts []model.Transaction

	bar := progressbar.NewOptions(len(files),
		progressbar.OptionSetWriter(progress),
		progressbar.OptionSetDescription("Reading statements"),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)

	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		stmt, err := parseFile(ctx, parser, path)
		if err != nil {
			slog.Error("Failed to parse OFX file", "file", path, "error", err)
		} else {
			added := 0
			for _, e := range stmt.Entries {
				if e.FITID != "" {
					if seen[e.FITID] {
						continue
					}
					seen[e.FITID] = true
				}
				drafts = append(drafts, draftFromEntry(e, opts))
				added++
			}
			slog.Info("Processed file",
				"file", filepath.Base(path),
				"accounts", stmt.Accounts,
				"found", len(stmt.Entries),
				"added", added)
		}

		if err := bar.Add(1); err != nil {
			slog.Warn("Failed to update progress bar", "error", err)
		}
	}
	if err := bar.Finish(); err != nil {
		slog.Warn("Failed to finish progress bar", "error", err)
	}

	return drafts, nil
}

func parseFile(ctx context.Context, parser *ofx.Parser, path string) (ofx.Statement, error) {
	f, err := os.Open(path)
	if err != nil {
		return ofx.Statement{}, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	return parser.Parse(ctx, f)
}

func draftFromEntry(e ofx.Entry, opts importOptions) model.Transaction {
	category := opts.expenseCategory
	if e.Type == model.TransactionTypeIncome {
		category = opts.incomeCategory
	}
	return model.Transaction{
		Amount:   e.Amount,
		Date:     e.Date,
		Category: category,
		Remarks:  e.Remarks,
		Type:     e.Type,
	}
}

// ensureCategories registers the categories the drafts were filed under.
func ensureCategories(ctx context.Context, store *storage.CategoryStore, drafts []model.Transaction, opts importOptions) error {
	wanted := map[model.TransactionType]string{
		model.TransactionTypeExpense: opts.expenseCategory,
		model.TransactionTypeIncome:  opts.incomeCategory,
	}
	present := make(map[model.TransactionType]bool)
	for _, d := range drafts {
		present[d.Type] = true
	}

	for _, t := range model.TransactionTypes {
		if !present[t] {
			continue
		}
		err := store.Add(ctx, t, wanted[t])
		if err != nil && !errors.Is(err, common.ErrDuplicateEntry) {
			return fmt.Errorf("failed to register %s category %q: %w", t, wanted[t], err)
		}
	}
	return nil
}

func printImportSummary(w io.Writer, drafts []model.Transaction) {
	counts := make(map[model.TransactionType]int)
	totals := make(map[model.TransactionType]decimal.Decimal)
	for _, d := range drafts {
		counts[d.Type]++
		totals[d.Type] = totals[d.Type].Add(d.Amount)
	}

	fmt.Fprintln(w, cli.FormatTitle("📁 Import summary"))
	for _, t := range model.TransactionTypes {
		fmt.Fprintf(w, "  %s: %d totalling $%s\n", t.Title(), counts[t], totals[t].StringFixed(2))
	}
	fmt.Fprintln(w)
}
