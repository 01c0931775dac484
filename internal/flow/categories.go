package flow

import (
	"context"
	"errors"
	"fmt"

	"github.com/Veraticus/budget/internal/cli"
	"github.com/Veraticus/budget/internal/menu"
	"github.com/Veraticus/budget/internal/model"
)

// Categories holds the add, edit, delete and view dialogues for categories.
type Categories struct {
	*Deps
}

// NewCategories creates the category flows.
func NewCategories(deps *Deps) *Categories {
	return &Categories{Deps: deps}
}

// Add shows the existing names of txType and appends a new unique one.
func (f *Categories) Add(ctx context.Context, txType model.TransactionType) (menu.Token, error) {
	names, err := f.list(ctx, txType)
	if err != nil {
		return menu.ToParent(), err
	}

	f.Display.Clear()
	f.Display.Title(fmt.Sprintf("Add %s Category", txType.Title()))
	f.Display.Println(fmt.Sprintf("Existing %s categories:", txType))
	f.Display.ShowCategoryList(names)

	prompt := fmt.Sprintf("Enter the %s category name (type \"cancel\" to go back): ", txType)
	name, err := cli.Ask(ctx, f.Prompter, prompt, categoryNameParser(names, txType, ""))
	if err != nil {
		return f.leave(ctx, err)
	}

	if err := f.Categories.Add(ctx, txType, name); err != nil {
		return menu.ToParent(), fmt.Errorf("failed to add %s category %q: %w", txType, name, err)
	}

	f.Display.Println("")
	f.Display.Success(fmt.Sprintf("%s added to %s categories.", name, txType))
	return f.done(ctx)
}

// Edit renames a category of txType chosen by its 1-based position.
func (f *Categories) Edit(ctx context.Context, txType model.TransactionType) (menu.Token, error) {
	names, index, ok, err := f.pick(ctx, txType, "Edit", "edit")
	if err != nil || !ok {
		return f.afterPick(ctx, ok, err)
	}

	current := names[index]
	prompt := fmt.Sprintf("Enter the new %s category name for \"%s\". (type \"cancel\" to go back): ", txType, current)
	newName, err := cli.Ask(ctx, f.Prompter, prompt, categoryNameParser(names, txType, current))
	if err != nil {
		return f.leave(ctx, err)
	}

	old, err := f.Categories.Rename(ctx, txType, index, newName)
	if err != nil {
		return menu.ToParent(), fmt.Errorf("failed to rename %s category %q: %w", txType, current, err)
	}

	f.Display.Println("")
	f.Display.Success("Category updated successfully!")
	f.Display.Println(fmt.Sprintf("%s updated to %s in %s categories.", old, newName, txType))
	return f.done(ctx)
}

// Delete removes a category of txType chosen by its 1-based position.
// Transactions already using the name keep it.
func (f *Categories) Delete(ctx context.Context, txType model.TransactionType) (menu.Token, error) {
	_, index, ok, err := f.pick(ctx, txType, "Delete", "delete")
	if err != nil || !ok {
		return f.afterPick(ctx, ok, err)
	}

	removed, err := f.Categories.Delete(ctx, txType, index)
	if err != nil {
		return menu.ToParent(), fmt.Errorf("failed to delete %s category: %w", txType, err)
	}

	f.Display.Println("")
	f.Display.Success("Category deleted successfully!")
	f.Display.Println(fmt.Sprintf("%s removed from %s categories.", removed, txType))
	return f.done(ctx)
}

// View prints both category lists.
func (f *Categories) View(ctx context.Context) (menu.Token, error) {
	set, err := f.Categories.Load(ctx)
	if err != nil {
		return menu.ToParent(), fmt.Errorf("failed to load categories: %w", err)
	}

	f.Display.Clear()
	for _, txType := range model.TransactionTypes {
		f.Display.Title(fmt.Sprintf("%s Categories", txType.Title()))
		names := set.List(txType)
		if len(names) == 0 {
			f.Display.Println(fmt.Sprintf("No %s categories exist!", txType))
			f.Display.Println("")
			continue
		}
		f.Display.ShowCategoryList(names)
	}
	return f.done(ctx)
}

// pick shows the numbered list with a trailing "Go back" entry and returns
// the chosen 0-based index. ok is false when the list is empty or the user
// chose to go back.
func (f *Categories) pick(ctx context.Context, txType model.TransactionType, title, verb string) ([]string, int, bool, error) {
	names, err := f.list(ctx, txType)
	if err != nil {
		return nil, 0, false, err
	}

	f.Display.Clear()
	f.Display.Title(fmt.Sprintf("%s %s Category", title, txType.Title()))
	if len(names) == 0 {
		f.Display.Println(fmt.Sprintf("No %s categories exist!", txType))
		return nil, 0, false, nil
	}

	goBack := len(names) + 1
	f.Display.ShowCategoryMenu(names)
	prompt := fmt.Sprintf("Enter the number of the category to %s (1-%d): ", verb, goBack)
	choice, err := cli.Ask(ctx, f.Prompter, prompt, categoryIndexParser(goBack))
	if err != nil {
		return nil, 0, false, err
	}
	if choice == goBack {
		return names, 0, false, errGoBack
	}
	return names, choice - 1, true, nil
}

func (f *Categories) afterPick(ctx context.Context, ok bool, err error) (menu.Token, error) {
	switch {
	case errors.Is(err, errGoBack):
		return menu.ToParent(), nil
	case err != nil:
		return f.leave(ctx, err)
	case !ok:
		return f.done(ctx)
	}
	return menu.ToParent(), nil
}

func (f *Categories) list(ctx context.Context, txType model.TransactionType) ([]string, error) {
	names, err := f.Categories.List(ctx, txType)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s categories: %w", txType, err)
	}
	return names, nil
}
