package flow

import (
	"context"
	"errors"

	"github.com/Veraticus/budget/internal/cli"
	"github.com/Veraticus/budget/internal/menu"
)

var (
	// errNoCategories means a category prompt had nothing to offer.
	errNoCategories = errors.New("no categories to choose from")
	// errGoBack means the user chose the trailing "Go back" entry.
	errGoBack = errors.New("go back")
)

// leave maps the outcome of an abandoned prompt to the navigation result.
// Cancelling and exhausting retries return to the parent menu without error.
func (d *Deps) leave(ctx context.Context, err error) (menu.Token, error) {
	switch {
	case errors.Is(err, cli.ErrCancelled):
		return menu.ToParent(), nil
	case errors.Is(err, cli.ErrTooManyAttempts):
		if nerr := d.Prompter.Notify(ctx, cli.FormatWarning("Too many invalid attempts. Returning to the menu.")); nerr != nil {
			return menu.ToParent(), nerr
		}
		return menu.ToParent(), nil
	default:
		return menu.ToParent(), err
	}
}

// done waits for Enter and returns to the parent menu.
func (d *Deps) done(ctx context.Context) (menu.Token, error) {
	if err := d.Prompter.WaitForEnter(ctx); err != nil {
		return menu.ToParent(), err
	}
	return menu.ToParent(), nil
}
