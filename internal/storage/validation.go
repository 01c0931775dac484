package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/Veraticus/budget/internal/common"
	"github.com/Veraticus/budget/internal/model"
)

// ErrNilContext is returned when a store method receives a nil context.
var ErrNilContext = errors.New("context cannot be nil")

// validateContext ensures the context is usable before touching disk.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return ctx.Err()
}

func validateType(t model.TransactionType) error {
	if !t.Valid() {
		return fmt.Errorf("%w: %q", common.ErrInvalidType, t)
	}
	return nil
}
