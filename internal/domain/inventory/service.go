package inventory

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidQuantity rejects quantities that are not strictly positive.
	ErrInvalidQuantity = errors.New("quantity must be greater than zero")

	// ErrNoRowsUpdated means the update hit zero rows after the row was
	// read under lock. That is a persistence anomaly, not user error.
	ErrNoRowsUpdated = errors.New("update affected no rows")
)

type Service struct {
	store Store
	log   *slog.Logger
}

func NewService(store Store, log *slog.Logger) *Service {
	return &Service{store: store, log: log}
}

// Adjust applies a signed quantity change to one inventory record.
//
// Business-rule rejections (unknown record, invalid action, insufficient
// stock) come back as an Adjustment with OK=false and a nil error; the store
// is left untouched. A non-nil error means a system fault: the transaction
// has been rolled back and the caller should answer with a 5xx.
func (s *Service) Adjust(ctx context.Context, inventoryID int64, qty decimal.Decimal, action Action) (Adjustment, error) {
	if !qty.IsPositive() {
		return Adjustment{}, fmt.Errorf("adjust inventory %d: %w", inventoryID, ErrInvalidQuantity)
	}
	if action != ActionAdd && action != ActionRemove {
		s.log.Warn("inventory adjustment rejected",
			"inventory_id", inventoryID,
			"reason", CodeInvalidAction,
			"action", string(action),
		)
		return Adjustment{
			Code:    CodeInvalidAction,
			Message: fmt.Sprintf("Invalid action: %s. Must be 'add' or 'remove'", action),
		}, nil
	}

	var adj Adjustment
	err := s.store.WithTx(ctx, func(tx Tx) error {
		row, err := tx.LockRow(ctx, inventoryID)
		if err != nil {
			return fmt.Errorf("lock inventory %d: %w", inventoryID, err)
		}
		if row == nil {
			adj = Adjustment{
				Code:    CodeNotFound,
				Message: fmt.Sprintf("Inventory record %d not found", inventoryID),
			}
			return nil
		}

		var next decimal.Decimal
		switch action {
		case ActionAdd:
			next = row.Quantity.Add(qty)
		case ActionRemove:
			next = row.Quantity.Sub(qty)
			if next.IsNegative() {
				adj = Adjustment{
					Code:        CodeInsufficientStock,
					NewQuantity: row.Quantity,
					Message:     fmt.Sprintf("Cannot remove more than available quantity (%s)", row.Quantity),
				}
				return nil
			}
		}

		n, err := tx.SetQuantity(ctx, inventoryID, next)
		if err != nil {
			return fmt.Errorf("update inventory %d: %w", inventoryID, err)
		}
		if n == 0 {
			return fmt.Errorf("update inventory %d: %w", inventoryID, ErrNoRowsUpdated)
		}

		adj = Adjustment{
			OK:           true,
			NewQuantity:  next,
			BelowReorder: next.LessThan(row.ReorderQuantity),
			Message:      "Inventory updated successfully.",
		}
		if adj.BelowReorder {
			adj.Message += " Quantity is below reorder level."
		}
		return nil
	})
	if err != nil {
		s.log.Error("inventory adjustment failed",
			"inventory_id", inventoryID,
			"action", string(action),
			"err", err,
		)
		return Adjustment{}, err
	}

	if !adj.OK {
		s.log.Warn("inventory adjustment rejected",
			"inventory_id", inventoryID,
			"reason", adj.Code,
			"action", string(action),
		)
		return adj, nil
	}

	s.log.Info("inventory adjusted",
		"inventory_id", inventoryID,
		"action", string(action),
		"new_quantity", adj.NewQuantity.String(),
		"below_reorder", adj.BelowReorder,
	)
	return adj, nil
}
