package inventory

import "github.com/shopspring/decimal"

type Action string

const (
	ActionAdd    Action = "add"
	ActionRemove Action = "remove"
)

// FailureCode classifies business-rule rejections of an adjustment.
// These are expected, caller-correctable conditions, not system faults.
type FailureCode string

const (
	CodeNotFound          FailureCode = "not_found"
	CodeInvalidAction     FailureCode = "invalid_action"
	CodeInsufficientStock FailureCode = "insufficient_stock"
)

// Record is one stocked chemical at one location.
type Record struct {
	ID              int64
	ChemicalID      int64
	LocationID      int64
	Quantity        decimal.Decimal
	ReorderQuantity decimal.Decimal
}

// Adjustment is the outcome of one quantity adjustment. On a business-rule
// rejection OK is false, Code names the reason and NewQuantity carries the
// current, unchanged quantity when it is known (zero for a missing record).
// BelowReorder is the structured threshold signal; Message is display text
// only and is never authoritative.
type Adjustment struct {
	OK           bool
	Code         FailureCode
	NewQuantity  decimal.Decimal
	BelowReorder bool
	Message      string
}
