package app

import "deposito/internal/core"

// AddItemRequest is the input for adding stock to a warehouse.
type AddItemRequest struct {
	Warehouse   string
	Item        string
	Quantity    int64
	Description *string // only stored when the item is new
}

// EditItemRequest is the input for a partial item update.
type EditItemRequest struct {
	Warehouse string
	Item      string
	Patch     core.ItemPatch
}

// RemoveRequest is the input for a batch removal. Args are interpreted per Kind:
// warehouse names, a warehouse followed by item names, or a single warehouse.
type RemoveRequest struct {
	Kind core.RemovalKind
	Args []string
}

// CreateRuleRequest is the input for creating a low-stock rule.
type CreateRuleRequest struct {
	Warehouse string
	Item      string
	Threshold int64
}

// EditRulesRequest is the input for changing the threshold of several rules.
type EditRulesRequest struct {
	Warehouse string
	Items     []string
	Threshold int64
}

// RemoveRulesRequest is the input for deleting several rules.
type RemoveRulesRequest struct {
	Warehouse string
	Items     []string
}
