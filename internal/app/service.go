package app

import (
	"context"
)

// ApplicationService is the single interface the CLI and REPL adapters call.
// Implementations return result structs only; rendering belongs to the adapters.
type ApplicationService interface {
	// DefaultWarehouse is the configured fallback for commands whose warehouse
	// argument may be omitted. Empty when not configured.
	DefaultWarehouse() string

	// CreateWarehouse creates a warehouse. A duplicate name returns core.ErrWarehouseExists.
	CreateWarehouse(ctx context.Context, name string) (*WarehouseResult, error)

	// ListWarehouses returns every warehouse in store order.
	ListWarehouses(ctx context.Context) (*WarehouseListResult, error)

	// ListItems returns the items of a warehouse ("" means the default warehouse).
	ListItems(ctx context.Context, warehouse string) (*ItemListResult, error)

	// AddItem creates the item or adds to its quantity.
	AddItem(ctx context.Context, req AddItemRequest) (*ItemResult, error)

	// EditItem applies a partial update. Matching nothing is still a success.
	EditItem(ctx context.Context, req EditItemRequest) (*EditItemResult, error)

	// Remove deletes warehouses or items together with their rules.
	Remove(ctx context.Context, req RemoveRequest) (*RemoveResult, error)

	// CreateRule attaches a threshold to an item and, on success, builds the
	// current report of that warehouse.
	CreateRule(ctx context.Context, req CreateRuleRequest) (*RuleResult, error)

	// ListRules returns the rules of a warehouse ("" means the default warehouse).
	ListRules(ctx context.Context, warehouse string) (*RuleListResult, error)

	// EditRules sets one threshold on the rules of the named items.
	EditRules(ctx context.Context, req EditRulesRequest) (*RulesChangedResult, error)

	// RemoveRules deletes the rules of the named items, keeping the items.
	RemoveRules(ctx context.Context, req RemoveRulesRequest) (*RulesChangedResult, error)

	// Report builds the low-stock report of one warehouse ("" means the default warehouse).
	Report(ctx context.Context, warehouse string) (*ReportResult, error)

	// ReportAll builds the low-stock report of every warehouse, grouped by warehouse name.
	ReportAll(ctx context.Context) (*ReportResult, error)
}
