package app

import "deposito/internal/core"

// WarehouseResult is returned by CreateWarehouse.
type WarehouseResult struct {
	Warehouse core.Warehouse
}

// WarehouseListResult is returned by ListWarehouses.
type WarehouseListResult struct {
	Warehouses []core.Warehouse
}

// ItemListResult is returned by ListItems.
type ItemListResult struct {
	Warehouse string
	Items     []core.Item
}

// ItemResult is returned by AddItem. Item holds the stored state after the add.
type ItemResult struct {
	Warehouse string
	Item      core.Item
	Added     int64
}

// EditItemResult is returned by EditItem.
type EditItemResult struct {
	Warehouse string
	Item      string
	Matched   bool
}

// RemoveResult is returned by Remove.
type RemoveResult struct {
	Kind    core.RemovalKind
	Args    []string
	Deleted map[core.Table]int64
}

// RuleResult is returned by CreateRule. Report is the follow-up report of the
// warehouse; ReportErr is set instead when building it failed.
type RuleResult struct {
	Warehouse string
	Rule      core.Rule
	Report    *ReportResult
	ReportErr error
}

// RuleListResult is returned by ListRules.
type RuleListResult struct {
	Warehouse string
	Rules     []core.Rule
}

// RulesChangedResult is returned by EditRules and RemoveRules.
type RulesChangedResult struct {
	Warehouse string
	Items     []string
	Changed   int64
}

// ReportResult is returned by Report and ReportAll. Warehouse is empty for ReportAll.
type ReportResult struct {
	Warehouse string
	Sections  []core.WarehouseReport
}

// Empty reports whether no ruled item was found.
func (r *ReportResult) Empty() bool {
	for _, s := range r.Sections {
		if len(s.Lines) > 0 {
			return false
		}
	}
	return true
}

// Critical counts the critical lines across every section.
func (r *ReportResult) Critical() int {
	n := 0
	for _, s := range r.Sections {
		for _, l := range s.Lines {
			if l.IsCritical {
				n++
			}
		}
	}
	return n
}
