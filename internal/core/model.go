package core

import "github.com/shopspring/decimal"

// Warehouse is a named partition of inventory. Names are unique across the store.
type Warehouse struct {
	ID   int64  `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

// Item is a quantified stock entry. Names are unique within one warehouse.
// Quantity has no floor; whether it is too low is decided by a Rule.
type Item struct {
	ID          int64   `db:"id" json:"id"`
	WarehouseID int64   `db:"warehouse_id" json:"warehouse_id"`
	Name        string  `db:"name" json:"name"`
	Quantity    int64   `db:"quantity" json:"quantity"`
	Description *string `db:"description" json:"description,omitempty"`
}

// ItemPatch is a partial item update. Nil fields keep their stored value.
type ItemPatch struct {
	Name        *string
	Description *string
	Quantity    *int64
}

// IsEmpty reports whether the patch would change nothing.
func (p ItemPatch) IsEmpty() bool {
	return p.Name == nil && p.Description == nil && p.Quantity == nil
}

// Rule flags an item as critical once its quantity drops below GetsBelowQuantity.
// At most one rule exists per item.
type Rule struct {
	ID                int64  `db:"id" json:"id"`
	ItemID            int64  `db:"item_id" json:"item_id"`
	ItemName          string `db:"item_name" json:"item_name"`
	GetsBelowQuantity int64  `db:"gets_below_quantity" json:"gets_below_quantity"`
}

// ReportLine is one ruled item in a stock report.
type ReportLine struct {
	WarehouseName     string `db:"warehouse_name"`
	ItemName          string `db:"item_name"`
	Quantity          int64  `db:"quantity"`
	GetsBelowQuantity int64  `db:"gets_below_quantity"`
	IsCritical        bool   `db:"is_critical"`
}

// Coverage is quantity as a percentage of the rule threshold, rounded to two
// places. ok is false when the threshold is not positive.
func (l ReportLine) Coverage() (pct decimal.Decimal, ok bool) {
	if l.GetsBelowQuantity <= 0 {
		return decimal.Zero, false
	}
	return decimal.NewFromInt(l.Quantity).
		Mul(decimal.NewFromInt(100)).
		DivRound(decimal.NewFromInt(l.GetsBelowQuantity), 2), true
}

// WarehouseReport is a run of consecutive report lines sharing a warehouse.
type WarehouseReport struct {
	WarehouseName string
	Lines         []ReportLine
}

// GroupByWarehouse splits lines into per-warehouse sections. Lines must already
// be ordered by warehouse name; order within and across sections is preserved.
func GroupByWarehouse(lines []ReportLine) []WarehouseReport {
	var groups []WarehouseReport
	for _, l := range lines {
		if n := len(groups); n > 0 && groups[n-1].WarehouseName == l.WarehouseName {
			groups[n-1].Lines = append(groups[n-1].Lines, l)
			continue
		}
		groups = append(groups, WarehouseReport{WarehouseName: l.WarehouseName, Lines: []ReportLine{l}})
	}
	return groups
}
