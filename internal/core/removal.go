package core

import (
	"context"
	"fmt"

	"deposito/internal/db"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"
)

// RemovalKind selects what a removal deletes.
type RemovalKind int

const (
	// RemoveWarehouses deletes whole warehouses by name, with their items and rules.
	RemoveWarehouses RemovalKind = iota + 1
	// RemoveItems deletes named items of one warehouse. args[0] is the warehouse.
	RemoveItems
	// RemoveAllItems deletes every item of one warehouse. args is exactly the warehouse.
	RemoveAllItems
)

func (k RemovalKind) String() string {
	switch k {
	case RemoveWarehouses:
		return "warehouses"
	case RemoveItems:
		return "items"
	case RemoveAllItems:
		return "all-items"
	}
	return fmt.Sprintf("RemovalKind(%d)", int(k))
}

// Table is the table a planned statement deletes from.
type Table string

const (
	TableRules      Table = "rules"
	TableItems      Table = "items"
	TableWarehouses Table = "warehouses"
)

// Statement is one planned DELETE. Query uses '?' bindvars, one per Args entry,
// in the same order.
type Statement struct {
	Table Table
	Query string
	Args  []any
}

// RemovalResult counts the rows deleted per table.
type RemovalResult struct {
	Kind    RemovalKind
	Deleted map[Table]int64
}

// PlanRemoval builds the ordered DELETE statements for a removal. Dependants
// always come first: rules, then items, then warehouses.
func PlanRemoval(kind RemovalKind, args []string) ([]Statement, error) {
	switch kind {
	case RemoveWarehouses:
		if len(args) == 0 {
			return nil, ErrNoNames
		}
		return planIn([]planStep{
			{TableRules, `DELETE FROM rules WHERE item_id IN (
				SELECT i.id FROM items i JOIN warehouses w ON w.id = i.warehouse_id
				WHERE w.name IN (?))`},
			{TableItems, `DELETE FROM items WHERE warehouse_id IN (
				SELECT id FROM warehouses WHERE name IN (?))`},
			{TableWarehouses, `DELETE FROM warehouses WHERE name IN (?)`},
		}, args)

	case RemoveItems:
		if len(args) < 2 {
			return nil, fmt.Errorf("%w: expected a warehouse followed by item names", ErrNoNames)
		}
		return planIn([]planStep{
			{TableRules, `DELETE FROM rules WHERE item_id IN (` + ruledItemsIn + `)`},
			{TableItems, `DELETE FROM items WHERE warehouse_id IN (
				SELECT id FROM warehouses WHERE name = ?) AND name IN (?)`},
		}, args[0], args[1:])

	case RemoveAllItems:
		if len(args) != 1 {
			return nil, fmt.Errorf("expected exactly one warehouse, got %d arguments", len(args))
		}
		return planIn([]planStep{
			{TableRules, `DELETE FROM rules WHERE item_id IN (
				SELECT i.id FROM items i JOIN warehouses w ON w.id = i.warehouse_id
				WHERE w.name = ?)`},
			{TableItems, `DELETE FROM items WHERE warehouse_id IN (
				SELECT id FROM warehouses WHERE name = ?)`},
		}, args[0])
	}

	return nil, fmt.Errorf("unknown removal kind %s", kind)
}

type planStep struct {
	table Table
	query string
}

// planIn expands every step against the same bind values. Slices become one
// placeholder per element via sqlx.In, keeping bind order.
func planIn(steps []planStep, binds ...any) ([]Statement, error) {
	stmts := make([]Statement, 0, len(steps))
	for _, step := range steps {
		query, args, err := sqlx.In(step.query, binds...)
		if err != nil {
			return nil, fmt.Errorf("failed to plan %s removal: %w", step.table, err)
		}
		stmts = append(stmts, Statement{Table: step.table, Query: query, Args: args})
	}
	return stmts, nil
}

// RemovalService executes removal plans.
type RemovalService interface {
	// Remove runs every statement of the plan in one transaction.
	Remove(ctx context.Context, kind RemovalKind, args []string) (*RemovalResult, error)
}

type removalService struct {
	store *db.Store
	log   zerolog.Logger
}

// NewRemovalService constructs a RemovalService backed by the given store.
func NewRemovalService(store *db.Store, log zerolog.Logger) RemovalService {
	return &removalService{store: store, log: log}
}

func (s *removalService) Remove(ctx context.Context, kind RemovalKind, args []string) (*RemovalResult, error) {
	plan, err := PlanRemoval(kind, args)
	if err != nil {
		return nil, err
	}

	tx, err := s.store.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin removal: %w", err)
	}
	defer tx.Rollback()

	result := &RemovalResult{Kind: kind, Deleted: make(map[Table]int64, len(plan))}
	for _, stmt := range plan {
		res, err := tx.ExecContext(ctx, tx.Rebind(stmt.Query), stmt.Args...)
		if err != nil {
			return nil, fmt.Errorf("failed to delete from %s: %w", stmt.Table, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return nil, fmt.Errorf("failed to read affected rows for %s: %w", stmt.Table, err)
		}
		result.Deleted[stmt.Table] += n
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit removal: %w", err)
	}

	s.log.Debug().
		Stringer("kind", kind).
		Strs("args", args).
		Int64("rules", result.Deleted[TableRules]).
		Int64("items", result.Deleted[TableItems]).
		Int64("warehouses", result.Deleted[TableWarehouses]).
		Msg("removal committed")
	return result, nil
}
