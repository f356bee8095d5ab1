package core

import (
	"context"
	"fmt"

	"deposito/internal/db"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"
)

// ruledItemsIn selects the ids of items in one warehouse whose names are in a list.
const ruledItemsIn = `
	SELECT i.id
	FROM items i
	JOIN warehouses w ON w.id = i.warehouse_id
	WHERE w.name = ? AND i.name IN (?)`

// RuleEngine manages per-item low-stock thresholds.
type RuleEngine interface {
	// CreateRule attaches a threshold to the item addressed by (warehouse, item).
	// Returns ErrItemNotFound when no such item exists and ErrRuleExists when
	// the item already has a rule.
	CreateRule(ctx context.Context, warehouse, item string, threshold int64) (*Rule, error)
	// ListRules returns the rules of a warehouse with their item names.
	ListRules(ctx context.Context, warehouse string) ([]Rule, error)
	// EditRules sets one threshold on the rules of every named item in the
	// warehouse and returns the number of rules changed.
	EditRules(ctx context.Context, warehouse string, items []string, threshold int64) (int64, error)
	// RemoveRules deletes the rules (never the items) of the named items.
	RemoveRules(ctx context.Context, warehouse string, items []string) (int64, error)
}

type ruleEngine struct {
	store *db.Store
	log   zerolog.Logger
}

// NewRuleEngine constructs a RuleEngine backed by the rules table.
func NewRuleEngine(store *db.Store, log zerolog.Logger) RuleEngine {
	return &ruleEngine{store: store, log: log}
}

// CreateRule resolves the item inside the insert itself, so a rule can never
// reference a missing item.
func (r *ruleEngine) CreateRule(ctx context.Context, warehouse, item string, threshold int64) (*Rule, error) {
	rule := Rule{ItemName: item}
	err := r.store.QueryRowxContext(ctx, r.store.Rebind(`
		INSERT INTO rules (item_id, gets_below_quantity)
		SELECT i.id, CAST(? AS BIGINT)
		FROM items i
		JOIN warehouses w ON w.id = i.warehouse_id
		WHERE w.name = ? AND i.name = ?
		RETURNING id, item_id, gets_below_quantity
	`), threshold, warehouse, item).Scan(&rule.ID, &rule.ItemID, &rule.GetsBelowQuantity)
	if err != nil {
		if isNoRows(err) {
			return nil, fmt.Errorf("%w: %s/%s", ErrItemNotFound, warehouse, item)
		}
		if db.IsUniqueViolation(err) {
			r.log.Info().Str("warehouse", warehouse).Str("item", item).Msg("rule already exists")
			return nil, fmt.Errorf("%w: %s/%s", ErrRuleExists, warehouse, item)
		}
		return nil, fmt.Errorf("failed to create rule for %s/%s: %w", warehouse, item, err)
	}

	r.log.Debug().Str("warehouse", warehouse).Str("item", item).Int64("threshold", threshold).Msg("rule created")
	return &rule, nil
}

func (r *ruleEngine) ListRules(ctx context.Context, warehouse string) ([]Rule, error) {
	rules := []Rule{}
	err := r.store.SelectContext(ctx, &rules, r.store.Rebind(`
		SELECT r.id, r.item_id, i.name AS item_name, r.gets_below_quantity
		FROM rules r
		JOIN items i      ON i.id = r.item_id
		JOIN warehouses w ON w.id = i.warehouse_id
		WHERE w.name = ?
		ORDER BY i.id
	`), warehouse)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch rules of %s: %w", warehouse, err)
	}
	return rules, nil
}

func (r *ruleEngine) EditRules(ctx context.Context, warehouse string, items []string, threshold int64) (int64, error) {
	if len(items) == 0 {
		return 0, ErrNoNames
	}

	query, args, err := sqlx.In(`
		UPDATE rules
		SET gets_below_quantity = ?
		WHERE item_id IN (`+ruledItemsIn+`)`, threshold, warehouse, items)
	if err != nil {
		return 0, fmt.Errorf("failed to build rule update: %w", err)
	}

	affected, err := r.exec(ctx, query, args)
	if err != nil {
		return 0, fmt.Errorf("failed to edit rules in %s: %w", warehouse, err)
	}

	r.log.Debug().Str("warehouse", warehouse).Strs("items", items).Int64("affected", affected).Msg("rules edited")
	return affected, nil
}

func (r *ruleEngine) RemoveRules(ctx context.Context, warehouse string, items []string) (int64, error) {
	if len(items) == 0 {
		return 0, ErrNoNames
	}

	query, args, err := sqlx.In(`DELETE FROM rules WHERE item_id IN (`+ruledItemsIn+`)`, warehouse, items)
	if err != nil {
		return 0, fmt.Errorf("failed to build rule removal: %w", err)
	}

	affected, err := r.exec(ctx, query, args)
	if err != nil {
		return 0, fmt.Errorf("failed to remove rules in %s: %w", warehouse, err)
	}

	r.log.Debug().Str("warehouse", warehouse).Strs("items", items).Int64("affected", affected).Msg("rules removed")
	return affected, nil
}

func (r *ruleEngine) exec(ctx context.Context, query string, args []any) (int64, error) {
	res, err := r.store.ExecContext(ctx, r.store.Rebind(query), args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
