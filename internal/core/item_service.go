package core

import (
	"context"
	"fmt"

	"deposito/internal/db"

	"github.com/rs/zerolog"
)

// ItemService manages items inside warehouses.
type ItemService interface {
	// ListItems returns the items of a warehouse. An unknown warehouse yields an empty slice.
	ListItems(ctx context.Context, warehouse string) ([]Item, error)
	// AddItem inserts the item or, when the name already exists in the warehouse,
	// adds quantity to the stored value. Negative quantities are accepted.
	// description is only written when the item is first created.
	AddItem(ctx context.Context, warehouse, item string, quantity int64, description *string) (*Item, error)
	// EditItem applies a partial update to the item addressed by (warehouse, item)
	// and returns the number of rows changed. Zero rows is not an error.
	EditItem(ctx context.Context, warehouse, item string, patch ItemPatch) (int64, error)
}

type itemService struct {
	store *db.Store
	log   zerolog.Logger
}

// NewItemService constructs an ItemService backed by the given store.
func NewItemService(store *db.Store, log zerolog.Logger) ItemService {
	return &itemService{store: store, log: log}
}

func (s *itemService) ListItems(ctx context.Context, warehouse string) ([]Item, error) {
	items := []Item{}
	err := s.store.SelectContext(ctx, &items, s.store.Rebind(`
		SELECT i.id, i.warehouse_id, i.name, i.quantity, i.description
		FROM items i
		JOIN warehouses w ON w.id = i.warehouse_id
		WHERE w.name = ?
		ORDER BY i.id
	`), warehouse)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch items of %s: %w", warehouse, err)
	}
	return items, nil
}

// AddItem is one upsert statement; there is no separate existence check.
func (s *itemService) AddItem(ctx context.Context, warehouse, item string, quantity int64, description *string) (*Item, error) {
	var it Item
	err := s.store.GetContext(ctx, &it, s.store.Rebind(`
		INSERT INTO items (warehouse_id, name, quantity, description)
		SELECT id, CAST(? AS TEXT), CAST(? AS BIGINT), CAST(? AS TEXT)
		FROM warehouses
		WHERE name = ?
		ON CONFLICT (warehouse_id, name)
		DO UPDATE SET quantity = items.quantity + excluded.quantity
		RETURNING id, warehouse_id, name, quantity, description
	`), item, quantity, description, warehouse)
	if err != nil {
		if isNoRows(err) {
			return nil, fmt.Errorf("%w: %s", ErrWarehouseNotFound, warehouse)
		}
		if db.IsOutOfRange(err) {
			s.log.Info().Str("warehouse", warehouse).Str("item", item).Int64("delta", quantity).Msg("quantity out of range")
			return nil, fmt.Errorf("%w: adding %d to %s in %s", ErrQuantityOutOfRange, quantity, item, warehouse)
		}
		return nil, fmt.Errorf("failed to add %d of %s to %s: %w", quantity, item, warehouse, err)
	}

	s.log.Debug().
		Str("warehouse", warehouse).
		Str("item", item).
		Int64("delta", quantity).
		Int64("quantity", it.Quantity).
		Msg("item stock added")
	return &it, nil
}

func (s *itemService) EditItem(ctx context.Context, warehouse, item string, patch ItemPatch) (int64, error) {
	res, err := s.store.ExecContext(ctx, s.store.Rebind(`
		UPDATE items
		SET name        = COALESCE(CAST(? AS TEXT), name),
		    description = COALESCE(CAST(? AS TEXT), description),
		    quantity    = COALESCE(CAST(? AS BIGINT), quantity)
		WHERE id IN (
			SELECT i.id
			FROM items i
			JOIN warehouses w ON w.id = i.warehouse_id
			WHERE w.name = ? AND i.name = ?
		)
	`), patch.Name, patch.Description, patch.Quantity, warehouse, item)
	if err != nil {
		if db.IsUniqueViolation(err) && patch.Name != nil {
			return 0, fmt.Errorf("%w: %s", ErrItemExists, *patch.Name)
		}
		return 0, fmt.Errorf("failed to edit %s in %s: %w", item, warehouse, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}

	s.log.Debug().Str("warehouse", warehouse).Str("item", item).Int64("affected", affected).Msg("item edited")
	return affected, nil
}
