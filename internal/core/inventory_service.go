package core

import (
	"context"
	"fmt"

	"deposito/internal/db"

	"github.com/rs/zerolog"
)

// InventoryService manages the warehouse lifecycle.
type InventoryService interface {
	// CreateWarehouse inserts a new warehouse. A duplicate name yields ErrWarehouseExists.
	CreateWarehouse(ctx context.Context, name string) (*Warehouse, error)
	// ListWarehouses returns every warehouse in store order. An empty slice is not an error.
	ListWarehouses(ctx context.Context) ([]Warehouse, error)
}

type inventoryService struct {
	store *db.Store
	log   zerolog.Logger
}

// NewInventoryService constructs an InventoryService backed by the given store.
func NewInventoryService(store *db.Store, log zerolog.Logger) InventoryService {
	return &inventoryService{store: store, log: log}
}

func (s *inventoryService) CreateWarehouse(ctx context.Context, name string) (*Warehouse, error) {
	var w Warehouse
	err := s.store.GetContext(ctx, &w,
		s.store.Rebind(`INSERT INTO warehouses (name) VALUES (?) RETURNING id, name`), name)
	if err != nil {
		if db.IsUniqueViolation(err) {
			s.log.Info().Str("warehouse", name).Msg("warehouse already exists")
			return nil, fmt.Errorf("%w: %s", ErrWarehouseExists, name)
		}
		return nil, fmt.Errorf("failed to create warehouse %s: %w", name, err)
	}

	s.log.Debug().Int64("id", w.ID).Str("warehouse", w.Name).Msg("warehouse created")
	return &w, nil
}

func (s *inventoryService) ListWarehouses(ctx context.Context) ([]Warehouse, error) {
	warehouses := []Warehouse{}
	if err := s.store.SelectContext(ctx, &warehouses, `SELECT id, name FROM warehouses`); err != nil {
		return nil, fmt.Errorf("failed to fetch warehouses: %w", err)
	}
	return warehouses, nil
}
