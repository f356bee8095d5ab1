package app

import (
	"context"
	"fmt"
	"strings"

	"deposito/internal/core"
	"deposito/internal/db"

	"github.com/rs/zerolog"
)

type appService struct {
	inventory        core.InventoryService
	items            core.ItemService
	rules            core.RuleEngine
	reports          core.ReportingService
	removal          core.RemovalService
	defaultWarehouse string
}

// NewAppService wires every core service over one store.
func NewAppService(store *db.Store, log zerolog.Logger, defaultWarehouse string) ApplicationService {
	return &appService{
		inventory:        core.NewInventoryService(store, log),
		items:            core.NewItemService(store, log),
		rules:            core.NewRuleEngine(store, log),
		reports:          core.NewReportingService(store, log),
		removal:          core.NewRemovalService(store, log),
		defaultWarehouse: strings.TrimSpace(defaultWarehouse),
	}
}

func (s *appService) DefaultWarehouse() string {
	return s.defaultWarehouse
}

// resolveWarehouse falls back to the default warehouse when name is blank.
func (s *appService) resolveWarehouse(name string) (string, error) {
	if name = strings.TrimSpace(name); name != "" {
		return name, nil
	}
	if s.defaultWarehouse != "" {
		return s.defaultWarehouse, nil
	}
	return "", ErrWarehouseRequired
}

func requireNames(names ...string) error {
	for _, n := range names {
		if strings.TrimSpace(n) == "" {
			return ErrEmptyName
		}
	}
	return nil
}

func (s *appService) CreateWarehouse(ctx context.Context, name string) (*WarehouseResult, error) {
	if err := requireNames(name); err != nil {
		return nil, err
	}
	w, err := s.inventory.CreateWarehouse(ctx, name)
	if err != nil {
		return nil, err
	}
	return &WarehouseResult{Warehouse: *w}, nil
}

func (s *appService) ListWarehouses(ctx context.Context) (*WarehouseListResult, error) {
	warehouses, err := s.inventory.ListWarehouses(ctx)
	if err != nil {
		return nil, err
	}
	return &WarehouseListResult{Warehouses: warehouses}, nil
}

func (s *appService) ListItems(ctx context.Context, warehouse string) (*ItemListResult, error) {
	warehouse, err := s.resolveWarehouse(warehouse)
	if err != nil {
		return nil, err
	}
	items, err := s.items.ListItems(ctx, warehouse)
	if err != nil {
		return nil, err
	}
	return &ItemListResult{Warehouse: warehouse, Items: items}, nil
}

func (s *appService) AddItem(ctx context.Context, req AddItemRequest) (*ItemResult, error) {
	if err := requireNames(req.Warehouse, req.Item); err != nil {
		return nil, err
	}
	it, err := s.items.AddItem(ctx, req.Warehouse, req.Item, req.Quantity, req.Description)
	if err != nil {
		return nil, err
	}
	return &ItemResult{Warehouse: req.Warehouse, Item: *it, Added: req.Quantity}, nil
}

func (s *appService) EditItem(ctx context.Context, req EditItemRequest) (*EditItemResult, error) {
	if err := requireNames(req.Warehouse, req.Item); err != nil {
		return nil, err
	}
	if req.Patch.Name != nil {
		if err := requireNames(*req.Patch.Name); err != nil {
			return nil, err
		}
	}
	n, err := s.items.EditItem(ctx, req.Warehouse, req.Item, req.Patch)
	if err != nil {
		return nil, err
	}
	return &EditItemResult{Warehouse: req.Warehouse, Item: req.Item, Matched: n > 0}, nil
}

func (s *appService) Remove(ctx context.Context, req RemoveRequest) (*RemoveResult, error) {
	if err := requireNames(req.Args...); err != nil {
		return nil, err
	}
	res, err := s.removal.Remove(ctx, req.Kind, req.Args)
	if err != nil {
		return nil, err
	}
	return &RemoveResult{Kind: res.Kind, Args: req.Args, Deleted: res.Deleted}, nil
}

func (s *appService) CreateRule(ctx context.Context, req CreateRuleRequest) (*RuleResult, error) {
	if err := requireNames(req.Warehouse, req.Item); err != nil {
		return nil, err
	}
	rule, err := s.rules.CreateRule(ctx, req.Warehouse, req.Item, req.Threshold)
	if err != nil {
		return nil, err
	}

	result := &RuleResult{Warehouse: req.Warehouse, Rule: *rule}
	report, err := s.Report(ctx, req.Warehouse)
	if err != nil {
		result.ReportErr = fmt.Errorf("rule created but report failed: %w", err)
		return result, nil
	}
	result.Report = report
	return result, nil
}

func (s *appService) ListRules(ctx context.Context, warehouse string) (*RuleListResult, error) {
	warehouse, err := s.resolveWarehouse(warehouse)
	if err != nil {
		return nil, err
	}
	rules, err := s.rules.ListRules(ctx, warehouse)
	if err != nil {
		return nil, err
	}
	return &RuleListResult{Warehouse: warehouse, Rules: rules}, nil
}

func (s *appService) EditRules(ctx context.Context, req EditRulesRequest) (*RulesChangedResult, error) {
	if err := requireNames(append([]string{req.Warehouse}, req.Items...)...); err != nil {
		return nil, err
	}
	n, err := s.rules.EditRules(ctx, req.Warehouse, req.Items, req.Threshold)
	if err != nil {
		return nil, err
	}
	return &RulesChangedResult{Warehouse: req.Warehouse, Items: req.Items, Changed: n}, nil
}

func (s *appService) RemoveRules(ctx context.Context, req RemoveRulesRequest) (*RulesChangedResult, error) {
	if err := requireNames(append([]string{req.Warehouse}, req.Items...)...); err != nil {
		return nil, err
	}
	n, err := s.rules.RemoveRules(ctx, req.Warehouse, req.Items)
	if err != nil {
		return nil, err
	}
	return &RulesChangedResult{Warehouse: req.Warehouse, Items: req.Items, Changed: n}, nil
}

func (s *appService) Report(ctx context.Context, warehouse string) (*ReportResult, error) {
	warehouse, err := s.resolveWarehouse(warehouse)
	if err != nil {
		return nil, err
	}
	lines, err := s.reports.ReportWarehouse(ctx, warehouse)
	if err != nil {
		return nil, err
	}
	result := &ReportResult{Warehouse: warehouse}
	if len(lines) > 0 {
		result.Sections = []core.WarehouseReport{{WarehouseName: warehouse, Lines: lines}}
	}
	return result, nil
}

func (s *appService) ReportAll(ctx context.Context) (*ReportResult, error) {
	lines, err := s.reports.ReportAll(ctx)
	if err != nil {
		return nil, err
	}
	return &ReportResult{Sections: core.GroupByWarehouse(lines)}, nil
}
