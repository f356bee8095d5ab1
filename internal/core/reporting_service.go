package core

import (
	"context"
	"fmt"

	"deposito/internal/db"

	"github.com/rs/zerolog"
)

// reportSelect joins every ruled item with its warehouse. Items without a rule
// never appear in a report.
const reportSelect = `
	SELECT w.name AS warehouse_name,
	       i.name AS item_name,
	       i.quantity,
	       r.gets_below_quantity,
	       i.quantity < r.gets_below_quantity AS is_critical
	FROM items i
	JOIN warehouses w ON w.id = i.warehouse_id
	JOIN rules r      ON r.item_id = i.id`

// ReportingService computes read-only low-stock reports.
// An item is critical when quantity < gets_below_quantity; equal is not critical.
type ReportingService interface {
	// ReportWarehouse returns the ruled items of one warehouse in store order.
	ReportWarehouse(ctx context.Context, warehouse string) ([]ReportLine, error)
	// ReportAll returns the ruled items of every warehouse ordered by warehouse
	// name, ready for GroupByWarehouse.
	ReportAll(ctx context.Context) ([]ReportLine, error)
}

type reportingService struct {
	store *db.Store
	log   zerolog.Logger
}

// NewReportingService constructs a ReportingService backed by the given store.
func NewReportingService(store *db.Store, log zerolog.Logger) ReportingService {
	return &reportingService{store: store, log: log}
}

func (s *reportingService) ReportWarehouse(ctx context.Context, warehouse string) ([]ReportLine, error) {
	lines := []ReportLine{}
	if err := s.store.SelectContext(ctx, &lines, s.store.Rebind(reportSelect+` WHERE w.name = ?`), warehouse); err != nil {
		return nil, fmt.Errorf("failed to build report for %s: %w", warehouse, err)
	}
	s.log.Debug().Str("warehouse", warehouse).Int("lines", len(lines)).Msg("warehouse report built")
	return lines, nil
}

func (s *reportingService) ReportAll(ctx context.Context) ([]ReportLine, error) {
	lines := []ReportLine{}
	if err := s.store.SelectContext(ctx, &lines, reportSelect+` ORDER BY w.name ASC, i.id ASC`); err != nil {
		return nil, fmt.Errorf("failed to build report: %w", err)
	}
	s.log.Debug().Int("lines", len(lines)).Msg("full report built")
	return lines, nil
}
