package core_test

import (
	"testing"

	"deposito/internal/core"
)

func TestReporting_CriticalThreshold(t *testing.T) {
	svc, ctx := setupServices(t)
	mustCreateWarehouse(t, ctx, svc, "Fridge")

	const threshold = 5
	mustAdd(t, ctx, svc, "Fridge", "AtThreshold", threshold)
	mustAdd(t, ctx, svc, "Fridge", "JustBelow", threshold-1)
	mustAdd(t, ctx, svc, "Fridge", "Plenty", threshold+10)
	mustAdd(t, ctx, svc, "Fridge", "Unruled", 0)
	for _, name := range []string{"AtThreshold", "JustBelow", "Plenty"} {
		if _, err := svc.rules.CreateRule(ctx, "Fridge", name, threshold); err != nil {
			t.Fatalf("CreateRule(%s) failed: %v", name, err)
		}
	}

	lines, err := svc.reports.ReportWarehouse(ctx, "Fridge")
	if err != nil {
		t.Fatalf("ReportWarehouse failed: %v", err)
	}

	want := map[string]bool{"AtThreshold": false, "JustBelow": true, "Plenty": false}
	if len(lines) != len(want) {
		t.Fatalf("expected %d lines (unruled items excluded), got %d: %+v", len(want), len(lines), lines)
	}
	for _, l := range lines {
		critical, ok := want[l.ItemName]
		if !ok {
			t.Errorf("unexpected item %s in report", l.ItemName)
			continue
		}
		if l.IsCritical != critical {
			t.Errorf("%s: quantity %d threshold %d critical=%v, want %v",
				l.ItemName, l.Quantity, l.GetsBelowQuantity, l.IsCritical, critical)
		}
		if l.WarehouseName != "Fridge" {
			t.Errorf("%s: warehouse %q, want Fridge", l.ItemName, l.WarehouseName)
		}
	}
}

func TestReporting_ReportAllOrderedByWarehouse(t *testing.T) {
	svc, ctx := setupServices(t)
	for _, w := range []string{"Pantry", "Cellar", "Fridge"} {
		mustCreateWarehouse(t, ctx, svc, w)
	}
	seed := []struct {
		w, i string
		q, t int64
	}{
		{"Pantry", "Rice", 1, 2},
		{"Fridge", "Egg", 10, 5},
		{"Cellar", "Wine", 3, 3},
		{"Pantry", "Flour", 9, 2},
	}
	for _, s := range seed {
		mustAdd(t, ctx, svc, s.w, s.i, s.q)
		if _, err := svc.rules.CreateRule(ctx, s.w, s.i, s.t); err != nil {
			t.Fatalf("CreateRule failed: %v", err)
		}
	}

	lines, err := svc.reports.ReportAll(ctx)
	if err != nil {
		t.Fatalf("ReportAll failed: %v", err)
	}
	if len(lines) != len(seed) {
		t.Fatalf("expected %d lines, got %d", len(seed), len(lines))
	}

	groups := core.GroupByWarehouse(lines)
	var names []string
	for _, g := range groups {
		names = append(names, g.WarehouseName)
	}
	if len(names) != 3 || names[0] != "Cellar" || names[1] != "Fridge" || names[2] != "Pantry" {
		t.Fatalf("expected sections Cellar, Fridge, Pantry; got %v", names)
	}
	if len(groups[2].Lines) != 2 || groups[2].Lines[0].ItemName != "Rice" || !groups[2].Lines[0].IsCritical {
		t.Errorf("unexpected Pantry section %+v", groups[2].Lines)
	}
}

func TestReporting_EmptyReport(t *testing.T) {
	svc, ctx := setupServices(t)
	mustCreateWarehouse(t, ctx, svc, "Fridge")
	mustAdd(t, ctx, svc, "Fridge", "Egg", 1)

	lines, err := svc.reports.ReportWarehouse(ctx, "Fridge")
	if err != nil {
		t.Fatalf("ReportWarehouse failed: %v", err)
	}
	if len(lines) != 0 {
		t.Errorf("expected empty report without rules, got %+v", lines)
	}

	all, err := svc.reports.ReportAll(ctx)
	if err != nil {
		t.Fatalf("ReportAll failed: %v", err)
	}
	if len(all) != 0 {
		t.Errorf("expected empty full report, got %+v", all)
	}
}

// The end-to-end fridge scenario: add twice, rule, then drop below threshold.
func TestReporting_FridgeScenario(t *testing.T) {
	svc, ctx := setupServices(t)
	mustCreateWarehouse(t, ctx, svc, "Fridge")
	mustAdd(t, ctx, svc, "Fridge", "Egg", 8)
	mustAdd(t, ctx, svc, "Fridge", "Egg", 2)

	if it := findItem(t, ctx, svc, "Fridge", "Egg"); it == nil || it.Quantity != 10 {
		t.Fatalf("expected Egg quantity 10, got %+v", it)
	}

	if _, err := svc.rules.CreateRule(ctx, "Fridge", "Egg", 5); err != nil {
		t.Fatalf("CreateRule failed: %v", err)
	}
	lines, _ := svc.reports.ReportWarehouse(ctx, "Fridge")
	if len(lines) != 1 || lines[0].IsCritical {
		t.Fatalf("expected Egg OK at 10 >= 5, got %+v", lines)
	}

	if _, err := svc.items.EditItem(ctx, "Fridge", "Egg", core.ItemPatch{Quantity: intPtr(3)}); err != nil {
		t.Fatalf("EditItem failed: %v", err)
	}
	lines, _ = svc.reports.ReportWarehouse(ctx, "Fridge")
	if len(lines) != 1 || !lines[0].IsCritical {
		t.Fatalf("expected Egg CRITICAL at 3 < 5, got %+v", lines)
	}
}
