package core_test

import (
	"context"
	"testing"

	"deposito/internal/core"
)

func countRows(t *testing.T, svc services, warehouse string) (items, rules int) {
	t.Helper()
	ctx := context.Background()
	its, err := svc.items.ListItems(ctx, warehouse)
	if err != nil {
		t.Fatalf("ListItems failed: %v", err)
	}
	rs, err := svc.rules.ListRules(ctx, warehouse)
	if err != nil {
		t.Fatalf("ListRules failed: %v", err)
	}
	return len(its), len(rs)
}

func seedRemovalFixture(t *testing.T) (services, func(warehouse string) (int, int)) {
	t.Helper()
	svc, ctx := setupServices(t)
	for _, w := range []string{"Fridge", "Pantry"} {
		mustCreateWarehouse(t, ctx, svc, w)
		for _, i := range []string{"Egg", "Milk", "Butter"} {
			mustAdd(t, ctx, svc, w, i, 4)
			if _, err := svc.rules.CreateRule(ctx, w, i, 2); err != nil {
				t.Fatalf("CreateRule failed: %v", err)
			}
		}
	}
	return svc, func(w string) (int, int) { return countRows(t, svc, w) }
}

func TestRemoval_Warehouses(t *testing.T) {
	svc, counts := seedRemovalFixture(t)
	ctx := context.Background()

	res, err := svc.removal.Remove(ctx, core.RemoveWarehouses, []string{"Fridge", "Ghost"})
	if err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if res.Deleted[core.TableWarehouses] != 1 || res.Deleted[core.TableItems] != 3 || res.Deleted[core.TableRules] != 3 {
		t.Errorf("unexpected deletion counts %v", res.Deleted)
	}

	warehouses, _ := svc.inventory.ListWarehouses(ctx)
	if len(warehouses) != 1 || warehouses[0].Name != "Pantry" {
		t.Errorf("expected only Pantry left, got %+v", warehouses)
	}
	if items, rules := counts("Pantry"); items != 3 || rules != 3 {
		t.Errorf("Pantry must be untouched, got %d items %d rules", items, rules)
	}

	t.Run("recreated warehouse starts empty", func(t *testing.T) {
		mustCreateWarehouse(t, ctx, svc, "Fridge")
		if items, rules := counts("Fridge"); items != 0 || rules != 0 {
			t.Errorf("expected empty Fridge, got %d items %d rules", items, rules)
		}
		it := mustAdd(t, ctx, svc, "Fridge", "Egg", 1)
		if it.Quantity != 1 {
			t.Errorf("expected fresh Egg quantity 1, got %d", it.Quantity)
		}
	})

	var orphans int
	err = svc.store.GetContext(ctx, &orphans, `
		SELECT COUNT(*) FROM rules r LEFT JOIN items i ON i.id = r.item_id WHERE i.id IS NULL`)
	if err != nil {
		t.Fatalf("orphan check failed: %v", err)
	}
	if orphans != 0 {
		t.Errorf("expected no orphan rules, got %d", orphans)
	}
}

func TestRemoval_NamedItems(t *testing.T) {
	svc, counts := seedRemovalFixture(t)
	ctx := context.Background()

	res, err := svc.removal.Remove(ctx, core.RemoveItems, []string{"Fridge", "Egg", "Milk"})
	if err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if res.Deleted[core.TableItems] != 2 || res.Deleted[core.TableRules] != 2 {
		t.Errorf("unexpected deletion counts %v", res.Deleted)
	}

	if findItem(t, ctx, svc, "Fridge", "Butter") == nil {
		t.Error("Butter must survive")
	}
	if items, rules := counts("Fridge"); items != 1 || rules != 1 {
		t.Errorf("Fridge: got %d items %d rules, want 1 and 1", items, rules)
	}
	if items, rules := counts("Pantry"); items != 3 || rules != 3 {
		t.Errorf("Pantry must be untouched, got %d items %d rules", items, rules)
	}
}

func TestRemoval_AllItems(t *testing.T) {
	svc, counts := seedRemovalFixture(t)
	ctx := context.Background()

	res, err := svc.removal.Remove(ctx, core.RemoveAllItems, []string{"Fridge"})
	if err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if res.Deleted[core.TableItems] != 3 || res.Deleted[core.TableRules] != 3 || res.Deleted[core.TableWarehouses] != 0 {
		t.Errorf("unexpected deletion counts %v", res.Deleted)
	}

	warehouses, _ := svc.inventory.ListWarehouses(ctx)
	if len(warehouses) != 2 {
		t.Errorf("warehouses must survive, got %+v", warehouses)
	}
	if items, rules := counts("Fridge"); items != 0 || rules != 0 {
		t.Errorf("Fridge: got %d items %d rules, want none", items, rules)
	}
	if items, _ := counts("Pantry"); items != 3 {
		t.Errorf("Pantry must be untouched, got %d items", items)
	}
}
