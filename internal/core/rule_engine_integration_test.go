package core_test

import (
	"errors"
	"testing"

	"deposito/internal/core"
)

func TestRuleEngine_CreateRule(t *testing.T) {
	svc, ctx := setupServices(t)
	mustCreateWarehouse(t, ctx, svc, "Fridge")
	egg := mustAdd(t, ctx, svc, "Fridge", "Egg", 10)

	rule, err := svc.rules.CreateRule(ctx, "Fridge", "Egg", 5)
	if err != nil {
		t.Fatalf("CreateRule failed: %v", err)
	}
	if rule.ItemID != egg.ID || rule.GetsBelowQuantity != 5 || rule.ItemName != "Egg" {
		t.Errorf("unexpected rule %+v", rule)
	}

	t.Run("second rule for the same item", func(t *testing.T) {
		_, err := svc.rules.CreateRule(ctx, "Fridge", "Egg", 7)
		if !errors.Is(err, core.ErrRuleExists) {
			t.Errorf("expected ErrRuleExists, got %v", err)
		}
	})

	t.Run("missing item creates no orphan", func(t *testing.T) {
		_, err := svc.rules.CreateRule(ctx, "Fridge", "Ghost", 1)
		if !errors.Is(err, core.ErrItemNotFound) {
			t.Errorf("expected ErrItemNotFound, got %v", err)
		}
		_, err = svc.rules.CreateRule(ctx, "Nowhere", "Egg", 1)
		if !errors.Is(err, core.ErrItemNotFound) {
			t.Errorf("expected ErrItemNotFound for missing warehouse, got %v", err)
		}
		rules, err := svc.rules.ListRules(ctx, "Fridge")
		if err != nil {
			t.Fatalf("ListRules failed: %v", err)
		}
		if len(rules) != 1 {
			t.Errorf("expected exactly 1 rule, got %d", len(rules))
		}
	})
}

func TestRuleEngine_ListRules(t *testing.T) {
	svc, ctx := setupServices(t)
	mustCreateWarehouse(t, ctx, svc, "Fridge")
	mustCreateWarehouse(t, ctx, svc, "Pantry")

	rules, err := svc.rules.ListRules(ctx, "Fridge")
	if err != nil {
		t.Fatalf("ListRules failed: %v", err)
	}
	if len(rules) != 0 {
		t.Fatalf("expected no rules, got %d", len(rules))
	}

	mustAdd(t, ctx, svc, "Fridge", "Egg", 10)
	mustAdd(t, ctx, svc, "Fridge", "Milk", 2)
	mustAdd(t, ctx, svc, "Pantry", "Rice", 3)
	for _, r := range []struct {
		w, i string
		t    int64
	}{{"Fridge", "Egg", 5}, {"Fridge", "Milk", 1}, {"Pantry", "Rice", 4}} {
		if _, err := svc.rules.CreateRule(ctx, r.w, r.i, r.t); err != nil {
			t.Fatalf("CreateRule(%s, %s) failed: %v", r.w, r.i, err)
		}
	}

	rules, err = svc.rules.ListRules(ctx, "Fridge")
	if err != nil {
		t.Fatalf("ListRules failed: %v", err)
	}
	got := map[string]int64{}
	for _, r := range rules {
		got[r.ItemName] = r.GetsBelowQuantity
	}
	if len(got) != 2 || got["Egg"] != 5 || got["Milk"] != 1 {
		t.Errorf("unexpected Fridge rules %v", got)
	}
}

func TestRuleEngine_EditRules(t *testing.T) {
	svc, ctx := setupServices(t)
	mustCreateWarehouse(t, ctx, svc, "Fridge")
	mustCreateWarehouse(t, ctx, svc, "Pantry")
	for _, name := range []string{"Egg", "Milk", "Butter"} {
		mustAdd(t, ctx, svc, "Fridge", name, 10)
		if _, err := svc.rules.CreateRule(ctx, "Fridge", name, 1); err != nil {
			t.Fatalf("CreateRule failed: %v", err)
		}
	}
	mustAdd(t, ctx, svc, "Pantry", "Egg", 10)
	if _, err := svc.rules.CreateRule(ctx, "Pantry", "Egg", 1); err != nil {
		t.Fatalf("CreateRule failed: %v", err)
	}

	n, err := svc.rules.EditRules(ctx, "Fridge", []string{"Egg", "Milk", "Ghost"}, 6)
	if err != nil {
		t.Fatalf("EditRules failed: %v", err)
	}
	if n != 2 {
		t.Errorf("expected 2 rules changed, got %d", n)
	}

	fridge, _ := svc.rules.ListRules(ctx, "Fridge")
	for _, r := range fridge {
		want := int64(6)
		if r.ItemName == "Butter" {
			want = 1
		}
		if r.GetsBelowQuantity != want {
			t.Errorf("Fridge/%s threshold = %d, want %d", r.ItemName, r.GetsBelowQuantity, want)
		}
	}

	pantry, _ := svc.rules.ListRules(ctx, "Pantry")
	if len(pantry) != 1 || pantry[0].GetsBelowQuantity != 1 {
		t.Errorf("Pantry rules must be untouched, got %+v", pantry)
	}

	t.Run("zero matches is success", func(t *testing.T) {
		n, err := svc.rules.EditRules(ctx, "Fridge", []string{"Ghost"}, 9)
		if err != nil || n != 0 {
			t.Errorf("expected (0, nil), got (%d, %v)", n, err)
		}
	})

	t.Run("empty list is rejected", func(t *testing.T) {
		if _, err := svc.rules.EditRules(ctx, "Fridge", nil, 9); !errors.Is(err, core.ErrNoNames) {
			t.Errorf("expected ErrNoNames, got %v", err)
		}
	})
}

func TestRuleEngine_RemoveRulesKeepsItems(t *testing.T) {
	svc, ctx := setupServices(t)
	mustCreateWarehouse(t, ctx, svc, "Fridge")
	for _, name := range []string{"Egg", "Milk", "Butter"} {
		mustAdd(t, ctx, svc, "Fridge", name, 10)
		if _, err := svc.rules.CreateRule(ctx, "Fridge", name, 3); err != nil {
			t.Fatalf("CreateRule failed: %v", err)
		}
	}

	n, err := svc.rules.RemoveRules(ctx, "Fridge", []string{"Egg", "Milk"})
	if err != nil {
		t.Fatalf("RemoveRules failed: %v", err)
	}
	if n != 2 {
		t.Errorf("expected 2 rules removed, got %d", n)
	}

	rules, _ := svc.rules.ListRules(ctx, "Fridge")
	if len(rules) != 1 || rules[0].ItemName != "Butter" {
		t.Errorf("expected only Butter's rule to remain, got %+v", rules)
	}

	for _, name := range []string{"Egg", "Milk", "Butter"} {
		if findItem(t, ctx, svc, "Fridge", name) == nil {
			t.Errorf("item %s must survive rule removal", name)
		}
	}
}
