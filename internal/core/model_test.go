package core_test

import (
	"testing"

	"deposito/internal/core"
)

func TestReportLine_Coverage(t *testing.T) {
	cases := []struct {
		q, t   int64
		want   string
		wantOK bool
	}{
		{10, 5, "200", true},
		{3, 5, "60", true},
		{1, 3, "33.33", true},
		{-2, 4, "-50", true},
		{7, 0, "0", false},
		{7, -1, "0", false},
	}
	for _, tc := range cases {
		pct, ok := core.ReportLine{Quantity: tc.q, GetsBelowQuantity: tc.t}.Coverage()
		if ok != tc.wantOK || pct.String() != tc.want {
			t.Errorf("Coverage(%d/%d) = (%s, %v), want (%s, %v)", tc.q, tc.t, pct, ok, tc.want, tc.wantOK)
		}
	}
}

func TestGroupByWarehouse(t *testing.T) {
	lines := []core.ReportLine{
		{WarehouseName: "A", ItemName: "1"},
		{WarehouseName: "A", ItemName: "2"},
		{WarehouseName: "B", ItemName: "3"},
	}
	groups := core.GroupByWarehouse(lines)
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	if groups[0].WarehouseName != "A" || len(groups[0].Lines) != 2 || groups[0].Lines[1].ItemName != "2" {
		t.Errorf("unexpected first group %+v", groups[0])
	}
	if groups[1].WarehouseName != "B" || len(groups[1].Lines) != 1 {
		t.Errorf("unexpected second group %+v", groups[1])
	}

	if got := core.GroupByWarehouse(nil); len(got) != 0 {
		t.Errorf("expected no groups for nil input, got %v", got)
	}
}

func TestItemPatch_IsEmpty(t *testing.T) {
	if !(core.ItemPatch{}).IsEmpty() {
		t.Error("zero patch must be empty")
	}
	q := int64(0)
	if (core.ItemPatch{Quantity: &q}).IsEmpty() {
		t.Error("patch with quantity 0 is not empty")
	}
}
