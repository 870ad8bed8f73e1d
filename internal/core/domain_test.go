package core

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestTableKeepsDefinitionOrder(t *testing.T) {
	tbl := NewTable(Branch)
	tbl.Define("003", "Fukuoka")
	tbl.Define("001", "Tokyo")
	tbl.Define("002", "Osaka")

	want := []string{"003", "001", "002"}
	if diff := cmp.Diff(want, tbl.Codes()); diff != "" {
		t.Fatalf("codes mismatch (-want +got):\n%s", diff)
	}
	for _, code := range want {
		if tbl.Total(code) != 0 {
			t.Fatalf("expected zero total for %s, got %d", code, tbl.Total(code))
		}
	}
}

func TestTableRedefineKeepsPosition(t *testing.T) {
	tbl := NewTable(Branch)
	tbl.Define("001", "Tokyo")
	tbl.Define("002", "Osaka")
	if err := tbl.SetTotal("001", 50); err != nil {
		t.Fatalf("set total: %v", err)
	}
	tbl.Define("001", "Shinjuku")

	want := []Entity{
		{Code: "001", Name: "Shinjuku", Total: 0},
		{Code: "002", Name: "Osaka", Total: 0},
	}
	if diff := cmp.Diff(want, tbl.Entities()); diff != "" {
		t.Fatalf("entities mismatch (-want +got):\n%s", diff)
	}
}

func TestTableSetTotalUnknownCode(t *testing.T) {
	tbl := NewTable(Commodity)
	if err := tbl.SetTotal("ABCDEFGH", 1); err != ErrUnknownCode {
		t.Fatalf("expected ErrUnknownCode, got %v", err)
	}
	if tbl.Has("ABCDEFGH") {
		t.Fatalf("SetTotal must not define codes")
	}
}

func TestSummaryTables(t *testing.T) {
	s := Summary{Branches: []Entity{{Code: "001"}}, Commodities: []Entity{{Code: "SFT00001"}}}
	if got := len(s.Tables()); got != 1 {
		t.Fatalf("expected branch table only, got %d tables", got)
	}
	s.CommodityEnabled = true
	if got := len(s.Tables()); got != 2 {
		t.Fatalf("expected two tables, got %d", got)
	}
}
