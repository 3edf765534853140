package services

import (
	"testing"

	"github.com/Stefan-migo/businessManagementApp-sub001/app/dto"
)

func TestCleanRowDropsNullColumns(t *testing.T) {
	row := dto.Row{"id": "p1", "name": "x", "category_id": nil, "weight": nil}
	cleaned := cleanRow(row)
	if _, ok := cleaned["category_id"]; ok {
		t.Error("null category_id survived cleaning")
	}
	if _, ok := cleaned["weight"]; ok {
		t.Error("null weight survived cleaning")
	}
	if cleaned["id"] != "p1" || cleaned["name"] != "x" {
		t.Errorf("non-null columns changed: %+v", cleaned)
	}
	if _, ok := row["category_id"]; !ok {
		t.Error("cleanRow should not mutate its input")
	}
}

func TestNormalizeProductRow(t *testing.T) {
	tests := []struct {
		name       string
		row        dto.Row
		wantStatus string
		wantPolicy string
	}{
		{"valid values kept", dto.Row{"status": "active", "inventory_policy": "continue"}, "active", "continue"},
		{"invalid clamped", dto.Row{"status": "published", "inventory_policy": "block"}, "draft", "deny"},
		{"absent defaulted", dto.Row{}, "draft", "deny"},
		{"non-string clamped", dto.Row{"status": 3, "inventory_policy": true}, "draft", "deny"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := normalizeProductRow(tt.row)
			if got["status"] != tt.wantStatus {
				t.Errorf("status = %v, want %v", got["status"], tt.wantStatus)
			}
			if got["inventory_policy"] != tt.wantPolicy {
				t.Errorf("inventory_policy = %v, want %v", got["inventory_policy"], tt.wantPolicy)
			}
			if got["currency"] != "ARS" {
				t.Errorf("currency default = %v", got["currency"])
			}
			if got["low_stock_threshold"] != 5 {
				t.Errorf("low_stock_threshold default = %v", got["low_stock_threshold"])
			}
		})
	}
}

func TestNormalizeProductRowKeepsExplicitValues(t *testing.T) {
	row := normalizeProductRow(dto.Row{"currency": "USD", "inventory_quantity": float64(12)})
	if row["currency"] != "USD" {
		t.Errorf("explicit currency overwritten: %v", row["currency"])
	}
	if row["inventory_quantity"] != float64(12) {
		t.Errorf("explicit quantity overwritten: %v", row["inventory_quantity"])
	}
}

func TestIDString(t *testing.T) {
	tests := []struct {
		in     any
		want   string
		wantOK bool
	}{
		{"abc", "abc", true},
		{"", "", false},
		{float64(42), "42", true},
		{float64(1.5), "1.5", true},
		{nil, "", false},
		{true, "", false},
	}
	for _, tt := range tests {
		got, ok := idString(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("idString(%v) = (%q, %v), want (%q, %v)", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestCollectRowIDsSkipsMissing(t *testing.T) {
	rows := []dto.Row{{"id": "a"}, {"name": "no id"}, {"id": float64(7)}}
	ids := collectRowIDs(rows)
	if len(ids) != 2 || ids[0] != "a" || ids[1] != "7" {
		t.Fatalf("ids = %v", ids)
	}
}
