package services

import (
	"encoding/json"
	"strconv"

	"github.com/Stefan-migo/businessManagementApp-sub001/app/dto"
)

var productStatuses = map[string]struct{}{
	"draft": {}, "active": {}, "archived": {},
}

var inventoryPolicies = map[string]struct{}{
	"continue": {}, "deny": {},
}

// productDefaults are filled in when a backup row from an older, laxer schema
// version lacks a required column.
var productDefaults = map[string]any{
	"currency":            "ARS",
	"track_inventory":     true,
	"inventory_quantity":  0,
	"low_stock_threshold": 5,
	"is_featured":         false,
	"is_digital":          false,
	"requires_shipping":   true,
}

// cleanRow returns a copy of the row without null-valued columns. Omitting a
// column lets the database apply its default instead of rejecting an explicit
// NULL for a non-nullable column.
func cleanRow(row dto.Row) dto.Row {
	out := make(dto.Row, len(row))
	for k, v := range row {
		if v == nil {
			continue
		}
		out[k] = v
	}
	return out
}

// normalizeProductRow clamps enumerated product fields to their valid domains
// and fills defaults for required fields that are absent. Mutates the row.
func normalizeProductRow(row dto.Row) dto.Row {
	status, _ := row["status"].(string)
	if _, ok := productStatuses[status]; !ok {
		row["status"] = "draft"
	}
	policy, _ := row["inventory_policy"].(string)
	if _, ok := inventoryPolicies[policy]; !ok {
		row["inventory_policy"] = "deny"
	}
	for k, v := range productDefaults {
		if _, ok := row[k]; !ok {
			row[k] = v
		}
	}
	return row
}

// idString renders a row id or foreign key as a string. JSON decoding yields
// strings for uuid keys and float64 or json.Number for numeric ones.
func idString(v any) (string, bool) {
	switch id := v.(type) {
	case string:
		return id, id != ""
	case float64:
		return strconv.FormatFloat(id, 'f', -1, 64), true
	case json.Number:
		return id.String(), true
	default:
		return "", false
	}
}

func collectRowIDs(rows []dto.Row) []string {
	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		if id, ok := idString(row["id"]); ok {
			ids = append(ids, id)
		}
	}
	return ids
}
