package repo

import (
	"fmt"
	"strings"
	"testing"

	"github.com/Stefan-migo/businessManagementApp-sub001/app/dto"
	"github.com/Stefan-migo/businessManagementApp-sub001/app/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := gdb.AutoMigrate(&models.Category{}, &models.Product{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return gdb
}

func TestInsertRowsGroupsMixedColumnSets(t *testing.T) {
	r := NewTableRepository(newTestDB(t))
	rows := []dto.Row{
		{"id": "c1", "name": "Skincare", "slug": "skincare"},
		{"id": "c2", "name": "Makeup", "slug": "makeup", "description": "eyes and lips"},
		{"id": "c3", "name": "Hair", "slug": "hair"},
	}
	if err := r.InsertRows("categories", rows); err != nil {
		t.Fatalf("insert: %v", err)
	}
	got, err := r.FetchAllRows("categories")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("rows = %d, want 3", len(got))
	}
}

func TestUpsertRowsByIDUpdatesExisting(t *testing.T) {
	r := NewTableRepository(newTestDB(t))
	if err := r.InsertRows("categories", []dto.Row{{"id": "c1", "name": "Old", "slug": "old"}}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	err := r.UpsertRowsByID("categories", []dto.Row{
		{"id": "c1", "name": "New", "slug": "new"},
		{"id": "c2", "name": "Fresh", "slug": "fresh"},
	})
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	rows, err := r.FetchAllRows("categories")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}
	byID := make(map[string]dto.Row)
	for _, row := range rows {
		byID[fmt.Sprint(row["id"])] = row
	}
	if byID["c1"]["name"] != "New" {
		t.Fatalf("c1 not updated: %+v", byID["c1"])
	}
	if byID["c2"]["name"] != "Fresh" {
		t.Fatalf("c2 not inserted: %+v", byID["c2"])
	}
}

func TestInsertRowsLeavesInputUntouched(t *testing.T) {
	r := NewTableRepository(newTestDB(t))
	row := dto.Row{"id": "c1", "name": "A", "slug": "a"}
	if err := r.InsertRows("categories", []dto.Row{row}); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if len(row) != 3 {
		t.Fatalf("input row gained keys: %+v", row)
	}
	for k := range row {
		if strings.HasPrefix(k, "@") {
			t.Fatalf("generated column %q written back into input row", k)
		}
	}
}

func TestInsertRowsFailedBatchCommitsNothing(t *testing.T) {
	r := NewTableRepository(newTestDB(t))
	rows := []dto.Row{
		{"id": "c1", "name": "A", "slug": "a"},
		{"id": "c2", "name": "B", "slug": "b", "description": "extra column set"},
		{"id": "c3", "name": "C", "slug": "c", "bogus_col": 1},
	}
	if err := r.InsertRows("categories", rows); err == nil {
		t.Fatal("expected insert error for unknown column")
	}
	got, err := r.FetchAllRows("categories")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("failed batch left %d rows behind: %+v", len(got), got)
	}
	// retrying the survivors one by one must now succeed cleanly
	for _, row := range rows[:2] {
		if err := r.InsertRows("categories", []dto.Row{row}); err != nil {
			t.Fatalf("retry of %v: %v", row["id"], err)
		}
	}
}

func TestExistingIDs(t *testing.T) {
	r := NewTableRepository(newTestDB(t))
	seed := []dto.Row{
		{"id": "c1", "name": "A", "slug": "a"},
		{"id": "c2", "name": "B", "slug": "b"},
	}
	if err := r.InsertRows("categories", seed); err != nil {
		t.Fatalf("seed: %v", err)
	}
	existing, err := r.ExistingIDs("categories", []string{"c1", "c2", "ghost"})
	if err != nil {
		t.Fatalf("existing: %v", err)
	}
	if len(existing) != 2 {
		t.Fatalf("existing = %v, want c1 and c2", existing)
	}
	if _, ok := existing["ghost"]; ok {
		t.Fatal("ghost id reported as existing")
	}
}

func TestFetchIDPageOrdersAndPaginates(t *testing.T) {
	r := NewTableRepository(newTestDB(t))
	seed := make([]dto.Row, 0, 5)
	for _, id := range []string{"c5", "c3", "c1", "c4", "c2"} {
		seed = append(seed, dto.Row{"id": id, "name": id, "slug": id})
	}
	if err := r.InsertRows("categories", seed); err != nil {
		t.Fatalf("seed: %v", err)
	}

	page, err := r.FetchIDPage("categories", 2, 0)
	if err != nil {
		t.Fatalf("page 0: %v", err)
	}
	if len(page) != 2 || page[0] != "c1" || page[1] != "c2" {
		t.Fatalf("page 0 = %v", page)
	}
	page, err = r.FetchIDPage("categories", 2, 4)
	if err != nil {
		t.Fatalf("page 2: %v", err)
	}
	if len(page) != 1 || page[0] != "c5" {
		t.Fatalf("page 2 = %v", page)
	}
}

func TestDeleteByIDs(t *testing.T) {
	r := NewTableRepository(newTestDB(t))
	seed := []dto.Row{
		{"id": "c1", "name": "A", "slug": "a"},
		{"id": "c2", "name": "B", "slug": "b"},
		{"id": "c3", "name": "C", "slug": "c"},
	}
	if err := r.InsertRows("categories", seed); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := r.DeleteByIDs("categories", []string{"c1", "c3"}); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := r.DeleteByIDs("categories", nil); err != nil {
		t.Fatalf("empty delete: %v", err)
	}
	rows, err := r.FetchAllRows("categories")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(rows) != 1 || rows[0]["id"] != "c2" {
		t.Fatalf("rows = %+v", rows)
	}
}
