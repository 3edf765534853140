package repo

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Stefan-migo/businessManagementApp-sub001/app/dto"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TableRepository gives the backup pipeline untyped row access to the
// restorable tables. Rows are open maps; columns the models don't know about
// survive a backup/restore round trip.
type TableRepository struct{ db *gorm.DB }

func NewTableRepository(db *gorm.DB) *TableRepository { return &TableRepository{db: db} }

func (r *TableRepository) FetchAllRows(table string) ([]dto.Row, error) {
	var raw []map[string]any
	if err := r.db.Table(table).Find(&raw).Error; err != nil {
		return nil, err
	}
	rows := make([]dto.Row, len(raw))
	for i, m := range raw {
		rows[i] = dto.Row(m)
	}
	return rows, nil
}

func (r *TableRepository) FetchIDPage(table string, limit, offset int) ([]string, error) {
	var ids []string
	err := r.db.Table(table).Order("id").Limit(limit).Offset(offset).Pluck("id", &ids).Error
	return ids, err
}

func (r *TableRepository) DeleteByIDs(table string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.Exec(fmt.Sprintf("DELETE FROM %s WHERE id IN ?", table), ids).Error
}

// ExistingIDs reports which of the given ids are present in the table.
func (r *TableRepository) ExistingIDs(table string, ids []string) (map[string]struct{}, error) {
	existing := make(map[string]struct{}, len(ids))
	const chunkSize = 500
	for start := 0; start < len(ids); start += chunkSize {
		end := start + chunkSize
		if end > len(ids) {
			end = len(ids)
		}
		var found []string
		if err := r.db.Table(table).Where("id IN ?", ids[start:end]).Pluck("id", &found).Error; err != nil {
			return nil, err
		}
		for _, id := range found {
			existing[id] = struct{}{}
		}
	}
	return existing, nil
}

func (r *TableRepository) InsertRows(table string, rows []dto.Row) error {
	return r.writeRows(table, rows, false)
}

// UpsertRowsByID inserts rows, updating all supplied columns when a row with
// the same id already exists.
func (r *TableRepository) UpsertRowsByID(table string, rows []dto.Row) error {
	return r.writeRows(table, rows, true)
}

// writeRows issues one multi-row statement per group of rows sharing the same
// column set. A single INSERT needs a uniform column list, and rows arrive
// with differing keys because null columns are dropped upstream. The groups
// commit in one transaction: callers retry a failed write row by row, which
// only stays correct when a failure leaves nothing behind.
func (r *TableRepository) writeRows(table string, rows []dto.Row, upsert bool) error {
	if len(rows) == 0 {
		return nil
	}
	groups := make(map[string][]map[string]any)
	for _, row := range rows {
		// gorm writes generated values back into the maps it is handed;
		// insert copies so the caller's rows stay clean for a retry.
		cp := make(map[string]any, len(row))
		for k, v := range row {
			cp[k] = v
		}
		sig := keySignature(row)
		groups[sig] = append(groups[sig], cp)
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		for sig, group := range groups {
			stmt := tx.Table(table)
			if upsert {
				cols := strings.Split(sig, "\x00")
				assign := make([]string, 0, len(cols))
				for _, c := range cols {
					if c != "id" {
						assign = append(assign, c)
					}
				}
				onConflict := clause.OnConflict{Columns: []clause.Column{{Name: "id"}}}
				if len(assign) == 0 {
					onConflict.DoNothing = true
				} else {
					onConflict.DoUpdates = clause.AssignmentColumns(assign)
				}
				stmt = stmt.Clauses(onConflict)
			}
			if err := stmt.Create(group).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func keySignature(row dto.Row) string {
	keys := make([]string, 0, len(row))
	for k := range row {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return strings.Join(keys, "\x00")
}
