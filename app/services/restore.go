package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Stefan-migo/businessManagementApp-sub001/app/dto"
	"github.com/Stefan-migo/businessManagementApp-sub001/app/models"
	"github.com/Stefan-migo/businessManagementApp-sub001/app/repo"
	"github.com/Stefan-migo/businessManagementApp-sub001/app/storage"
	"github.com/Stefan-migo/businessManagementApp-sub001/global"
)

const (
	deleteBatchSize   = 500
	insertBatchSize   = 100
	idPageSize        = 1000
	maxProblemRecords = 3
)

var (
	ErrBackupDownload = errors.New("backup download failed")
	ErrBackupParse    = errors.New("backup is not valid JSON")
	ErrInvalidBackup  = errors.New("backup has no tables section")
)

// RestoreError carries the id of a safety backup taken before the failure, so
// callers learn about that side effect even when the restore itself aborts.
type RestoreError struct {
	SafetyBackupID string
	err            error
}

func (e *RestoreError) Error() string { return e.err.Error() }
func (e *RestoreError) Unwrap() error { return e.err }

// RestoreService replaces the contents of the restorable tables with the rows
// of a stored backup object.
//
// The operation is not transactional: each table's delete and insert phases
// commit independently, so a failure partway through leaves earlier tables
// already replaced and later tables untouched. The referential sanitizer runs
// once, before any table is restored, and checks category references against
// the pre-restore state of the categories table.
type RestoreService struct {
	store    storage.Store
	tables   *repo.TableRepository
	snapshot *SnapshotService
	audit    *repo.ActivityLogRepository
}

func NewRestoreService(store storage.Store, tables *repo.TableRepository, snapshot *SnapshotService, audit *repo.ActivityLogRepository) *RestoreService {
	return &RestoreService{store: store, tables: tables, snapshot: snapshot, audit: audit}
}

func (s *RestoreService) Run(ctx context.Context, actor string, req dto.RestoreRequest) (*dto.RestoreResponse, error) {
	started := time.Now()

	// Safety snapshot is best-effort: a broken snapshot path never blocks an
	// admin-requested restore.
	var safetyBackupID string
	if req.WantsSafetyBackup() {
		id, object, err := s.snapshot.Take(ctx, actor, dto.BackupTypeSafety)
		if err != nil {
			global.Logger.Warn().Err(err).Msg("safety backup failed, continuing with restore")
		} else {
			safetyBackupID = id
			global.Logger.Info().Str("object", object).Msg("safety backup taken")
		}
	}

	backup, err := s.fetchBackup(ctx, req.BackupFilename)
	if err != nil {
		return nil, &RestoreError{SafetyBackupID: safetyBackupID, err: err}
	}

	if nulled, err := s.sanitizeProductCategories(backup.Tables); err != nil {
		// A failed existence probe only disables sanitizing; dangling
		// references then surface as per-row insert errors.
		global.Logger.Warn().Err(err).Msg("category sanitize probe failed, restoring rows as-is")
	} else if nulled > 0 {
		global.Logger.Info().Int("nulled", nulled).Msg("dangling category references cleared")
	}

	results := make(map[string]dto.TableResult, len(restoreTables))
	var tablesRestored []string
	totalRestored, totalErrors := 0, 0
	for _, table := range restoreTables {
		res := s.restoreTable(table, backup.Tables[table])
		results[table] = res
		totalRestored += res.RecordsRestored
		// Delete errors are informational and do not count toward the
		// operation's error total.
		totalErrors += res.Errors
		if res.RecordsRestored > 0 {
			tablesRestored = append(tablesRestored, table)
		}
		global.Logger.Info().
			Str("table", table).
			Str("status", res.Status).
			Int("restored", res.RecordsRestored).
			Int("total", res.RecordsTotal).
			Int("errors", res.Errors).
			Int("delete_errors", res.DeleteErrors).
			Msg("table restored")
	}

	duration := time.Since(started)
	resp := &dto.RestoreResponse{
		Success:              true,
		Message:              fmt.Sprintf("restore of %s completed", req.BackupFilename),
		BackupFile:           req.BackupFilename,
		BackupID:             backup.BackupID,
		SafetyBackupID:       safetyBackupID,
		TablesRestored:       tablesRestored,
		TotalRecordsRestored: totalRestored,
		Errors:               totalErrors,
		RestoreResults:       results,
		DurationSeconds:      duration.Seconds(),
	}

	s.writeAuditEntry(actor, req.BackupFilename, safetyBackupID, duration, results)
	return resp, nil
}

// fetchBackup downloads, parses and structurally validates a backup object.
func (s *RestoreService) fetchBackup(ctx context.Context, name string) (*dto.Backup, error) {
	data, err := s.store.Download(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBackupDownload, err)
	}
	var backup dto.Backup
	if err := json.Unmarshal(data, &backup); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBackupParse, err)
	}
	if backup.Tables == nil {
		return nil, ErrInvalidBackup
	}
	return &backup, nil
}

// sanitizeProductCategories nulls out category references in the backup's
// product rows that no longer exist in the categories table, so restoring the
// products cannot trip a foreign key. The policy is to orphan the product
// rather than skip it or fail the restore. Checks run against the categories
// table as it exists before any table is restored.
func (s *RestoreService) sanitizeProductCategories(tables map[string]dto.TableDump) (int, error) {
	dump, ok := tables["products"]
	if !ok || len(dump.Data) == 0 {
		return 0, nil
	}

	referenced := make(map[string]struct{})
	for _, row := range dump.Data {
		if id, ok := idString(row["category_id"]); ok {
			referenced[id] = struct{}{}
		}
	}
	if len(referenced) == 0 {
		return 0, nil
	}

	ids := make([]string, 0, len(referenced))
	for id := range referenced {
		ids = append(ids, id)
	}
	existing, err := s.tables.ExistingIDs("categories", ids)
	if err != nil {
		return 0, err
	}

	nulled := 0
	for _, row := range dump.Data {
		id, ok := idString(row["category_id"])
		if !ok {
			continue
		}
		if _, found := existing[id]; !found {
			row["category_id"] = nil
			nulled++
		}
	}
	return nulled, nil
}

// restoreTable runs the per-table state machine: skipped when the backup has
// no rows, otherwise delete phase then insert phase, ending in success,
// partial or error.
func (s *RestoreService) restoreTable(table string, dump dto.TableDump) dto.TableResult {
	total := len(dump.Data)
	if total == 0 {
		return dto.TableResult{Status: dto.StatusSkipped, Note: "no data in backup"}
	}
	res := dto.TableResult{RecordsTotal: total}

	if table == "products" {
		s.deleteBackupIDs(table, dump.Data, &res)
	} else {
		s.wipeTable(table, &res)
	}

	inserted := 0
	for start := 0; start < total; start += insertBatchSize {
		end := start + insertBatchSize
		if end > total {
			end = total
		}
		batch := make([]dto.Row, 0, end-start)
		for _, row := range dump.Data[start:end] {
			row = cleanRow(row)
			if table == "products" {
				row = normalizeProductRow(row)
			}
			batch = append(batch, row)
		}
		inserted += s.writeBatch(table, batch, &res)
	}
	res.RecordsRestored = inserted

	switch {
	case inserted == 0:
		res.Status = dto.StatusError
		if res.ErrorMessage == "" {
			res.ErrorMessage = fmt.Sprintf("no records restored for %s", table)
		}
	case inserted == total && res.Errors == 0:
		res.Status = dto.StatusSuccess
		if res.DeleteErrors > 0 {
			res.Note = fmt.Sprintf("restored fully despite %d delete errors", res.DeleteErrors)
		}
	default:
		res.Status = dto.StatusPartial
	}
	return res
}

// deleteBackupIDs removes only the rows whose ids appear in the backup, so
// products absent from a partial backup survive the restore.
func (s *RestoreService) deleteBackupIDs(table string, rows []dto.Row, res *dto.TableResult) {
	ids := collectRowIDs(rows)
	for start := 0; start < len(ids); start += deleteBatchSize {
		end := start + deleteBatchSize
		if end > len(ids) {
			end = len(ids)
		}
		if err := s.tables.DeleteByIDs(table, ids[start:end]); err != nil {
			res.DeleteErrors++
			global.Logger.Warn().Err(err).Str("table", table).Msg("delete batch failed")
		}
	}
}

// wipeTable pages through all existing row ids and deletes them in batches.
// Delete errors are counted but never fatal; the subsequent insert can still
// succeed against whatever remains.
func (s *RestoreService) wipeTable(table string, res *dto.TableResult) {
	for {
		ids, err := s.tables.FetchIDPage(table, idPageSize, 0)
		if err != nil {
			res.DeleteErrors++
			global.Logger.Warn().Err(err).Str("table", table).Msg("id page fetch failed")
			return
		}
		if len(ids) == 0 {
			return
		}
		deleted := 0
		for start := 0; start < len(ids); start += deleteBatchSize {
			end := start + deleteBatchSize
			if end > len(ids) {
				end = len(ids)
			}
			if err := s.tables.DeleteByIDs(table, ids[start:end]); err != nil {
				res.DeleteErrors++
				global.Logger.Warn().Err(err).Str("table", table).Msg("delete batch failed")
				continue
			}
			deleted += end - start
		}
		if deleted == 0 {
			// Nothing was removed this page; refetching would spin on the
			// same ids forever.
			return
		}
		if len(ids) < idPageSize {
			return
		}
	}
}

// writeBatch inserts one batch, falling back to row-by-row writes when the
// batch fails so the problematic rows can be isolated. Returns the number of
// rows written.
func (s *RestoreService) writeBatch(table string, batch []dto.Row, res *dto.TableResult) int {
	if err := s.writeRows(table, batch); err == nil {
		return len(batch)
	}
	inserted := 0
	for _, row := range batch {
		err := s.writeRows(table, []dto.Row{row})
		if err == nil {
			inserted++
			continue
		}
		res.Errors++
		if len(res.ProblematicRecords) < maxProblemRecords {
			res.ProblematicRecords = append(res.ProblematicRecords, dto.ProblemRecord{
				ID:    row["id"],
				Error: err.Error(),
				Hint:  insertHint(err),
			})
		}
	}
	return inserted
}

func (s *RestoreService) writeRows(table string, rows []dto.Row) error {
	if table == "products" {
		return s.tables.UpsertRowsByID(table, rows)
	}
	return s.tables.InsertRows(table, rows)
}

func insertHint(err error) string {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "unique") || strings.Contains(msg, "duplicate"):
		return "a row with this id already exists"
	case strings.Contains(msg, "foreign key"):
		return "row references a record that does not exist"
	case strings.Contains(msg, "no column") || strings.Contains(msg, "unknown column"):
		return "row has a column the current schema does not know"
	default:
		return ""
	}
}

func (s *RestoreService) writeAuditEntry(actor, backupFile, safetyBackupID string, duration time.Duration, results map[string]dto.TableResult) {
	details, err := json.Marshal(results)
	if err != nil {
		details = []byte("{}")
	}
	entry := &models.ActivityLog{
		Actor:          actor,
		Action:         "backup_restore",
		Target:         backupFile,
		Details:        string(details),
		SafetyBackupID: safetyBackupID,
		DurationMs:     duration.Milliseconds(),
	}
	if err := s.audit.Create(entry); err != nil {
		global.Logger.Warn().Err(err).Msg("audit entry write failed")
	}
}
