package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Stefan-migo/businessManagementApp-sub001/app/dto"
	"github.com/Stefan-migo/businessManagementApp-sub001/app/repo"
	"github.com/Stefan-migo/businessManagementApp-sub001/app/storage"
	"github.com/Stefan-migo/businessManagementApp-sub001/global"

	"github.com/google/uuid"
)

// restoreTables is the fixed set of restorable tables in dependency order:
// dependents come after their dependencies.
var restoreTables = []string{
	"categories",
	"profiles",
	"admin_users",
	"system_config",
	"products",
	"orders",
	"order_items",
}

// SnapshotService assembles full backup objects from the live tables and
// uploads them to the blob store.
type SnapshotService struct {
	store    storage.Store
	tables   *repo.TableRepository
	compress bool
}

func NewSnapshotService(store storage.Store, tables *repo.TableRepository, compress bool) *SnapshotService {
	return &SnapshotService{store: store, tables: tables, compress: compress}
}

// Take reads every restorable table in full and uploads a backup object
// tagged with the given type. Tables are read without pagination; the working
// set is assumed to fit in memory.
func (s *SnapshotService) Take(ctx context.Context, actor, backupType string) (backupID, objectName string, err error) {
	b := dto.Backup{
		BackupID:  uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		CreatedBy: actor,
		Type:      backupType,
		Tables:    make(map[string]dto.TableDump, len(restoreTables)),
	}
	for _, table := range restoreTables {
		rows, err := s.tables.FetchAllRows(table)
		if err != nil {
			return "", "", fmt.Errorf("read table %s: %w", table, err)
		}
		b.Tables[table] = dto.TableDump{Data: rows, RecordCount: len(rows)}
	}

	data, err := json.Marshal(b)
	if err != nil {
		return "", "", fmt.Errorf("marshal backup: %w", err)
	}

	prefix := "backup"
	if backupType == dto.BackupTypeSafety {
		prefix = "safety-backup"
	}
	objectName = fmt.Sprintf("%s-%s.json", prefix, time.Now().UTC().Format("20060102-150405"))
	if s.compress {
		objectName += ".zst"
	}
	if err := s.store.Upload(ctx, objectName, data); err != nil {
		return "", "", fmt.Errorf("upload backup %s: %w", objectName, err)
	}
	global.Logger.Info().Str("object", objectName).Str("type", backupType).Str("actor", actor).Msg("backup created")
	return b.BackupID, objectName, nil
}
