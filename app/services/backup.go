package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/Stefan-migo/businessManagementApp-sub001/app/dto"
	"github.com/Stefan-migo/businessManagementApp-sub001/app/storage"
)

const downloadURLTTL = time.Hour

// BackupService manages the stored backup objects: listing, inspection,
// deletion and on-demand creation.
type BackupService struct {
	store    storage.Store
	snapshot *SnapshotService
}

func NewBackupService(store storage.Store, snapshot *SnapshotService) *BackupService {
	return &BackupService{store: store, snapshot: snapshot}
}

// List returns all backup objects, newest first.
func (s *BackupService) List(ctx context.Context) ([]dto.BackupInfo, error) {
	objects, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list backups: %w", err)
	}
	infos := make([]dto.BackupInfo, len(objects))
	for i, obj := range objects {
		infos[i] = dto.BackupInfo{Name: obj.Name, Size: obj.Size, ModifiedAt: obj.ModifiedAt}
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].ModifiedAt.After(infos[j].ModifiedAt) })
	return infos, nil
}

// Details downloads and parses a backup object, returning its metadata along
// with a time-limited signed download URL.
func (s *BackupService) Details(ctx context.Context, name string) (*dto.BackupDetails, error) {
	data, err := s.store.Download(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("download backup: %w", err)
	}
	var backup dto.Backup
	if err := json.Unmarshal(data, &backup); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBackupParse, err)
	}
	counts := make(map[string]int, len(backup.Tables))
	for table, dump := range backup.Tables {
		counts[table] = dump.RecordCount
	}
	url, err := s.store.SignedURL(ctx, name, downloadURLTTL)
	if err != nil {
		return nil, fmt.Errorf("sign download url: %w", err)
	}
	return &dto.BackupDetails{
		Name:         name,
		BackupID:     backup.BackupID,
		CreatedAt:    backup.CreatedAt,
		CreatedBy:    backup.CreatedBy,
		Type:         backup.Type,
		RecordCounts: counts,
		DownloadURL:  url,
	}, nil
}

func (s *BackupService) Delete(ctx context.Context, name string) error {
	return s.store.Delete(ctx, name)
}

// CreateManual takes a full backup of the restorable tables right now.
func (s *BackupService) CreateManual(ctx context.Context, actor string) (backupID, objectName string, err error) {
	return s.snapshot.Take(ctx, actor, dto.BackupTypeManual)
}
