package services

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/alumninet/alumninet-be/internal/store"
)

// BackupServiceProvider defines the interface for store snapshot services.
type BackupServiceProvider interface {
	CreateSnapshot() (string, error)
	ListSnapshots() ([]string, error)
}

// BackupService writes point-in-time JSON snapshots of the whole document
// store into a backup directory.
type BackupService struct {
	store      *store.Store
	eventSvc   EventServiceProvider
	backupPath string
}

// NewBackupService creates a new BackupService.
func NewBackupService(st *store.Store, eventSvc EventServiceProvider, backupPath string) (*BackupService, error) {
	if err := os.MkdirAll(backupPath, 0755); err != nil {
		return nil, fmt.Errorf("create backup directory: %w", err)
	}
	return &BackupService{store: st, eventSvc: eventSvc, backupPath: backupPath}, nil
}

// CreateSnapshot exports every collection to a timestamped JSON file and
// returns its path.
func (s *BackupService) CreateSnapshot() (string, error) {
	collections, err := s.store.Export()
	if err != nil {
		return "", fmt.Errorf("export store: %w", err)
	}

	data, err := json.MarshalIndent(collections, "", "  ")
	if err != nil {
		return "", err
	}

	name := fmt.Sprintf("snapshot_%s.json", time.Now().Format("20060102150405"))
	path := filepath.Join(s.backupPath, name)

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return "", err
	}

	if s.eventSvc != nil {
		msg := fmt.Sprintf("Store snapshot written to %s.", name)
		s.eventSvc.CreateEvent("backup.created", "info", msg, nil)
	}
	return path, nil
}

// ListSnapshots returns the snapshot file names, newest first.
func (s *BackupService) ListSnapshots() ([]string, error) {
	entries, err := os.ReadDir(s.backupPath)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasPrefix(entry.Name(), "snapshot_") && strings.HasSuffix(entry.Name(), ".json") {
			names = append(names, entry.Name())
		}
	}
	sort.Sort(sort.Reverse(sort.StringSlice(names)))
	return names, nil
}
