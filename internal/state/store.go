package state

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/habistudio/habi-backend/internal/inventory"
	apperrors "github.com/habistudio/habi-backend/pkg/errors"
	"github.com/habistudio/habi-backend/pkg/logger"
	"github.com/habistudio/habi-backend/pkg/metrics"
)

const (
	snapshotPrefix = "file_state_"
	snapshotSuffix = ".json"
)

// SnapshotFile describes one saved snapshot on disk.
type SnapshotFile struct {
	Name    string    `json:"name"`
	SavedAt time.Time `json:"saved_at"`
}

// Store reads and writes snapshots under a single save directory. Corrupt or
// missing files are treated as "no snapshot"; the caller falls back to seed
// data rather than failing.
type Store struct {
	dir     string
	log     *logger.Logger
	metrics *metrics.StoreMetrics
}

func NewStore(dir string, log *logger.Logger, m *metrics.StoreMetrics) (*Store, error) {
	if dir == "" {
		return nil, fmt.Errorf("save directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating save directory: %w", err)
	}
	return &Store{dir: dir, log: log, metrics: m}, nil
}

// Save writes the snapshot as file_state_<timestamp>.json and returns the
// filename.
func (s *Store) Save(ctx context.Context, snap Snapshot, now time.Time) (string, error) {
	snap.SavedAt = now.Format(TimestampLayout)
	name := snapshotPrefix + snap.SavedAt + snapshotSuffix

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		s.metrics.IncSnapshotSave("error")
		return "", apperrors.Wrap(apperrors.CodeInternal, err, "encoding snapshot")
	}
	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		s.metrics.IncSnapshotSave("error")
		return "", apperrors.Wrap(apperrors.CodeInternal, err, "writing snapshot")
	}

	s.metrics.IncSnapshotSave("ok")
	if s.log != nil {
		s.log.Info(s.log.WithField(ctx, "file", name), "snapshot saved")
	}
	return name, nil
}

// List returns the saved snapshots, newest first by modification time.
func (s *Store) List() ([]SnapshotFile, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "reading save directory")
	}

	var files []SnapshotFile
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, snapshotPrefix) || !strings.HasSuffix(name, snapshotSuffix) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		files = append(files, SnapshotFile{Name: name, SavedAt: info.ModTime()})
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].SavedAt.After(files[j].SavedAt)
	})
	return files, nil
}

// Load reads one snapshot by filename. Missing or corrupt files return nil.
func (s *Store) Load(ctx context.Context, name string) *Snapshot {
	if name == "" || name != filepath.Base(name) {
		return nil
	}
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		s.metrics.IncSnapshotLoad("missing")
		return nil
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		s.metrics.IncSnapshotLoad("corrupt")
		if s.log != nil {
			s.log.Warn(s.log.WithField(ctx, "file", name), "discarding corrupt snapshot")
		}
		return nil
	}
	s.metrics.IncSnapshotLoad("ok")
	return &snap
}

// LoadLatest returns the newest readable snapshot, or nil when none exists.
func (s *Store) LoadLatest(ctx context.Context) *Snapshot {
	files, err := s.List()
	if err != nil {
		return nil
	}
	for _, file := range files {
		if snap := s.Load(ctx, file.Name); snap != nil {
			return snap
		}
	}
	return nil
}

// InitialInventory is the stock table a boot starts from: the latest
// snapshot's inventory when one exists, else the seed table.
func (s *Store) InitialInventory(ctx context.Context) map[string]inventory.Entry {
	if snap := s.LoadLatest(ctx); snap != nil && snap.Inventory != nil {
		return snap.Inventory
	}
	return inventory.SeedEntries()
}
