package resolve

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"cinelist/internal/logging"
	"cinelist/internal/records"
)

// snapshotFile is the on-disk form of one entity kind's ID space. It must
// round-trip exactly: same keys, same IDs, same next-ID counter.
type snapshotFile struct {
	Kind   records.Entity   `json:"kind"`
	NextID int64            `json:"next_id"`
	IDs    map[string]int64 `json:"ids"`
}

func (r *Resolver) snapshotPath(kind records.Entity) string {
	return filepath.Join(r.dir, string(kind)+".resolver.json")
}

// Snapshot persists the kind's mapping and counter to its snapshot file.
// No-op without a snapshot directory.
func (r *Resolver) Snapshot(kind records.Entity) error {
	if r.dir == "" {
		return nil
	}
	s := r.kinds[kind]
	s.mu.RLock()
	snap := snapshotFile{Kind: kind, NextID: s.next, IDs: make(map[string]int64, len(s.ids))}
	for key, id := range s.ids {
		snap.IDs[key] = id
	}
	s.mu.RUnlock()

	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal %s snapshot: %w", kind, err)
	}
	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return fmt.Errorf("create snapshot directory: %w", err)
	}

	// Write atomically via temp file.
	path := r.snapshotPath(kind)
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("write temp snapshot: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename temp snapshot: %w", err)
	}

	r.logger.Debug("wrote resolver snapshot",
		logging.String("kind", string(kind)),
		logging.Int("entry_count", len(snap.IDs)),
		logging.Int64("next_id", snap.NextID))
	return nil
}

// SnapshotAll persists every entity kind.
func (r *Resolver) SnapshotAll() error {
	for _, kind := range records.AllEntities {
		if err := r.Snapshot(kind); err != nil {
			return err
		}
	}
	return nil
}

// Restore loads the kind's snapshot file into memory and reports whether
// anything was loaded. A warm kind (non-empty map) is left untouched unless
// force is set. A missing or corrupt snapshot is a cold start, not an
// error; corruption is logged because it likely means a truncated write.
func (r *Resolver) Restore(kind records.Entity, force bool) (bool, error) {
	if r.dir == "" {
		return false, nil
	}
	s := r.kinds[kind]
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.ids) > 0 && !force {
		return false, nil
	}

	data, err := os.ReadFile(r.snapshotPath(kind))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("read %s snapshot: %w", kind, err)
	}

	var snap snapshotFile
	if err := json.Unmarshal(data, &snap); err != nil {
		r.logger.Warn("resolver snapshot is corrupt, starting cold",
			logging.String("kind", string(kind)),
			logging.Error(err))
		return false, nil
	}
	if snap.Kind != "" && snap.Kind != kind {
		r.logger.Warn("resolver snapshot belongs to another kind, starting cold",
			logging.String("kind", string(kind)),
			logging.String("snapshot_kind", string(snap.Kind)))
		return false, nil
	}

	s.ids = snap.IDs
	if s.ids == nil {
		s.ids = make(map[string]int64)
	}
	s.next = snap.NextID
	if s.next < 1 {
		s.next = 1
	}

	r.logger.Debug("restored resolver snapshot",
		logging.String("kind", string(kind)),
		logging.Int("entry_count", len(s.ids)),
		logging.Int64("next_id", s.next))
	return true, nil
}
