package recents

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"github.com/gridpick/gridpick/internal/dataset"
	"github.com/gridpick/gridpick/internal/logging"
)

// FileStore is a Store persisted as a JSON file. Multiple picker processes
// may share the file, so writes take an advisory lock and readers can Reload
// when the Watcher reports an external change.
type FileStore struct {
	*memoryStore

	path string
	lock *flock.Flock
}

// NewFileStore loads (or creates) the recents file at path. A missing file is
// an empty list; an unreadable or corrupt file is logged and treated as
// empty rather than failing the picker.
func NewFileStore(path string, limit int) (*FileStore, error) {
	if path == "" {
		return nil, errors.New("recents: empty file path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("recents: create directory: %w", err)
	}
	s := &FileStore{
		memoryStore: newMemoryStore(limit),
		path:        path,
		lock:        flock.New(path + ".lock"),
	}
	if err := s.read(); err != nil {
		logging.Error(err)
	}
	return s, nil
}

// Add records the item and persists the updated list before notifying
// subscribers.
func (s *FileStore) Add(item dataset.Item) {
	s.bump(item)
	if err := s.write(); err != nil {
		logging.Error(err)
	}
	s.notify()
}

// Reload re-reads the file and notifies subscribers. The Watcher calls this
// when another process has rewritten the list.
func (s *FileStore) Reload() error {
	if err := s.read(); err != nil {
		return err
	}
	s.notify()
	return nil
}

// Path returns the backing file location.
func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) read() error {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		s.items = nil
		return nil
	}
	if err != nil {
		return fmt.Errorf("recents: read %s: %w", s.path, err)
	}
	var items []dataset.Item
	if err := json.Unmarshal(raw, &items); err != nil {
		return fmt.Errorf("recents: decode %s: %w", s.path, err)
	}
	if len(items) > s.limit {
		items = items[:s.limit]
	}
	s.items = items
	return nil
}

func (s *FileStore) write() error {
	raw, err := json.Marshal(s.items)
	if err != nil {
		return fmt.Errorf("recents: encode: %w", err)
	}
	if err := s.lock.Lock(); err != nil {
		return fmt.Errorf("recents: lock %s: %w", s.lock.Path(), err)
	}
	defer func() {
		if err := s.lock.Unlock(); err != nil {
			logging.Error(err)
		}
	}()
	if err := os.WriteFile(s.path, raw, 0o644); err != nil {
		return fmt.Errorf("recents: write %s: %w", s.path, err)
	}
	return nil
}
