package library

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/plateforge/plateforge/pkg/errors"
)

// FileStore is a file-based design store for CLI use. Each entry is
// one JSON file named after the design.
type FileStore struct {
	mu  sync.RWMutex
	dir string
}

// NewFileStore creates a file-based design store.
// If dir is empty, defaults to <user config dir>/plateforge/library.
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeStore, err, "resolve user config dir")
		}
		dir = filepath.Join(base, "plateforge", "library")
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "create library dir")
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) entryPath(name string) string {
	return filepath.Join(s.dir, name+".json")
}

// readEntry loads one entry without locking. Missing files return
// (nil, nil).
func (s *FileStore) readEntry(name string) (*Entry, error) {
	data, err := os.ReadFile(s.entryPath(name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrap(errors.ErrCodeStore, err, "read design file")
	}
	var e Entry
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "parse design %q", name)
	}
	return &e, nil
}

func (s *FileStore) Save(ctx context.Context, e *Entry) error {
	if err := errors.ValidateDesignName(e.Name); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	if prev, err := s.readEntry(e.Name); err == nil && prev != nil {
		e.ID = prev.ID
		e.CreatedAt = prev.CreatedAt
	} else {
		if e.ID == "" {
			e.ID = uuid.NewString()
		}
		e.CreatedAt = now
	}
	e.UpdatedAt = now

	data, err := json.MarshalIndent(e, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "marshal design %q", e.Name)
	}
	if err := os.WriteFile(s.entryPath(e.Name), data, 0600); err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "write design file")
	}
	return nil
}

func (s *FileStore) Get(ctx context.Context, name string) (*Entry, error) {
	if err := errors.ValidateDesignName(name); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	e, err := s.readEntry(name)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, errors.New(errors.ErrCodeDesignNotFound, "design %q not found", name)
	}
	return e, nil
}

func (s *FileStore) List(ctx context.Context) ([]*Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	files, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "read library dir")
	}

	var entries []*Entry
	for _, f := range files {
		if f.IsDir() || filepath.Ext(f.Name()) != ".json" {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.dir, f.Name()))
		if err != nil {
			continue
		}
		var e Entry
		if err := json.Unmarshal(data, &e); err != nil {
			continue
		}
		entries = append(entries, &e)
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries, nil
}

func (s *FileStore) Delete(ctx context.Context, name string) error {
	if err := errors.ValidateDesignName(name); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.entryPath(name))
	if os.IsNotExist(err) {
		return errors.New(errors.ErrCodeDesignNotFound, "design %q not found", name)
	}
	if err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "remove design file")
	}
	return nil
}

func (s *FileStore) Close() error { return nil }

// Dir returns the directory holding the design files.
func (s *FileStore) Dir() string { return s.dir }

var _ Store = (*FileStore)(nil)
