// internal/progress/store.go
package progress

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"go-dungeon-defense/internal/defs"
)

var (
	// ErrNotFound means no progression has been saved yet.
	ErrNotFound = errors.New("progression not found")
	// ErrCorrupt means saved progression exists but cannot be parsed.
	ErrCorrupt = errors.New("progression data is corrupt")
	// ErrUnreadable means the store failed to read; saved data may still exist
	// and must not be overwritten.
	ErrUnreadable = errors.New("progression could not be read")
)

// Store persists progression between runs and process restarts.
type Store interface {
	Load() (*State, error)
	Save(*State) error
	Close() error
}

func decode(data []byte) (*State, error) {
	var s State
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return &s, nil
}

func encode(s *State) ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}

// Load reads progression from store. Missing data yields fresh defaults;
// corrupt data yields fresh defaults that are written back immediately.
// A non-nil error together with a usable state must be reported to the
// operator. Errors matching ErrUnreadable mean the returned defaults must not
// be saved over whatever the store still holds.
func Load(store Store, lib *defs.Library) (*State, error) {
	s, err := store.Load()
	switch {
	case err == nil:
		s.normalize(lib)
		return s, nil
	case errors.Is(err, ErrNotFound):
		return NewState(), nil
	case errors.Is(err, ErrCorrupt):
		log.Printf("progress: %v, resetting to defaults", err)
		fresh := NewState()
		if saveErr := store.Save(fresh); saveErr != nil {
			return fresh, fmt.Errorf("rewrite progression after corruption: %w", saveErr)
		}
		return fresh, nil
	default:
		return NewState(), fmt.Errorf("%w: %v", ErrUnreadable, err)
	}
}

// FileStore хранит прогресс в JSON-файле.
type FileStore struct {
	path string
}

// NewFileStore creates a store writing to path. Parent directories are created on save.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the save file location.
func (f *FileStore) Path() string {
	return f.path
}

func (f *FileStore) Load() (*State, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return decode(data)
}

// Save writes through a temporary file and renames it, so a crash mid-write
// leaves the previous save intact.
func (f *FileStore) Save(s *State) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0755); err != nil {
		return err
	}
	data, err := encode(s)
	if err != nil {
		return err
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, f.path)
}

func (f *FileStore) Close() error { return nil }

// MemoryStore keeps the encoded progression in memory. Used by tests and headless runs.
type MemoryStore struct {
	mu   sync.Mutex
	data []byte
	// FailSave makes Save return an error, simulating a broken disk.
	FailSave bool
}

// NewMemoryStore returns a store holding raw bytes (nil means nothing saved).
func NewMemoryStore(raw []byte) *MemoryStore {
	return &MemoryStore{data: raw}
}

func (m *MemoryStore) Load() (*State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data == nil {
		return nil, ErrNotFound
	}
	return decode(m.data)
}

func (m *MemoryStore) Save(s *State) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailSave {
		return errors.New("memory store: save disabled")
	}
	data, err := encode(s)
	if err != nil {
		return err
	}
	m.data = data
	return nil
}

// Raw returns the currently stored bytes.
func (m *MemoryStore) Raw() []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data
}

func (m *MemoryStore) Close() error { return nil }

// Бэкенды хранилища для флага -store.
const (
	BackendFile    = "file"
	BackendLevelDB = "leveldb"
)

// OpenStore opens the progression store of the given backend at path.
func OpenStore(backend, path string) (Store, error) {
	switch backend {
	case BackendFile, "":
		return NewFileStore(path), nil
	case BackendLevelDB:
		store, err := NewLevelStore(path)
		if err != nil {
			return nil, fmt.Errorf("open leveldb store %s: %w", path, err)
		}
		return store, nil
	}
	return nil, fmt.Errorf("unknown store backend %q", backend)
}
