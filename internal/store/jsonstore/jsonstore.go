package jsonstore

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/idilsaglam/todosh/internal/model"
	"github.com/idilsaglam/todosh/internal/store"
)

// JSON-backed storage. Single file, human-readable, portable.
// No locking; one shell at a time is assumed.

const (
	dataDir      = "todo"
	dataFileName = "store-hash.json"
)

// DefaultPath is ~/.local/share/todo/store-hash.json, or a relative
// tmp/todo/store-hash.json when the home directory is unknown.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return filepath.Join("tmp", dataDir, dataFileName)
	}
	return filepath.Join(home, ".local", "share", dataDir, dataFileName)
}

// Store persists todos as a pretty-printed JSON array.
type Store struct {
	path string
}

// New returns a JSON persister for path. An empty path means DefaultPath.
func New(path string) *Store {
	if path == "" {
		path = DefaultPath()
	}
	return &Store{path: path}
}

// Path returns the file this persister reads and writes.
func (s *Store) Path() string { return s.path }

// Load reads and validates the whole file.
func (s *Store) Load() ([]model.Todo, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: read file: %v", store.ErrIO, err)
	}
	if !utf8.Valid(b) {
		return nil, fmt.Errorf("%w: %s is not valid UTF-8", store.ErrDecode, s.path)
	}
	return decode(b)
}

func decode(b []byte) ([]model.Todo, error) {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var doc interface{}
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: json: %v", store.ErrDecode, err)
	}
	if err := todosSchema.Validate(doc); err != nil {
		return nil, fmt.Errorf("%w: %s", store.ErrDecode, schemaError(err))
	}
	var todos []model.Todo
	if err := json.Unmarshal(b, &todos); err != nil {
		return nil, fmt.Errorf("%w: json unmarshal: %v", store.ErrDecode, err)
	}
	return todos, nil
}

// Save replaces the file with todos. Parent directories are created as
// needed and the content is renamed into place from a sibling temp file.
func (s *Store) Save(todos []model.Todo) error {
	if todos == nil {
		todos = []model.Todo{}
	}
	b, err := json.MarshalIndent(todos, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: json marshal: %v", store.ErrEncode, err)
	}
	b = append(b, '\n')

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("%w: mkdir: %v", store.ErrIO, err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return fmt.Errorf("%w: write file: %v", store.ErrIO, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("%w: rename: %v", store.ErrIO, err)
	}
	return nil
}

var _ store.Persister = (*Store)(nil)
