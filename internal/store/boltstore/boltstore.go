// Package boltstore persists todos in a bbolt database, one record per key.
package boltstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	. "github.com/stevegt/goadapt"
	bolt "go.etcd.io/bbolt"

	"github.com/idilsaglam/todosh/internal/model"
	"github.com/idilsaglam/todosh/internal/store"
)

const bucket = "todos"

// lockTimeout bounds how long Open waits for another process holding the file.
var lockTimeout = time.Second

// Store is a persister backed by a bbolt file. The database is opened for
// each Load and Save and closed right after, so the file is never held
// while the shell waits for input.
type Store struct {
	path string
}

// New returns a bolt persister for path.
func New(path string) *Store {
	return &Store{path: path}
}

// Path returns the database file.
func (s *Store) Path() string { return s.path }

// Load reads every record of the todos bucket.
func (s *Store) Load() ([]model.Todo, error) {
	raw, err := s.readAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", store.ErrIO, err)
	}
	todos := make([]model.Todo, 0, len(raw))
	for k, v := range raw {
		var t model.Todo
		if err := json.Unmarshal(v, &t); err != nil {
			return nil, fmt.Errorf("%w: key %d: %v", store.ErrDecode, k, err)
		}
		if t.ID == 0 || t.ID != model.ID(k) {
			return nil, fmt.Errorf("%w: key %d holds id %d", store.ErrDecode, k, t.ID)
		}
		if t.Status != model.StatusTodo && t.Status != model.StatusDone {
			return nil, fmt.Errorf("%w: key %d: status %q", store.ErrDecode, k, t.Status)
		}
		todos = append(todos, t)
	}
	return todos, nil
}

// Save replaces the bucket contents with todos in one transaction.
func (s *Store) Save(todos []model.Todo) error {
	vals := make(map[byte][]byte, len(todos))
	for _, t := range todos {
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Errorf("%w: id %d: %v", store.ErrEncode, t.ID, err)
		}
		vals[byte(t.ID)] = b
	}
	if err := s.writeAll(vals); err != nil {
		return fmt.Errorf("%w: %v", store.ErrIO, err)
	}
	return nil
}

func (s *Store) open(readOnly bool) (db *bolt.DB, err error) {
	defer Return(&err)
	if !readOnly {
		err = os.MkdirAll(filepath.Dir(s.path), 0o755)
		Ck(err)
	} else {
		// bolt would create the file; a missing store is a read error
		_, err = os.Stat(s.path)
		Ck(err)
	}
	opts := &bolt.Options{Timeout: lockTimeout, ReadOnly: readOnly}
	db, err = bolt.Open(s.path, 0o600, opts)
	Ck(err)
	return
}

func (s *Store) readAll() (raw map[byte][]byte, err error) {
	defer Return(&err)
	db, err := s.open(true)
	Ck(err)
	defer db.Close()

	raw = make(map[byte][]byte)
	err = db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucket))
		if b == nil {
			return nil
		}
		return b.ForEach(func(k, v []byte) error {
			if len(k) != 1 {
				return fmt.Errorf("unexpected key %x", k)
			}
			raw[k[0]] = append([]byte(nil), v...)
			return nil
		})
	})
	Ck(err)
	return
}

func (s *Store) writeAll(vals map[byte][]byte) (err error) {
	defer Return(&err)
	db, err := s.open(false)
	Ck(err)
	defer db.Close()

	err = db.Update(func(tx *bolt.Tx) error {
		if tx.Bucket([]byte(bucket)) != nil {
			if err := tx.DeleteBucket([]byte(bucket)); err != nil {
				return err
			}
		}
		b, err := tx.CreateBucket([]byte(bucket))
		if err != nil {
			return err
		}
		for k, v := range vals {
			if err := b.Put([]byte{k}, v); err != nil {
				return err
			}
		}
		return nil
	})
	Ck(err)
	return
}

var _ store.Persister = (*Store)(nil)
