// Package memstore is an in-process persister. Nothing survives the process.
package memstore

import (
	"github.com/idilsaglam/todosh/internal/model"
	"github.com/idilsaglam/todosh/internal/store"
)

// Store keeps a copy of the last saved todo list.
type Store struct {
	todos []model.Todo
	saves int
}

// New returns a memory persister whose first Load yields seed.
func New(seed ...model.Todo) *Store {
	return &Store{todos: clone(seed)}
}

// Load returns a copy of the last saved list (empty if nothing was saved).
func (m *Store) Load() ([]model.Todo, error) {
	return clone(m.todos), nil
}

// Save stores a copy of todos.
func (m *Store) Save(todos []model.Todo) error {
	m.todos = clone(todos)
	m.saves++
	return nil
}

// Path returns ":memory:" to indicate nothing is written to disk.
func (m *Store) Path() string { return ":memory:" }

// Saves counts successful Save calls.
func (m *Store) Saves() int { return m.saves }

func clone(todos []model.Todo) []model.Todo {
	out := make([]model.Todo, len(todos))
	copy(out, todos)
	return out
}

var _ store.Persister = (*Store)(nil)
