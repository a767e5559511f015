// Package store holds the in-memory todo collection and its identifier allocator.
// Durability is delegated to a Persister; the store itself never touches disk.
package store

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/idilsaglam/todosh/internal/model"
)

// Persister loads and saves the whole todo list at once.
type Persister interface {
	Load() ([]model.Todo, error)
	Save(todos []model.Todo) error
	Path() string
}

// Store maps identifiers to todos. The counter only moves forward, so an
// identifier is never reissued within a session even after removal.
type Store struct {
	todos   map[model.ID]model.Todo
	counter model.ID
	maxID   model.ID
}

// Option tunes a Store at construction.
type Option func(*Store)

// WithMaxID lowers the highest identifier the allocator may issue.
func WithMaxID(n model.ID) Option {
	return func(s *Store) {
		if n > 0 {
			s.maxID = n
		}
	}
}

// New returns an empty store.
func New(opts ...Option) *Store {
	s := &Store{
		todos: make(map[model.ID]model.Todo),
		maxID: model.MaxID,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// FromTodos rebuilds a store from persisted records. The counter resumes at
// the highest id present, or 0 for an empty list. On duplicate ids the last
// record wins.
func FromTodos(todos []model.Todo, opts ...Option) *Store {
	s := New(opts...)
	for _, t := range todos {
		s.todos[t.ID] = t
		if t.ID > s.counter {
			s.counter = t.ID
		}
	}
	return s
}

// Open loads the todo list through p.
func Open(p Persister, opts ...Option) (*Store, error) {
	todos, err := p.Load()
	if err != nil {
		return nil, err
	}
	return FromTodos(todos, opts...), nil
}

// OpenOrNew is the best-effort constructor used at startup: any load failure
// is logged at debug level and an empty store is returned instead.
func OpenOrNew(p Persister, log zerolog.Logger, opts ...Option) *Store {
	s, err := Open(p, opts...)
	if err != nil {
		log.Debug().Err(err).Str("path", p.Path()).Msg("load failed, starting with an empty store")
		return New(opts...)
	}
	log.Debug().Str("path", p.Path()).Int("todos", s.Len()).Uint8("counter", uint8(s.counter)).Msg("store loaded")
	return s
}

// Save writes every todo through p.
func (s *Store) Save(p Persister) error {
	return p.Save(s.All())
}

func (s *Store) nextID() (model.ID, error) {
	if s.counter >= s.maxID {
		return 0, fmt.Errorf("%w: %d issued", ErrCounterExhausted, s.counter)
	}
	s.counter++
	return s.counter, nil
}

// Add inserts a new TODO-status todo under the next identifier.
func (s *Store) Add(name string) (model.Todo, error) {
	id, err := s.nextID()
	if err != nil {
		return model.Todo{}, err
	}
	t := model.Todo{ID: id, Name: name, Status: model.StatusTodo}
	s.todos[id] = t
	return t, nil
}

// Remove deletes the todo and returns it. Removing an absent id is a no-op.
func (s *Store) Remove(id model.ID) (model.Todo, bool) {
	t, ok := s.todos[id]
	if ok {
		delete(s.todos, id)
	}
	return t, ok
}

// Update applies the supplied fields of u to an existing todo.
func (s *Store) Update(u model.Update) (model.Todo, error) {
	t, ok := s.todos[u.ID]
	if !ok {
		return model.Todo{}, fmt.Errorf("%w: id %d", ErrNotFound, u.ID)
	}
	if u.Name != nil {
		t.Name = *u.Name
	}
	if u.Status != nil {
		t.Status = *u.Status
	}
	s.todos[u.ID] = t
	return t, nil
}

// Get looks up a todo by id.
func (s *Store) Get(id model.ID) (model.Todo, bool) {
	t, ok := s.todos[id]
	return t, ok
}

// All returns every stored todo in no particular order.
func (s *Store) All() []model.Todo {
	out := make([]model.Todo, 0, len(s.todos))
	for _, t := range s.todos {
		out = append(out, t)
	}
	return out
}

// Counter is the highest identifier issued so far.
func (s *Store) Counter() model.ID { return s.counter }

// Len is the number of todos currently stored.
func (s *Store) Len() int { return len(s.todos) }
