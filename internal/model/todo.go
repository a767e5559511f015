package model

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ID addresses a todo. The identifier space is one byte wide; 0 is never issued.
type ID uint8

// MaxID is the highest identifier the allocator will hand out.
const MaxID ID = math.MaxUint8

// Status is the completion state of a todo.
type Status string

const (
	StatusTodo Status = "TODO"
	StatusDone Status = "DONE"
)

var (
	ErrInvalidID     = errors.New("invalid id")
	ErrInvalidStatus = errors.New("invalid status")
)

// Todo is the domain model for a todo entry.
type Todo struct {
	ID     ID     `json:"id"`
	Name   string `json:"name"`
	Status Status `json:"status"`
}

func (t Todo) String() string {
	return fmt.Sprintf("Id: %d, Name: %s, Status: %s", t.ID, t.Name, t.Status)
}

// Done reports whether the todo is marked DONE.
func (t Todo) Done() bool { return t.Status == StatusDone }

// Update is a partial change to an existing todo. Nil fields are kept as is.
type Update struct {
	ID     ID
	Name   *string
	Status *Status
}

// Rename builds an Update that only touches the name.
func Rename(id ID, name string) Update {
	return Update{ID: id, Name: &name}
}

// Mark builds an Update that only touches the status.
func Mark(id ID, status Status) Update {
	return Update{ID: id, Status: &status}
}

// ParseID parses a base-10 identifier in [1, MaxID].
func ParseID(s string) (ID, error) {
	n, err := strconv.ParseUint(s, 10, 8)
	if err != nil || n == 0 || n > uint64(MaxID) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidID, s)
	}
	return ID(n), nil
}

// ParseStatus matches "todo" or "done" case-insensitively.
func ParseStatus(s string) (Status, error) {
	switch Status(strings.ToUpper(s)) {
	case StatusTodo:
		return StatusTodo, nil
	case StatusDone:
		return StatusDone, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
}
