package cli

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/rs/zerolog"

	"github.com/idilsaglam/todosh/internal/model"
	"github.com/idilsaglam/todosh/internal/store"
	"github.com/idilsaglam/todosh/internal/ui"
)

// Selector presents todos and lets the user pick one. It returns the picked
// index or -1.
type Selector interface {
	Select(todos []model.Todo) (int, error)
}

// Dispatcher turns one input line into a store operation and its output.
// It owns the store for the lifetime of the shell.
type Dispatcher struct {
	store     *store.Store
	persister store.Persister
	selector  Selector
	out       io.Writer
	errOut    io.Writer
	log       zerolog.Logger
}

// Options configures a Dispatcher. Out and ErrOut default to io.Discard.
type Options struct {
	Selector Selector
	Out      io.Writer
	ErrOut   io.Writer
	Logger   zerolog.Logger
}

// NewDispatcher binds s and the persister used by exit.
func NewDispatcher(s *store.Store, p store.Persister, opt Options) *Dispatcher {
	d := &Dispatcher{
		store:     s,
		persister: p,
		selector:  opt.Selector,
		out:       opt.Out,
		errOut:    opt.ErrOut,
		log:       opt.Logger,
	}
	if d.out == nil {
		d.out = io.Discard
	}
	if d.errOut == nil {
		d.errOut = io.Discard
	}
	if d.selector == nil {
		d.selector = ui.NewPlainSelector(d.out)
	}
	return d
}

// Dispatch runs one command line. It returns true once the store has been
// saved by exit and the shell should stop.
func (d *Dispatcher) Dispatch(line string) bool {
	args := strings.Fields(line)
	if len(args) == 0 {
		return false
	}
	cmd := strings.ToLower(args[0])
	d.log.Debug().Str("cmd", cmd).Int("args", len(args)-1).Msg("dispatch")

	switch cmd {
	case "exit":
		return d.doExit()

	case "help":
		PrintHelp(d.out)

	case "list":
		d.doList()

	case "get":
		if len(args) != 2 {
			ui.Fail(d.errOut, "Incorrect usage: get todo_id")
			return false
		}
		if id, ok := d.parseID(args[1]); ok {
			d.doGet(id)
		}

	case "delete":
		if len(args) != 2 {
			ui.Fail(d.errOut, "Incorrect usage: delete todo_id")
			return false
		}
		if id, ok := d.parseID(args[1]); ok {
			d.doRemove(id)
		}

	case "add":
		if len(args) < 2 {
			ui.Fail(d.errOut, "Incorrect usage: add name [name...]")
			return false
		}
		d.doAdd(args[1:])

	case "rename":
		if len(args) != 3 {
			ui.Fail(d.errOut, "Incorrect usage: rename todo_id new_name")
			return false
		}
		if id, ok := d.parseID(args[1]); ok {
			d.doUpdate(model.Rename(id, args[2]))
		}

	case "mark":
		if len(args) != 3 {
			ui.Fail(d.errOut, "Incorrect usage: mark todo_id status")
			return false
		}
		id, ok := d.parseID(args[1])
		if !ok {
			return false
		}
		status, err := model.ParseStatus(args[2])
		if err != nil {
			ui.Fail(d.errOut, fmt.Sprintf("Invalid todo status '%s'. Only 'todo' and 'done' are allowed", args[2]))
			return false
		}
		d.doUpdate(model.Mark(id, status))

	default:
		ui.Fail(d.errOut, "Incorrect usage or unknown command: [command] [values]")
		ui.Muted(d.errOut, "Hint: type `help` to see the available commands")
	}
	return false
}

// parseID accepts any id a todo can carry. A store capped lower by
// store.WithMaxID simply never holds the higher ids, so they read as absent.
func (d *Dispatcher) parseID(s string) (model.ID, bool) {
	id, err := model.ParseID(s)
	if err != nil {
		ui.Fail(d.errOut, fmt.Sprintf("Invalid id. Id should be an integer from 1 - %d", model.MaxID))
		return 0, false
	}
	return id, true
}

func (d *Dispatcher) doAdd(names []string) {
	for _, name := range names {
		t, err := d.store.Add(name)
		if err != nil {
			d.log.Warn().Err(err).Str("name", name).Msg("add failed")
			ui.Fail(d.errOut, "Could not add todo, storage full")
			continue
		}
		ui.OK(d.out, "Added: "+t.String())
	}
}

func (d *Dispatcher) doList() {
	todos := d.store.All()
	if len(todos) == 0 {
		ui.Println(d.out, "You have no todos")
		return
	}
	slices.SortFunc(todos, func(a, b model.Todo) int { return int(a.ID) - int(b.ID) })
	idx, err := d.selector.Select(todos)
	if err != nil {
		d.log.Error().Err(err).Msg("list selector")
		ui.Fail(d.errOut, "list: "+err.Error())
		return
	}
	if idx >= 0 && idx < len(todos) {
		ui.Println(d.out, todos[idx].String())
	}
}

func (d *Dispatcher) doGet(id model.ID) {
	if t, ok := d.store.Get(id); ok {
		ui.Println(d.out, t.String())
	}
}

func (d *Dispatcher) doRemove(id model.ID) {
	if _, ok := d.store.Remove(id); ok {
		d.log.Debug().Uint8("id", uint8(id)).Msg("removed")
	}
	ui.OK(d.out, "Deleted")
}

func (d *Dispatcher) doUpdate(u model.Update) {
	t, err := d.store.Update(u)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			d.log.Error().Err(err).Msg("update")
		}
		ui.Fail(d.errOut, "Todo not found")
		return
	}
	ui.OK(d.out, "Updated: "+t.String())
}

func (d *Dispatcher) doExit() bool {
	if err := d.store.Save(d.persister); err != nil {
		d.log.Error().Err(err).Str("path", d.persister.Path()).Msg("save failed")
		ui.Fail(d.errOut, "Could not save the file: "+err.Error())
		return false
	}
	d.log.Info().Str("path", d.persister.Path()).Int("todos", d.store.Len()).Msg("saved")
	ui.OK(d.out, "Saved todos successfully!")
	return true
}
