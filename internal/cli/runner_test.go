package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/idilsaglam/todosh/internal/model"
	"github.com/idilsaglam/todosh/internal/store"
	"github.com/idilsaglam/todosh/internal/store/memstore"
	"github.com/idilsaglam/todosh/internal/ui"
)

func init() {
	ui.DisableColor()
}

type fixture struct {
	d      *Dispatcher
	s      *store.Store
	p      *memstore.Store
	sel    *recordingSelector
	out    *bytes.Buffer
	errOut *bytes.Buffer
}

type recordingSelector struct {
	calls [][]model.Todo
	pick  int
	err   error
}

func (r *recordingSelector) Select(todos []model.Todo) (int, error) {
	r.calls = append(r.calls, todos)
	return r.pick, r.err
}

func newFixture(opts ...store.Option) *fixture {
	f := &fixture{
		s:      store.New(opts...),
		p:      memstore.New(),
		sel:    &recordingSelector{pick: -1},
		out:    &bytes.Buffer{},
		errOut: &bytes.Buffer{},
	}
	f.d = NewDispatcher(f.s, f.p, Options{
		Selector: f.sel,
		Out:      f.out,
		ErrOut:   f.errOut,
		Logger:   zerolog.Nop(),
	})
	return f
}

func (f *fixture) run(t *testing.T, line string) bool {
	t.Helper()
	f.out.Reset()
	f.errOut.Reset()
	return f.d.Dispatch(line)
}

func TestDispatchScenario(t *testing.T) {
	f := newFixture()

	f.run(t, "add milk")
	if !strings.Contains(f.out.String(), "Added: Id: 1, Name: milk, Status: TODO") {
		t.Fatalf("add output: %q", f.out.String())
	}

	f.run(t, "mark 1 done")
	if !strings.Contains(f.out.String(), "Updated: Id: 1, Name: milk, Status: DONE") {
		t.Fatalf("mark output: %q", f.out.String())
	}

	f.run(t, "rename 1 bread")
	if !strings.Contains(f.out.String(), "Updated: Id: 1, Name: bread, Status: DONE") {
		t.Fatalf("rename output: %q", f.out.String())
	}

	f.run(t, "get 1")
	if strings.TrimSpace(f.out.String()) != "Id: 1, Name: bread, Status: DONE" {
		t.Fatalf("get output: %q", f.out.String())
	}

	f.run(t, "delete 1")
	if !strings.Contains(f.out.String(), "Deleted") {
		t.Fatalf("delete output: %q", f.out.String())
	}

	f.run(t, "get 1")
	if f.out.Len() != 0 || f.errOut.Len() != 0 {
		t.Fatalf("get of absent todo printed %q / %q", f.out.String(), f.errOut.String())
	}
}

func TestAddSplitsWords(t *testing.T) {
	f := newFixture()
	f.run(t, "add a b")
	a, okA := f.s.Get(1)
	b, okB := f.s.Get(2)
	if !okA || !okB || a.Name != "a" || b.Name != "b" {
		t.Fatalf("got %+v %+v", a, b)
	}
	if f.s.Len() != 2 {
		t.Fatalf("len = %d, want 2", f.s.Len())
	}
}

func TestAddStorageFull(t *testing.T) {
	f := newFixture(store.WithMaxID(1))
	f.run(t, "add one two")
	if f.s.Len() != 1 {
		t.Fatalf("len = %d, want 1", f.s.Len())
	}
	if !strings.Contains(f.out.String(), "Added: Id: 1, Name: one") {
		t.Fatalf("out = %q", f.out.String())
	}
	if !strings.Contains(f.errOut.String(), "Could not add todo, storage full") {
		t.Fatalf("errOut = %q", f.errOut.String())
	}
}

func TestCommandsAreCaseInsensitive(t *testing.T) {
	f := newFixture()
	f.run(t, "ADD x")
	f.run(t, "Mark 1 DONE")
	got, _ := f.s.Get(1)
	if got.Status != model.StatusDone {
		t.Fatalf("status = %s", got.Status)
	}
}

func TestUsageErrorsLeaveStoreUntouched(t *testing.T) {
	tests := []struct {
		line    string
		wantErr string
	}{
		{line: "get", wantErr: "Incorrect usage: get todo_id"},
		{line: "get 1 2", wantErr: "Incorrect usage: get todo_id"},
		{line: "delete", wantErr: "Incorrect usage: delete todo_id"},
		{line: "delete 1 extra", wantErr: "Incorrect usage: delete todo_id"},
		{line: "rename 1", wantErr: "Incorrect usage: rename todo_id new_name"},
		{line: "rename 1 buy bread", wantErr: "Incorrect usage: rename todo_id new_name"},
		{line: "mark 1", wantErr: "Incorrect usage: mark todo_id status"},
		{line: "mark 1 done now", wantErr: "Incorrect usage: mark todo_id status"},
		{line: "add", wantErr: "Incorrect usage: add"},
		{line: "get abc", wantErr: "Invalid id. Id should be an integer from 1 - 255"},
		{line: "delete 0", wantErr: "Invalid id"},
		{line: "rename 256 x", wantErr: "Invalid id"},
		{line: "mark -1 done", wantErr: "Invalid id"},
		{line: "mark 1 doing", wantErr: "Invalid todo status 'doing'. Only 'todo' and 'done' are allowed"},
		{line: "frobnicate", wantErr: "Incorrect usage or unknown command"},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			f := newFixture()
			f.s.Add("keep")
			before := f.s.All()

			if f.run(t, tt.line) {
				t.Fatal("usage error should not quit")
			}
			if !strings.Contains(f.errOut.String(), tt.wantErr) {
				t.Fatalf("errOut = %q, want %q", f.errOut.String(), tt.wantErr)
			}
			after := f.s.All()
			if len(after) != len(before) || after[0] != before[0] || f.s.Counter() != 1 {
				t.Fatalf("store changed: %+v -> %+v", before, after)
			}
		})
	}
}

func TestIDRangeIsIndependentOfStoreCap(t *testing.T) {
	f := newFixture(store.WithMaxID(2))
	f.run(t, "get 200")
	if f.errOut.Len() != 0 || f.out.Len() != 0 {
		t.Fatalf("get above the store cap printed %q / %q", f.out.String(), f.errOut.String())
	}
	f.run(t, "mark 200 done")
	if !strings.Contains(f.errOut.String(), "Todo not found") {
		t.Fatalf("errOut = %q", f.errOut.String())
	}
}

func TestUpdateMissingPrintsNotFound(t *testing.T) {
	f := newFixture()
	f.run(t, "rename 3 x")
	if !strings.Contains(f.errOut.String(), "Todo not found") {
		t.Fatalf("errOut = %q", f.errOut.String())
	}
	f.run(t, "mark 3 done")
	if !strings.Contains(f.errOut.String(), "Todo not found") {
		t.Fatalf("errOut = %q", f.errOut.String())
	}
}

func TestDeleteAlwaysReportsDeleted(t *testing.T) {
	f := newFixture()
	f.run(t, "delete 9")
	if !strings.Contains(f.out.String(), "Deleted") {
		t.Fatalf("out = %q", f.out.String())
	}
}

func TestBlankLineIsIgnored(t *testing.T) {
	f := newFixture()
	if f.run(t, "   \t ") {
		t.Fatal("blank line should not quit")
	}
	if f.out.Len() != 0 || f.errOut.Len() != 0 {
		t.Fatalf("blank line printed %q / %q", f.out.String(), f.errOut.String())
	}
}

func TestListEmpty(t *testing.T) {
	f := newFixture()
	f.run(t, "list")
	if !strings.Contains(f.out.String(), "You have no todos") {
		t.Fatalf("out = %q", f.out.String())
	}
	if len(f.sel.calls) != 0 {
		t.Fatal("selector should not run for an empty store")
	}
}

func TestListSortsAndSelects(t *testing.T) {
	f := newFixture()
	f.run(t, "add c b a")
	f.sel.pick = 2
	f.run(t, "list")

	if len(f.sel.calls) != 1 {
		t.Fatalf("selector calls = %d", len(f.sel.calls))
	}
	got := f.sel.calls[0]
	for i, want := range []model.ID{1, 2, 3} {
		if got[i].ID != want {
			t.Fatalf("selector got ids out of order: %+v", got)
		}
	}
	if strings.TrimSpace(f.out.String()) != "Id: 3, Name: a, Status: TODO" {
		t.Fatalf("out = %q", f.out.String())
	}
	if f.s.Len() != 3 {
		t.Fatal("list must not mutate the store")
	}
}

func TestListSelectorError(t *testing.T) {
	f := newFixture()
	f.run(t, "add a")
	f.sel.err = errors.New("no tty")
	f.run(t, "list")
	if !strings.Contains(f.errOut.String(), "no tty") {
		t.Fatalf("errOut = %q", f.errOut.String())
	}
}

func TestHelp(t *testing.T) {
	f := newFixture()
	f.run(t, "help")
	for _, c := range []string{"list", "add", "delete", "mark", "rename", "get", "help", "exit"} {
		if !strings.Contains(f.out.String(), c) {
			t.Errorf("help missing %q", c)
		}
	}
}

func TestExitSaves(t *testing.T) {
	f := newFixture()
	f.run(t, "add a b")
	if !f.run(t, "exit") {
		t.Fatal("exit should quit after a successful save")
	}
	if !strings.Contains(f.out.String(), "Saved todos successfully!") {
		t.Fatalf("out = %q", f.out.String())
	}
	saved, _ := f.p.Load()
	if len(saved) != 2 {
		t.Fatalf("saved %d todos, want 2", len(saved))
	}
}

type failingPersister struct{}

func (failingPersister) Load() ([]model.Todo, error) { return nil, nil }
func (failingPersister) Save([]model.Todo) error {
	return fmt.Errorf("%w: disk full", store.ErrIO)
}
func (failingPersister) Path() string { return "/nowhere" }

func TestExitSaveFailureKeepsRunning(t *testing.T) {
	errOut := &bytes.Buffer{}
	d := NewDispatcher(store.New(), failingPersister{}, Options{ErrOut: errOut, Logger: zerolog.Nop()})
	if d.Dispatch("exit") {
		t.Fatal("exit must not quit when save fails")
	}
	if !strings.Contains(errOut.String(), "Could not save the file:") || !strings.Contains(errOut.String(), "disk full") {
		t.Fatalf("errOut = %q", errOut.String())
	}
}

type lines struct {
	l   []string
	end error
}

func (r *lines) ReadLine() (string, error) {
	if len(r.l) == 0 {
		return "", r.end
	}
	line := r.l[0]
	r.l = r.l[1:]
	return line, nil
}

func TestRunStopsOnExit(t *testing.T) {
	f := newFixture()
	r := &lines{l: []string{"add a", "exit", "add never"}, end: io.EOF}
	if err := Run(r, f.d); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(r.l) != 1 {
		t.Fatalf("lines after exit were consumed: %v", r.l)
	}
	if f.p.Saves() != 1 {
		t.Fatalf("saves = %d, want 1", f.p.Saves())
	}
}

func TestRunInputClosed(t *testing.T) {
	for _, end := range []error{io.EOF, ui.ErrInterrupted} {
		f := newFixture()
		err := Run(&lines{l: []string{"add a"}, end: end}, f.d)
		if !errors.Is(err, ErrInputClosed) {
			t.Fatalf("end %v: error = %v, want ErrInputClosed", end, err)
		}
		if f.p.Saves() != 0 {
			t.Fatal("closing input must not save")
		}
	}
}

func TestRunReadError(t *testing.T) {
	f := newFixture()
	boom := errors.New("boom")
	err := Run(&lines{end: boom}, f.d)
	if !errors.Is(err, boom) {
		t.Fatalf("error = %v, want boom", err)
	}
}

func TestRunRetriesAfterFailedSave(t *testing.T) {
	errOut := &bytes.Buffer{}
	d := NewDispatcher(store.New(), failingPersister{}, Options{ErrOut: errOut, Logger: zerolog.Nop()})
	err := Run(&lines{l: []string{"exit", "exit"}, end: io.EOF}, d)
	if !errors.Is(err, ErrInputClosed) {
		t.Fatalf("error = %v", err)
	}
	if strings.Count(errOut.String(), "Could not save the file") != 2 {
		t.Fatalf("errOut = %q", errOut.String())
	}
}
