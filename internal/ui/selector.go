package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/todosh/internal/model"
)

// todoItem adapts model.Todo to bubbles/list.Item. index is the todo's
// position in the slice passed to Select, which survives filtering.
type todoItem struct {
	todo  model.Todo
	index int
}

func (i todoItem) Title() string       { return i.todo.String() }
func (i todoItem) Description() string { return "" }
func (i todoItem) FilterValue() string { return i.todo.Name }

// itemDelegate renders one todo per line.
type itemDelegate struct{}

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(todoItem)
	if !ok {
		return
	}
	box := mutedStyle.Render(boxUnchecked)
	text := it.todo.Name
	if it.todo.Done() {
		box = successStyle.Render(boxChecked)
		text = doneStyle.Render(text)
	}
	id := mutedStyle.Render(fmt.Sprintf("%3d.", it.todo.ID))
	prefix := "  "
	if index == m.Index() {
		prefix = selectedStyle.Render("> ")
	}
	fmt.Fprintf(w, "%s%s %s %s", prefix, id, box, text)
}

type selectModel struct {
	list   list.Model
	chosen int
}

func newSelectModel(todos []model.Todo) selectModel {
	items := make([]list.Item, 0, len(todos))
	done := 0
	for i, t := range todos {
		items = append(items, todoItem{todo: t, index: i})
		if t.Done() {
			done++
		}
	}

	l := list.New(items, itemDelegate{}, 80, 20)
	l.Title = fmt.Sprintf("%s   %s %d  %s %d  %s %d",
		titleStyle.Render("Todos"),
		successStyle.Render("✔"), done,
		pendingStyle.Render("•"), len(todos)-done,
		accentStyle.Render("Total"), len(todos),
	)
	l.SetShowHelp(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = titleStyle
	l.Styles.HelpStyle = helpStyle
	l.Styles.PaginationStyle = helpStyle
	l.FilterInput.Prompt = "/ "
	l.SetStatusBarItemName("todo", "todos")

	return selectModel{list: l, chosen: -1}
}

func (m selectModel) Init() tea.Cmd { return nil }

func (m selectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width, msg.Height-1)
		return m, nil
	case tea.KeyMsg:
		// while filtering, keys belong to the filter input
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "enter":
			if it, ok := m.list.SelectedItem().(todoItem); ok {
				m.chosen = it.index
			}
			return m, tea.Quit
		case "q", "esc", "ctrl+c":
			m.chosen = -1
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m selectModel) View() string {
	return m.list.View()
}

// ListSelector shows todos in a full-screen list and lets the user pick one.
type ListSelector struct {
	opts []tea.ProgramOption
}

// NewListSelector returns a selector running on the alternate screen.
func NewListSelector(in io.Reader, out io.Writer) *ListSelector {
	return &ListSelector{opts: []tea.ProgramOption{
		tea.WithInput(in),
		tea.WithOutput(out),
		tea.WithAltScreen(),
	}}
}

// Select returns the index of the picked todo, or -1 if the user backed out.
func (s *ListSelector) Select(todos []model.Todo) (int, error) {
	p := tea.NewProgram(newSelectModel(todos), s.opts...)
	final, err := p.Run()
	if err != nil {
		return -1, err
	}
	fm, ok := final.(selectModel)
	if !ok {
		return -1, nil
	}
	return fm.chosen, nil
}

// PlainSelector prints the todos, one per line, and picks nothing.
type PlainSelector struct {
	out io.Writer
}

// NewPlainSelector returns a selector for non-interactive output.
func NewPlainSelector(out io.Writer) *PlainSelector {
	return &PlainSelector{out: out}
}

// Select writes every todo and returns -1.
func (s *PlainSelector) Select(todos []model.Todo) (int, error) {
	var b strings.Builder
	for _, t := range todos {
		b.WriteString(t.String())
		b.WriteByte('\n')
	}
	_, err := io.WriteString(s.out, b.String())
	return -1, err
}
