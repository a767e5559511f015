package cli

import (
	"fmt"
	"io"

	"github.com/idilsaglam/todosh/internal/ui"
)

type commandDoc struct {
	name string
	desc string
}

var commandDocs = []commandDoc{
	{"list", "List all todos - [list]"},
	{"add", "Add new todos, one per word - [add] [name(s)]"},
	{"delete", "Remove a todo - [delete] [id]"},
	{"mark", "Mark a todo as done or todo - [mark] [id] [done or todo]"},
	{"rename", "Rename a todo - [rename] [id] [new_name]"},
	{"get", "Get a todo - [get] [id]"},
	{"help", "Show this help - [help]"},
	{"exit", "Save and exit - [exit]"},
}

// PrintHelp prints the command table.
func PrintHelp(w io.Writer) {
	lines := []string{
		ui.Title("Available Commands"),
		"",
		fmt.Sprintf("%-10s| %s", "Command", "Description"),
	}
	for _, c := range commandDocs {
		// pad before styling so escape codes don't skew the column
		lines = append(lines, ui.Accent(fmt.Sprintf("%-10s", c.name))+"| "+c.desc)
	}
	ui.Panel(w, lines)
}
