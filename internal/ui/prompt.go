package ui

import (
	"bufio"
	"errors"
	"io"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// ErrInterrupted is returned by ReadLine when the user presses ctrl+c or esc.
var ErrInterrupted = errors.New("interrupted")

const promptText = ">>> "

type promptModel struct {
	ti        textinput.Model
	done      bool
	cancelled bool
}

func newPromptModel() promptModel {
	ti := textinput.New()
	ti.Prompt = accentStyle.Render(promptText)
	ti.Placeholder = "help"
	ti.CharLimit = 1024
	ti.Focus()
	return promptModel{ti: ti}
}

func (m promptModel) Init() tea.Cmd { return textinput.Blink }

func (m promptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.Type {
		case tea.KeyEnter:
			m.done = true
			return m, tea.Quit
		case tea.KeyCtrlC, tea.KeyEsc:
			m.cancelled = true
			return m, tea.Quit
		case tea.KeyCtrlD:
			if m.ti.Value() == "" {
				m.cancelled = true
				return m, tea.Quit
			}
		}
	}
	var cmd tea.Cmd
	m.ti, cmd = m.ti.Update(msg)
	return m, cmd
}

func (m promptModel) View() string {
	switch {
	case m.done:
		// keep the submitted line on screen
		return m.ti.Prompt + m.ti.Value() + "\n"
	case m.cancelled:
		return "\n"
	}
	return m.ti.View()
}

// Prompt reads one line at a time through an inline text input.
type Prompt struct {
	opts []tea.ProgramOption
}

// NewPrompt returns a prompt reading keys from in and drawing on out.
func NewPrompt(in io.Reader, out io.Writer) *Prompt {
	return &Prompt{opts: []tea.ProgramOption{tea.WithInput(in), tea.WithOutput(out)}}
}

// ReadLine blocks until the user submits a line.
func (p *Prompt) ReadLine() (string, error) {
	final, err := tea.NewProgram(newPromptModel(), p.opts...).Run()
	if err != nil {
		return "", err
	}
	fm, ok := final.(promptModel)
	if !ok || fm.cancelled {
		return "", ErrInterrupted
	}
	return fm.ti.Value(), nil
}

// ScannerReader reads lines from a non-interactive source such as a pipe.
type ScannerReader struct {
	sc *bufio.Scanner
}

// NewScannerReader wraps r.
func NewScannerReader(r io.Reader) *ScannerReader {
	return &ScannerReader{sc: bufio.NewScanner(r)}
}

// ReadLine returns the next line, or io.EOF when input is exhausted.
func (r *ScannerReader) ReadLine() (string, error) {
	if r.sc.Scan() {
		return r.sc.Text(), nil
	}
	if err := r.sc.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}
