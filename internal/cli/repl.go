package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/idilsaglam/todosh/internal/ui"
)

// ErrInputClosed is returned by Run when input ends before a successful exit.
// Nothing has been saved in that case.
var ErrInputClosed = errors.New("input closed before exit")

// LineReader yields one line of input per call.
type LineReader interface {
	ReadLine() (string, error)
}

// Run feeds lines from r to d until exit succeeds.
func Run(r LineReader, d *Dispatcher) error {
	for {
		line, err := r.ReadLine()
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, ui.ErrInterrupted) {
				d.log.Warn().Err(err).Msg("input closed, changes not saved")
				return ErrInputClosed
			}
			return fmt.Errorf("read line: %w", err)
		}
		if d.Dispatch(line) {
			return nil
		}
	}
}
