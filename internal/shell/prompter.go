package shell

import (
	"os"

	"github.com/peterh/liner"
	"github.com/spacemonkeygo/errors"
)

// Prompter reads one line of operator input. It returns io.EOF when input
// has ended and ErrAborted when the operator cancelled the line.
type Prompter interface {
	Prompt(prompt string) (string, error)
	AppendHistory(line string)
}

var ErrAborted = liner.ErrPromptAborted

// LinePrompter is the terminal Prompter, with line editing and a history
// file that survives sessions.
type LinePrompter struct {
	state   *liner.State
	history string
}

// NewLinePrompter takes over the terminal. history may be empty to keep
// no history file.
func NewLinePrompter(history string) *LinePrompter {
	ln := liner.NewLiner()
	ln.SetCtrlCAborts(true)
	if history != "" {
		if f, err := os.Open(history); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
	}
	return &LinePrompter{state: ln, history: history}
}

func (p *LinePrompter) Prompt(prompt string) (string, error) {
	return p.state.Prompt(prompt)
}

func (p *LinePrompter) AppendHistory(line string) {
	p.state.AppendHistory(line)
}

// Close writes the history file and gives the terminal back.
func (p *LinePrompter) Close() error {
	defer p.state.Close()
	if p.history == "" {
		return nil
	}
	f, err := os.Create(p.history)
	if err != nil {
		return errors.IOError.Wrap(err)
	}
	defer f.Close()
	if _, err := p.state.WriteHistory(f); err != nil {
		return errors.IOError.Wrap(err)
	}
	return nil
}
