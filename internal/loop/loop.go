package loop

import (
	"context"

	"github.com/inconshreveable/log15"

	"elf-lang/live/internal/live"
	"elf-lang/live/internal/shell"
)

type Source interface {
	Read() (string, error)
	Wait(ctx context.Context) error
}

type Stepper interface {
	Step(src string) (*live.Report, error)
}

type Operator interface {
	Summarize(r *live.Report)
	Prompt(r *live.Report) shell.Action
	Acknowledge(err error) shell.Action
}

// Loop drives a session: read the source, run one iteration, hand control
// to the operator, and go again. Nothing runs concurrently with an
// iteration; the prompt is the only place the loop waits on a person.
type Loop struct {
	Source   Source
	Session  Stepper
	Operator Operator
	// Watch makes the loop wait for the source to change before each
	// iteration after the first.
	Watch bool
	Log   log15.Logger
}

// Run returns nil when the operator quits or ctx is cancelled.
func (l *Loop) Run(ctx context.Context) error {
	log := l.Log
	if log == nil {
		log = log15.New()
		log.SetHandler(log15.DiscardHandler())
	}
	for ctx.Err() == nil {
		r, err := l.iterate()
		if err != nil {
			log.Warn("iteration halted", "err", live.Message(err))
			if l.Operator.Acknowledge(err) == shell.Quit {
				return nil
			}
		} else {
			l.Operator.Summarize(r)
			if l.Operator.Prompt(r) == shell.Quit {
				return nil
			}
		}
		if !l.Watch {
			continue
		}
		log.Debug("waiting for the source to change")
		if err := l.Source.Wait(ctx); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
	}
	return nil
}

func (l *Loop) iterate() (*live.Report, error) {
	src, err := l.Source.Read()
	if err != nil {
		return nil, err
	}
	return l.Session.Step(src)
}
