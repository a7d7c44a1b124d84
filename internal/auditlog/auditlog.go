/*
	Append-only replay log of every statement a live session applies.

	Each entry is the normalized source of one top-level statement,
	followed by a newline; a statement spanning several lines stays one
	entry. Entries are never rewritten, so the file replays the session
	in the order it happened.
*/
package auditlog

import (
	"io"
	"os"

	"github.com/inconshreveable/log15"
	"github.com/spacemonkeygo/errors"
)

type Log struct {
	log  log15.Logger
	file io.Closer
}

// Open appends to the log at path, creating it if needed.
func Open(path string) (*Log, error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0644)
	if err != nil {
		return nil, errors.IOError.Wrap(err)
	}
	return &Log{log: entryLogger(f), file: f}, nil
}

// Discard returns a Log that records nothing.
func Discard() *Log {
	log := log15.New()
	log.SetHandler(log15.DiscardHandler())
	return &Log{log: log}
}

func entryLogger(wr io.Writer) log15.Logger {
	log := log15.New()
	log.SetHandler(log15.SyncHandler(log15.FuncHandler(func(r *log15.Record) error {
		_, err := io.WriteString(wr, r.Msg+"\n")
		return err
	})))
	return log
}

// Record appends one entry.
func (l *Log) Record(text string) {
	l.log.Info(text)
}

func (l *Log) Close() error {
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	if err != nil {
		return errors.IOError.Wrap(err)
	}
	return nil
}
