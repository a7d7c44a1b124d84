package watch

import (
	"context"
	"crypto/sha256"
	"os"
	"time"

	"github.com/spacemonkeygo/errors"
)

// Source is the tracked script file. It is read whole every time.
type Source struct {
	path     string
	interval time.Duration
	digest   [sha256.Size]byte
}

func NewSource(path string, interval time.Duration) *Source {
	if interval <= 0 {
		interval = 500 * time.Millisecond
	}
	return &Source{path: path, interval: interval}
}

func (s *Source) Path() string { return s.path }

// Read returns the file's content and remembers its digest for Wait.
func (s *Source) Read() (string, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		return "", errors.IOError.Wrap(err)
	}
	s.digest = sha256.Sum256(b)
	return string(b), nil
}

// Wait blocks until the file's content differs from the last Read, or ctx
// is done. A file that is briefly missing or unreadable, as during an
// editor's save, is polled again rather than reported.
func (s *Source) Wait(ctx context.Context) error {
	tick := time.NewTicker(s.interval)
	defer tick.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-tick.C:
		}
		b, err := os.ReadFile(s.path)
		if err != nil {
			continue
		}
		if sha256.Sum256(b) != s.digest {
			return nil
		}
	}
}
