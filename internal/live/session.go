package live

import (
	"github.com/inconshreveable/log15"

	"elf-lang/live/internal/parser"
)

// Report describes one completed iteration.
type Report struct {
	Iteration int
	Script    *Script
	Changes   Changes
	Graph     *Graph
	Dirty     Dirty
	Outcome
}

// Session carries one tracked script across iterations: the persistent
// environment and the snapshot of the last good parse.
type Session struct {
	env  Environment
	rec  Recorder
	log  log15.Logger
	snap Snapshot
	last *Report
	n    int
}

type Option func(*Session)

func WithLogger(log log15.Logger) Option {
	return func(s *Session) { s.log = log }
}

func WithRecorder(rec Recorder) Option {
	return func(s *Session) { s.rec = rec }
}

func NewSession(env Environment, opts ...Option) *Session {
	s := &Session{
		env: env,
		rec: discardRecorder{},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		s.log = log15.New()
		s.log.SetHandler(log15.DiscardHandler())
	}
	return s
}

// Step runs one iteration over src. A parse failure returns the ParseError
// with the snapshot and environment left as they were.
func (s *Session) Step(src string) (*Report, error) {
	prog, err := parser.Parse(src)
	if err != nil {
		s.log.Error("parse failed", "err", Message(err))
		return nil, err
	}
	s.n++
	log := s.log.New("iteration", s.n)

	script := Classify(prog)
	for _, st := range script.Shadowed {
		log.Warn("declaration shadowed by a later one", "line", st.Line, "stmt", st.Text)
	}
	for _, st := range script.Opaque {
		log.Warn("statement not supported for tracking, re-running every iteration", "line", st.Line)
	}

	changes := DetectChanges(s.snap, script)
	graph := BuildGraph(script)
	dirty := Propagate(graph, changes)
	log.Debug("dirty sets",
		"definitions", dirty.Definitions.Sorted(),
		"names", dirty.Names.Sorted())

	r := &Report{
		Iteration: s.n,
		Script:    script,
		Changes:   changes,
		Graph:     graph,
		Dirty:     dirty,
		Outcome:   Execute(s.env, script, dirty, s.rec, log),
	}
	s.snap = NewSnapshot(script)
	s.last = r
	log.Info("iteration done",
		"applied", len(r.Applied),
		"failed", len(r.Failures))
	return r, nil
}

// Snapshot returns the state the next Step compares against.
func (s *Session) Snapshot() Snapshot { return s.snap }

// Last returns the report of the most recent successful Step, or nil.
func (s *Session) Last() *Report { return s.last }

// Environment returns the environment statements are applied to.
func (s *Session) Environment() Environment { return s.env }
