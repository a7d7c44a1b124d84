package live

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"

	"github.com/ugorji/go/codec"

	"elf-lang/live/internal/parser"
)

type Kind int

const (
	KindOpaque Kind = iota
	KindDefinition
	KindDerivation
	KindComment
)

func (k Kind) String() string {
	switch k {
	case KindDefinition:
		return "definition"
	case KindDerivation:
		return "derivation"
	case KindComment:
		return "comment"
	}
	return "opaque"
}

// Statement is one top-level statement of one parse. Statements are built
// fresh on every parse and never mutated afterwards.
type Statement struct {
	Kind  Kind
	Index int // position among the top-level statements
	Line  int
	Node  parser.Statement
	// Text is the normalized source form, as written to the replay log.
	Text string
	// Fingerprint identifies the statement's structure, positions excluded.
	Fingerprint string
}

// Definition names a reusable unit of behavior: `let name = |...| ...`.
type Definition struct {
	Name    string
	Unit    parser.FunctionLit
	Mutable bool
	// Calls are the names the body invokes, sorted. Only those naming
	// another current Definition become graph edges.
	Calls []string
	Stmt  *Statement
}

// Derivation binds a name to the result of invoking a named unit:
// `let target = unit(inputs...)`.
type Derivation struct {
	Target  string
	Unit    string
	Call    parser.CallExpr
	Mutable bool
	// Inputs are the bare-name arguments in order, without repeats.
	Inputs []string
	Stmt   *Statement
}

var fingerprintHandle = func() *codec.CborHandle {
	h := &codec.CborHandle{}
	h.Canonical = true
	return h
}()

// fingerprint hashes the canonical CBOR encoding of st. Position fields are
// tagged out of the encoding, so equal fingerprints mean equal structure.
func fingerprint(st parser.Statement) string {
	hasher := sha256.New()
	codec.NewEncoder(hasher, fingerprintHandle).MustEncode(st)
	return hex.EncodeToString(hasher.Sum(nil))
}

// NameSet is a set of binding names.
type NameSet map[string]struct{}

func NewNameSet(names ...string) NameSet {
	s := make(NameSet, len(names))
	for _, n := range names {
		s[n] = struct{}{}
	}
	return s
}

func (s NameSet) Add(name string) bool {
	if _, ok := s[name]; ok {
		return false
	}
	s[name] = struct{}{}
	return true
}

func (s NameSet) Has(name string) bool {
	_, ok := s[name]
	return ok
}

// Sorted returns the members in lexical order.
func (s NameSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for n := range s {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

func (s NameSet) clone() NameSet {
	out := make(NameSet, len(s))
	for n := range s {
		out[n] = struct{}{}
	}
	return out
}
