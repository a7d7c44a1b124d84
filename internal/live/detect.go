package live

// Snapshot is what survives one iteration into the next: the tracked
// Definitions and Derivations of the last successful parse. A Snapshot is
// replaced wholesale at the end of an iteration and never edited.
type Snapshot struct {
	definitions map[string]*Definition
	derivations map[string]*Derivation
	// derivation targets in the order their statements appeared
	order []string
	// every declaration's fingerprint, for names declared more than once
	redeclared map[string][]string
}

// NewSnapshot captures the tracked statements of s.
func NewSnapshot(s *Script) Snapshot {
	snap := Snapshot{
		definitions: make(map[string]*Definition, len(s.Definitions)),
		derivations: make(map[string]*Derivation, len(s.Derivations)),
		redeclared:  make(map[string][]string, len(s.Redeclared)),
	}
	for name := range s.Redeclared {
		snap.redeclared[name] = s.declarationFingerprints(name)
	}
	for name, d := range s.Definitions {
		snap.definitions[name] = d
	}
	for _, d := range s.DerivationsInOrder() {
		snap.derivations[d.Target] = d
		snap.order = append(snap.order, d.Target)
	}
	return snap
}

func (s Snapshot) Definition(name string) (*Definition, bool) {
	d, ok := s.definitions[name]
	return d, ok
}

func (s Snapshot) Derivation(target string) (*Derivation, bool) {
	d, ok := s.derivations[target]
	return d, ok
}

// Derivations returns the captured Derivations in insertion order.
func (s Snapshot) Derivations() []*Derivation {
	out := make([]*Derivation, 0, len(s.order))
	for _, t := range s.order {
		out = append(out, s.derivations[t])
	}
	return out
}

func (s Snapshot) Empty() bool {
	return len(s.definitions) == 0 && len(s.derivations) == 0
}

// Changes names the tracked statements that are new or structurally
// different since the previous iteration.
type Changes struct {
	Definitions NameSet
	Derivations NameSet
}

func (c Changes) Empty() bool {
	return len(c.Definitions) == 0 && len(c.Derivations) == 0
}

// DetectChanges compares cur against prev by fingerprint, so moving a
// statement or reformatting it is not a change. Names missing from cur are
// ignored; nothing is ever retracted from the environment. A name declared
// more than once is changed when any of its declarations is, or when it
// gains or loses one.
func DetectChanges(prev Snapshot, cur *Script) Changes {
	ch := Changes{Definitions: NewNameSet(), Derivations: NewNameSet()}
	for _, d := range cur.DefinitionsInOrder() {
		old, ok := prev.Definition(d.Name)
		if !ok || old.Stmt.Fingerprint != d.Stmt.Fingerprint {
			ch.Definitions.Add(d.Name)
		}
	}
	for _, d := range cur.DerivationsInOrder() {
		old, ok := prev.Derivation(d.Target)
		if !ok || old.Stmt.Fingerprint != d.Stmt.Fingerprint {
			ch.Derivations.Add(d.Target)
		}
	}

	names := NewNameSet()
	for name := range prev.redeclared {
		names.Add(name)
	}
	for name := range cur.Redeclared {
		names.Add(name)
	}
	for name := range names {
		if sameFingerprints(prev.redeclared[name], cur.declarationFingerprints(name)) {
			continue
		}
		if _, ok := cur.Definitions[name]; ok {
			ch.Definitions.Add(name)
		} else if _, ok := cur.Derivations[name]; ok {
			ch.Derivations.Add(name)
		}
	}
	return ch
}

func sameFingerprints(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
