package live

// Dirty is what must be re-applied this iteration.
type Dirty struct {
	Definitions NameSet
	Names       NameSet
}

func (d Dirty) Empty() bool {
	return len(d.Definitions) == 0 && len(d.Names) == 0
}

// Propagate turns the detected changes into dirty sets. Changed Definitions
// spread to every Definition that calls them; Derivations computed by a dirty
// Definition, taking one as an input, or changed themselves are dirty, and
// that spreads down the input edges to everything derived from them.
func Propagate(g *Graph, ch Changes) Dirty {
	defs := closure(ch.Definitions.Sorted(), g.consumers)

	var seeds []string
	for target, unit := range g.producedBy {
		if defs.Has(unit) {
			seeds = append(seeds, target)
		}
	}
	for target, units := range g.shadowProducers {
		for unit := range units {
			if defs.Has(unit) {
				seeds = append(seeds, target)
			}
		}
	}
	for _, name := range defs.Sorted() {
		seeds = append(seeds, g.PropagatesTo(name)...)
	}
	seeds = append(seeds, ch.Derivations.Sorted()...)

	return Dirty{
		Definitions: defs,
		Names:       closure(seeds, g.propagatesTo),
	}
}

// closure returns seeds plus everything reachable from them over edges.
// The worklist tolerates cycles.
func closure(seeds []string, edges map[string]NameSet) NameSet {
	visited := NewNameSet()
	work := make([]string, 0, len(seeds))
	for _, s := range seeds {
		if visited.Add(s) {
			work = append(work, s)
		}
	}
	for len(work) > 0 {
		name := work[len(work)-1]
		work = work[:len(work)-1]
		for next := range edges[name] {
			if visited.Add(next) {
				work = append(work, next)
			}
		}
	}
	return visited
}
