package live

import (
	"fmt"
	"sort"
	"strings"
)

// Graph holds the dependency edges of one iteration. It is built from the
// current Script alone and thrown away afterwards.
type Graph struct {
	consumers    map[string]NameSet // definition -> definitions calling it
	propagatesTo map[string]NameSet // input name -> derivation targets
	producedBy   map[string]string  // derivation target -> unit

	// shadowed declarations of a target -> their units
	shadowProducers map[string]NameSet
}

func BuildGraph(s *Script) *Graph {
	g := &Graph{
		consumers:    make(map[string]NameSet),
		propagatesTo: make(map[string]NameSet),
		producedBy:   make(map[string]string),

		shadowProducers: make(map[string]NameSet),
	}
	for _, d := range s.DefinitionsInOrder() {
		for _, called := range d.Calls {
			if _, known := s.Definitions[called]; !known {
				continue
			}
			addEdge(g.consumers, called, d.Name)
		}
	}
	for _, d := range s.DerivationsInOrder() {
		for _, in := range d.Inputs {
			addEdge(g.propagatesTo, in, d.Target)
		}
		g.producedBy[d.Target] = d.Unit
	}
	// Shadowed Derivations still run in place, so their inputs and units
	// feed the name they bind.
	for _, decl := range s.declarations {
		if !decl.shadowed || decl.deriv == nil {
			continue
		}
		for _, in := range decl.deriv.Inputs {
			addEdge(g.propagatesTo, in, decl.deriv.Target)
		}
		addEdge(g.shadowProducers, decl.deriv.Target, decl.deriv.Unit)
	}
	return g
}

func addEdge(m map[string]NameSet, from, to string) {
	set, ok := m[from]
	if !ok {
		set = NewNameSet()
		m[from] = set
	}
	set.Add(to)
}

// Consumers returns the Definitions whose bodies call name.
func (g *Graph) Consumers(name string) []string {
	return g.consumers[name].Sorted()
}

// PropagatesTo returns the Derivation targets that take name as an input.
func (g *Graph) PropagatesTo(name string) []string {
	return g.propagatesTo[name].Sorted()
}

// ProducedBy returns the unit a Derivation target is computed by.
func (g *Graph) ProducedBy(target string) (string, bool) {
	u, ok := g.producedBy[target]
	return u, ok
}

// Edges renders every edge, one per line, sorted.
func (g *Graph) Edges() []string {
	var lines []string
	for from, to := range g.consumers {
		for _, t := range to.Sorted() {
			lines = append(lines, fmt.Sprintf("%s -> %s (called by)", from, t))
		}
	}
	for from, to := range g.propagatesTo {
		for _, t := range to.Sorted() {
			lines = append(lines, fmt.Sprintf("%s -> %s (input of)", from, t))
		}
	}
	for target, unit := range g.producedBy {
		lines = append(lines, fmt.Sprintf("%s -> %s (produces)", unit, target))
	}
	for target, units := range g.shadowProducers {
		for _, u := range units.Sorted() {
			lines = append(lines, fmt.Sprintf("%s -> %s (produces, shadowed)", u, target))
		}
	}
	sort.Strings(lines)
	return lines
}

func (g *Graph) String() string {
	return strings.Join(g.Edges(), "\n")
}
