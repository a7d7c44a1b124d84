package live

import (
	"elf-lang/live/internal/parser"
)

// Script is one parse, classified. Definitions and Derivations hold only
// the declarations that won their name; the others are in Shadowed.
type Script struct {
	Statements  []*Statement
	Definitions map[string]*Definition
	Derivations map[string]*Derivation
	Opaque      []*Statement
	Shadowed    []*Statement
	// Redeclared names have more than one declaration in the script.
	Redeclared NameSet

	definitionOrder []*Definition
	derivationOrder []*Derivation
	declarations    []declaration
}

// declaration is one Definition or Derivation statement, shadowed or not.
type declaration struct {
	def      *Definition
	deriv    *Derivation
	shadowed bool
}

func (d declaration) name() string {
	if d.def != nil {
		return d.def.Name
	}
	return d.deriv.Target
}

func (d declaration) stmt() *Statement {
	if d.def != nil {
		return d.def.Stmt
	}
	return d.deriv.Stmt
}

// DefinitionsInOrder returns the tracked Definitions in source order.
func (s *Script) DefinitionsInOrder() []*Definition { return s.definitionOrder }

// DerivationsInOrder returns the tracked Derivations in source order.
func (s *Script) DerivationsInOrder() []*Derivation { return s.derivationOrder }

// declarationFingerprints lists the fingerprints of every declaration of
// name in source order.
func (s *Script) declarationFingerprints(name string) []string {
	var out []string
	for _, d := range s.declarations {
		if d.name() == name {
			out = append(out, d.stmt().Fingerprint)
		}
	}
	return out
}

// Classify sorts every top-level statement of prog into a kind. Definitions
// and Derivation targets share one namespace: when a name is declared more
// than once the last declaration is tracked and the earlier ones are shadowed.
func Classify(prog parser.Program) *Script {
	s := &Script{
		Definitions: make(map[string]*Definition),
		Derivations: make(map[string]*Derivation),
		Redeclared:  NewNameSet(),
	}
	winner := make(map[string]*Statement)

	for i, node := range prog.Statements {
		st := &Statement{
			Index: i,
			Line:  parser.StatementLine(node),
			Node:  node,
			Text:  parser.Format(node),
		}
		s.Statements = append(s.Statements, st)

		if _, ok := node.(parser.CommentStmt); ok {
			st.Kind = KindComment
			continue
		}
		st.Fingerprint = fingerprint(node)
		var decl declaration
		if d := asDefinition(st); d != nil {
			st.Kind = KindDefinition
			decl.def = d
		} else if d := asDerivation(st); d != nil {
			st.Kind = KindDerivation
			decl.deriv = d
		} else {
			st.Kind = KindOpaque
			s.Opaque = append(s.Opaque, st)
			continue
		}
		if _, seen := winner[decl.name()]; seen {
			s.Redeclared.Add(decl.name())
		}
		winner[decl.name()] = st
		s.declarations = append(s.declarations, decl)
	}

	for i := range s.declarations {
		d := &s.declarations[i]
		if winner[d.name()] != d.stmt() {
			d.shadowed = true
			s.Shadowed = append(s.Shadowed, d.stmt())
			continue
		}
		if d.def != nil {
			s.Definitions[d.def.Name] = d.def
			s.definitionOrder = append(s.definitionOrder, d.def)
		} else {
			s.Derivations[d.deriv.Target] = d.deriv
			s.derivationOrder = append(s.derivationOrder, d.deriv)
		}
	}
	return s
}

func topLet(node parser.Statement) (parser.LetExpr, bool) {
	es, ok := node.(parser.ExpressionStmt)
	if !ok {
		return parser.LetExpr{}, false
	}
	let, ok := es.Value.(parser.LetExpr)
	return let, ok
}

// asDefinition matches `let name = |params| body`.
func asDefinition(st *Statement) *Definition {
	let, ok := topLet(st.Node)
	if !ok {
		return nil
	}
	fn, ok := let.Value.(parser.FunctionLit)
	if !ok {
		return nil
	}
	return &Definition{
		Name:    let.Name.Name,
		Unit:    fn,
		Mutable: let.Mutable(),
		Calls:   invokedNames(fn),
		Stmt:    st,
	}
}

// asDerivation matches `let target = unit(args...)` where unit is a bare name.
func asDerivation(st *Statement) *Derivation {
	let, ok := topLet(st.Node)
	if !ok {
		return nil
	}
	call, ok := let.Value.(parser.CallExpr)
	if !ok {
		return nil
	}
	unit, ok := call.Function.(parser.Identifier)
	if !ok {
		return nil
	}
	var inputs []string
	seen := NewNameSet()
	for _, arg := range call.Arguments {
		if id, ok := arg.(parser.Identifier); ok && seen.Add(id.Name) {
			inputs = append(inputs, id.Name)
		}
	}
	return &Derivation{
		Target:  let.Name.Name,
		Unit:    unit.Name,
		Call:    call,
		Mutable: let.Mutable(),
		Inputs:  inputs,
		Stmt:    st,
	}
}

// invokedNames collects the names a function body may invoke: call callees,
// members of |> and >> chains, and bare names handed to a call as arguments.
// The function's own parameters are never counted.
func invokedNames(fn parser.FunctionLit) []string {
	params := NewNameSet()
	for _, p := range fn.Parameters {
		params.Add(p.Name)
	}
	names := NewNameSet()
	add := func(e parser.Expr) {
		if id, ok := e.(parser.Identifier); ok && !params.Has(id.Name) {
			names.Add(id.Name)
		}
	}
	parser.Inspect(fn, func(e parser.Expr) bool {
		switch ex := e.(type) {
		case parser.CallExpr:
			add(ex.Function)
			for _, a := range ex.Arguments {
				add(a)
			}
		case parser.FunctionThread:
			for _, f := range ex.Functions {
				add(f)
			}
		case parser.FunctionComposition:
			for _, f := range ex.Functions {
				add(f)
			}
		}
		return true
	})
	return names.Sorted()
}
