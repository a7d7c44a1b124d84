package parser

// Field order is encoding order: the JSON printer and the ugorji/go/codec
// fingerprint encoder both walk fields as declared. Every node carries its
// own Type discriminator so two encodings are equal only for equal shapes.

// Program is the root AST node.
type Program struct {
	Statements []Statement `json:"statements"`
	Type       string      `json:"type"`
}

// Statement is a marker interface.
type Statement interface{ isStatement() }

type ExpressionStmt struct {
	Type  string `json:"type"`
	Value Expr   `json:"value"`
	// Line is position metadata; it never takes part in structural identity.
	Line int `json:"-" codec:"-"`
}

func (ExpressionStmt) isStatement() {}

type CommentStmt struct {
	Type  string `json:"type"`
	Value string `json:"value"`
	Line  int    `json:"-" codec:"-"`
}

func (CommentStmt) isStatement() {}

// StatementLine reports the source line a statement started on, or 0.
func StatementLine(st Statement) int {
	switch s := st.(type) {
	case ExpressionStmt:
		return s.Line
	case CommentStmt:
		return s.Line
	}
	return 0
}

// Expr is a marker interface for expressions.
type Expr interface{ isExpr() }

type Identifier struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

func (Identifier) isExpr() {}

type IntegerLit struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

func (IntegerLit) isExpr() {}

type DecimalLit struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

func (DecimalLit) isExpr() {}

type StringLit struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

func (StringLit) isExpr() {}

type BooleanLit struct {
	Type  string `json:"type"`
	Value bool   `json:"value"`
}

func (BooleanLit) isExpr() {}

type NilLit struct {
	Type string `json:"type"`
}

func (NilLit) isExpr() {}

// LetExpr is `let name = value`; Type is "Let" or "MutableLet".
type LetExpr struct {
	Name  Identifier `json:"name"`
	Type  string     `json:"type"`
	Value Expr       `json:"value"`
}

func (LetExpr) isExpr() {}

// Mutable reports whether the binding was declared with `let mut`.
func (l LetExpr) Mutable() bool { return l.Type == "MutableLet" }

type InfixExpr struct {
	Left     Expr   `json:"left"`
	Operator string `json:"operator"`
	Right    Expr   `json:"right"`
	Type     string `json:"type"`
}

func (InfixExpr) isExpr() {}

type AssignExpr struct {
	Name  Identifier `json:"name"`
	Type  string     `json:"type"`
	Value Expr       `json:"value"`
}

func (AssignExpr) isExpr() {}

// PrefixExpr is currently only unary minus.
type PrefixExpr struct {
	Operator string `json:"operator"`
	Operand  Expr   `json:"operand"`
	Type     string `json:"type"`
}

func (PrefixExpr) isExpr() {}

type ListLit struct {
	Items []Expr `json:"items"`
	Type  string `json:"type"`
}

func (ListLit) isExpr() {}

type SetLit struct {
	Items []Expr `json:"items"`
	Type  string `json:"type"`
}

func (SetLit) isExpr() {}

type DictEntry struct {
	Key   Expr `json:"key"`
	Value Expr `json:"value"`
}

type DictLit struct {
	Items []DictEntry `json:"items"`
	Type  string      `json:"type"`
}

func (DictLit) isExpr() {}

type IndexExpr struct {
	Index Expr   `json:"index"`
	Left  Expr   `json:"left"`
	Type  string `json:"type"`
}

func (IndexExpr) isExpr() {}

type IfExpr struct {
	Alternative Block  `json:"alternative"`
	Condition   Expr   `json:"condition"`
	Consequence Block  `json:"consequence"`
	Type        string `json:"type"`
}

func (IfExpr) isExpr() {}

type Block struct {
	Statements []Statement `json:"statements"`
	Type       string      `json:"type"`
}

type FunctionLit struct {
	Body       Block        `json:"body"`
	Parameters []Identifier `json:"parameters"`
	Type       string       `json:"type"`
}

func (FunctionLit) isExpr() {}

type CallExpr struct {
	Arguments []Expr `json:"arguments"`
	Function  Expr   `json:"function"`
	Type      string `json:"type"`
}

func (CallExpr) isExpr() {}

// FunctionComposition is `f >> g >> h`, flattened.
type FunctionComposition struct {
	Functions []Expr `json:"functions"`
	Type      string `json:"type"`
}

func (FunctionComposition) isExpr() {}

// FunctionThread is `init |> f |> g(1)`, flattened.
type FunctionThread struct {
	Functions []Expr `json:"functions"`
	Initial   Expr   `json:"initial"`
	Type      string `json:"type"`
}

func (FunctionThread) isExpr() {}

// Inspect walks e depth first, calling fn for each expression before its
// children. Returning false from fn skips that expression's children.
func Inspect(e Expr, fn func(Expr) bool) {
	if e == nil || !fn(e) {
		return
	}
	switch ex := e.(type) {
	case LetExpr:
		Inspect(ex.Value, fn)
	case AssignExpr:
		Inspect(ex.Value, fn)
	case InfixExpr:
		Inspect(ex.Left, fn)
		Inspect(ex.Right, fn)
	case PrefixExpr:
		Inspect(ex.Operand, fn)
	case ListLit:
		for _, it := range ex.Items {
			Inspect(it, fn)
		}
	case SetLit:
		for _, it := range ex.Items {
			Inspect(it, fn)
		}
	case DictLit:
		for _, it := range ex.Items {
			Inspect(it.Key, fn)
			Inspect(it.Value, fn)
		}
	case IndexExpr:
		Inspect(ex.Left, fn)
		Inspect(ex.Index, fn)
	case IfExpr:
		Inspect(ex.Condition, fn)
		inspectBlock(ex.Consequence, fn)
		inspectBlock(ex.Alternative, fn)
	case FunctionLit:
		inspectBlock(ex.Body, fn)
	case CallExpr:
		Inspect(ex.Function, fn)
		for _, a := range ex.Arguments {
			Inspect(a, fn)
		}
	case FunctionComposition:
		for _, f := range ex.Functions {
			Inspect(f, fn)
		}
	case FunctionThread:
		Inspect(ex.Initial, fn)
		for _, f := range ex.Functions {
			Inspect(f, fn)
		}
	}
}

func inspectBlock(b Block, fn func(Expr) bool) {
	for _, st := range b.Statements {
		if es, ok := st.(ExpressionStmt); ok {
			Inspect(es.Value, fn)
		}
	}
}
