package evaluator

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"elf-lang/live/internal/parser"
)

func (ev *Evaluator) evalStmt(st parser.Statement) (Value, error) {
	if s, ok := st.(parser.ExpressionStmt); ok {
		return ev.evalExpr(s.Value)
	}
	return Nil{}, nil
}

func (ev *Evaluator) evalBlock(b parser.Block) (Value, error) {
	outer := ev.env
	ev.env = NewEnv(outer)
	defer func() { ev.env = outer }()
	var last Value = Nil{}
	for _, st := range b.Statements {
		v, err := ev.evalStmt(st)
		if err != nil {
			return nil, err
		}
		last = v
	}
	return last, nil
}

func (ev *Evaluator) evalExprs(es []parser.Expr) ([]Value, error) {
	out := make([]Value, 0, len(es))
	for _, e := range es {
		v, err := ev.evalExpr(e)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func (ev *Evaluator) evalFunction(e parser.Expr) (Function, error) {
	v, err := ev.evalExpr(e)
	if err != nil {
		return nil, err
	}
	f, ok := v.(Function)
	if !ok {
		return nil, fmt.Errorf("Expected a Function, found: %s", TypeName(v))
	}
	return f, nil
}

func (ev *Evaluator) evalExpr(e parser.Expr) (Value, error) {
	switch ex := e.(type) {
	case parser.IntegerLit:
		n, err := strconv.ParseInt(strings.ReplaceAll(ex.Value, "_", ""), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("Invalid integer literal: %s", ex.Value)
		}
		return Int{V: n}, nil
	case parser.DecimalLit:
		s := normalizeDecLiteral(ex.Value)
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("Invalid decimal literal: %s", ex.Value)
		}
		return Dec{V: f, Lit: s}, nil
	case parser.StringLit:
		return Str{V: ex.Value}, nil
	case parser.BooleanLit:
		return Bool{V: ex.Value}, nil
	case parser.NilLit:
		return Nil{}, nil
	case parser.Identifier:
		return ev.env.Get(ex.Name)
	case parser.FunctionLit:
		return ev.closure(ex), nil
	case parser.ListLit:
		items, err := ev.evalExprs(ex.Items)
		if err != nil {
			return nil, err
		}
		return List{Items: items}, nil
	case parser.SetLit:
		items := make([]Value, 0, len(ex.Items))
		for _, it := range ex.Items {
			v, err := ev.evalExpr(it)
			if err != nil {
				return nil, err
			}
			if _, isDict := v.(Dict); isDict {
				return nil, fmt.Errorf("Unable to include a Dictionary within a Set")
			}
			if !containsValue(items, v) {
				items = append(items, v)
			}
		}
		return Set{Items: items}, nil
	case parser.DictLit:
		items := make([]dictEntry, 0, len(ex.Items))
		for _, it := range ex.Items {
			k, err := ev.evalExpr(it.Key)
			if err != nil {
				return nil, err
			}
			if _, isDict := k.(Dict); isDict {
				return nil, fmt.Errorf("Unable to use a Dictionary as a Dictionary key")
			}
			v, err := ev.evalExpr(it.Value)
			if err != nil {
				return nil, err
			}
			items = putEntry(items, k, v)
		}
		return Dict{Items: items}, nil
	case parser.LetExpr:
		v, err := ev.evalExpr(ex.Value)
		if err != nil {
			return nil, err
		}
		ev.env.Define(ex.Name.Name, v, ex.Mutable())
		return v, nil
	case parser.AssignExpr:
		v, err := ev.evalExpr(ex.Value)
		if err != nil {
			return nil, err
		}
		if err := ev.env.Assign(ex.Name.Name, v); err != nil {
			return nil, err
		}
		return v, nil
	case parser.InfixExpr:
		return ev.evalInfix(ex)
	case parser.PrefixExpr:
		v, err := ev.evalExpr(ex.Operand)
		if err != nil {
			return nil, err
		}
		switch t := v.(type) {
		case Int:
			return Int{V: -t.V}, nil
		case Dec:
			return Dec{V: -t.V}, nil
		}
		return nil, fmt.Errorf("Unsupported operation: %s %s", ex.Operator, TypeName(v))
	case parser.CallExpr:
		f, err := ev.evalFunction(ex.Function)
		if err != nil {
			return nil, err
		}
		args, err := ev.evalExprs(ex.Arguments)
		if err != nil {
			return nil, err
		}
		return f.call(ev, args)
	case parser.IfExpr:
		cond, err := ev.evalExpr(ex.Condition)
		if err != nil {
			return nil, err
		}
		if isTruthy(cond) {
			return ev.evalBlock(ex.Consequence)
		}
		return ev.evalBlock(ex.Alternative)
	case parser.FunctionComposition:
		funs := make([]Function, 0, len(ex.Functions))
		for _, fe := range ex.Functions {
			f, err := ev.evalFunction(fe)
			if err != nil {
				return nil, err
			}
			funs = append(funs, f)
		}
		return &composedFunc{functions: funs}, nil
	case parser.FunctionThread:
		return ev.evalThread(ex)
	case parser.IndexExpr:
		return ev.evalIndex(ex)
	}
	return nil, fmt.Errorf("Unsupported expression: %T", e)
}

func (ev *Evaluator) closure(fn parser.FunctionLit) *userFunc {
	params := make([]string, len(fn.Parameters))
	for i, p := range fn.Parameters {
		params[i] = p.Name
	}
	return &userFunc{params: params, body: fn.Body, env: ev.env}
}

func (ev *Evaluator) evalInfix(ex parser.InfixExpr) (Value, error) {
	// logical operators short-circuit and yield booleans
	if ex.Operator == "&&" || ex.Operator == "||" {
		l, err := ev.evalExpr(ex.Left)
		if err != nil {
			return nil, err
		}
		if isTruthy(l) == (ex.Operator == "||") {
			return Bool{V: isTruthy(l)}, nil
		}
		r, err := ev.evalExpr(ex.Right)
		if err != nil {
			return nil, err
		}
		return Bool{V: isTruthy(r)}, nil
	}
	l, err := ev.evalExpr(ex.Left)
	if err != nil {
		return nil, err
	}
	r, err := ev.evalExpr(ex.Right)
	if err != nil {
		return nil, err
	}
	switch ex.Operator {
	case "+":
		return add(l, r)
	case "-":
		return sub(l, r)
	case "*":
		return mul(l, r)
	case "/":
		return div(l, r)
	case "==":
		return Bool{V: equal(l, r)}, nil
	case "!=":
		return Bool{V: !equal(l, r)}, nil
	case ">":
		return Bool{V: compare(l, r) > 0}, nil
	case "<":
		return Bool{V: compare(l, r) < 0}, nil
	case ">=":
		return Bool{V: compare(l, r) >= 0}, nil
	case "<=":
		return Bool{V: compare(l, r) <= 0}, nil
	}
	return nil, errors.New("Unsupported operator")
}

// evalThread passes the running value as the last argument of each step.
func (ev *Evaluator) evalThread(ex parser.FunctionThread) (Value, error) {
	cur, err := ev.evalExpr(ex.Initial)
	if err != nil {
		return nil, err
	}
	for _, step := range ex.Functions {
		var (
			f    Function
			args []Value
		)
		if ce, ok := step.(parser.CallExpr); ok {
			if f, err = ev.evalFunction(ce.Function); err != nil {
				return nil, err
			}
			if args, err = ev.evalExprs(ce.Arguments); err != nil {
				return nil, err
			}
		} else if f, err = ev.evalFunction(step); err != nil {
			return nil, err
		}
		if cur, err = f.call(ev, append(args, cur)); err != nil {
			return nil, err
		}
	}
	return cur, nil
}

func (ev *Evaluator) evalIndex(ex parser.IndexExpr) (Value, error) {
	left, err := ev.evalExpr(ex.Left)
	if err != nil {
		return nil, err
	}
	idxVal, err := ev.evalExpr(ex.Index)
	if err != nil {
		return nil, err
	}
	// negative positions count from the end; out of range is nil
	position := func(n int, what string) (int, bool, error) {
		idx, ok := idxVal.(Int)
		if !ok {
			return 0, false, fmt.Errorf("Unable to perform index operation, found: %s[%s]", what, TypeName(idxVal))
		}
		i := int(idx.V)
		if i < 0 {
			i += n
		}
		return i, i >= 0 && i < n, nil
	}
	switch coll := left.(type) {
	case List:
		i, ok, err := position(len(coll.Items), "List")
		if err != nil {
			return nil, err
		}
		if ok {
			return coll.Items[i], nil
		}
	case Str:
		i, ok, err := position(len(coll.V), "String")
		if err != nil {
			return nil, err
		}
		if ok {
			return Str{V: coll.V[i : i+1]}, nil
		}
	case Dict:
		if _, isDict := idxVal.(Dict); isDict {
			return nil, fmt.Errorf("Unable to use a Dictionary as a Dictionary key")
		}
		for _, e := range coll.Items {
			if equal(e.Key, idxVal) {
				return e.Val, nil
			}
		}
	}
	return Nil{}, nil
}
