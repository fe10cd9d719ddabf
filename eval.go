package loq

import (
	"math"
	"strings"
)

// Eval evaluates an expression as far as possible. Only a top-level
// assignment modifies env: a function definition is stored unevaluated, and a
// variable assignment stores the value of its right side. The result is a
// Numeric or Bool if the expression is fully resolved and a symbolic
// expression otherwise.
func (env *Env) Eval(e Expr) Expr {
	def, ok := e.(*BinOp)
	if !ok || def.Op != OpEquals {
		return env.eval(e)
	}
	switch lhs := def.Left.(type) {
	case *Fun:
		def = Clone(def).(*BinOp)
		env.defineFunc(lhs.Name, def)
		return def
	case Variable:
		val := env.eval(def.Right)
		env.setVar(string(lhs), val)
		return &BinOp{Op: OpEquals, Left: lhs, Right: val}
	default:
		panic("loq: assignment to " + lhs.String() + " should not have parsed")
	}
}

// EvalString parses and evaluates one statement in env.
func (env *Env) EvalString(src string, opts ...ParseOption) (Expr, error) {
	e, err := ParseString(src, env, opts...)
	if err != nil {
		return nil, err
	}
	return env.Eval(e), nil
}

// eval evaluates an expression without modifying env.
func (env *Env) eval(e Expr) Expr {
	switch e := e.(type) {
	case Numeric, Bool:
		return e
	case Variable:
		if v, ok := env.vars[string(e)]; ok {
			// A compound value keeps its grouping wherever it is spliced.
			if v, ok := v.(*BinOp); ok {
				return &Group{Inner: v}
			}
			return v
		}
		return e
	case *Group:
		r := env.eval(e.Inner)
		switch r.(type) {
		case Numeric, Bool, Variable:
			return r
		}
		return &Group{Inner: r}
	case *BinOp:
		return env.evalBinOp(e)
	case *Fun:
		return env.call(e)
	default:
		panic("loq: invalid expression " + e.String())
	}
}

func (env *Env) evalBinOp(e *BinOp) Expr {
	a := env.eval(e.Left)
	b := env.eval(e.Right)
	switch {
	case IsNumeric(a) && IsNumeric(b):
		x, y := MustFloat(a), MustFloat(b)
		switch e.Op {
		case OpAdd:
			return Numeric(x + y)
		case OpSub:
			return Numeric(x - y)
		case OpMul:
			return Numeric(x * y)
		case OpDiv:
			return Numeric(x / y)
		case OpPow:
			return Numeric(math.Pow(x, y))
		case OpDoubleEquals:
			return Bool(Equal(a, b))
		}
	case IsBool(a) && IsBool(b):
		x, y := a.(Bool), b.(Bool)
		switch e.Op {
		case OpDoubleEquals:
			return Bool(x == y)
		case OpMul:
			return x && y
		case OpAdd:
			return x || y
		}
		// Other operators have no meaning on truth values, so the operation
		// stays symbolic.
	case isValue(a) && isValue(b) && e.Op == OpDoubleEquals:
		// A number and a truth value.
		return Bool(false)
	default:
		if negative(b) {
			switch e.Op {
			case OpAdd:
				return &BinOp{Op: OpSub, Left: a, Right: -b.(Numeric)}
			case OpSub:
				return &BinOp{Op: OpAdd, Left: a, Right: -b.(Numeric)}
			}
		}
	}
	return &BinOp{Op: e.Op, Left: a, Right: b}
}

// call evaluates a function call.
func (env *Env) call(f *Fun) Expr {
	def, ok := env.funcs[f.Name]
	if !ok {
		return env.callBuiltin(f)
	}
	h := head(def)
	if len(h.Params) != len(f.Params) {
		// The call was parsed against a different definition.
		return Clone(f)
	}
	vars := make(map[string]Expr, len(h.Params))
	for i, p := range h.Params {
		vars[string(p.(Variable))] = f.Params[i]
	}
	r := env.child(vars).eval(def.Right)
	if isValue(r) {
		return r
	}
	// Arguments may refer to names bound only in the caller.
	r = env.eval(r)
	if isValue(r) {
		return r
	}
	return &BinOp{Op: OpEquals, Left: h, Right: r}
}

// callBuiltin evaluates a call of a function with no stored definition. If
// there is a builtin with that name and every argument evaluates to a number,
// the result is the builtin's value; otherwise the call is unchanged.
func (env *Env) callBuiltin(f *Fun) Expr {
	b, ok := env.builtins[f.Name]
	if !ok || b.Fn == nil || b.Arity != len(f.Params) {
		return Clone(f)
	}
	args := make([]float64, len(f.Params))
	reduced := make([]Expr, len(f.Params))
	all := true
	for i, p := range f.Params {
		reduced[i] = env.eval(p)
		if x, ok := reduced[i].(Numeric); ok {
			args[i] = float64(x)
		} else {
			all = false
		}
	}
	if !all {
		return &Fun{Name: f.Name, Params: reduced}
	}
	return Numeric(b.Fn(args))
}

// Describe formats an evaluation result for display, prefixed with its kind:
// "Num", "Bool", or "Sym".
func Describe(e Expr) string {
	var b strings.Builder
	switch e.(type) {
	case Numeric:
		b.WriteString("Num: ")
	case Bool:
		b.WriteString("Bool: ")
	default:
		b.WriteString("Sym: ")
	}
	b.WriteString(e.String())
	return b.String()
}
