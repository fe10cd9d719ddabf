package loq

import (
	"sort"
	"strconv"
	"strings"
)

// Expr is a parsed or evaluated expression. The concrete types are Numeric,
// Bool, Variable, *Fun, *BinOp, and *Group. Expressions are never modified
// after they are built.
type Expr interface {
	String() string
	fmt(b *strings.Builder, square bool)
}

// Numeric is a real number.
type Numeric float64

// Bool is a truth value.
type Bool bool

// Variable is a reference to a name.
type Variable string

// Fun is a functor. On the left of a top-level assignment, it is a function
// definition head and every parameter is a Variable. Elsewhere it is a call
// and the parameters are arbitrary argument expressions.
type Fun struct {
	Name   string
	Params []Expr
}

// BinOp is a binary operation.
type BinOp struct {
	Op    Operator
	Left  Expr
	Right Expr
}

// Group is a parenthesized expression.
type Group struct {
	Inner Expr
}

// Operator is a binary operator.
type Operator int8

const (
	OpNone Operator = iota
	OpEquals
	OpDoubleEquals
	OpMul
	OpDiv
	OpAdd
	OpSub
	OpPow
)

var opText = [...]string{
	OpNone:         "$",
	OpEquals:       "=",
	OpDoubleEquals: "==",
	OpMul:          "*",
	OpDiv:          "/",
	OpAdd:          "+",
	OpSub:          "-",
	OpPow:          "^",
}

func (op Operator) String() string {
	if op < 0 || int(op) >= len(opText) {
		return "Operator(" + strconv.Itoa(int(op)) + ")"
	}
	return opText[op]
}

// Prec returns the precedence of the operator. Lower is more binding.
func (op Operator) Prec() int {
	switch op {
	case OpPow:
		return 0
	case OpMul, OpDiv:
		return 1
	case OpAdd, OpSub:
		return 2
	case OpEquals, OpDoubleEquals:
		return 3
	default:
		panic("loq: no precedence for " + op.String())
	}
}

func (x Numeric) String() string {
	return strconv.FormatFloat(float64(x), 'g', -1, 64)
}

func (x Bool) String() string {
	return strconv.FormatBool(bool(x))
}

func (x Variable) String() string {
	return string(x)
}

func (f *Fun) String() string {
	var b strings.Builder
	b.WriteString(f.Name)
	b.WriteByte('(')
	for i, p := range f.Params {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(p.String())
	}
	b.WriteByte(')')
	return b.String()
}

func (n *BinOp) String() string {
	return n.Left.String() + n.Op.String() + n.Right.String()
}

func (g *Group) String() string {
	return "(" + g.Inner.String() + ")"
}

// Tree formats an expression with every subexpression bracketed, alternating
// round and square brackets by depth.
func Tree(e Expr) string {
	var b strings.Builder
	e.fmt(&b, false)
	return b.String()
}

func brackets(square bool) (byte, byte) {
	if square {
		return '[', ']'
	}
	return '(', ')'
}

func (x Numeric) fmt(b *strings.Builder, square bool) {
	l, r := brackets(square)
	b.WriteByte(l)
	b.WriteString(x.String())
	b.WriteByte(r)
}

func (x Bool) fmt(b *strings.Builder, square bool) {
	l, r := brackets(square)
	b.WriteByte(l)
	b.WriteString(x.String())
	b.WriteByte(r)
}

func (x Variable) fmt(b *strings.Builder, square bool) {
	l, r := brackets(square)
	b.WriteByte(l)
	b.WriteString(string(x))
	b.WriteByte(r)
}

func (f *Fun) fmt(b *strings.Builder, square bool) {
	l, r := brackets(square)
	b.WriteByte(l)
	defer b.WriteByte(r)
	b.WriteString(f.Name)
	// Argument lists use the other bracket style so they are easy to tell
	// apart from the call.
	l, r = brackets(!square)
	b.WriteByte(l)
	for i, p := range f.Params {
		if i > 0 {
			b.WriteString(", ")
		}
		p.fmt(b, square)
	}
	b.WriteByte(r)
}

func (n *BinOp) fmt(b *strings.Builder, square bool) {
	l, r := brackets(square)
	b.WriteByte(l)
	defer b.WriteByte(r)
	n.Left.fmt(b, !square)
	b.WriteByte(' ')
	b.WriteString(n.Op.String())
	b.WriteByte(' ')
	n.Right.fmt(b, !square)
}

func (g *Group) fmt(b *strings.Builder, square bool) {
	// Groups are already visible from the bracketing of their contents.
	g.Inner.fmt(b, square)
}

// IsNumeric returns whether e is exactly a Numeric.
func IsNumeric(e Expr) bool {
	_, ok := e.(Numeric)
	return ok
}

// IsBool returns whether e is exactly a Bool.
func IsBool(e Expr) bool {
	_, ok := e.(Bool)
	return ok
}

// IsVariable returns whether e is exactly a Variable.
func IsVariable(e Expr) bool {
	_, ok := e.(Variable)
	return ok
}

// isValue returns whether e is fully resolved, i.e. a Numeric or Bool.
func isValue(e Expr) bool {
	return IsNumeric(e) || IsBool(e)
}

// MustFloat returns the value of a Numeric. Panics if e is not a Numeric.
func MustFloat(e Expr) float64 {
	x, ok := e.(Numeric)
	if !ok {
		panic("loq: expected a number, have " + e.String())
	}
	return float64(x)
}

// Clone creates a deep copy of an expression.
func Clone(e Expr) Expr {
	switch e := e.(type) {
	case Numeric, Bool, Variable:
		return e
	case *Fun:
		params := make([]Expr, len(e.Params))
		for i, p := range e.Params {
			params[i] = Clone(p)
		}
		return &Fun{Name: e.Name, Params: params}
	case *BinOp:
		return &BinOp{Op: e.Op, Left: Clone(e.Left), Right: Clone(e.Right)}
	case *Group:
		return &Group{Inner: Clone(e.Inner)}
	default:
		panic("loq: invalid expression " + e.String())
	}
}

// Equal reports whether two expressions are structurally identical. Numbers
// compare by value, so NaN is never equal to anything.
func Equal(a, b Expr) bool {
	switch a := a.(type) {
	case Numeric:
		b, ok := b.(Numeric)
		return ok && a == b
	case Bool:
		b, ok := b.(Bool)
		return ok && a == b
	case Variable:
		b, ok := b.(Variable)
		return ok && a == b
	case *Fun:
		b, ok := b.(*Fun)
		if !ok || a.Name != b.Name || len(a.Params) != len(b.Params) {
			return false
		}
		for i := range a.Params {
			if !Equal(a.Params[i], b.Params[i]) {
				return false
			}
		}
		return true
	case *BinOp:
		b, ok := b.(*BinOp)
		return ok && a.Op == b.Op && Equal(a.Left, b.Left) && Equal(a.Right, b.Right)
	case *Group:
		b, ok := b.(*Group)
		return ok && Equal(a.Inner, b.Inner)
	default:
		return false
	}
}

// VarNames returns the sorted, deduplicated names of all variables referenced
// anywhere in e, including inside call arguments.
func VarNames(e Expr) []string {
	m := make(map[string]bool)
	walk(e, func(e Expr) {
		if v, ok := e.(Variable); ok {
			m[string(v)] = true
		}
	})
	return sortedKeys(m)
}

// CalledFuncs returns the sorted, deduplicated names of all functions called
// anywhere in e.
func CalledFuncs(e Expr) []string {
	m := make(map[string]bool)
	walk(e, func(e Expr) {
		if f, ok := e.(*Fun); ok {
			m[f.Name] = true
		}
	})
	return sortedKeys(m)
}

// walk calls f on e and every subexpression of e in preorder.
func walk(e Expr, f func(Expr)) {
	f(e)
	switch e := e.(type) {
	case *Fun:
		for _, p := range e.Params {
			walk(p, f)
		}
	case *BinOp:
		walk(e.Left, f)
		walk(e.Right, f)
	case *Group:
		walk(e.Inner, f)
	}
}

func sortedKeys(m map[string]bool) []string {
	if len(m) == 0 {
		return nil
	}
	r := make([]string, 0, len(m))
	for k := range m {
		r = append(r, k)
	}
	sort.Strings(r)
	return r
}

// negative returns whether e is a Numeric less than zero.
func negative(e Expr) bool {
	x, ok := e.(Numeric)
	return ok && x < 0
}
