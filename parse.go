package loq

import (
	"errors"
	"io"
	"strconv"
)

// Statement = [ Expr ] ( EOL | EOF )
// Expr = Operand { Op Operand }
// Operand = num | name | Call | '(' Expr ')'
// Call = name '(' [ Expr { ',' Expr } ] ')'
// Op = '^' | '*' | '/' | '+' | '-' | '=' | '=='
//
// All operators are left-associative, except that the right side of '=' is
// the rest of the statement. '=' is allowed only at the top level of a
// statement, with a name or function head on its left.

// Parser parses statements from source text.
type Parser struct {
	scan *Lexer
	src  string
	name string
	diag *Diagnoster

	// env is the environment used to check calls during a call to Parse.
	env *Env
	// depth is the number of open parentheses and argument lists around the
	// current position.
	depth int
	// head is the position of the name of the last functor parsed.
	head Loc
	// def is the position of the name of the function being defined.
	def Loc
	// assigning is whether the parser is in the right side of an assignment.
	assigning bool
}

// loosest is a precedence that binds more loosely than any operator. Parsing
// an expression with it as the threshold consumes every operator.
const loosest = 4

// NewParser creates a parser over src. The options are applied in order.
func NewParser(src string, opts ...ParseOption) *Parser {
	p := Parser{
		scan: NewLexer(src),
		src:  src,
	}
	for _, opt := range opts {
		opt.parseOption(&p)
	}
	return &p
}

// ParseString parses exactly one statement from src.
func ParseString(src string, env *Env, opts ...ParseOption) (Expr, error) {
	p := NewParser(src, opts...)
	e, err := p.Parse(env)
	if err != nil {
		if errors.Is(err, io.EOF) {
			tok, _ := p.scan.Next()
			return nil, p.fail(&ExpectedTokenError{Expected: operandKinds, Found: &tok, While: "at the start of a statement", At: tok.Pos})
		}
		return nil, err
	}
	for {
		tok, err := p.scan.Next()
		if err != nil {
			return nil, p.fail(err)
		}
		switch tok.Kind {
		case TokenEOL:
			continue
		case TokenEOF:
			return e, nil
		default:
			return nil, p.fail(&UnexpectedTokenError{Found: tok, While: "after the end of the statement"})
		}
	}
}

// Source returns the text the parser is reading.
func (p *Parser) Source() string {
	return p.src
}

// Parse parses the next statement. Calls are checked against the functions
// defined in env. If there are no more statements, the error is io.EOF. After
// any other error, the parser skips to the next line, so Parse may be called
// again to continue with the following statement.
func (p *Parser) Parse(env *Env) (Expr, error) {
	if env == nil {
		env = NewEnv()
	}
	p.env = env
	p.depth = 0
	p.assigning = false
	defer func() { p.env = nil }()
	for {
		tok, err := p.scan.Peek()
		if err != nil {
			return nil, p.fail(err)
		}
		if tok.Kind == TokenEOF {
			return nil, io.EOF
		}
		if tok.Kind != TokenEOL {
			break
		}
		p.scan.Next()
	}
	e, err := p.parseExpr(loosest)
	if err != nil {
		return nil, p.fail(err)
	}
	tok, err := p.scan.Next()
	if err != nil {
		return nil, p.fail(err)
	}
	switch tok.Kind {
	case TokenEOF, TokenEOL:
	case TokenClose:
		return nil, p.fail(&UnexpectedTokenError{Found: tok, While: "without a matching '('"})
	case TokenComma:
		return nil, p.fail(&UnexpectedTokenError{Found: tok, While: "outside an argument list"})
	default:
		panic("loq: expression ended on " + tok.String())
	}
	if def, ok := e.(*BinOp); ok && def.Op == OpEquals {
		if f, ok := def.Left.(*Fun); ok {
			if err := p.checkDef(f, def); err != nil {
				return nil, p.fail(err)
			}
		}
	}
	return e, nil
}

// fail reports err if the parser has a Diagnoster and skips to the end of the
// current line. It returns err.
func (p *Parser) fail(err error) error {
	if p.diag != nil {
		p.diag.Report(p.name, p.src, err)
	}
	if k := p.scan.last; k == TokenEOL || k == TokenEOF {
		// The error was at the end of the line, so we're already there.
		return err
	}
	for {
		tok, err := p.scan.Next()
		if err != nil {
			continue
		}
		if tok.Kind == TokenEOL || tok.Kind == TokenEOF {
			break
		}
	}
	return err
}

// parseExpr parses an operand followed by every operator binding more tightly
// than until along with its right operand. On success, the next token is a
// close paren, comma, end of line, end of input, or an operator that does not
// bind more tightly than until.
func (p *Parser) parseExpr(until int) (Expr, error) {
	lhs, err := p.parseOperand()
	if err != nil {
		return nil, err
	}
	for {
		tok, err := p.scan.Peek()
		if err != nil {
			return nil, err
		}
		switch {
		case tok.Kind.IsOperator():
			op := binop(tok.Kind)
			if op.Prec() >= until {
				return lhs, nil
			}
			p.scan.Next()
			next := op.Prec()
			if op == OpEquals {
				if err := p.checkAssign(lhs, tok); err != nil {
					return nil, err
				}
				// The right side of an assignment is the rest of the
				// statement.
				p.assigning = true
				next = loosest
			}
			rhs, err := p.parseExpr(next)
			if err != nil {
				return nil, err
			}
			lhs = &BinOp{Op: op, Left: lhs, Right: rhs}
		case tok.Kind.IsOperand(), tok.Kind == TokenOpen:
			return nil, &UnexpectedTokenError{Found: tok, While: "after " + lhs.String() + " with no operator between them"}
		default:
			return lhs, nil
		}
	}
}

// parseOperand parses a number, variable, functor, or parenthesized
// expression.
func (p *Parser) parseOperand() (Expr, error) {
	tok, err := p.scan.Next()
	if err != nil {
		return nil, err
	}
	switch tok.Kind {
	case TokenNum:
		v, err := strconv.ParseFloat(tok.Text, 64)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			// The lexer only produces digits with at most one dot.
			panic("loq: invalid number literal " + strconv.Quote(tok.Text) + ": " + err.Error())
		}
		return Numeric(v), nil
	case TokenIdent:
		next, err := p.scan.Peek()
		if err != nil {
			return nil, err
		}
		if next.Kind == TokenOpen {
			p.scan.Next()
			return p.parseFunctor(tok)
		}
		return Variable(tok.Text), nil
	case TokenOpen:
		p.depth++
		inner, err := p.parseExpr(loosest)
		if err != nil {
			return nil, err
		}
		end, err := p.scan.Next()
		if err != nil {
			return nil, err
		}
		if end.Kind != TokenClose {
			return nil, &ExpectedTokenError{Expected: []TokenKind{TokenClose}, Found: &end, While: "to close the parenthesized expression", At: end.Pos}
		}
		p.depth--
		return &Group{Inner: inner}, nil
	default:
		return nil, &ExpectedTokenError{Expected: operandKinds, Found: &tok, While: "while parsing an operand", At: tok.Pos}
	}
}

// parseFunctor parses the argument list of a functor. The name and the open
// paren are already consumed.
func (p *Parser) parseFunctor(name Token) (Expr, error) {
	p.depth++
	var args []Expr
	tok, err := p.scan.Peek()
	if err != nil {
		return nil, err
	}
	if tok.Kind == TokenClose {
		p.scan.Next()
	} else {
		for {
			arg, err := p.parseExpr(loosest)
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			end, err := p.scan.Next()
			if err != nil {
				return nil, err
			}
			if end.Kind == TokenClose {
				break
			}
			if end.Kind != TokenComma {
				return nil, &ExpectedTokenError{
					Expected: []TokenKind{TokenComma, TokenClose},
					Found:    &end,
					While:    "while parsing the arguments of " + name.Text,
					At:       end.Pos,
				}
			}
		}
	}
	p.depth--
	f := &Fun{Name: name.Text, Params: args}
	p.head = name.Pos
	if n, ok := p.env.Arity(name.Text); ok && n != len(args) {
		return nil, &InvalidExprError{Found: f, Reason: name.Text + " takes " + plural(n, "argument") + ", not " + strconv.Itoa(len(args)), At: name.Pos}
	}
	return f, nil
}

// checkAssign checks that an assignment with the given left side is allowed
// at the current position.
func (p *Parser) checkAssign(lhs Expr, eq Token) error {
	if p.depth != 0 || p.assigning {
		return &InvalidExprError{Found: lhs, Reason: "assignment is only allowed at the top level of a statement", At: eq.Pos}
	}
	switch lhs := lhs.(type) {
	case Variable:
		return nil
	case *Fun:
		p.def = p.head
		seen := make(map[Variable]bool, len(lhs.Params))
		for _, param := range lhs.Params {
			v, ok := param.(Variable)
			if !ok {
				return &InvalidFuncParamError{Found: param, While: "in the definition of " + lhs.Name, At: p.def}
			}
			if seen[v] {
				return &InvalidFuncParamError{Found: param, While: "repeated in the definition of " + lhs.Name, At: p.def}
			}
			seen[v] = true
		}
		return nil
	default:
		return &InvalidExprError{Found: lhs, Reason: "can only assign to a name or function head", At: eq.Pos}
	}
}

// checkDef checks a top-level function definition for recursion and unused
// parameters.
func (p *Parser) checkDef(f *Fun, def *BinOp) error {
	if via, ok := recursive(p.env, f.Name, def.Right); ok {
		return &RecursiveFuncDefError{Def: def, Via: via, At: p.def}
	}
	used := make(map[string]bool)
	for _, name := range VarNames(def.Right) {
		used[name] = true
	}
	var unused []string
	for _, param := range f.Params {
		if name := string(param.(Variable)); !used[name] {
			unused = append(unused, name)
		}
	}
	if len(unused) != 0 {
		return &UnusedParamsError{Func: f.Name, Body: def.Right, Unused: unused, At: p.def}
	}
	return nil
}

// recursive determines whether body calls the function name, either directly
// or through the definitions stored in env. If so, the result is the chain of
// intermediate functions.
func recursive(env *Env, name string, body Expr) ([]string, bool) {
	seen := make(map[string]bool)
	var visit func(e Expr, via []string) ([]string, bool)
	visit = func(e Expr, via []string) ([]string, bool) {
		for _, g := range CalledFuncs(e) {
			if g == name {
				return via, true
			}
			if seen[g] {
				continue
			}
			seen[g] = true
			def, ok := env.Func(g)
			if !ok {
				continue
			}
			if r, ok := visit(def.Right, append(via[:len(via):len(via)], g)); ok {
				return r, true
			}
		}
		return nil, false
	}
	return visit(body, nil)
}

// binop gets the operator for a token kind. Panics if k is not an operator.
func binop(k TokenKind) Operator {
	switch k {
	case TokenEquals:
		return OpEquals
	case TokenDoubleEquals:
		return OpDoubleEquals
	case TokenMul:
		return OpMul
	case TokenDiv:
		return OpDiv
	case TokenPlus:
		return OpAdd
	case TokenMinus:
		return OpSub
	case TokenPow:
		return OpPow
	default:
		panic("loq: not an operator: " + k.String())
	}
}

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return strconv.Itoa(n) + " " + noun + "s"
}
