package loq

import (
	"errors"
	"io"
	"strconv"
	"strings"
	"unicode"
)

// Loc is a position in source text.
type Loc struct {
	// Line is the 1-based line number.
	Line int
	// Col is the 0-based rune offset within the line.
	Col int
}

func (l Loc) String() string {
	return strconv.Itoa(l.Line) + ":" + strconv.Itoa(l.Col+1)
}

// Token is a lexical token.
type Token struct {
	Kind TokenKind
	Text string
	Pos  Loc
}

func (t Token) String() string {
	switch t.Kind {
	case TokenIdent, TokenNum:
		return t.Kind.String() + " " + strconv.Quote(t.Text)
	default:
		return t.Kind.String()
	}
}

// TokenKind is the kind of a lexical token.
type TokenKind int8

const (
	TokenNone TokenKind = iota
	// TokenEOF indicates the end of the input.
	TokenEOF
	// TokenEOL is a newline. It separates statements in multi-line sources.
	TokenEOL
	TokenOpen
	TokenClose
	TokenComma

	// Operators.
	TokenEquals
	TokenDoubleEquals
	TokenMul
	TokenDiv
	TokenPlus
	TokenMinus
	TokenPow

	// Operands.
	TokenIdent
	TokenNum
)

var tokenKindNames = [...]string{
	TokenNone:         "nothing",
	TokenEOF:          "end of input",
	TokenEOL:          "end of line",
	TokenOpen:         "'('",
	TokenClose:        "')'",
	TokenComma:        "','",
	TokenEquals:       "'='",
	TokenDoubleEquals: "'=='",
	TokenMul:          "'*'",
	TokenDiv:          "'/'",
	TokenPlus:         "'+'",
	TokenMinus:        "'-'",
	TokenPow:          "'^'",
	TokenIdent:        "identifier",
	TokenNum:          "number literal",
}

func (k TokenKind) String() string {
	if k < 0 || int(k) >= len(tokenKindNames) {
		return "TokenKind(" + strconv.Itoa(int(k)) + ")"
	}
	return tokenKindNames[k]
}

// IsOperator returns whether k is a binary operator token.
func (k TokenKind) IsOperator() bool {
	return TokenEquals <= k && k <= TokenPow
}

// IsOperand returns whether k is an identifier or number literal.
func (k TokenKind) IsOperand() bool {
	return k == TokenIdent || k == TokenNum
}

var operandKinds = []TokenKind{TokenIdent, TokenNum, TokenOpen}

// Lexer produces tokens from source text with one token of lookahead.
type Lexer struct {
	src  io.RuneScanner
	buf  strings.Builder
	pos  Loc
	prev Loc
	p    Token
	eof  bool
	// last is the kind of the last token returned from Next.
	last TokenKind
}

// NewLexer creates a lexer over src.
func NewLexer(src string) *Lexer {
	return lex(strings.NewReader(src))
}

func lex(src io.RuneScanner) *Lexer {
	return &Lexer{
		src: src,
		pos: Loc{Line: 1},
	}
}

// readRune reads a rune from the src and updates the lexer's position info.
func (l *Lexer) readRune() (rune, error) {
	r, sz, err := l.src.ReadRune()
	if sz > 0 {
		l.prev = l.pos
		if r == '\n' {
			l.pos.Line++
			l.pos.Col = 0
		} else {
			l.pos.Col++
		}
	}
	return r, err
}

// unreadRune unreads the last rune read. Panics if unreading returns an error.
func (l *Lexer) unreadRune() {
	if err := l.src.UnreadRune(); err != nil {
		panic(err)
	}
	l.pos = l.prev
}

// Peek returns the next token without consuming it.
func (l *Lexer) Peek() (Token, error) {
	if l.p.Kind != TokenNone {
		return l.p, nil
	}
	tok, err := l.scan()
	if err != nil {
		// The invalid text is consumed as though it were a token.
		l.last = TokenNone
		return tok, err
	}
	l.p = tok
	return tok, nil
}

// Next consumes and returns the next token. Once the input is exhausted, the
// result is a TokenEOF token.
func (l *Lexer) Next() (Token, error) {
	if l.p.Kind != TokenNone {
		tok := l.p
		l.p = Token{}
		l.last = tok.Kind
		return tok, nil
	}
	tok, err := l.scan()
	l.last = tok.Kind
	return tok, err
}

// Empty returns whether the input is exhausted and there is no peeked token
// other than end of input.
func (l *Lexer) Empty() bool {
	if l.p.Kind != TokenNone {
		return l.p.Kind == TokenEOF
	}
	if l.eof {
		return true
	}
	for {
		r, err := l.readRune()
		if err != nil {
			return true
		}
		if r != '\n' && unicode.IsSpace(r) {
			continue
		}
		l.unreadRune()
		return false
	}
}

func (l *Lexer) scan() (Token, error) {
	if l.eof {
		return Token{Kind: TokenEOF, Pos: l.pos}, nil
	}
	defer l.buf.Reset()
	for {
		tok := Token{Pos: l.pos}
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				tok.Kind = TokenEOF
				l.eof = true
				return tok, nil
			}
			return tok, err
		}
		switch {
		case r == '\n':
			tok.Kind = TokenEOL
			tok.Text = "\n"
			return tok, nil
		case unicode.IsSpace(r):
			continue
		case '0' <= r && r <= '9':
			l.unreadRune()
			if err := l.scanNum(); err != nil {
				return Token{}, err
			}
			tok.Kind = TokenNum
			tok.Text = l.buf.String()
			return tok, nil
		case unicode.IsLetter(r):
			l.unreadRune()
			l.scanIdent()
			tok.Kind = TokenIdent
			tok.Text = l.buf.String()
			return tok, nil
		case r == '=':
			tok.Kind = TokenEquals
			tok.Text = "="
			if r, err := l.readRune(); err == nil {
				if r == '=' {
					tok.Kind = TokenDoubleEquals
					tok.Text = "=="
				} else {
					l.unreadRune()
				}
			}
			return tok, nil
		default:
			k := single(r)
			if k == TokenNone {
				return Token{}, &UnexpectedCharError{Char: r, At: tok.Pos}
			}
			tok.Kind = k
			tok.Text = string(r)
			return tok, nil
		}
	}
}

// single gets the kind of a single-rune token, or TokenNone if r does not
// begin one.
func single(r rune) TokenKind {
	switch r {
	case '(':
		return TokenOpen
	case ')':
		return TokenClose
	case ',':
		return TokenComma
	case '+':
		return TokenPlus
	case '-':
		return TokenMinus
	case '*':
		return TokenMul
	case '/':
		return TokenDiv
	case '^':
		return TokenPow
	default:
		return TokenNone
	}
}

func (l *Lexer) scanNum() error {
	dot := false
	for {
		at := l.pos
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		switch {
		case '0' <= r && r <= '9':
			l.buf.WriteRune(r)
		case r == '.':
			if dot {
				l.skipLiteral()
				return &UnexpectedCharError{Char: r, At: at, Literal: true}
			}
			dot = true
			l.buf.WriteRune(r)
		case unicode.IsLetter(r):
			l.skipLiteral()
			return &UnexpectedCharError{Char: r, At: at, Literal: true}
		default:
			l.unreadRune()
			return nil
		}
	}
}

// skipLiteral consumes the remainder of a malformed number literal so that
// scanning resumes after it.
func (l *Lexer) skipLiteral() {
	for {
		r, err := l.readRune()
		if err != nil {
			return
		}
		if r != '.' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			l.unreadRune()
			return
		}
	}
}

func (l *Lexer) scanIdent() {
	for {
		r, err := l.readRune()
		if err != nil {
			// scan unreads the rune that decides ident scanning before
			// calling scanIdent, so we have scanned at least one rune.
			return
		}
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			l.unreadRune()
			return
		}
		l.buf.WriteRune(r)
	}
}
