package loq

import (
	"errors"
	"testing"
)

func TestLex(t *testing.T) {
	type tk = Token
	at := func(line, col int) Loc { return Loc{Line: line, Col: col} }
	cases := []struct {
		src    string
		tokens []tk
		errs   int
	}{
		// spaces
		{"", nil, 0},
		{" \t \r ", nil, 0},
		// numbers
		{"0", []tk{{TokenNum, "0", at(1, 0)}}, 0},
		{"9876543210", []tk{{TokenNum, "9876543210", at(1, 0)}}, 0},
		{"1 0", []tk{{TokenNum, "1", at(1, 0)}, {TokenNum, "0", at(1, 2)}}, 0},
		{"1.25", []tk{{TokenNum, "1.25", at(1, 0)}}, 0},
		{"1.", []tk{{TokenNum, "1.", at(1, 0)}}, 0},
		{"1.2.3", []tk{{}}, 1},
		{"1.2.3+4", []tk{{}, {TokenPlus, "+", at(1, 5)}, {TokenNum, "4", at(1, 6)}}, 1},
		{"1a", []tk{{}}, 1},
		{"1a b", []tk{{}, {TokenIdent, "b", at(1, 3)}}, 1},
		{"-1", []tk{{TokenMinus, "-", at(1, 0)}, {TokenNum, "1", at(1, 1)}}, 0},
		// identifiers
		{"e", []tk{{TokenIdent, "e", at(1, 0)}}, 0},
		{"e1", []tk{{TokenIdent, "e1", at(1, 0)}}, 0},
		{"π", []tk{{TokenIdent, "π", at(1, 0)}}, 0},
		{"eπ x", []tk{{TokenIdent, "eπ", at(1, 0)}, {TokenIdent, "x", at(1, 3)}}, 0},
		{"f(", []tk{{TokenIdent, "f", at(1, 0)}, {TokenOpen, "(", at(1, 1)}}, 0},
		// operators
		{"+-*/^", []tk{
			{TokenPlus, "+", at(1, 0)},
			{TokenMinus, "-", at(1, 1)},
			{TokenMul, "*", at(1, 2)},
			{TokenDiv, "/", at(1, 3)},
			{TokenPow, "^", at(1, 4)},
		}, 0},
		{"a=b", []tk{{TokenIdent, "a", at(1, 0)}, {TokenEquals, "=", at(1, 1)}, {TokenIdent, "b", at(1, 2)}}, 0},
		{"a==b", []tk{{TokenIdent, "a", at(1, 0)}, {TokenDoubleEquals, "==", at(1, 1)}, {TokenIdent, "b", at(1, 3)}}, 0},
		{"= =", []tk{{TokenEquals, "=", at(1, 0)}, {TokenEquals, "=", at(1, 2)}}, 0},
		{"===", []tk{{TokenDoubleEquals, "==", at(1, 0)}, {TokenEquals, "=", at(1, 2)}}, 0},
		{"=", []tk{{TokenEquals, "=", at(1, 0)}}, 0},
		// brackets
		{"(,)", []tk{{TokenOpen, "(", at(1, 0)}, {TokenComma, ",", at(1, 1)}, {TokenClose, ")", at(1, 2)}}, 0},
		// lines
		{"x\ny", []tk{{TokenIdent, "x", at(1, 0)}, {TokenEOL, "\n", at(1, 1)}, {TokenIdent, "y", at(2, 0)}}, 0},
		{"\n\n  z", []tk{{TokenEOL, "\n", at(1, 0)}, {TokenEOL, "\n", at(2, 0)}, {TokenIdent, "z", at(3, 2)}}, 0},
		// erroneous symbols
		{"$", []tk{{}}, 1},
		{"a$", []tk{{TokenIdent, "a", at(1, 0)}, {}}, 1},
		{"$a", []tk{{}, {TokenIdent, "a", at(1, 1)}}, 1},
		{"$$", []tk{{}, {}}, 2},
		{"[x]", []tk{{}, {TokenIdent, "x", at(1, 1)}, {}}, 2},
	}

	for _, c := range cases {
		scan := NewLexer(c.src)
		for _, want := range c.tokens {
			got, err := scan.Next()
			if got.Kind == TokenEOF {
				t.Errorf("scanning %q: expected token %v but got end of input", c.src, want)
				continue
			}
			if got != want {
				t.Errorf("scanning %q: want %+v, got %+v", c.src, want, got)
			}
			if err != nil {
				if c.errs > 0 {
					c.errs--
					continue
				}
				t.Errorf("scanning %q: unexpected error %v", c.src, err)
			}
		}
		for got, err := scan.Next(); got.Kind != TokenEOF || err != nil; got, err = scan.Next() {
			if c.errs > 0 {
				c.errs--
			}
			t.Errorf("scanning %q: extra token %v with error: %v", c.src, got, err)
		}
		if c.errs > 0 {
			t.Errorf("scanning %q: not enough errors", c.src)
		}
	}
}

func TestLexErrorPos(t *testing.T) {
	cases := []struct {
		name    string
		src     string
		char    rune
		pos     Loc
		literal bool
	}{
		{"dollar", "$", '$', Loc{1, 0}, false},
		{"after-ident", "ab $", '$', Loc{1, 3}, false},
		{"second-line", "a\n  #", '#', Loc{2, 2}, false},
		{"double-dot", "1.2.3", '.', Loc{1, 3}, true},
		{"letter", "12a", 'a', Loc{1, 2}, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			scan := NewLexer(c.src)
			for {
				tok, err := scan.Next()
				if err != nil {
					var u *UnexpectedCharError
					if !errors.As(err, &u) {
						t.Fatalf("wrong error type %T: %v", err, err)
					}
					if u.Char != c.char || u.Pos() != c.pos || u.Literal != c.literal {
						t.Errorf("wrong error: want %q at %v (literal %t), got %q at %v (literal %t)", c.char, c.pos, c.literal, u.Char, u.Pos(), u.Literal)
					}
					return
				}
				if tok.Kind == TokenEOF {
					t.Fatal("no error")
				}
			}
		})
	}
}

func TestLexPeek(t *testing.T) {
	scan := NewLexer("a + b")
	p, err := scan.Peek()
	if err != nil {
		t.Fatal(err)
	}
	q, err := scan.Peek()
	if err != nil {
		t.Fatal(err)
	}
	if p != q {
		t.Errorf("second peek differs: %v then %v", p, q)
	}
	n, err := scan.Next()
	if err != nil {
		t.Fatal(err)
	}
	if n != p {
		t.Errorf("next after peek differs: peeked %v, got %v", p, n)
	}
	if n, _ := scan.Next(); n.Kind != TokenPlus {
		t.Errorf("wrong second token %v", n)
	}
	if scan.Empty() {
		t.Error("empty before last token")
	}
	scan.Next()
	if !scan.Empty() {
		t.Error("not empty after last token")
	}
	if n, _ := scan.Next(); n.Kind != TokenEOF {
		t.Errorf("wrong token after end: %v", n)
	}
	if n, _ := scan.Next(); n.Kind != TokenEOF {
		t.Errorf("wrong token after end twice: %v", n)
	}
}

func TestLocString(t *testing.T) {
	if s := (Loc{Line: 3, Col: 0}).String(); s != "3:1" {
		t.Errorf("wrong location string %q", s)
	}
}
