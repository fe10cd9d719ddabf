package loq

import (
	"strconv"
	"strings"
)

// UnexpectedCharError is an error indicating a rune that cannot begin any
// token, or a malformed number literal. It implements InputError.
type UnexpectedCharError struct {
	// Char is the offending rune.
	Char rune
	// At is the position of the rune.
	At Loc
	// Literal is whether the rune appeared inside a number literal.
	Literal bool
}

func (err *UnexpectedCharError) Error() string {
	if err.Literal {
		return "Found unexpected " + strconv.QuoteRune(err.Char) + " in number literal."
	}
	return "Found unexpected " + strconv.QuoteRune(err.Char) + "."
}

func (err *UnexpectedCharError) Pos() Loc {
	return err.At
}

// ExpectedTokenError is an error indicating that the parser required one of
// several token kinds and found something else. It implements InputError.
type ExpectedTokenError struct {
	// Expected is the list of acceptable token kinds.
	Expected []TokenKind
	// Found is the token found instead, or nil at the end of input.
	Found *Token
	// While describes what the parser was doing, e.g. "while parsing the
	// arguments of f".
	While string
	// At is the position where the token was expected.
	At Loc
}

func (err *ExpectedTokenError) Error() string {
	var b strings.Builder
	b.WriteString("Expected ")
	if len(err.Expected) > 1 {
		b.WriteString("either ")
	}
	for i, k := range err.Expected {
		b.WriteString(k.String())
		switch {
		case i < len(err.Expected)-2:
			b.WriteString(", ")
		case i == len(err.Expected)-2:
			b.WriteString(" or ")
		}
	}
	b.WriteByte(' ')
	b.WriteString(err.While)
	b.WriteString(", found ")
	if err.Found == nil || err.Found.Kind == TokenEOF {
		b.WriteString("nothing")
	} else {
		b.WriteString(err.Found.String())
	}
	b.WriteString(" instead.")
	return b.String()
}

func (err *ExpectedTokenError) Pos() Loc {
	if err.Found != nil {
		return err.Found.Pos
	}
	return err.At
}

// UnexpectedTokenError is an error indicating a token that is out of place,
// e.g. two operands in a row. It implements InputError.
type UnexpectedTokenError struct {
	// Found is the out-of-place token.
	Found Token
	// While describes what the parser was doing.
	While string
}

func (err *UnexpectedTokenError) Error() string {
	return "Found unexpected " + err.Found.String() + " " + err.While + "."
}

func (err *UnexpectedTokenError) Pos() Loc {
	return err.Found.Pos
}

// InvalidExprError is an error indicating an expression that parses but is
// not allowed, such as assignment to a number or a call with the wrong number
// of arguments. It implements InputError.
type InvalidExprError struct {
	// Found is the offending expression.
	Found Expr
	// Reason explains what is wrong with it.
	Reason string
	// At is the position of the token that revealed the problem.
	At Loc
}

func (err *InvalidExprError) Error() string {
	return "Invalid expression " + err.Found.String() + ": " + err.Reason + "."
}

func (err *InvalidExprError) Pos() Loc {
	return err.At
}

// UnusedParamsError is an error indicating a function definition with
// parameters that its body never references. It implements InputError.
type UnusedParamsError struct {
	// Func is the name of the function.
	Func string
	// Body is the function body.
	Body Expr
	// Unused is the list of unreferenced parameter names, in declaration
	// order.
	Unused []string
	// At is the position of the function name.
	At Loc
}

func (err *UnusedParamsError) Error() string {
	s := "parameter"
	if len(err.Unused) > 1 {
		s = "parameters"
	}
	return "Function " + err.Func + " has unused " + s + " " + strings.Join(err.Unused, ", ") + " in body " + err.Body.String() + "."
}

func (err *UnusedParamsError) Pos() Loc {
	return err.At
}

// RecursiveFuncDefError is an error indicating a function definition whose
// body calls the function being defined. It implements InputError.
type RecursiveFuncDefError struct {
	// Def is the whole definition.
	Def Expr
	// Via is the chain of stored functions through which the body reaches the
	// function being defined. It is empty for direct recursion.
	Via []string
	// At is the position of the function name.
	At Loc
}

func (err *RecursiveFuncDefError) Error() string {
	if len(err.Via) == 0 {
		return "Recursive function definition " + err.Def.String() + " is not allowed."
	}
	return "Recursive function definition " + err.Def.String() + " is not allowed (through " + strings.Join(err.Via, " -> ") + ")."
}

func (err *RecursiveFuncDefError) Pos() Loc {
	return err.At
}

// InvalidFuncParamError is an error indicating a function definition whose
// formal parameter is not a bare variable name. It implements InputError.
type InvalidFuncParamError struct {
	// Found is the offending parameter.
	Found Expr
	// While describes what the parser was doing.
	While string
	// At is the position of the function name.
	At Loc
}

func (err *InvalidFuncParamError) Error() string {
	return "Invalid function parameter " + err.Found.String() + " " + err.While + "."
}

func (err *InvalidFuncParamError) Pos() Loc {
	return err.At
}

// InputError is an error with position information. Every error resulting from
// invalid input implements InputError.
type InputError interface {
	error
	// Pos returns the position in the source text of the token that caused
	// the error.
	Pos() Loc
}

var (
	_ InputError = (*UnexpectedCharError)(nil)
	_ InputError = (*ExpectedTokenError)(nil)
	_ InputError = (*UnexpectedTokenError)(nil)
	_ InputError = (*InvalidExprError)(nil)
	_ InputError = (*UnusedParamsError)(nil)
	_ InputError = (*RecursiveFuncDefError)(nil)
	_ InputError = (*InvalidFuncParamError)(nil)
)
