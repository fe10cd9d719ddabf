// Package loq implements a small symbolic arithmetic language.
//
// A statement is an expression over numbers, names, and function calls using
// the operators ^, *, /, +, -, and ==, or an assignment with = at its top
// level. "a = 2*b" binds the variable a; "f(x, y) = x^2 + y" defines the
// function f. Evaluation reduces an expression as far as the environment
// allows: "a+1" with a bound to 2 gives 3, and with a unbound gives a+1
// unchanged. Comparing with == gives a truth value, and truth values combine
// with * as "and" and + as "or".
//
// All operators are left-associative, so "2^3^2" is 64. There is no unary
// minus; write "0-x".
//
// Parsing checks definitions as they are made. A function may not call
// itself, directly or through other functions, and every parameter must be
// used in the body. Calls must match the arity of the definition or builtin
// in scope when they are parsed.
//
// Errors from parsing implement InputError, which locates the error in the
// source text. A Diagnoster renders them with the offending line and a caret.
package loq
