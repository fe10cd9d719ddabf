package loq

import (
	"errors"
	"math"
	"math/big"

	"github.com/zephyrtronium/bigfloat"
)

// Builtin is a numeric function available to every call in an environment
// that does not have a stored definition of the same name.
type Builtin struct {
	// Arity is the number of arguments the function takes.
	Arity int
	// Fn computes the result. len(args) is always Arity. Out-of-domain
	// arguments should produce NaN rather than panicking.
	Fn func(args []float64) float64
}

// prec is the precision in bits at which builtins compute before rounding to
// float64.
const prec = 64

var globalfuncs = map[string]Builtin{
	"exp": Monadic(bigfloat.Exp),
	"ln":  Monadic(bigfloat.Log),
	"log": Monadic(func(out, in *big.Float) *big.Float {
		bigfloat.Log(out, in)
		ten := new(big.Float).SetPrec(out.Prec()).SetFloat64(10)
		bigfloat.Log(ten, ten)
		return out.Quo(out, ten)
	}),
	"sqrt": Monadic((*big.Float).Sqrt),

	// trig, computed in float64 since bigfloat has none
	"cos":   Float(math.Cos),
	"sin":   Float(math.Sin),
	"tan":   Float(math.Tan),
	"acos":  Float(math.Acos),
	"asin":  Float(math.Asin),
	"atan":  Float(math.Atan),
	"cosh":  Float(math.Cosh),
	"sinh":  Float(math.Sinh),
	"tanh":  Float(math.Tanh),
	"acosh": Float(math.Acosh),
	"asinh": Float(math.Asinh),
	"atanh": Float(math.Atanh),

	// constants
	"pi": Niladic(bigfloat.Pi),
	"e": Niladic(func(out *big.Float) *big.Float {
		var one big.Float
		one.SetFloat64(1)
		return bigfloat.Exp(out, &one)
	}),
}

// Monadic wraps a function of one variable into a Builtin. f must set out to
// its result; its return value is ignored. If f is called on an argument
// outside its domain, it should panic with big.ErrNaN, and the result of the
// Builtin is NaN.
func Monadic(f func(out, in *big.Float) *big.Float) Builtin {
	return Builtin{
		Arity: 1,
		Fn: func(args []float64) (r float64) {
			x := args[0]
			if math.IsNaN(x) {
				return x
			}
			defer func() {
				p := recover()
				if p == nil {
					return
				}
				if err, ok := p.(error); ok && !errors.As(err, new(big.ErrNaN)) {
					panic(p)
				}
				// bigfloat reports some domain errors with string panics.
				r = math.NaN()
			}()
			in := new(big.Float).SetPrec(prec).SetFloat64(x)
			out := new(big.Float).SetPrec(prec)
			f(out, in)
			r, _ = out.Float64()
			return r
		},
	}
}

// Niladic wraps a function of zero variables, generally a function which
// computes a constant, into a Builtin. f must set out to its result; its
// return value is ignored.
func Niladic(f func(out *big.Float) *big.Float) Builtin {
	return Builtin{
		Arity: 0,
		Fn: func([]float64) float64 {
			out := new(big.Float).SetPrec(prec)
			f(out)
			r, _ := out.Float64()
			return r
		},
	}
}

// Float wraps a float64 function of one variable into a Builtin.
func Float(f func(float64) float64) Builtin {
	return Builtin{
		Arity: 1,
		Fn:    func(args []float64) float64 { return f(args[0]) },
	}
}
