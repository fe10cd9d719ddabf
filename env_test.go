package loq_test

import (
	"reflect"
	"testing"

	"github.com/zephyrtronium/loq"
)

func TestNewEnvOptions(t *testing.T) {
	env := loq.NewEnv(
		loq.SetVar("x", loq.Numeric(1)),
		loq.SetVars(map[string]loq.Expr{"y": loq.Bool(true), "z": loq.Variable("w")}),
		nil,
	)
	if want := []string{"x", "y", "z"}; !reflect.DeepEqual(env.VarNames(), want) {
		t.Errorf("wrong variables: want %q, got %q", want, env.VarNames())
	}
	r, err := env.EvalString("x+z")
	if err != nil {
		t.Fatal(err)
	}
	if got := r.String(); got != "1+w" {
		t.Errorf("x+z evaluated to %s", got)
	}
}

func TestEnvClone(t *testing.T) {
	env := loq.NewEnv()
	run(t, env, "a=1", "f(x)=x+a")
	c := env.Clone()
	run(t, c, "a=2", "g(x)=x", "f(x)=x")
	if v, _ := env.Var("a"); !loq.Equal(v, loq.Numeric(1)) {
		t.Errorf("original a changed to %v", v)
	}
	if _, ok := env.Func("g"); ok {
		t.Error("g defined in original")
	}
	if got := run(t, env, "f(1)"); !loq.Equal(got, loq.Numeric(2)) {
		t.Errorf("original f(1) gave %v", got)
	}
	if got := run(t, c, "f(1)"); !loq.Equal(got, loq.Numeric(1)) {
		t.Errorf("clone f(1) gave %v", got)
	}
	if want := []string{"f", "g"}; !reflect.DeepEqual(c.FuncNames(), want) {
		t.Errorf("wrong clone functions: want %q, got %q", want, c.FuncNames())
	}
}

func TestEnvArity(t *testing.T) {
	env := loq.NewEnv()
	run(t, env, "f(a,b,c)=a+b+c", "ln(x)=x")
	cases := []struct {
		name string
		n    int
		ok   bool
	}{
		{"f", 3, true},
		{"ln", 1, true},
		{"pi", 0, true},
		{"sqrt", 1, true},
		{"nope", 0, false},
	}
	for _, c := range cases {
		n, ok := env.Arity(c.name)
		if n != c.n || ok != c.ok {
			t.Errorf("arity of %s: want %d, %t; got %d, %t", c.name, c.n, c.ok, n, ok)
		}
	}
}

func TestExprHelpers(t *testing.T) {
	e, err := loq.ParseString("f(a, g(b)) + c*(a-d) == h()", nil)
	if err != nil {
		t.Fatal(err)
	}
	if want := []string{"a", "b", "c", "d"}; !reflect.DeepEqual(loq.VarNames(e), want) {
		t.Errorf("wrong variable names: want %q, got %q", want, loq.VarNames(e))
	}
	if want := []string{"f", "g", "h"}; !reflect.DeepEqual(loq.CalledFuncs(e), want) {
		t.Errorf("wrong called functions: want %q, got %q", want, loq.CalledFuncs(e))
	}
	c := loq.Clone(e)
	if !loq.Equal(c, e) {
		t.Errorf("clone %v differs from %v", c, e)
	}
	if loq.Equal(e, loq.Variable("a")) {
		t.Error("expression equal to a variable")
	}
	if !loq.IsNumeric(loq.Numeric(1)) || loq.IsNumeric(loq.Variable("x")) {
		t.Error("wrong IsNumeric")
	}
	if !loq.IsBool(loq.Bool(false)) || loq.IsBool(loq.Numeric(0)) {
		t.Error("wrong IsBool")
	}
	if !loq.IsVariable(loq.Variable("x")) || loq.IsVariable(&loq.Fun{Name: "x"}) {
		t.Error("wrong IsVariable")
	}
	if x := loq.MustFloat(loq.Numeric(2.5)); x != 2.5 {
		t.Errorf("MustFloat gave %g", x)
	}
}

func TestMustFloatPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("no panic")
		}
	}()
	loq.MustFloat(loq.Variable("x"))
}
