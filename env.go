package loq

// Env is an environment of variable bindings and function definitions. It is
// not safe to use an Env concurrently.
type Env struct {
	vars     map[string]Expr
	funcs    map[string]*BinOp
	builtins map[string]Builtin
}

// EnvOption is an option used when creating an environment.
type EnvOption interface {
	envOption(*Env)
}

type (
	varopt struct {
		name string
		val  Expr
	}
	varsopt     map[string]Expr
	builtinsopt map[string]*Builtin
)

func (o varopt) envOption(env *Env) {
	env.setVar(o.name, Clone(o.val))
}

func (o varsopt) envOption(env *Env) {
	for k, v := range o {
		env.setVar(k, Clone(v))
	}
}

func (o builtinsopt) envOption(env *Env) {
	for k, v := range o {
		if v == nil {
			delete(env.builtins, k)
			continue
		}
		env.builtins[k] = *v
	}
}

// SetVar binds a variable in the environment.
func SetVar(name string, val Expr) EnvOption {
	return varopt{name, val}
}

// SetVars binds any number of variables in the environment.
func SetVars(vars map[string]Expr) EnvOption {
	return varsopt(vars)
}

// Builtins adds or replaces builtin functions. A nil entry removes the builtin
// with that name.
func Builtins(fns map[string]*Builtin) EnvOption {
	return builtinsopt(fns)
}

// DisableBuiltins removes all default builtin functions. Their names become
// ordinary symbolic calls.
func DisableBuiltins() EnvOption {
	m := make(builtinsopt, len(globalfuncs))
	for k := range globalfuncs {
		m[k] = nil
	}
	return m
}

// NewEnv creates a new environment with the default builtins, then applies
// options in order.
func NewEnv(opts ...EnvOption) *Env {
	env := Env{
		vars:     make(map[string]Expr),
		funcs:    make(map[string]*BinOp),
		builtins: make(map[string]Builtin, len(globalfuncs)),
	}
	for k, v := range globalfuncs {
		env.builtins[k] = v
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt.envOption(&env)
	}
	return &env
}

// child creates an ephemeral environment for a function call. It binds only
// the given variables and shares the function tables of env.
func (env *Env) child(vars map[string]Expr) *Env {
	return &Env{
		vars:     vars,
		funcs:    env.funcs,
		builtins: env.builtins,
	}
}

// Clone creates an independent copy of the environment.
func (env *Env) Clone() *Env {
	n := Env{
		vars:     make(map[string]Expr, len(env.vars)),
		funcs:    make(map[string]*BinOp, len(env.funcs)),
		builtins: make(map[string]Builtin, len(env.builtins)),
	}
	// Stored expressions are never modified, so they can be shared.
	for k, v := range env.vars {
		n.vars[k] = v
	}
	for k, v := range env.funcs {
		n.funcs[k] = v
	}
	for k, v := range env.builtins {
		n.builtins[k] = v
	}
	return &n
}

// Var returns the value bound to a variable.
func (env *Env) Var(name string) (Expr, bool) {
	v, ok := env.vars[name]
	return v, ok
}

// Func returns the stored definition of a function, which is an assignment
// whose left side is the *Fun head.
func (env *Env) Func(name string) (*BinOp, bool) {
	def, ok := env.funcs[name]
	return def, ok
}

// Builtin returns the builtin function with the given name.
func (env *Env) Builtin(name string) (Builtin, bool) {
	b, ok := env.builtins[name]
	return b, ok
}

// Arity returns the number of parameters of the named function. Stored
// definitions take priority over builtins.
func (env *Env) Arity(name string) (int, bool) {
	if def, ok := env.funcs[name]; ok {
		return len(head(def).Params), true
	}
	if b, ok := env.builtins[name]; ok {
		return b.Arity, true
	}
	return 0, false
}

// VarNames returns the sorted names of all bound variables.
func (env *Env) VarNames() []string {
	m := make(map[string]bool, len(env.vars))
	for k := range env.vars {
		m[k] = true
	}
	return sortedKeys(m)
}

// FuncNames returns the sorted names of all stored function definitions.
func (env *Env) FuncNames() []string {
	m := make(map[string]bool, len(env.funcs))
	for k := range env.funcs {
		m[k] = true
	}
	return sortedKeys(m)
}

func (env *Env) setVar(name string, val Expr) {
	delete(env.funcs, name)
	env.vars[name] = val
}

func (env *Env) defineFunc(name string, def *BinOp) {
	delete(env.vars, name)
	env.funcs[name] = def
}

// head returns the definition head of a stored function. Panics if def is not
// a function definition.
func head(def *BinOp) *Fun {
	f, ok := def.Left.(*Fun)
	if !ok || def.Op != OpEquals {
		panic("loq: stored function is not a definition: " + def.String())
	}
	return f
}
