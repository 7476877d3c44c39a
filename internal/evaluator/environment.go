package evaluator

import (
	"errors"
	"fmt"

	"github.com/funvibe/jott/internal/ast"
	"github.com/funvibe/jott/internal/symbols"
	"github.com/funvibe/jott/internal/typesystem"
)

// ErrUnboundVariable means the evaluator touched a name the analyzer
// should have rejected. It is never caused by a valid program.
var ErrUnboundVariable = errors.New("unbound variable")

// ErrBindingType means a value of the wrong runtime type reached a binding.
var ErrBindingType = errors.New("value does not match variable type")

// Binding is a live variable. Value is nil until the first assignment.
type Binding struct {
	Type  typesystem.Type
	Value Object
}

type frame struct {
	kind symbols.ScopeType
	vars map[string]*Binding
}

// Callable is a function stored in the environment's closure table.
type Callable interface {
	callable()
}

// Function is a user-defined closure.
type Function struct {
	Def        *ast.FunctionDef
	Params     []typesystem.Type
	ReturnType typesystem.Type
}

func (f *Function) callable() {}

// BuiltinFunction implements a predefined function.
type BuiltinFunction func(e *Evaluator, args ...Object) (Object, error)

type Builtin struct {
	Name string
	Fn   BuiltinFunction
}

func (b *Builtin) callable() {}

// Environment is the runtime counterpart of the analyzer's scope table: a
// stack of value frames plus a flat table of callable functions.
//
// Lookups walk outward until they leave the innermost function frame and
// then fall back to the global frame, so a callee never sees its caller's
// locals.
type Environment struct {
	frames    []*frame
	functions map[string]Callable
}

func NewEnvironment() *Environment {
	return &Environment{
		frames:    []*frame{{kind: symbols.ScopeGlobal, vars: make(map[string]*Binding)}},
		functions: make(map[string]Callable),
	}
}

func (env *Environment) EnterScope(kind symbols.ScopeType) {
	env.frames = append(env.frames, &frame{kind: kind, vars: make(map[string]*Binding)})
}

func (env *Environment) ExitScope() error {
	if len(env.frames) <= 1 {
		return symbols.ErrInvalidScopeOp
	}
	env.frames[len(env.frames)-1] = nil
	env.frames = env.frames[:len(env.frames)-1]
	return nil
}

// Depth is the number of frames including the global one.
func (env *Environment) Depth() int {
	return len(env.frames)
}

// Declare binds name in the innermost frame, replacing any binding of the
// same name in that frame.
func (env *Environment) Declare(name string, t typesystem.Type, value Object) {
	env.frames[len(env.frames)-1].vars[name] = &Binding{Type: t, Value: value}
}

func (env *Environment) lookup(name string) (*Binding, bool) {
	for i := len(env.frames) - 1; i >= 0; i-- {
		if b, ok := env.frames[i].vars[name]; ok {
			return b, true
		}
		if env.frames[i].kind == symbols.ScopeFunction {
			b, ok := env.frames[0].vars[name]
			return b, ok
		}
	}
	return nil, false
}

// Set assigns to the nearest visible binding.
func (env *Environment) Set(name string, value Object) error {
	b, ok := env.lookup(name)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnboundVariable, name)
	}
	if got := value.RuntimeType(); got != b.Type {
		return fmt.Errorf("%w: %s is %s, got %s", ErrBindingType, name, b.Type, got)
	}
	b.Value = value
	return nil
}

// Get returns the nearest visible value. A declared but unassigned
// variable yields (nil, true).
func (env *Environment) Get(name string) (Object, bool) {
	b, ok := env.lookup(name)
	if !ok {
		return nil, false
	}
	return b.Value, true
}

func (env *Environment) RegisterFunction(name string, fn Callable) {
	env.functions[name] = fn
}

func (env *Environment) LookupFunction(name string) (Callable, bool) {
	fn, ok := env.functions[name]
	return fn, ok
}
