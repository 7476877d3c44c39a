package symbols

import (
	"github.com/funvibe/jott/internal/config"
	"github.com/funvibe/jott/internal/typesystem"
)

// FunctionInfo is a registered signature. It is not modified after Register.
type FunctionInfo struct {
	Name      string
	Signature typesystem.TFunc
	Builtin   bool
}

// FunctionRegistry is the flat, program-wide table of function signatures.
type FunctionRegistry struct {
	funcs map[string]*FunctionInfo
}

func NewFunctionRegistry() *FunctionRegistry {
	return &FunctionRegistry{funcs: make(map[string]*FunctionInfo)}
}

// Register inserts a signature. It returns false if name is taken.
func (fr *FunctionRegistry) Register(name string, returnType typesystem.Type, params []typesystem.Type) bool {
	return fr.register(&FunctionInfo{
		Name:      name,
		Signature: typesystem.TFunc{Params: params, ReturnType: returnType},
	})
}

// RegisterBuiltin is Register for the predefined functions.
func (fr *FunctionRegistry) RegisterBuiltin(name string, sig typesystem.TFunc) bool {
	return fr.register(&FunctionInfo{Name: name, Signature: sig, Builtin: true})
}

func (fr *FunctionRegistry) register(info *FunctionInfo) bool {
	if _, exists := fr.funcs[info.Name]; exists {
		return false
	}
	fr.funcs[info.Name] = info
	return true
}

func (fr *FunctionRegistry) Lookup(name string) (*FunctionInfo, bool) {
	info, ok := fr.funcs[name]
	return info, ok
}

// HasMain reports whether a function named main is registered, whatever
// its signature.
func (fr *FunctionRegistry) HasMain() bool {
	_, ok := fr.funcs[config.MainFuncName]
	return ok
}
