package analyzer

import (
	"github.com/funvibe/jott/internal/config"
	"github.com/funvibe/jott/internal/symbols"
	"github.com/funvibe/jott/internal/typesystem"
)

// BuiltinSignatures are the functions every program can call without
// defining them.
var BuiltinSignatures = map[string]typesystem.TFunc{
	config.PrintFuncName: {
		Params:     []typesystem.Type{typesystem.Any},
		ReturnType: typesystem.Void,
	},
	config.ConcatFuncName: {
		Params:     []typesystem.Type{typesystem.String, typesystem.String},
		ReturnType: typesystem.String,
	},
	config.LengthFuncName: {
		Params:     []typesystem.Type{typesystem.String},
		ReturnType: typesystem.Integer,
	},
}

func RegisterBuiltins(reg *symbols.FunctionRegistry) {
	for name, sig := range BuiltinSignatures {
		reg.RegisterBuiltin(name, sig)
	}
}
