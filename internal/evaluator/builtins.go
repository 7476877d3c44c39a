package evaluator

import (
	"fmt"
	"unicode/utf8"

	"github.com/funvibe/jott/internal/config"
)

// Builtins are seeded into every environment before main runs. Argument
// types were checked by the analyzer.
var Builtins = map[string]*Builtin{
	config.PrintFuncName: {
		Name: config.PrintFuncName,
		Fn: func(e *Evaluator, args ...Object) (Object, error) {
			if _, err := fmt.Fprintln(e.out, args[0].Inspect()); err != nil {
				return nil, fmt.Errorf("print: %w", err)
			}
			return nil, nil
		},
	},
	config.ConcatFuncName: {
		Name: config.ConcatFuncName,
		Fn: func(e *Evaluator, args ...Object) (Object, error) {
			return &String{Value: args[0].(*String).Value + args[1].(*String).Value}, nil
		},
	},
	config.LengthFuncName: {
		Name: config.LengthFuncName,
		Fn: func(e *Evaluator, args ...Object) (Object, error) {
			return &Integer{Value: int64(utf8.RuneCountInString(args[0].(*String).Value))}, nil
		},
	},
}

func (e *Evaluator) registerBuiltins() {
	for name, b := range Builtins {
		e.env.RegisterFunction(name, b)
	}
}
