// Package evaluator executes a validated Jott program by walking its AST.
package evaluator

import (
	"fmt"
	"io"
	"os"

	"github.com/funvibe/jott/internal/ast"
	"github.com/funvibe/jott/internal/config"
	"github.com/funvibe/jott/internal/diagnostics"
	"github.com/funvibe/jott/internal/symbols"
	"github.com/funvibe/jott/internal/token"
	"github.com/funvibe/jott/internal/typesystem"
)

// Completion is the control signal threaded through statement execution.
// Returned is set once a Return fires; Value is nil for a bare Return.
type Completion struct {
	Returned bool
	Value    Object
}

var normalCompletion = Completion{}

type Evaluator struct {
	env *Environment
	out io.Writer

	// MaxCallDepth bounds nested user calls. 0 means config.DefaultMaxCallDepth;
	// values above config.MaxCallDepthLimit are clamped to it.
	MaxCallDepth int
	depth        int
}

// New creates an evaluator writing program output to out (os.Stdout if nil).
func New(out io.Writer) *Evaluator {
	if out == nil {
		out = os.Stdout
	}
	e := &Evaluator{env: NewEnvironment(), out: out}
	e.registerBuiltins()
	return e
}

// Environment exposes the evaluator's runtime environment.
func (e *Evaluator) Environment() *Environment {
	return e.env
}

// Run registers every function of program and calls main. The returned
// error is a *diagnostics.DiagnosticError in the runtime phase.
func (e *Evaluator) Run(program *ast.Program) error {
	for _, fn := range program.Functions {
		e.env.RegisterFunction(fn.Name, newFunction(fn))
	}
	_, err := e.Call(config.MainFuncName, nil, token.Token{File: program.File})
	return err
}

func newFunction(def *ast.FunctionDef) *Function {
	params := make([]typesystem.Type, len(def.Params))
	for i, p := range def.Params {
		params[i], _ = typesystem.Parse(p.TypeName)
	}
	ret, _ := typesystem.Parse(def.ReturnTypeName)
	return &Function{Def: def, Params: params, ReturnType: ret}
}

func (e *Evaluator) maxDepth() int {
	switch {
	case e.MaxCallDepth <= 0:
		return config.DefaultMaxCallDepth
	case e.MaxCallDepth > config.MaxCallDepthLimit:
		return config.MaxCallDepthLimit
	}
	return e.MaxCallDepth
}

// Call invokes a function by name. A user function runs in a fresh function
// frame with its parameters bound positionally; the frame is popped on the
// way out whatever happens. The result is nil for Void functions.
func (e *Evaluator) Call(name string, args []Object, tok token.Token) (Object, error) {
	fn, ok := e.env.LookupFunction(name)
	if !ok {
		return nil, diagnostics.NewError(diagnostics.ErrUnknownFunction, tok, "Function '%s' is not defined", name)
	}

	switch f := fn.(type) {
	case *Builtin:
		res, err := f.Fn(e, args...)
		if err != nil {
			return nil, internalError(tok, err)
		}
		return res, nil
	case *Function:
		if e.depth >= e.maxDepth() {
			return nil, diagnostics.NewError(diagnostics.ErrStackExhausted, tok,
				"Stack exhausted: call depth exceeded %d in '%s'", e.maxDepth(), name)
		}
		e.depth++
		defer func() { e.depth-- }()

		e.env.EnterScope(symbols.ScopeFunction)
		defer e.exitScope()

		for i, p := range f.Def.Params {
			e.env.Declare(p.Name, f.Params[i], args[i])
		}
		c, err := e.execBody(f.Def.Body)
		if err != nil {
			return nil, err
		}
		return c.Value, nil
	}
	return nil, internalError(tok, fmt.Errorf("%s is not callable", name))
}

func (e *Evaluator) exitScope() {
	if err := e.env.ExitScope(); err != nil {
		panic(fmt.Errorf("evaluator: %w", err))
	}
}

func internalError(tok token.Token, err error) *diagnostics.DiagnosticError {
	return diagnostics.NewError(diagnostics.ErrInternal, tok, "Internal error: %v", err)
}
