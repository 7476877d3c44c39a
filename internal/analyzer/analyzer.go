package analyzer

import (
	"fmt"

	"github.com/funvibe/jott/internal/ast"
	"github.com/funvibe/jott/internal/config"
	"github.com/funvibe/jott/internal/diagnostics"
	"github.com/funvibe/jott/internal/symbols"
	"github.com/funvibe/jott/internal/token"
	"github.com/funvibe/jott/internal/typesystem"
)

// Analyzer performs semantic analysis on the AST.
//
// An Analyzer owns its scope table and function registry; both are rebuilt
// at the start of every Analyze call, so one Analyzer may check several
// programs in sequence without state leaking between them.
type Analyzer struct {
	scopes  *symbols.ScopeTable
	funcs   *symbols.FunctionRegistry
	TypeMap map[ast.Expression]typesystem.Type // Stores inferred types

	current *ast.FunctionDef
	retType typesystem.Type
}

func New() *Analyzer {
	return &Analyzer{}
}

func (a *Analyzer) reset() {
	a.scopes = symbols.NewScopeTable()
	a.funcs = symbols.NewFunctionRegistry()
	a.TypeMap = make(map[ast.Expression]typesystem.Type)
	a.current = nil
	a.retType = typesystem.Invalid
	RegisterBuiltins(a.funcs)
}

// Functions exposes the registry built by the last Analyze call.
func (a *Analyzer) Functions() *symbols.FunctionRegistry {
	return a.funcs
}

// Analyze validates program and returns the first semantic error, or nil.
func (a *Analyzer) Analyze(program *ast.Program) *diagnostics.DiagnosticError {
	a.reset()

	// Pass 1: signatures
	for _, fn := range program.Functions {
		if err := a.declareFunction(fn); err != nil {
			return err
		}
	}
	if err := a.checkMain(program); err != nil {
		return err
	}

	// Pass 2: bodies
	for _, fn := range program.Functions {
		if err := a.analyzeFunction(fn); err != nil {
			return err
		}
	}
	return nil
}

func (a *Analyzer) declareFunction(fn *ast.FunctionDef) *diagnostics.DiagnosticError {
	if config.Keywords[fn.Name] {
		return diagnostics.NewError(diagnostics.ErrReservedIdentifier, fn.NameToken,
			"%s is a keyword, cannot be used as a function name", fn.Name)
	}

	params := make([]typesystem.Type, len(fn.Params))
	for i, p := range fn.Params {
		t, ok := typesystem.Parse(p.TypeName)
		if !ok || !t.IsPrimitive() {
			return diagnostics.NewError(diagnostics.ErrUnknownType, p.TypeToken, "Unknown parameter type %s", p.TypeName)
		}
		params[i] = t
	}

	ret, ok := typesystem.Parse(fn.ReturnTypeName)
	if !ok {
		return diagnostics.NewError(diagnostics.ErrUnknownType, fn.ReturnTypeToken, "Unknown return type %s", fn.ReturnTypeName)
	}

	if !a.funcs.Register(fn.Name, ret, params) {
		return diagnostics.NewError(diagnostics.ErrDuplicateFunction, fn.NameToken, "Duplicate function %s", fn.Name)
	}
	return nil
}

// checkMain requires exactly main[]:Void. Both errors are program-level
// and carry no source position.
func (a *Analyzer) checkMain(program *ast.Program) *diagnostics.DiagnosticError {
	noPos := token.Token{File: program.File}
	if !a.funcs.HasMain() {
		return diagnostics.NewError(diagnostics.ErrMissingMain, noPos, "Missing main function")
	}
	info, _ := a.funcs.Lookup(config.MainFuncName)
	if len(info.Signature.Params) != 0 || info.Signature.ReturnType != typesystem.Void {
		return diagnostics.NewError(diagnostics.ErrInvalidMainSignature, noPos, "main must be declared as main[]:Void")
	}
	return nil
}

// analyzeFunction validates one body in its own function scope, with the
// parameters already initialized.
func (a *Analyzer) analyzeFunction(fn *ast.FunctionDef) *diagnostics.DiagnosticError {
	info, _ := a.funcs.Lookup(fn.Name)
	a.current = fn
	a.retType = info.Signature.ReturnType
	defer func() { a.current = nil }()

	return a.withScope(symbols.ScopeFunction, func() *diagnostics.DiagnosticError {
		for i, p := range fn.Params {
			if config.Keywords[p.Name] {
				return diagnostics.NewError(diagnostics.ErrReservedIdentifier, p.NameToken,
					"%s is a keyword, cannot be used as id", p.Name)
			}
			if !a.scopes.DeclareInitialized(p.Name, info.Signature.Params[i]) {
				return diagnostics.NewError(diagnostics.ErrDuplicateDeclaration, p.NameToken,
					"Parameter '%s' is already declared in function '%s'", p.Name, fn.Name)
			}
		}
		return a.analyzeBody(fn.Body, Terminal)
	})
}

// withScope runs fn inside a fresh scope. The scope is popped even when fn
// fails so the table stays balanced for later functions.
func (a *Analyzer) withScope(kind symbols.ScopeType, fn func() *diagnostics.DiagnosticError) *diagnostics.DiagnosticError {
	a.scopes.EnterScope(kind)
	defer a.exitScope()
	return fn()
}

func (a *Analyzer) exitScope() {
	if err := a.scopes.ExitScope(); err != nil {
		// Unbalanced push/pop is a bug in the analyzer itself.
		panic(fmt.Errorf("analyzer: %w", err))
	}
}
