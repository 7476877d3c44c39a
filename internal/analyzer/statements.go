package analyzer

import (
	"github.com/funvibe/jott/internal/ast"
	"github.com/funvibe/jott/internal/config"
	"github.com/funvibe/jott/internal/diagnostics"
	"github.com/funvibe/jott/internal/symbols"
	"github.com/funvibe/jott/internal/typesystem"
)

// analyzeBody validates each statement in order. In Terminal mode a
// non-Void function body must also guarantee a return.
func (a *Analyzer) analyzeBody(body *ast.Body, mode ReturnMode) *diagnostics.DiagnosticError {
	for _, stmt := range body.Statements {
		if err := a.analyzeStatement(stmt); err != nil {
			return err
		}
	}
	if mode == Terminal && a.retType != typesystem.Void && !guaranteesReturn(body) {
		return diagnostics.NewError(diagnostics.ErrMissingReturn, a.current.NameToken,
			"Function '%s' does not return a value of type '%s' on every path.", a.current.Name, a.retType)
	}
	return nil
}

// analyzeBlock validates a nested If/While body in its own block scope.
func (a *Analyzer) analyzeBlock(body *ast.Body) *diagnostics.DiagnosticError {
	return a.withScope(symbols.ScopeBlock, func() *diagnostics.DiagnosticError {
		return a.analyzeBody(body, NonTerminal)
	})
}

func (a *Analyzer) analyzeStatement(stmt ast.Statement) *diagnostics.DiagnosticError {
	switch n := stmt.(type) {
	case *ast.VarDecl:
		return a.analyzeVarDecl(n)
	case *ast.Assignment:
		return a.analyzeAssignment(n)
	case *ast.IfStatement:
		return a.analyzeIf(n)
	case *ast.WhileStatement:
		if err := a.analyzeCondition(n.Condition, "While loop"); err != nil {
			return err
		}
		// The body may run zero times.
		_, err := a.analyzeBranch(a.scopes.Unassigned(), n.Body)
		return err
	case *ast.ExpressionStatement:
		_, err := a.inferExpression(n.Call)
		return err
	case *ast.ReturnStatement:
		return a.analyzeReturn(n)
	}
	return diagnostics.NewError(diagnostics.ErrTypeMismatch, stmt.GetToken(), "Unsupported statement")
}

func (a *Analyzer) analyzeVarDecl(n *ast.VarDecl) *diagnostics.DiagnosticError {
	if config.Keywords[n.Name] {
		return diagnostics.NewError(diagnostics.ErrReservedIdentifier, n.NameToken,
			"%s is keyword, cannot be used as id", n.Name)
	}
	t, ok := typesystem.Parse(n.TypeName)
	if !ok || !t.IsPrimitive() {
		return diagnostics.NewError(diagnostics.ErrUnknownType, n.Token, "Unknown variable type %s", n.TypeName)
	}
	if !a.scopes.Declare(n.Name, t) {
		return diagnostics.NewError(diagnostics.ErrDuplicateDeclaration, n.NameToken,
			"Variable '%s' is already declared in the current scope.", n.Name)
	}
	return nil
}

func (a *Analyzer) analyzeAssignment(n *ast.Assignment) *diagnostics.DiagnosticError {
	info, ok := a.scopes.Lookup(n.Name)
	if !ok {
		return diagnostics.NewError(diagnostics.ErrUndeclaredVariable, n.Token,
			"Variable '%s' is not declared.", n.Name)
	}
	valueType, err := a.inferValue(n.Value)
	if err != nil {
		return err
	}
	if valueType != info.Type {
		return diagnostics.NewError(diagnostics.ErrAssignmentTypeMismatch, n.Token,
			"Type mismatch in assignment to variable '%s'. Expected '%s', but got '%s'.", n.Name, info.Type, valueType)
	}
	a.scopes.MarkInitialized(n.Name)
	return nil
}

func (a *Analyzer) analyzeCondition(cond ast.Expression, what string) *diagnostics.DiagnosticError {
	t, err := a.inferValue(cond)
	if err != nil {
		return err
	}
	if t != typesystem.Boolean {
		return diagnostics.NewError(diagnostics.ErrNonBooleanCondition, cond.GetToken(),
			"%s condition must be of type Boolean, but got '%s'.", what, t)
	}
	return nil
}

// analyzeIf validates every branch. A variable counts as assigned after
// the statement only when there is an Else and every branch that can fall
// through assigned it.
func (a *Analyzer) analyzeIf(n *ast.IfStatement) *diagnostics.DiagnosticError {
	pending := a.scopes.Unassigned()
	var (
		definite  map[*symbols.VariableInfo]bool
		fallsThru bool
	)
	branch := func(body *ast.Body) *diagnostics.DiagnosticError {
		assigned, err := a.analyzeBranch(pending, body)
		if err != nil {
			return err
		}
		if alwaysExits(body) {
			return nil
		}
		if !fallsThru {
			definite, fallsThru = assigned, true
			return nil
		}
		for info := range definite {
			if !assigned[info] {
				delete(definite, info)
			}
		}
		return nil
	}

	if err := a.analyzeCondition(n.Condition, "If"); err != nil {
		return err
	}
	if err := branch(n.Then); err != nil {
		return err
	}
	for _, elif := range n.ElseIfs {
		if err := a.analyzeCondition(elif.Condition, "Elseif"); err != nil {
			return err
		}
		if err := branch(elif.Body); err != nil {
			return err
		}
	}
	if n.Else == nil {
		return nil
	}
	if err := branch(n.Else); err != nil {
		return err
	}
	if !fallsThru {
		// Nothing after this statement is reachable.
		for _, info := range pending {
			info.Initialized = true
		}
		return nil
	}
	for info := range definite {
		info.Initialized = true
	}
	return nil
}

// analyzeBranch validates a body that may not run. It returns the
// variables from pending that the body assigned and resets them, so the
// caller decides what holds afterwards.
func (a *Analyzer) analyzeBranch(pending []*symbols.VariableInfo, body *ast.Body) (map[*symbols.VariableInfo]bool, *diagnostics.DiagnosticError) {
	if err := a.analyzeBlock(body); err != nil {
		return nil, err
	}
	assigned := make(map[*symbols.VariableInfo]bool)
	for _, info := range pending {
		if info.Initialized {
			assigned[info] = true
			info.Initialized = false
		}
	}
	return assigned, nil
}

// analyzeReturn checks a Return against the enclosing function's declared
// type, at any nesting depth.
func (a *Analyzer) analyzeReturn(n *ast.ReturnStatement) *diagnostics.DiagnosticError {
	if a.retType == typesystem.Void {
		if n.Value != nil {
			return diagnostics.NewError(diagnostics.ErrVoidFunctionReturnsValue, n.Token,
				"Void function '%s' cannot return a value.", a.current.Name)
		}
		return nil
	}
	if n.Value == nil {
		return diagnostics.NewError(diagnostics.ErrMissingReturn, n.Token,
			"Function '%s' must return a value of type '%s'.", a.current.Name, a.retType)
	}
	t, err := a.inferValue(n.Value)
	if err != nil {
		return err
	}
	if t != a.retType {
		return diagnostics.NewError(diagnostics.ErrReturnTypeMismatch, n.Token,
			"Function '%s' must return '%s', but returns '%s'.", a.current.Name, a.retType, t)
	}
	return nil
}
