package analyzer

import (
	"github.com/funvibe/jott/internal/ast"
	"github.com/funvibe/jott/internal/diagnostics"
	"github.com/funvibe/jott/internal/typesystem"
)

// inferValue types an expression that must produce a value. Calls to Void
// functions are rejected here.
func (a *Analyzer) inferValue(expr ast.Expression) (typesystem.Type, *diagnostics.DiagnosticError) {
	t, err := a.inferExpression(expr)
	if err != nil {
		return typesystem.Invalid, err
	}
	if t == typesystem.Void {
		call := expr.(*ast.Call)
		return typesystem.Invalid, diagnostics.NewError(diagnostics.ErrVoidInExpression, call.NameToken,
			"Function '%s' returns Void and cannot be used as a value", call.Name)
	}
	return t, nil
}

// inferExpression returns the static type of expr. Only a Call can yield Void.
func (a *Analyzer) inferExpression(expr ast.Expression) (typesystem.Type, *diagnostics.DiagnosticError) {
	var t typesystem.Type
	var err *diagnostics.DiagnosticError

	switch n := expr.(type) {
	case *ast.IntLiteral:
		t = typesystem.Integer
	case *ast.DoubleLiteral:
		t = typesystem.Double
	case *ast.StringLiteral:
		t = typesystem.String
	case *ast.BoolLiteral:
		t = typesystem.Boolean
	case *ast.Identifier:
		t, err = a.inferIdentifier(n)
	case *ast.BinaryOp:
		t, err = a.inferBinaryOp(n)
	case *ast.Call:
		t, err = a.inferCall(n)
	default:
		return typesystem.Invalid, diagnostics.NewError(diagnostics.ErrTypeMismatch, expr.GetToken(),
			"Unable to determine expression type")
	}
	if err != nil {
		return typesystem.Invalid, err
	}
	a.TypeMap[expr] = t
	return t, nil
}

func (a *Analyzer) inferIdentifier(n *ast.Identifier) (typesystem.Type, *diagnostics.DiagnosticError) {
	info, ok := a.scopes.Lookup(n.Name)
	if !ok {
		return typesystem.Invalid, diagnostics.NewError(diagnostics.ErrUndeclaredVariable, n.Token,
			"Variable '%s' is not declared.", n.Name)
	}
	if !info.Initialized {
		return typesystem.Invalid, diagnostics.NewError(diagnostics.ErrUninitializedVariable, n.Token,
			"Variable '%s' is used before being assigned.", n.Name)
	}
	return info.Type, nil
}

func (a *Analyzer) inferBinaryOp(n *ast.BinaryOp) (typesystem.Type, *diagnostics.DiagnosticError) {
	left, err := a.inferValue(n.Left)
	if err != nil {
		return typesystem.Invalid, err
	}
	right, err := a.inferValue(n.Right)
	if err != nil {
		return typesystem.Invalid, err
	}
	if left != right {
		return typesystem.Invalid, diagnostics.NewError(diagnostics.ErrTypeMismatch, n.Token,
			"Type mismatch in expression. Left type '%s' does not match right type '%s'.", left, right)
	}

	switch {
	case ast.IsArithmetic(n.Operator):
		if !left.IsNumeric() {
			return typesystem.Invalid, diagnostics.NewError(diagnostics.ErrInvalidOperandType, n.Token,
				"Math operations require numeric operands, got '%s'.", left)
		}
		return left, nil
	case ast.IsOrdering(n.Operator):
		if !left.IsNumeric() {
			return typesystem.Invalid, diagnostics.NewError(diagnostics.ErrInvalidOperandType, n.Token,
				"Relational operator '%s' requires numeric operands, got '%s'.", n.Operator, left)
		}
		return typesystem.Boolean, nil
	case ast.IsEquality(n.Operator):
		return typesystem.Boolean, nil
	}
	return typesystem.Invalid, diagnostics.NewError(diagnostics.ErrInvalidOperandType, n.Token,
		"Invalid operand types for operator '%s'.", n.Operator)
}

func (a *Analyzer) inferCall(n *ast.Call) (typesystem.Type, *diagnostics.DiagnosticError) {
	info, ok := a.funcs.Lookup(n.Name)
	if !ok {
		return typesystem.Invalid, diagnostics.NewError(diagnostics.ErrUndeclaredFunction, n.NameToken,
			"Function '%s' is not defined.", n.Name)
	}
	sig := info.Signature
	if len(n.Args) != len(sig.Params) {
		return typesystem.Invalid, diagnostics.NewError(diagnostics.ErrArityMismatch, n.NameToken,
			"Function '%s' expects %d argument(s), got %d.", n.Name, len(sig.Params), len(n.Args))
	}
	for i, arg := range n.Args {
		argType, err := a.inferValue(arg)
		if err != nil {
			return typesystem.Invalid, err
		}
		if !sig.Params[i].Accepts(argType) {
			return typesystem.Invalid, diagnostics.NewError(diagnostics.ErrArgTypeMismatch, arg.GetToken(),
				"Argument %d of '%s' must be of type '%s', but got '%s'.", i+1, n.Name, sig.Params[i], argType)
		}
	}
	return sig.ReturnType, nil
}
