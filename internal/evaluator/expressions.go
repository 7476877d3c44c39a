package evaluator

import (
	"fmt"

	"github.com/funvibe/jott/internal/ast"
	"github.com/funvibe/jott/internal/diagnostics"
)

func errUnsupportedNode(n ast.Node) error {
	return fmt.Errorf("unsupported node %T", n)
}

func errUnexpectedValue(want string, got Object) error {
	if got == nil {
		return fmt.Errorf("expected %s, got no value", want)
	}
	return fmt.Errorf("expected %s, got %s", want, got.Type())
}

// Eval evaluates an expression to a value.
func (e *Evaluator) Eval(expr ast.Expression) (Object, error) {
	switch n := expr.(type) {
	case *ast.IntLiteral:
		return &Integer{Value: n.Value}, nil
	case *ast.DoubleLiteral:
		return &Double{Value: n.Value}, nil
	case *ast.StringLiteral:
		return &String{Value: n.Value}, nil
	case *ast.BoolLiteral:
		return nativeBoolToBooleanObject(n.Value), nil
	case *ast.Identifier:
		val, ok := e.env.Get(n.Name)
		if !ok {
			return nil, internalError(n.Token, fmt.Errorf("%w: %s", ErrUnboundVariable, n.Name))
		}
		if val == nil {
			return nil, internalError(n.Token, fmt.Errorf("variable %s read before assignment", n.Name))
		}
		return val, nil
	case *ast.BinaryOp:
		return e.evalBinaryOp(n)
	case *ast.Call:
		val, err := e.evalCall(n)
		if err != nil {
			return nil, err
		}
		if val == nil {
			return nil, internalError(n.NameToken, fmt.Errorf("function %s returned no value", n.Name))
		}
		return val, nil
	}
	return nil, internalError(expr.GetToken(), errUnsupportedNode(expr))
}

// evalCall evaluates arguments left to right and calls the function. The
// result is nil for Void functions.
func (e *Evaluator) evalCall(n *ast.Call) (Object, error) {
	args := make([]Object, len(n.Args))
	for i, arg := range n.Args {
		val, err := e.Eval(arg)
		if err != nil {
			return nil, err
		}
		args[i] = val
	}
	return e.Call(n.Name, args, n.NameToken)
}

func (e *Evaluator) evalBinaryOp(n *ast.BinaryOp) (Object, error) {
	left, err := e.Eval(n.Left)
	if err != nil {
		return nil, err
	}
	right, err := e.Eval(n.Right)
	if err != nil {
		return nil, err
	}

	if ast.IsEquality(n.Operator) {
		if left.Type() != right.Type() {
			return nil, internalError(n.Token, fmt.Errorf("cannot compare %s and %s", left.Type(), right.Type()))
		}
		eq := objectsEqual(left, right)
		if n.Operator == ast.OpNeq {
			eq = !eq
		}
		return nativeBoolToBooleanObject(eq), nil
	}

	switch l := left.(type) {
	case *Integer:
		if r, ok := right.(*Integer); ok {
			return e.evalIntegerOp(n, l.Value, r.Value)
		}
	case *Double:
		if r, ok := right.(*Double); ok {
			return e.evalDoubleOp(n, l.Value, r.Value)
		}
	}
	return nil, internalError(n.Token, fmt.Errorf("operator %s not defined on %s and %s", n.Operator, left.Type(), right.Type()))
}

func divisionByZero(n *ast.BinaryOp) error {
	return diagnostics.NewError(diagnostics.ErrDivisionByZero, n.Token, "Division by zero")
}

// evalIntegerOp uses 64-bit two's complement arithmetic; division truncates
// toward zero.
func (e *Evaluator) evalIntegerOp(n *ast.BinaryOp, l, r int64) (Object, error) {
	switch n.Operator {
	case ast.OpAdd:
		return &Integer{Value: l + r}, nil
	case ast.OpSub:
		return &Integer{Value: l - r}, nil
	case ast.OpMul:
		return &Integer{Value: l * r}, nil
	case ast.OpDiv:
		if r == 0 {
			return nil, divisionByZero(n)
		}
		return &Integer{Value: l / r}, nil
	case ast.OpLt:
		return nativeBoolToBooleanObject(l < r), nil
	case ast.OpGt:
		return nativeBoolToBooleanObject(l > r), nil
	case ast.OpLte:
		return nativeBoolToBooleanObject(l <= r), nil
	case ast.OpGte:
		return nativeBoolToBooleanObject(l >= r), nil
	}
	return nil, internalError(n.Token, fmt.Errorf("unknown operator %s", n.Operator))
}

func (e *Evaluator) evalDoubleOp(n *ast.BinaryOp, l, r float64) (Object, error) {
	switch n.Operator {
	case ast.OpAdd:
		return &Double{Value: l + r}, nil
	case ast.OpSub:
		return &Double{Value: l - r}, nil
	case ast.OpMul:
		return &Double{Value: l * r}, nil
	case ast.OpDiv:
		if r == 0 {
			return nil, divisionByZero(n)
		}
		return &Double{Value: l / r}, nil
	case ast.OpLt:
		return nativeBoolToBooleanObject(l < r), nil
	case ast.OpGt:
		return nativeBoolToBooleanObject(l > r), nil
	case ast.OpLte:
		return nativeBoolToBooleanObject(l <= r), nil
	case ast.OpGte:
		return nativeBoolToBooleanObject(l >= r), nil
	}
	return nil, internalError(n.Token, fmt.Errorf("unknown operator %s", n.Operator))
}
