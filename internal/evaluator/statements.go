package evaluator

import (
	"github.com/funvibe/jott/internal/ast"
	"github.com/funvibe/jott/internal/symbols"
	"github.com/funvibe/jott/internal/typesystem"
)

// execBody runs statements in order and stops at the first one that
// completes with a return.
func (e *Evaluator) execBody(body *ast.Body) (Completion, error) {
	for _, stmt := range body.Statements {
		c, err := e.execStatement(stmt)
		if err != nil || c.Returned {
			return c, err
		}
	}
	return normalCompletion, nil
}

// execBlock runs a nested If/While body in its own block frame.
func (e *Evaluator) execBlock(body *ast.Body) (Completion, error) {
	e.env.EnterScope(symbols.ScopeBlock)
	defer e.exitScope()
	return e.execBody(body)
}

func (e *Evaluator) execStatement(stmt ast.Statement) (Completion, error) {
	switch n := stmt.(type) {
	case *ast.VarDecl:
		t, _ := typesystem.Parse(n.TypeName)
		e.env.Declare(n.Name, t, nil)
		return normalCompletion, nil

	case *ast.Assignment:
		val, err := e.Eval(n.Value)
		if err != nil {
			return normalCompletion, err
		}
		if err := e.env.Set(n.Name, val); err != nil {
			return normalCompletion, internalError(n.Token, err)
		}
		return normalCompletion, nil

	case *ast.IfStatement:
		return e.execIf(n)

	case *ast.WhileStatement:
		for {
			ok, err := e.evalCondition(n.Condition)
			if err != nil || !ok {
				return normalCompletion, err
			}
			c, err := e.execBlock(n.Body)
			if err != nil || c.Returned {
				return c, err
			}
		}

	case *ast.ExpressionStatement:
		_, err := e.evalCall(n.Call)
		return normalCompletion, err

	case *ast.ReturnStatement:
		if n.Value == nil {
			return Completion{Returned: true}, nil
		}
		val, err := e.Eval(n.Value)
		if err != nil {
			return normalCompletion, err
		}
		return Completion{Returned: true, Value: val}, nil
	}
	return normalCompletion, internalError(stmt.GetToken(), errUnsupportedNode(stmt))
}

// execIf runs the first branch whose condition holds, in source order.
func (e *Evaluator) execIf(n *ast.IfStatement) (Completion, error) {
	ok, err := e.evalCondition(n.Condition)
	if err != nil {
		return normalCompletion, err
	}
	if ok {
		return e.execBlock(n.Then)
	}
	for _, elif := range n.ElseIfs {
		ok, err := e.evalCondition(elif.Condition)
		if err != nil {
			return normalCompletion, err
		}
		if ok {
			return e.execBlock(elif.Body)
		}
	}
	if n.Else != nil {
		return e.execBlock(n.Else)
	}
	return normalCompletion, nil
}

func (e *Evaluator) evalCondition(cond ast.Expression) (bool, error) {
	val, err := e.Eval(cond)
	if err != nil {
		return false, err
	}
	b, ok := val.(*Boolean)
	if !ok {
		return false, internalError(cond.GetToken(), errUnexpectedValue("Boolean", val))
	}
	return b.Value, nil
}
