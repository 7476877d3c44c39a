package analyzer

import (
	"github.com/funvibe/jott/internal/ast"
)

// ReturnMode tells analyzeBody whether the body is the function's own
// body, which must prove a return, or a nested If/While body.
type ReturnMode int

const (
	Terminal ReturnMode = iota
	NonTerminal
)

func (m ReturnMode) String() string {
	if m == Terminal {
		return "Terminal"
	}
	return "NonTerminal"
}

// guaranteesReturn reports whether every path through body ends in a
// Return with a value. Return types are checked where each Return is
// validated, so only the shape matters here:
//
//  1. the body ends in "Return expr;", or
//  2. the body ends in an If whose then, every Elseif and an Else branch
//     each satisfy 1 or 2.
func guaranteesReturn(body *ast.Body) bool {
	return endsInReturn(body, true)
}

// alwaysExits is guaranteesReturn without the value requirement: no path
// through body falls through to the statement after it.
func alwaysExits(body *ast.Body) bool {
	return endsInReturn(body, false)
}

func endsInReturn(body *ast.Body, needValue bool) bool {
	switch last := body.Last().(type) {
	case *ast.ReturnStatement:
		return last.Value != nil || !needValue
	case *ast.IfStatement:
		if last.Else == nil {
			return false
		}
		if !endsInReturn(last.Then, needValue) {
			return false
		}
		for _, elif := range last.ElseIfs {
			if !endsInReturn(elif.Body, needValue) {
				return false
			}
		}
		return endsInReturn(last.Else, needValue)
	}
	return false
}
