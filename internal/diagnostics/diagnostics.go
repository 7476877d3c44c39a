// Package diagnostics defines the single error type every stage of the
// toolchain reports through.
//
// A DiagnosticError prints in the fixed three-line format
//
//	Semantic Error
//	<message>
//	<file>:<line>
//
// where the first line names the phase and the last line is omitted when no
// source position is known.
package diagnostics

import (
	"fmt"
	"strings"

	"github.com/funvibe/jott/internal/token"
)

type ErrorCode string

type Phase int

const (
	PhaseSyntax Phase = iota
	PhaseSemantic
	PhaseRuntime
)

func (p Phase) String() string {
	switch p {
	case PhaseSyntax:
		return "Syntax Error"
	case PhaseSemantic:
		return "Semantic Error"
	case PhaseRuntime:
		return "Runtime Error"
	default:
		return "Error"
	}
}

// Syntax errors
const (
	ErrUnexpectedToken ErrorCode = "P001"
	ErrUnexpectedEOF   ErrorCode = "P002"
	ErrInvalidToken    ErrorCode = "P003"
)

// Semantic errors
const (
	ErrDuplicateFunction        ErrorCode = "A001"
	ErrMissingMain              ErrorCode = "A002"
	ErrInvalidMainSignature     ErrorCode = "A003"
	ErrUnknownType              ErrorCode = "A004"
	ErrDuplicateDeclaration     ErrorCode = "A005"
	ErrReservedIdentifier       ErrorCode = "A006"
	ErrUndeclaredVariable       ErrorCode = "A007"
	ErrUninitializedVariable    ErrorCode = "A008"
	ErrTypeMismatch             ErrorCode = "A009"
	ErrInvalidOperandType       ErrorCode = "A010"
	ErrUndeclaredFunction       ErrorCode = "A011"
	ErrArityMismatch            ErrorCode = "A012"
	ErrArgTypeMismatch          ErrorCode = "A013"
	ErrAssignmentTypeMismatch   ErrorCode = "A014"
	ErrNonBooleanCondition      ErrorCode = "A015"
	ErrMissingReturn            ErrorCode = "A016"
	ErrVoidFunctionReturnsValue ErrorCode = "A017"
	ErrReturnTypeMismatch       ErrorCode = "A018"
	ErrVoidInExpression         ErrorCode = "A019"
)

// Runtime errors
const (
	ErrDivisionByZero  ErrorCode = "R001"
	ErrUnknownFunction ErrorCode = "R002"
	ErrStackExhausted  ErrorCode = "R003"
	ErrInternal        ErrorCode = "R004"
)

// PhaseOf derives the phase from the code prefix.
func PhaseOf(code ErrorCode) Phase {
	switch {
	case strings.HasPrefix(string(code), "P"):
		return PhaseSyntax
	case strings.HasPrefix(string(code), "R"):
		return PhaseRuntime
	default:
		return PhaseSemantic
	}
}

type DiagnosticError struct {
	Code    ErrorCode
	Phase   Phase
	Message string
	Token   token.Token
	File    string
}

func NewError(code ErrorCode, tok token.Token, format string, args ...any) *DiagnosticError {
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	return &DiagnosticError{
		Code:    code,
		Phase:   PhaseOf(code),
		Message: msg,
		Token:   tok,
		File:    tok.File,
	}
}

// Position returns "<file>:<line>" or "" when the error carries no line.
func (e *DiagnosticError) Position() string {
	if e.Token.Line == 0 {
		return ""
	}
	file := e.Token.File
	if file == "" {
		file = e.File
	}
	return fmt.Sprintf("%s:%d", file, e.Token.Line)
}

func (e *DiagnosticError) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Phase.String())
	sb.WriteByte('\n')
	sb.WriteString(e.Message)
	if pos := e.Position(); pos != "" {
		sb.WriteByte('\n')
		sb.WriteString(pos)
	}
	return sb.String()
}
