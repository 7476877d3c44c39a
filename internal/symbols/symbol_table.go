// Package symbols holds the validation-time scope table and function
// registry. Both are plain values owned by a single analyzer run.
package symbols

import (
	"errors"

	"github.com/funvibe/jott/internal/typesystem"
)

// ErrInvalidScopeOp is returned when a caller tries to pop the global scope.
// Reaching it means the analyzer's push/pop pairing is broken.
var ErrInvalidScopeOp = errors.New("invalid scope operation: cannot exit the global scope")

type ScopeType int

const (
	ScopeGlobal ScopeType = iota // bottom frame, never popped
	ScopeFunction
	ScopeBlock
)

// VariableInfo is what validation knows about a variable: its declared
// type and whether it has definitely been assigned.
type VariableInfo struct {
	Name        string
	Type        typesystem.Type
	Initialized bool
}

type scope struct {
	kind ScopeType
	vars map[string]*VariableInfo
}

// ScopeTable is a stack of lexical scopes.
type ScopeTable struct {
	scopes []*scope
}

func NewScopeTable() *ScopeTable {
	return &ScopeTable{scopes: []*scope{newScope(ScopeGlobal)}}
}

func newScope(kind ScopeType) *scope {
	return &scope{kind: kind, vars: make(map[string]*VariableInfo)}
}

// EnterScope pushes an empty frame of the given kind.
func (st *ScopeTable) EnterScope(kind ScopeType) {
	st.scopes = append(st.scopes, newScope(kind))
}

func (st *ScopeTable) ExitScope() error {
	if len(st.scopes) <= 1 {
		return ErrInvalidScopeOp
	}
	st.scopes[len(st.scopes)-1] = nil
	st.scopes = st.scopes[:len(st.scopes)-1]
	return nil
}

// Depth is the number of frames including the global one.
func (st *ScopeTable) Depth() int {
	return len(st.scopes)
}

// CurrentKind returns the kind of the innermost frame.
func (st *ScopeTable) CurrentKind() ScopeType {
	return st.scopes[len(st.scopes)-1].kind
}

// Declare adds name to the innermost frame. It returns false if the name
// is already declared in that same frame; shadowing outer frames is fine.
func (st *ScopeTable) Declare(name string, t typesystem.Type) bool {
	return st.declare(name, t, false)
}

// DeclareInitialized is Declare for bindings that arrive with a value,
// such as function parameters.
func (st *ScopeTable) DeclareInitialized(name string, t typesystem.Type) bool {
	return st.declare(name, t, true)
}

func (st *ScopeTable) declare(name string, t typesystem.Type, initialized bool) bool {
	current := st.scopes[len(st.scopes)-1]
	if _, exists := current.vars[name]; exists {
		return false
	}
	current.vars[name] = &VariableInfo{Name: name, Type: t, Initialized: initialized}
	return true
}

// Lookup searches from the innermost frame outward.
func (st *ScopeTable) Lookup(name string) (*VariableInfo, bool) {
	for i := len(st.scopes) - 1; i >= 0; i-- {
		if info, ok := st.scopes[i].vars[name]; ok {
			return info, true
		}
	}
	return nil, false
}

// Unassigned returns every binding, in any frame, that has not been
// definitely assigned yet.
func (st *ScopeTable) Unassigned() []*VariableInfo {
	var out []*VariableInfo
	for _, sc := range st.scopes {
		for _, info := range sc.vars {
			if !info.Initialized {
				out = append(out, info)
			}
		}
	}
	return out
}

// MarkInitialized sets the flag on the nearest binding of name.
func (st *ScopeTable) MarkInitialized(name string) bool {
	info, ok := st.Lookup(name)
	if !ok {
		return false
	}
	info.Initialized = true
	return true
}
