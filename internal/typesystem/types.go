package typesystem

import (
	"strings"

	"github.com/funvibe/jott/internal/config"
)

// Type is the closed set of Jott types. Integer, Double, String and Boolean
// are the value types; Void only appears as a function return type and Any
// only as a built-in parameter type.
type Type int

const (
	Invalid Type = iota
	Integer
	Double
	String
	Boolean
	Void
	Any
)

var typeNames = [...]string{
	Invalid: "<invalid>",
	Integer: config.IntegerTypeName,
	Double:  config.DoubleTypeName,
	String:  config.StringTypeName,
	Boolean: config.BooleanTypeName,
	Void:    config.VoidTypeName,
	Any:     config.AnyTypeName,
}

func (t Type) String() string {
	if t < 0 || int(t) >= len(typeNames) {
		return typeNames[Invalid]
	}
	return typeNames[t]
}

// Primitives lists the value types in declaration order.
var Primitives = []Type{Integer, Double, String, Boolean}

// Parse resolves a type name as written in source. Any is not spellable.
func Parse(name string) (Type, bool) {
	switch name {
	case config.IntegerTypeName:
		return Integer, true
	case config.DoubleTypeName:
		return Double, true
	case config.StringTypeName:
		return String, true
	case config.BooleanTypeName:
		return Boolean, true
	case config.VoidTypeName:
		return Void, true
	}
	return Invalid, false
}

func (t Type) IsPrimitive() bool {
	return t == Integer || t == Double || t == String || t == Boolean
}

func (t Type) IsNumeric() bool {
	return t == Integer || t == Double
}

// Accepts reports whether a parameter of type t can receive an argument of
// type actual.
func (t Type) Accepts(actual Type) bool {
	if t == Any {
		return actual.IsPrimitive()
	}
	return t == actual
}

// TFunc is a function signature.
type TFunc struct {
	Params     []Type
	ReturnType Type
}

func (f TFunc) String() string {
	parts := make([]string, len(f.Params))
	for i, p := range f.Params {
		parts[i] = p.String()
	}
	return "[" + strings.Join(parts, ",") + "]:" + f.ReturnType.String()
}
