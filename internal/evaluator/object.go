package evaluator

import (
	"math"
	"strconv"
	"strings"

	"github.com/funvibe/jott/internal/typesystem"
)

type ObjectType string

const (
	INTEGER_OBJ = "INTEGER"
	DOUBLE_OBJ  = "DOUBLE"
	STRING_OBJ  = "STRING"
	BOOLEAN_OBJ = "BOOLEAN"
)

// Object is a runtime value. The set of implementations is closed: one per
// Jott value type.
type Object interface {
	Type() ObjectType
	Inspect() string
	RuntimeType() typesystem.Type
	object()
}

// Integer
type Integer struct {
	Value int64
}

func (i *Integer) Type() ObjectType             { return INTEGER_OBJ }
func (i *Integer) Inspect() string              { return strconv.FormatInt(i.Value, 10) }
func (i *Integer) RuntimeType() typesystem.Type { return typesystem.Integer }
func (i *Integer) object()                      {}

// Double
type Double struct {
	Value float64
}

func (d *Double) Type() ObjectType             { return DOUBLE_OBJ }
func (d *Double) Inspect() string              { return formatDouble(d.Value) }
func (d *Double) RuntimeType() typesystem.Type { return typesystem.Double }
func (d *Double) object()                      {}

// String
type String struct {
	Value string
}

func (s *String) Type() ObjectType             { return STRING_OBJ }
func (s *String) Inspect() string              { return s.Value }
func (s *String) RuntimeType() typesystem.Type { return typesystem.String }
func (s *String) object()                      {}

// Boolean
type Boolean struct {
	Value bool
}

func (b *Boolean) Type() ObjectType             { return BOOLEAN_OBJ }
func (b *Boolean) Inspect() string              { return strconv.FormatBool(b.Value) }
func (b *Boolean) RuntimeType() typesystem.Type { return typesystem.Boolean }
func (b *Boolean) object()                      {}

var (
	TRUE  = &Boolean{Value: true}
	FALSE = &Boolean{Value: false}
)

func nativeBoolToBooleanObject(v bool) *Boolean {
	if v {
		return TRUE
	}
	return FALSE
}

// formatDouble prints a Double the way Jott programs have always seen it:
// a fractional part is always shown (5.0), and magnitudes outside
// [1e-3, 1e7) use an exponent (1.0E10).
func formatDouble(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	}
	abs := math.Abs(v)
	if v == 0 || (abs >= 1e-3 && abs < 1e7) {
		s := strconv.FormatFloat(v, 'f', -1, 64)
		if !strings.Contains(s, ".") {
			s += ".0"
		}
		return s
	}
	// 'E' gives "1.5E+10"; reshape to "1.5E10".
	s := strconv.FormatFloat(v, 'E', -1, 64)
	mantissa, exp, _ := strings.Cut(s, "E")
	if !strings.Contains(mantissa, ".") {
		mantissa += ".0"
	}
	exp = strings.TrimPrefix(exp, "+")
	sign := ""
	if strings.HasPrefix(exp, "-") {
		sign, exp = "-", exp[1:]
	}
	exp = strings.TrimLeft(exp, "0")
	return mantissa + "E" + sign + exp
}

// objectsEqual compares two values of the same runtime type.
func objectsEqual(a, b Object) bool {
	switch l := a.(type) {
	case *Integer:
		r, ok := b.(*Integer)
		return ok && l.Value == r.Value
	case *Double:
		r, ok := b.(*Double)
		return ok && l.Value == r.Value
	case *String:
		r, ok := b.(*String)
		return ok && l.Value == r.Value
	case *Boolean:
		r, ok := b.(*Boolean)
		return ok && l.Value == r.Value
	}
	return false
}
