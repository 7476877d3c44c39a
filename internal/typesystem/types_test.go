package typesystem

import "testing"

func TestParse(t *testing.T) {
	for _, name := range []string{"Integer", "Double", "String", "Boolean", "Void"} {
		got, ok := Parse(name)
		if !ok || got.String() != name {
			t.Errorf("Parse(%q) = %v, %v", name, got, ok)
		}
	}
	for _, name := range []string{"Any", "integer", "Int", ""} {
		if _, ok := Parse(name); ok {
			t.Errorf("Parse(%q) should fail", name)
		}
	}
}

func TestAccepts(t *testing.T) {
	for _, p := range Primitives {
		if !Any.Accepts(p) {
			t.Errorf("Any should accept %s", p)
		}
		if !p.Accepts(p) {
			t.Errorf("%s should accept itself", p)
		}
	}
	if Any.Accepts(Void) {
		t.Error("Any must not accept Void")
	}
	if Double.Accepts(Integer) {
		t.Error("Double must not accept Integer")
	}
}

func TestTFuncString(t *testing.T) {
	sig := TFunc{Params: []Type{String, String}, ReturnType: String}
	if got := sig.String(); got != "[String,String]:String" {
		t.Errorf("got %q", got)
	}
	if got := (TFunc{ReturnType: Void}).String(); got != "[]:Void" {
		t.Errorf("got %q", got)
	}
}
