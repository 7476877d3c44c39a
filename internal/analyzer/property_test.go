package analyzer

import (
	"fmt"
	"strconv"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/funvibe/jott/internal/diagnostics"
	"github.com/funvibe/jott/internal/lexer"
	"github.com/funvibe/jott/internal/parser"
	"github.com/funvibe/jott/internal/prettyprinter"
)

// Statement fragments for generated bodies. The first nine are valid and
// never return; the rest each trigger a different semantic error.
var bodyFragments = []string{
	"Integer a$; a$ = 1;",
	"Double d$; d$ = 2.5 * 2.0;",
	`String s$; s$ = ::concat["x", "y"];`,
	"Boolean b$; b$ = 1 < 2;",
	"::print[42];",
	`::print[::length["abc"]];`,
	"If[True]{ ::print[1]; }",
	"If[False]{ ::print[1]; } Else{ ::print[2]; }",
	"While[False]{ ::print[0]; }",
	"Integer u$; ::print[u$];",
	"Integer m$; m$ = 1.5;",
	"::print[undefinedName];",
	"If[3]{ }",
	`::length[1, 2];`,
}

var returnTypes = []string{"Integer", "Double", "String", "Boolean"}

var returnValues = map[string]string{
	"Integer": "7",
	"Double":  "7.5",
	"String":  `"seven"`,
	"Boolean": "True",
}

// buildBody joins the picked fragments, one per line. '$' in a fragment is
// replaced by the fragment's position so repeated picks do not collide.
func buildBody(picks []int) string {
	var sb strings.Builder
	for i, p := range picks {
		sb.WriteString("    ")
		sb.WriteString(strings.ReplaceAll(bodyFragments[p], "$", strconv.Itoa(i)))
		sb.WriteString("\n")
	}
	return sb.String()
}

func analyzeText(src string) (*diagnostics.DiagnosticError, bool) {
	toks, err := lexer.New(src, "prop.jott").Tokenize()
	if err != nil {
		return nil, false
	}
	prog, err := parser.New(toks, "prop.jott").ParseProgram()
	if err != nil {
		return nil, false
	}
	return New().Analyze(prog), true
}

func newProperties() *gopter.Properties {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	return gopter.NewProperties(parameters)
}

func TestProperty_MainRequired(t *testing.T) {
	properties := newProperties()

	properties.Property("programs without main fail MissingMain", prop.ForAll(
		func(n int) bool {
			var sb strings.Builder
			for i := 0; i < n; i++ {
				fmt.Fprintf(&sb, "Def f%d[]:Void{}\n", i)
			}
			err, ok := analyzeText(sb.String())
			return ok && err != nil && err.Code == diagnostics.ErrMissingMain
		},
		gen.IntRange(0, 5),
	))

	properties.Property("main must be exactly main[]:Void", prop.ForAll(
		func(params int, ret int) bool {
			retName := append([]string{"Void"}, returnTypes...)[ret]
			var ps []string
			for i := 0; i < params; i++ {
				ps = append(ps, fmt.Sprintf("p%d:Integer", i))
			}
			body := ""
			if retName != "Void" {
				body = "Return " + returnValues[retName] + ";"
			}
			src := fmt.Sprintf("Def main[%s]:%s{ %s }", strings.Join(ps, ", "), retName, body)
			err, ok := analyzeText(src)
			if !ok {
				return false
			}
			if params == 0 && retName == "Void" {
				return err == nil
			}
			return err != nil && err.Code == diagnostics.ErrInvalidMainSignature
		},
		gen.IntRange(0, 2),
		gen.IntRange(0, 4),
	))

	properties.TestingRun(t)
}

func TestProperty_DefiniteReturn(t *testing.T) {
	properties := newProperties()

	valid := gen.IntRange(0, 8)

	properties.Property("non-Void bodies without a terminal return fail MissingReturn", prop.ForAll(
		func(picks []int, ret int) bool {
			typ := returnTypes[ret]
			src := fmt.Sprintf("Def f[]:%s{\n%s}\nDef main[]:Void{}", typ, buildBody(picks))
			err, ok := analyzeText(src)
			return ok && err != nil && err.Code == diagnostics.ErrMissingReturn
		},
		gen.SliceOfN(4, valid),
		gen.IntRange(0, 3),
	))

	properties.Property("an If without Else is never credited", prop.ForAll(
		func(picks []int, ret int) bool {
			typ := returnTypes[ret]
			src := fmt.Sprintf("Def f[c:Boolean]:%s{\n%s    If[c]{ Return %s; }\n}\nDef main[]:Void{}",
				typ, buildBody(picks), returnValues[typ])
			err, ok := analyzeText(src)
			return ok && err != nil && err.Code == diagnostics.ErrMissingReturn
		},
		gen.SliceOfN(3, valid),
		gen.IntRange(0, 3),
	))

	properties.Property("a trailing return of the declared type satisfies the function", prop.ForAll(
		func(picks []int, ret int) bool {
			typ := returnTypes[ret]
			src := fmt.Sprintf("Def f[]:%s{\n%s    Return %s;\n}\nDef main[]:Void{}", typ, buildBody(picks), returnValues[typ])
			err, ok := analyzeText(src)
			return ok && err == nil
		},
		gen.SliceOfN(4, valid),
		gen.IntRange(0, 3),
	))

	properties.TestingRun(t)
}

func TestProperty_RoundTrip(t *testing.T) {
	properties := newProperties()

	properties.Property("printing and re-parsing keeps the validation result", prop.ForAll(
		func(picks []int, ret int, withReturn bool) bool {
			typ := append([]string{"Void"}, returnTypes...)[ret]
			tail := ""
			if withReturn && typ != "Void" {
				tail = "    Return " + returnValues[typ] + ";\n"
			}
			src := fmt.Sprintf("Def f[]:%s{\n%s%s}\nDef main[]:Void{\n%s}", typ, buildBody(picks), tail, buildBody(picks))

			toks, lexErr := lexer.New(src, "prop.jott").Tokenize()
			if lexErr != nil {
				return false
			}
			prog, parseErr := parser.New(toks, "prop.jott").ParseProgram()
			if parseErr != nil {
				return false
			}
			first := New().Analyze(prog)

			printed := prettyprinter.Print(prog)
			second, ok := analyzeText(printed)
			if !ok {
				return false
			}
			if (first == nil) != (second == nil) {
				return false
			}
			if first == nil {
				return true
			}
			return first.Code == second.Code && first.Message == second.Message
		},
		gen.SliceOfN(5, gen.IntRange(0, len(bodyFragments)-1)),
		gen.IntRange(0, 4),
		gen.Bool(),
	))

	properties.TestingRun(t)
}
