package config

const SourceFileExt = ".jott"

// SourceFileExtensions are all recognized source file extensions
var SourceFileExtensions = []string{".jott"}

// Version is overridden at build time with -ldflags "-X ...config.Version=..."
var Version = "dev"

// Built-in function names
const (
	PrintFuncName  = "print"
	ConcatFuncName = "concat"
	LengthFuncName = "length"
	MainFuncName   = "main"
)

// Built-in type names
const (
	IntegerTypeName = "Integer"
	DoubleTypeName  = "Double"
	StringTypeName  = "String"
	BooleanTypeName = "Boolean"
	VoidTypeName    = "Void"
	AnyTypeName     = "Any"
)

// Keywords cannot be used as variable names.
var Keywords = map[string]bool{
	"Def":    true,
	"If":     true,
	"Elseif": true,
	"Else":   true,
	"While":  true,
	"Return": true,
	"True":   true,
	"False":  true,

	IntegerTypeName: true,
	DoubleTypeName:  true,
	StringTypeName:  true,
	BooleanTypeName: true,
	VoidTypeName:    true,
}

// DefaultMaxCallDepth bounds nested user function calls at runtime.
const DefaultMaxCallDepth = 10000

// MaxCallDepthLimit is the largest accepted call depth. Deeper recursion
// would exhaust the Go stack before the evaluator could report it.
const MaxCallDepthLimit = 100000

// Config file names searched for by FindConfig, in order.
var ConfigFileNames = []string{"jott.yaml", "jott.yml"}
