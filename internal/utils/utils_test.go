package utils

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/funvibe/jott/internal/config"
	"github.com/funvibe/jott/internal/diagnostics"
	"github.com/funvibe/jott/internal/token"
)

func TestIsSourceFile(t *testing.T) {
	require.True(t, IsSourceFile("prog.jott"))
	require.True(t, IsSourceFile("dir/prog.jott"))
	require.False(t, IsSourceFile("prog.txt"))
	require.False(t, IsSourceFile("jott"))
}

func TestDisplayPath(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.Equal(t, filepath.Join("a", "b.jott"), DisplayPath(filepath.Join(wd, "a", "b.jott")))
	require.Equal(t, "rel.jott", DisplayPath("rel.jott"))

	outside := filepath.Join(filepath.Dir(wd), "elsewhere.jott")
	require.Equal(t, outside, DisplayPath(outside))
}

func TestColorEnabled(t *testing.T) {
	var buf bytes.Buffer
	require.True(t, ColorEnabled(config.ColorAlways, &buf))
	require.False(t, ColorEnabled(config.ColorNever, &buf))
	require.False(t, ColorEnabled(config.ColorAuto, &buf), "buffers are never terminals")

	t.Setenv("NO_COLOR", "1")
	require.False(t, ColorEnabled(config.ColorAuto, os.Stderr))
}

func TestPaint(t *testing.T) {
	require.Equal(t, "\033[1m\033[31mx\033[0m", Red("x"))
	require.Equal(t, "\033[2mx\033[0m", Dim("x"))
	require.Equal(t, "\033[1mx\033[0m", Bold("x"))
}

func TestFormatDiagnostic(t *testing.T) {
	err := diagnostics.NewError(diagnostics.ErrDivisionByZero,
		token.Token{Line: 3, File: "p.jott"}, "Division by zero")
	require.Equal(t, "Runtime Error\nDivision by zero\np.jott:3", FormatDiagnostic(err, false))
	require.Equal(t, Red("Runtime Error")+"\nDivision by zero\n"+Dim("p.jott:3"), FormatDiagnostic(err, true))

	noPos := diagnostics.NewError(diagnostics.ErrMissingMain, token.Token{}, "Missing main function")
	require.Equal(t, Red("Semantic Error")+"\nMissing main function", FormatDiagnostic(noPos, true))
}
