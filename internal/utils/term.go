package utils

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/funvibe/jott/internal/config"
	"github.com/funvibe/jott/internal/diagnostics"
)

const (
	ansiRed   = "\033[31m"
	ansiBold  = "\033[1m"
	ansiDim   = "\033[2m"
	ansiReset = "\033[0m"
)

// IsTerminal reports whether w is a terminal or a Cygwin pty.
func IsTerminal(w any) bool {
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// ColorEnabled resolves a color mode (auto, always, never) for w.
// Auto honours NO_COLOR and TERM=dumb and requires a terminal.
func ColorEnabled(mode string, w io.Writer) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	return IsTerminal(w)
}

func Red(s string) string { return ansiBold + ansiRed + s + ansiReset }
func Dim(s string) string { return ansiDim + s + ansiReset }
func Bold(s string) string { return ansiBold + s + ansiReset }

// FormatDiagnostic renders err in its three-line form, painting the phase
// line red and the position dim when color is set.
func FormatDiagnostic(err *diagnostics.DiagnosticError, color bool) string {
	if !color {
		return err.Error()
	}
	s := Red(err.Phase.String()) + "\n" + err.Message
	if pos := err.Position(); pos != "" {
		s += "\n" + Dim(pos)
	}
	return s
}
