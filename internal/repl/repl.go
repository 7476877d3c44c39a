// Package repl implements the interactive session: lines accumulate into a
// buffer of function definitions that is validated and run on demand.
package repl

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/peterh/liner"

	"github.com/funvibe/jott/internal/analyzer"
	"github.com/funvibe/jott/internal/backend"
	"github.com/funvibe/jott/internal/lexer"
	"github.com/funvibe/jott/internal/parser"
	"github.com/funvibe/jott/internal/pipeline"
	"github.com/funvibe/jott/internal/prettyprinter"
	"github.com/funvibe/jott/internal/utils"
)

const (
	prompt     = "jott> "
	promptCont = "....> "
	sourceName = "<repl>"
)

const helpText = `Enter function definitions line by line, then:
  :run     validate and execute the buffer
  :check   validate the buffer
  :show    print the buffer in canonical form
  :reset   clear the buffer
  :quit    leave the session`

type Options struct {
	MaxCallDepth int
	Color        bool
	// HistoryFile persists line history between interactive sessions.
	HistoryFile string
}

type Session struct {
	lines  []string
	out    io.Writer
	errOut io.Writer
	opts   Options
}

func NewSession(out, errOut io.Writer, opts Options) *Session {
	return &Session{out: out, errOut: errOut, opts: opts}
}

// Source returns the buffered program text.
func (s *Session) Source() string {
	return strings.Join(s.lines, "\n")
}

// Handle processes one input line and reports whether the session should end.
func (s *Session) Handle(line string) bool {
	trimmed := strings.TrimSpace(line)
	if !isCommand(trimmed) {
		if trimmed != "" {
			s.lines = append(s.lines, line)
		}
		return false
	}
	switch trimmed {
	case ":quit", ":q":
		return true
	case ":run":
		s.run(true)
	case ":check":
		s.run(false)
	case ":show":
		s.show()
	case ":reset":
		s.lines = nil
		fmt.Fprintln(s.out, "buffer cleared")
	case ":help":
		fmt.Fprintln(s.out, helpText)
	default:
		fmt.Fprintf(s.errOut, "unknown command %s. Type :help for a list.\n", trimmed)
	}
	return false
}

// isCommand reports a session command. A leading "::" is a call statement.
func isCommand(line string) bool {
	return strings.HasPrefix(line, ":") && !strings.HasPrefix(line, "::")
}

func (s *Session) newContext() *pipeline.PipelineContext {
	ctx := pipeline.NewContext(s.Source(), sourceName)
	ctx.Out = s.out
	ctx.MaxCallDepth = s.opts.MaxCallDepth
	return ctx
}

func (s *Session) run(execute bool) {
	processors := []pipeline.Processor{
		&lexer.LexerProcessor{},
		&parser.ParserProcessor{},
		&analyzer.SemanticAnalyzerProcessor{},
	}
	if execute {
		processors = append(processors, backend.NewExecutionProcessor(backend.NewTreeWalk()))
	}
	ctx := pipeline.New(processors...).Run(s.newContext())
	if ctx.Failed() {
		s.report(ctx)
		return
	}
	if !execute {
		fmt.Fprintln(s.out, "ok")
	}
}

func (s *Session) show() {
	ctx := pipeline.New(&lexer.LexerProcessor{}, &parser.ParserProcessor{}).Run(s.newContext())
	if ctx.Failed() {
		s.report(ctx)
		return
	}
	fmt.Fprint(s.out, prettyprinter.Print(ctx.AstRoot))
}

func (s *Session) report(ctx *pipeline.PipelineContext) {
	fmt.Fprintln(s.errOut, utils.FormatDiagnostic(ctx.Err(), s.opts.Color))
}

func (s *Session) prompt() string {
	if len(s.lines) == 0 {
		return prompt
	}
	return promptCont
}

// Start runs a session over in. A terminal gets line editing and history;
// anything else is read line by line without prompts.
func Start(in io.Reader, out, errOut io.Writer, opts Options) error {
	s := NewSession(out, errOut, opts)
	if utils.IsTerminal(in) && utils.IsTerminal(out) {
		return s.interactive()
	}
	return s.scan(in)
}

func (s *Session) scan(in io.Reader) error {
	sc := bufio.NewScanner(in)
	for sc.Scan() {
		if s.Handle(sc.Text()) {
			return nil
		}
	}
	return sc.Err()
}

func (s *Session) interactive() error {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if s.opts.HistoryFile != "" {
		if f, err := os.Open(s.opts.HistoryFile); err == nil {
			_, _ = ln.ReadHistory(f)
			f.Close()
		}
		defer s.saveHistory(ln)
	}

	banner := "Jott REPL. Type :help for commands."
	if s.opts.Color {
		banner = utils.Bold(banner)
	}
	fmt.Fprintln(s.out, banner)
	for {
		line, err := ln.Prompt(s.prompt())
		switch {
		case errors.Is(err, io.EOF):
			fmt.Fprintln(s.out)
			return nil
		case errors.Is(err, liner.ErrPromptAborted):
			s.lines = nil
			continue
		case err != nil:
			return fmt.Errorf("reading input: %w", err)
		}
		if strings.TrimSpace(line) != "" {
			ln.AppendHistory(line)
		}
		if s.Handle(line) {
			return nil
		}
	}
}

func (s *Session) saveHistory(ln *liner.State) {
	f, err := os.Create(s.opts.HistoryFile)
	if err != nil {
		slog.Warn("cannot write repl history", "path", s.opts.HistoryFile, "error", err)
		return
	}
	defer f.Close()
	if _, err := ln.WriteHistory(f); err != nil {
		slog.Warn("cannot write repl history", "path", s.opts.HistoryFile, "error", err)
	}
}
