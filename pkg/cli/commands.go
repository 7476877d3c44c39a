package cli

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/funvibe/jott/internal/analyzer"
	"github.com/funvibe/jott/internal/backend"
	"github.com/funvibe/jott/internal/config"
	"github.com/funvibe/jott/internal/history"
	"github.com/funvibe/jott/internal/lexer"
	"github.com/funvibe/jott/internal/logger"
	"github.com/funvibe/jott/internal/parser"
	"github.com/funvibe/jott/internal/pipeline"
	"github.com/funvibe/jott/internal/prettyprinter"
	"github.com/funvibe/jott/internal/repl"
	"github.com/funvibe/jott/internal/utils"
)

const replHistoryFile = ".jott_history"

// loadSource reads the single file argument of run, check and fmt.
func (a *app) loadSource(cmd string, args []string) (*pipeline.PipelineContext, bool) {
	if len(args) != 1 {
		fmt.Fprintf(a.stderr, "Usage: jott %s <file%s>\n", cmd, config.SourceFileExt)
		return nil, false
	}
	path := args[0]
	src, err := lexer.ReadSource(path)
	if err != nil {
		fmt.Fprintf(a.stderr, "Error: %s\n", err)
		return nil, false
	}
	ctx := pipeline.NewContext(src, utils.DisplayPath(path))
	ctx.RunID = history.NewRunID()
	ctx.Out = a.stdout
	ctx.MaxCallDepth = a.cfg.MaxCallDepth
	return ctx, true
}

// runFile validates, and with execute set also runs, one program.
func (a *app) runFile(args []string, execute bool) int {
	cmd := "check"
	if execute {
		cmd = "run"
	}
	ctx, ok := a.loadSource(cmd, args)
	if !ok {
		return exitFailure
	}

	processors := []pipeline.Processor{
		&lexer.LexerProcessor{},
		&parser.ParserProcessor{},
		&analyzer.SemanticAnalyzerProcessor{},
	}
	if execute {
		processors = append(processors, backend.NewExecutionProcessor(backend.NewTreeWalk()))
	}

	start := time.Now()
	ctx = pipeline.New(processors...).Run(ctx)
	elapsed := time.Since(start)

	logger.GetLogger().Info("run finished", "run", ctx.RunID, "file", ctx.FilePath,
		"command", cmd, "duration", elapsed, "failed", ctx.Failed())

	if ctx.Failed() {
		fmt.Fprintln(a.stderr, utils.FormatDiagnostic(ctx.Err(), a.color))
	}
	a.record(ctx, execute, start, elapsed)
	return ctx.ExitCode()
}

func (a *app) format(args []string) int {
	ctx, ok := a.loadSource("fmt", args)
	if !ok {
		return exitFailure
	}
	ctx = pipeline.New(&lexer.LexerProcessor{}, &parser.ParserProcessor{}).Run(ctx)
	if ctx.Failed() {
		fmt.Fprintln(a.stderr, utils.FormatDiagnostic(ctx.Err(), a.color))
		return ctx.ExitCode()
	}
	fmt.Fprint(a.stdout, prettyprinter.Print(ctx.AstRoot))
	return exitOK
}

func (a *app) repl() int {
	opts := repl.Options{MaxCallDepth: a.cfg.MaxCallDepth, Color: a.color}
	if home, err := os.UserHomeDir(); err == nil {
		opts.HistoryFile = filepath.Join(home, replHistoryFile)
	}
	if err := repl.Start(a.stdin, a.stdout, a.stderr, opts); err != nil {
		fmt.Fprintf(a.stderr, "Error: %s\n", err)
		return exitFailure
	}
	return exitOK
}

// record stores the outcome of a run when history is enabled. Failing to
// record never changes the exit code.
func (a *app) record(ctx *pipeline.PipelineContext, executed bool, start time.Time, elapsed time.Duration) {
	if !a.cfg.History.Enabled {
		return
	}
	store, err := history.Open(a.cfg.History.Path)
	if err != nil {
		slog.Warn("history unavailable", "path", a.cfg.History.Path, "error", err)
		return
	}
	defer store.Close()

	run := history.Run{
		ID:        ctx.RunID,
		File:      ctx.FilePath,
		StartedAt: start,
		Duration:  elapsed,
		Phase:     history.PhaseChecked,
		ExitCode:  ctx.ExitCode(),
	}
	if executed {
		run.Phase = history.PhaseExecuted
	}
	if err := ctx.Err(); err != nil {
		run.Phase = err.Phase.String()
		run.Message = err.Message
	}
	if err := store.Record(context.Background(), run); err != nil {
		slog.Warn("recording run failed", "run", run.ID, "error", err)
	}
}

func (a *app) history(args []string) int {
	fs := flag.NewFlagSet("history", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	limit := fs.Int("n", 20, "number of runs to list")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}

	if _, err := os.Stat(a.cfg.History.Path); os.IsNotExist(err) {
		fmt.Fprintln(a.stdout, "no runs recorded")
		return exitOK
	}
	store, err := history.Open(a.cfg.History.Path)
	if err != nil {
		fmt.Fprintf(a.stderr, "Error: %s\n", err)
		return exitFailure
	}
	defer store.Close()

	runs, err := store.Recent(context.Background(), *limit)
	if err != nil {
		fmt.Fprintf(a.stderr, "Error: %s\n", err)
		return exitFailure
	}
	if len(runs) == 0 {
		fmt.Fprintln(a.stdout, "no runs recorded")
		return exitOK
	}

	tw := tabwriter.NewWriter(a.stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "STARTED\tFILE\tPHASE\tEXIT\tDURATION\tMESSAGE")
	for _, r := range runs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\t%s\n",
			r.StartedAt.Format(time.DateTime), r.File, r.Phase, r.ExitCode, r.Duration, r.Message)
	}
	tw.Flush()
	return exitOK
}
