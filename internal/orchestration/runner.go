// Package orchestration runs LSL scripts. A Runner walks a script line by
// line, handles package directives and model creation itself, and hands every
// other recognized command to the dispatcher. Each acted-upon line produces
// exactly one result entry.
package orchestration

import (
	"context"
	"fmt"
	"os"
	"strings"
	"unicode"

	"github.com/charmbracelet/log"

	"learnscript/internal/commands"
	lslcontext "learnscript/internal/context"
	"learnscript/internal/logger"
	"learnscript/internal/packages"
	"learnscript/internal/parser"
	"learnscript/pkg/lsltypes"
)

// CommentPrefix marks a line the runner skips without producing an entry.
const CommentPrefix = "#"

// Options configures a Runner.
type Options struct {
	// Registry is the package table. Defaults to the embedded registry.
	Registry *packages.Registry

	// Fetcher obtains package bundles. Defaults to a StaticFetcher.
	Fetcher packages.Fetcher

	// Dispatcher routes commands to handlers. Defaults to every built-in.
	Dispatcher *commands.Dispatcher

	// DuplicateModels controls same-name model creation.
	DuplicateModels lslcontext.DuplicatePolicy

	// TestMode makes model IDs and timestamps deterministic.
	TestMode bool

	// AbortOnError stops the run at the first error entry.
	AbortOnError bool

	// SilentUnknown drops unrecognized lines instead of recording them as
	// ignored.
	SilentUnknown bool
}

// LineError is returned by Run when AbortOnError stops a script.
type LineError struct {
	Line   int
	Source string
	Err    error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}

// Runner executes scripts. A Runner holds no per-run state and may be reused;
// every Run gets a fresh ExecutionContext.
type Runner struct {
	opts       Options
	dispatcher *commands.Dispatcher
	logger     *log.Logger
}

// NewRunner creates a runner.
func NewRunner(opts Options) *Runner {
	if opts.Registry == nil {
		opts.Registry = packages.DefaultRegistry()
	}
	if opts.Fetcher == nil {
		opts.Fetcher = packages.NewStaticFetcher(opts.Registry)
	}
	d := opts.Dispatcher
	if d == nil {
		d = commands.NewDefaultDispatcher()
	}
	return &Runner{
		opts:       opts,
		dispatcher: d,
		logger:     logger.NewStyledLogger("Runner"),
	}
}

// Dispatcher returns the dispatcher commands are routed through.
func (r *Runner) Dispatcher() *commands.Dispatcher {
	return r.dispatcher
}

// Registry returns the package table runs resolve against.
func (r *Runner) Registry() *packages.Registry {
	return r.opts.Registry
}

// NewContext creates a fresh execution context configured like the runner.
func (r *Runner) NewContext() *lslcontext.ExecutionContext {
	return lslcontext.NewExecutionContext(lslcontext.Options{
		Registry:        r.opts.Registry,
		Fetcher:         r.opts.Fetcher,
		DuplicateModels: r.opts.DuplicateModels,
		TestMode:        r.opts.TestMode,
	})
}

// Run executes script in a fresh context and returns its result entries in
// line order. The error is non-nil only when ctx is cancelled or AbortOnError
// stops the run; the entries produced so far are returned either way.
func (r *Runner) Run(ctx context.Context, script string) ([]lsltypes.ResultEntry, error) {
	ec := r.NewContext()
	err := r.RunIn(ctx, ec, script)
	return ec.Results().Entries(), err
}

// RunIn executes script against an existing context, appending to its
// result log. The interactive shell uses it to keep state across inputs.
func (r *Runner) RunIn(ctx context.Context, ec *lslcontext.ExecutionContext, script string) error {
	r.logger.Debug("Starting script", "run", ec.RunID(), "bytes", len(script), "test_mode", ec.IsTestMode())

	for i, raw := range strings.Split(script, "\n") {
		if err := ctx.Err(); err != nil {
			return err
		}

		entry, ok, lineErr := r.executeLine(ctx, ec, i+1, raw)
		if !ok {
			continue
		}
		ec.Results().Append(entry)

		if lineErr != nil && r.opts.AbortOnError {
			return &LineError{Line: entry.Line, Source: entry.Source, Err: lineErr}
		}
	}

	r.logger.Debug("Script finished", "run", ec.RunID(), "entries", ec.Results().Len(), "errors", ec.Results().Errors())
	return nil
}

// ExecuteLine runs a single script line. ok is false for lines that produce
// no entry: blanks, comments, and unknown lines when SilentUnknown is set.
func (r *Runner) ExecuteLine(ctx context.Context, ec *lslcontext.ExecutionContext, lineNo int, raw string) (entry lsltypes.ResultEntry, ok bool) {
	entry, ok, _ = r.executeLine(ctx, ec, lineNo, raw)
	return entry, ok
}

// executeLine is ExecuteLine that also returns the error behind an error
// entry, so callers can classify it with errors.Is.
func (r *Runner) executeLine(ctx context.Context, ec *lslcontext.ExecutionContext, lineNo int, raw string) (lsltypes.ResultEntry, bool, error) {
	text := strings.TrimSpace(raw)
	if text == "" || strings.HasPrefix(text, CommentPrefix) {
		return lsltypes.ResultEntry{}, false, nil
	}

	entry := lsltypes.ResultEntry{Line: lineNo, Source: text}

	if token, rest := leadingToken(text); token == lsltypes.PackageDirective {
		msg, err := r.addPackage(ctx, ec, rest)
		return complete(entry, msg, err), true, err
	}

	line, err := parser.ParseLine(parser.Normalize(text))
	if err != nil {
		return complete(entry, "", err), true, err
	}

	if !line.Known {
		if r.opts.SilentUnknown {
			r.logger.Debug("Skipping unrecognized line", "line", lineNo, "token", line.Token)
			return lsltypes.ResultEntry{}, false, nil
		}
		entry.Status = lsltypes.StatusIgnored
		entry.Message = "Ignored: " + text
		return entry, true, nil
	}

	entry.Command = line.Command
	logger.LineExecution(lineNo, string(line.Command), text)

	if line.Command == lsltypes.CommandModel {
		msg, err := createModel(ec, line)
		return complete(entry, msg, err), true, err
	}

	msg, err := r.dispatcher.Dispatch(ctx, ec, line)
	return complete(entry, msg, err), true, err
}

// addPackage handles `package.add <name>`. A cache hit still reports the
// package as loaded.
func (r *Runner) addPackage(ctx context.Context, ec *lslcontext.ExecutionContext, rest string) (string, error) {
	name, _ := leadingToken(strings.TrimSpace(rest))
	name = strings.Trim(name, `"`)
	if name == "" {
		return "", fmt.Errorf("%w: %s requires a package name", lsltypes.ErrSyntax, lsltypes.PackageDirective)
	}

	if _, err := ec.Packages().Resolve(ctx, name); err != nil {
		return "", err
	}
	return fmt.Sprintf("Package %s loaded", name), nil
}

// createModel handles `model "<name>"`. Only the first quoted token names
// the model; bare words such as the "model" in `new model "x"` are ignored.
func createModel(ec *lslcontext.ExecutionContext, line *parser.Line) (string, error) {
	name := line.Name()
	if name == "" {
		return "", fmt.Errorf("%w: %s requires a quoted model name", lsltypes.ErrSyntax, line.Command)
	}

	model, replaced, err := ec.Models().Create(name)
	if err != nil {
		return "", err
	}
	if replaced {
		logger.Warn("Model replaced", "model", name)
	}
	return fmt.Sprintf("Model %s created", model.Name), nil
}

func complete(entry lsltypes.ResultEntry, msg string, err error) lsltypes.ResultEntry {
	if err != nil {
		entry.Status = lsltypes.StatusError
		entry.Message = "Error: " + err.Error()
		return entry
	}
	entry.Status = lsltypes.StatusOK
	entry.Message = msg
	return entry
}

func leadingToken(s string) (token, rest string) {
	idx := strings.IndexFunc(s, unicode.IsSpace)
	if idx < 0 {
		return s, ""
	}
	return s[:idx], s[idx:]
}

// ExecuteScript reads a script file and runs it with a new Runner.
func ExecuteScript(ctx context.Context, path string, opts Options) ([]lsltypes.ResultEntry, error) {
	logger.Debug("Starting script execution", "script", path)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read script: %w", err)
	}

	return NewRunner(opts).Run(ctx, string(data))
}
