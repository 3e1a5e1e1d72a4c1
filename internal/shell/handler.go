// Package shell provides the interactive LSL shell. A Session keeps one
// execution context alive across inputs so models and loaded packages
// persist between lines, and integrates with ishell for line editing.
package shell

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/abiosoft/ishell/v2"

	lslcontext "learnscript/internal/context"
	"learnscript/internal/logger"
	"learnscript/internal/orchestration"
	"learnscript/internal/output"
	"learnscript/internal/parser"
	"learnscript/pkg/lsltypes"
)

// Prompt is shown before every input line.
const Prompt = "lsl> "

// ReplNote describes how the interactive shell treats input differently from
// a script file.
const ReplNote = `Note: input is split on whitespace before it runs, so "my  model" becomes "my model",
and a stray ' makes the shell reject the line. Use lsl run for exact text.`

// Session is the state of one interactive shell.
type Session struct {
	runner  *orchestration.Runner
	printer *output.Printer
	ec      *lslcontext.ExecutionContext
	lineNo  int
}

// NewSession creates a session with a fresh execution context.
func NewSession(runner *orchestration.Runner, printer *output.Printer) *Session {
	return &Session{
		runner:  runner,
		printer: printer,
		ec:      runner.NewContext(),
	}
}

// Context returns the session's execution context.
func (s *Session) Context() *lslcontext.ExecutionContext {
	return s.ec
}

// Execute runs one input line, records its entry and prints it. ok is false
// for input that produces no entry.
func (s *Session) Execute(ctx context.Context, input string) (entry lsltypes.ResultEntry, ok bool) {
	s.lineNo++
	entry, ok = s.runner.ExecuteLine(ctx, s.ec, s.lineNo, input)
	if !ok {
		return entry, false
	}
	s.ec.Results().Append(entry)
	s.printer.PrintEntry(entry)
	return entry, true
}

// Reset discards all models, packages and results.
func (s *Session) Reset() {
	s.ec = s.runner.NewContext()
	s.lineNo = 0
	logger.Debug("Session reset", "run", s.ec.RunID())
}

// ProcessInput is the ishell fallback handler for LSL lines. ishell hands
// over the input already split on whitespace, so runs of spaces inside a
// quoted name collapse to one, and it rejects a line with an unbalanced
// single quote before the session sees it. Scripts run with `lsl run` keep
// their lines byte for byte.
func (s *Session) ProcessInput(c *ishell.Context) {
	if len(c.RawArgs) == 0 {
		return
	}
	s.Execute(context.Background(), strings.Join(c.RawArgs, " "))
}

// HelpText lists every command with its short verb and usage.
func (s *Session) HelpText() string {
	verbs := make(map[lsltypes.Command]string)
	for _, a := range parser.Aliases() {
		verbs[a.Command] = a.Keyword
	}

	var b strings.Builder
	b.WriteString("Commands:\n")
	fmt.Fprintf(&b, "  %-22s %-10s %s\n", lsltypes.CommandModel, verbs[lsltypes.CommandModel], `Create a model: new model "<name>"`)
	for _, h := range s.runner.Dispatcher().Handlers() {
		fmt.Fprintf(&b, "  %-22s %-10s %s\n", h.Name(), verbs[h.Name()], h.Description())
	}
	fmt.Fprintf(&b, "  %-22s %-10s %s\n", lsltypes.PackageDirective, "", "Load a package: package.add <name>")
	b.WriteString("\nShell commands: help [command], models, packages, results, reset, exit")
	b.WriteString("\n\n" + ReplNote)
	return b.String()
}

// UsageText returns the usage of one command, looked up by canonical name
// or short verb.
func (s *Session) UsageText(name string) (string, bool) {
	cmd, ok := lsltypes.ParseCommand(parser.Normalize(strings.TrimSpace(name)))
	if !ok {
		return "", false
	}
	h, ok := s.runner.Dispatcher().Get(cmd)
	if !ok {
		return "", false
	}
	return fmt.Sprintf("%s - %s\n\n%s", h.Name(), h.Description(), h.Usage()), true
}

// ModelsText describes every model in the session.
func (s *Session) ModelsText() string {
	names := s.ec.Models().Names()
	if len(names) == 0 {
		return "No models."
	}

	current := s.ec.CurrentModel()
	lines := make([]string, 0, len(names))
	for _, name := range names {
		m, _ := s.ec.Models().Get(name)
		marker := " "
		if m == current {
			marker = "*"
		}
		lines = append(lines, fmt.Sprintf("%s %s (%d layers)", marker, name, m.LayerCount()))
	}
	return strings.Join(lines, "\n")
}

// PackagesText lists loaded packages.
func (s *Session) PackagesText() string {
	loaded := s.ec.Packages().LoadedNames()
	if len(loaded) == 0 {
		return "No packages loaded."
	}
	return "Loaded: " + strings.Join(loaded, ", ")
}

// Commands returns the shell's built-in commands.
func (s *Session) Commands() []*ishell.Cmd {
	cmds := []*ishell.Cmd{
		{
			Name: "help",
			Help: "list LSL commands, or show one command's usage",
			Func: func(c *ishell.Context) {
				if len(c.Args) > 0 {
					if usage, ok := s.UsageText(c.Args[0]); ok {
						s.printer.Println(usage)
						return
					}
					s.printer.Warning("Unknown command: " + c.Args[0])
					return
				}
				s.printer.Println(s.HelpText())
			},
		},
		{
			Name: "models",
			Help: "list models; * marks the current one",
			Func: func(_ *ishell.Context) { s.printer.Println(s.ModelsText()) },
		},
		{
			Name: "packages",
			Help: "list loaded packages",
			Func: func(_ *ishell.Context) { s.printer.Println(s.PackagesText()) },
		},
		{
			Name: "results",
			Help: "print every result of this session",
			Func: func(_ *ishell.Context) {
				if err := s.printer.PrintResults(s.ec.Results().Entries()); err != nil {
					s.printer.Error(err.Error())
				}
			},
		},
		{
			Name: "reset",
			Help: "discard all models, packages and results",
			Func: func(_ *ishell.Context) {
				s.Reset()
				s.printer.Success("Session reset.")
			},
		},
	}
	sort.Slice(cmds, func(i, j int) bool { return cmds[i].Name < cmds[j].Name })
	return cmds
}

// Install wires the session into sh.
func (s *Session) Install(sh *ishell.Shell) {
	sh.SetPrompt(Prompt)
	sh.DeleteCmd("help")
	for _, cmd := range s.Commands() {
		sh.AddCmd(cmd)
	}
	sh.NotFound(s.ProcessInput)
	sh.CustomCompleter(NewCompleter(s.runner.Dispatcher(), s.runner.Registry()))
}
