// Package commands provides the LSL command dispatcher and its handlers.
// Each canonical command except model creation maps to exactly one Handler;
// handlers validate their model context, resolve the packages they depend on
// and return a status message.
package commands

import (
	"context"
	"fmt"
	"sort"

	"github.com/charmbracelet/log"

	lslcontext "learnscript/internal/context"
	"learnscript/internal/logger"
	"learnscript/internal/parser"
	"learnscript/pkg/lsltypes"
)

// Handler executes one canonical command.
type Handler interface {
	// Name returns the canonical command the handler serves.
	Name() lsltypes.Command
	// Description returns a one-line summary.
	Description() string
	// Usage returns the LSL syntax using the short verb where one exists.
	Usage() string
	// Execute runs the command against ec and returns a status message.
	Execute(ctx context.Context, ec *lslcontext.ExecutionContext, line *parser.Line) (string, error)
}

// Dispatcher routes parsed lines to handlers by exact command name.
type Dispatcher struct {
	handlers map[lsltypes.Command]Handler
	logger   *log.Logger
}

// NewDispatcher creates a dispatcher with no handlers.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		handlers: make(map[lsltypes.Command]Handler),
		logger:   logger.NewStyledLogger("Dispatcher"),
	}
}

// NewDefaultDispatcher creates a dispatcher with every built-in handler.
func NewDefaultDispatcher() *Dispatcher {
	d := NewDispatcher()
	if err := RegisterBuiltins(d); err != nil {
		panic(fmt.Sprintf("failed to register built-in commands: %v", err))
	}
	return d
}

// Register adds a handler. Returns an error if the handler's command is not
// canonical or already registered.
func (d *Dispatcher) Register(h Handler) error {
	name := h.Name()
	if _, ok := lsltypes.ParseCommand(string(name)); !ok {
		return fmt.Errorf("command %q is not a canonical command", name)
	}
	if name == lsltypes.CommandModel {
		return fmt.Errorf("command %s is handled by the script runner", name)
	}
	if _, exists := d.handlers[name]; exists {
		return fmt.Errorf("command %s already registered", name)
	}

	d.handlers[name] = h
	return nil
}

// Get retrieves the handler for name.
func (d *Dispatcher) Get(name lsltypes.Command) (Handler, bool) {
	h, ok := d.handlers[name]
	return h, ok
}

// Handlers returns all registered handlers sorted by command name.
func (d *Dispatcher) Handlers() []Handler {
	out := make([]Handler, 0, len(d.handlers))
	for _, h := range d.handlers {
		out = append(out, h)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}

// Dispatch executes line with the handler registered for its command.
func (d *Dispatcher) Dispatch(ctx context.Context, ec *lslcontext.ExecutionContext, line *parser.Line) (string, error) {
	if !line.Known {
		return "", fmt.Errorf("unknown command: %s", line.Token)
	}

	h, ok := d.handlers[line.Command]
	if !ok {
		return "", fmt.Errorf("no handler for command: %s", line.Command)
	}

	d.logger.Debug("Dispatching", "command", line.Command, "params", len(line.Params))
	return h.Execute(ctx, ec, line)
}
