package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"learnscript/pkg/lsltypes"
)

// Printer writes result entries and status messages.
type Printer struct {
	styleProvider StyleProvider
	writer        io.Writer
	mode          Mode
	markdownStyle string
	silent        bool

	mu sync.Mutex
}

// NewPrinter creates a plain printer on os.Stdout, then applies options.
func NewPrinter(options ...Option) *Printer {
	p := &Printer{
		styleProvider: NewLipglossStyleProvider(),
		writer:        os.Stdout,
		mode:          ModePlain,
	}
	for _, opt := range options {
		opt(p)
	}
	return p
}

// Mode returns the printer's rendering mode.
func (p *Printer) Mode() Mode {
	return p.mode
}

// PrintResults writes entries in the printer's mode.
func (p *Printer) PrintResults(entries []lsltypes.ResultEntry) error {
	switch p.mode {
	case ModeJSON:
		data, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode results: %w", err)
		}
		p.write(string(data) + "\n")
		return nil

	case ModeMarkdown:
		r, err := NewMarkdownRenderer(p.markdownStyle)
		if err != nil {
			return err
		}
		out, err := r.Render(entries)
		if err != nil {
			return err
		}
		p.write(out)
		return nil
	}

	for _, e := range entries {
		p.PrintEntry(e)
	}
	return nil
}

// PrintEntry writes a single entry on its own line.
func (p *Printer) PrintEntry(e lsltypes.ResultEntry) {
	if p.mode == ModeJSON {
		data, err := json.Marshal(e)
		if err == nil {
			p.write(string(data) + "\n")
			return
		}
	}
	p.output(StatusSemantic(e.Status), e.Message, true)
}

// StatusSemantic maps a result status to the style it is rendered with.
func StatusSemantic(status lsltypes.ResultStatus) SemanticType {
	switch status {
	case lsltypes.StatusOK:
		return SemanticSuccess
	case lsltypes.StatusError:
		return SemanticError
	case lsltypes.StatusIgnored:
		return SemanticWarning
	}
	return SemanticPlain
}

// Println writes text and a newline.
func (p *Printer) Println(text string) {
	p.output(SemanticPlain, text, true)
}

// Info writes an informational line.
func (p *Printer) Info(text string) {
	p.output(SemanticInfo, text, true)
}

// Success writes a success line.
func (p *Printer) Success(text string) {
	p.output(SemanticSuccess, text, true)
}

// Warning writes a warning line.
func (p *Printer) Warning(text string) {
	p.output(SemanticWarning, text, true)
}

// Error writes an error line.
func (p *Printer) Error(text string) {
	p.output(SemanticError, text, true)
}

func (p *Printer) output(semantic SemanticType, text string, newline bool) {
	if p.mode == ModeStyled && p.IsStylable() {
		text = p.styleProvider.GetStyle(semantic).Render(text)
	}
	if newline && !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	p.write(text)
}

func (p *Printer) write(text string) {
	if p.silent {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	_, _ = fmt.Fprint(p.writer, text)
}

// SetMode changes the rendering mode.
func (p *Printer) SetMode(mode Mode) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.mode = mode
}

// IsStylable reports whether ModeStyled would actually apply styles.
func (p *Printer) IsStylable() bool {
	return p.styleProvider != nil && p.styleProvider.IsAvailable()
}

func (p *Printer) String() string {
	return fmt.Sprintf("Printer{mode: %s, stylable: %t, writer: %T}", p.mode, p.IsStylable(), p.writer)
}
