package output

import "io"

// Option configures a Printer.
type Option func(*Printer)

// WithStyles sets the style provider used in ModeStyled.
func WithStyles(provider StyleProvider) Option {
	return func(p *Printer) {
		if provider != nil {
			p.styleProvider = provider
		}
	}
}

// WithWriter sets the destination. Defaults to os.Stdout.
func WithWriter(writer io.Writer) Option {
	return func(p *Printer) {
		if writer != nil {
			p.writer = writer
		}
	}
}

// WithMode sets the rendering mode.
func WithMode(mode Mode) Option {
	return func(p *Printer) {
		p.mode = mode
	}
}

// WithMarkdownStyle sets the glamour style used in ModeMarkdown.
func WithMarkdownStyle(style string) Option {
	return func(p *Printer) {
		p.markdownStyle = style
	}
}

// TestMode forces deterministic plain output.
func TestMode() Option {
	return func(p *Printer) {
		p.mode = ModePlain
		p.styleProvider = NewPlainStyleProvider()
	}
}

// Silent suppresses all output. `lsl run --quiet` uses it when only the exit
// status matters.
func Silent() Option {
	return func(p *Printer) {
		p.silent = true
	}
}
