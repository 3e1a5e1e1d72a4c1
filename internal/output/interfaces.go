// Package output renders LSL result entries for terminals and files.
// Rendering is selected by Mode; styling goes through a StyleProvider so the
// printer itself never depends on a terminal library.
package output

import "fmt"

// StyleProvider supplies text styles by semantic name.
type StyleProvider interface {
	// GetStyle returns the style for a semantic type such as "success" or "error".
	GetStyle(semantic SemanticType) TextStyle

	// IsAvailable reports whether styles can be rendered on the current terminal.
	IsAvailable() bool
}

// TextStyle renders text. lipgloss.Style satisfies it.
type TextStyle interface {
	Render(strs ...string) string
}

// Mode selects how results are written.
type Mode string

const (
	// ModePlain writes one message per line.
	ModePlain Mode = "plain"

	// ModeStyled colours each message by status. It degrades to plain when
	// the terminal has no colour support.
	ModeStyled Mode = "styled"

	// ModeMarkdown renders the results as a markdown list through glamour.
	ModeMarkdown Mode = "markdown"

	// ModeJSON writes the entries as a JSON array.
	ModeJSON Mode = "json"
)

// Modes returns every supported mode.
func Modes() []Mode {
	return []Mode{ModePlain, ModeStyled, ModeMarkdown, ModeJSON}
}

// ParseMode validates a mode name. The empty string selects ModePlain.
func ParseMode(s string) (Mode, error) {
	if s == "" {
		return ModePlain, nil
	}
	for _, m := range Modes() {
		if string(m) == s {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown output mode %q (expected plain, styled, markdown or json)", s)
}

// SemanticType is the meaning of a piece of output, used to pick its style.
type SemanticType string

const (
	SemanticPlain   SemanticType = "plain"
	SemanticInfo    SemanticType = "info"
	SemanticSuccess SemanticType = "success"
	SemanticWarning SemanticType = "warning"
	SemanticError   SemanticType = "error"
)
