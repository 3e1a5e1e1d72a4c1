package output

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// LipglossStyleProvider colours output with lipgloss.
type LipglossStyleProvider struct {
	styles map[SemanticType]lipgloss.Style
}

// NewLipglossStyleProvider creates the default colour scheme.
func NewLipglossStyleProvider() *LipglossStyleProvider {
	return &LipglossStyleProvider{
		styles: map[SemanticType]lipgloss.Style{
			SemanticPlain:   lipgloss.NewStyle(),
			SemanticInfo:    lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
			SemanticSuccess: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
			SemanticWarning: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
			SemanticError:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		},
	}
}

// GetStyle returns the style for semantic, or an unstyled one.
func (p *LipglossStyleProvider) GetStyle(semantic SemanticType) TextStyle {
	if style, ok := p.styles[semantic]; ok {
		return style
	}
	return lipgloss.NewStyle()
}

// IsAvailable reports false when the terminal only supports plain ASCII.
func (p *LipglossStyleProvider) IsAvailable() bool {
	return lipgloss.ColorProfile() != termenv.Ascii
}

// plainStyle renders text with an optional marker prefix.
type plainStyle string

func (s plainStyle) Render(strs ...string) string {
	out := string(s)
	for _, str := range strs {
		out += str
	}
	return out
}

// PlainStyleProvider marks semantic output with text prefixes instead of colour.
type PlainStyleProvider struct{}

// NewPlainStyleProvider creates a plain provider.
func NewPlainStyleProvider() *PlainStyleProvider {
	return &PlainStyleProvider{}
}

// GetStyle returns a prefixing style.
func (p *PlainStyleProvider) GetStyle(semantic SemanticType) TextStyle {
	switch semantic {
	case SemanticSuccess:
		return plainStyle("✓ ")
	case SemanticWarning:
		return plainStyle("⚠ ")
	case SemanticError:
		return plainStyle("✗ ")
	case SemanticInfo:
		return plainStyle("ℹ ")
	}
	return plainStyle("")
}

// IsAvailable is always true.
func (p *PlainStyleProvider) IsAvailable() bool {
	return true
}
